/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package importexport

import (
	"strconv"

	"github.com/asgardeo/forge/internal/formula"
)

const dataSourcePathPrefix = "data_source"

// FormulaImportFunc rewrites the references of one formula.
type FormulaImportFunc func(src string, mapping IDMapping) string

// PathImporter rewrites the part of a data source path that follows the data source id.
type PathImporter interface {
	ImportPath(path []string, mapping IDMapping) []string
}

// PathImporterLookup returns the path importer of the data source with the given id.
type PathImporterLookup func(dataSourceID int64) (PathImporter, bool)

// FormulaImporter rewrites data source references of formulas.
type FormulaImporter struct {
	lookup PathImporterLookup
}

// NewFormulaImporter creates a new instance of FormulaImporter. A nil lookup only remaps
// data source ids.
func NewFormulaImporter(lookup PathImporterLookup) *FormulaImporter {
	return &FormulaImporter{lookup: lookup}
}

// ImportFormula remaps every get('data_source.<id>...') reference of src. The id goes through
// the builder_data_sources category and the remaining segments through the path importer of
// the data source. References that cannot be mapped and formulas that do not parse are left
// as written.
func (f *FormulaImporter) ImportFormula(src string, mapping IDMapping) string {
	return formula.RewriteGetPaths(src, func(path []string) []string {
		return f.importDataSourcePath(path, mapping)
	})
}

func (f *FormulaImporter) importDataSourcePath(path []string, mapping IDMapping) []string {
	if len(path) < 2 || path[0] != dataSourcePathPrefix {
		return path
	}
	oldID, err := strconv.ParseInt(path[1], 10, 64)
	if err != nil {
		return path
	}

	newID := mapping.Get(CategoryBuilderDataSources, oldID)
	rewritten := append([]string{dataSourcePathPrefix, strconv.FormatInt(newID, 10)}, path[2:]...)
	if len(path) == 2 || f.lookup == nil {
		return rewritten
	}

	importer, ok := f.lookup(newID)
	if !ok || importer == nil {
		return rewritten
	}
	rest := importer.ImportPath(append([]string(nil), path[2:]...), mapping)
	return append(rewritten[:2], rest...)
}
