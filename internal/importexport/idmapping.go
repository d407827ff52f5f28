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

// Package importexport carries the identifier translation used when builder objects are
// duplicated, imported or copied.
package importexport

import "strconv"

// Mapping categories.
const (
	CategoryDatabaseTables      = "database_tables"
	CategoryDatabaseViews       = "database_views"
	CategoryDatabaseFields      = "database_fields"
	CategoryIntegrations        = "integrations"
	CategoryServices            = "services"
	CategoryBuilderPages        = "builder_pages"
	CategoryBuilderDataSources  = "builder_data_sources"
	CategoryBuilderPageElements = "builder_page_elements"
)

// IDMapping maps old identifiers to new ones per category.
type IDMapping map[string]map[int64]int64

// NewIDMapping creates an empty mapping.
func NewIDMapping() IDMapping {
	return IDMapping{}
}

// Set records that oldID became newID.
func (m IDMapping) Set(category string, oldID, newID int64) {
	ids, ok := m[category]
	if !ok {
		ids = make(map[int64]int64)
		m[category] = ids
	}
	ids[oldID] = newID
}

// Lookup returns the new identifier and whether one was recorded.
func (m IDMapping) Lookup(category string, oldID int64) (int64, bool) {
	newID, ok := m[category][oldID]
	return newID, ok
}

// Get returns the new identifier, or oldID when none was recorded.
func (m IDMapping) Get(category string, oldID int64) int64 {
	if newID, ok := m.Lookup(category, oldID); ok {
		return newID
	}
	return oldID
}

// GetOptional maps an optional identifier.
func (m IDMapping) GetOptional(category string, oldID *int64) *int64 {
	if oldID == nil {
		return nil
	}
	newID := m.Get(category, *oldID)
	return &newID
}

// GetString maps an identifier written as text. Text that is not an identifier is returned
// unchanged.
func (m IDMapping) GetString(category, oldID string) string {
	id, err := strconv.ParseInt(oldID, 10, 64)
	if err != nil {
		return oldID
	}
	return strconv.FormatInt(m.Get(category, id), 10)
}
