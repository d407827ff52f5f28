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

// Package table defines the table and row store consumed by the data services.
package table

import (
	"fmt"

	"github.com/asgardeo/forge/internal/table/constants"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	"github.com/asgardeo/forge/internal/table/model"
)

// RowStoreInterface defines the operations on tables and their rows.
type RowStoreInterface interface {
	CreateTable(name string) (*model.Table, error)
	CreateField(tableID int64, field model.Field) (*model.Field, error)
	CreateView(view model.View) (*model.View, error)
	GetTable(tableID int64) (*model.Table, error)
	GetField(fieldID int64) (*model.Field, error)
	GetView(viewID int64) (*model.View, error)

	// QueryRows returns the rows matching the query in view order.
	QueryRows(table *model.Table, query model.RowQuery) ([]model.Row, error)
	GetRow(table *model.Table, rowID int64) (*model.Row, error)
	// CreateRow appends a row with the given prepared values.
	CreateRow(table *model.Table, values map[string]interface{}) (*model.Row, error)
	// UpdateRow writes the given prepared values in one statement.
	UpdateRow(table *model.Table, rowID int64, values map[string]interface{}) (*model.Row, error)
}

// DefaultValues returns the value of every field of a new row.
func DefaultValues(table *model.Table, registry *fieldtype.Registry) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(table.Fields))
	for _, field := range table.Fields {
		fieldType, err := registry.Get(field.Type)
		if err != nil {
			return nil, err
		}
		values[field.DBColumn()] = fieldType.Default(field)
	}
	return values, nil
}

// CheckColumns returns an error when a value does not belong to a field of the table.
func CheckColumns(table *model.Table, values map[string]interface{}) error {
	known := make(map[string]bool, len(table.Fields))
	for _, field := range table.Fields {
		known[field.DBColumn()] = true
	}
	for column := range values {
		if !known[column] {
			return fmt.Errorf("%w: %s", constants.ErrFieldNotFound, column)
		}
	}
	return nil
}
