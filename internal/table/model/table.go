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

// Package model defines the tables, fields, views and rows of the table store.
package model

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Filter combination types.
const (
	FilterTypeAnd = "AND"
	FilterTypeOr  = "OR"
)

// Sort directions.
const (
	SortAscending  = "ASC"
	SortDescending = "DESC"
)

// Table is a user defined table.
type Table struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// FieldByID returns the field of the table with the given id.
func (t *Table) FieldByID(fieldID int64) (*Field, bool) {
	for i := range t.Fields {
		if t.Fields[i].ID == fieldID {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// RowTableName is the name of the table holding the rows.
func (t *Table) RowTableName() string {
	return fmt.Sprintf("DATABASE_TABLE_%d", t.ID)
}

// SelectOption is an option of a single select field.
type SelectOption struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// Field is a typed column of a table.
type Field struct {
	ID                  int64          `json:"id"`
	TableID             int64          `json:"table_id"`
	Name                string         `json:"name"`
	Type                string         `json:"type"`
	Order               int            `json:"order"`
	Primary             bool           `json:"primary"`
	NumberDecimalPlaces int32          `json:"number_decimal_places"`
	SelectOptions       []SelectOption `json:"select_options"`
}

// DBColumn returns the column name holding the field values.
func (f Field) DBColumn() string {
	return fmt.Sprintf("field_%d", f.ID)
}

// ViewFilter is a filter stored on a view.
type ViewFilter struct {
	FieldID int64  `json:"field_id"`
	Type    string `json:"type"`
	Value   string `json:"value"`
}

// ViewSort is a sorting stored on a view.
type ViewSort struct {
	FieldID int64  `json:"field_id"`
	Order   string `json:"order"`
}

// View is a saved filtered and sorted projection of a table.
type View struct {
	ID              int64        `json:"id"`
	TableID         int64        `json:"table_id"`
	Name            string       `json:"name"`
	FilterType      string       `json:"filter_type"`
	FiltersDisabled bool         `json:"filters_disabled"`
	Filters         []ViewFilter `json:"filters"`
	Sortings        []ViewSort   `json:"sortings"`
}

// Row is a row of a table. Values are keyed by field column name.
type Row struct {
	ID     int64
	Order  *apd.Decimal
	Values map[string]interface{}
}

// Clone returns a copy of the row with its own value map.
func (r Row) Clone() Row {
	values := make(map[string]interface{}, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return Row{ID: r.ID, Order: r.Order, Values: values}
}

// Filter is a resolved filter applied to a row query.
type Filter struct {
	FieldID int64
	Type    string
	Value   string
}

// RowQuery selects rows of a table.
type RowQuery struct {
	// View adds the view filters and sortings when set.
	View *View
	// Filters are combined with FilterType and applied on top of the view.
	Filters    []Filter
	FilterType string
	Search     string
	RowID      *int64
}
