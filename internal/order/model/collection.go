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

// Package model defines the ordered collections managed by the order service.
package model

import "fmt"

// Collection describes a table whose rows are ordered within a parent row.
type Collection struct {
	// Name is the entity type reported in signals.
	Name string
	// Database is the name of the database holding the table.
	Database string
	// Table holds the ordered items.
	Table string
	// IDColumn is the primary key column of Table.
	IDColumn string
	// ParentColumn references the parent from Table.
	ParentColumn string
	// ParentTable holds the parents.
	ParentTable string
	// ParentIDColumn is the primary key column of ParentTable.
	ParentIDColumn string
}

// ScopeKey identifies the ordering scope of a parent within the collection.
func (c Collection) ScopeKey(parentID int64) string {
	return fmt.Sprintf("%s:%d", c.Name, parentID)
}

var (
	// ElementCollection orders builder elements within a page.
	ElementCollection = Collection{
		Name:           "element",
		Database:       "builder",
		Table:          "BUILDER_ELEMENT",
		IDColumn:       "ELEMENT_ID",
		ParentColumn:   "PAGE_ID",
		ParentTable:    "BUILDER_PAGE",
		ParentIDColumn: "PAGE_ID",
	}

	// PageCollection orders pages within a builder application.
	PageCollection = Collection{
		Name:           "page",
		Database:       "builder",
		Table:          "BUILDER_PAGE",
		IDColumn:       "PAGE_ID",
		ParentColumn:   "APPLICATION_ID",
		ParentTable:    "BUILDER_APPLICATION",
		ParentIDColumn: "APPLICATION_ID",
	}

	// DataSourceCollection orders data sources within a page.
	DataSourceCollection = Collection{
		Name:           "data_source",
		Database:       "builder",
		Table:          "BUILDER_DATA_SOURCE",
		IDColumn:       "DATA_SOURCE_ID",
		ParentColumn:   "PAGE_ID",
		ParentTable:    "BUILDER_PAGE",
		ParentIDColumn: "PAGE_ID",
	}
)
