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

package model

// SerializedFilter is the exported form of a service filter.
type SerializedFilter struct {
	FieldID        int64  `json:"field_id"`
	Type           string `json:"type"`
	Value          string `json:"value"`
	ValueIsFormula bool   `json:"value_is_formula"`
}

// SerializedFieldMapping is the exported form of a field mapping.
type SerializedFieldMapping struct {
	FieldID int64  `json:"field_id"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// SerializedService is the exported form of a service.
type SerializedService struct {
	ID            int64                    `json:"id"`
	Type          string                   `json:"type"`
	RowID         string                   `json:"row_id"`
	ViewID        *int64                   `json:"view_id"`
	TableID       *int64                   `json:"table_id"`
	IntegrationID *int64                   `json:"integration_id"`
	SearchQuery   string                   `json:"search_query"`
	FilterType    string                   `json:"filter_type"`
	Filters       []SerializedFilter       `json:"filters"`
	FieldMappings []SerializedFieldMapping `json:"field_mappings,omitempty"`
}
