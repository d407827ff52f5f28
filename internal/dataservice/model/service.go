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

// Package model defines the data structures of data services.
package model

import (
	tablemodel "github.com/asgardeo/forge/internal/table/model"
)

// IntegrationTypeLocalTable is the integration giving services access to the local tables.
const IntegrationTypeLocalTable = "local_table"

// Integration is the connection context a service runs with.
type Integration struct {
	ID             int64
	ApplicationID  int64
	Type           string
	Name           string
	AuthorizedUser string
}

// ServiceFilter is a filter of a service. The value is a formula when ValueIsFormula is set.
type ServiceFilter struct {
	ID             int64
	FieldID        int64
	Type           string
	Value          string
	ValueIsFormula bool
	Order          int
}

// FieldMapping associates a field written by an upsert with a formula producing its value.
type FieldMapping struct {
	ID      int64
	FieldID int64
	Value   string
	Enabled bool
}

// Service is a configured data operation. Type selects the service type handling it.
type Service struct {
	ID            int64
	Type          string
	IntegrationID *int64
	TableID       *int64
	ViewID        *int64
	RowID         string
	SearchQuery   string
	FilterType    string
	Filters       []ServiceFilter
	FieldMappings []FieldMapping
}

// Clone returns a deep copy of the service.
func (s *Service) Clone() *Service {
	cloned := *s
	cloned.IntegrationID = copyID(s.IntegrationID)
	cloned.TableID = copyID(s.TableID)
	cloned.ViewID = copyID(s.ViewID)
	cloned.Filters = append([]ServiceFilter(nil), s.Filters...)
	cloned.FieldMappings = append([]FieldMapping(nil), s.FieldMappings...)
	return &cloned
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	value := *id
	return &value
}

// OptionalID is an update of a nullable reference. Set reports whether the update carries it.
type OptionalID struct {
	Set bool
	ID  *int64
}

// FieldMappingValues is a field mapping provided by an update.
type FieldMappingValues struct {
	FieldID *int64
	Value   string
	Enabled *bool
}

// ServiceValues holds the attributes provided to create or update a service. Nil members are
// left unchanged.
type ServiceValues struct {
	IntegrationID OptionalID
	TableID       OptionalID
	ViewID        OptionalID
	RowID         *string
	SearchQuery   *string
	FilterType    *string
	Filters       []ServiceFilter
	FieldMappings []FieldMappingValues
}

// DispatchStage is the progress of a dispatch.
type DispatchStage string

const (
	// StageConfigValidated is reached once the service references an existing table.
	StageConfigValidated DispatchStage = "config_validated"
	// StageFormulasResolved is reached once every formula of the service is resolved.
	StageFormulasResolved DispatchStage = "formulas_resolved"
	// StageDataFetched is reached once the underlying row operation ran.
	StageDataFetched DispatchStage = "data_fetched"
	// StageTransformed is reached once the payload is built.
	StageTransformed DispatchStage = "transformed"
)

// ResolvedMapping is an enabled field mapping with its resolved value.
type ResolvedMapping struct {
	Mapping FieldMapping
	Value   interface{}
}

// DispatchValues holds the resolved formulas of a service.
type DispatchValues struct {
	Table       *tablemodel.Table
	View        *tablemodel.View
	Integration *Integration
	RowID       int64
	HasRowID    bool
	SearchQuery string
	Filters     []tablemodel.Filter
	Mappings    []ResolvedMapping
}

// DispatchData is the row fetched or written by a dispatch.
type DispatchData struct {
	Table *tablemodel.Table
	Row   *tablemodel.Row
}

// Payload is the page consumable result of a dispatch.
type Payload map[string]interface{}

// DispatchResult is the outcome of a complete dispatch.
type DispatchResult struct {
	Stage   DispatchStage
	Payload Payload
}
