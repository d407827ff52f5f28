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

// Package model defines the data sources of builder pages.
package model

import (
	servicemodel "github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

// EntityType is the entity type reported in data source signals.
const EntityType = "data_source"

// DataSource binds a data service to a page. Its payload is reachable from the formulas of the
// page as data_source.<id>.
type DataSource struct {
	ID        int64  `json:"id"`
	PageID    int64  `json:"page_id"`
	Name      string `json:"name"`
	Order     string `json:"order"`
	ServiceID *int64 `json:"service_id"`
}

// CreateDataSourceRequest holds the attributes of a new data source. A blank name gets the first
// free default name of the page. A blank service type creates a data source without a service.
type CreateDataSourceRequest struct {
	Name          string
	ServiceType   string
	ServiceValues *servicemodel.ServiceValues
	// BeforeID places the data source before this data source of the page. Nil places it last.
	BeforeID *int64
}

// UpdateDataSourceRequest holds the attributes to change. A service type that differs from the
// current one replaces the service.
type UpdateDataSourceRequest struct {
	Name          *string
	ServiceType   *string
	ServiceValues *servicemodel.ServiceValues
}

// DispatchResult is the outcome of one data source of a page dispatch.
type DispatchResult struct {
	Payload servicemodel.Payload
	Error   *serviceerror.ServiceError
}

// SerializedDataSource is the exported form of a data source.
type SerializedDataSource struct {
	ID      int64                           `json:"id"`
	Name    string                          `json:"name"`
	Order   string                          `json:"order"`
	Service *servicemodel.SerializedService `json:"service"`
}
