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

// Package service provides the readiness checks of the forge databases.
package service

import (
	"github.com/asgardeo/forge/internal/system/constants"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	"github.com/asgardeo/forge/internal/system/healthcheck/model"
	"github.com/asgardeo/forge/internal/system/log"
)

const loggerComponentName = "HealthCheckService"

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness() model.ServerStatus
}

// HealthCheckService is the default implementation of the HealthCheckServiceInterface.
type HealthCheckService struct {
	dbProvider provider.DBProviderInterface
}

// NewHealthCheckService creates a new instance of HealthCheckService.
func NewHealthCheckService(dbProvider provider.DBProviderInterface) *HealthCheckService {
	return &HealthCheckService{dbProvider: dbProvider}
}

// CheckReadiness checks that both databases answer a query on their schema.
func (hcs *HealthCheckService) CheckReadiness() model.ServerStatus {
	builderDBStatus := model.ServiceStatus{
		ServiceName: "BuilderDB",
		Status:      hcs.checkDatabaseStatus(constants.BuilderDatabase, queryBuilderDBTable),
	}
	tablesDBStatus := model.ServiceStatus{
		ServiceName: "TablesDB",
		Status:      hcs.checkDatabaseStatus(constants.TablesDatabase, queryTablesDBTable),
	}

	status := model.StatusUp
	if builderDBStatus.Status == model.StatusDown || tablesDBStatus.Status == model.StatusDown {
		status = model.StatusDown
	}
	return model.ServerStatus{
		Status:        status,
		ServiceStatus: []model.ServiceStatus{builderDBStatus, tablesDBStatus},
	}
}

// checkDatabaseStatus runs the query on the named database. Clients belong to the provider and
// stay open.
func (hcs *HealthCheckService) checkDatabaseStatus(dbName string, query dbmodel.DBQuery) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := hcs.dbProvider.GetDBClient(dbName)
	if err != nil {
		logger.Error("Failed to get database client", log.String("database", dbName), log.Error(err))
		return model.StatusDown
	}
	if _, err := dbClient.Query(query); err != nil {
		logger.Error("Failed to execute query", log.String("database", dbName), log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}
