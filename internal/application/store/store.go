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

// Package store provides the persistence of builder applications.
package store

import (
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/application/constants"
	"github.com/asgardeo/forge/internal/application/model"
	sysconstants "github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	"github.com/asgardeo/forge/internal/system/database/provider"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
)

const loggerComponentName = "ApplicationStore"

// ApplicationStoreInterface defines the persistence operations of applications.
type ApplicationStoreInterface interface {
	CreateApplication(name string) (*model.Application, error)
	GetApplicationByID(id int64) (*model.Application, error)
	GetApplicationList() ([]model.Application, error)
	UpdateApplication(app model.Application) error
	DeleteApplication(id int64) error
}

type applicationStore struct {
	dbProvider provider.DBProviderInterface
}

// NewApplicationStore creates a new instance of the application store.
func NewApplicationStore(dbProvider provider.DBProviderInterface) ApplicationStoreInterface {
	return &applicationStore{dbProvider: dbProvider}
}

func (s *applicationStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.BuilderDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// CreateApplication creates a new application in the database.
func (s *applicationStore) CreateApplication(name string) (*model.Application, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(QueryCreateApplication, name)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, errors.New("application id was not returned")
	}
	id, err := utils.ParseInt64(results[0]["application_id"])
	if err != nil {
		return nil, err
	}

	logger.Debug("Application created", log.Int64("applicationId", id))
	return &model.Application{ID: id, Name: name}, nil
}

// GetApplicationByID retrieves a specific application by its id.
func (s *applicationStore) GetApplicationByID(id int64) (*model.Application, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(QueryGetApplicationByID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrApplicationNotFound
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}
	return buildApplicationFromResultRow(results[0])
}

// GetApplicationList retrieves every application.
func (s *applicationStore) GetApplicationList() ([]model.Application, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(QueryGetApplicationList)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	applications := make([]model.Application, 0, len(results))
	for _, row := range results {
		application, err := buildApplicationFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build application from result row: %w", err)
		}
		applications = append(applications, *application)
	}
	return applications, nil
}

// UpdateApplication renames an application.
func (s *applicationStore) UpdateApplication(app model.Application) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	affected, err := dbClient.Execute(QueryUpdateApplication, app.ID, app.Name)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrApplicationNotFound
	}
	return nil
}

// DeleteApplication deletes an application with its pages and integrations.
func (s *applicationStore) DeleteApplication(id int64) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	affected, err := dbClient.Execute(QueryDeleteApplication, id)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrApplicationNotFound
	}
	return nil
}

func buildApplicationFromResultRow(row map[string]interface{}) (*model.Application, error) {
	id, err := utils.ParseInt64(row["application_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse application id: %w", err)
	}
	return &model.Application{
		ID:   id,
		Name: utils.ConvertInterfaceValueToString(row["name"]),
	}, nil
}
