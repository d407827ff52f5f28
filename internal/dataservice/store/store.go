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

// Package store provides the persistence of integrations and data services.
package store

import (
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/dataservice/constants"
	"github.com/asgardeo/forge/internal/dataservice/model"
	sysconstants "github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	dbutils "github.com/asgardeo/forge/internal/system/database/utils"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
)

const loggerComponentName = "DataServiceStore"

// IntegrationReaderInterface reads integrations.
type IntegrationReaderInterface interface {
	GetIntegration(integrationID int64) (*model.Integration, error)
}

// DataServiceStoreInterface defines the persistence operations of integrations and services.
type DataServiceStoreInterface interface {
	IntegrationReaderInterface
	CreateIntegration(integration model.Integration) (*model.Integration, error)

	// CreateService inserts a service with its filters and field mappings.
	CreateService(service *model.Service) (*model.Service, error)
	GetService(serviceID int64) (*model.Service, error)
	// UpdateService writes the attributes and filters of a service.
	UpdateService(service *model.Service) error
	// ReplaceFieldMappings replaces every field mapping of a service.
	ReplaceFieldMappings(serviceID int64, mappings []model.FieldMapping) ([]model.FieldMapping, error)
	DeleteService(serviceID int64) error
}

type dataServiceStore struct {
	dbProvider provider.DBProviderInterface
}

// NewDataServiceStore creates a new instance of the data service store.
func NewDataServiceStore(dbProvider provider.DBProviderInterface) DataServiceStoreInterface {
	return &dataServiceStore{
		dbProvider: dbProvider,
	}
}

func (s *dataServiceStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.BuilderDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// CreateIntegration creates an integration.
func (s *dataServiceStore) CreateIntegration(integration model.Integration) (*model.Integration, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryCreateIntegration, integration.ApplicationID, integration.Type,
		integration.Name, integration.AuthorizedUser)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, errors.New("integration id was not returned")
	}
	if integration.ID, err = utils.ParseInt64(results[0]["integration_id"]); err != nil {
		return nil, err
	}
	return &integration, nil
}

// GetIntegration returns an integration.
func (s *dataServiceStore) GetIntegration(integrationID int64) (*model.Integration, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetIntegrationByID, integrationID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrIntegrationNotFound
	}

	row := results[0]
	applicationID, err := utils.ParseInt64(row["application_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse application id: %w", err)
	}
	return &model.Integration{
		ID:             integrationID,
		ApplicationID:  applicationID,
		Type:           utils.ConvertInterfaceValueToString(row["type"]),
		Name:           utils.ConvertInterfaceValueToString(row["name"]),
		AuthorizedUser: utils.ConvertInterfaceValueToString(row["authorized_user"]),
	}, nil
}

// CreateService creates a service.
func (s *dataServiceStore) CreateService(service *model.Service) (*model.Service, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	created := service.Clone()
	if created.FilterType == "" {
		created.FilterType = "AND"
	}
	err = dbutils.WithTx(dbClient, func(tx dbmodel.TxInterface) error {
		results, err := tx.Query(QueryCreateService, created.Type, created.IntegrationID, created.TableID,
			created.ViewID, created.RowID, created.SearchQuery, created.FilterType)
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		if len(results) == 0 {
			return errors.New("service id was not returned")
		}
		if created.ID, err = utils.ParseInt64(results[0]["service_id"]); err != nil {
			return err
		}
		if created.Filters, err = insertFilters(tx, created.ID, created.Filters); err != nil {
			return err
		}
		created.FieldMappings, err = insertFieldMappings(tx, created.ID, created.FieldMappings)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Service created", log.Int64("serviceId", created.ID), log.String("type", created.Type))
	return created, nil
}

// GetService returns a service with its filters and field mappings.
func (s *dataServiceStore) GetService(serviceID int64) (*model.Service, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetServiceByID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrServiceNotFound
	}
	service, err := buildServiceFromResultRow(results[0])
	if err != nil {
		return nil, err
	}

	filterRows, err := dbClient.Query(QueryGetServiceFilters, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	for _, row := range filterRows {
		filter, err := buildFilterFromResultRow(row)
		if err != nil {
			return nil, err
		}
		service.Filters = append(service.Filters, filter)
	}

	mappingRows, err := dbClient.Query(QueryGetFieldMappings, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	for _, row := range mappingRows {
		mapping, err := buildFieldMappingFromResultRow(row)
		if err != nil {
			return nil, err
		}
		service.FieldMappings = append(service.FieldMappings, mapping)
	}
	return service, nil
}

// UpdateService updates the attributes of a service and replaces its filters.
func (s *dataServiceStore) UpdateService(service *model.Service) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	return dbutils.WithTx(dbClient, func(tx dbmodel.TxInterface) error {
		affected, err := tx.Execute(QueryUpdateService, service.ID, service.IntegrationID, service.TableID,
			service.ViewID, service.RowID, service.SearchQuery, service.FilterType)
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		if affected == 0 {
			return constants.ErrServiceNotFound
		}
		if _, err := tx.Execute(QueryDeleteServiceFilters, service.ID); err != nil {
			return fmt.Errorf("failed to delete service filters: %w", err)
		}
		service.Filters, err = insertFilters(tx, service.ID, service.Filters)
		return err
	})
}

// ReplaceFieldMappings replaces the field mappings of a service.
func (s *dataServiceStore) ReplaceFieldMappings(serviceID int64,
	mappings []model.FieldMapping) ([]model.FieldMapping, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	var replaced []model.FieldMapping
	err = dbutils.WithTx(dbClient, func(tx dbmodel.TxInterface) error {
		if _, err := tx.Execute(QueryDeleteFieldMappings, serviceID); err != nil {
			return fmt.Errorf("failed to delete field mappings: %w", err)
		}
		replaced, err = insertFieldMappings(tx, serviceID, mappings)
		return err
	})
	if err != nil {
		return nil, err
	}
	return replaced, nil
}

// DeleteService deletes a service. Filters and field mappings are removed with it.
func (s *dataServiceStore) DeleteService(serviceID int64) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	affected, err := dbClient.Execute(QueryDeleteService, serviceID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrServiceNotFound
	}
	return nil
}

func insertFilters(tx dbmodel.TxInterface, serviceID int64,
	filters []model.ServiceFilter) ([]model.ServiceFilter, error) {
	inserted := make([]model.ServiceFilter, 0, len(filters))
	for i, filter := range filters {
		filter.Order = i
		results, err := tx.Query(QueryCreateServiceFilter, serviceID, filter.FieldID, filter.Type, filter.Value,
			filter.ValueIsFormula, filter.Order)
		if err != nil {
			return nil, fmt.Errorf("failed to create service filter: %w", err)
		}
		if len(results) == 0 {
			return nil, errors.New("filter id was not returned")
		}
		if filter.ID, err = utils.ParseInt64(results[0]["filter_id"]); err != nil {
			return nil, err
		}
		inserted = append(inserted, filter)
	}
	return inserted, nil
}

func insertFieldMappings(tx dbmodel.TxInterface, serviceID int64,
	mappings []model.FieldMapping) ([]model.FieldMapping, error) {
	inserted := make([]model.FieldMapping, 0, len(mappings))
	for _, mapping := range mappings {
		results, err := tx.Query(QueryCreateFieldMapping, serviceID, mapping.FieldID, mapping.Value, mapping.Enabled)
		if err != nil {
			return nil, fmt.Errorf("failed to create field mapping: %w", err)
		}
		if len(results) == 0 {
			return nil, errors.New("field mapping id was not returned")
		}
		if mapping.ID, err = utils.ParseInt64(results[0]["mapping_id"]); err != nil {
			return nil, err
		}
		inserted = append(inserted, mapping)
	}
	return inserted, nil
}

func buildServiceFromResultRow(row map[string]interface{}) (*model.Service, error) {
	serviceID, err := utils.ParseInt64(row["service_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse service id: %w", err)
	}
	integrationID, err := utils.ParseNullableInt64(row["integration_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse integration id: %w", err)
	}
	tableID, err := utils.ParseNullableInt64(row["table_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse table id: %w", err)
	}
	viewID, err := utils.ParseNullableInt64(row["view_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse view id: %w", err)
	}

	return &model.Service{
		ID:            serviceID,
		Type:          utils.ConvertInterfaceValueToString(row["type"]),
		IntegrationID: integrationID,
		TableID:       tableID,
		ViewID:        viewID,
		RowID:         utils.ConvertInterfaceValueToString(row["row_id"]),
		SearchQuery:   utils.ConvertInterfaceValueToString(row["search_query"]),
		FilterType:    utils.ConvertInterfaceValueToString(row["filter_type"]),
		Filters:       []model.ServiceFilter{},
		FieldMappings: []model.FieldMapping{},
	}, nil
}

func buildFilterFromResultRow(row map[string]interface{}) (model.ServiceFilter, error) {
	filterID, err := utils.ParseInt64(row["filter_id"])
	if err != nil {
		return model.ServiceFilter{}, fmt.Errorf("failed to parse filter id: %w", err)
	}
	fieldID, err := utils.ParseInt64(row["field_id"])
	if err != nil {
		return model.ServiceFilter{}, fmt.Errorf("failed to parse field id: %w", err)
	}
	filterOrder, err := utils.ParseInt64(row["filter_order"])
	if err != nil {
		return model.ServiceFilter{}, fmt.Errorf("failed to parse filter order: %w", err)
	}

	return model.ServiceFilter{
		ID:             filterID,
		FieldID:        fieldID,
		Type:           utils.ConvertInterfaceValueToString(row["type"]),
		Value:          utils.ConvertInterfaceValueToString(row["value"]),
		ValueIsFormula: utils.ParseBool(row["value_is_formula"]),
		Order:          int(filterOrder),
	}, nil
}

func buildFieldMappingFromResultRow(row map[string]interface{}) (model.FieldMapping, error) {
	mappingID, err := utils.ParseInt64(row["mapping_id"])
	if err != nil {
		return model.FieldMapping{}, fmt.Errorf("failed to parse mapping id: %w", err)
	}
	fieldID, err := utils.ParseInt64(row["field_id"])
	if err != nil {
		return model.FieldMapping{}, fmt.Errorf("failed to parse field id: %w", err)
	}

	return model.FieldMapping{
		ID:      mappingID,
		FieldID: fieldID,
		Value:   utils.ConvertInterfaceValueToString(row["value"]),
		Enabled: utils.ParseBool(row["enabled"]),
	}, nil
}
