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

// Package service manages the data sources of builder pages and dispatches them.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asgardeo/forge/internal/dataservice/handler"
	servicemodel "github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/datasource/constants"
	"github.com/asgardeo/forge/internal/datasource/dispatchcontext"
	"github.com/asgardeo/forge/internal/datasource/model"
	"github.com/asgardeo/forge/internal/datasource/store"
	"github.com/asgardeo/forge/internal/importexport"
	orderconstants "github.com/asgardeo/forge/internal/order/constants"
	ordermodel "github.com/asgardeo/forge/internal/order/model"
	orderservice "github.com/asgardeo/forge/internal/order/service"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/signal"
)

const (
	loggerComponentName = "DataSourceService"
	defaultName         = "Data source"
)

// DataSourceServiceInterface defines the operations on page data sources.
type DataSourceServiceInterface interface {
	CreateDataSource(pageID int64, request model.CreateDataSourceRequest, actor string) (*model.DataSource,
		*serviceerror.ServiceError)
	GetDataSource(dataSourceID int64) (*model.DataSource, *serviceerror.ServiceError)
	GetDataSources(pageID int64) ([]model.DataSource, *serviceerror.ServiceError)
	UpdateDataSource(dataSourceID int64, request model.UpdateDataSourceRequest, actor string) (*model.DataSource,
		*serviceerror.ServiceError)
	DeleteDataSource(dataSourceID int64, actor string) *serviceerror.ServiceError
	MoveDataSource(dataSourceID int64, beforeID *int64, actor string) (*model.DataSource, *serviceerror.ServiceError)
	DispatchDataSource(dataSourceID int64, params map[string]interface{}) (servicemodel.Payload,
		*serviceerror.ServiceError)
	DispatchPageDataSources(pageID int64, params map[string]interface{}) (map[int64]model.DispatchResult,
		*serviceerror.ServiceError)
	PathImporter(dataSourceID int64) (importexport.PathImporter, bool)
	ExportDataSource(dataSource *model.DataSource) (model.SerializedDataSource, *serviceerror.ServiceError)
	ImportDataSources(pageID int64, serialized []model.SerializedDataSource, mapping importexport.IDMapping,
		actor string) ([]model.DataSource, *serviceerror.ServiceError)
}

// DataSourceService is the default implementation of DataSourceServiceInterface.
type DataSourceService struct {
	store        store.DataSourceStoreInterface
	orderService orderservice.OrderServiceInterface
	services     handler.ServiceHandlerInterface
	notifier     signal.NotifierInterface
}

var _ dispatchcontext.DataSourceDispatcherInterface = (*DataSourceService)(nil)

// NewDataSourceService creates a new instance of DataSourceService.
func NewDataSourceService(dataSourceStore store.DataSourceStoreInterface,
	orderService orderservice.OrderServiceInterface, services handler.ServiceHandlerInterface,
	notifier signal.NotifierInterface) *DataSourceService {
	return &DataSourceService{
		store:        dataSourceStore,
		orderService: orderService,
		services:     services,
		notifier:     notifier,
	}
}

// CreateDataSource creates a data source on a page, with a service when a type is given.
func (s *DataSourceService) CreateDataSource(pageID int64, request model.CreateDataSourceRequest,
	actor string) (*model.DataSource, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	name, svcErr := s.uniqueName(pageID, request.Name, 0)
	if svcErr != nil {
		return nil, svcErr
	}

	var serviceID *int64
	if request.ServiceType != "" {
		service, svcErr := s.services.CreateService(request.ServiceType, request.ServiceValues)
		if svcErr != nil {
			return nil, svcErr
		}
		serviceID = &service.ID
	}

	var created *model.DataSource
	_, err := s.orderService.Place(orderservice.PlacementRequest{
		Collection: ordermodel.DataSourceCollection,
		ParentID:   pageID,
		BeforeID:   request.BeforeID,
		Actor:      actor,
	}, func(tx dbmodel.TxInterface, orders []string) error {
		var err error
		created, err = s.store.CreateDataSource(tx, model.DataSource{
			PageID:    pageID,
			Name:      name,
			Order:     orders[0],
			ServiceID: serviceID,
		})
		return err
	})
	if err != nil {
		if serviceID != nil {
			if svcErr := s.services.DeleteService(*serviceID); svcErr != nil {
				logger.Warn("Failed to remove the service of a data source that was not created",
					log.Int64("serviceId", *serviceID), log.String("code", svcErr.Code))
			}
		}
		return nil, s.placementError(err, "Failed to create data source")
	}

	s.notify(signal.ItemCreated, pageID, actor, created.ID)
	logger.Debug("Data source created", log.Int64("dataSourceId", created.ID), log.Int64("pageId", pageID))
	return created, nil
}

// GetDataSource returns a data source.
func (s *DataSourceService) GetDataSource(dataSourceID int64) (*model.DataSource, *serviceerror.ServiceError) {
	dataSource, err := s.store.GetDataSource(dataSourceID)
	if err != nil {
		if errors.Is(err, constants.ErrDataSourceNotFound) {
			return nil, &constants.ErrorDataSourceNotFound
		}
		return nil, s.internalError("Failed to get data source", err)
	}
	return dataSource, nil
}

// GetDataSources returns the data sources of a page in order.
func (s *DataSourceService) GetDataSources(pageID int64) ([]model.DataSource, *serviceerror.ServiceError) {
	dataSources, err := s.store.GetDataSources(pageID)
	if err != nil {
		return nil, s.internalError("Failed to get data sources", err)
	}
	return dataSources, nil
}

// UpdateDataSource renames a data source and updates or replaces its service.
func (s *DataSourceService) UpdateDataSource(dataSourceID int64, request model.UpdateDataSourceRequest,
	actor string) (*model.DataSource, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dataSource, svcErr := s.GetDataSource(dataSourceID)
	if svcErr != nil {
		return nil, svcErr
	}

	if request.Name != nil && *request.Name != dataSource.Name {
		name, svcErr := s.uniqueName(dataSource.PageID, *request.Name, dataSource.ID)
		if svcErr != nil {
			return nil, svcErr
		}
		dataSource.Name = name
	}

	var replaced *int64
	currentType, svcErr := s.serviceType(dataSource)
	if svcErr != nil {
		return nil, svcErr
	}
	switch {
	case request.ServiceType != nil && *request.ServiceType != currentType:
		if *request.ServiceType == "" {
			replaced, dataSource.ServiceID = dataSource.ServiceID, nil
			break
		}
		service, svcErr := s.services.CreateService(*request.ServiceType, request.ServiceValues)
		if svcErr != nil {
			return nil, svcErr
		}
		replaced, dataSource.ServiceID = dataSource.ServiceID, &service.ID
	case request.ServiceValues != nil && dataSource.ServiceID != nil:
		if _, svcErr := s.services.UpdateService(*dataSource.ServiceID, request.ServiceValues); svcErr != nil {
			return nil, svcErr
		}
	}

	if err := s.store.UpdateDataSource(*dataSource); err != nil {
		if errors.Is(err, constants.ErrDataSourceNotFound) {
			return nil, &constants.ErrorDataSourceNotFound
		}
		return nil, s.internalError("Failed to update data source", err)
	}
	if replaced != nil {
		if svcErr := s.services.DeleteService(*replaced); svcErr != nil {
			logger.Warn("Failed to delete replaced service", log.Int64("serviceId", *replaced),
				log.String("code", svcErr.Code))
		}
	}

	s.notify(signal.ItemUpdated, dataSource.PageID, actor, dataSource.ID)
	return dataSource, nil
}

// DeleteDataSource deletes a data source and its service.
func (s *DataSourceService) DeleteDataSource(dataSourceID int64, actor string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dataSource, svcErr := s.GetDataSource(dataSourceID)
	if svcErr != nil {
		return svcErr
	}
	if err := s.store.DeleteDataSource(dataSourceID); err != nil {
		if errors.Is(err, constants.ErrDataSourceNotFound) {
			return &constants.ErrorDataSourceNotFound
		}
		return s.internalError("Failed to delete data source", err)
	}
	if dataSource.ServiceID != nil {
		if svcErr := s.services.DeleteService(*dataSource.ServiceID); svcErr != nil {
			logger.Warn("Failed to delete the service of a deleted data source",
				log.Int64("serviceId", *dataSource.ServiceID), log.String("code", svcErr.Code))
		}
	}

	s.notify(signal.ItemDeleted, dataSource.PageID, actor, dataSource.ID)
	return nil
}

// MoveDataSource positions a data source before another data source of its page, or last.
func (s *DataSourceService) MoveDataSource(dataSourceID int64, beforeID *int64,
	actor string) (*model.DataSource, *serviceerror.ServiceError) {
	dataSource, svcErr := s.GetDataSource(dataSourceID)
	if svcErr != nil {
		return nil, svcErr
	}

	result, err := s.orderService.Place(orderservice.PlacementRequest{
		Collection: ordermodel.DataSourceCollection,
		ParentID:   dataSource.PageID,
		BeforeID:   beforeID,
		MovingID:   &dataSource.ID,
		Actor:      actor,
	}, func(tx dbmodel.TxInterface, orders []string) error {
		return s.store.UpdateDataSourceOrder(tx, dataSource.ID, orders[0])
	})
	if err != nil {
		return nil, s.placementError(err, "Failed to move data source")
	}
	dataSource.Order = result.Orders[0]

	if !result.Reset {
		s.notify(signal.ItemUpdated, dataSource.PageID, actor, dataSource.ID)
	}
	return dataSource, nil
}

// DispatchDataSource dispatches a data source with the given page parameters.
func (s *DataSourceService) DispatchDataSource(dataSourceID int64,
	params map[string]interface{}) (servicemodel.Payload, *serviceerror.ServiceError) {
	dataSource, svcErr := s.GetDataSource(dataSourceID)
	if svcErr != nil {
		return nil, svcErr
	}
	ctx := dispatchcontext.NewBuilderDispatchContext(dataSource.PageID, params, s)
	return ctx.DataSourcePayload(dataSource.ID)
}

// DispatchPageDataSources dispatches every data source of a page in one context. A failing data
// source reports its error without stopping the others.
func (s *DataSourceService) DispatchPageDataSources(pageID int64,
	params map[string]interface{}) (map[int64]model.DispatchResult, *serviceerror.ServiceError) {
	dataSources, svcErr := s.GetDataSources(pageID)
	if svcErr != nil {
		return nil, svcErr
	}

	ctx := dispatchcontext.NewBuilderDispatchContext(pageID, params, s)
	results := make(map[int64]model.DispatchResult, len(dataSources))
	for _, dataSource := range dataSources {
		payload, svcErr := ctx.DataSourcePayload(dataSource.ID)
		results[dataSource.ID] = model.DispatchResult{Payload: payload, Error: svcErr}
	}
	return results, nil
}

// DispatchInContext runs the service of a data source of the context page.
func (s *DataSourceService) DispatchInContext(ctx *dispatchcontext.BuilderDispatchContext,
	dataSourceID int64) (servicemodel.Payload, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.Int64("dataSourceId", dataSourceID))

	dataSource, svcErr := s.GetDataSource(dataSourceID)
	if svcErr != nil {
		return nil, svcErr
	}
	if dataSource.PageID != ctx.PageID() {
		return nil, serviceerror.CustomServiceError(constants.ErrorDataSourceImproperlyConfigured,
			fmt.Sprintf("The data source with ID %d is not on the page.", dataSourceID))
	}
	if dataSource.ServiceID == nil {
		return nil, &constants.ErrorDataSourceImproperlyConfigured
	}

	service, svcErr := s.services.GetService(*dataSource.ServiceID)
	if svcErr != nil {
		return nil, svcErr
	}
	result, svcErr := s.services.DispatchService(service, ctx)
	if svcErr != nil {
		logger.Debug("Data source dispatch failed", log.String("code", svcErr.Code))
		return nil, svcErr
	}
	return result.Payload, nil
}

// PathImporter returns the service type of the data source, which rewrites the paths that follow
// the data source id.
func (s *DataSourceService) PathImporter(dataSourceID int64) (importexport.PathImporter, bool) {
	dataSource, svcErr := s.GetDataSource(dataSourceID)
	if svcErr != nil {
		return nil, false
	}
	typeName, svcErr := s.serviceType(dataSource)
	if svcErr != nil || typeName == "" {
		return nil, false
	}
	serviceType, svcErr := s.services.GetServiceType(typeName)
	if svcErr != nil {
		return nil, false
	}
	return serviceType, true
}

// ExportDataSource returns the serialized form of a data source and its service.
func (s *DataSourceService) ExportDataSource(dataSource *model.DataSource) (model.SerializedDataSource,
	*serviceerror.ServiceError) {
	serialized := model.SerializedDataSource{
		ID:    dataSource.ID,
		Name:  dataSource.Name,
		Order: dataSource.Order,
	}
	if dataSource.ServiceID == nil {
		return serialized, nil
	}

	service, svcErr := s.services.GetService(*dataSource.ServiceID)
	if svcErr != nil {
		return model.SerializedDataSource{}, svcErr
	}
	exported, svcErr := s.services.ExportService(service)
	if svcErr != nil {
		return model.SerializedDataSource{}, svcErr
	}
	serialized.Service = &exported
	return serialized, nil
}

// ImportDataSources creates the serialized data sources on a page in their order. Every data
// source is created before any service is imported, so formulas referencing a sibling are
// rewritten to the new sibling.
func (s *DataSourceService) ImportDataSources(pageID int64, serialized []model.SerializedDataSource,
	mapping importexport.IDMapping, actor string) ([]model.DataSource, *serviceerror.ServiceError) {
	imported := make([]model.DataSource, 0, len(serialized))
	serviceTypes := make(map[int64]string, len(serialized))
	for _, entry := range serialized {
		created, svcErr := s.CreateDataSource(pageID, model.CreateDataSourceRequest{Name: entry.Name}, actor)
		if svcErr != nil {
			return nil, svcErr
		}
		mapping.Set(importexport.CategoryBuilderDataSources, entry.ID, created.ID)
		if entry.Service != nil {
			serviceTypes[created.ID] = entry.Service.Type
		}
		imported = append(imported, *created)
	}

	importer := importexport.NewFormulaImporter(func(dataSourceID int64) (importexport.PathImporter, bool) {
		typeName, ok := serviceTypes[dataSourceID]
		if !ok {
			return nil, false
		}
		serviceType, svcErr := s.services.GetServiceType(typeName)
		if svcErr != nil {
			return nil, false
		}
		return serviceType, true
	})

	for i, entry := range serialized {
		if entry.Service == nil {
			continue
		}
		service, svcErr := s.services.ImportService(*entry.Service, mapping, importer.ImportFormula)
		if svcErr != nil {
			return nil, svcErr
		}
		imported[i].ServiceID = &service.ID
		if err := s.store.UpdateDataSource(imported[i]); err != nil {
			return nil, s.internalError("Failed to attach imported service", err)
		}
	}
	return imported, nil
}

func (s *DataSourceService) serviceType(dataSource *model.DataSource) (string, *serviceerror.ServiceError) {
	if dataSource.ServiceID == nil {
		return "", nil
	}
	service, svcErr := s.services.GetService(*dataSource.ServiceID)
	if svcErr != nil {
		return "", svcErr
	}
	return service.Type, nil
}

// uniqueName returns the requested name, or the first free default name when it is blank.
// exceptID is the data source being renamed.
func (s *DataSourceService) uniqueName(pageID int64, requested string, exceptID int64) (string,
	*serviceerror.ServiceError) {
	dataSources, svcErr := s.GetDataSources(pageID)
	if svcErr != nil {
		return "", svcErr
	}
	taken := make(map[string]bool, len(dataSources))
	for _, dataSource := range dataSources {
		if dataSource.ID != exceptID {
			taken[dataSource.Name] = true
		}
	}

	name := strings.TrimSpace(requested)
	if name != "" {
		if taken[name] {
			return "", serviceerror.CustomServiceError(constants.ErrorDataSourceNameNotUnique,
				fmt.Sprintf("The data source name '%s' is already used on the page.", name))
		}
		return name, nil
	}

	name = defaultName
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s %d", defaultName, i)
	}
	return name, nil
}

func (s *DataSourceService) placementError(err error, message string) *serviceerror.ServiceError {
	switch {
	case errors.Is(err, orderconstants.ErrParentNotFound):
		return &constants.ErrorPageNotFound
	case errors.Is(err, orderconstants.ErrNotInSameParent):
		return &constants.ErrorDataSourceNotInSamePage
	case errors.Is(err, orderconstants.ErrBeforeIsSelf):
		return serviceerror.CustomServiceError(constants.ErrorDataSourceNotInSamePage,
			"A data source cannot be positioned before itself.")
	}
	return s.internalError(message, err)
}

func (s *DataSourceService) notify(signalType signal.SignalType, pageID int64, actor string, ids ...int64) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(signal.NewSignal(signalType, model.EntityType, pageID, actor, ids...))
}

func (s *DataSourceService) internalError(message string, err error) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Error(message, log.Error(err))
	return &constants.ErrorInternalServerError
}
