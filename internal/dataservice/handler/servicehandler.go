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

// Package handler orchestrates the lifecycle and the dispatch of data services.
package handler

import (
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/dataservice/constants"
	"github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/dataservice/servicetype"
	"github.com/asgardeo/forge/internal/dataservice/store"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/importexport"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
	"github.com/asgardeo/forge/internal/table"
	tablemodel "github.com/asgardeo/forge/internal/table/model"
)

const (
	loggerComponentName = "ServiceHandler"
	payloadLogLength    = 240
)

// ServiceHandlerInterface defines the operations on data services.
type ServiceHandlerInterface interface {
	CreateIntegration(applicationID int64, name, authorizedUser string) (*model.Integration,
		*serviceerror.ServiceError)
	GetServiceType(name string) (servicetype.ServiceTypeInterface, *serviceerror.ServiceError)
	CreateService(serviceType string, values *model.ServiceValues) (*model.Service, *serviceerror.ServiceError)
	GetService(serviceID int64) (*model.Service, *serviceerror.ServiceError)
	UpdateService(serviceID int64, values *model.ServiceValues) (*model.Service, *serviceerror.ServiceError)
	DeleteService(serviceID int64) *serviceerror.ServiceError
	DispatchService(service *model.Service, ctx formula.ContextInterface) (*model.DispatchResult,
		*serviceerror.ServiceError)
	ExportService(service *model.Service) (model.SerializedService, *serviceerror.ServiceError)
	ImportService(serialized model.SerializedService, mapping importexport.IDMapping,
		importFormula importexport.FormulaImportFunc) (*model.Service, *serviceerror.ServiceError)
}

// ServiceHandler is the default implementation of ServiceHandlerInterface.
type ServiceHandler struct {
	store    store.DataServiceStoreInterface
	registry *servicetype.Registry
	rowStore table.RowStoreInterface
}

// NewServiceHandler creates a new instance of ServiceHandler.
func NewServiceHandler(store store.DataServiceStoreInterface, registry *servicetype.Registry,
	rowStore table.RowStoreInterface) *ServiceHandler {
	return &ServiceHandler{
		store:    store,
		registry: registry,
		rowStore: rowStore,
	}
}

// CreateIntegration creates a local table integration for an application.
func (h *ServiceHandler) CreateIntegration(applicationID int64, name,
	authorizedUser string) (*model.Integration, *serviceerror.ServiceError) {
	integration, err := h.store.CreateIntegration(model.Integration{
		ApplicationID:  applicationID,
		Type:           model.IntegrationTypeLocalTable,
		Name:           name,
		AuthorizedUser: authorizedUser,
	})
	if err != nil {
		return nil, h.internalError("Failed to create integration", err)
	}
	return integration, nil
}

// GetServiceType returns the service type with the given name.
func (h *ServiceHandler) GetServiceType(name string) (servicetype.ServiceTypeInterface, *serviceerror.ServiceError) {
	serviceType, err := h.registry.Get(name)
	if err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorUnknownServiceType, err.Error())
	}
	return serviceType, nil
}

// CreateService validates the values and creates a service of the given type.
func (h *ServiceHandler) CreateService(serviceType string,
	values *model.ServiceValues) (*model.Service, *serviceerror.ServiceError) {
	st, svcErr := h.GetServiceType(serviceType)
	if svcErr != nil {
		return nil, svcErr
	}
	if values == nil {
		values = &model.ServiceValues{}
	}
	if svcErr := st.PrepareValues(values); svcErr != nil {
		return nil, svcErr
	}

	service := &model.Service{Type: st.Type(), FilterType: tablemodel.FilterTypeAnd}
	applyValues(service, values)

	if values.FieldMappings != nil {
		tbl, svcErr := h.serviceTable(service)
		if svcErr != nil {
			return nil, svcErr
		}
		mappings, svcErr := st.PrepareFieldMappings(tbl, values.FieldMappings)
		if svcErr != nil {
			return nil, svcErr
		}
		service.FieldMappings = mappings
	}

	created, err := h.store.CreateService(service)
	if err != nil {
		return nil, h.internalError("Failed to create service", err)
	}
	return created, nil
}

// GetService returns a service.
func (h *ServiceHandler) GetService(serviceID int64) (*model.Service, *serviceerror.ServiceError) {
	service, err := h.store.GetService(serviceID)
	if err != nil {
		if errors.Is(err, constants.ErrServiceNotFound) {
			return nil, &constants.ErrorServiceNotFound
		}
		return nil, h.internalError("Failed to get service", err)
	}
	return service, nil
}

// UpdateService updates a service. Changing the table resets the field mappings. Field mappings
// provided with the update are validated once the service is saved.
func (h *ServiceHandler) UpdateService(serviceID int64,
	values *model.ServiceValues) (*model.Service, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	service, svcErr := h.GetService(serviceID)
	if svcErr != nil {
		return nil, svcErr
	}
	st, svcErr := h.GetServiceType(service.Type)
	if svcErr != nil {
		return nil, svcErr
	}
	if values == nil {
		values = &model.ServiceValues{}
	}
	if svcErr := st.PrepareValues(values); svcErr != nil {
		return nil, svcErr
	}

	previousTable := service.TableID
	applyValues(service, values)
	if !sameID(previousTable, service.TableID) && len(service.FieldMappings) > 0 {
		logger.Debug("Table changed, resetting field mappings", log.Int64("serviceId", serviceID))
		if _, err := h.store.ReplaceFieldMappings(serviceID, nil); err != nil {
			return nil, h.internalError("Failed to reset field mappings", err)
		}
		service.FieldMappings = []model.FieldMapping{}
	}
	if err := h.store.UpdateService(service); err != nil {
		return nil, h.internalError("Failed to update service", err)
	}

	if values.FieldMappings != nil {
		tbl, svcErr := h.serviceTable(service)
		if svcErr != nil {
			return nil, svcErr
		}
		mappings, svcErr := st.PrepareFieldMappings(tbl, values.FieldMappings)
		if svcErr != nil {
			return nil, svcErr
		}
		if mappings != nil {
			replaced, err := h.store.ReplaceFieldMappings(serviceID, mappings)
			if err != nil {
				return nil, h.internalError("Failed to update field mappings", err)
			}
			service.FieldMappings = replaced
		}
	}
	return service, nil
}

// DeleteService deletes a service.
func (h *ServiceHandler) DeleteService(serviceID int64) *serviceerror.ServiceError {
	if err := h.store.DeleteService(serviceID); err != nil {
		if errors.Is(err, constants.ErrServiceNotFound) {
			return &constants.ErrorServiceNotFound
		}
		return h.internalError("Failed to delete service", err)
	}
	return nil
}

// DispatchService resolves the formulas of the service, runs its row operation and transforms
// the result. The returned stage is the last stage reached.
func (h *ServiceHandler) DispatchService(service *model.Service,
	ctx formula.ContextInterface) (*model.DispatchResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.Int64("serviceId", service.ID))

	st, svcErr := h.GetServiceType(service.Type)
	if svcErr != nil {
		return nil, svcErr
	}

	result := &model.DispatchResult{}
	fail := func(svcErr *serviceerror.ServiceError) (*model.DispatchResult, *serviceerror.ServiceError) {
		logger.Debug("Service dispatch failed", log.String("stage", string(result.Stage)),
			log.String("code", svcErr.Code), log.String("description", svcErr.ErrorDescription))
		return result, svcErr
	}

	values, svcErr := st.ResolveServiceFormulas(service, ctx)
	if svcErr != nil {
		return fail(svcErr)
	}
	result.Stage = model.StageFormulasResolved

	data, svcErr := st.DispatchData(service, values, ctx)
	if svcErr != nil {
		return fail(svcErr)
	}
	result.Stage = model.StageDataFetched

	result.Payload = st.DispatchTransform(data)
	result.Stage = model.StageTransformed

	if logger.IsDebugEnabled() {
		logger.Debug("Service dispatched", log.String("payload",
			utils.TruncateMiddle(fmt.Sprintf("%v", map[string]interface{}(result.Payload)), payloadLogLength, "...")))
	}
	return result, nil
}

// ExportService returns the serialized form of a service.
func (h *ServiceHandler) ExportService(service *model.Service) (model.SerializedService,
	*serviceerror.ServiceError) {
	st, svcErr := h.GetServiceType(service.Type)
	if svcErr != nil {
		return model.SerializedService{}, svcErr
	}
	return st.ExportSerialized(service), nil
}

// ImportService creates a service from its serialized form and records the new id in the
// services category of the mapping.
func (h *ServiceHandler) ImportService(serialized model.SerializedService, mapping importexport.IDMapping,
	importFormula importexport.FormulaImportFunc) (*model.Service, *serviceerror.ServiceError) {
	st, svcErr := h.GetServiceType(serialized.Type)
	if svcErr != nil {
		return nil, svcErr
	}

	created, err := h.store.CreateService(st.ImportSerialized(serialized, mapping, importFormula))
	if err != nil {
		return nil, h.internalError("Failed to import service", err)
	}
	mapping.Set(importexport.CategoryServices, serialized.ID, created.ID)
	return created, nil
}

func (h *ServiceHandler) serviceTable(service *model.Service) (*tablemodel.Table, *serviceerror.ServiceError) {
	if service.TableID == nil {
		return nil, nil
	}
	tbl, err := h.rowStore.GetTable(*service.TableID)
	if err != nil {
		return nil, h.internalError("Failed to get table", err)
	}
	return tbl, nil
}

func (h *ServiceHandler) internalError(message string, err error) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Error(message, log.Error(err))
	return &constants.ErrorInternalServerError
}

func applyValues(service *model.Service, values *model.ServiceValues) {
	if values.IntegrationID.Set {
		service.IntegrationID = values.IntegrationID.ID
	}
	if values.TableID.Set {
		service.TableID = values.TableID.ID
	}
	if values.ViewID.Set {
		service.ViewID = values.ViewID.ID
	}
	if values.RowID != nil {
		service.RowID = *values.RowID
	}
	if values.SearchQuery != nil {
		service.SearchQuery = *values.SearchQuery
	}
	if values.FilterType != nil {
		service.FilterType = *values.FilterType
	}
	if values.Filters != nil {
		service.Filters = values.Filters
	}
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
