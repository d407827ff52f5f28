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

package servicetype

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/asgardeo/forge/internal/dataservice/constants"
	"github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/importexport"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/log"
	tableconstants "github.com/asgardeo/forge/internal/table/constants"
	tablemodel "github.com/asgardeo/forge/internal/table/model"
)

const loggerComponentName = "ServiceType"

var fieldPathPattern = regexp.MustCompile(`^field_(\d+)$`)

// tableServiceType holds the behaviour shared by the services running against a local table.
type tableServiceType struct {
	deps     Dependencies
	typeName string
}

func improperlyConfigured(format string, args ...interface{}) *serviceerror.ServiceError {
	return serviceerror.CustomServiceError(constants.ErrorServiceImproperlyConfigured, fmt.Sprintf(format, args...))
}

func invalidRequest(format string, args ...interface{}) *serviceerror.ServiceError {
	return serviceerror.CustomServiceError(constants.ErrorInvalidRequestFormat, fmt.Sprintf(format, args...))
}

func (t *tableServiceType) internalError(message string, err error) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Error(message, log.String("type", t.typeName), log.Error(err))
	return &constants.ErrorInternalServerError
}

func (t *tableServiceType) Type() string {
	return t.typeName
}

func (t *tableServiceType) PrepareValues(values *model.ServiceValues) *serviceerror.ServiceError {
	if id := values.TableID.ID; values.TableID.Set && id != nil {
		if _, err := t.deps.RowStore.GetTable(*id); err != nil {
			if errors.Is(err, tableconstants.ErrTableNotFound) {
				return invalidRequest("The table with ID %d does not exist.", *id)
			}
			return t.internalError("Failed to get table", err)
		}
	}
	if id := values.ViewID.ID; values.ViewID.Set && id != nil {
		if _, err := t.deps.RowStore.GetView(*id); err != nil {
			if errors.Is(err, tableconstants.ErrViewNotFound) {
				return invalidRequest("The view with ID %d does not exist.", *id)
			}
			return t.internalError("Failed to get view", err)
		}
	}
	if id := values.IntegrationID.ID; values.IntegrationID.Set && id != nil {
		if _, err := t.deps.Integrations.GetIntegration(*id); err != nil {
			if errors.Is(err, constants.ErrIntegrationNotFound) {
				return invalidRequest("The integration with ID %d does not exist.", *id)
			}
			return t.internalError("Failed to get integration", err)
		}
	}
	if values.FilterType != nil && !validFilterType(*values.FilterType) {
		return invalidRequest("The filter type %s is not supported.", *values.FilterType)
	}
	return nil
}

// PrepareFieldMappings ignores field mappings. Only writing services use them.
func (t *tableServiceType) PrepareFieldMappings(_ *tablemodel.Table,
	_ []model.FieldMappingValues) ([]model.FieldMapping, *serviceerror.ServiceError) {
	return nil, nil
}

// ResolveServiceFormulas loads the table, view and integration of the service and resolves the
// row id, the search query and the filter values.
func (t *tableServiceType) ResolveServiceFormulas(service *model.Service,
	ctx formula.ContextInterface) (*model.DispatchValues, *serviceerror.ServiceError) {
	values, svcErr := t.validateConfig(service)
	if svcErr != nil {
		return nil, svcErr
	}

	rowID, ok, err := t.deps.Resolver.ResolveInteger("row_id", service.RowID, ctx)
	if err != nil {
		return nil, improperlyConfigured("%s", err.Error())
	}
	values.RowID, values.HasRowID = rowID, ok

	if strings.TrimSpace(service.SearchQuery) != "" {
		search, err := t.deps.Resolver.ResolveString("search_query", service.SearchQuery, ctx)
		if err != nil {
			return nil, improperlyConfigured("%s", err.Error())
		}
		values.SearchQuery = search
	}

	values.Filters = make([]tablemodel.Filter, 0, len(service.Filters))
	for _, filter := range service.Filters {
		value := filter.Value
		if filter.ValueIsFormula {
			resolved, err := t.deps.Resolver.ResolveString("filter", filter.Value, ctx)
			if err != nil {
				return nil, improperlyConfigured("%s", err.Error())
			}
			value = resolved
		}
		values.Filters = append(values.Filters, tablemodel.Filter{
			FieldID: filter.FieldID,
			Type:    filter.Type,
			Value:   value,
		})
	}
	return values, nil
}

// validateConfig returns the dispatch values holding the table, view and integration of the
// service, or the reason the service cannot run.
func (t *tableServiceType) validateConfig(service *model.Service) (*model.DispatchValues,
	*serviceerror.ServiceError) {
	if service.TableID == nil {
		return nil, improperlyConfigured("The table property is missing.")
	}
	if service.IntegrationID == nil {
		return nil, improperlyConfigured("The integration property is missing.")
	}

	integration, err := t.deps.Integrations.GetIntegration(*service.IntegrationID)
	if err != nil {
		if errors.Is(err, constants.ErrIntegrationNotFound) {
			return nil, improperlyConfigured("The integration with ID %d does not exist.", *service.IntegrationID)
		}
		return nil, t.internalError("Failed to get integration", err)
	}
	if integration.Type != model.IntegrationTypeLocalTable {
		return nil, improperlyConfigured("The integration type %s is not supported.", integration.Type)
	}

	tbl, err := t.deps.RowStore.GetTable(*service.TableID)
	if err != nil {
		if errors.Is(err, tableconstants.ErrTableNotFound) {
			return nil, improperlyConfigured("The table with ID %d does not exist.", *service.TableID)
		}
		return nil, t.internalError("Failed to get table", err)
	}

	values := &model.DispatchValues{Table: tbl, Integration: integration}
	if service.ViewID != nil {
		view, err := t.deps.RowStore.GetView(*service.ViewID)
		if err != nil {
			if errors.Is(err, tableconstants.ErrViewNotFound) {
				return nil, improperlyConfigured("The view with ID %d does not exist.", *service.ViewID)
			}
			return nil, t.internalError("Failed to get view", err)
		}
		if view.TableID != tbl.ID {
			return nil, improperlyConfigured("The view with ID %d does not belong to the table.", view.ID)
		}
		values.View = view
	}
	return values, nil
}

// DispatchTransform projects the fetched row onto its id, its order and its field values.
func (t *tableServiceType) DispatchTransform(data *model.DispatchData) model.Payload {
	payload := model.Payload{
		"id":    data.Row.ID,
		"order": t.deps.Allocator.Format(data.Row.Order),
	}
	for _, field := range data.Table.Fields {
		fieldType, err := t.deps.FieldTypes.Get(field.Type)
		if err != nil {
			continue
		}
		payload[field.DBColumn()] = fieldType.Serialize(field, data.Row.Values[field.DBColumn()])
	}
	return payload
}

func (t *tableServiceType) ExportSerialized(service *model.Service) model.SerializedService {
	filters := make([]model.SerializedFilter, 0, len(service.Filters))
	for _, filter := range service.Filters {
		filters = append(filters, model.SerializedFilter{
			FieldID:        filter.FieldID,
			Type:           filter.Type,
			Value:          filter.Value,
			ValueIsFormula: filter.ValueIsFormula,
		})
	}

	return model.SerializedService{
		ID:            service.ID,
		Type:          t.typeName,
		RowID:         service.RowID,
		ViewID:        service.ViewID,
		TableID:       service.TableID,
		IntegrationID: service.IntegrationID,
		SearchQuery:   service.SearchQuery,
		FilterType:    service.FilterType,
		Filters:       filters,
	}
}

// ImportSerialized builds a new service from its exported form. Identifiers go through the
// mapping and every formula through importFormula.
func (t *tableServiceType) ImportSerialized(serialized model.SerializedService, mapping importexport.IDMapping,
	importFormula importexport.FormulaImportFunc) *model.Service {
	importFormula = orIdentity(importFormula)

	service := &model.Service{
		Type:          t.typeName,
		IntegrationID: mapping.GetOptional(importexport.CategoryIntegrations, serialized.IntegrationID),
		TableID:       mapping.GetOptional(importexport.CategoryDatabaseTables, serialized.TableID),
		ViewID:        mapping.GetOptional(importexport.CategoryDatabaseViews, serialized.ViewID),
		RowID:         importFormula(serialized.RowID, mapping),
		SearchQuery:   importFormula(serialized.SearchQuery, mapping),
		FilterType:    serialized.FilterType,
		Filters:       make([]model.ServiceFilter, 0, len(serialized.Filters)),
		FieldMappings: []model.FieldMapping{},
	}
	for i, filter := range serialized.Filters {
		value := filter.Value
		if filter.ValueIsFormula {
			value = importFormula(value, mapping)
		}
		service.Filters = append(service.Filters, model.ServiceFilter{
			FieldID:        mapping.Get(importexport.CategoryDatabaseFields, filter.FieldID),
			Type:           filter.Type,
			Value:          value,
			ValueIsFormula: filter.ValueIsFormula,
			Order:          i,
		})
	}
	return service
}

// ImportPath remaps the field referenced by the first segment of a row path.
func (t *tableServiceType) ImportPath(path []string, mapping importexport.IDMapping) []string {
	imported := append([]string(nil), path...)
	if len(imported) == 0 {
		return imported
	}
	match := fieldPathPattern.FindStringSubmatch(imported[0])
	if match == nil {
		return imported
	}
	fieldID, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return imported
	}
	imported[0] = fmt.Sprintf("field_%d", mapping.Get(importexport.CategoryDatabaseFields, fieldID))
	return imported
}

func orIdentity(importFormula importexport.FormulaImportFunc) importexport.FormulaImportFunc {
	if importFormula != nil {
		return importFormula
	}
	return func(src string, _ importexport.IDMapping) string { return src }
}

func validFilterType(filterType string) bool {
	return strings.EqualFold(filterType, tablemodel.FilterTypeAnd) || strings.EqualFold(filterType, tablemodel.FilterTypeOr)
}
