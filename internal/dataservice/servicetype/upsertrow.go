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

	"github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/importexport"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/log"
	tableconstants "github.com/asgardeo/forge/internal/table/constants"
	tablemodel "github.com/asgardeo/forge/internal/table/model"
)

// UpsertRowServiceType creates a row, or updates the row with the resolved id, from the values of
// the enabled field mappings.
type UpsertRowServiceType struct {
	tableServiceType
}

var _ ServiceTypeInterface = (*UpsertRowServiceType)(nil)

// NewUpsertRowServiceType creates a new instance of UpsertRowServiceType.
func NewUpsertRowServiceType(deps Dependencies) *UpsertRowServiceType {
	return &UpsertRowServiceType{tableServiceType{deps: deps, typeName: TypeUpsertRow}}
}

// PrepareFieldMappings requires every mapping to reference a field of the table.
func (t *UpsertRowServiceType) PrepareFieldMappings(tbl *tablemodel.Table,
	values []model.FieldMappingValues) ([]model.FieldMapping, *serviceerror.ServiceError) {
	mappings := make([]model.FieldMapping, 0, len(values))
	for _, value := range values {
		if value.FieldID == nil {
			return nil, invalidRequest("A field mapping must have a `field_id`.")
		}
		if tbl == nil {
			return nil, invalidRequest("The field with id %d does not exist.", *value.FieldID)
		}
		if _, ok := tbl.FieldByID(*value.FieldID); !ok {
			return nil, invalidRequest("The field with id %d does not exist.", *value.FieldID)
		}

		enabled := true
		if value.Enabled != nil {
			enabled = *value.Enabled
		}
		mappings = append(mappings, model.FieldMapping{FieldID: *value.FieldID, Value: value.Value, Enabled: enabled})
	}
	return mappings, nil
}

// ResolveServiceFormulas resolves the row id and the value of every enabled field mapping.
func (t *UpsertRowServiceType) ResolveServiceFormulas(service *model.Service,
	ctx formula.ContextInterface) (*model.DispatchValues, *serviceerror.ServiceError) {
	values, svcErr := t.tableServiceType.ResolveServiceFormulas(service, ctx)
	if svcErr != nil {
		return nil, svcErr
	}

	for _, mapping := range service.FieldMappings {
		if !mapping.Enabled {
			continue
		}
		slot := fmt.Sprintf("field_%d", mapping.FieldID)
		value, err := t.deps.Resolver.Resolve(slot, mapping.Value, ctx)
		if err != nil {
			return nil, improperlyConfigured("%s", err.Error())
		}
		values.Mappings = append(values.Mappings, model.ResolvedMapping{Mapping: mapping, Value: value})
	}
	return values, nil
}

// DispatchData validates every mapped value, then writes them in one row operation. Mappings of
// unknown or read-only fields are skipped.
func (t *UpsertRowServiceType) DispatchData(_ *model.Service, values *model.DispatchValues,
	_ formula.ContextInterface) (*model.DispatchData, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	prepared := make(map[string]interface{}, len(values.Mappings))
	for _, resolved := range values.Mappings {
		if !resolved.Mapping.Enabled {
			continue
		}
		field, ok := values.Table.FieldByID(resolved.Mapping.FieldID)
		if !ok {
			continue
		}
		fieldType, err := t.deps.FieldTypes.Get(field.Type)
		if err != nil {
			return nil, improperlyConfigured("%s", err.Error())
		}
		if fieldType.ReadOnly() {
			continue
		}

		value, err := fieldType.Prepare(*field, resolved.Value)
		if err != nil {
			return nil, improperlyConfigured("The result value of the formula is not valid for the field `%s (%s)`: %s",
				field.Name, field.DBColumn(), err.Error())
		}
		prepared[field.DBColumn()] = value
	}

	var row *tablemodel.Row
	var err error
	if values.HasRowID {
		if _, err = t.deps.RowStore.GetRow(values.Table, values.RowID); err == nil {
			row, err = t.deps.RowStore.UpdateRow(values.Table, values.RowID, prepared)
		}
	} else {
		row, err = t.deps.RowStore.CreateRow(values.Table, prepared)
	}
	if err != nil {
		if errors.Is(err, tableconstants.ErrRowNotFound) {
			return nil, improperlyConfigured("The row with id %d does not exist.", values.RowID)
		}
		return nil, t.internalError("Failed to write row", err)
	}

	logger.Debug("Row upserted", log.Int64("tableId", values.Table.ID), log.Int64("rowId", row.ID),
		log.Int("fields", len(prepared)))
	return &model.DispatchData{Table: values.Table, Row: row}, nil
}

// ExportSerialized adds the field mappings to the exported service.
func (t *UpsertRowServiceType) ExportSerialized(service *model.Service) model.SerializedService {
	serialized := t.tableServiceType.ExportSerialized(service)
	serialized.FieldMappings = make([]model.SerializedFieldMapping, 0, len(service.FieldMappings))
	for _, mapping := range service.FieldMappings {
		serialized.FieldMappings = append(serialized.FieldMappings, model.SerializedFieldMapping{
			FieldID: mapping.FieldID,
			Value:   mapping.Value,
			Enabled: mapping.Enabled,
		})
	}
	return serialized
}

// ImportSerialized imports the field mappings along with the service.
func (t *UpsertRowServiceType) ImportSerialized(serialized model.SerializedService, mapping importexport.IDMapping,
	importFormula importexport.FormulaImportFunc) *model.Service {
	importFormula = orIdentity(importFormula)

	service := t.tableServiceType.ImportSerialized(serialized, mapping, importFormula)
	for _, fieldMapping := range serialized.FieldMappings {
		service.FieldMappings = append(service.FieldMappings, model.FieldMapping{
			FieldID: mapping.Get(importexport.CategoryDatabaseFields, fieldMapping.FieldID),
			Value:   importFormula(fieldMapping.Value, mapping),
			Enabled: fieldMapping.Enabled,
		})
	}
	return service
}
