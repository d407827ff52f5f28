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

// Package servicetype provides the service types able to dispatch data services.
package servicetype

import (
	"fmt"
	"sort"
	"sync"

	"github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/dataservice/store"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/importexport"
	"github.com/asgardeo/forge/internal/order"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/table"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	tablemodel "github.com/asgardeo/forge/internal/table/model"
)

const (
	// TypeGetRow fetches one row of a local table.
	TypeGetRow = "local_table_get_row"
	// TypeUpsertRow creates or updates one row of a local table.
	TypeUpsertRow = "local_table_upsert_row"
)

// ServiceTypeInterface handles the services of one type.
type ServiceTypeInterface interface {
	importexport.PathImporter

	Type() string
	// PrepareValues checks that the referenced table, view and integration exist.
	PrepareValues(values *model.ServiceValues) *serviceerror.ServiceError
	// PrepareFieldMappings validates field mappings against the table of the service.
	PrepareFieldMappings(tbl *tablemodel.Table, values []model.FieldMappingValues) ([]model.FieldMapping,
		*serviceerror.ServiceError)

	ResolveServiceFormulas(service *model.Service, ctx formula.ContextInterface) (*model.DispatchValues,
		*serviceerror.ServiceError)
	DispatchData(service *model.Service, values *model.DispatchValues,
		ctx formula.ContextInterface) (*model.DispatchData, *serviceerror.ServiceError)
	DispatchTransform(data *model.DispatchData) model.Payload

	ExportSerialized(service *model.Service) model.SerializedService
	ImportSerialized(serialized model.SerializedService, mapping importexport.IDMapping,
		importFormula importexport.FormulaImportFunc) *model.Service
}

// Dependencies are the collaborators of the service types.
type Dependencies struct {
	RowStore     table.RowStoreInterface
	Integrations store.IntegrationReaderInterface
	Resolver     formula.ResolverInterface
	Allocator    *order.Allocator
	FieldTypes   *fieldtype.Registry
}

// Registry holds the service types by name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]ServiceTypeInterface
}

// NewRegistry creates a registry holding the given service types.
func NewRegistry(types ...ServiceTypeInterface) *Registry {
	r := &Registry{types: make(map[string]ServiceTypeInterface)}
	for _, serviceType := range types {
		r.Register(serviceType)
	}
	return r
}

// NewDefaultRegistry creates a registry holding the local table service types.
func NewDefaultRegistry(deps Dependencies) *Registry {
	return NewRegistry(NewGetRowServiceType(deps), NewUpsertRowServiceType(deps))
}

// Register adds or replaces a service type.
func (r *Registry) Register(serviceType ServiceTypeInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[serviceType.Type()] = serviceType
}

// Get returns the service type with the given name.
func (r *Registry) Get(name string) (ServiceTypeInterface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	serviceType, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown service type %q", name)
	}
	return serviceType, nil
}

// Names returns the registered service type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
