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

package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	dsconstants "github.com/asgardeo/forge/internal/dataservice/constants"
	"github.com/asgardeo/forge/internal/dataservice/handler"
	servicemodel "github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/dataservice/servicetype"
	servicestore "github.com/asgardeo/forge/internal/dataservice/store"
	"github.com/asgardeo/forge/internal/datasource/constants"
	"github.com/asgardeo/forge/internal/datasource/model"
	"github.com/asgardeo/forge/internal/datasource/store"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/importexport"
	"github.com/asgardeo/forge/internal/order"
	orderservice "github.com/asgardeo/forge/internal/order/service"
	orderstore "github.com/asgardeo/forge/internal/order/store"
	"github.com/asgardeo/forge/internal/system/database/dbtest"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/signal"
	"github.com/asgardeo/forge/internal/table"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	tablemodel "github.com/asgardeo/forge/internal/table/model"
	tablestore "github.com/asgardeo/forge/internal/table/store"
	"github.com/asgardeo/forge/tests/mocks/signalmock"
)

type DataSourceServiceTestSuite struct {
	suite.Suite
	service     *DataSourceService
	services    *handler.ServiceHandler
	rows        table.RowStoreInterface
	notifier    *signalmock.MockNotifier
	integration *servicemodel.Integration
	people      *tablemodel.Table
	ada         *tablemodel.Row
	blaise      *tablemodel.Row
}

func TestDataSourceServiceSuite(t *testing.T) {
	suite.Run(t, new(DataSourceServiceTestSuite))
}

func (suite *DataSourceServiceTestSuite) SetupTest() {
	provider := dbtest.NewProvider(suite.T())
	dbtest.MustExec(suite.T(), provider.Client, `INSERT INTO BUILDER_APPLICATION (APPLICATION_ID, NAME) VALUES (1, 'app')`)
	dbtest.MustExec(suite.T(), provider.Client,
		`INSERT INTO BUILDER_PAGE (PAGE_ID, APPLICATION_ID, NAME, PATH, ORDER_VALUE) VALUES (1, 1, 'home', '/', '1')`)
	dbtest.MustExec(suite.T(), provider.Client,
		`INSERT INTO BUILDER_PAGE (PAGE_ID, APPLICATION_ID, NAME, PATH, ORDER_VALUE) VALUES (2, 1, 'copy', '/c', '2')`)

	allocator := order.NewAllocator(20)
	fieldTypes := fieldtype.NewRegistry()
	suite.rows = tablestore.NewRowStore(provider, allocator, fieldTypes)
	serviceStore := servicestore.NewDataServiceStore(provider)
	suite.services = handler.NewServiceHandler(serviceStore, servicetype.NewDefaultRegistry(servicetype.Dependencies{
		RowStore:     suite.rows,
		Integrations: serviceStore,
		Resolver:     formula.NewResolver(formula.NewEvaluator()),
		Allocator:    allocator,
		FieldTypes:   fieldTypes,
	}), suite.rows)
	suite.notifier = signalmock.NewMockNotifier()
	orders := orderservice.NewOrderService(orderstore.NewOrderStore(provider, allocator), allocator, suite.notifier)
	suite.service = NewDataSourceService(store.NewDataSourceStore(provider, allocator), orders, suite.services,
		suite.notifier)

	integration, svcErr := suite.services.CreateIntegration(1, "Local", "ada")
	suite.Require().Nil(svcErr)
	suite.integration = integration

	tbl, err := suite.rows.CreateTable("People")
	suite.Require().NoError(err)
	_, err = suite.rows.CreateField(tbl.ID, tablemodel.Field{Name: "Name", Type: fieldtype.TypeText, Primary: true})
	suite.Require().NoError(err)
	suite.people, err = suite.rows.GetTable(tbl.ID)
	suite.Require().NoError(err)
	column := suite.people.Fields[0].DBColumn()
	suite.ada, err = suite.rows.CreateRow(suite.people, map[string]interface{}{column: "Ada"})
	suite.Require().NoError(err)
	suite.blaise, err = suite.rows.CreateRow(suite.people, map[string]interface{}{column: "Blaise"})
	suite.Require().NoError(err)
}

func stringPtr(v string) *string {
	return &v
}

func (suite *DataSourceServiceTestSuite) getRowRequest(name, rowID, search string) model.CreateDataSourceRequest {
	values := &servicemodel.ServiceValues{
		IntegrationID: servicemodel.OptionalID{Set: true, ID: &suite.integration.ID},
		TableID:       servicemodel.OptionalID{Set: true, ID: &suite.people.ID},
		RowID:         stringPtr(rowID),
	}
	if search != "" {
		values.SearchQuery = stringPtr(search)
	}
	return model.CreateDataSourceRequest{Name: name, ServiceType: servicetype.TypeGetRow, ServiceValues: values}
}

func (suite *DataSourceServiceTestSuite) create(pageID int64, request model.CreateDataSourceRequest) *model.DataSource {
	dataSource, svcErr := suite.service.CreateDataSource(pageID, request, "ada")
	suite.Require().Nil(svcErr)
	return dataSource
}

func (suite *DataSourceServiceTestSuite) names(pageID int64) []string {
	dataSources, svcErr := suite.service.GetDataSources(pageID)
	suite.Require().Nil(svcErr)
	names := make([]string, 0, len(dataSources))
	for _, dataSource := range dataSources {
		names = append(names, dataSource.Name)
	}
	return names
}

func (suite *DataSourceServiceTestSuite) TestCreateDataSourceNamesAndOrders() {
	first := suite.create(1, model.CreateDataSourceRequest{})
	second := suite.create(1, model.CreateDataSourceRequest{Name: "  "})
	suite.Equal("Data source", first.Name)
	suite.Equal("Data source 2", second.Name)
	suite.Equal("1.00000000000000000000", first.Order)
	suite.Equal("2.00000000000000000000", second.Order)
	suite.Nil(first.ServiceID)

	front := suite.create(1, model.CreateDataSourceRequest{Name: "Front", BeforeID: &first.ID})
	suite.Equal("0.50000000000000000000", front.Order)
	suite.Equal([]string{"Front", "Data source", "Data source 2"}, suite.names(1))

	_, svcErr := suite.service.CreateDataSource(1, model.CreateDataSourceRequest{Name: "Front"}, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorDataSourceNameNotUnique))

	created := suite.notifier.OfType(signal.ItemCreated)
	suite.Len(created, 3)
	suite.Equal(model.EntityType, created[0].EntityType)
	suite.Equal(int64(1), created[0].ParentID)
}

func (suite *DataSourceServiceTestSuite) TestCreateDataSourceOnMissingPage() {
	_, svcErr := suite.service.CreateDataSource(404, suite.getRowRequest("People", "", ""), "ada")
	suite.Require().NotNil(svcErr)
	suite.True(serviceerror.Is(svcErr, constants.ErrorPageNotFound))

	_, svcErr = suite.services.GetService(1)
	suite.True(serviceerror.Is(svcErr, dsconstants.ErrorServiceNotFound))
}

func (suite *DataSourceServiceTestSuite) TestCreateDataSourceBeforeOtherPage() {
	other := suite.create(2, model.CreateDataSourceRequest{})

	_, svcErr := suite.service.CreateDataSource(1, model.CreateDataSourceRequest{BeforeID: &other.ID}, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorDataSourceNotInSamePage))
}

func (suite *DataSourceServiceTestSuite) TestMoveDataSource() {
	first := suite.create(1, model.CreateDataSourceRequest{Name: "A"})
	second := suite.create(1, model.CreateDataSourceRequest{Name: "B"})
	other := suite.create(2, model.CreateDataSourceRequest{Name: "C"})
	suite.notifier.Reset()

	moved, svcErr := suite.service.MoveDataSource(second.ID, &first.ID, "ada")
	suite.Require().Nil(svcErr)
	suite.Equal("0.50000000000000000000", moved.Order)
	suite.Equal([]string{"B", "A"}, suite.names(1))
	suite.Len(suite.notifier.OfType(signal.ItemUpdated), 1)

	_, svcErr = suite.service.MoveDataSource(second.ID, nil, "ada")
	suite.Require().Nil(svcErr)
	suite.Equal([]string{"A", "B"}, suite.names(1))

	_, svcErr = suite.service.MoveDataSource(first.ID, &other.ID, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorDataSourceNotInSamePage))
	_, svcErr = suite.service.MoveDataSource(first.ID, &first.ID, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorDataSourceNotInSamePage))
	_, svcErr = suite.service.MoveDataSource(404, nil, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorDataSourceNotFound))
}

func (suite *DataSourceServiceTestSuite) TestDispatchPageDataSources() {
	byParam := suite.create(1, suite.getRowRequest("Person", "get('page_parameter.id')", ""))
	bySearch := suite.create(1, suite.getRowRequest("Same person", "",
		fmt.Sprintf("get('data_source.%d.%s')", byParam.ID, suite.people.Fields[0].DBColumn())))
	empty := suite.create(1, model.CreateDataSourceRequest{Name: "Empty"})

	results, svcErr := suite.service.DispatchPageDataSources(1, map[string]interface{}{"id": suite.blaise.ID})
	suite.Require().Nil(svcErr)
	suite.Len(results, 3)
	suite.Nil(results[byParam.ID].Error)
	suite.Equal(suite.blaise.ID, results[byParam.ID].Payload["id"])
	suite.Nil(results[bySearch.ID].Error)
	suite.Equal(suite.blaise.ID, results[bySearch.ID].Payload["id"])
	suite.True(serviceerror.Is(results[empty.ID].Error, constants.ErrorDataSourceImproperlyConfigured))

	payload, svcErr := suite.service.DispatchDataSource(byParam.ID, map[string]interface{}{"id": suite.ada.ID})
	suite.Require().Nil(svcErr)
	suite.Equal("Ada", payload[suite.people.Fields[0].DBColumn()])

	_, svcErr = suite.service.DispatchDataSource(byParam.ID, map[string]interface{}{"id": suite.blaise.ID + 100})
	suite.True(serviceerror.Is(svcErr, dsconstants.ErrorDoesNotExist))
}

func (suite *DataSourceServiceTestSuite) TestDispatchRejectsCycles() {
	first := suite.create(1, model.CreateDataSourceRequest{Name: "First"})
	second := suite.create(1, suite.getRowRequest("Second", fmt.Sprintf("get('data_source.%d.id')", first.ID), ""))
	_, svcErr := suite.service.UpdateDataSource(first.ID, model.UpdateDataSourceRequest{
		ServiceType: stringPtr(servicetype.TypeGetRow),
		ServiceValues: suite.getRowRequest("", fmt.Sprintf("get('data_source.%d.id')", second.ID), "").
			ServiceValues,
	}, "ada")
	suite.Require().Nil(svcErr)

	_, svcErr = suite.service.DispatchDataSource(first.ID, nil)
	suite.Require().NotNil(svcErr)
	suite.True(serviceerror.Is(svcErr, dsconstants.ErrorServiceImproperlyConfigured))
	suite.Contains(svcErr.ErrorDescription, "depends on itself")
}

func (suite *DataSourceServiceTestSuite) TestDispatchDataSourceOfAnotherPage() {
	other := suite.create(2, suite.getRowRequest("Other", "", ""))
	reference := suite.create(1, suite.getRowRequest("Reference", fmt.Sprintf("get('data_source.%d.id')", other.ID), ""))

	_, svcErr := suite.service.DispatchDataSource(reference.ID, nil)
	suite.Require().NotNil(svcErr)
	suite.Contains(svcErr.ErrorDescription, fmt.Sprintf("The data source with ID %d is not on the page.", other.ID))
}

func (suite *DataSourceServiceTestSuite) TestUpdateDataSource() {
	dataSource := suite.create(1, suite.getRowRequest("People", "", ""))
	suite.create(1, model.CreateDataSourceRequest{Name: "Taken"})
	oldServiceID := *dataSource.ServiceID

	_, svcErr := suite.service.UpdateDataSource(dataSource.ID, model.UpdateDataSourceRequest{Name: stringPtr("Taken")},
		"ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorDataSourceNameNotUnique))

	updated, svcErr := suite.service.UpdateDataSource(dataSource.ID, model.UpdateDataSourceRequest{
		Name:          stringPtr("Person"),
		ServiceValues: &servicemodel.ServiceValues{RowID: stringPtr("get('page_parameter.id')")},
	}, "ada")
	suite.Require().Nil(svcErr)
	suite.Equal("Person", updated.Name)
	suite.Equal(oldServiceID, *updated.ServiceID)
	service, svcErr := suite.services.GetService(oldServiceID)
	suite.Require().Nil(svcErr)
	suite.Equal("get('page_parameter.id')", service.RowID)

	updated, svcErr = suite.service.UpdateDataSource(dataSource.ID, model.UpdateDataSourceRequest{
		ServiceType: stringPtr(servicetype.TypeUpsertRow),
	}, "ada")
	suite.Require().Nil(svcErr)
	suite.NotEqual(oldServiceID, *updated.ServiceID)
	_, svcErr = suite.services.GetService(oldServiceID)
	suite.True(serviceerror.Is(svcErr, dsconstants.ErrorServiceNotFound))

	replacedID := *updated.ServiceID
	updated, svcErr = suite.service.UpdateDataSource(dataSource.ID, model.UpdateDataSourceRequest{
		ServiceType: stringPtr(""),
	}, "ada")
	suite.Require().Nil(svcErr)
	suite.Nil(updated.ServiceID)
	_, svcErr = suite.services.GetService(replacedID)
	suite.True(serviceerror.Is(svcErr, dsconstants.ErrorServiceNotFound))

	found, svcErr := suite.service.GetDataSource(dataSource.ID)
	suite.Require().Nil(svcErr)
	suite.Equal(updated, found)
}

func (suite *DataSourceServiceTestSuite) TestDeleteDataSource() {
	dataSource := suite.create(1, suite.getRowRequest("People", "", ""))

	suite.Nil(suite.service.DeleteDataSource(dataSource.ID, "ada"))
	_, svcErr := suite.service.GetDataSource(dataSource.ID)
	suite.True(serviceerror.Is(svcErr, constants.ErrorDataSourceNotFound))
	_, svcErr = suite.services.GetService(*dataSource.ServiceID)
	suite.True(serviceerror.Is(svcErr, dsconstants.ErrorServiceNotFound))
	suite.Len(suite.notifier.OfType(signal.ItemDeleted), 1)

	suite.True(serviceerror.Is(suite.service.DeleteDataSource(dataSource.ID, "ada"),
		constants.ErrorDataSourceNotFound))
}

func (suite *DataSourceServiceTestSuite) TestPathImporter() {
	withService := suite.create(1, suite.getRowRequest("People", "", ""))
	withoutService := suite.create(1, model.CreateDataSourceRequest{})

	importer, ok := suite.service.PathImporter(withService.ID)
	suite.Require().True(ok)
	mapping := importexport.IDMapping{importexport.CategoryDatabaseFields: {1: 5}}
	suite.Equal([]string{"field_5"}, importer.ImportPath([]string{"field_1"}, mapping))

	_, ok = suite.service.PathImporter(withoutService.ID)
	suite.False(ok)
	_, ok = suite.service.PathImporter(404)
	suite.False(ok)
}

func (suite *DataSourceServiceTestSuite) TestExportImportDataSources() {
	column := suite.people.Fields[0].DBColumn()
	person := suite.create(1, suite.getRowRequest("Person", "get('page_parameter.id')", ""))
	suite.create(1, suite.getRowRequest("Same person", "", fmt.Sprintf("get('data_source.%d.%s')", person.ID, column)))
	suite.create(1, model.CreateDataSourceRequest{Name: "Empty"})

	dataSources, svcErr := suite.service.GetDataSources(1)
	suite.Require().Nil(svcErr)
	serialized := make([]model.SerializedDataSource, 0, len(dataSources))
	for i := range dataSources {
		exported, svcErr := suite.service.ExportDataSource(&dataSources[i])
		suite.Require().Nil(svcErr)
		serialized = append(serialized, exported)
	}
	suite.Nil(serialized[2].Service)

	mapping := importexport.NewIDMapping()
	imported, svcErr := suite.service.ImportDataSources(2, serialized, mapping, "ada")
	suite.Require().Nil(svcErr)
	suite.Require().Len(imported, 3)
	suite.Equal([]string{"Person", "Same person", "Empty"}, suite.names(2))
	suite.Equal(imported[0].ID, mapping.Get(importexport.CategoryBuilderDataSources, person.ID))
	suite.Nil(imported[2].ServiceID)

	service, svcErr := suite.services.GetService(*imported[1].ServiceID)
	suite.Require().Nil(svcErr)
	suite.Equal(fmt.Sprintf("get('data_source.%d.%s')", imported[0].ID, column), service.SearchQuery)

	results, svcErr := suite.service.DispatchPageDataSources(2, map[string]interface{}{"id": suite.ada.ID})
	suite.Require().Nil(svcErr)
	suite.Equal(suite.ada.ID, results[imported[1].ID].Payload["id"])
}
