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
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	serviceconstants "github.com/asgardeo/forge/internal/dataservice/constants"
	"github.com/asgardeo/forge/internal/dataservice/handler"
	servicemodel "github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/dataservice/servicetype"
	servicestore "github.com/asgardeo/forge/internal/dataservice/store"
	dsmodel "github.com/asgardeo/forge/internal/datasource/model"
	dsservice "github.com/asgardeo/forge/internal/datasource/service"
	dsstore "github.com/asgardeo/forge/internal/datasource/store"
	"github.com/asgardeo/forge/internal/element/elementtype"
	elementmodel "github.com/asgardeo/forge/internal/element/model"
	elementservice "github.com/asgardeo/forge/internal/element/service"
	elementstore "github.com/asgardeo/forge/internal/element/store"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/importexport"
	"github.com/asgardeo/forge/internal/order"
	orderservice "github.com/asgardeo/forge/internal/order/service"
	orderstore "github.com/asgardeo/forge/internal/order/store"
	"github.com/asgardeo/forge/internal/page/constants"
	"github.com/asgardeo/forge/internal/page/model"
	"github.com/asgardeo/forge/internal/page/store"
	"github.com/asgardeo/forge/internal/system/cache"
	"github.com/asgardeo/forge/internal/system/database/client"
	"github.com/asgardeo/forge/internal/system/database/dbtest"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/signal"
	"github.com/asgardeo/forge/internal/system/utils"
	"github.com/asgardeo/forge/internal/table"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	tablemodel "github.com/asgardeo/forge/internal/table/model"
	tablestore "github.com/asgardeo/forge/internal/table/store"
	"github.com/asgardeo/forge/tests/mocks/signalmock"
)

type PageServiceTestSuite struct {
	suite.Suite
	dbClient    client.DBClientInterface
	service     *PageService
	dataSources *dsservice.DataSourceService
	elements    *elementservice.ElementService
	services    *handler.ServiceHandler
	rows        table.RowStoreInterface
	notifier    *signalmock.MockNotifier
	integration *servicemodel.Integration
	people      *tablemodel.Table
	ada         *tablemodel.Row
}

func TestPageServiceSuite(t *testing.T) {
	suite.Run(t, new(PageServiceTestSuite))
}

func (suite *PageServiceTestSuite) SetupTest() {
	provider := dbtest.NewProvider(suite.T())
	suite.dbClient = provider.Client
	dbtest.MustExec(suite.T(), provider.Client, `INSERT INTO BUILDER_APPLICATION (APPLICATION_ID, NAME) VALUES (1, 'app')`)

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
	suite.dataSources = dsservice.NewDataSourceService(dsstore.NewDataSourceStore(provider, allocator), orders,
		suite.services, suite.notifier)
	registry := elementtype.NewDefaultRegistry()
	suite.elements = elementservice.NewElementService(elementstore.NewElementStore(provider, allocator, registry),
		orders, registry, suite.notifier, cache.NewInMemoryCache[[]elementmodel.Element]("elements", true, 10,
			time.Minute))
	suite.service = NewPageService(store.NewPageStore(provider, allocator), orders, suite.dataSources,
		suite.elements, suite.notifier)

	integration, svcErr := suite.services.CreateIntegration(1, "Local", "ada")
	suite.Require().Nil(svcErr)
	suite.integration = integration

	tbl, err := suite.rows.CreateTable("People")
	suite.Require().NoError(err)
	_, err = suite.rows.CreateField(tbl.ID, tablemodel.Field{Name: "Name", Type: fieldtype.TypeText, Primary: true})
	suite.Require().NoError(err)
	suite.people, err = suite.rows.GetTable(tbl.ID)
	suite.Require().NoError(err)
	suite.ada, err = suite.rows.CreateRow(suite.people,
		map[string]interface{}{suite.people.Fields[0].DBColumn(): "Ada"})
	suite.Require().NoError(err)
}

func (suite *PageServiceTestSuite) create(name, path string, params ...model.PathParam) *model.Page {
	page, svcErr := suite.service.CreatePage(1, model.CreatePageRequest{Name: name, Path: path, PathParams: params},
		"ada")
	suite.Require().Nil(svcErr)
	return page
}

func (suite *PageServiceTestSuite) names() []string {
	pages, svcErr := suite.service.GetPages(1)
	suite.Require().Nil(svcErr)
	names := make([]string, 0, len(pages))
	for _, page := range pages {
		names = append(names, page.Name)
	}
	return names
}

func stringPtr(v string) *string {
	return &v
}

func (suite *PageServiceTestSuite) TestCreatePage() {
	home := suite.create("Home", "/")
	about := suite.create("About", "/about")
	suite.Equal("1.00000000000000000000", home.Order)
	suite.Equal("2.00000000000000000000", about.Order)
	suite.Equal([]model.PathParam{}, home.PathParams)

	front, svcErr := suite.service.CreatePage(1, model.CreatePageRequest{Name: "Front", Path: "/front",
		BeforeID: &home.ID}, "ada")
	suite.Require().Nil(svcErr)
	suite.Equal("0.50000000000000000000", front.Order)
	suite.Equal([]string{"Front", "Home", "About"}, suite.names())

	created := suite.notifier.OfType(signal.ItemCreated)
	suite.Require().Len(created, 3)
	suite.Equal(model.EntityType, created[0].EntityType)
	suite.Equal(int64(1), created[0].ParentID)
}

func (suite *PageServiceTestSuite) TestCreatePageValidation() {
	suite.create("Home", "/")

	cases := []struct {
		name    string
		request model.CreatePageRequest
		target  serviceerror.ServiceError
		message string
	}{
		{"blank name", model.CreatePageRequest{Name: " ", Path: "/x"}, constants.ErrorPageNameNotUnique,
			"The page name must not be blank."},
		{"taken name", model.CreatePageRequest{Name: "Home", Path: "/x"}, constants.ErrorPageNameNotUnique,
			"The page name 'Home' is already used in the application."},
		{"taken path", model.CreatePageRequest{Name: "Other", Path: "/"}, constants.ErrorPagePathNotUnique,
			"The path '/' is already used in the application."},
		{"relative path", model.CreatePageRequest{Name: "Other", Path: "about"}, constants.ErrorInvalidPagePath,
			"The path 'about' must start with a slash."},
		{"undeclared param", model.CreatePageRequest{Name: "Other", Path: "/p/:id"}, constants.ErrorInvalidPathParams,
			"The path parameter 'id' is not declared."},
		{"param not in path", model.CreatePageRequest{Name: "Other", Path: "/p",
			PathParams: []model.PathParam{{Name: "id", Type: model.PathParamTypeNumeric}}},
			constants.ErrorInvalidPathParams, "The path parameter 'id' is not in the path."},
		{"param type", model.CreatePageRequest{Name: "Other", Path: "/p/:id",
			PathParams: []model.PathParam{{Name: "id", Type: "date"}}},
			constants.ErrorInvalidPathParams, "The path parameter type 'date' is not supported."},
		{"malformed param", model.CreatePageRequest{Name: "Other", Path: "/p/:"}, constants.ErrorInvalidPagePath,
			"The path segment ':' is not a valid parameter."},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			_, svcErr := suite.service.CreatePage(1, tc.request, "ada")
			suite.Require().NotNil(svcErr)
			suite.True(serviceerror.Is(svcErr, tc.target))
			suite.Equal(tc.message, svcErr.ErrorDescription)
		})
	}

	_, svcErr := suite.service.CreatePage(404, model.CreatePageRequest{Name: "Home", Path: "/"}, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorApplicationNotFound))
}

func (suite *PageServiceTestSuite) TestGetPage() {
	home := suite.create("Home", "/product/:id", model.PathParam{Name: "id", Type: model.PathParamTypeNumeric})

	page, svcErr := suite.service.GetPage(home.ID)
	suite.Require().Nil(svcErr)
	suite.Equal(home, page)

	_, svcErr = suite.service.GetPage(404)
	suite.True(serviceerror.Is(svcErr, constants.ErrorPageNotFound))
	suite.Equal("The page with ID 404 does not exist.", svcErr.ErrorDescription)
}

func (suite *PageServiceTestSuite) TestUpdatePage() {
	home := suite.create("Home", "/")
	suite.create("About", "/about")

	_, svcErr := suite.service.UpdatePage(home.ID, model.UpdatePageRequest{Path: stringPtr("/about")}, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorPagePathNotUnique))

	params := []model.PathParam{{Name: "slug", Type: model.PathParamTypeText}}
	updated, svcErr := suite.service.UpdatePage(home.ID, model.UpdatePageRequest{
		Name:       stringPtr("Landing"),
		Path:       stringPtr("/landing/:slug"),
		PathParams: &params,
	}, "ada")
	suite.Require().Nil(svcErr)
	suite.Equal("Landing", updated.Name)

	found, svcErr := suite.service.GetPage(home.ID)
	suite.Require().Nil(svcErr)
	suite.Equal(updated, found)
	suite.Len(suite.notifier.OfType(signal.ItemUpdated), 1)
}

func (suite *PageServiceTestSuite) TestMoveAndOrderPages() {
	home := suite.create("Home", "/")
	about := suite.create("About", "/about")
	contact := suite.create("Contact", "/contact")

	moved, svcErr := suite.service.MovePage(contact.ID, &home.ID, "ada")
	suite.Require().Nil(svcErr)
	suite.Equal("0.50000000000000000000", moved.Order)
	suite.Equal([]string{"Contact", "Home", "About"}, suite.names())

	suite.Require().Nil(suite.service.OrderPages(1, []int64{about.ID, home.ID}, "ada"))
	suite.Equal([]string{"About", "Home", "Contact"}, suite.names())

	_, svcErr = suite.service.MovePage(home.ID, &home.ID, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorPageNotInSameApplication))
	suite.True(serviceerror.Is(suite.service.OrderPages(1, []int64{404}, "ada"),
		constants.ErrorPageNotInSameApplication))
}

func (suite *PageServiceTestSuite) getRowDataSource(pageID int64, name, rowID string) *dsmodel.DataSource {
	dataSource, svcErr := suite.dataSources.CreateDataSource(pageID, dsmodel.CreateDataSourceRequest{
		Name:        name,
		ServiceType: servicetype.TypeGetRow,
		ServiceValues: &servicemodel.ServiceValues{
			IntegrationID: servicemodel.OptionalID{Set: true, ID: &suite.integration.ID},
			TableID:       servicemodel.OptionalID{Set: true, ID: &suite.people.ID},
			RowID:         stringPtr(rowID),
		},
	}, "ada")
	suite.Require().Nil(svcErr)
	return dataSource
}

func (suite *PageServiceTestSuite) TestDeletePageRemovesServices() {
	home := suite.create("Home", "/")
	dataSource := suite.getRowDataSource(home.ID, "People", "")

	suite.Require().Nil(suite.service.DeletePage(home.ID, "ada"))

	_, svcErr := suite.service.GetPage(home.ID)
	suite.True(serviceerror.Is(svcErr, constants.ErrorPageNotFound))
	_, svcErr = suite.services.GetService(*dataSource.ServiceID)
	suite.True(serviceerror.Is(svcErr, serviceconstants.ErrorServiceNotFound))
	deleted := suite.notifier.OfType(signal.ItemDeleted)
	suite.Require().NotEmpty(deleted)
	suite.Equal(model.EntityType, deleted[len(deleted)-1].EntityType)

	suite.True(serviceerror.Is(suite.service.DeletePage(home.ID, "ada"), constants.ErrorPageNotFound))
}

func (suite *PageServiceTestSuite) TestDuplicatePage() {
	column := suite.people.Fields[0].DBColumn()
	product := suite.create("Product", "/product/:id", model.PathParam{Name: "id", Type: model.PathParamTypeNumeric})
	suite.create("About", "/about")
	person := suite.getRowDataSource(product.ID, "Person", "get('page_parameter.id')")

	_, svcErr := suite.elements.CreateElement(product.ID, elementmodel.CreateElementRequest{
		Type:   elementmodel.TypeHeading,
		Config: json.RawMessage(fmt.Sprintf(`{"value":"get('data_source.%d.%s')"}`, person.ID, column)),
	}, "ada")
	suite.Require().Nil(svcErr)
	_, svcErr = suite.elements.CreateElement(product.ID, elementmodel.CreateElementRequest{
		Type: elementmodel.TypeTable,
		Config: json.RawMessage(fmt.Sprintf(`{"data_source_id":%d,"fields":[{"name":"Id",`+
			`"value":"get('data_source.%d')"}]}`, person.ID, person.ID)),
	}, "ada")
	suite.Require().Nil(svcErr)

	var progress []int
	result, svcErr := suite.service.DuplicatePage(product.ID, "ada", func(percentage int) {
		progress = append(progress, percentage)
	})
	suite.Require().Nil(svcErr)

	suite.Equal([]int{20, 40, 70, 100}, progress)
	suite.Equal(1, result.DataSources)
	suite.Equal(2, result.Elements)
	suite.Equal("Product 2", result.Page.Name)
	suite.Equal("/product-2/:id", result.Page.Path)
	suite.Equal(product.PathParams, result.Page.PathParams)
	suite.Equal("1.50000000000000000000", result.Page.Order)
	suite.Equal([]string{"Product", "Product 2", "About"}, suite.names())

	dataSources, svcErr := suite.dataSources.GetDataSources(result.Page.ID)
	suite.Require().Nil(svcErr)
	suite.Require().Len(dataSources, 1)
	copiedPerson := dataSources[0]
	suite.Equal("Person", copiedPerson.Name)
	suite.NotEqual(*person.ServiceID, *copiedPerson.ServiceID)

	elements, svcErr := suite.elements.GetElements(result.Page.ID)
	suite.Require().Nil(svcErr)
	suite.Require().Len(elements, 2)
	suite.Equal(fmt.Sprintf("get('data_source.%d.%s')", copiedPerson.ID, column),
		elements[0].Config.(*elementmodel.HeadingConfig).Value)
	tableConfig := elements[1].Config.(*elementmodel.TableConfig)
	suite.Equal(copiedPerson.ID, *tableConfig.DataSourceID)
	suite.Equal(fmt.Sprintf("get('data_source.%d')", copiedPerson.ID), tableConfig.Fields[0].Value)

	payload, svcErr := suite.dataSources.DispatchDataSource(copiedPerson.ID,
		map[string]interface{}{"id": suite.ada.ID})
	suite.Require().Nil(svcErr)
	suite.Equal("Ada", payload[column])

	again, svcErr := suite.service.DuplicatePage(product.ID, "ada", nil)
	suite.Require().Nil(svcErr)
	suite.Equal("Product 3", again.Page.Name)
	suite.Equal("/product-3/:id", again.Page.Path)
	suite.Equal([]string{"Product", "Product 3", "Product 2", "About"}, suite.names())
}

func (suite *PageServiceTestSuite) TestDuplicateMissingPage() {
	_, svcErr := suite.service.DuplicatePage(404, "ada", nil)
	suite.True(serviceerror.Is(svcErr, constants.ErrorPageNotFound))
}

func TestNumberedPath(t *testing.T) {
	cases := map[string]string{
		"/":            "/page-2",
		"/about":       "/about-2",
		"/about/":      "/about-2/",
		"/product/:id": "/product-2/:id",
		"/:id":         "/page-2/:id",
		"/a/:x/b/:y":   "/a/:x/b-2/:y",
	}
	for path, expected := range cases {
		if got := numberedPath(path, 2); got != expected {
			t.Errorf("numberedPath(%q) = %q, want %q", path, got, expected)
		}
	}
}

type failingDataSourceImport struct {
	dsservice.DataSourceServiceInterface
}

func (failingDataSourceImport) ImportDataSources(int64, []dsmodel.SerializedDataSource, importexport.IDMapping,
	string) ([]dsmodel.DataSource, *serviceerror.ServiceError) {
	return nil, &constants.ErrorInternalServerError
}

type failingElementImport struct {
	elementservice.ElementServiceInterface
}

func (failingElementImport) ImportElements(int64, []elementmodel.SerializedElement, importexport.IDMapping,
	importexport.FormulaImportFunc, string) ([]elementmodel.Element, *serviceerror.ServiceError) {
	return nil, &constants.ErrorInternalServerError
}

func (suite *PageServiceTestSuite) count(table string) int64 {
	results, err := suite.dbClient.Query(dbmodel.DBQuery{
		ID:    "TEST-COUNT-" + table,
		Query: "SELECT COUNT(*) AS TOTAL FROM " + table,
	})
	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	total, err := utils.ParseInt64(results[0]["total"])
	suite.Require().NoError(err)
	return total
}

func (suite *PageServiceTestSuite) TestDuplicatePageRemovesCopyWhenImportFails() {
	product := suite.create("Product", "/product")
	suite.create("About", "/about")
	suite.getRowDataSource(product.ID, "Person", "")
	_, svcErr := suite.elements.CreateElement(product.ID, elementmodel.CreateElementRequest{
		Type:   elementmodel.TypeHeading,
		Config: json.RawMessage(`{"value":"'Hello'"}`),
	}, "ada")
	suite.Require().Nil(svcErr)

	dataSources := suite.count("BUILDER_DATA_SOURCE")
	services := suite.count("DATA_SERVICE")
	elements := suite.count("BUILDER_ELEMENT")

	failingData := *suite.service
	failingData.dataSources = failingDataSourceImport{suite.dataSources}
	failingElements := *suite.service
	failingElements.elements = failingElementImport{suite.elements}

	for name, service := range map[string]*PageService{"data sources": &failingData, "elements": &failingElements} {
		result, svcErr := service.DuplicatePage(product.ID, "ada", nil)
		suite.Nil(result, name)
		suite.Require().NotNil(svcErr, name)
		suite.Equal(constants.ErrorInternalServerError.Code, svcErr.Code, name)

		suite.Equal([]string{"Product", "About"}, suite.names(), name)
		suite.Equal(dataSources, suite.count("BUILDER_DATA_SOURCE"), name)
		suite.Equal(services, suite.count("DATA_SERVICE"), name)
		suite.Equal(elements, suite.count("BUILDER_ELEMENT"), name)
	}
}
