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
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/forge/internal/element/constants"
	"github.com/asgardeo/forge/internal/element/elementtype"
	"github.com/asgardeo/forge/internal/element/model"
	"github.com/asgardeo/forge/internal/element/store"
	"github.com/asgardeo/forge/internal/importexport"
	"github.com/asgardeo/forge/internal/order"
	orderservice "github.com/asgardeo/forge/internal/order/service"
	orderstore "github.com/asgardeo/forge/internal/order/store"
	"github.com/asgardeo/forge/internal/system/cache"
	"github.com/asgardeo/forge/internal/system/database/dbtest"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/signal"
	"github.com/asgardeo/forge/tests/mocks/signalmock"
)

type ElementServiceTestSuite struct {
	suite.Suite
	provider *dbtest.Provider
	service  *ElementService
	notifier *signalmock.MockNotifier
}

func TestElementServiceSuite(t *testing.T) {
	suite.Run(t, new(ElementServiceTestSuite))
}

func (suite *ElementServiceTestSuite) SetupTest() {
	suite.provider = dbtest.NewProvider(suite.T())
	dbtest.MustExec(suite.T(), suite.provider.Client,
		`INSERT INTO BUILDER_APPLICATION (APPLICATION_ID, NAME) VALUES (1, 'app')`)
	dbtest.MustExec(suite.T(), suite.provider.Client,
		`INSERT INTO BUILDER_PAGE (PAGE_ID, APPLICATION_ID, NAME, PATH, ORDER_VALUE) VALUES (1, 1, 'home', '/', '1')`)
	dbtest.MustExec(suite.T(), suite.provider.Client,
		`INSERT INTO BUILDER_PAGE (PAGE_ID, APPLICATION_ID, NAME, PATH, ORDER_VALUE) VALUES (2, 1, 'other', '/o', '2')`)

	allocator := order.NewAllocator(20)
	registry := elementtype.NewDefaultRegistry()
	suite.notifier = signalmock.NewMockNotifier()
	orders := orderservice.NewOrderService(orderstore.NewOrderStore(suite.provider, allocator), allocator,
		suite.notifier)
	suite.service = NewElementService(store.NewElementStore(suite.provider, allocator, registry), orders, registry,
		suite.notifier, cache.NewInMemoryCache[[]model.Element]("elements", true, 10, time.Minute))
}

func (suite *ElementServiceTestSuite) seed(id, pageID int64, value string) {
	dbtest.MustExec(suite.T(), suite.provider.Client,
		`INSERT INTO BUILDER_ELEMENT (ELEMENT_ID, PAGE_ID, TYPE, ORDER_VALUE, CONFIG) VALUES ($1, $2, 'heading', $3, `+
			`'{"value":"","level":1}')`, id, pageID, value)
}

func (suite *ElementServiceTestSuite) orders(pageID int64) map[int64]string {
	elements, svcErr := suite.service.GetElements(pageID)
	suite.Require().Nil(svcErr)
	orders := make(map[int64]string, len(elements))
	for _, element := range elements {
		orders[element.ID] = element.Order
	}
	return orders
}

func (suite *ElementServiceTestSuite) ids(pageID int64) []int64 {
	elements, svcErr := suite.service.GetElements(pageID)
	suite.Require().Nil(svcErr)
	ids := make([]int64, 0, len(elements))
	for _, element := range elements {
		ids = append(ids, element.ID)
	}
	return ids
}

func int64Ptr(v int64) *int64 {
	return &v
}

func (suite *ElementServiceTestSuite) TestCreateElementLast() {
	suite.seed(1, 1, "1.0000")
	suite.seed(3, 1, "2.0000")

	element, svcErr := suite.service.CreateElement(1, model.CreateElementRequest{Type: model.TypeHeading}, "ada")
	suite.Require().Nil(svcErr)

	suite.Equal("3.00000000000000000000", element.Order)
	suite.Equal(&model.HeadingConfig{Level: 1}, element.Config)
	created := suite.notifier.OfType(signal.ItemCreated)
	suite.Require().Len(created, 1)
	suite.Equal([]int64{element.ID}, created[0].EntityIDs)
	suite.Equal(model.EntityType, created[0].EntityType)
}

func (suite *ElementServiceTestSuite) TestCreateElementBefore() {
	suite.seed(1, 1, "1.0000")
	suite.seed(3, 1, "2.0000")

	element, svcErr := suite.service.CreateElement(1, model.CreateElementRequest{
		Type:     model.TypeParagraph,
		Config:   json.RawMessage(`{"value":"'Hello'"}`),
		BeforeID: int64Ptr(3),
	}, "ada")
	suite.Require().Nil(svcErr)

	suite.Equal("1.50000000000000000000", element.Order)
	suite.Equal([]int64{1, element.ID, 3}, suite.ids(1))
}

func (suite *ElementServiceTestSuite) TestCreateElementBeforeElementOfAnotherPage() {
	suite.seed(1, 1, "1.0000")
	suite.seed(3, 2, "2.0000")

	_, svcErr := suite.service.CreateElement(1, model.CreateElementRequest{Type: model.TypeHeading,
		BeforeID: int64Ptr(3)}, "ada")

	suite.True(serviceerror.Is(svcErr, constants.ErrorElementNotInSamePage))
}

func (suite *ElementServiceTestSuite) TestCreateElementResetsOrders() {
	suite.seed(1, 1, "1.00000000000000000000")
	suite.seed(2, 1, "1.00000000000000001000")
	suite.seed(3, 1, "2.99999999999999999999")
	suite.seed(4, 1, "2.99999999999999999998")

	element, svcErr := suite.service.CreateElement(1, model.CreateElementRequest{Type: model.TypeHeading,
		BeforeID: int64Ptr(3)}, "ada")
	suite.Require().Nil(svcErr)

	orders := suite.orders(1)
	suite.Equal("1.00000000000000000000", orders[1])
	suite.Equal("2.00000000000000000000", orders[2])
	suite.Equal("3.00000000000000000000", orders[4])
	suite.Equal("4.00000000000000000000", orders[3])
	suite.Equal("3.50000000000000000000", orders[element.ID])
	suite.Len(suite.notifier.OfType(signal.OrdersRecalculated), 1)
}

func (suite *ElementServiceTestSuite) TestCreateElementValidation() {
	_, svcErr := suite.service.CreateElement(1, model.CreateElementRequest{Type: "carousel"}, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorUnknownElementType))

	_, svcErr = suite.service.CreateElement(1, model.CreateElementRequest{Type: model.TypeHeading,
		Config: json.RawMessage(`{"level":9}`)}, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorInvalidElementConfig))
	suite.Equal("The heading level must be between 1 and 6, got 9.", svcErr.ErrorDescription)

	_, svcErr = suite.service.CreateElement(404, model.CreateElementRequest{Type: model.TypeHeading}, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorPageNotFound))
	suite.Empty(suite.notifier.OfType(signal.ItemCreated))
}

func (suite *ElementServiceTestSuite) TestRecalculateFullOrders() {
	suite.seed(1, 1, "1.9000")
	suite.seed(2, 1, "3.4000")

	suite.Require().Nil(suite.service.RecalculateFullOrders(1, "ada"))

	suite.Equal(map[int64]string{1: "1.00000000000000000000", 2: "2.00000000000000000000"}, suite.orders(1))
	recalculated := suite.notifier.OfType(signal.OrdersRecalculated)
	suite.Require().Len(recalculated, 1)
	suite.Equal(int64(1), recalculated[0].ParentID)
	suite.Equal("ada", recalculated[0].Actor)
}

func (suite *ElementServiceTestSuite) TestGetElement() {
	suite.seed(1, 1, "1.0000")

	element, svcErr := suite.service.GetElement(1)
	suite.Require().Nil(svcErr)
	suite.Equal(int64(1), element.PageID)
	suite.Equal(model.TypeHeading, element.Type)

	_, svcErr = suite.service.GetElement(404)
	suite.True(serviceerror.Is(svcErr, constants.ErrorElementNotFound))
	suite.Equal("The element with ID 404 does not exist.", svcErr.ErrorDescription)
}

func (suite *ElementServiceTestSuite) TestGetElementsInOrder() {
	suite.seed(1, 1, "3.0000")
	suite.seed(2, 1, "10.0000")
	suite.seed(3, 1, "1.0000")
	suite.seed(4, 2, "2.0000")

	suite.Equal([]int64{3, 1, 2}, suite.ids(1))
}

func (suite *ElementServiceTestSuite) TestGetElementsIsCachedUntilInvalidated() {
	suite.seed(1, 1, "1.0000")
	suite.Equal([]int64{1}, suite.ids(1))

	suite.seed(2, 1, "2.0000")
	suite.Equal([]int64{1}, suite.ids(1))

	suite.service.InvalidationSubscriber(signal.NewSignal(signal.ItemUpdated, "data_source", 1, "ada", 7))
	suite.Equal([]int64{1}, suite.ids(1))

	suite.service.InvalidationSubscriber(signal.NewSignal(signal.OrdersRecalculated, model.EntityType, 1, "ada"))
	suite.Equal([]int64{1, 2}, suite.ids(1))
}

func (suite *ElementServiceTestSuite) TestCachedElementsAreCopies() {
	suite.seed(1, 1, "1.0000")

	elements, svcErr := suite.service.GetElements(1)
	suite.Require().Nil(svcErr)
	elements[0].Config.(*model.HeadingConfig).Value = "changed"

	elements, svcErr = suite.service.GetElements(1)
	suite.Require().Nil(svcErr)
	suite.Equal("", elements[0].Config.(*model.HeadingConfig).Value)
}

func (suite *ElementServiceTestSuite) TestUpdateElementMergesConfig() {
	element, svcErr := suite.service.CreateElement(1, model.CreateElementRequest{Type: model.TypeHeading,
		Config: json.RawMessage(`{"value":"'Title'","level":2}`)}, "ada")
	suite.Require().Nil(svcErr)
	suite.Len(suite.ids(1), 1)

	updated, svcErr := suite.service.UpdateElement(element.ID, json.RawMessage(`{"level":3}`), "ada")
	suite.Require().Nil(svcErr)
	suite.Equal(&model.HeadingConfig{Value: "'Title'", Level: 3}, updated.Config)

	elements, svcErr := suite.service.GetElements(1)
	suite.Require().Nil(svcErr)
	suite.Equal(&model.HeadingConfig{Value: "'Title'", Level: 3}, elements[0].Config)
	suite.Len(suite.notifier.OfType(signal.ItemUpdated), 1)

	_, svcErr = suite.service.UpdateElement(element.ID, json.RawMessage(`{"level":0}`), "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorInvalidElementConfig))
	stored, svcErr := suite.service.GetElement(element.ID)
	suite.Require().Nil(svcErr)
	suite.Equal(3, stored.Config.(*model.HeadingConfig).Level)
}

func (suite *ElementServiceTestSuite) TestDeleteElement() {
	suite.seed(1, 1, "1.0000")
	suite.seed(2, 1, "2.0000")
	suite.Len(suite.ids(1), 2)

	suite.Require().Nil(suite.service.DeleteElement(1, "ada"))

	suite.Equal([]int64{2}, suite.ids(1))
	deleted := suite.notifier.OfType(signal.ItemDeleted)
	suite.Require().Len(deleted, 1)
	suite.Equal([]int64{1}, deleted[0].EntityIDs)

	suite.True(serviceerror.Is(suite.service.DeleteElement(1, "ada"), constants.ErrorElementNotFound))
}

func (suite *ElementServiceTestSuite) TestMoveElement() {
	suite.seed(1, 1, "1.0000")
	suite.seed(2, 1, "2.0000")
	suite.seed(3, 1, "3.0000")

	moved, svcErr := suite.service.MoveElement(3, int64Ptr(1), "ada")
	suite.Require().Nil(svcErr)
	suite.Equal("0.50000000000000000000", moved.Order)
	suite.Equal([]int64{3, 1, 2}, suite.ids(1))

	moved, svcErr = suite.service.MoveElement(3, nil, "ada")
	suite.Require().Nil(svcErr)
	suite.Equal("3.00000000000000000000", moved.Order)
	suite.Equal([]int64{1, 2, 3}, suite.ids(1))
	suite.Len(suite.notifier.OfType(signal.ItemUpdated), 2)
}

func (suite *ElementServiceTestSuite) TestMoveElementNotOnSamePage() {
	suite.seed(1, 1, "1.0000")
	suite.seed(2, 2, "1.0000")

	_, svcErr := suite.service.MoveElement(1, int64Ptr(2), "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorElementNotInSamePage))

	_, svcErr = suite.service.MoveElement(1, int64Ptr(1), "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorElementNotInSamePage))
	suite.Equal("An element cannot be positioned before itself.", svcErr.ErrorDescription)
}

func (suite *ElementServiceTestSuite) TestMoveElementTriggersRecalculation() {
	suite.seed(1, 1, "2.99999999999999999998")
	suite.seed(2, 1, "2.99999999999999999999")
	suite.seed(3, 1, "3.0000")

	moved, svcErr := suite.service.MoveElement(3, int64Ptr(2), "ada")
	suite.Require().Nil(svcErr)

	suite.Equal("1.50000000000000000000", moved.Order)
	suite.Equal(map[int64]string{
		1: "1.00000000000000000000",
		2: "2.00000000000000000000",
		3: "1.50000000000000000000",
	}, suite.orders(1))
	suite.Len(suite.notifier.OfType(signal.OrdersRecalculated), 1)
	suite.Empty(suite.notifier.OfType(signal.ItemUpdated))
}

func (suite *ElementServiceTestSuite) TestOrderElements() {
	suite.seed(1, 1, "1.0000")
	suite.seed(2, 1, "2.0000")
	suite.seed(3, 1, "3.0000")

	suite.Require().Nil(suite.service.OrderElements(1, []int64{3, 1}, "ada"))
	suite.Equal([]int64{3, 1, 2}, suite.ids(1))

	svcErr := suite.service.OrderElements(1, []int64{404}, "ada")
	suite.True(serviceerror.Is(svcErr, constants.ErrorElementNotInSamePage))
}

func (suite *ElementServiceTestSuite) TestExportImportElements() {
	dbtest.MustExec(suite.T(), suite.provider.Client,
		`INSERT INTO BUILDER_DATA_SOURCE (DATA_SOURCE_ID, PAGE_ID, NAME, ORDER_VALUE) VALUES (5, 1, 'People', '1')`)
	table, svcErr := suite.service.CreateElement(1, model.CreateElementRequest{
		Type: model.TypeTable,
		Config: json.RawMessage(`{"data_source_id":5,"items_per_page":10,` +
			`"fields":[{"name":"Name","value":"get('data_source.5.name')"}]}`),
	}, "ada")
	suite.Require().Nil(svcErr)
	heading, svcErr := suite.service.CreateElement(1, model.CreateElementRequest{
		Type:     model.TypeHeading,
		Config:   json.RawMessage(`{"value":"get('page_parameter.id')"}`),
		BeforeID: &table.ID,
	}, "ada")
	suite.Require().Nil(svcErr)

	var serialized []model.SerializedElement
	for _, element := range []*model.Element{table, heading} {
		exported, svcErr := suite.service.ExportElement(element)
		suite.Require().Nil(svcErr)
		serialized = append(serialized, exported)
	}

	mapping := importexport.NewIDMapping()
	mapping.Set(importexport.CategoryBuilderDataSources, 5, 8)
	imported, svcErr := suite.service.ImportElements(2, serialized, mapping,
		importexport.NewFormulaImporter(nil).ImportFormula, "ada")
	suite.Require().Nil(svcErr)
	suite.Require().Len(imported, 2)

	suite.Equal(model.TypeHeading, imported[0].Type)
	suite.Equal("get('page_parameter.id')", imported[0].Config.(*model.HeadingConfig).Value)
	config := imported[1].Config.(*model.TableConfig)
	suite.Require().NotNil(config.DataSourceID)
	suite.Equal(int64(8), *config.DataSourceID)
	suite.Equal("get('data_source.8.name')", config.Fields[0].Value)
	suite.Equal(model.DefaultOrientation(), config.Orientation)

	suite.Equal(imported[0].ID, mapping.Get(importexport.CategoryBuilderPageElements, heading.ID))
	suite.Equal(imported[1].ID, mapping.Get(importexport.CategoryBuilderPageElements, table.ID))
	suite.Equal([]int64{imported[0].ID, imported[1].ID}, suite.ids(2))
}
