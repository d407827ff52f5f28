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

package store

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/forge/internal/dataservice/constants"
	"github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/system/database/dbtest"
)

type DataServiceStoreTestSuite struct {
	suite.Suite
	store DataServiceStoreInterface
}

func TestDataServiceStoreSuite(t *testing.T) {
	suite.Run(t, new(DataServiceStoreTestSuite))
}

func (suite *DataServiceStoreTestSuite) SetupTest() {
	provider := dbtest.NewProvider(suite.T())
	dbtest.MustExec(suite.T(), provider.Client, "INSERT INTO BUILDER_APPLICATION (NAME) VALUES ('Shop')")
	suite.store = NewDataServiceStore(provider)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func (suite *DataServiceStoreTestSuite) TestIntegration() {
	created, err := suite.store.CreateIntegration(model.Integration{
		ApplicationID:  1,
		Type:           model.IntegrationTypeLocalTable,
		Name:           "Local",
		AuthorizedUser: "ada",
	})
	suite.Require().NoError(err)

	found, err := suite.store.GetIntegration(created.ID)
	suite.Require().NoError(err)
	suite.Equal(*created, *found)

	_, err = suite.store.GetIntegration(404)
	suite.ErrorIs(err, constants.ErrIntegrationNotFound)
}

func (suite *DataServiceStoreTestSuite) TestServiceLifecycle() {
	integration, err := suite.store.CreateIntegration(model.Integration{ApplicationID: 1, Type: "local_table"})
	suite.Require().NoError(err)

	created, err := suite.store.CreateService(&model.Service{
		Type:          "local_table_upsert_row",
		IntegrationID: &integration.ID,
		TableID:       int64Ptr(7),
		RowID:         "get('page_parameter.id')",
		Filters: []model.ServiceFilter{
			{FieldID: 3, Type: "equal", Value: "get('page_parameter.name')", ValueIsFormula: true},
			{FieldID: 4, Type: "contains", Value: "x"},
		},
		FieldMappings: []model.FieldMapping{{FieldID: 3, Value: "'Jeff'", Enabled: true}, {FieldID: 4}},
	})
	suite.Require().NoError(err)
	suite.Equal("AND", created.FilterType)

	found, err := suite.store.GetService(created.ID)
	suite.Require().NoError(err)
	suite.Equal(created, found)
	suite.Nil(found.ViewID)
	suite.True(found.Filters[0].ValueIsFormula)
	suite.Equal(1, found.Filters[1].Order)
	suite.False(found.FieldMappings[1].Enabled)

	found.TableID = nil
	found.FilterType = "OR"
	found.Filters = found.Filters[1:]
	suite.Require().NoError(suite.store.UpdateService(found))
	mappings, err := suite.store.ReplaceFieldMappings(found.ID, nil)
	suite.Require().NoError(err)
	suite.Empty(mappings)

	updated, err := suite.store.GetService(created.ID)
	suite.Require().NoError(err)
	suite.Nil(updated.TableID)
	suite.Equal("OR", updated.FilterType)
	suite.Len(updated.Filters, 1)
	suite.Equal(0, updated.Filters[0].Order)
	suite.Empty(updated.FieldMappings)

	suite.Require().NoError(suite.store.DeleteService(created.ID))
	_, err = suite.store.GetService(created.ID)
	suite.ErrorIs(err, constants.ErrServiceNotFound)
	suite.ErrorIs(suite.store.DeleteService(created.ID), constants.ErrServiceNotFound)
}
