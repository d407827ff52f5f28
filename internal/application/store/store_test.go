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
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/forge/internal/application/constants"
	"github.com/asgardeo/forge/internal/application/model"
	"github.com/asgardeo/forge/internal/system/cache"
	"github.com/asgardeo/forge/internal/system/database/client"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/tests/mocks/databasemock"
)

type ApplicationStoreTestSuite struct {
	suite.Suite
	mockDB *sql.DB
	mock   sqlmock.Sqlmock
	store  ApplicationStoreInterface
}

func TestApplicationStoreSuite(t *testing.T) {
	suite.Run(t, new(ApplicationStoreTestSuite))
}

func (suite *ApplicationStoreTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	suite.Require().NoError(err)

	dbClient := client.NewDBClient(dbmodel.NewDB(suite.mockDB, "sqlmock"), dbmodel.DBTypeSQLite)
	suite.store = NewApplicationStore(&databasemock.MockDBProvider{
		MockGetDBClient: func(dbName string) (client.DBClientInterface, error) {
			return dbClient, nil
		},
	})
}

func (suite *ApplicationStoreTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ApplicationStoreTestSuite) TestCreateApplication() {
	suite.mock.ExpectQuery(QueryCreateApplication.Query).
		WithArgs(driver.Value("Shop")).
		WillReturnRows(sqlmock.NewRows([]string{"APPLICATION_ID"}).AddRow(7))

	app, err := suite.store.CreateApplication("Shop")

	suite.Require().NoError(err)
	suite.Equal(&model.Application{ID: 7, Name: "Shop"}, app)
}

func (suite *ApplicationStoreTestSuite) TestGetApplicationByIDNotFound() {
	suite.mock.ExpectQuery(QueryGetApplicationByID.Query).
		WithArgs(driver.Value(int64(3))).
		WillReturnRows(sqlmock.NewRows([]string{"APPLICATION_ID", "NAME"}))

	_, err := suite.store.GetApplicationByID(3)

	suite.ErrorIs(err, constants.ErrApplicationNotFound)
}

func (suite *ApplicationStoreTestSuite) TestGetApplicationList() {
	suite.mock.ExpectQuery(QueryGetApplicationList.Query).
		WillReturnRows(sqlmock.NewRows([]string{"APPLICATION_ID", "NAME"}).
			AddRow(1, "Shop").
			AddRow(2, []byte("Blog")))

	apps, err := suite.store.GetApplicationList()

	suite.Require().NoError(err)
	suite.Equal([]model.Application{{ID: 1, Name: "Shop"}, {ID: 2, Name: "Blog"}}, apps)
}

func (suite *ApplicationStoreTestSuite) TestUpdateApplicationNotFound() {
	suite.mock.ExpectExec(QueryUpdateApplication.Query).
		WithArgs(driver.Value(int64(9)), driver.Value("Renamed")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := suite.store.UpdateApplication(model.Application{ID: 9, Name: "Renamed"})

	suite.ErrorIs(err, constants.ErrApplicationNotFound)
}

func (suite *ApplicationStoreTestSuite) TestDeleteApplicationQueryError() {
	suite.mock.ExpectExec(QueryDeleteApplication.Query).
		WithArgs(driver.Value(int64(1))).
		WillReturnError(errors.New("connection reset"))

	err := suite.store.DeleteApplication(1)

	suite.ErrorContains(err, "connection reset")
}

type countingStore struct {
	ApplicationStoreInterface
	gets int
}

func (c *countingStore) GetApplicationByID(id int64) (*model.Application, error) {
	c.gets++
	return c.ApplicationStoreInterface.GetApplicationByID(id)
}

type mapStore struct {
	apps map[int64]model.Application
}

func (m *mapStore) CreateApplication(name string) (*model.Application, error) {
	app := model.Application{ID: int64(len(m.apps) + 1), Name: name}
	m.apps[app.ID] = app
	return &app, nil
}

func (m *mapStore) GetApplicationByID(id int64) (*model.Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, constants.ErrApplicationNotFound
	}
	return &app, nil
}

func (m *mapStore) GetApplicationList() ([]model.Application, error) {
	apps := make([]model.Application, 0, len(m.apps))
	for _, app := range m.apps {
		apps = append(apps, app)
	}
	return apps, nil
}

func (m *mapStore) UpdateApplication(app model.Application) error {
	if _, ok := m.apps[app.ID]; !ok {
		return constants.ErrApplicationNotFound
	}
	m.apps[app.ID] = app
	return nil
}

func (m *mapStore) DeleteApplication(id int64) error {
	if _, ok := m.apps[id]; !ok {
		return constants.ErrApplicationNotFound
	}
	delete(m.apps, id)
	return nil
}

func TestCachedBackedApplicationStore(t *testing.T) {
	backing := &countingStore{ApplicationStoreInterface: &mapStore{apps: map[int64]model.Application{
		1: {ID: 1, Name: "Shop"},
	}}}
	store := NewCachedBackedApplicationStore(backing,
		cache.NewInMemoryCache[*model.Application]("ApplicationByIDCache", true, 10, time.Minute))

	app, err := store.GetApplicationByID(1)
	assert.NoError(t, err)
	app.Name = "mutated"

	app, err = store.GetApplicationByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "Shop", app.Name)
	assert.Equal(t, 1, backing.gets)

	assert.NoError(t, store.UpdateApplication(model.Application{ID: 1, Name: "Store"}))
	app, err = store.GetApplicationByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "Store", app.Name)
	assert.Equal(t, 1, backing.gets)

	assert.NoError(t, store.DeleteApplication(1))
	_, err = store.GetApplicationByID(1)
	assert.ErrorIs(t, err, constants.ErrApplicationNotFound)
	assert.Equal(t, 2, backing.gets)
}
