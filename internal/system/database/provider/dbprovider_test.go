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

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/forge/internal/system/config"
	"github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/model"
)

type DBProviderTestSuite struct {
	suite.Suite
}

func TestDBProviderSuite(t *testing.T) {
	suite.Run(t, new(DBProviderTestSuite))
}

func (suite *DBProviderTestSuite) TestGetDBConfigPostgres() {
	p := NewDBProvider("/opt/forge", config.DatabaseConfig{})
	cfg, err := p.getDBConfig(config.DataSource{
		Type: "postgres", Hostname: "db", Port: 5432, Username: "u", Password: "p", Name: "forge", SSLMode: "disable",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.DBTypePostgres, cfg.driverName)
	assert.Equal(suite.T(), "host=db port=5432 user=u password=p dbname=forge sslmode=disable", cfg.dsn)
}

func (suite *DBProviderTestSuite) TestGetDBConfigSQLiteRelativePath() {
	p := NewDBProvider("/opt/forge", config.DatabaseConfig{})
	cfg, err := p.getDBConfig(config.DataSource{
		Type: "sqlite", Path: "repository/database/builder.db", Options: "_pragma=busy_timeout(5000)",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.DBTypeSQLite, cfg.driverName)
	assert.Equal(suite.T(), "/opt/forge/repository/database/builder.db?_pragma=busy_timeout(5000)", cfg.dsn)
}

func (suite *DBProviderTestSuite) TestGetDBConfigUnsupportedType() {
	p := NewDBProvider("/opt/forge", config.DatabaseConfig{})
	_, err := p.getDBConfig(config.DataSource{Type: "oracle"})

	assert.Error(suite.T(), err)
}

func (suite *DBProviderTestSuite) TestGetDBClientInMemorySQLite() {
	p := NewDBProvider("", config.DatabaseConfig{
		Builder: config.DataSource{Type: "sqlite", Path: ":memory:", MaxOpenConns: 1},
	})
	defer func() {
		_ = p.Close()
	}()

	first, err := p.GetDBClient(constants.BuilderDatabase)
	assert.NoError(suite.T(), err)
	second, err := p.GetDBClient(constants.BuilderDatabase)
	assert.NoError(suite.T(), err)
	assert.Same(suite.T(), first, second)
	assert.Equal(suite.T(), model.DBTypeSQLite, first.GetDBType())
}

func (suite *DBProviderTestSuite) TestGetDBClientUnknownName() {
	p := NewDBProvider("", config.DatabaseConfig{})

	c, err := p.GetDBClient("identity")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), c)
}
