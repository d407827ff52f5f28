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

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testResourceDir = "../../../tests/resources"

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) getFilePath(filename string) string {
	return filepath.Join(testResourceDir, filename)
}

func (suite *ConfigTestSuite) TestLoadConfigValid() {
	config, err := LoadConfig(suite.getFilePath("deployment.yaml"))

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), config)

	assert.Equal(suite.T(), "postgres", config.Database.Builder.Type)
	assert.Equal(suite.T(), "forge", config.Database.Builder.Username)
	assert.Equal(suite.T(), 5432, config.Database.Builder.Port)
	assert.Equal(suite.T(), 10, config.Database.Builder.MaxOpenConns)
	assert.Equal(suite.T(), "sqlite", config.Database.Tables.Type)
	assert.Equal(suite.T(), "/data/tables.db", config.Database.Tables.Path)

	assert.Equal(suite.T(), int32(24), config.Order.Scale)
	assert.Equal(suite.T(), 50, config.Cache.Size)
	assert.Equal(suite.T(), 3600, config.Cache.TTL)
	assert.Equal(suite.T(), 3, config.Job.MaxCount["duplicate_page"])
}

func (suite *ConfigTestSuite) TestLoadConfigAppliesDefaults() {
	config, err := LoadConfig(suite.getFilePath("deployment-minimal.yaml"))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int32(20), config.Order.Scale)
	assert.Equal(suite.T(), 1000, config.Cache.Size)
	assert.False(suite.T(), config.Cache.Disabled)
	assert.NotNil(suite.T(), config.Job.MaxCount)
}

func (suite *ConfigTestSuite) TestLoadConfigClampsOrderScale() {
	config, err := LoadConfig(suite.getFilePath("deployment-large-scale.yaml"))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int32(100), config.Order.Scale)

	low := &Config{Order: OrderConfig{Scale: 3}}
	low.applyDefaults()
	assert.Equal(suite.T(), int32(20), low.Order.Scale)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	config, err := LoadConfig(suite.getFilePath("missing.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()

	assert.Equal(suite.T(), "sqlite", config.Database.Builder.Type)
	assert.Equal(suite.T(), int32(20), config.Order.Scale)
	assert.Equal(suite.T(), 3600, config.Cache.TTL)
}
