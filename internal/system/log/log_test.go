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

package log

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/asgardeo/forge/internal/system/constants"
)

type LogTestSuite struct {
	suite.Suite
	originalLogLevel string
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) SetupTest() {
	suite.originalLogLevel = os.Getenv(constants.LogLevelEnvironmentVariable)
}

func (suite *LogTestSuite) TearDownTest() {
	err := os.Setenv(constants.LogLevelEnvironmentVariable, suite.originalLogLevel)
	if err != nil {
		suite.T().Errorf("Failed to restore environment variable: %v", err)
	}
	logger = nil
	once = sync.Once{}
}

func (suite *LogTestSuite) TestInitLoggerWithEnvironmentVariable() {
	testCases := []struct {
		level       string
		expectDebug bool
	}{
		{"debug", true},
		{"DEBUG", true},
		{"info", false},
		{"warn", false},
		{"error", false},
	}

	for _, tc := range testCases {
		suite.Run(tc.level, func() {
			logger = nil
			once = sync.Once{}
			_ = os.Setenv(constants.LogLevelEnvironmentVariable, tc.level)

			l := GetLogger()
			assert.NotNil(suite.T(), l)
			assert.Equal(suite.T(), tc.expectDebug, l.IsDebugEnabled())
		})
	}
}

func (suite *LogTestSuite) TestInitLoggerWithInvalidLevel() {
	_ = os.Setenv(constants.LogLevelEnvironmentVariable, "verbose")
	assert.Panics(suite.T(), func() { GetLogger() })
}

func (suite *LogTestSuite) TestWithAddsFields() {
	core, logs := observer.New(zapcore.DebugLevel)
	ReplaceCore(core)

	componentLogger := GetLogger().With(String(LoggerKeyComponentName, "ElementService"))
	componentLogger.Info("Element created", Int64("elementId", 7), Error(errors.New("boom")))

	entries := logs.All()
	assert.Len(suite.T(), entries, 1)
	assert.Equal(suite.T(), "Element created", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(suite.T(), "ElementService", fields[LoggerKeyComponentName])
	assert.Equal(suite.T(), int64(7), fields["elementId"])
	assert.Equal(suite.T(), "boom", fields["error"])
}

func (suite *LogTestSuite) TestLevelsRespectCore() {
	core, logs := observer.New(zapcore.WarnLevel)
	ReplaceCore(core)

	l := GetLogger()
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too")

	assert.Equal(suite.T(), 2, logs.Len())
	assert.False(suite.T(), l.IsDebugEnabled())
}

func (suite *LogTestSuite) TestMaskString() {
	assert.Equal(suite.T(), "***", MaskString("abc"))
	assert.Equal(suite.T(), "s****t", MaskString("secret"))
	assert.Equal(suite.T(), "", MaskString(""))
}
