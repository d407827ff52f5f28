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

// Package constants defines global constants used across the system module.
package constants

const (
	// LogLevelEnvironmentVariable is the environment variable name for the log level.
	LogLevelEnvironmentVariable = "LOG_LEVEL"
	// DefaultLogLevel is the default log level used if not specified.
	DefaultLogLevel = "info"
)

const (
	// ForgeHomeEnvironmentVariable is the environment variable pointing at the forge home directory.
	ForgeHomeEnvironmentVariable = "FORGE_HOME"
	// DeploymentConfigPath is the path of the deployment configuration relative to the forge home.
	DeploymentConfigPath = "repository/conf/deployment.yaml"
)

const (
	// BuilderDatabase is the name of the database holding builder and service definitions.
	BuilderDatabase = "builder"
	// TablesDatabase is the name of the database holding user tables and their rows.
	TablesDatabase = "tables"
)

const (
	// MinOrderScale is the minimum number of fractional digits carried by order values.
	MinOrderScale = 20
	// MaxOrderScale is the maximum number of fractional digits carried by order values.
	MaxOrderScale = 100
)
