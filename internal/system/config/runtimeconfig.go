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

import "sync"

// ForgeRuntime holds the runtime configuration for forge.
type ForgeRuntime struct {
	ForgeHome string `yaml:"forge_home"`
	Config    Config `yaml:"config"`
}

var (
	runtimeConfig *ForgeRuntime
	once          sync.Once
)

// InitializeForgeRuntime initializes the ForgeRuntime configuration.
func InitializeForgeRuntime(forgeHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &ForgeRuntime{
			ForgeHome: forgeHome,
			Config:    *config,
		}
	})

	return nil
}

// GetForgeRuntime returns the ForgeRuntime configuration.
func GetForgeRuntime() *ForgeRuntime {
	if runtimeConfig == nil {
		panic("ForgeRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetForgeRuntime resets the ForgeRuntime.
// This should only be used in tests to reset the singleton state.
func ResetForgeRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
