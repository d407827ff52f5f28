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

// Package config provides structures and functions for loading and managing forge configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

const (
	defaultCacheSize = 1000
	defaultCacheTTL  = 3600
)

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Builder DataSource `yaml:"builder"`
	Tables  DataSource `yaml:"tables"`
}

// OrderConfig holds the fractional ordering settings.
type OrderConfig struct {
	Scale int32 `yaml:"scale"`
}

// CacheConfig holds the element cache settings.
type CacheConfig struct {
	Disabled bool `yaml:"disabled"`
	Size     int  `yaml:"size"`
	TTL      int  `yaml:"ttl"`
}

// JobConfig holds the job bookkeeping settings.
type JobConfig struct {
	// MaxCount limits the number of running jobs of a type per user.
	MaxCount map[string]int `yaml:"max_count"`
}

// Config holds the complete configuration details of forge.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Order    OrderConfig    `yaml:"order"`
	Cache    CacheConfig    `yaml:"cache"`
	Job      JobConfig      `yaml:"job"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in values left unset by the configuration file.
func (c *Config) applyDefaults() {
	if c.Order.Scale < constants.MinOrderScale {
		c.Order.Scale = constants.MinOrderScale
	}
	if c.Order.Scale > constants.MaxOrderScale {
		c.Order.Scale = constants.MaxOrderScale
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = defaultCacheSize
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = defaultCacheTTL
	}
	if c.Job.MaxCount == nil {
		c.Job.MaxCount = map[string]int{}
	}
}

// DefaultConfig returns a configuration with every default applied, backed by local SQLite files.
func DefaultConfig() *Config {
	cfg := &Config{
		Database: DatabaseConfig{
			Builder: DataSource{Type: "sqlite", Path: "repository/database/builder.db", MaxOpenConns: 1},
			Tables:  DataSource{Type: "sqlite", Path: "repository/database/tables.db", MaxOpenConns: 1},
		},
	}
	cfg.applyDefaults()
	return cfg
}
