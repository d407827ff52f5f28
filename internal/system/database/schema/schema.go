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

// Package schema applies the forge database schema.
package schema

import (
	"embed"
	"fmt"
	"strings"

	"github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	"github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/log"
)

const loggerComponentName = "SchemaMigrator"

//go:embed scripts/*.sql
var scripts embed.FS

// MigratorInterface defines the interface for applying a database schema.
type MigratorInterface interface {
	Migrate(dbName string) error
}

// Migrator applies the embedded schema scripts through a database client.
type Migrator struct {
	dbClient client.DBClientInterface
}

// NewMigrator creates a new instance of Migrator.
func NewMigrator(dbClient client.DBClientInterface) MigratorInterface {
	return &Migrator{
		dbClient: dbClient,
	}
}

// Migrate creates every table of the named database that does not exist yet.
func (m *Migrator) Migrate(dbName string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	statements, err := Statements(dbName, m.dbClient.GetDBType())
	if err != nil {
		return err
	}

	for i, statement := range statements {
		query := model.DBQuery{
			ID:    fmt.Sprintf("SCQ-%s-%02d", strings.ToUpper(dbName), i),
			Query: statement,
		}
		if _, err := m.dbClient.Execute(query); err != nil {
			return fmt.Errorf("failed to apply schema statement %s: %w", query.ID, err)
		}
	}

	logger.Info("Database schema applied", log.String("database", dbName),
		log.Int("statements", len(statements)))
	return nil
}

// Statements returns the schema statements of a database for the given dialect.
func Statements(dbName, dbType string) ([]string, error) {
	switch dbName {
	case constants.BuilderDatabase, constants.TablesDatabase:
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
	switch dbType {
	case model.DBTypePostgres, model.DBTypeSQLite:
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	content, err := scripts.ReadFile(fmt.Sprintf("scripts/%s_%s.sql", dbName, dbType))
	if err != nil {
		return nil, err
	}

	var statements []string
	for _, part := range strings.Split(string(content), ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements, nil
}
