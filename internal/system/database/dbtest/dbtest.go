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

// Package dbtest provides in-memory SQLite databases with the forge schema applied, for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	"github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/schema"

	_ "modernc.org/sqlite"
)

// Provider serves the same client for every database name.
type Provider struct {
	Client client.DBClientInterface
}

// GetDBClient returns the shared client.
func (p *Provider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	return p.Client, nil
}

// NewClient opens an in-memory SQLite database holding both the builder and tables schemas.
// The pool is limited to one connection, so a caller holding a transaction must run every
// statement through it.
func NewClient(t testing.TB) client.DBClientInterface {
	t.Helper()

	db, err := sqlx.Open(model.DBTypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	dbClient := client.NewDBClient(db, model.DBTypeSQLite)
	migrator := schema.NewMigrator(dbClient)
	for _, dbName := range []string{constants.BuilderDatabase, constants.TablesDatabase} {
		if err := migrator.Migrate(dbName); err != nil {
			t.Fatalf("failed to apply %s schema: %v", dbName, err)
		}
	}

	t.Cleanup(func() {
		_ = dbClient.Close()
	})
	return dbClient
}

// NewProvider returns a provider backed by a fresh in-memory database.
func NewProvider(t testing.TB) *Provider {
	t.Helper()
	return &Provider{Client: NewClient(t)}
}

// MustExec runs a raw statement and fails the test on error.
func MustExec(t testing.TB, dbClient client.DBClientInterface, statement string, args ...interface{}) {
	t.Helper()
	query := model.DBQuery{ID: fmt.Sprintf("DBTEST-%d", len(statement)), Query: statement}
	if _, err := dbClient.Execute(query, args...); err != nil {
		t.Fatalf("failed to execute %q: %v", statement, err)
	}
}
