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

// Package model defines the data structures and interfaces for database operations.
package model

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	// DBTypePostgres identifies a PostgreSQL database.
	DBTypePostgres = "postgres"
	// DBTypeSQLite identifies a SQLite database.
	DBTypeSQLite = "sqlite"
)

// DBQuery represents a database query with dialect specific variants.
type DBQuery struct {
	// ID is a unique identifier of the query used for logging.
	ID string
	// Query is the default query, used when no dialect variant is set.
	Query string
	// PostgresQuery is the variant used on PostgreSQL.
	PostgresQuery string
	// SQLiteQuery is the variant used on SQLite.
	SQLiteQuery string
}

// GetID returns the unique identifier of the query.
func (d DBQuery) GetID() string {
	return d.ID
}

// GetQuery returns the query to run against the given database type.
func (d DBQuery) GetQuery(dbType string) string {
	switch dbType {
	case DBTypePostgres:
		if d.PostgresQuery != "" {
			return d.PostgresQuery
		}
	case DBTypeSQLite:
		if d.SQLiteQuery != "" {
			return d.SQLiteQuery
		}
	}
	return d.Query
}

// DBInterface defines the wrapper interface for database operations.
type DBInterface interface {
	Queryx(query string, args ...any) (*sqlx.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
	Beginx() (*sqlx.Tx, error)
	Close() error
}

// NewDB wraps an opened sql.DB for the given driver.
func NewDB(db *sql.DB, driverName string) DBInterface {
	return sqlx.NewDb(db, driverName)
}

// QueryExecutor runs queries either directly on a database or inside a transaction.
type QueryExecutor interface {
	// Query executes a query that returns rows and returns the result as a slice of maps.
	Query(query DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	// Execute executes a query without returning rows and returns the number of rows affected.
	Execute(query DBQuery, args ...interface{}) (int64, error)
}

// TxInterface defines the wrapper interface for transaction management.
type TxInterface interface {
	QueryExecutor
	// Commit commits the transaction.
	Commit() error
	// Rollback rolls back the transaction.
	Rollback() error
}

// Tx is the implementation of TxInterface over an sqlx transaction.
type Tx struct {
	internal *sqlx.Tx
	dbType   string
}

// NewTx creates a new instance of Tx with the provided sqlx.Tx.
func NewTx(tx *sqlx.Tx, dbType string) TxInterface {
	return &Tx{
		internal: tx,
		dbType:   dbType,
	}
}

// Query executes a query inside the transaction.
func (t *Tx) Query(query DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := t.internal.Queryx(query.GetQuery(t.dbType), args...)
	if err != nil {
		return nil, err
	}
	return ScanRows(rows)
}

// Execute executes a statement inside the transaction.
func (t *Tx) Execute(query DBQuery, args ...interface{}) (int64, error) {
	res, err := t.internal.Exec(query.GetQuery(t.dbType), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.internal.Commit()
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback() error {
	return t.internal.Rollback()
}

// ScanRows reads every row into a map keyed by lower cased column name and closes the rows.
// Byte slices are converted to strings so callers see the same types on every driver.
func ScanRows(rows *sqlx.Rows) ([]map[string]interface{}, error) {
	defer func() {
		_ = rows.Close()
	}()

	var results []map[string]interface{}
	for rows.Next() {
		scanned := map[string]interface{}{}
		if err := rows.MapScan(scanned); err != nil {
			return nil, err
		}
		result := make(map[string]interface{}, len(scanned))
		for col, value := range scanned {
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			result[strings.ToLower(col)] = value
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
