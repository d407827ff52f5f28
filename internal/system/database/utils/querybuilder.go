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

// Package utils provides helpers for building dynamic database queries.
package utils

import (
	"fmt"
	"strings"

	"github.com/asgardeo/forge/internal/system/database/model"
)

// ValidateIdentifier ensures that a table or column name contains only safe characters.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier must not be empty")
	}
	for _, char := range name {
		if !(char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' ||
			char >= '0' && char <= '9' || char == '_') {
			return fmt.Errorf("identifier '%s' contains invalid characters", name)
		}
	}
	return nil
}

// Placeholders returns count positional placeholders starting at $start, joined by commas.
func Placeholders(start, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

// BuildInsertQuery builds an INSERT statement for the given columns returning the given column.
func BuildInsertQuery(queryID, table string, columns []string, returning string) (model.DBQuery, error) {
	if err := validateAll(append([]string{table, returning}, columns...)); err != nil {
		return model.DBQuery{}, err
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(columns, ", "), Placeholders(1, len(columns)), returning)
	return model.DBQuery{ID: queryID, Query: query}, nil
}

// BuildUpdateQuery builds an UPDATE statement setting the given columns. The key column is bound
// after every set column.
func BuildUpdateQuery(queryID, table string, columns []string, keyColumn string) (model.DBQuery, error) {
	if len(columns) == 0 {
		return model.DBQuery{}, fmt.Errorf("at least one column is required")
	}
	if err := validateAll(append([]string{table, keyColumn}, columns...)); err != nil {
		return model.DBQuery{}, err
	}

	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(assignments, ", "), keyColumn, len(columns)+1)
	return model.DBQuery{ID: queryID, Query: query}, nil
}

// BuildInClauseQuery appends "column IN (...)" for count values to the base query. The base query
// binds offset placeholders before the clause.
func BuildInClauseQuery(queryID, baseQuery, column string, offset, count int) (model.DBQuery, error) {
	if err := ValidateIdentifier(column); err != nil {
		return model.DBQuery{}, err
	}
	if count == 0 {
		return model.DBQuery{}, fmt.Errorf("at least one value is required")
	}

	joiner := " WHERE "
	if strings.Contains(strings.ToUpper(baseQuery), " WHERE ") {
		joiner = " AND "
	}
	query := fmt.Sprintf("%s%s%s IN (%s)", baseQuery, joiner, column, Placeholders(offset+1, count))
	return model.DBQuery{ID: queryID, Query: query}, nil
}

func validateAll(names []string) error {
	for _, name := range names {
		if err := ValidateIdentifier(name); err != nil {
			return err
		}
	}
	return nil
}
