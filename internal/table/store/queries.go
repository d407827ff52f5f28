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

package store

import (
	"fmt"

	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
)

var (
	// QueryCreateTable is the query to create a table.
	QueryCreateTable = dbmodel.DBQuery{
		ID:    "TBQ-TABLE_MGT-00",
		Query: `INSERT INTO DATABASE_TABLE (NAME) VALUES ($1) RETURNING TABLE_ID`,
	}

	// QueryGetTableByID is the query to get a table by id.
	QueryGetTableByID = dbmodel.DBQuery{
		ID:    "TBQ-TABLE_MGT-01",
		Query: `SELECT TABLE_ID, NAME FROM DATABASE_TABLE WHERE TABLE_ID = $1`,
	}

	// QueryLockTable is the query to lock a table while a row order is allocated.
	QueryLockTable = dbmodel.DBQuery{
		ID:            "TBQ-TABLE_MGT-02",
		Query:         `SELECT TABLE_ID FROM DATABASE_TABLE WHERE TABLE_ID = $1`,
		PostgresQuery: `SELECT TABLE_ID FROM DATABASE_TABLE WHERE TABLE_ID = $1 FOR UPDATE`,
	}

	// QueryCreateField is the query to create a field.
	QueryCreateField = dbmodel.DBQuery{
		ID: "TBQ-TABLE_MGT-03",
		Query: `INSERT INTO DATABASE_FIELD (TABLE_ID, NAME, TYPE, FIELD_ORDER, IS_PRIMARY, ` +
			`NUMBER_DECIMAL_PLACES, SELECT_OPTIONS) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING FIELD_ID`,
	}

	// QueryGetFieldsByTableID is the query to get the fields of a table.
	QueryGetFieldsByTableID = dbmodel.DBQuery{
		ID: "TBQ-TABLE_MGT-04",
		Query: `SELECT FIELD_ID, TABLE_ID, NAME, TYPE, FIELD_ORDER, IS_PRIMARY, NUMBER_DECIMAL_PLACES, ` +
			`SELECT_OPTIONS FROM DATABASE_FIELD WHERE TABLE_ID = $1 ORDER BY FIELD_ORDER, FIELD_ID`,
	}

	// QueryGetFieldByID is the query to get a field by id.
	QueryGetFieldByID = dbmodel.DBQuery{
		ID: "TBQ-TABLE_MGT-05",
		Query: `SELECT FIELD_ID, TABLE_ID, NAME, TYPE, FIELD_ORDER, IS_PRIMARY, NUMBER_DECIMAL_PLACES, ` +
			`SELECT_OPTIONS FROM DATABASE_FIELD WHERE FIELD_ID = $1`,
	}

	// QueryCreateView is the query to create a view.
	QueryCreateView = dbmodel.DBQuery{
		ID: "TBQ-TABLE_MGT-06",
		Query: `INSERT INTO DATABASE_VIEW (TABLE_ID, NAME, FILTER_TYPE, FILTERS_DISABLED, FILTERS, SORTINGS) ` +
			`VALUES ($1, $2, $3, $4, $5, $6) RETURNING VIEW_ID`,
	}

	// QueryGetViewByID is the query to get a view by id.
	QueryGetViewByID = dbmodel.DBQuery{
		ID: "TBQ-TABLE_MGT-07",
		Query: `SELECT VIEW_ID, TABLE_ID, NAME, FILTER_TYPE, FILTERS_DISABLED, FILTERS, SORTINGS ` +
			`FROM DATABASE_VIEW WHERE VIEW_ID = $1`,
	}
)

// buildCreateRowTableQuery creates the table holding the rows of a table.
func buildCreateRowTableQuery(rowTable string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID: "TBQ-ROW_MGT-00",
		PostgresQuery: fmt.Sprintf(`CREATE TABLE %s (ID INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY, `+
			`ORDER_VALUE NUMERIC NOT NULL)`, rowTable),
		SQLiteQuery: fmt.Sprintf(`CREATE TABLE %s (ID INTEGER PRIMARY KEY AUTOINCREMENT, `+
			`ORDER_VALUE TEXT NOT NULL)`, rowTable),
	}
}

// buildAddFieldColumnQuery adds the column of a field to the row table.
func buildAddFieldColumnQuery(rowTable, column string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID:    "TBQ-ROW_MGT-01",
		Query: fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s TEXT`, rowTable, column),
	}
}

func buildGetRowsQuery(rowTable string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID:    "TBQ-ROW_MGT-02",
		Query: fmt.Sprintf(`SELECT * FROM %s`, rowTable),
	}
}

func buildGetRowByIDQuery(rowTable string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID:    "TBQ-ROW_MGT-03",
		Query: fmt.Sprintf(`SELECT * FROM %s WHERE ID = $1`, rowTable),
	}
}

func buildGetRowOrdersQuery(rowTable string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID:    "TBQ-ROW_MGT-04",
		Query: fmt.Sprintf(`SELECT ID, ORDER_VALUE FROM %s`, rowTable),
	}
}
