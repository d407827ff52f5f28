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
	"strings"

	"github.com/asgardeo/forge/internal/order/model"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	dbutils "github.com/asgardeo/forge/internal/system/database/utils"
)

// buildLockParentQuery locks the parent row so concurrent placements in the scope serialize.
// SQLite serializes writers at the database level and has no row locks.
func buildLockParentQuery(c model.Collection) (dbmodel.DBQuery, error) {
	if err := validate(c); err != nil {
		return dbmodel.DBQuery{}, err
	}
	base := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", c.ParentIDColumn, c.ParentTable, c.ParentIDColumn)
	return dbmodel.DBQuery{
		ID:            "ORQ-" + strings.ToUpper(c.Name) + "-00",
		Query:         base,
		PostgresQuery: base + " FOR UPDATE",
	}, nil
}

// buildGetSiblingsQuery selects the id and order of every item under a parent.
func buildGetSiblingsQuery(c model.Collection) (dbmodel.DBQuery, error) {
	if err := validate(c); err != nil {
		return dbmodel.DBQuery{}, err
	}
	return dbmodel.DBQuery{
		ID: "ORQ-" + strings.ToUpper(c.Name) + "-01",
		Query: fmt.Sprintf("SELECT %s AS ITEM_ID, ORDER_VALUE FROM %s WHERE %s = $1",
			c.IDColumn, c.Table, c.ParentColumn),
	}, nil
}

// buildUpdateOrderQuery sets the order of one item.
func buildUpdateOrderQuery(c model.Collection) (dbmodel.DBQuery, error) {
	if err := validate(c); err != nil {
		return dbmodel.DBQuery{}, err
	}
	return dbmodel.DBQuery{
		ID:    "ORQ-" + strings.ToUpper(c.Name) + "-02",
		Query: fmt.Sprintf("UPDATE %s SET ORDER_VALUE = $1 WHERE %s = $2", c.Table, c.IDColumn),
	}, nil
}

// buildGetParentQuery returns the parent of one item.
func buildGetParentQuery(c model.Collection) (dbmodel.DBQuery, error) {
	if err := validate(c); err != nil {
		return dbmodel.DBQuery{}, err
	}
	return dbmodel.DBQuery{
		ID: "ORQ-" + strings.ToUpper(c.Name) + "-03",
		Query: fmt.Sprintf("SELECT %s AS PARENT_ID FROM %s WHERE %s = $1",
			c.ParentColumn, c.Table, c.IDColumn),
	}, nil
}

func validate(c model.Collection) error {
	for _, identifier := range []string{c.Table, c.IDColumn, c.ParentColumn, c.ParentTable, c.ParentIDColumn} {
		if err := dbutils.ValidateIdentifier(identifier); err != nil {
			return err
		}
	}
	return nil
}
