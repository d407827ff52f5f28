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
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
)

var (
	// QueryCreateElement is the query to create an element.
	QueryCreateElement = dbmodel.DBQuery{
		ID: "ELMQ-ELEMENT_MGT-00",
		Query: `INSERT INTO BUILDER_ELEMENT (PAGE_ID, TYPE, ORDER_VALUE, CONFIG) VALUES ($1, $2, $3, $4) ` +
			`RETURNING ELEMENT_ID`,
	}

	// QueryGetElementByID is the query to get an element by id.
	QueryGetElementByID = dbmodel.DBQuery{
		ID:    "ELMQ-ELEMENT_MGT-01",
		Query: `SELECT ELEMENT_ID, PAGE_ID, TYPE, ORDER_VALUE, CONFIG FROM BUILDER_ELEMENT WHERE ELEMENT_ID = $1`,
	}

	// QueryGetElementsByPage is the query to get the elements of a page.
	QueryGetElementsByPage = dbmodel.DBQuery{
		ID:    "ELMQ-ELEMENT_MGT-02",
		Query: `SELECT ELEMENT_ID, PAGE_ID, TYPE, ORDER_VALUE, CONFIG FROM BUILDER_ELEMENT WHERE PAGE_ID = $1`,
	}

	// QueryUpdateElementConfig is the query to update the configuration of an element.
	QueryUpdateElementConfig = dbmodel.DBQuery{
		ID:    "ELMQ-ELEMENT_MGT-03",
		Query: `UPDATE BUILDER_ELEMENT SET CONFIG = $2 WHERE ELEMENT_ID = $1`,
	}

	// QueryUpdateElementOrder is the query to update the order of an element.
	QueryUpdateElementOrder = dbmodel.DBQuery{
		ID:    "ELMQ-ELEMENT_MGT-04",
		Query: `UPDATE BUILDER_ELEMENT SET ORDER_VALUE = $2 WHERE ELEMENT_ID = $1`,
	}

	// QueryDeleteElement is the query to delete an element.
	QueryDeleteElement = dbmodel.DBQuery{
		ID:    "ELMQ-ELEMENT_MGT-05",
		Query: `DELETE FROM BUILDER_ELEMENT WHERE ELEMENT_ID = $1`,
	}
)
