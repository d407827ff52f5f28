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
	// QueryCreatePage is the query to create a page.
	QueryCreatePage = dbmodel.DBQuery{
		ID: "PAGQ-PAGE_MGT-00",
		Query: `INSERT INTO BUILDER_PAGE (APPLICATION_ID, NAME, PATH, PATH_PARAMS, ORDER_VALUE) ` +
			`VALUES ($1, $2, $3, $4, $5) RETURNING PAGE_ID`,
	}

	// QueryGetPageByID is the query to get a page by id.
	QueryGetPageByID = dbmodel.DBQuery{
		ID: "PAGQ-PAGE_MGT-01",
		Query: `SELECT PAGE_ID, APPLICATION_ID, NAME, PATH, PATH_PARAMS, ORDER_VALUE FROM BUILDER_PAGE ` +
			`WHERE PAGE_ID = $1`,
	}

	// QueryGetPagesByApplication is the query to get the pages of an application.
	QueryGetPagesByApplication = dbmodel.DBQuery{
		ID: "PAGQ-PAGE_MGT-02",
		Query: `SELECT PAGE_ID, APPLICATION_ID, NAME, PATH, PATH_PARAMS, ORDER_VALUE FROM BUILDER_PAGE ` +
			`WHERE APPLICATION_ID = $1`,
	}

	// QueryUpdatePage is the query to update the name and the path of a page.
	QueryUpdatePage = dbmodel.DBQuery{
		ID:    "PAGQ-PAGE_MGT-03",
		Query: `UPDATE BUILDER_PAGE SET NAME = $2, PATH = $3, PATH_PARAMS = $4 WHERE PAGE_ID = $1`,
	}

	// QueryUpdatePageOrder is the query to update the order of a page.
	QueryUpdatePageOrder = dbmodel.DBQuery{
		ID:    "PAGQ-PAGE_MGT-04",
		Query: `UPDATE BUILDER_PAGE SET ORDER_VALUE = $2 WHERE PAGE_ID = $1`,
	}

	// QueryDeletePage is the query to delete a page.
	QueryDeletePage = dbmodel.DBQuery{
		ID:    "PAGQ-PAGE_MGT-05",
		Query: `DELETE FROM BUILDER_PAGE WHERE PAGE_ID = $1`,
	}
)
