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
	// QueryCreateDataSource is the query to create a data source.
	QueryCreateDataSource = dbmodel.DBQuery{
		ID: "DSRQ-DATASOURCE_MGT-00",
		Query: `INSERT INTO BUILDER_DATA_SOURCE (PAGE_ID, NAME, ORDER_VALUE, SERVICE_ID) ` +
			`VALUES ($1, $2, $3, $4) RETURNING DATA_SOURCE_ID`,
	}

	// QueryGetDataSourceByID is the query to get a data source by id.
	QueryGetDataSourceByID = dbmodel.DBQuery{
		ID: "DSRQ-DATASOURCE_MGT-01",
		Query: `SELECT DATA_SOURCE_ID, PAGE_ID, NAME, ORDER_VALUE, SERVICE_ID FROM BUILDER_DATA_SOURCE ` +
			`WHERE DATA_SOURCE_ID = $1`,
	}

	// QueryGetDataSourcesByPage is the query to get the data sources of a page.
	QueryGetDataSourcesByPage = dbmodel.DBQuery{
		ID: "DSRQ-DATASOURCE_MGT-02",
		Query: `SELECT DATA_SOURCE_ID, PAGE_ID, NAME, ORDER_VALUE, SERVICE_ID FROM BUILDER_DATA_SOURCE ` +
			`WHERE PAGE_ID = $1`,
	}

	// QueryUpdateDataSource is the query to update the name and the service of a data source.
	QueryUpdateDataSource = dbmodel.DBQuery{
		ID:    "DSRQ-DATASOURCE_MGT-03",
		Query: `UPDATE BUILDER_DATA_SOURCE SET NAME = $2, SERVICE_ID = $3 WHERE DATA_SOURCE_ID = $1`,
	}

	// QueryUpdateDataSourceOrder is the query to update the order of a data source.
	QueryUpdateDataSourceOrder = dbmodel.DBQuery{
		ID:    "DSRQ-DATASOURCE_MGT-04",
		Query: `UPDATE BUILDER_DATA_SOURCE SET ORDER_VALUE = $2 WHERE DATA_SOURCE_ID = $1`,
	}

	// QueryDeleteDataSource is the query to delete a data source.
	QueryDeleteDataSource = dbmodel.DBQuery{
		ID:    "DSRQ-DATASOURCE_MGT-05",
		Query: `DELETE FROM BUILDER_DATA_SOURCE WHERE DATA_SOURCE_ID = $1`,
	}
)
