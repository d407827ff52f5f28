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

import dbmodel "github.com/asgardeo/forge/internal/system/database/model"

var (
	// QueryCreateApplication is the query to create an application.
	QueryCreateApplication = dbmodel.DBQuery{
		ID:    "ASQ-APP_MGT-00",
		Query: `INSERT INTO BUILDER_APPLICATION (NAME) VALUES ($1) RETURNING APPLICATION_ID`,
	}
	// QueryGetApplicationByID is the query to get an application by id.
	QueryGetApplicationByID = dbmodel.DBQuery{
		ID:    "ASQ-APP_MGT-01",
		Query: `SELECT APPLICATION_ID, NAME FROM BUILDER_APPLICATION WHERE APPLICATION_ID = $1`,
	}
	// QueryGetApplicationList is the query to list the applications.
	QueryGetApplicationList = dbmodel.DBQuery{
		ID:    "ASQ-APP_MGT-02",
		Query: `SELECT APPLICATION_ID, NAME FROM BUILDER_APPLICATION ORDER BY APPLICATION_ID`,
	}
	// QueryUpdateApplication is the query to rename an application.
	QueryUpdateApplication = dbmodel.DBQuery{
		ID:    "ASQ-APP_MGT-03",
		Query: `UPDATE BUILDER_APPLICATION SET NAME = $2 WHERE APPLICATION_ID = $1`,
	}
	// QueryDeleteApplication is the query to delete an application.
	QueryDeleteApplication = dbmodel.DBQuery{
		ID:    "ASQ-APP_MGT-04",
		Query: `DELETE FROM BUILDER_APPLICATION WHERE APPLICATION_ID = $1`,
	}
)
