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
	// QueryCreateJob is the query to create a job.
	QueryCreateJob = dbmodel.DBQuery{
		ID: "JOBQ-JOB_MGT-00",
		Query: `INSERT INTO JOB (TYPE, USER_ID, STATE, PARAMS) VALUES ($1, $2, $3, $4) ` +
			`RETURNING JOB_ID`,
	}

	// QueryGetJobByID is the query to get a job by id.
	QueryGetJobByID = dbmodel.DBQuery{
		ID: "JOBQ-JOB_MGT-01",
		Query: `SELECT JOB_ID, TYPE, USER_ID, STATE, PROGRESS_PERCENTAGE, ERROR, HUMAN_READABLE_ERROR, ` +
			`RESULT_SIZE, PARAMS, RESULT FROM JOB WHERE JOB_ID = $1`,
	}

	// QueryCountRunningJobs is the query to count the running jobs of a type for a user.
	QueryCountRunningJobs = dbmodel.DBQuery{
		ID: "JOBQ-JOB_MGT-02",
		Query: `SELECT COUNT(*) AS JOB_COUNT FROM JOB WHERE USER_ID = $1 AND TYPE = $2 ` +
			`AND STATE IN ('pending', 'started')`,
	}

	// QueryUpdateJobProgress is the query to update the progress of a job.
	QueryUpdateJobProgress = dbmodel.DBQuery{
		ID:    "JOBQ-JOB_MGT-03",
		Query: `UPDATE JOB SET PROGRESS_PERCENTAGE = $2, UPDATED_AT = CURRENT_TIMESTAMP WHERE JOB_ID = $1`,
	}

	// QueryUpdateJobState is the query to update the state and the outcome of a job.
	QueryUpdateJobState = dbmodel.DBQuery{
		ID: "JOBQ-JOB_MGT-04",
		Query: `UPDATE JOB SET STATE = $2, PROGRESS_PERCENTAGE = $3, ERROR = $4, HUMAN_READABLE_ERROR = $5, ` +
			`RESULT_SIZE = $6, RESULT = $7, UPDATED_AT = CURRENT_TIMESTAMP WHERE JOB_ID = $1`,
	}
)
