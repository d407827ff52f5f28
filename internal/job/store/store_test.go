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
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/forge/internal/job/constants"
	"github.com/asgardeo/forge/internal/job/model"
	"github.com/asgardeo/forge/internal/system/database/client"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/tests/mocks/databasemock"
)

type JobStoreTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	store JobStoreInterface
}

func TestJobStoreSuite(t *testing.T) {
	suite.Run(t, new(JobStoreTestSuite))
}

func (suite *JobStoreTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { _ = db.Close() })
	suite.mock = mock

	dbClient := client.NewDBClient(dbmodel.NewDB(db, "sqlmock"), dbmodel.DBTypeSQLite)
	suite.store = NewJobStore(&databasemock.MockDBProvider{
		MockGetDBClient: func(dbName string) (client.DBClientInterface, error) {
			return dbClient, nil
		},
	})
}

func (suite *JobStoreTestSuite) TestCreateJob() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(QueryCountRunningJobs.Query).WithArgs("ada", "duplicate_page").
		WillReturnRows(sqlmock.NewRows([]string{"JOB_COUNT"}).AddRow(int64(2)))
	suite.mock.ExpectQuery(QueryCreateJob.Query).WithArgs("duplicate_page", "ada", "pending", `{"page_id":4}`).
		WillReturnRows(sqlmock.NewRows([]string{"JOB_ID"}).AddRow(int64(7)))
	suite.mock.ExpectCommit()

	job, err := suite.store.CreateJob(model.Job{Type: "duplicate_page", UserID: "ada",
		Params: json.RawMessage(`{"page_id":4}`)}, 3)
	suite.Require().NoError(err)
	suite.Equal(int64(7), job.ID)
	suite.Equal(model.StatePending, job.State)
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *JobStoreTestSuite) TestCreateJobMaxCountExceeded() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(QueryCountRunningJobs.Query).WithArgs("ada", "duplicate_page").
		WillReturnRows(sqlmock.NewRows([]string{"JOB_COUNT"}).AddRow(int64(3)))
	suite.mock.ExpectRollback()

	_, err := suite.store.CreateJob(model.Job{Type: "duplicate_page", UserID: "ada"}, 3)
	suite.True(errors.Is(err, constants.ErrMaxJobCountExceeded))
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *JobStoreTestSuite) TestCreateJobWithoutLimit() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(QueryCreateJob.Query).WithArgs("echo", "ada", "pending", `{}`).
		WillReturnRows(sqlmock.NewRows([]string{"JOB_ID"}).AddRow(int64(1)))
	suite.mock.ExpectCommit()

	job, err := suite.store.CreateJob(model.Job{Type: "echo", UserID: "ada"}, 0)
	suite.Require().NoError(err)
	suite.JSONEq(`{}`, string(job.Params))
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *JobStoreTestSuite) TestGetJobNotFound() {
	suite.mock.ExpectQuery(QueryGetJobByID.Query).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"JOB_ID"}))

	_, err := suite.store.GetJob(9)
	suite.True(errors.Is(err, constants.ErrJobDoesNotExist))
}

func (suite *JobStoreTestSuite) TestUpdateJobProgressNotFound() {
	suite.mock.ExpectExec(QueryUpdateJobProgress.Query).WithArgs(int64(9), 20).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := suite.store.UpdateJobProgress(9, 20)
	suite.True(errors.Is(err, constants.ErrJobDoesNotExist))
}
