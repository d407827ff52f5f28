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

package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/forge/internal/job/constants"
	"github.com/asgardeo/forge/internal/job/model"
	"github.com/asgardeo/forge/internal/job/store"
	"github.com/asgardeo/forge/internal/system/database/dbtest"
)

type fakeJobType struct {
	name     string
	maxCount int
	run      func(job *model.Job, progress *Progress) (*model.RunResult, error)
}

func (f *fakeJobType) Type() string {
	return f.name
}

func (f *fakeJobType) MaxCount() int {
	return f.maxCount
}

func (f *fakeJobType) PrepareParams(params json.RawMessage) error {
	if string(params) == `"bad"` {
		return errors.New("bad params")
	}
	return nil
}

func (f *fakeJobType) Run(job *model.Job, progress *Progress) (*model.RunResult, error) {
	return f.run(job, progress)
}

type JobHandlerTestSuite struct {
	suite.Suite
	store   store.JobStoreInterface
	handler *JobHandler
	echo    *fakeJobType
}

func TestJobHandlerSuite(t *testing.T) {
	suite.Run(t, new(JobHandlerTestSuite))
}

func (suite *JobHandlerTestSuite) SetupTest() {
	suite.store = store.NewJobStore(dbtest.NewProvider(suite.T()))
	suite.echo = &fakeJobType{
		name:     "echo",
		maxCount: 3,
		run: func(job *model.Job, progress *Progress) (*model.RunResult, error) {
			progress.SetProgress(50)
			return &model.RunResult{Result: map[string]string{"echo": string(job.Params)}, Size: 1}, nil
		},
	}
	suite.handler = NewJobHandler(suite.store, NewRegistry(suite.echo), nil)
}

func (suite *JobHandlerTestSuite) TestCreateAndStartJob() {
	job, svcErr := suite.handler.CreateAndStartJob("ada", "echo", json.RawMessage(`{"page_id":1}`))
	suite.Require().Nil(svcErr)
	suite.Equal(model.StateFinished, job.State)
	suite.Equal(100, job.ProgressPercentage)
	suite.Equal(1, job.ResultSize)
	suite.JSONEq(`{"echo":"{\"page_id\":1}"}`, string(job.Result))
	suite.JSONEq(`{"page_id":1}`, string(job.Params))
	suite.Equal("ada", job.UserID)
}

func (suite *JobHandlerTestSuite) TestCreateAndStartJobUnknownType() {
	_, svcErr := suite.handler.CreateAndStartJob("ada", "missing", nil)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorUnknownJobType.Code, svcErr.Code)
	suite.Equal("The job type 'missing' does not exist.", svcErr.ErrorDescription)
}

func (suite *JobHandlerTestSuite) TestCreateAndStartJobInvalidParams() {
	_, svcErr := suite.handler.CreateAndStartJob("ada", "echo", json.RawMessage(`"bad"`))
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorInvalidJobParams.Code, svcErr.Code)
	suite.Equal("bad params", svcErr.ErrorDescription)
}

func (suite *JobHandlerTestSuite) TestMaxJobCount() {
	suite.handler.SetRunner(func(jobID int64) error { return nil })

	for i := 0; i < 3; i++ {
		job, svcErr := suite.handler.CreateAndStartJob("ada", "echo", nil)
		suite.Require().Nil(svcErr)
		suite.Equal(model.StatePending, job.State)
	}

	_, svcErr := suite.handler.CreateAndStartJob("ada", "echo", nil)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorMaxJobCountExceeded.Code, svcErr.Code)
	suite.Equal("You can only run 3 'echo' jobs at the same time.", svcErr.ErrorDescription)

	// The limit is per user.
	_, svcErr = suite.handler.CreateAndStartJob("grace", "echo", nil)
	suite.Nil(svcErr)
}

func (suite *JobHandlerTestSuite) TestMaxJobCountOverride() {
	handler := NewJobHandler(suite.store, NewRegistry(suite.echo), map[string]int{"echo": 1})
	handler.SetRunner(func(jobID int64) error { return nil })

	_, svcErr := handler.CreateAndStartJob("ada", "echo", nil)
	suite.Require().Nil(svcErr)
	_, svcErr = handler.CreateAndStartJob("ada", "echo", nil)
	suite.Require().NotNil(svcErr)
	suite.Equal("You can only run 1 'echo' jobs at the same time.", svcErr.ErrorDescription)
}

func (suite *JobHandlerTestSuite) TestFinishedJobsDoNotCount() {
	for i := 0; i < 5; i++ {
		_, svcErr := suite.handler.CreateAndStartJob("ada", "echo", nil)
		suite.Require().Nil(svcErr)
	}
}

func (suite *JobHandlerTestSuite) TestGetJob() {
	job, svcErr := suite.handler.CreateAndStartJob("ada", "echo", nil)
	suite.Require().Nil(svcErr)

	fetched, svcErr := suite.handler.GetJob("ada", job.ID)
	suite.Require().Nil(svcErr)
	suite.Equal(job.ID, fetched.ID)

	_, svcErr = suite.handler.GetJob("grace", job.ID)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorJobDoesNotExist.Code, svcErr.Code)

	_, svcErr = suite.handler.GetJob("ada", 999)
	suite.Require().NotNil(svcErr)
	suite.Equal("The job with ID 999 does not exist.", svcErr.ErrorDescription)
}

func (suite *JobHandlerTestSuite) TestRunErrorIsRecorded() {
	suite.handler.registry.Register(&fakeJobType{
		name: "fail",
		run: func(job *model.Job, progress *Progress) (*model.RunResult, error) {
			progress.SetProgress(30)
			return nil, &model.RunError{Err: errors.New("PAG-1001: Page not found"),
				HumanReadable: "The page with ID 4 does not exist."}
		},
	})

	job, svcErr := suite.handler.CreateAndStartJob("ada", "fail", nil)
	suite.Require().Nil(svcErr)
	suite.Equal(model.StateFailed, job.State)
	suite.Equal("PAG-1001: Page not found", job.Error)
	suite.Equal("The page with ID 4 does not exist.", job.HumanReadableError)
	suite.Equal(30, job.ProgressPercentage)
}

func (suite *JobHandlerTestSuite) TestRunPanicIsRecorded() {
	suite.handler.registry.Register(&fakeJobType{
		name: "panic",
		run: func(job *model.Job, progress *Progress) (*model.RunResult, error) {
			panic("boom")
		},
	})

	job, svcErr := suite.handler.CreateAndStartJob("ada", "panic", nil)
	suite.Require().Nil(svcErr)
	suite.Equal(model.StateFailed, job.State)
	suite.Equal("job panicked: boom", job.Error)
	suite.Empty(job.HumanReadableError)
}

func (suite *JobHandlerTestSuite) TestRunnerFailureMarksJobFailed() {
	suite.handler.SetRunner(func(jobID int64) error { panic("queue unavailable") })

	job, svcErr := suite.handler.CreateAndStartJob("ada", "echo", nil)
	suite.Require().Nil(svcErr)
	suite.Equal(model.StateFailed, job.State)
	suite.Equal("queue unavailable", job.Error)

	stored, svcErr := suite.handler.GetJob("ada", job.ID)
	suite.Require().Nil(svcErr)
	suite.Equal(model.StateFailed, stored.State)
}

func (suite *JobHandlerTestSuite) TestProgress() {
	suite.handler.SetRunner(func(jobID int64) error { return nil })
	job, svcErr := suite.handler.CreateAndStartJob("ada", "echo", nil)
	suite.Require().Nil(svcErr)

	progress := newProgress(job.ID, suite.store)
	progress.SetProgress(40)
	progress.SetProgress(40)
	suite.Equal(40, progress.Percentage())
	progress.SetProgress(140)
	suite.Equal(100, progress.Percentage())
	progress.SetProgress(-5)
	suite.Equal(0, progress.Percentage())
	progress.SetProgress(70)

	stored, err := suite.store.GetJob(job.ID)
	suite.Require().NoError(err)
	suite.Equal(70, stored.ProgressPercentage)
	suite.Equal(model.StatePending, stored.State)
}

func (suite *JobHandlerTestSuite) TestRegistryNames() {
	suite.handler.registry.Register(&fakeJobType{name: "alpha"})
	suite.Equal([]string{"alpha", "echo"}, suite.handler.registry.Names())
}
