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

// Package store provides the persistence of jobs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/job/constants"
	"github.com/asgardeo/forge/internal/job/model"
	sysconstants "github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	dbutils "github.com/asgardeo/forge/internal/system/database/utils"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
)

const loggerComponentName = "JobStore"

// JobStoreInterface defines the persistence operations of jobs.
type JobStoreInterface interface {
	// CreateJob inserts a pending job unless the user already runs maxCount jobs of its type.
	// A maxCount of zero or less disables the limit.
	CreateJob(job model.Job, maxCount int) (*model.Job, error)
	GetJob(jobID int64) (*model.Job, error)
	UpdateJobProgress(jobID int64, percentage int) error
	// UpdateJobState writes the state and the outcome of a job.
	UpdateJobState(job model.Job) error
}

type jobStore struct {
	dbProvider provider.DBProviderInterface
}

// NewJobStore creates a new instance of the job store.
func NewJobStore(dbProvider provider.DBProviderInterface) JobStoreInterface {
	return &jobStore{dbProvider: dbProvider}
}

func (s *jobStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.BuilderDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// CreateJob counts the running jobs and inserts the job in one transaction.
func (s *jobStore) CreateJob(job model.Job, maxCount int) (*model.Job, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	params := job.Params
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	err = dbutils.WithTx(dbClient, func(tx dbmodel.TxInterface) error {
		if maxCount > 0 {
			results, err := tx.Query(QueryCountRunningJobs, job.UserID, job.Type)
			if err != nil {
				return fmt.Errorf("failed to execute query: %w", err)
			}
			running := int64(0)
			if len(results) > 0 {
				if running, err = utils.ParseInt64(results[0]["job_count"]); err != nil {
					return err
				}
			}
			if running >= int64(maxCount) {
				return constants.ErrMaxJobCountExceeded
			}
		}

		results, err := tx.Query(QueryCreateJob, job.Type, job.UserID, string(model.StatePending), string(params))
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		if len(results) == 0 {
			return errors.New("job id was not returned")
		}
		job.ID, err = utils.ParseInt64(results[0]["job_id"])
		return err
	})
	if err != nil {
		return nil, err
	}

	job.State = model.StatePending
	job.Params = params
	job.Result = json.RawMessage(`{}`)
	logger.Debug("Job created", log.Int64("jobId", job.ID), log.String("type", job.Type))
	return &job, nil
}

// GetJob returns a job.
func (s *jobStore) GetJob(jobID int64) (*model.Job, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(QueryGetJobByID, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrJobDoesNotExist
	}
	return buildJobFromResultRow(results[0])
}

// UpdateJobProgress writes the progress of a job.
func (s *jobStore) UpdateJobProgress(jobID int64, percentage int) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	affected, err := dbClient.Execute(QueryUpdateJobProgress, jobID, percentage)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrJobDoesNotExist
	}
	return nil
}

// UpdateJobState writes the state, progress, errors and result of a job.
func (s *jobStore) UpdateJobState(job model.Job) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	result := job.Result
	if len(result) == 0 {
		result = json.RawMessage(`{}`)
	}
	affected, err := dbClient.Execute(QueryUpdateJobState, job.ID, string(job.State), job.ProgressPercentage,
		job.Error, job.HumanReadableError, job.ResultSize, string(result))
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrJobDoesNotExist
	}
	return nil
}

func buildJobFromResultRow(row map[string]interface{}) (*model.Job, error) {
	jobID, err := utils.ParseInt64(row["job_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse job id: %w", err)
	}
	progress, err := utils.ParseInt64(row["progress_percentage"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse job progress: %w", err)
	}
	size, err := utils.ParseInt64(row["result_size"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse job result size: %w", err)
	}

	return &model.Job{
		ID:                 jobID,
		Type:               utils.ConvertInterfaceValueToString(row["type"]),
		UserID:             utils.ConvertInterfaceValueToString(row["user_id"]),
		State:              model.State(utils.ConvertInterfaceValueToString(row["state"])),
		ProgressPercentage: int(progress),
		Error:              utils.ConvertInterfaceValueToString(row["error"]),
		HumanReadableError: utils.ConvertInterfaceValueToString(row["human_readable_error"]),
		ResultSize:         int(size),
		Params:             json.RawMessage(utils.ConvertInterfaceValueToString(row["params"])),
		Result:             json.RawMessage(utils.ConvertInterfaceValueToString(row["result"])),
	}, nil
}
