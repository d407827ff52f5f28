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

// Package service creates, runs and reports the jobs of users.
package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/job/constants"
	"github.com/asgardeo/forge/internal/job/model"
	"github.com/asgardeo/forge/internal/job/store"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/log"
)

const loggerComponentName = "JobHandler"

// RunnerFunc starts a created job. It may run the job in place or hand it over.
type RunnerFunc func(jobID int64) error

// JobHandlerInterface defines the job operations.
type JobHandlerInterface interface {
	CreateAndStartJob(userID, jobType string, params json.RawMessage) (*model.Job, *serviceerror.ServiceError)
	GetJob(userID string, jobID int64) (*model.Job, *serviceerror.ServiceError)
	RunJob(jobID int64) (*model.Job, error)
}

// JobHandler is the default implementation of JobHandlerInterface.
type JobHandler struct {
	store     store.JobStoreInterface
	registry  *Registry
	maxCounts map[string]int
	runner    RunnerFunc
}

// NewJobHandler creates a new instance of JobHandler. maxCounts overrides the max count of job
// types by name. Jobs run in place until another runner is set.
func NewJobHandler(jobStore store.JobStoreInterface, registry *Registry, maxCounts map[string]int) *JobHandler {
	h := &JobHandler{
		store:     jobStore,
		registry:  registry,
		maxCounts: maxCounts,
	}
	h.runner = func(jobID int64) error {
		_, err := h.RunJob(jobID)
		return err
	}
	return h
}

// SetRunner replaces the function starting created jobs.
func (h *JobHandler) SetRunner(runner RunnerFunc) {
	h.runner = runner
}

// CreateAndStartJob creates a pending job and starts it. A runner error or panic marks the job
// failed; failures of the job itself are recorded on the job and do not fail the call.
func (h *JobHandler) CreateAndStartJob(userID, jobType string, params json.RawMessage) (*model.Job,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	registered, err := h.registry.Get(jobType)
	if err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorUnknownJobType,
			fmt.Sprintf("The job type '%s' does not exist.", jobType))
	}
	if err := registered.PrepareParams(params); err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidJobParams, err.Error())
	}

	maxCount := registered.MaxCount()
	if override, ok := h.maxCounts[jobType]; ok {
		maxCount = override
	}
	job, err := h.store.CreateJob(model.Job{Type: jobType, UserID: userID, Params: params}, maxCount)
	if err != nil {
		if errors.Is(err, constants.ErrMaxJobCountExceeded) {
			return nil, serviceerror.CustomServiceError(constants.ErrorMaxJobCountExceeded,
				fmt.Sprintf("You can only run %d '%s' jobs at the same time.", maxCount, jobType))
		}
		return nil, h.internalError("Failed to create job", err)
	}
	logger.Debug("Job created", log.Int64("jobId", job.ID), log.String("type", jobType),
		log.String("userId", userID))

	if err := h.start(job.ID); err != nil {
		logger.Error("Failed to start job", log.Int64("jobId", job.ID), log.Error(err))
		job.State = model.StateFailed
		job.Error = err.Error()
		if err := h.store.UpdateJobState(*job); err != nil {
			return nil, h.internalError("Failed to record job start failure", err)
		}
		return job, nil
	}

	current, err := h.store.GetJob(job.ID)
	if err != nil {
		return nil, h.internalError("Failed to get job", err)
	}
	return current, nil
}

func (h *JobHandler) start(jobID int64) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%v", recovered)
		}
	}()
	return h.runner(jobID)
}

// GetJob returns a job of the user. Jobs of other users do not exist for them.
func (h *JobHandler) GetJob(userID string, jobID int64) (*model.Job, *serviceerror.ServiceError) {
	job, err := h.store.GetJob(jobID)
	if err != nil {
		if errors.Is(err, constants.ErrJobDoesNotExist) {
			return nil, h.jobDoesNotExist(jobID)
		}
		return nil, h.internalError("Failed to get job", err)
	}
	if job.UserID != userID {
		return nil, h.jobDoesNotExist(jobID)
	}
	return job, nil
}

// RunJob runs a job through its type and records the outcome. The returned error reports
// bookkeeping failures only.
func (h *JobHandler) RunJob(jobID int64) (*model.Job, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.Int64("jobId", jobID))

	job, err := h.store.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	jobType, err := h.registry.Get(job.Type)
	if err != nil {
		return nil, err
	}

	job.State = model.StateStarted
	if err := h.store.UpdateJobState(*job); err != nil {
		return nil, err
	}

	progress := newProgress(job.ID, h.store)
	result, runErr := h.runSafely(jobType, job, progress)
	if runErr != nil {
		job.State = model.StateFailed
		job.Error = runErr.Error()
		var humanReadable *model.RunError
		if errors.As(runErr, &humanReadable) {
			job.HumanReadableError = humanReadable.HumanReadable
		}
		job.ProgressPercentage = progress.Percentage()
		logger.Debug("Job failed", log.String("type", job.Type), log.Error(runErr))
	} else {
		job.State = model.StateFinished
		job.ProgressPercentage = 100
		if result != nil {
			job.ResultSize = result.Size
			if result.Result != nil {
				raw, err := json.Marshal(result.Result)
				if err != nil {
					return nil, fmt.Errorf("failed to marshal job result: %w", err)
				}
				job.Result = raw
			}
		}
	}

	if err := h.store.UpdateJobState(*job); err != nil {
		return nil, err
	}
	return job, nil
}

func (h *JobHandler) runSafely(jobType JobTypeInterface, job *model.Job, progress *Progress) (result *model.RunResult,
	err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("job panicked: %v", recovered)
		}
	}()
	return jobType.Run(job, progress)
}

func (h *JobHandler) jobDoesNotExist(jobID int64) *serviceerror.ServiceError {
	return serviceerror.CustomServiceError(constants.ErrorJobDoesNotExist,
		fmt.Sprintf("The job with ID %d does not exist.", jobID))
}

func (h *JobHandler) internalError(message string, err error) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Error(message, log.Error(err))
	return &constants.ErrorInternalServerError
}
