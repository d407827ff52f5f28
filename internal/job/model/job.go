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

// Package model defines the bookkeeping of long running jobs.
package model

import "encoding/json"

// State is the lifecycle state of a job.
type State string

// Job states. Pending and started jobs are running.
const (
	StatePending  State = "pending"
	StateStarted  State = "started"
	StateFinished State = "finished"
	StateFailed   State = "failed"
)

// IsRunning reports whether the job has not ended yet.
func (s State) IsRunning() bool {
	return s == StatePending || s == StateStarted
}

// Job is the record of one run of a job type for a user.
type Job struct {
	ID                 int64           `json:"id"`
	Type               string          `json:"type"`
	UserID             string          `json:"user_id"`
	State              State           `json:"state"`
	ProgressPercentage int             `json:"progress_percentage"`
	Error              string          `json:"error"`
	HumanReadableError string          `json:"human_readable_error"`
	ResultSize         int             `json:"result_size"`
	Params             json.RawMessage `json:"params"`
	Result             json.RawMessage `json:"result"`
}

// RunError is a job failure with a message meant for the user.
type RunError struct {
	Err           error
	HumanReadable string
}

func (e *RunError) Error() string {
	return e.Err.Error()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// RunResult is the outcome of a successful job run.
type RunResult struct {
	Result interface{}
	Size   int
}
