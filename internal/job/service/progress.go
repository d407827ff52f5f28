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
	"sync"

	"github.com/asgardeo/forge/internal/job/store"
	"github.com/asgardeo/forge/internal/system/log"
)

// Progress tracks the completed percentage of a running job. Only changes are persisted.
type Progress struct {
	mu      sync.Mutex
	jobID   int64
	store   store.JobStoreInterface
	current int
}

func newProgress(jobID int64, jobStore store.JobStoreInterface) *Progress {
	return &Progress{jobID: jobID, store: jobStore}
}

// SetProgress records the percentage, clamped to 0..100.
func (p *Progress) SetProgress(percentage int) {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if percentage == p.current {
		return
	}
	p.current = percentage
	if err := p.store.UpdateJobProgress(p.jobID, percentage); err != nil {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
		logger.Warn("Failed to persist job progress", log.Int64("jobId", p.jobID), log.Error(err))
	}
}

// Percentage returns the last recorded percentage.
func (p *Progress) Percentage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
