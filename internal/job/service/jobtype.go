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
	"fmt"
	"sort"
	"sync"

	"github.com/asgardeo/forge/internal/job/model"
)

// JobTypeInterface runs the jobs of one type.
type JobTypeInterface interface {
	Type() string
	// MaxCount is the number of jobs of the type a user may run at once. Zero is unlimited.
	MaxCount() int
	// PrepareParams validates the parameters of a new job.
	PrepareParams(params json.RawMessage) error
	Run(job *model.Job, progress *Progress) (*model.RunResult, error)
}

// Registry holds the job types by name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]JobTypeInterface
}

// NewRegistry creates a registry holding the given job types.
func NewRegistry(types ...JobTypeInterface) *Registry {
	r := &Registry{types: make(map[string]JobTypeInterface)}
	for _, jobType := range types {
		r.Register(jobType)
	}
	return r
}

// Register adds or replaces a job type.
func (r *Registry) Register(jobType JobTypeInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[jobType.Type()] = jobType
}

// Get returns the job type with the given name.
func (r *Registry) Get(name string) (JobTypeInterface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobType, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown job type %q", name)
	}
	return jobType, nil
}

// Names returns the registered job type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
