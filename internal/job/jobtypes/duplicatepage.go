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

// Package jobtypes contains the job types run by the job handler.
package jobtypes

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/job/model"
	"github.com/asgardeo/forge/internal/job/service"
	pageservice "github.com/asgardeo/forge/internal/page/service"
)

// DuplicatePageType is the name of the page duplication job type.
const DuplicatePageType = "duplicate_page"

const duplicatePageMaxCount = 3

type duplicatePageParams struct {
	PageID int64 `json:"page_id"`
}

// DuplicatePageResult is the result of a finished page duplication.
type DuplicatePageResult struct {
	PageID      int64 `json:"page_id"`
	DataSources int   `json:"data_sources"`
	Elements    int   `json:"elements"`
}

// DuplicatePageJobType copies a page with its data sources and elements.
type DuplicatePageJobType struct {
	pages pageservice.PageServiceInterface
}

// NewDuplicatePageJobType creates a new instance of DuplicatePageJobType.
func NewDuplicatePageJobType(pages pageservice.PageServiceInterface) *DuplicatePageJobType {
	return &DuplicatePageJobType{pages: pages}
}

// Type returns the job type name.
func (d *DuplicatePageJobType) Type() string {
	return DuplicatePageType
}

// MaxCount returns the number of duplications a user may run at once.
func (d *DuplicatePageJobType) MaxCount() int {
	return duplicatePageMaxCount
}

// PrepareParams checks that a page id is given.
func (d *DuplicatePageJobType) PrepareParams(params json.RawMessage) error {
	_, err := decodeDuplicatePageParams(params)
	return err
}

// Run duplicates the page, reporting the progress of the copy.
func (d *DuplicatePageJobType) Run(job *model.Job, progress *service.Progress) (*model.RunResult, error) {
	params, err := decodeDuplicatePageParams(job.Params)
	if err != nil {
		return nil, err
	}

	result, svcErr := d.pages.DuplicatePage(params.PageID, job.UserID, progress.SetProgress)
	if svcErr != nil {
		return nil, &model.RunError{
			Err:           errors.New(svcErr.Summary()),
			HumanReadable: svcErr.Message(),
		}
	}

	return &model.RunResult{
		Result: DuplicatePageResult{
			PageID:      result.Page.ID,
			DataSources: result.DataSources,
			Elements:    result.Elements,
		},
		Size: result.DataSources + result.Elements,
	}, nil
}

func decodeDuplicatePageParams(raw json.RawMessage) (duplicatePageParams, error) {
	var params duplicatePageParams
	if len(raw) == 0 {
		return params, errors.New("the page_id parameter is required")
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("the job parameters are not valid JSON: %w", err)
	}
	if params.PageID <= 0 {
		return params, errors.New("the page_id parameter is required")
	}
	return params, nil
}
