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

// Package model defines the pages of builder applications.
package model

// EntityType is the entity type reported in page signals.
const EntityType = "page"

// Path parameter types.
const (
	PathParamTypeText    = "text"
	PathParamTypeNumeric = "numeric"
)

// PathParam is a named segment of a page path, written ":<name>" in the path.
type PathParam struct {
	Name string `json:"name"`
	Type string `json:"param_type"`
}

// Page is an ordered page of a builder application.
type Page struct {
	ID         int64       `json:"id"`
	BuilderID  int64       `json:"builder_id"`
	Name       string      `json:"name"`
	Path       string      `json:"path"`
	PathParams []PathParam `json:"path_params"`
	Order      string      `json:"order"`
}

// CreatePageRequest holds the attributes of a new page.
type CreatePageRequest struct {
	Name       string
	Path       string
	PathParams []PathParam
	// BeforeID places the page before this page of the application. Nil places it last.
	BeforeID *int64
}

// UpdatePageRequest holds the attributes to change. Nil fields are kept.
type UpdatePageRequest struct {
	Name       *string
	Path       *string
	PathParams *[]PathParam
}

// DuplicateResult reports a duplicated page with the number of copied children.
type DuplicateResult struct {
	Page        *Page `json:"page"`
	DataSources int   `json:"data_sources"`
	Elements    int   `json:"elements"`
}

// ProgressFunc receives the completed percentage of a long running page operation.
type ProgressFunc func(percentage int)
