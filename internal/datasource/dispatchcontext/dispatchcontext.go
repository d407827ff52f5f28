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

// Package dispatchcontext resolves the formula references of a page request.
package dispatchcontext

import (
	"fmt"
	"strconv"
	"strings"

	servicemodel "github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/datasource/constants"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

const (
	// PageParameterPrefix is the first path segment of page parameter references.
	PageParameterPrefix = "page_parameter"
	// DataSourcePrefix is the first path segment of data source references.
	DataSourcePrefix = "data_source"
)

// DataSourceDispatcherInterface dispatches a data source within a dispatch context.
type DataSourceDispatcherInterface interface {
	DispatchInContext(ctx *BuilderDispatchContext, dataSourceID int64) (servicemodel.Payload,
		*serviceerror.ServiceError)
}

// DataSourceError carries the failure of a referenced data source through formula evaluation.
type DataSourceError struct {
	DataSourceID int64
	ServiceError *serviceerror.ServiceError
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %d: %s", e.DataSourceID, e.ServiceError.ErrorDescription)
}

type dispatchOutcome struct {
	payload servicemodel.Payload
	err     *serviceerror.ServiceError
}

// BuilderDispatchContext is the formula context of one page request. Data sources referenced by
// formulas are dispatched at most once per context.
type BuilderDispatchContext struct {
	pageID     int64
	params     map[string]interface{}
	dispatcher DataSourceDispatcherInterface
	outcomes   map[int64]dispatchOutcome
	inProgress map[int64]bool
}

var _ formula.ContextInterface = (*BuilderDispatchContext)(nil)

// NewBuilderDispatchContext creates the context of a request to the given page.
func NewBuilderDispatchContext(pageID int64, params map[string]interface{},
	dispatcher DataSourceDispatcherInterface) *BuilderDispatchContext {
	if params == nil {
		params = map[string]interface{}{}
	}
	return &BuilderDispatchContext{
		pageID:     pageID,
		params:     params,
		dispatcher: dispatcher,
		outcomes:   make(map[int64]dispatchOutcome),
		inProgress: make(map[int64]bool),
	}
}

// PageID returns the page of the request.
func (c *BuilderDispatchContext) PageID() int64 {
	return c.pageID
}

// Get resolves page_parameter.<name>... against the request parameters and
// data_source.<id>... against the payload of the data source.
func (c *BuilderDispatchContext) Get(path string) (interface{}, error) {
	segments := strings.Split(path, ".")
	switch segments[0] {
	case PageParameterPrefix:
		return formula.MapContext{PageParameterPrefix: c.params}.Get(path)
	case DataSourcePrefix:
		if len(segments) < 2 {
			return nil, fmt.Errorf("cannot resolve %q: missing data source id", path)
		}
		dataSourceID, err := strconv.ParseInt(segments[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve %q: invalid data source id", path)
		}
		payload, svcErr := c.DataSourcePayload(dataSourceID)
		if svcErr != nil {
			return nil, &DataSourceError{DataSourceID: dataSourceID, ServiceError: svcErr}
		}
		if len(segments) == 2 {
			return map[string]interface{}(payload), nil
		}
		return formula.MapContext(payload).Get(strings.Join(segments[2:], "."))
	}
	return nil, fmt.Errorf("cannot resolve %q: unknown reference", path)
}

// DataSourcePayload dispatches the data source once and returns the memoized outcome on later
// calls. A data source reached again while it is being dispatched is a cycle.
func (c *BuilderDispatchContext) DataSourcePayload(dataSourceID int64) (servicemodel.Payload,
	*serviceerror.ServiceError) {
	if outcome, ok := c.outcomes[dataSourceID]; ok {
		return outcome.payload, outcome.err
	}
	if c.inProgress[dataSourceID] {
		return nil, serviceerror.CustomServiceError(constants.ErrorDataSourceCycle,
			fmt.Sprintf("The data source with ID %d depends on itself.", dataSourceID))
	}

	c.inProgress[dataSourceID] = true
	payload, svcErr := c.dispatcher.DispatchInContext(c, dataSourceID)
	delete(c.inProgress, dataSourceID)

	c.outcomes[dataSourceID] = dispatchOutcome{payload: payload, err: svcErr}
	return payload, svcErr
}
