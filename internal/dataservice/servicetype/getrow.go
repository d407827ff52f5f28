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

package servicetype

import (
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/dataservice/constants"
	"github.com/asgardeo/forge/internal/dataservice/model"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	tableconstants "github.com/asgardeo/forge/internal/table/constants"
	tablemodel "github.com/asgardeo/forge/internal/table/model"
)

// GetRowServiceType fetches one row of a table, optionally through a view, filters and a search.
type GetRowServiceType struct {
	tableServiceType
}

var _ ServiceTypeInterface = (*GetRowServiceType)(nil)

// NewGetRowServiceType creates a new instance of GetRowServiceType.
func NewGetRowServiceType(deps Dependencies) *GetRowServiceType {
	return &GetRowServiceType{tableServiceType{deps: deps, typeName: TypeGetRow}}
}

// DispatchData returns the row with the resolved id among the rows selected by the view, the
// filters and the search. Without a row id the first selected row is returned.
func (t *GetRowServiceType) DispatchData(service *model.Service, values *model.DispatchValues,
	_ formula.ContextInterface) (*model.DispatchData, *serviceerror.ServiceError) {
	rowQuery := tablemodel.RowQuery{
		View:       values.View,
		Filters:    values.Filters,
		FilterType: service.FilterType,
		Search:     values.SearchQuery,
	}
	if values.HasRowID {
		rowID := values.RowID
		rowQuery.RowID = &rowID
	}

	rows, err := t.deps.RowStore.QueryRows(values.Table, rowQuery)
	if err != nil {
		if errors.Is(err, tableconstants.ErrUnknownFilterType) || errors.Is(err, tableconstants.ErrUnknownFieldType) {
			return nil, improperlyConfigured("%s", err.Error())
		}
		return nil, t.internalError("Failed to query rows", err)
	}

	if len(rows) == 0 {
		if values.HasRowID {
			return nil, serviceerror.CustomServiceError(constants.ErrorDoesNotExist,
				fmt.Sprintf("The row with id %d does not exist.", values.RowID))
		}
		return nil, serviceerror.CustomServiceError(constants.ErrorDoesNotExist, "No row matches the service.")
	}
	return &model.DispatchData{Table: values.Table, Row: &rows[0]}, nil
}
