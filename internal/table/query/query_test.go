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

package query

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/forge/internal/table/constants"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	"github.com/asgardeo/forge/internal/table/model"
)

type QueryTestSuite struct {
	suite.Suite
	table *model.Table
	rows  []model.Row
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(QueryTestSuite))
}

func (suite *QueryTestSuite) SetupTest() {
	options := []model.SelectOption{{ID: 7, Value: "Metal", Color: "blue"}}
	suite.table = &model.Table{
		ID:   1,
		Name: "Ingredients",
		Fields: []model.Field{
			{ID: 1, TableID: 1, Name: "Name", Type: fieldtype.TypeText, Primary: true},
			{ID: 2, TableID: 1, Name: "Amount", Type: fieldtype.TypeNumber},
			{ID: 3, TableID: 1, Name: "Active", Type: fieldtype.TypeBoolean},
			{ID: 4, TableID: 1, Name: "Kind", Type: fieldtype.TypeSingleSelect, SelectOptions: options},
		},
	}
	suite.rows = []model.Row{
		suite.row(1, "3", "Gold", 10, true, &options[0]),
		suite.row(2, "1", "Silver", 42, false, nil),
		suite.row(3, "2", "Éclair", 5, true, nil),
		suite.row(42, "4", "Copper", 1, false, nil),
	}
}

func (suite *QueryTestSuite) row(id int64, orderValue, name string, amount int64, active bool,
	kind *model.SelectOption) model.Row {
	order, _, err := apd.NewFromString(orderValue)
	require.NoError(suite.T(), err)
	values := map[string]interface{}{
		"field_1": name,
		"field_2": apd.New(amount, 0),
		"field_3": active,
		"field_4": nil,
	}
	if kind != nil {
		values["field_4"] = kind
	}
	return model.Row{ID: id, Order: order, Values: values}
}

func (suite *QueryTestSuite) apply(rowQuery model.RowQuery) []int64 {
	rows, err := Apply(suite.table, suite.rows, rowQuery, fieldtype.NewRegistry())
	require.NoError(suite.T(), err)
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}

func (suite *QueryTestSuite) TestDefaultOrder() {
	assert.Equal(suite.T(), []int64{2, 3, 1, 42}, suite.apply(model.RowQuery{}))
}

func (suite *QueryTestSuite) TestRowID() {
	id := int64(3)
	assert.Equal(suite.T(), []int64{3}, suite.apply(model.RowQuery{RowID: &id}))
}

func (suite *QueryTestSuite) TestFiltersAnd() {
	ids := suite.apply(model.RowQuery{
		FilterType: model.FilterTypeAnd,
		Filters: []model.Filter{
			{FieldID: 3, Type: FilterBoolean, Value: "1"},
			{FieldID: 2, Type: FilterHigherThan, Value: "6"},
		},
	})
	assert.Equal(suite.T(), []int64{1}, ids)
}

func (suite *QueryTestSuite) TestFiltersOr() {
	ids := suite.apply(model.RowQuery{
		FilterType: model.FilterTypeOr,
		Filters: []model.Filter{
			{FieldID: 1, Type: FilterEqual, Value: "Silver"},
			{FieldID: 2, Type: FilterLowerThan, Value: "2"},
		},
	})
	assert.Equal(suite.T(), []int64{2, 42}, ids)
}

func (suite *QueryTestSuite) TestFilterTypes() {
	testCases := []struct {
		name     string
		filter   model.Filter
		expected []int64
	}{
		{"EqualNumber", model.Filter{FieldID: 2, Type: FilterEqual, Value: "42"}, []int64{2}},
		{"EqualEmptyValueIgnored", model.Filter{FieldID: 1, Type: FilterEqual, Value: ""}, []int64{2, 3, 1, 42}},
		{"NotEqual", model.Filter{FieldID: 1, Type: FilterNotEqual, Value: "Gold"}, []int64{2, 3, 42}},
		{"Contains", model.Filter{FieldID: 1, Type: FilterContains, Value: "OP"}, []int64{42}},
		{"NotContains", model.Filter{FieldID: 1, Type: FilterNotContains, Value: "l"}, []int64{42}},
		{"Empty", model.Filter{FieldID: 4, Type: FilterEmpty}, []int64{2, 3, 42}},
		{"NotEmpty", model.Filter{FieldID: 4, Type: FilterNotEmpty}, []int64{1}},
		{"EqualSelect", model.Filter{FieldID: 4, Type: FilterEqual, Value: "7"}, []int64{1}},
		{"UnknownField", model.Filter{FieldID: 99, Type: FilterEqual, Value: "x"}, []int64{2, 3, 1, 42}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.expected, suite.apply(model.RowQuery{Filters: []model.Filter{tc.filter}}))
		})
	}
}

func (suite *QueryTestSuite) TestUnknownFilterType() {
	_, err := Apply(suite.table, suite.rows, model.RowQuery{
		Filters: []model.Filter{{FieldID: 1, Type: "regex", Value: "x"}},
	}, fieldtype.NewRegistry())
	assert.ErrorIs(suite.T(), err, constants.ErrUnknownFilterType)
}

func (suite *QueryTestSuite) TestViewFiltersAndSortings() {
	view := &model.View{
		ID:         1,
		TableID:    1,
		FilterType: model.FilterTypeAnd,
		Filters:    []model.ViewFilter{{FieldID: 2, Type: FilterHigherThan, Value: "1"}},
		Sortings:   []model.ViewSort{{FieldID: 2, Order: model.SortDescending}},
	}
	assert.Equal(suite.T(), []int64{2, 1, 3}, suite.apply(model.RowQuery{View: view}))

	view.FiltersDisabled = true
	assert.Equal(suite.T(), []int64{2, 1, 3, 42}, suite.apply(model.RowQuery{View: view}))
}

func (suite *QueryTestSuite) TestSearchText() {
	assert.Equal(suite.T(), []int64{1}, suite.apply(model.RowQuery{Search: "gol"}))
	assert.Equal(suite.T(), []int64{3}, suite.apply(model.RowQuery{Search: "ÉCLAIR"}))
	assert.Equal(suite.T(), []int64{3}, suite.apply(model.RowQuery{Search: "Éclair"}))
	assert.Equal(suite.T(), []int64{1}, suite.apply(model.RowQuery{Search: "metal"}))
}

func (suite *QueryTestSuite) TestSearchNumberIsExact() {
	// 42 is the amount of row 2 and the id of row 42; 4 must not match 42 by substring.
	assert.Equal(suite.T(), []int64{2, 42}, suite.apply(model.RowQuery{Search: "42"}))
	assert.Empty(suite.T(), suite.apply(model.RowQuery{Search: "4"}))
	assert.Equal(suite.T(), []int64{3}, suite.apply(model.RowQuery{Search: "5"}))
}
