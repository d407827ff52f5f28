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

// Package query applies view filters, service filters, search and sortings to table rows.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/asgardeo/forge/internal/table/constants"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	"github.com/asgardeo/forge/internal/table/model"
)

// Filter types.
const (
	FilterEqual       = "equal"
	FilterNotEqual    = "not_equal"
	FilterContains    = "contains"
	FilterNotContains = "not_contains"
	FilterEmpty       = "empty"
	FilterNotEmpty    = "not_empty"
	FilterHigherThan  = "higher_than"
	FilterLowerThan   = "lower_than"
	FilterBoolean     = "boolean"
)

var folder = cases.Fold()

// Normalize folds the case of text in NFC form so search ignores case and composition.
func Normalize(text string) string {
	return folder.String(norm.NFC.String(text))
}

// Apply returns the rows selected by the row query, sorted by the view sortings and then by
// order and id. The input slice is not modified.
func Apply(table *model.Table, rows []model.Row, rowQuery model.RowQuery,
	registry *fieldtype.Registry) ([]model.Row, error) {
	matcher := &matcher{table: table, registry: registry}

	selected := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		ok, err := matcher.matches(row, rowQuery)
		if err != nil {
			return nil, err
		}
		if ok {
			selected = append(selected, row)
		}
	}

	var sortings []model.ViewSort
	if rowQuery.View != nil {
		sortings = rowQuery.View.Sortings
	}
	if err := matcher.sort(selected, sortings); err != nil {
		return nil, err
	}
	return selected, nil
}

type matcher struct {
	table    *model.Table
	registry *fieldtype.Registry
}

func (m *matcher) matches(row model.Row, rowQuery model.RowQuery) (bool, error) {
	if rowQuery.RowID != nil && row.ID != *rowQuery.RowID {
		return false, nil
	}

	if view := rowQuery.View; view != nil && !view.FiltersDisabled {
		filters := make([]model.Filter, len(view.Filters))
		for i, f := range view.Filters {
			filters[i] = model.Filter{FieldID: f.FieldID, Type: f.Type, Value: f.Value}
		}
		ok, err := m.matchAll(row, filters, view.FilterType)
		if err != nil || !ok {
			return false, err
		}
	}

	ok, err := m.matchAll(row, rowQuery.Filters, rowQuery.FilterType)
	if err != nil || !ok {
		return false, err
	}

	return m.matchSearch(row, rowQuery.Search)
}

func (m *matcher) matchAll(row model.Row, filters []model.Filter, filterType string) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}
	or := strings.EqualFold(filterType, model.FilterTypeOr)

	for _, filter := range filters {
		ok, err := m.matchFilter(row, filter)
		if err != nil {
			return false, err
		}
		if or && ok {
			return true, nil
		}
		if !or && !ok {
			return false, nil
		}
	}
	return !or, nil
}

func (m *matcher) matchFilter(row model.Row, filter model.Filter) (bool, error) {
	field, ok := m.table.FieldByID(filter.FieldID)
	if !ok {
		// Filters on fields that no longer exist are ignored.
		return true, nil
	}
	fieldType, err := m.registry.Get(field.Type)
	if err != nil {
		return false, err
	}
	value := row.Values[field.DBColumn()]

	switch filter.Type {
	case FilterEmpty:
		return fieldtype.IsEmpty(value), nil
	case FilterNotEmpty:
		return !fieldtype.IsEmpty(value), nil
	case FilterEqual, FilterNotEqual:
		if filter.Value == "" {
			return true, nil
		}
		equal := m.equal(*field, fieldType, value, filter.Value)
		if filter.Type == FilterNotEqual {
			return !equal, nil
		}
		return equal, nil
	case FilterContains, FilterNotContains:
		if filter.Value == "" {
			return true, nil
		}
		contains := strings.Contains(Normalize(fieldType.Text(*field, value)), Normalize(filter.Value))
		if filter.Type == FilterNotContains {
			return !contains, nil
		}
		return contains, nil
	case FilterHigherThan, FilterLowerThan:
		if filter.Value == "" {
			return true, nil
		}
		number, ok := value.(*apd.Decimal)
		if !ok || number == nil {
			return false, nil
		}
		bound, _, err := apd.NewFromString(strings.TrimSpace(filter.Value))
		if err != nil {
			return false, nil
		}
		if filter.Type == FilterHigherThan {
			return number.Cmp(bound) > 0, nil
		}
		return number.Cmp(bound) < 0, nil
	case FilterBoolean:
		booleanType, err := m.registry.Get(fieldtype.TypeBoolean)
		if err != nil {
			return false, err
		}
		expected, err := booleanType.Prepare(*field, filter.Value)
		if err != nil {
			return false, nil
		}
		actual, _ := value.(bool)
		return expected == actual, nil
	}
	return false, fmt.Errorf("%w: %s", constants.ErrUnknownFilterType, filter.Type)
}

func (m *matcher) equal(field model.Field, fieldType fieldtype.FieldTypeInterface, value interface{},
	expected string) bool {
	switch field.Type {
	case fieldtype.TypeNumber:
		number, ok := value.(*apd.Decimal)
		if !ok || number == nil {
			return false
		}
		target, _, err := apd.NewFromString(strings.TrimSpace(expected))
		return err == nil && number.Cmp(target) == 0
	case fieldtype.TypeSingleSelect:
		option, ok := value.(*model.SelectOption)
		return ok && option != nil && strconv.FormatInt(option.ID, 10) == strings.TrimSpace(expected)
	case fieldtype.TypeBoolean:
		prepared, err := fieldType.Prepare(field, expected)
		actual, _ := value.(bool)
		return err == nil && prepared == actual
	}
	return fieldType.Text(field, value) == expected
}

// matchSearch matches text like fields by normalized substring. Numbers match only exactly,
// and an integer query also matches the row id.
func (m *matcher) matchSearch(row model.Row, search string) (bool, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return true, nil
	}

	number, _, numberErr := apd.NewFromString(search)
	if id, err := strconv.ParseInt(search, 10, 64); err == nil && id == row.ID {
		return true, nil
	}

	normalized := Normalize(search)
	for _, field := range m.table.Fields {
		fieldType, err := m.registry.Get(field.Type)
		if err != nil {
			return false, err
		}
		if !fieldType.Searchable() {
			continue
		}
		value := row.Values[field.DBColumn()]

		if field.Type == fieldtype.TypeNumber {
			if d, ok := value.(*apd.Decimal); ok && d != nil && numberErr == nil && d.Cmp(number) == 0 {
				return true, nil
			}
			continue
		}
		if strings.Contains(Normalize(fieldType.Text(field, value)), normalized) {
			return true, nil
		}
	}
	return false, nil
}

func (m *matcher) sort(rows []model.Row, sortings []model.ViewSort) error {
	type sortKey struct {
		field      model.Field
		fieldType  fieldtype.FieldTypeInterface
		descending bool
	}
	keys := make([]sortKey, 0, len(sortings))
	for _, sorting := range sortings {
		field, ok := m.table.FieldByID(sorting.FieldID)
		if !ok {
			continue
		}
		fieldType, err := m.registry.Get(field.Type)
		if err != nil {
			return err
		}
		keys = append(keys, sortKey{
			field:      *field,
			fieldType:  fieldType,
			descending: strings.EqualFold(sorting.Order, model.SortDescending),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			column := key.field.DBColumn()
			c := key.fieldType.Compare(key.field, rows[i].Values[column], rows[j].Values[column])
			if key.descending {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		if c := compareOrder(rows[i].Order, rows[j].Order); c != 0 {
			return c < 0
		}
		return rows[i].ID < rows[j].ID
	})
	return nil
}

func compareOrder(a, b *apd.Decimal) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Cmp(b)
}
