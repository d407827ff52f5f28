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

// Package memstore provides an in-memory table and row store.
package memstore

import (
	"sync"

	"github.com/asgardeo/forge/internal/order"
	"github.com/asgardeo/forge/internal/table"
	"github.com/asgardeo/forge/internal/table/constants"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	"github.com/asgardeo/forge/internal/table/model"
	"github.com/asgardeo/forge/internal/table/query"
)

// RowStore keeps tables, views and rows in memory. Rows hold typed values.
type RowStore struct {
	mu        sync.RWMutex
	allocator *order.Allocator
	registry  *fieldtype.Registry
	tables    map[int64]*model.Table
	views     map[int64]*model.View
	rows      map[int64]map[int64]model.Row
	nextID    int64
}

var _ table.RowStoreInterface = (*RowStore)(nil)

// NewRowStore creates an empty in-memory row store.
func NewRowStore(allocator *order.Allocator, registry *fieldtype.Registry) *RowStore {
	return &RowStore{
		allocator: allocator,
		registry:  registry,
		tables:    make(map[int64]*model.Table),
		views:     make(map[int64]*model.View),
		rows:      make(map[int64]map[int64]model.Row),
	}
}

func (s *RowStore) newID() int64 {
	s.nextID++
	return s.nextID
}

// CreateTable creates an empty table.
func (s *RowStore) CreateTable(name string) (*model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl := &model.Table{ID: s.newID(), Name: name, Fields: []model.Field{}}
	s.tables[tbl.ID] = tbl
	s.rows[tbl.ID] = make(map[int64]model.Row)
	return copyTable(tbl), nil
}

// CreateField adds a field to a table. Existing rows get the field default.
func (s *RowStore) CreateField(tableID int64, field model.Field) (*model.Field, error) {
	fieldType, err := s.registry.Get(field.Type)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, ok := s.tables[tableID]
	if !ok {
		return nil, constants.ErrTableNotFound
	}
	field.ID = s.newID()
	field.TableID = tableID
	options := make([]model.SelectOption, len(field.SelectOptions))
	for i, option := range field.SelectOptions {
		if option.ID == 0 {
			option.ID = int64(i + 1)
		}
		options[i] = option
	}
	field.SelectOptions = options
	tbl.Fields = append(tbl.Fields, field)

	for id, row := range s.rows[tableID] {
		row.Values[field.DBColumn()] = fieldType.Default(field)
		s.rows[tableID][id] = row
	}
	return &field, nil
}

// CreateView creates a view.
func (s *RowStore) CreateView(view model.View) (*model.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[view.TableID]; !ok {
		return nil, constants.ErrTableNotFound
	}
	view.ID = s.newID()
	if view.FilterType == "" {
		view.FilterType = model.FilterTypeAnd
	}
	stored := view
	s.views[view.ID] = &stored
	return &view, nil
}

// GetTable returns a copy of a table.
func (s *RowStore) GetTable(tableID int64) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[tableID]
	if !ok {
		return nil, constants.ErrTableNotFound
	}
	return copyTable(tbl), nil
}

// GetField returns a field of any table.
func (s *RowStore) GetField(fieldID int64) (*model.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tbl := range s.tables {
		if field, ok := tbl.FieldByID(fieldID); ok {
			found := *field
			return &found, nil
		}
	}
	return nil, constants.ErrFieldNotFound
}

// GetView returns a view.
func (s *RowStore) GetView(viewID int64) (*model.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, ok := s.views[viewID]
	if !ok {
		return nil, constants.ErrViewNotFound
	}
	found := *view
	return &found, nil
}

// QueryRows returns the rows of a table matching the query.
func (s *RowStore) QueryRows(tbl *model.Table, rowQuery model.RowQuery) ([]model.Row, error) {
	s.mu.RLock()
	stored, ok := s.rows[tbl.ID]
	if !ok {
		s.mu.RUnlock()
		return nil, constants.ErrTableNotFound
	}
	rows := make([]model.Row, 0, len(stored))
	for _, row := range stored {
		rows = append(rows, row.Clone())
	}
	s.mu.RUnlock()

	return query.Apply(tbl, rows, rowQuery, s.registry)
}

// GetRow returns a row by id.
func (s *RowStore) GetRow(tbl *model.Table, rowID int64) (*model.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[tbl.ID][rowID]
	if !ok {
		return nil, constants.ErrRowNotFound
	}
	found := row.Clone()
	return &found, nil
}

// CreateRow appends a row after every existing row of the table.
func (s *RowStore) CreateRow(tbl *model.Table, values map[string]interface{}) (*model.Row, error) {
	if err := table.CheckColumns(tbl, values); err != nil {
		return nil, err
	}
	complete, err := table.DefaultValues(tbl, s.registry)
	if err != nil {
		return nil, err
	}
	for column, value := range values {
		complete[column] = value
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rows[tbl.ID]
	if !ok {
		return nil, constants.ErrTableNotFound
	}
	items := make([]order.Item, 0, len(stored))
	for id, row := range stored {
		items = append(items, order.Item{ID: id, Order: row.Order})
	}

	row := model.Row{ID: s.newID(), Order: s.allocator.Next(items), Values: complete}
	stored[row.ID] = row
	created := row.Clone()
	return &created, nil
}

// UpdateRow replaces the given values of a row.
func (s *RowStore) UpdateRow(tbl *model.Table, rowID int64, values map[string]interface{}) (*model.Row, error) {
	if err := table.CheckColumns(tbl, values); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[tbl.ID][rowID]
	if !ok {
		return nil, constants.ErrRowNotFound
	}
	row = row.Clone()
	for column, value := range values {
		row.Values[column] = value
	}
	s.rows[tbl.ID][rowID] = row
	updated := row.Clone()
	return &updated, nil
}

func copyTable(tbl *model.Table) *model.Table {
	copied := *tbl
	copied.Fields = make([]model.Field, len(tbl.Fields))
	copy(copied.Fields, tbl.Fields)
	return &copied
}
