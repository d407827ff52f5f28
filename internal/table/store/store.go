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

// Package store provides the SQL implementation of the table and row store.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/asgardeo/forge/internal/order"
	"github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	dbutils "github.com/asgardeo/forge/internal/system/database/utils"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
	"github.com/asgardeo/forge/internal/table"
	tableconstants "github.com/asgardeo/forge/internal/table/constants"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	"github.com/asgardeo/forge/internal/table/model"
	"github.com/asgardeo/forge/internal/table/query"
)

const loggerComponentName = "RowStore"

type rowStore struct {
	dbProvider provider.DBProviderInterface
	allocator  *order.Allocator
	registry   *fieldtype.Registry
}

// NewRowStore creates a row store persisting tables in the tables database.
func NewRowStore(dbProvider provider.DBProviderInterface, allocator *order.Allocator,
	registry *fieldtype.Registry) table.RowStoreInterface {
	return &rowStore{
		dbProvider: dbProvider,
		allocator:  allocator,
		registry:   registry,
	}
}

func (s *rowStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(constants.TablesDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// CreateTable creates a table and the table holding its rows.
func (s *rowStore) CreateTable(name string) (*model.Table, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	var created *model.Table
	err = dbutils.WithTx(dbClient, func(tx dbmodel.TxInterface) error {
		results, err := tx.Query(QueryCreateTable, name)
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		if len(results) == 0 {
			return errors.New("table id was not returned")
		}
		tableID, err := utils.ParseInt64(results[0]["table_id"])
		if err != nil {
			return err
		}
		created = &model.Table{ID: tableID, Name: name, Fields: []model.Field{}}

		if _, err := tx.Execute(buildCreateRowTableQuery(created.RowTableName())); err != nil {
			return fmt.Errorf("failed to create row table: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateField creates a field and its column.
func (s *rowStore) CreateField(tableID int64, field model.Field) (*model.Field, error) {
	if _, err := s.registry.Get(field.Type); err != nil {
		return nil, err
	}
	tbl, err := s.GetTable(tableID)
	if err != nil {
		return nil, err
	}
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	for i := range field.SelectOptions {
		if field.SelectOptions[i].ID == 0 {
			field.SelectOptions[i].ID = int64(i + 1)
		}
	}
	options, err := json.Marshal(nonNilOptions(field.SelectOptions))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal select options: %w", err)
	}

	field.TableID = tableID
	err = dbutils.WithTx(dbClient, func(tx dbmodel.TxInterface) error {
		results, err := tx.Query(QueryCreateField, tableID, field.Name, field.Type, field.Order, field.Primary,
			field.NumberDecimalPlaces, string(options))
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		if len(results) == 0 {
			return errors.New("field id was not returned")
		}
		if field.ID, err = utils.ParseInt64(results[0]["field_id"]); err != nil {
			return err
		}
		if err := dbutils.ValidateIdentifier(field.DBColumn()); err != nil {
			return err
		}
		if _, err := tx.Execute(buildAddFieldColumnQuery(tbl.RowTableName(), field.DBColumn())); err != nil {
			return fmt.Errorf("failed to add field column: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &field, nil
}

// CreateView creates a view.
func (s *rowStore) CreateView(view model.View) (*model.View, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	if view.FilterType == "" {
		view.FilterType = model.FilterTypeAnd
	}
	if view.Filters == nil {
		view.Filters = []model.ViewFilter{}
	}
	if view.Sortings == nil {
		view.Sortings = []model.ViewSort{}
	}
	filters, err := json.Marshal(view.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal view filters: %w", err)
	}
	sortings, err := json.Marshal(view.Sortings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal view sortings: %w", err)
	}

	results, err := dbClient.Query(QueryCreateView, view.TableID, view.Name, view.FilterType,
		view.FiltersDisabled, string(filters), string(sortings))
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, errors.New("view id was not returned")
	}
	if view.ID, err = utils.ParseInt64(results[0]["view_id"]); err != nil {
		return nil, err
	}
	return &view, nil
}

// GetTable returns a table with its fields.
func (s *rowStore) GetTable(tableID int64) (*model.Table, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetTableByID, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, tableconstants.ErrTableNotFound
	}

	tbl := &model.Table{ID: tableID, Name: utils.ConvertInterfaceValueToString(results[0]["name"])}
	fieldRows, err := dbClient.Query(QueryGetFieldsByTableID, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	tbl.Fields = make([]model.Field, 0, len(fieldRows))
	for _, row := range fieldRows {
		field, err := buildFieldFromResultRow(row)
		if err != nil {
			return nil, err
		}
		tbl.Fields = append(tbl.Fields, *field)
	}
	return tbl, nil
}

// GetField returns a field.
func (s *rowStore) GetField(fieldID int64) (*model.Field, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(QueryGetFieldByID, fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, tableconstants.ErrFieldNotFound
	}
	return buildFieldFromResultRow(results[0])
}

// GetView returns a view.
func (s *rowStore) GetView(viewID int64) (*model.View, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(QueryGetViewByID, viewID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, tableconstants.ErrViewNotFound
	}
	return buildViewFromResultRow(results[0])
}

// QueryRows loads the candidate rows and applies the query. A row id is pushed down to SQL.
func (s *rowStore) QueryRows(tbl *model.Table, rowQuery model.RowQuery) ([]model.Row, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	if rowQuery.RowID != nil {
		results, err = dbClient.Query(buildGetRowByIDQuery(tbl.RowTableName()), *rowQuery.RowID)
	} else {
		results, err = dbClient.Query(buildGetRowsQuery(tbl.RowTableName()))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	rows, err := s.buildRows(tbl, results)
	if err != nil {
		return nil, err
	}
	return query.Apply(tbl, rows, rowQuery, s.registry)
}

// GetRow returns a row by id.
func (s *rowStore) GetRow(tbl *model.Table, rowID int64) (*model.Row, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.getRow(dbClient, tbl, rowID)
}

// CreateRow inserts a row placed after every existing row.
func (s *rowStore) CreateRow(tbl *model.Table, values map[string]interface{}) (*model.Row, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

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

	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	var rowID int64
	err = dbutils.WithTx(dbClient, func(tx dbmodel.TxInterface) error {
		locked, err := tx.Query(QueryLockTable, tbl.ID)
		if err != nil {
			return fmt.Errorf("failed to lock table: %w", err)
		}
		if len(locked) == 0 {
			return tableconstants.ErrTableNotFound
		}

		orderRows, err := tx.Query(buildGetRowOrdersQuery(tbl.RowTableName()))
		if err != nil {
			return fmt.Errorf("failed to load row orders: %w", err)
		}
		items := make([]order.Item, 0, len(orderRows))
		for _, row := range orderRows {
			value, err := s.allocator.Parse(utils.ConvertInterfaceValueToString(row["order_value"]))
			if err != nil {
				return err
			}
			items = append(items, order.Item{Order: value})
		}

		columns, args, err := s.columnValues(tbl, complete)
		if err != nil {
			return err
		}
		columns = append([]string{"ORDER_VALUE"}, columns...)
		args = append([]interface{}{s.allocator.Format(s.allocator.Next(items))}, args...)

		insert, err := dbutils.BuildInsertQuery("TBQ-ROW_MGT-05", tbl.RowTableName(), columns, "ID")
		if err != nil {
			return err
		}
		results, err := tx.Query(insert, args...)
		if err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
		if len(results) == 0 {
			return errors.New("row id was not returned")
		}
		rowID, err = utils.ParseInt64(results[0]["id"])
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Row created", log.Int64("tableId", tbl.ID), log.Int64("rowId", rowID))
	return s.getRow(dbClient, tbl, rowID)
}

// UpdateRow writes every given value in one statement.
func (s *rowStore) UpdateRow(tbl *model.Table, rowID int64, values map[string]interface{}) (*model.Row, error) {
	if err := table.CheckColumns(tbl, values); err != nil {
		return nil, err
	}
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return s.getRow(dbClient, tbl, rowID)
	}

	columns, args, err := s.columnValues(tbl, values)
	if err != nil {
		return nil, err
	}
	update, err := dbutils.BuildUpdateQuery("TBQ-ROW_MGT-06", tbl.RowTableName(), columns, "ID")
	if err != nil {
		return nil, err
	}
	affected, err := dbClient.Execute(update, append(args, rowID)...)
	if err != nil {
		return nil, fmt.Errorf("failed to update row: %w", err)
	}
	if affected == 0 {
		return nil, tableconstants.ErrRowNotFound
	}
	return s.getRow(dbClient, tbl, rowID)
}

func (s *rowStore) getRow(dbClient client.DBClientInterface, tbl *model.Table, rowID int64) (*model.Row, error) {
	results, err := dbClient.Query(buildGetRowByIDQuery(tbl.RowTableName()), rowID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, tableconstants.ErrRowNotFound
	}
	rows, err := s.buildRows(tbl, results)
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// columnValues returns the sorted columns of values and their database representation.
func (s *rowStore) columnValues(tbl *model.Table, values map[string]interface{}) ([]string, []interface{}, error) {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		field := fieldByColumn(tbl, column)
		fieldType, err := s.registry.Get(field.Type)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, fieldType.ToDB(*field, values[column]))
	}
	return columns, args, nil
}

func (s *rowStore) buildRows(tbl *model.Table, results []map[string]interface{}) ([]model.Row, error) {
	rows := make([]model.Row, 0, len(results))
	for _, result := range results {
		id, err := utils.ParseInt64(result["id"])
		if err != nil {
			return nil, fmt.Errorf("failed to parse row id: %w", err)
		}
		orderValue, err := s.allocator.Parse(utils.ConvertInterfaceValueToString(result["order_value"]))
		if err != nil {
			return nil, err
		}

		row := model.Row{ID: id, Order: orderValue, Values: make(map[string]interface{}, len(tbl.Fields))}
		for _, field := range tbl.Fields {
			fieldType, err := s.registry.Get(field.Type)
			if err != nil {
				return nil, err
			}
			row.Values[field.DBColumn()] = fieldType.FromDB(field, result[field.DBColumn()])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func buildFieldFromResultRow(row map[string]interface{}) (*model.Field, error) {
	fieldID, err := utils.ParseInt64(row["field_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse field id: %w", err)
	}
	tableID, err := utils.ParseInt64(row["table_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse table id: %w", err)
	}
	fieldOrder, err := utils.ParseInt64(row["field_order"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse field order: %w", err)
	}
	decimalPlaces, err := utils.ParseInt64(row["number_decimal_places"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse decimal places: %w", err)
	}

	field := &model.Field{
		ID:                  fieldID,
		TableID:             tableID,
		Name:                utils.ConvertInterfaceValueToString(row["name"]),
		Type:                utils.ConvertInterfaceValueToString(row["type"]),
		Order:               int(fieldOrder),
		Primary:             utils.ParseBool(row["is_primary"]),
		NumberDecimalPlaces: int32(decimalPlaces),
		SelectOptions:       []model.SelectOption{},
	}
	if raw := utils.ConvertInterfaceValueToString(row["select_options"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &field.SelectOptions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal select options: %w", err)
		}
	}
	return field, nil
}

func buildViewFromResultRow(row map[string]interface{}) (*model.View, error) {
	viewID, err := utils.ParseInt64(row["view_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse view id: %w", err)
	}
	tableID, err := utils.ParseInt64(row["table_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse table id: %w", err)
	}

	view := &model.View{
		ID:              viewID,
		TableID:         tableID,
		Name:            utils.ConvertInterfaceValueToString(row["name"]),
		FilterType:      utils.ConvertInterfaceValueToString(row["filter_type"]),
		FiltersDisabled: utils.ParseBool(row["filters_disabled"]),
		Filters:         []model.ViewFilter{},
		Sortings:        []model.ViewSort{},
	}
	if raw := utils.ConvertInterfaceValueToString(row["filters"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &view.Filters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal view filters: %w", err)
		}
	}
	if raw := utils.ConvertInterfaceValueToString(row["sortings"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &view.Sortings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal view sortings: %w", err)
		}
	}
	return view, nil
}

func fieldByColumn(tbl *model.Table, column string) *model.Field {
	for i := range tbl.Fields {
		if tbl.Fields[i].DBColumn() == column {
			return &tbl.Fields[i]
		}
	}
	return nil
}

func nonNilOptions(options []model.SelectOption) []model.SelectOption {
	if options == nil {
		return []model.SelectOption{}
	}
	return options
}
