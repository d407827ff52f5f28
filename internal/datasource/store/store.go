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

// Package store provides the persistence of page data sources.
package store

import (
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/datasource/constants"
	"github.com/asgardeo/forge/internal/datasource/model"
	"github.com/asgardeo/forge/internal/order"
	sysconstants "github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
)

const loggerComponentName = "DataSourceStore"

// DataSourceStoreInterface defines the persistence operations of data sources.
type DataSourceStoreInterface interface {
	// CreateDataSource inserts a data source through the given executor, usually the placement
	// transaction.
	CreateDataSource(tx dbmodel.QueryExecutor, dataSource model.DataSource) (*model.DataSource, error)
	GetDataSource(dataSourceID int64) (*model.DataSource, error)
	// GetDataSources returns the data sources of a page by ascending order.
	GetDataSources(pageID int64) ([]model.DataSource, error)
	UpdateDataSource(dataSource model.DataSource) error
	UpdateDataSourceOrder(tx dbmodel.QueryExecutor, dataSourceID int64, order string) error
	DeleteDataSource(dataSourceID int64) error
}

type dataSourceStore struct {
	dbProvider provider.DBProviderInterface
	allocator  *order.Allocator
}

// NewDataSourceStore creates a new instance of the data source store.
func NewDataSourceStore(dbProvider provider.DBProviderInterface, allocator *order.Allocator) DataSourceStoreInterface {
	return &dataSourceStore{
		dbProvider: dbProvider,
		allocator:  allocator,
	}
}

func (s *dataSourceStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.BuilderDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// CreateDataSource inserts a data source.
func (s *dataSourceStore) CreateDataSource(tx dbmodel.QueryExecutor,
	dataSource model.DataSource) (*model.DataSource, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	results, err := tx.Query(QueryCreateDataSource, dataSource.PageID, dataSource.Name, dataSource.Order,
		dataSource.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, errors.New("data source id was not returned")
	}
	if dataSource.ID, err = utils.ParseInt64(results[0]["data_source_id"]); err != nil {
		return nil, err
	}

	logger.Debug("Data source created", log.Int64("dataSourceId", dataSource.ID),
		log.Int64("pageId", dataSource.PageID))
	return &dataSource, nil
}

// GetDataSource returns a data source.
func (s *dataSourceStore) GetDataSource(dataSourceID int64) (*model.DataSource, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetDataSourceByID, dataSourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrDataSourceNotFound
	}
	dataSource, _, err := s.buildDataSourceFromResultRow(results[0])
	return dataSource, err
}

// GetDataSources returns the data sources of a page. Orders are compared as decimals.
func (s *dataSourceStore) GetDataSources(pageID int64) ([]model.DataSource, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetDataSourcesByPage, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	items := make([]order.Item, 0, len(results))
	byID := make(map[int64]model.DataSource, len(results))
	for _, row := range results {
		dataSource, item, err := s.buildDataSourceFromResultRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		byID[dataSource.ID] = *dataSource
	}
	s.allocator.Sort(items)

	dataSources := make([]model.DataSource, 0, len(items))
	for _, item := range items {
		dataSources = append(dataSources, byID[item.ID])
	}
	return dataSources, nil
}

// UpdateDataSource writes the name and the service of a data source.
func (s *dataSourceStore) UpdateDataSource(dataSource model.DataSource) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	affected, err := dbClient.Execute(QueryUpdateDataSource, dataSource.ID, dataSource.Name, dataSource.ServiceID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrDataSourceNotFound
	}
	return nil
}

// UpdateDataSourceOrder writes the order of a data source.
func (s *dataSourceStore) UpdateDataSourceOrder(tx dbmodel.QueryExecutor, dataSourceID int64, order string) error {
	affected, err := tx.Execute(QueryUpdateDataSourceOrder, dataSourceID, order)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrDataSourceNotFound
	}
	return nil
}

// DeleteDataSource deletes a data source.
func (s *dataSourceStore) DeleteDataSource(dataSourceID int64) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	affected, err := dbClient.Execute(QueryDeleteDataSource, dataSourceID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrDataSourceNotFound
	}
	return nil
}

func (s *dataSourceStore) buildDataSourceFromResultRow(row map[string]interface{}) (*model.DataSource,
	order.Item, error) {
	dataSourceID, err := utils.ParseInt64(row["data_source_id"])
	if err != nil {
		return nil, order.Item{}, fmt.Errorf("failed to parse data source id: %w", err)
	}
	pageID, err := utils.ParseInt64(row["page_id"])
	if err != nil {
		return nil, order.Item{}, fmt.Errorf("failed to parse page id: %w", err)
	}
	serviceID, err := utils.ParseNullableInt64(row["service_id"])
	if err != nil {
		return nil, order.Item{}, fmt.Errorf("failed to parse service id: %w", err)
	}
	value, err := s.allocator.Parse(utils.ConvertInterfaceValueToString(row["order_value"]))
	if err != nil {
		return nil, order.Item{}, err
	}

	return &model.DataSource{
		ID:        dataSourceID,
		PageID:    pageID,
		Name:      utils.ConvertInterfaceValueToString(row["name"]),
		Order:     s.allocator.Format(value),
		ServiceID: serviceID,
	}, order.Item{ID: dataSourceID, Order: value}, nil
}
