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

// Package store provides the persistence of builder pages.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/order"
	"github.com/asgardeo/forge/internal/page/constants"
	"github.com/asgardeo/forge/internal/page/model"
	sysconstants "github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
)

const loggerComponentName = "PageStore"

// PageStoreInterface defines the persistence operations of pages.
type PageStoreInterface interface {
	// CreatePage inserts a page through the given executor, usually the placement transaction.
	CreatePage(tx dbmodel.QueryExecutor, page model.Page) (*model.Page, error)
	GetPage(pageID int64) (*model.Page, error)
	// GetPages returns the pages of an application by ascending order.
	GetPages(builderID int64) ([]model.Page, error)
	UpdatePage(page model.Page) error
	UpdatePageOrder(tx dbmodel.QueryExecutor, pageID int64, order string) error
	DeletePage(pageID int64) error
}

type pageStore struct {
	dbProvider provider.DBProviderInterface
	allocator  *order.Allocator
}

// NewPageStore creates a new instance of the page store.
func NewPageStore(dbProvider provider.DBProviderInterface, allocator *order.Allocator) PageStoreInterface {
	return &pageStore{
		dbProvider: dbProvider,
		allocator:  allocator,
	}
}

func (s *pageStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.BuilderDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// CreatePage inserts a page.
func (s *pageStore) CreatePage(tx dbmodel.QueryExecutor, page model.Page) (*model.Page, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	params, err := marshalPathParams(page.PathParams)
	if err != nil {
		return nil, err
	}
	results, err := tx.Query(QueryCreatePage, page.BuilderID, page.Name, page.Path, params, page.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, errors.New("page id was not returned")
	}
	if page.ID, err = utils.ParseInt64(results[0]["page_id"]); err != nil {
		return nil, err
	}

	logger.Debug("Page created", log.Int64("pageId", page.ID), log.Int64("builderId", page.BuilderID))
	return &page, nil
}

// GetPage returns a page.
func (s *pageStore) GetPage(pageID int64) (*model.Page, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetPageByID, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrPageNotFound
	}
	page, _, err := s.buildPageFromResultRow(results[0])
	return page, err
}

// GetPages returns the pages of an application. Orders are compared as decimals.
func (s *pageStore) GetPages(builderID int64) ([]model.Page, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetPagesByApplication, builderID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	items := make([]order.Item, 0, len(results))
	byID := make(map[int64]model.Page, len(results))
	for _, row := range results {
		page, item, err := s.buildPageFromResultRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		byID[page.ID] = *page
	}
	s.allocator.Sort(items)

	pages := make([]model.Page, 0, len(items))
	for _, item := range items {
		pages = append(pages, byID[item.ID])
	}
	return pages, nil
}

// UpdatePage writes the name, the path and the path parameters of a page.
func (s *pageStore) UpdatePage(page model.Page) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	params, err := marshalPathParams(page.PathParams)
	if err != nil {
		return err
	}
	affected, err := dbClient.Execute(QueryUpdatePage, page.ID, page.Name, page.Path, params)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrPageNotFound
	}
	return nil
}

// UpdatePageOrder writes the order of a page.
func (s *pageStore) UpdatePageOrder(tx dbmodel.QueryExecutor, pageID int64, order string) error {
	affected, err := tx.Execute(QueryUpdatePageOrder, pageID, order)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrPageNotFound
	}
	return nil
}

// DeletePage deletes a page. Its elements and data sources are removed with it.
func (s *pageStore) DeletePage(pageID int64) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	affected, err := dbClient.Execute(QueryDeletePage, pageID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrPageNotFound
	}
	return nil
}

func (s *pageStore) buildPageFromResultRow(row map[string]interface{}) (*model.Page, order.Item, error) {
	pageID, err := utils.ParseInt64(row["page_id"])
	if err != nil {
		return nil, order.Item{}, fmt.Errorf("failed to parse page id: %w", err)
	}
	builderID, err := utils.ParseInt64(row["application_id"])
	if err != nil {
		return nil, order.Item{}, fmt.Errorf("failed to parse application id: %w", err)
	}
	value, err := s.allocator.Parse(utils.ConvertInterfaceValueToString(row["order_value"]))
	if err != nil {
		return nil, order.Item{}, err
	}

	params := []model.PathParam{}
	if raw := utils.ConvertInterfaceValueToString(row["path_params"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return nil, order.Item{}, fmt.Errorf("failed to parse path params of page %d: %w", pageID, err)
		}
	}

	return &model.Page{
		ID:         pageID,
		BuilderID:  builderID,
		Name:       utils.ConvertInterfaceValueToString(row["name"]),
		Path:       utils.ConvertInterfaceValueToString(row["path"]),
		PathParams: params,
		Order:      s.allocator.Format(value),
	}, order.Item{ID: pageID, Order: value}, nil
}

func marshalPathParams(params []model.PathParam) (string, error) {
	if params == nil {
		params = []model.PathParam{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to marshal path params: %w", err)
	}
	return string(raw), nil
}
