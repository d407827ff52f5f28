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

// Package store provides the persistence of page elements.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/element/constants"
	"github.com/asgardeo/forge/internal/element/elementtype"
	"github.com/asgardeo/forge/internal/element/model"
	"github.com/asgardeo/forge/internal/order"
	sysconstants "github.com/asgardeo/forge/internal/system/constants"
	"github.com/asgardeo/forge/internal/system/database/client"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
)

const loggerComponentName = "ElementStore"

// ElementStoreInterface defines the persistence operations of elements.
type ElementStoreInterface interface {
	// CreateElement inserts an element through the given executor, usually the placement transaction.
	CreateElement(tx dbmodel.QueryExecutor, element model.Element) (*model.Element, error)
	GetElement(elementID int64) (*model.Element, error)
	// GetElements returns the elements of a page by ascending order.
	GetElements(pageID int64) ([]model.Element, error)
	UpdateElementConfig(element model.Element) error
	UpdateElementOrder(tx dbmodel.QueryExecutor, elementID int64, order string) error
	DeleteElement(elementID int64) error
}

type elementStore struct {
	dbProvider provider.DBProviderInterface
	allocator  *order.Allocator
	registry   *elementtype.Registry
}

// NewElementStore creates a new instance of the element store.
func NewElementStore(dbProvider provider.DBProviderInterface, allocator *order.Allocator,
	registry *elementtype.Registry) ElementStoreInterface {
	return &elementStore{
		dbProvider: dbProvider,
		allocator:  allocator,
		registry:   registry,
	}
}

func (s *elementStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.BuilderDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// CreateElement inserts an element.
func (s *elementStore) CreateElement(tx dbmodel.QueryExecutor, element model.Element) (*model.Element, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	config, err := json.Marshal(element.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal element config: %w", err)
	}
	results, err := tx.Query(QueryCreateElement, element.PageID, element.Type, element.Order, string(config))
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, errors.New("element id was not returned")
	}
	if element.ID, err = utils.ParseInt64(results[0]["element_id"]); err != nil {
		return nil, err
	}

	logger.Debug("Element created", log.Int64("elementId", element.ID), log.Int64("pageId", element.PageID),
		log.String("type", element.Type))
	return &element, nil
}

// GetElement returns an element.
func (s *elementStore) GetElement(elementID int64) (*model.Element, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetElementByID, elementID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrElementNotFound
	}
	element, _, err := s.buildElementFromResultRow(results[0])
	return element, err
}

// GetElements returns the elements of a page. Orders are compared as decimals.
func (s *elementStore) GetElements(pageID int64) ([]model.Element, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetElementsByPage, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	items := make([]order.Item, 0, len(results))
	byID := make(map[int64]model.Element, len(results))
	for _, row := range results {
		element, item, err := s.buildElementFromResultRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		byID[element.ID] = *element
	}
	s.allocator.Sort(items)

	elements := make([]model.Element, 0, len(items))
	for _, item := range items {
		elements = append(elements, byID[item.ID])
	}
	return elements, nil
}

// UpdateElementConfig writes the configuration of an element.
func (s *elementStore) UpdateElementConfig(element model.Element) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	config, err := json.Marshal(element.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal element config: %w", err)
	}
	affected, err := dbClient.Execute(QueryUpdateElementConfig, element.ID, string(config))
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrElementNotFound
	}
	return nil
}

// UpdateElementOrder writes the order of an element.
func (s *elementStore) UpdateElementOrder(tx dbmodel.QueryExecutor, elementID int64, order string) error {
	affected, err := tx.Execute(QueryUpdateElementOrder, elementID, order)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrElementNotFound
	}
	return nil
}

// DeleteElement deletes an element.
func (s *elementStore) DeleteElement(elementID int64) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	affected, err := dbClient.Execute(QueryDeleteElement, elementID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if affected == 0 {
		return constants.ErrElementNotFound
	}
	return nil
}

func (s *elementStore) buildElementFromResultRow(row map[string]interface{}) (*model.Element, order.Item, error) {
	elementID, err := utils.ParseInt64(row["element_id"])
	if err != nil {
		return nil, order.Item{}, fmt.Errorf("failed to parse element id: %w", err)
	}
	pageID, err := utils.ParseInt64(row["page_id"])
	if err != nil {
		return nil, order.Item{}, fmt.Errorf("failed to parse page id: %w", err)
	}
	value, err := s.allocator.Parse(utils.ConvertInterfaceValueToString(row["order_value"]))
	if err != nil {
		return nil, order.Item{}, err
	}

	typeName := utils.ConvertInterfaceValueToString(row["type"])
	elementType, err := s.registry.Get(typeName)
	if err != nil {
		return nil, order.Item{}, err
	}
	config, err := elementType.Decode(json.RawMessage(utils.ConvertInterfaceValueToString(row["config"])))
	if err != nil {
		return nil, order.Item{}, fmt.Errorf("failed to decode config of element %d: %w", elementID, err)
	}

	return &model.Element{
		ID:     elementID,
		PageID: pageID,
		Order:  s.allocator.Format(value),
		Type:   typeName,
		Config: config,
	}, order.Item{ID: elementID, Order: value}, nil
}
