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

// Package store provides the persistence of item orders within a parent scope.
package store

import (
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/order"
	"github.com/asgardeo/forge/internal/order/constants"
	"github.com/asgardeo/forge/internal/order/model"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
)

const loggerComponentName = "OrderStore"

// Scope is an ordering scope locked inside a transaction.
type Scope struct {
	Tx       dbmodel.TxInterface
	ParentID int64
	Siblings []order.Item
}

// OrderStoreInterface defines the persistence operations of ordered collections.
type OrderStoreInterface interface {
	WithinScope(collection model.Collection, parentID int64, fn func(scope *Scope) error) error
	UpdateOrders(tx dbmodel.QueryExecutor, collection model.Collection, items []order.Item) error
	GetParentID(collection model.Collection, itemID int64) (int64, error)
}

type orderStore struct {
	dbProvider provider.DBProviderInterface
	allocator  *order.Allocator
}

// NewOrderStore creates a new instance of the order store.
func NewOrderStore(dbProvider provider.DBProviderInterface, allocator *order.Allocator) OrderStoreInterface {
	return &orderStore{
		dbProvider: dbProvider,
		allocator:  allocator,
	}
}

// WithinScope locks the parent, loads its items and runs fn in one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *orderStore) WithinScope(collection model.Collection, parentID int64,
	fn func(scope *Scope) error) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient(collection.Database)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	lockQuery, err := buildLockParentQuery(collection)
	if err != nil {
		return err
	}
	siblingsQuery, err := buildGetSiblingsQuery(collection)
	if err != nil {
		return err
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	rollback := func(cause error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			logger.Error("Failed to rollback transaction", log.Error(rollbackErr))
			return errors.Join(cause, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
		}
		return cause
	}

	parents, err := tx.Query(lockQuery, parentID)
	if err != nil {
		return rollback(fmt.Errorf("failed to lock parent: %w", err))
	}
	if len(parents) == 0 {
		return rollback(constants.ErrParentNotFound)
	}

	results, err := tx.Query(siblingsQuery, parentID)
	if err != nil {
		return rollback(fmt.Errorf("failed to load siblings: %w", err))
	}
	siblings, err := s.buildItems(results)
	if err != nil {
		return rollback(err)
	}

	if err := fn(&Scope{Tx: tx, ParentID: parentID, Siblings: siblings}); err != nil {
		return rollback(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateOrders writes the order of every given item.
func (s *orderStore) UpdateOrders(tx dbmodel.QueryExecutor, collection model.Collection,
	items []order.Item) error {
	query, err := buildUpdateOrderQuery(collection)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := tx.Execute(query, s.allocator.Format(item.Order), item.ID); err != nil {
			return fmt.Errorf("failed to update order of %s %d: %w", collection.Name, item.ID, err)
		}
	}
	return nil
}

// GetParentID returns the parent of an item.
func (s *orderStore) GetParentID(collection model.Collection, itemID int64) (int64, error) {
	dbClient, err := s.dbProvider.GetDBClient(collection.Database)
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}
	query, err := buildGetParentQuery(collection)
	if err != nil {
		return 0, err
	}

	results, err := dbClient.Query(query, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return 0, constants.ErrItemNotFound
	}
	return utils.ParseInt64(results[0]["parent_id"])
}

func (s *orderStore) buildItems(results []map[string]interface{}) ([]order.Item, error) {
	items := make([]order.Item, 0, len(results))
	for _, row := range results {
		id, err := utils.ParseInt64(row["item_id"])
		if err != nil {
			return nil, fmt.Errorf("failed to parse item id: %w", err)
		}
		value, err := s.allocator.Parse(utils.ConvertInterfaceValueToString(row["order_value"]))
		if err != nil {
			return nil, err
		}
		items = append(items, order.Item{ID: id, Order: value})
	}
	return items, nil
}
