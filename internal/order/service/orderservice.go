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

// Package service positions items within their parent and keeps sibling orders unique.
package service

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/asgardeo/forge/internal/order"
	"github.com/asgardeo/forge/internal/order/constants"
	"github.com/asgardeo/forge/internal/order/model"
	"github.com/asgardeo/forge/internal/order/store"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/signal"
)

const loggerComponentName = "OrderService"

// ApplyFunc writes the positioned entity inside the placement transaction.
type ApplyFunc func(tx dbmodel.TxInterface, orders []string) error

// PlacementRequest describes where new or moved items go.
type PlacementRequest struct {
	Collection model.Collection
	ParentID   int64
	// BeforeID places the items directly before this sibling. Nil places them last.
	BeforeID *int64
	// MovingID is the item being moved. It is not treated as a sibling.
	MovingID *int64
	// Amount is the number of orders to allocate, one when zero.
	Amount int
	Actor  string
}

// PlacementResult reports the allocated orders.
type PlacementResult struct {
	Orders []string
	Reset  bool
}

// OrderServiceInterface defines the ordering operations shared by the builder entities.
type OrderServiceInterface interface {
	Place(request PlacementRequest, apply ApplyFunc) (*PlacementResult, error)
	RecalculateFullOrders(collection model.Collection, parentID int64, actor string) error
	OrderItems(collection model.Collection, parentID int64, ids []int64, actor string) error
	GetAllocator() *order.Allocator
}

// OrderService is the default implementation of the OrderServiceInterface.
type OrderService struct {
	store     store.OrderStoreInterface
	allocator *order.Allocator
	notifier  signal.NotifierInterface
	locks     *keyedMutex
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(orderStore store.OrderStoreInterface, allocator *order.Allocator,
	notifier signal.NotifierInterface) *OrderService {
	return &OrderService{
		store:     orderStore,
		allocator: allocator,
		notifier:  notifier,
		locks:     newKeyedMutex(),
	}
}

// GetAllocator returns the allocator used for placements.
func (s *OrderService) GetAllocator() *order.Allocator {
	return s.allocator
}

// Place allocates orders for the request and calls apply with them in the same transaction.
// When the siblings had to be renumbered an orders recalculated signal is emitted after commit;
// single placements are announced by the caller.
func (s *OrderService) Place(request PlacementRequest, apply ApplyFunc) (*PlacementResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	amount := request.Amount
	if amount == 0 {
		amount = 1
	}
	if amount < 0 {
		return nil, constants.ErrInvalidAmount
	}
	if request.BeforeID != nil && request.MovingID != nil && *request.BeforeID == *request.MovingID {
		return nil, constants.ErrBeforeIsSelf
	}

	release := s.locks.Lock(request.Collection.ScopeKey(request.ParentID))
	defer release()

	var placement *order.Placement
	err := s.store.WithinScope(request.Collection, request.ParentID, func(scope *store.Scope) error {
		siblings := withoutItem(scope.Siblings, request.MovingID)

		if request.BeforeID == nil {
			placement = s.allocator.PlaceLast(siblings, amount)
		} else {
			if !containsItem(siblings, *request.BeforeID) {
				return constants.ErrNotInSameParent
			}
			var placeErr error
			placement, placeErr = s.allocator.PlaceBefore(siblings, *request.BeforeID, amount)
			if placeErr != nil {
				return placeErr
			}
		}

		if placement.Reset {
			if err := s.store.UpdateOrders(scope.Tx, request.Collection, placement.Renumbered); err != nil {
				return err
			}
		}
		return apply(scope.Tx, s.formatAll(placement.Orders))
	})
	if err != nil {
		return nil, err
	}

	if placement.Reset {
		logger.Debug("Sibling orders renumbered before placement",
			log.String("collection", request.Collection.Name),
			log.Int64("parentId", request.ParentID),
			log.Int("siblings", len(placement.Renumbered)))
		s.notifyRecalculated(request.Collection, request.ParentID, request.Actor, placement.Renumbered,
			request.MovingID)
	}

	return &PlacementResult{Orders: s.formatAll(placement.Orders), Reset: placement.Reset}, nil
}

// RecalculateFullOrders renumbers every item of the parent to 1..n keeping their sequence.
func (s *OrderService) RecalculateFullOrders(collection model.Collection, parentID int64, actor string) error {
	release := s.locks.Lock(collection.ScopeKey(parentID))
	defer release()

	var renumbered []order.Item
	err := s.store.WithinScope(collection, parentID, func(scope *store.Scope) error {
		renumbered = s.allocator.Renumber(scope.Siblings)
		return s.store.UpdateOrders(scope.Tx, collection, renumbered)
	})
	if err != nil {
		return err
	}

	s.notifyRecalculated(collection, parentID, actor, renumbered, nil)
	return nil
}

// OrderItems puts the given items first in the given sequence. Remaining items follow in
// their current sequence.
func (s *OrderService) OrderItems(collection model.Collection, parentID int64, ids []int64, actor string) error {
	release := s.locks.Lock(collection.ScopeKey(parentID))
	defer release()

	var reordered []order.Item
	err := s.store.WithinScope(collection, parentID, func(scope *store.Scope) error {
		byID := make(map[int64]order.Item, len(scope.Siblings))
		for _, item := range scope.Siblings {
			byID[item.ID] = item
		}

		listed := make(map[int64]bool, len(ids))
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				return constants.ErrNotInSameParent
			}
			if listed[id] {
				continue
			}
			listed[id] = true
			reordered = append(reordered, byID[id])
		}

		rest := make([]order.Item, 0, len(scope.Siblings))
		for _, item := range scope.Siblings {
			if !listed[item.ID] {
				rest = append(rest, item)
			}
		}
		s.allocator.Sort(rest)
		reordered = append(reordered, rest...)

		for i := range reordered {
			reordered[i].Order = s.allocator.FromInt(int64(i + 1))
		}
		return s.store.UpdateOrders(scope.Tx, collection, reordered)
	})
	if err != nil {
		return err
	}

	s.notifyRecalculated(collection, parentID, actor, reordered, nil)
	return nil
}

func (s *OrderService) notifyRecalculated(collection model.Collection, parentID int64, actor string,
	items []order.Item, extra *int64) {
	if s.notifier == nil {
		return
	}
	ids := make([]int64, 0, len(items)+1)
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	if extra != nil {
		ids = append(ids, *extra)
	}
	s.notifier.Notify(signal.NewSignal(signal.OrdersRecalculated, collection.Name, parentID, actor, ids...))
}

func (s *OrderService) formatAll(orders []*apd.Decimal) []string {
	formatted := make([]string, len(orders))
	for i, value := range orders {
		formatted[i] = s.allocator.Format(value)
	}
	return formatted
}

func withoutItem(items []order.Item, id *int64) []order.Item {
	if id == nil {
		return items
	}
	filtered := make([]order.Item, 0, len(items))
	for _, item := range items {
		if item.ID != *id {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func containsItem(items []order.Item, id int64) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
