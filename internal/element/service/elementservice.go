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

// Package service manages the elements of builder pages.
package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asgardeo/forge/internal/element/constants"
	"github.com/asgardeo/forge/internal/element/elementtype"
	"github.com/asgardeo/forge/internal/element/model"
	"github.com/asgardeo/forge/internal/element/store"
	"github.com/asgardeo/forge/internal/importexport"
	orderconstants "github.com/asgardeo/forge/internal/order/constants"
	ordermodel "github.com/asgardeo/forge/internal/order/model"
	orderservice "github.com/asgardeo/forge/internal/order/service"
	"github.com/asgardeo/forge/internal/system/cache"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/signal"
)

const loggerComponentName = "ElementService"

// ElementServiceInterface defines the operations on page elements.
type ElementServiceInterface interface {
	CreateElement(pageID int64, request model.CreateElementRequest, actor string) (*model.Element,
		*serviceerror.ServiceError)
	GetElement(elementID int64) (*model.Element, *serviceerror.ServiceError)
	GetElements(pageID int64) ([]model.Element, *serviceerror.ServiceError)
	UpdateElement(elementID int64, config json.RawMessage, actor string) (*model.Element,
		*serviceerror.ServiceError)
	DeleteElement(elementID int64, actor string) *serviceerror.ServiceError
	MoveElement(elementID int64, beforeID *int64, actor string) (*model.Element, *serviceerror.ServiceError)
	RecalculateFullOrders(pageID int64, actor string) *serviceerror.ServiceError
	OrderElements(pageID int64, elementIDs []int64, actor string) *serviceerror.ServiceError
	ExportElement(element *model.Element) (model.SerializedElement, *serviceerror.ServiceError)
	ImportElements(pageID int64, serialized []model.SerializedElement, mapping importexport.IDMapping,
		importFormula importexport.FormulaImportFunc, actor string) ([]model.Element, *serviceerror.ServiceError)
}

// ElementService is the default implementation of ElementServiceInterface. The elements of a page
// are cached as a list and dropped from the cache whenever the page changes.
type ElementService struct {
	store        store.ElementStoreInterface
	orderService orderservice.OrderServiceInterface
	registry     *elementtype.Registry
	notifier     signal.NotifierInterface
	pageCache    cache.CacheInterface[[]model.Element]
}

// NewElementService creates a new instance of ElementService.
func NewElementService(elementStore store.ElementStoreInterface, orderService orderservice.OrderServiceInterface,
	registry *elementtype.Registry, notifier signal.NotifierInterface,
	pageCache cache.CacheInterface[[]model.Element]) *ElementService {
	return &ElementService{
		store:        elementStore,
		orderService: orderService,
		registry:     registry,
		notifier:     notifier,
		pageCache:    pageCache,
	}
}

// CreateElement creates an element on a page, last or before another element of the page.
func (s *ElementService) CreateElement(pageID int64, request model.CreateElementRequest,
	actor string) (*model.Element, *serviceerror.ServiceError) {
	config, svcErr := s.decodeConfig(request.Type, request.Config)
	if svcErr != nil {
		return nil, svcErr
	}

	var created *model.Element
	_, err := s.orderService.Place(orderservice.PlacementRequest{
		Collection: ordermodel.ElementCollection,
		ParentID:   pageID,
		BeforeID:   request.BeforeID,
		Actor:      actor,
	}, func(tx dbmodel.TxInterface, orders []string) error {
		var err error
		created, err = s.store.CreateElement(tx, model.Element{
			PageID: pageID,
			Order:  orders[0],
			Type:   request.Type,
			Config: config,
		})
		return err
	})
	s.invalidate(pageID)
	if err != nil {
		return nil, s.placementError(err, "Failed to create element")
	}

	s.notify(signal.ItemCreated, pageID, actor, created.ID)
	return created, nil
}

// GetElement returns an element.
func (s *ElementService) GetElement(elementID int64) (*model.Element, *serviceerror.ServiceError) {
	element, err := s.store.GetElement(elementID)
	if err != nil {
		if errors.Is(err, constants.ErrElementNotFound) {
			return nil, serviceerror.CustomServiceError(constants.ErrorElementNotFound,
				fmt.Sprintf("The element with ID %d does not exist.", elementID))
		}
		return nil, s.internalError("Failed to get element", err)
	}
	return element, nil
}

// GetElements returns the elements of a page in order.
func (s *ElementService) GetElements(pageID int64) ([]model.Element, *serviceerror.ServiceError) {
	key := pageCacheKey(pageID)
	if cached, ok := s.pageCache.Get(key); ok {
		return cloneElements(cached), nil
	}

	elements, err := s.store.GetElements(pageID)
	if err != nil {
		return nil, s.internalError("Failed to get elements", err)
	}
	s.pageCache.Set(key, cloneElements(elements))
	return elements, nil
}

// UpdateElement merges the given configuration into the configuration of an element.
func (s *ElementService) UpdateElement(elementID int64, config json.RawMessage,
	actor string) (*model.Element, *serviceerror.ServiceError) {
	element, svcErr := s.GetElement(elementID)
	if svcErr != nil {
		return nil, svcErr
	}
	elementType, svcErr := s.elementType(element.Type)
	if svcErr != nil {
		return nil, svcErr
	}

	if len(config) > 0 {
		if err := json.Unmarshal(config, element.Config); err != nil {
			return nil, serviceerror.CustomServiceError(constants.ErrorInvalidElementConfig, err.Error())
		}
	}
	if err := elementType.Validate(element.Config); err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidElementConfig, err.Error())
	}

	if err := s.store.UpdateElementConfig(*element); err != nil {
		if errors.Is(err, constants.ErrElementNotFound) {
			return nil, &constants.ErrorElementNotFound
		}
		return nil, s.internalError("Failed to update element", err)
	}
	s.invalidate(element.PageID)

	s.notify(signal.ItemUpdated, element.PageID, actor, element.ID)
	return element, nil
}

// DeleteElement deletes an element.
func (s *ElementService) DeleteElement(elementID int64, actor string) *serviceerror.ServiceError {
	element, svcErr := s.GetElement(elementID)
	if svcErr != nil {
		return svcErr
	}
	if err := s.store.DeleteElement(elementID); err != nil {
		if errors.Is(err, constants.ErrElementNotFound) {
			return &constants.ErrorElementNotFound
		}
		return s.internalError("Failed to delete element", err)
	}
	s.invalidate(element.PageID)

	s.notify(signal.ItemDeleted, element.PageID, actor, element.ID)
	return nil
}

// MoveElement positions an element before another element of its page, or last. When the page
// had to be renumbered only the orders recalculated signal is emitted.
func (s *ElementService) MoveElement(elementID int64, beforeID *int64,
	actor string) (*model.Element, *serviceerror.ServiceError) {
	element, svcErr := s.GetElement(elementID)
	if svcErr != nil {
		return nil, svcErr
	}

	result, err := s.orderService.Place(orderservice.PlacementRequest{
		Collection: ordermodel.ElementCollection,
		ParentID:   element.PageID,
		BeforeID:   beforeID,
		MovingID:   &element.ID,
		Actor:      actor,
	}, func(tx dbmodel.TxInterface, orders []string) error {
		return s.store.UpdateElementOrder(tx, element.ID, orders[0])
	})
	s.invalidate(element.PageID)
	if err != nil {
		return nil, s.placementError(err, "Failed to move element")
	}
	element.Order = result.Orders[0]

	if !result.Reset {
		s.notify(signal.ItemUpdated, element.PageID, actor, element.ID)
	}
	return element, nil
}

// RecalculateFullOrders renumbers the elements of a page to 1..n keeping their sequence.
func (s *ElementService) RecalculateFullOrders(pageID int64, actor string) *serviceerror.ServiceError {
	err := s.orderService.RecalculateFullOrders(ordermodel.ElementCollection, pageID, actor)
	s.invalidate(pageID)
	if err != nil {
		return s.placementError(err, "Failed to recalculate element orders")
	}
	return nil
}

// OrderElements puts the given elements first in the given sequence.
func (s *ElementService) OrderElements(pageID int64, elementIDs []int64, actor string) *serviceerror.ServiceError {
	err := s.orderService.OrderItems(ordermodel.ElementCollection, pageID, elementIDs, actor)
	s.invalidate(pageID)
	if err != nil {
		return s.placementError(err, "Failed to order elements")
	}
	return nil
}

// ExportElement returns the serialized form of an element.
func (s *ElementService) ExportElement(element *model.Element) (model.SerializedElement,
	*serviceerror.ServiceError) {
	config, err := json.Marshal(element.Config)
	if err != nil {
		return model.SerializedElement{}, s.internalError("Failed to export element", err)
	}
	return model.SerializedElement{
		ID:     element.ID,
		Order:  element.Order,
		Type:   element.Type,
		Config: config,
	}, nil
}

// ImportElements creates the serialized elements last on a page, keeping their sequence. Data
// source references and formulas are rewritten through the mapping.
func (s *ElementService) ImportElements(pageID int64, serialized []model.SerializedElement,
	mapping importexport.IDMapping, importFormula importexport.FormulaImportFunc,
	actor string) ([]model.Element, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	sorted := make([]model.SerializedElement, len(serialized))
	copy(sorted, serialized)
	allocator := s.orderService.GetAllocator()
	sortSerialized(allocator, sorted)

	imported := make([]model.Element, 0, len(sorted))
	for _, entry := range sorted {
		elementType, svcErr := s.elementType(entry.Type)
		if svcErr != nil {
			return nil, svcErr
		}
		config, err := elementType.Decode(entry.Config)
		if err != nil {
			return nil, serviceerror.CustomServiceError(constants.ErrorInvalidElementConfig, err.Error())
		}
		elementType.ImportConfig(config, mapping, importFormula)

		raw, err := json.Marshal(config)
		if err != nil {
			return nil, s.internalError("Failed to import element", err)
		}
		created, svcErr := s.CreateElement(pageID, model.CreateElementRequest{Type: entry.Type, Config: raw}, actor)
		if svcErr != nil {
			return nil, svcErr
		}
		mapping.Set(importexport.CategoryBuilderPageElements, entry.ID, created.ID)
		imported = append(imported, *created)
	}

	logger.Debug("Elements imported", log.Int64("pageId", pageID), log.Int("count", len(imported)))
	return imported, nil
}

// InvalidationSubscriber drops cached pages on element signals emitted by other services.
func (s *ElementService) InvalidationSubscriber(sig signal.Signal) {
	if sig.EntityType != model.EntityType {
		return
	}
	s.invalidate(sig.ParentID)
}

func (s *ElementService) decodeConfig(typeName string, raw json.RawMessage) (model.Config,
	*serviceerror.ServiceError) {
	elementType, svcErr := s.elementType(typeName)
	if svcErr != nil {
		return nil, svcErr
	}
	config, err := elementType.Decode(raw)
	if err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidElementConfig, err.Error())
	}
	if err := elementType.Validate(config); err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidElementConfig, err.Error())
	}
	return config, nil
}

func (s *ElementService) elementType(typeName string) (elementtype.ElementTypeInterface,
	*serviceerror.ServiceError) {
	elementType, err := s.registry.Get(typeName)
	if err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorUnknownElementType,
			fmt.Sprintf("The element type '%s' does not exist.", typeName))
	}
	return elementType, nil
}

func (s *ElementService) invalidate(pageID int64) {
	s.pageCache.Delete(pageCacheKey(pageID))
}

func (s *ElementService) placementError(err error, message string) *serviceerror.ServiceError {
	switch {
	case errors.Is(err, orderconstants.ErrParentNotFound):
		return &constants.ErrorPageNotFound
	case errors.Is(err, orderconstants.ErrNotInSameParent):
		return &constants.ErrorElementNotInSamePage
	case errors.Is(err, orderconstants.ErrBeforeIsSelf):
		return serviceerror.CustomServiceError(constants.ErrorElementNotInSamePage,
			"An element cannot be positioned before itself.")
	}
	return s.internalError(message, err)
}

func (s *ElementService) notify(signalType signal.SignalType, pageID int64, actor string, ids ...int64) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(signal.NewSignal(signalType, model.EntityType, pageID, actor, ids...))
}

func (s *ElementService) internalError(message string, err error) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Error(message, log.Error(err))
	return &constants.ErrorInternalServerError
}

func pageCacheKey(pageID int64) cache.CacheKey {
	return cache.CacheKey{Key: fmt.Sprintf("page:%d", pageID)}
}

func cloneElements(elements []model.Element) []model.Element {
	cloned := make([]model.Element, len(elements))
	for i := range elements {
		cloned[i] = *elements[i].Clone()
	}
	return cloned
}
