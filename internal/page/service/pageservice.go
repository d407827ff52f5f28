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

// Package service manages the pages of builder applications.
package service

import (
	"errors"
	"fmt"
	"strings"

	dsmodel "github.com/asgardeo/forge/internal/datasource/model"
	dsservice "github.com/asgardeo/forge/internal/datasource/service"
	elementmodel "github.com/asgardeo/forge/internal/element/model"
	elementservice "github.com/asgardeo/forge/internal/element/service"
	"github.com/asgardeo/forge/internal/importexport"
	orderconstants "github.com/asgardeo/forge/internal/order/constants"
	ordermodel "github.com/asgardeo/forge/internal/order/model"
	orderservice "github.com/asgardeo/forge/internal/order/service"
	"github.com/asgardeo/forge/internal/page/constants"
	"github.com/asgardeo/forge/internal/page/model"
	"github.com/asgardeo/forge/internal/page/store"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/signal"
)

const loggerComponentName = "PageService"

// PageServiceInterface defines the operations on builder pages.
type PageServiceInterface interface {
	CreatePage(builderID int64, request model.CreatePageRequest, actor string) (*model.Page,
		*serviceerror.ServiceError)
	GetPage(pageID int64) (*model.Page, *serviceerror.ServiceError)
	GetPages(builderID int64) ([]model.Page, *serviceerror.ServiceError)
	UpdatePage(pageID int64, request model.UpdatePageRequest, actor string) (*model.Page,
		*serviceerror.ServiceError)
	DeletePage(pageID int64, actor string) *serviceerror.ServiceError
	MovePage(pageID int64, beforeID *int64, actor string) (*model.Page, *serviceerror.ServiceError)
	OrderPages(builderID int64, pageIDs []int64, actor string) *serviceerror.ServiceError
	DuplicatePage(pageID int64, actor string, progress model.ProgressFunc) (*model.DuplicateResult,
		*serviceerror.ServiceError)
}

// PageService is the default implementation of PageServiceInterface.
type PageService struct {
	store        store.PageStoreInterface
	orderService orderservice.OrderServiceInterface
	dataSources  dsservice.DataSourceServiceInterface
	elements     elementservice.ElementServiceInterface
	notifier     signal.NotifierInterface
}

// NewPageService creates a new instance of PageService.
func NewPageService(pageStore store.PageStoreInterface, orderService orderservice.OrderServiceInterface,
	dataSources dsservice.DataSourceServiceInterface, elements elementservice.ElementServiceInterface,
	notifier signal.NotifierInterface) *PageService {
	return &PageService{
		store:        pageStore,
		orderService: orderService,
		dataSources:  dataSources,
		elements:     elements,
		notifier:     notifier,
	}
}

// CreatePage creates a page in an application, last or before another page of the application.
func (s *PageService) CreatePage(builderID int64, request model.CreatePageRequest,
	actor string) (*model.Page, *serviceerror.ServiceError) {
	page := model.Page{
		BuilderID:  builderID,
		Name:       strings.TrimSpace(request.Name),
		Path:       request.Path,
		PathParams: request.PathParams,
	}
	if page.PathParams == nil {
		page.PathParams = []model.PathParam{}
	}
	if svcErr := s.validatePage(page); svcErr != nil {
		return nil, svcErr
	}

	var created *model.Page
	_, err := s.orderService.Place(orderservice.PlacementRequest{
		Collection: ordermodel.PageCollection,
		ParentID:   builderID,
		BeforeID:   request.BeforeID,
		Actor:      actor,
	}, func(tx dbmodel.TxInterface, orders []string) error {
		page.Order = orders[0]
		var err error
		created, err = s.store.CreatePage(tx, page)
		return err
	})
	if err != nil {
		return nil, s.placementError(err, "Failed to create page")
	}

	s.notify(signal.ItemCreated, builderID, actor, created.ID)
	return created, nil
}

// GetPage returns a page.
func (s *PageService) GetPage(pageID int64) (*model.Page, *serviceerror.ServiceError) {
	page, err := s.store.GetPage(pageID)
	if err != nil {
		if errors.Is(err, constants.ErrPageNotFound) {
			return nil, serviceerror.CustomServiceError(constants.ErrorPageNotFound,
				fmt.Sprintf("The page with ID %d does not exist.", pageID))
		}
		return nil, s.internalError("Failed to get page", err)
	}
	return page, nil
}

// GetPages returns the pages of an application in order.
func (s *PageService) GetPages(builderID int64) ([]model.Page, *serviceerror.ServiceError) {
	pages, err := s.store.GetPages(builderID)
	if err != nil {
		return nil, s.internalError("Failed to get pages", err)
	}
	return pages, nil
}

// UpdatePage changes the name, the path or the path parameters of a page.
func (s *PageService) UpdatePage(pageID int64, request model.UpdatePageRequest,
	actor string) (*model.Page, *serviceerror.ServiceError) {
	page, svcErr := s.GetPage(pageID)
	if svcErr != nil {
		return nil, svcErr
	}
	if request.Name != nil {
		page.Name = strings.TrimSpace(*request.Name)
	}
	if request.Path != nil {
		page.Path = *request.Path
	}
	if request.PathParams != nil {
		page.PathParams = *request.PathParams
	}
	if svcErr := s.validatePage(*page); svcErr != nil {
		return nil, svcErr
	}

	if err := s.store.UpdatePage(*page); err != nil {
		if errors.Is(err, constants.ErrPageNotFound) {
			return nil, &constants.ErrorPageNotFound
		}
		return nil, s.internalError("Failed to update page", err)
	}

	s.notify(signal.ItemUpdated, page.BuilderID, actor, page.ID)
	return page, nil
}

// DeletePage deletes a page with its data sources, their services and its elements.
func (s *PageService) DeletePage(pageID int64, actor string) *serviceerror.ServiceError {
	page, svcErr := s.GetPage(pageID)
	if svcErr != nil {
		return svcErr
	}

	dataSources, svcErr := s.dataSources.GetDataSources(pageID)
	if svcErr != nil {
		return svcErr
	}
	for _, dataSource := range dataSources {
		if svcErr := s.dataSources.DeleteDataSource(dataSource.ID, actor); svcErr != nil {
			return svcErr
		}
	}

	if err := s.store.DeletePage(pageID); err != nil {
		if errors.Is(err, constants.ErrPageNotFound) {
			return &constants.ErrorPageNotFound
		}
		return s.internalError("Failed to delete page", err)
	}

	s.notify(signal.ItemDeleted, page.BuilderID, actor, page.ID)
	return nil
}

// MovePage positions a page before another page of its application, or last.
func (s *PageService) MovePage(pageID int64, beforeID *int64, actor string) (*model.Page,
	*serviceerror.ServiceError) {
	page, svcErr := s.GetPage(pageID)
	if svcErr != nil {
		return nil, svcErr
	}

	result, err := s.orderService.Place(orderservice.PlacementRequest{
		Collection: ordermodel.PageCollection,
		ParentID:   page.BuilderID,
		BeforeID:   beforeID,
		MovingID:   &page.ID,
		Actor:      actor,
	}, func(tx dbmodel.TxInterface, orders []string) error {
		return s.store.UpdatePageOrder(tx, page.ID, orders[0])
	})
	if err != nil {
		return nil, s.placementError(err, "Failed to move page")
	}
	page.Order = result.Orders[0]

	if !result.Reset {
		s.notify(signal.ItemUpdated, page.BuilderID, actor, page.ID)
	}
	return page, nil
}

// OrderPages puts the given pages first in the given sequence.
func (s *PageService) OrderPages(builderID int64, pageIDs []int64, actor string) *serviceerror.ServiceError {
	if err := s.orderService.OrderItems(ordermodel.PageCollection, builderID, pageIDs, actor); err != nil {
		return s.placementError(err, "Failed to order pages")
	}
	return nil
}

// DuplicatePage copies a page with its data sources and elements. The copy is placed right after
// the original, and formulas of the copy reference the copied data sources.
func (s *PageService) DuplicatePage(pageID int64, actor string,
	progress model.ProgressFunc) (*model.DuplicateResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.Int64("pageId", pageID))
	report := func(percentage int) {
		if progress != nil {
			progress(percentage)
		}
	}

	page, svcErr := s.GetPage(pageID)
	if svcErr != nil {
		return nil, svcErr
	}
	siblings, svcErr := s.GetPages(page.BuilderID)
	if svcErr != nil {
		return nil, svcErr
	}

	serializedDataSources, svcErr := s.exportDataSources(pageID)
	if svcErr != nil {
		return nil, svcErr
	}
	serializedElements, svcErr := s.exportElements(pageID)
	if svcErr != nil {
		return nil, svcErr
	}
	report(20)

	name, path := unusedNameAndPath(page, siblings)
	copied, svcErr := s.CreatePage(page.BuilderID, model.CreatePageRequest{
		Name:       name,
		Path:       path,
		PathParams: page.PathParams,
		BeforeID:   nextSiblingID(siblings, page.ID),
	}, actor)
	if svcErr != nil {
		return nil, svcErr
	}
	mapping := importexport.NewIDMapping()
	mapping.Set(importexport.CategoryBuilderPages, page.ID, copied.ID)
	report(40)

	dataSources, svcErr := s.dataSources.ImportDataSources(copied.ID, serializedDataSources, mapping, actor)
	if svcErr != nil {
		s.discardCopy(copied.ID, actor, logger)
		return nil, svcErr
	}
	report(70)

	importer := importexport.NewFormulaImporter(s.dataSources.PathImporter)
	elements, svcErr := s.elements.ImportElements(copied.ID, serializedElements, mapping, importer.ImportFormula,
		actor)
	if svcErr != nil {
		s.discardCopy(copied.ID, actor, logger)
		return nil, svcErr
	}
	report(100)

	logger.Debug("Page duplicated", log.Int64("duplicateId", copied.ID),
		log.Int("dataSources", len(dataSources)), log.Int("elements", len(elements)))
	return &model.DuplicateResult{Page: copied, DataSources: len(dataSources), Elements: len(elements)}, nil
}

// discardCopy removes a partially imported duplicate together with its data sources.
func (s *PageService) discardCopy(pageID int64, actor string, logger *log.Logger) {
	if svcErr := s.DeletePage(pageID, actor); svcErr != nil {
		logger.Error("Failed to remove incomplete page copy", log.Int64("duplicateId", pageID),
			log.String("error", svcErr.Summary()))
	}
}

func (s *PageService) exportDataSources(pageID int64) ([]dsmodel.SerializedDataSource, *serviceerror.ServiceError) {
	dataSources, svcErr := s.dataSources.GetDataSources(pageID)
	if svcErr != nil {
		return nil, svcErr
	}
	serialized := make([]dsmodel.SerializedDataSource, 0, len(dataSources))
	for i := range dataSources {
		exported, svcErr := s.dataSources.ExportDataSource(&dataSources[i])
		if svcErr != nil {
			return nil, svcErr
		}
		serialized = append(serialized, exported)
	}
	return serialized, nil
}

func (s *PageService) exportElements(pageID int64) ([]elementmodel.SerializedElement, *serviceerror.ServiceError) {
	elements, svcErr := s.elements.GetElements(pageID)
	if svcErr != nil {
		return nil, svcErr
	}
	serialized := make([]elementmodel.SerializedElement, 0, len(elements))
	for i := range elements {
		exported, svcErr := s.elements.ExportElement(&elements[i])
		if svcErr != nil {
			return nil, svcErr
		}
		serialized = append(serialized, exported)
	}
	return serialized, nil
}

// validatePage checks the path and that name and path are unique within the application.
func (s *PageService) validatePage(page model.Page) *serviceerror.ServiceError {
	if page.Name == "" {
		return serviceerror.CustomServiceError(constants.ErrorPageNameNotUnique, "The page name must not be blank.")
	}
	if svcErr := validatePath(page.Path, page.PathParams); svcErr != nil {
		return svcErr
	}

	pages, svcErr := s.GetPages(page.BuilderID)
	if svcErr != nil {
		return svcErr
	}
	for _, other := range pages {
		if other.ID == page.ID {
			continue
		}
		if other.Name == page.Name {
			return serviceerror.CustomServiceError(constants.ErrorPageNameNotUnique,
				fmt.Sprintf("The page name '%s' is already used in the application.", page.Name))
		}
		if other.Path == page.Path {
			return serviceerror.CustomServiceError(constants.ErrorPagePathNotUnique,
				fmt.Sprintf("The path '%s' is already used in the application.", page.Path))
		}
	}
	return nil
}

func (s *PageService) placementError(err error, message string) *serviceerror.ServiceError {
	switch {
	case errors.Is(err, orderconstants.ErrParentNotFound):
		return &constants.ErrorApplicationNotFound
	case errors.Is(err, orderconstants.ErrNotInSameParent):
		return &constants.ErrorPageNotInSameApplication
	case errors.Is(err, orderconstants.ErrBeforeIsSelf):
		return serviceerror.CustomServiceError(constants.ErrorPageNotInSameApplication,
			"A page cannot be positioned before itself.")
	}
	return s.internalError(message, err)
}

func (s *PageService) notify(signalType signal.SignalType, builderID int64, actor string, ids ...int64) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(signal.NewSignal(signalType, model.EntityType, builderID, actor, ids...))
}

func (s *PageService) internalError(message string, err error) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Error(message, log.Error(err))
	return &constants.ErrorInternalServerError
}

// unusedNameAndPath returns the first "<name> <n>" and numbered path not used by a sibling,
// starting at 2.
func unusedNameAndPath(page *model.Page, siblings []model.Page) (string, string) {
	names := make(map[string]bool, len(siblings))
	paths := make(map[string]bool, len(siblings))
	for _, sibling := range siblings {
		names[sibling.Name] = true
		paths[sibling.Path] = true
	}

	name := page.Name
	for i := 2; names[name]; i++ {
		name = fmt.Sprintf("%s %d", page.Name, i)
	}
	path := page.Path
	for i := 2; paths[path]; i++ {
		path = numberedPath(page.Path, i)
	}
	return name, path
}

// numberedPath suffixes the last static segment of path with "-<n>". Paths without a static
// segment get a "page-<n>" segment first.
func numberedPath(path string, n int) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" && !strings.HasPrefix(segments[i], ":") {
			segments[i] = fmt.Sprintf("%s-%d", segments[i], n)
			return strings.Join(segments, "/")
		}
	}
	rest := strings.TrimPrefix(path, "/")
	if rest == "" {
		return fmt.Sprintf("/page-%d", n)
	}
	return fmt.Sprintf("/page-%d/%s", n, rest)
}

func nextSiblingID(siblings []model.Page, pageID int64) *int64 {
	for i, sibling := range siblings {
		if sibling.ID == pageID && i+1 < len(siblings) {
			return &siblings[i+1].ID
		}
	}
	return nil
}
