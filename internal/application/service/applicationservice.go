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

// Package service manages builder applications.
package service

import (
	"errors"
	"strings"

	"github.com/asgardeo/forge/internal/application/constants"
	"github.com/asgardeo/forge/internal/application/model"
	"github.com/asgardeo/forge/internal/application/store"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	"github.com/asgardeo/forge/internal/system/log"
)

const loggerComponentName = "ApplicationService"

// ApplicationServiceInterface defines the operations on builder applications.
type ApplicationServiceInterface interface {
	CreateApplication(name string) (*model.Application, *serviceerror.ServiceError)
	GetApplication(id int64) (*model.Application, *serviceerror.ServiceError)
	GetApplicationList() ([]model.Application, *serviceerror.ServiceError)
	UpdateApplication(id int64, name string) (*model.Application, *serviceerror.ServiceError)
	DeleteApplication(id int64) *serviceerror.ServiceError
}

// ApplicationService is the default implementation of ApplicationServiceInterface.
type ApplicationService struct {
	store store.ApplicationStoreInterface
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(appStore store.ApplicationStoreInterface) *ApplicationService {
	return &ApplicationService{store: appStore}
}

// CreateApplication creates an application.
func (s *ApplicationService) CreateApplication(name string) (*model.Application, *serviceerror.ServiceError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &constants.ErrorInvalidApplicationName
	}
	app, err := s.store.CreateApplication(name)
	if err != nil {
		return nil, s.internalError("Failed to create application", err)
	}
	return app, nil
}

// GetApplication returns an application.
func (s *ApplicationService) GetApplication(id int64) (*model.Application, *serviceerror.ServiceError) {
	app, err := s.store.GetApplicationByID(id)
	if err != nil {
		if errors.Is(err, constants.ErrApplicationNotFound) {
			return nil, &constants.ErrorApplicationNotFound
		}
		return nil, s.internalError("Failed to get application", err)
	}
	return app, nil
}

// GetApplicationList returns every application.
func (s *ApplicationService) GetApplicationList() ([]model.Application, *serviceerror.ServiceError) {
	apps, err := s.store.GetApplicationList()
	if err != nil {
		return nil, s.internalError("Failed to list applications", err)
	}
	return apps, nil
}

// UpdateApplication renames an application.
func (s *ApplicationService) UpdateApplication(id int64, name string) (*model.Application,
	*serviceerror.ServiceError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &constants.ErrorInvalidApplicationName
	}
	app := model.Application{ID: id, Name: name}
	if err := s.store.UpdateApplication(app); err != nil {
		if errors.Is(err, constants.ErrApplicationNotFound) {
			return nil, &constants.ErrorApplicationNotFound
		}
		return nil, s.internalError("Failed to update application", err)
	}
	return &app, nil
}

// DeleteApplication deletes an application with its pages.
func (s *ApplicationService) DeleteApplication(id int64) *serviceerror.ServiceError {
	if err := s.store.DeleteApplication(id); err != nil {
		if errors.Is(err, constants.ErrApplicationNotFound) {
			return &constants.ErrorApplicationNotFound
		}
		return s.internalError("Failed to delete application", err)
	}
	return nil
}

func (s *ApplicationService) internalError(message string, err error) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Error(message, log.Error(err))
	return &constants.ErrorInternalServerError
}
