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

package store

import (
	"strconv"

	"github.com/asgardeo/forge/internal/application/model"
	"github.com/asgardeo/forge/internal/system/cache"
	"github.com/asgardeo/forge/internal/system/log"
)

// CachedBackedApplicationStore is the implementation of ApplicationStoreInterface that caches
// applications by id.
type CachedBackedApplicationStore struct {
	AppByIDCache cache.CacheInterface[*model.Application]
	Store        ApplicationStoreInterface
}

// NewCachedBackedApplicationStore creates a new instance of CachedBackedApplicationStore.
func NewCachedBackedApplicationStore(appStore ApplicationStoreInterface,
	appCache cache.CacheInterface[*model.Application]) ApplicationStoreInterface {
	return &CachedBackedApplicationStore{
		AppByIDCache: appCache,
		Store:        appStore,
	}
}

// CreateApplication creates a new application and caches it.
func (as *CachedBackedApplicationStore) CreateApplication(name string) (*model.Application, error) {
	app, err := as.Store.CreateApplication(name)
	if err != nil {
		return nil, err
	}
	as.cacheApplication(app)
	return app, nil
}

// GetApplicationByID retrieves an application by id, using cache if available.
func (as *CachedBackedApplicationStore) GetApplicationByID(id int64) (*model.Application, error) {
	if cachedApp, ok := as.AppByIDCache.Get(cacheKey(id)); ok {
		copied := *cachedApp
		return &copied, nil
	}

	app, err := as.Store.GetApplicationByID(id)
	if err != nil || app == nil {
		return app, err
	}
	as.cacheApplication(app)
	return app, nil
}

// GetApplicationList returns every application.
func (as *CachedBackedApplicationStore) GetApplicationList() ([]model.Application, error) {
	return as.Store.GetApplicationList()
}

// UpdateApplication updates an application and caches the updated version.
func (as *CachedBackedApplicationStore) UpdateApplication(app model.Application) error {
	as.invalidateApplicationCache(app.ID)
	if err := as.Store.UpdateApplication(app); err != nil {
		return err
	}
	as.cacheApplication(&app)
	return nil
}

// DeleteApplication deletes an application and drops it from the cache.
func (as *CachedBackedApplicationStore) DeleteApplication(id int64) error {
	as.invalidateApplicationCache(id)
	return as.Store.DeleteApplication(id)
}

func (as *CachedBackedApplicationStore) cacheApplication(app *model.Application) {
	if app == nil {
		return
	}
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CachedBackedApplicationStore"))

	copied := *app
	as.AppByIDCache.Set(cacheKey(app.ID), &copied)
	if logger.IsDebugEnabled() {
		logger.Debug("Application cached", log.Int64("applicationId", app.ID))
	}
}

func (as *CachedBackedApplicationStore) invalidateApplicationCache(id int64) {
	as.AppByIDCache.Delete(cacheKey(id))
}

func cacheKey(id int64) cache.CacheKey {
	return cache.CacheKey{Key: strconv.FormatInt(id, 10)}
}
