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

package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	appmodel "github.com/asgardeo/forge/internal/application/model"
	appservice "github.com/asgardeo/forge/internal/application/service"
	appstore "github.com/asgardeo/forge/internal/application/store"
	"github.com/asgardeo/forge/internal/dataservice/handler"
	"github.com/asgardeo/forge/internal/dataservice/servicetype"
	servicestore "github.com/asgardeo/forge/internal/dataservice/store"
	dsservice "github.com/asgardeo/forge/internal/datasource/service"
	dsstore "github.com/asgardeo/forge/internal/datasource/store"
	"github.com/asgardeo/forge/internal/element/elementtype"
	elementmodel "github.com/asgardeo/forge/internal/element/model"
	elementservice "github.com/asgardeo/forge/internal/element/service"
	elementstore "github.com/asgardeo/forge/internal/element/store"
	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/job/jobtypes"
	jobservice "github.com/asgardeo/forge/internal/job/service"
	jobstore "github.com/asgardeo/forge/internal/job/store"
	"github.com/asgardeo/forge/internal/order"
	orderservice "github.com/asgardeo/forge/internal/order/service"
	orderstore "github.com/asgardeo/forge/internal/order/store"
	pageservice "github.com/asgardeo/forge/internal/page/service"
	pagestore "github.com/asgardeo/forge/internal/page/store"
	"github.com/asgardeo/forge/internal/system/cache"
	"github.com/asgardeo/forge/internal/system/config"
	"github.com/asgardeo/forge/internal/system/constants"
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
	"github.com/asgardeo/forge/internal/system/database/provider"
	"github.com/asgardeo/forge/internal/system/database/schema"
	healthservice "github.com/asgardeo/forge/internal/system/healthcheck/service"
	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/signal"
	"github.com/asgardeo/forge/internal/table/fieldtype"
	tablestore "github.com/asgardeo/forge/internal/table/store"
)

const configFilePath = "repository/conf/deployment.yaml"

// serviceManager holds the services of one forge invocation.
type serviceManager struct {
	config       *config.Config
	provider     *provider.DBProvider
	dispatcher   *signal.Dispatcher
	applications *appservice.ApplicationService
	services     *handler.ServiceHandler
	dataSources  *dsservice.DataSourceService
	elements     *elementservice.ElementService
	pages        *pageservice.PageService
	jobs         *jobservice.JobHandler
	health       *healthservice.HealthCheckService
}

// loadConfig reads the deployment configuration of the forge home. A missing file falls back to
// the defaults.
func loadConfig(forgeHome string) (*config.Config, error) {
	logger := log.GetLogger()

	cfg, err := config.LoadConfig(path.Join(forgeHome, configFilePath))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load configurations: %w", err)
		}
		logger.Info("No deployment configuration found, using defaults", log.String("forgeHome", forgeHome))
		cfg = config.DefaultConfig()
	}
	if err := config.InitializeForgeRuntime(forgeHome, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize forge runtime: %w", err)
	}
	return cfg, nil
}

// newServiceManager wires the services over the databases of the configuration.
func newServiceManager(forgeHome string, cfg *config.Config) (*serviceManager, error) {
	for _, dataSource := range []config.DataSource{cfg.Database.Builder, cfg.Database.Tables} {
		if err := ensureSQLiteDir(forgeHome, dataSource); err != nil {
			return nil, err
		}
	}

	dbProvider := provider.NewDBProvider(forgeHome, cfg.Database)
	dispatcher := signal.NewDispatcher()
	dispatcher.Subscribe(signal.LoggingSubscriber)

	allocator := order.NewAllocator(cfg.Order.Scale)
	fieldTypes := fieldtype.NewRegistry()
	rows := tablestore.NewRowStore(dbProvider, allocator, fieldTypes)
	serviceStore := servicestore.NewDataServiceStore(dbProvider)
	services := handler.NewServiceHandler(serviceStore, servicetype.NewDefaultRegistry(servicetype.Dependencies{
		RowStore:     rows,
		Integrations: serviceStore,
		Resolver:     formula.NewResolver(formula.NewEvaluator()),
		Allocator:    allocator,
		FieldTypes:   fieldTypes,
	}), rows)

	orders := orderservice.NewOrderService(orderstore.NewOrderStore(dbProvider, allocator), allocator, dispatcher)
	dataSources := dsservice.NewDataSourceService(dsstore.NewDataSourceStore(dbProvider, allocator), orders,
		services, dispatcher)

	ttl := time.Duration(cfg.Cache.TTL) * time.Second
	registry := elementtype.NewDefaultRegistry()
	elements := elementservice.NewElementService(elementstore.NewElementStore(dbProvider, allocator, registry),
		orders, registry, dispatcher,
		cache.NewInMemoryCache[[]elementmodel.Element]("PageElementCache", !cfg.Cache.Disabled, cfg.Cache.Size, ttl))
	dispatcher.Subscribe(elements.InvalidationSubscriber)

	pages := pageservice.NewPageService(pagestore.NewPageStore(dbProvider, allocator), orders, dataSources,
		elements, dispatcher)

	applications := appservice.NewApplicationService(appstore.NewCachedBackedApplicationStore(
		appstore.NewApplicationStore(dbProvider),
		cache.NewInMemoryCache[*appmodel.Application]("ApplicationByIDCache", !cfg.Cache.Disabled,
			cfg.Cache.Size, ttl)))

	jobs := jobservice.NewJobHandler(jobstore.NewJobStore(dbProvider),
		jobservice.NewRegistry(jobtypes.NewDuplicatePageJobType(pages)), cfg.Job.MaxCount)

	return &serviceManager{
		config:       cfg,
		provider:     dbProvider,
		dispatcher:   dispatcher,
		applications: applications,
		services:     services,
		dataSources:  dataSources,
		elements:     elements,
		pages:        pages,
		jobs:         jobs,
		health:       healthservice.NewHealthCheckService(dbProvider),
	}, nil
}

// migrate applies the schema of both databases.
func (m *serviceManager) migrate() error {
	logger := log.GetLogger()
	for _, dbName := range []string{constants.BuilderDatabase, constants.TablesDatabase} {
		dbClient, err := m.provider.GetDBClient(dbName)
		if err != nil {
			return err
		}
		if err := schema.NewMigrator(dbClient).Migrate(dbName); err != nil {
			return fmt.Errorf("failed to migrate %s database: %w", dbName, err)
		}
		logger.Info("Database schema applied", log.String("database", dbName))
	}
	return nil
}

func (m *serviceManager) close() {
	if err := m.provider.Close(); err != nil {
		log.GetLogger().Error("Failed to close database clients", log.Error(err))
	}
}

func ensureSQLiteDir(forgeHome string, dataSource config.DataSource) error {
	if dataSource.Type != dbmodel.DBTypeSQLite || dataSource.Path == "" || dataSource.Path == ":memory:" {
		return nil
	}
	dbPath := dataSource.Path
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(forgeHome, dbPath)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
