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
	dbmodel "github.com/asgardeo/forge/internal/system/database/model"
)

var (
	// QueryCreateIntegration is the query to create an integration.
	QueryCreateIntegration = dbmodel.DBQuery{
		ID: "DSQ-INTEGRATION_MGT-00",
		Query: `INSERT INTO INTEGRATION (APPLICATION_ID, TYPE, NAME, AUTHORIZED_USER) ` +
			`VALUES ($1, $2, $3, $4) RETURNING INTEGRATION_ID`,
	}

	// QueryGetIntegrationByID is the query to get an integration by id.
	QueryGetIntegrationByID = dbmodel.DBQuery{
		ID: "DSQ-INTEGRATION_MGT-01",
		Query: `SELECT INTEGRATION_ID, APPLICATION_ID, TYPE, NAME, AUTHORIZED_USER FROM INTEGRATION ` +
			`WHERE INTEGRATION_ID = $1`,
	}

	// QueryCreateService is the query to create a service.
	QueryCreateService = dbmodel.DBQuery{
		ID: "DSQ-SERVICE_MGT-00",
		Query: `INSERT INTO DATA_SERVICE (TYPE, INTEGRATION_ID, TABLE_ID, VIEW_ID, ROW_ID, SEARCH_QUERY, ` +
			`FILTER_TYPE) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING SERVICE_ID`,
	}

	// QueryGetServiceByID is the query to get a service by id.
	QueryGetServiceByID = dbmodel.DBQuery{
		ID: "DSQ-SERVICE_MGT-01",
		Query: `SELECT SERVICE_ID, TYPE, INTEGRATION_ID, TABLE_ID, VIEW_ID, ROW_ID, SEARCH_QUERY, FILTER_TYPE ` +
			`FROM DATA_SERVICE WHERE SERVICE_ID = $1`,
	}

	// QueryUpdateService is the query to update the attributes of a service.
	QueryUpdateService = dbmodel.DBQuery{
		ID: "DSQ-SERVICE_MGT-02",
		Query: `UPDATE DATA_SERVICE SET INTEGRATION_ID = $2, TABLE_ID = $3, VIEW_ID = $4, ROW_ID = $5, ` +
			`SEARCH_QUERY = $6, FILTER_TYPE = $7 WHERE SERVICE_ID = $1`,
	}

	// QueryDeleteService is the query to delete a service.
	QueryDeleteService = dbmodel.DBQuery{
		ID:    "DSQ-SERVICE_MGT-03",
		Query: `DELETE FROM DATA_SERVICE WHERE SERVICE_ID = $1`,
	}

	// QueryCreateServiceFilter is the query to create a service filter.
	QueryCreateServiceFilter = dbmodel.DBQuery{
		ID: "DSQ-SERVICE_MGT-04",
		Query: `INSERT INTO DATA_SERVICE_FILTER (SERVICE_ID, FIELD_ID, TYPE, VALUE, VALUE_IS_FORMULA, ` +
			`FILTER_ORDER) VALUES ($1, $2, $3, $4, $5, $6) RETURNING FILTER_ID`,
	}

	// QueryGetServiceFilters is the query to get the filters of a service.
	QueryGetServiceFilters = dbmodel.DBQuery{
		ID: "DSQ-SERVICE_MGT-05",
		Query: `SELECT FILTER_ID, FIELD_ID, TYPE, VALUE, VALUE_IS_FORMULA, FILTER_ORDER ` +
			`FROM DATA_SERVICE_FILTER WHERE SERVICE_ID = $1 ORDER BY FILTER_ORDER, FILTER_ID`,
	}

	// QueryDeleteServiceFilters is the query to delete the filters of a service.
	QueryDeleteServiceFilters = dbmodel.DBQuery{
		ID:    "DSQ-SERVICE_MGT-06",
		Query: `DELETE FROM DATA_SERVICE_FILTER WHERE SERVICE_ID = $1`,
	}

	// QueryCreateFieldMapping is the query to create a field mapping.
	QueryCreateFieldMapping = dbmodel.DBQuery{
		ID: "DSQ-SERVICE_MGT-07",
		Query: `INSERT INTO DATA_SERVICE_FIELD_MAPPING (SERVICE_ID, FIELD_ID, VALUE, ENABLED) ` +
			`VALUES ($1, $2, $3, $4) RETURNING MAPPING_ID`,
	}

	// QueryGetFieldMappings is the query to get the field mappings of a service.
	QueryGetFieldMappings = dbmodel.DBQuery{
		ID: "DSQ-SERVICE_MGT-08",
		Query: `SELECT MAPPING_ID, FIELD_ID, VALUE, ENABLED FROM DATA_SERVICE_FIELD_MAPPING ` +
			`WHERE SERVICE_ID = $1 ORDER BY MAPPING_ID`,
	}

	// QueryDeleteFieldMappings is the query to delete the field mappings of a service.
	QueryDeleteFieldMappings = dbmodel.DBQuery{
		ID:    "DSQ-SERVICE_MGT-09",
		Query: `DELETE FROM DATA_SERVICE_FIELD_MAPPING WHERE SERVICE_ID = $1`,
	}
)
