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

// Package constants defines the errors of data source operations.
package constants

import (
	"errors"

	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

// Client errors for data source operations.
var (
	// ErrorDataSourceNotFound is the error returned when a data source does not exist.
	ErrorDataSourceNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DSR-1001",
		Error:            "Data source not found",
		ErrorDescription: "The data source does not exist",
	}
	// ErrorPageNotFound is the error returned when the page of a data source does not exist.
	ErrorPageNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DSR-1002",
		Error:            "Page not found",
		ErrorDescription: "The page does not exist",
	}
	// ErrorDataSourceNameNotUnique is the error returned when a page already has a data source with
	// the given name.
	ErrorDataSourceNameNotUnique = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DSR-1003",
		Error:            "Data source name not unique",
		ErrorDescription: "A data source with this name already exists on the page",
	}
	// ErrorDataSourceNotInSamePage is the error returned when a data source is positioned before a data
	// source of another page.
	ErrorDataSourceNotInSamePage = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DSR-1004",
		Error:            "Data source not in same page",
		ErrorDescription: "The before data source does not belong to the same page",
	}
	// ErrorDataSourceImproperlyConfigured is the error returned when a data source cannot be
	// dispatched.
	ErrorDataSourceImproperlyConfigured = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DSR-1005",
		Error:            "Data source improperly configured",
		ErrorDescription: "The data source has no service",
	}
	// ErrorDataSourceCycle is the error returned when the formulas of a data source depend on the
	// data source itself.
	ErrorDataSourceCycle = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "DSR-1006",
		Error:            "Data source cycle",
		ErrorDescription: "The data source depends on itself",
	}
)

// Server errors for data source operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "DSR-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)

// ErrDataSourceNotFound is returned by the store when a data source does not exist.
var ErrDataSourceNotFound = errors.New("data source not found")
