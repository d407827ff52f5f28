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

// Package constants defines the errors and constants of the data service layer.
package constants

import (
	"errors"

	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

// Client errors for data service operations.
var (
	// ErrorServiceImproperlyConfigured is the error returned when a service cannot run with its
	// configuration. The description names the cause.
	ErrorServiceImproperlyConfigured = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SVC-1001",
		Error:            "Service improperly configured",
		ErrorDescription: "The service configuration is invalid",
	}
	// ErrorDoesNotExist is the error returned when a dispatch finds no row.
	ErrorDoesNotExist = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SVC-1002",
		Error:            "Does not exist",
		ErrorDescription: "The requested row does not exist",
	}
	// ErrorInvalidRequestFormat is the error returned when the provided service values are invalid.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SVC-1003",
		Error:            "Invalid request format",
		ErrorDescription: "The provided service values are invalid",
	}
	// ErrorServiceNotFound is the error returned when a service is not found.
	ErrorServiceNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SVC-1004",
		Error:            "Service not found",
		ErrorDescription: "The service with the given id does not exist",
	}
	// ErrorUnknownServiceType is the error returned when no service type has the given name.
	ErrorUnknownServiceType = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SVC-1005",
		Error:            "Unknown service type",
		ErrorDescription: "The service type is not registered",
	}
)

// Server errors for data service operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "SVC-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)

// ErrServiceNotFound is returned when a service does not exist.
var ErrServiceNotFound = errors.New("service not found")

// ErrIntegrationNotFound is returned when an integration does not exist.
var ErrIntegrationNotFound = errors.New("integration not found")
