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

// Package constants defines the errors of builder application operations.
package constants

import (
	"errors"

	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

// Client errors for application operations.
var (
	// ErrorApplicationNotFound is the error returned when an application does not exist.
	ErrorApplicationNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APP-1001",
		Error:            "Application not found",
		ErrorDescription: "The application does not exist",
	}
	// ErrorInvalidApplicationName is the error returned when an application name is blank.
	ErrorInvalidApplicationName = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APP-1002",
		Error:            "Invalid application name",
		ErrorDescription: "The application name must not be blank",
	}
)

// Server errors for application operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "APP-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)

// ErrApplicationNotFound is returned by the store when an application does not exist.
var ErrApplicationNotFound = errors.New("application not found")
