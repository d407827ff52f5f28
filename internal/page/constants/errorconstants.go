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

// Package constants defines the errors of page operations.
package constants

import (
	"errors"

	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

// Client errors for page operations.
var (
	// ErrorPageNotFound is the error returned when a page does not exist.
	ErrorPageNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PAG-1001",
		Error:            "Page not found",
		ErrorDescription: "The page does not exist",
	}
	// ErrorApplicationNotFound is the error returned when the application of a page does not exist.
	ErrorApplicationNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PAG-1002",
		Error:            "Application not found",
		ErrorDescription: "The application does not exist",
	}
	// ErrorPageNameNotUnique is the error returned when a page name is already used in the application.
	ErrorPageNameNotUnique = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PAG-1003",
		Error:            "Page name not unique",
		ErrorDescription: "The page name is already used in the application",
	}
	// ErrorPagePathNotUnique is the error returned when a page path is already used in the application.
	ErrorPagePathNotUnique = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PAG-1004",
		Error:            "Page path not unique",
		ErrorDescription: "The page path is already used in the application",
	}
	// ErrorInvalidPagePath is the error returned when a page path is malformed.
	ErrorInvalidPagePath = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PAG-1005",
		Error:            "Invalid page path",
		ErrorDescription: "The page path must start with a slash",
	}
	// ErrorInvalidPathParams is the error returned when the path parameters do not match the path.
	ErrorInvalidPathParams = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PAG-1006",
		Error:            "Invalid path parameters",
		ErrorDescription: "The path parameters do not match the page path",
	}
	// ErrorPageNotInSameApplication is the error returned when a page is positioned before a page of
	// another application.
	ErrorPageNotInSameApplication = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "PAG-1007",
		Error:            "Page not in same application",
		ErrorDescription: "The before page does not belong to the same application",
	}
)

// Server errors for page operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "PAG-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)

// ErrPageNotFound is returned by the store when a page does not exist.
var ErrPageNotFound = errors.New("page not found")
