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

// Package constants defines the errors of element operations.
package constants

import (
	"errors"

	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

// Client errors for element operations.
var (
	// ErrorElementNotFound is the error returned when an element does not exist.
	ErrorElementNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ELM-1001",
		Error:            "Element not found",
		ErrorDescription: "The element does not exist",
	}
	// ErrorPageNotFound is the error returned when the page of an element does not exist.
	ErrorPageNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ELM-1002",
		Error:            "Page not found",
		ErrorDescription: "The page does not exist",
	}
	// ErrorElementNotInSamePage is the error returned when an element is positioned before an element
	// of another page.
	ErrorElementNotInSamePage = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ELM-1003",
		Error:            "Element not in same page",
		ErrorDescription: "The before element does not belong to the same page",
	}
	// ErrorUnknownElementType is the error returned when an element type is not registered.
	ErrorUnknownElementType = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ELM-1004",
		Error:            "Unknown element type",
		ErrorDescription: "The element type is not supported",
	}
	// ErrorInvalidElementConfig is the error returned when the configuration of an element is invalid.
	ErrorInvalidElementConfig = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ELM-1005",
		Error:            "Invalid element configuration",
		ErrorDescription: "The element configuration is invalid",
	}
)

// Server errors for element operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "ELM-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)

// ErrElementNotFound is returned by the store when an element does not exist.
var ErrElementNotFound = errors.New("element not found")
