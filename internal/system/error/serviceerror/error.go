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

// Package serviceerror defines the errors returned by the service layer.
package serviceerror

// ServiceErrorType tells whether the caller or forge is at fault.
type ServiceErrorType string

const (
	// ClientErrorType is an invalid request.
	ClientErrorType ServiceErrorType = "client_error"
	// ServerErrorType is a failure inside forge.
	ServerErrorType ServiceErrorType = "server_error"
)

// ServiceError is the error of a service operation. Code identifies the error; ErrorDescription
// is the message shown to the user.
type ServiceError struct {
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Error            string           `json:"error"`
	ErrorDescription string           `json:"error_description,omitempty"`
}

// CustomServiceError copies a base error. A non-empty description replaces the default one.
func CustomServiceError(base ServiceError, description string) *ServiceError {
	svcErr := base
	if description != "" {
		svcErr.ErrorDescription = description
	}
	return &svcErr
}

// Is reports whether err carries the same code as target.
func Is(err *ServiceError, target ServiceError) bool {
	return err != nil && err.Code == target.Code
}

// IsClientError reports whether the error was caused by the request.
func (e *ServiceError) IsClientError() bool {
	return e.Type == ClientErrorType
}

// Summary returns the code followed by the short error.
func (e *ServiceError) Summary() string {
	return e.Code + ": " + e.Error
}

// Message returns the description, falling back to the short error.
func (e *ServiceError) Message() string {
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return e.Error
}
