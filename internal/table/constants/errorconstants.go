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

// Package constants defines the errors of the table store.
package constants

import "errors"

var (
	// ErrTableNotFound is returned when a table does not exist.
	ErrTableNotFound = errors.New("table not found")
	// ErrFieldNotFound is returned when a field does not exist.
	ErrFieldNotFound = errors.New("field not found")
	// ErrViewNotFound is returned when a view does not exist.
	ErrViewNotFound = errors.New("view not found")
	// ErrRowNotFound is returned when a row does not exist.
	ErrRowNotFound = errors.New("row not found")
	// ErrUnknownFieldType is returned for a field whose type is not registered.
	ErrUnknownFieldType = errors.New("unknown field type")
	// ErrUnknownFilterType is returned for an unsupported filter type.
	ErrUnknownFilterType = errors.New("unknown filter type")
)
