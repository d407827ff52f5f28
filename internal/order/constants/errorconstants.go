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

// Package constants defines the errors of ordering operations.
package constants

import "errors"

var (
	// ErrNotInSameParent is returned when an item is positioned relative to an item of another parent.
	ErrNotInSameParent = errors.New("the item is not in the same parent as the before item")
	// ErrParentNotFound is returned when the parent of the ordering scope does not exist.
	ErrParentNotFound = errors.New("the parent of the ordering scope does not exist")
	// ErrBeforeIsSelf is returned when an item is moved before itself.
	ErrBeforeIsSelf = errors.New("an item cannot be positioned before itself")
	// ErrItemNotFound is returned when an ordered item does not exist.
	ErrItemNotFound = errors.New("ordered item not found")
	// ErrInvalidAmount is returned when a placement asks for no items.
	ErrInvalidAmount = errors.New("at least one item must be placed")
)
