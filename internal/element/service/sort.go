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

package service

import (
	"github.com/asgardeo/forge/internal/element/model"
	"github.com/asgardeo/forge/internal/order"
)

// sortSerialized orders serialized elements by their exported order. Unreadable orders count as zero.
func sortSerialized(allocator *order.Allocator, serialized []model.SerializedElement) {
	items := make([]order.Item, len(serialized))
	byID := make(map[int64]model.SerializedElement, len(serialized))
	for i, entry := range serialized {
		value, err := allocator.Parse(entry.Order)
		if err != nil {
			value = nil
		}
		items[i] = order.Item{ID: entry.ID, Order: value}
		byID[entry.ID] = entry
	}
	allocator.Sort(items)
	for i, item := range items {
		serialized[i] = byID[item.ID]
	}
}
