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

package formula

import (
	"fmt"
	"strings"
)

// MapContext resolves paths against nested maps.
type MapContext map[string]interface{}

// Get walks the dotted path through nested maps. Missing keys resolve to nil.
func (m MapContext) Get(path string) (interface{}, error) {
	var current interface{} = map[string]interface{}(m)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			current = node[segment]
		case MapContext:
			current = node[segment]
		case nil:
			return nil, nil
		default:
			return nil, fmt.Errorf("cannot resolve %q: %s is not an object", path, segment)
		}
	}
	return current, nil
}
