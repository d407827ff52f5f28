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
	"fmt"
	"regexp"
	"strings"

	"github.com/asgardeo/forge/internal/page/constants"
	"github.com/asgardeo/forge/internal/page/model"
	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

var pathParamPattern = regexp.MustCompile(`^:([A-Za-z0-9_]+)$`)

// validatePath checks that the path starts with a slash and that its ":<name>" segments are
// exactly the declared parameters.
func validatePath(path string, params []model.PathParam) *serviceerror.ServiceError {
	if !strings.HasPrefix(path, "/") {
		return serviceerror.CustomServiceError(constants.ErrorInvalidPagePath,
			fmt.Sprintf("The path '%s' must start with a slash.", path))
	}

	inPath := make(map[string]bool)
	for _, segment := range strings.Split(path, "/") {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		match := pathParamPattern.FindStringSubmatch(segment)
		if match == nil {
			return serviceerror.CustomServiceError(constants.ErrorInvalidPagePath,
				fmt.Sprintf("The path segment '%s' is not a valid parameter.", segment))
		}
		if inPath[match[1]] {
			return serviceerror.CustomServiceError(constants.ErrorInvalidPathParams,
				fmt.Sprintf("The path parameter '%s' is used more than once.", match[1]))
		}
		inPath[match[1]] = true
	}

	declared := make(map[string]bool, len(params))
	for _, param := range params {
		if param.Type != model.PathParamTypeText && param.Type != model.PathParamTypeNumeric {
			return serviceerror.CustomServiceError(constants.ErrorInvalidPathParams,
				fmt.Sprintf("The path parameter type '%s' is not supported.", param.Type))
		}
		if !inPath[param.Name] {
			return serviceerror.CustomServiceError(constants.ErrorInvalidPathParams,
				fmt.Sprintf("The path parameter '%s' is not in the path.", param.Name))
		}
		declared[param.Name] = true
	}
	for name := range inPath {
		if !declared[name] {
			return serviceerror.CustomServiceError(constants.ErrorInvalidPathParams,
				fmt.Sprintf("The path parameter '%s' is not declared.", name))
		}
	}
	return nil
}
