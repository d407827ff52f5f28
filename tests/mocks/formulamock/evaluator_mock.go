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

// Package formulamock provides mocks of the formula evaluator and context.
package formulamock

import "github.com/asgardeo/forge/internal/formula"

// EvaluateCall records one Evaluate invocation.
type EvaluateCall struct {
	Expression string
	Context    formula.ContextInterface
}

// MockEvaluator is a mock implementation of formula.EvaluatorInterface.
type MockEvaluator struct {
	// MockEvaluate defines the behavior for the Evaluate method.
	MockEvaluate func(expression string, ctx formula.ContextInterface) (interface{}, error)

	// Results maps expressions to fixed results when MockEvaluate is not set.
	Results map[string]interface{}

	// Calls tracks the arguments passed to Evaluate.
	Calls []EvaluateCall
}

// Evaluate mocks the Evaluate method of the EvaluatorInterface.
func (m *MockEvaluator) Evaluate(expression string, ctx formula.ContextInterface) (interface{}, error) {
	m.Calls = append(m.Calls, EvaluateCall{Expression: expression, Context: ctx})

	if m.MockEvaluate != nil {
		return m.MockEvaluate(expression, ctx)
	}
	return m.Results[expression], nil
}

// MockContext is a mock implementation of formula.ContextInterface.
type MockContext struct {
	// Values maps dotted paths to values.
	Values map[string]interface{}

	// Paths tracks the requested paths.
	Paths []string
}

// Get returns the configured value of the path.
func (m *MockContext) Get(path string) (interface{}, error) {
	m.Paths = append(m.Paths, path)
	return m.Values[path], nil
}
