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

// Package signalmock provides a recording notifier for tests.
package signalmock

import (
	"sync"

	"github.com/asgardeo/forge/internal/system/signal"
)

// MockNotifier records every signal it receives.
type MockNotifier struct {
	mu      sync.Mutex
	Signals []signal.Signal
}

// NewMockNotifier creates a new instance of MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Notify records the signal.
func (m *MockNotifier) Notify(s signal.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Signals = append(m.Signals, s)
}

// OfType returns the recorded signals of the given type.
func (m *MockNotifier) OfType(signalType signal.SignalType) []signal.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []signal.Signal
	for _, s := range m.Signals {
		if s.Type == signalType {
			matched = append(matched, s)
		}
	}
	return matched
}

// Reset drops the recorded signals.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Signals = nil
}
