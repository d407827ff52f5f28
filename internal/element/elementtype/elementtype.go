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

// Package elementtype provides the element types with their defaults, validation and formulas.
package elementtype

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/asgardeo/forge/internal/element/model"
	"github.com/asgardeo/forge/internal/importexport"
)

// ElementTypeInterface handles the configuration of one element type.
type ElementTypeInterface interface {
	Type() string
	// Decode reads a configuration over the defaults of the type. An empty raw message returns
	// the defaults.
	Decode(raw json.RawMessage) (model.Config, error)
	Validate(config model.Config) error
	// FormulaFields returns the configuration fields holding formulas.
	FormulaFields(config model.Config) []*string
	// ImportConfig rewrites the identifiers and formulas of an imported configuration.
	ImportConfig(config model.Config, mapping importexport.IDMapping, importFormula importexport.FormulaImportFunc)
}

type elementType[C any, P interface {
	*C
	model.Config
}] struct {
	name      string
	defaults  func() P
	validate  func(P) error
	formulas  func(P) []*string
	importIDs func(P, importexport.IDMapping)
}

func (t *elementType[C, P]) Type() string {
	return t.name
}

func (t *elementType[C, P]) Decode(raw json.RawMessage) (model.Config, error) {
	config := t.defaults()
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("invalid %s configuration: %w", t.name, err)
		}
	}
	return config, nil
}

func (t *elementType[C, P]) cast(config model.Config) (P, error) {
	typed, ok := config.(P)
	if !ok || typed == nil {
		return nil, fmt.Errorf("configuration is not a %s configuration", t.name)
	}
	return typed, nil
}

func (t *elementType[C, P]) Validate(config model.Config) error {
	typed, err := t.cast(config)
	if err != nil {
		return err
	}
	if t.validate == nil {
		return nil
	}
	return t.validate(typed)
}

func (t *elementType[C, P]) FormulaFields(config model.Config) []*string {
	typed, err := t.cast(config)
	if err != nil {
		return nil
	}
	return t.formulas(typed)
}

func (t *elementType[C, P]) ImportConfig(config model.Config, mapping importexport.IDMapping,
	importFormula importexport.FormulaImportFunc) {
	typed, err := t.cast(config)
	if err != nil {
		return
	}
	if t.importIDs != nil {
		t.importIDs(typed, mapping)
	}
	for _, field := range t.formulas(typed) {
		*field = importFormula(*field, mapping)
	}
}

// Registry holds the element types by name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]ElementTypeInterface
}

// NewRegistry creates a registry holding the given element types.
func NewRegistry(types ...ElementTypeInterface) *Registry {
	r := &Registry{types: make(map[string]ElementTypeInterface)}
	for _, elementType := range types {
		r.Register(elementType)
	}
	return r
}

// NewDefaultRegistry creates a registry holding every built-in element type.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewHeadingElementType(),
		NewParagraphElementType(),
		NewLinkElementType(),
		NewButtonElementType(),
		NewInputTextElementType(),
		NewTableElementType(),
	)
}

// Register adds or replaces an element type.
func (r *Registry) Register(elementType ElementTypeInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[elementType.Type()] = elementType
}

// Get returns the element type with the given name.
func (r *Registry) Get(name string) (ElementTypeInterface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	elementType, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown element type %q", name)
	}
	return elementType, nil
}

// Names returns the registered element type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
