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

// Package fieldtype implements the value handling of every table field type.
package fieldtype

import (
	"fmt"
	"sort"
	"sync"

	"github.com/asgardeo/forge/internal/table/constants"
	"github.com/asgardeo/forge/internal/table/model"
)

// Field type names.
const (
	TypeText         = "text"
	TypeLongText     = "long_text"
	TypeNumber       = "number"
	TypeBoolean      = "boolean"
	TypeSingleSelect = "single_select"
	TypeUUID         = "uuid"
)

// InvalidValueError reports a value a field cannot hold.
type InvalidValueError struct {
	Message string
}

func (e *InvalidValueError) Error() string {
	return e.Message
}

func invalidValue(format string, args ...interface{}) error {
	return &InvalidValueError{Message: fmt.Sprintf(format, args...)}
}

// FieldTypeInterface converts and compares the values of one field type.
type FieldTypeInterface interface {
	Type() string
	// ReadOnly reports whether values are generated and never written by users.
	ReadOnly() bool
	// Default returns the value of a new row.
	Default(field model.Field) interface{}
	// Prepare validates a user provided value and returns the typed value.
	Prepare(field model.Field, value interface{}) (interface{}, error)
	// ToDB returns the column text of a typed value, or nil.
	ToDB(field model.Field, value interface{}) interface{}
	// FromDB returns the typed value of a column.
	FromDB(field model.Field, raw interface{}) interface{}
	// Serialize returns the payload representation of a typed value.
	Serialize(field model.Field, value interface{}) interface{}
	// Text returns the text used by search and text filters.
	Text(field model.Field, value interface{}) string
	// Compare orders two typed values.
	Compare(field model.Field, a, b interface{}) int
	// Searchable reports whether the field takes part in row search.
	Searchable() bool
}

// Registry holds the field types by name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]FieldTypeInterface
}

// NewRegistry creates a registry holding the built in field types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]FieldTypeInterface)}
	r.Register(textType{name: TypeText})
	r.Register(textType{name: TypeLongText})
	r.Register(numberType{})
	r.Register(booleanType{})
	r.Register(singleSelectType{})
	r.Register(uuidType{})
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry of built in field types.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds or replaces a field type.
func (r *Registry) Register(fieldType FieldTypeInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[fieldType.Type()] = fieldType
}

// Get returns the field type with the given name.
func (r *Registry) Get(name string) (FieldTypeInterface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fieldType, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownFieldType, name)
	}
	return fieldType, nil
}

// Names returns the registered type names sorted.
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

// IsEmpty reports whether a typed value counts as empty for the empty filters.
func IsEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	}
	return false
}
