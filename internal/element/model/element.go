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

// Package model defines the elements of builder pages.
package model

import "encoding/json"

// EntityType is the entity type reported in element signals.
const EntityType = "element"

// Element types.
const (
	TypeHeading   = "heading"
	TypeParagraph = "paragraph"
	TypeLink      = "link"
	TypeButton    = "button"
	TypeInputText = "input_text"
	TypeTable     = "table"
)

// Config is the type specific part of an element.
type Config interface {
	ElementType() string
}

// Element is a positioned component of a page. Config holds the variant selected by Type.
type Element struct {
	ID     int64  `json:"id"`
	PageID int64  `json:"page_id"`
	Order  string `json:"order"`
	Type   string `json:"type"`
	Config Config `json:"config"`
}

// Clone returns a copy of the element. Configs are values behind pointers and are copied
// through their JSON form.
func (e *Element) Clone() *Element {
	clone := *e
	if e.Config != nil {
		clone.Config = cloneConfig(e.Config)
	}
	return &clone
}

// SerializedElement is the exported form of an element.
type SerializedElement struct {
	ID     int64           `json:"id"`
	Order  string          `json:"order"`
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config"`
}

// CreateElementRequest holds the attributes of a new element. A nil config uses the defaults of
// the type.
type CreateElementRequest struct {
	Type   string
	Config json.RawMessage
	// BeforeID places the element before this element of the page. Nil places it last.
	BeforeID *int64
}

func cloneConfig(config Config) Config {
	switch c := config.(type) {
	case *HeadingConfig:
		copied := *c
		return &copied
	case *ParagraphConfig:
		copied := *c
		return &copied
	case *LinkConfig:
		copied := *c
		return &copied
	case *ButtonConfig:
		copied := *c
		return &copied
	case *InputTextConfig:
		copied := *c
		return &copied
	case *TableConfig:
		copied := *c
		if c.DataSourceID != nil {
			id := *c.DataSourceID
			copied.DataSourceID = &id
		}
		copied.Orientation = make(Orientation, len(c.Orientation))
		for device, value := range c.Orientation {
			copied.Orientation[device] = value
		}
		copied.Fields = append([]TableField(nil), c.Fields...)
		return &copied
	}
	return config
}
