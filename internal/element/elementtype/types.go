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

package elementtype

import (
	"fmt"

	"github.com/asgardeo/forge/internal/element/model"
	"github.com/asgardeo/forge/internal/importexport"
)

const (
	linkVariantLink   = "link"
	linkVariantButton = "button"
	linkTargetSelf    = "self"
	linkTargetBlank   = "blank"

	maxItemsPerPage     = 100
	defaultItemsPerPage = 20
)

// NewHeadingElementType creates the heading element type.
func NewHeadingElementType() ElementTypeInterface {
	return &elementType[model.HeadingConfig, *model.HeadingConfig]{
		name: model.TypeHeading,
		defaults: func() *model.HeadingConfig {
			return &model.HeadingConfig{Level: 1}
		},
		validate: func(c *model.HeadingConfig) error {
			if c.Level < 1 || c.Level > 6 {
				return fmt.Errorf("The heading level must be between 1 and 6, got %d.", c.Level)
			}
			return nil
		},
		formulas: func(c *model.HeadingConfig) []*string {
			return []*string{&c.Value}
		},
	}
}

// NewParagraphElementType creates the paragraph element type.
func NewParagraphElementType() ElementTypeInterface {
	return &elementType[model.ParagraphConfig, *model.ParagraphConfig]{
		name:     model.TypeParagraph,
		defaults: func() *model.ParagraphConfig { return &model.ParagraphConfig{} },
		formulas: func(c *model.ParagraphConfig) []*string {
			return []*string{&c.Value}
		},
	}
}

// NewLinkElementType creates the link element type.
func NewLinkElementType() ElementTypeInterface {
	return &elementType[model.LinkConfig, *model.LinkConfig]{
		name: model.TypeLink,
		defaults: func() *model.LinkConfig {
			return &model.LinkConfig{Variant: linkVariantLink, Target: linkTargetSelf}
		},
		validate: func(c *model.LinkConfig) error {
			if c.Variant != linkVariantLink && c.Variant != linkVariantButton {
				return fmt.Errorf("The link variant '%s' is not supported.", c.Variant)
			}
			if c.Target != linkTargetSelf && c.Target != linkTargetBlank {
				return fmt.Errorf("The link target '%s' is not supported.", c.Target)
			}
			return nil
		},
		formulas: func(c *model.LinkConfig) []*string {
			return []*string{&c.Value, &c.NavigateTo}
		},
	}
}

// NewButtonElementType creates the button element type.
func NewButtonElementType() ElementTypeInterface {
	return &elementType[model.ButtonConfig, *model.ButtonConfig]{
		name:     model.TypeButton,
		defaults: func() *model.ButtonConfig { return &model.ButtonConfig{} },
		formulas: func(c *model.ButtonConfig) []*string {
			return []*string{&c.Value}
		},
	}
}

// NewInputTextElementType creates the text input element type.
func NewInputTextElementType() ElementTypeInterface {
	return &elementType[model.InputTextConfig, *model.InputTextConfig]{
		name:     model.TypeInputText,
		defaults: func() *model.InputTextConfig { return &model.InputTextConfig{} },
		formulas: func(c *model.InputTextConfig) []*string {
			return []*string{&c.Label, &c.DefaultValue, &c.Placeholder}
		},
	}
}

// NewTableElementType creates the table element type. Devices missing from the orientation are
// horizontal.
func NewTableElementType() ElementTypeInterface {
	return &elementType[model.TableConfig, *model.TableConfig]{
		name: model.TypeTable,
		defaults: func() *model.TableConfig {
			return &model.TableConfig{
				ItemsPerPage: defaultItemsPerPage,
				Orientation:  model.DefaultOrientation(),
				Fields:       []model.TableField{},
			}
		},
		validate: func(c *model.TableConfig) error {
			if c.ItemsPerPage < 1 || c.ItemsPerPage > maxItemsPerPage {
				return fmt.Errorf("The items per page must be between 1 and %d, got %d.", maxItemsPerPage,
					c.ItemsPerPage)
			}
			if c.Orientation == nil {
				c.Orientation = model.DefaultOrientation()
			}
			for device, value := range c.Orientation {
				if !isDevice(device) {
					return fmt.Errorf("The device '%s' is not supported.", device)
				}
				if value != model.OrientationHorizontal && value != model.OrientationVertical {
					return fmt.Errorf("The orientation '%s' is not supported.", value)
				}
			}
			for _, device := range model.Devices {
				if _, ok := c.Orientation[device]; !ok {
					c.Orientation[device] = model.OrientationHorizontal
				}
			}
			if c.Fields == nil {
				c.Fields = []model.TableField{}
			}
			return nil
		},
		formulas: func(c *model.TableConfig) []*string {
			fields := make([]*string, 0, len(c.Fields))
			for i := range c.Fields {
				fields = append(fields, &c.Fields[i].Value)
			}
			return fields
		},
		importIDs: func(c *model.TableConfig, mapping importexport.IDMapping) {
			c.DataSourceID = mapping.GetOptional(importexport.CategoryBuilderDataSources, c.DataSourceID)
		},
	}
}

func isDevice(device string) bool {
	for _, known := range model.Devices {
		if device == known {
			return true
		}
	}
	return false
}
