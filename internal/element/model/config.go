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

package model

// Devices a table orientation is configured for.
const (
	DeviceSmartphone = "smartphone"
	DeviceTablet     = "tablet"
	DeviceDesktop    = "desktop"
)

// Table orientations.
const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

// Devices lists every device of an orientation.
var Devices = []string{DeviceSmartphone, DeviceTablet, DeviceDesktop}

// Orientation maps a device to the orientation of a table on it.
type Orientation map[string]string

// DefaultOrientation returns the horizontal orientation for every device.
func DefaultOrientation() Orientation {
	orientation := make(Orientation, len(Devices))
	for _, device := range Devices {
		orientation[device] = OrientationHorizontal
	}
	return orientation
}

// HeadingConfig is a heading of a level from 1 to 6.
type HeadingConfig struct {
	Value string `json:"value"`
	Level int    `json:"level"`
}

// ElementType implements Config.
func (*HeadingConfig) ElementType() string { return TypeHeading }

// ParagraphConfig is a block of text.
type ParagraphConfig struct {
	Value string `json:"value"`
}

// ElementType implements Config.
func (*ParagraphConfig) ElementType() string { return TypeParagraph }

// LinkConfig navigates to a url, shown as a link or a button.
type LinkConfig struct {
	Value      string `json:"value"`
	NavigateTo string `json:"navigate_to_url"`
	Variant    string `json:"variant"`
	Target     string `json:"target"`
}

// ElementType implements Config.
func (*LinkConfig) ElementType() string { return TypeLink }

// ButtonConfig is a button with a label.
type ButtonConfig struct {
	Value string `json:"value"`
}

// ElementType implements Config.
func (*ButtonConfig) ElementType() string { return TypeButton }

// InputTextConfig is a text input.
type InputTextConfig struct {
	Label        string `json:"label"`
	DefaultValue string `json:"default_value"`
	Placeholder  string `json:"placeholder"`
	Required     bool   `json:"required"`
}

// ElementType implements Config.
func (*InputTextConfig) ElementType() string { return TypeInputText }

// TableField is a column of a table element. Value is a formula evaluated per row.
type TableField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TableConfig lists the rows of a data source.
type TableConfig struct {
	DataSourceID *int64       `json:"data_source_id"`
	ItemsPerPage int          `json:"items_per_page"`
	Orientation  Orientation  `json:"orientation"`
	Fields       []TableField `json:"fields"`
}

// ElementType implements Config.
func (*TableConfig) ElementType() string { return TypeTable }
