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

package fieldtype

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/asgardeo/forge/internal/system/utils"
	"github.com/asgardeo/forge/internal/table/model"
)

type textType struct {
	name string
}

func (t textType) Type() string                                { return t.name }
func (textType) ReadOnly() bool                                { return false }
func (textType) Searchable() bool                              { return true }
func (textType) Default(model.Field) interface{}               { return "" }
func (textType) ToDB(_ model.Field, v interface{}) interface{} { return asText(v) }
func (textType) FromDB(_ model.Field, raw interface{}) interface{} {
	return utils.ConvertInterfaceValueToString(raw)
}
func (textType) Serialize(_ model.Field, v interface{}) interface{} { return asText(v) }
func (textType) Text(_ model.Field, v interface{}) string           { return asText(v) }

func (textType) Prepare(_ model.Field, value interface{}) (interface{}, error) {
	return asText(value), nil
}

func (textType) Compare(_ model.Field, a, b interface{}) int {
	return strings.Compare(strings.ToLower(asText(a)), strings.ToLower(asText(b)))
}

var numberContext = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(60)
	ctx.Rounding = apd.RoundHalfEven
	return ctx
}()

type numberType struct{}

func (numberType) Type() string                    { return TypeNumber }
func (numberType) ReadOnly() bool                  { return false }
func (numberType) Searchable() bool                { return true }
func (numberType) Default(model.Field) interface{} { return nil }

// Prepare accepts numbers and numeric text. Blank values clear the field.
func (n numberType) Prepare(field model.Field, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *apd.Decimal:
		return n.quantize(field, v)
	case int64:
		return n.quantize(field, apd.New(v, 0))
	case int:
		return n.quantize(field, apd.New(int64(v), 0))
	case float64:
		d, _, err := apd.NewFromString(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			return nil, invalidValue("The provided value '%v' is not a valid number.", v)
		}
		return n.quantize(field, d)
	}

	text := strings.TrimSpace(asText(value))
	if text == "" {
		return nil, nil
	}
	d, _, err := apd.NewFromString(text)
	if err != nil || d.Form != apd.Finite {
		return nil, invalidValue("The provided value '%s' is not a valid number.", text)
	}
	return n.quantize(field, d)
}

// quantize rejects values carrying more decimal places than the field allows.
func (numberType) quantize(field model.Field, d *apd.Decimal) (interface{}, error) {
	q := new(apd.Decimal)
	condition, err := numberContext.Quantize(q, d, -field.NumberDecimalPlaces)
	if err != nil {
		return nil, invalidValue("The provided value '%s' is not a valid number.", d.String())
	}
	if condition.Inexact() {
		return nil, invalidValue("The provided value '%s' has more than %d decimal places.",
			d.String(), field.NumberDecimalPlaces)
	}
	return q, nil
}

func (n numberType) ToDB(field model.Field, value interface{}) interface{} {
	d, ok := value.(*apd.Decimal)
	if !ok || d == nil {
		return nil
	}
	return d.Text('f')
}

func (numberType) FromDB(field model.Field, raw interface{}) interface{} {
	if raw == nil {
		return nil
	}
	d, _, err := apd.NewFromString(strings.TrimSpace(utils.ConvertInterfaceValueToString(raw)))
	if err != nil || d.Form != apd.Finite {
		return nil
	}
	// Stored values may predate a change of the field's decimal places.
	q := new(apd.Decimal)
	if _, err := numberContext.Quantize(q, d, -field.NumberDecimalPlaces); err != nil {
		return nil
	}
	return q
}

func (numberType) Serialize(_ model.Field, value interface{}) interface{} {
	d, ok := value.(*apd.Decimal)
	if !ok || d == nil {
		return nil
	}
	return d.Text('f')
}

func (numberType) Text(_ model.Field, value interface{}) string {
	d, ok := value.(*apd.Decimal)
	if !ok || d == nil {
		return ""
	}
	return d.Text('f')
}

func (numberType) Compare(_ model.Field, a, b interface{}) int {
	x, xok := a.(*apd.Decimal)
	y, yok := b.(*apd.Decimal)
	switch {
	case (!xok || x == nil) && (!yok || y == nil):
		return 0
	case !xok || x == nil:
		return -1
	case !yok || y == nil:
		return 1
	}
	return x.Cmp(y)
}

var (
	trueValues  = []string{"t", "true", "y", "yes", "on", "1", "checked"}
	falseValues = []string{"", "f", "false", "n", "no", "off", "0", "unchecked"}
)

type booleanType struct{}

func (booleanType) Type() string                    { return TypeBoolean }
func (booleanType) ReadOnly() bool                  { return false }
func (booleanType) Searchable() bool                { return false }
func (booleanType) Default(model.Field) interface{} { return false }

func (booleanType) Prepare(_ model.Field, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case int64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case int:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	}

	text := strings.ToLower(strings.TrimSpace(asText(value)))
	for _, candidate := range trueValues {
		if text == candidate {
			return true, nil
		}
	}
	for _, candidate := range falseValues {
		if text == candidate {
			return false, nil
		}
	}
	return nil, invalidValue("The provided value '%s' is not a valid boolean.", asText(value))
}

func (booleanType) ToDB(_ model.Field, value interface{}) interface{} {
	if b, ok := value.(bool); ok && b {
		return "true"
	}
	return "false"
}

func (booleanType) FromDB(_ model.Field, raw interface{}) interface{} {
	return utils.ParseBool(raw)
}

func (booleanType) Serialize(_ model.Field, value interface{}) interface{} {
	b, _ := value.(bool)
	return b
}

func (booleanType) Text(_ model.Field, value interface{}) string {
	b, _ := value.(bool)
	return strconv.FormatBool(b)
}

func (booleanType) Compare(_ model.Field, a, b interface{}) int {
	x, _ := a.(bool)
	y, _ := b.(bool)
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	}
	return 1
}

type singleSelectType struct{}

func (singleSelectType) Type() string                    { return TypeSingleSelect }
func (singleSelectType) ReadOnly() bool                  { return false }
func (singleSelectType) Searchable() bool                { return true }
func (singleSelectType) Default(model.Field) interface{} { return nil }

// Prepare accepts an option id or the exact value of an option.
func (singleSelectType) Prepare(field model.Field, value interface{}) (interface{}, error) {
	if option, ok := value.(*model.SelectOption); ok {
		value = option.ID
	}
	text := strings.TrimSpace(asText(value))
	if value == nil || text == "" {
		return nil, nil
	}

	if id, err := strconv.ParseInt(text, 10, 64); err == nil {
		for i := range field.SelectOptions {
			if field.SelectOptions[i].ID == id {
				return &field.SelectOptions[i], nil
			}
		}
	}
	for i := range field.SelectOptions {
		if field.SelectOptions[i].Value == text {
			return &field.SelectOptions[i], nil
		}
	}
	return nil, invalidValue("The provided select option value '%s' is not a valid select option.", text)
}

func (singleSelectType) ToDB(_ model.Field, value interface{}) interface{} {
	option, ok := value.(*model.SelectOption)
	if !ok || option == nil {
		return nil
	}
	return strconv.FormatInt(option.ID, 10)
}

func (s singleSelectType) FromDB(field model.Field, raw interface{}) interface{} {
	if raw == nil {
		return nil
	}
	option, err := s.Prepare(field, utils.ConvertInterfaceValueToString(raw))
	if err != nil {
		return nil
	}
	return option
}

func (singleSelectType) Serialize(_ model.Field, value interface{}) interface{} {
	option, ok := value.(*model.SelectOption)
	if !ok || option == nil {
		return nil
	}
	return map[string]interface{}{"id": option.ID, "value": option.Value, "color": option.Color}
}

func (singleSelectType) Text(_ model.Field, value interface{}) string {
	option, ok := value.(*model.SelectOption)
	if !ok || option == nil {
		return ""
	}
	return option.Value
}

func (s singleSelectType) Compare(field model.Field, a, b interface{}) int {
	return strings.Compare(strings.ToLower(s.Text(field, a)), strings.ToLower(s.Text(field, b)))
}

type uuidType struct{}

func (uuidType) Type() string     { return TypeUUID }
func (uuidType) ReadOnly() bool   { return true }
func (uuidType) Searchable() bool { return true }

func (uuidType) Default(model.Field) interface{} {
	return utils.GenerateUUID()
}

func (uuidType) Prepare(_ model.Field, value interface{}) (interface{}, error) {
	text := asText(value)
	if !utils.IsValidUUID(text) {
		return nil, invalidValue("The provided value '%s' is not a valid uuid.", text)
	}
	return text, nil
}

func (uuidType) ToDB(_ model.Field, v interface{}) interface{} { return asText(v) }
func (uuidType) FromDB(_ model.Field, raw interface{}) interface{} {
	return utils.ConvertInterfaceValueToString(raw)
}
func (uuidType) Serialize(_ model.Field, v interface{}) interface{} { return asText(v) }
func (uuidType) Text(_ model.Field, v interface{}) string           { return asText(v) }
func (uuidType) Compare(_ model.Field, a, b interface{}) int {
	return strings.Compare(asText(a), asText(b))
}

func asText(value interface{}) string {
	if d, ok := value.(*apd.Decimal); ok {
		if d == nil {
			return ""
		}
		return d.Text('f')
	}
	return utils.ConvertInterfaceValueToString(value)
}
