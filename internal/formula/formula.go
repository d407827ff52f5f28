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

// Package formula resolves the formula bearing settings of builder objects against a
// dispatch context.
//
// Values that are blank or plain numbers are literals and are used as they are. Everything
// else is handed to an evaluator.
package formula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

var numericLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// IsFormula reports whether src has to be evaluated.
func IsFormula(src string) bool {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return false
	}
	return !numericLiteral.MatchString(trimmed)
}

// ToString renders an evaluated value the way it is used in queries and payloads.
func ToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *apd.Decimal:
		return formatDecimal(v)
	case apd.Decimal:
		return formatDecimal(&v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = ToString(item)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatDecimal(d *apd.Decimal) string {
	reduced := new(apd.Decimal)
	reduced.Reduce(d)
	if reduced.Exponent > 0 {
		_, _ = decimalContext.Quantize(reduced, reduced, 0)
	}
	return reduced.Text('f')
}
