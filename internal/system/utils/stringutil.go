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

package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// TruncateMiddle shortens text to at most length runes by replacing its middle with separator.
func TruncateMiddle(text string, length int, separator string) string {
	runes := []rune(text)
	if length <= 0 || len(runes) <= length {
		return text
	}

	sep := []rune(separator)
	if len(sep) >= length {
		return string(runes[:length])
	}

	keep := length - len(sep)
	head := (keep + 1) / 2
	tail := keep - head
	return string(runes[:head]) + separator + string(runes[len(runes)-tail:])
}

// ConvertInterfaceValueToString converts a scanned database value into its string form.
func ConvertInterfaceValueToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParseBool interprets a scanned database value as a boolean. PostgreSQL returns bool while
// SQLite returns integers.
func ParseBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return b
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil && n != 0
	default:
		return false
	}
}

// ParseInt64 interprets a scanned database value as an integer.
func ParseInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
	case nil:
		return 0, fmt.Errorf("value is nil")
	default:
		return 0, fmt.Errorf("unsupported integer value type %T", value)
	}
}

// ParseNullableInt64 returns nil for database NULLs and the parsed integer otherwise.
func ParseNullableInt64(value interface{}) (*int64, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := ParseInt64(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
