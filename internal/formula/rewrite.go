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

package formula

import (
	"slices"
	"strings"
)

// PathRewriter returns the replacement of a get path. Returning the path unchanged leaves
// the reference as written.
type PathRewriter func(path []string) []string

// RewriteGetPaths replaces the literal paths of get calls in src. Only the changed string
// literals are spliced in, so spacing and quoting of the rest of the formula survive. A
// formula that does not parse is returned unchanged.
func RewriteGetPaths(src string, rewrite PathRewriter) string {
	if !IsFormula(src) {
		return src
	}
	node, err := Parse(src)
	if err != nil {
		return src
	}

	var b strings.Builder
	last := 0
	for _, reference := range FindGetReferences(node) {
		updated := rewrite(slices.Clone(reference.Path))
		if slices.Equal(updated, reference.Path) {
			continue
		}
		span := reference.Literal.Span()
		b.WriteString(src[last:span.Start])
		b.WriteString(QuoteString(JoinPath(updated), reference.Literal.Quote))
		last = span.End
	}
	if last == 0 {
		return src
	}
	b.WriteString(src[last:])
	return b.String()
}
