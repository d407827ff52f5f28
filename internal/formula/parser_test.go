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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ParserTestSuite struct {
	suite.Suite
}

func TestParserSuite(t *testing.T) {
	suite.Run(t, new(ParserTestSuite))
}

func (suite *ParserTestSuite) TestParseCall() {
	node, err := Parse(`concat(get('page_parameter.id'), "-", 1.5)`)
	require.NoError(suite.T(), err)

	call, ok := node.(*FunctionCall)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "concat", call.Name)
	assert.Len(suite.T(), call.Args, 3)
	assert.Equal(suite.T(), Span{0, 42}, call.Span())
}

func (suite *ParserTestSuite) TestParsePrecedence() {
	node, err := Parse("1 + 2 * 3")
	require.NoError(suite.T(), err)

	sum, ok := node.(*BinaryOperation)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "+", sum.Operator)
	product, ok := sum.Right.(*BinaryOperation)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "*", product.Operator)
}

func (suite *ParserTestSuite) TestParseErrors() {
	for _, src := range []string{"'horse", "get(", "get('a'", "1 +", "a b", "#"} {
		_, err := Parse(src)
		var syntaxErr *SyntaxError
		assert.ErrorAs(suite.T(), err, &syntaxErr, "expected %q to fail", src)
	}
}

func (suite *ParserTestSuite) TestParseEscapedString() {
	node, err := Parse(`'it\'s'`)
	require.NoError(suite.T(), err)

	literal, ok := node.(*StringLiteral)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "it's", literal.Value)
	assert.Equal(suite.T(), byte('\''), literal.Quote)
}

func (suite *ParserTestSuite) TestFindGetReferences() {
	node, err := Parse(`concat(get('data_source.3.field_1'), GET("page_parameter.id"), get(concat('a')))`)
	require.NoError(suite.T(), err)

	references := FindGetReferences(node)

	require.Len(suite.T(), references, 2)
	assert.Equal(suite.T(), []string{"data_source", "3", "field_1"}, references[0].Path)
	assert.Equal(suite.T(), []string{"page_parameter", "id"}, references[1].Path)
	assert.Equal(suite.T(), byte('"'), references[1].Literal.Quote)
}
