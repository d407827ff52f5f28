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
	"fmt"
	"strings"
)

// Node is a parsed formula expression.
type Node interface {
	Span() Span
}

// StringLiteral is a quoted string.
type StringLiteral struct {
	Value string
	Quote byte
	Pos   Span
}

// Span returns the source range including the quotes.
func (n *StringLiteral) Span() Span { return n.Pos }

// NumberLiteral is a decimal number.
type NumberLiteral struct {
	Text string
	Pos  Span
}

// Span returns the source range.
func (n *NumberLiteral) Span() Span { return n.Pos }

// FunctionCall is a named function applied to arguments.
type FunctionCall struct {
	Name string
	Args []Node
	Pos  Span
}

// Span returns the source range.
func (n *FunctionCall) Span() Span { return n.Pos }

// BinaryOperation applies an arithmetic operator.
type BinaryOperation struct {
	Operator string
	Left     Node
	Right    Node
}

// Span returns the source range.
func (n *BinaryOperation) Span() Span {
	return Span{n.Left.Span().Start, n.Right.Span().End}
}

// UnaryMinus negates its operand.
type UnaryMinus struct {
	Operand Node
	Pos     Span
}

// Span returns the source range.
func (n *UnaryMinus) Span() Span { return n.Pos }

// GetReference is a get call whose argument is a string literal path.
type GetReference struct {
	Path    []string
	Literal *StringLiteral
}

// Parse parses a formula.
func Parse(src string) (Node, error) {
	tokens, err := (&lexer{src: src}).tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &SyntaxError{Position: tok.span.Start, Message: fmt.Sprintf("unexpected %q", tok.text)}
	}
	return node, nil
}

// FindGetReferences returns every get call with a literal path, in source order.
func FindGetReferences(node Node) []GetReference {
	var references []GetReference
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *FunctionCall:
			if strings.EqualFold(v.Name, "get") && len(v.Args) == 1 {
				if literal, ok := v.Args[0].(*StringLiteral); ok {
					references = append(references, GetReference{
						Path:    SplitPath(literal.Value),
						Literal: literal,
					})
					return
				}
			}
			for _, arg := range v.Args {
				walk(arg)
			}
		case *BinaryOperation:
			walk(v.Left)
			walk(v.Right)
		case *UnaryMinus:
			walk(v.Operand)
		}
	}
	walk(node)
	return references
}

// SplitPath splits a dotted path.
func SplitPath(path string) []string {
	if path == "" {
		return []string{}
	}
	return strings.Split(path, ".")
}

// JoinPath joins path segments with dots.
func JoinPath(path []string) string {
	return strings.Join(path, ".")
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpression() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenOperator && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.advance().text
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryOperation{Operator: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenOperator && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.advance().text
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryOperation{Operator: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if tok := p.peek(); tok.kind == tokenOperator && tok.text == "-" {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryMinus{Operand: operand, Pos: Span{tok.span.Start, operand.Span().End}}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.advance()
	switch tok.kind {
	case tokenString:
		return &StringLiteral{Value: tok.value, Quote: tok.quote, Pos: tok.span}, nil
	case tokenNumber:
		return &NumberLiteral{Text: tok.text, Pos: tok.span}, nil
	case tokenIdent:
		return p.parseCall(tok)
	case tokenLParen:
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tokenRParen {
			return nil, &SyntaxError{Position: closing.span.Start, Message: "expected ')'"}
		}
		return node, nil
	case tokenEOF:
		return nil, &SyntaxError{Position: tok.span.Start, Message: "unexpected end of formula"}
	}
	return nil, &SyntaxError{Position: tok.span.Start, Message: fmt.Sprintf("unexpected %q", tok.text)}
}

func (p *parser) parseCall(name token) (Node, error) {
	if open := p.advance(); open.kind != tokenLParen {
		return nil, &SyntaxError{Position: open.span.Start, Message: fmt.Sprintf("expected '(' after %s", name.text)}
	}

	call := &FunctionCall{Name: name.text}
	if p.peek().kind == tokenRParen {
		call.Pos = Span{name.span.Start, p.advance().span.End}
		return call, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		next := p.advance()
		switch next.kind {
		case tokenComma:
			continue
		case tokenRParen:
			call.Pos = Span{name.span.Start, next.span.End}
			return call, nil
		default:
			return nil, &SyntaxError{Position: next.span.Start, Message: "expected ',' or ')'"}
		}
	}
}
