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
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenString
	tokenNumber
	tokenIdent
	tokenLParen
	tokenRParen
	tokenComma
	tokenOperator
)

// Span is a byte range [Start, End) of the formula source.
type Span struct {
	Start int
	End   int
}

type token struct {
	kind  tokenKind
	text  string
	value string
	quote byte
	span  Span
}

// SyntaxError reports a formula that cannot be parsed.
type SyntaxError struct {
	Position int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Position, e.Message)
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) tokens() ([]token, error) {
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, span: Span{start, start}}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '\'' || c == '"':
		return l.readString(c)
	case c >= '0' && c <= '9' || c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
		return l.readNumber(), nil
	case c == '_' || unicode.IsLetter(rune(c)):
		for l.pos < len(l.src) && (l.src[l.pos] == '_' || isDigit(l.src[l.pos]) ||
			unicode.IsLetter(rune(l.src[l.pos]))) {
			l.pos++
		}
		text := l.src[start:l.pos]
		return token{kind: tokenIdent, text: text, value: text, span: Span{start, l.pos}}, nil
	}

	l.pos++
	span := Span{start, l.pos}
	switch c {
	case '(':
		return token{kind: tokenLParen, text: "(", span: span}, nil
	case ')':
		return token{kind: tokenRParen, text: ")", span: span}, nil
	case ',':
		return token{kind: tokenComma, text: ",", span: span}, nil
	case '+', '-', '*', '/':
		return token{kind: tokenOperator, text: string(c), span: span}, nil
	}
	return token{}, &SyntaxError{Position: start, Message: fmt.Sprintf("unexpected character %q", c)}
}

func (l *lexer) readString(quote byte) (token, error) {
	start := l.pos
	l.pos++

	var value strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\' && l.pos+1 < len(l.src):
			value.WriteByte(l.src[l.pos+1])
			l.pos += 2
		case c == quote:
			l.pos++
			return token{
				kind:  tokenString,
				text:  l.src[start:l.pos],
				value: value.String(),
				quote: quote,
				span:  Span{start, l.pos},
			}, nil
		default:
			value.WriteByte(c)
			l.pos++
		}
	}
	return token{}, &SyntaxError{Position: start, Message: "unterminated string literal"}
}

func (l *lexer) readNumber() token {
	start := l.pos
	seenDot := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '.' && !seenDot {
			seenDot = true
		} else if !isDigit(c) {
			break
		}
		l.pos++
	}
	text := l.src[start:l.pos]
	return token{kind: tokenNumber, text: text, value: text, span: Span{start, l.pos}}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// QuoteString renders value as a string literal using the given quote character.
func QuoteString(value string, quote byte) string {
	if quote != '"' {
		quote = '\''
	}
	var b strings.Builder
	b.WriteByte(quote)
	for i := 0; i < len(value); i++ {
		if value[i] == quote || value[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(value[i])
	}
	b.WriteByte(quote)
	return b.String()
}
