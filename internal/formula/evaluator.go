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
	"errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ContextInterface exposes the values a formula can reference.
type ContextInterface interface {
	// Get returns the value at a dotted path such as page_parameter.id.
	Get(path string) (interface{}, error)
}

// EvaluatorInterface evaluates formula expressions.
type EvaluatorInterface interface {
	Evaluate(expression string, ctx ContextInterface) (interface{}, error)
}

// ErrDivisionByZero is returned when a formula divides by zero.
var ErrDivisionByZero = errors.New("division by zero")

var decimalContext = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(40)
	ctx.Rounding = apd.RoundHalfEven
	return ctx
}()

// Evaluator is a small evaluator supporting string and number literals, arithmetic and the
// get, concat, upper, lower and totext functions.
type Evaluator struct{}

// NewEvaluator creates a new instance of Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate parses and evaluates the expression.
func (e *Evaluator) Evaluate(expression string, ctx ContextInterface) (interface{}, error) {
	node, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	return e.eval(node, ctx)
}

func (e *Evaluator) eval(node Node, ctx ContextInterface) (interface{}, error) {
	switch n := node.(type) {
	case *StringLiteral:
		return n.Value, nil
	case *NumberLiteral:
		d, _, err := apd.NewFromString(n.Text)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", n.Text)
		}
		return d, nil
	case *UnaryMinus:
		value, err := e.eval(n.Operand, ctx)
		if err != nil {
			return nil, err
		}
		d, err := toDecimal(value)
		if err != nil {
			return nil, err
		}
		return new(apd.Decimal).Neg(d), nil
	case *BinaryOperation:
		return e.evalBinary(n, ctx)
	case *FunctionCall:
		return e.evalCall(n, ctx)
	}
	return nil, fmt.Errorf("unsupported expression %T", node)
}

func (e *Evaluator) evalBinary(n *BinaryOperation, ctx ContextInterface) (interface{}, error) {
	left, err := e.eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	leftNumber, leftErr := toDecimal(left)
	rightNumber, rightErr := toDecimal(right)
	if leftErr != nil || rightErr != nil {
		if n.Operator == "+" {
			return ToString(left) + ToString(right), nil
		}
		return nil, fmt.Errorf("operator %s requires numbers", n.Operator)
	}

	result := new(apd.Decimal)
	switch n.Operator {
	case "+":
		_, err = decimalContext.Add(result, leftNumber, rightNumber)
	case "-":
		_, err = decimalContext.Sub(result, leftNumber, rightNumber)
	case "*":
		_, err = decimalContext.Mul(result, leftNumber, rightNumber)
	case "/":
		if rightNumber.IsZero() {
			return nil, ErrDivisionByZero
		}
		_, err = decimalContext.Quo(result, leftNumber, rightNumber)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Evaluator) evalCall(n *FunctionCall, ctx ContextInterface) (interface{}, error) {
	args := make([]interface{}, len(n.Args))
	for i, arg := range n.Args {
		value, err := e.eval(arg, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}

	switch strings.ToLower(n.Name) {
	case "get":
		if len(args) != 1 {
			return nil, fmt.Errorf("get expects 1 argument, got %d", len(args))
		}
		path, ok := args[0].(string)
		if !ok {
			return nil, errors.New("get expects a text path")
		}
		if ctx == nil {
			return nil, fmt.Errorf("no context to resolve %q", path)
		}
		return ctx.Get(path)
	case "concat":
		var b strings.Builder
		for _, arg := range args {
			b.WriteString(ToString(arg))
		}
		return b.String(), nil
	case "upper", "lower", "totext":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", n.Name, len(args))
		}
		text := ToString(args[0])
		switch strings.ToLower(n.Name) {
		case "upper":
			return strings.ToUpper(text), nil
		case "lower":
			return strings.ToLower(text), nil
		}
		return text, nil
	}
	return nil, fmt.Errorf("unknown function %s", n.Name)
}

func toDecimal(value interface{}) (*apd.Decimal, error) {
	switch v := value.(type) {
	case *apd.Decimal:
		return v, nil
	case int64:
		return apd.New(v, 0), nil
	case int:
		return apd.New(int64(v), 0), nil
	case string:
		d, _, err := apd.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", v)
		}
		return d, nil
	}
	return nil, fmt.Errorf("%v is not a number", value)
}
