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

	"github.com/cockroachdb/apd/v3"

	"github.com/asgardeo/forge/internal/system/log"
)

const loggerComponentName = "FormulaResolver"

// ResolveErrorKind separates formulas that fail to evaluate from values that are unusable.
type ResolveErrorKind int

const (
	// KindEvaluation is a formula that could not be parsed or evaluated.
	KindEvaluation ResolveErrorKind = iota
	// KindInvalidValue is a formula that evaluated to a value the slot cannot use.
	KindInvalidValue
)

// ResolveError is returned when a slot cannot be resolved.
type ResolveError struct {
	Kind ResolveErrorKind
	Slot string
	Err  error
}

func (e *ResolveError) Error() string {
	if e.Kind == KindInvalidValue {
		return fmt.Sprintf("The result of the `%s` formula must be an integer or convertible to an integer.", e.Slot)
	}
	return fmt.Sprintf("The `%s` formula can't be resolved: %v", e.Slot, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// ResolverInterface resolves formula slots of a service or element.
type ResolverInterface interface {
	Resolve(slot, src string, ctx ContextInterface) (interface{}, error)
	ResolveString(slot, src string, ctx ContextInterface) (string, error)
	ResolveInteger(slot, src string, ctx ContextInterface) (int64, bool, error)
}

// Resolver resolves slots through an evaluator.
type Resolver struct {
	evaluator EvaluatorInterface
}

// NewResolver creates a new instance of Resolver.
func NewResolver(evaluator EvaluatorInterface) *Resolver {
	return &Resolver{evaluator: evaluator}
}

// Resolve returns literals unchanged and evaluates formulas.
func (r *Resolver) Resolve(slot, src string, ctx ContextInterface) (interface{}, error) {
	if !IsFormula(src) {
		return src, nil
	}

	value, err := r.evaluator.Evaluate(src, ctx)
	if err != nil {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
		logger.Debug("Formula evaluation failed", log.String("slot", slot), log.Error(err))
		return nil, &ResolveError{Kind: KindEvaluation, Slot: slot, Err: err}
	}
	return value, nil
}

// ResolveString resolves the slot and renders the result as text.
func (r *Resolver) ResolveString(slot, src string, ctx ContextInterface) (string, error) {
	value, err := r.Resolve(slot, src, ctx)
	if err != nil {
		return "", err
	}
	return ToString(value), nil
}

// ResolveInteger resolves an identifier slot. A blank literal reports ok as false so callers
// may fall back to a default. A formula must produce an integer; blank is an error.
func (r *Resolver) ResolveInteger(slot, src string, ctx ContextInterface) (int64, bool, error) {
	formula := IsFormula(src)
	if !formula && strings.TrimSpace(src) == "" {
		return 0, false, nil
	}

	value, err := r.Resolve(slot, src, ctx)
	if err != nil {
		return 0, false, err
	}

	id, ok := toInteger(value)
	if !ok {
		return 0, false, &ResolveError{Kind: KindInvalidValue, Slot: slot}
	}
	return id, true, nil
}

func toInteger(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	}

	text := strings.TrimSpace(ToString(value))
	if text == "" {
		return 0, false
	}
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return 0, false
	}
	integral := new(apd.Decimal)
	if _, err := decimalContext.RoundToIntegralExact(integral, d); err != nil {
		return 0, false
	}
	if integral.Cmp(d) != 0 {
		return 0, false
	}
	id, err := integral.Int64()
	if err != nil {
		return 0, false
	}
	return id, true
}
