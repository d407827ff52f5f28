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

// Package order computes fractional order values for items positioned within a parent scope.
//
// Orders are fixed scale decimals. Inserting between two neighbours interpolates evenly
// spaced values; when the scale can no longer separate the neighbours, every sibling is
// renumbered to consecutive integers and the insertion is computed again.
package order

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cockroachdb/apd/v3"

	"github.com/asgardeo/forge/internal/system/constants"
)

// ErrBeforeNotFound is returned when the before item is not one of the given siblings.
var ErrBeforeNotFound = errors.New("before item is not a sibling in the scope")

// integerDigits is the headroom kept for the integer part of an order.
const integerDigits = 40

// Item is an ordered sibling.
type Item struct {
	ID    int64
	Order *apd.Decimal
}

// Placement is the outcome of positioning new items among siblings.
type Placement struct {
	// Orders holds the order for each placed item, ascending.
	Orders []*apd.Decimal
	// Reset reports whether the siblings had to be renumbered first.
	Reset bool
	// Renumbered holds every sibling with its new order when Reset is true.
	Renumbered []Item
}

// Allocator computes order values at a fixed scale.
type Allocator struct {
	scale int32
	ctx   *apd.Context
}

// NewAllocator creates an allocator using the given number of fractional digits. Scales
// outside the supported range are clamped to it.
func NewAllocator(scale int32) *Allocator {
	if scale < constants.MinOrderScale {
		scale = constants.MinOrderScale
	}
	if scale > constants.MaxOrderScale {
		scale = constants.MaxOrderScale
	}
	ctx := apd.BaseContext.WithPrecision(uint32(scale) + integerDigits)
	ctx.Rounding = apd.RoundHalfEven
	return &Allocator{scale: scale, ctx: ctx}
}

// Scale returns the number of fractional digits of produced orders.
func (a *Allocator) Scale() int32 {
	return a.scale
}

// Parse reads an order value and quantizes it to the allocator scale.
func (a *Allocator) Parse(value string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid order value %q: %w", value, err)
	}
	return a.quantize(d), nil
}

// MustParse is Parse for values known to be valid.
func (a *Allocator) MustParse(value string) *apd.Decimal {
	d, err := a.Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

// FromInt returns the integer n at the allocator scale.
func (a *Allocator) FromInt(n int64) *apd.Decimal {
	return a.quantize(apd.New(n, 0))
}

// Format renders the order with exactly Scale fractional digits.
func (a *Allocator) Format(d *apd.Decimal) string {
	if d == nil {
		d = apd.New(0, 0)
	}
	return a.quantize(d).Text('f')
}

// Next returns the order placing a new item after every sibling: floor(max) + 1, or 1 for an
// empty scope.
func (a *Allocator) Next(siblings []Item) *apd.Decimal {
	highest := maxOrder(siblings)
	if highest == nil {
		return a.FromInt(1)
	}
	next := new(apd.Decimal)
	_, _ = a.ctx.Floor(next, highest)
	_, _ = a.ctx.Add(next, next, apd.New(1, 0))
	return a.quantize(next)
}

// Between returns amount evenly spaced orders strictly between lower and upper. ok is false
// when the scale cannot hold distinct values there.
func (a *Allocator) Between(lower, upper *apd.Decimal, amount int) ([]*apd.Decimal, bool) {
	if amount <= 0 {
		return nil, true
	}
	if lower == nil {
		lower = apd.New(0, 0)
	}
	if upper == nil || upper.Cmp(lower) <= 0 {
		return nil, false
	}

	diff := new(apd.Decimal)
	_, _ = a.ctx.Sub(diff, upper, lower)
	step := new(apd.Decimal)
	_, _ = a.ctx.Quo(step, diff, apd.New(int64(amount+1), 0))

	orders := make([]*apd.Decimal, 0, amount)
	previous := lower
	for i := 1; i <= amount; i++ {
		offset := new(apd.Decimal)
		_, _ = a.ctx.Mul(offset, step, apd.New(int64(i), 0))
		value := new(apd.Decimal)
		_, _ = a.ctx.Add(value, lower, offset)
		value = a.quantize(value)

		if value.Cmp(previous) <= 0 || value.Cmp(upper) >= 0 {
			return nil, false
		}
		orders = append(orders, value)
		previous = value
	}
	return orders, true
}

// Sort orders items ascending by order, breaking ties by id.
func (a *Allocator) Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := compare(items[i].Order, items[j].Order); c != 0 {
			return c < 0
		}
		return items[i].ID < items[j].ID
	})
}

// Renumber returns the items sorted and assigned the orders 1..n.
func (a *Allocator) Renumber(items []Item) []Item {
	renumbered := make([]Item, len(items))
	copy(renumbered, items)
	a.Sort(renumbered)
	for i := range renumbered {
		renumbered[i].Order = a.FromInt(int64(i + 1))
	}
	return renumbered
}

// PlaceLast positions amount new items after every sibling.
func (a *Allocator) PlaceLast(siblings []Item, amount int) *Placement {
	start := a.Next(siblings)
	orders := make([]*apd.Decimal, 0, amount)
	for i := 0; i < amount; i++ {
		value := new(apd.Decimal)
		_, _ = a.ctx.Add(value, start, apd.New(int64(i), 0))
		orders = append(orders, a.quantize(value))
	}
	return &Placement{Orders: orders}
}

// PlaceBefore positions amount new items directly before the sibling beforeID. The lower
// bound is the highest sibling order below it, or zero when it is first.
func (a *Allocator) PlaceBefore(siblings []Item, beforeID int64, amount int) (*Placement, error) {
	sorted := make([]Item, len(siblings))
	copy(sorted, siblings)
	a.Sort(sorted)

	lower, upper, err := bounds(sorted, beforeID)
	if err != nil {
		return nil, err
	}
	if orders, ok := a.Between(lower, upper, amount); ok {
		return &Placement{Orders: orders}, nil
	}

	renumbered := a.Renumber(sorted)
	lower, upper, err = bounds(renumbered, beforeID)
	if err != nil {
		return nil, err
	}
	orders, ok := a.Between(lower, upper, amount)
	if !ok {
		return nil, fmt.Errorf("unable to place %d items before %d after renumbering", amount, beforeID)
	}
	return &Placement{Orders: orders, Reset: true, Renumbered: renumbered}, nil
}

func (a *Allocator) quantize(d *apd.Decimal) *apd.Decimal {
	q := new(apd.Decimal)
	_, _ = a.ctx.Quantize(q, d, -a.scale)
	return q
}

// bounds returns the orders surrounding beforeID in sorted siblings.
func bounds(sorted []Item, beforeID int64) (*apd.Decimal, *apd.Decimal, error) {
	for i, item := range sorted {
		if item.ID != beforeID {
			continue
		}
		lower := apd.New(0, 0)
		if i > 0 {
			lower = orZero(sorted[i-1].Order)
		}
		return lower, orZero(item.Order), nil
	}
	return nil, nil, ErrBeforeNotFound
}

func maxOrder(items []Item) *apd.Decimal {
	var highest *apd.Decimal
	for _, item := range items {
		value := orZero(item.Order)
		if highest == nil || value.Cmp(highest) > 0 {
			highest = value
		}
	}
	return highest
}

func compare(x, y *apd.Decimal) int {
	return orZero(x).Cmp(orZero(y))
}

func orZero(d *apd.Decimal) *apd.Decimal {
	if d == nil {
		return apd.New(0, 0)
	}
	return d
}
