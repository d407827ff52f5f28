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

package order

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AllocatorTestSuite struct {
	suite.Suite
	allocator *Allocator
}

func TestAllocatorSuite(t *testing.T) {
	suite.Run(t, new(AllocatorTestSuite))
}

func (suite *AllocatorTestSuite) SetupTest() {
	suite.allocator = NewAllocator(20)
}

func (suite *AllocatorTestSuite) item(id int64, value string) Item {
	return Item{ID: id, Order: suite.allocator.MustParse(value)}
}

func (suite *AllocatorTestSuite) formatAll(orders []*apd.Decimal) []string {
	formatted := make([]string, len(orders))
	for i, o := range orders {
		formatted[i] = suite.allocator.Format(o)
	}
	return formatted
}

func (suite *AllocatorTestSuite) TestScaleIsClamped() {
	assert.Equal(suite.T(), int32(20), NewAllocator(5).Scale())
	assert.Equal(suite.T(), int32(24), NewAllocator(24).Scale())
	assert.Equal(suite.T(), int32(100), NewAllocator(500).Scale())
}

func (suite *AllocatorTestSuite) TestFormat() {
	assert.Equal(suite.T(), "1.00000000000000000000", suite.allocator.Format(apd.New(1, 0)))
	assert.Equal(suite.T(), "0.00000000000000000000", suite.allocator.Format(nil))
	assert.Equal(suite.T(), "2.50000000000000000000", suite.allocator.Format(suite.allocator.MustParse("2.5")))
}

func (suite *AllocatorTestSuite) TestParseInvalid() {
	_, err := suite.allocator.Parse("horse")
	assert.Error(suite.T(), err)
}

func (suite *AllocatorTestSuite) TestNext() {
	assert.Equal(suite.T(), "1.00000000000000000000", suite.allocator.Format(suite.allocator.Next(nil)))

	siblings := []Item{suite.item(1, "1.5"), suite.item(2, "3.25"), suite.item(3, "2")}
	assert.Equal(suite.T(), "4.00000000000000000000", suite.allocator.Format(suite.allocator.Next(siblings)))
}

func (suite *AllocatorTestSuite) TestBetweenMidpoint() {
	orders, ok := suite.allocator.Between(suite.allocator.FromInt(1), suite.allocator.FromInt(2), 1)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), []string{"1.50000000000000000000"}, suite.formatAll(orders))
}

func (suite *AllocatorTestSuite) TestBetweenSeveral() {
	orders, ok := suite.allocator.Between(suite.allocator.FromInt(1), suite.allocator.FromInt(2), 3)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), []string{
		"1.25000000000000000000",
		"1.50000000000000000000",
		"1.75000000000000000000",
	}, suite.formatAll(orders))
}

func (suite *AllocatorTestSuite) TestBetweenExhausted() {
	lower := suite.allocator.MustParse("2.99999999999999999998")
	upper := suite.allocator.MustParse("2.99999999999999999999")

	_, ok := suite.allocator.Between(lower, upper, 1)
	assert.False(suite.T(), ok)

	_, ok = suite.allocator.Between(upper, upper, 1)
	assert.False(suite.T(), ok)
}

func (suite *AllocatorTestSuite) TestBetweenDetectsCollisionAmongProducedValues() {
	lower := suite.allocator.MustParse("1.00000000000000000000")
	upper := suite.allocator.MustParse("1.00000000000000000003")

	orders, ok := suite.allocator.Between(lower, upper, 2)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), []string{"1.00000000000000000001", "1.00000000000000000002"}, suite.formatAll(orders))

	_, ok = suite.allocator.Between(lower, upper, 3)
	assert.False(suite.T(), ok)
}

func (suite *AllocatorTestSuite) TestPlaceLast() {
	siblings := []Item{suite.item(1, "1"), suite.item(2, "2.5")}

	placement := suite.allocator.PlaceLast(siblings, 2)

	assert.False(suite.T(), placement.Reset)
	assert.Equal(suite.T(), []string{"3.00000000000000000000", "4.00000000000000000000"},
		suite.formatAll(placement.Orders))
}

func (suite *AllocatorTestSuite) TestPlaceBeforeFirstUsesZeroLowerBound() {
	siblings := []Item{suite.item(1, "1"), suite.item(2, "2")}

	placement, err := suite.allocator.PlaceBefore(siblings, 1, 1)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), placement.Reset)
	assert.Equal(suite.T(), []string{"0.50000000000000000000"}, suite.formatAll(placement.Orders))
}

func (suite *AllocatorTestSuite) TestPlaceBeforeUnknownSibling() {
	_, err := suite.allocator.PlaceBefore([]Item{suite.item(1, "1")}, 9, 1)
	assert.ErrorIs(suite.T(), err, ErrBeforeNotFound)
}

func (suite *AllocatorTestSuite) TestPlaceBeforeResetsWhenPrecisionIsExhausted() {
	siblings := []Item{
		suite.item(1, "1.00000000000000000000"),
		suite.item(2, "1.00000000000000001000"),
		suite.item(3, "2.99999999999999999999"),
		suite.item(4, "2.99999999999999999998"),
	}

	placement, err := suite.allocator.PlaceBefore(siblings, 3, 1)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), placement.Reset)
	assert.Equal(suite.T(), []string{"3.50000000000000000000"}, suite.formatAll(placement.Orders))

	renumbered := map[int64]string{}
	for _, item := range placement.Renumbered {
		renumbered[item.ID] = suite.allocator.Format(item.Order)
	}
	assert.Equal(suite.T(), map[int64]string{
		1: "1.00000000000000000000",
		2: "2.00000000000000000000",
		4: "3.00000000000000000000",
		3: "4.00000000000000000000",
	}, renumbered)
}

func (suite *AllocatorTestSuite) TestRenumberBreaksTiesByID() {
	items := []Item{suite.item(5, "1"), suite.item(2, "1"), suite.item(3, "0.5")}

	renumbered := suite.allocator.Renumber(items)

	assert.Equal(suite.T(), []int64{3, 2, 5}, []int64{renumbered[0].ID, renumbered[1].ID, renumbered[2].ID})
	assert.Equal(suite.T(), "3.00000000000000000000", suite.allocator.Format(renumbered[2].Order))
	// The input is left untouched.
	assert.Equal(suite.T(), int64(5), items[0].ID)
}

func (suite *AllocatorTestSuite) TestRandomInsertionsKeepRequestedSequence() {
	random := rand.New(rand.NewSource(42))
	var siblings []Item
	var expected []int64
	nextID := int64(1)

	for i := 0; i < 400; i++ {
		id := nextID
		nextID++

		if len(expected) == 0 || random.Intn(4) == 0 {
			placement := suite.allocator.PlaceLast(siblings, 1)
			siblings = append(siblings, Item{ID: id, Order: placement.Orders[0]})
			expected = append(expected, id)
			continue
		}

		// Bias towards the same spot so the neighbours run out of precision.
		position := len(expected) - 1
		if random.Intn(3) == 0 {
			position = random.Intn(len(expected))
		}
		beforeID := expected[position]

		placement, err := suite.allocator.PlaceBefore(siblings, beforeID, 1)
		require.NoError(suite.T(), err)
		if placement.Reset {
			siblings = placement.Renumbered
		}
		siblings = append(siblings, Item{ID: id, Order: placement.Orders[0]})
		expected = append(expected[:position], append([]int64{id}, expected[position:]...)...)
	}

	suite.allocator.Sort(siblings)
	actual := make([]int64, len(siblings))
	seen := map[string]bool{}
	for i, item := range siblings {
		actual[i] = item.ID
		formatted := suite.allocator.Format(item.Order)
		assert.False(suite.T(), seen[formatted], "duplicate order %s", formatted)
		seen[formatted] = true
	}
	assert.Equal(suite.T(), expected, actual)
}
