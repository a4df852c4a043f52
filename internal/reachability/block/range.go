// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package block

import (
	"iter"
	"slices"

	"fillmore-labs.com/lazyguard/internal/contract"
)

// Range is an immutable, strictly ordered set of instruction indices.
//
// A Range need not be contiguous: marker instructions occupy indices
// without belonging to any block, so indices between [Range.First] and
// [Range.Last] are not necessarily covered.
type Range struct {
	indices []int
}

// NewRange builds a [Range] from strictly increasing indices.
// It panics when indices is empty or unordered.
func NewRange(indices []int) Range {
	contract.NotEmpty(indices, "indices")
	contract.Require(strictlyIncreasing(indices), "indices", "must be strictly increasing")

	return Range{indices: slices.Clone(indices)}
}

// Covers reports whether index is a member of the range.
func (r Range) Covers(index int) bool {
	_, found := slices.BinarySearch(r.indices, index)
	return found
}

// First returns the lowest covered index.
func (r Range) First() int {
	return r.indices[0]
}

// Last returns the highest covered index.
func (r Range) Last() int {
	return r.indices[len(r.indices)-1]
}

// Len returns the number of covered indices.
func (r Range) Len() int {
	return len(r.indices)
}

// All yields the covered indices in increasing order.
func (r Range) All() iter.Seq[int] {
	return slices.Values(r.indices)
}

func strictlyIncreasing(indices []int) bool {
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			return false
		}
	}

	return true
}
