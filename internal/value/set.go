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

package value

import (
	"iter"
	"slices"
	"strings"
)

// Set is an insertion-ordered set of [Value]s.
//
// The zero value is an empty set.
type Set struct {
	values []Value
}

// NewSet returns a set holding values.
func NewSet(values ...Value) Set {
	var s Set
	for _, v := range values {
		s.Add(v)
	}

	return s
}

// Add inserts v and reports whether it was not already present.
func (s *Set) Add(v Value) bool {
	if s.Contains(v) {
		return false
	}

	s.values = append(s.values, v)

	return true
}

// Contains reports whether an equal value is in the set.
func (s Set) Contains(v Value) bool {
	return slices.ContainsFunc(s.values, v.Equal)
}

// Len returns the number of distinct values.
func (s Set) Len() int {
	return len(s.values)
}

// All yields the values in insertion order.
func (s Set) All() iter.Seq[Value] {
	return slices.Values(s.values)
}

// Unique returns the only value of a singleton set.
func (s Set) Unique() (Value, bool) {
	if len(s.values) != 1 {
		return Value{}, false
	}

	return s.values[0], true
}

// Ambiguous reports whether the set does not determine exactly one known value.
func (s Set) Ambiguous() bool {
	v, ok := s.Unique()

	return !ok || v.IsUnknown()
}

func (s Set) String() string {
	var b strings.Builder

	b.WriteByte('{')

	for i, v := range s.values {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(v.String())
	}

	b.WriteByte('}')

	return b.String()
}
