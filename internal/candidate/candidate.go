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

// Package candidate finds the fields of a class eligible for lazy-initialization analysis
// and the methods writing them.
package candidate

import (
	"iter"
	"slices"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
)

// Mapping relates candidate fields to their initialisers.
type Mapping struct {
	class        *bytecode.Class
	candidates   []bytecode.Field
	initialisers map[string][]*bytecode.Method
}

// Find scans class for private, non-final fields and the methods writing each of them.
func Find(class *bytecode.Class) *Mapping {
	contract.NotNil(class, "class")

	m := &Mapping{
		class:        class,
		initialisers: make(map[string][]*bytecode.Method),
	}

	for _, f := range class.Fields {
		if !IsCandidate(f) {
			continue
		}

		m.candidates = append(m.candidates, f)

		ref := f.Ref(class.Name)
		for _, method := range class.Methods {
			if method.Writes(ref) {
				m.initialisers[f.Name] = append(m.initialisers[f.Name], method)
			}
		}
	}

	return m
}

// IsCandidate reports whether f is private and not final.
func IsCandidate(f bytecode.Field) bool {
	return f.Access.Has(bytecode.Private) && !f.Access.Has(bytecode.Final)
}

// Class returns the scanned class.
func (m *Mapping) Class() *bytecode.Class {
	return m.class
}

// Candidates yields the candidate fields in declaration order.
func (m *Mapping) Candidates() iter.Seq[bytecode.Field] {
	return slices.Values(m.candidates)
}

// Candidate returns the candidate field with the given name.
func (m *Mapping) Candidate(name string) (bytecode.Field, bool) {
	i := slices.IndexFunc(m.candidates, func(f bytecode.Field) bool { return f.Name == name })
	if i < 0 {
		return bytecode.Field{}, false
	}

	return m.candidates[i], true
}

// Initialisers returns the methods writing candidate name, in method order.
func (m *Mapping) Initialisers(name string) []*bytecode.Method {
	return m.initialisers[name]
}

// Stateless reports whether candidate name is never written.
func (m *Mapping) Stateless(name string) bool {
	return len(m.initialisers[name]) == 0
}
