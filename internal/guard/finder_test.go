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

package guard_test

import (
	"go/constant"
	"testing"

	"fillmore-labs.com/lazyguard/internal/alias"
	"fillmore-labs.com/lazyguard/internal/bytecode"
	. "fillmore-labs.com/lazyguard/internal/guard"
	"fillmore-labs.com/lazyguard/internal/initval"
	"fillmore-labs.com/lazyguard/internal/reachability"
	"fillmore-labs.com/lazyguard/internal/testsource"
	"fillmore-labs.com/lazyguard/internal/value"
)

func TestFind(t *testing.T) {
	t.Parallel()

	zero := value.Literal(constant.MakeInt64(0))

	tests := []struct {
		name   string
		class  func(testing.TB) *bytecode.Class
		method string
		field  bytecode.Field
		guard  bool
		value  value.Value
	}{
		{"lazy hash", testsource.LazyHash, "HashCode", testsource.Hash, true, zero},
		{"equality", testsource.EqualityGuard, "HashCode", testsource.Hash, true, zero},
		{"alias", testsource.AliasHash, "HashCode", testsource.Hash, true, zero},
		{"overwritten alias", testsource.StaleAlias, "Set", testsource.Hash, false, value.Value{}},
		{"reference", testsource.LazyCache, "Get", testsource.Cache, true, value.Marker(value.Null)},
		{"double checked", testsource.DoubleChecked, "HashCode", testsource.Hash, true, zero},
		{"wrong value", testsource.WrongGuard, "HashCode", testsource.Hash, true, value.Literal(constant.MakeInt64(1))},
		{"unrelated field", testsource.UnrelatedGuard, "HashCode", testsource.Hash, false, value.Value{}},
		{"unguarded", testsource.Counter, "Inc", testsource.Hash, false, value.Value{}},
		{"bypassed", testsource.Bypassed, "HashCode", testsource.Hash, false, value.Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			class := tt.class(t)
			initial := initval.Find(t.Context(), class, tt.field)

			var m *bytecode.Method
			for _, c := range class.Methods {
				if c.Name == tt.method {
					m = c
				}
			}

			g := reachability.NewGraph(t.Context(), m)
			ref := tt.field.Ref(class.Name)

			target := Target{Field: ref, Type: tt.field.Type}
			for _, b := range g.Blocks() {
				if a := alias.Find(ref, b); a.Exists {
					target.Alias = a

					break
				}
			}

			found := false

			for _, b := range g.Blocks() {
				for offset, ins := range b.Instructions {
					if !ins.Writes(ref) {
						continue
					}

					found = true

					got := Find(g, Location{Block: b.Number, Offset: offset}, target, initial)
					if got.IsGuard() != tt.guard {
						t.Fatalf("Got %s, expected guard %t", got, tt.guard)
					}

					if tt.guard && !got.Value().Equal(tt.value) {
						t.Errorf("Got guard value %s, expected %s", got.Value(), tt.value)
					}

					if tt.guard && got.Field() != ref {
						t.Errorf("Got guarded field %s, expected %s", got.Field(), ref)
					}
				}
			}

			if !found {
				t.Fatal("No write found")
			}
		})
	}
}

func TestFindDeduplicates(t *testing.T) {
	t.Parallel()

	// Two writes behind the same branch
	hash := testsource.Hash.Ref(testsource.Owner)
	m := testsource.Method(t, "Twice", bytecode.Regular, func(a *bytecode.Assembler) {
		done, second := a.NewLabel(), a.NewLabel()
		a.Load(0).GetField(hash).If(bytecode.Ne, done).
			Load(1).If(bytecode.Eq, second).
			Load(0).Int(1).PutField(hash).Goto(done).
			Mark(second).Load(0).Int(2).PutField(hash).
			Mark(done).Return(0)
	})

	g := reachability.NewGraph(t.Context(), m)
	target := Target{Field: hash, Type: testsource.Integer}
	initial := value.NewSet(value.Literal(constant.MakeInt64(0)))

	var guards []AssignmentGuard

	for _, b := range g.Blocks() {
		for offset, ins := range b.Instructions {
			if ins.Writes(hash) {
				guards = append(guards, Find(g, Location{Block: b.Number, Offset: offset}, target, initial))
			}
		}
	}

	if len(guards) != 2 {
		t.Fatalf("Got %d guards, expected 2", len(guards))
	}

	if !guards[0].IsGuard() || !guards[0].Equal(guards[1]) || guards[0].Hash() != guards[1].Hash() {
		t.Errorf("Expected %s and %s to be the same guard", guards[0], guards[1])
	}
}
