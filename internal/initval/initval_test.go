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

package initval_test

import (
	"go/constant"
	"testing"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	. "fillmore-labs.com/lazyguard/internal/initval"
	"fillmore-labs.com/lazyguard/internal/testsource"
	"fillmore-labs.com/lazyguard/internal/value"
)

func TestFind(t *testing.T) {
	t.Parallel()

	hash := testsource.Hash.Ref(testsource.Owner)
	static := bytecode.Field{Name: "count", Type: testsource.Integer, Access: bytecode.Private | bytecode.Static}

	lit := func(v int64) value.Value { return value.Literal(constant.MakeInt64(v)) }

	withCtor := func(body func(a *bytecode.Assembler)) func(testing.TB) *bytecode.Class {
		return func(tb testing.TB) *bytecode.Class {
			tb.Helper()

			class := testsource.LazyHash(tb)
			class.Methods[0] = testsource.Method(tb, "New", bytecode.Constructor, body)

			return class
		}
	}

	tests := []struct {
		name  string
		class func(testing.TB) *bytecode.Class
		field bytecode.Field
		want  []value.Value
	}{
		{"default", testsource.LazyHash, testsource.Hash, []value.Value{lit(0)}},
		{"reference default", testsource.LazyCache, testsource.Cache, []value.Value{value.Marker(value.Null)}},
		{"two literals", testsource.Ambiguous, testsource.Hash, []value.Value{lit(1), lit(2)}},
		{"single literal", withCtor(func(a *bytecode.Assembler) {
			a.Load(0).Int(7).PutField(hash).Return(0)
		}), testsource.Hash, []value.Value{lit(7)}},
		{"last entry write", withCtor(func(a *bytecode.Assembler) {
			a.Load(0).Int(7).PutField(hash).Load(0).Int(8).PutField(hash).Return(0)
		}), testsource.Hash, []value.Value{lit(8)}},
		{"parameter", withCtor(func(a *bytecode.Assembler) {
			a.Load(0).Load(1).PutField(hash).Return(0)
		}), testsource.Hash, []value.Value{value.Marker(value.UnknownPrimitive)}},
		{"conditional write", withCtor(func(a *bytecode.Assembler) {
			skip := a.NewLabel()
			a.Load(1).If(bytecode.Eq, skip).
				Load(0).Int(5).PutField(hash).
				Mark(skip).Return(0)
		}), testsource.Hash, []value.Value{lit(5), lit(0)}},
		{"no constructor", func(tb testing.TB) *bytecode.Class {
			tb.Helper()

			class := testsource.LazyHash(tb)
			class.Methods = class.Methods[1:]

			return class
		}, testsource.Hash, []value.Value{lit(0)}},
		{"static initializer", func(tb testing.TB) *bytecode.Class {
			tb.Helper()

			clinit := testsource.Method(tb, "init", bytecode.StaticInit, func(a *bytecode.Assembler) {
				a.Int(3).PutField(static.Ref(testsource.Owner)).Return(0)
			})

			return testsource.Class(tb, []bytecode.Field{static}, clinit)
		}, static, []value.Value{lit(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Find(t.Context(), tt.class(t), tt.field)

			if got.Len() != len(tt.want) {
				t.Fatalf("Got initial values %s, expected %v", got, tt.want)
			}

			for _, v := range tt.want {
				if !got.Contains(v) {
					t.Errorf("Expected %s to contain %s", got, v)
				}
			}
		})
	}
}

func TestFindAmbiguity(t *testing.T) {
	t.Parallel()

	if got := Find(t.Context(), testsource.LazyHash(t), testsource.Hash); got.Ambiguous() {
		t.Errorf("Expected %s to be unambiguous", got)
	}

	if got := Find(t.Context(), testsource.Ambiguous(t), testsource.Hash); !got.Ambiguous() {
		t.Errorf("Expected %s to be ambiguous", got)
	}
}
