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

package value_test

import (
	"errors"
	"go/constant"
	"testing"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
	. "fillmore-labs.com/lazyguard/internal/value"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind bytecode.TypeKind
		want Value
	}{
		{bytecode.Int, Literal(constant.MakeInt64(0))},
		{bytecode.Float, Literal(constant.MakeInt64(0))},
		{bytecode.Bool, Literal(constant.MakeBool(false))},
		{bytecode.String, Literal(constant.MakeString(""))},
		{bytecode.Reference, Marker(Null)},
		{bytecode.Aggregate, Marker(UnknownPrimitive)},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			if got := Default(bytecode.Type{Kind: tt.kind}); !got.Equal(tt.want) {
				t.Errorf("Got default %s, expected %s", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	zero, one := Literal(constant.MakeInt64(0)), Literal(constant.MakeInt64(1))

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same literal", zero, Literal(constant.MakeInt64(0)), true},
		{"different literal", zero, one, false},
		{"numeric kinds", one, Literal(constant.MakeFloat64(1)), true},
		{"bool and int", Literal(constant.MakeBool(false)), zero, false},
		{"null and zero", Marker(Null), zero, false},
		{"markers", Marker(UnknownReference), Unknown(bytecode.Type{Kind: bytecode.Reference}), true},
		{"marker kinds", Marker(UnknownPrimitive), Marker(UnknownReference), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%s.Equal(%s) = %t, expected %t", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	zero, one := Literal(constant.MakeInt64(0)), Literal(constant.MakeInt64(1))

	s := NewSet(zero, Literal(constant.MakeInt64(0)))
	if got := s.Len(); got != 1 {
		t.Fatalf("Got %d values, expected 1", got)
	}

	if s.Ambiguous() {
		t.Errorf("Expected %s not to be ambiguous", s)
	}

	if v, ok := s.Unique(); !ok || !v.Equal(zero) {
		t.Errorf("Got unique %s, %t, expected %s", v, ok, zero)
	}

	if !s.Add(one) || s.Add(one) {
		t.Error("Expected exactly one successful insertion")
	}

	if !s.Ambiguous() || !s.Contains(one) {
		t.Errorf("Expected %s to be ambiguous and contain %s", s, one)
	}

	if got, want := s.String(), "{0, 1}"; got != want {
		t.Errorf("Got %q, expected %q", got, want)
	}

	tests := []struct {
		name string
		set  Set
	}{
		{"empty", Set{}},
		{"unknown", NewSet(Marker(UnknownPrimitive))},
	}

	for _, tt := range tests {
		if !tt.set.Ambiguous() {
			t.Errorf("Expected %s set to be ambiguous", tt.name)
		}
	}
}

func TestPreconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func()
	}{
		{"nil literal", func() { Literal(nil) }},
		{"constant marker", func() { Marker(Constant) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				err, _ := recover().(error)

				var v *contract.Violation
				if !errors.As(err, &v) {
					t.Errorf("Expected precondition violation, got %v", err)
				}
			}()

			tt.call()
		})
	}
}
