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

// Package value models the possible values of a field before initialization.
package value

import (
	"go/constant"
	"go/token"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
)

// Kind is the tag of a [Value].
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	Constant         Kind = iota // constant
	Null                         // null
	UnknownPrimitive             // unknown primitive
	UnknownReference             // unknown reference
)

// Value is a concrete literal, the null reference or an unresolved value of some type category.
type Value struct {
	kind Kind
	lit  constant.Value
}

// Literal returns the [Constant] value lit.
func Literal(lit constant.Value) Value {
	contract.Require(lit != nil, "literal", "must not be nil")

	return Value{kind: Constant, lit: lit}
}

// Marker returns the value of a non-constant kind.
func Marker(k Kind) Value {
	contract.Require(k != Constant && k <= UnknownReference, "kind", "must not be a constant")

	return Value{kind: k}
}

// Default returns the value a field of type t holds before its first write.
func Default(t bytecode.Type) Value {
	switch t.Kind {
	case bytecode.Reference:
		return Value{kind: Null}

	case bytecode.Bool:
		return Literal(constant.MakeBool(false))

	case bytecode.Int:
		return Literal(constant.MakeInt64(0))

	case bytecode.Float:
		return Literal(constant.MakeFloat64(0))

	case bytecode.String:
		return Literal(constant.MakeString(""))

	default:
		return Value{kind: UnknownPrimitive}
	}
}

// Unknown returns the unresolved value of type t's category.
func Unknown(t bytecode.Type) Value {
	if t.IsReference() {
		return Value{kind: UnknownReference}
	}

	return Value{kind: UnknownPrimitive}
}

// Kind returns the tag of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Literal returns the constant of a [Constant] value, nil otherwise.
func (v Value) Literal() constant.Value {
	return v.lit
}

// IsUnknown reports whether v is not exactly resolved.
func (v Value) IsUnknown() bool {
	return v.kind == UnknownPrimitive || v.kind == UnknownReference
}

// Equal reports whether both values have the same tag and, for constants, the same literal.
// Numeric literals compare by value, so 0 equals 0.0.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	if v.kind != Constant {
		return true
	}

	return equalLiterals(v.lit, o.lit)
}

func (v Value) String() string {
	if v.kind == Constant {
		return v.lit.String()
	}

	return v.kind.String()
}

func equalLiterals(a, b constant.Value) bool {
	ka, kb := a.Kind(), b.Kind()

	switch {
	case ka == constant.Unknown || kb == constant.Unknown:
		return false

	case ka == kb, isNumeric(ka) && isNumeric(kb):
		return constant.Compare(a, token.EQL, b)

	default:
		return false
	}
}

func isNumeric(k constant.Kind) bool {
	switch k {
	case constant.Int, constant.Float, constant.Complex:
		return true

	default:
		return false
	}
}
