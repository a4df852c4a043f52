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

package lower

import (
	"go/types"

	"fillmore-labs.com/lazyguard/internal/bytecode"
)

// typeOf returns the category of a Go type.
func typeOf(t types.Type) bytecode.Type {
	name := types.TypeString(t, nil)

	if _, ok := t.(*types.TypeParam); ok {
		return bytecode.Type{Kind: bytecode.Aggregate, Name: name}
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch info := u.Info(); {
		case info&types.IsBoolean != 0:
			return bytecode.Type{Kind: bytecode.Bool, Name: name}

		case info&types.IsInteger != 0:
			return bytecode.Type{Kind: bytecode.Int, Name: name}

		case info&(types.IsFloat|types.IsComplex) != 0:
			return bytecode.Type{Kind: bytecode.Float, Name: name}

		case info&types.IsString != 0:
			return bytecode.Type{Kind: bytecode.String, Name: name}

		case u.Kind() == types.UnsafePointer, u.Kind() == types.UntypedNil:
			return bytecode.Type{Kind: bytecode.Reference, Name: name}

		default:
			return bytecode.Type{Kind: bytecode.Aggregate, Name: name}
		}

	case *types.Pointer, *types.Slice, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return bytecode.Type{Kind: bytecode.Reference, Name: name}

	default:
		return bytecode.Type{Kind: bytecode.Aggregate, Name: name}
	}
}

// typesOf returns the categories of a tuple.
func typesOf(t *types.Tuple) []bytecode.Type {
	if t.Len() == 0 {
		return nil
	}

	result := make([]bytecode.Type, 0, t.Len())
	for v := range t.Variables() {
		result = append(result, typeOf(v.Type()))
	}

	return result
}

// structOf returns the struct underlying a named, non-generic type.
func structOf(tn *types.TypeName) (*types.Named, *types.Struct, bool) {
	if tn.IsAlias() {
		return nil, nil, false
	}

	named, ok := tn.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil, nil, false
	}

	s, ok := named.Underlying().(*types.Struct)

	return named, s, ok
}

// pointee returns the named type addressed by t.
func pointee(t types.Type) *types.Named {
	p, ok := t.Underlying().(*types.Pointer)
	if !ok {
		return nil
	}

	named, _ := types.Unalias(p.Elem()).(*types.Named)

	return named
}

// returns reports whether sig has a result of type named or *named.
func returns(sig *types.Signature, named *types.Named) bool {
	for v := range sig.Results().Variables() {
		t := types.Unalias(v.Type())
		if p, ok := t.(*types.Pointer); ok {
			t = types.Unalias(p.Elem())
		}

		if n, ok := t.(*types.Named); ok && n.Obj() == named.Obj() {
			return true
		}
	}

	return false
}
