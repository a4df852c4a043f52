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

// Package initval computes the values a field may hold when construction completes.
package initval

import (
	"context"
	"runtime/trace"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
	"fillmore-labs.com/lazyguard/internal/reachability"
	"fillmore-labs.com/lazyguard/internal/reachability/block"
	"fillmore-labs.com/lazyguard/internal/value"
)

// Find returns the possible values of field after any constructor of class ran.
//
// Instance fields are initialized by constructors, static fields by static initializers.
// A class without any yields the type default. Otherwise each constructor contributes the
// value of its last entry block write, or the default without one, and the values of
// all writes in other blocks.
func Find(ctx context.Context, class *bytecode.Class, field bytecode.Field) value.Set {
	contract.NotNil(class, "class")
	contract.NotBlank(field.Name, "field")

	defer trace.StartRegion(ctx, "InitialValues").End()

	ref := field.Ref(class.Name)
	def := value.Default(field.Type)

	var (
		result value.Set
		found  bool
	)

	for ctor := range class.Constructors(ref.Static) {
		found = true

		entry := def
		g := reachability.NewGraph(ctx, ctor)

		for _, b := range g.Blocks() {
			for offset, ins := range b.Instructions {
				if !ins.Writes(ref) {
					continue
				}

				v := Written(b, offset, field.Type)
				if b.Number == 0 {
					entry = v
				} else {
					result.Add(v)
				}
			}
		}

		result.Add(entry)
	}

	if !found {
		result.Add(def)
	}

	return result
}

// Written returns the value stored by the write at offset of b.
// Values other than literals pushed inside b are unknown of type t's category.
func Written(b *block.Block, offset int, t bytecode.Type) value.Value {
	p, ok := bytecode.Source(b.Instructions, offset, 0)
	if !ok {
		return value.Unknown(t)
	}

	switch ins := b.Instructions[p]; ins.Op {
	case bytecode.Const:
		if ins.Const == nil {
			return value.Unknown(t)
		}

		return value.Literal(ins.Const)

	case bytecode.Null:
		return value.Marker(value.Null)

	default:
		return value.Unknown(t)
	}
}
