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
	"context"
	"errors"
	"fmt"
	"go/types"
	"runtime/trace"
	"strings"

	"golang.org/x/tools/go/ssa"

	"fillmore-labs.com/lazyguard/internal/bytecode"
)

// ErrNoPackage is returned when lowering is requested without SSA package.
var ErrNoPackage = errors.New("missing SSA package")

// Config selects the classes to build.
type Config struct {
	// Types are the struct types to build classes for.
	Types []*types.TypeName

	// Globals builds a class of the unexported package-level variables.
	Globals bool
}

// Package lowers funcs, the source functions of pkg, into the classes selected by cfg.
// The package class, if any, comes last.
func Package(ctx context.Context, pkg *ssa.Package, funcs []*ssa.Function, cfg Config) ([]*bytecode.Class, error) {
	if pkg == nil {
		return nil, ErrNoPackage
	}

	defer trace.StartRegion(ctx, "Lower").End()

	fields := newFieldIndex(pkg.Pkg, cfg)
	if fields.empty() {
		return nil, nil
	}

	bodies := make([]body, 0, len(funcs)+1)
	for _, fn := range funcs {
		if fn.Blocks == nil {
			continue
		}

		b, err := lowerFunction(fn, fields, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}

		bodies = append(bodies, b)
	}

	classes := make([]*bytecode.Class, 0, len(fields.classes)+1)

	for _, c := range fields.classes {
		class := &bytecode.Class{Name: c.owner, Fields: c.fields, Pos: c.pos}
		for _, b := range bodies {
			if constructorKind(b.fn, c.named) != bytecode.Constructor {
				class.Methods = append(class.Methods, b.method(bytecode.Regular))

				continue
			}

			ctor, err := lowerFunction(b.fn, fields, c.named)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.fn, err)
			}

			class.Methods = append(class.Methods, ctor.method(bytecode.Constructor))

			// Objects the constructor did not allocate are mutated
			if b.writes(c.owner) {
				class.Methods = append(class.Methods, b.method(bytecode.Regular))
			}
		}

		classes = append(classes, class)
	}

	if c := fields.global; c != nil && len(c.fields) > 0 {
		class := &bytecode.Class{Name: c.owner, Fields: c.fields, Pos: c.pos}

		if initializer := pkg.Func("init"); initializer != nil && initializer.Blocks != nil {
			b, err := lowerFunction(initializer, fields, nil)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", initializer, err)
			}

			class.Methods = append(class.Methods, b.method(bytecode.StaticInit))
		}

		for _, b := range bodies {
			class.Methods = append(class.Methods, b.method(initKind(b.fn)))
		}

		classes = append(classes, class)
	}

	return classes, nil
}

// constructorKind classifies fn for the fields of named.
func constructorKind(fn *ssa.Function, named *types.Named) bytecode.MethodKind {
	if fn.Parent() != nil || fn.Signature.Recv() != nil || !returns(fn.Signature, named) {
		return bytecode.Regular
	}

	return bytecode.Constructor
}

// initKind classifies fn for package-level variables.
func initKind(fn *ssa.Function) bytecode.MethodKind {
	if fn.Parent() != nil || fn.Signature.Recv() != nil || !strings.HasPrefix(fn.Name(), "init#") {
		return bytecode.Regular
	}

	return bytecode.StaticInit
}
