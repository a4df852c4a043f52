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
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"fillmore-labs.com/lazyguard/internal/bytecode"
)

// class collects the fields of one lowered class.
type class struct {
	owner  string
	named  *types.Named // nil for the package class
	fields []bytecode.Field
	pos    token.Pos
}

// fieldIndex resolves SSA addresses to the fields of the selected classes.
type fieldIndex struct {
	types   map[*types.TypeName]*class
	globals map[*types.Var]bool
	classes []*class // Type classes in selection order
	global  *class   // Package class, if enabled
}

func newFieldIndex(pkg *types.Package, cfg Config) *fieldIndex {
	x := &fieldIndex{
		types:   make(map[*types.TypeName]*class, len(cfg.Types)),
		globals: make(map[*types.Var]bool),
	}

	for _, tn := range cfg.Types {
		named, s, ok := structOf(tn)
		if !ok || x.types[tn] != nil {
			continue
		}

		c := &class{owner: tn.Name(), named: named, pos: tn.Pos()}
		for f := range s.Fields() {
			c.fields = append(c.fields, fieldOf(f, 0))
		}

		x.types[tn] = c
		x.classes = append(x.classes, c)
	}

	if cfg.Globals {
		x.global = &class{owner: pkg.Path(), pos: token.NoPos}

		scope := pkg.Scope()
		for _, name := range scope.Names() {
			v, ok := scope.Lookup(name).(*types.Var)
			if !ok || v.Exported() {
				continue
			}

			x.globals[v] = true
			x.global.fields = append(x.global.fields, fieldOf(v, bytecode.Static))
		}
	}

	return x
}

func fieldOf(v *types.Var, access bytecode.Access) bytecode.Field {
	if !ast.IsExported(v.Name()) {
		access |= bytecode.Private
	}

	return bytecode.Field{Name: v.Name(), Type: typeOf(v.Type()), Access: access, Pos: v.Pos()}
}

func (x *fieldIndex) empty() bool {
	return len(x.classes) == 0 && (x.global == nil || len(x.global.fields) == 0)
}

// scope is the lowering an address is resolved for.
//
// Objects allocated by a function are not shared before it returns. Writes to them
// construct the object when the function is lowered as constructor of their type, and
// are dropped otherwise. The constructor body in turn drops all other field accesses,
// which stay in the shared body.
type scope struct {
	constructs *types.Named // nil for the shared body
}

// access is a resolved field address.
type access struct {
	ref    bytecode.FieldRef
	object ssa.Value // The owning object, nil for static fields
	nested bool      // The address points inside the field
}

// root resolves addr in s to the outermost field it points into.
func (x *fieldIndex) root(s scope, addr ssa.Value) (access, bool) {
	switch a := addr.(type) {
	case *ssa.FieldAddr:
		if outer, ok := x.root(s, a.X); ok {
			outer.nested = true
			return outer, true
		}

		return x.field(s, a)

	case *ssa.IndexAddr:
		// Elements of slices are not part of the slice header
		if _, ok := a.X.Type().Underlying().(*types.Pointer); !ok {
			return access{}, false
		}

		outer, ok := x.root(s, a.X)
		outer.nested = true

		return outer, ok

	case *ssa.Global:
		v, ok := a.Object().(*types.Var)
		if !ok || !x.globals[v] || s.constructs != nil {
			return access{}, false
		}

		return access{ref: bytecode.FieldRef{Owner: x.global.owner, Name: v.Name(), Static: true}}, true

	default:
		return access{}, false
	}
}

// field resolves a field address of a selected class.
func (x *fieldIndex) field(s scope, a *ssa.FieldAddr) (access, bool) {
	named := pointee(a.X.Type())
	if named == nil {
		return access{}, false
	}

	c, ok := x.types[named.Obj()]
	if !ok {
		return access{}, false
	}

	alloc, fresh := a.X.(*ssa.Alloc)

	switch {
	case fresh && !alloc.Heap:
		// Local values are not shared
		return access{}, false

	case s.constructs != nil:
		if !fresh || c.named != s.constructs {
			return access{}, false
		}

	case fresh:
		return access{}, false
	}

	name := c.fields[a.Field].Name

	return access{ref: bytecode.FieldRef{Owner: c.owner, Name: name}, object: a.X}, true
}
