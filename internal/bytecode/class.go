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

package bytecode

import (
	"go/token"
	"iter"
	"slices"
)

// TypeKind is the category of a declared type.
type TypeKind uint8

//go:generate go tool stringer -type TypeKind,MethodKind -output kind_string.go -linecomment
const (
	Reference TypeKind = iota // reference
	Bool                      // bool
	Int                       // int
	Float                     // float
	String                    // string
	Aggregate                 // aggregate
)

// Type is the declared type of a field, parameter or result.
type Type struct {
	Kind TypeKind
	Name string
}

// IsReference reports whether values of the type are references with a null default.
func (t Type) IsReference() bool {
	return t.Kind == Reference
}

func (t Type) String() string {
	if t.Name != "" {
		return t.Name
	}

	return t.Kind.String()
}

// Access holds the access flags of a field.
type Access uint8

const (
	// Private fields are only accessible from the declaring unit.
	Private Access = 1 << iota

	// Final fields are assigned exactly once during construction.
	Final

	// Static fields belong to the class, not an instance.
	Static
)

// Has reports whether all flags in a are set.
func (a Access) Has(flags Access) bool {
	return a&flags == flags
}

// Field is a declared field of a [Class].
type Field struct {
	Name   string
	Type   Type
	Access Access
	Pos    token.Pos
}

// Ref returns the [FieldRef] instructions of class owner use to address this field.
func (f Field) Ref(owner string) FieldRef {
	return FieldRef{Owner: owner, Name: f.Name, Static: f.Access.Has(Static)}
}

// MethodKind distinguishes constructors and static initializers from other methods.
type MethodKind uint8

const (
	Regular     MethodKind = iota // method
	Constructor                   // constructor
	StaticInit                    // static initializer
)

// Method is a method body with its signature.
type Method struct {
	Name         string
	Kind         MethodKind
	Params       []Type
	Results      []Type
	MaxLocals    int
	Instructions []Instruction
	Pos          token.Pos
}

// Initializes reports whether the method is a constructor for fields of the given static-ness.
func (m *Method) Initializes(static bool) bool {
	if static {
		return m.Kind == StaticInit
	}

	return m.Kind == Constructor
}

// Writes reports whether the method contains a write to f.
func (m *Method) Writes(f FieldRef) bool {
	return slices.ContainsFunc(m.Instructions, func(i Instruction) bool { return i.Writes(f) })
}

func (m *Method) String() string {
	return m.Name
}

// Class is a parsed class descriptor.
type Class struct {
	Name    string
	Fields  []Field
	Methods []*Method
	Pos     token.Pos
}

// Field returns the declared field with the given name.
func (c *Class) Field(name string) (Field, bool) {
	i := slices.IndexFunc(c.Fields, func(f Field) bool { return f.Name == name })
	if i < 0 {
		return Field{}, false
	}

	return c.Fields[i], true
}

// Constructors yields the methods initializing fields of the given static-ness.
func (c *Class) Constructors(static bool) iter.Seq[*Method] {
	return func(yield func(*Method) bool) {
		for _, m := range c.Methods {
			if m.Initializes(static) && !yield(m) {
				return
			}
		}
	}
}
