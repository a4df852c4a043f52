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

// Package guard detects the conditional branches protecting lazy field initializations.
package guard

import (
	"fmt"
	"go/token"

	"fillmore-labs.com/lazyguard/internal/alias"
	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
	"fillmore-labs.com/lazyguard/internal/value"
)

// AssignmentGuard is a conditional branch comparing a field, or its alias, against a value
// and only entering the write on one edge.
type AssignmentGuard struct {
	jump  JumpInstruction
	field bytecode.FieldRef
	alias alias.Alias
	value value.Value
	valid bool
}

// NoGuard is the result of a search without matching branch.
var NoGuard = AssignmentGuard{}

// New returns a guard for field compared against v. It panics when field has no name.
func New(jump JumpInstruction, field bytecode.FieldRef, a alias.Alias, v value.Value) AssignmentGuard {
	contract.NotBlank(field.Name, "field")
	contract.NotEmpty(jump.Predecessors, "predecessors")

	return AssignmentGuard{jump: jump, field: field, alias: a, value: v, valid: true}
}

// IsGuard reports whether g is not [NoGuard].
func (g AssignmentGuard) IsGuard() bool {
	return g.valid
}

// Jump returns the guarding branch.
func (g AssignmentGuard) Jump() JumpInstruction {
	return g.jump
}

// Field returns the guarded field.
func (g AssignmentGuard) Field() bytecode.FieldRef {
	return g.field
}

// Alias returns the local the branch reads instead of the field, if any.
func (g AssignmentGuard) Alias() alias.Alias {
	return g.alias
}

// Value returns the value the field is compared against.
func (g AssignmentGuard) Value() value.Value {
	return g.value
}

// Pos returns the source position of the branch.
func (g AssignmentGuard) Pos() token.Pos {
	return g.jump.Branch.Pos
}

// Equal reports whether both guards protect the same field with value-equal branches.
func (g AssignmentGuard) Equal(o AssignmentGuard) bool {
	if !g.valid || !o.valid {
		return g.valid == o.valid
	}

	return g.field == o.field && g.jump.Equal(o.jump)
}

// Hash returns a hash code consistent with [AssignmentGuard.Equal].
func (g AssignmentGuard) Hash() uint64 {
	if !g.valid {
		return 0
	}

	return g.jump.Hash()
}

func (g AssignmentGuard) String() string {
	if !g.valid {
		return "no guard"
	}

	return fmt.Sprintf("%s %s %s at %d", g.field, g.jump.Branch.Cond, g.value, g.jump.Branch.Index)
}
