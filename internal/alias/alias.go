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

// Package alias detects local variables that mirror a field inside one basic block.
package alias

import (
	"fmt"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
	"fillmore-labs.com/lazyguard/internal/reachability/block"
)

// Alias is the result of an alias search.
type Alias struct {
	Exists bool
	Slot   int // Local variable slot, valid if Exists
}

// None is the result of a search without alias.
var None = Alias{}

func (a Alias) String() string {
	if !a.Exists {
		return "no alias"
	}

	return fmt.Sprintf("local %d", a.Slot)
}

// Find returns the first local of b stored from a read of field, or written back to field later in b.
func Find(field bytecode.FieldRef, b *block.Block) Alias {
	contract.NotNil(b, "block")

	for offset, in := range b.Instructions {
		if in.Op == bytecode.Store && Mirrors(field, b.Instructions, offset) {
			return Alias{Exists: true, Slot: in.Slot}
		}
	}

	return None
}

// Mirrors reports whether the [bytecode.Store] at ins[at] copies field into its local,
// or stores a value written to field later in ins.
func Mirrors(field bytecode.FieldRef, ins []bytecode.Instruction, at int) bool {
	if p, ok := bytecode.Source(ins, at, 0); ok && ins[p].Reads(field) {
		return true
	}

	return writtenBack(ins, at, field)
}

// writtenBack reports whether the local stored at ins[at] is later loaded and written to field.
func writtenBack(ins []bytecode.Instruction, at int, field bytecode.FieldRef) bool {
	slot := ins[at].Slot

	for j := at + 1; j < len(ins); j++ {
		switch in := ins[j]; {
		case in.Op == bytecode.Store && in.Slot == slot:
			// Overwritten, the load below belongs to the newer store
			return false

		case in.Writes(field):
			if p, ok := bytecode.Producer(ins, j, 0); ok && ins[p].Op == bytecode.Load && ins[p].Slot == slot {
				return true
			}
		}
	}

	return false
}
