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

package guard

import (
	"slices"

	"fillmore-labs.com/lazyguard/internal/alias"
	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
	"fillmore-labs.com/lazyguard/internal/reachability"
	"fillmore-labs.com/lazyguard/internal/reachability/block"
	"fillmore-labs.com/lazyguard/internal/value"
)

// Location addresses an instruction by block number and offset within [block.Block.Instructions].
type Location struct {
	Block, Offset int
}

// Target describes the field whose write is to be protected.
type Target struct {
	Field bytecode.FieldRef
	Type  bytecode.Type
	Alias alias.Alias
}

// Find searches backwards from the write at location at for the nearest branch guarding it,
// breadth-first through the predecessor blocks.
//
// A branch guards the write when it compares the field or its alias for (in)equality
// against a literal, the write is only reachable through the edge taken while the field
// still holds that literal, and the other edge does not lead to the write.
// Branches comparing against a value in initial take precedence. When only foreign
// values are compared, the nearest such guard is returned.
func Find(g *reachability.Graph, at Location, target Target, initial value.Set) AssignmentGuard {
	contract.NotNil(g, "graph")
	contract.NotBlank(target.Field.Name, "field")

	f := finder{graph: g, write: g.Block(at.Block), target: target}
	contract.Require(0 <= at.Offset && at.Offset < len(f.write.Instructions), "offset", "must address an instruction")

	// Conditional branches end their block, so the search starts at the predecessors
	var foreign AssignmentGuard

	seen := make([]bool, len(g.Blocks()))
	seen[f.write.Number] = true

	queue := make([]int, 0, len(seen))
	queue = f.enqueuePredecessors(f.write, queue, seen)

	for len(queue) > 0 {
		curr := g.Block(queue[0])
		queue = queue[1:]

		if guard, ok := f.qualify(curr); ok {
			if initial.Contains(guard.Value()) {
				return guard
			}

			if !foreign.IsGuard() {
				foreign = guard
			}
		}

		queue = f.enqueuePredecessors(curr, queue, seen)
	}

	return foreign
}

type finder struct {
	graph  *reachability.Graph
	write  *block.Block
	target Target
}

func (f finder) enqueuePredecessors(b *block.Block, queue []int, seen []bool) []int {
	for pred := range b.Predecessors() {
		if seen[pred] {
			continue
		}
		seen[pred] = true

		queue = append(queue, pred)
	}

	return queue
}

// qualify checks whether the branch ending b guards the write.
func (f finder) qualify(b *block.Block) (AssignmentGuard, bool) {
	last := b.Last()
	if !last.Op.IsConditional() || !last.Cond.IsEquality() || len(b.Instructions) < 2 {
		return NoGuard, false
	}

	v, ok := f.compared(b)
	if !ok {
		return NoGuard, false
	}

	taken, next, ok := f.graph.Jump(b)
	if !ok || taken == next {
		return NoGuard, false
	}

	// The edge followed while the field still equals v
	enter, other := taken, next
	if last.Cond == bytecode.Ne {
		enter, other = next, taken
	}

	w := f.write.Number
	if !f.graph.Reachable(enter, w) || f.graph.Reachable(other, w) ||
		f.graph.ReachableWithout(0, w, b.Number, enter) {
		return NoGuard, false
	}

	jump := NewJumpInstruction(last, b.Number, b.Instructions[:len(b.Instructions)-1])

	return New(jump, f.target.Field, f.target.Alias, v), true
}

// compared returns the literal the field is compared against by the branch ending b.
func (f finder) compared(b *block.Block) (value.Value, bool) {
	ins := b.Instructions
	at := len(ins) - 1

	if ins[at].Op == bytecode.If {
		if !f.readsField(b, at, 0) {
			return value.Value{}, false
		}

		return value.Default(f.target.Type), true
	}

	for operand := range 2 {
		if !f.readsField(b, at, operand) {
			continue
		}

		p, ok := bytecode.Source(ins, at, 1-operand)
		if !ok {
			return value.Value{}, false
		}

		switch in := ins[p]; in.Op {
		case bytecode.Const:
			if in.Const == nil {
				return value.Value{}, false
			}

			return value.Literal(in.Const), true

		case bytecode.Null:
			return value.Marker(value.Null), true

		default:
			return value.Value{}, false
		}
	}

	return value.Value{}, false
}

// readsField reports whether operand of the instruction at offset at of b is the field or its alias.
func (f finder) readsField(b *block.Block, at, operand int) bool {
	ins := b.Instructions

	p, ok := bytecode.Source(ins, at, operand)
	if !ok {
		return false
	}

	switch in := ins[p]; {
	case in.Reads(f.target.Field):
		return true

	case in.Op == bytecode.Load:
		a := f.target.Alias
		return a.Exists && a.Slot == in.Slot && f.current(b, p)

	default:
		return false
	}
}

// current reports whether every value of the local loaded at offset at of b still mirrors the field.
func (f finder) current(b *block.Block, at int) bool {
	slot := b.Instructions[at].Slot

	// Locals hold arguments on entry
	if f.reaches(slot, f.graph.Block(0), -1, b, at) {
		return false
	}

	for _, s := range f.graph.Blocks() {
		for offset, in := range s.Instructions {
			if in.Op != bytecode.Store || in.Slot != slot || alias.Mirrors(f.target.Field, s.Instructions, offset) {
				continue
			}

			if f.reaches(slot, s, offset, b, at) {
				return false
			}
		}
	}

	return true
}

// reaches reports whether the value stored to slot at offset from of block s can be loaded
// at offset to of block b without being overwritten. Offset -1 is the start of s.
func (f finder) reaches(slot int, s *block.Block, from int, b *block.Block, to int) bool {
	if s.Number == b.Number && from < to {
		return !stores(b.Instructions[from+1:to], slot)
	}

	if stores(s.Instructions[from+1:], slot) {
		return false
	}

	seen := make([]bool, len(f.graph.Blocks()))

	queue := f.enqueueSuccessors(s, nil, seen)

	for len(queue) > 0 {
		curr := f.graph.Block(queue[0])
		queue = queue[1:]

		if curr.Number == b.Number && !stores(b.Instructions[:to], slot) {
			return true
		}

		if stores(curr.Instructions, slot) {
			continue
		}

		queue = f.enqueueSuccessors(curr, queue, seen)
	}

	return false
}

func (f finder) enqueueSuccessors(b *block.Block, queue []int, seen []bool) []int {
	for succ := range b.Successors() {
		if seen[succ] {
			continue
		}
		seen[succ] = true

		queue = append(queue, succ)
	}

	return queue
}

// stores reports whether ins overwrites slot.
func stores(ins []bytecode.Instruction, slot int) bool {
	return slices.ContainsFunc(ins, func(in bytecode.Instruction) bool {
		return in.Op == bytecode.Store && in.Slot == slot
	})
}
