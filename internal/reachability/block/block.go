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

package block

import (
	"iter"
	"slices"

	"fillmore-labs.com/lazyguard/internal/bytecode"
)

// Block represents a [basic Block] of one method's [control-flow graph].
// It is a sequence of instructions with a single entry and exit point.
// Blocks reference each other by number, so the graph holds no pointers.
//
// [basic Block]: https://en.wikipedia.org/wiki/Basic_block
// [control-flow graph]: https://en.wikipedia.org/wiki/Control-flow_graph
type Block struct {
	Number int    // Discovery order, 0 is the entry block
	Owner  string // The method this block belongs to

	// The instructions of the block, excluding markers.
	Instructions []bytecode.Instruction

	indices      []int
	rng          Range
	target       int // Block entered by the final branch, -1 if none
	successors   []int
	predecessors []int
}

// Range returns the instruction indices covered by this block.
func (b *Block) Range() Range {
	return b.rng
}

// Covers reports whether the instruction at index belongs to this block.
func (b *Block) Covers(index int) bool {
	return b.rng.Covers(index)
}

// Offset returns the position of the instruction at index within [Block.Instructions].
func (b *Block) Offset(index int) (int, bool) {
	return slices.BinarySearch(b.indices, index)
}

// Last returns the final instruction of the block.
func (b *Block) Last() bytecode.Instruction {
	return b.Instructions[len(b.Instructions)-1]
}

// Target returns the number of the block entered when the final branch of b is taken.
func (b *Block) Target() (int, bool) {
	return b.target, b.target >= 0
}

// Successors yields the numbers of the direct successor blocks in increasing order.
func (b *Block) Successors() iter.Seq[int] {
	return slices.Values(b.successors)
}

// Predecessors yields the numbers of the direct predecessor blocks in increasing order.
func (b *Block) Predecessors() iter.Seq[int] {
	return slices.Values(b.predecessors)
}

// IsDirectPredecessorOf reports whether there is an edge from b to o.
func (b *Block) IsDirectPredecessorOf(o *Block) bool {
	_, found := slices.BinarySearch(b.successors, o.Number)
	return found
}

func (b *Block) isEmpty() bool {
	return len(b.indices) == 0
}

func (b *Block) add(ins bytecode.Instruction) {
	b.Instructions = append(b.Instructions, ins)
	b.indices = append(b.indices, ins.Index)
}

func (b *Block) cmp(a *Block) int {
	return b.indices[0] - a.indices[0]
}

// link adds an edge from b to succ.
func (b *Block) link(succ *Block) {
	if i, found := slices.BinarySearch(b.successors, succ.Number); !found {
		b.successors = slices.Insert(b.successors, i, succ.Number)
	}

	if i, found := slices.BinarySearch(succ.predecessors, b.Number); !found {
		succ.predecessors = slices.Insert(succ.predecessors, i, b.Number)
	}
}
