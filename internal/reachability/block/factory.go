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
	"slices"

	"fillmore-labs.com/lazyguard/internal/bytecode"
)

// Factory creates and manages [Block]s in a [slab list].
//
// [slab list]: https://en.wikipedia.org/wiki/Slab_allocation
type Factory struct {
	start, current *chunk
	count, total   int
}

// chunk is a linked list of fixed-size arrays of Blocks.
type chunk struct {
	blocks [chunkSize]Block
	next   *chunk
}

// chunkSize defines the number of Blocks stored in a single chunk.
const chunkSize = 127

// New creates and returns a new *[Block] and adds it to the list of existing blocks.
func (f *Factory) New(owner string) *Block {
	if f.count == chunkSize {
		f.current.next = new(chunk)
		f.current = f.current.next
		f.count = 0
		f.total += chunkSize
	} else if f.current == nil {
		f.current = new(chunk)
		f.start = f.current
	}

	f.count++

	block := &f.current.blocks[f.count-1]
	block.Owner = owner
	block.target = -1

	return block
}

// All retrieves all non-empty Blocks managed by the Factory in instruction order.
func (f *Factory) All() []*Block {
	if f.count == 0 {
		return nil
	}

	blocks := make([]*Block, 0, f.count+f.total)
	for next := f.start; next != nil; next = next.next {
		n := chunkSize
		if next == f.current {
			n = f.count
		}

		for i := range n {
			block := &next.blocks[i]
			if block.isEmpty() {
				continue
			}

			blocks = append(blocks, block)
		}
	}

	// Sort by instruction order
	slices.SortFunc(blocks, (*Block).cmp)

	return blocks
}

// Build partitions the instruction sequence of method owner into basic blocks
// and links them.
//
// A block starts at index 0, after every branch, return or throw,
// and at every branch target. Markers are excluded from all blocks but do
// not start one themselves.
func Build(owner string, instructions []bytecode.Instruction) []*Block {
	var f Factory

	return f.build(owner, instructions)
}

func (f *Factory) build(owner string, instructions []bytecode.Instruction) []*Block {
	leaders := findLeaders(instructions)

	var current *Block
	for i, ins := range instructions {
		if current == nil || leaders[i] && !current.isEmpty() {
			current = f.New(owner)
		}

		if ins.Op.IsMarker() {
			continue
		}

		current.add(ins)
	}

	blocks := f.All()
	for n, b := range blocks {
		b.Number = n
		b.rng = NewRange(b.indices)
		b.target = -1
	}

	linkBlocks(blocks, instructions)

	return blocks
}

// findLeaders records block boundaries, resolving forward branch targets before any block is formed.
func findLeaders(instructions []bytecode.Instruction) []bool {
	leaders := make([]bool, len(instructions)+1)
	leaders[0] = true

	for i, ins := range instructions {
		if ins.Op.IsBranch() && 0 <= ins.Target && ins.Target < len(instructions) {
			leaders[ins.Target] = true
		}

		if ins.Op.IsBranch() || ins.Op.IsUnconditional() {
			leaders[i+1] = true
		}
	}

	return leaders
}

// linkBlocks adds fall-through and jump edges.
func linkBlocks(blocks []*Block, instructions []bytecode.Instruction) {
	for n, b := range blocks {
		last := b.Last()

		if last.Op.IsBranch() {
			if target := blockOfTarget(blocks, instructions, last.Target); target != nil {
				b.target = target.Number
				b.link(target)
			}
		}

		if !last.Op.IsUnconditional() && n+1 < len(blocks) {
			b.link(blocks[n+1])
		}
	}
}

// blockOfTarget returns the block covering the first real instruction at or after target.
func blockOfTarget(blocks []*Block, instructions []bytecode.Instruction, target int) *Block {
	for target >= 0 && target < len(instructions) && instructions[target].Op.IsMarker() {
		target++
	}

	if target < 0 || target >= len(instructions) {
		return nil
	}

	n, found := slices.BinarySearchFunc(blocks, target, func(b *Block, index int) int {
		switch {
		case b.rng.Last() < index:
			return -1

		case b.rng.First() > index:
			return 1

		default:
			return 0
		}
	})
	if !found || !blocks[n].Covers(target) {
		return nil
	}

	return blocks[n]
}
