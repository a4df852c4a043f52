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

// Package reachability answers reachability queries over the basic blocks of a method.
package reachability

import (
	"context"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
	"fillmore-labs.com/lazyguard/internal/reachability/block"
)

// Graph determines reachability in the control-flow graph of a method.
type Graph struct {
	// Lazy evaluation: block construction is deferred until first use
	buildBlocks func() []*block.Block

	// Blocks, sorted by first instruction index for binary search
	blocks []*block.Block

	// Reusable BFS state to avoid allocations on each reachability check
	seen    []bool // Visited set
	queue   []int  // Ring buffer
	blocked [2]int // Edge to ignore, if any
}

var noEdge = [2]int{-1, -1}

// NewGraph partitions the body of m into basic blocks.
func NewGraph(ctx context.Context, m *bytecode.Method) *Graph {
	contract.NotNil(m, "method")

	buildBlocks := func() []*block.Block {
		defer trace.StartRegion(ctx, "Graph").End()

		return block.Build(m.Name, m.Instructions)
	}

	return &Graph{buildBlocks: buildBlocks, blocked: noEdge}
}

// Blocks returns all blocks in instruction order. Block n has number n.
func (g *Graph) Blocks() []*block.Block {
	if g.blocks == nil {
		g.init()
	}

	return g.blocks
}

// Block returns block number n.
func (g *Graph) Block(n int) *block.Block {
	return g.Blocks()[n]
}

// BlockOf returns the block covering the instruction at index.
func (g *Graph) BlockOf(index int) (*block.Block, bool) {
	blocks := g.Blocks()

	n, found := slices.BinarySearchFunc(blocks, index, func(b *block.Block, index int) int {
		switch r := b.Range(); {
		case r.Last() < index:
			return -1

		case r.First() > index:
			return 1

		default:
			return 0
		}
	})
	if !found || !blocks[n].Covers(index) {
		return nil, false
	}

	return blocks[n], true
}

// Reachable reports whether block to can be reached from block from.
// Every block reaches itself.
func (g *Graph) Reachable(from, to int) bool {
	if from == to {
		return true
	}

	return g.reachable(from, to)
}

// ReachableWithout reports whether block to can be reached from block from
// when the edge from block a to block b is removed.
func (g *Graph) ReachableWithout(from, to, a, b int) bool {
	if from == to {
		return true
	}

	g.blocked = [2]int{a, b}
	defer func() { g.blocked = noEdge }()

	return g.reachable(from, to)
}

// Jump returns the blocks entered by the taken and the fall-through edge of the
// conditional branch ending b.
func (g *Graph) Jump(b *block.Block) (taken, next int, ok bool) {
	last := b.Last()
	if !last.Op.IsConditional() {
		return 0, 0, false
	}

	taken, ok = b.Target()
	if !ok {
		return 0, 0, false
	}

	next = b.Number + 1
	if next >= len(g.Blocks()) {
		return 0, 0, false
	}

	return taken, next, true
}

// IsPredecessorOf reports whether b can be reached from a along at least one edge, a ≠ b.
func (g *Graph) IsPredecessorOf(a, b *block.Block) bool {
	return a.Number != b.Number && g.reachable(a.Number, b.Number)
}

// IsSuccessorOf reports whether b is reachable from a, a ≠ b.
func (g *Graph) IsSuccessorOf(b, a *block.Block) bool {
	return g.IsPredecessorOf(a, b)
}

func (g *Graph) init() {
	g.blocks = g.buildBlocks()
	if g.blocks == nil {
		g.blocks = []*block.Block{}
	}

	// Allocate reusable BFS state sized to the number of blocks.
	// These are reset on each reachability check rather than reallocated.
	g.queue = make([]int, len(g.blocks))
	g.seen = make([]bool, len(g.blocks))
}

// reachable performs a BFS from source, only counting paths of at least one edge.
func (g *Graph) reachable(source, target int) bool {
	blocks := g.Blocks()
	if source < 0 || source >= len(blocks) || target < 0 || target >= len(blocks) {
		return false
	}

	clear(g.seen) // Reset visited set from previous checks

	// We use a ring buffer queue to minimize allocations.
	qTail := g.enqueueSuccessors(source, 0)

	// Determine reachability using BFS.
	for qHead := 0; qHead < qTail; qHead++ {
		curr := g.queue[qHead]

		if curr == target {
			return true
		}

		qTail = g.enqueueSuccessors(curr, qTail)
	}

	return false
}

// enqueueSuccessors adds unseen successors of block s to the queue.
func (g *Graph) enqueueSuccessors(s, qTail int) int {
	for succ := range g.blocks[s].Successors() {
		if g.seen[succ] || g.blocked == [2]int{s, succ} {
			continue
		}
		g.seen[succ] = true

		g.queue[qTail] = succ
		qTail++
	}

	return qTail
}
