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

package reachability_test

import (
	"testing"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	. "fillmore-labs.com/lazyguard/internal/reachability"
)

// method assembles
//
//	b0: if x == 0 goto b2
//	b1: loop: if y != 0 goto b1, else fall through to b2
//	b2: return
//	b3: unreachable throw
func method(tb testing.TB) *bytecode.Method {
	tb.Helper()

	var a bytecode.Assembler

	loop, done := a.NewLabel(), a.NewLabel()

	a.Load(0).If(bytecode.Eq, done).
		Mark(loop).Load(1).If(bytecode.Ne, loop).
		Mark(done).Return(0).
		Throw()

	ins, err := a.Instructions()
	if err != nil {
		tb.Fatalf("Can't assemble: %v", err)
	}

	return &bytecode.Method{Name: "m", Instructions: ins}
}

func TestReachable(t *testing.T) {
	t.Parallel()

	g := NewGraph(t.Context(), method(t))

	if got, want := len(g.Blocks()), 4; got != want {
		t.Fatalf("Got %d blocks, expected %d", got, want)
	}

	tests := []struct {
		name     string
		from, to int
		want     bool
	}{
		{"self", 0, 0, true},
		{"direct", 0, 2, true},
		{"through loop", 0, 1, true},
		{"loop back", 1, 1, true},
		{"backwards", 2, 0, false},
		{"dead", 0, 3, false},
		{"out of range", 0, 7, false},
	}

	for _, tt := range tests {
		if got := g.Reachable(tt.from, tt.to); got != tt.want {
			t.Errorf("%s: Reachable(%d, %d) = %t, expected %t", tt.name, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPredecessorRelations(t *testing.T) {
	t.Parallel()

	g := NewGraph(t.Context(), method(t))

	b0, b1, b2 := g.Block(0), g.Block(1), g.Block(2)

	if g.IsPredecessorOf(b1, b1) {
		t.Error("Expected a block not to be its own predecessor")
	}

	if !g.IsPredecessorOf(b0, b2) || !g.IsSuccessorOf(b2, b0) {
		t.Error("Expected b0 to precede b2")
	}

	if g.IsPredecessorOf(b2, b0) {
		t.Error("Expected b2 not to precede b0")
	}

	if !b1.IsDirectPredecessorOf(b1) {
		t.Error("Expected self loop on b1")
	}

	if b0.IsDirectPredecessorOf(b0) {
		t.Error("Expected no self loop on b0")
	}
}

func TestBlockOf(t *testing.T) {
	t.Parallel()

	g := NewGraph(t.Context(), method(t))

	// 0 load, 1 if, 2 label, 3 load, 4 if, 5 label, 6 return, 7 throw
	tests := []struct {
		index int
		want  int
		ok    bool
	}{
		{0, 0, true},
		{1, 0, true},
		{2, 0, false},
		{4, 1, true},
		{6, 2, true},
		{7, 3, true},
		{8, 0, false},
	}

	for _, tt := range tests {
		b, ok := g.BlockOf(tt.index)
		if ok != tt.ok || ok && b.Number != tt.want {
			t.Errorf("BlockOf(%d) = %v, %t, expected %d, %t", tt.index, b, ok, tt.want, tt.ok)
		}
	}
}

func TestJump(t *testing.T) {
	t.Parallel()

	g := NewGraph(t.Context(), method(t))

	tests := []struct {
		block       int
		taken, next int
		ok          bool
	}{
		{0, 2, 1, true},
		{1, 1, 2, true},
		{2, 0, 0, false},
	}

	for _, tt := range tests {
		taken, next, ok := g.Jump(g.Block(tt.block))
		if taken != tt.taken || next != tt.next || ok != tt.ok {
			t.Errorf("Jump(b%d) = %d, %d, %t, expected %d, %d, %t",
				tt.block, taken, next, ok, tt.taken, tt.next, tt.ok)
		}
	}
}

func TestReachableWithout(t *testing.T) {
	t.Parallel()

	g := NewGraph(t.Context(), method(t))

	if !g.ReachableWithout(0, 2, 0, 2) {
		t.Error("Expected b2 to be reachable through the loop")
	}

	if g.ReachableWithout(0, 1, 0, 1) {
		t.Error("Expected b1 to be unreachable without its only entry")
	}

	// The blocked edge is restored afterwards
	if !g.Reachable(0, 1) {
		t.Error("Expected b1 to be reachable again")
	}
}
