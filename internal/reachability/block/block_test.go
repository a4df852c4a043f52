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

package block_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	. "fillmore-labs.com/lazyguard/internal/reachability/block"
)

func TestBlockFactory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
	}{
		{"Empty", 0},
		{"Single", 1},
		{"BlockSize", ChunkSize},
		{"BlockSizePlusOne", ChunkSize + 1},
		{"MultiplePages", 2*ChunkSize + 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var f Factory

			for i := range tt.count {
				b := f.New("m")
				b.Add(bytecode.Instruction{Index: tt.count - i})
			}

			// Blocks without instructions are skipped
			f.New("m")

			blocks := f.All()
			if got, want := len(blocks), tt.count; got != want {
				t.Errorf("Got %d blocks, expected %d", got, want)
			}

			for i, b := range blocks {
				if got, want := b.Instructions[0].Index, i+1; got != want {
					t.Errorf("Got start index %d for block %d, expected %d", got, i, want)
				}
			}
		})
	}
}

type shape struct {
	Indices      []int
	Target       int
	Successors   []int
	Predecessors []int
}

func shapes(blocks []*Block) []shape {
	result := make([]shape, 0, len(blocks))
	for _, b := range blocks {
		target, ok := b.Target()
		if !ok {
			target = -1
		}

		result = append(result, shape{
			Indices:      slices.Collect(b.Range().All()),
			Target:       target,
			Successors:   slices.Collect(b.Successors()),
			Predecessors: slices.Collect(b.Predecessors()),
		})
	}

	return result
}

func TestBuild(t *testing.T) {
	t.Parallel()

	f := bytecode.FieldRef{Owner: "C", Name: "f"}

	diamond := func(a *bytecode.Assembler) {
		done := a.NewLabel()
		// 0 load, 1 getfield, 2 if, 3 load, 4 const, 5 putfield, 6 label, 7 return
		a.Load(0).GetField(f).If(bytecode.Ne, done).
			Load(0).Int(1).PutField(f).
			Mark(done).Return(0)
	}

	loop := func(a *bytecode.Assembler) {
		top, done := a.NewLabel(), a.NewLabel()
		// 0 label, 1 load, 2 if, 3 goto, 4 label, 5 return
		a.Mark(top).Load(0).If(bytecode.Eq, done).Goto(top).
			Mark(done).Return(0)
	}

	locked := func(a *bytecode.Assembler) {
		// 0 load, 1 monitorenter, 2 load, 3 const, 4 putfield, 5 load, 6 monitorexit, 7 return
		a.Load(0).MonitorEnter().Load(0).Int(1).PutField(f).
			Load(0).MonitorExit().Return(0)
	}

	markers := func(a *bytecode.Assembler) {
		// 0 line, 1 frame, 2 load, 3 line, 4 return
		a.LineNumber(1).FrameMarker().Load(0).LineNumber(2).Return(1)
	}

	tests := []struct {
		name     string
		assemble func(*bytecode.Assembler)
		want     []shape
	}{
		{"diamond", diamond, []shape{
			{[]int{0, 1, 2}, 2, []int{1, 2}, nil},
			{[]int{3, 4, 5}, -1, []int{2}, []int{0}},
			{[]int{7}, -1, nil, []int{0, 1}},
		}},
		{"loop", loop, []shape{
			{[]int{1, 2}, 2, []int{1, 2}, []int{1}},
			{[]int{3}, 0, []int{0}, []int{0}},
			{[]int{5}, -1, nil, []int{0}},
		}},
		{"monitor", locked, []shape{
			{[]int{0, 1, 2, 3, 4, 5, 6, 7}, -1, nil, nil},
		}},
		{"markers", markers, []shape{
			{[]int{2, 4}, -1, nil, nil},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var a bytecode.Assembler
			tt.assemble(&a)

			ins, err := a.Instructions()
			if err != nil {
				t.Fatalf("Can't assemble: %v", err)
			}

			blocks := Build("m", ins)

			if diff := cmp.Diff(tt.want, shapes(blocks)); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}

			if !ins[0].Op.IsMarker() && !blocks[0].Covers(0) {
				t.Error("Expected entry block to cover index 0")
			}

			for n, b := range blocks {
				if b.Number != n {
					t.Errorf("Got number %d for block %d", b.Number, n)
				}

				if b.Owner != "m" {
					t.Errorf("Got owner %q, expected %q", b.Owner, "m")
				}
			}

			for i, in := range ins {
				covering := 0
				for _, b := range blocks {
					if b.Covers(i) {
						covering++
					}
				}

				want := 1
				if in.Op.IsMarker() {
					want = 0
				}

				if covering != want {
					t.Errorf("Instruction %s is covered by %d blocks, expected %d", in, covering, want)
				}
			}
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	if blocks := Build("m", nil); len(blocks) != 0 {
		t.Errorf("Expected no blocks, got %d", len(blocks))
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	var a bytecode.Assembler

	a.LineNumber(1).Load(0).LineNumber(2).Return(1)

	ins, _ := a.Instructions()
	b := Build("m", ins)[0]

	if off, ok := b.Offset(3); !ok || off != 1 {
		t.Errorf("Got offset %d, %t, expected 1", off, ok)
	}

	if _, ok := b.Offset(2); ok {
		t.Error("Expected marker to have no offset")
	}

	if got := b.Last().Op; got != bytecode.Return {
		t.Errorf("Got last instruction %s, expected return", got)
	}
}
