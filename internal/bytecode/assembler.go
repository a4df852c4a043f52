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
	"errors"
	"fmt"
	"go/constant"
	"go/token"
)

// ErrUnboundLabel is returned when a branch refers to a label that was never marked.
var ErrUnboundLabel = errors.New("unbound label")

// BranchLabel names a branch target of an [Assembler].
type BranchLabel int

// Assembler builds instruction sequences with symbolic branch targets.
//
// The zero value is ready to use.
type Assembler struct {
	instructions []Instruction
	bound        []int // Marker index per label, -1 while unbound
	pos          token.Pos
}

// NewLabel allocates a fresh unbound label.
func (a *Assembler) NewLabel() BranchLabel {
	a.bound = append(a.bound, -1)
	return BranchLabel(len(a.bound) - 1)
}

// Mark binds l to the current position by emitting a [Label] marker.
func (a *Assembler) Mark(l BranchLabel) *Assembler {
	a.bound[l] = len(a.instructions)
	return a.emit(Instruction{Op: Label})
}

// At sets the source position of subsequently emitted instructions.
func (a *Assembler) At(pos token.Pos) *Assembler {
	a.pos = pos
	return a
}

// Len returns the number of instructions emitted so far.
func (a *Assembler) Len() int {
	return len(a.instructions)
}

// LineNumber emits a [Line] marker.
func (a *Assembler) LineNumber(line int) *Assembler {
	return a.emit(Instruction{Op: Line, Line: line})
}

// FrameMarker emits a [Frame] marker.
func (a *Assembler) FrameMarker() *Assembler {
	return a.emit(Instruction{Op: Frame})
}

// Const pushes a literal constant.
func (a *Assembler) Const(v constant.Value) *Assembler {
	return a.emit(Instruction{Op: Const, Const: v})
}

// Int pushes an integer constant.
func (a *Assembler) Int(v int64) *Assembler {
	return a.Const(constant.MakeInt64(v))
}

// Null pushes the null reference.
func (a *Assembler) Null() *Assembler {
	return a.emit(Instruction{Op: Null})
}

// Load pushes a local variable.
func (a *Assembler) Load(slot int) *Assembler {
	return a.emit(Instruction{Op: Load, Slot: slot})
}

// Store pops into a local variable.
func (a *Assembler) Store(slot int) *Assembler {
	return a.emit(Instruction{Op: Store, Slot: slot})
}

// Dup duplicates the top of the stack.
func (a *Assembler) Dup() *Assembler {
	return a.emit(Instruction{Op: Dup})
}

// Cast converts the top of the stack.
func (a *Assembler) Cast() *Assembler {
	return a.emit(Instruction{Op: Cast})
}

// GetField reads a field.
func (a *Assembler) GetField(f FieldRef) *Assembler {
	return a.emit(Instruction{Op: GetField, Field: f})
}

// PutField writes a field.
func (a *Assembler) PutField(f FieldRef) *Assembler {
	return a.emit(Instruction{Op: PutField, Field: f})
}

// If branches to l when the top of the stack compares to zero as c.
func (a *Assembler) If(c Cond, l BranchLabel) *Assembler {
	return a.emit(Instruction{Op: If, Cond: c, Target: -1 - int(l)})
}

// IfCmp branches to l when the two topmost values compare as c.
func (a *Assembler) IfCmp(c Cond, l BranchLabel) *Assembler {
	return a.emit(Instruction{Op: IfCmp, Cond: c, Target: -1 - int(l)})
}

// Goto branches unconditionally to l.
func (a *Assembler) Goto(l BranchLabel) *Assembler {
	return a.emit(Instruction{Op: Goto, Target: -1 - int(l)})
}

// Return leaves the method with n results.
func (a *Assembler) Return(n int) *Assembler {
	return a.emit(Instruction{Op: Return, Args: n})
}

// Throw leaves the method abruptly.
func (a *Assembler) Throw() *Assembler {
	return a.emit(Instruction{Op: Throw})
}

// Invoke calls name.
func (a *Assembler) Invoke(name string, args, results int) *Assembler {
	return a.emit(Instruction{Op: Invoke, Name: name, Args: args, Results: results})
}

// MonitorEnter acquires a lock.
func (a *Assembler) MonitorEnter() *Assembler {
	return a.emit(Instruction{Op: MonitorEnter})
}

// MonitorExit releases a lock.
func (a *Assembler) MonitorExit() *Assembler {
	return a.emit(Instruction{Op: MonitorExit})
}

// Other emits an opaque operation.
func (a *Assembler) Other(args, results int) *Assembler {
	return a.emit(Instruction{Op: Other, Args: args, Results: results})
}

// Instructions resolves all branch targets and returns the assembled sequence.
func (a *Assembler) Instructions() ([]Instruction, error) {
	result := make([]Instruction, len(a.instructions))

	for i, ins := range a.instructions {
		if ins.Op.IsBranch() {
			l := -1 - ins.Target
			if l < 0 || l >= len(a.bound) || a.bound[l] < 0 {
				return nil, fmt.Errorf("instruction %d: label %d: %w", i, l, ErrUnboundLabel)
			}

			ins.Target = a.bound[l]
		}

		result[i] = ins
	}

	return result, nil
}

func (a *Assembler) emit(ins Instruction) *Assembler {
	ins.Index = len(a.instructions)
	ins.Pos = a.pos
	a.instructions = append(a.instructions, ins)

	return a
}
