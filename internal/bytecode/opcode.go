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

// Package bytecode models compiled method bodies as stack-machine instruction sequences.
package bytecode

// Opcode is the operation kind of an [Instruction].
type Opcode uint8

//go:generate go tool stringer -type Opcode,Cond -linecomment
const (
	// Label marks a branch target. Markers occupy an index but belong to no block.
	Label Opcode = iota // label

	// Line marks the start of a source line.
	Line // line

	// Frame records stack map information.
	Frame // frame

	// Const pushes the literal constant [Instruction.Const].
	Const // const

	// Null pushes the null reference.
	Null // null

	// Load pushes local [Instruction.Slot].
	Load // load

	// Store pops into local [Instruction.Slot].
	Store // store

	// Dup duplicates the top of the stack.
	Dup // dup

	// Cast converts the top of the stack without changing its value.
	Cast // cast

	// GetField reads [Instruction.Field], popping the owning object for instance fields.
	GetField // getfield

	// PutField writes [Instruction.Field], popping the value and, for instance fields, the owning object.
	PutField // putfield

	// If branches to [Instruction.Target] comparing the top of the stack against the zero value.
	If // if

	// IfCmp branches to [Instruction.Target] comparing the two topmost values.
	IfCmp // ifcmp

	// Goto branches unconditionally to [Instruction.Target].
	Goto // goto

	// Return leaves the method with [Instruction.Args] results.
	Return // return

	// Throw leaves the method abruptly.
	Throw // throw

	// Invoke calls [Instruction.Name] with [Instruction.Args] arguments and [Instruction.Results] results.
	Invoke // invoke

	// MonitorEnter acquires the lock on the popped object.
	MonitorEnter // monitorenter

	// MonitorExit releases the lock on the popped object.
	MonitorExit // monitorexit

	// Other is any operation with [Instruction.Args] operands and [Instruction.Results] results.
	Other // other
)

// IsMarker reports whether the opcode is a structural marker.
func (o Opcode) IsMarker() bool {
	return o <= Frame
}

// IsBranch reports whether the opcode transfers control to [Instruction.Target].
func (o Opcode) IsBranch() bool {
	switch o {
	case If, IfCmp, Goto:
		return true

	default:
		return false
	}
}

// IsConditional reports whether the opcode is a conditional branch.
func (o Opcode) IsConditional() bool {
	return o == If || o == IfCmp
}

// IsUnconditional reports whether control never falls through to the next instruction.
func (o Opcode) IsUnconditional() bool {
	switch o {
	case Goto, Return, Throw:
		return true

	default:
		return false
	}
}

// Cond is the comparison of a conditional branch.
type Cond uint8

const (
	// Always is the condition of non-conditional instructions.
	Always Cond = iota // always

	Eq // eq
	Ne // ne
	Lt // lt
	Ge // ge
	Gt // gt
	Le // le
)

// Negate returns the complementary condition.
func (c Cond) Negate() Cond {
	switch c {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Lt:
		return Ge
	case Ge:
		return Lt
	case Gt:
		return Le
	case Le:
		return Gt
	default:
		return c
	}
}

// IsEquality reports whether the condition tests for equality or inequality.
func (c Cond) IsEquality() bool {
	return c == Eq || c == Ne
}
