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
	"fmt"
	"go/constant"
	"go/token"
	"strconv"
)

// FieldRef identifies the field an instruction reads or writes.
type FieldRef struct {
	Owner, Name string
	Static      bool
}

func (f FieldRef) String() string {
	return f.Owner + "." + f.Name
}

// Instruction is one operation of a method body.
type Instruction struct {
	Index  int    // Position within the method body
	Op     Opcode // Operation kind
	Cond   Cond   // Comparison of conditional branches
	Target int    // Branch target index
	Slot   int    // Local variable slot
	Line   int    // Source line of [Line] markers

	Field FieldRef       // Field of [GetField] and [PutField]
	Const constant.Value // Literal of [Const]
	Name  string         // Callee of [Invoke]

	Args, Results int // Stack effect of [Invoke], [Return] and [Other]

	Pos token.Pos // Source position, if known
}

// Pops returns the number of stack values the instruction consumes.
func (i Instruction) Pops() int {
	switch i.Op {
	case Store, Dup, Cast, If, Throw, MonitorEnter, MonitorExit:
		return 1

	case GetField:
		if i.Field.Static {
			return 0
		}

		return 1

	case PutField:
		if i.Field.Static {
			return 1
		}

		return 2

	case IfCmp:
		return 2

	case Return, Invoke, Other:
		return i.Args

	default:
		return 0
	}
}

// Pushes returns the number of stack values the instruction produces.
func (i Instruction) Pushes() int {
	switch i.Op {
	case Const, Null, Load, Cast, GetField:
		return 1

	case Dup:
		return 2

	case Invoke, Other:
		return i.Results

	default:
		return 0
	}
}

// Reads reports whether the instruction reads field f.
func (i Instruction) Reads(f FieldRef) bool {
	return i.Op == GetField && i.Field == f
}

// Writes reports whether the instruction writes field f.
func (i Instruction) Writes(f FieldRef) bool {
	return i.Op == PutField && i.Field == f
}

// Equal reports whether both instructions have the same opcode and operands.
// Index and source position are ignored.
func (i Instruction) Equal(o Instruction) bool {
	return i.Op == o.Op &&
		i.Cond == o.Cond &&
		i.Target == o.Target &&
		i.Slot == o.Slot &&
		i.Line == o.Line &&
		i.Field == o.Field &&
		i.Name == o.Name &&
		i.Args == o.Args &&
		i.Results == o.Results &&
		sameConstant(i.Const, o.Const)
}

// AppendKey appends a fingerprint of opcode and operands, consistent with [Instruction.Equal].
func (i Instruction) AppendKey(b []byte) []byte {
	b = append(b, byte(i.Op), byte(i.Cond))
	b = strconv.AppendInt(b, int64(i.Target), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(i.Slot), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(i.Line), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(i.Args), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(i.Results), 10)
	b = append(b, ',')
	b = append(b, i.Field.Owner...)
	b = append(b, '.')
	b = append(b, i.Field.Name...)
	b = strconv.AppendBool(b, i.Field.Static)
	b = append(b, ',')
	b = append(b, i.Name...)
	b = append(b, ',')
	b = appendConstant(b, i.Const)

	return append(b, ';')
}

func (i Instruction) String() string {
	switch i.Op {
	case Const:
		return fmt.Sprintf("%d: const %s", i.Index, i.Const)

	case Load, Store:
		return fmt.Sprintf("%d: %s %d", i.Index, i.Op, i.Slot)

	case GetField, PutField:
		return fmt.Sprintf("%d: %s %s", i.Index, i.Op, i.Field)

	case If, IfCmp:
		return fmt.Sprintf("%d: %s %s -> %d", i.Index, i.Op, i.Cond, i.Target)

	case Goto:
		return fmt.Sprintf("%d: goto %d", i.Index, i.Target)

	case Line:
		return fmt.Sprintf("%d: line %d", i.Index, i.Line)

	case Invoke:
		return fmt.Sprintf("%d: invoke %s/%d", i.Index, i.Name, i.Args)

	default:
		return fmt.Sprintf("%d: %s", i.Index, i.Op)
	}
}

func sameConstant(a, b constant.Value) bool {
	switch {
	case a == nil || b == nil:
		return a == nil && b == nil

	case a.Kind() != b.Kind():
		return false

	case a.Kind() == constant.Unknown:
		return true

	default:
		return constant.Compare(a, token.EQL, b)
	}
}

func appendConstant(b []byte, c constant.Value) []byte {
	if c == nil {
		return append(b, '-')
	}

	b = strconv.AppendInt(b, int64(c.Kind()), 10)
	b = append(b, ':')

	switch c.Kind() {
	case constant.Float:
		f, _ := constant.Float64Val(c)
		return strconv.AppendFloat(b, f, 'g', -1, 64)

	case constant.Complex:
		re, _ := constant.Float64Val(constant.Real(c))
		im, _ := constant.Float64Val(constant.Imag(c))
		b = strconv.AppendFloat(b, re, 'g', -1, 64)
		b = append(b, 'i')

		return strconv.AppendFloat(b, im, 'g', -1, 64)

	default:
		return append(b, c.ExactString()...)
	}
}
