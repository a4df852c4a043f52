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

package lower

import (
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/ssa"

	"fillmore-labs.com/lazyguard/internal/bytecode"
)

// body is a lowered function, shared by all classes it does not construct.
type body struct {
	fn           *ssa.Function
	name         string
	params       []bytecode.Type
	results      []bytecode.Type
	maxLocals    int
	instructions []bytecode.Instruction
}

// writes reports whether b writes an instance field of owner.
func (b body) writes(owner string) bool {
	return slices.ContainsFunc(b.instructions, func(in bytecode.Instruction) bool {
		return in.Op == bytecode.PutField && !in.Field.Static && in.Field.Owner == owner
	})
}

func (b body) method(kind bytecode.MethodKind) *bytecode.Method {
	return &bytecode.Method{
		Name:         b.name,
		Kind:         kind,
		Params:       b.params,
		Results:      b.results,
		MaxLocals:    b.maxLocals,
		Instructions: b.instructions,
		Pos:          b.fn.Pos(),
	}
}

// lowerer translates one function.
type lowerer struct {
	fn     *ssa.Function
	scope  scope
	fields *fieldIndex
	asm    bytecode.Assembler
	slots  map[ssa.Value]int
	labels []bytecode.BranchLabel // Per block index
}

// trampoline carries the φ moves of a conditional edge.
type trampoline struct {
	label    bytecode.BranchLabel
	from, to *ssa.BasicBlock
}

// lowerFunction translates fn. With constructs set, only the construction of objects
// of that type allocated by fn is kept, see [scope].
func lowerFunction(fn *ssa.Function, fields *fieldIndex, constructs *types.Named) (body, error) {
	l := &lowerer{
		fn:     fn,
		scope:  scope{constructs: constructs},
		fields: fields,
		slots:  make(map[ssa.Value]int),
		labels: make([]bytecode.BranchLabel, len(fn.Blocks)),
	}

	l.allocate()

	for i := range fn.Blocks {
		l.labels[i] = l.asm.NewLabel()
	}

	for i, b := range fn.Blocks {
		var next *ssa.BasicBlock
		if i+1 < len(fn.Blocks) {
			next = fn.Blocks[i+1]
		}

		l.asm.Mark(l.labels[b.Index])
		l.block(b, next)
	}

	instructions, err := l.asm.Instructions()
	if err != nil {
		return body{}, err
	}

	name := fn.Name()
	if fn.Pkg != nil {
		name = fn.RelString(fn.Pkg.Pkg)
	}

	params := make([]bytecode.Type, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, typeOf(p.Type()))
	}

	return body{
		fn:           fn,
		name:         name,
		params:       params,
		results:      typesOf(fn.Signature.Results()),
		maxLocals:    len(l.slots),
		instructions: instructions,
	}, nil
}

// allocate assigns a local slot to every parameter, free variable and value.
func (l *lowerer) allocate() {
	for _, p := range l.fn.Params {
		l.slots[p] = len(l.slots)
	}

	for _, fv := range l.fn.FreeVars {
		l.slots[fv] = len(l.slots)
	}

	for _, b := range l.fn.Blocks {
		for _, instr := range b.Instrs {
			if v, ok := instr.(ssa.Value); ok {
				l.slots[v] = len(l.slots)
			}
		}
	}
}

func (l *lowerer) block(b *ssa.BasicBlock, next *ssa.BasicBlock) {
	for _, instr := range b.Instrs {
		if pos := instr.Pos(); pos.IsValid() {
			l.asm.At(pos)
		}

		l.instruction(instr, b, next)
	}
}

func (l *lowerer) instruction(instr ssa.Instruction, b, next *ssa.BasicBlock) {
	switch instr := instr.(type) {
	case *ssa.Phi:
		// Moved by the predecessors

	case *ssa.DebugRef:
		l.asm.LineNumber(l.fn.Prog.Fset.Position(instr.Pos()).Line)

	case *ssa.UnOp:
		l.unOp(instr)

	case *ssa.BinOp:
		if l.fused(instr) {
			return
		}

		l.push(instr.X)
		l.push(instr.Y)
		l.asm.Other(2, 1)
		l.store(instr)

	case *ssa.Store:
		l.storeTo(instr)

	case *ssa.FieldAddr:
		// Addresses are opaque, uses resolve them
		l.asm.Other(0, 1)
		l.store(instr)

	case *ssa.IndexAddr:
		l.push(instr.Index)
		l.asm.Other(1, 1)
		l.store(instr)

	case *ssa.ChangeType:
		l.cast(instr.X, instr)

	case *ssa.MakeInterface:
		l.cast(instr.X, instr)

	case *ssa.ChangeInterface:
		l.cast(instr.X, instr)

	case *ssa.Call:
		l.call(instr.Common(), instr)

	case *ssa.Defer:
		l.call(instr.Common(), nil)

	case *ssa.Go:
		l.call(instr.Common(), nil)

	case *ssa.If:
		l.branch(instr, b, next)

	case *ssa.Jump:
		l.moves(b, b.Succs[0])
		l.jump(b.Succs[0], next)

	case *ssa.Return:
		for _, r := range instr.Results {
			l.push(r)
		}

		l.asm.Return(len(instr.Results))

	case *ssa.Panic:
		l.push(instr.X)
		l.asm.Throw()

	default:
		l.generic(instr)
	}
}

func (l *lowerer) unOp(instr *ssa.UnOp) {
	switch instr.Op {
	case token.MUL:
		if acc, ok := l.fields.root(l.scope, instr.X); ok {
			l.object(acc)
			l.asm.GetField(acc.ref)

			if acc.nested {
				l.asm.Other(1, 1)
			}

			l.store(instr)

			return
		}

	case token.NOT:
		if l.fused(instr) {
			return
		}
	}

	l.push(instr.X)
	l.asm.Other(1, 1)
	l.store(instr)
}

func (l *lowerer) storeTo(instr *ssa.Store) {
	acc, ok := l.fields.root(l.scope, instr.Addr)
	if !ok {
		l.push(instr.Addr)
		l.push(instr.Val)
		l.asm.Other(2, 0)

		return
	}

	l.object(acc)
	l.push(instr.Val)

	if acc.nested {
		// Part of the field changes, its new value is unknown
		l.asm.Other(1, 1)
	}

	l.asm.PutField(acc.ref)
}

func (l *lowerer) cast(x ssa.Value, v ssa.Value) {
	l.push(x)
	l.asm.Cast()
	l.store(v)
}

func (l *lowerer) call(common *ssa.CallCommon, v *ssa.Call) {
	callee := common.StaticCallee()

	op, locking := lockOp(callee)
	if locking && v != nil && op != bytecode.Invoke {
		l.load(common.Args[0])

		if op == bytecode.MonitorEnter {
			l.asm.MonitorEnter()
		} else {
			l.asm.MonitorExit()
		}

		return
	}

	n := 0

	var name string

	switch {
	case common.IsInvoke():
		name = common.Method.Name()
		l.push(common.Value)
		n++

	case callee != nil:
		name = callee.String()

	default:
		name = common.Value.Name()
		l.push(common.Value)
		n++
	}

	for i, arg := range common.Args {
		if locking && i == 0 {
			// Synchronization state is not a field value
			l.load(arg)
		} else {
			l.push(arg)
		}

		n++
	}

	results := 0
	if v != nil && !isEmpty(v.Type()) {
		results = 1
	}

	l.asm.Invoke(name, n, results)

	if results > 0 {
		l.store(v)
	}
}

// lockOp classifies methods of the sync package types. Locking methods of sync.Mutex
// and sync.RWMutex become monitor instructions. No sync method counts as a write of its receiver.
func lockOp(callee *ssa.Function) (bytecode.Opcode, bool) {
	if callee == nil || callee.Signature.Recv() == nil {
		return bytecode.Invoke, false
	}

	named := pointee(callee.Signature.Recv().Type())
	if named == nil || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != "sync" {
		return bytecode.Invoke, false
	}

	switch named.Obj().Name() {
	case "Mutex", "RWMutex":
	default:
		return bytecode.Invoke, true
	}

	switch callee.Name() {
	case "Lock", "RLock":
		return bytecode.MonitorEnter, true

	case "Unlock", "RUnlock":
		return bytecode.MonitorExit, true

	default:
		return bytecode.Invoke, true
	}
}

func (l *lowerer) generic(instr ssa.Instruction) {
	n := 0
	for _, op := range instr.Operands(nil) {
		if op == nil || *op == nil {
			continue
		}

		l.push(*op)
		n++
	}

	v, ok := instr.(ssa.Value)
	if !ok {
		l.asm.Other(n, 0)
		return
	}

	l.asm.Other(n, 1)
	l.store(v)
}

// push loads v as an operand of an instruction the analysis does not interpret.
// Field addresses flowing there may be written through, so they count as writes.
func (l *lowerer) push(v ssa.Value) {
	if acc, ok := l.fields.root(l.scope, v); ok {
		l.object(acc)
		l.asm.Other(0, 1)
		l.asm.PutField(acc.ref)
	}

	l.load(v)
}

// object pushes the owner of an instance field.
func (l *lowerer) object(acc access) {
	if acc.object != nil {
		l.load(acc.object)
	}
}

func (l *lowerer) load(v ssa.Value) {
	switch v := v.(type) {
	case *ssa.Const:
		switch {
		case v.IsNil():
			l.asm.Null()

		case v.Value != nil:
			l.asm.Const(v.Value)

		default:
			l.asm.Other(0, 1)
		}

		return
	}

	if slot, ok := l.slots[v]; ok {
		l.asm.Load(slot)
		return
	}

	l.asm.Other(0, 1)
}

func (l *lowerer) store(v ssa.Value) {
	l.asm.Store(l.slots[v])
}

func isEmpty(t types.Type) bool {
	tuple, ok := t.(*types.Tuple)
	return ok && tuple.Len() == 0
}
