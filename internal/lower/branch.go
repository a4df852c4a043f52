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

	"golang.org/x/tools/go/ssa"

	"fillmore-labs.com/lazyguard/internal/bytecode"
)

// fused reports whether v is a condition emitted together with the branch ending its block.
func (l *lowerer) fused(v ssa.Instruction) bool {
	switch v := v.(type) {
	case *ssa.BinOp:
		if v.Op != token.EQL && v.Op != token.NEQ {
			return false
		}

	case *ssa.UnOp:
		if v.Op != token.NOT {
			return false
		}

	default:
		return false
	}

	b := v.Block()
	branch, ok := b.Instrs[len(b.Instrs)-1].(*ssa.If)
	if !ok || branch.Cond != v.(ssa.Value) {
		return false
	}

	for _, r := range *v.(ssa.Value).Referrers() {
		switch r.(type) {
		case *ssa.If:
			if r != branch {
				return false
			}

		case *ssa.DebugRef:

		default:
			return false
		}
	}

	return true
}

// branch lowers a conditional jump. The true edge falls through, the false edge is taken.
func (l *lowerer) branch(instr *ssa.If, b, next *ssa.BasicBlock) {
	then, els := b.Succs[0], b.Succs[1]

	if l.initGuard(instr) {
		// Lowered as a single run of the initializer
		l.push(instr.Cond)
		l.asm.Other(1, 0)
		l.moves(b, els)
		l.jump(els, next)

		return
	}

	var pending []trampoline

	target := l.labels[els.Index]
	if hasPhis(els) {
		t := trampoline{label: l.asm.NewLabel(), from: b, to: els}
		pending = append(pending, t)
		target = t.label
	}

	switch c := instr.Cond.(type) {
	case *ssa.BinOp:
		if !l.fused(c) {
			l.push(c)
			l.asm.If(bytecode.Eq, target)

			break
		}

		l.push(c.X)
		l.push(c.Y)

		if c.Op == token.EQL {
			l.asm.IfCmp(bytecode.Ne, target)
		} else {
			l.asm.IfCmp(bytecode.Eq, target)
		}

	case *ssa.UnOp:
		if !l.fused(c) {
			l.push(c)
			l.asm.If(bytecode.Eq, target)

			break
		}

		l.push(c.X)
		l.asm.If(bytecode.Ne, target)

	default:
		l.push(c)
		l.asm.If(bytecode.Eq, target)
	}

	l.moves(b, then)

	if len(pending) == 0 {
		l.jump(then, next)

		return
	}

	l.asm.Goto(l.labels[then.Index])

	for _, t := range pending {
		l.asm.Mark(t.label)
		l.moves(t.from, t.to)
		l.asm.Goto(l.labels[t.to.Index])
	}
}

// initGuard reports whether instr is the once-only check of the package initializer.
func (l *lowerer) initGuard(instr *ssa.If) bool {
	if l.fn.Synthetic != "package initializer" {
		return false
	}

	load, ok := instr.Cond.(*ssa.UnOp)
	if !ok || load.Op != token.MUL {
		return false
	}

	g, ok := load.X.(*ssa.Global)

	return ok && g.Name() == "init$guard"
}

// jump continues at to, falling through when it is emitted next.
func (l *lowerer) jump(to, next *ssa.BasicBlock) {
	if to == next {
		return
	}

	l.asm.Goto(l.labels[to.Index])
}

// moves assigns the φ-nodes of to for the edge from b.
// All incoming values are pushed before any φ is stored.
func (l *lowerer) moves(b, to *ssa.BasicBlock) {
	edge := -1

	for i, pred := range to.Preds {
		if pred == b {
			edge = i
			break
		}
	}

	if edge < 0 {
		return
	}

	var phis []*ssa.Phi

	for _, instr := range to.Instrs {
		phi, ok := instr.(*ssa.Phi)
		if !ok {
			break
		}

		l.push(phi.Edges[edge])
		phis = append(phis, phi)
	}

	for i := len(phis) - 1; i >= 0; i-- {
		l.store(phis[i])
	}
}

func hasPhis(b *ssa.BasicBlock) bool {
	if len(b.Instrs) == 0 {
		return false
	}

	_, ok := b.Instrs[0].(*ssa.Phi)

	return ok
}
