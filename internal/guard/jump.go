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

package guard

import (
	"hash/fnv"
	"slices"

	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
)

// JumpInstruction is a conditional branch together with the instructions of its
// block leading into it.
type JumpInstruction struct {
	Branch       bytecode.Instruction
	Block        int // Number of the block ending with Branch
	Predecessors []bytecode.Instruction
}

// NewJumpInstruction panics when branch is not a conditional branch or predecessors is empty.
func NewJumpInstruction(branch bytecode.Instruction, block int, predecessors []bytecode.Instruction) JumpInstruction {
	contract.Require(branch.Op.IsConditional(), "branch", "must be a conditional branch")
	contract.NotEmpty(predecessors, "predecessors")

	return JumpInstruction{Branch: branch, Block: block, Predecessors: slices.Clone(predecessors)}
}

// Equal compares branch and predecessors by value.
func (j JumpInstruction) Equal(o JumpInstruction) bool {
	return j.Branch.Equal(o.Branch) &&
		slices.EqualFunc(j.Predecessors, o.Predecessors, bytecode.Instruction.Equal)
}

// Hash returns a hash code consistent with [JumpInstruction.Equal].
func (j JumpInstruction) Hash() uint64 {
	b := j.Branch.AppendKey(nil)
	for _, p := range j.Predecessors {
		b = p.AppendKey(b)
	}

	h := fnv.New64a()
	_, _ = h.Write(b)

	return h.Sum64()
}
