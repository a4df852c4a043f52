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

package guard_test

import (
	"errors"
	"go/constant"
	"testing"

	"fillmore-labs.com/lazyguard/internal/alias"
	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/contract"
	. "fillmore-labs.com/lazyguard/internal/guard"
	"fillmore-labs.com/lazyguard/internal/testsource"
	"fillmore-labs.com/lazyguard/internal/value"
)

func jump(tb testing.TB, target int) JumpInstruction {
	tb.Helper()

	hash := testsource.Hash.Ref(testsource.Owner)
	predecessors := []bytecode.Instruction{
		{Index: 0, Op: bytecode.Load},
		{Index: 1, Op: bytecode.GetField, Field: hash},
	}
	branch := bytecode.Instruction{Index: 2, Op: bytecode.If, Cond: bytecode.Ne, Target: target}

	return NewJumpInstruction(branch, 0, predecessors)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	hash := testsource.Hash.Ref(testsource.Owner)
	zero := value.Literal(constant.MakeInt64(0))

	a := New(jump(t, 7), hash, alias.None, zero)
	b := New(jump(t, 7), hash, alias.None, zero)

	// Different positions, same instructions
	moved := jump(t, 7)
	for i := range moved.Predecessors {
		moved.Predecessors[i].Index += 10
	}
	c := New(moved, hash, alias.None, zero)

	for _, o := range []AssignmentGuard{b, c} {
		if !a.Equal(o) {
			t.Errorf("Expected %s to equal %s", a, o)
		}

		if a.Hash() != o.Hash() {
			t.Errorf("Expected equal hash codes for %s and %s", a, o)
		}
	}

	if d := New(jump(t, 8), hash, alias.None, zero); a.Equal(d) {
		t.Errorf("Expected %s to differ from %s", a, d)
	}

	if a.Equal(NoGuard) || !NoGuard.Equal(NoGuard) {
		t.Error("Expected NoGuard to only equal itself")
	}

	if NoGuard.IsGuard() || !a.IsGuard() {
		t.Error("Expected only constructed guards to be guards")
	}
}

func TestPreconditions(t *testing.T) {
	t.Parallel()

	hash := testsource.Hash.Ref(testsource.Owner)
	branch := bytecode.Instruction{Op: bytecode.If, Cond: bytecode.Eq}
	load := []bytecode.Instruction{{Op: bytecode.Load}}

	tests := []struct {
		name string
		arg  string
		call func()
	}{
		{"no predecessors", "predecessors", func() { NewJumpInstruction(branch, 0, nil) }},
		{"unconditional", "branch", func() { NewJumpInstruction(bytecode.Instruction{Op: bytecode.Goto}, 0, load) }},
		{"no field", "field", func() {
			New(NewJumpInstruction(branch, 0, load), bytecode.FieldRef{}, alias.None, value.Marker(value.Null))
		}},
		{"empty jump", "predecessors", func() { New(JumpInstruction{}, hash, alias.None, value.Marker(value.Null)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				err, _ := recover().(error)

				var v *contract.Violation
				if !errors.As(err, &v) {
					t.Fatalf("Expected precondition violation, got %v", err)
				}

				if v.Arg != tt.arg {
					t.Errorf("Got violation of %q, expected %q", v.Arg, tt.arg)
				}
			}()

			tt.call()
		})
	}
}
