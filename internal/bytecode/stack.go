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

// Producer returns the position in ins of the instruction that pushed operand
// number operand (0 is the top of the stack) consumed by ins[at].
//
// The search simulates the operand stack backwards and never crosses control
// flow; it fails when the value was pushed before ins[0].
// Values duplicated by [Dup] resolve to the producer of the duplicated value.
func Producer(ins []Instruction, at, operand int) (int, bool) {
	if at < 0 || at > len(ins) || operand < 0 {
		return -1, false
	}

	need := operand + 1

	for j := at - 1; j >= 0; j-- {
		in := ins[j]

		switch {
		case in.Op.IsMarker():
			continue

		case in.Op.IsBranch(), in.Op.IsUnconditional():
			return -1, false
		}

		pushes := in.Pushes()
		if need <= pushes {
			if in.Op == Dup {
				return Producer(ins, j, 0)
			}

			return j, true
		}

		need += in.Pops() - pushes
	}

	return -1, false
}

// Source is like [Producer], but follows value-preserving chains: [Cast]s and
// [Load]s of locals stored earlier in ins.
func Source(ins []Instruction, at, operand int) (int, bool) {
	p, ok := Producer(ins, at, operand)

	for steps := 0; ok && steps < len(ins); steps++ {
		switch in := ins[p]; in.Op {
		case Cast:
			p, ok = Producer(ins, p, 0)

		case Load:
			q := lastStore(ins, p, in.Slot)
			if q < 0 {
				return p, true
			}

			p, ok = Producer(ins, q, 0)

		default:
			return p, true
		}
	}

	return p, ok
}

// lastStore returns the position of the last [Store] to slot before at, or -1.
func lastStore(ins []Instruction, at, slot int) int {
	for j := at - 1; j >= 0; j-- {
		if ins[j].Op == Store && ins[j].Slot == slot {
			return j
		}
	}

	return -1
}
