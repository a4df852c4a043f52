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

// Package verifier decides whether all writes of a field after construction are
// guarded lazy initializations.
package verifier

import (
	"context"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/lazyguard/internal/alias"
	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/candidate"
	"fillmore-labs.com/lazyguard/internal/contract"
	"fillmore-labs.com/lazyguard/internal/guard"
	"fillmore-labs.com/lazyguard/internal/initval"
	"fillmore-labs.com/lazyguard/internal/reachability"
	"fillmore-labs.com/lazyguard/internal/value"
)

// Verdict is the outcome for one field.
type Verdict uint8

//go:generate go tool stringer -type Verdict,Reason -linecomment
const (
	Unguarded Verdict = iota // unguarded
	Guarded                  // guarded
)

// Reason explains a [Verdict].
type Reason uint8

const (
	Accepted              Reason = iota // guarded
	NotCandidate                        // not a candidate
	NeverWritten                        // never written
	AmbiguousInitialValue               // ambiguous initial value
	MissingGuard                        // no assignment guard
	ForeignValue                        // guard compares against a non-initial value
)

// Write is a field write outside of the constructors.
type Write struct {
	Method      *bytecode.Method
	Instruction bytecode.Instruction
	Guard       guard.AssignmentGuard
	Reason      Reason
}

// Result is the detailed outcome for one field.
type Result struct {
	Field   bytecode.Field
	Verdict Verdict
	Reason  Reason

	// Initial holds the possible values after construction.
	Initial value.Set

	// Guards are the distinct guards protecting the writes.
	Guards []guard.AssignmentGuard

	// Violations are the writes outside the constructors without valid guard.
	Violations []Write
}

// Applicable reports whether the field is a written candidate, so that Verdict is meaningful.
func (r Result) Applicable() bool {
	return r.Reason != NotCandidate && r.Reason != NeverWritten
}

// Verifier evaluates the fields of one class.
type Verifier struct {
	mapping *candidate.Mapping
}

// New returns a verifier for class. It panics when class is nil.
func New(class *bytecode.Class) *Verifier {
	contract.NotNil(class, "class")

	return &Verifier{mapping: candidate.Find(class)}
}

// Evaluate returns the verdict for field of class, and false when no verdict is required
// because the field is not a candidate or never written.
func Evaluate(ctx context.Context, class *bytecode.Class, field string) (Verdict, bool) {
	ctx, task := trace.NewTask(ctx, "LazyGuard")
	defer task.End()

	r := New(class).Verify(ctx, field)

	return r.Verdict, r.Applicable()
}

// Verify computes the result for the named field. It panics when field is blank.
//
// A field is [Guarded] when its initial value is unambiguous and every write outside
// the constructors is protected by a guard comparing against that value.
func (v *Verifier) Verify(ctx context.Context, field string) Result {
	contract.NotBlank(field, "field")

	defer trace.StartRegion(ctx, "Verify").End()

	f, ok := v.mapping.Candidate(field)
	if !ok {
		return Result{Reason: NotCandidate}
	}

	r := Result{Field: f}

	initialisers := v.mapping.Initialisers(field)
	if len(initialisers) == 0 {
		r.Reason = NeverWritten

		return r
	}

	class := v.mapping.Class()

	ref := f.Ref(class.Name)

	r.Initial = initval.Find(ctx, class, f)
	if r.Initial.Ambiguous() {
		r.Reason = AmbiguousInitialValue

		for _, m := range initialisers {
			if m.Initializes(ref.Static) {
				continue
			}

			r.addWrites(m, ref)
		}

		return r
	}

	for _, m := range initialisers {
		if m.Initializes(ref.Static) {
			continue
		}

		r.checkWrites(ctx, m, ref, f.Type)
	}

	if len(r.Violations) > 0 {
		r.Reason = r.Violations[0].Reason

		return r
	}

	r.Verdict, r.Reason = Guarded, Accepted

	return r
}

// checkWrites finds the guard of every write to ref in m.
func (r *Result) checkWrites(ctx context.Context, m *bytecode.Method, ref bytecode.FieldRef, typ bytecode.Type) {
	g := reachability.NewGraph(ctx, m)
	target := guard.Target{Field: ref, Type: typ, Alias: findAlias(g, ref)}

	for _, b := range g.Blocks() {
		for offset, ins := range b.Instructions {
			if !ins.Writes(ref) {
				continue
			}

			at := guard.Location{Block: b.Number, Offset: offset}

			switch ag := guard.Find(g, at, target, r.Initial); {
			case !ag.IsGuard():
				r.Violations = append(r.Violations, Write{Method: m, Instruction: ins, Guard: ag, Reason: MissingGuard})

			case !r.Initial.Contains(ag.Value()):
				r.Violations = append(r.Violations, Write{Method: m, Instruction: ins, Guard: ag, Reason: ForeignValue})

			case !slices.ContainsFunc(r.Guards, ag.Equal):
				r.Guards = append(r.Guards, ag)
			}
		}
	}
}

// addWrites records every write to ref in m as unguardable.
func (r *Result) addWrites(m *bytecode.Method, ref bytecode.FieldRef) {
	for _, ins := range m.Instructions {
		if ins.Writes(ref) {
			r.Violations = append(r.Violations, Write{Method: m, Instruction: ins, Guard: guard.NoGuard, Reason: AmbiguousInitialValue})
		}
	}
}

// findAlias returns the first alias of ref in block order.
func findAlias(g *reachability.Graph, ref bytecode.FieldRef) alias.Alias {
	for _, b := range g.Blocks() {
		if a := alias.Find(ref, b); a.Exists {
			return a
		}
	}

	return alias.None
}
