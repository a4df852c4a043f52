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

// Package contract reports precondition failures of the analysis core.
//
// A violation is a caller bug, not an analysis outcome: it panics with a
// *[Violation] naming the offending argument and is never retried.
package contract

import "fmt"

// Violation is the panic value of a failed precondition.
type Violation struct {
	Arg    string // The offending argument
	Reason string // What was expected of it
}

func (v *Violation) Error() string {
	return fmt.Sprintf("precondition violated: %s %s", v.Arg, v.Reason)
}

// Require panics with a *[Violation] for arg when ok is false.
func Require(ok bool, arg, reason string) {
	if !ok {
		panic(&Violation{Arg: arg, Reason: reason})
	}
}

// NotNil panics when p is nil.
func NotNil[T any](p *T, arg string) {
	Require(p != nil, arg, "must not be nil")
}

// NotEmpty panics when s has no elements.
func NotEmpty[S ~[]E, E any](s S, arg string) {
	Require(len(s) > 0, arg, "must not be empty")
}

// NotBlank panics when s is the empty string.
func NotBlank(s, arg string) {
	Require(s != "", arg, "must not be blank")
}
