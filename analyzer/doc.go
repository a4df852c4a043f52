// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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

// Package analyzer implements the lazyguard static analysis pass.
//
// # Overview
//
// LazyGuard reports writes to the unexported fields of immutable types that happen
// after construction, unless they are guarded lazy initializations. A lazy
// initialization only writes a field while it still holds the value every
// constructor leaves there, so all observers see the same computed value.
//
// Types opt in with a directive in their doc comment:
//
//	//lazyguard:immutable
//	type Key struct {
//	    name string
//	    hash int
//	}
//
// Accepted:
//
//	func (k *Key) Hash() int {
//	    if k.hash == 0 {
//	        k.hash = compute(k.name)
//	    }
//	    return k.hash
//	}
//
// Reported:
//
//	func (k *Key) Rename(name string) {
//	    k.name = name // field Key.name is mutated after construction: no assignment guard
//	}
//
// # Constructors
//
// Top-level functions returning T or *T construct T. The values they store
// determine the initial value a guard has to compare against. Construction
// leaving different values makes every later write a violation.
//
// # Package Variables
//
// With -globals, unexported package-level variables are checked the same way.
// Their initial value is set by variable initializers and init functions.
//
// # Suppression
//
// A //nolint:lazyguard comment on the line of the write or in the doc comment
// of the enclosing function disables reports.
package analyzer
