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

package a

import "sync"

//lazyguard:immutable
type Key struct {
	name string
	hash int
}

func NewKey(name string) *Key {
	return &Key{name: name}
}

func compute(s string) int { return len(s) + 1 }

func (k *Key) Hash() int {
	if k.hash == 0 {
		k.hash = compute(k.name)
	}

	return k.hash
}

func (k *Key) Reset() {
	if k.hash == 1 {
		k.hash = 0 // want "field Key.hash is mutated after construction: guard compares against a non-initial value"
	}
}

func (k *Key) Rename(name string) {
	k.name = name // want "field Key.name is mutated after construction: ambiguous initial value"
}

func (k *Key) With(name string) *Key {
	c := *k
	c.name = name

	return &c
}

// Counter claims to be immutable.
//
//lazyguard:immutable
type Counter struct{ n int }

func (c *Counter) Inc() {
	c.n++ // want "field Counter.n is mutated after construction: no assignment guard"
}

func (c *Counter) Set(n int) {
	c.n = n //nolint:lazyguard
}

//nolint:lazyguard
func (c *Counter) Clear() {
	c.n = 0
}

// Recycle returns c in its initial state.
func Recycle(c *Counter) *Counter {
	c.n = 0 // want "field Counter.n is mutated after construction: no assignment guard"

	return c
}

//lazyguard:immutable
type Registry struct {
	mu      sync.Mutex
	entries map[string]int
}

func (r *Registry) Lookup(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]int)
	}

	return r.entries[name]
}

type Plain struct{ n int }

func (p *Plain) Inc() { p.n++ }
