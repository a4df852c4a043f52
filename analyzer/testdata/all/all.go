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

package all

type Plain struct{ n int }

func (p *Plain) Inc() {
	p.n++ // want "field Plain.n is mutated after construction: no assignment guard"
}

type Lazy struct{ names []string }

func (l *Lazy) Names() []string {
	if l.names == nil {
		l.names = []string{"a", "b"}
	}

	return l.names
}

type Exported struct{ N int }

func (e *Exported) Inc() { e.N++ }

type Generic[T any] struct{ v T }

func (g *Generic[T]) Set(v T) { g.v = v }
