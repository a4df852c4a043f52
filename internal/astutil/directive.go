// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package astutil

import (
	"go/ast"
	"strings"
)

// Immutable is the directive opting a type into checks.
const Immutable = lazyguard + ":immutable"

// HasDirective reports whether one of the doc comments carries the //name directive.
func HasDirective(name string, docs ...*ast.CommentGroup) bool {
	for _, doc := range docs {
		if doc == nil {
			continue
		}

		for _, c := range doc.List {
			text, ok := strings.CutPrefix(c.Text, "//")
			if !ok {
				continue
			}

			if directive, _, _ := strings.Cut(text, " "); directive == name {
				return true
			}
		}
	}

	return false
}
