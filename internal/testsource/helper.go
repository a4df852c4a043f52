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

// Package testsource provides utilities for building analysis inputs in tests.
//
// It is designed to simplify testing of the lazyguard analyzer by handling common
// boilerplate code for parsing, type-checking and SSA construction of Go source files,
// and by assembling method bodies for well-known lazy initialization idioms.
package testsource

import (
	"cmp"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
	"testing"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

const testpkg = "test"

// Parse parses the Go source file src of package `test`.
func Parse(tb testing.TB, src string) (*token.FileSet, *ast.File) {
	tb.Helper()

	const filename = "test.go"

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return fset, f
}

// Build type-checks src and constructs its SSA form.
//
// Returns:
//   - *ssa.Package: The built package.
//   - []*ssa.Function: All source functions, including function literals, in source order.
func Build(tb testing.TB, src string) (*ssa.Package, []*ssa.Function) {
	tb.Helper()

	fset, f := Parse(tb, src)

	conf := &types.Config{Importer: importer.Default()}
	pkg := types.NewPackage(testpkg, testpkg)

	ssaPkg, _, err := ssautil.BuildPackage(conf, fset, pkg, []*ast.File{f}, ssa.SanityCheckFunctions)
	if err != nil {
		tb.Fatalf("Failed to build SSA: %v", err)
	}

	var funcs []*ssa.Function

	for fn := range ssautil.AllFunctions(ssaPkg.Prog) {
		if fn.Pkg != ssaPkg || fn.Synthetic != "" {
			continue
		}

		funcs = append(funcs, fn)
	}

	slices.SortFunc(funcs, func(a, b *ssa.Function) int { return cmp.Compare(a.Pos(), b.Pos()) })

	return ssaPkg, funcs
}

// TypeName looks up the named type in pkg.
func TypeName(tb testing.TB, pkg *ssa.Package, name string) *types.TypeName {
	tb.Helper()

	tn, ok := pkg.Pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		tb.Fatalf("Type %s not found", name)
	}

	return tn
}
