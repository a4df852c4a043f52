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

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"

	"fillmore-labs.com/lazyguard/internal/astutil"
	"fillmore-labs.com/lazyguard/internal/bytecode"
	"fillmore-labs.com/lazyguard/internal/config"
	"fillmore-labs.com/lazyguard/internal/lower"
	"fillmore-labs.com/lazyguard/internal/verifier"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// run executes the lazyguard analyzer's pipeline.
func (r *runOptions) run(p *analysis.Pass) (any, error) {
	// Retrieves the SSA form from the pass results.
	in, ok := p.ResultOf[buildssa.Analyzer].(*buildssa.SSA)
	if !ok {
		return nil, fmt.Errorf("lazyguard: %s %w", buildssa.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "LazyGuard")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	files := make([]astutil.CurrentFile, 0, len(p.Files))

	var selected []*types.TypeName

	for _, file := range p.Files {
		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, fmt.Errorf("%s: %w", file.Name.Name, astutil.ErrInvalidFile))

			continue
		}

		files = append(files, currentFile)
		selected = r.selectTypes(p, file, selected)
	}

	cfg := lower.Config{Types: selected, Globals: r.behavior.Enabled(config.Globals)}

	// Stage 1: Lower the selected types and their package to classes
	classes, err := lower.Package(ctx, in.Pkg, in.SrcFuncs, cfg)
	if err != nil {
		if len(p.Files) > 0 {
			astutil.InternalError(p, p.Files[0], fmt.Errorf("can't lower package %s: %w", p.Pkg.Path(), err))
		}

		return nil, nil
	}

	rep := reporter{pass: p, files: files, behavior: r.behavior, seen: make(map[token.Pos]struct{})}

	// Stage 2: Verify every field and report the writes without valid guard
	for _, class := range classes {
		v := verifier.New(class)

		for _, f := range class.Fields {
			result := v.Verify(ctx, f.Name)
			if !result.Applicable() || result.Verdict == verifier.Guarded {
				continue
			}

			rep.report(class, result)
		}
	}

	return nil, nil
}

// selectTypes appends the struct types of file to check.
func (r *runOptions) selectTypes(p *analysis.Pass, file *ast.File, selected []*types.TypeName) []*types.TypeName {
	all := r.behavior.Enabled(config.AllTypes)

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.TypeParams != nil || ts.Assign.IsValid() {
				continue
			}

			if _, ok := ts.Type.(*ast.StructType); !ok {
				continue
			}

			if !all && !astutil.HasDirective(astutil.Immutable, ts.Doc, gen.Doc) {
				continue
			}

			if tn, ok := p.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
				selected = append(selected, tn)
			}
		}
	}

	return selected
}

// reporter turns verifier results into diagnostics.
type reporter struct {
	pass     *analysis.Pass
	files    []astutil.CurrentFile
	behavior config.BitMask[config.Behavior]
	seen     map[token.Pos]struct{}
}

func (r *reporter) report(class *bytecode.Class, result verifier.Result) {
	for _, w := range result.Violations {
		pos := w.Instruction.Pos
		if !pos.IsValid() {
			continue
		}

		if _, ok := r.seen[pos]; ok {
			continue
		}

		r.seen[pos] = struct{}{}

		file, ok := r.fileOf(pos)
		if !ok || file.Suppressed(pos) {
			continue
		}

		// Skip generated files
		if file.Generated() && !r.behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		if result.Field.Access.Has(bytecode.Static) {
			r.pass.Reportf(pos, "package variable %s is mutated after initialization: %s", result.Field.Name, w.Reason)
		} else {
			r.pass.Reportf(pos, "field %s.%s is mutated after construction: %s", class.Name, result.Field.Name, w.Reason)
		}
	}
}

func (r *reporter) fileOf(pos token.Pos) (astutil.CurrentFile, bool) {
	for _, f := range r.files {
		if f.Contains(pos) {
			return f, true
		}
	}

	return astutil.CurrentFile{}, false
}
