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
	"errors"

	"golang.org/x/tools/go/analysis"
)

// ErrInvalidFile is reported for files lacking position or type information.
var ErrInvalidFile = errors.New("file without valid info")

// CategoryInternal marks diagnostics of packages that were skipped.
const CategoryInternal = "internal"

// InternalError reports that the analysis skipped the code at rng because of err.
// Writes in that code stay unchecked, the diagnostic does not indicate an issue in the user's code.
func InternalError(p *analysis.Pass, rng analysis.Range, err error) {
	p.Report(analysis.Diagnostic{
		Pos:      rng.Pos(),
		End:      rng.End(),
		Category: CategoryInternal,
		Message:  "lazyguard: analysis skipped: " + err.Error(),
	})
}
