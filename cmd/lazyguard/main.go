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

// Lazyguard reports mutations of immutable types outside of guarded lazy initialization.
//
// Usage:
//
//	lazyguard [-flag] [package]
//
// Flags:
//
//	-all        check all struct types, not only //lazyguard:immutable ones
//	-globals    check unexported package-level variables
//	-generated  check generated files
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"fillmore-labs.com/lazyguard/analyzer"
)

func main() { singlechecker.Main(analyzer.Analyzer) }
