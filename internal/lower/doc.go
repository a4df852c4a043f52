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

// Package lower translates Go functions in SSA form into [bytecode] method bodies.
//
// Every selected struct type becomes a [bytecode.Class] whose methods are all source
// functions of the package, so writes from any function are visible. Top-level functions
// returning the type, or a pointer to it, are its constructors, but only for the objects
// they allocate. Their writes to other objects form an additional regular method. With
// globals enabled, the unexported package-level variables form an additional class of
// static fields, initialized by the package initializer and the init functions.
//
// Values are kept in local slots, one per SSA value. Loads and stores through field
// addresses become [bytecode.GetField] and [bytecode.PutField]; other operations only
// keep their stack effect.
package lower
