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

package globals

var counter int

func Next() int {
	counter++ // want "package variable counter is mutated after initialization: no assignment guard"

	return counter
}

var cache map[string]string

func Cache() map[string]string {
	if cache == nil {
		cache = make(map[string]string)
	}

	return cache
}

var limit = 10

func init() {
	limit = 20
}

func Limit() int { return limit }

var Max = 3

func Grow() { Max++ }
