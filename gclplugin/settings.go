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

package gclplugin

import lazyguard "fillmore-labs.com/lazyguard/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// AllTypes checks every struct type, not only those marked //lazyguard:immutable.
	AllTypes *bool `json:"all-types,omitzero"`
	// Globals checks unexported package-level variables.
	Globals *bool `json:"globals,omitzero"`
	// Generated reports writes in generated files.
	Generated *bool `json:"generated,omitzero"`
}

// Options converts [Settings] into a list of [lazyguard.Option] for the lazyguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []lazyguard.Option {
	var opts []lazyguard.Option

	opts = appendOption(opts, s.AllTypes, lazyguard.WithAllTypes)
	opts = appendOption(opts, s.Globals, lazyguard.WithGlobals)
	opts = appendOption(opts, s.Generated, lazyguard.WithGenerated)

	return opts
}

// appendOption appends a non-nil setting to a [lazyguard.Option] list.
func appendOption[T any](opts []lazyguard.Option, value *T, constructor func(T) lazyguard.Option) []lazyguard.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
