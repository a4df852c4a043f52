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

package testsource

import (
	"testing"

	"fillmore-labs.com/lazyguard/internal/bytecode"
)

// Owner is the class name of all classes built here.
const Owner = "C"

var (
	// Integer is the type of the primitive fields.
	Integer = bytecode.Type{Kind: bytecode.Int, Name: "int"}

	// Object is the type of the reference fields.
	Object = bytecode.Type{Kind: bytecode.Reference, Name: "*Object"}

	// Hash is the integer field of most classes.
	Hash = bytecode.Field{Name: "hash", Type: Integer, Access: bytecode.Private}

	// Other is a second integer field.
	Other = bytecode.Field{Name: "other", Type: Integer, Access: bytecode.Private}

	// Cache is a reference field.
	Cache = bytecode.Field{Name: "cache", Type: Object, Access: bytecode.Private}
)

// Method assembles a method body.
func Method(tb testing.TB, name string, kind bytecode.MethodKind, body func(a *bytecode.Assembler)) *bytecode.Method {
	tb.Helper()

	var a bytecode.Assembler
	body(&a)

	ins, err := a.Instructions()
	if err != nil {
		tb.Fatalf("Can't assemble %s: %v", name, err)
	}

	return &bytecode.Method{Name: name, Kind: kind, MaxLocals: 4, Instructions: ins}
}

// Class returns a class with the given fields, a constructor not touching them and methods.
func Class(tb testing.TB, fields []bytecode.Field, methods ...*bytecode.Method) *bytecode.Class {
	tb.Helper()

	ctor := Method(tb, "New", bytecode.Constructor, func(a *bytecode.Assembler) {
		a.Load(0).Invoke("super", 1, 0).Return(0)
	})

	return &bytecode.Class{
		Name:    Owner,
		Fields:  fields,
		Methods: append([]*bytecode.Method{ctor}, methods...),
	}
}

// LazyHash caches a computed hash code:
//
//	if c.hash != 0 { goto done }
//	c.hash = compute()
//	done: return c.hash
func LazyHash(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	m := Method(tb, "HashCode", bytecode.Regular, func(a *bytecode.Assembler) {
		done := a.NewLabel()
		// 0 load, 1 getfield, 2 if, 3 load, 4 load, 5 invoke, 6 putfield, 7 label, 8 load, 9 getfield, 10 return
		a.Load(0).GetField(hash).If(bytecode.Ne, done).
			Load(0).Load(0).Invoke("compute", 1, 1).PutField(hash).
			Mark(done).Load(0).GetField(hash).Return(1)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}

// EqualityGuard branches into the write when hash equals zero.
func EqualityGuard(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	m := Method(tb, "HashCode", bytecode.Regular, func(a *bytecode.Assembler) {
		write, done := a.NewLabel(), a.NewLabel()
		a.Load(0).GetField(hash).Int(0).IfCmp(bytecode.Eq, write).
			Goto(done).
			Mark(write).Load(0).Int(42).PutField(hash).
			Mark(done).Return(0)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}

// WrongGuard compares hash against 1 instead of its initial value.
func WrongGuard(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	m := Method(tb, "HashCode", bytecode.Regular, func(a *bytecode.Assembler) {
		done := a.NewLabel()
		a.Load(0).GetField(hash).Int(1).IfCmp(bytecode.Ne, done).
			Load(0).Load(0).Invoke("compute", 1, 1).PutField(hash).
			Mark(done).Return(0)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}

// UnrelatedGuard checks other before writing hash.
func UnrelatedGuard(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash, other := Hash.Ref(Owner), Other.Ref(Owner)

	m := Method(tb, "HashCode", bytecode.Regular, func(a *bytecode.Assembler) {
		done := a.NewLabel()
		a.Load(0).GetField(other).If(bytecode.Ne, done).
			Load(0).Load(0).Invoke("compute", 1, 1).PutField(hash).
			Mark(done).Return(0)
	})

	return Class(tb, []bytecode.Field{Hash, Other}, m)
}

// AliasHash reads hash into local 1, guards on the local and writes it back:
//
//	h := c.hash
//	if h != 0 { goto done }
//	h = compute()
//	c.hash = h
//	done: return h
func AliasHash(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	m := Method(tb, "HashCode", bytecode.Regular, func(a *bytecode.Assembler) {
		done := a.NewLabel()
		// 0 load, 1 getfield, 2 store, 3 load, 4 if
		a.Load(0).GetField(hash).Store(1).Load(1).If(bytecode.Ne, done).
			// 5 load, 6 invoke, 7 store, 8 load, 9 load, 10 putfield
			Load(0).Invoke("compute", 1, 1).Store(1).Load(0).Load(1).PutField(hash).
			// 11 label, 12 load, 13 return
			Mark(done).Load(1).Return(1)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}

// StaleAlias reads hash into local 2, but overwrites the local before guarding on it:
//
//	h := c.hash
//	if p == 0 { goto check }
//	h = 0
//	check: if h != 0 { goto done }
//	c.hash = p
//	done: return
func StaleAlias(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	m := Method(tb, "Set", bytecode.Regular, func(a *bytecode.Assembler) {
		check, done := a.NewLabel(), a.NewLabel()
		a.Load(0).GetField(hash).Store(2).Load(1).If(bytecode.Eq, check).
			Int(0).Store(2).
			Mark(check).Load(2).If(bytecode.Ne, done).
			Load(0).Load(1).PutField(hash).
			Mark(done).Return(0)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}

// Stateless never writes hash.
func Stateless(tb testing.TB) *bytecode.Class {
	tb.Helper()

	m := Method(tb, "HashCode", bytecode.Regular, func(a *bytecode.Assembler) {
		a.Load(0).GetField(Hash.Ref(Owner)).Return(1)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}

// Counter increments hash without any check.
func Counter(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	m := Method(tb, "Inc", bytecode.Regular, func(a *bytecode.Assembler) {
		a.Load(0).Load(0).GetField(hash).Int(1).Other(2, 1).PutField(hash).Return(0)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}

// Ambiguous has two constructors storing different literals into hash, and the lazy
// method of [LazyHash].
func Ambiguous(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	class := LazyHash(tb)

	one := Method(tb, "NewOne", bytecode.Constructor, func(a *bytecode.Assembler) {
		a.Load(0).Int(1).PutField(hash).Return(0)
	})
	two := Method(tb, "NewTwo", bytecode.Constructor, func(a *bytecode.Assembler) {
		a.Load(0).Int(2).PutField(hash).Return(0)
	})

	class.Methods = []*bytecode.Method{one, two, class.Methods[1]}

	return class
}

// LazyCache creates a cached object on first use:
//
//	if c.cache != nil { goto done }
//	c.cache = create()
//	done: return c.cache
func LazyCache(tb testing.TB) *bytecode.Class {
	tb.Helper()

	cache := Cache.Ref(Owner)

	m := Method(tb, "Get", bytecode.Regular, func(a *bytecode.Assembler) {
		done := a.NewLabel()
		a.Load(0).GetField(cache).If(bytecode.Ne, done).
			Load(0).Invoke("create", 0, 1).PutField(cache).
			Mark(done).Load(0).GetField(cache).Return(1)
	})

	return Class(tb, []bytecode.Field{Cache}, m)
}

// DoubleChecked rechecks hash while holding a lock.
func DoubleChecked(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	m := Method(tb, "HashCode", bytecode.Regular, func(a *bytecode.Assembler) {
		unlock, done := a.NewLabel(), a.NewLabel()
		a.Load(0).GetField(hash).If(bytecode.Ne, done).
			Load(0).MonitorEnter().
			Load(0).GetField(hash).If(bytecode.Ne, unlock).
			Load(0).Load(0).Invoke("compute", 1, 1).PutField(hash).
			Mark(unlock).Load(0).MonitorExit().
			Mark(done).Load(0).GetField(hash).Return(1)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}

// Bypassed can reach the write without passing the guard.
func Bypassed(tb testing.TB) *bytecode.Class {
	tb.Helper()

	hash := Hash.Ref(Owner)

	m := Method(tb, "HashCode", bytecode.Regular, func(a *bytecode.Assembler) {
		write, done := a.NewLabel(), a.NewLabel()
		a.Load(1).If(bytecode.Ne, write).
			Load(0).GetField(hash).If(bytecode.Ne, done).
			Mark(write).Load(0).Int(42).PutField(hash).
			Mark(done).Return(0)
	})

	return Class(tb, []bytecode.Field{Hash}, m)
}
