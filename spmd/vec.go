// Copyright 2025 go-spmd Authors
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

package spmd

import (
	"fmt"
	"iter"
	"strings"
)

// Vec is a vector value of A.Width() lanes of type T.
//
// Lanes live in a fixed array sized for the widest descriptor; only the
// first Width lanes are meaningful and the rest stay zero. For pairs with
// a native override the array is loaded into a register for the duration
// of each operation, so the array layout is the observable representation
// on every path.
//
// Vec has value semantics: assignment copies, and no two Vec values alias.
type Vec[T Lanes, A Arch] struct {
	lanes [MaxWidth]T
}

// Set returns a vector with every lane set to x.
func Set[T Lanes, A Arch](x T) Vec[T, A] {
	var v Vec[T, A]
	for i := range Width[A]() {
		v.lanes[i] = x
	}
	return v
}

// Of returns a vector built from a literal lane list. Lanes beyond len(xs)
// are zero; values beyond the width are ignored.
func Of[T Lanes, A Arch](xs ...T) Vec[T, A] {
	var v Vec[T, A]
	copy(v.lanes[:Width[A]()], xs)
	return v
}

// Iota returns start, start+1, start+2, ... across the lanes.
func Iota[T Lanes, A Arch](start T) Vec[T, A] {
	var v Vec[T, A]
	x := start
	for i := range Width[A]() {
		v.lanes[i] = x
		x++
	}
	return v
}

// Load reads up to Width elements from src. Missing lanes are zero.
func Load[T Lanes, A Arch](src []T) Vec[T, A] {
	var v Vec[T, A]
	copy(v.lanes[:Width[A]()], src)
	return v
}

// Width returns the number of lanes.
func (v Vec[T, A]) Width() int {
	return Width[A]()
}

// Get returns lane i.
func (v Vec[T, A]) Get(i int) T {
	checkLane[A](i)
	return v.lanes[i]
}

// Put sets lane i to x.
func (v *Vec[T, A]) Put(i int, x T) {
	checkLane[A](i)
	v.lanes[i] = x
}

// Data returns a copy of the live lanes.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T, A]) Data() []T {
	return append([]T(nil), v.lanes[:Width[A]()]...)
}

// Store writes the lanes to dst, stopping early if dst is shorter.
func (v Vec[T, A]) Store(dst []T) {
	copy(dst, v.lanes[:Width[A]()])
}

// Lanes ranges over (index, value) pairs.
func (v Vec[T, A]) Lanes() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range Width[A]() {
			if !yield(i, v.lanes[i]) {
				return
			}
		}
	}
}

// String formats the vector as "[l0 l1 ...]".
func (v Vec[T, A]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range Width[A]() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v.lanes[i])
	}
	sb.WriteByte(']')
	return sb.String()
}

// AddAssign sets v to Add(v, w).
func (v *Vec[T, A]) AddAssign(w Vec[T, A]) { *v = Add(*v, w) }

// SubAssign sets v to Sub(v, w).
func (v *Vec[T, A]) SubAssign(w Vec[T, A]) { *v = Sub(*v, w) }

// MulAssign sets v to Mul(v, w).
func (v *Vec[T, A]) MulAssign(w Vec[T, A]) { *v = Mul(*v, w) }

// DivAssign sets v to Div(v, w).
func (v *Vec[T, A]) DivAssign(w Vec[T, A]) { *v = Div(*v, w) }

// AndAssign sets v to And(v, w).
func (v *Vec[T, A]) AndAssign(w Vec[T, A]) { *v = And(*v, w) }

// OrAssign sets v to Or(v, w).
func (v *Vec[T, A]) OrAssign(w Vec[T, A]) { *v = Or(*v, w) }

// XorAssign sets v to Xor(v, w).
func (v *Vec[T, A]) XorAssign(w Vec[T, A]) { *v = Xor(*v, w) }
