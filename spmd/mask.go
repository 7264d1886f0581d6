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
	"iter"
	"math/bits"
	"strings"
)

// Mask is a per-lane predicate for descriptor A, stored as a dense bitmask.
// Bit i is set iff lane i is true. Bits at or beyond the width are always
// zero; every constructor and operation maintains that.
//
// Comparisons return a Mask; it drives Merge, the masked loads and stores,
// and the execution context.
type Mask[A Arch] struct {
	bits uint32
}

// MaskOf builds a mask from a literal list; missing lanes are false.
func MaskOf[A Arch](bs ...bool) Mask[A] {
	var b uint32
	for i, on := range bs[:min(len(bs), Width[A]())] {
		if on {
			b |= 1 << i
		}
	}
	return Mask[A]{bits: b}
}

// MaskFromBits builds a mask from a bitmask, dropping bits beyond the width.
func MaskFromBits[A Arch](b uint32) Mask[A] {
	return Mask[A]{bits: b & WidthMask[A]()}
}

// AllTrue returns a mask with every lane active.
func AllTrue[A Arch]() Mask[A] {
	return Mask[A]{bits: WidthMask[A]()}
}

// AllFalse returns a mask with no lane active.
func AllFalse[A Arch]() Mask[A] {
	return Mask[A]{}
}

// FirstN returns a mask with lanes [0, n) active, clamped to [0, width].
// It is the tail mask for the remainder of a slice.
func FirstN[A Arch](n int) Mask[A] {
	w := Width[A]()
	switch {
	case n <= 0:
		return Mask[A]{}
	case n >= w:
		return AllTrue[A]()
	}
	return Mask[A]{bits: uint32(1)<<n - 1}
}

// Movemask returns the dense bitmask: bit i is lane i.
func (m Mask[A]) Movemask() uint32 {
	return m.bits
}

// Any reports whether at least one lane is active.
func (m Mask[A]) Any() bool {
	return m.bits != 0
}

// All reports whether every lane is active.
func (m Mask[A]) All() bool {
	return m.bits == WidthMask[A]()
}

// None reports whether no lane is active.
func (m Mask[A]) None() bool {
	return m.bits == 0
}

// Count returns the number of active lanes.
func (m Mask[A]) Count() int {
	return bits.OnesCount32(m.bits)
}

// Get reports whether lane i is active.
func (m Mask[A]) Get(i int) bool {
	checkLane[A](i)
	return m.bits>>uint(i)&1 != 0
}

// Put sets lane i.
func (m *Mask[A]) Put(i int, on bool) {
	checkLane[A](i)
	if on {
		m.bits |= 1 << uint(i)
	} else {
		m.bits &^= 1 << uint(i)
	}
}

// Not returns the lane-wise complement.
func (m Mask[A]) Not() Mask[A] {
	return Mask[A]{bits: m.bits ^ WidthMask[A]()}
}

// And returns the lane-wise conjunction.
func (m Mask[A]) And(o Mask[A]) Mask[A] {
	return Mask[A]{bits: m.bits & o.bits}
}

// Or returns the lane-wise disjunction.
func (m Mask[A]) Or(o Mask[A]) Mask[A] {
	return Mask[A]{bits: m.bits | o.bits}
}

// Xor returns the lane-wise exclusive or.
func (m Mask[A]) Xor(o Mask[A]) Mask[A] {
	return Mask[A]{bits: m.bits ^ o.bits}
}

// AndNot returns m &^ o: lanes active in m but not in o.
func (m Mask[A]) AndNot(o Mask[A]) Mask[A] {
	return Mask[A]{bits: m.bits &^ o.bits}
}

// ForEachActive calls f once per active lane in increasing index order.
func (m Mask[A]) ForEachActive(f func(i int)) {
	b := m.bits
	for b != 0 {
		f(bits.TrailingZeros32(b))
		b &= b - 1
	}
}

// Active ranges over the indices of the active lanes in increasing order.
func (m Mask[A]) Active() iter.Seq[int] {
	return func(yield func(int) bool) {
		b := m.bits
		for b != 0 {
			if !yield(bits.TrailingZeros32(b)) {
				return
			}
			b &= b - 1
		}
	}
}

// String formats the mask lane 0 first, e.g. "1010" for lanes 0 and 2.
func (m Mask[A]) String() string {
	var sb strings.Builder
	for i := range Width[A]() {
		if m.bits>>uint(i)&1 != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// LaneMask expands m into a vector whose active lanes have every bit set
// and whose inactive lanes are zero, the form the bitwise mask-select
// idiom (And/AndNot/Or) works with.
func LaneMask[T Lanes, A Arch](m Mask[A]) Vec[T, A] {
	var v Vec[T, A]
	ones := allOnes[T]()
	m.ForEachActive(func(i int) {
		v.lanes[i] = ones
	})
	return v
}

// MaskFromLanes collapses a lane vector into a mask. Float lanes test the
// sign bit and integer lanes test for non-zero, so the all-ones result of
// Cmp round-trips.
func MaskFromLanes[T Lanes, A Arch](v Vec[T, A]) Mask[A] {
	var b uint32
	signed := isFloat[T]()
	for i := range Width[A]() {
		x := toBits(v.lanes[i])
		if signed {
			if x>>(laneBits[T]()-1)&1 != 0 {
				b |= 1 << i
			}
		} else if x != 0 {
			b |= 1 << i
		}
	}
	return Mask[A]{bits: b}
}
