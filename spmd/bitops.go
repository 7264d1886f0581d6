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

import "math/bits"

// This file provides bit manipulation on integer lanes. Each lane is
// handled at its own width, so a uint8 lane never sees bits from a
// wider register.

// PopCount counts the set bits of each lane.
func PopCount[T Integers, A Arch](v Vec[T, A]) Vec[T, A] {
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = T(bits.OnesCount64(toBits(v.lanes[i])))
	}
	return r
}

// LeadingZeroCount counts the leading zero bits of each lane. A zero
// lane yields the lane width in bits.
func LeadingZeroCount[T Integers, A Arch](v Vec[T, A]) Vec[T, A] {
	pad := 64 - int(laneBits[T]())
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = T(bits.LeadingZeros64(toBits(v.lanes[i])) - pad)
	}
	return r
}

// TrailingZeroCount counts the trailing zero bits of each lane. A zero
// lane yields the lane width in bits.
func TrailingZeroCount[T Integers, A Arch](v Vec[T, A]) Vec[T, A] {
	w := int(laneBits[T]())
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = T(min(bits.TrailingZeros64(toBits(v.lanes[i])), w))
	}
	return r
}

// RotateRight rotates each lane right by n mod the lane width.
func RotateRight[T Integers, A Arch](v Vec[T, A], n uint) Vec[T, A] {
	w := laneBits[T]()
	k := n % w
	mask := ^uint64(0) >> (64 - w)
	var r Vec[T, A]
	for i := range Width[A]() {
		b := toBits(v.lanes[i])
		r.lanes[i] = fromBits[T]((b>>k | b<<(w-k)) & mask)
	}
	return r
}

// ReverseBits reverses the bit order within each lane.
func ReverseBits[T Integers, A Arch](v Vec[T, A]) Vec[T, A] {
	shift := 64 - laneBits[T]()
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = fromBits[T](bits.Reverse64(toBits(v.lanes[i])) >> shift)
	}
	return r
}
