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

// Saturating integer arithmetic clamps to the lane type's range instead
// of wrapping: for uint8, 250+10 is 255 and 10-20 is 0.

func isSigned[T Integers]() bool {
	var x T
	x--
	return x < 0
}

// limits returns the smallest and largest values of T.
func limits[T Integers]() (lo, hi T) {
	w := laneBits[T]()
	if isSigned[T]() {
		return fromBits[T](1 << (w - 1)), fromBits[T](1<<(w-1) - 1)
	}
	return 0, allOnes[T]()
}

// SaturatedAdd adds lane-wise, clamping on overflow.
func SaturatedAdd[T Integers, A Arch](a, b Vec[T, A]) Vec[T, A] {
	lo, hi := limits[T]()
	signed := isSigned[T]()
	var r Vec[T, A]
	for i := range Width[A]() {
		x, y := a.lanes[i], b.lanes[i]
		s := x + y
		switch {
		case !signed && s < x:
			s = hi
		case signed && (x >= 0) == (y >= 0) && (s >= 0) != (x >= 0):
			if x >= 0 {
				s = hi
			} else {
				s = lo
			}
		}
		r.lanes[i] = s
	}
	return r
}

// SaturatedSub subtracts lane-wise, clamping on overflow.
func SaturatedSub[T Integers, A Arch](a, b Vec[T, A]) Vec[T, A] {
	lo, hi := limits[T]()
	signed := isSigned[T]()
	var r Vec[T, A]
	for i := range Width[A]() {
		x, y := a.lanes[i], b.lanes[i]
		d := x - y
		switch {
		case !signed && y > x:
			d = 0
		case signed && (x >= 0) != (y >= 0) && (d >= 0) != (x >= 0):
			if x >= 0 {
				d = hi
			} else {
				d = lo
			}
		}
		r.lanes[i] = d
	}
	return r
}

// Clamp limits each lane of v to [lo, hi].
func Clamp[T Lanes, A Arch](v, lo, hi Vec[T, A]) Vec[T, A] {
	return Min(Max(v, lo), hi)
}

// AbsDiff returns |a-b| per lane. Unsigned lanes never wrap; signed
// lanes wrap like Sub when the difference does not fit.
func AbsDiff[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	var r Vec[T, A]
	for i := range Width[A]() {
		if x, y := a.lanes[i], b.lanes[i]; x > y {
			r.lanes[i] = x - y
		} else {
			r.lanes[i] = y - x
		}
	}
	return r
}

// Avg returns the rounded-up mean (a+b+1)/2 without intermediate
// overflow.
func Avg[T UnsignedInts, A Arch](a, b Vec[T, A]) Vec[T, A] {
	var r Vec[T, A]
	for i := range Width[A]() {
		x, y := a.lanes[i], b.lanes[i]
		r.lanes[i] = x>>1 + y>>1 + (x|y)&1
	}
	return r
}
