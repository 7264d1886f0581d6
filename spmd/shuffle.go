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

// This file provides cross-lane permutes. All of them are per-lane loops
// over the fixed-width storage; none has a native path.

// Reverse returns v with its lanes in reverse order.
func Reverse[T Lanes, A Arch](v Vec[T, A]) Vec[T, A] {
	w := Width[A]()
	var r Vec[T, A]
	for i := range w {
		r.lanes[i] = v.lanes[w-1-i]
	}
	return r
}

// Broadcast copies lane i of v into every lane.
func Broadcast[T Lanes, A Arch](v Vec[T, A], i int) Vec[T, A] {
	checkLane[A](i)
	return Set[T, A](v.lanes[i])
}

// SlideUpLanes moves every lane n positions toward the top. The bottom n
// lanes become zero.
func SlideUpLanes[T Lanes, A Arch](v Vec[T, A], n int) Vec[T, A] {
	var r Vec[T, A]
	w := Width[A]()
	if n < 0 || n >= w {
		return r
	}
	copy(r.lanes[n:w], v.lanes[:w-n])
	return r
}

// SlideDownLanes moves every lane n positions toward lane 0. The top n
// lanes become zero.
func SlideDownLanes[T Lanes, A Arch](v Vec[T, A], n int) Vec[T, A] {
	var r Vec[T, A]
	w := Width[A]()
	if n < 0 || n >= w {
		return r
	}
	copy(r.lanes[:w-n], v.lanes[n:w])
	return r
}

// InterleaveLower alternates the lower halves of a and b:
// a0 b0 a1 b1 ...
func InterleaveLower[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	var r Vec[T, A]
	for i := range (Width[A]() + 1) / 2 {
		r.lanes[2*i] = a.lanes[i]
		if 2*i+1 < Width[A]() {
			r.lanes[2*i+1] = b.lanes[i]
		}
	}
	return r
}

// InterleaveUpper alternates the upper halves of a and b.
func InterleaveUpper[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	w := Width[A]()
	half := w / 2
	var r Vec[T, A]
	for i := range half {
		r.lanes[2*i] = a.lanes[w-half+i]
		r.lanes[2*i+1] = b.lanes[w-half+i]
	}
	if w == 1 {
		r.lanes[0] = a.lanes[0]
	}
	return r
}

// OddEven takes odd lanes from a and even lanes from b.
func OddEven[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	var r Vec[T, A]
	for i := range Width[A]() {
		if i&1 == 1 {
			r.lanes[i] = a.lanes[i]
		} else {
			r.lanes[i] = b.lanes[i]
		}
	}
	return r
}

// TableLookupLanes returns tbl[idx[i]] in lane i. Indices outside
// [0, width) yield zero.
func TableLookupLanes[T Lanes, I ~int32 | ~int64, A Arch](tbl Vec[T, A], idx Vec[I, A]) Vec[T, A] {
	w := Width[A]()
	var r Vec[T, A]
	for i := range w {
		if j := int(idx.lanes[i]); j >= 0 && j < w {
			r.lanes[i] = tbl.lanes[j]
		}
	}
	return r
}
