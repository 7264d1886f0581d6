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
	"cmp"
	"iter"
	"unsafe"
)

// LaneRef refers to a single lane of a vector held elsewhere.
type LaneRef[T Lanes, A Arch] struct {
	vec *Vec[T, A]
	i   int
}

// RefOf returns a reference to lane i of v.
func RefOf[T Lanes, A Arch](v *Vec[T, A], i int) LaneRef[T, A] {
	checkLane[A](i)
	return LaneRef[T, A]{vec: v, i: i}
}

// Get reads the lane.
func (r LaneRef[T, A]) Get() T { return r.vec.lanes[r.i] }

// Set writes the lane.
func (r LaneRef[T, A]) Set(x T) { r.vec.lanes[r.i] = x }

// Addr returns a plain pointer to the lane's storage. It stays valid as
// long as the vector does.
func (r LaneRef[T, A]) Addr() *T { return &r.vec.lanes[r.i] }

// LanePtr is a random-access position in a slice of vectors viewed as one
// flat lane sequence: vector index v, lane index i in [0, width).
//
// The zero LanePtr is nil. Arithmetic never checks bounds; dereferencing a
// position outside the slice panics with Go's usual index error.
type LanePtr[T Lanes, A Arch] struct {
	vecs []Vec[T, A]
	v, i int
}

// PtrAt returns the position of lane k of the flattened vecs.
func PtrAt[T Lanes, A Arch](vecs []Vec[T, A], k int) LanePtr[T, A] {
	return LanePtr[T, A]{vecs: vecs}.Add(k)
}

// IsNil reports whether p is the nil pointer.
func (p LanePtr[T, A]) IsNil() bool { return p.vecs == nil }

// Add returns p advanced by k lanes. The lane offset is split with
// Euclidean division, so negative k borrows from the vector index and the
// lane stays in [0, width).
func (p LanePtr[T, A]) Add(k int) LanePtr[T, A] {
	n := p.i + k
	lane := n & ShiftMask[A]()
	p.v += (n - lane) >> Shift[A]()
	p.i = lane
	return p
}

// Sub returns p moved back by k lanes.
func (p LanePtr[T, A]) Sub(k int) LanePtr[T, A] { return p.Add(-k) }

// Inc advances p by one lane in place.
func (p *LanePtr[T, A]) Inc() { *p = p.Add(1) }

// Dec moves p back by one lane in place.
func (p *LanePtr[T, A]) Dec() { *p = p.Add(-1) }

// Diff returns the lane distance p - q.
func (p LanePtr[T, A]) Diff(q LanePtr[T, A]) int {
	return Width[A]()*(p.v-q.v) + (p.i - q.i)
}

// Compare orders by the address of the vector p points into, then lane.
// Within one slice that is vector index order; pointers into unrelated
// slices get a consistent but arbitrary order and never compare equal.
// The nil pointer orders before every non-nil pointer.
func (p LanePtr[T, A]) Compare(q LanePtr[T, A]) int {
	switch pn, qn := p.IsNil(), q.IsNil(); {
	case pn && qn:
		return 0
	case pn:
		return -1
	case qn:
		return 1
	}
	if c := cmp.Compare(p.vecAddr(), q.vecAddr()); c != 0 {
		return c
	}
	return cmp.Compare(p.i, q.i)
}

// vecAddr is the address of vecs[v], computed without indexing so that
// positions outside the slice still have one.
func (p LanePtr[T, A]) vecAddr() uintptr {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.vecs)))
	return base + uintptr(p.v)*unsafe.Sizeof(Vec[T, A]{})
}

// Equal reports whether p and q name the same position.
func (p LanePtr[T, A]) Equal(q LanePtr[T, A]) bool { return p.Compare(q) == 0 }

// Less reports whether p orders before q.
func (p LanePtr[T, A]) Less(q LanePtr[T, A]) bool { return p.Compare(q) < 0 }

// Deref returns a reference to the lane p points at.
func (p LanePtr[T, A]) Deref() LaneRef[T, A] {
	return LaneRef[T, A]{vec: &p.vecs[p.v], i: p.i}
}

// At is p.Add(j).Deref().
func (p LanePtr[T, A]) At(j int) LaneRef[T, A] { return p.Add(j).Deref() }

// Get reads the lane p points at.
func (p LanePtr[T, A]) Get() T { return p.vecs[p.v].lanes[p.i] }

// Set writes the lane p points at.
func (p LanePtr[T, A]) Set(x T) { p.vecs[p.v].lanes[p.i] = x }

// Flat views a slice of vectors as one contiguous sequence of lanes. It
// implements sort.Interface.
type Flat[T Lanes, A Arch] []Vec[T, A]

// Len returns the total number of lanes.
func (f Flat[T, A]) Len() int { return len(f) << Shift[A]() }

func (f Flat[T, A]) split(k int) (int, int) {
	return k >> Shift[A](), k & ShiftMask[A]()
}

// At returns a reference to lane k.
func (f Flat[T, A]) At(k int) LaneRef[T, A] {
	v, i := f.split(k)
	return LaneRef[T, A]{vec: &f[v], i: i}
}

// Less compares lanes j and k.
func (f Flat[T, A]) Less(j, k int) bool {
	vj, ij := f.split(j)
	vk, ik := f.split(k)
	return f[vj].lanes[ij] < f[vk].lanes[ik]
}

// Swap exchanges lanes j and k.
func (f Flat[T, A]) Swap(j, k int) {
	vj, ij := f.split(j)
	vk, ik := f.split(k)
	f[vj].lanes[ij], f[vk].lanes[ik] = f[vk].lanes[ik], f[vj].lanes[ij]
}

// Begin returns a pointer to the first lane.
func (f Flat[T, A]) Begin() LanePtr[T, A] {
	return LanePtr[T, A]{vecs: f}
}

// End returns a pointer one past the last lane.
func (f Flat[T, A]) End() LanePtr[T, A] {
	return f.Begin().Add(f.Len())
}

// All ranges over (flat index, value) pairs.
func (f Flat[T, A]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		w := Width[A]()
		for v := range f {
			for i := range w {
				if !yield(v*w+i, f[v].lanes[i]) {
					return
				}
			}
		}
	}
}
