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
	"os"
	"strings"
	"sync/atomic"

	"github.com/lanewise/go-spmd/internal/logging"
)

// This file provides gather and scatter through a vector of pointers and
// through an index vector. The per-lane loops here are always available;
// gather_avx2.go adds the hardware path for 32-bit lanes on AVX2_8, used
// when the gather policy asks for it.

// GatherPolicy selects between the per-lane loop and the hardware gather
// path where one exists. Both produce identical results; hardware gather
// is not always faster, so the choice is left to the caller.
type GatherPolicy int32

const (
	// GatherManual always uses the per-lane loop.
	GatherManual GatherPolicy = iota

	// GatherHardware uses the hardware path for the pairs that have one.
	GatherHardware
)

// String returns "manual" or "hardware".
func (p GatherPolicy) String() string {
	switch p {
	case GatherManual:
		return "manual"
	case GatherHardware:
		return "hardware"
	default:
		return fmt.Sprintf("GatherPolicy(%d)", int32(p))
	}
}

// ParseGatherPolicy parses "manual" or "hardware", case-insensitively.
func ParseGatherPolicy(s string) (GatherPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual":
		return GatherManual, nil
	case "hardware":
		return GatherHardware, nil
	}
	return GatherManual, fmt.Errorf("spmd: unknown gather policy %q", s)
}

var gatherPolicy atomic.Int32

func init() {
	val := os.Getenv("SPMD_GATHER")
	if val == "" {
		return
	}
	p, err := ParseGatherPolicy(val)
	if err != nil {
		logging.Warnf("ignoring SPMD_GATHER: %v", err)
		return
	}
	SetGatherPolicy(p)
}

// SetGatherPolicy sets the process-wide gather policy.
func SetGatherPolicy(p GatherPolicy) {
	gatherPolicy.Store(int32(p))
}

// CurrentGatherPolicy returns the process-wide gather policy.
func CurrentGatherPolicy() GatherPolicy {
	return GatherPolicy(gatherPolicy.Load())
}

// Ptrs is a vector of pointers, one per lane. A nil lane reads as zero
// and is skipped on stores.
type Ptrs[T Lanes, A Arch] struct {
	p [MaxWidth]*T
}

// PtrsOf builds a pointer vector from a literal list; missing lanes are nil.
func PtrsOf[T Lanes, A Arch](ps ...*T) Ptrs[T, A] {
	var p Ptrs[T, A]
	copy(p.p[:Width[A]()], ps)
	return p
}

// PtrsTo returns &base[idx[i]] for every lane. It panics on an index
// outside base, as slice indexing does.
func PtrsTo[T Lanes, I ~int32 | ~int64, A Arch](base []T, idx Vec[I, A]) Ptrs[T, A] {
	var p Ptrs[T, A]
	for i := range Width[A]() {
		p.p[i] = &base[int(idx.lanes[i])]
	}
	return p
}

// Get returns the pointer in lane i.
func (p Ptrs[T, A]) Get(i int) *T {
	checkLane[A](i)
	return p.p[i]
}

// Put sets the pointer in lane i.
func (p *Ptrs[T, A]) Put(i int, ptr *T) {
	checkLane[A](i)
	p.p[i] = ptr
}

// Apply replaces *p[i] with f(*p[i]) for every non-nil lane, in lane
// order. Lanes sharing a pointer see each other's updates.
func (p Ptrs[T, A]) Apply(f func(T) T) {
	for i := range Width[A]() {
		if ptr := p.p[i]; ptr != nil {
			*ptr = f(*ptr)
		}
	}
}

// Gather loads *p[i] into every lane.
func Gather[T Lanes, A Arch](p Ptrs[T, A]) Vec[T, A] {
	var v Vec[T, A]
	for i := range Width[A]() {
		if ptr := p.p[i]; ptr != nil {
			v.lanes[i] = *ptr
		}
	}
	return v
}

// GatherMasked loads *p[i] into dst for the lanes active in m. Inactive
// lanes of dst keep their contents.
func GatherMasked[T Lanes, A Arch](dst *Vec[T, A], p Ptrs[T, A], m Mask[A]) {
	m.ForEachActive(func(i int) {
		if ptr := p.p[i]; ptr != nil {
			dst.lanes[i] = *ptr
		}
	})
}

// Scatter stores every lane of v through p. When lanes share a pointer the
// highest lane wins.
func Scatter[T Lanes, A Arch](p Ptrs[T, A], v Vec[T, A]) {
	for i := range Width[A]() {
		if ptr := p.p[i]; ptr != nil {
			*ptr = v.lanes[i]
		}
	}
}

// ScatterMasked stores the lanes of v active in m through p.
func ScatterMasked[T Lanes, A Arch](p Ptrs[T, A], v Vec[T, A], m Mask[A]) {
	m.ForEachActive(func(i int) {
		if ptr := p.p[i]; ptr != nil {
			*ptr = v.lanes[i]
		}
	})
}

// GatherIndex loads elements from non-contiguous memory locations specified by indices.
// For each lane i in the index vector, it loads src[indices[i]].
// If an index is out of bounds (negative or >= len(src)), the result for that lane is zero.
func GatherIndex[T Lanes, I ~int32 | ~int64, A Arch](src []T, indices Vec[I, A]) Vec[T, A] {
	if r, ok := nativeGatherIndex(src, indices, AllTrue[A]()); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		idx := int(indices.lanes[i])
		if idx >= 0 && idx < len(src) {
			r.lanes[i] = src[idx]
		}
	}
	return r
}

// GatherIndexMasked loads elements from non-contiguous memory locations specified by indices,
// but only for lanes where the mask is true.
// If an index is out of bounds or the mask is false, the result for that lane is zero.
func GatherIndexMasked[T Lanes, I ~int32 | ~int64, A Arch](src []T, indices Vec[I, A], mask Mask[A]) Vec[T, A] {
	if r, ok := nativeGatherIndex(src, indices, mask); ok {
		return r
	}
	var r Vec[T, A]
	mask.ForEachActive(func(i int) {
		idx := int(indices.lanes[i])
		if idx >= 0 && idx < len(src) {
			r.lanes[i] = src[idx]
		}
	})
	return r
}

// ScatterIndex stores elements to non-contiguous memory locations specified by indices.
// For each lane i in the vectors, it stores v[i] to dst[indices[i]].
// If an index is out of bounds (negative or >= len(dst)), that store is skipped.
func ScatterIndex[T Lanes, I ~int32 | ~int64, A Arch](v Vec[T, A], dst []T, indices Vec[I, A]) {
	ScatterIndexMasked(v, dst, indices, AllTrue[A]())
}

// ScatterIndexMasked stores elements to non-contiguous memory locations specified by indices,
// but only for lanes where the mask is true.
// If an index is out of bounds or the mask is false, that store is skipped.
func ScatterIndexMasked[T Lanes, I ~int32 | ~int64, A Arch](v Vec[T, A], dst []T, indices Vec[I, A], mask Mask[A]) {
	if nativeScatterIndex(v, dst, indices, mask) {
		return
	}
	mask.ForEachActive(func(i int) {
		idx := int(indices.lanes[i])
		if idx >= 0 && idx < len(dst) {
			dst[idx] = v.lanes[i]
		}
	})
}

// IndicesStride creates an index vector with values [start, start+stride, start+2*stride, ...].
func IndicesStride[I ~int32 | ~int64, A Arch](start, stride I) Vec[I, A] {
	var r Vec[I, A]
	for i := range Width[A]() {
		r.lanes[i] = start + I(i)*stride
	}
	return r
}
