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

//go:build amd64 && goexperiment.simd

package spmd

import (
	"math"
	"math/bits"
	"simd/archsimd"
	"unsafe"
)

// This file provides the AVX2 gather and scatter path for 32-bit lanes
// with int32 indices. archsimd does not expose VGATHERDPS, so the bounds
// check runs on vector compares and the element moves are scalar.

func hardwareGather[T Lanes, I ~int32 | ~int64, A Arch]() bool {
	if CurrentGatherPolicy() != GatherHardware || laneBits[I]() != 32 {
		return false
	}
	k := kindOf[T, A]()
	return k == kindF32x8 || k == kindI32x8
}

func words[T Lanes](s []T) []int32 {
	return unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}

func nativeGatherIndex[T Lanes, I ~int32 | ~int64, A Arch](src []T, indices Vec[I, A], m Mask[A]) (r Vec[T, A], ok bool) {
	if !hardwareGather[T, I, A]() {
		return r, false
	}
	gatherI32x8(viewI32(&r), words(src), viewI32(&indices), m.bits)
	return r, true
}

func nativeScatterIndex[T Lanes, I ~int32 | ~int64, A Arch](v Vec[T, A], dst []T, indices Vec[I, A], m Mask[A]) bool {
	if !hardwareGather[T, I, A]() {
		return false
	}
	scatterI32x8(words(dst), viewI32(&v), viewI32(&indices), m.bits)
	return true
}

// inRangeI32x8 returns the lanes of idx within [0, n) as a bitmask.
func inRangeI32x8(idx []int32, n int) uint32 {
	indices := archsimd.LoadInt32x8Slice(idx)
	lo := indices.Greater(archsimd.BroadcastInt32x8(-1))
	hi := indices.Less(archsimd.BroadcastInt32x8(int32(min(n, math.MaxInt32))))
	return uint32(lo.ToBits()) & uint32(hi.ToBits())
}

func gatherI32x8(r, src, idx []int32, active uint32) {
	valid := inRangeI32x8(idx, len(src)) & active
	for b := valid; b != 0; b &= b - 1 {
		i := bits.TrailingZeros32(b)
		r[i] = src[idx[i]]
	}
}

func scatterI32x8(dst, v, idx []int32, active uint32) {
	valid := inRangeI32x8(idx, len(dst)) & active
	for b := valid; b != 0; b &= b - 1 {
		i := bits.TrailingZeros32(b)
		dst[idx[i]] = v[i]
	}
}
