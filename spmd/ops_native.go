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

import "unsafe"

// This file routes the portable operations to the archsimd kernels in
// ops_avx2.go and ops_avx512.go. A (T, A) pair has a native path when T
// is a 32-bit float or signed integer and A is one of the x86 descriptors
// whose gate is open; everything else reports false and the caller runs
// the generic loop.

type nativeKind int

const (
	kindNone nativeKind = iota
	kindAVXF32x8
	kindF32x8
	kindI32x8
	kindF32x16
	kindI32x16
)

func kindOf[T Lanes, A Arch]() nativeKind {
	if laneBits[T]() != 32 {
		return kindNone
	}
	float := isFloat[T]()
	var x T
	x--
	if !float && x > 0 {
		// unsigned
		return kindNone
	}

	var a A
	switch any(a).(type) {
	case AVX_8:
		if float && nativeAVX {
			return kindAVXF32x8
		}
	case AVX2_8:
		if !nativeAVX2 {
			return kindNone
		}
		if float {
			return kindF32x8
		}
		return kindI32x8
	case AVX512_16:
		if !nativeAVX512 {
			return kindNone
		}
		if float {
			return kindF32x16
		}
		return kindI32x16
	}
	return kindNone
}

func viewF32[T Lanes, A Arch](v *Vec[T, A]) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&v.lanes[0])), Width[A]())
}

func viewI32[T Lanes, A Arch](v *Vec[T, A]) []int32 {
	return unsafe.Slice((*int32)(unsafe.Pointer(&v.lanes[0])), Width[A]())
}

func nativeSupports[T Lanes, A Arch](op Op) bool {
	switch kindOf[T, A]() {
	case kindAVXF32x8:
		switch op {
		case OpAdd, OpSub, OpMul, OpDiv, OpMin, OpMax, OpFloor, OpCmp, OpCmpEq, OpZero:
			return true
		case OpFMAdd:
			return nativeFMA
		}
	case kindF32x8:
		switch op {
		case OpAdd, OpSub, OpMul, OpDiv, OpMin, OpMax, OpAnd, OpAndNot, OpOr, OpXor,
			OpFloor, OpCmp, OpCmpEq, OpCast, OpCvt, OpZero:
			return true
		case OpFMAdd:
			return nativeFMA
		case OpGather, OpScatter:
			return CurrentGatherPolicy() == GatherHardware
		}
	case kindI32x8:
		switch op {
		case OpAdd, OpSub, OpAnd, OpAndNot, OpOr, OpXor, OpCmp, OpCmpEq,
			OpCast, OpCvt, OpZero, OpShiftLeft, OpShiftRight:
			return true
		case OpGather, OpScatter:
			return CurrentGatherPolicy() == GatherHardware
		}
	case kindF32x16:
		switch op {
		case OpAdd, OpSub, OpMul, OpDiv, OpMin, OpMax, OpAnd, OpAndNot, OpOr, OpXor,
			OpFloor, OpCmp, OpCmpEq, OpFMAdd, OpCast, OpCvt, OpZero:
			return true
		}
	case kindI32x16:
		switch op {
		case OpAdd, OpSub, OpAnd, OpAndNot, OpOr, OpXor, OpCmp, OpCmpEq,
			OpCast, OpCvt, OpZero, OpShiftLeft, OpShiftRight:
			return true
		}
	}
	return false
}

func nativeBinary[T Lanes, A Arch](op Op, a, b Vec[T, A]) (r Vec[T, A], ok bool) {
	switch kindOf[T, A]() {
	case kindAVXF32x8:
		ok = binaryF32x8(op, viewF32(&r), viewF32(&a), viewF32(&b), false)
	case kindF32x8:
		ok = binaryF32x8(op, viewF32(&r), viewF32(&a), viewF32(&b), true)
	case kindI32x8:
		ok = binaryI32x8(op, viewI32(&r), viewI32(&a), viewI32(&b))
	case kindF32x16:
		ok = binaryF32x16(op, viewF32(&r), viewF32(&a), viewF32(&b))
	case kindI32x16:
		ok = binaryI32x16(op, viewI32(&r), viewI32(&a), viewI32(&b))
	}
	return r, ok
}

func nativeUnary[T Lanes, A Arch](op Op, a Vec[T, A]) (r Vec[T, A], ok bool) {
	if op != OpFloor {
		return r, false
	}
	switch kindOf[T, A]() {
	case kindAVXF32x8, kindF32x8:
		floorF32x8(viewF32(&r), viewF32(&a))
		return r, true
	case kindF32x16:
		floorF32x16(viewF32(&r), viewF32(&a))
		return r, true
	}
	return r, false
}

func nativeFMAdd[T Lanes, A Arch](a, b, c Vec[T, A]) (r Vec[T, A], ok bool) {
	switch kindOf[T, A]() {
	case kindAVXF32x8, kindF32x8:
		if !nativeFMA {
			return r, false
		}
		fmaddF32x8(viewF32(&r), viewF32(&a), viewF32(&b), viewF32(&c))
		return r, true
	case kindF32x16:
		fmaddF32x16(viewF32(&r), viewF32(&a), viewF32(&b), viewF32(&c))
		return r, true
	}
	return r, false
}

func nativeCompare[T Lanes, A Arch](p Predicate, a, b Vec[T, A]) (Mask[A], bool) {
	var bits uint32
	switch kindOf[T, A]() {
	case kindAVXF32x8, kindF32x8:
		bits = compareF32x8(p, viewF32(&a), viewF32(&b))
	case kindI32x8:
		bits = compareI32x8(p, viewI32(&a), viewI32(&b))
	case kindF32x16:
		bits = compareF32x16(p, viewF32(&a), viewF32(&b))
	case kindI32x16:
		bits = compareI32x16(p, viewI32(&a), viewI32(&b))
	default:
		return Mask[A]{}, false
	}
	return MaskFromBits[A](bits), true
}

func nativeShift[T Integers, A Arch](op Op, v Vec[T, A], n uint) (r Vec[T, A], ok bool) {
	left := op == OpShiftLeft
	switch kindOf[T, A]() {
	case kindI32x8:
		shiftI32x8(viewI32(&r), viewI32(&v), n, left)
		return r, true
	case kindI32x16:
		shiftI32x16(viewI32(&r), viewI32(&v), n, left)
		return r, true
	}
	return r, false
}

// nativeCast handles the float32 <-> int32 reinterpretation.
func nativeCast[R, T Lanes, A Arch](v Vec[T, A]) (r Vec[R, A], ok bool) {
	from, to := kindOf[T, A](), kindOf[R, A]()
	switch {
	case from == kindF32x8 && to == kindI32x8:
		castF32ToI32x8(viewI32(&r), viewF32(&v))
	case from == kindI32x8 && to == kindF32x8:
		castI32ToF32x8(viewF32(&r), viewI32(&v))
	case from == kindF32x16 && to == kindI32x16:
		castF32ToI32x16(viewI32(&r), viewF32(&v))
	case from == kindI32x16 && to == kindF32x16:
		castI32ToF32x16(viewF32(&r), viewI32(&v))
	default:
		return r, false
	}
	return r, true
}

// nativeCvt handles the truncating float32 -> int32 conversion and its
// inverse.
func nativeCvt[R, T Lanes, A Arch](v Vec[T, A]) (r Vec[R, A], ok bool) {
	from, to := kindOf[T, A](), kindOf[R, A]()
	switch {
	case from == kindF32x8 && to == kindI32x8:
		cvtF32ToI32x8(viewI32(&r), viewF32(&v))
	case from == kindI32x8 && to == kindF32x8:
		cvtI32ToF32x8(viewF32(&r), viewI32(&v))
	case from == kindF32x16 && to == kindI32x16:
		cvtF32ToI32x16(viewI32(&r), viewF32(&v))
	case from == kindI32x16 && to == kindF32x16:
		cvtI32ToF32x16(viewF32(&r), viewI32(&v))
	default:
		return r, false
	}
	return r, true
}

func nativeZero[T Lanes, A Arch]() (r Vec[T, A], ok bool) {
	switch kindOf[T, A]() {
	case kindAVXF32x8, kindF32x8, kindI32x8:
		zero32x8(viewF32(&r))
		return r, true
	case kindF32x16, kindI32x16:
		zero32x16(viewF32(&r))
		return r, true
	}
	return r, false
}
