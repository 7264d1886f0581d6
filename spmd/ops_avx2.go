//go:build amd64 && goexperiment.simd

package spmd

import (
	"simd/archsimd"
)

// This file provides the 256-bit kernels behind the AVX_8 and AVX2_8
// descriptors. Each kernel loads its operands from lane storage, runs the
// archsimd instruction and stores the result back. Kernels touching
// 256-bit integer registers are only reached for AVX2_8.

// binaryF32x8 runs a two-operand float32 op. Bitwise ops need AVX2 and
// report false without it.
func binaryF32x8(op Op, r, a, b []float32, avx2 bool) bool {
	x := archsimd.LoadFloat32x8Slice(a)
	y := archsimd.LoadFloat32x8Slice(b)
	var z archsimd.Float32x8
	switch op {
	case OpAdd:
		z = x.Add(y)
	case OpSub:
		z = x.Sub(y)
	case OpMul:
		z = x.Mul(y)
	case OpDiv:
		z = x.Div(y)
	case OpMin:
		// Select on the ordered compare so NaN and ±0 pick the same lane as
		// the generic loop.
		z = x.Merge(y, x.Less(y))
	case OpMax:
		z = x.Merge(y, x.Greater(y))
	case OpAnd, OpAndNot, OpOr, OpXor:
		if !avx2 {
			return false
		}
		z = bitwiseI32x8(op, x.AsInt32x8(), y.AsInt32x8()).AsFloat32x8()
	default:
		return false
	}
	z.StoreSlice(r)
	return true
}

func binaryI32x8(op Op, r, a, b []int32) bool {
	x := archsimd.LoadInt32x8Slice(a)
	y := archsimd.LoadInt32x8Slice(b)
	var z archsimd.Int32x8
	switch op {
	case OpAdd:
		z = x.Add(y)
	case OpSub:
		z = x.Sub(y)
	case OpAnd, OpAndNot, OpOr, OpXor:
		z = bitwiseI32x8(op, x, y)
	default:
		return false
	}
	z.StoreSlice(r)
	return true
}

func bitwiseI32x8(op Op, x, y archsimd.Int32x8) archsimd.Int32x8 {
	switch op {
	case OpAnd:
		return x.And(y)
	case OpOr:
		return x.Or(y)
	case OpXor:
		return x.Xor(y)
	default:
		// ^x & y
		return y.AndNot(x)
	}
}

// floorF32x8 rounds to nearest even and steps down the lanes that rounded up.
func floorF32x8(r, a []float32) {
	x := archsimd.LoadFloat32x8Slice(a)
	rounded := x.RoundToEven()
	one := archsimd.BroadcastFloat32x8(1)
	rounded.Sub(one).Merge(rounded, rounded.Greater(x)).StoreSlice(r)
}

func fmaddF32x8(r, a, b, c []float32) {
	x := archsimd.LoadFloat32x8Slice(a)
	y := archsimd.LoadFloat32x8Slice(b)
	z := archsimd.LoadFloat32x8Slice(c)
	x.MulAdd(y, z).StoreSlice(r)
}

func compareF32x8(p Predicate, a, b []float32) uint32 {
	x := archsimd.LoadFloat32x8Slice(a)
	y := archsimd.LoadFloat32x8Slice(b)
	var m archsimd.Mask32x8
	switch p {
	case CmpLT:
		m = x.Less(y)
	case CmpLE:
		m = x.LessEqual(y)
	case CmpGT:
		m = x.Greater(y)
	case CmpGE:
		m = x.GreaterEqual(y)
	case CmpEQ:
		m = x.Equal(y)
	default:
		// Ordered not-equal: NaN lanes stay false.
		m = x.Less(y).Or(x.Greater(y))
	}
	return uint32(m.ToBits())
}

func compareI32x8(p Predicate, a, b []int32) uint32 {
	x := archsimd.LoadInt32x8Slice(a)
	y := archsimd.LoadInt32x8Slice(b)
	const all = 0xFF
	switch p {
	case CmpLT:
		return uint32(x.Less(y).ToBits())
	case CmpLE:
		return ^uint32(x.Greater(y).ToBits()) & all
	case CmpGT:
		return uint32(x.Greater(y).ToBits())
	case CmpGE:
		return ^uint32(x.Less(y).ToBits()) & all
	case CmpEQ:
		return uint32(x.Equal(y).ToBits())
	default:
		return ^uint32(x.Equal(y).ToBits()) & all
	}
}

func shiftI32x8(r, a []int32, n uint, left bool) {
	x := archsimd.LoadInt32x8Slice(a)
	if left {
		x.ShiftAllLeft(uint64(n)).StoreSlice(r)
		return
	}
	x.ShiftAllRight(uint64(n)).StoreSlice(r)
}

func castF32ToI32x8(r []int32, a []float32) {
	archsimd.LoadFloat32x8Slice(a).AsInt32x8().StoreSlice(r)
}

func castI32ToF32x8(r []float32, a []int32) {
	archsimd.LoadInt32x8Slice(a).AsFloat32x8().StoreSlice(r)
}

// cvtF32ToI32x8 truncates toward zero (VCVTTPS2DQ).
func cvtF32ToI32x8(r []int32, a []float32) {
	archsimd.LoadFloat32x8Slice(a).ConvertToInt32().StoreSlice(r)
}

func cvtI32ToF32x8(r []float32, a []int32) {
	archsimd.LoadInt32x8Slice(a).ConvertToFloat32().StoreSlice(r)
}

func zero32x8(r []float32) {
	archsimd.BroadcastFloat32x8(0).StoreSlice(r)
}
