//go:build amd64 && goexperiment.simd

package spmd

import (
	"simd/archsimd"
)

// This file provides the 512-bit kernels behind the AVX512_16 descriptor.
// AVX-512F carries FMA and full-width integer ops, so every float32 and
// int32 kernel is available once the descriptor's gate is open.

func binaryF32x16(op Op, r, a, b []float32) bool {
	x := archsimd.LoadFloat32x16Slice(a)
	y := archsimd.LoadFloat32x16Slice(b)
	var z archsimd.Float32x16
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
		z = x.Merge(y, x.Less(y))
	case OpMax:
		z = x.Merge(y, x.Greater(y))
	case OpAnd, OpAndNot, OpOr, OpXor:
		z = bitwiseI32x16(op, x.AsInt32x16(), y.AsInt32x16()).AsFloat32x16()
	default:
		return false
	}
	z.StoreSlice(r)
	return true
}

func binaryI32x16(op Op, r, a, b []int32) bool {
	x := archsimd.LoadInt32x16Slice(a)
	y := archsimd.LoadInt32x16Slice(b)
	var z archsimd.Int32x16
	switch op {
	case OpAdd:
		z = x.Add(y)
	case OpSub:
		z = x.Sub(y)
	case OpAnd, OpAndNot, OpOr, OpXor:
		z = bitwiseI32x16(op, x, y)
	default:
		return false
	}
	z.StoreSlice(r)
	return true
}

func bitwiseI32x16(op Op, x, y archsimd.Int32x16) archsimd.Int32x16 {
	switch op {
	case OpAnd:
		return x.And(y)
	case OpOr:
		return x.Or(y)
	case OpXor:
		return x.Xor(y)
	default:
		return y.AndNot(x)
	}
}

func floorF32x16(r, a []float32) {
	x := archsimd.LoadFloat32x16Slice(a)
	rounded := x.RoundToEvenScaled(0)
	one := archsimd.BroadcastFloat32x16(1)
	rounded.Sub(one).Merge(rounded, rounded.Greater(x)).StoreSlice(r)
}

func fmaddF32x16(r, a, b, c []float32) {
	x := archsimd.LoadFloat32x16Slice(a)
	y := archsimd.LoadFloat32x16Slice(b)
	z := archsimd.LoadFloat32x16Slice(c)
	x.MulAdd(y, z).StoreSlice(r)
}

func compareF32x16(p Predicate, a, b []float32) uint32 {
	x := archsimd.LoadFloat32x16Slice(a)
	y := archsimd.LoadFloat32x16Slice(b)
	var m archsimd.Mask32x16
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
		m = x.Less(y).Or(x.Greater(y))
	}
	return uint32(m.ToBits())
}

func compareI32x16(p Predicate, a, b []int32) uint32 {
	x := archsimd.LoadInt32x16Slice(a)
	y := archsimd.LoadInt32x16Slice(b)
	const all = 0xFFFF
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

func shiftI32x16(r, a []int32, n uint, left bool) {
	x := archsimd.LoadInt32x16Slice(a)
	if left {
		x.ShiftAllLeft(uint64(n)).StoreSlice(r)
		return
	}
	x.ShiftAllRight(uint64(n)).StoreSlice(r)
}

func castF32ToI32x16(r []int32, a []float32) {
	archsimd.LoadFloat32x16Slice(a).AsInt32x16().StoreSlice(r)
}

func castI32ToF32x16(r []float32, a []int32) {
	archsimd.LoadInt32x16Slice(a).AsFloat32x16().StoreSlice(r)
}

func cvtF32ToI32x16(r []int32, a []float32) {
	archsimd.LoadFloat32x16Slice(a).ConvertToInt32().StoreSlice(r)
}

func cvtI32ToF32x16(r []float32, a []int32) {
	archsimd.LoadInt32x16Slice(a).ConvertToFloat32().StoreSlice(r)
}

func zero32x16(r []float32) {
	archsimd.BroadcastFloat32x16(0).StoreSlice(r)
}
