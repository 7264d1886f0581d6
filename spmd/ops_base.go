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
	"math"
	"unsafe"
)

// Op names a portable operation of the dispatch layer.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMin
	OpMax
	OpAnd
	OpAndNot
	OpOr
	OpXor
	OpFloor
	OpCmp
	OpCmpEq
	OpFMAdd
	OpCast
	OpCvt
	OpZero
	OpShiftLeft
	OpShiftRight
	OpGather
	OpScatter
	numOps
)

var opNames = [numOps]string{
	OpAdd:        "add",
	OpSub:        "sub",
	OpMul:        "mul",
	OpDiv:        "div",
	OpMin:        "min",
	OpMax:        "max",
	OpAnd:        "and",
	OpAndNot:     "andnot",
	OpOr:         "or",
	OpXor:        "xor",
	OpFloor:      "floor",
	OpCmp:        "cmp",
	OpCmpEq:      "cmpeq",
	OpFMAdd:      "fmadd",
	OpCast:       "cast",
	OpCvt:        "cvt",
	OpZero:       "zero",
	OpShiftLeft:  "shl",
	OpShiftRight: "shr",
	OpGather:     "gather",
	OpScatter:    "scatter",
}

// String returns the short operation name.
func (op Op) String() string {
	if op < 0 || op >= numOps {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// Ops lists every portable operation.
func Ops() []Op {
	ops := make([]Op, numOps)
	for i := range ops {
		ops[i] = Op(i)
	}
	return ops
}

// Accelerated reports whether op runs a native override for (T, A) on
// this machine. Everything else runs the generic per-lane loop.
func Accelerated[T Lanes, A Arch](op Op) bool {
	return nativeSupports[T, A](op)
}

// Predicate selects the relation tested by Compare and Cmp. All predicates
// are ordered: a NaN operand makes every one of them false.
type Predicate int

const (
	CmpLT Predicate = iota
	CmpLE
	CmpGT
	CmpGE
	CmpEQ
	CmpNE
)

// String returns the predicate's operator spelling.
func (p Predicate) String() string {
	switch p {
	case CmpLT:
		return "<"
	case CmpLE:
		return "<="
	case CmpGT:
		return ">"
	case CmpGE:
		return ">="
	case CmpEQ:
		return "=="
	case CmpNE:
		return "!="
	default:
		return fmt.Sprintf("Predicate(%d)", int(p))
	}
}

func compareLane[T Lanes](p Predicate, a, b T) bool {
	switch p {
	case CmpLT:
		return a < b
	case CmpLE:
		return a <= b
	case CmpGT:
		return a > b
	case CmpGE:
		return a >= b
	case CmpEQ:
		return a == b
	case CmpNE:
		return a < b || a > b
	}
	return false
}

// Add returns a + b lane-wise.
func Add[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpAdd, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = a.lanes[i] + b.lanes[i]
	}
	return r
}

// Sub returns a - b lane-wise.
func Sub[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpSub, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = a.lanes[i] - b.lanes[i]
	}
	return r
}

// Mul returns a * b lane-wise. Integer lanes keep the low bits.
func Mul[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpMul, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = a.lanes[i] * b.lanes[i]
	}
	return r
}

// Div returns a / b lane-wise. Integer division by zero panics as it does
// for scalars.
func Div[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpDiv, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = a.lanes[i] / b.lanes[i]
	}
	return r
}

// Min returns the lane-wise minimum. When the lanes compare unordered or
// equal the lane from b is returned, matching MINPS.
func Min[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpMin, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		if a.lanes[i] < b.lanes[i] {
			r.lanes[i] = a.lanes[i]
		} else {
			r.lanes[i] = b.lanes[i]
		}
	}
	return r
}

// Max returns the lane-wise maximum. When the lanes compare unordered or
// equal the lane from b is returned, matching MAXPS.
func Max[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpMax, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		if a.lanes[i] > b.lanes[i] {
			r.lanes[i] = a.lanes[i]
		} else {
			r.lanes[i] = b.lanes[i]
		}
	}
	return r
}

// And returns the bitwise a & b. Float lanes operate on their IEEE bits.
func And[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpAnd, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = fromBits[T](toBits(a.lanes[i]) & toBits(b.lanes[i]))
	}
	return r
}

// AndNot returns the bitwise ^a & b, the operand order of ANDNPS.
func AndNot[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpAndNot, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = fromBits[T](^toBits(a.lanes[i]) & toBits(b.lanes[i]))
	}
	return r
}

// Or returns the bitwise a | b.
func Or[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpOr, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = fromBits[T](toBits(a.lanes[i]) | toBits(b.lanes[i]))
	}
	return r
}

// Xor returns the bitwise a ^ b.
func Xor[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	if r, ok := nativeBinary(OpXor, a, b); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = fromBits[T](toBits(a.lanes[i]) ^ toBits(b.lanes[i]))
	}
	return r
}

// Floor rounds float lanes toward negative infinity. Integer lanes are
// returned unchanged.
func Floor[T Lanes, A Arch](a Vec[T, A]) Vec[T, A] {
	if !isFloat[T]() {
		return a
	}
	if r, ok := nativeUnary(OpFloor, a); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = T(math.Floor(float64(a.lanes[i])))
	}
	return r
}

// FMAdd returns a*b + c. Float lanes are computed with a single rounding,
// as the FMA3 instructions do.
func FMAdd[T Lanes, A Arch](a, b, c Vec[T, A]) Vec[T, A] {
	if r, ok := nativeFMAdd(a, b, c); ok {
		return r
	}
	var r Vec[T, A]
	if isFloat[T]() && laneBits[T]() == 32 {
		for i := range Width[A]() {
			r.lanes[i] = T(fma32(float32(a.lanes[i]), float32(b.lanes[i]), float32(c.lanes[i])))
		}
		return r
	}
	if isFloat[T]() {
		for i := range Width[A]() {
			r.lanes[i] = T(math.FMA(float64(a.lanes[i]), float64(b.lanes[i]), float64(c.lanes[i])))
		}
		return r
	}
	for i := range Width[A]() {
		r.lanes[i] = a.lanes[i]*b.lanes[i] + c.lanes[i]
	}
	return r
}

// fma32 returns a*b+c rounded once to float32. The float64 product of two
// float32 values is exact; the sum is rounded to odd so that narrowing it
// to float32 cannot round a second time in the wrong direction.
func fma32(a, b, c float32) float32 {
	p := float64(a) * float64(b)
	s := p + float64(c)
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return float32(math.FMA(float64(a), float64(b), float64(c)))
	}
	bb := s - p
	e := (p - (s - bb)) + (float64(c) - bb)
	if e != 0 && math.Float64bits(s)&1 == 0 {
		s = math.Nextafter(s, math.Copysign(math.Inf(1), e))
	}
	return float32(s)
}

// Compare evaluates p lane-wise and returns the result as a mask.
func Compare[T Lanes, A Arch](p Predicate, a, b Vec[T, A]) Mask[A] {
	if m, ok := nativeCompare(p, a, b); ok {
		return m
	}
	var bits uint32
	for i := range Width[A]() {
		if compareLane(p, a.lanes[i], b.lanes[i]) {
			bits |= 1 << i
		}
	}
	return Mask[A]{bits: bits}
}

// Less returns the mask of lanes where a < b.
func Less[T Lanes, A Arch](a, b Vec[T, A]) Mask[A] { return Compare(CmpLT, a, b) }

// LessEqual returns the mask of lanes where a <= b.
func LessEqual[T Lanes, A Arch](a, b Vec[T, A]) Mask[A] { return Compare(CmpLE, a, b) }

// Greater returns the mask of lanes where a > b.
func Greater[T Lanes, A Arch](a, b Vec[T, A]) Mask[A] { return Compare(CmpGT, a, b) }

// GreaterEqual returns the mask of lanes where a >= b.
func GreaterEqual[T Lanes, A Arch](a, b Vec[T, A]) Mask[A] { return Compare(CmpGE, a, b) }

// Equal returns the mask of lanes where a == b.
func Equal[T Lanes, A Arch](a, b Vec[T, A]) Mask[A] { return Compare(CmpEQ, a, b) }

// NotEqual returns the mask of lanes where a and b are ordered and differ.
func NotEqual[T Lanes, A Arch](a, b Vec[T, A]) Mask[A] { return Compare(CmpNE, a, b) }

// Cmp evaluates p lane-wise and returns a lane vector holding all-ones
// bits where it holds and zero elsewhere, ready for And/AndNot selection.
func Cmp[T Lanes, A Arch](p Predicate, a, b Vec[T, A]) Vec[T, A] {
	return LaneMask[T](Compare(p, a, b))
}

// CmpEq is Cmp(CmpEQ, a, b).
func CmpEq[T Lanes, A Arch](a, b Vec[T, A]) Vec[T, A] {
	return Cmp(CmpEQ, a, b)
}

// Merge returns a where m is set and b elsewhere.
func Merge[T Lanes, A Arch](a, b Vec[T, A], m Mask[A]) Vec[T, A] {
	r := b
	m.ForEachActive(func(i int) {
		r.lanes[i] = a.lanes[i]
	})
	return r
}

// Cast reinterprets the bits of every lane as R. T and R must have the
// same size; Cast panics otherwise.
func Cast[R, T Lanes, A Arch](v Vec[T, A]) Vec[R, A] {
	if laneBits[R]() != laneBits[T]() {
		panic(fmt.Sprintf("spmd: Cast between %d-bit and %d-bit lanes", laneBits[T](), laneBits[R]()))
	}
	if r, ok := nativeCast[R](v); ok {
		return r
	}
	var r Vec[R, A]
	for i := range Width[A]() {
		r.lanes[i] = fromBits[R](toBits(v.lanes[i]))
	}
	return r
}

// Cvt converts every lane to R by value. Float to integer conversion
// truncates toward zero.
func Cvt[R, T Lanes, A Arch](v Vec[T, A]) Vec[R, A] {
	if r, ok := nativeCvt[R](v); ok {
		return r
	}
	var r Vec[R, A]
	for i := range Width[A]() {
		r.lanes[i] = R(v.lanes[i])
	}
	return r
}

// Zero returns a vector with every lane zero.
func Zero[T Lanes, A Arch]() Vec[T, A] {
	if r, ok := nativeZero[T, A](); ok {
		return r
	}
	return Vec[T, A]{}
}

// ShiftLeft shifts every lane left by n bits.
func ShiftLeft[T Integers, A Arch](v Vec[T, A], n uint) Vec[T, A] {
	if r, ok := nativeShift(OpShiftLeft, v, n); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = v.lanes[i] << n
	}
	return r
}

// ShiftRight shifts every lane right by n bits, arithmetically for
// signed lanes.
func ShiftRight[T Integers, A Arch](v Vec[T, A], n uint) Vec[T, A] {
	if r, ok := nativeShift(OpShiftRight, v, n); ok {
		return r
	}
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = v.lanes[i] >> n
	}
	return r
}

// Neg returns -v lane-wise. Float lanes flip their sign bit, so Neg of +0
// is -0.
func Neg[T Lanes, A Arch](v Vec[T, A]) Vec[T, A] {
	var r Vec[T, A]
	for i := range Width[A]() {
		r.lanes[i] = -v.lanes[i]
	}
	return r
}

// Abs returns |v| lane-wise. Float lanes clear the sign bit; the most
// negative signed integer stays negative.
func Abs[T Lanes, A Arch](v Vec[T, A]) Vec[T, A] {
	var r Vec[T, A]
	if isFloat[T]() {
		sign := uint64(1) << (laneBits[T]() - 1)
		for i := range Width[A]() {
			r.lanes[i] = fromBits[T](toBits(v.lanes[i]) &^ sign)
		}
		return r
	}
	for i := range Width[A]() {
		x := v.lanes[i]
		if x < 0 {
			x = -x
		}
		r.lanes[i] = x
	}
	return r
}

// ReduceSum returns the sum of all lanes, accumulated from lane 0 upwards.
func ReduceSum[T Lanes, A Arch](v Vec[T, A]) T {
	var s T
	for i := range Width[A]() {
		s += v.lanes[i]
	}
	return s
}

// ReduceMax returns the largest lane.
func ReduceMax[T Lanes, A Arch](v Vec[T, A]) T {
	m := v.lanes[0]
	for i := 1; i < Width[A](); i++ {
		if v.lanes[i] > m {
			m = v.lanes[i]
		}
	}
	return m
}

// ReduceMin returns the smallest lane.
func ReduceMin[T Lanes, A Arch](v Vec[T, A]) T {
	m := v.lanes[0]
	for i := 1; i < Width[A](); i++ {
		if v.lanes[i] < m {
			m = v.lanes[i]
		}
	}
	return m
}

func laneBits[T Lanes]() uint {
	var x T
	return uint(unsafe.Sizeof(x)) * 8
}

// isFloat distinguishes float from integer element types without a type
// switch, so named types (~float32) are classified too.
func isFloat[T Lanes]() bool {
	var x T = 1
	return x/2 != 0
}

func toBits[T Lanes](x T) uint64 {
	p := unsafe.Pointer(&x)
	switch unsafe.Sizeof(x) {
	case 1:
		return uint64(*(*uint8)(p))
	case 2:
		return uint64(*(*uint16)(p))
	case 4:
		return uint64(*(*uint32)(p))
	default:
		return *(*uint64)(p)
	}
}

func fromBits[T Lanes](b uint64) T {
	var x T
	p := unsafe.Pointer(&x)
	switch unsafe.Sizeof(x) {
	case 1:
		*(*uint8)(p) = uint8(b)
	case 2:
		*(*uint16)(p) = uint16(b)
	case 4:
		*(*uint32)(p) = uint32(b)
	default:
		*(*uint64)(p) = b
	}
	return x
}

func allOnes[T Lanes]() T {
	return fromBits[T](^uint64(0))
}
