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

package math

import "github.com/lanewise/go-spmd/spmd"

// Log computes the natural logarithm of each lane.
//
// Lanes <= 0 yield NaN: the invalid-lane mask is OR-ed into the result as
// the final step, setting every bit. Subnormal input is treated as the
// smallest normal value.
func Log[A spmd.Arch](v spmd.Vec[float32, A]) spmd.Vec[float32, A] {
	x, invalid := logKernel(v)
	return spmd.Or(x, invalid)
}

// LogInvalid returns the lanes Log reports as NaN for a non-positive
// argument.
func LogInvalid[A spmd.Arch](v spmd.Vec[float32, A]) spmd.Mask[A] {
	return spmd.LessEqual(v, spmd.Zero[float32, A]())
}

// logKernel returns the polynomial result before the invalid lanes are
// forced to NaN, together with the all-ones invalid-lane vector.
func logKernel[A spmd.Arch](v spmd.Vec[float32, A]) (x, invalid spmd.Vec[float32, A]) {
	one := spmd.Set[float32, A](1)
	invalid = spmd.Cmp(spmd.CmpLE, v, spmd.Zero[float32, A]())

	// Split x into mantissa in [0.5, 1) and exponent e.
	x = spmd.Max(v, bitsOf[A](minNormPosBits))
	imm0 := spmd.ShiftRight(spmd.Cast[int32](x), mantissaBits)
	x = spmd.And(x, bitsOf[A](invMantMaskBits))
	x = spmd.Or(x, spmd.Set[float32, A](0.5))
	imm0 = spmd.Sub(imm0, spmd.Set[int32, A](expBias))
	e := spmd.Add(spmd.Cvt[float32](imm0), one)

	// Below sqrt(1/2) use 2x-1 and e-1 so the polynomial argument is
	// centred on zero.
	mask := spmd.Cmp(spmd.CmpLT, x, spmd.Set[float32, A](logSqrtHalf_f32))
	tmp := spmd.And(x, mask)
	x = spmd.Sub(x, one)
	e = spmd.Sub(e, spmd.And(one, mask))
	x = spmd.Add(x, tmp)

	z := spmd.Mul(x, x)
	y := spmd.Set[float32, A](logP0_f32)
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](logP1_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](logP2_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](logP3_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](logP4_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](logP5_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](logP6_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](logP7_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](logP8_f32))
	y = spmd.Mul(y, x)
	y = spmd.Mul(y, z)

	y = spmd.Add(y, spmd.Mul(e, spmd.Set[float32, A](logQ1_f32)))
	y = spmd.Sub(y, spmd.Mul(z, spmd.Set[float32, A](0.5)))

	x = spmd.Add(x, y)
	x = spmd.Add(x, spmd.Mul(e, spmd.Set[float32, A](logQ2_f32)))
	return x, invalid
}

// bitsOf broadcasts a raw IEEE bit pattern.
func bitsOf[A spmd.Arch](b int32) spmd.Vec[float32, A] {
	return spmd.Cast[float32](spmd.Set[int32, A](b))
}
