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

// Exp computes e^x for each lane.
//
// x is clamped to ±88.3762626647949 first, so large inputs saturate
// rather than overflow. NaN input gives a finite result.
func Exp[A spmd.Arch](v spmd.Vec[float32, A]) spmd.Vec[float32, A] {
	one := spmd.Set[float32, A](1)

	x := spmd.Min(v, spmd.Set[float32, A](expHi_f32))
	x = spmd.Max(x, spmd.Set[float32, A](expLo_f32))

	// exp(x) = exp(g + n*log(2)) with n = round(x/log(2)).
	fx := spmd.FMAdd(x, spmd.Set[float32, A](expLog2e_f32), spmd.Set[float32, A](0.5))
	tmp := spmd.Floor(fx)
	mask := spmd.And(spmd.Cmp(spmd.CmpGT, tmp, fx), one)
	fx = spmd.Sub(tmp, mask)

	x = spmd.Sub(x, spmd.Mul(fx, spmd.Set[float32, A](expLn2Hi_f32)))
	x = spmd.Sub(x, spmd.Mul(fx, spmd.Set[float32, A](expLn2Lo_f32)))
	z := spmd.Mul(x, x)

	y := spmd.Set[float32, A](expP0_f32)
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](expP1_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](expP2_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](expP3_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](expP4_f32))
	y = spmd.FMAdd(y, x, spmd.Set[float32, A](expP5_f32))
	y = spmd.FMAdd(y, z, x)
	y = spmd.Add(y, one)

	// Build 2^n directly in the exponent field.
	imm0 := spmd.Add(spmd.Cvt[int32](fx), spmd.Set[int32, A](expBias))
	imm0 = spmd.ShiftLeft(imm0, mantissaBits)
	return spmd.Mul(y, spmd.Cast[float32](imm0))
}
