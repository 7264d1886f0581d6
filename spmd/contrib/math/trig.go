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

// octant is the range reduction shared by Sin, Cos and SinCos: |v| is
// mapped to j = (int(|v|*4/π)+1) &^ 1 and x = |v| - j*π/4, which lies in
// [-π/4, π/4].
type octant[A spmd.Arch] struct {
	x spmd.Vec[float32, A]
	j spmd.Vec[int32, A]
}

func reduce[A spmd.Arch](v spmd.Vec[float32, A]) octant[A] {
	x := spmd.And(v, bitsOf[A](invSignMaskBits))

	y := spmd.Mul(x, spmd.Set[float32, A](trigFourOverPi_f32))
	j := spmd.Cvt[int32](y)
	j = spmd.And(spmd.Add(j, spmd.Set[int32, A](1)), spmd.Set[int32, A](^1))
	y = spmd.Cvt[float32](j)

	// Extended-precision x - y*π/4.
	x = spmd.FMAdd(y, spmd.Set[float32, A](trigDP1_f32), x)
	x = spmd.FMAdd(y, spmd.Set[float32, A](trigDP2_f32), x)
	x = spmd.FMAdd(y, spmd.Set[float32, A](trigDP3_f32), x)
	return octant[A]{x: x, j: j}
}

// polyMask is all ones in the lanes where the sine polynomial applies.
func polyMask[A spmd.Arch](j spmd.Vec[int32, A]) spmd.Vec[float32, A] {
	two := spmd.Set[int32, A](2)
	return spmd.Cast[float32](spmd.CmpEq(spmd.And(j, two), spmd.Zero[int32, A]()))
}

// signFromBit moves bit 2 of j, or of its complement, into the sign bit.
func signFromBit[A spmd.Arch](j spmd.Vec[int32, A], complement bool) spmd.Vec[float32, A] {
	four := spmd.Set[int32, A](4)
	var b spmd.Vec[int32, A]
	if complement {
		b = spmd.AndNot(j, four)
	} else {
		b = spmd.And(j, four)
	}
	return spmd.Cast[float32](spmd.ShiftLeft(b, 29))
}

// polys evaluates the cosine and sine polynomials on the reduced argument.
func polys[A spmd.Arch](x spmd.Vec[float32, A]) (cos, sin spmd.Vec[float32, A]) {
	z := spmd.Mul(x, x)

	y1 := spmd.Set[float32, A](trigCosP0_f32)
	y1 = spmd.FMAdd(y1, z, spmd.Set[float32, A](trigCosP1_f32))
	y1 = spmd.FMAdd(y1, z, spmd.Set[float32, A](trigCosP2_f32))
	y1 = spmd.Mul(y1, z)
	y1 = spmd.Mul(y1, z)
	y1 = spmd.Sub(y1, spmd.Mul(z, spmd.Set[float32, A](0.5)))
	y1 = spmd.Add(y1, spmd.Set[float32, A](1))

	y2 := spmd.Set[float32, A](trigSinP0_f32)
	y2 = spmd.FMAdd(y2, z, spmd.Set[float32, A](trigSinP1_f32))
	y2 = spmd.FMAdd(y2, z, spmd.Set[float32, A](trigSinP2_f32))
	y2 = spmd.Mul(y2, z)
	y2 = spmd.FMAdd(y2, x, x)
	return y1, y2
}

// Sin computes sin(x) for each lane. Accurate for |x| < 8192.
func Sin[A spmd.Arch](v spmd.Vec[float32, A]) spmd.Vec[float32, A] {
	sign := spmd.And(v, bitsOf[A](signMaskBits))
	o := reduce(v)
	sign = spmd.Xor(sign, signFromBit(o.j, false))
	pm := polyMask(o.j)

	y1, y2 := polys(o.x)
	y2 = spmd.And(pm, y2)
	y1 = spmd.AndNot(pm, y1)
	return spmd.Xor(spmd.Add(y1, y2), sign)
}

// Cos computes cos(x) for each lane. Accurate for |x| < 8192.
func Cos[A spmd.Arch](v spmd.Vec[float32, A]) spmd.Vec[float32, A] {
	o := reduce(v)
	j := spmd.Sub(o.j, spmd.Set[int32, A](2))
	sign := signFromBit(j, true)
	pm := polyMask(j)

	y1, y2 := polys(o.x)
	y2 = spmd.And(pm, y2)
	y1 = spmd.AndNot(pm, y1)
	return spmd.Xor(spmd.Add(y1, y2), sign)
}

// SinCos computes sin(x) and cos(x) for each lane with one range
// reduction. Accurate for |x| < 8192.
func SinCos[A spmd.Arch](v spmd.Vec[float32, A]) (sin, cos spmd.Vec[float32, A]) {
	sinSign := spmd.And(v, bitsOf[A](signMaskBits))
	o := reduce(v)
	sinSign = spmd.Xor(sinSign, signFromBit(o.j, false))
	cosSign := signFromBit(spmd.Sub(o.j, spmd.Set[int32, A](2)), true)
	pm := polyMask(o.j)

	y1, y2 := polys(o.x)
	ysin2 := spmd.And(pm, y2)
	ysin1 := spmd.AndNot(pm, y1)
	y2 = spmd.Sub(y2, ysin2)
	y1 = spmd.Sub(y1, ysin1)

	sin = spmd.Xor(spmd.Add(ysin1, ysin2), sinSign)
	cos = spmd.Xor(spmd.Add(y1, y2), cosSign)
	return sin, cos
}
