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

// Package math provides vectorized single-precision transcendental
// functions over spmd.Vec[float32, A] for any architecture descriptor A.
//
// The kernels are the Cephes minimax approximations. They are written only
// in terms of spmd operations (FMAdd, compares, bitwise mask-select, Floor,
// Cast and Cvt), so the same code runs the generic loop on a portable
// descriptor and the native instructions on AVX2_8 or AVX512_16.
//
// # Functions
//
//   - Log(v): natural logarithm. Lanes <= 0 yield NaN.
//   - Exp(v): e^x, with x clamped to ±88.3762626647949.
//   - Sin(v), Cos(v), SinCos(v): accurate for |x| < 8192.
//
// Each has a slice form (LogSlice, ExpSlice, ...) that processes whole
// vectors and finishes the remainder under a FirstN mask.
//
// # Accuracy
//
// Within the documented domains the results match the standard library to
// about 1e-6 relative error. Outside them precision degrades without
// error: Log of +Inf or NaN and Exp of NaN return finite values, Log of
// subnormal input is computed as Log of the smallest normal, and Sin/Cos
// lose precision as |x| grows past 8192.
//
// # Example Usage
//
//	import (
//	    "github.com/lanewise/go-spmd/spmd"
//	    "github.com/lanewise/go-spmd/spmd/contrib/math"
//	)
//
//	func softplus(x spmd.Vec[float32, spmd.Default]) spmd.Vec[float32, spmd.Default] {
//	    one := spmd.Set[float32, spmd.Default](1)
//	    return math.Log(spmd.Add(one, math.Exp(x)))
//	}
package math
