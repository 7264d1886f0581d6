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
	"simd/archsimd"

	"github.com/lanewise/go-spmd/internal/logging"
)

// Default is the descriptor selected for this build.
type Default = AVX2_8

// Native override gates. Each is true only when the probed ISA satisfies
// the descriptor and archsimd agrees the instructions are usable.
var (
	nativeAVX    bool
	nativeAVX2   bool
	nativeAVX512 bool
	nativeFMA    bool
)

func init() {
	if NoSimdEnv() {
		logging.Debugf("spmd: SPMD_NO_SIMD set, native overrides disabled")
		return
	}
	detectNative()
}

func detectNative() {
	isa := SystemISA()
	nativeAVX = AVX_8{}.Available(isa) && archsimd.X86.AVX()
	nativeAVX2 = AVX2_8{}.Available(isa) && archsimd.X86.AVX2()
	nativeAVX512 = AVX512_16{}.Available(isa) && archsimd.X86.AVX512()
	nativeFMA = SystemFeatures().FMA && archsimd.X86.FMA()
	logging.Debugf("spmd: native overrides avx=%v avx2=%v avx512=%v fma=%v",
		nativeAVX, nativeAVX2, nativeAVX512, nativeFMA)
}

// forceGeneric turns every native override off until the returned func
// is called.
func forceGeneric() (restore func()) {
	avx, avx2, avx512, fma := nativeAVX, nativeAVX2, nativeAVX512, nativeFMA
	nativeAVX, nativeAVX2, nativeAVX512, nativeFMA = false, false, false, false
	return func() {
		nativeAVX, nativeAVX2, nativeAVX512, nativeFMA = avx, avx2, avx512, fma
	}
}

// DisableNative turns every native override off for the rest of the
// process. Call it before vector work starts.
func DisableNative() {
	forceGeneric()
}

// NativeEnabled reports whether any native override is active.
func NativeEnabled() bool {
	return nativeAVX || nativeAVX2 || nativeAVX512
}
