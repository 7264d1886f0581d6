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

//go:build amd64

package spmd

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// ProbeFeatures reads CPUID leaves 1 and 7 through cpuid and takes the
// OS register-state confirmation from x/sys/cpu, whose HasAVX and
// HasAVX512 already fold in the XGETBV check (XCR0 bits 1-2 for YMM,
// bits 5-7 for the AVX-512 opmask and ZMM state).
func ProbeFeatures() Features {
	c := &cpuid.CPU
	return Features{
		SSE2:     c.Supports(cpuid.SSE2),
		SSE41:    c.Supports(cpuid.SSE4),
		OSXSAVE:  c.Supports(cpuid.OSXSAVE) || cpu.X86.HasOSXSAVE,
		AVX:      c.Supports(cpuid.AVX),
		OSAVX:    cpu.X86.HasAVX,
		FMA:      c.Supports(cpuid.FMA3),
		F16C:     c.Supports(cpuid.F16C),
		RDRAND:   c.Supports(cpuid.RDRAND) || cpu.X86.HasRDRAND,
		AVX2:     c.Supports(cpuid.AVX2),
		AVX512F:  c.Supports(cpuid.AVX512F),
		AVX512DQ: c.Supports(cpuid.AVX512DQ),
		AVX512CD: c.Supports(cpuid.AVX512CD),
		AVX512BW: c.Supports(cpuid.AVX512BW),
		AVX512VL: c.Supports(cpuid.AVX512VL),
		AVX512PF: c.Supports(cpuid.AVX512PF),
		AVX512ER: c.Supports(cpuid.AVX512ER),
		OSAVX512: cpu.X86.HasAVX512,
		Vendor:   c.VendorString,
	}
}
