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

import "math/bits"

// Arch describes an architecture: how many lanes a vector carries, the
// natural alignment of its storage, and which probed ISA levels can run
// code specialised for it.
//
// Implementations are zero-size types used only as type arguments. The
// width of a descriptor never changes at run time.
type Arch interface {
	// Width returns the lane count, a power of two no larger than MaxWidth.
	Width() int

	// Alignment returns the natural alignment of a vector in bytes.
	Alignment() int

	// Name returns a short identifier ("generic8", "avx2_8", ...).
	Name() string

	// Available reports whether code specialised for this descriptor may
	// run on a machine whose probe returned isa.
	Available(isa ISA) bool
}

// Generic1 is the portable one-lane descriptor.
type Generic1 struct{}

func (Generic1) Width() int { return 1 }
func (Generic1) Alignment() int { return 1 }
func (Generic1) Name() string { return "generic1" }
func (Generic1) Available(ISA) bool { return true }

// Generic2 is the portable two-lane descriptor.
type Generic2 struct{}

func (Generic2) Width() int { return 2 }
func (Generic2) Alignment() int { return 1 }
func (Generic2) Name() string { return "generic2" }
func (Generic2) Available(ISA) bool { return true }

// Generic4 is the portable four-lane descriptor.
type Generic4 struct{}

func (Generic4) Width() int { return 4 }
func (Generic4) Alignment() int { return 1 }
func (Generic4) Name() string { return "generic4" }
func (Generic4) Available(ISA) bool { return true }

// Generic8 is the portable eight-lane descriptor.
type Generic8 struct{}

func (Generic8) Width() int { return 8 }
func (Generic8) Alignment() int { return 1 }
func (Generic8) Name() string { return "generic8" }
func (Generic8) Available(ISA) bool { return true }

// Generic16 is the portable sixteen-lane descriptor.
type Generic16 struct{}

func (Generic16) Width() int { return 16 }
func (Generic16) Alignment() int { return 1 }
func (Generic16) Name() string { return "generic16" }
func (Generic16) Available(ISA) bool { return true }

// Generic32 is the portable thirty-two-lane descriptor.
type Generic32 struct{}

func (Generic32) Width() int { return 32 }
func (Generic32) Alignment() int { return 1 }
func (Generic32) Name() string { return "generic32" }
func (Generic32) Available(ISA) bool { return true }

// AVX_4 maps four 32-bit lanes onto a 128-bit XMM register.
// Requires AVX.
type AVX_4 struct{}

func (AVX_4) Width() int { return 4 }
func (AVX_4) Alignment() int { return 16 }
func (AVX_4) Name() string { return "avx_4" }
func (AVX_4) Available(isa ISA) bool {
	return isa >= ISAAVX && isa <= ISAMaxIntel
}

// AVX_8 maps eight 32-bit lanes onto a 256-bit YMM register using only
// AVX1 instructions, so integer lanes stay on the generic path.
type AVX_8 struct{}

func (AVX_8) Width() int { return 8 }
func (AVX_8) Alignment() int { return 32 }
func (AVX_8) Name() string { return "avx_8" }
func (AVX_8) Available(isa ISA) bool {
	return isa >= ISAAVX && isa <= ISAMaxIntel
}

// AVX2_8 maps eight 32-bit lanes onto a 256-bit YMM register.
// Requires AVX2 (Haswell and later).
type AVX2_8 struct{}

func (AVX2_8) Width() int { return 8 }
func (AVX2_8) Alignment() int { return 32 }
func (AVX2_8) Name() string { return "avx2_8" }
func (AVX2_8) Available(isa ISA) bool {
	return isa >= ISAAVX2 && isa <= ISAMaxIntel
}

// AVX512_16 maps sixteen 32-bit lanes onto a 512-bit ZMM register.
// Requires AVX-512F (Knights Landing or Skylake-X and later).
type AVX512_16 struct{}

func (AVX512_16) Width() int { return 16 }
func (AVX512_16) Alignment() int { return 64 }
func (AVX512_16) Name() string { return "avx512_16" }
func (AVX512_16) Available(isa ISA) bool {
	return isa >= ISAAVX512KNL && isa <= ISAMaxIntel
}

// Width returns the lane count of A.
func Width[A Arch]() int {
	var a A
	return a.Width()
}

// WidthMask returns a bitmask with one bit set per lane of A.
func WidthMask[A Arch]() uint32 {
	return uint32(uint64(1)<<Width[A]() - 1)
}

// Shift returns log2 of the width of A, used to split a linear lane index
// into a vector index and an in-vector lane.
func Shift[A Arch]() int {
	return bits.TrailingZeros(uint(Width[A]()))
}

// ShiftMask returns 1<<Shift - 1.
func ShiftMask[A Arch]() int {
	return 1<<Shift[A]() - 1
}

// Descriptor summarises an architecture descriptor for reporting.
type Descriptor struct {
	Name      string
	Width     int
	Alignment int
	Available func(ISA) bool
}

func describe[A Arch]() Descriptor {
	var a A
	return Descriptor{
		Name:      a.Name(),
		Width:     a.Width(),
		Alignment: a.Alignment(),
		Available: a.Available,
	}
}

// Descriptors lists every architecture descriptor known to the package,
// portable ones first.
func Descriptors() []Descriptor {
	return []Descriptor{
		describe[Generic1](),
		describe[Generic2](),
		describe[Generic4](),
		describe[Generic8](),
		describe[Generic16](),
		describe[Generic32](),
		describe[AVX_4](),
		describe[AVX_8](),
		describe[AVX2_8](),
		describe[AVX512_16](),
	}
}

// LookupDescriptor returns the descriptor with the given name.
func LookupDescriptor(name string) (Descriptor, bool) {
	for _, d := range Descriptors() {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
