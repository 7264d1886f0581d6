package spmd

import (
	"os"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lanewise/go-spmd/internal/logging"
)

// ISA is the ranked instruction-set capability of the running CPU.
//
// The x86 levels are totally ordered; ISANEON sits after them and is only
// ever compared for equality.
type ISA int

const (
	// ISANone indicates no recognised vector support.
	ISANone ISA = iota

	// ISASSE2 indicates SSE2 (x86-64 baseline).
	ISASSE2

	// ISASSE4 indicates SSE4.1.
	ISASSE4

	// ISAAVX indicates AVX with OS-enabled YMM state (Sandy Bridge).
	ISAAVX

	// ISAAVX11 indicates AVX plus F16C and RDRAND (Ivy Bridge).
	ISAAVX11

	// ISAAVX2 indicates AVX2 and FMA3 (Haswell).
	ISAAVX2

	// ISAAVX512KNL indicates AVX-512 F/CD/PF/ER (Knights Landing).
	ISAAVX512KNL

	// ISAAVX512SKX indicates AVX-512 F/CD/DQ/BW/VL (Skylake-X).
	ISAAVX512SKX

	// ISANEON indicates ARM Advanced SIMD.
	ISANEON
)

// ISAMaxIntel is the richest x86 level.
const ISAMaxIntel = ISAAVX512SKX

// String returns a human-readable name for the ISA level.
func (i ISA) String() string {
	switch i {
	case ISANone:
		return "none"
	case ISASSE2:
		return "sse2"
	case ISASSE4:
		return "sse4"
	case ISAAVX:
		return "avx"
	case ISAAVX11:
		return "avx1.1"
	case ISAAVX2:
		return "avx2"
	case ISAAVX512KNL:
		return "avx512_knl"
	case ISAAVX512SKX:
		return "avx512_skx"
	case ISANEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Features is the raw feature set the ISA classification works from.
// OSAVX and OSAVX512 record that the operating system saves the wide
// register state (XGETBV), without which the matching CPU bits are unusable.
type Features struct {
	SSE2     bool
	SSE41    bool
	OSXSAVE  bool
	AVX      bool
	OSAVX    bool
	FMA      bool
	F16C     bool
	RDRAND   bool
	AVX2     bool
	AVX512F  bool
	AVX512DQ bool
	AVX512CD bool
	AVX512BW bool
	AVX512VL bool
	AVX512PF bool
	AVX512ER bool
	OSAVX512 bool
	ASIMD    bool

	// Vendor is informational only.
	Vendor string
}

// Classify ranks a feature set. It prefers the richest level whose
// required features are all present; an AVX-512 combination that is
// neither SKX nor KNL falls through to the AVX tiers.
func Classify(f Features) ISA {
	if f.OSXSAVE && f.AVX2 && f.AVX512F && f.OSAVX512 {
		switch {
		case f.AVX512DQ && f.AVX512CD && f.AVX512BW && f.AVX512VL:
			return ISAAVX512SKX
		case f.AVX512PF && f.AVX512ER && f.AVX512CD:
			return ISAAVX512KNL
		}
	}

	if f.OSXSAVE && f.AVX && f.OSAVX {
		if f.F16C && f.RDRAND {
			if f.AVX2 && f.FMA {
				return ISAAVX2
			}
			return ISAAVX11
		}
		return ISAAVX
	}

	switch {
	case f.SSE41:
		return ISASSE4
	case f.SSE2:
		return ISASSE2
	case f.ASIMD:
		return ISANEON
	}
	return ISANone
}

var (
	probeOnce     sync.Once
	probedISA     ISA
	probedFeature Features
)

func probe() {
	probeOnce.Do(func() {
		probedFeature = ProbeFeatures()
		probedISA = Classify(probedFeature)
		logging.WithFields(logrus.Fields{
			"isa":    probedISA.String(),
			"vendor": probedFeature.Vendor,
		}).Debug("spmd: probed instruction set")
	})
}

// SystemISA returns the instruction-set level of the running CPU. The
// probe runs once; later calls return the cached value.
func SystemISA() ISA {
	probe()
	return probedISA
}

// SystemFeatures returns the feature set SystemISA was derived from.
func SystemFeatures() Features {
	probe()
	return probedFeature
}

// NoSimdEnv checks if the SPMD_NO_SIMD environment variable is set.
// When set, native overrides are disabled and every operation runs its
// generic per-lane loop regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("SPMD_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
