//go:build arm64

package spmd

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// ProbeFeatures reports Advanced SIMD. ARMv8-A always has it, but the
// bit is still read so a stripped-down core classifies as ISANone.
func ProbeFeatures() Features {
	return Features{
		ASIMD:  cpu.ARM64.HasASIMD || cpuid.CPU.Supports(cpuid.ASIMD),
		Vendor: cpuid.CPU.VendorString,
	}
}
