//go:build !amd64 || !goexperiment.simd

package spmd

// Default is the descriptor selected for this build. Without native
// vector support it is the portable eight-lane descriptor.
type Default = Generic8

// DisableNative is a no-op: this build has no native overrides.
func DisableNative() {}

// NativeEnabled always reports false in this build.
func NativeEnabled() bool { return false }
