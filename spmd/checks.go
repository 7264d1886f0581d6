//go:build !spmd_debug

package spmd

// checkLane is a no-op in release builds. Build with -tags spmd_debug to
// turn lane-index violations into panics.
func checkLane[A Arch](int) {}
