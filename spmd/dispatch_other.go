//go:build !amd64 && !arm64

package spmd

// ProbeFeatures returns an empty feature set; other architectures run
// every operation on the generic path.
func ProbeFeatures() Features {
	return Features{}
}
