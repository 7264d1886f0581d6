package spmd

// This file provides masked and interleaved memory operations. They are
// plain per-lane loops for every descriptor.

// LoadMasked loads src[i] into dst for the lanes active in m, stopping at
// the end of src. Inactive lanes keep their contents.
func LoadMasked[T Lanes, A Arch](dst *Vec[T, A], src []T, m Mask[A]) {
	m.And(FirstN[A](len(src))).ForEachActive(func(i int) {
		dst.lanes[i] = src[i]
	})
}

// StoreMasked stores elements from v to dst only where mask is true.
// Unlike some SIMD implementations of masked stores, this explicitly
// preserves existing values in dst where mask is false.
func StoreMasked[T Lanes, A Arch](v Vec[T, A], dst []T, m Mask[A]) {
	m.And(FirstN[A](len(dst))).ForEachActive(func(i int) {
		dst[i] = v.lanes[i]
	})
}

// LoadInterleaved2 loads interleaved pairs and deinterleaves into two vectors.
// This converts Array-of-Structures (AoS) format to Structure-of-Arrays (SoA).
//
// Input memory layout (interleaved pairs):
//
//	[a0, b0, a1, b1, a2, b2, ...]
//
// Lanes past the end of src are zero.
func LoadInterleaved2[T Lanes, A Arch](src []T) (a, b Vec[T, A]) {
	for i := range Width[A]() {
		if 2*i+1 >= len(src) {
			break
		}
		a.lanes[i] = src[2*i]
		b.lanes[i] = src[2*i+1]
	}
	return a, b
}

// StoreInterleaved2 stores two vectors interleaved to dst.
// This is the inverse of LoadInterleaved2.
func StoreInterleaved2[T Lanes, A Arch](a, b Vec[T, A], dst []T) {
	for i := range Width[A]() {
		if 2*i+1 >= len(dst) {
			return
		}
		dst[2*i] = a.lanes[i]
		dst[2*i+1] = b.lanes[i]
	}
}

// LoadInterleaved3 loads interleaved triples, such as RGB pixels or XYZ
// points, into three vectors.
func LoadInterleaved3[T Lanes, A Arch](src []T) (a, b, c Vec[T, A]) {
	for i := range Width[A]() {
		if 3*i+2 >= len(src) {
			break
		}
		a.lanes[i] = src[3*i]
		b.lanes[i] = src[3*i+1]
		c.lanes[i] = src[3*i+2]
	}
	return a, b, c
}

// StoreInterleaved3 is the inverse of LoadInterleaved3.
func StoreInterleaved3[T Lanes, A Arch](a, b, c Vec[T, A], dst []T) {
	for i := range Width[A]() {
		if 3*i+2 >= len(dst) {
			return
		}
		dst[3*i] = a.lanes[i]
		dst[3*i+1] = b.lanes[i]
		dst[3*i+2] = c.lanes[i]
	}
}
