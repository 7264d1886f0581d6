package spmd

import "math/bits"

// This file provides stream compaction: Compress packs the active lanes
// of a vector to the front and Expand is its inverse.

// Compress packs the lanes of v active in m to the front, in lane order,
// and returns the packed vector and the number of active lanes. The
// remaining lanes are zero.
func Compress[T Lanes, A Arch](v Vec[T, A], m Mask[A]) (Vec[T, A], int) {
	var r Vec[T, A]
	n := 0
	m.ForEachActive(func(i int) {
		r.lanes[n] = v.lanes[i]
		n++
	})
	return r, n
}

// Expand places the leading lanes of v, in order, into the lanes active in
// m. Inactive lanes are zero.
func Expand[T Lanes, A Arch](v Vec[T, A], m Mask[A]) Vec[T, A] {
	var r Vec[T, A]
	n := 0
	m.ForEachActive(func(i int) {
		r.lanes[i] = v.lanes[n]
		n++
	})
	return r
}

// CompressStore writes the active lanes of v to the front of dst and
// returns how many were written. Lanes that do not fit in dst are dropped.
func CompressStore[T Lanes, A Arch](v Vec[T, A], m Mask[A], dst []T) int {
	n := 0
	m.ForEachActive(func(i int) {
		if n < len(dst) {
			dst[n] = v.lanes[i]
			n++
		}
	})
	return n
}

// First returns the lowest active lane, or -1 if none is active.
func (m Mask[A]) First() int {
	if m.bits == 0 {
		return -1
	}
	return bits.TrailingZeros32(m.bits)
}

// Last returns the highest active lane, or -1 if none is active.
func (m Mask[A]) Last() int {
	if m.bits == 0 {
		return -1
	}
	return 31 - bits.LeadingZeros32(m.bits)
}
