package math

import "github.com/lanewise/go-spmd/spmd"

// LogSlice computes Log over min(len(dst), len(src)) elements of src.
func LogSlice[A spmd.Arch](dst, src []float32) {
	apply(Log[A], dst, src)
}

// ExpSlice computes Exp over min(len(dst), len(src)) elements of src.
func ExpSlice[A spmd.Arch](dst, src []float32) {
	apply(Exp[A], dst, src)
}

// SinSlice computes Sin over min(len(dst), len(src)) elements of src.
func SinSlice[A spmd.Arch](dst, src []float32) {
	apply(Sin[A], dst, src)
}

// CosSlice computes Cos over min(len(dst), len(src)) elements of src.
func CosSlice[A spmd.Arch](dst, src []float32) {
	apply(Cos[A], dst, src)
}

// SinCosSlice computes SinCos over the shortest of the three slices.
func SinCosSlice[A spmd.Arch](sinDst, cosDst, src []float32) {
	n := min(len(sinDst), len(cosDst), len(src))
	spmd.ProcessWithTail[A](n,
		func(offset int) {
			s, c := SinCos(spmd.Load[float32, A](src[offset:]))
			s.Store(sinDst[offset:])
			c.Store(cosDst[offset:])
		},
		func(offset int, m spmd.Mask[A]) {
			var v spmd.Vec[float32, A]
			spmd.LoadMasked(&v, src[offset:n], m)
			s, c := SinCos(v)
			spmd.StoreMasked(s, sinDst[offset:n], m)
			spmd.StoreMasked(c, cosDst[offset:n], m)
		})
}

func apply[A spmd.Arch](f func(spmd.Vec[float32, A]) spmd.Vec[float32, A], dst, src []float32) {
	n := min(len(dst), len(src))
	spmd.ProcessWithTail[A](n,
		func(offset int) {
			f(spmd.Load[float32, A](src[offset:])).Store(dst[offset:])
		},
		func(offset int, m spmd.Mask[A]) {
			var v spmd.Vec[float32, A]
			spmd.LoadMasked(&v, src[offset:n], m)
			spmd.StoreMasked(f(v), dst[offset:n], m)
		})
}

