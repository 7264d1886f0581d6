//go:build !amd64 || !goexperiment.simd

package spmd

// Without GOEXPERIMENT=simd on amd64 there are no native overrides; every
// operation runs its generic per-lane loop.

func nativeSupports[T Lanes, A Arch](Op) bool { return false }

func nativeBinary[T Lanes, A Arch](Op, Vec[T, A], Vec[T, A]) (Vec[T, A], bool) {
	return Vec[T, A]{}, false
}

func nativeUnary[T Lanes, A Arch](Op, Vec[T, A]) (Vec[T, A], bool) {
	return Vec[T, A]{}, false
}

func nativeFMAdd[T Lanes, A Arch](_, _, _ Vec[T, A]) (Vec[T, A], bool) {
	return Vec[T, A]{}, false
}

func nativeCompare[T Lanes, A Arch](Predicate, Vec[T, A], Vec[T, A]) (Mask[A], bool) {
	return Mask[A]{}, false
}

func nativeShift[T Integers, A Arch](Op, Vec[T, A], uint) (Vec[T, A], bool) {
	return Vec[T, A]{}, false
}

func nativeCast[R, T Lanes, A Arch](Vec[T, A]) (Vec[R, A], bool) {
	return Vec[R, A]{}, false
}

func nativeCvt[R, T Lanes, A Arch](Vec[T, A]) (Vec[R, A], bool) {
	return Vec[R, A]{}, false
}

func nativeZero[T Lanes, A Arch]() (Vec[T, A], bool) {
	return Vec[T, A]{}, false
}

func nativeGatherIndex[T Lanes, I ~int32 | ~int64, A Arch]([]T, Vec[I, A], Mask[A]) (Vec[T, A], bool) {
	return Vec[T, A]{}, false
}

func nativeScatterIndex[T Lanes, I ~int32 | ~int64, A Arch](Vec[T, A], []T, Vec[I, A], Mask[A]) bool {
	return false
}
