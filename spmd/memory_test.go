package spmd

import (
	"testing"
)

func TestStoreMasked(t *testing.T) {
	t.Run("all true mask", func(t *testing.T) {
		v := Of[float32, Generic4](1, 2, 3, 4)
		dst := []float32{10, 20, 30, 40}

		StoreMasked(v, dst, AllTrue[Generic4]())

		want := []float32{1, 2, 3, 4}
		for i, got := range dst {
			if got != want[i] {
				t.Errorf("lane %d: got %v, want %v", i, got, want[i])
			}
		}
	})

	t.Run("all false mask", func(t *testing.T) {
		v := Of[float32, Generic4](1, 2, 3, 4)
		dst := []float32{10, 20, 30, 40}

		StoreMasked(v, dst, AllFalse[Generic4]())

		want := []float32{10, 20, 30, 40}
		for i, got := range dst {
			if got != want[i] {
				t.Errorf("lane %d: got %v, want %v (should be unchanged)", i, got, want[i])
			}
		}
	})

	t.Run("mixed mask", func(t *testing.T) {
		v := Of[float32, Generic4](1, 2, 3, 4)
		dst := []float32{10, 20, 30, 40}

		StoreMasked(v, dst, MaskOf[Generic4](true, false, true, false))

		want := []float32{1, 20, 3, 40}
		for i, got := range dst {
			if got != want[i] {
				t.Errorf("lane %d: got %v, want %v", i, got, want[i])
			}
		}
	})

	t.Run("short destination", func(t *testing.T) {
		v := Of[float32, Generic4](1, 2, 3, 4)
		dst := []float32{10, 20}

		StoreMasked(v, dst, AllTrue[Generic4]())

		if dst[0] != 1 || dst[1] != 2 {
			t.Errorf("got %v, want [1 2]", dst)
		}
	})
}

func TestLoadMasked(t *testing.T) {
	src := []int32{1, 2, 3, 4, 5, 6, 7, 8}

	t.Run("inactive lanes untouched", func(t *testing.T) {
		dst := Set[int32, Generic8](-1)
		LoadMasked(&dst, src, MaskFromBits[Generic8](0b0101_0011))

		want := []int32{1, 2, -1, -1, 5, -1, 7, -1}
		for i, w := range want {
			if dst.Get(i) != w {
				t.Errorf("lane %d: got %v, want %v", i, dst.Get(i), w)
			}
		}
	})

	t.Run("short source", func(t *testing.T) {
		dst := Set[int32, Generic8](-1)
		LoadMasked(&dst, src[:3], AllTrue[Generic8]())

		want := []int32{1, 2, 3, -1, -1, -1, -1, -1}
		for i, w := range want {
			if dst.Get(i) != w {
				t.Errorf("lane %d: got %v, want %v", i, dst.Get(i), w)
			}
		}
	})
}

func TestLoadInterleaved2(t *testing.T) {
	src := []float32{1, 10, 2, 20, 3, 30, 4, 40}
	a, b := LoadInterleaved2[float32, Generic4](src)

	for i := range 4 {
		if a.Get(i) != float32(i+1) {
			t.Errorf("a lane %d: got %v, want %v", i, a.Get(i), i+1)
		}
		if b.Get(i) != float32(10*(i+1)) {
			t.Errorf("b lane %d: got %v, want %v", i, b.Get(i), 10*(i+1))
		}
	}
}

func TestLoadStoreInterleaved3_RoundTrip(t *testing.T) {
	src := make([]uint8, 24)
	for i := range src {
		src[i] = uint8(i)
	}
	r, g, b := LoadInterleaved3[uint8, Generic8](src)
	if r.Get(1) != 3 || g.Get(1) != 4 || b.Get(1) != 5 {
		t.Errorf("pixel 1: got (%v, %v, %v), want (3, 4, 5)", r.Get(1), g.Get(1), b.Get(1))
	}

	dst := make([]uint8, 24)
	StoreInterleaved3(r, g, b, dst)
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("index %d: got %v, want %v", i, dst[i], src[i])
		}
	}

	out := make([]uint8, 16)
	StoreInterleaved2(r, g, out)
	if out[0] != 0 || out[1] != 1 || out[2] != 3 || out[3] != 4 {
		t.Errorf("StoreInterleaved2: got %v", out)
	}
}
