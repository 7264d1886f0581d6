package math

import (
	stdmath "math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanewise/go-spmd/spmd"
)

const (
	relTol = 1e-5
	absTol = 1e-6
)

var (
	smallestNormal    = float32(stdmath.SmallestNonzeroFloat32 * (1 << 23))
	smallestSubnormal = float32(stdmath.SmallestNonzeroFloat32)
)

// approxEqual treats NaN==NaN and same-sign infinities as equal.
func approxEqual(got, want float64) bool {
	switch {
	case stdmath.IsNaN(got) || stdmath.IsNaN(want):
		return stdmath.IsNaN(got) && stdmath.IsNaN(want)
	case stdmath.IsInf(got, 0) || stdmath.IsInf(want, 0):
		return got == want
	}
	return stdmath.Abs(got-want) <= relTol*stdmath.Abs(want)+absTol
}

// sweep returns the fixed cases followed by n random values in [lo, hi].
func sweep(fixed []float32, n int, lo, hi float64) []float32 {
	r := rand.New(rand.NewPCG(7, 11))
	out := append([]float32(nil), fixed...)
	for range n {
		out = append(out, float32(lo+(hi-lo)*r.Float64()))
	}
	return out
}

type kernel[A spmd.Arch] func(spmd.Vec[float32, A]) spmd.Vec[float32, A]

func checkKernel[A spmd.Arch](t *testing.T, name string, f kernel[A], ref func(float64) float64, inputs []float32) {
	t.Helper()
	w := spmd.Width[A]()
	for off := 0; off < len(inputs); off += w {
		chunk := inputs[off:min(off+w, len(inputs))]
		got := f(spmd.Load[float32, A](chunk))
		for i, x := range chunk {
			want := ref(float64(x))
			if !approxEqual(float64(got.Get(i)), want) {
				t.Errorf("%s(%g) on %T: got %g, want %g", name, x, *new(A), got.Get(i), want)
			}
		}
	}
}

var (
	trigFixed = []float32{
		0, 1, -1, stdmath.Pi / 2, stdmath.Pi, -stdmath.Pi, stdmath.Pi / 4, 3 * stdmath.Pi / 2,
		smallestNormal, smallestSubnormal, -smallestSubnormal, 100, -1000, 8000,
	}
	expFixed = []float32{
		0, 1, -1, 0.5, stdmath.Pi, -stdmath.Pi, smallestNormal, smallestSubnormal, 10, -10, 80, -80,
	}
	logFixed = []float32{
		1, 2, 0.5, stdmath.E, stdmath.Pi, 1.0001, 0.9999, smallestNormal, 1e-30, 1e30, stdmath.MaxFloat32,
	}
)

func runAccuracy[A spmd.Arch](t *testing.T) {
	t.Run("Sin", func(t *testing.T) {
		checkKernel[A](t, "Sin", Sin[A], stdmath.Sin, sweep(trigFixed, 2000, -4096, 4096))
	})
	t.Run("Cos", func(t *testing.T) {
		checkKernel[A](t, "Cos", Cos[A], stdmath.Cos, sweep(trigFixed, 2000, -4096, 4096))
	})
	t.Run("Exp", func(t *testing.T) {
		checkKernel[A](t, "Exp", Exp[A], stdmath.Exp, sweep(expFixed, 2000, -87, 88))
	})
	t.Run("Log", func(t *testing.T) {
		in := sweep(logFixed, 1000, 1e-3, 1e3)
		in = append(in, sweep(nil, 1000, 0, 1e-3)...)
		// Log treats subnormals as the smallest normal and 0 as invalid.
		in = slicesDeleteNonNormal(in)
		checkKernel[A](t, "Log", Log[A], stdmath.Log, in)
	})
	t.Run("SinCos", func(t *testing.T) {
		in := sweep(trigFixed, 500, -8192, 8192)
		checkKernel[A](t, "SinCos.sin", func(v spmd.Vec[float32, A]) spmd.Vec[float32, A] {
			s, _ := SinCos(v)
			return s
		}, stdmath.Sin, in)
		checkKernel[A](t, "SinCos.cos", func(v spmd.Vec[float32, A]) spmd.Vec[float32, A] {
			_, c := SinCos(v)
			return c
		}, stdmath.Cos, in)
	})
}

func slicesDeleteNonNormal(in []float32) []float32 {
	out := in[:0]
	for _, x := range in {
		if x >= smallestNormal {
			out = append(out, x)
		}
	}
	return out
}

func TestAccuracyGeneric4(t *testing.T)  { runAccuracy[spmd.Generic4](t) }
func TestAccuracyGeneric8(t *testing.T)  { runAccuracy[spmd.Generic8](t) }
func TestAccuracyGeneric32(t *testing.T) { runAccuracy[spmd.Generic32](t) }
func TestAccuracyAVX2(t *testing.T)      { runAccuracy[spmd.AVX2_8](t) }
func TestAccuracyAVX512(t *testing.T)    { runAccuracy[spmd.AVX512_16](t) }

func TestLogInvalidLanes(t *testing.T) {
	v := spmd.Of[float32, spmd.Generic8](0, -1, 1, float32(stdmath.Inf(-1)), -smallestSubnormal, 2, -0.5, 4)

	invalid := LogInvalid(v)
	assert.Equal(t, "11011010", invalid.String())

	_, lanes := logKernel(v)
	assert.Equal(t, invalid, spmd.MaskFromLanes(lanes), "invalid mask set before the final OR")

	got := Log(v)
	for i := range v.Width() {
		if invalid.Get(i) {
			assert.True(t, stdmath.IsNaN(float64(got.Get(i))), "lane %d: got %v", i, got.Get(i))
			assert.Equal(t, uint32(0xFFFFFFFF), stdmath.Float32bits(got.Get(i)))
		} else {
			assert.False(t, stdmath.IsNaN(float64(got.Get(i))), "lane %d", i)
		}
	}
}

func TestExpClamps(t *testing.T) {
	v := spmd.Of[float32, spmd.Generic4](1000, -1000, expHi_f32, expLo_f32)
	got := Exp(v)
	assert.Equal(t, got.Get(2), got.Get(0), "large inputs saturate at the upper clamp")
	assert.Equal(t, got.Get(3), got.Get(1), "small inputs saturate at the lower clamp")
	assert.False(t, stdmath.IsInf(float64(got.Get(0)), 0))
	assert.Less(t, got.Get(1), float32(1e-37))
}

func TestTrigSymmetry(t *testing.T) {
	in := sweep(nil, 64, 0, 100)
	for off := 0; off+8 <= len(in); off += 8 {
		v := spmd.Load[float32, spmd.Generic8](in[off:])
		neg := spmd.Neg(v)
		assert.Equal(t, spmd.Neg(Sin(v)), Sin(neg), "sin is odd")
		assert.Equal(t, Cos(v), Cos(neg), "cos is even")
	}
}

func TestSliceForms(t *testing.T) {
	src := sweep([]float32{0.25, 1, 2}, 37, 0.1, 10)
	n := len(src)

	type slicer struct {
		name string
		fn   func(dst, src []float32)
		ref  func(float64) float64
	}
	for _, s := range []slicer{
		{"LogSlice", LogSlice[spmd.Generic8], stdmath.Log},
		{"ExpSlice", ExpSlice[spmd.Generic8], stdmath.Exp},
		{"SinSlice", SinSlice[spmd.AVX2_8], stdmath.Sin},
		{"CosSlice", CosSlice[spmd.Generic16], stdmath.Cos},
	} {
		dst := make([]float32, n+3)
		dst[n] = -7
		s.fn(dst, src)
		for i, x := range src {
			assert.True(t, approxEqual(float64(dst[i]), s.ref(float64(x))), "%s(%g): got %g", s.name, x, dst[i])
		}
		assert.Equal(t, float32(-7), dst[n], "%s wrote past the source", s.name)
	}

	sinDst := make([]float32, n)
	cosDst := make([]float32, n-5)
	SinCosSlice[spmd.Generic4](sinDst, cosDst, src)
	require.Len(t, cosDst, n-5)
	for i := range cosDst {
		assert.True(t, approxEqual(float64(sinDst[i]), stdmath.Sin(float64(src[i]))))
		assert.True(t, approxEqual(float64(cosDst[i]), stdmath.Cos(float64(src[i]))))
	}
	assert.Zero(t, sinDst[n-1], "SinCosSlice stops at the shortest slice")
}
