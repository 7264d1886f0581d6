//go:build amd64 && goexperiment.simd

package spmd

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randFloats[A Arch](r *rand.Rand) Vec[float32, A] {
	var v Vec[float32, A]
	for i := range Width[A]() {
		v.lanes[i] = float32(r.NormFloat64() * 100)
	}
	return v
}

func randInts[A Arch](r *rand.Rand) Vec[int32, A] {
	var v Vec[int32, A]
	for i := range Width[A]() {
		v.lanes[i] = r.Int32() - math.MaxInt32/2
	}
	return v
}

// sameBits compares float lanes by bit pattern so NaN payloads count.
func sameBits[A Arch](t *testing.T, op string, native, generic Vec[float32, A]) {
	t.Helper()
	for i := range Width[A]() {
		assert.Equal(t, math.Float32bits(generic.lanes[i]), math.Float32bits(native.lanes[i]),
			"%s lane %d: native %v generic %v", op, i, native.lanes[i], generic.lanes[i])
	}
}

// specialFloats holds the inputs where native and generic paths are most
// likely to part ways. A single NaN pattern keeps payload selection out of it.
var specialFloats = []float32{
	float32(math.NaN()),
	0,
	float32(math.Copysign(0, -1)),
	float32(math.Inf(1)),
	float32(math.Inf(-1)),
	math.MaxFloat32,
	-math.MaxFloat32,
	math.SmallestNonzeroFloat32,
	-math.SmallestNonzeroFloat32,
	1e30,
	-1e30,
	1,
	-0.5,
	2.5,
	-2.5,
	8388607.5,
}

// fill packs xs into consecutive vectors, repeating the last value to pad.
func fill[A Arch](xs []float32) []Vec[float32, A] {
	n := Width[A]()
	var out []Vec[float32, A]
	for start := 0; start < len(xs); start += n {
		var v Vec[float32, A]
		for i := range n {
			v.lanes[i] = xs[min(start+i, len(xs)-1)]
		}
		out = append(out, v)
	}
	return out
}

type floatOp[A Arch] struct {
	name string
	f    func() Vec[float32, A]
}

func sameAsGeneric[A Arch](t *testing.T, ops []floatOp[A]) {
	t.Helper()
	for _, op := range ops {
		native := op.f()
		restore := forceGeneric()
		generic := op.f()
		restore()
		sameBits(t, op.name, native, generic)
	}
}

func sameMasks[A Arch](t *testing.T, a, b Vec[float32, A]) {
	t.Helper()
	for _, p := range []Predicate{CmpLT, CmpLE, CmpGT, CmpGE, CmpEQ, CmpNE} {
		native := Compare(p, a, b)
		restore := forceGeneric()
		generic := Compare(p, a, b)
		restore()
		assert.Equal(t, generic, native, "predicate %v on %v, %v", p, a.lanes[:Width[A]()], b.lanes[:Width[A]()])
	}
}

func checkFloatEquivalence[A Arch](t *testing.T, gate bool) {
	if !gate {
		t.Skipf("%s not supported on this CPU", describe[A]().Name)
	}
	require.True(t, Accelerated[float32, A](OpAdd))

	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		a, b, c := randFloats[A](r), randFloats[A](r), randFloats[A](r)
		sameAsGeneric(t, []floatOp[A]{
			{"Add", func() Vec[float32, A] { return Add(a, b) }},
			{"Sub", func() Vec[float32, A] { return Sub(a, b) }},
			{"Mul", func() Vec[float32, A] { return Mul(a, b) }},
			{"Div", func() Vec[float32, A] { return Div(a, b) }},
			{"Min", func() Vec[float32, A] { return Min(a, b) }},
			{"Max", func() Vec[float32, A] { return Max(a, b) }},
			{"And", func() Vec[float32, A] { return And(a, b) }},
			{"AndNot", func() Vec[float32, A] { return AndNot(a, b) }},
			{"Xor", func() Vec[float32, A] { return Xor(a, b) }},
			{"Floor", func() Vec[float32, A] { return Floor(a) }},
			{"FMAdd", func() Vec[float32, A] { return FMAdd(a, b, c) }},
			{"Cmp", func() Vec[float32, A] { return Cmp(CmpLE, a, b) }},
			{"Zero", func() Vec[float32, A] { return Zero[float32, A]() }},
		})

		native := Cvt[int32](a)
		restore := forceGeneric()
		generic := Cvt[int32](a)
		restore()
		assert.Equal(t, generic, native, "Cvt")
	}
}

func checkSpecialEquivalence[A Arch](t *testing.T, gate bool) {
	if !gate {
		t.Skipf("%s not supported on this CPU", describe[A]().Name)
	}

	var xs, ys []float32
	for _, x := range specialFloats {
		for _, y := range specialFloats {
			xs, ys = append(xs, x), append(ys, y)
		}
	}
	av, bv := fill[A](xs), fill[A](ys)
	for k := range av {
		a, b := av[k], bv[k]
		sameAsGeneric(t, []floatOp[A]{
			{"Min", func() Vec[float32, A] { return Min(a, b) }},
			{"Max", func() Vec[float32, A] { return Max(a, b) }},
			{"Div", func() Vec[float32, A] { return Div(a, b) }},
			{"Mul", func() Vec[float32, A] { return Mul(a, b) }},
			{"Sub", func() Vec[float32, A] { return Sub(a, b) }},
			{"Floor", func() Vec[float32, A] { return Floor(a) }},
			{"FMAdd", func() Vec[float32, A] { return FMAdd(a, b, b) }},
			{"FMAddC", func() Vec[float32, A] { return FMAdd(b, b, a) }},
		})
		sameMasks(t, a, b)
	}

	// Three-way FMAdd over the table.
	var as, bs, cs []float32
	for _, x := range specialFloats {
		for _, y := range specialFloats {
			for _, z := range specialFloats {
				as, bs, cs = append(as, x), append(bs, y), append(cs, z)
			}
		}
	}
	av, bv, cv := fill[A](as), fill[A](bs), fill[A](cs)
	for k := range av {
		a, b, c := av[k], bv[k], cv[k]
		sameAsGeneric(t, []floatOp[A]{
			{"FMAdd3", func() Vec[float32, A] { return FMAdd(a, b, c) }},
		})
	}
}

func checkFMAddRounding[A Arch](t *testing.T, gate bool) {
	if !gate {
		t.Skipf("%s not supported on this CPU", describe[A]().Name)
	}

	// Exact halfway product nudged by a tiny addend.
	x := float32(1 + math.Ldexp(1, -12))
	tiny := float32(math.Ldexp(1, -70))
	a, b := Set[float32, A](x), Set[float32, A](x)
	for _, c := range []float32{tiny, -tiny} {
		cv := Set[float32, A](c)
		sameAsGeneric(t, []floatOp[A]{
			{"FMAdd halfway", func() Vec[float32, A] { return FMAdd(a, b, cv) }},
		})
	}

	r := rand.New(rand.NewPCG(5, 6))
	for range 20000 {
		a, b := randFloats[A](r), randFloats[A](r)
		var c Vec[float32, A]
		for i := range Width[A]() {
			// Near-cancelling addends expose the low bits of the product.
			p := float64(a.lanes[i]) * float64(b.lanes[i])
			switch r.IntN(3) {
			case 0:
				c.lanes[i] = float32(-p)
			case 1:
				c.lanes[i] = float32(-p * (1 + math.Ldexp(r.Float64(), -20)))
			default:
				c.lanes[i] = float32(r.NormFloat64() * math.Ldexp(1, r.IntN(80)-60))
			}
		}
		sameAsGeneric(t, []floatOp[A]{
			{"FMAdd", func() Vec[float32, A] { return FMAdd(a, b, c) }},
		})
	}
}

func checkCvtSpecial[A Arch](t *testing.T, gate bool) {
	if !gate {
		t.Skipf("%s not supported on this CPU", describe[A]().Name)
	}

	tests := []struct {
		in   float32
		want int32
	}{
		{float32(math.NaN()), math.MinInt32},
		{float32(math.Inf(1)), math.MinInt32},
		{float32(math.Inf(-1)), math.MinInt32},
		{3e9, math.MinInt32},
		{-3e9, math.MinInt32},
		{math.MaxFloat32, math.MinInt32},
		{2147483648, math.MinInt32},
		{-2147483648, math.MinInt32},
		{2147483520, 2147483520},
		{-0.9, 0},
		{0.9, 0},
		{-2.5, -2},
		{float32(math.Copysign(0, -1)), 0},
	}
	var xs []float32
	for _, tt := range tests {
		xs = append(xs, tt.in)
	}
	for k, v := range fill[A](xs) {
		native := Cvt[int32](v)
		restore := forceGeneric()
		generic := Cvt[int32](v)
		restore()
		assert.Equal(t, generic, native, "Cvt of %v", v.lanes[:Width[A]()])
		for i := range Width[A]() {
			j := min(k*Width[A]()+i, len(tests)-1)
			assert.Equal(t, tests[j].want, native.Get(i), "Cvt(%v)", tests[j].in)
		}
	}
}

func checkIntEquivalence[A Arch](t *testing.T, gate bool) {
	if !gate {
		t.Skipf("%s not supported on this CPU", describe[A]().Name)
	}
	require.True(t, Accelerated[int32, A](OpShiftRight))

	r := rand.New(rand.NewPCG(3, 4))
	for range 200 {
		a, b := randInts[A](r), randInts[A](r)
		ops := []struct {
			name string
			f    func() Vec[int32, A]
		}{
			{"Add", func() Vec[int32, A] { return Add(a, b) }},
			{"Sub", func() Vec[int32, A] { return Sub(a, b) }},
			{"Or", func() Vec[int32, A] { return Or(a, b) }},
			{"AndNot", func() Vec[int32, A] { return AndNot(a, b) }},
			{"ShiftLeft", func() Vec[int32, A] { return ShiftLeft(a, 7) }},
			{"ShiftRight", func() Vec[int32, A] { return ShiftRight(a, 23) }},
			{"CmpGE", func() Vec[int32, A] { return Cmp(CmpGE, a, b) }},
			{"CmpEq", func() Vec[int32, A] { return CmpEq(a, a) }},
			{"Cast", func() Vec[int32, A] { return Cast[int32](Cast[float32](a)) }},
		}
		for _, op := range ops {
			native := op.f()
			restore := forceGeneric()
			generic := op.f()
			restore()
			assert.Equal(t, generic, native, op.name)
		}
	}
}

func TestNativeEquivalenceAVX(t *testing.T) {
	t.Run("float32", func(t *testing.T) { checkFloatEquivalence[AVX_8](t, nativeAVX) })
	t.Run("special", func(t *testing.T) { checkSpecialEquivalence[AVX_8](t, nativeAVX) })
	t.Run("fmadd", func(t *testing.T) { checkFMAddRounding[AVX_8](t, nativeAVX) })
	t.Run("cvt", func(t *testing.T) { checkCvtSpecial[AVX_8](t, nativeAVX) })
}

func TestNativeEquivalenceAVX2(t *testing.T) {
	t.Run("float32", func(t *testing.T) { checkFloatEquivalence[AVX2_8](t, nativeAVX2) })
	t.Run("special", func(t *testing.T) { checkSpecialEquivalence[AVX2_8](t, nativeAVX2) })
	t.Run("fmadd", func(t *testing.T) { checkFMAddRounding[AVX2_8](t, nativeAVX2) })
	t.Run("cvt", func(t *testing.T) { checkCvtSpecial[AVX2_8](t, nativeAVX2) })
	t.Run("int32", func(t *testing.T) { checkIntEquivalence[AVX2_8](t, nativeAVX2) })
}

func TestNativeEquivalenceAVX512(t *testing.T) {
	t.Run("float32", func(t *testing.T) { checkFloatEquivalence[AVX512_16](t, nativeAVX512) })
	t.Run("special", func(t *testing.T) { checkSpecialEquivalence[AVX512_16](t, nativeAVX512) })
	t.Run("fmadd", func(t *testing.T) { checkFMAddRounding[AVX512_16](t, nativeAVX512) })
	t.Run("cvt", func(t *testing.T) { checkCvtSpecial[AVX512_16](t, nativeAVX512) })
	t.Run("int32", func(t *testing.T) { checkIntEquivalence[AVX512_16](t, nativeAVX512) })
}

func TestNativeCompareNaN(t *testing.T) {
	if !nativeAVX2 {
		t.Skip("AVX2 not supported on this CPU")
	}
	nan := float32(math.NaN())
	a := Of[float32, AVX2_8](1, nan, 2, nan, 3)
	b := Of[float32, AVX2_8](1, 1, nan, nan, 4)
	for _, p := range []Predicate{CmpLT, CmpLE, CmpGT, CmpGE, CmpEQ, CmpNE} {
		native := Compare(p, a, b)
		restore := forceGeneric()
		generic := Compare(p, a, b)
		restore()
		assert.Equal(t, generic, native, "predicate %v", p)
	}
}

func TestAVX8IntegersStayGeneric(t *testing.T) {
	assert.False(t, Accelerated[int32, AVX_8](OpAdd))
	assert.False(t, Accelerated[float32, AVX_8](OpAnd))
	assert.False(t, Accelerated[float32, AVX_4](OpAdd))
	assert.False(t, Accelerated[uint32, AVX2_8](OpAdd))
}
