package spmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherScatterRoundTrip(t *testing.T) {
	backing := make([]float32, 16)
	idx := Of[int32, Generic8](3, 0, 15, 7, 9, 1, 12, 4)
	p := PtrsTo(backing, idx)

	v := Iota[float32, Generic8](10)
	Scatter(p, v)
	assert.Equal(t, float32(10), backing[3])
	assert.Equal(t, float32(12), backing[15])

	assert.Equal(t, v, Gather(p))
}

func TestGatherMaskedLeavesInactiveLanes(t *testing.T) {
	src := []int32{100, 101, 102, 103}
	p := PtrsOf[int32, Generic4](&src[3], &src[2], &src[1], &src[0])

	dst := Of[int32, Generic4](-1, -2, -3, -4)
	GatherMasked(&dst, p, MaskOf[Generic4](true, false, true, false))
	assert.Equal(t, []int32{103, -2, 101, -4}, dst.Data())
}

func TestScatterMasked(t *testing.T) {
	dst := []int32{0, 0, 0, 0}
	p := PtrsOf[int32, Generic4](&dst[0], &dst[1], &dst[2], &dst[3])
	ScatterMasked(p, Of[int32, Generic4](1, 2, 3, 4), MaskOf[Generic4](false, true, false, true))
	assert.Equal(t, []int32{0, 2, 0, 4}, dst)
}

func TestPtrsNilLanes(t *testing.T) {
	x := float64(7)
	p := PtrsOf[float64, Generic4](nil, &x)
	assert.Equal(t, []float64{0, 7, 0, 0}, Gather(p).Data())

	Scatter(p, Set[float64, Generic4](9))
	assert.Equal(t, 9.0, x)
	assert.Nil(t, p.Get(0))

	p.Put(0, &x)
	p.Apply(func(v float64) float64 { return v + 1 })
	assert.Equal(t, 11.0, x, "shared pointer sees both updates")
}

func TestScatterDuplicateHighestLaneWins(t *testing.T) {
	dst := make([]int32, 2)
	p := PtrsTo(dst, Of[int32, Generic4](1, 1, 0, 1))
	Scatter(p, Of[int32, Generic4](10, 20, 30, 40))
	assert.Equal(t, []int32{30, 40}, dst)
}

func TestGatherIndex(t *testing.T) {
	src := []float32{0, 10, 20, 30, 40}
	idx := Of[int32, Generic8](4, 0, -1, 2, 5, 1, 3, 100)

	got := GatherIndex(src, idx)
	assert.Equal(t, []float32{40, 0, 0, 20, 0, 10, 30, 0}, got.Data())

	masked := GatherIndexMasked(src, idx, FirstN[Generic8](4))
	assert.Equal(t, []float32{40, 0, 0, 20, 0, 0, 0, 0}, masked.Data())
}

func TestScatterIndex(t *testing.T) {
	dst := make([]int64, 4)
	idx := Of[int64, Generic4](3, -1, 0, 4)
	ScatterIndex(Of[int64, Generic4](1, 2, 3, 4), dst, idx)
	assert.Equal(t, []int64{3, 0, 0, 1}, dst)

	ScatterIndexMasked(Set[int64, Generic4](9), dst, IndicesStride[int64, Generic4](0, 1), MaskOf[Generic4](false, true))
	assert.Equal(t, []int64{3, 9, 0, 1}, dst)
}

func TestGatherPolicyParity(t *testing.T) {
	defer SetGatherPolicy(CurrentGatherPolicy())

	src := make([]int32, 64)
	for i := range src {
		src[i] = int32(i * i)
	}
	idx := Of[int32, AVX2_8](63, 5, -4, 17, 64, 0, 33, 2)
	m := MaskFromBits[AVX2_8](0b1011_0111)

	var results [2][2]Vec[int32, AVX2_8]
	var scattered [2][]int32
	for i, p := range []GatherPolicy{GatherManual, GatherHardware} {
		SetGatherPolicy(p)
		require.Equal(t, p, CurrentGatherPolicy())
		results[i][0] = GatherIndex(src, idx)
		results[i][1] = GatherIndexMasked(src, idx, m)

		scattered[i] = make([]int32, 64)
		ScatterIndexMasked(Iota[int32, AVX2_8](1), scattered[i], idx, m)
	}
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, scattered[0], scattered[1])

	assert.Equal(t, []int32{63 * 63, 25, 0, 17 * 17, 0, 0, 33 * 33, 4}, results[0][0].Data())
	want := make([]int32, 64)
	want[63], want[5], want[0], want[2] = 1, 2, 6, 8
	assert.Equal(t, want, scattered[0])
}

func TestParseGatherPolicy(t *testing.T) {
	p, err := ParseGatherPolicy(" Hardware ")
	require.NoError(t, err)
	assert.Equal(t, GatherHardware, p)
	assert.Equal(t, "hardware", p.String())

	_, err = ParseGatherPolicy("fastest")
	assert.Error(t, err)
}
