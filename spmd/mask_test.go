package spmd

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskReductionDuals(t *testing.T) {
	for b := range uint32(1 << 8) {
		m := MaskFromBits[Generic8](b)
		assert.Equal(t, m.Movemask() == WidthMask[Generic8](), m.All(), "bits %08b", b)
		assert.Equal(t, m.Movemask() != 0, m.Any(), "bits %08b", b)
		assert.Equal(t, !m.Any(), m.None(), "bits %08b", b)
	}
}

func TestMaskBitsWithinWidth(t *testing.T) {
	m := MaskFromBits[Generic4](0xFFFFFFFF)
	assert.Equal(t, uint32(0xF), m.Movemask())
	assert.Equal(t, uint32(0), m.Not().Movemask())
	assert.Equal(t, uint32(0xF), AllFalse[Generic4]().Not().Movemask())
	assert.Equal(t, uint32(0x3), MaskOf[Generic2](true, true, true, true).Movemask())

	a := Of[float32, AVX_4](1, 2, 3, 4)
	assert.Zero(t, Less(a, a).Movemask()&^WidthMask[AVX_4]())
	assert.Zero(t, Equal(a, a).Movemask()&^WidthMask[AVX_4]())
}

func TestMaskFirstN(t *testing.T) {
	assert.Equal(t, uint32(0), FirstN[Generic8](-1).Movemask())
	assert.Equal(t, uint32(0), FirstN[Generic8](0).Movemask())
	assert.Equal(t, uint32(0b111), FirstN[Generic8](3).Movemask())
	assert.Equal(t, uint32(0xFF), FirstN[Generic8](8).Movemask())
	assert.Equal(t, uint32(0xFF), FirstN[Generic8](100).Movemask())
	assert.Equal(t, uint32(0xFFFFFFFF), FirstN[Generic32](32).Movemask())
}

func TestMaskLogic(t *testing.T) {
	a := MaskOf[Generic4](true, true, false, false)
	b := MaskOf[Generic4](true, false, true, false)

	assert.Equal(t, "1000", a.And(b).String())
	assert.Equal(t, "1110", a.Or(b).String())
	assert.Equal(t, "0110", a.Xor(b).String())
	assert.Equal(t, "0100", a.AndNot(b).String())
	assert.Equal(t, "0011", a.Not().String())
	assert.Equal(t, 2, a.Count())
	assert.True(t, a.Get(1))
	assert.False(t, a.Get(2))

	a.Put(3, true)
	a.Put(0, false)
	assert.Equal(t, "0101", a.String())
}

func TestForEachActive(t *testing.T) {
	m := MaskFromBits[Generic16](0b1000_0100_0010_0001)
	var got []int
	m.ForEachActive(func(i int) { got = append(got, i) })
	assert.Equal(t, []int{0, 5, 10, 15}, got)
	assert.Equal(t, got, slices.Collect(m.Active()))

	var first []int
	for i := range m.Active() {
		first = append(first, i)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 5}, first)
}

func TestLaneMaskRoundTrip(t *testing.T) {
	for b := range uint32(1 << 4) {
		m := MaskFromBits[Generic4](b)
		assert.Equal(t, m, MaskFromLanes(LaneMask[float32](m)))
		assert.Equal(t, m, MaskFromLanes(LaneMask[int16](m)))
		assert.Equal(t, m, MaskFromLanes(LaneMask[uint64](m)))
	}
}
