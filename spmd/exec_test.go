package spmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIfRestoresMask(t *testing.T) {
	e := NewExec[Generic4]()
	require.True(t, e.Mask().All())

	var inside Mask[Generic4]
	e.If(MaskOf[Generic4](true, false, true, false), func() {
		inside = e.Mask()
	})
	assert.Equal(t, "1010", inside.String())
	assert.True(t, e.Mask().All())
}

func TestIfSkipsEmptyBody(t *testing.T) {
	e := NewExec[Generic4]()
	called := false
	e.If(AllFalse[Generic4](), func() { called = true })
	assert.False(t, called)

	called = false
	e.IfElse(AllTrue[Generic4](), func() {}, func() { called = true })
	assert.False(t, called, "else body ran with no active lanes")
}

func TestIfElseMasks(t *testing.T) {
	e := NewExec[Generic4]()
	var thenMask, elseMask Mask[Generic4]

	e.If(MaskOf[Generic4](true, true, true, false), func() {
		e.IfElse(MaskOf[Generic4](true, false, false, true), func() {
			thenMask = e.Mask()
		}, func() {
			elseMask = e.Mask()
		})
		assert.Equal(t, "1110", e.Mask().String())
	})

	assert.Equal(t, "1000", thenMask.String())
	assert.Equal(t, "0110", elseMask.String())
	assert.True(t, e.Mask().All())
}

func TestIfRestoresMaskOnPanic(t *testing.T) {
	e := NewExec[Generic8]()
	outer := MaskFromBits[Generic8](0b1111_0000)

	e.If(outer, func() {
		assert.Panics(t, func() {
			e.If(MaskFromBits[Generic8](0b0011_0000), func() {
				panic("boom")
			})
		})
		assert.Equal(t, outer, e.Mask())

		assert.Panics(t, func() {
			e.IfElse(MaskFromBits[Generic8](0b1000_0000), func() {}, func() {
				panic("boom")
			})
		})
		assert.Equal(t, outer, e.Mask())
	})
	assert.True(t, e.Mask().All())
}

func TestIfUniform(t *testing.T) {
	var ran []string
	IfUniform(true, func() { ran = append(ran, "then") })
	IfUniform(false, func() { ran = append(ran, "skipped") })
	IfUniformElse(false, func() { ran = append(ran, "then") }, func() { ran = append(ran, "else") })
	assert.Equal(t, []string{"then", "else"}, ran)
}

func TestVaryingAssignUsesCurrentMask(t *testing.T) {
	e := NewExec[Generic4]()
	x := NewVarying[int32](e)
	x.AssignScalar(1)

	a := Of[int32, Generic4](5, -3, 8, -1)
	e.IfElse(Greater(a, Zero[int32, Generic4]()), func() {
		x.Assign(a)
	}, func() {
		x.Assign(Neg(a))
	})
	assert.Equal(t, []int32{5, 3, 8, 1}, x.Value().Data())

	e.If(MaskOf[Generic4](false, true), func() {
		x.AssignFrom(func(i int) int32 { return int32(100 + i) })
		x.Put(0, -1)
		x.Put(1, 7)
	})
	assert.Equal(t, []int32{5, 7, 8, 1}, x.Value().Data())
	assert.Equal(t, int32(8), x.Get(2))
}
