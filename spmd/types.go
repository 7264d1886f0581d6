// Package spmd provides fixed-width vector values with per-architecture
// dispatch and an SPMD-style execution mask for predicated control flow.
//
// A vector is parametrized by its element type and an architecture
// descriptor. The descriptor fixes the lane count at compile time; each
// portable operation runs a native instruction sequence when one is
// registered for the (element type, descriptor) pair and the CPU supports
// it, and a per-lane loop otherwise. Both paths produce identical bits.
//
// Basic usage:
//
//	import "github.com/lanewise/go-spmd/spmd"
//
//	a := spmd.Load[float32, spmd.Default](data1)
//	b := spmd.Load[float32, spmd.Default](data2)
//	sum := spmd.Add(a, b)
//	sum.Store(output)
//
// Divergent control flow goes through an execution context:
//
//	e := spmd.NewExec[spmd.Default]()
//	r := spmd.NewVarying[float32](e)
//	e.IfElse(spmd.Less(a, b), func() {
//		r.Assign(a)
//	}, func() {
//		r.Assign(b)
//	})
package spmd

// MaxWidth is the largest lane count any architecture descriptor may declare.
const MaxWidth = 32

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Floats | Integers
}
