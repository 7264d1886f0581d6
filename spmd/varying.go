package spmd

// Varying is a vector value whose writes are filtered by the execution
// mask of the Exec it is bound to. The mask is read at each write, so a
// Varying created outside a branch still respects the branch's mask.
type Varying[T Lanes, A Arch] struct {
	exec *Exec[A]
	v    Vec[T, A]
}

// NewVarying returns a zero Varying bound to e.
func NewVarying[T Lanes, A Arch](e *Exec[A]) *Varying[T, A] {
	return &Varying[T, A]{exec: e}
}

// Value returns the current lanes.
func (x *Varying[T, A]) Value() Vec[T, A] { return x.v }

// Get returns lane i.
func (x *Varying[T, A]) Get(i int) T { return x.v.Get(i) }

// Put writes lane i if it is active.
func (x *Varying[T, A]) Put(i int, val T) {
	if x.exec.mask.Get(i) {
		x.v.lanes[i] = val
	}
}

// Assign copies the active lanes of v.
func (x *Varying[T, A]) Assign(v Vec[T, A]) {
	x.v = Merge(v, x.v, x.exec.mask)
}

// AssignScalar broadcasts s into the active lanes.
func (x *Varying[T, A]) AssignScalar(s T) {
	x.exec.mask.ForEachActive(func(i int) {
		x.v.lanes[i] = s
	})
}

// AssignFrom sets every active lane i to f(i). f is not called for
// inactive lanes.
func (x *Varying[T, A]) AssignFrom(f func(i int) T) {
	x.exec.mask.ForEachActive(func(i int) {
		x.v.lanes[i] = f(i)
	})
}
