// Copyright 2025 go-spmd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spmd

// Exec carries the active execution mask for SPMD-style divergent control
// flow. Writes through a Varying bound to an Exec only reach the lanes
// active at the time of the write.
//
// An Exec belongs to one goroutine; goroutines running the same kernel
// each create their own. Branches nest in strict stack order: the mask a
// branch installs is in effect only while its body runs.
type Exec[A Arch] struct {
	mask Mask[A]
}

// NewExec returns a context with every lane active.
func NewExec[A Arch]() *Exec[A] {
	return &Exec[A]{mask: AllTrue[A]()}
}

// Mask returns the current execution mask.
func (e *Exec[A]) Mask() Mask[A] {
	return e.mask
}

// If narrows the execution mask to the lanes where cond holds and runs
// then if any lane is left. The previous mask is restored on return, also
// when then panics.
func (e *Exec[A]) If(cond Mask[A], then func()) {
	saved := e.mask
	defer func() { e.mask = saved }()

	e.mask = saved.And(cond)
	if e.mask.Any() {
		then()
	}
}

// IfElse runs then under the lanes where cond holds and els under the
// remaining active lanes. Each body runs only if its mask has an active
// lane. The previous mask is restored on return, also when a body panics.
func (e *Exec[A]) IfElse(cond Mask[A], then, els func()) {
	saved := e.mask
	defer func() { e.mask = saved }()

	e.mask = saved.And(cond)
	if e.mask.Any() {
		then()
	}
	// Lanes active before the branch whose then-mask was false.
	e.mask = saved.AndNot(cond)
	if e.mask.Any() {
		els()
	}
}

// IfUniform is the branch for a condition known to be the same on every
// lane. It touches no mask.
func IfUniform(b bool, then func()) {
	if b {
		then()
	}
}

// IfUniformElse is IfUniform with an else body.
func IfUniformElse(b bool, then, els func()) {
	if b {
		then()
	} else {
		els()
	}
}
