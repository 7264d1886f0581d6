//go:build spmd_debug

package spmd

import "fmt"

func checkLane[A Arch](i int) {
	if w := Width[A](); i < 0 || i >= w {
		panic(fmt.Sprintf("spmd: lane %d out of range [0,%d)", i, w))
	}
}
