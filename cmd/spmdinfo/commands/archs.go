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

package commands

import (
	"fmt"
	"strings"

	"github.com/lanewise/go-spmd/spmd"
	"github.com/lanewise/go-spmd/spmd/contrib/math"
)

// archRunner binds the generic entry points of one descriptor so the
// commands can pick a descriptor by name at run time.
type archRunner struct {
	desc        spmd.Descriptor
	accelerated func(op spmd.Op) (f32, i32 bool)
	kernels     map[string]func(dst, src []float32)
}

func runnerFor[A spmd.Arch]() archRunner {
	var a A
	d, _ := spmd.LookupDescriptor(a.Name())
	return archRunner{
		desc: d,
		accelerated: func(op spmd.Op) (bool, bool) {
			return spmd.Accelerated[float32, A](op), spmd.Accelerated[int32, A](op)
		},
		kernels: map[string]func(dst, src []float32){
			"log": math.LogSlice[A],
			"exp": math.ExpSlice[A],
			"sin": math.SinSlice[A],
			"cos": math.CosSlice[A],
		},
	}
}

func lookupArch(name string) (archRunner, error) {
	switch strings.ToLower(name) {
	case "generic1":
		return runnerFor[spmd.Generic1](), nil
	case "generic2":
		return runnerFor[spmd.Generic2](), nil
	case "generic4":
		return runnerFor[spmd.Generic4](), nil
	case "generic8":
		return runnerFor[spmd.Generic8](), nil
	case "generic16":
		return runnerFor[spmd.Generic16](), nil
	case "generic32":
		return runnerFor[spmd.Generic32](), nil
	case "avx_4":
		return runnerFor[spmd.AVX_4](), nil
	case "avx_8":
		return runnerFor[spmd.AVX_8](), nil
	case "avx2_8":
		return runnerFor[spmd.AVX2_8](), nil
	case "avx512_16":
		return runnerFor[spmd.AVX512_16](), nil
	case "default":
		return runnerFor[spmd.Default](), nil
	}
	return archRunner{}, fmt.Errorf("unknown arch %q", name)
}
