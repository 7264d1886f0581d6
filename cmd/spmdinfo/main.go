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

// spmdinfo reports what the spmd package sees on the running machine and
// checks the math kernels against the standard library.
//
// Usage:
//
//	spmdinfo isa
//	spmdinfo ops --arch avx2_8
//	spmdinfo check --samples 100000 --tolerance 1e-5
package main

import (
	"os"

	"github.com/lanewise/go-spmd/cmd/spmdinfo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
