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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lanewise/go-spmd/spmd"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List which operations run natively for a descriptor",
	Args:  cobra.NoArgs,
	RunE:  runOps,
}

func init() {
	rootCmd.AddCommand(opsCmd)
}

func runOps(cmd *cobra.Command, _ []string) error {
	r, err := lookupArch(cfg.Arch)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	heading(w, "operations on", r.desc.Name)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  OP\tFLOAT32\tINT32")
	for _, op := range spmd.Ops() {
		f32, i32 := r.accelerated(op)
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", op, path(f32), path(i32))
	}
	return tw.Flush()
}

func path(native bool) string {
	if native {
		return "native"
	}
	return "generic"
}
