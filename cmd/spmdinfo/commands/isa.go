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
	"io"
	"reflect"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lanewise/go-spmd/spmd"
)

var isaCmd = &cobra.Command{
	Use:   "isa",
	Short: "Show the detected instruction set and descriptors",
	Long: `Display the instruction-set level probed at startup, the CPU features
behind it, and every descriptor with its width, alignment and whether it
is available on this machine.`,
	Args: cobra.NoArgs,
	RunE: runISA,
}

func init() {
	rootCmd.AddCommand(isaCmd)
}

var title = cases.Title(language.English)

// heading title-cases the fixed words and appends name as given, so
// descriptor names such as avx_8 print unchanged.
func heading(w io.Writer, words, name string) {
	if name == "" {
		fmt.Fprintf(w, "%s\n\n", title.String(words))
		return
	}
	fmt.Fprintf(w, "%s %s\n\n", title.String(words), name)
}

func runISA(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	isa := spmd.SystemISA()
	feat := spmd.SystemFeatures()

	heading(w, "instruction set", "")
	fmt.Fprintf(w, "  Platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "  ISA:       %s\n", isa)
	if feat.Vendor != "" {
		fmt.Fprintf(w, "  Vendor:    %s\n", feat.Vendor)
	}
	fmt.Fprintf(w, "  Features:  %v\n", featureNames(feat))
	fmt.Fprintf(w, "  Native:    %v\n", spmd.NativeEnabled())
	fmt.Fprintf(w, "  Gather:    %s\n\n", spmd.CurrentGatherPolicy())

	heading(w, "descriptors", "")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tWIDTH\tALIGN\tAVAILABLE")
	for _, d := range spmd.Descriptors() {
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%v\n", d.Name, d.Width, d.Alignment, d.Available(isa))
	}
	return tw.Flush()
}

// featureNames lists the boolean fields of f that are set.
func featureNames(f spmd.Features) []string {
	var names []string
	v := reflect.ValueOf(f)
	t := v.Type()
	for i := range t.NumField() {
		if fv := v.Field(i); fv.Kind() == reflect.Bool && fv.Bool() {
			names = append(names, t.Field(i).Name)
		}
	}
	return names
}
