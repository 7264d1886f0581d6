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
	"maps"
	stdmath "math"
	"math/rand/v2"
	"slices"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lanewise/go-spmd/internal/config"
	"github.com/lanewise/go-spmd/internal/logging"
	"github.com/lanewise/go-spmd/internal/workerpool"
)

var checkCmd = &cobra.Command{
	Use:   "check [kernel...]",
	Short: "Compare the math kernels against the standard library",
	Long: `Run log, exp, sin and cos on random inputs with the selected
descriptor and report the largest error against package math. The
command fails if any kernel exceeds the tolerance.

Errors are measured as |got-want| / max(|want|, 1), so results near zero
are judged on absolute error.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("samples", 4096, "random inputs per kernel")
	checkCmd.Flags().Float64("tolerance", 1e-5, "maximum accepted error")
	checkCmd.Flags().Int("workers", 0, "goroutines for large sample sets (0 means GOMAXPROCS)")
	rootCmd.AddCommand(checkCmd)
}

// kernelDomain describes the inputs a kernel is checked on and its
// reference implementation.
type kernelDomain struct {
	ref    func(float64) float64
	lo, hi float64
}

func domains(maxAbs float64) map[string]kernelDomain {
	return map[string]kernelDomain{
		"log": {stdmath.Log, 0x1p-126, stdmath.MaxFloat32},
		"exp": {stdmath.Exp, -87, 88},
		"sin": {stdmath.Sin, -maxAbs, maxAbs},
		"cos": {stdmath.Cos, -maxAbs, maxAbs},
	}
}

// checkResult is the outcome for one kernel.
type checkResult struct {
	Kernel string
	MaxErr float64
	WorstX float32
	Pass   bool
}

// sample draws n inputs in [lo, hi]. Wide positive ranges are drawn on a
// log scale so every binade is covered.
func sample(r *rand.Rand, n int, lo, hi float64) []float32 {
	out := make([]float32, n)
	logScale := lo > 0 && hi/lo > 1e6
	for i := range out {
		u := r.Float64()
		if logScale {
			out[i] = float32(lo * stdmath.Pow(hi/lo, u))
		} else {
			out[i] = float32(lo + (hi-lo)*u)
		}
	}
	return out
}

func relErr(got, want float64) float64 {
	return stdmath.Abs(got-want) / stdmath.Max(stdmath.Abs(want), 1)
}

// checkKernels runs the named kernels with runner r and measures them.
func checkKernels(r archRunner, names []string, cc config.CheckConfig, seed uint64) ([]checkResult, error) {
	doms := domains(cc.MaxAbs)
	pool := workerpool.New(cc.Workers)
	defer pool.Close()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var results []checkResult
	for _, name := range names {
		dom, ok := doms[name]
		kernel, kok := r.kernels[name]
		if !ok || !kok {
			return nil, fmt.Errorf("unknown kernel %q", name)
		}
		src := sample(rng, cc.Samples, dom.lo, dom.hi)
		dst := make([]float32, len(src))
		pool.ParallelFor(len(src), r.desc.Width, func(start, end int) {
			kernel(dst[start:end], src[start:end])
		})

		res := checkResult{Kernel: name}
		for i, x := range src {
			e := relErr(float64(dst[i]), dom.ref(float64(x)))
			if stdmath.IsNaN(e) || e > res.MaxErr {
				res.MaxErr, res.WorstX = e, x
			}
			if stdmath.IsNaN(e) {
				break
			}
		}
		res.Pass = !stdmath.IsNaN(res.MaxErr) && res.MaxErr <= cc.Tolerance
		logging.WithFields(logrus.Fields{
			"arch":    r.desc.Name,
			"kernel":  name,
			"samples": len(src),
			"max_err": res.MaxErr,
		}).Debug("kernel checked")
		results = append(results, res)
	}
	return results, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	r, err := lookupArch(cfg.Arch)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = slices.Sorted(maps.Keys(r.kernels))
	}

	results, err := checkKernels(r, names, cfg.Check, 1)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	heading(w, "kernel check on", r.desc.Name)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  KERNEL\tMAX ERROR\tAT\tRESULT")
	failed := 0
	for _, res := range results {
		verdict := "ok"
		if !res.Pass {
			verdict = "FAIL"
			failed++
		}
		fmt.Fprintf(tw, "  %s\t%.3g\t%g\t%s\n", res.Kernel, res.MaxErr, res.WorstX, verdict)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d kernels above tolerance %g", failed, len(results), cfg.Check.Tolerance)
	}
	return nil
}
