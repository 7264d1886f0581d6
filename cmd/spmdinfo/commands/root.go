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

	"github.com/spf13/cobra"

	"github.com/lanewise/go-spmd/internal/config"
	"github.com/lanewise/go-spmd/internal/logging"
	"github.com/lanewise/go-spmd/spmd"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "spmdinfo",
	Short: "Inspect the spmd vector layer on this machine",
	Long: `spmdinfo reports the instruction set the spmd package detected, the
descriptors it can run and which operations have native kernels, and
checks the math kernels against the standard library.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRunE = loadConfig

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.spmd.yaml)")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.Bool("no-simd", false, "disable native overrides")
	pf.String("gather", "manual", "gather policy (manual, hardware)")
	pf.StringP("arch", "a", "generic8", "descriptor to run (see 'spmdinfo isa')")
}

// loadConfig merges defaults, the config file, SPMD_* variables and flags,
// then applies the result to the logger and the spmd package.
func loadConfig(cmd *cobra.Command, _ []string) error {
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}

	pf := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"log_level":     "log-level",
		"no_simd":       "no-simd",
		"gather_policy": "gather",
		"arch":          "arch",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	if f := cmd.Flags().Lookup("samples"); f != nil {
		_ = v.BindPFlag("check.samples", f)
	}
	if f := cmd.Flags().Lookup("tolerance"); f != nil {
		_ = v.BindPFlag("check.tolerance", f)
	}
	if f := cmd.Flags().Lookup("workers"); f != nil {
		_ = v.BindPFlag("check.workers", f)
	}

	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c

	if err := logging.Init(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		logging.Warnf("bad log level %q, using info: %v", cfg.LogLevel, err)
	}
	if path := config.ConfigFile(v); path != "" {
		logging.Debugf("using config file %s", path)
	}

	policy, err := spmd.ParseGatherPolicy(cfg.GatherPolicy)
	if err != nil {
		return err
	}
	spmd.SetGatherPolicy(policy)

	if cfg.NoSIMD {
		spmd.DisableNative()
		logging.Debugf("native overrides disabled by configuration")
	}
	return nil
}
