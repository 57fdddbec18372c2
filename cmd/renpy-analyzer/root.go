/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Wintersta7e/renpy-analyzer/internal/config"
	"github.com/Wintersta7e/renpy-analyzer/internal/crash"
	applog "github.com/Wintersta7e/renpy-analyzer/internal/log"
	"github.com/Wintersta7e/renpy-analyzer/internal/telemetry"
	"github.com/Wintersta7e/renpy-analyzer/internal/version"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "renpy-analyzer",
	Short: "Static analyzer for Ren'Py visual novel scripts",
	Long: `renpy-analyzer scans a Ren'Py project's .rpy scripts for bugs a
playthrough might never hit: broken jumps, undefined variables, missing
assets, dead code, text tag mistakes, and more.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("renpy-analyzer version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging.")
}

// loadConfig reads the user config and initializes logging per its
// settings, with --verbose forcing debug level.
func loadConfig() config.AppConfig {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Defaults()
	}
	logOpts := applog.FromEnv()
	if cfg.Logging.Level != "" {
		logOpts.Level = cfg.Logging.Level
	}
	if cfg.Logging.Format != "" {
		logOpts.Format = cfg.Logging.Format
	}
	if cfg.Logging.File != "" {
		logOpts.File = cfg.Logging.File
	}
	if verboseFlag {
		logOpts.Level = "debug"
	}
	applog.Init(logOpts)

	tcfg := telemetry.FromEnv()
	tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
	telemetry.NewDefault(tcfg)
	return cfg
}

func main() {
	defer crash.Recover()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
