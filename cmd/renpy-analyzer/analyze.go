/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Wintersta7e/renpy-analyzer/internal/analyzer"
	"github.com/Wintersta7e/renpy-analyzer/internal/checks"
	"github.com/Wintersta7e/renpy-analyzer/internal/history"
	applog "github.com/Wintersta7e/renpy-analyzer/internal/log"
	"github.com/Wintersta7e/renpy-analyzer/internal/model"
	"github.com/Wintersta7e/renpy-analyzer/internal/report"
	"github.com/Wintersta7e/renpy-analyzer/internal/sdk"
	"github.com/Wintersta7e/renpy-analyzer/internal/telemetry"
)

var (
	analyzeChecks  string
	analyzeOutput  string
	analyzeFormat  string
	analyzeSDKPath string
	analyzeNoSave  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <project-path>",
	Short: "Analyze a Ren'Py project for bugs and issues",
	Long: `Analyze scans every .rpy file under the project path and runs the
selected checks. The process exits 0 when the project is clean, 1 when
findings were reported, and 2 on errors.`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeChecks, "checks", "",
		"Comma-separated check names (default: all). Available: "+checkNames())
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Export PDF report to this path.")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format: text or json.")
	analyzeCmd.Flags().StringVar(&analyzeSDKPath, "sdk-path", "",
		"Path to a Ren'Py SDK directory. Uses the SDK's parser instead of regex.")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-history", false, "Do not record this run in the history database.")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	l := applog.WithComponent("cli")
	projectPath := args[0]

	if analyzeFormat != "text" && analyzeFormat != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want text or json)\n", analyzeFormat)
		os.Exit(2)
	}
	if _, err := os.Stat(projectPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var selected []string
	if analyzeChecks != "" {
		for _, name := range strings.Split(analyzeChecks, ",") {
			selected = append(selected, strings.TrimSpace(name))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sdkPath := sdk.Resolve(projectPath, analyzeSDKPath, cfg.SDK.Paths, cfg.SDK.Autodetect)
	started := time.Now()
	findings, err := analyzer.Run(ctx, analyzer.Options{
		ProjectPath: projectPath,
		Checks:      selected,
		Disabled:    cfg.Analysis.DisabledChecks,
		SDKPath:     sdkPath,
		OnProgress: func(message string, _ float64) {
			if verboseFlag {
				fmt.Fprintln(os.Stderr, message)
			}
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	duration := time.Since(started)

	shown := filterBySeverity(findings, cfg.Analysis.MinSeverity)

	if analyzeFormat == "json" {
		if err := report.WriteJSON(os.Stdout, shown); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	} else {
		if err := report.WriteText(os.Stdout, shown, stdoutIsTerminal()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		if len(shown) > 0 {
			fmt.Fprintf(os.Stderr, "Total: %d finding(s).\n", len(shown))
		}
	}

	if analyzeOutput != "" {
		abs, _ := filepath.Abs(projectPath)
		if err := report.WritePDF(shown, analyzeOutput, filepath.Base(abs), abs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "PDF report saved to %s\n", analyzeOutput)
	}

	if !analyzeNoSave {
		recordHistory(l, projectPath, started, duration, findings)
	}

	bySev := make(map[string]int)
	for _, f := range findings {
		bySev[f.Severity.String()]++
	}
	telemetry.AnalysisCompleted(duration, len(findings), bySev)
	flushTelemetry()

	if len(findings) > 0 {
		os.Exit(1)
	}
}

// filterBySeverity drops findings less severe than the configured
// minimum. An empty or unknown minimum shows everything.
func filterBySeverity(findings []model.Finding, minSeverity string) []model.Finding {
	sev, ok := model.ParseSeverity(minSeverity)
	if !ok || sev == model.SeverityStyle {
		return findings
	}
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Severity <= sev {
			out = append(out, f)
		}
	}
	return out
}

func stdoutIsTerminal() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func recordHistory(l *slog.Logger, projectPath string, started time.Time, duration time.Duration, findings []model.Finding) {
	path, err := history.DefaultPath()
	if err != nil {
		return
	}
	store, err := history.Open(path)
	if err != nil {
		l.Warn("history open failed", slog.Any("err", err))
		return
	}
	defer func() { _ = store.Close() }()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	abs, _ := filepath.Abs(projectPath)
	if _, err := store.RecordRun(ctx, abs, started, duration, findings); err != nil {
		l.Warn("history record failed", slog.Any("err", err))
	}
}

func flushTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	telemetry.Flush(ctx)
}

// available check names for the analyze help text.
func checkNames() string {
	all := checks.All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.ID
	}
	return strings.Join(names, ", ")
}
