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
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Wintersta7e/renpy-analyzer/internal/history"
	"github.com/Wintersta7e/renpy-analyzer/internal/model"
	"github.com/Wintersta7e/renpy-analyzer/internal/report"
)

var (
	historyLimit int
	historyShow  int64
	historyPrune int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis runs",
	Long: `History lists the analysis runs recorded in the per-user database,
newest first. Use --show to print the findings of one run, or --prune
to keep only the most recent runs.`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list (0 = all).")
	historyCmd.Flags().Int64Var(&historyShow, "show", 0, "Print the findings recorded for the given run ID.")
	historyCmd.Flags().IntVar(&historyPrune, "prune", 0, "Delete all but the N most recent runs.")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	loadConfig()

	path, err := history.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if historyPrune > 0 {
		removed, err := store.Prune(ctx, historyPrune)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Removed %d run(s).\n", removed)
		return
	}

	if historyShow > 0 {
		findings, err := store.Findings(ctx, historyShow)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		if err := report.WriteText(os.Stdout, findings, stdoutIsTerminal()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		return
	}

	runs, err := store.Runs(ctx, historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return
	}
	fmt.Printf("%-5s %-20s %-9s %-9s %s\n", "ID", "STARTED", "DURATION", "FINDINGS", "PROJECT")
	for _, r := range runs {
		fmt.Printf("%-5d %-20s %-9s %-9s %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration.Round(time.Millisecond),
			summarizeCounts(r),
			r.ProjectPath,
		)
	}
}

// summarizeCounts renders "total (crit c)" with the critical count
// called out when present.
func summarizeCounts(r history.Run) string {
	if c := r.BySeverity[model.SeverityCritical]; c > 0 {
		return fmt.Sprintf("%d (%dC)", r.FindingCount, c)
	}
	return fmt.Sprintf("%d", r.FindingCount)
}
