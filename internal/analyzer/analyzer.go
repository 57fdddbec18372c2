/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package analyzer orchestrates a full project analysis: loading,
// running the selected checks, and ordering findings. It is the one
// entry point shared by the CLI and the GUI.
package analyzer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/checks"
	"github.com/Wintersta7e/renpy-analyzer/internal/log"
	"github.com/Wintersta7e/renpy-analyzer/internal/model"
	"github.com/Wintersta7e/renpy-analyzer/internal/project"
)

var logger = log.WithComponent("analyzer")

// ProgressFunc receives human-readable progress updates. fraction runs
// from 0.0 to 1.0.
type ProgressFunc func(message string, fraction float64)

// Options selects what to analyze and how.
type Options struct {
	// ProjectPath is the project root or its game/ subdirectory.
	ProjectPath string

	// Checks selects checks by ID or display name. Nil runs all
	// checks; an empty non-nil slice runs none.
	Checks []string

	// Disabled removes checks from the selection after it is
	// resolved, matching by ID or display name.
	Disabled []string

	// SDKPath routes parsing through the Ren'Py SDK when set.
	SDKPath string

	// OnProgress, when non-nil, receives progress updates.
	OnProgress ProgressFunc
}

// Run analyzes a Ren'Py project and returns findings sorted most
// severe first. When the path holds several sub-games, each is
// analyzed independently and findings are combined with the sub-game
// name prefixed to file paths.
//
// Cancellation is checked between checks and between sub-games; on
// cancellation the findings collected so far are returned together
// with ctx.Err().
func Run(ctx context.Context, opts Options) ([]model.Finding, error) {
	selected, err := resolveChecks(opts.Checks, opts.Disabled)
	if err != nil {
		return nil, err
	}

	progress := opts.OnProgress
	if progress == nil {
		progress = func(string, float64) {}
	}

	var findings []model.Finding
	if subGames := project.DetectSubGames(opts.ProjectPath); len(subGames) > 0 {
		findings, err = runMultiGame(ctx, opts, subGames, selected, progress)
	} else {
		findings, err = runSingle(ctx, opts, opts.ProjectPath, selected, progress, "")
	}
	if err != nil {
		return findings, err
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity < findings[j].Severity
	})
	logger.Info("analysis complete", "findings", len(findings), "checks", len(selected))
	progress("Analysis complete.", 1.0)
	return findings, nil
}

// resolveChecks turns the requested names into runnable checks,
// rejecting names that match nothing.
func resolveChecks(requested, disabled []string) ([]checks.Check, error) {
	var selected []checks.Check
	if requested == nil {
		selected = checks.All()
	} else {
		var unknown []string
		for _, name := range requested {
			c, ok := checks.ByName(name)
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			selected = append(selected, c)
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return nil, fmt.Errorf("unknown check(s): %s", strings.Join(unknown, ", "))
		}
	}

	if len(disabled) == 0 {
		return selected, nil
	}
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		if c, ok := checks.ByName(name); ok {
			off[c.ID] = true
		}
	}
	kept := selected[:0]
	for _, c := range selected {
		if !off[c.ID] {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

func runSingle(ctx context.Context, opts Options, path string, selected []checks.Check, progress ProgressFunc, filePrefix string) ([]model.Finding, error) {
	parserLabel := "regex"
	if opts.SDKPath != "" {
		parserLabel = "SDK"
	}
	what := filePrefix
	if what == "" {
		what = "project"
	}
	progress(fmt.Sprintf("Parsing %s files (%s parser)...", what, parserLabel), 0.0)

	proj, err := project.Load(ctx, path, project.Options{SDKPath: opts.SDKPath})
	if err != nil {
		return nil, err
	}
	progress(fmt.Sprintf("Parsed %d .rpy files.", len(proj.Files)), 0.1)

	var findings []model.Finding
	total := len(selected)
	for idx, c := range selected {
		if err := ctx.Err(); err != nil {
			logger.Info("analysis cancelled", "after_checks", idx)
			return prefixFiles(findings, filePrefix), err
		}
		progress(fmt.Sprintf("Running check: %s...", c.DisplayName), 0.1+0.85*float64(idx)/float64(total))
		findings = append(findings, c.Run(proj)...)
	}
	if err := ctx.Err(); err != nil {
		return prefixFiles(findings, filePrefix), err
	}

	if proj.HasRPYCOnly {
		findings = append([]model.Finding{{
			Severity:  model.SeverityMedium,
			CheckName: "project",
			Title:     "No .rpy source files found",
			Description: "This game contains only compiled .rpyc files with no .rpy source code. " +
				"The analyzer requires .rpy source files to detect issues. " +
				"The game may work correctly but cannot be analyzed.",
			Suggestion: "Look for an uncompiled version of the game, or use the Ren'Py SDK to decompile .rpyc files.",
		}}, findings...)
	}

	return prefixFiles(findings, filePrefix), nil
}

func runMultiGame(ctx context.Context, opts Options, subGames []string, selected []checks.Check, progress ProgressFunc) ([]model.Finding, error) {
	total := len(subGames)
	progress(fmt.Sprintf("Found %d sub-games, analyzing each independently...", total), 0.0)
	logger.Info("multi-game analysis", "sub_games", total, "path", opts.ProjectPath)

	var all []model.Finding
	for subIdx, subName := range subGames {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		base := float64(subIdx) / float64(total)
		span := 1.0 / float64(total)
		name := subName
		subProgress := func(msg string, frac float64) {
			progress(fmt.Sprintf("[%s] %s", name, msg), base+frac*span)
		}

		subFindings, err := runSingle(ctx, opts, filepath.Join(opts.ProjectPath, subName), selected, subProgress, subName)
		all = append(all, subFindings...)
		if err != nil {
			return all, err
		}
		logger.Info("sub-game analyzed", "name", subName, "findings", len(subFindings))
	}
	return all, nil
}

// prefixFiles rewrites finding paths as "<sub-game>/<file>" so combined
// multi-game reports stay unambiguous.
func prefixFiles(findings []model.Finding, prefix string) []model.Finding {
	if prefix == "" {
		return findings
	}
	for i := range findings {
		if findings[i].File != "" {
			findings[i].File = prefix + "/" + findings[i].File
		}
	}
	return findings
}
