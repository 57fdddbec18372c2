/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui is the desktop front end: a findings table over a
// background analysis run. The Fyne implementation is gated behind the
// "fyne" build tag so headless builds and CI stay display-free; the
// view-model helpers in this file are shared by all builds.
package ui

import (
	"fmt"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// severityFilterAll is the filter option that shows everything.
const severityFilterAll = "All severities"

// severityFilterOptions returns the dropdown choices for the findings
// table filter.
func severityFilterOptions() []string {
	return []string{
		severityFilterAll,
		model.SeverityCritical.String(),
		model.SeverityHigh.String(),
		model.SeverityMedium.String(),
		model.SeverityLow.String(),
		model.SeverityStyle.String(),
	}
}

// filterFindings returns the findings matching the selected filter
// option. The input order is preserved.
func filterFindings(findings []model.Finding, option string) []model.Finding {
	if option == "" || option == severityFilterAll {
		return findings
	}
	sev, ok := model.ParseSeverity(option)
	if !ok {
		return findings
	}
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// findingCell renders one table cell for a finding row.
// Columns: severity, title, location, check.
func findingCell(f model.Finding, col int) string {
	switch col {
	case 0:
		return f.Severity.String()
	case 1:
		return f.Title
	case 2:
		if f.File == "" {
			return ""
		}
		return fmt.Sprintf("%s:%d", f.File, f.Line)
	case 3:
		return f.CheckName
	default:
		return ""
	}
}

// findingDetail renders the detail pane text for a selected finding.
func findingDetail(f model.Finding) string {
	s := f.Description
	if f.Suggestion != "" {
		if s != "" {
			s += "\n\n"
		}
		s += "Suggestion: " + f.Suggestion
	}
	if s == "" {
		s = f.Title
	}
	return s
}

// summaryLine is the status text after a completed run.
func summaryLine(findings []model.Finding) string {
	if len(findings) == 0 {
		return "No issues found."
	}
	counts := make(map[model.Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}
	return fmt.Sprintf("%d findings — %d critical, %d high, %d medium, %d low, %d style",
		len(findings),
		counts[model.SeverityCritical],
		counts[model.SeverityHigh],
		counts[model.SeverityMedium],
		counts[model.SeverityLow],
		counts[model.SeverityStyle],
	)
}
