/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package report

import (
	"fmt"
	"io"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// ANSI escape sequences for the terminal listing.
const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

func severityANSI(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return ansiRed
	case model.SeverityHigh, model.SeverityMedium:
		return ansiYellow
	case model.SeverityLow:
		return ansiGreen
	default:
		return ansiCyan
	}
}

// WriteText writes the findings as a terminal listing: a severity
// badge and title, the location, and the description and suggestion
// indented below. When color is true the badge and suggestion are
// wrapped in ANSI escapes.
func WriteText(w io.Writer, findings []model.Finding, color bool) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, "No issues found.")
		return err
	}
	for _, f := range findings {
		badge := "[" + f.Severity.String() + "]"
		if color {
			badge = ansiBold + severityANSI(f.Severity) + badge + ansiReset
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", badge, f.Title); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %s:%d\n", f.File, f.Line); err != nil {
			return err
		}
		if f.Description != "" {
			if _, err := fmt.Fprintf(w, "  %s\n", f.Description); err != nil {
				return err
			}
		}
		if f.Suggestion != "" {
			line := fmt.Sprintf("  -> %s", f.Suggestion)
			if color {
				line = ansiGreen + line + ansiReset
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
