/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

var (
	reJumpLine   = regexp.MustCompile(`^(\s+)jump\s+\w+\s*$`)
	reReturnLine = regexp.MustCompile(`^(\s+)return(?:\s+\S.*)?$`)
	reLabelLine  = regexp.MustCompile(`^\s*label\s+\w+\s*:`)
)

// CheckFlow reports code that follows an unconditional jump or return
// at the same or deeper indentation, which can never execute.
func CheckFlow(proj *model.Project) []model.Finding {
	var findings []model.Finding
	for _, rel := range sortedFileKeys(proj.RawLines) {
		checkFileFlow(proj.RawLines[rel], rel, &findings)
	}
	return findings
}

func checkFileFlow(lines []string, rel string, findings *[]model.Finding) {
	for i, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")
		stripped := strings.TrimLeft(line, " \t")
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		m := reJumpLine.FindStringSubmatch(line)
		termKind := "jump"
		if m == nil {
			m = reReturnLine.FindStringSubmatch(line)
			termKind = "return"
		}
		if m == nil {
			continue
		}
		termIndent := len(m[1])
		lineno := i + 1

		// Look at the next non-blank, non-comment line.
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimRight(lines[j], " \t\r")
			nextStripped := strings.TrimLeft(next, " \t")
			if nextStripped == "" || strings.HasPrefix(nextStripped, "#") {
				continue
			}
			nextIndent := len(next) - len(nextStripped)

			// Shallower indent means an outer block resumed.
			if nextIndent < termIndent {
				break
			}
			if reLabelLine.MatchString(next) {
				break
			}

			*findings = append(*findings, model.Finding{
				Severity:  model.SeverityHigh,
				CheckName: "flow",
				Title:     fmt.Sprintf("Unreachable code after %s", termKind),
				Description: fmt.Sprintf(
					"Code at %s:%d follows a '%s' at line %d and will never execute.",
					rel, j+1, termKind, lineno),
				File:       rel,
				Line:       j + 1,
				Suggestion: fmt.Sprintf("Remove unreachable code or move it before the '%s'.", termKind),
			})
			break // only the first unreachable line per terminator
		}
	}
}
