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
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// CheckLabels reports jumps and calls to labels that do not exist,
// duplicate label definitions, and jump/call targets that are only
// known at runtime.
func CheckLabels(proj *model.Project) []model.Finding {
	var findings []model.Finding

	labelDefs := make(map[string][]model.Label)
	for _, l := range proj.Labels {
		labelDefs[l.Name] = append(labelDefs[l.Name], l)
	}

	for _, jump := range proj.Jumps {
		if _, ok := labelDefs[jump.Target]; !ok {
			findings = append(findings, model.Finding{
				Severity:  model.SeverityCritical,
				CheckName: "labels",
				Title:     fmt.Sprintf("Missing label '%s'", jump.Target),
				Description: fmt.Sprintf(
					"jump %s at %s:%d targets a label that is never defined in any .rpy file. This will crash at runtime.",
					jump.Target, jump.File, jump.Line),
				File:       jump.File,
				Line:       jump.Line,
				Suggestion: fmt.Sprintf("Add 'label %s:' or fix the jump target name.", jump.Target),
			})
		}
	}

	for _, call := range proj.Calls {
		if _, ok := labelDefs[call.Target]; !ok {
			findings = append(findings, model.Finding{
				Severity:  model.SeverityCritical,
				CheckName: "labels",
				Title:     fmt.Sprintf("Missing label '%s'", call.Target),
				Description: fmt.Sprintf(
					"call %s at %s:%d targets a label that is never defined. This will crash at runtime.",
					call.Target, call.File, call.Line),
				File:       call.File,
				Line:       call.Line,
				Suggestion: fmt.Sprintf("Add 'label %s:' or fix the call target name.", call.Target),
			})
		}
	}

	// Iterate definitions in encounter order so duplicate reports come
	// out deterministically.
	reported := make(map[string]bool)
	for _, l := range proj.Labels {
		name := l.Name
		defs := labelDefs[name]
		if len(defs) < 2 || reported[name] {
			continue
		}
		reported[name] = true
		locs := make([]string, len(defs))
		for i, d := range defs {
			locs[i] = fmt.Sprintf("%s:%d", d.File, d.Line)
		}
		locations := strings.Join(locs, ", ")
		for _, d := range defs {
			findings = append(findings, model.Finding{
				Severity:  model.SeverityHigh,
				CheckName: "labels",
				Title:     fmt.Sprintf("Duplicate label '%s'", name),
				Description: fmt.Sprintf(
					"Label '%s' is defined %d times: %s. Only one definition will be used at runtime.",
					name, len(defs), locations),
				File:       d.File,
				Line:       d.Line,
				Suggestion: "Remove or rename duplicate label definitions.",
			})
		}
	}

	for _, dj := range proj.DynamicJumps {
		findings = append(findings, model.Finding{
			Severity:  model.SeverityMedium,
			CheckName: "labels",
			Title:     "Dynamic jump/call target",
			Description: fmt.Sprintf(
				"Expression-based jump/call at %s:%d: `%s` - target cannot be statically verified. Ensure the expression resolves to a valid label at runtime.",
				dj.File, dj.Line, dj.Expression),
			File:       dj.File,
			Line:       dj.Line,
			Suggestion: "Consider using a direct label name if the target is known at write time.",
		})
	}

	return findings
}
