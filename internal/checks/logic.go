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

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

var (
	// `flag1 or flag2 == True` binds as `flag1 or (flag2 == True)`.
	rePrecedenceBug = regexp.MustCompile(`\b(\w+)\s+(or|and)\s+(\w+)\s*==\s*(True|False)\b`)
	reExplicitBool  = regexp.MustCompile(`\b(\w+)\s*==\s*(True|False)\b`)
	reTrailingEq    = regexp.MustCompile(`==\s*$`)
)

// CheckLogic flags operator precedence traps around `== True/False`
// in conditions, and the explicit boolean comparison style itself.
func CheckLogic(proj *model.Project) []model.Finding {
	var findings []model.Finding

	for _, cond := range proj.Conditions {
		expr := cond.Expression

		matches := rePrecedenceBug.FindAllStringSubmatchIndex(expr, -1)
		for _, idx := range matches {
			left := expr[idx[2]:idx[3]]
			op := expr[idx[4]:idx[5]]
			right := expr[idx[6]:idx[7]]
			boolVal := expr[idx[8]:idx[9]]

			// `x == y and z == True` is fine; skip when the match is
			// itself the right side of a comparison.
			if reTrailingEq.MatchString(expr[:idx[0]]) {
				continue
			}

			neg := ""
			if boolVal == "False" {
				neg = "not "
			}
			findings = append(findings, model.Finding{
				Severity:  model.SeverityCritical,
				CheckName: "logic",
				Title:     fmt.Sprintf("Operator precedence bug: '%s %s %s == %s'", left, op, right, boolVal),
				Description: fmt.Sprintf(
					"At %s:%d: `%s` - Python evaluates this as `%s %s (%s == %s)` due to operator precedence. Since `%s` is truthy when non-zero, the `%s == %s` check is effectively ignored.",
					cond.File, cond.Line, expr, left, op, right, boolVal, left, right, boolVal),
				File: cond.File,
				Line: cond.Line,
				Suggestion: fmt.Sprintf(
					"Write as: `%s == %s %s %s == %s` or better: `%s%s %s %s%s`",
					left, boolVal, op, right, boolVal, neg, left, op, neg, right),
			})
		}

		for _, m := range reExplicitBool.FindAllStringSubmatch(expr, -1) {
			varName := m[1]
			boolVal := m[2]
			if rePrecedenceBug.MatchString(expr) {
				continue
			}
			if varName == "True" || varName == "False" || varName == "None" {
				continue
			}
			var idiom string
			if boolVal == "True" {
				idiom = "`" + varName + "`"
			} else {
				idiom = "`not " + varName + "`"
			}
			neg := ""
			if boolVal == "False" {
				neg = "not "
			}
			findings = append(findings, model.Finding{
				Severity:  model.SeverityStyle,
				CheckName: "logic",
				Title:     fmt.Sprintf("Explicit '== %s' comparison", boolVal),
				Description: fmt.Sprintf(
					"At %s:%d: `%s` uses `%s == %s` instead of %s.",
					cond.File, cond.Line, expr, varName, boolVal, idiom),
				File:       cond.File,
				Line:       cond.Line,
				Suggestion: fmt.Sprintf("Use `%s%s` instead.", neg, varName),
			})
		}
	}

	return findings
}
