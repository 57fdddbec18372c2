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

var builtinTransforms = map[string]struct{}{
	"left": {}, "right": {}, "center": {}, "truecenter": {},
	"topleft": {}, "topright": {}, "top": {}, "bottom": {},
	"default": {}, "reset": {}, "flip": {},
	"offscreenleft": {}, "offscreenright": {},
}

// CheckTransforms reports duplicate transform definitions, 'at'
// clauses naming transforms that do not exist, and transforms never
// used.
func CheckTransforms(proj *model.Project) []model.Finding {
	var findings []model.Finding

	defined := make(map[string][]model.TransformDef)
	var defOrder []string
	for _, td := range proj.TransformDefs {
		if _, seen := defined[td.Name]; !seen {
			defOrder = append(defOrder, td.Name)
		}
		defined[td.Name] = append(defined[td.Name], td)
	}

	for _, name := range defOrder {
		defs := defined[name]
		if len(defs) < 2 {
			continue
		}
		locs := make([]string, len(defs))
		for i, d := range defs {
			locs[i] = fmt.Sprintf("%s:%d", d.File, d.Line)
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityMedium,
			CheckName: "transforms",
			Title:     fmt.Sprintf("Duplicate transform '%s'", name),
			Description: fmt.Sprintf(
				"Transform '%s' is defined %d times: %s. Only the last definition will be used.",
				name, len(defs), strings.Join(locs, ", ")),
			File:       defs[0].File,
			Line:       defs[0].Line,
			Suggestion: "Remove duplicate definitions.",
		})
	}

	refs := make(map[string][]model.TransformRef)
	var refOrder []string
	for _, tr := range proj.TransformRefs {
		if _, seen := refs[tr.Name]; !seen {
			refOrder = append(refOrder, tr.Name)
		}
		refs[tr.Name] = append(refs[tr.Name], tr)
	}

	for _, name := range refOrder {
		if _, ok := defined[name]; ok {
			continue
		}
		if _, ok := builtinTransforms[name]; ok {
			continue
		}
		rs := refs[name]
		first := rs[0]
		countNote := ""
		if len(rs) == 2 {
			countNote = " (and 1 other location)"
		} else if len(rs) > 2 {
			countNote = fmt.Sprintf(" (and %d other locations)", len(rs)-1)
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityMedium,
			CheckName: "transforms",
			Title:     fmt.Sprintf("Undefined transform '%s'", name),
			Description: fmt.Sprintf(
				"Transform '%s' is used in an 'at' clause at %s:%d%s but is never defined.",
				name, first.File, first.Line, countNote),
			File:       first.File,
			Line:       first.Line,
			Suggestion: fmt.Sprintf("Define 'transform %s:' or check for typos.", name),
		})
	}

	for _, name := range defOrder {
		if _, used := refs[name]; used {
			continue
		}
		if _, ok := builtinTransforms[name]; ok {
			continue
		}
		d := defined[name][0]
		findings = append(findings, model.Finding{
			Severity:  model.SeverityLow,
			CheckName: "transforms",
			Title:     fmt.Sprintf("Unused transform '%s'", name),
			Description: fmt.Sprintf(
				"Transform '%s' defined at %s:%d is never referenced in an 'at' clause.",
				name, d.File, d.Line),
			File:       d.File,
			Line:       d.Line,
			Suggestion: "Remove if no longer needed.",
		})
	}

	return findings
}
