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

// builtinScreens ship with the default GUI template; games reference
// them without defining them.
var builtinScreens = map[string]struct{}{
	"say": {}, "choice": {}, "nvl": {}, "notify": {}, "confirm": {},
	"preferences": {}, "save": {}, "load": {}, "main_menu": {}, "about": {},
	"help": {}, "keyboard_help": {}, "game_menu": {}, "quick_menu": {},
	"text_history": {}, "skip_indicator": {}, "ctc": {},
}

// CheckScreens reports duplicate screen definitions, show/call/hide of
// screens that do not exist, and screens never referenced.
func CheckScreens(proj *model.Project) []model.Finding {
	var findings []model.Finding

	defined := make(map[string][]model.ScreenDef)
	var defOrder []string
	for _, sd := range proj.ScreenDefs {
		if _, seen := defined[sd.Name]; !seen {
			defOrder = append(defOrder, sd.Name)
		}
		defined[sd.Name] = append(defined[sd.Name], sd)
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
			CheckName: "screens",
			Title:     fmt.Sprintf("Duplicate screen '%s'", name),
			Description: fmt.Sprintf(
				"Screen '%s' is defined %d times: %s. Only the last definition will be used.",
				name, len(defs), strings.Join(locs, ", ")),
			File:       defs[0].File,
			Line:       defs[0].Line,
			Suggestion: "Remove duplicate definitions.",
		})
	}

	refs := make(map[string][]model.ScreenRef)
	var refOrder []string
	for _, sr := range proj.ScreenRefs {
		if _, seen := refs[sr.Name]; !seen {
			refOrder = append(refOrder, sr.Name)
		}
		refs[sr.Name] = append(refs[sr.Name], sr)
	}

	for _, name := range refOrder {
		if _, ok := defined[name]; ok {
			continue
		}
		if _, ok := builtinScreens[name]; ok {
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
			Severity:  model.SeverityHigh,
			CheckName: "screens",
			Title:     fmt.Sprintf("Undefined screen '%s'", name),
			Description: fmt.Sprintf(
				"Screen '%s' is referenced via '%s screen' at %s:%d%s but is never defined.",
				name, first.Action, first.File, first.Line, countNote),
			File:       first.File,
			Line:       first.Line,
			Suggestion: fmt.Sprintf("Define 'screen %s:' or check for typos.", name),
		})
	}

	for _, name := range defOrder {
		if _, used := refs[name]; used {
			continue
		}
		if _, ok := builtinScreens[name]; ok {
			continue
		}
		d := defined[name][0]
		findings = append(findings, model.Finding{
			Severity:  model.SeverityLow,
			CheckName: "screens",
			Title:     fmt.Sprintf("Unused screen '%s'", name),
			Description: fmt.Sprintf(
				"Screen '%s' defined at %s:%d is never referenced with show/call/hide screen.",
				name, d.File, d.Line),
			File:       d.File,
			Line:       d.Line,
			Suggestion: "Remove if no longer needed.",
		})
	}

	return findings
}
