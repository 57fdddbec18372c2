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
	"sort"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

var (
	reIdentifier    = regexp.MustCompile(`\b([A-Za-z_]\w*)\b`)
	reTrailingDigit = regexp.MustCompile(`\d+$`)
)

var pythonLiterals = map[string]struct{}{
	"True": {}, "False": {}, "None": {},
	"and": {}, "or": {}, "not": {},
	"if": {}, "elif": {}, "else": {}, "in": {}, "is": {},
}

// pythonBuiltins are names a script must not redeclare. Shadowing one
// breaks any later Python code in the project that expects the real
// builtin.
var pythonBuiltins = map[string]struct{}{
	"list": {}, "dict": {}, "set": {}, "tuple": {}, "str": {}, "int": {},
	"float": {}, "bool": {}, "len": {}, "min": {}, "max": {}, "sum": {},
	"range": {}, "type": {}, "id": {}, "open": {}, "input": {}, "print": {},
	"object": {}, "abs": {}, "all": {}, "any": {}, "map": {}, "filter": {},
	"sorted": {}, "repr": {}, "hash": {}, "next": {}, "iter": {}, "zip": {},
}

// CheckVariables reports case-mismatched variable families, python
// assignments to variables never declared with default, defaults that
// are never referenced anywhere, and misuse of define where default
// (or a different name) is required.
func CheckVariables(proj *model.Project) []model.Finding {
	var findings []model.Finding

	defaults := make(map[string][]model.Variable)
	var defaultOrder []string
	defines := make(map[string]model.Variable)
	var defineOrder []string
	allRefs := make(map[string]struct{})
	firstMutation := make(map[string]model.Variable)

	for _, v := range proj.Variables {
		switch v.Kind {
		case model.VarDefault:
			if _, seen := defaults[v.Name]; !seen {
				defaultOrder = append(defaultOrder, v.Name)
			}
			defaults[v.Name] = append(defaults[v.Name], v)
		case model.VarDefine:
			if _, seen := defines[v.Name]; !seen {
				defines[v.Name] = v
				defineOrder = append(defineOrder, v.Name)
			}
		case model.VarAssign, model.VarAugment:
			allRefs[v.Name] = struct{}{}
			if _, seen := firstMutation[v.Name]; !seen {
				firstMutation[v.Name] = v
			}
		}
	}

	for _, cond := range proj.Conditions {
		for _, m := range reIdentifier.FindAllStringSubmatch(cond.Expression, -1) {
			if _, lit := pythonLiterals[m[1]]; !lit {
				allRefs[m[1]] = struct{}{}
			}
		}
	}
	for _, dl := range proj.Dialogue {
		allRefs[dl.Speaker] = struct{}{}
	}

	// Case mismatch, strategy 1: same name in different casings.
	lowerMap := make(map[string][]string)
	for _, name := range defaultOrder {
		if strings.Contains(name, ".") {
			continue
		}
		lowerMap[strings.ToLower(name)] = append(lowerMap[strings.ToLower(name)], name)
	}

	reportedNames := make(map[string]struct{})
	for _, name := range defaultOrder {
		if strings.Contains(name, ".") {
			continue
		}
		variants := lowerMap[strings.ToLower(name)]
		if len(variants) < 2 {
			continue
		}
		if _, done := reportedNames[name]; done {
			continue
		}
		var others []string
		for _, v := range variants {
			if v != name {
				others = append(others, v)
			}
		}
		v := defaults[name][0]
		findings = append(findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "variables",
			Title:     fmt.Sprintf("Variable case mismatch: '%s'", name),
			Description: fmt.Sprintf(
				"Variable '%s' at %s:%d has case-different siblings: %s. Ren'Py variables are case-sensitive - this likely causes one variant to never be checked correctly.",
				name, v.File, v.Line, strings.Join(others, ", ")),
			File:       v.File,
			Line:       v.Line,
			Suggestion: "Standardize the casing of all related variable names.",
		})
		reportedNames[name] = struct{}{}
	}

	// Case mismatch, strategy 2: numbered families with an odd-cased
	// member, e.g. foo_slow_1, foo_slow_2, foo_Slow_3.
	familyMap := make(map[string][]string)
	var familyOrder []string
	for _, name := range defaultOrder {
		if strings.Contains(name, ".") {
			continue
		}
		if _, done := reportedNames[name]; done {
			continue
		}
		base := reTrailingDigit.ReplaceAllString(name, "")
		if base == name {
			continue // no trailing number
		}
		key := strings.ToLower(base)
		if _, seen := familyMap[key]; !seen {
			familyOrder = append(familyOrder, key)
		}
		familyMap[key] = append(familyMap[key], name)
	}

	for _, key := range familyOrder {
		members := familyMap[key]
		if len(members) < 2 {
			continue
		}
		bases := make([]string, len(members))
		baseCounts := make(map[string]int)
		for i, m := range members {
			bases[i] = reTrailingDigit.ReplaceAllString(m, "")
			baseCounts[bases[i]]++
		}
		if len(baseCounts) < 2 {
			continue
		}
		majority := bases[0]
		for b, n := range baseCounts {
			if n > baseCounts[majority] {
				majority = b
			}
		}
		sortedMembers := append([]string(nil), members...)
		sort.Strings(sortedMembers)
		for i, m := range members {
			if bases[i] == majority {
				continue
			}
			v := defaults[m][0]
			expected := majority + reTrailingDigit.FindString(m)
			findings = append(findings, model.Finding{
				Severity:  model.SeverityHigh,
				CheckName: "variables",
				Title:     fmt.Sprintf("Variable case mismatch: '%s'", m),
				Description: fmt.Sprintf(
					"Variable '%s' at %s:%d breaks the casing pattern of its family (%s). Expected '%s' to match siblings.",
					m, v.File, v.Line, strings.Join(sortedMembers, ", "), expected),
				File:       v.File,
				Line:       v.Line,
				Suggestion: fmt.Sprintf("Rename to '%s' to match the family pattern.", expected),
			})
		}
	}

	// Undeclared variables: assigned with $ but no default/define.
	declared := make(map[string]struct{})
	for name := range defaults {
		declared[name] = struct{}{}
	}
	for _, v := range proj.Variables {
		if v.Kind == model.VarDefine {
			declared[v.Name] = struct{}{}
		}
	}

	for _, v := range proj.Variables {
		if v.Kind != model.VarAssign {
			continue
		}
		if strings.Contains(v.Name, ".") {
			continue
		}
		if _, ok := declared[v.Name]; ok {
			continue
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityMedium,
			CheckName: "variables",
			Title:     fmt.Sprintf("Undeclared variable '%s'", v.Name),
			Description: fmt.Sprintf(
				"Variable '%s' is assigned at %s:%d but was never declared with 'default'. This can cause issues with save/load and Ren'Py's rollback system.",
				v.Name, v.File, v.Line),
			File:       v.File,
			Line:       v.Line,
			Suggestion: fmt.Sprintf("Add 'default %s = <initial_value>' to your variables file.", v.Name),
		})
	}

	// Unused defaults.
	for _, name := range defaultOrder {
		if strings.Contains(name, ".") {
			continue
		}
		if _, used := allRefs[name]; used {
			continue
		}
		v := defaults[name][0]
		findings = append(findings, model.Finding{
			Severity:  model.SeverityLow,
			CheckName: "variables",
			Title:     fmt.Sprintf("Unused variable '%s'", name),
			Description: fmt.Sprintf(
				"Variable '%s' is declared at %s:%d but is never referenced in any script file.",
				name, v.File, v.Line),
			File:       v.File,
			Line:       v.Line,
			Suggestion: "Remove if no longer needed, or keep for save compatibility.",
		})
	}

	// Redeclared defaults: two default statements fight over the same
	// name and only one initial value wins.
	for _, name := range defaultOrder {
		defs := defaults[name]
		if len(defs) < 2 {
			continue
		}
		locs := make([]string, len(defs))
		for i, d := range defs {
			locs[i] = fmt.Sprintf("%s:%d", d.File, d.Line)
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "variables",
			Title:     fmt.Sprintf("Duplicate default '%s'", name),
			Description: fmt.Sprintf(
				"Variable '%s' is declared with 'default' %d times: %s. Only one initial value takes effect, and which one depends on file load order.",
				name, len(defs), strings.Join(locs, ", ")),
			File:       defs[1].File,
			Line:       defs[1].Line,
			Suggestion: "Keep a single default declaration per variable.",
		})
	}

	// define creates a constant outside rollback; mutating one at
	// runtime corrupts saves.
	for _, name := range defineOrder {
		mut, mutated := firstMutation[name]
		if !mutated {
			continue
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityCritical,
			CheckName: "variables",
			Title:     fmt.Sprintf("Define '%s' mutated at runtime", name),
			Description: fmt.Sprintf(
				"'%s' is declared with 'define' but modified at %s:%d. Variables declared with 'define' are not saved and not part of rollback, so the change is lost on save/load and breaks rollback.",
				name, mut.File, mut.Line),
			File:       mut.File,
			Line:       mut.Line,
			Suggestion: fmt.Sprintf("Declare '%s' with 'default' instead of 'define' if it changes during the game.", name),
		})
	}

	for _, name := range defineOrder {
		if !strings.HasPrefix(name, "persistent.") {
			continue
		}
		v := defines[name]
		findings = append(findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "variables",
			Title:     fmt.Sprintf("Persistent variable '%s' declared with 'define'", name),
			Description: fmt.Sprintf(
				"'%s' at %s:%d uses 'define', which re-applies the constant on every launch and overwrites whatever value was saved across sessions.",
				name, v.File, v.Line),
			File:       v.File,
			Line:       v.Line,
			Suggestion: fmt.Sprintf("Use 'default %s = ...' so the saved value survives restarts.", name),
		})
	}

	// Builtin shadowing.
	for _, v := range proj.Variables {
		if v.Kind != model.VarDefault && v.Kind != model.VarDefine {
			continue
		}
		if _, builtin := pythonBuiltins[v.Name]; !builtin {
			continue
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "variables",
			Title:     fmt.Sprintf("Builtin name shadowed: '%s'", v.Name),
			Description: fmt.Sprintf(
				"'%s' at %s:%d redeclares the Python builtin '%s'. Any later Python code in the project that uses the builtin gets this value instead.",
				v.Name, v.File, v.Line, v.Name),
			File:       v.File,
			Line:       v.Line,
			Suggestion: fmt.Sprintf("Rename the variable; '%s' is a Python builtin.", v.Name),
		})
	}

	return findings
}
