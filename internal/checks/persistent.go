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

var rePersistentRef = regexp.MustCompile(`persistent\.(\w+)`)

// CheckPersistent reports persistent variables that are read without a
// 'default' declaration. On a fresh install such a variable is None.
func CheckPersistent(proj *model.Project) []model.Finding {
	var findings []model.Finding

	declared := make(map[string]bool)
	for _, v := range proj.Variables {
		if v.Kind == model.VarDefault && strings.HasPrefix(v.Name, "persistent.") {
			declared[v.Name] = true
		}
	}

	// Only reads count. Plain assignments are write-only and create
	// the attribute themselves; conditions and augmented assignments
	// dereference the current value.
	reads := make(map[string]callLocation)
	for _, cond := range proj.Conditions {
		for _, m := range rePersistentRef.FindAllStringSubmatch(cond.Expression, -1) {
			fullName := "persistent." + m[1]
			if _, seen := reads[fullName]; !seen {
				reads[fullName] = callLocation{cond.File, cond.Line}
			}
		}
	}
	for _, v := range proj.Variables {
		if v.Kind == model.VarAugment && strings.HasPrefix(v.Name, "persistent.") {
			if _, seen := reads[v.Name]; !seen {
				reads[v.Name] = callLocation{v.File, v.Line}
			}
		}
	}

	names := make([]string, 0, len(reads))
	for name := range reads {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if declared[name] {
			continue
		}
		// Underscore-prefixed vars are engine internals like
		// persistent._file_page, initialized by Ren'Py itself.
		suffix := name
		if i := strings.Index(name, "."); i >= 0 {
			suffix = name[i+1:]
		}
		if strings.HasPrefix(suffix, "_") {
			continue
		}
		loc := reads[name]
		findings = append(findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "persistent",
			Title:     fmt.Sprintf("Persistent variable '%s' used without default", name),
			Description: fmt.Sprintf(
				"'%s' is referenced at %s:%d but never declared with 'default %s = ...'. On a fresh install, this variable will be None, which may cause TypeError or logic bugs.",
				name, loc.file, loc.line, name),
			File:       loc.file,
			Line:       loc.line,
			Suggestion: fmt.Sprintf("Add 'default %s = <initial_value>' to initialize this persistent variable.", name),
		})
	}

	return findings
}
