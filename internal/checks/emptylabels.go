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
	"sort"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// CheckEmptyLabels reports labels with no meaningful body. An empty
// label falls through to whatever follows it in the file.
func CheckEmptyLabels(proj *model.Project) []model.Finding {
	var findings []model.Finding
	bodies := analyzeLabelBodies(proj)

	names := make([]string, 0, len(bodies))
	for name := range bodies {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := bodies[names[i]], bodies[names[j]]
		if a.file != b.file {
			return a.file < b.file
		}
		if a.line != b.line {
			return a.line < b.line
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		body := bodies[name]
		if body.bodyLines != 0 && !body.onlyPass {
			continue
		}
		detail := ""
		if body.onlyPass {
			detail = " (only pass)"
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "emptylabels",
			Title:     fmt.Sprintf("Empty label '%s'", name),
			Description: fmt.Sprintf(
				"Label '%s' at %s:%d has no meaningful content%s. In Ren'Py, an empty label falls through to whatever code follows it in the file, which is almost certainly unintended.",
				name, body.file, body.line, detail),
			File:       body.file,
			Line:       body.line,
			Suggestion: fmt.Sprintf("Add content to label '%s' or remove it if it's a leftover stub.", name),
		})
	}

	return findings
}
