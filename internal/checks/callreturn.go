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

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// CheckCallReturn reports call statements whose target label has no
// return. Each such call leaks a stack frame; enough of them crash
// the game.
func CheckCallReturn(proj *model.Project) []model.Finding {
	var findings []model.Finding
	bodies := analyzeLabelBodies(proj)

	for _, call := range proj.Calls {
		if !isIdentifier(call.Target) {
			continue
		}
		body, ok := bodies[call.Target]
		if !ok {
			continue // missing label is the labels check's concern
		}
		if body.hasReturn {
			continue
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityCritical,
			CheckName: "callreturn",
			Title:     fmt.Sprintf("Called label '%s' never returns", call.Target),
			Description: fmt.Sprintf(
				"'call %s' at %s:%d targets a label that has no 'return' statement. In Ren'Py, 'call' pushes onto the call stack, and without 'return', the stack frame is never popped. Over many calls, this causes a stack overflow crash.",
				call.Target, call.File, call.Line),
			File:       call.File,
			Line:       call.Line,
			Suggestion: fmt.Sprintf("Add a 'return' statement at the end of label '%s', or use 'jump' instead of 'call' if you don't need to return.", call.Target),
		})
	}

	return findings
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
