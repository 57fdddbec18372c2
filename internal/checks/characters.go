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

// CheckCharacters reports dialogue speakers with no Character
// definition and Character definitions that never speak. Plain
// defines that are not Character(...) count as valid speakers; they
// may hold a Character built indirectly.
func CheckCharacters(proj *model.Project) []model.Finding {
	var findings []model.Finding

	definedChars := make(map[string][]model.CharacterDef)
	for _, c := range proj.Characters {
		definedChars[c.Shorthand] = append(definedChars[c.Shorthand], c)
	}

	nonCharDefines := make(map[string]struct{})
	for _, v := range proj.Variables {
		if v.Kind == model.VarDefine {
			if _, isChar := definedChars[v.Name]; !isChar {
				nonCharDefines[v.Name] = struct{}{}
			}
		}
	}

	speakersUsed := make(map[string]struct{})
	speakerUsages := make(map[string][]model.DialogueLine)
	var speakerOrder []string
	for _, dl := range proj.Dialogue {
		if _, seen := speakersUsed[dl.Speaker]; !seen {
			speakerOrder = append(speakerOrder, dl.Speaker)
		}
		speakersUsed[dl.Speaker] = struct{}{}
		speakerUsages[dl.Speaker] = append(speakerUsages[dl.Speaker], dl)
	}

	for _, speaker := range speakerOrder {
		if _, ok := definedChars[speaker]; ok {
			continue
		}
		if _, ok := nonCharDefines[speaker]; ok {
			continue
		}
		usages := speakerUsages[speaker]
		first := usages[0]
		countNote := ""
		if len(usages) == 2 {
			countNote = " (and 1 other location)"
		} else if len(usages) > 2 {
			countNote = fmt.Sprintf(" (and %d other locations)", len(usages)-1)
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "characters",
			Title:     fmt.Sprintf("Undefined speaker '%s'", speaker),
			Description: fmt.Sprintf(
				"Speaker '%s' is used in dialogue at %s:%d%s but is never defined with 'define %s = Character(...)'.",
				speaker, first.File, first.Line, countNote, speaker),
			File:       first.File,
			Line:       first.Line,
			Suggestion: fmt.Sprintf("Add 'define %s = Character(\"Name\")' to your defines file.", speaker),
		})
	}

	for _, c := range proj.Characters {
		defs := definedChars[c.Shorthand]
		if len(defs) == 0 || defs[0] != c {
			continue // report each shorthand once, at its first definition
		}
		if _, used := speakersUsed[c.Shorthand]; used {
			continue
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityLow,
			CheckName: "characters",
			Title:     fmt.Sprintf("Unused character '%s'", c.Shorthand),
			Description: fmt.Sprintf(
				"Character '%s' ('%s') defined at %s:%d is never used as a dialogue speaker.",
				c.Shorthand, c.DisplayName, c.File, c.Line),
			File:       c.File,
			Line:       c.Line,
			Suggestion: "Remove if no longer needed.",
		})
	}

	return findings
}
