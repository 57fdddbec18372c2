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

// CheckMenus reports empty menu choices, likely fallthroughs where one
// choice has far less content than its siblings, and menus that offer
// no real decision.
func CheckMenus(proj *model.Project) []model.Finding {
	var findings []model.Finding

	for _, menu := range proj.Menus {
		if len(menu.Choices) == 1 {
			findings = append(findings, model.Finding{
				Severity:  model.SeverityLow,
				CheckName: "menus",
				Title:     "Single-choice menu",
				Description: fmt.Sprintf(
					"Menu at %s:%d has only one choice: '%s'. This offers no real player decision.",
					menu.File, menu.Line, menu.Choices[0].Text),
				File:       menu.File,
				Line:       menu.Line,
				Suggestion: "Add more choices or remove the menu wrapper.",
			})
		}
		if len(menu.Choices) < 2 {
			continue
		}

		maxContent := 0
		for _, c := range menu.Choices {
			if c.ContentLines > maxContent {
				maxContent = c.ContentLines
			}
		}

		for _, choice := range menu.Choices {
			if choice.ContentLines == 0 {
				findings = append(findings, model.Finding{
					Severity:  model.SeverityHigh,
					CheckName: "menus",
					Title:     fmt.Sprintf("Empty menu choice: '%s'", choice.Text),
					Description: fmt.Sprintf(
						"Menu choice '%s' at %s:%d has no content - execution falls through immediately.",
						choice.Text, menu.File, choice.Line),
					File:       menu.File,
					Line:       choice.Line,
					Suggestion: "Add content to this choice or remove it.",
				})
			} else if choice.ContentLines <= 1 && !choice.HasJump && !choice.HasReturn && maxContent > 2 {
				findings = append(findings, model.Finding{
					Severity:  model.SeverityMedium,
					CheckName: "menus",
					Title:     fmt.Sprintf("Possible menu fallthrough: '%s'", choice.Text),
					Description: fmt.Sprintf(
						"Menu choice '%s' at %s:%d has only %d line(s) while sibling choices have up to %d. Content after the menu block may play regardless of which choice was picked.",
						choice.Text, menu.File, choice.Line, choice.ContentLines, maxContent),
					File:       menu.File,
					Line:       choice.Line,
					Suggestion: "Verify this is intentional, or add a jump/return.",
				})
			}
		}
	}

	return findings
}
