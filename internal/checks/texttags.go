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
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// pairedTags require a closing {/tag}.
var pairedTags = map[string]struct{}{
	"b": {}, "i": {}, "u": {}, "s": {}, "plain": {}, "a": {}, "font": {},
	"size": {}, "color": {}, "outlinecolor": {}, "alpha": {}, "k": {},
	"cps": {}, "rt": {}, "rb": {}, "alt": {}, "noalt": {},
}

var selfClosingTags = map[string]struct{}{
	"w": {}, "p": {}, "nw": {}, "fast": {}, "space": {}, "vspace": {},
	"image": {}, "clear": {}, "done": {}, "#": {}, "lb": {},
}

// Matches {tag}, {tag=value} and {/tag}.
var reTextTag = regexp.MustCompile(`\{(/?\w+|#)(?:=[^}]*)?\}`)

// validateTextTags returns one message per tag problem in a dialogue
// string.
func validateTextTags(text string) []string {
	var errors []string
	var stack []string

	for _, m := range reTextTag.FindAllStringSubmatch(text, -1) {
		raw := m[1]
		if strings.HasPrefix(raw, "/") {
			name := raw[1:]
			switch {
			case len(stack) == 0:
				errors = append(errors, fmt.Sprintf("Closing tag '{/%s}' without opening", name))
			case stack[len(stack)-1] != name:
				errors = append(errors, fmt.Sprintf("Mismatched nesting: expected '{/%s}', found '{/%s}'", stack[len(stack)-1], name))
				// Pop anyway to avoid cascading errors.
				stack = stack[:len(stack)-1]
			default:
				stack = stack[:len(stack)-1]
			}
			continue
		}
		if _, paired := pairedTags[raw]; paired {
			stack = append(stack, raw)
			continue
		}
		if _, selfClosing := selfClosingTags[raw]; !selfClosing {
			errors = append(errors, fmt.Sprintf("Unknown text tag '{%s}'", raw))
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		errors = append(errors, fmt.Sprintf("Unclosed tag '{%s}'", stack[i]))
	}
	return errors
}

// CheckTextTags validates the text tags inside dialogue strings:
// unclosed paired tags, mismatched nesting, and unknown tag names.
func CheckTextTags(proj *model.Project) []model.Finding {
	var findings []model.Finding

	// The parser can capture the same line twice via the terminated
	// and unterminated dialogue patterns.
	type lineKey struct {
		file string
		line int
	}
	seen := make(map[lineKey]struct{})

	for _, dl := range proj.Dialogue {
		key := lineKey{dl.File, dl.Line}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if dl.Text == "" {
			continue
		}

		for _, msg := range validateTextTags(dl.Text) {
			severity := model.SeverityMedium
			if strings.Contains(msg, "Unknown") {
				severity = model.SeverityLow
			}
			findings = append(findings, model.Finding{
				Severity:    severity,
				CheckName:   "texttags",
				Title:       "Text tag issue",
				Description: fmt.Sprintf("%s in dialogue at %s:%d.", msg, dl.File, dl.Line),
				File:        dl.File,
				Line:        dl.Line,
				Suggestion:  "Check text tag syntax: paired tags need {/tag}, verify tag names.",
			})
		}
	}

	return findings
}
