/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package checks

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

var (
	reBodyLabel  = regexp.MustCompile(`^(\s*)label\s+(\w+)\s*(?:\(.*\))?\s*:`)
	reBodyReturn = regexp.MustCompile(`^\s+return\b`)
	reBodyJump   = regexp.MustCompile(`^\s+jump\s+(\w+)`)
	reTopLevel   = regexp.MustCompile(`^(?:label|init|screen|transform|define|default|style|python|image)\b`)
)

// labelBody summarizes the statements between a label and the next
// label or top-level statement.
type labelBody struct {
	name         string
	file         string
	line         int
	bodyLines    int
	hasReturn    bool
	endsWithJump bool
	onlyPass     bool
	jumpTargets  []string
}

// analyzeLabelBodies maps label name to its body summary across the
// whole project, working from the raw source lines. Duplicate labels
// keep the first occurrence; the labels check reports the duplication
// itself.
func analyzeLabelBodies(proj *model.Project) map[string]labelBody {
	result := make(map[string]labelBody)
	for _, rel := range sortedFileKeys(proj.RawLines) {
		analyzeFileBodies(proj.RawLines[rel], rel, result)
	}
	return result
}

// sortedFileKeys keeps body analysis deterministic across runs.
func sortedFileKeys(rawLines map[string][]string) []string {
	keys := make([]string, 0, len(rawLines))
	for k := range rawLines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func analyzeFileBodies(lines []string, rel string, result map[string]labelBody) {
	type labelPos struct {
		idx    int
		name   string
		indent int
	}
	var positions []labelPos
	for i, raw := range lines {
		if m := reBodyLabel.FindStringSubmatch(raw); m != nil {
			positions = append(positions, labelPos{idx: i, name: m[2], indent: len(m[1])})
		}
	}

	for idx, pos := range positions {
		if _, exists := result[pos.name]; exists {
			continue
		}

		bodyStart := pos.idx + 1
		bodyEnd := len(lines)
		if idx+1 < len(positions) {
			bodyEnd = positions[idx+1].idx
		}

		body := labelBody{name: pos.name, file: rel, line: pos.idx + 1}
		meaningful := 0
		lastIsJump := false
		allPass := true

		for j := bodyStart; j < bodyEnd; j++ {
			raw := lines[j]
			stripped := strings.TrimSpace(raw)
			if stripped == "" || strings.HasPrefix(stripped, "#") {
				continue
			}
			indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
			if indent <= pos.indent && reTopLevel.MatchString(stripped) {
				break
			}

			meaningful++
			if stripped != "pass" {
				allPass = false
			}
			if reBodyReturn.MatchString(raw) {
				body.hasReturn = true
			}
			if m := reBodyJump.FindStringSubmatch(raw); m != nil {
				body.jumpTargets = append(body.jumpTargets, m[1])
				lastIsJump = true
			} else {
				lastIsJump = false
			}
		}

		body.bodyLines = meaningful
		body.endsWithJump = lastIsJump
		body.onlyPass = meaningful > 0 && allPass
		result[pos.name] = body
	}
}
