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
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

type callEdge struct {
	caller string
	callee string
}

type callLocation struct {
	file string
	line int
}

// CheckCallCycles finds circular call chains. Entering such a chain
// recurses until the Ren'Py call stack overflows.
func CheckCallCycles(proj *model.Project) []model.Finding {
	var findings []model.Finding

	labelsByFile := make(map[string][]model.Label)
	labelSet := make(map[string]bool)
	for _, label := range proj.Labels {
		labelsByFile[label.File] = append(labelsByFile[label.File], label)
		labelSet[label.Name] = true
	}
	for _, fileLabels := range labelsByFile {
		sort.Slice(fileLabels, func(i, j int) bool { return fileLabels[i].Line < fileLabels[j].Line })
	}

	callGraph := make(map[string]map[string]bool)
	callLocations := make(map[callEdge]callLocation)

	for _, call := range proj.Calls {
		if !isIdentifier(call.Target) || !labelSet[call.Target] {
			continue
		}
		caller, ok := findContainingLabel(call.File, call.Line, labelsByFile)
		if !ok {
			continue
		}
		if callGraph[caller] == nil {
			callGraph[caller] = make(map[string]bool)
		}
		callGraph[caller][call.Target] = true
		edge := callEdge{caller, call.Target}
		if _, seen := callLocations[edge]; !seen {
			callLocations[edge] = callLocation{call.File, call.Line}
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(labelSet))
	parent := make(map[string]string)
	reportedCycles := make(map[string]bool)

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, neighbor := range sortedKeys(callGraph[node]) {
			if _, known := labelSet[neighbor]; !known {
				continue
			}
			switch color[neighbor] {
			case gray:
				cycle := reconstructCycle(node, neighbor, parent)
				key := cycleKey(cycle)
				if !reportedCycles[key] {
					reportedCycles[key] = true
					findings = append(findings, cycleFinding(cycle, callLocations))
				}
			case white:
				parent[neighbor] = node
				dfs(neighbor)
			}
		}
		color[node] = black
	}

	for _, name := range sortedKeys(labelSet) {
		if color[name] == white {
			delete(parent, name)
			dfs(name)
		}
	}

	return findings
}

// findContainingLabel returns the label whose body contains the given
// line, i.e. the last label declared at or before it in the file.
func findContainingLabel(file string, line int, labelsByFile map[string][]model.Label) (string, bool) {
	containing := ""
	found := false
	for _, label := range labelsByFile[file] {
		if label.Line <= line {
			containing = label.Name
			found = true
		} else {
			break
		}
	}
	return containing, found
}

// reconstructCycle walks the DFS parent chain from node back to the
// target of the back edge.
func reconstructCycle(node, backEdgeTarget string, parent map[string]string) []string {
	if node == backEdgeTarget {
		return []string{node}
	}
	cycle := []string{node}
	current, ok := parent[node]
	for ok && current != backEdgeTarget {
		cycle = append(cycle, current)
		current, ok = parent[current]
	}
	cycle = append(cycle, backEdgeTarget)
	for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}
	return cycle
}

// cycleKey identifies a cycle by its member set so the same loop found
// from different entry points is reported once.
func cycleKey(cycle []string) string {
	members := append([]string(nil), cycle...)
	sort.Strings(members)
	return strings.Join(members, "\x00")
}

func cycleFinding(cycle []string, callLocations map[callEdge]callLocation) model.Finding {
	if len(cycle) == 1 {
		name := cycle[0]
		loc := callLocations[callEdge{name, name}]
		return model.Finding{
			Severity:  model.SeverityCritical,
			CheckName: "callcycle",
			Title:     fmt.Sprintf("Self-recursive call cycle: %s", name),
			Description: fmt.Sprintf(
				"Label '%s' calls itself, creating infinite recursion. This will crash with a stack overflow when the label is reached.",
				name),
			File:       loc.file,
			Line:       loc.line,
			Suggestion: fmt.Sprintf("Use a loop or conditional to control recursion in label '%s'.", name),
		}
	}

	cycleStr := strings.Join(cycle, " → ") + " → " + cycle[0]
	loc := callLocations[callEdge{cycle[0], cycle[1]}]
	return model.Finding{
		Severity:  model.SeverityCritical,
		CheckName: "callcycle",
		Title:     fmt.Sprintf("Circular call cycle: %s", cycleStr),
		Description: fmt.Sprintf(
			"Labels form a circular call chain: %s. If this cycle is entered, it will cause infinite recursion and crash with a stack overflow.",
			cycleStr),
		File:       loc.file,
		Line:       loc.line,
		Suggestion: "Break the cycle by using 'jump' instead of 'call' for at least one link in the chain, or add a conditional guard.",
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
