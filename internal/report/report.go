/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package report renders analysis findings for humans: a colored
// terminal listing, a machine-readable JSON export, and a styled
// multi-page PDF document.
//
// The PDF groups findings by check category and deduplicates repeated
// titles into a single entry listing every location, so a finding that
// fires two hundred times occupies one card instead of two hundred.
package report

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/checks"
	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// Location is a single occurrence of a grouped finding.
type Location struct {
	File string
	Line int
}

// GroupedFinding collapses all findings that share a category and
// title into one entry. Severity, description, and suggestion come
// from the first occurrence.
type GroupedFinding struct {
	Severity    model.Severity
	CheckName   string
	Title       string
	Description string
	Suggestion  string
	Locations   []Location
}

// Count is the number of occurrences the group collapsed.
func (g *GroupedFinding) Count() int { return len(g.Locations) }

// categoryOrder returns the fixed section order: every registered
// check's display name, then the pseudo-category for project-level
// findings.
func categoryOrder() []string {
	all := checks.All()
	order := make([]string, 0, len(all)+1)
	for _, c := range all {
		order = append(order, c.DisplayName)
	}
	return append(order, "Project")
}

// checkCategory maps a finding's check name to its section title.
func checkCategory(checkName string) string {
	if c, ok := checks.ByName(checkName); ok {
		return c.DisplayName
	}
	if checkName == "" {
		return "Project"
	}
	return strings.ToUpper(checkName[:1]) + checkName[1:]
}

// groupFindings buckets findings by (category, title). File paths
// under root are shortened to be relative to it. Locations within a
// group are sorted by file then line; groups within a category by
// severity then title.
func groupFindings(findings []model.Finding, root string) map[string][]*GroupedFinding {
	type key struct {
		category string
		title    string
	}
	buckets := make(map[key]*GroupedFinding)
	order := make([]key, 0, len(findings))

	for _, f := range findings {
		cat := checkCategory(f.CheckName)
		k := key{category: cat, title: f.Title}
		file := f.File
		if root != "" {
			if rel, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(rel, "..") {
				file = rel
			}
		}
		g, ok := buckets[k]
		if !ok {
			g = &GroupedFinding{
				Severity:    f.Severity,
				CheckName:   f.CheckName,
				Title:       f.Title,
				Description: f.Description,
				Suggestion:  f.Suggestion,
			}
			buckets[k] = g
			order = append(order, k)
		}
		g.Locations = append(g.Locations, Location{File: file, Line: f.Line})
	}

	byCat := make(map[string][]*GroupedFinding)
	for _, k := range order {
		g := buckets[k]
		sort.Slice(g.Locations, func(i, j int) bool {
			a, b := g.Locations[i], g.Locations[j]
			if a.File != b.File {
				return a.File < b.File
			}
			return a.Line < b.Line
		})
		byCat[k.category] = append(byCat[k.category], g)
	}
	for _, groups := range byCat {
		sort.SliceStable(groups, func(i, j int) bool {
			if groups[i].Severity != groups[j].Severity {
				return groups[i].Severity < groups[j].Severity
			}
			return groups[i].Title < groups[j].Title
		})
	}
	return byCat
}
