/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package checks implements the individual analyses that run against a
// loaded project. Each check is a pure function from project model to
// findings; checks never mutate the project.
package checks

import (
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// Func is one analysis over a loaded project.
type Func func(*model.Project) []model.Finding

// Check pairs a stable ID (used in finding records and config) with a
// human-readable display name.
type Check struct {
	ID          string
	DisplayName string
	Run         Func
}

// ByName resolves a check by ID or display name, case-insensitively.
func ByName(name string) (Check, bool) {
	for _, c := range All() {
		if strings.EqualFold(c.ID, name) || strings.EqualFold(c.DisplayName, name) {
			return c, true
		}
	}
	return Check{}, false
}

// All returns every check in its fixed execution order. The order is
// part of the reporting contract: findings keep it as a secondary sort
// key within a severity.
func All() []Check {
	return []Check{
		{ID: "labels", DisplayName: "Labels", Run: CheckLabels},
		{ID: "variables", DisplayName: "Variables", Run: CheckVariables},
		{ID: "logic", DisplayName: "Logic", Run: CheckLogic},
		{ID: "menus", DisplayName: "Menus", Run: CheckMenus},
		{ID: "assets", DisplayName: "Assets", Run: CheckAssets},
		{ID: "characters", DisplayName: "Characters", Run: CheckCharacters},
		{ID: "flow", DisplayName: "Flow", Run: CheckFlow},
		{ID: "screens", DisplayName: "Screens", Run: CheckScreens},
		{ID: "transforms", DisplayName: "Transforms", Run: CheckTransforms},
		{ID: "translations", DisplayName: "Translations", Run: CheckTranslations},
		{ID: "texttags", DisplayName: "Text Tags", Run: CheckTextTags},
		{ID: "callreturn", DisplayName: "Call Safety", Run: CheckCallReturn},
		{ID: "callcycle", DisplayName: "Call Cycles", Run: CheckCallCycles},
		{ID: "emptylabels", DisplayName: "Empty Labels", Run: CheckEmptyLabels},
		{ID: "persistent", DisplayName: "Persistent Vars", Run: CheckPersistent},
	}
}
