/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package parser implements the line-oriented Ren'Py script parser:
// a per-line regex classifier with a fixed priority order, plus an
// explicit stack machine that reconstructs nested menu blocks from
// flat indentation.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// FileResult holds the ordered record lists extracted from one file.
// Record File fields are the file's basename; the project loader
// rewrites them relative to the scan root.
type FileResult struct {
	Labels        []model.Label
	Jumps         []model.Jump
	Calls         []model.Call
	DynamicJumps  []model.DynamicJump
	Variables     []model.Variable
	Menus         []model.Menu
	Scenes        []model.SceneRef
	Shows         []model.ShowRef
	Images        []model.ImageDef
	Music         []model.MusicRef
	Characters    []model.CharacterDef
	Dialogue      []model.DialogueLine
	Conditions    []model.Condition
	ScreenDefs    []model.ScreenDef
	ScreenRefs    []model.ScreenRef
	TransformDefs []model.TransformDef
	TransformRefs []model.TransformRef
	Translations  []model.TranslationBlock
}

// ParseFile reads and parses a single .rpy file. Invalid byte
// sequences are replaced rather than treated as errors, so one
// malformed file never aborts a project scan.
func ParseFile(path string) (*FileResult, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	lines := SplitLines(strings.ToValidUTF8(string(data), "�"))
	return ParseLines(filepath.Base(path), lines), lines, nil
}

// ParseLines parses pre-split source lines, attributing records to
// displayName. Line numbers are 1-based positions in lines.
func ParseLines(displayName string, lines []string) *FileResult {
	res := &FileResult{}
	tracker := &menuTracker{}

	for i, raw := range lines {
		lineno := i + 1
		line := strings.TrimRight(raw, " \t\r")

		stripped := strings.TrimLeft(line, " \t")
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		indent := len(line) - len(stripped)

		if tracker.observe(line, indent, lineno, displayName) {
			continue
		}

		st := classify(line, indent)
		switch st.kind {
		case KindScreenDef:
			res.ScreenDefs = append(res.ScreenDefs, model.ScreenDef{Name: st.name, File: displayName, Line: lineno})
		case KindTransformDef:
			res.TransformDefs = append(res.TransformDefs, model.TransformDef{Name: st.name, File: displayName, Line: lineno})
		case KindTranslate:
			res.Translations = append(res.Translations, model.TranslationBlock{Language: st.language, StringID: st.name, File: displayName, Line: lineno})
		case KindLabel:
			res.Labels = append(res.Labels, model.Label{Name: st.name, File: displayName, Line: lineno})
		case KindJumpExpr, KindCallExpr:
			res.DynamicJumps = append(res.DynamicJumps, model.DynamicJump{Expression: st.value, File: displayName, Line: lineno})
		case KindScreenRef:
			res.ScreenRefs = append(res.ScreenRefs, model.ScreenRef{Name: st.name, File: displayName, Line: lineno, Action: st.action})
		case KindJump:
			res.Jumps = append(res.Jumps, model.Jump{Target: st.name, File: displayName, Line: lineno})
		case KindCall:
			res.Calls = append(res.Calls, model.Call{Target: st.name, File: displayName, Line: lineno})
		case KindCharacter:
			res.Characters = append(res.Characters, model.CharacterDef{Shorthand: st.name, DisplayName: st.displayName, File: displayName, Line: lineno})
			res.Variables = append(res.Variables, model.Variable{Name: st.name, File: displayName, Line: lineno, Kind: st.varKind, Value: st.value})
		case KindImage:
			res.Images = append(res.Images, model.ImageDef{Name: st.name, File: displayName, Line: lineno, Value: st.value})
		case KindDefault:
			res.Variables = append(res.Variables, model.Variable{Name: st.name, File: displayName, Line: lineno, Kind: model.VarDefault, Value: st.value})
		case KindDefine:
			res.Variables = append(res.Variables, model.Variable{Name: st.name, File: displayName, Line: lineno, Kind: model.VarDefine, Value: st.value})
		case KindAugment:
			res.Variables = append(res.Variables, model.Variable{Name: st.name, File: displayName, Line: lineno, Kind: model.VarAugment})
		case KindAssign:
			res.Variables = append(res.Variables, model.Variable{Name: st.name, File: displayName, Line: lineno, Kind: model.VarAssign, Value: st.value})
		case KindScene:
			res.Scenes = append(res.Scenes, model.SceneRef{ImageName: st.name, File: displayName, Line: lineno, Transition: st.transition})
			if st.atTransform != "" {
				res.TransformRefs = append(res.TransformRefs, model.TransformRef{Name: st.atTransform, File: displayName, Line: lineno})
			}
		case KindShow:
			res.Shows = append(res.Shows, model.ShowRef{ImageName: st.name, File: displayName, Line: lineno})
			if st.atTransform != "" {
				res.TransformRefs = append(res.TransformRefs, model.TransformRef{Name: st.atTransform, File: displayName, Line: lineno})
			}
		case KindMusic:
			res.Music = append(res.Music, model.MusicRef{Path: st.value, File: displayName, Line: lineno, Action: st.action})
		case KindCondition:
			res.Conditions = append(res.Conditions, model.Condition{Expression: st.value, File: displayName, Line: lineno})
		case KindDialogue:
			res.Dialogue = append(res.Dialogue, model.DialogueLine{Speaker: st.name, File: displayName, Line: lineno, Text: st.value})
		case KindSkip, KindNone, KindMenu:
			// nothing to record
		}
	}

	tracker.drain()
	res.Menus = append(res.Menus, tracker.menus...)
	return res
}

// SplitLines splits source text on \n, \r\n and bare \r line endings.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline does not introduce a final empty line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
