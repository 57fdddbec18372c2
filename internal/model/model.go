/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package model defines the value types produced by parsing a Ren'Py
// project and the finding types produced by the checks.
//
// Every parsed record carries the source file (relative to the scan
// root once loading has finished) and a 1-based line number. Records
// are created once during the parse pass and treated as immutable
// afterwards, except for the single path-rewrite the loader performs.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity orders findings from most to least severe. The zero value
// is Critical on purpose: sorting findings ascending puts the worst
// issues first.
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityHigh
	SeverityMedium
	SeverityLow
	SeverityStyle
)

// String returns the upper-case severity name used in reports.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	case SeverityStyle:
		return "STYLE"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity is the inverse of String. It accepts any case.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CRITICAL":
		return SeverityCritical, true
	case "HIGH":
		return SeverityHigh, true
	case "MEDIUM":
		return SeverityMedium, true
	case "LOW":
		return SeverityLow, true
	case "STYLE":
		return SeverityStyle, true
	}
	return SeverityStyle, false
}

// MarshalJSON emits the severity name so exported reports stay
// readable without a lookup table.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, ok := ParseSeverity(name)
	if !ok {
		return fmt.Errorf("unknown severity %q", name)
	}
	*s = sev
	return nil
}

// VariableKind distinguishes the four variable statement forms.
const (
	VarDefault = "default"
	VarDefine  = "define"
	VarAssign  = "assign"
	VarAugment = "augment"
)

// Label is a named entry point (`label foo:`).
type Label struct {
	Name string
	File string
	Line int
}

// Jump is a static `jump target`.
type Jump struct {
	Target string
	File   string
	Line   int
}

// Call is a static `call target`.
type Call struct {
	Target string
	File   string
	Line   int
}

// DynamicJump is a `jump expression <expr>` or `call expression <expr>`
// whose target cannot be resolved statically.
type DynamicJump struct {
	Expression string
	File       string
	Line       int
}

// Variable records a default/define declaration or a python-line
// assignment. Value holds the raw right-hand side when present.
type Variable struct {
	Name  string
	File  string
	Line  int
	Kind  string // default, define, assign, augment
	Value string
}

// MenuChoice is one quoted choice inside a menu block. ContentLines
// counts the non-blank, non-comment lines of the choice body; a nested
// menu inside the body counts as exactly one line.
type MenuChoice struct {
	Text         string
	Line         int
	ContentLines int
	HasJump      bool
	HasReturn    bool
	Condition    string
}

// Menu is a player-facing choice block.
type Menu struct {
	File    string
	Line    int
	Choices []MenuChoice
}

// SceneRef is a `scene NAME [with TRANSITION]` statement.
type SceneRef struct {
	ImageName  string
	File       string
	Line       int
	Transition string
}

// ShowRef is a `show NAME` statement.
type ShowRef struct {
	ImageName string
	File      string
	Line      int
}

// ImageDef is an `image NAME = expr` or `image NAME:` definition.
type ImageDef struct {
	Name  string
	File  string
	Line  int
	Value string
}

// MusicRef is an audio statement. Action is one of play, sound, voice,
// audio, queue, stop; stop forms carry an empty Path.
type MusicRef struct {
	Path   string
	File   string
	Line   int
	Action string
}

// CharacterDef is a `define x = Character("Name", ...)` shorthand.
type CharacterDef struct {
	Shorthand   string
	DisplayName string
	File        string
	Line        int
}

// DialogueLine is `speaker "text"`. Text stays empty when the opening
// quote is never closed on the same line.
type DialogueLine struct {
	Speaker string
	File    string
	Line    int
	Text    string
}

// Condition is the raw test expression of an if/elif statement.
type Condition struct {
	Expression string
	File       string
	Line       int
}

// ScreenDef is a top-level `screen NAME` definition.
type ScreenDef struct {
	Name string
	File string
	Line int
}

// ScreenRef is a `show|call|hide screen NAME` statement.
type ScreenRef struct {
	Name   string
	File   string
	Line   int
	Action string // show, call, hide
}

// TransformDef is a top-level `transform NAME` definition.
type TransformDef struct {
	Name string
	File string
	Line int
}

// TransformRef is an `at NAME` clause on a scene/show statement.
type TransformRef struct {
	Name string
	File string
	Line int
}

// TranslationBlock is a `translate LANGUAGE string_id:` header.
type TranslationBlock struct {
	Language string
	StringID string
	File     string
	Line     int
}

// Finding is one issue reported by a check.
type Finding struct {
	Severity    Severity `json:"severity"`
	CheckName   string   `json:"check"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// Project aggregates the records from every parsed .rpy file.
//
// Files holds the absolute paths of all scanned files in discovery
// order; RawLines keeps each file's source text keyed by scan-root
// relative path, for checks that re-walk raw lines (flow analysis,
// label bodies). Record File fields are relative to RootDir.
type Project struct {
	RootDir       string
	Files         []string
	RawLines      map[string][]string
	Labels        []Label
	Jumps         []Jump
	Calls         []Call
	DynamicJumps  []DynamicJump
	Variables     []Variable
	Menus         []Menu
	Scenes        []SceneRef
	Shows         []ShowRef
	Images        []ImageDef
	Music         []MusicRef
	Characters    []CharacterDef
	Dialogue      []DialogueLine
	Conditions    []Condition
	ScreenDefs    []ScreenDef
	ScreenRefs    []ScreenRef
	TransformDefs []TransformDef
	TransformRefs []TransformRef
	Translations  []TranslationBlock
	HasRPA        bool
	HasRPYCOnly   bool
}

// NewProject returns an empty project model rooted at rootDir.
func NewProject(rootDir string) *Project {
	return &Project{RootDir: rootDir, RawLines: map[string][]string{}}
}
