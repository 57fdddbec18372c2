/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package parser

import (
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// menuFrame is one in-progress menu on the tracker stack. The frame
// owns its Menu and the choice currently being accumulated by value;
// nothing is shared between frames.
type menuFrame struct {
	menu         model.Menu
	menuIndent   int
	choice       model.MenuChoice
	choiceOpen   bool
	choiceIndent int
}

// menuTracker reconstructs nested menu blocks from the flat line
// stream. frames[len(frames)-1] is the active frame; outer menus are
// suspended below it while a nested menu is being read.
type menuTracker struct {
	frames []menuFrame
	menus  []model.Menu
}

// active returns the current frame, or nil when no menu is open.
func (t *menuTracker) active() *menuFrame {
	if len(t.frames) == 0 {
		return nil
	}
	return &t.frames[len(t.frames)-1]
}

// closeOnDedent finalizes every frame whose menu indentation has been
// reached or passed by the current line. When a nested menu closes
// into a parent with an open choice, the whole nested block counts as
// one content line of that choice. A single dedent can cascade through
// several levels at once.
func (t *menuTracker) closeOnDedent(indent int) {
	for f := t.active(); f != nil && indent <= f.menuIndent; f = t.active() {
		t.finalizeActive()
	}
}

// finalizeActive closes the active frame unconditionally and credits
// the parent choice, if any.
func (t *menuTracker) finalizeActive() {
	f := t.active()
	if f == nil {
		return
	}
	if f.choiceOpen {
		f.menu.Choices = append(f.menu.Choices, f.choice)
	}
	t.menus = append(t.menus, f.menu)
	t.frames = t.frames[:len(t.frames)-1]
	if p := t.active(); p != nil && p.choiceOpen {
		p.choice.ContentLines++
	}
}

// observe feeds one non-blank, non-comment line to the tracker.
// It returns true when the line is a `menu:` header, which the
// classifier must then skip. Call order per line: dedent closing
// first, then menu headers, then choice headers, then choice content.
func (t *menuTracker) observe(line string, indent, lineno int, file string) (menuLine bool) {
	t.closeOnDedent(indent)

	if reMenu.MatchString(line) {
		// Either a fresh top-level menu or a nested one; a menu at an
		// indentation at or below the previous frame was already closed
		// by the dedent pass above.
		t.frames = append(t.frames, menuFrame{
			menu:       model.Menu{File: file, Line: lineno},
			menuIndent: indent,
		})
		return true
	}

	f := t.active()
	if f == nil {
		return false
	}

	if m := reMenuChoice.FindStringSubmatch(line); m != nil && indent > f.menuIndent {
		if f.choiceOpen {
			f.menu.Choices = append(f.menu.Choices, f.choice)
		}
		f.choice = model.MenuChoice{
			Text:      m[2],
			Line:      lineno,
			Condition: m[3],
		}
		f.choiceOpen = true
		// The choice body is expected one indent step deeper; the step
		// is inferred from the menu/choice offset.
		f.choiceIndent = indent + (indent - f.menuIndent)
		return false
	}

	if f.choiceOpen && indent >= f.choiceIndent {
		f.choice.ContentLines++
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "jump ") {
			f.choice.HasJump = true
		} else if stripped == "return" {
			f.choice.HasReturn = true
		}
	}
	return false
}

// drain finalizes every still-open frame at end of file, innermost
// first, so a file ending mid-menu loses nothing.
func (t *menuTracker) drain() {
	for t.active() != nil {
		t.finalizeActive()
	}
}
