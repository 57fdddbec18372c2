/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package checks

import (
	"strings"
	"testing"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

func TestEmptyMenuChoice(t *testing.T) {
	proj := projectFromScript(t, `label start:
    menu:
        "Choice A":
            mc "Picked A"
            mc "More A"
            mc "Even more A"
        "Choice B":

label next:
    return
`)
	findings := CheckMenus(proj)
	var empty []model.Finding
	for _, f := range findings {
		if f.Severity == model.SeverityHigh {
			empty = append(empty, f)
		}
	}
	if len(empty) != 1 {
		t.Fatalf("got %d empty-choice findings, want 1", len(empty))
	}
	if !strings.Contains(empty[0].Title, "Empty") {
		t.Errorf("title %q does not say Empty", empty[0].Title)
	}
}

func TestMenuFallthrough(t *testing.T) {
	proj := projectFromScript(t, `label start:
    menu:
        "Short":
            mc "Just one line"
        "Long":
            mc "Line 1"
            mc "Line 2"
            mc "Line 3"
            mc "Line 4"
label next:
    return
`)
	findings := CheckMenus(proj)
	var ft []model.Finding
	for _, f := range findings {
		if strings.Contains(strings.ToLower(f.Title), "fallthrough") {
			ft = append(ft, f)
		}
	}
	if len(ft) != 1 {
		t.Fatalf("got %d fallthrough findings, want 1", len(ft))
	}
	if ft[0].Severity != model.SeverityMedium {
		t.Errorf("severity = %v, want MEDIUM", ft[0].Severity)
	}
}

func TestShortChoiceEndingInJumpNotFlagged(t *testing.T) {
	proj := projectFromScript(t, `label start:
    menu:
        "Leave":
            jump ending
        "Stay":
            mc "Line 1"
            mc "Line 2"
            mc "Line 3"
            mc "Line 4"
label ending:
    return
`)
	for _, f := range CheckMenus(proj) {
		if strings.Contains(strings.ToLower(f.Title), "fallthrough") {
			t.Fatalf("jump-terminated choice flagged: %q", f.Title)
		}
	}
}

func TestSingleChoiceMenu(t *testing.T) {
	proj := projectFromScript(t, `label start:
    menu:
        "Only option":
            jump next
label next:
    return
`)
	findings := titlesContaining(CheckMenus(proj), "Single")
	if len(findings) != 1 {
		t.Fatalf("got %d single-choice findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityLow {
		t.Errorf("severity = %v, want LOW", findings[0].Severity)
	}
}

func TestBalancedMenuNoFindings(t *testing.T) {
	proj := projectFromScript(t, `label start:
    menu:
        "Choice A":
            mc "A line 1"
            mc "A line 2"
        "Choice B":
            mc "B line 1"
            mc "B line 2"
label next:
    return
`)
	if findings := CheckMenus(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}
