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

func TestUndefinedScreenReference(t *testing.T) {
	for _, action := range []string{"show", "call", "hide"} {
		proj := model.NewProject("")
		proj.ScreenRefs = []model.ScreenRef{{Name: "inventory", File: "s.rpy", Line: 5, Action: action}}
		findings := CheckScreens(proj)
		if len(findings) != 1 {
			t.Fatalf("%s screen: got %d findings, want 1", action, len(findings))
		}
		if findings[0].Severity != model.SeverityHigh {
			t.Errorf("%s screen: severity = %v, want HIGH", action, findings[0].Severity)
		}
		if !strings.Contains(findings[0].Title, "inventory") {
			t.Errorf("%s screen: title %q does not name the screen", action, findings[0].Title)
		}
	}
}

func TestDuplicateScreenDefinition(t *testing.T) {
	proj := model.NewProject("")
	proj.ScreenDefs = []model.ScreenDef{
		{Name: "inventory", File: "a.rpy", Line: 1},
		{Name: "inventory", File: "b.rpy", Line: 5},
	}
	findings := CheckScreens(proj)
	var dups []model.Finding
	for _, f := range findings {
		if f.Severity == model.SeverityMedium {
			dups = append(dups, f)
		}
	}
	if len(dups) != 1 {
		t.Fatalf("got %d duplicate findings, want 1", len(dups))
	}
	if !strings.Contains(dups[0].Title, "Duplicate") {
		t.Errorf("title %q does not say Duplicate", dups[0].Title)
	}
}

func TestUnusedScreen(t *testing.T) {
	proj := model.NewProject("")
	proj.ScreenDefs = []model.ScreenDef{{Name: "inventory", File: "s.rpy", Line: 1}}
	findings := titlesContaining(CheckScreens(proj), "Unused")
	if len(findings) != 1 {
		t.Fatalf("got %d unused findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityLow {
		t.Errorf("severity = %v, want LOW", findings[0].Severity)
	}
}

func TestBuiltinScreenNotFlagged(t *testing.T) {
	proj := model.NewProject("")
	proj.ScreenRefs = []model.ScreenRef{{Name: "say", File: "s.rpy", Line: 5, Action: "show"}}
	proj.ScreenDefs = []model.ScreenDef{{Name: "preferences", File: "screens.rpy", Line: 1}}
	if findings := CheckScreens(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestDefinedAndUsedScreenClean(t *testing.T) {
	proj := model.NewProject("")
	proj.ScreenDefs = []model.ScreenDef{{Name: "inventory", File: "s.rpy", Line: 1}}
	proj.ScreenRefs = []model.ScreenRef{{Name: "inventory", File: "s.rpy", Line: 10, Action: "show"}}
	if findings := CheckScreens(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestUndefinedTransformReference(t *testing.T) {
	proj := projectFromScript(t, `label start:
    show eileen happy at swirl
`)
	findings := titlesContaining(CheckTransforms(proj), "Undefined")
	if len(findings) != 1 {
		t.Fatalf("got %d undefined findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityMedium {
		t.Errorf("severity = %v, want MEDIUM", findings[0].Severity)
	}
	if !strings.Contains(findings[0].Title, "swirl") {
		t.Errorf("title %q does not name the transform", findings[0].Title)
	}
}

func TestBuiltinTransformNotFlagged(t *testing.T) {
	proj := projectFromScript(t, `label start:
    show eileen happy at left
    scene bg park at truecenter
`)
	if findings := titlesContaining(CheckTransforms(proj), "Undefined"); len(findings) != 0 {
		t.Fatalf("got %d undefined findings, want 0", len(findings))
	}
}

func TestDefinedTransformClean(t *testing.T) {
	proj := projectFromScript(t, `transform swirl:
    rotate 360

label start:
    show eileen happy at swirl
`)
	if findings := CheckTransforms(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestDuplicateTransform(t *testing.T) {
	proj := model.NewProject("")
	proj.TransformDefs = []model.TransformDef{
		{Name: "swirl", File: "a.rpy", Line: 1},
		{Name: "swirl", File: "b.rpy", Line: 9},
	}
	proj.TransformRefs = []model.TransformRef{{Name: "swirl", File: "s.rpy", Line: 3}}
	findings := titlesContaining(CheckTransforms(proj), "Duplicate")
	if len(findings) != 1 {
		t.Fatalf("got %d duplicate findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityMedium {
		t.Errorf("severity = %v, want MEDIUM", findings[0].Severity)
	}
}

func TestUnusedTransform(t *testing.T) {
	proj := model.NewProject("")
	proj.TransformDefs = []model.TransformDef{{Name: "swirl", File: "a.rpy", Line: 1}}
	findings := titlesContaining(CheckTransforms(proj), "Unused")
	if len(findings) != 1 {
		t.Fatalf("got %d unused findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityLow {
		t.Errorf("severity = %v, want LOW", findings[0].Severity)
	}
}

func TestDuplicateTranslationID(t *testing.T) {
	proj := model.NewProject("")
	proj.Translations = []model.TranslationBlock{
		{Language: "german", StringID: "intro_1", File: "tl.rpy", Line: 1},
		{Language: "german", StringID: "intro_1", File: "tl.rpy", Line: 9},
	}
	findings := titlesContaining(CheckTranslations(proj), "Duplicate")
	if len(findings) != 1 {
		t.Fatalf("got %d duplicate findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityMedium {
		t.Errorf("severity = %v, want MEDIUM", findings[0].Severity)
	}
}

func TestIncompleteTranslations(t *testing.T) {
	proj := model.NewProject("")
	proj.Translations = []model.TranslationBlock{
		{Language: "german", StringID: "intro_1", File: "de.rpy", Line: 1},
		{Language: "german", StringID: "intro_2", File: "de.rpy", Line: 5},
		{Language: "french", StringID: "intro_1", File: "fr.rpy", Line: 1},
	}
	findings := titlesContaining(CheckTranslations(proj), "Incomplete")
	if len(findings) != 1 {
		t.Fatalf("got %d incomplete findings, want 1", len(findings))
	}
	f := findings[0]
	if !strings.Contains(f.Title, "french") {
		t.Errorf("title %q does not name the language", f.Title)
	}
	if !strings.Contains(f.Description, "intro_2") {
		t.Errorf("description %q does not name a missing id", f.Description)
	}
}

func TestSingleLanguageNotIncomplete(t *testing.T) {
	proj := model.NewProject("")
	proj.Translations = []model.TranslationBlock{
		{Language: "german", StringID: "intro_1", File: "de.rpy", Line: 1},
	}
	if findings := CheckTranslations(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}
