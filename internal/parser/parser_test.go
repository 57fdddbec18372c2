/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

func parse(t *testing.T, src string) *FileResult {
	t.Helper()
	return ParseLines("test.rpy", SplitLines(src))
}

func TestLabelsJumpsCallsInOrder(t *testing.T) {
	res := parse(t, `label start:
    jump middle
label middle:
    call ending
label ending:
    return
`)
	if got := len(res.Labels); got != 3 {
		t.Fatalf("expected 3 labels, got %d", got)
	}
	names := []string{res.Labels[0].Name, res.Labels[1].Name, res.Labels[2].Name}
	if !reflect.DeepEqual(names, []string{"start", "middle", "ending"}) {
		t.Fatalf("labels out of order: %v", names)
	}
	if res.Labels[0].Line != 1 || res.Labels[1].Line != 3 || res.Labels[2].Line != 5 {
		t.Fatalf("unexpected label lines: %+v", res.Labels)
	}
	if len(res.Jumps) != 1 || res.Jumps[0].Target != "middle" {
		t.Fatalf("unexpected jumps: %+v", res.Jumps)
	}
	if len(res.Calls) != 1 || res.Calls[0].Target != "ending" {
		t.Fatalf("unexpected calls: %+v", res.Calls)
	}
}

func TestParseIdempotent(t *testing.T) {
	src := `label start:
    menu:
        "One":
            jump a
        "Two":
            jump b
    e "Hello"
`
	a := parse(t, src)
	b := parse(t, src)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("parsing twice produced different results")
	}
}

func TestDynamicJumpNotInStaticList(t *testing.T) {
	res := parse(t, `label start:
    jump expression "ch_" + str(n)
    call expression pick_target()
`)
	if len(res.Jumps) != 0 {
		t.Fatalf("dynamic jump leaked into static jumps: %+v", res.Jumps)
	}
	if len(res.Calls) != 0 {
		t.Fatalf("dynamic call leaked into static calls: %+v", res.Calls)
	}
	if len(res.DynamicJumps) != 2 {
		t.Fatalf("expected 2 dynamic jumps, got %d", len(res.DynamicJumps))
	}
	if res.DynamicJumps[0].Expression != `"ch_" + str(n)` {
		t.Fatalf("unexpected expression: %q", res.DynamicJumps[0].Expression)
	}
}

func TestAugmentVersusPlainAssignment(t *testing.T) {
	res := parse(t, `label start:
    $ score += 10
    $ score = 10
    $ total **= 2
    $ mask <<= 1
`)
	if len(res.Variables) != 4 {
		t.Fatalf("expected 4 variables, got %d: %+v", len(res.Variables), res.Variables)
	}
	kinds := []string{}
	for _, v := range res.Variables {
		if v.Name != "score" && v.Name != "total" && v.Name != "mask" {
			t.Fatalf("unexpected variable name %q", v.Name)
		}
		kinds = append(kinds, v.Kind)
	}
	want := []string{model.VarAugment, model.VarAssign, model.VarAugment, model.VarAugment}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
}

func TestDottedPythonAssignment(t *testing.T) {
	res := parse(t, `label start:
    $ persistent.count += 1
    $ persistent.score = 100
`)
	if len(res.Variables) != 2 {
		t.Fatalf("expected 2 variables, got %d: %+v", len(res.Variables), res.Variables)
	}
	if res.Variables[0].Name != "persistent.count" || res.Variables[0].Kind != model.VarAugment {
		t.Fatalf("unexpected augment: %+v", res.Variables[0])
	}
	if res.Variables[1].Name != "persistent.score" || res.Variables[1].Kind != model.VarAssign {
		t.Fatalf("unexpected assign: %+v", res.Variables[1])
	}
}

func TestBareMethodCallSkipped(t *testing.T) {
	res := parse(t, `label start:
    $ inventory.append("sword")
`)
	if len(res.Variables) != 0 {
		t.Fatalf("bare method call misparsed as assignment: %+v", res.Variables)
	}
}

func TestDefaultDefineDottedNames(t *testing.T) {
	res := parse(t, `default persistent.unlocked = False
define config.name = "My Game"
`)
	if len(res.Variables) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(res.Variables))
	}
	if res.Variables[0].Name != "persistent.unlocked" || res.Variables[0].Kind != model.VarDefault {
		t.Fatalf("unexpected default: %+v", res.Variables[0])
	}
	if res.Variables[1].Name != "config.name" || res.Variables[1].Kind != model.VarDefine {
		t.Fatalf("unexpected define: %+v", res.Variables[1])
	}
}

func TestCharacterDefinitionEmitsBothRecords(t *testing.T) {
	res := parse(t, `define e = Character("Eileen", color="#c8ffc8")
default m = Character("Mary")
`)
	if len(res.Characters) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(res.Characters))
	}
	if res.Characters[0].Shorthand != "e" || res.Characters[0].DisplayName != "Eileen" {
		t.Fatalf("unexpected character: %+v", res.Characters[0])
	}
	if len(res.Variables) != 2 {
		t.Fatalf("expected 2 variables alongside characters, got %d", len(res.Variables))
	}
	if res.Variables[0].Kind != model.VarDefine || res.Variables[1].Kind != model.VarDefault {
		t.Fatalf("variable kinds should mirror the keyword used: %+v", res.Variables)
	}
}

func TestDialogueKeywordExclusion(t *testing.T) {
	res := parse(t, `label start:
    python "some text"
    textbutton "Click me"
    e "Actual dialogue"
`)
	if len(res.Dialogue) != 1 {
		t.Fatalf("expected 1 dialogue line, got %d: %+v", len(res.Dialogue), res.Dialogue)
	}
	if res.Dialogue[0].Speaker != "e" || res.Dialogue[0].Text != "Actual dialogue" {
		t.Fatalf("unexpected dialogue: %+v", res.Dialogue[0])
	}
}

func TestDialogueEscapesAndDanglingQuote(t *testing.T) {
	res := parse(t, `label start:
    e "She said \"hi\" to me."
    m "This line never ends
`)
	if len(res.Dialogue) != 2 {
		t.Fatalf("expected 2 dialogue lines, got %d", len(res.Dialogue))
	}
	if res.Dialogue[0].Text != `She said \"hi\" to me.` {
		t.Fatalf("escape handling broken: %q", res.Dialogue[0].Text)
	}
	if res.Dialogue[1].Speaker != "m" || res.Dialogue[1].Text != "" {
		t.Fatalf("dangling quote should keep speaker with empty text: %+v", res.Dialogue[1])
	}
}

func TestSceneShowExtraction(t *testing.T) {
	res := parse(t, `label start:
    scene bg park with dissolve
    scene black
    show eileen happy at left
    show screen stats_screen
`)
	if len(res.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d: %+v", len(res.Scenes), res.Scenes)
	}
	if res.Scenes[0].ImageName != "bg park" || res.Scenes[0].Transition != "dissolve" {
		t.Fatalf("unexpected scene: %+v", res.Scenes[0])
	}
	if res.Scenes[1].ImageName != "black" || res.Scenes[1].Transition != "" {
		t.Fatalf("unexpected scene: %+v", res.Scenes[1])
	}
	if len(res.Shows) != 1 || res.Shows[0].ImageName != "eileen happy" {
		t.Fatalf("unexpected shows: %+v", res.Shows)
	}
	if len(res.TransformRefs) != 1 || res.TransformRefs[0].Name != "left" {
		t.Fatalf("expected at-transform ref, got %+v", res.TransformRefs)
	}
	// `show screen` must be a screen ref, never an image show.
	if len(res.ScreenRefs) != 1 || res.ScreenRefs[0].Name != "stats_screen" || res.ScreenRefs[0].Action != "show" {
		t.Fatalf("unexpected screen refs: %+v", res.ScreenRefs)
	}
}

func TestMusicStatements(t *testing.T) {
	res := parse(t, `label start:
    play music "audio/theme.ogg"
    play sound "audio/door.ogg"
    queue music "audio/next.ogg"
    voice "voice/line01.ogg"
    stop music
`)
	if len(res.Music) != 5 {
		t.Fatalf("expected 5 music refs, got %d: %+v", len(res.Music), res.Music)
	}
	actions := []string{}
	for _, m := range res.Music {
		actions = append(actions, m.Action)
	}
	want := []string{"play", "sound", "queue", "voice", "stop"}
	if !reflect.DeepEqual(actions, want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	if res.Music[4].Path != "" {
		t.Fatalf("stop must carry an empty path, got %q", res.Music[4].Path)
	}
}

func TestImageDefinitions(t *testing.T) {
	res := parse(t, `image bg park = "images/bg/park.png"
image intro movie = Movie(play="videos/intro.webm")
image eileen happy:
    "eileen_happy.png"
`)
	if len(res.Images) != 3 {
		t.Fatalf("expected 3 images, got %d: %+v", len(res.Images), res.Images)
	}
	if res.Images[0].Name != "bg park" {
		t.Fatalf("unexpected image name: %q", res.Images[0].Name)
	}
	if res.Images[1].Value != `Movie(play="videos/intro.webm")` {
		t.Fatalf("unexpected image value: %q", res.Images[1].Value)
	}
	if res.Images[2].Name != "eileen happy" || res.Images[2].Value != "" {
		t.Fatalf("unexpected block image: %+v", res.Images[2])
	}
}

func TestTopLevelDefinitions(t *testing.T) {
	res := parse(t, `screen stats_screen():
    text "HP"
transform shake:
    linear 0.1 xoffset 5
translate german start_hello_1a2b:
    e "Hallo"
`)
	if len(res.ScreenDefs) != 1 || res.ScreenDefs[0].Name != "stats_screen" {
		t.Fatalf("unexpected screen defs: %+v", res.ScreenDefs)
	}
	if len(res.TransformDefs) != 1 || res.TransformDefs[0].Name != "shake" {
		t.Fatalf("unexpected transform defs: %+v", res.TransformDefs)
	}
	if len(res.Translations) != 1 {
		t.Fatalf("unexpected translations: %+v", res.Translations)
	}
	tr := res.Translations[0]
	if tr.Language != "german" || tr.StringID != "start_hello_1a2b" {
		t.Fatalf("unexpected translation block: %+v", tr)
	}
}

func TestConditions(t *testing.T) {
	res := parse(t, `label start:
    if score > 10:
        e "High"
    elif score > 5 and bonus == True:
        e "Mid"
`)
	if len(res.Conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(res.Conditions))
	}
	if res.Conditions[0].Expression != "score > 10" {
		t.Fatalf("unexpected expression: %q", res.Conditions[0].Expression)
	}
	if res.Conditions[1].Expression != "score > 5 and bonus == True" {
		t.Fatalf("unexpected expression: %q", res.Conditions[1].Expression)
	}
}

func TestNestedMenuIsolation(t *testing.T) {
	res := parse(t, `label start:
    menu:
        "Outer A":
            menu:
                "Inner X":
                    p "X"
                "Inner Y":
                    p "Y"
        "Outer B":
            p "B"
`)
	if len(res.Menus) != 2 {
		t.Fatalf("expected exactly 2 menus, got %d: %+v", len(res.Menus), res.Menus)
	}
	// Menus close innermost first.
	inner, outer := res.Menus[0], res.Menus[1]
	if texts(inner) == nil || !reflect.DeepEqual(texts(inner), []string{"Inner X", "Inner Y"}) {
		t.Fatalf("inner menu choices = %v", texts(inner))
	}
	if !reflect.DeepEqual(texts(outer), []string{"Outer A", "Outer B"}) {
		t.Fatalf("outer menu choices = %v", texts(outer))
	}
	// The nested menu counts as exactly one content line of "Outer A".
	if outer.Choices[0].ContentLines != 1 {
		t.Fatalf("nested menu should count as one content line, got %d", outer.Choices[0].ContentLines)
	}
}

func TestDanglingNestedMenuAtEOF(t *testing.T) {
	res := parse(t, `label start:
    menu:
        "Outer A":
            menu:
                "Inner X":
                    p "X"
                "Inner Y":
                    p "Y"`)
	if len(res.Menus) != 2 {
		t.Fatalf("expected 2 menus after EOF drain, got %d", len(res.Menus))
	}
	inner, outer := res.Menus[0], res.Menus[1]
	if len(inner.Choices) != 2 {
		t.Fatalf("inner menu should keep both choices, got %+v", inner.Choices)
	}
	if len(outer.Choices) != 1 || outer.Choices[0].Text != "Outer A" {
		t.Fatalf("unexpected outer menu: %+v", outer.Choices)
	}
}

func TestSequentialMenusStaySeparate(t *testing.T) {
	res := parse(t, `label one:
    menu:
        "A1":
            jump x
        "A2":
            jump y
label two:
    menu:
        "B1":
            return
        "B2":
            jump z
`)
	if len(res.Menus) != 2 {
		t.Fatalf("expected 2 separate menus, got %d", len(res.Menus))
	}
	if !reflect.DeepEqual(texts(res.Menus[0]), []string{"A1", "A2"}) {
		t.Fatalf("first menu choices = %v", texts(res.Menus[0]))
	}
	if !reflect.DeepEqual(texts(res.Menus[1]), []string{"B1", "B2"}) {
		t.Fatalf("second menu choices = %v", texts(res.Menus[1]))
	}
}

func TestMenuChoiceFlagsAndCondition(t *testing.T) {
	res := parse(t, `label start:
    menu:
        "Leave" if key_found:
            e "Bye"
            jump outside
        "Stay":
            return
        "Linger":
            e "Hmm"
            e "Well"
`)
	if len(res.Menus) != 1 {
		t.Fatalf("expected 1 menu, got %d", len(res.Menus))
	}
	ch := res.Menus[0].Choices
	if len(ch) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(ch))
	}
	if ch[0].Condition != "key_found" || !ch[0].HasJump || ch[0].ContentLines != 2 {
		t.Fatalf("unexpected first choice: %+v", ch[0])
	}
	if !ch[1].HasReturn || ch[1].ContentLines != 1 {
		t.Fatalf("unexpected second choice: %+v", ch[1])
	}
	if ch[2].HasJump || ch[2].HasReturn || ch[2].ContentLines != 2 {
		t.Fatalf("unexpected third choice: %+v", ch[2])
	}
}

func TestMenuContentIgnoresBlanksAndComments(t *testing.T) {
	res := parse(t, `label start:
    menu:
        "One":

            # a comment
            e "Hello"
        "Two":
            e "Bye"
`)
	if len(res.Menus) != 1 {
		t.Fatalf("expected 1 menu, got %d", len(res.Menus))
	}
	if got := res.Menus[0].Choices[0].ContentLines; got != 1 {
		t.Fatalf("blank/comment lines must not count, got %d", got)
	}
}

func TestJumpInsideChoiceStillRecorded(t *testing.T) {
	res := parse(t, `label start:
    menu:
        "Go":
            jump elsewhere
        "Stop":
            return
`)
	if len(res.Jumps) != 1 || res.Jumps[0].Target != "elsewhere" {
		t.Fatalf("jump inside menu choice should still be recorded: %+v", res.Jumps)
	}
}

func TestParseFilePermissiveDecoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.rpy")
	content := append([]byte("label start:\n    e \"ok\"\n    e \""), 0xff, 0xfe)
	content = append(content, []byte("\"\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	res, lines, err := ParseFile(path)
	if err != nil {
		t.Fatalf("permissive decode should not fail: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 raw lines, got %d", len(lines))
	}
	if len(res.Labels) != 1 || len(res.Dialogue) != 2 {
		t.Fatalf("unexpected result: labels=%d dialogue=%d", len(res.Labels), len(res.Dialogue))
	}
}

func texts(m model.Menu) []string {
	var out []string
	for _, c := range m.Choices {
		out = append(out, c.Text)
	}
	return out
}
