/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package checks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// writeAsset creates a fake asset file under the project root.
func writeAsset(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUndefinedSceneImage(t *testing.T) {
	proj := projectFromScript(t, `image ch1_bg = "bg.png"
label start:
    scene ch1_bg with dissolve
    scene meanwhile with dissolve
`)
	proj.RootDir = t.TempDir()
	findings := titlesContaining(CheckAssets(proj), "Undefined")
	if len(findings) != 1 {
		t.Fatalf("got %d undefined findings, want 1", len(findings))
	}
	if !strings.Contains(findings[0].Title, "meanwhile") {
		t.Errorf("title %q does not name the image", findings[0].Title)
	}
}

func TestBuiltinSceneNotFlagged(t *testing.T) {
	proj := projectFromScript(t, `label start:
    scene black with fade
`)
	proj.RootDir = t.TempDir()
	if findings := titlesContaining(CheckAssets(proj), "Undefined"); len(findings) != 0 {
		t.Fatalf("got %d undefined findings, want 0", len(findings))
	}
}

func TestAutoRegisteredImagesFromDisk(t *testing.T) {
	proj := projectFromScript(t, `label start:
    scene bg park with dissolve
`)
	proj.RootDir = t.TempDir()
	writeAsset(t, proj.RootDir, "images/bg/park.png")
	if findings := titlesContaining(CheckAssets(proj), "Undefined"); len(findings) != 0 {
		t.Fatalf("got %d undefined findings, want 0", len(findings))
	}
}

func TestMissingAudioFile(t *testing.T) {
	proj := projectFromScript(t, `label start:
    play sound "sfx/nonexistent.ogg"
`)
	proj.RootDir = t.TempDir()
	findings := titlesContaining(CheckAssets(proj), "Missing")
	if len(findings) != 1 {
		t.Fatalf("got %d missing findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityHigh {
		t.Errorf("severity = %v, want HIGH", findings[0].Severity)
	}
}

func TestExistingAudioFileNotFlagged(t *testing.T) {
	proj := projectFromScript(t, `label start:
    play music "audio/theme.ogg"
`)
	proj.RootDir = t.TempDir()
	writeAsset(t, proj.RootDir, "audio/theme.ogg")
	if findings := CheckAssets(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestAudioFileCaseMismatch(t *testing.T) {
	proj := projectFromScript(t, `label start:
    play music "audio/Theme.ogg"
`)
	proj.RootDir = t.TempDir()
	writeAsset(t, proj.RootDir, "audio/theme.ogg")
	findings := titlesContaining(CheckAssets(proj), "case mismatch")
	if len(findings) != 1 {
		t.Fatalf("got %d case findings, want 1", len(findings))
	}
	f := findings[0]
	if f.Severity != model.SeverityMedium {
		t.Errorf("severity = %v, want MEDIUM", f.Severity)
	}
	if !strings.Contains(f.Suggestion, "theme.ogg") {
		t.Errorf("suggestion %q does not name the on-disk file", f.Suggestion)
	}
}

func TestDirectoryCaseMismatch(t *testing.T) {
	proj := projectFromScript(t, `label start:
    play music "Audio/theme.ogg"
`)
	proj.RootDir = t.TempDir()
	writeAsset(t, proj.RootDir, "audio/theme.ogg")
	findings := titlesContaining(CheckAssets(proj), "Directory case mismatch")
	if len(findings) != 1 {
		t.Fatalf("got %d directory-case findings, want 1", len(findings))
	}
	if !strings.Contains(findings[0].Description, "'Audio'") {
		t.Errorf("description %q does not name the wrong component", findings[0].Description)
	}
}

func TestStopStatementsSkipped(t *testing.T) {
	proj := projectFromScript(t, `label start:
    stop music
    stop sound
`)
	proj.RootDir = t.TempDir()
	if findings := CheckAssets(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestMovieReferenceChecked(t *testing.T) {
	proj := projectFromScript(t, `image intro_movie = Movie(play="video/intro.webm")
`)
	proj.RootDir = t.TempDir()
	findings := titlesContaining(CheckAssets(proj), "Missing")
	if len(findings) != 1 {
		t.Fatalf("got %d missing findings, want 1", len(findings))
	}
	if !strings.Contains(strings.ToLower(findings[0].Title), "animation") {
		t.Errorf("title %q does not describe an animation file", findings[0].Title)
	}
}

func TestUndefinedSpeaker(t *testing.T) {
	proj := projectFromFiles(t, map[string]string{
		"defines.rpy": "define mc = Character(\"Player\", color=\"#fff\")\n",
		"script.rpy":  "label start:\n    mc \"Hello\"\n    unknown \"Who am I?\"\n",
	})
	findings := titlesContaining(CheckCharacters(proj), "Undefined")
	if len(findings) != 1 {
		t.Fatalf("got %d undefined findings, want 1", len(findings))
	}
	if !strings.Contains(findings[0].Title, "unknown") {
		t.Errorf("title %q does not name the speaker", findings[0].Title)
	}
	if findings[0].Severity != model.SeverityHigh {
		t.Errorf("severity = %v, want HIGH", findings[0].Severity)
	}
}

func TestUnusedCharacter(t *testing.T) {
	proj := projectFromFiles(t, map[string]string{
		"defines.rpy": "define mc = Character(\"Player\", color=\"#fff\")\ndefine npc = Character(\"NPC\", color=\"#aaa\")\n",
		"script.rpy":  "label start:\n    mc \"Hello\"\n",
	})
	findings := titlesContaining(CheckCharacters(proj), "Unused")
	if len(findings) != 1 {
		t.Fatalf("got %d unused findings, want 1", len(findings))
	}
	if !strings.Contains(findings[0].Title, "npc") {
		t.Errorf("title %q does not name the character", findings[0].Title)
	}
}

func TestAllCharactersUsed(t *testing.T) {
	proj := projectFromFiles(t, map[string]string{
		"defines.rpy": "define mc = Character(\"Player\", color=\"#fff\")\n",
		"script.rpy":  "label start:\n    mc \"Hello\"\n",
	})
	if findings := CheckCharacters(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestUndefinedSpeakerCountsLocations(t *testing.T) {
	proj := projectFromScript(t, `label start:
    ghost "One"
    ghost "Two"
    ghost "Three"
`)
	findings := titlesContaining(CheckCharacters(proj), "Undefined")
	if len(findings) != 1 {
		t.Fatalf("got %d undefined findings, want 1", len(findings))
	}
	if !strings.Contains(findings[0].Description, "2 other location") {
		t.Errorf("description %q does not count the other locations", findings[0].Description)
	}
}
