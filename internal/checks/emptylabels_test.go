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

func TestLabelWithContentNotFlagged(t *testing.T) {
	proj := projectFromScript(t, `label start:
    "Hello world"
    return
`)
	if findings := CheckEmptyLabels(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestEmptyLabelBeforeNextLabel(t *testing.T) {
	proj := projectFromScript(t, `label empty_one:
label real:
    "Hello"
    return
`)
	findings := CheckEmptyLabels(proj)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	f := findings[0]
	if f.Severity != model.SeverityHigh {
		t.Errorf("severity = %v, want HIGH", f.Severity)
	}
	if !strings.Contains(f.Title, "empty_one") {
		t.Errorf("title %q does not name the label", f.Title)
	}
	if f.CheckName != "emptylabels" {
		t.Errorf("check name = %q, want emptylabels", f.CheckName)
	}
}

func TestPassOnlyLabel(t *testing.T) {
	proj := projectFromScript(t, `label stub:
    pass
label real:
    return
`)
	findings := CheckEmptyLabels(proj)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if !strings.Contains(findings[0].Title, "stub") {
		t.Errorf("title %q does not name the label", findings[0].Title)
	}
	if !strings.Contains(findings[0].Description, "(only pass)") {
		t.Errorf("description %q does not mention the pass body", findings[0].Description)
	}
}

func TestCommentOnlyLabel(t *testing.T) {
	proj := projectFromScript(t, `label todo:
    # implement this
    # more comments
label real:
    return
`)
	findings := CheckEmptyLabels(proj)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if !strings.Contains(findings[0].Title, "todo") {
		t.Errorf("title %q does not name the label", findings[0].Title)
	}
}

func TestEmptyLabelAtEndOfFile(t *testing.T) {
	proj := projectFromScript(t, `label start:
    "content"
    return
label trailing:
`)
	findings := CheckEmptyLabels(proj)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if !strings.Contains(findings[0].Title, "trailing") {
		t.Errorf("title %q does not name the label", findings[0].Title)
	}
}

func TestReturnOnlyLabelHasContent(t *testing.T) {
	proj := projectFromScript(t, `label callback:
    return
`)
	if findings := CheckEmptyLabels(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestEmptyLabelsOrderedByPosition(t *testing.T) {
	proj := projectFromFiles(t, map[string]string{
		"b.rpy": "label zulu:\nlabel omega:\nlabel used:\n    return\n",
		"a.rpy": "label alpha:\nlabel done:\n    return\n",
	})
	findings := CheckEmptyLabels(proj)
	if len(findings) != 3 {
		t.Fatalf("got %d findings, want 3", len(findings))
	}
	wantFiles := []string{"a.rpy", "b.rpy", "b.rpy"}
	for i, f := range findings {
		if f.File != wantFiles[i] {
			t.Errorf("finding %d in %s, want %s", i, f.File, wantFiles[i])
		}
	}
	if findings[1].Line > findings[2].Line {
		t.Errorf("findings within a file out of line order: %d then %d", findings[1].Line, findings[2].Line)
	}
}
