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

func TestMissingJumpTarget(t *testing.T) {
	proj := projectFromScript(t, `label start:
    jump nonexistent
`)
	findings := CheckLabels(proj)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityCritical {
		t.Errorf("severity = %v, want CRITICAL", findings[0].Severity)
	}
	if !strings.Contains(findings[0].Title, "nonexistent") {
		t.Errorf("title %q does not name the missing label", findings[0].Title)
	}
}

func TestValidJumpsNoFindings(t *testing.T) {
	proj := projectFromScript(t, `label start:
    jump ending
label ending:
    return
`)
	if findings := CheckLabels(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}

func TestMissingCallTarget(t *testing.T) {
	proj := projectFromScript(t, `label start:
    call nonexistent
`)
	findings := CheckLabels(proj)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].Severity != model.SeverityCritical {
		t.Errorf("severity = %v, want CRITICAL", findings[0].Severity)
	}
}

func TestDuplicateLabelReportedPerDefinition(t *testing.T) {
	proj := projectFromScript(t, `label start:
    jump ending
label ending:
    return
label ending:
    return
`)
	findings := CheckLabels(proj)
	dupes := titlesContaining(findings, "Duplicate")
	if len(dupes) != 2 {
		t.Fatalf("got %d duplicate findings, want 2", len(dupes))
	}
	for _, f := range dupes {
		if f.Severity != model.SeverityHigh {
			t.Errorf("severity = %v, want HIGH", f.Severity)
		}
		if !strings.Contains(f.Description, "defined 2 times") {
			t.Errorf("description %q does not name the count", f.Description)
		}
	}
	if dupes[0].Line == dupes[1].Line {
		t.Errorf("both findings point at line %d; want one per definition", dupes[0].Line)
	}
}

func TestDynamicJumpFlaggedMedium(t *testing.T) {
	proj := projectFromScript(t, `label start:
    jump expression target_var
`)
	findings := CheckLabels(proj)
	dyn := titlesContaining(findings, "Dynamic")
	if len(dyn) != 1 {
		t.Fatalf("got %d dynamic findings, want 1", len(dyn))
	}
	if dyn[0].Severity != model.SeverityMedium {
		t.Errorf("severity = %v, want MEDIUM", dyn[0].Severity)
	}
}

func TestCrossFileJumpValid(t *testing.T) {
	proj := projectFromFiles(t, map[string]string{
		"file1.rpy": "label start:\n    jump helper\n",
		"file2.rpy": "label helper:\n    return\n",
	})
	if findings := CheckLabels(proj); len(findings) != 0 {
		t.Fatalf("got %d findings, want 0", len(findings))
	}
}
