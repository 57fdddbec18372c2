/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

func samplePDFFindings() []model.Finding {
	return []model.Finding{
		{
			Severity:    model.SeverityCritical,
			CheckName:   "callcycle",
			Title:       "Circular call cycle: intro → loop → intro",
			Description: "These labels call each other without returning, so the call stack grows forever.",
			Suggestion:  "Break the cycle with a jump or a return.",
			File:        "script.rpy",
			Line:        3,
		},
		{
			Severity:    model.SeverityHigh,
			CheckName:   "labels",
			Title:       "Jump to undefined label 'missing'",
			Description: "No label named 'missing' exists in the project.",
			Suggestion:  "Define the label or fix the jump target.",
			File:        "script.rpy",
			Line:        8,
		},
		{
			Severity:    model.SeverityHigh,
			CheckName:   "labels",
			Title:       "Jump to undefined label 'missing'",
			Description: "No label named 'missing' exists in the project.",
			Suggestion:  "Define the label or fix the jump target.",
			File:        "chapter2.rpy",
			Line:        14,
		},
		{
			Severity:    model.SeverityMedium,
			CheckName:   "menus",
			Title:       "Possible menu fallthrough: 'Go left'",
			Description: "The choice body is very short and does not end in a jump.",
			File:        "script.rpy",
			Line:        22,
		},
		{
			Severity:  model.SeverityLow,
			CheckName: "characters",
			Title:     "Unused character 'npc'",
			File:      "characters.rpy",
			Line:      2,
		},
		{
			Severity:   model.SeverityStyle,
			CheckName:  "logic",
			Title:      "Redundant comparison: 'Flag == True'",
			Suggestion: "Write 'if Flag' instead.",
			File:       "script.rpy",
			Line:       30,
		},
	}
}

func TestWritePDFCreatesFile(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "reports", "analysis.pdf")
	err := WritePDF(samplePDFFindings(), out, "My Game", root)
	if err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("pdf file empty")
	}
}

func TestWritePDFNoFindings(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "empty.pdf")
	if err := WritePDF(nil, out, "Clean Game", ""); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() <= 0 {
		t.Fatalf("expected non-empty pdf, err=%v", err)
	}
}

func TestWritePDFManyLocationsOverflow(t *testing.T) {
	var findings []model.Finding
	for i := 1; i <= maxLocsFull+15; i++ {
		findings = append(findings, model.Finding{
			Severity:    model.SeverityCritical,
			CheckName:   "labels",
			Title:       "Jump to undefined label 'ending'",
			Description: "No label named 'ending' exists in the project.",
			File:        "script.rpy",
			Line:        i,
		})
	}
	root := t.TempDir()
	out := filepath.Join(root, "overflow.pdf")
	if err := WritePDF(findings, out, "Big Game", ""); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() <= 0 {
		t.Fatalf("expected non-empty pdf, err=%v", err)
	}
}
