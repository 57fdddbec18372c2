/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"encoding/json"
	"testing"
)

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityCritical < SeverityHigh && SeverityHigh < SeverityMedium &&
		SeverityMedium < SeverityLow && SeverityLow < SeverityStyle) {
		t.Fatalf("severity values not ordered most to least severe")
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		SeverityCritical: "CRITICAL",
		SeverityHigh:     "HIGH",
		SeverityMedium:   "MEDIUM",
		SeverityLow:      "LOW",
		SeverityStyle:    "STYLE",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		in   string
		want Severity
		ok   bool
	}{
		{"CRITICAL", SeverityCritical, true},
		{"critical", SeverityCritical, true},
		{" High ", SeverityHigh, true},
		{"medium", SeverityMedium, true},
		{"LOW", SeverityLow, true},
		{"style", SeverityStyle, true},
		{"", SeverityStyle, false},
		{"banana", SeverityStyle, false},
	}
	for _, tc := range cases {
		got, ok := ParseSeverity(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseSeverity(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(SeverityHigh)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"HIGH"` {
		t.Fatalf("marshal = %s, want %q", b, "HIGH")
	}
	var s Severity
	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != SeverityHigh {
		t.Fatalf("round trip = %v, want %v", s, SeverityHigh)
	}
}

func TestSeverityUnmarshalUnknown(t *testing.T) {
	var s Severity
	if err := json.Unmarshal([]byte(`"URGENT"`), &s); err == nil {
		t.Fatal("expected error for unknown severity name")
	}
}
