/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sdk

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectVersionVCFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "renpy", "vc_version.py"), "version = '8.5.2.26010301'\n")
	v := DetectVersion(dir)
	if v.String() != "8.5.2" {
		t.Fatalf("DetectVersion = %v, want 8.5.2", v)
	}
}

func TestDetectVersionUnicodePrefix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "renpy", "vc_version.py"), "version = u'7.8.7.25031702'\n")
	if v := DetectVersion(dir); v.String() != "7.8.7" {
		t.Fatalf("DetectVersion = %v, want 7.8.7", v)
	}
}

func TestDetectVersionInitTuple(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "renpy", "__init__.py"), "version_tuple = (7, 4, 10, vc_version)\n")
	if v := DetectVersion(dir); v.String() != "7.4.10" {
		t.Fatalf("DetectVersion = %v, want 7.4.10", v)
	}
}

func TestDetectVersionGameSubdir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "game", "renpy", "vc_version.py"), "version = '8.1.0.123'\n")
	if v := DetectVersion(dir); v.String() != "8.1.0" {
		t.Fatalf("DetectVersion = %v, want 8.1.0", v)
	}
}

func TestDetectVersionMissing(t *testing.T) {
	if v := DetectVersion(t.TempDir()); v != nil {
		t.Fatalf("expected nil version, got %v", v)
	}
}

func TestSelectSDKByMajorVersion(t *testing.T) {
	sdk7 := t.TempDir()
	writeFile(t, filepath.Join(sdk7, "renpy", "vc_version.py"), "version = '7.5.3.1'\n")
	sdk8a := t.TempDir()
	writeFile(t, filepath.Join(sdk8a, "renpy", "vc_version.py"), "version = '8.1.0.1'\n")
	sdk8b := t.TempDir()
	writeFile(t, filepath.Join(sdk8b, "renpy", "vc_version.py"), "version = '8.5.2.1'\n")

	paths := []string{sdk7, sdk8a, sdk8b}

	if got := SelectSDK(EngineVersion{8, 0, 0}, paths); got != sdk8b {
		t.Fatalf("SelectSDK picked %q, want highest 8.x %q", got, sdk8b)
	}
	if got := SelectSDK(EngineVersion{7, 4, 10}, paths); got != sdk7 {
		t.Fatalf("SelectSDK picked %q, want %q", got, sdk7)
	}
	if got := SelectSDK(EngineVersion{6, 99, 0}, paths); got != "" {
		t.Fatalf("SelectSDK picked %q for unmatched major, want empty", got)
	}
	if got := SelectSDK(nil, paths); got != "" {
		t.Fatalf("SelectSDK with nil version should return empty, got %q", got)
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	if ValidatePath(dir) {
		t.Fatalf("empty dir should not validate")
	}
	writeFile(t, filepath.Join(dir, "renpy", "__init__.py"), "")
	if ValidatePath(dir) {
		t.Fatalf("dir without python binary should not validate")
	}
	writeFile(t, filepath.Join(dir, "lib", "py3-linux-x86_64", "python"), "#!/bin/sh\n")
	if !ValidatePath(dir) {
		t.Fatalf("dir with renpy/ and python binary should validate")
	}
}

func TestConvertFileResult(t *testing.T) {
	raw := []byte(`{
		"labels": [{"name": "start", "line": 1}],
		"jumps": [{"target": "end", "line": 2}],
		"dynamic_jumps": [{"expression": "\"ch_\" + str(n)", "line": 3}],
		"variables": [{"name": "score", "line": 4, "kind": "", "value": "0"}],
		"menus": [{"line": 5, "choices": [
			{"text": "Go", "line": 6, "content_lines": 2, "has_jump": true, "has_return": false, "condition": "key_found"}
		]}],
		"music": [{"path": "", "line": 7, "action": "stop"}],
		"dialogue": [{"speaker": "e", "line": 8}]
	}`)
	res := ConvertFileResult(raw)
	if len(res.Labels) != 1 || res.Labels[0].Name != "start" {
		t.Fatalf("labels: %+v", res.Labels)
	}
	if len(res.Variables) != 1 || res.Variables[0].Kind != "assign" {
		t.Fatalf("missing kind should default to assign: %+v", res.Variables)
	}
	if len(res.Menus) != 1 || len(res.Menus[0].Choices) != 1 {
		t.Fatalf("menus: %+v", res.Menus)
	}
	c := res.Menus[0].Choices[0]
	if !c.HasJump || c.HasReturn || c.Condition != "key_found" || c.ContentLines != 2 {
		t.Fatalf("choice: %+v", c)
	}
	if len(res.DynamicJumps) != 1 {
		t.Fatalf("dynamic jumps: %+v", res.DynamicJumps)
	}
}

func TestValidateResponse(t *testing.T) {
	good := []byte(`{"success": true, "version": "8.5.2", "results": {}, "errors": []}`)
	if err := validateResponse(good); err != nil {
		t.Fatalf("valid response rejected: %v", err)
	}
	bad := []byte(`{"version": 42}`)
	if err := validateResponse(bad); err == nil {
		t.Fatalf("response missing success field should be rejected")
	}
	notJSON := []byte(`Traceback (most recent call last):`)
	if err := validateResponse(notJSON); err == nil {
		t.Fatalf("non-JSON output should be rejected")
	}
}

func TestFindPythonMissing(t *testing.T) {
	if _, err := FindPython(t.TempDir()); err == nil {
		t.Fatalf("expected error for empty SDK dir")
	}
}
