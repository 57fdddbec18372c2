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
	"runtime"
	"testing"
)

// fakeSDK creates a directory that passes ValidatePath.
func fakeSDK(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Join(dir, "renpy"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	pyDir := filepath.Join(dir, "lib", "py3-"+runtime.GOOS+"-test")
	if err := os.MkdirAll(pyDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pyDir, "python"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write python: %v", err)
	}
	return dir
}

func TestResolveExplicitWins(t *testing.T) {
	got := Resolve(t.TempDir(), "/explicit/sdk", []string{"/configured"}, true)
	if got != "/explicit/sdk" {
		t.Fatalf("expected explicit path, got %q", got)
	}
}

func TestResolveConfiguredValidPath(t *testing.T) {
	root := t.TempDir()
	sdkDir := fakeSDK(t, root, "renpy-8.2.0-sdk")
	got := Resolve(t.TempDir(), "", []string{filepath.Join(root, "missing"), sdkDir}, false)
	if got != sdkDir {
		t.Fatalf("expected configured SDK %q, got %q", sdkDir, got)
	}
}

func TestResolveNothingFound(t *testing.T) {
	got := Resolve(t.TempDir(), "", nil, false)
	if got != "" {
		t.Fatalf("expected empty resolution, got %q", got)
	}
}
