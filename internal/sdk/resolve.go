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
	"sort"
)

// Resolve picks the SDK to parse projectPath with. Precedence:
// an explicit path wins outright; then the configured paths, version-
// matched against the game when its engine version is detectable;
// then, with autodetect on, well-known install locations.
// Returns "" when no usable SDK is found, which means regex parsing.
func Resolve(projectPath, explicit string, configured []string, autodetect bool) string {
	if explicit != "" {
		return explicit
	}

	gameVer := DetectVersion(projectPath)
	if p := SelectSDK(gameVer, configured); p != "" {
		return p
	}
	for _, p := range configured {
		if ValidatePath(p) {
			logger.Info("using configured SDK", "path", p)
			return p
		}
	}

	if !autodetect {
		return ""
	}
	candidates := wellKnownSDKs()
	if p := SelectSDK(gameVer, candidates); p != "" {
		return p
	}
	for _, p := range candidates {
		if ValidatePath(p) {
			logger.Info("autodetected SDK", "path", p)
			return p
		}
	}
	return ""
}

// wellKnownSDKs globs the usual Ren'Py SDK install spots, newest
// name first.
func wellKnownSDKs() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, home, filepath.Join(home, "Downloads"))
	}
	switch runtime.GOOS {
	case "windows":
		roots = append(roots, `C:\`)
	case "darwin":
		roots = append(roots, "/Applications")
	default:
		roots = append(roots, "/opt")
	}

	var out []string
	for _, root := range roots {
		matches, err := filepath.Glob(filepath.Join(root, "renpy-*-sdk"))
		if err != nil {
			continue
		}
		out = append(out, matches...)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
