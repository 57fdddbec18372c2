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
	"regexp"
	"strconv"
	"strings"
)

var (
	// 8.x+: vc_version.py carries version = '8.5.2.26010301'.
	reVCVersion = regexp.MustCompile(`(?m)^version\s*=\s*u?['"](\d+\.\d+\.\d+)`)
	// 7.x: __init__.py carries version_tuple = (7, 4, 10, vc_version).
	reVersionTuple = regexp.MustCompile(`version_tuple\s*=\s*\((\d+),\s*(\d+),\s*(\d+)`)
)

// EngineVersion is a parsed Ren'Py version, e.g. {8, 5, 2}.
type EngineVersion []int

// String formats the version as a dotted string.
func (v EngineVersion) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Less orders versions lexicographically by component.
func (v EngineVersion) Less(other EngineVersion) bool {
	for i := 0; i < len(v) && i < len(other); i++ {
		if v[i] != other[i] {
			return v[i] < other[i]
		}
	}
	return len(v) < len(other)
}

// DetectVersion reads the Ren'Py version at path, which may be a game
// directory or an SDK directory. It checks renpy/vc_version.py (8.x+)
// first, then renpy/__init__.py (7.x), looking both directly under
// path and under path/game. Returns nil when no version is found.
func DetectVersion(path string) EngineVersion {
	for _, renpyDir := range []string{
		filepath.Join(path, "renpy"),
		filepath.Join(path, "game", "renpy"),
	} {
		if fi, err := os.Stat(renpyDir); err != nil || !fi.IsDir() {
			continue
		}
		if v := parseVCVersion(filepath.Join(renpyDir, "vc_version.py")); v != nil {
			return v
		}
		if v := parseInitVersion(filepath.Join(renpyDir, "__init__.py")); v != nil {
			return v
		}
	}
	return nil
}

func parseVCVersion(path string) EngineVersion {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	m := reVCVersion.FindSubmatch(data)
	if m == nil {
		return nil
	}
	var v EngineVersion
	for _, part := range strings.Split(string(m[1]), ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		v = append(v, n)
	}
	logger.Debug("detected engine version", "version", v.String(), "file", path)
	return v
}

func parseInitVersion(path string) EngineVersion {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	m := reVersionTuple.FindSubmatch(data)
	if m == nil {
		return nil
	}
	v := make(EngineVersion, 3)
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(string(m[i+1]))
		if err != nil {
			return nil
		}
		v[i] = n
	}
	logger.Debug("detected engine version", "version", v.String(), "file", path)
	return v
}

// SelectSDK picks the best SDK for a game version from a list of SDK
// paths. SDKs are matched by major version; among matches the highest
// minor/patch wins. Returns "" when nothing matches.
func SelectSDK(gameVersion EngineVersion, sdkPaths []string) string {
	if len(gameVersion) == 0 || len(sdkPaths) == 0 {
		return ""
	}
	var bestPath string
	var bestVer EngineVersion
	for _, p := range sdkPaths {
		v := DetectVersion(p)
		if v == nil || v[0] != gameVersion[0] {
			continue
		}
		if bestVer.Less(v) {
			bestVer = v
			bestPath = p
		}
	}
	if bestPath != "" {
		logger.Info("selected SDK", "path", bestPath, "sdk_version", bestVer.String(), "game_version", gameVersion.String())
	} else {
		logger.Info("no SDK with matching major version", "major", gameVersion[0], "game_version", gameVersion.String())
	}
	return bestPath
}
