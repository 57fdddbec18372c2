/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package project discovers .rpy files under a Ren'Py project root and
// builds the aggregate model the checks run against.
package project

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/log"
	"github.com/Wintersta7e/renpy-analyzer/internal/model"
	"github.com/Wintersta7e/renpy-analyzer/internal/parser"
	"github.com/Wintersta7e/renpy-analyzer/internal/sdk"
)

var logger = log.WithComponent("project")

// Options controls project loading.
type Options struct {
	// SDKPath, when set, routes parsing through the Ren'Py SDK's own
	// parser via the subprocess bridge instead of the regex parser.
	SDKPath string
}

// isEngineFile reports whether path contains a "renpy" path component.
// Engine files ship with every game and contain engine internals the
// developer did not write; scanning them produces false positives
// across all checks.
func isEngineFile(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "renpy" {
			return true
		}
	}
	return false
}

// DetectSubGames finds multiple sub-game directories within a parent
// folder. It returns the sub-directory names that each contain a game/
// folder, or nil if path itself is a single game or fewer than two
// sub-games exist.
func DetectSubGames(path string) []string {
	if isDir(filepath.Join(path, "game")) {
		return nil // single game
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	var subs []string
	for _, e := range entries {
		if e.IsDir() && isDir(filepath.Join(path, e.Name(), "game")) {
			subs = append(subs, e.Name())
		}
	}
	sort.Strings(subs)
	if len(subs) < 2 {
		return nil
	}
	return subs
}

// Load scans a Ren'Py project directory and parses every non-engine
// .rpy file it finds.
//
// If path contains a game/ subfolder, that folder becomes the scan
// root; otherwise the directory is scanned directly. Files that fail
// to parse are skipped with a warning rather than aborting the scan.
// For directories holding several sub-games, call DetectSubGames and
// Load each sub-game separately.
func Load(ctx context.Context, path string, opts Options) (*model.Project, error) {
	scanDir := path
	if gameDir := filepath.Join(path, "game"); isDir(gameDir) {
		scanDir = gameDir
	}

	files, err := discoverRpyFiles(scanDir)
	if err != nil {
		return nil, err
	}

	proj := model.NewProject(scanDir)
	proj.Files = files
	proj.HasRPA = hasGlobMatch(scanDir, "*.rpa")

	if opts.SDKPath != "" {
		if err := loadWithSDK(ctx, proj, files, scanDir, opts.SDKPath); err != nil {
			return nil, err
		}
	} else {
		loadWithRegex(proj, files, scanDir)
	}

	if len(files) == 0 && hasRpycFiles(scanDir) {
		proj.HasRPYCOnly = true
	}

	logger.Info("loaded project", "files", len(files), "dir", scanDir)
	return proj, nil
}

// discoverRpyFiles walks scanDir recursively and returns all .rpy
// files outside engine directories, sorted lexicographically.
func discoverRpyFiles(scanDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(scanDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".rpy") {
			return nil
		}
		rel, relErr := filepath.Rel(scanDir, p)
		if relErr != nil {
			rel = p
		}
		if isEngineFile(rel) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func loadWithRegex(proj *model.Project, files []string, scanDir string) {
	for _, f := range files {
		res, lines, err := parser.ParseFile(f)
		if err != nil {
			logger.Warn("skipping file: failed to parse", "file", f, "err", err)
			continue
		}
		rel := relPath(scanDir, f)
		proj.RawLines[rel] = lines
		mergeResult(proj, res, rel)
	}
}

func loadWithSDK(ctx context.Context, proj *model.Project, files []string, scanDir, sdkPath string) error {
	results, err := sdk.ParseFiles(ctx, files, scanDir, sdkPath)
	if err != nil {
		return err
	}
	skipped := 0
	for _, f := range files {
		raw, ok := results[f]
		if !ok {
			skipped++
			logger.Warn("SDK parser skipped file", "file", f)
			continue
		}
		rel := relPath(scanDir, f)
		res := sdk.ConvertFileResult(raw)
		if data, readErr := os.ReadFile(f); readErr == nil {
			proj.RawLines[rel] = parser.SplitLines(strings.ToValidUTF8(string(data), "�"))
		}
		mergeResult(proj, res, rel)
	}
	if skipped > 0 {
		logger.Warn("SDK parser skipped files", "skipped", skipped, "total", len(files))
	}
	return nil
}

// mergeResult appends one file's parse result into the project,
// rewriting record File fields to the scan-root relative path.
func mergeResult(proj *model.Project, res *parser.FileResult, rel string) {
	for i := range res.Labels {
		res.Labels[i].File = rel
	}
	for i := range res.Jumps {
		res.Jumps[i].File = rel
	}
	for i := range res.Calls {
		res.Calls[i].File = rel
	}
	for i := range res.DynamicJumps {
		res.DynamicJumps[i].File = rel
	}
	for i := range res.Variables {
		res.Variables[i].File = rel
	}
	for i := range res.Menus {
		res.Menus[i].File = rel
	}
	for i := range res.Scenes {
		res.Scenes[i].File = rel
	}
	for i := range res.Shows {
		res.Shows[i].File = rel
	}
	for i := range res.Images {
		res.Images[i].File = rel
	}
	for i := range res.Music {
		res.Music[i].File = rel
	}
	for i := range res.Characters {
		res.Characters[i].File = rel
	}
	for i := range res.Dialogue {
		res.Dialogue[i].File = rel
	}
	for i := range res.Conditions {
		res.Conditions[i].File = rel
	}
	for i := range res.ScreenDefs {
		res.ScreenDefs[i].File = rel
	}
	for i := range res.ScreenRefs {
		res.ScreenRefs[i].File = rel
	}
	for i := range res.TransformDefs {
		res.TransformDefs[i].File = rel
	}
	for i := range res.TransformRefs {
		res.TransformRefs[i].File = rel
	}
	for i := range res.Translations {
		res.Translations[i].File = rel
	}

	proj.Labels = append(proj.Labels, res.Labels...)
	proj.Jumps = append(proj.Jumps, res.Jumps...)
	proj.Calls = append(proj.Calls, res.Calls...)
	proj.DynamicJumps = append(proj.DynamicJumps, res.DynamicJumps...)
	proj.Variables = append(proj.Variables, res.Variables...)
	proj.Menus = append(proj.Menus, res.Menus...)
	proj.Scenes = append(proj.Scenes, res.Scenes...)
	proj.Shows = append(proj.Shows, res.Shows...)
	proj.Images = append(proj.Images, res.Images...)
	proj.Music = append(proj.Music, res.Music...)
	proj.Characters = append(proj.Characters, res.Characters...)
	proj.Dialogue = append(proj.Dialogue, res.Dialogue...)
	proj.Conditions = append(proj.Conditions, res.Conditions...)
	proj.ScreenDefs = append(proj.ScreenDefs, res.ScreenDefs...)
	proj.ScreenRefs = append(proj.ScreenRefs, res.ScreenRefs...)
	proj.TransformDefs = append(proj.TransformDefs, res.TransformDefs...)
	proj.TransformRefs = append(proj.TransformRefs, res.TransformRefs...)
	proj.Translations = append(proj.Translations, res.Translations...)
}

func relPath(base, p string) string {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

// hasGlobMatch checks for matches directly under dir, not recursively.
func hasGlobMatch(dir, pattern string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	return err == nil && len(matches) > 0
}

func hasRpycFiles(scanDir string) bool {
	found := false
	_ = filepath.WalkDir(scanDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".rpyc") {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
