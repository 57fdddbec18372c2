/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package checks

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
	"github.com/Wintersta7e/renpy-analyzer/internal/parser"
)

var reMoviePath = regexp.MustCompile(`Movie\(\s*play\s*=\s*"([^"]+)"`)

var imageExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".webp": {}, ".bmp": {}, ".gif": {}, ".tga": {},
}

// CheckAssets reports scene statements for images with no definition,
// and animation/audio file references that point at missing files or
// files whose on-disk casing differs from the script.
func CheckAssets(proj *model.Project) []model.Finding {
	var findings []model.Finding

	defined := make(map[string]struct{})
	addImage := func(name string) {
		defined[name] = struct{}{}
		if i := strings.IndexByte(name, ' '); i > 0 {
			defined[name[:i]] = struct{}{}
		}
	}
	for _, img := range proj.Images {
		addImage(img.Name)
	}
	for name := range parser.BuiltinImages {
		defined[name] = struct{}{}
	}

	// Ren'Py auto-registers images from files under game/images/:
	// images/bg/park.png becomes image "bg park".
	imagesDir := filepath.Join(proj.RootDir, "images")
	if fi, err := os.Stat(imagesDir); err == nil && fi.IsDir() {
		_ = filepath.WalkDir(imagesDir, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if _, ok := imageExtensions[strings.ToLower(filepath.Ext(p))]; !ok {
				return nil
			}
			rel, relErr := filepath.Rel(imagesDir, p)
			if relErr != nil {
				return nil
			}
			rel = strings.TrimSuffix(rel, filepath.Ext(rel))
			parts := strings.Split(filepath.ToSlash(rel), "/")
			defined[strings.Join(parts, " ")] = struct{}{}
			defined[parts[0]] = struct{}{}
			return nil
		})
	}

	for _, scene := range proj.Scenes {
		tag := scene.ImageName
		if i := strings.IndexByte(tag, ' '); i > 0 {
			tag = tag[:i]
		}
		if _, ok := defined[scene.ImageName]; ok {
			continue
		}
		if _, ok := defined[tag]; ok {
			continue
		}
		findings = append(findings, model.Finding{
			Severity:  model.SeverityMedium,
			CheckName: "assets",
			Title:     fmt.Sprintf("Undefined scene image '%s'", scene.ImageName),
			Description: fmt.Sprintf(
				"'scene %s' at %s:%d references an image that has no 'image' definition in any .rpy file. This may work if a matching file exists in game/images/, but explicit definitions are safer.",
				scene.ImageName, scene.File, scene.Line),
			File:       scene.File,
			Line:       scene.Line,
			Suggestion: fmt.Sprintf("Add 'image %s = ...' or verify the image file exists in game/images/.", scene.ImageName),
		})
	}

	for _, img := range proj.Images {
		m := reMoviePath.FindStringSubmatch(img.Value)
		if m == nil {
			continue
		}
		checkFileReference(proj.RootDir, strings.TrimLeft(m[1], "/"), "Animation", img.File, img.Line, &findings)
	}

	for _, ref := range proj.Music {
		if ref.Action == "stop" || ref.Path == "" {
			continue
		}
		checkFileReference(proj.RootDir, strings.TrimLeft(ref.Path, "/"), "Audio", ref.File, ref.Line, &findings)
	}

	return findings
}

// checkFileReference verifies a script-referenced file exists,
// distinguishing case-only mismatches (break on Linux/macOS, silently
// work on Windows) from genuinely missing files.
func checkFileReference(root, relPath, fileDesc, refFile string, refLine int, findings *[]model.Finding) {
	fullPath := filepath.Join(root, relPath)
	if _, err := os.Stat(fullPath); err == nil {
		return
	}

	parent := filepath.Dir(fullPath)
	entries, err := os.ReadDir(parent)
	if err == nil {
		actual := make(map[string]string)
		for _, e := range entries {
			actual[strings.ToLower(e.Name())] = e.Name()
		}
		want := filepath.Base(fullPath)
		if actualName, ok := actual[strings.ToLower(want)]; ok {
			if actualName != want {
				*findings = append(*findings, model.Finding{
					Severity:  model.SeverityMedium,
					CheckName: "assets",
					Title:     fmt.Sprintf("%s path case mismatch", fileDesc),
					Description: fmt.Sprintf(
						"Reference '%s' at %s:%d has case mismatch - actual file is '%s'. Works on Windows but fails on Linux/macOS.",
						relPath, refFile, refLine, actualName),
					File:       refFile,
					Line:       refLine,
					Suggestion: fmt.Sprintf("Change path to match actual filename '%s'.", actualName),
				})
			}
			return
		}
		*findings = append(*findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "assets",
			Title:     fmt.Sprintf("Missing %s file", strings.ToLower(fileDesc)),
			Description: fmt.Sprintf(
				"Reference '%s' at %s:%d - file does not exist.",
				relPath, refFile, refLine),
			File:       refFile,
			Line:       refLine,
			Suggestion: fmt.Sprintf("Check the file path and ensure the %s file exists.", strings.ToLower(fileDesc)),
		})
		return
	}

	// The parent directory itself is missing; see whether some path
	// component only differs by case.
	before := len(*findings)
	checkDirectoryCasing(root, relPath, refFile, refLine, findings)
	if len(*findings) == before {
		*findings = append(*findings, model.Finding{
			Severity:  model.SeverityHigh,
			CheckName: "assets",
			Title:     fmt.Sprintf("Missing %s file", strings.ToLower(fileDesc)),
			Description: fmt.Sprintf(
				"Reference '%s' at %s:%d - file does not exist (directory not found).",
				relPath, refFile, refLine),
			File:       refFile,
			Line:       refLine,
			Suggestion: fmt.Sprintf("Check the file path and ensure the %s file exists.", strings.ToLower(fileDesc)),
		})
	}
}

func checkDirectoryCasing(root, relPath, refFile string, refLine int, findings *[]model.Finding) {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	current := root
	for _, part := range parts[:len(parts)-1] {
		entries, err := os.ReadDir(current)
		if err != nil {
			return
		}
		dirs := make(map[string]string)
		for _, e := range entries {
			if e.IsDir() {
				dirs[strings.ToLower(e.Name())] = e.Name()
			}
		}
		if actual, ok := dirs[strings.ToLower(part)]; ok && actual != part {
			*findings = append(*findings, model.Finding{
				Severity:  model.SeverityMedium,
				CheckName: "assets",
				Title:     "Directory case mismatch",
				Description: fmt.Sprintf(
					"Reference at %s:%d - path component '%s' should be '%s' (case mismatch). Works on Windows, fails on Linux/macOS.",
					refFile, refLine, part, actual),
				File:       refFile,
				Line:       refLine,
				Suggestion: fmt.Sprintf("Change '%s' to '%s' in the path.", part, actual),
			})
			current = filepath.Join(current, actual)
		} else {
			current = filepath.Join(current, part)
		}
	}
}
