/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package sdk talks to an installed Ren'Py SDK. It locates the SDK's
// bundled Python, runs an embedded worker script under it to parse
// .rpy files with the engine's own parser, and converts the JSON
// results back into the analyzer's model types.
package sdk

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Wintersta7e/renpy-analyzer/internal/log"
	"github.com/Wintersta7e/renpy-analyzer/internal/model"
	"github.com/Wintersta7e/renpy-analyzer/internal/parser"
)

var logger = log.WithComponent("sdk")

// SubprocessTimeout bounds one worker invocation.
const SubprocessTimeout = 120 * time.Second

//go:embed bridge_worker.py
var bridgeWorker []byte

//go:embed response_schema.json
var responseSchema string

// FindPython locates the SDK's bundled Python binary.
func FindPython(sdkPath string) (string, error) {
	var candidates []string
	switch runtime.GOOS {
	case "linux":
		candidates = append(candidates, filepath.Join(sdkPath, "lib", "py3-linux-x86_64", "python"))
	case "windows":
		candidates = append(candidates, filepath.Join(sdkPath, "lib", "py3-windows-x86_64", "python.exe"))
	case "darwin":
		candidates = append(candidates, filepath.Join(sdkPath, "lib", "py3-mac-universal", "python"))
	}

	// Fallback: glob for any py3-* directory.
	if matches, err := filepath.Glob(filepath.Join(sdkPath, "lib", "py3-*", "python*")); err == nil {
		sort.Strings(matches)
		candidates = append(candidates, matches...)
	}

	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			logger.Debug("found SDK Python", "path", c)
			return c, nil
		}
	}
	return "", fmt.Errorf("could not find SDK Python binary in %s/lib/py3-*/; is this a valid Ren'Py SDK directory?", sdkPath)
}

// ValidatePath reports whether sdkPath looks like a usable SDK: the
// directory exists, has a renpy/ subdirectory, and a Python binary.
func ValidatePath(sdkPath string) bool {
	fi, err := os.Stat(sdkPath)
	if err != nil || !fi.IsDir() {
		return false
	}
	if ri, err := os.Stat(filepath.Join(sdkPath, "renpy")); err != nil || !ri.IsDir() {
		return false
	}
	_, err = FindPython(sdkPath)
	return err == nil
}

type workerRequest struct {
	SDKPath string   `json:"sdk_path"`
	GameDir string   `json:"game_dir"`
	Files   []string `json:"files"`
}

type workerError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

type workerResponse struct {
	Success bool                       `json:"success"`
	Version string                     `json:"version"`
	Results map[string]json.RawMessage `json:"results"`
	Errors  []workerError              `json:"errors"`
}

// ParseFiles parses .rpy files with the SDK's parser via the worker
// subprocess. It returns a map from absolute file path to the raw
// per-file JSON result; files the worker failed on are absent.
func ParseFiles(ctx context.Context, files []string, gameDir, sdkPath string) (map[string]json.RawMessage, error) {
	pythonBin, err := FindPython(sdkPath)
	if err != nil {
		return nil, err
	}

	workerPath, cleanup, err := materializeWorker()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	reqData, err := json.Marshal(workerRequest{SDKPath: sdkPath, GameDir: gameDir, Files: files})
	if err != nil {
		return nil, err
	}

	logger.Info("launching SDK parser", "python", pythonBin, "files", len(files))

	ctx, cancel := context.WithTimeout(ctx, SubprocessTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, pythonBin, workerPath)
	cmd.Stdin = bytes.NewReader(reqData)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	hideConsoleWindow(cmd)

	runErr := cmd.Run()

	for _, line := range strings.Split(strings.TrimSpace(stderr.String()), "\n") {
		if line != "" {
			logger.Warn("SDK stderr", "line", line)
		}
	}

	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("SDK parser timed out after %s; try the regex parser instead", SubprocessTimeout)
		}
		if _, ok := runErr.(*exec.ExitError); ok {
			excerpt := stderr.String()
			if len(excerpt) > 500 {
				excerpt = excerpt[:500]
			}
			return nil, fmt.Errorf("SDK parser exited abnormally: %w\n%s", runErr, excerpt)
		}
		return nil, fmt.Errorf("failed to launch SDK Python at %s: %w", pythonBin, runErr)
	}

	if err := validateResponse(stdout.Bytes()); err != nil {
		return nil, err
	}

	var resp workerResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON from SDK parser: %w", err)
	}
	if !resp.Success {
		var msgs []string
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("SDK parser failed: %s", strings.Join(msgs, "; "))
	}

	logger.Info("SDK parser returned results", "renpy_version", resp.Version, "files", len(resp.Results))
	for _, e := range resp.Errors {
		logger.Warn("SDK parse error", "file", e.File, "err", e.Message)
	}
	return resp.Results, nil
}

// materializeWorker writes the embedded worker script to a temp file.
// The SDK's Python needs an on-disk path to execute.
func materializeWorker() (string, func(), error) {
	f, err := os.CreateTemp("", "rpa-bridge-*.py")
	if err != nil {
		return "", nil, fmt.Errorf("create worker script: %w", err)
	}
	if _, err := f.Write(bridgeWorker); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("write worker script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}
	name := f.Name()
	return name, func() { _ = os.Remove(name) }, nil
}

// validateResponse checks the worker output against the bridge
// protocol schema before decoding, so a partially written or foreign
// payload fails with a protocol error rather than a decode panic
// further down.
func validateResponse(data []byte) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(responseSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("invalid JSON from SDK parser: %w", err)
	}
	if !res.Valid() {
		var msgs []string
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("SDK parser response violates protocol: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// fileResultJSON mirrors the per-file payload the worker emits.
type fileResultJSON struct {
	Labels []struct {
		Name string `json:"name"`
		Line int    `json:"line"`
	} `json:"labels"`
	Jumps []struct {
		Target string `json:"target"`
		Line   int    `json:"line"`
	} `json:"jumps"`
	Calls []struct {
		Target string `json:"target"`
		Line   int    `json:"line"`
	} `json:"calls"`
	DynamicJumps []struct {
		Expression string `json:"expression"`
		Line       int    `json:"line"`
	} `json:"dynamic_jumps"`
	Variables []struct {
		Name  string `json:"name"`
		Line  int    `json:"line"`
		Kind  string `json:"kind"`
		Value string `json:"value"`
	} `json:"variables"`
	Menus []struct {
		Line    int `json:"line"`
		Choices []struct {
			Text         string `json:"text"`
			Line         int    `json:"line"`
			ContentLines int    `json:"content_lines"`
			HasJump      bool   `json:"has_jump"`
			HasReturn    bool   `json:"has_return"`
			Condition    string `json:"condition"`
		} `json:"choices"`
	} `json:"menus"`
	Scenes []struct {
		ImageName  string `json:"image_name"`
		Line       int    `json:"line"`
		Transition string `json:"transition"`
	} `json:"scenes"`
	Shows []struct {
		ImageName string `json:"image_name"`
		Line      int    `json:"line"`
	} `json:"shows"`
	Images []struct {
		Name  string `json:"name"`
		Line  int    `json:"line"`
		Value string `json:"value"`
	} `json:"images"`
	Music []struct {
		Path   string `json:"path"`
		Line   int    `json:"line"`
		Action string `json:"action"`
	} `json:"music"`
	Characters []struct {
		Shorthand   string `json:"shorthand"`
		DisplayName string `json:"display_name"`
		Line        int    `json:"line"`
	} `json:"characters"`
	Dialogue []struct {
		Speaker string `json:"speaker"`
		Line    int    `json:"line"`
	} `json:"dialogue"`
	Conditions []struct {
		Expression string `json:"expression"`
		Line       int    `json:"line"`
	} `json:"conditions"`
}

// ConvertFileResult decodes one file's raw JSON result into the same
// shape the regex parser produces. Record File fields are left empty;
// the project loader rewrites them to scan-root relative paths.
func ConvertFileResult(raw json.RawMessage) *parser.FileResult {
	var data fileResultJSON
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("undecodable file result", "err", err)
		return &parser.FileResult{}
	}

	res := &parser.FileResult{}
	for _, d := range data.Labels {
		res.Labels = append(res.Labels, model.Label{Name: d.Name, Line: d.Line})
	}
	for _, d := range data.Jumps {
		res.Jumps = append(res.Jumps, model.Jump{Target: d.Target, Line: d.Line})
	}
	for _, d := range data.Calls {
		res.Calls = append(res.Calls, model.Call{Target: d.Target, Line: d.Line})
	}
	for _, d := range data.DynamicJumps {
		res.DynamicJumps = append(res.DynamicJumps, model.DynamicJump{Expression: d.Expression, Line: d.Line})
	}
	for _, d := range data.Variables {
		kind := d.Kind
		if kind == "" {
			kind = model.VarAssign
		}
		res.Variables = append(res.Variables, model.Variable{Name: d.Name, Line: d.Line, Kind: kind, Value: d.Value})
	}
	for _, m := range data.Menus {
		menu := model.Menu{Line: m.Line}
		for _, c := range m.Choices {
			menu.Choices = append(menu.Choices, model.MenuChoice{
				Text:         c.Text,
				Line:         c.Line,
				ContentLines: c.ContentLines,
				HasJump:      c.HasJump,
				HasReturn:    c.HasReturn,
				Condition:    c.Condition,
			})
		}
		res.Menus = append(res.Menus, menu)
	}
	for _, d := range data.Scenes {
		res.Scenes = append(res.Scenes, model.SceneRef{ImageName: d.ImageName, Line: d.Line, Transition: d.Transition})
	}
	for _, d := range data.Shows {
		res.Shows = append(res.Shows, model.ShowRef{ImageName: d.ImageName, Line: d.Line})
	}
	for _, d := range data.Images {
		res.Images = append(res.Images, model.ImageDef{Name: d.Name, Line: d.Line, Value: d.Value})
	}
	for _, d := range data.Music {
		action := d.Action
		if action == "" {
			action = "play"
		}
		res.Music = append(res.Music, model.MusicRef{Path: d.Path, Line: d.Line, Action: action})
	}
	for _, d := range data.Characters {
		res.Characters = append(res.Characters, model.CharacterDef{Shorthand: d.Shorthand, DisplayName: d.DisplayName, Line: d.Line})
	}
	for _, d := range data.Dialogue {
		res.Dialogue = append(res.Dialogue, model.DialogueLine{Speaker: d.Speaker, Line: d.Line})
	}
	for _, d := range data.Conditions {
		res.Conditions = append(res.Conditions, model.Condition{Expression: d.Expression, Line: d.Line})
	}
	return res
}
