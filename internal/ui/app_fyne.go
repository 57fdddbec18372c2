//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/Wintersta7e/renpy-analyzer/internal/analyzer"
	"github.com/Wintersta7e/renpy-analyzer/internal/config"
	"github.com/Wintersta7e/renpy-analyzer/internal/crash"
	"github.com/Wintersta7e/renpy-analyzer/internal/history"
	applog "github.com/Wintersta7e/renpy-analyzer/internal/log"
	"github.com/Wintersta7e/renpy-analyzer/internal/model"
	"github.com/Wintersta7e/renpy-analyzer/internal/report"
	"github.com/Wintersta7e/renpy-analyzer/internal/sdk"
	"github.com/Wintersta7e/renpy-analyzer/internal/telemetry"
	"github.com/Wintersta7e/renpy-analyzer/internal/version"
)

// Run starts the Fyne-based desktop UI. Pass an optional project
// directory to analyze immediately.
func Run(projectDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	defer crash.Recover()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	telemetry.NewDefault(telemetry.FromEnv())

	fyneApp := app.NewWithID("renpy-analyzer")
	w := fyneApp.NewWindow("Ren'Py Analyzer")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1100)
	winH := prefs.IntWithFallback("window.height", 750)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	// Run state. Mutated only on the Fyne thread; the analysis
	// goroutine hands results back via fyne.Do.
	var (
		allFindings  []model.Finding
		shown        []model.Finding
		running      bool
		cancelRun    context.CancelFunc
		lastProject  string
		lastDuration time.Duration
	)

	status := widget.NewLabel("Ready")
	progress := widget.NewProgressBar()
	progress.Hide()

	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder("Path to a Ren'Py project or its game/ directory")
	if projectDir != "" {
		pathEntry.SetText(projectDir)
	} else if cfg.Analysis.LastProject != "" {
		pathEntry.SetText(cfg.Analysis.LastProject)
	}

	detail := widget.NewLabel("")
	detail.Wrapping = fyne.TextWrapWord

	table := widget.NewTable(
		func() (int, int) { return len(shown), 4 },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			if id.Row < 0 || id.Row >= len(shown) {
				lbl.SetText("")
				return
			}
			f := shown[id.Row]
			lbl.TextStyle = fyne.TextStyle{Bold: id.Col == 0 && f.Severity == model.SeverityCritical}
			lbl.SetText(findingCell(f, id.Col))
		},
	)
	table.SetColumnWidth(0, 90)
	table.SetColumnWidth(1, 420)
	table.SetColumnWidth(2, 260)
	table.SetColumnWidth(3, 110)
	table.OnSelected = func(id widget.TableCellID) {
		if id.Row >= 0 && id.Row < len(shown) {
			detail.SetText(findingDetail(shown[id.Row]))
		}
	}

	filterSelect := widget.NewSelect(severityFilterOptions(), nil)
	filterSelect.SetSelected(severityFilterAll)
	applyFilter := func() {
		shown = filterFindings(allFindings, filterSelect.Selected)
		detail.SetText("")
		table.UnselectAll()
		table.Refresh()
	}
	filterSelect.OnChanged = func(string) { applyFilter() }

	var analyzeBtn *widget.Button
	var exportBtn *widget.Button

	finishRun := func(findings []model.Finding, runErr error, started time.Time) {
		running = false
		cancelRun = nil
		progress.Hide()
		analyzeBtn.SetText("Analyze")
		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				status.SetText("Analysis cancelled.")
			} else {
				status.SetText("Analysis failed: " + runErr.Error())
				dialog.ShowError(runErr, w)
			}
			return
		}
		allFindings = findings
		applyFilter()
		lastDuration = time.Since(started)
		status.SetText(summaryLine(findings))
		exportBtn.Enable()

		bySev := make(map[string]int)
		for _, f := range findings {
			bySev[f.Severity.String()]++
		}
		telemetry.AnalysisCompleted(lastDuration, len(findings), bySev)

		go func(project string, startedAt time.Time, duration time.Duration, fs []model.Finding) {
			path, err := history.DefaultPath()
			if err != nil {
				return
			}
			store, err := history.Open(path)
			if err != nil {
				l.Warn("history open failed", slog.Any("err", err))
				return
			}
			defer func() { _ = store.Close() }()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if _, err := store.RecordRun(ctx, project, startedAt, duration, fs); err != nil {
				l.Warn("history record failed", slog.Any("err", err))
			}
		}(lastProject, started, lastDuration, findings)
	}

	startRun := func() {
		projectPath := pathEntry.Text
		if projectPath == "" {
			dialog.ShowInformation("No project", "Choose a project directory first.", w)
			return
		}
		running = true
		lastProject = projectPath
		allFindings = nil
		applyFilter()
		exportBtn.Disable()
		progress.SetValue(0)
		progress.Show()
		status.SetText("Starting analysis...")
		analyzeBtn.SetText("Cancel")

		cfg.Analysis.LastProject = projectPath
		if err := config.Save(cfg); err != nil {
			l.Warn("config save failed", slog.Any("err", err))
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancelRun = cancel
		started := time.Now()
		sdkPath := sdk.Resolve(projectPath, "", cfg.SDK.Paths, cfg.SDK.Autodetect)

		go func() {
			findings, err := analyzer.Run(ctx, analyzer.Options{
				ProjectPath: projectPath,
				Disabled:    cfg.Analysis.DisabledChecks,
				SDKPath:     sdkPath,
				OnProgress: func(message string, fraction float64) {
					fyne.Do(func() {
						status.SetText(message)
						progress.SetValue(fraction)
					})
				},
			})
			fyne.Do(func() { finishRun(findings, err, started) })
		}()
	}

	analyzeBtn = widget.NewButton("Analyze", func() {
		if running {
			if cancelRun != nil {
				cancelRun()
			}
			return
		}
		startRun()
	})

	browseBtn := widget.NewButton("Browse...", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			pathEntry.SetText(uri.Path())
		}, w)
	})

	exportBtn = widget.NewButton("Export PDF...", func() {
		if len(allFindings) == 0 {
			dialog.ShowInformation("Nothing to export", "Run an analysis first.", w)
			return
		}
		save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			outPath := writer.URI().Path()
			_ = writer.Close()
			findings := allFindings
			project := lastProject
			go func() {
				err := report.WritePDF(findings, outPath, filepath.Base(project), project)
				fyne.Do(func() {
					if err != nil {
						dialog.ShowError(err, w)
						return
					}
					status.SetText("PDF report saved to " + outPath)
				})
			}()
		}, w)
		save.SetFileName(filepath.Base(lastProject) + "-report.pdf")
		save.SetFilter(fstorage.NewExtensionFileFilter([]string{".pdf"}))
		save.Show()
	})
	exportBtn.Disable()

	topBar := container.NewBorder(nil, nil,
		widget.NewLabel("Project:"),
		container.NewHBox(browseBtn, analyzeBtn, exportBtn, filterSelect),
		pathEntry,
	)
	bottom := container.NewVBox(progress, status)
	content := container.NewBorder(topBar, bottom, nil, nil,
		container.NewVSplit(table, container.NewVScroll(detail)),
	)
	w.SetContent(content)

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		if cancelRun != nil {
			cancelRun()
		}
	})

	if projectDir != "" {
		startRun()
	}

	w.ShowAndRun()
	return nil
}
