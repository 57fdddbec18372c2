/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history persists analysis runs to a per-user SQLite database
// so past results can be listed and compared. The store is embedded and
// single-writer; it lives next to the user config file.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Wintersta7e/renpy-analyzer/internal/config"
	applog "github.com/Wintersta7e/renpy-analyzer/internal/log"
	"github.com/Wintersta7e/renpy-analyzer/internal/model"
	"github.com/Wintersta7e/renpy-analyzer/internal/version"
	"log/slog"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// FileName is the database file placed in the user config directory.
	FileName = "history.sqlite"

	// schemaVersion tracks the history schema. Bump it together with a
	// migration case in runMigrations.
	schemaVersion = 1
)

// Run summarizes one recorded analysis.
type Run struct {
	ID           int64
	ProjectPath  string
	StartedAt    time.Time
	Duration     time.Duration
	FindingCount int
	BySeverity   map[model.Severity]int
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user history database path, next to the
// config file.
func DefaultPath() (string, error) {
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), FileName), nil
}

// Open opens (creating if needed) the history database at path, enables
// WAL mode, and ensures the meta/version tables and run schema exist.
func Open(path string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("history"), "open").With(
		slog.String("path", path),
	)
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		l.Error("create history dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureRunSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure run schema failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("history ready")
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func ensureRunSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			project_path  TEXT NOT NULL,
			started_at    TEXT NOT NULL,
			duration_ms   INTEGER NOT NULL,
			finding_count INTEGER NOT NULL,
			critical      INTEGER NOT NULL DEFAULT 0,
			high          INTEGER NOT NULL DEFAULT 0,
			medium        INTEGER NOT NULL DEFAULT 0,
			low           INTEGER NOT NULL DEFAULT 0,
			style         INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS findings (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			severity    TEXT NOT NULL,
			check_name  TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			file        TEXT NOT NULL DEFAULT '',
			line        INTEGER NOT NULL DEFAULT 0,
			suggestion  TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create run schema: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema migrations up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur >= schemaVersion {
		// Never downgrade.
		return nil
	}
	for cur < schemaVersion {
		next := cur + 1
		// No incremental migrations yet; schema 1 is the baseline.
		if _, err := db.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("bump schema to %d: %w", next, err)
		}
		cur = next
	}
	return nil
}

// RecordRun stores one analysis run and its findings. It returns the
// new run's ID.
func (s *Store) RecordRun(ctx context.Context, projectPath string, startedAt time.Time, duration time.Duration, findings []model.Finding) (int64, error) {
	counts := make(map[model.Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin record run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (project_path, started_at, duration_ms, finding_count, critical, high, medium, low, style)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		projectPath,
		startedAt.UTC().Format(time.RFC3339),
		duration.Milliseconds(),
		len(findings),
		counts[model.SeverityCritical],
		counts[model.SeverityHigh],
		counts[model.SeverityMedium],
		counts[model.SeverityLow],
		counts[model.SeverityStyle],
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO findings (run_id, severity, check_name, title, description, file, line, suggestion)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare findings insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()
	for _, f := range findings {
		if _, err := stmt.ExecContext(ctx, runID, f.Severity.String(), f.CheckName, f.Title, f.Description, f.File, f.Line, f.Suggestion); err != nil {
			return 0, fmt.Errorf("insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit record run: %w", err)
	}
	return runID, nil
}

// Runs lists recorded runs, newest first. limit <= 0 means all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, project_path, started_at, duration_ms, finding_count, critical, high, medium, low, style
	      FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var (
			r          Run
			started    string
			durationMS int64
			crit, high, med, low, style int
		)
		if err := rows.Scan(&r.ID, &r.ProjectPath, &started, &durationMS, &r.FindingCount, &crit, &high, &med, &low, &style); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.BySeverity = map[model.Severity]int{
			model.SeverityCritical: crit,
			model.SeverityHigh:     high,
			model.SeverityMedium:   med,
			model.SeverityLow:      low,
			model.SeverityStyle:    style,
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// Findings returns the findings stored for a run, in insertion order.
func (s *Store) Findings(ctx context.Context, runID int64) ([]model.Finding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT severity, check_name, title, description, file, line, suggestion
		 FROM findings WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Finding
	for rows.Next() {
		var (
			f   model.Finding
			sev string
		)
		if err := rows.Scan(&sev, &f.CheckName, &f.Title, &f.Description, &f.File, &f.Line, &f.Suggestion); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		if s, ok := model.ParseSeverity(sev); ok {
			f.Severity = s
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}
	return out, nil
}

// Prune deletes runs older than keep, returning how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, errors.New("keep must be positive")
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune count: %w", err)
	}
	return n, nil
}
