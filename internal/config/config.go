/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal, so older binaries tolerate newer files.

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
}

type SDKConfig struct {
	// Paths lists Ren'Py SDK installation roots, preferred first.
	Paths []string `yaml:"paths"`
	// Autodetect allows falling back to well-known install locations
	// when Paths does not yield a usable SDK.
	Autodetect bool `yaml:"autodetect"`
}

type AnalysisConfig struct {
	// DisabledChecks lists check IDs that are skipped during a run.
	DisabledChecks []string `yaml:"disabled_checks"`
	// MinSeverity filters report output: critical|high|medium|low|style.
	MinSeverity string `yaml:"min_severity"`
	// LastProject remembers the most recently scanned project root.
	LastProject string `yaml:"last_project"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	SDK           SDKConfig      `yaml:"sdk"`
	Analysis      AnalysisConfig `yaml:"analysis"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		SDK:           SDKConfig{Autodetect: true},
		Analysis:      AnalysisConfig{MinSeverity: "style"},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvSDKPath        = "RPA_SDK_PATH"
	EnvTelemetryOptIn = "RPA_TELEMETRY_OPT_IN"
	EnvMinSeverity    = "RPA_MIN_SEVERITY"
	EnvDisabledChecks = "RPA_DISABLED_CHECKS"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "RPA_LOG_LEVEL"
	EnvLogFormat = "RPA_LOG_FORMAT"
	EnvLogSource = "RPA_LOG_SOURCE"
	EnvLogFile   = "RPA_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "RenpyAnalyzer")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "RenpyAnalyzer")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "renpy-analyzer")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. A missing or malformed file is not an error; the
// defaults win in that case.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML, creating the config directory if needed.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if len(src.SDK.Paths) > 0 {
		dst.SDK.Paths = append([]string(nil), src.SDK.Paths...)
	}
	dst.SDK.Autodetect = src.SDK.Autodetect
	if len(src.Analysis.DisabledChecks) > 0 {
		dst.Analysis.DisabledChecks = append([]string(nil), src.Analysis.DisabledChecks...)
	}
	if strings.TrimSpace(src.Analysis.MinSeverity) != "" {
		dst.Analysis.MinSeverity = strings.ToLower(strings.TrimSpace(src.Analysis.MinSeverity))
	}
	if strings.TrimSpace(src.Analysis.LastProject) != "" {
		dst.Analysis.LastProject = strings.TrimSpace(src.Analysis.LastProject)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvSDKPath)); v != "" {
		// Env-provided SDK path takes precedence over configured ones.
		cfg.SDK.Paths = append([]string{v}, cfg.SDK.Paths...)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = isTruthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMinSeverity)); v != "" {
		cfg.Analysis.MinSeverity = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDisabledChecks)); v != "" {
		var ids []string
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		cfg.Analysis.DisabledChecks = ids
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = isTruthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "sdk.paths":
		if os.Getenv(EnvSDKPath) != "" {
			return EnvSDKPath, true
		}
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "analysis.min_severity":
		if os.Getenv(EnvMinSeverity) != "" {
			return EnvMinSeverity, true
		}
	case "analysis.disabled_checks":
		if os.Getenv(EnvDisabledChecks) != "" {
			return EnvDisabledChecks, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}

// CheckDisabled reports whether a check ID is on the disabled list.
func (a AnalysisConfig) CheckDisabled(id string) bool {
	for _, d := range a.DisabledChecks {
		if strings.EqualFold(d, id) {
			return true
		}
	}
	return false
}
