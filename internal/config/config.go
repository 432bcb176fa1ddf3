// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/reqlog/internal/export"
	"github.com/jeranaias/reqlog/internal/logging"
	"github.com/jeranaias/reqlog/internal/preview"
	"github.com/jeranaias/reqlog/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete reqlog configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Export  ExportConfig  `toml:"export" json:"export"`
	Log     LogConfig     `toml:"log" json:"log"`
	Preview PreviewConfig `toml:"preview" json:"preview"`
}

// ExportConfig controls the export command.
type ExportConfig struct {
	// Format is the default document format: text, markdown or html.
	Format string `toml:"format" json:"format"`

	// OutputDir is where exported files are written.
	OutputDir string `toml:"output_dir" json:"output_dir"`

	// OpenAfterExport opens each written file in the default application.
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
}

// PreviewConfig controls the terminal Markdown preview.
type PreviewConfig struct {
	Style string `toml:"style" json:"style"`
	Width int    `toml:"width" json:"width"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// CurrentVersion is the config file version written by Save.
const CurrentVersion = "1"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Export: ExportConfig{
			Format:          export.FormatHTML.String(),
			OutputDir:       ".",
			OpenAfterExport: false,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: logging.TextFormat,
		},
		Preview: PreviewConfig{
			Style: preview.StyleAuto,
			Width: preview.DefaultWidth,
		},
	}
}

// ExportOptions returns the file export options for the config.
func (c *Config) ExportOptions() *export.Options {
	return &export.Options{
		OutputDir:       c.Export.OutputDir,
		OpenAfterExport: c.Export.OpenAfterExport,
	}
}

// ExportFormat returns the configured export format.
func (c *Config) ExportFormat() (export.Format, error) {
	return export.ParseFormat(c.Export.Format)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the reqlog configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".reqlog"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.reqlog. TOML is tried first, then JSON,
// then the built-in defaults. Environment overrides are applied last.
//
// A config file that fails to decode is reported through the returned error
// together with a usable default config.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}

		cfg := Default()
		if err := loadFile(cfg, path); err != nil {
			loadErr = err
			break
		}
		if err := finish(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := Default()
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
		return nil
	}
	if err := LoadTOML(cfg, path); err != nil {
		return fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	return nil
}

// finish applies env overrides and defaults, then validates.
func finish(cfg *Config) error {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// SetDefaults fills in any missing values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	// Export
	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = defaults.Export.OutputDir
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}

	// Preview
	if c.Preview.Style == "" {
		c.Preview.Style = defaults.Preview.Style
	}
	if c.Preview.Width == 0 {
		c.Preview.Width = defaults.Preview.Width
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# reqlog configuration file\n")
	buf.WriteString("# Generated by reqlog - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Preview width bounds.
const (
	MinPreviewWidth = 20
	MaxPreviewWidth = 1000
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("must be one of %v, got %q", export.Formats(), c.Export.Format),
		})
	}
	if strings.ContainsRune(c.Export.OutputDir, 0) {
		errs = append(errs, ValidationError{
			Field:   "export.output_dir",
			Message: "must not contain NUL bytes",
		})
	}

	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of %v, got %q", logging.Levels, c.Log.Level),
		})
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be one of %v, got %q", logging.Formats, c.Log.Format),
		})
	}

	if !preview.ValidStyle(c.Preview.Style) {
		errs = append(errs, ValidationError{
			Field:   "preview.style",
			Message: fmt.Sprintf("must be one of %v, got %q", preview.Styles, c.Preview.Style),
		})
	}
	if c.Preview.Width < MinPreviewWidth || c.Preview.Width > MaxPreviewWidth {
		errs = append(errs, ValidationError{
			Field:   "preview.width",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinPreviewWidth, MaxPreviewWidth, c.Preview.Width),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - REQLOG_FORMAT: overrides export.format
//   - REQLOG_OUTPUT_DIR: overrides export.output_dir
//   - REQLOG_OPEN: set to "1" or "true" to open files after export
//   - REQLOG_LOG_LEVEL: overrides log.level
//   - REQLOG_LOG_FORMAT: overrides log.format
//   - REQLOG_PREVIEW_STYLE: overrides preview.style
func (c *Config) ApplyEnvOverrides() {
	if format := os.Getenv("REQLOG_FORMAT"); format != "" {
		c.Export.Format = format
	}
	if dir := os.Getenv("REQLOG_OUTPUT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}
	if open := os.Getenv("REQLOG_OPEN"); open != "" {
		c.Export.OpenAfterExport = open == "1" || strings.EqualFold(open, "true")
	}
	if level := os.Getenv("REQLOG_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv("REQLOG_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}
	if style := os.Getenv("REQLOG_PREVIEW_STYLE"); style != "" {
		c.Preview.Style = style
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			slog.Warn("using default config", "error", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. A later Global call
// returns cfg without loading from disk. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}
