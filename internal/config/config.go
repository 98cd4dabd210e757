// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/documind/documind-tui/internal/util"
)

// Config is the client configuration, stored as TOML at
// ~/.documind/config.toml.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig points the client at a DocuMind server.
type ServerConfig struct {
	// URL of the DocuMind server.
	URL string `toml:"url"`

	// TimeoutSecs for API requests. Answer generation is slow, so this
	// defaults well above typical HTTP timeouts.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is "dark" or "light". Settings saved in-app override this
	// at runtime; this is the starting value.
	Theme string `toml:"theme"`

	// SidebarWidth in columns.
	SidebarWidth int `toml:"sidebar_width"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	// File receives log output. Empty disables file logging; the TUI
	// otherwise swallows log writes to keep the screen intact.
	File string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://127.0.0.1:5000",
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			Theme:        "dark",
			SidebarWidth: 32,
		},
		Log: LogConfig{
			File: "",
		},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := util.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, fills defaults for anything unset, applies
// environment overrides and validates. A missing file yields defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit file location.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}
	fillDefaults(cfg)
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults replaces zero values with defaults, so a partial file is
// merged over the default configuration.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.URL == "" {
		cfg.Server.URL = def.Server.URL
	}
	if cfg.Server.TimeoutSecs == 0 {
		cfg.Server.TimeoutSecs = def.Server.TimeoutSecs
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = def.UI.Theme
	}
	if cfg.UI.SidebarWidth == 0 {
		cfg.UI.SidebarWidth = def.UI.SidebarWidth
	}
}

// ApplyEnvOverrides applies DOCUMIND_* environment variables over the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("DOCUMIND_SERVER_URL"); u != "" {
		c.Server.URL = u
	}
	if theme := os.Getenv("DOCUMIND_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if file := os.Getenv("DOCUMIND_LOG_FILE"); file != "" {
		c.Log.File = file
	}
}

// ValidationError describes one invalid field.
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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if parsed, err := url.Parse(c.Server.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "server.url",
			Message: fmt.Sprintf("invalid URL %q", c.Server.URL),
		})
	}
	if c.Server.TimeoutSecs < 1 {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: "must be at least 1",
		})
	}
	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme %q, must be dark or light", c.UI.Theme),
		})
	}
	if c.UI.SidebarWidth < 16 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_width",
			Message: "must be at least 16",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// Save writes the configuration to its default location.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration as TOML, atomically.
func SaveToPath(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# DocuMind terminal client configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(sb.String()), 0o600)
}
