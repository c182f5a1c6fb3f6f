package cli

// This file contains the runkit.toml config loader. Only keys present in the
// file override the zero defaults.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config carries cross-command defaults loaded from runkit.toml.
type Config struct {
	// HistoryDir overrides where run history is stored.
	HistoryDir string
	// Timeout is the default deadline for run, zero means none.
	Timeout time.Duration
	// Shell runs commands through 'sh -c' by default.
	Shell bool
	// Quiet disables output mirroring by default.
	Quiet bool
}

// runkit.toml key mapping to Config.
type fileConfig struct {
	HistoryDir string `toml:"history_dir"`
	Timeout    string `toml:"timeout"`
	Shell      bool   `toml:"shell"`
	Quiet      bool   `toml:"quiet"`
}

// LoadConfig reads the TOML config at path. When path is empty the first of
// ./runkit.toml and $HOME/.config/runkit/config.toml that exists is used; no
// file at all yields the zero config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		for _, candidate := range defaultConfigPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Config{}, nil
		}
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	var cfg Config
	if meta.IsDefined("history_dir") {
		cfg.HistoryDir = strings.TrimSpace(raw.HistoryDir)
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("config %s: parse timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if meta.IsDefined("shell") {
		cfg.Shell = raw.Shell
	}
	if meta.IsDefined("quiet") {
		cfg.Quiet = raw.Quiet
	}
	return cfg, nil
}

func defaultConfigPaths() []string {
	paths := []string{"runkit.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "runkit", "config.toml"))
	}
	return paths
}
