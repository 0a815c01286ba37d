// Package config loads runtime settings: an optional eradicate.yaml plus
// ERADICATE_* environment overrides. Game content lives in Lua and is
// handled by the loader, not here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the settings file looked up in the config directory.
const FileName = "eradicate.yaml"

// UI modes.
const (
	UIAuto  = "auto"
	UIPlain = "plain"
	UITUI   = "tui"
)

// Settings holds the runtime settings.
type Settings struct {
	LogLevel  string `mapstructure:"logLevel"`
	Seed      int64  `mapstructure:"seed"` // 0 means seed from the clock
	ReportDir string `mapstructure:"reportDir"`
	UI        string `mapstructure:"ui"`
}

// Load reads settings from dir (the current directory if empty) and the
// environment. A missing settings file is not an error.
func Load(dir string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("logLevel", "warn")
	v.SetDefault("seed", 0)
	v.SetDefault("reportDir", "~/.eradicate/reports")
	v.SetDefault("ui", UIAuto)

	if dir == "" {
		dir = "."
	}
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("ERADICATE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	s.UI = strings.ToLower(s.UI)
	switch s.UI {
	case UIAuto, UIPlain, UITUI:
	default:
		return nil, fmt.Errorf("invalid ui %q (want auto, plain or tui)", s.UI)
	}

	dirPath, err := expandHome(s.ReportDir)
	if err != nil {
		return nil, err
	}
	s.ReportDir = dirPath

	return &s, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving report dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
