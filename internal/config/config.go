package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Progression ProgressionConfig `toml:"progression"`
}

type StorageConfig struct {
	// Path overrides the default database location when set.
	Path string `toml:"path"`
}

type ProgressionConfig struct {
	XPCurveBase float64  `toml:"xp_curve_base"`
	LevelTitles []string `toml:"level_titles"`
}

func DefaultConfig() Config {
	return Config{
		Progression: ProgressionConfig{
			XPCurveBase: 100,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".lifecodex", "config.toml"), nil
}

// Load reads the config file at path, overlaying it on the defaults. An
// empty path means the default location; a missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if cfg.Progression.XPCurveBase <= 0 {
		cfg.Progression.XPCurveBase = 100
	}
	return cfg, nil
}
