// Package config loads the optional user-defaults file at
// ~/.djboot/config.yaml. Values here sit below explicit command-line
// flags and above built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/danewalkr/django-bootstrapper/internal/defs"
	"github.com/danewalkr/django-bootstrapper/internal/logging"
)

// Config holds per-user defaults. Pointer booleans distinguish "unset"
// from an explicit false.
type Config struct {
	PythonPath    string `yaml:"python_path"`
	DjangoVersion string `yaml:"django_version"`
	CreateVenv    *bool  `yaml:"create_venv"`
	CreateAssets  *bool  `yaml:"create_assets"`
	InitGit       *bool  `yaml:"init_git"`
}

// DefaultPath returns the config file location under the user's home
// directory (~/.djboot/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(defs.HomeDirName, defs.ConfigFileName)
	}
	return filepath.Join(home, defs.HomeDirName, defs.ConfigFileName)
}

// Load reads the config file at path. A missing file yields an empty
// Config; an unreadable or invalid file is skipped with a warning so a
// broken defaults file never blocks generation.
func Load(path string, logger *slog.Logger) *Config {
	if logger == nil {
		logger = logging.Discard()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg
	}
	if err != nil {
		logger.Warn("config file unreadable, using defaults", "path", path, "error", err)
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		logger.Warn("config file invalid, using defaults", "path", path, "error", err)
		return &Config{}
	}
	return cfg
}

// Save writes cfg to path, creating the parent directory as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
