package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	rootassets "github.com/doeshing/kittysh/assets"
	"github.com/doeshing/kittysh/internal/domain"
	"github.com/doeshing/kittysh/internal/pkg/filesystem"
	"github.com/doeshing/kittysh/internal/ports"
)

// FileLoader loads YAML configuration from ~/.config/kittysh/config.yaml
// (overridable via KITTYSH_CONFIG or XDG_CONFIG_HOME).
type FileLoader struct {
	overridePath string
	getenv       func(string) string
	executable   func() (string, error)
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path, getenv: os.Getenv, executable: os.Executable}
}

// Load implements ports.ConfigProvider. A missing file yields the defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return domain.Config{}, err
	}

	path := l.ResolvePath()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	return l.hydrateDefaults(cfg), nil
}

// ResolvePath returns the config file location in effect.
func (l *FileLoader) ResolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := l.getenv("KITTYSH_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	base := l.getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(filesystem.UserHomeDir(), ".config")
	}
	return filepath.Join(base, "kittysh", "config.yaml")
}

func defaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(rootassets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
}

func (l *FileLoader) hydrateDefaults(cfg domain.Config) domain.Config {
	cfg.ShellIntegration = strings.TrimSpace(cfg.ShellIntegration)
	if cfg.ShellIntegration == "" {
		cfg.ShellIntegration = domain.IntegrationEnabled
	}
	if strings.TrimSpace(cfg.Shell) == "" {
		cfg.Shell = domain.LoginShell
	}
	if cfg.IntegrationDir == "" {
		cfg.IntegrationDir = l.defaultIntegrationDir()
	} else {
		cfg.IntegrationDir = expandPath(cfg.IntegrationDir)
	}
	return cfg
}

func (l *FileLoader) defaultIntegrationDir() string {
	if dir := l.getenv("KITTY_INSTALLATION_DIR"); dir != "" {
		return filepath.Join(expandPath(dir), "shell-integration")
	}
	exe, err := l.executable()
	if err != nil {
		return ""
	}
	exe = filesystem.ResolvePath(exe)
	return filepath.Join(filepath.Dir(exe), "..", "lib", "kitty", "shell-integration")
}

func expandPath(path string) string {
	return filepath.Clean(filesystem.ExpandHome(path, filesystem.UserHomeDir()))
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
