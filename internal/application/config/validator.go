package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/doeshing/kittysh/internal/domain"
)

// knownIntegrationFlags lists every flag the terminal understands in
// shell_integration; only "disabled" and "no-rc" affect setup.
var knownIntegrationFlags = map[string]bool{
	domain.IntegrationEnabled:  true,
	domain.IntegrationDisabled: true,
	domain.IntegrationNoRC:     true,
	"no-cursor":                true,
	"no-title":                 true,
	"no-prompt-mark":           true,
	"no-complete":              true,
	"no-cwd":                   true,
	"no-sudo":                  true,
}

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateIntegrationFlags(cfg.IntegrationFlags()); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Shell) == "" {
		return errors.New("shell must not be empty (use \".\" for the login shell)")
	}
	if cfg.IntegrationDir != "" && !filepath.IsAbs(cfg.IntegrationDir) {
		return fmt.Errorf("integration_dir must be an absolute path, got %s", cfg.IntegrationDir)
	}
	return nil
}

func validateIntegrationFlags(flags []string) error {
	if len(flags) == 0 {
		return errors.New("shell_integration must not be empty")
	}
	for _, flag := range flags {
		if !knownIntegrationFlags[flag] {
			return fmt.Errorf("shell_integration: unknown flag %q", flag)
		}
		if flag == domain.IntegrationDisabled && len(flags) > 1 {
			return errors.New("shell_integration: disabled cannot be combined with other flags")
		}
	}
	return nil
}
