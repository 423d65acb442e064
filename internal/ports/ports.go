// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The integration dispatcher depends only on these contracts; the filesystem
// installer, the YAML config loader, the shell resolver and the logger are
// adapters living in the infrastructure layer.
package ports

import (
	"context"

	"github.com/doeshing/kittysh/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.config/kittysh/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ShellResolver returns the command line of the shell the terminal will run.
type ShellResolver interface {
	ResolveShell(context.Context, domain.Config) ([]string, error)
}

// ShellIntegrator installs and inspects shell integration (bash, zsh, fish).
// Setup never catches errors itself; callers decide whether to suppress them.
type ShellIntegrator interface {
	Setup(shell domain.ShellName, cfg domain.Config) (domain.ShellInstallResult, error)
	Uninstall(shell domain.ShellName, cfg domain.Config) (domain.ShellInstallResult, error)
	Status(shell domain.ShellName, cfg domain.Config) domain.ShellStatus
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
