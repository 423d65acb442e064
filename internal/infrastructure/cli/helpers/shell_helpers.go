package helpers

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/kittysh/internal/domain"
	"github.com/doeshing/kittysh/internal/ports"
)

const (
	shellAutoDetect = "auto"
	shellAll        = "all"
)

// DetermineTargetShells resolves which shells to operate on based on the flag value.
// Auto-detection uses the configured shell and fails when it is not supported.
func DetermineTargetShells(ctx context.Context, shellFlag string, cfg domain.Config, resolver ports.ShellResolver) ([]domain.ShellName, error) {
	switch normalized := strings.ToLower(strings.TrimSpace(shellFlag)); normalized {
	case "", shellAutoDetect:
		return autoDetectShell(ctx, cfg, resolver)
	case shellAll:
		return domain.SupportedShells(), nil
	default:
		return parseSingleShell(normalized)
	}
}

func autoDetectShell(ctx context.Context, cfg domain.Config, resolver ports.ShellResolver) ([]domain.ShellName, error) {
	argv, err := resolver.ResolveShell(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve shell: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty shell command line", domain.ErrUnsupportedShell)
	}
	shell := domain.ParseShellName(argv[0])
	if shell == domain.ShellUnknown {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedShell, argv[0])
	}
	return []domain.ShellName{shell}, nil
}

func parseSingleShell(value string) ([]domain.ShellName, error) {
	shell := domain.ParseShellName(value)
	if shell == domain.ShellUnknown {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedShell, value)
	}
	return []domain.ShellName{shell}, nil
}
