package shell

import (
	"context"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/doeshing/kittysh/internal/domain"
	"github.com/doeshing/kittysh/internal/ports"
)

// Resolver determines the shell command line from configuration, falling back
// to the login shell.
type Resolver struct {
	getenv    func(string) string
	parentExe func(context.Context) (string, error)
}

// NewResolver builds a resolver reading $SHELL and inspecting the parent process.
func NewResolver() *Resolver {
	return &Resolver{getenv: os.Getenv, parentExe: parentProcessExe}
}

// ResolveShell returns the argv of the configured shell. The login shell is
// taken from $SHELL, then the parent process executable, then /bin/sh.
func (r *Resolver) ResolveShell(ctx context.Context, cfg domain.Config) ([]string, error) {
	if configured := strings.TrimSpace(cfg.Shell); configured != "" && configured != domain.LoginShell {
		return splitCommandLine(configured), nil
	}
	return []string{r.loginShell(ctx)}, nil
}

// splitCommandLine applies shell quoting rules. A value that cannot be split
// is used whole as the executable path.
func splitCommandLine(cmdline string) []string {
	argv, err := shlex.Split(cmdline)
	if err != nil || len(argv) == 0 {
		return []string{cmdline}
	}
	return argv
}

func (r *Resolver) loginShell(ctx context.Context) string {
	if sh := r.getenv("SHELL"); sh != "" {
		return sh
	}
	if r.parentExe != nil {
		if exe, err := r.parentExe(ctx); err == nil && exe != "" {
			return exe
		}
	}
	return domain.FallbackShell
}

func parentProcessExe(ctx context.Context) (string, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getppid()))
	if err != nil {
		return "", err
	}
	if exe, err := proc.ExeWithContext(ctx); err == nil && exe != "" {
		return exe, nil
	}
	return proc.NameWithContext(ctx)
}

var _ ports.ShellResolver = (*Resolver)(nil)
