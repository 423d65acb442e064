package domain

import (
	"errors"
	"path/filepath"
	"strings"
)

// ShellName enumerates supported shells.
type ShellName string

const (
	ShellUnknown ShellName = "unknown"
	ShellZsh     ShellName = "zsh"
	ShellBash    ShellName = "bash"
	ShellFish    ShellName = "fish"
)

// ErrUnsupportedShell is returned when an operation targets a shell outside the registry.
var ErrUnsupportedShell = errors.New("unsupported shell")

// SupportedShells lists every shell with an integration routine.
func SupportedShells() []ShellName {
	return []ShellName{ShellZsh, ShellBash, ShellFish}
}

// IsSupported reports whether the shell is part of the registry.
func (s ShellName) IsSupported() bool {
	switch s {
	case ShellZsh, ShellBash, ShellFish:
		return true
	default:
		return false
	}
}

// ParseShellName maps an executable path or bare name onto the registry using
// the lowercase base name up to the first dot ("/usr/local/bin/Bash.exe" -> bash).
func ParseShellName(path string) ShellName {
	name := filepath.Base(strings.TrimSpace(path))
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[:idx]
	}
	candidate := ShellName(strings.ToLower(name))
	if candidate.IsSupported() {
		return candidate
	}
	return ShellUnknown
}

// ShellInstallResult describes setup/uninstall outcomes for one shell.
type ShellInstallResult struct {
	Shell      ShellName
	ScriptPath string
	RCFile     string
	RCUpdated  bool
	Linked     bool
	Completion bool
}

// ShellStatus captures current integration state.
type ShellStatus struct {
	Shell          ShellName
	ScriptPath     string
	RCFile         string
	ScriptExists   bool
	BlockPresent   bool
	CompletionFile string
	Error          string
}
