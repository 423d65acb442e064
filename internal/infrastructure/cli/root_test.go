package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(Options{})
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KITTYSH_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("ZDOTDIR", "")
	t.Setenv("KITTY_INSTALLATION_DIR", filepath.Join(home, "kitty"))
	return home
}

func TestSetupCommandInstallsBash(t *testing.T) {
	home := isolate(t)
	t.Setenv("SHELL", "/bin/bash")
	integrationDir := filepath.Join(home, "kitty", "shell-integration")

	out := runRoot(t, "setup")
	assert.Contains(t, out, "Shell integration ready for bash")

	data, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"$HOME/kitty/shell-integration/kitty.bash"`)
	assert.NotContains(t, string(data), integrationDir)

	out = runRoot(t, "uninstall", "--shell", "bash")
	assert.Contains(t, out, "Removed integration for bash")
}

func TestSetupCommandSkipsWhenDisabled(t *testing.T) {
	home := isolate(t)
	t.Setenv("SHELL", "/bin/zsh")
	cfgPath := filepath.Join(home, "kittysh.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("shell_integration: disabled\n"), 0o644))

	out := runRoot(t, "--config", cfgPath, "setup")
	assert.Contains(t, out, "skipped")

	_, err := os.Stat(filepath.Join(home, ".zshrc"))
	assert.True(t, os.IsNotExist(err))
}

func TestSetupCommandFailureDoesNotReturnError(t *testing.T) {
	home := isolate(t)
	t.Setenv("SHELL", "/bin/zsh")
	t.Setenv("ZDOTDIR", filepath.Join(home, "missing"))

	out := runRoot(t, "setup")
	assert.Contains(t, out, "failed")
}

func TestDetectCommand(t *testing.T) {
	isolate(t)
	t.Setenv("SHELL", "/usr/bin/fish")

	out := runRoot(t, "detect")
	assert.Equal(t, "/usr/bin/fish\tfish\n", out)
}
