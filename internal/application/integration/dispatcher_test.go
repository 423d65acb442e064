package integration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/kittysh/internal/domain"
	"github.com/doeshing/kittysh/internal/infrastructure/shell"
	"github.com/doeshing/kittysh/internal/pkg/logger"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubResolver struct {
	argv []string
	err  error
}

func (s stubResolver) ResolveShell(context.Context, domain.Config) ([]string, error) {
	return s.argv, s.err
}

type stubIntegrator struct {
	calls   []domain.ShellName
	err     error
	panicky bool
}

func (s *stubIntegrator) Setup(sh domain.ShellName, _ domain.Config) (domain.ShellInstallResult, error) {
	s.calls = append(s.calls, sh)
	if s.panicky {
		panic("nil map")
	}
	return domain.ShellInstallResult{Shell: sh}, s.err
}

func (s *stubIntegrator) Uninstall(sh domain.ShellName, _ domain.Config) (domain.ShellInstallResult, error) {
	return domain.ShellInstallResult{Shell: sh}, nil
}

func (s *stubIntegrator) Status(sh domain.ShellName, _ domain.Config) domain.ShellStatus {
	return domain.ShellStatus{Shell: sh}
}

func enabledConfig() domain.Config {
	return domain.Config{ShellIntegration: domain.IntegrationEnabled, Shell: domain.LoginShell, IntegrationDir: "/opt/kitty/shell-integration"}
}

func newDispatcher(cfg domain.Config, argv []string, integrator *stubIntegrator, out io.Writer) *Dispatcher {
	return &Dispatcher{
		ConfigProvider:  stubConfigProvider{cfg: cfg},
		ShellResolver:   stubResolver{argv: argv},
		ShellIntegrator: integrator,
		Logger:          logger.New(false, out),
	}
}

func TestDispatcherRunsMatchingShell(t *testing.T) {
	tests := []struct {
		path string
		want domain.ShellName
	}{
		{path: "/bin/bash", want: domain.ShellBash},
		{path: "/usr/local/bin/ZSH", want: domain.ShellZsh},
		{path: "/opt/homebrew/bin/fish.exe", want: domain.ShellFish},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			integrator := &stubIntegrator{}
			d := newDispatcher(enabledConfig(), []string{tt.path, "--login"}, integrator, io.Discard)

			outcome := d.Run(context.Background())
			assert.True(t, outcome.Succeeded())
			assert.Equal(t, tt.want, outcome.Shell)
			assert.Equal(t, []domain.ShellName{tt.want}, integrator.calls)
		})
	}
}

func TestDispatcherRunsOnce(t *testing.T) {
	integrator := &stubIntegrator{err: errors.New("boom")}
	d := newDispatcher(enabledConfig(), []string{"/bin/zsh"}, integrator, io.Discard)

	first := d.Run(context.Background())
	second := d.Run(context.Background())

	assert.Error(t, first.Err)
	assert.Equal(t, domain.SkipAlreadyRan, second.Skipped)
	assert.NoError(t, second.Err)
	assert.Len(t, integrator.calls, 1)
}

func TestDispatcherSkipsDisabledModes(t *testing.T) {
	for _, mode := range []string{"disabled", "enabled no-rc", "no-rc no-cursor"} {
		t.Run(mode, func(t *testing.T) {
			cfg := enabledConfig()
			cfg.ShellIntegration = mode
			integrator := &stubIntegrator{}

			outcome := newDispatcher(cfg, []string{"/bin/bash"}, integrator, io.Discard).Run(context.Background())
			assert.Equal(t, domain.SkipDisabled, outcome.Skipped)
			assert.Empty(t, integrator.calls)
		})
	}
}

func TestDispatcherSkipsUnknownShell(t *testing.T) {
	for _, argv := range [][]string{{"/bin/tcsh"}, {"/usr/bin/nu"}, nil} {
		integrator := &stubIntegrator{}
		outcome := newDispatcher(enabledConfig(), argv, integrator, io.Discard).Run(context.Background())
		assert.Equal(t, domain.SkipUnknownShell, outcome.Skipped)
		assert.NoError(t, outcome.Err)
		assert.Empty(t, integrator.calls)
	}
}

func TestDispatcherLogsAndSuppressesFailure(t *testing.T) {
	var buf bytes.Buffer
	integrator := &stubIntegrator{err: os.ErrPermission}
	d := newDispatcher(enabledConfig(), []string{"/bin/bash"}, integrator, &buf)

	outcome := d.Run(context.Background())
	assert.ErrorIs(t, outcome.Err, os.ErrPermission)
	assert.False(t, outcome.Succeeded())
	assert.Contains(t, buf.String(), "Failed to setup shell integration for: bash")
	assert.Contains(t, buf.String(), "trace=")
}

func TestDispatcherRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	integrator := &stubIntegrator{panicky: true}
	d := newDispatcher(enabledConfig(), []string{"/bin/fish"}, integrator, &buf)

	var outcome domain.SetupOutcome
	require.NotPanics(t, func() { outcome = d.Run(context.Background()) })
	require.Error(t, outcome.Err)
	assert.Contains(t, outcome.Err.Error(), "nil map")
	assert.Contains(t, buf.String(), "Failed to setup shell integration for: fish")
}

func TestDispatcherConfigFailureIsSuppressed(t *testing.T) {
	var buf bytes.Buffer
	integrator := &stubIntegrator{}
	d := &Dispatcher{
		ConfigProvider:  stubConfigProvider{err: errors.New("bad yaml")},
		ShellResolver:   stubResolver{argv: []string{"/bin/bash"}},
		ShellIntegrator: integrator,
		Logger:          logger.New(false, &buf),
	}

	outcome := d.Run(context.Background())
	assert.Equal(t, domain.SkipConfigMissing, outcome.Skipped)
	assert.Empty(t, integrator.calls)
	assert.Contains(t, buf.String(), "bad yaml")
}

func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return readErr
			}
			files[path] = string(data)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestDispatcherNoMutationWhenSkipped(t *testing.T) {
	tests := []struct {
		name string
		mode string
		argv []string
	}{
		{name: "unknown shell", mode: domain.IntegrationEnabled, argv: []string{"/bin/ksh"}},
		{name: "disabled", mode: domain.IntegrationDisabled, argv: []string{"/bin/bash"}},
		{name: "no-rc", mode: "enabled no-rc", argv: []string{"/bin/zsh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(home, ".bashrc"), []byte("echo hi\n"), 0o644))
			before := snapshotTree(t, home)

			cfg := enabledConfig()
			cfg.ShellIntegration = tt.mode
			d := &Dispatcher{
				ConfigProvider:  stubConfigProvider{cfg: cfg},
				ShellResolver:   stubResolver{argv: tt.argv},
				ShellIntegrator: shell.NewInstallerWithEnv(logger.New(false, io.Discard), home, func(string) string { return "" }),
				Logger:          logger.New(false, io.Discard),
			}
			outcome := d.Run(context.Background())
			assert.NotEqual(t, domain.SkipNone, outcome.Skipped)
			assert.Equal(t, before, snapshotTree(t, home))
		})
	}
}

func TestDispatcherEndToEndBash(t *testing.T) {
	home := t.TempDir()
	rcPath := filepath.Join(home, ".bashrc")
	require.NoError(t, os.WriteFile(rcPath, []byte("echo hi\n# BEGIN_KITTY_SHELL_INTEGRATION\nold\n# END_KITTY_SHELL_INTEGRATION\n"), 0o644))

	cfg := enabledConfig()
	d := &Dispatcher{
		ConfigProvider:  stubConfigProvider{cfg: cfg},
		ShellResolver:   stubResolver{argv: []string{"/bin/bash"}},
		ShellIntegrator: shell.NewInstallerWithEnv(logger.New(false, io.Discard), home, func(string) string { return "" }),
		Logger:          logger.New(false, io.Discard),
	}
	outcome := d.Run(context.Background())
	require.True(t, outcome.Succeeded())

	data, err := os.ReadFile(rcPath)
	require.NoError(t, err)
	assert.Equal(t,
		"echo hi\n\n# BEGIN_KITTY_SHELL_INTEGRATION\n"+
			"if test -e \"/opt/kitty/shell-integration/kitty.bash\"; then source \"/opt/kitty/shell-integration/kitty.bash\"; fi\n"+
			"# END_KITTY_SHELL_INTEGRATION\n",
		string(data))
}
