package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/kittysh/internal/domain"
)

func TestResolveShell(t *testing.T) {
	tests := []struct {
		name      string
		cfgShell  string
		env       map[string]string
		parentExe string
		parentErr error
		want      []string
	}{
		{name: "configured command line", cfgShell: "/usr/bin/fish --login", want: []string{"/usr/bin/fish", "--login"}},
		{name: "quoted path with a space", cfgShell: `"/opt/my shells/zsh" -l`, want: []string{"/opt/my shells/zsh", "-l"}},
		{name: "single quoted arguments", cfgShell: `'/usr/bin/fish' --init-command 'set x 1'`, want: []string{"/usr/bin/fish", "--init-command", "set x 1"}},
		{name: "unterminated quote is one path", cfgShell: `/bin/zsh "-l`, want: []string{`/bin/zsh "-l`}},
		{name: "login shell from SHELL", cfgShell: ".", env: map[string]string{"SHELL": "/bin/zsh"}, want: []string{"/bin/zsh"}},
		{name: "empty option means login shell", env: map[string]string{"SHELL": "/bin/bash"}, want: []string{"/bin/bash"}},
		{name: "parent process fallback", cfgShell: ".", parentExe: "/usr/local/bin/fish", want: []string{"/usr/local/bin/fish"}},
		{name: "last resort", cfgShell: ".", parentErr: errors.New("no such process"), want: []string{domain.FallbackShell}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{
				getenv: func(key string) string { return tt.env[key] },
				parentExe: func(context.Context) (string, error) {
					return tt.parentExe, tt.parentErr
				},
			}
			got, err := r.ResolveShell(context.Background(), domain.Config{Shell: tt.cfgShell})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveShellQuotedPathIsSupported(t *testing.T) {
	r := &Resolver{getenv: func(string) string { return "" }}
	argv, err := r.ResolveShell(context.Background(), domain.Config{Shell: `"/opt/my shells/zsh" -l`})
	require.NoError(t, err)
	require.NotEmpty(t, argv)
	assert.Equal(t, domain.ShellZsh, domain.ParseShellName(argv[0]))
}
