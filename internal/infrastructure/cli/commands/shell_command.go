package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/kittysh/internal/app"
	"github.com/doeshing/kittysh/internal/domain"
	"github.com/doeshing/kittysh/internal/infrastructure/cli/helpers"
)

// NewUninstallCommand creates the uninstall command
func NewUninstallCommand(container *app.Container) *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove shell integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShellUninstall(cmd, container, shell)
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "", "Shell to uninstall (zsh|bash|fish|all, auto-detected by default)")

	return cmd
}

// NewDetectCommand creates the detect command
func NewDetectCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Print the resolved shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.ConfigProvider == nil || container.ShellResolver == nil {
				return errors.New(ErrConfigLoaderUnavailable)
			}
			ctx := cmd.Context()
			cfg, err := container.ConfigProvider.Load(ctx)
			if err != nil {
				return err
			}
			argv, err := container.ShellResolver.ResolveShell(ctx, cfg)
			if err != nil {
				return err
			}
			if len(argv) == 0 {
				return fmt.Errorf("%w: empty shell command line", domain.ErrUnsupportedShell)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", argv[0], domain.ParseShellName(argv[0]))
			return nil
		},
	}
}

// runShellUninstall removes shell integration
func runShellUninstall(cmd *cobra.Command, container *app.Container, shellFlag string) error {
	if container.ShellIntegrator == nil || container.ConfigProvider == nil {
		return errors.New(ErrShellInstallerUnavailable)
	}

	ctx := cmd.Context()
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return err
	}

	shells, err := helpers.DetermineTargetShells(ctx, shellFlag, cfg, container.ShellResolver)
	if err != nil {
		return fmt.Errorf("failed to determine target shells: %w", err)
	}

	for _, sh := range shells {
		if err := uninstallForSingleShell(cmd, container, sh, cfg); err != nil {
			return err
		}
	}

	return nil
}

// uninstallForSingleShell removes integration for a single shell
func uninstallForSingleShell(cmd *cobra.Command, container *app.Container, shell domain.ShellName, cfg domain.Config) error {
	result, err := container.ShellIntegrator.Uninstall(shell, cfg)
	if err != nil {
		return fmt.Errorf("failed to uninstall for %s: %w", shell, err)
	}

	if !result.RCUpdated {
		fmt.Fprintf(cmd.OutOrStdout(), "No integration found for %s in %s\n", result.Shell, result.RCFile)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed integration for %s from %s\n", result.Shell, result.RCFile)
	return nil
}
