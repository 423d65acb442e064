package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/kittysh/internal/app"
	"github.com/doeshing/kittysh/internal/domain"
)

// NewSetupCommand creates the setup command. It exits successfully even when
// setup fails; the failure is reported on stderr by the dispatcher.
func NewSetupCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Install shell integration for the detected shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Dispatcher == nil {
				return errors.New(ErrDispatcherUnavailable)
			}
			outcome := container.Dispatcher.Run(cmd.Context())
			displaySetupOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}
}

func displaySetupOutcome(out io.Writer, outcome domain.SetupOutcome) {
	switch {
	case outcome.Skipped != domain.SkipNone:
		fmt.Fprintf(out, "Shell integration skipped: %s\n", outcome.Skipped)
	case outcome.Err != nil:
		fmt.Fprintf(out, "Shell integration for %s failed (see log)\n", outcome.Shell)
	default:
		fmt.Fprintf(out, "Shell integration ready for %s\n", outcome.Shell)
	}
}
