package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/kittysh/internal/app"
	"github.com/doeshing/kittysh/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is built once flags
// are parsed so that --config and --verbose take effect.
func NewRootCmd(opts Options) *cobra.Command {
	var (
		configPath string
		verbose    bool
	)
	container := new(app.Container)

	root := &cobra.Command{
		Use:   "kittysh",
		Short: "kittysh - terminal shell integration setup",
		Long:  "kittysh installs the kitty shell integration into bash, zsh and fish startup files.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			*container = *app.BuildContainer(configPath, verbose || opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/kittysh/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(commands.NewSetupCommand(container))
	root.AddCommand(commands.NewUninstallCommand(container))
	root.AddCommand(commands.NewDetectCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}
