package domain

// Config mirrors ~/.config/kittysh/config.yaml.
type Config struct {
	// ShellIntegration holds space separated flags such as "enabled" or "no-rc".
	ShellIntegration string `yaml:"shell_integration"`
	// Shell is the command line of the shell to launch; "." selects the login shell.
	Shell string `yaml:"shell"`
	// IntegrationDir contains kitty.bash, kitty.zsh and kitty.fish.
	IntegrationDir string `yaml:"integration_dir"`
}
