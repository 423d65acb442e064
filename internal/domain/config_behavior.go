package domain

import "strings"

// IntegrationFlags splits the shell_integration option into its flags.
func (c *Config) IntegrationFlags() []string {
	return strings.Fields(c.ShellIntegration)
}

// IntegrationDisabled reports whether shell integration is turned off entirely.
func (c *Config) IntegrationDisabled() bool {
	return strings.TrimSpace(c.ShellIntegration) == IntegrationDisabled
}

// RCModificationAllowed reports whether setup may touch shell startup files.
func (c *Config) RCModificationAllowed() bool {
	if c.IntegrationDisabled() {
		return false
	}
	for _, flag := range c.IntegrationFlags() {
		if flag == IntegrationNoRC {
			return false
		}
	}
	return true
}
