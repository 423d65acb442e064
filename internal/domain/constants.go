package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for newly created rc and completion files (rw-r--r--)
	FilePermissions = 0o644
)

// Shell integration modes and the default shell selector.
const (
	IntegrationEnabled  = "enabled"
	IntegrationDisabled = "disabled"
	// IntegrationNoRC leaves rc files alone while keeping integration otherwise available.
	IntegrationNoRC = "no-rc"
	// LoginShell tells the resolver to use the user's login shell.
	LoginShell = "."
	// FallbackShell is used when no login shell can be determined.
	FallbackShell = "/bin/sh"
)

// Markers delimiting the block this tool owns inside an rc file.
const (
	BeginMarker = "# BEGIN_KITTY_SHELL_INTEGRATION"
	EndMarker   = "# END_KITTY_SHELL_INTEGRATION"
)
