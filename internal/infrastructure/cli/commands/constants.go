package commands

// Error messages
const (
	ErrDispatcherUnavailable     = "integration dispatcher unavailable"
	ErrDoctorServiceUnavailable  = "doctor service unavailable"
	ErrShellInstallerUnavailable = "shell installer unavailable"
	ErrConfigLoaderUnavailable   = "config loader unavailable"
)
