package version

// Populated via -ldflags "-X github.com/doeshing/kittysh/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
