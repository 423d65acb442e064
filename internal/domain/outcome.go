package domain

// SkipReason explains why the dispatcher did not run a setup routine.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipDisabled      SkipReason = "integration disabled"
	SkipUnknownShell  SkipReason = "unsupported shell"
	SkipAlreadyRan    SkipReason = "already ran"
	SkipConfigMissing SkipReason = "configuration unavailable"
)

// SetupOutcome records the single shell integration run of a process.
// Err is populated when a setup routine failed; callers only inspect it.
type SetupOutcome struct {
	Shell   ShellName
	Skipped SkipReason
	Err     error
}

// Succeeded reports whether a setup routine ran without error.
func (o SetupOutcome) Succeeded() bool {
	return o.Skipped == SkipNone && o.Err == nil && o.Shell != ""
}
