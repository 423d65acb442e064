package integration

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/doeshing/kittysh/internal/domain"
	"github.com/doeshing/kittysh/internal/ports"
)

type runState int

const (
	stateNotRun runState = iota
	stateRunning
	stateDone
)

// Dispatcher runs shell integration setup at most once per instance and never
// lets a failure escape to the caller. It is not safe for concurrent use.
type Dispatcher struct {
	ConfigProvider  ports.ConfigProvider
	ShellResolver   ports.ShellResolver
	ShellIntegrator ports.ShellIntegrator
	Logger          ports.Logger

	state   runState
	outcome domain.SetupOutcome
}

// Run performs setup for the detected shell on the first call. Later calls
// return immediately with SkipAlreadyRan.
func (d *Dispatcher) Run(ctx context.Context) domain.SetupOutcome {
	if d.state != stateNotRun {
		return domain.SetupOutcome{Shell: d.outcome.Shell, Skipped: domain.SkipAlreadyRan}
	}
	d.state = stateRunning
	d.outcome = d.run(ctx)
	d.state = stateDone
	return d.outcome
}

func (d *Dispatcher) run(ctx context.Context) domain.SetupOutcome {
	cfg, err := d.ConfigProvider.Load(ctx)
	if err != nil {
		d.Logger.Error("Failed to load configuration for shell integration", err, nil)
		return domain.SetupOutcome{Skipped: domain.SkipConfigMissing, Err: err}
	}
	if !cfg.RCModificationAllowed() {
		d.Logger.Debug("shell integration rc modification disabled", map[string]interface{}{"mode": cfg.ShellIntegration})
		return domain.SetupOutcome{Skipped: domain.SkipDisabled}
	}

	shell := d.detect(ctx, cfg)
	if shell == domain.ShellUnknown {
		return domain.SetupOutcome{Shell: shell, Skipped: domain.SkipUnknownShell}
	}

	outcome := domain.SetupOutcome{Shell: shell}
	if err := d.setup(shell, cfg); err != nil {
		d.Logger.Error(fmt.Sprintf("Failed to setup shell integration for: %s", shell), err, map[string]interface{}{
			"trace": fmt.Sprintf("%+v", err),
		})
		outcome.Err = err
	}
	return outcome
}

// detect maps the resolved shell executable onto the registry.
func (d *Dispatcher) detect(ctx context.Context, cfg domain.Config) domain.ShellName {
	argv, err := d.ShellResolver.ResolveShell(ctx, cfg)
	if err != nil || len(argv) == 0 {
		d.Logger.Debug("could not resolve shell", map[string]interface{}{"error": err})
		return domain.ShellUnknown
	}
	shell := domain.ParseShellName(argv[0])
	d.Logger.Debug("resolved shell", map[string]interface{}{"path": argv[0], "shell": shell})
	return shell
}

// setup invokes the integrator and turns panics into errors carrying a stack,
// so every failure is reported the same way.
func (d *Dispatcher) setup(shell domain.ShellName, cfg domain.Config) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic during %s setup: %v", shell, r)
		}
	}()
	result, err := d.ShellIntegrator.Setup(shell, cfg)
	if err != nil {
		return errors.WithStack(err)
	}
	d.Logger.Debug("shell integration ready", map[string]interface{}{
		"shell":      result.Shell,
		"rc":         result.RCFile,
		"rc_updated": result.RCUpdated,
	})
	return nil
}
