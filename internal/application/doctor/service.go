package doctor

import (
	"context"
	"fmt"

	configapp "github.com/doeshing/kittysh/internal/application/config"
	"github.com/doeshing/kittysh/internal/domain"
	"github.com/doeshing/kittysh/internal/ports"
)

// Service runs environment diagnostics for shell integration.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	ShellResolver   ports.ShellResolver
	ShellIntegrator ports.ShellIntegrator
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("shell_integration=%q shell=%q", cfg.ShellIntegration, cfg.Shell)))
	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, warn("Config validation", err.Error()))
	}

	switch {
	case cfg.IntegrationDisabled():
		checks = append(checks, warn("Integration mode", "disabled"))
	case !cfg.RCModificationAllowed():
		checks = append(checks, warn("Integration mode", "rc files are not modified (no-rc)"))
	default:
		checks = append(checks, ok("Integration mode", cfg.ShellIntegration))
	}

	shell := domain.ShellUnknown
	if s.ShellResolver != nil {
		argv, err := s.ShellResolver.ResolveShell(ctx, cfg)
		switch {
		case err != nil:
			checks = append(checks, fail("Shell detection", err.Error()))
		case len(argv) == 0:
			checks = append(checks, fail("Shell detection", "empty shell command line"))
		default:
			shell = domain.ParseShellName(argv[0])
			if shell == domain.ShellUnknown {
				checks = append(checks, warn("Shell detection", fmt.Sprintf("%s is not supported", argv[0])))
			} else {
				checks = append(checks, ok("Shell detection", fmt.Sprintf("%s (%s)", shell, argv[0])))
			}
		}
	}

	if s.ShellIntegrator != nil && shell != domain.ShellUnknown {
		checks = append(checks, integrationChecks(s.ShellIntegrator.Status(shell, cfg))...)
	}

	return domain.HealthReport{Checks: checks}, nil
}

func integrationChecks(status domain.ShellStatus) []domain.HealthCheck {
	if status.Error != "" {
		return []domain.HealthCheck{fail("Shell integration", status.Error)}
	}

	var checks []domain.HealthCheck
	switch {
	case status.ScriptPath == "":
		checks = append(checks, fail("Integration script", "integration directory is not configured"))
	case status.ScriptExists:
		checks = append(checks, ok("Integration script", status.ScriptPath))
	default:
		checks = append(checks, warn("Integration script", fmt.Sprintf("%s not found", status.ScriptPath)))
	}

	if status.BlockPresent {
		checks = append(checks, ok("Shell integration", fmt.Sprintf("%s ready in %s", status.Shell, status.RCFile)))
	} else {
		checks = append(checks, warn("Shell integration", fmt.Sprintf("not installed in %s", status.RCFile)))
	}
	return checks
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
