package app

import (
	"github.com/doeshing/kittysh/internal/application/doctor"
	"github.com/doeshing/kittysh/internal/application/integration"
	"github.com/doeshing/kittysh/internal/infrastructure/config"
	"github.com/doeshing/kittysh/internal/infrastructure/shell"
	"github.com/doeshing/kittysh/internal/pkg/logger"
	"github.com/doeshing/kittysh/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Dispatcher      *integration.Dispatcher
	DoctorService   *doctor.Service
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	ShellResolver   ports.ShellResolver
	ShellIntegrator ports.ShellIntegrator
	Logger          ports.Logger
}

// BuildContainer constructs the dependency graph. Configuration is loaded
// lazily by the services so that a broken config file never prevents startup.
func BuildContainer(configPath string, verbose bool) *Container {
	cfgLoader := config.NewFileLoader(configPath)
	log := logger.NewStd(verbose)
	resolver := shell.NewResolver()
	installer := shell.NewInstaller(log.Named("installer"))

	dispatcher := &integration.Dispatcher{
		ConfigProvider:  cfgLoader,
		ShellResolver:   resolver,
		ShellIntegrator: installer,
		Logger:          log.Named("integration"),
	}

	doctorService := &doctor.Service{
		ConfigProvider:  cfgLoader,
		ShellResolver:   resolver,
		ShellIntegrator: installer,
	}

	return &Container{
		Dispatcher:      dispatcher,
		DoctorService:   doctorService,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		ShellResolver:   resolver,
		ShellIntegrator: installer,
		Logger:          log,
	}
}
