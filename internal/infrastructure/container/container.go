// Package container provides dependency injection for the application.
package container

import (
	"fmt"
	"log/slog"

	"github.com/reglet-dev/chartopts/internal/application/ports"
	"github.com/reglet-dev/chartopts/internal/application/services"
	"github.com/reglet-dev/chartopts/internal/infrastructure/codec"
	"github.com/reglet-dev/chartopts/internal/infrastructure/export"
	"github.com/reglet-dev/chartopts/internal/infrastructure/output"
	"github.com/reglet-dev/chartopts/internal/infrastructure/redaction"
	"github.com/reglet-dev/chartopts/internal/infrastructure/settings"
)

// Container holds all application dependencies.
type Container struct {
	settings       *settings.Settings
	loader         *codec.Loader
	formatters     *output.FormatterFactory
	redactor       *redaction.Redactor
	checkService   *services.CheckService
	convertService *services.ConvertService
	logger         *slog.Logger
}

// Options configure the container.
type Options struct {
	// Settings default to settings.Default().
	Settings *settings.Settings
	Logger   *slog.Logger
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Settings == nil {
		opts.Settings = settings.Default()
	}

	loader := codec.NewLoader()

	redactor, err := redaction.New(opts.Settings.Secrets)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redactor: %w", err)
	}

	return &Container{
		settings:       opts.Settings,
		loader:         loader,
		formatters:     output.NewFormatterFactory(),
		redactor:       redactor,
		checkService:   services.NewCheckService(loader, opts.Logger, services.WithSecretScanner(redactor)),
		convertService: services.NewConvertService(loader, opts.Logger),
		logger:         opts.Logger,
	}, nil
}

// ExportService wires an export service to the server described by cfg.
// The export settings are passed explicitly so flags can override them.
func (c *Container) ExportService(cfg settings.ExportConfig) (*services.ExportService, error) {
	server, err := cfg.Server()
	if err != nil {
		return nil, err
	}
	client, err := export.NewClient(server, append(cfg.ClientOptions(), export.WithLogger(c.logger))...)
	if err != nil {
		return nil, fmt.Errorf("failed to create export client: %w", err)
	}
	c.logger.Debug("export server configured", "url", server.URL())
	return services.NewExportService(c.loader, client, c.logger), nil
}

// CheckService returns the check use case.
func (c *Container) CheckService() *services.CheckService {
	return c.checkService
}

// ConvertService returns the convert use case.
func (c *Container) ConvertService() *services.ConvertService {
	return c.convertService
}

// DocumentLoader returns the document loader port.
func (c *Container) DocumentLoader() ports.DocumentLoader {
	return c.loader
}

// FormatterFactory returns the report formatter factory.
func (c *Container) FormatterFactory() ports.FormatterFactory {
	return c.formatters
}

// Redactor returns the credential redactor.
func (c *Container) Redactor() *redaction.Redactor {
	return c.redactor
}

// Settings returns the resolved settings.
func (c *Container) Settings() *settings.Settings {
	return c.settings
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
