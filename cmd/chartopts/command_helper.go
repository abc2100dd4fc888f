package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/chartopts/internal/infrastructure/container"
	"github.com/reglet-dev/chartopts/internal/infrastructure/settings"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
	Out       io.Writer
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with settings resolution and
// container initialization.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		c, err := newCommandContext(ctx, s, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return handler(c, cmd, args)
	}
}

func newCommandContext(ctx context.Context, s *settings.Settings, out io.Writer) (*CommandContext, error) {
	logger := slog.Default()

	c, err := container.New(container.Options{
		Settings: s,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return &CommandContext{
		Container: c,
		Logger:    logger,
		Context:   ctx,
		Out:       out,
	}, nil
}

// Settings returns the resolved settings.
func (c *CommandContext) Settings() *settings.Settings {
	return c.Container.Settings()
}

// flagOr returns value when the named flag was given on the command line and
// fallback otherwise, so an explicit --flag=false still overrides the settings.
func flagOr[T any](cmd *cobra.Command, name string, value, fallback T) T {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

// loadOptional loads the document at path, or returns nil when path is empty.
func (c *CommandContext) loadOptional(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := c.Container.DocumentLoader().LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}
