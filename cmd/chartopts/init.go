package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/chartopts/internal/infrastructure/settings"
)

type initOptions struct {
	Path          string
	NoInteractive bool
	Force         bool
}

func newInitCmd() *cobra.Command {
	opts := initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a chartopts config file",
		Example: `  chartopts init
  chartopts init --no-interactive --path ./chartopts.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to find home directory: %w", err)
				}
				opts.Path = filepath.Join(home, ".chartopts.yaml")
			}

			s := settings.Default()
			if !opts.NoInteractive {
				if err := promptSettings(s); err != nil {
					return err
				}
			}
			if err := settings.Write(opts.Path, s, opts.Force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Config saved to %s\n", opts.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Path, "path", "", "Config file path (default: $HOME/.chartopts.yaml)")
	cmd.Flags().BoolVar(&opts.NoInteractive, "no-interactive", false, "Disable interactive prompts")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing config file")
	return cmd
}

// promptSettings fills s from interactive prompts.
func promptSettings(s *settings.Settings) error {
	retries := strconv.Itoa(s.Export.Retries)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Export server URL").
				Description("Leave empty for " + s.Export.Protocol + "://" + s.Export.Domain).
				Value(&s.Export.URL),
			huh.NewInput().
				Title("Export retries").
				Value(&retries).
				Validate(func(v string) error {
					n, err := strconv.Atoi(v)
					if err != nil || n < 0 {
						return fmt.Errorf("enter a non-negative number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default check report format").
				Options(
					huh.NewOption("Table", "table"),
					huh.NewOption("JSON", "json"),
					huh.NewOption("YAML", "yaml"),
					huh.NewOption("JUnit XML", "junit"),
					huh.NewOption("SARIF", "sarif"),
				).
				Value(&s.Format),
			huh.NewInput().
				Title("Target Highcharts version").
				Description("Options newer than this version are reported by check").
				Value(&s.TargetVersion),
			huh.NewConfirm().
				Title("Reject unknown keys?").
				Value(&s.Strict),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	n, err := strconv.Atoi(retries)
	if err != nil {
		return fmt.Errorf("invalid retries: %w", err)
	}
	s.Export.Retries = n
	return nil
}
