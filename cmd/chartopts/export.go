package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	"github.com/reglet-dev/chartopts/internal/infrastructure/export"
	"github.com/reglet-dev/chartopts/internal/infrastructure/settings"
)

type exportOptions struct {
	Settings dto.ExportSettings
	Out      string
	Theme    string
	URL      string
	User     string
	Password string
	Strict   bool
}

func newExportCmd() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a chart through a Highcharts export server",
		Long: `Decode a document locally, then post its trimmed form to a Highcharts export
server and save the rendered image or document.

The server defaults to https://export.highcharts.com and can be configured in
the config file, through HIGHCHARTS_EXPORT_SERVER_* variables or --url.`,
		Example: `  chartopts export chart.yaml --format svg --out chart.svg
  chartopts export chart.json --url http://localhost:7801 --scale 2`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(c *CommandContext, cmd *cobra.Command, args []string) error {
			cfg := c.Settings().Export
			if opts.URL != "" {
				cfg.URL = opts.URL
			}
			if opts.User != "" {
				cfg.User = opts.User
			}
			if opts.Password != "" {
				cfg.Password = opts.Password
			}
			if opts.Theme == "" {
				opts.Theme = c.Settings().Theme
			}
			opts.Strict = flagOr(cmd, "strict", opts.Strict, c.Settings().Strict)
			return runExport(c, cfg, opts, args[0])
		}),
	}

	cmd.Flags().StringVar(&opts.Settings.Format, "format", "png", "Output format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file (default: chart.<format>)")
	cmd.Flags().StringVar(&opts.Settings.Constructor, "constructor", "Chart", "Constructor: "+strings.Join(export.Constructors, ", "))
	cmd.Flags().Float64Var(&opts.Settings.Scale, "scale", 0, "Scale factor")
	cmd.Flags().IntVar(&opts.Settings.Width, "width", 0, "Width in pixels")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Document sent as global options")
	cmd.Flags().StringVar(&opts.URL, "url", "", "Export server URL")
	cmd.Flags().StringVar(&opts.User, "user", "", "Export server user")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Export server password")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Reject unknown keys instead of dropping them")
	return cmd
}

func runExport(c *CommandContext, cfg settings.ExportConfig, opts exportOptions, path string) error {
	svc, err := c.Container.ExportService(cfg)
	if err != nil {
		return err
	}
	theme, err := c.loadOptional(opts.Theme)
	if err != nil {
		return err
	}

	resp, err := svc.Export(c.Context, dto.ExportRequest{
		Path:     path,
		Theme:    theme,
		Settings: opts.Settings,
		Strict:   opts.Strict,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := opts.Out
	if out == "" {
		out = "chart." + strings.ToLower(resp.Format)
	}
	if err := os.WriteFile(out, resp.Body, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	c.Logger.Info("chart exported", "file", out, "bytes", len(resp.Body), "request_id", resp.Metadata.RequestID)
	return nil
}
