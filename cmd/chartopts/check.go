package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	"github.com/reglet-dev/chartopts/internal/application/ports"
	"github.com/reglet-dev/chartopts/internal/version"
)

type checkOptions struct {
	Format        string
	Output        string
	TargetVersion string
	Expectations  []string
	Strict        bool
	NoColor       bool
}

func newCheckCmd() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check an options document",
		Long: `Validate a document against the option model's JSON Schema, decode it,
check the options it uses against a target library version and evaluate
expectations against the normalized document.

Expectations are boolean expressions over options, series and chart, e.g.
  --expect 'len(series) > 0'
  --expect 'chart.type in ["bar", "column"]'

The command exits non-zero when any finding fails or errors.`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(c *CommandContext, cmd *cobra.Command, args []string) error {
			opts.Format = flagOr(cmd, "format", opts.Format, c.Settings().Format)
			if opts.TargetVersion == "" {
				opts.TargetVersion = c.Settings().TargetVersion
			}
			opts.Strict = flagOr(cmd, "strict", opts.Strict, c.Settings().Strict)
			return runCheck(c, opts, args[0])
		}),
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "Output format: table, json, yaml, junit, sarif")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.TargetVersion, "target-version", "", "Library version to check option compatibility against")
	cmd.Flags().StringArrayVar(&opts.Expectations, "expect", nil, "Expectation expression (repeatable)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Treat unknown keys as schema violations")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored table output")
	return cmd
}

func runCheck(c *CommandContext, opts checkOptions, path string) error {
	c.Logger.Info("checking document", "path", path)

	rep, err := c.Container.CheckService().Check(c.Context, dto.CheckRequest{
		Path:          path,
		TargetVersion: opts.TargetVersion,
		Expectations:  opts.Expectations,
		Strict:        opts.Strict,
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	c.Logger.Info("check complete",
		"duration", rep.Duration,
		"total", rep.Summary.Total,
		"passed", rep.Summary.Passed,
		"failed", rep.Summary.Failed,
		"errors", rep.Summary.Errors,
		"skipped", rep.Summary.Skipped)

	// Determine output writer
	var writer io.Writer = c.Out
	if opts.Output != "" {
		//nolint:gosec // G304: User-controlled output file path is intentional
		file, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = file.Close() // Best-effort cleanup
		}()
		writer = file
		c.Logger.Info("writing output", "file", opts.Output, "format", opts.Format)
	}

	formatter, err := c.Container.FormatterFactory().Create(opts.Format, writer, ports.FormatterOptions{
		ToolVersion: version.Get().Version,
		Indent:      true,
		NoColor:     opts.NoColor || opts.Output != "",
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(rep); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Return non-zero exit code if there were failures or errors
	if rep.Status().IsFailure() {
		return fmt.Errorf("check failed: %d passed, %d failed, %d errors",
			rep.Summary.Passed,
			rep.Summary.Failed,
			rep.Summary.Errors)
	}
	return nil
}
