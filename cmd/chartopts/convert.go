package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	"github.com/reglet-dev/chartopts/internal/infrastructure/codec"
)

type convertOptions struct {
	To          string
	DefaultType string
	Theme       string
	Output      string
	Strict      bool
	Redact      bool
}

func newConvertCmd() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Normalize options documents",
		Long: `Decode each document into the typed option model and write its trimmed
external form. Unknown keys are dropped with a warning unless --strict is set.

With a single input, --output names the output file. With several inputs it
names a directory that receives one file per input.`,
		Example: `  chartopts convert chart.yaml
  chartopts convert --to yaml --theme dark.json charts/*.json --output out/`,
		Args: cobra.MinimumNArgs(1),
		RunE: withContainer(func(c *CommandContext, cmd *cobra.Command, args []string) error {
			opts.Strict = flagOr(cmd, "strict", opts.Strict, c.Settings().Strict)
			if opts.Theme == "" {
				opts.Theme = c.Settings().Theme
			}
			return runConvert(c, opts, args)
		}),
	}

	cmd.Flags().StringVar(&opts.To, "to", "json", "Output format: json, yaml")
	cmd.Flags().StringVar(&opts.DefaultType, "type", "", "Series type for series without one, when chart.type is unset")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Document layered underneath every input")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file, or directory for several inputs (default: stdout)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Reject unknown keys instead of dropping them")
	cmd.Flags().BoolVar(&opts.Redact, "redact", false, "Replace embedded credentials with [REDACTED]")
	return cmd
}

// runConvert converts files concurrently. Outputs are written in argument
// order once every conversion succeeded.
func runConvert(c *CommandContext, opts convertOptions, files []string) error {
	to, err := codec.ParseFormat(opts.To)
	if err != nil {
		return err
	}
	theme, err := c.loadOptional(opts.Theme)
	if err != nil {
		return err
	}

	svc := c.Container.ConvertService()
	outputs := make([][]byte, len(files))

	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			resp, err := svc.Convert(ctx, dto.ConvertRequest{
				Path:        file,
				Theme:       theme,
				DefaultType: opts.DefaultType,
				Strict:      opts.Strict,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			for _, path := range resp.Dropped {
				c.Logger.Warn("dropped unknown option", "file", file, "path", path)
			}

			doc := resp.Output
			if opts.Redact {
				doc = c.Container.Redactor().Redact(doc)
			}

			var buf bytes.Buffer
			if err := codec.Encode(&buf, doc, to); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			outputs[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return writeConverted(c, opts.Output, to, files, outputs)
}

func writeConverted(c *CommandContext, output string, to codec.Format, files []string, outputs [][]byte) error {
	switch {
	case output == "":
		for i, out := range outputs {
			if i > 0 && to == codec.FormatYAML {
				if _, err := c.Out.Write([]byte("---\n")); err != nil {
					return err
				}
			}
			if _, err := c.Out.Write(out); err != nil {
				return err
			}
		}
		return nil
	case len(files) == 1:
		return writeFile(output, outputs[0])
	}

	targets, err := outputPaths(output, to, files)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(output, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, target := range targets {
		if err := writeFile(target, outputs[i]); err != nil {
			return err
		}
	}
	return nil
}

// outputPaths names one output file per input inside dir. Inputs that share a
// base name would overwrite each other and are rejected.
func outputPaths(dir string, to codec.Format, files []string) ([]string, error) {
	targets := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for i, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		target := filepath.Join(dir, base+"."+string(to))
		if prev, dup := seen[target]; dup {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, file, target)
		}
		seen[target] = file
		targets[i] = target
	}
	return targets, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
