package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpld3/matplotlylib/pkg/pipeline"
)

// convertCommand creates the convert command for local figure conversion.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "convert [figure.json]",
		Short: "Convert a matplotlib figure to a plotly document",
		Long: `Convert a serialized matplotlib figure to a plotly document.

The convert command runs the export stage only: it reads the figure from
a local file or an http(s) URL, walks its axes, and writes the resulting
plotly data and layout as JSON. Nothing is uploaded.

Results are cached locally for faster subsequent runs.

Use 'publish' to convert and upload in one step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runConvert(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the export cache")
	cmd.Flags().BoolVar(&opts.Resize, "resize", false, "drop sizing so the service chooses dimensions")
	cmd.Flags().BoolVar(&opts.StripStyle, "strip-style", false, "strip styling and keep data only")

	return cmd
}

// runConvert loads the figure, exports it, and writes the document.
func (c *CLI) runConvert(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	fig, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load figure %s: %w", opts.Input, err)
	}

	doc, cacheHit, err := runner.ExportWithCacheInfo(ctx, fig, opts)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	prog.done(fmt.Sprintf("Exported %d traces", len(doc.Data)))

	if output == "" {
		return doc.Write(os.Stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()
	if err := doc.Write(f); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Converted %s", opts.Input)
	printFile(output)
	printStats(len(doc.Data), cacheHit)
	printNextStep("Share it", "matplotly publish "+opts.Input)
	return nil
}
