package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpld3/matplotlylib/pkg/pipeline"
)

// publishCommand creates the publish command for uploading figures.
func (c *CLI) publishCommand() *cobra.Command {
	var (
		noCache bool
		noOpen  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "publish [figure.json]",
		Short: "Convert a figure and upload it to plotly",
		Long: `Convert a serialized matplotlib figure and upload it to plotly.

The publish command runs the full pipeline: load, export, upload. On
success it prints the shareable URL and opens it in your browser.

Credentials come from ~/.config/matplotly/credentials.toml or from the
PLOTLY_USERNAME and PLOTLY_API_KEY environment variables. Run
'matplotly auth login' first if neither is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runPublish(cmd.Context(), opts, noCache, noOpen)
		},
	}

	cmd.Flags().StringVarP(&opts.Filename, "filename", "n", "", "name for the figure in your account (generated if empty)")
	cmd.Flags().StringVar(&opts.FileOpt, "fileopt", "", "collision behavior: new (default), overwrite, extend, append")
	cmd.Flags().BoolVar(&opts.WorldReadable, "public", false, "make the figure publicly visible")
	cmd.Flags().BoolVar(&opts.Resize, "resize", false, "drop sizing so the service chooses dimensions")
	cmd.Flags().BoolVar(&opts.StripStyle, "strip-style", false, "strip styling and keep data only")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the export cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "do not open the URL in a browser")

	return cmd
}

// runPublish executes the full pipeline and reports the shareable URL.
func (c *CLI) runPublish(ctx context.Context, opts pipeline.Options, noCache, noOpen bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Publishing %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Publish failed")
		return err
	}
	spinner.Stop()

	printSuccess("Published %s", result.Filename)
	printKeyValue("URL", StyleLink.Render(result.URL))
	printStats(result.Stats.TraceCount, result.CacheInfo.ExportHit)
	if result.Warning != "" {
		printWarning("%s", result.Warning)
	}
	if result.Message != "" {
		printDetail("%s", result.Message)
	}

	if !noOpen {
		if err := openBrowser(result.URL); err != nil {
			printDetail("Open the URL above in your browser")
		}
	}
	return nil
}
