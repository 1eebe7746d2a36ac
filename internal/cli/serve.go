package cli

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/mpld3/matplotlylib/pkg/pipeline"
)

const serveShutdownTimeout = 5 * time.Second

// previewPage renders the exported document with plotly.js from the CDN.
// The document is fetched from /figure.json so a browser reload picks up
// changes to the input file.
var previewPage = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="https://cdn.plot.ly/plotly-latest.min.js"></script>
  <style>
    body { margin: 0; font-family: sans-serif; }
    #plot { width: 100vw; height: 100vh; }
  </style>
</head>
<body>
  <div id="plot"></div>
  <script>
    fetch("/figure.json")
      .then(function (resp) { return resp.json(); })
      .then(function (doc) { Plotly.newPlot("plot", doc.data, doc.layout); });
  </script>
</body>
</html>
`))

// serveCommand creates the serve command for local previews.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve [figure.json]",
		Short: "Preview a figure locally without publishing",
		Long: `Serve an interactive preview of a figure over local HTTP.

The serve command converts the figure and hosts a page that renders it
with plotly.js. The figure is re-read on every request, so edits to the
input file show up on browser reload. Nothing is uploaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runServe(cmd.Context(), opts, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8675", "address to listen on")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Resize, "resize", false, "drop sizing so the browser chooses dimensions")
	cmd.Flags().BoolVar(&opts.StripStyle, "strip-style", false, "strip styling and keep data only")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts pipeline.Options, addr string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	// Fail fast on broken input before binding the listener.
	if _, err := runner.Load(ctx, opts); err != nil {
		return fmt.Errorf("load figure %s: %w", opts.Input, err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = previewPage.Execute(w, struct{ Title string }{Title: appName + ": " + opts.Input})
	})

	r.Get("/figure.json", func(w http.ResponseWriter, req *http.Request) {
		l := loggerFromContext(req.Context())
		fig, err := runner.Load(req.Context(), opts)
		if err != nil {
			l.Error("load figure", "input", opts.Input, "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		doc, err := runner.Export(req.Context(), fig, opts)
		if err != nil {
			l.Error("export figure", "input", opts.Input, "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		l.Debug("served figure", "traces", len(doc.Data))
		w.Header().Set("Content-Type", "application/json")
		_ = doc.Write(w)
	})

	// Request contexts derive from the command context so handlers can
	// pick up the CLI logger.
	baseCtx := withLogger(ctx, c.Logger)
	srv := &http.Server{
		Addr:        addr,
		Handler:     r,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	url := "http://" + addr
	printSuccess("Serving %s", opts.Input)
	printKeyValue("URL", StyleLink.Render(url))
	printDetail("Press Ctrl+C to stop")
	if err := openBrowser(url); err != nil {
		c.Logger.Debug("open browser", "err", err)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
