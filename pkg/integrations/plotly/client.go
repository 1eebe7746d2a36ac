package plotly

import (
	"context"
	"net/url"
	"strings"

	"github.com/mpld3/matplotlylib/pkg/buildinfo"
	"github.com/mpld3/matplotlylib/pkg/cache"
	"github.com/mpld3/matplotlylib/pkg/errors"
	"github.com/mpld3/matplotlylib/pkg/integrations"
	plotlydoc "github.com/mpld3/matplotlylib/pkg/plotly"
)

// DefaultEndpoint is the production upload endpoint.
const DefaultEndpoint = "https://plot.ly/clientresp"

// platform identifies this client to the service.
const platform = "matplotly"

// Config carries the account and endpoint settings for a [Client].
type Config struct {
	Username string
	APIKey   string
	// Endpoint overrides [DefaultEndpoint], mainly for tests and
	// self-hosted installations.
	Endpoint string
}

// PlotOptions control how an uploaded figure is stored.
type PlotOptions struct {
	// Filename names the figure in the account. Slashes create folders.
	Filename string
	// FileOpt is one of "new", "overwrite", "extend", "append".
	// Empty means "new".
	FileOpt string
	// WorldReadable makes the figure public.
	WorldReadable bool
}

// PlotResponse is the service's answer to an upload.
type PlotResponse struct {
	// URL is the shareable address of the stored figure.
	URL string `json:"url"`
	// Filename is the name the service stored the figure under, which
	// can differ from the requested name on collisions.
	Filename string `json:"filename"`
	// Warning and Message are non-fatal notices for the user.
	Warning string `json:"warning"`
	Message string `json:"message"`
	// Error is non-empty when the service rejected the upload.
	Error string `json:"error"`
}

// Client uploads figure documents to the plotly service.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	cfg Config
}

// NewClient creates an upload client. The backend caches nothing today
// (uploads are not idempotent) but is plumbed through for the shared
// client's retry and header handling; pass nil to skip caching entirely.
func NewClient(backend cache.Cache, cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Client{
		Client: integrations.NewClient(backend, "plotly:", cache.TTLHTTP, nil),
		cfg:    cfg,
	}
}

// Plot uploads a figure document and returns the service response.
//
// The request is a single form-encoded POST. Authentication failures map
// to [errors.ErrCodeUnauthorized], quota rejections to
// [errors.ErrCodeRateLimited], and other service rejections to
// [errors.ErrCodeRejected]; transport failures keep their retryable
// classification from the shared client.
func (c *Client) Plot(ctx context.Context, doc *plotlydoc.Figure, opts PlotOptions) (*PlotResponse, error) {
	if c.cfg.Username == "" || c.cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeCredentialsNotFound, "plotly credentials are not configured")
	}
	if opts.FileOpt == "" {
		opts.FileOpt = "new"
	}
	if err := errors.ValidateFilename(opts.Filename); err != nil {
		return nil, err
	}
	if err := errors.ValidateFileOpt(opts.FileOpt); err != nil {
		return nil, err
	}

	args, err := doc.MarshalData()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode traces")
	}
	kwargs, err := marshalKwargs(doc, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode plot options")
	}

	form := url.Values{}
	form.Set("un", c.cfg.Username)
	form.Set("key", c.cfg.APIKey)
	form.Set("origin", "plot")
	form.Set("platform", platform)
	form.Set("version", buildinfo.Version)
	form.Set("args", string(args))
	form.Set("kwargs", string(kwargs))

	var resp PlotResponse
	if err := c.PostForm(ctx, c.cfg.Endpoint, form, &resp); err != nil {
		if errors.GetCode(err) == errors.ErrCodeRateLimited {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "upload figure")
	}
	if resp.Error != "" {
		switch {
		case isAuthError(resp.Error):
			return nil, errors.New(errors.ErrCodeUnauthorized, "%s", resp.Error)
		case isQuotaError(resp.Error):
			return nil, &errors.RateLimitedError{Message: resp.Error}
		default:
			return nil, errors.New(errors.ErrCodeRejected, "%s", resp.Error)
		}
	}
	return &resp, nil
}

func isAuthError(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "username") ||
		strings.Contains(m, "api key") ||
		strings.Contains(m, "api_key") ||
		strings.Contains(m, "permission")
}

// isQuotaError matches the service's account-quota rejections, which come
// back in the error field rather than as an HTTP 429.
func isQuotaError(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "rate limit") || strings.Contains(m, "quota")
}
