package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/gurps-api/internal/errors"
)

const (
	defaultFetchLimit   = 4
	defaultFetchTimeout = 10 * time.Second
	// maxSourceBytes caps a single catalog document
	maxSourceBytes = 4 << 20
)

// Loader reads catalog documents from files and http(s) URLs
type Loader struct {
	client *http.Client
	limit  int
}

// LoaderConfig configures a Loader
type LoaderConfig struct {
	HTTPClient *http.Client
	// Concurrency bounds parallel fetches; defaults to 4
	Concurrency int
}

// NewLoader creates a Loader
func NewLoader(cfg LoaderConfig) *Loader {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	limit := cfg.Concurrency
	if limit <= 0 {
		limit = defaultFetchLimit
	}
	return &Loader{client: client, limit: limit}
}

// Load reads every source and merges them in the order given. A source
// that cannot be read or parsed is logged and skipped; no sources at all
// gives an empty catalog.
func (l *Loader) Load(ctx context.Context, sources ...string) (*Catalog, error) {
	parts := make([]*Catalog, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for i, source := range sources {
		g.Go(func() error {
			c, err := l.loadSource(gctx, source)
			if err != nil {
				slog.WarnContext(ctx, "skipping catalog source",
					"source", source,
					"error", err.Error())
				return nil
			}
			parts[i] = c
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "catalog load canceled")
	}

	out := Empty()
	for _, part := range parts {
		out.Merge(part)
	}

	slog.InfoContext(ctx, "catalog loaded",
		"sources", len(sources),
		"advantages", len(out.Advantages),
		"disadvantages", len(out.Disadvantages),
		"skills", len(out.Skills))

	return out, nil
}

func (l *Loader) loadSource(ctx context.Context, source string) (*Catalog, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.InvalidArgument("empty catalog source")
	}

	var (
		data []byte
		name = source
		err  error
	)
	if u, parseErr := url.Parse(source); parseErr == nil && (u.Scheme == "http" || u.Scheme == "https") {
		name = u.Path
		data, err = l.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	return Parse(data, path.Ext(name))
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid catalog url %s", source)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to fetch %s", source)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailablef("fetch %s: status %d", source, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
}

// Parse decodes one catalog document. ext selects YAML for ".yaml" and
// ".yml"; anything else is read as JSON.
func Parse(data []byte, ext string) (*Catalog, error) {
	c := Empty()

	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid catalog document").
			WithMeta("reason", err.Error())
	}
	return c, nil
}
