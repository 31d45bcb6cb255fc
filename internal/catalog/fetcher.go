package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/litescript/ls-galaxy/internal/version"
)

// DefaultTimeout for HTTP requests.
const DefaultTimeout = 15 * time.Second

// Fetcher retrieves the catalog document over HTTP.
type Fetcher struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a catalog fetcher for rawURL.
func NewFetcher(rawURL string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		url:     rawURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Name implements Provider.
func (f *Fetcher) Name() string {
	return f.url
}

// All implements Provider.
func (f *Fetcher) All(ctx context.Context) ([]StarSystem, error) {
	body, contentType, err := f.fetchRaw(ctx)
	if err != nil {
		return nil, err
	}

	var path string
	if u, err := url.Parse(f.url); err == nil {
		path = u.Path
	}

	systems, err := Decode(body, FormatFromContentType(contentType, path))
	if err != nil {
		return nil, err
	}
	if err := Validate(systems); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", f.url, err)
	}
	return systems, nil
}

// Lookup implements Provider.
func (f *Fetcher) Lookup(ctx context.Context, id string) (StarSystem, error) {
	return lookup(ctx, f, id)
}

func (f *Fetcher) fetchRaw(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ls-galaxy/"+version.Version)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}
