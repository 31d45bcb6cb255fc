package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrSystemNotFound is returned by Lookup when no system has the id.
var ErrSystemNotFound = errors.New("system not found")

// Provider supplies catalog records.
type Provider interface {
	// Name describes the source for display/logging.
	Name() string

	// All returns the whole catalog in catalog order.
	All(ctx context.Context) ([]StarSystem, error)

	// Lookup returns one system. It wraps ErrSystemNotFound for unknown ids.
	Lookup(ctx context.Context, id string) (StarSystem, error)
}

// New returns a provider for source: an HTTP(S) URL or a local file path.
func New(source string, opts ...FetcherOption) Provider {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewFetcher(source, opts...)
	}
	return NewFileProvider(source)
}

// LoadResult is the outcome of one fetch.
type LoadResult struct {
	Systems   []StarSystem
	FetchedAt time.Time
	Duration  time.Duration
	Error     error
}

// Load fetches the whole catalog and times it.
func Load(ctx context.Context, p Provider) LoadResult {
	start := time.Now()
	systems, err := p.All(ctx)
	return LoadResult{
		Systems:   systems,
		FetchedAt: start,
		Duration:  time.Since(start),
		Error:     err,
	}
}

// lookup finds id in a freshly fetched catalog.
func lookup(ctx context.Context, p Provider, id string) (StarSystem, error) {
	systems, err := p.All(ctx)
	if err != nil {
		return StarSystem{}, err
	}
	return Find(systems, id)
}

// Find selects id from a fetched catalog, wrapping ErrSystemNotFound when
// it is absent.
func Find(systems []StarSystem, id string) (StarSystem, error) {
	sys, ok := FindByID(systems, id)
	if !ok {
		return StarSystem{}, fmt.Errorf("%w: %q", ErrSystemNotFound, id)
	}
	return sys, nil
}

// MemoryProvider serves a fixed in-memory catalog.
type MemoryProvider struct {
	systems []StarSystem
	calls   int
}

// NewMemoryProvider creates a provider over systems. The slice is not copied.
func NewMemoryProvider(systems []StarSystem) *MemoryProvider {
	return &MemoryProvider{systems: systems}
}

// Name implements Provider.
func (p *MemoryProvider) Name() string {
	return "memory"
}

// All implements Provider.
func (p *MemoryProvider) All(ctx context.Context) ([]StarSystem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.calls++
	return p.systems, nil
}

// Lookup implements Provider.
func (p *MemoryProvider) Lookup(ctx context.Context, id string) (StarSystem, error) {
	return lookup(ctx, p, id)
}

// Calls returns how many fetches were served.
func (p *MemoryProvider) Calls() int {
	return p.calls
}
