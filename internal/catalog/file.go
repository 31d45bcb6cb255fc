package catalog

import (
	"context"
	"fmt"
	"os"
)

// FileProvider reads the catalog from a local JSON or YAML file on every fetch.
type FileProvider struct {
	path   string
	format Format
}

// NewFileProvider creates a provider for path. The format follows the extension.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{
		path:   path,
		format: FormatFromPath(path),
	}
}

// Name implements Provider.
func (p *FileProvider) Name() string {
	return p.path
}

// Path returns the catalog file path.
func (p *FileProvider) Path() string {
	return p.path
}

// All implements Provider.
func (p *FileProvider) All(ctx context.Context) ([]StarSystem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	systems, err := Decode(data, p.format)
	if err != nil {
		return nil, err
	}
	if err := Validate(systems); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", p.path, err)
	}
	return systems, nil
}

// Lookup implements Provider.
func (p *FileProvider) Lookup(ctx context.Context, id string) (StarSystem, error) {
	return lookup(ctx, p, id)
}
