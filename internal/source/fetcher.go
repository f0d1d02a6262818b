package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jakoblorz/project-manager/internal/models"
)

var (
	ErrUnsupportedSourceType = errors.New("unsupported source type")
	ErrCredentials           = errors.New("no usable credentials for source")
)

// Fetcher materializes a project's files from its source into a target
// directory and returns the materialized path.
type Fetcher interface {
	Fetch(ctx context.Context, src *models.Source, target string) (string, error)
}

// Dispatcher routes a source to the fetcher registered for its type.
type Dispatcher struct {
	fetchers map[models.SourceType]Fetcher
}

var _ Fetcher = (*Dispatcher)(nil)

// NewDispatcher creates an empty Dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{fetchers: make(map[models.SourceType]Fetcher)}
}

// Register installs the fetcher for a source type, replacing any previous one.
func (d *Dispatcher) Register(sourceType models.SourceType, fetcher Fetcher) *Dispatcher {
	d.fetchers[sourceType] = fetcher
	return d
}

// Supports reports whether a fetcher is registered for the type
func (d *Dispatcher) Supports(sourceType models.SourceType) bool {
	_, ok := d.fetchers[sourceType]
	return ok
}

// Fetch dispatches on src.Type.
func (d *Dispatcher) Fetch(ctx context.Context, src *models.Source, target string) (string, error) {
	if src == nil {
		return "", fmt.Errorf("%w: no source", ErrUnsupportedSourceType)
	}

	fetcher, ok := d.fetchers[src.Type]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSourceType, src.Type)
	}

	return fetcher.Fetch(ctx, src, target)
}

// NewDefaultDispatcher returns a dispatcher with every built-in fetcher.
// Web sources are descriptive only and have no fetcher.
func NewDefaultDispatcher(git *GitFetcher) *Dispatcher {
	return NewDispatcher().Register(models.SourceTypeGit, git)
}
