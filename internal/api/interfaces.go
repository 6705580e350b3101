package api

import (
	"context"

	"github.com/neexbeast/travel-recommendation/internal/destination"
	"github.com/neexbeast/travel-recommendation/internal/search"
)

// CatalogStore exposes the current destination collection.
type CatalogStore interface {
	Snapshot() destination.Snapshot
}

// CatalogLoader reloads the collection from its configured sources.
type CatalogLoader interface {
	Load(ctx context.Context) (destination.Snapshot, error)
}

// ResultCache defines the cache operations needed by handlers.
type ResultCache interface {
	Get(ctx context.Context, version uint64, query string) (*search.Result, error)
	Set(ctx context.Context, version uint64, query string, res *search.Result) error
}

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// nopCache is used when no Redis is configured.
type nopCache struct{}

func (nopCache) Get(context.Context, uint64, string) (*search.Result, error) { return nil, nil }
func (nopCache) Set(context.Context, uint64, string, *search.Result) error   { return nil }
