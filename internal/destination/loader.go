package destination

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Loader fetches a catalog from its source and installs it into a Store.
type Loader struct {
	mu     sync.Mutex // held across fetch and replace so overlapping loads install in call order
	source Source
	store  *Store
	log    *slog.Logger
}

// NewLoader constructs a Loader writing into store.
func NewLoader(source Source, store *Store, log *slog.Logger) *Loader {
	return &Loader{source: source, store: store, log: log}
}

// Load fetches, validates, and flattens the catalog, then replaces the store contents.
// On failure the store is left untouched and the error wraps ErrLoadFailure.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.source.Fetch(ctx)
	if err != nil {
		l.log.Error("catalog load failed", "source", describe(l.source), "err", err)
		return Snapshot{}, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	if doc == nil {
		l.log.Error("catalog load failed", "source", describe(l.source), "err", "empty document")
		return Snapshot{}, fmt.Errorf("%w: source returned no document", ErrLoadFailure)
	}

	if err := doc.Validate(); err != nil {
		l.log.Error("catalog rejected", "source", describe(l.source), "err", err)
		return Snapshot{}, fmt.Errorf("%w: invalid document: %w", ErrLoadFailure, err)
	}

	snap := l.store.Replace(Flatten(doc))
	l.log.Info("catalog loaded",
		"source", describe(l.source),
		"destinations", snap.Len(),
		"version", snap.Version,
	)
	return snap, nil
}
