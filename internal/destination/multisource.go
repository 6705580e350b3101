package destination

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// MultiSource fetches several sources in parallel and merges their documents.
// Unlike a partial aggregate, any member failure fails the whole fetch.
type MultiSource struct {
	sources []Source
}

// NewMultiSource constructs a MultiSource. Merge order follows argument order.
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

// Fetch fetches all sources concurrently using errgroup.
func (m *MultiSource) Fetch(ctx context.Context) (*Document, error) {
	g, gCtx := errgroup.WithContext(ctx)
	docs := make([]*Document, len(m.sources))

	for i, src := range m.sources {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("catalog source panicked", "source", describe(src), "recover", r)
					err = fmt.Errorf("catalog source %s panicked: %v", describe(src), r)
				}
			}()
			doc, fetchErr := src.Fetch(gCtx)
			if fetchErr != nil {
				return fmt.Errorf("source %s: %w", describe(src), fetchErr)
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(docs...), nil
}

func (m *MultiSource) String() string {
	return fmt.Sprintf("multi(%d)", len(m.sources))
}

func describe(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
