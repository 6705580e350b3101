package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/travel-recommendation/internal/destination"
)

// ErrNoCatalog is returned when no catalog document has been stored yet.
var ErrNoCatalog = errors.New("no catalog document stored")

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// DocumentInfo summarizes a stored catalog document.
type DocumentInfo struct {
	ID        int
	Name      string
	Countries int
	Cities    int
	Temples   int
	Beaches   int
	CreatedAt time.Time
}

// Repository stores catalog documents in Postgres.
// It also serves as a catalog source yielding the newest document.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// SaveDocument inserts a catalog document and returns its id.
func (r *Repository) SaveDocument(ctx context.Context, name string, doc destination.Document) (int, error) {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshaling catalog document %s: %w", name, err)
	}

	const q = `
		INSERT INTO catalog_documents (name, document)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int
	if err := r.q.QueryRow(ctx, q, name, docJSON).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting catalog document %s: %w", name, err)
	}

	return id, nil
}

// LatestDocument returns the most recently stored catalog document.
// Returns ErrNoCatalog when the table is empty.
func (r *Repository) LatestDocument(ctx context.Context) (*destination.Document, error) {
	const q = `
		SELECT document
		FROM catalog_documents
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var docJSON []byte
	if err := r.q.QueryRow(ctx, q).Scan(&docJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoCatalog
		}
		return nil, fmt.Errorf("querying latest catalog document: %w", err)
	}

	var doc destination.Document
	if err := json.Unmarshal(docJSON, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling catalog document: %w", err)
	}

	return &doc, nil
}

// Fetch implements destination.Source.
func (r *Repository) Fetch(ctx context.Context) (*destination.Document, error) {
	return r.LatestDocument(ctx)
}

func (r *Repository) String() string { return "postgres" }

// ListDocuments summarizes stored documents, newest first.
// Section sizes are computed in SQL from the JSONB document.
func (r *Repository) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	const q = `
		SELECT id, name,
		       COALESCE(jsonb_array_length(document->'countries'), 0),
		       COALESCE((SELECT SUM(jsonb_array_length(COALESCE(c->'cities', '[]'::jsonb)))
		                 FROM jsonb_array_elements(COALESCE(document->'countries', '[]'::jsonb)) AS c), 0)::int,
		       COALESCE(jsonb_array_length(document->'temples'), 0),
		       COALESCE(jsonb_array_length(document->'beaches'), 0),
		       created_at
		FROM catalog_documents
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing catalog documents: %w", err)
	}
	defer rows.Close()

	var results []DocumentInfo
	for rows.Next() {
		var info DocumentInfo
		if err := rows.Scan(
			&info.ID,
			&info.Name,
			&info.Countries,
			&info.Cities,
			&info.Temples,
			&info.Beaches,
			&info.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning catalog document row: %w", err)
		}
		results = append(results, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog document rows: %w", err)
	}

	return results, nil
}

// Prune deletes all but the newest keep documents and returns how many were removed.
func (r *Repository) Prune(ctx context.Context, keep int) (int64, error) {
	const q = `
		DELETE FROM catalog_documents
		WHERE id NOT IN (
			SELECT id FROM catalog_documents
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		)
	`

	tag, err := r.q.Exec(ctx, q, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning catalog documents: %w", err)
	}
	return tag.RowsAffected(), nil
}
