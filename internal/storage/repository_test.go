package storage_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/travel-recommendation/internal/destination"
	"github.com/neexbeast/travel-recommendation/internal/storage"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Row ----

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (f *fakeRow) Scan(dest ...any) error { return f.scanFn(dest...) }

// ---- mock pgx.Rows ----

type fakeRows struct {
	rows    [][]any
	idx     int
	rowErr  error
	scanErr error
}

func (f *fakeRows) Next() bool                                   { f.idx++; return f.idx <= len(f.rows) }
func (f *fakeRows) Err() error                                   { return f.rowErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.idx-1]
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		switch v := d.(type) {
		case *int:
			*v = row[i].(int)
		case *string:
			*v = row[i].(string)
		case *[]byte:
			*v = row[i].([]byte)
		case **time.Time:
			if row[i] == nil {
				*v = nil
			} else {
				t := row[i].(time.Time)
				*v = &t
			}
		case *time.Time:
			*v = row[i].(time.Time)
		}
	}
	return nil
}

// ---- mock MigrationPool ----

type mockMigrationPool struct {
	beginFn func(ctx context.Context) (pgx.Tx, error)
}

func (m *mockMigrationPool) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.beginFn(ctx)
}

// mockTx is a minimal pgx.Tx implementation for testing migrations.
type mockTx struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	commitFn   func(ctx context.Context) error
	rollbackFn func(ctx context.Context) error
}

func (t *mockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.execFn(ctx, sql, args...)
}
func (t *mockTx) Commit(ctx context.Context) error   { return t.commitFn(ctx) }
func (t *mockTx) Rollback(ctx context.Context) error { return t.rollbackFn(ctx) }

// pgx.Tx has many more methods â€” stub them all out.
func (t *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (t *mockTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *mockTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (t *mockTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (t *mockTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *mockTx) Conn() *pgx.Conn { return nil }

// ---- helpers ----

func sampleDocument() destination.Document {
	return destination.Document{
		Countries: []destination.Country{{Name: "Japan", Cities: []destination.Entry{{Name: "Kyoto", Description: "temples and gardens", ImageURL: "k.jpg"}}}},
		Temples:   []destination.Entry{{Name: "Angkor Wat", Description: "ancient temple", ImageURL: "a.jpg"}},
	}
}

func okTx(onExec func(sql string)) *mockTx {
	return &mockTx{
		execFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			if onExec != nil {
				onExec(sql)
			}
			return pgconn.CommandTag{}, nil
		},
		commitFn:   func(_ context.Context) error { return nil },
		rollbackFn: func(_ context.Context) error { return nil },
	}
}

// ---- SaveDocument ----

func TestSaveDocument_Success(t *testing.T) {
	var capturedArgs []any
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			capturedArgs = args
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*int) = 7
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	id, err := repo.SaveDocument(context.Background(), "travel.json", sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	require.Len(t, capturedArgs, 2)
	assert.Equal(t, "travel.json", capturedArgs[0])

	var stored destination.Document
	require.NoError(t, json.Unmarshal(capturedArgs[1].([]byte), &stored))
	assert.Equal(t, sampleDocument(), stored)
}

func TestSaveDocument_DBError(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return fmt.Errorf("db error") }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.SaveDocument(context.Background(), "travel.json", destination.Document{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting catalog document")
}

// ---- LatestDocument / Fetch ----

func TestLatestDocument_Found(t *testing.T) {
	docJSON, err := json.Marshal(sampleDocument())
	require.NoError(t, err)

	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*[]byte) = docJSON
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	doc, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Kyoto", doc.Countries[0].Cities[0].Name)
	assert.Equal(t, "postgres", repo.String())
}

func TestLatestDocument_Empty(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.LatestDocument(context.Background())
	require.ErrorIs(t, err, storage.ErrNoCatalog)
}

func TestLatestDocument_DBError(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return fmt.Errorf("connection reset") }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.LatestDocument(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying latest catalog document")
}

func TestLatestDocument_BadJSON(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*[]byte) = []byte("not-valid-json")
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.LatestDocument(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshaling")
}

func TestRepository_IsCatalogSource(t *testing.T) {
	var _ destination.Source = storage.NewRepository(nil)
}

// ---- ListDocuments ----

func TestListDocuments_Found(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	rows := &fakeRows{
		rows: [][]any{
			{2, "v2.json", 3, 6, 2, 2, now},
			{1, "v1.json", 1, 1, 1, 0, now.Add(-time.Hour)},
		},
	}

	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	infos, err := repo.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "v2.json", infos[0].Name)
	assert.Equal(t, 6, infos[0].Cities)
	assert.Equal(t, 0, infos[1].Beaches)
	assert.Equal(t, now, infos[0].CreatedAt)
}

func TestListDocuments_Empty(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return &fakeRows{}, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	infos, err := repo.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestListDocuments_QueryError(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
			return nil, fmt.Errorf("query failed")
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListDocuments(context.Background())
	require.Error(t, err)
}

func TestListDocuments_ScanError(t *testing.T) {
	rows := &fakeRows{
		rows:    [][]any{{1, "v1.json", 0, 0, 0, 0, time.Now()}},
		scanErr: fmt.Errorf("scan failed"),
	}

	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListDocuments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning")
}

func TestListDocuments_RowsErr(t *testing.T) {
	rows := &fakeRows{rowErr: fmt.Errorf("rows iteration error")}

	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListDocuments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterating")
}

// ---- Prune ----

func TestPrune(t *testing.T) {
	var keepArg any
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
			keepArg = args[0]
			return pgconn.NewCommandTag("DELETE 3"), nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	n, err := repo.Prune(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, 5, keepArg)
}

func TestPrune_DBError(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("db error")
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.Prune(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pruning")
}

// ---- RunMigrations ----

func TestMigrations_Embedded(t *testing.T) {
	var executed []string
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) {
			return okTx(func(sql string) { executed = append(executed, sql) }), nil
		},
	}

	require.NoError(t, storage.RunMigrations(context.Background(), pool, storage.Migrations()))
	require.NotEmpty(t, executed)
	assert.Contains(t, executed[0], "CREATE TABLE IF NOT EXISTS catalog_documents")
}

func TestRunMigrations_EmptyFS(t *testing.T) {
	err := storage.RunMigrations(context.Background(), nil, fstest.MapFS{})
	require.NoError(t, err)
}

func TestRunMigrations_IgnoresNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md":   {Data: []byte("docs")},
		"001_a.sql":   {Data: []byte("SELECT 1;")},
		"sub/002.sql": {Data: []byte("SELECT 2;")},
	}

	var executed []string
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) {
			return okTx(func(sql string) { executed = append(executed, sql) }), nil
		},
	}

	require.NoError(t, storage.RunMigrations(context.Background(), pool, fsys))
	assert.Equal(t, []string{"SELECT 1;"}, executed)
}

func TestRunMigrations_BeginError(t *testing.T) {
	fsys := fstest.MapFS{"001_test.sql": {Data: []byte("SELECT 1;")}}

	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return nil, fmt.Errorf("cannot begin") },
	}

	err := storage.RunMigrations(context.Background(), pool, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing migration")
}

func TestRunMigrations_ExecErrorRollsBack(t *testing.T) {
	fsys := fstest.MapFS{"001_test.sql": {Data: []byte("INVALID SQL;")}}

	rolledBack := false
	tx := &mockTx{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("syntax error")
		},
		commitFn: func(_ context.Context) error { return nil },
		rollbackFn: func(_ context.Context) error {
			rolledBack = true
			return nil
		},
	}
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, fsys)
	require.Error(t, err)
	assert.True(t, rolledBack)
}

func TestRunMigrations_CommitError(t *testing.T) {
	fsys := fstest.MapFS{"001_test.sql": {Data: []byte("SELECT 1;")}}

	tx := okTx(nil)
	tx.commitFn = func(_ context.Context) error { return fmt.Errorf("commit failed") }
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "committing")
}

func TestRunMigrations_SortsFilesLexicographically(t *testing.T) {
	fsys := fstest.MapFS{
		"003_c.sql": {Data: []byte("SELECT 3;")},
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"002_b.sql": {Data: []byte("SELECT 2;")},
	}

	var order []string
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) {
			return okTx(func(sql string) { order = append(order, sql) }), nil
		},
	}

	err := storage.RunMigrations(context.Background(), pool, fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT 1;", "SELECT 2;", "SELECT 3;"}, order)
}

// ---- Connect ----

func TestConnect_BadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := storage.Connect(ctx, "postgres://invalid-host-xyz:5432/db?sslmode=disable")
	require.Error(t, err)
}
