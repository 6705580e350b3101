package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/neexbeast/travel-recommendation/internal/destination"
	"github.com/neexbeast/travel-recommendation/internal/storage"
)

var (
	databaseURLFlag string
	nameFlag        string
	keepFlag        int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store the catalog in Postgres so the server can load it with CATALOG_FROM_DB",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "List catalog documents stored in Postgres",
	Args:  cobra.NoArgs,
	RunE:  runCatalogs,
}

func init() {
	for _, c := range []*cobra.Command{importCmd, catalogsCmd} {
		c.Flags().StringVar(&databaseURLFlag, "database-url", envOr("DATABASE_URL", ""), "Postgres connection URL")
	}
	importCmd.Flags().StringVar(&nameFlag, "name", "", "label for the stored document (defaults to the catalog file name)")
	importCmd.Flags().IntVar(&keepFlag, "keep", 0, "after importing, delete all but the newest N documents (0 keeps everything)")
}

func openRepository(ctx context.Context) (*storage.Repository, *pgxpool.Pool, error) {
	if databaseURLFlag == "" {
		return nil, nil, fmt.Errorf("--database-url or DATABASE_URL is required")
	}

	pool, err := storage.Connect(ctx, databaseURLFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := storage.RunMigrations(ctx, pool, storage.Migrations()); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	return storage.NewRepository(pool), pool, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Fetch directly so the stored document keeps its nested shape.
	doc, err := destination.SourceFor(catalogFlag).Fetch(ctx)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("catalog rejected: %w", err)
	}

	repo, pool, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	name := nameFlag
	if name == "" {
		name = filepath.Base(catalogFlag)
	}

	id, err := repo.SaveDocument(ctx, name, *doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored catalog %q as document %d\n", name, id)

	if keepFlag > 0 {
		n, err := repo.Prune(ctx, keepFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d older document(s)\n", n)
	}
	return nil
}

func runCatalogs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	repo, pool, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	infos, err := repo.ListDocuments(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOUNTRIES\tCITIES\tTEMPLES\tBEACHES\tCREATED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			info.ID, info.Name, info.Countries, info.Cities, info.Temples, info.Beaches,
			info.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}
