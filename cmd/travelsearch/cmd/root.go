package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/neexbeast/travel-recommendation/internal/destination"
)

var (
	catalogFlag string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:          "travelsearch",
	Short:        "Search a travel destination catalog",
	Long:         "Load a catalog of cities, temples and beaches and search it by keyword.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogFlag, "catalog", "c", envOr("CATALOG_FILE", "data/travel_recommendation_api.json"),
		"catalog location: a JSON file path or an http(s) URL")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log loader activity to stderr")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(catalogsCmd)
}

func logger() *slog.Logger {
	level := slog.LevelError
	if verboseFlag {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadCatalog loads the catalog named by --catalog into a fresh store.
func loadCatalog(ctx context.Context) (destination.Snapshot, error) {
	loader := destination.NewLoader(destination.SourceFor(catalogFlag), destination.NewStore(), logger())
	return loader.Load(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
