package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neexbeast/travel-recommendation/internal/render"
	"github.com/neexbeast/travel-recommendation/internal/search"
)

var jsonFlag bool

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search destinations by name, description, country or category",
	Long: "Search the catalog. Keywords like beach, temple or a country name select whole categories;\n" +
		"anything else matches names, descriptions and countries by substring.",
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&jsonFlag, "json", false, "print the result as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	snap, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load travel recommendations: %w", err)
	}

	res, err := search.Search(strings.Join(args, " "), snap.Destinations)
	if errors.Is(err, search.ErrEmptyQuery) {
		return errors.New(render.EmptyQueryAlert)
	}
	if err != nil {
		return err
	}

	if jsonFlag {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return render.WriteText(cmd.OutOrStdout(), res)
}
