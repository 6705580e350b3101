package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neexbeast/travel-recommendation/internal/destination"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and report how many destinations of each type it holds",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	snap, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	counts := map[destination.Kind]int{}
	for _, d := range snap.Destinations {
		counts[d.Type]++
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "catalog: %s\n", catalogFlag)
	fmt.Fprintf(out, "  cities:  %d\n", counts[destination.KindCity])
	fmt.Fprintf(out, "  temples: %d\n", counts[destination.KindTemple])
	fmt.Fprintf(out, "  beaches: %d\n", counts[destination.KindBeach])
	fmt.Fprintf(out, "  total:   %d\n", snap.Len())
	return nil
}
