// travelsearch searches a travel destination catalog from the terminal.
package main

import (
	"os"

	"github.com/neexbeast/travel-recommendation/cmd/travelsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
