package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/neexbeast/travel-recommendation/internal/search"
)

// WriteText prints res as plain-text cards for terminal output.
func WriteText(w io.Writer, res search.Result) error {
	var b strings.Builder

	if res.Total == 0 {
		b.WriteString(NoResultsMessage(res.Query))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Search Results for %q\n%s\n", res.Query, FoundMessage(res.Total))
	for _, c := range Cards(res) {
		fmt.Fprintf(&b, "\n%s\n  %s\n", c.Name, c.Label())
		if c.PlainText != "" {
			fmt.Fprintf(&b, "  %s\n", c.PlainText)
		}
		if c.ImageURL != "" {
			fmt.Fprintf(&b, "  %s\n", c.ImageURL)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
