package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/neexbeast/travel-recommendation/internal/search"
)

// EmptyQueryAlert is shown when the search box was submitted blank.
const EmptyQueryAlert = "Please enter a destination or keyword to search"

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Page is the data behind the search page.
// A zero Page is the reset state: empty input, no alert, no results.
type Page struct {
	Input   string
	Alert   string
	Results *ResultsView
}

// ResultsView is a rendered search outcome.
type ResultsView struct {
	Query     string
	Total     int
	Cards     []Card
	Found     string
	NoResults string
}

// NewResultsView prepares res for display.
func NewResultsView(res search.Result) *ResultsView {
	return &ResultsView{
		Query:     res.Query,
		Total:     res.Total,
		Cards:     Cards(res),
		Found:     FoundMessage(res.Total),
		NoResults: NoResultsMessage(res.Query),
	}
}

// Static returns the stylesheet and other assets referenced by the page.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// WritePage renders the HTML search page.
func WritePage(w io.Writer, p Page) error {
	if err := pageTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
