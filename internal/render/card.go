// Package render turns search results into result cards for HTML pages and terminals.
package render

import (
	"fmt"
	"html"
	"html/template"
	"net/url"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/neexbeast/travel-recommendation/internal/destination"
	"github.com/neexbeast/travel-recommendation/internal/search"
)

const placeholderURL = "https://via.placeholder.com/400x300?text="

// Hint lists example keywords shown when nothing matched.
const Hint = "Please try another search with keywords like: beach, temple, country names (Australia, Japan, Brazil), or specific destinations."

var (
	richPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Card is the display form of one destination.
type Card struct {
	Name        string
	TypeLabel   string
	Country     string
	Description template.HTML
	PlainText   string
	ImageURL    string
	FallbackURL string
}

// NewCard builds a card. Descriptions are sanitized since catalog content is not trusted.
func NewCard(d destination.Destination) Card {
	return Card{
		Name:        d.Name,
		TypeLabel:   capitalize(string(d.Type)),
		Country:     d.Country,
		Description: template.HTML(richPolicy.Sanitize(d.Description)),
		PlainText:   html.UnescapeString(plainPolicy.Sanitize(d.Description)),
		ImageURL:    d.ImageURL,
		FallbackURL: PlaceholderImage(d.Name),
	}
}

// Label is the type line, e.g. "City • Japan" or "Temple".
func (c Card) Label() string {
	if c.Country == "" {
		return c.TypeLabel
	}
	return c.TypeLabel + " • " + c.Country
}

// PlaceholderImage returns the fallback image used when a card image fails to load.
func PlaceholderImage(name string) string {
	return placeholderURL + url.QueryEscape(name)
}

// Cards builds one card per displayed destination.
func Cards(res search.Result) []Card {
	cards := make([]Card, len(res.Destinations))
	for i, d := range res.Destinations {
		cards[i] = NewCard(d)
	}
	return cards
}

// NoResultsMessage is shown when a search matched nothing. It quotes the searched term.
func NoResultsMessage(query string) string {
	return fmt.Sprintf(`No destinations found matching "%s". %s`, query, Hint)
}

// FoundMessage reports the size of the full filtered set.
func FoundMessage(total int) string {
	return fmt.Sprintf("Found %d destination(s)", total)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
