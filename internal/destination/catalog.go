package destination

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLoadFailure is wrapped by every error that aborts a catalog load.
var ErrLoadFailure = errors.New("catalog load failure")

// Flatten turns a Document into the uniform destination list:
// cities grouped by country, then temples, then beaches, each in document order.
func Flatten(doc *Document) []Destination {
	if doc == nil {
		return []Destination{}
	}

	out := make([]Destination, 0, doc.size())

	for _, country := range doc.Countries {
		for _, city := range country.Cities {
			out = append(out, Destination{
				Type:        KindCity,
				Name:        city.Name,
				Description: city.Description,
				ImageURL:    city.ImageURL,
				Country:     country.Name,
			})
		}
	}

	for _, temple := range doc.Temples {
		out = append(out, fromEntry(KindTemple, temple))
	}

	for _, beach := range doc.Beaches {
		out = append(out, fromEntry(KindBeach, beach))
	}

	return out
}

func fromEntry(kind Kind, e Entry) Destination {
	return Destination{
		Type:        kind,
		Name:        e.Name,
		Description: e.Description,
		ImageURL:    e.ImageURL,
	}
}

// size returns the number of destinations Flatten will produce.
func (d *Document) size() int {
	n := len(d.Temples) + len(d.Beaches)
	for _, c := range d.Countries {
		n += len(c.Cities)
	}
	return n
}

// Validate checks that every entry carries a name.
// Description and image URL may be empty.
func (d *Document) Validate() error {
	for i, country := range d.Countries {
		if blank(country.Name) {
			return fmt.Errorf("countries[%d].name is required", i)
		}
		for j, city := range country.Cities {
			if blank(city.Name) {
				return fmt.Errorf("countries[%d].cities[%d].name is required", i, j)
			}
		}
	}
	for i, t := range d.Temples {
		if blank(t.Name) {
			return fmt.Errorf("temples[%d].name is required", i)
		}
	}
	for i, b := range d.Beaches {
		if blank(b.Name) {
			return fmt.Errorf("beaches[%d].name is required", i)
		}
	}
	return nil
}

// Merge concatenates documents section by section, preserving argument order.
func Merge(docs ...*Document) *Document {
	merged := &Document{}
	for _, d := range docs {
		if d == nil {
			continue
		}
		merged.Countries = append(merged.Countries, d.Countries...)
		merged.Temples = append(merged.Temples, d.Temples...)
		merged.Beaches = append(merged.Beaches, d.Beaches...)
	}
	return merged
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
