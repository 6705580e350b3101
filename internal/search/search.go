// Package search classifies free-text queries and filters the destination
// collection into a bounded, bucketed display list.
package search

import (
	"errors"
	"strings"

	"github.com/neexbeast/travel-recommendation/internal/destination"
)

// ErrEmptyQuery is returned when the query is blank after trimming.
var ErrEmptyQuery = errors.New("empty query")

// Classification is the category reading of a normalized query.
// Country is empty when no country alias matched.
type Classification struct {
	Beach   bool   `json:"beach"`
	Temple  bool   `json:"temple"`
	Country string `json:"country,omitempty"`
}

// Result is the outcome of a search.
// Total counts the whole filtered set; Destinations is the bucketed display list.
type Result struct {
	Query          string                    `json:"query"`
	Total          int                       `json:"total"`
	Destinations   []destination.Destination `json:"destinations"`
	Classification Classification            `json:"classification"`
}

// Normalize trims and lower-cases a raw query.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Classify tests a normalized query against the keyword tables.
// Matching is substring containment, not whole-word.
func Classify(q string) Classification {
	c := Classification{
		Beach:  containsAny(q, beachKeywords),
		Temple: containsAny(q, templeKeywords),
	}
	for _, ca := range countryKeywords {
		if containsAny(q, ca.Aliases) {
			c.Country = ca.Key
			break
		}
	}
	return c
}

// Filter returns, in collection order, every destination the query selects.
func Filter(q string, c Classification, collection []destination.Destination) []destination.Destination {
	matched := make([]destination.Destination, 0)
	for _, d := range collection {
		if matches(q, c, d) {
			matched = append(matched, d)
		}
	}
	return matched
}

func matches(q string, c Classification, d destination.Destination) bool {
	if c.Beach && d.Type == destination.KindBeach {
		return true
	}
	if c.Temple && d.Type == destination.KindTemple {
		return true
	}

	country := strings.ToLower(d.Country)
	if c.Country != "" && d.HasCountry() && country == c.Country {
		return true
	}

	return strings.Contains(strings.ToLower(d.Name), q) ||
		strings.Contains(strings.ToLower(d.Description), q) ||
		(d.HasCountry() && strings.Contains(country, q))
}

// Bucket picks up to two beaches, two temples, then two cities from filtered.
// When none of those kinds are present it falls back to the first six entries.
func Bucket(filtered []destination.Destination) []destination.Destination {
	out := make([]destination.Destination, 0, fallbackLimit)
	for _, b := range displayBuckets {
		taken := 0
		for _, d := range filtered {
			if taken == b.Max {
				break
			}
			if d.Type == b.Kind {
				out = append(out, d)
				taken++
			}
		}
	}

	if len(out) == 0 {
		n := min(len(filtered), fallbackLimit)
		out = append(out, filtered[:n]...)
	}
	return out
}

// Search runs classification, filtering, and bucketing over collection.
// An empty collection yields an empty result, not an error.
func Search(raw string, collection []destination.Destination) (Result, error) {
	q := Normalize(raw)
	if q == "" {
		return Result{}, ErrEmptyQuery
	}

	c := Classify(q)
	filtered := Filter(q, c, collection)

	return Result{
		Query:          q,
		Total:          len(filtered),
		Destinations:   Bucket(filtered),
		Classification: c,
	}, nil
}

func containsAny(q string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}
