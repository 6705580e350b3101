package search

import "github.com/neexbeast/travel-recommendation/internal/destination"

// beachKeywords mark a query as a beach search.
var beachKeywords = []string{
	"beach", "beaches", "seaside", "coast", "coastal", "shore", "island", "islands",
}

// templeKeywords mark a query as a temple search.
var templeKeywords = []string{
	"temple", "temples", "monument", "monuments", "shrine", "shrines",
	"historic", "heritage", "archaeological",
}

// countryAlias maps a lowercase country key to the aliases that select it.
type countryAlias struct {
	Key     string
	Aliases []string
}

// countryKeywords is checked in order; the first country with a matching alias wins.
var countryKeywords = []countryAlias{
	{Key: "australia", Aliases: []string{"australia", "aussie", "australian"}},
	{Key: "japan", Aliases: []string{"japan", "japanese"}},
	{Key: "brazil", Aliases: []string{"brazil", "brazilian"}},
	{Key: "cambodia", Aliases: []string{"cambodia", "cambodian", "angkor"}},
	{Key: "india", Aliases: []string{"india", "indian"}},
	{Key: "french polynesia", Aliases: []string{"polynesia", "french polynesia", "bora bora", "borabora"}},
}

// bucketQuota is the per-kind display cap, in display order.
type bucketQuota struct {
	Kind destination.Kind
	Max  int
}

var displayBuckets = []bucketQuota{
	{Kind: destination.KindBeach, Max: 2},
	{Kind: destination.KindTemple, Max: 2},
	{Kind: destination.KindCity, Max: 2},
}

// fallbackLimit caps the display list when no bucket receives an entry.
const fallbackLimit = 6
