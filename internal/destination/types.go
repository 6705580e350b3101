package destination

import "time"

// Kind discriminates the catalog section a Destination came from.
type Kind string

const (
	KindCity   Kind = "city"
	KindTemple Kind = "temple"
	KindBeach  Kind = "beach"
)

// Destination is a single normalized catalog record.
// Country is set only for city records.
type Destination struct {
	Type        Kind   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Country     string `json:"country,omitempty"`
}

// HasCountry reports whether the record carries a parent country.
func (d Destination) HasCountry() bool {
	return d.Country != ""
}

// Entry is a city, temple, or beach as it appears in the source document.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Country groups the cities of one country in the source document.
type Country struct {
	Name   string  `json:"name"`
	Cities []Entry `json:"cities"`
}

// Document is the catalog source shape. All sections are optional.
type Document struct {
	Countries []Country `json:"countries,omitempty"`
	Temples   []Entry   `json:"temples,omitempty"`
	Beaches   []Entry   `json:"beaches,omitempty"`
}

// Snapshot is an immutable view of the loaded collection.
type Snapshot struct {
	Destinations []Destination `json:"destinations"`
	Version      uint64        `json:"version"`
	LoadedAt     time.Time     `json:"loaded_at"`
}

// Len returns the number of destinations in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Destinations)
}
