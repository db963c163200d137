// Package export writes the watched list to YAML or Markdown.
package export

import (
	"time"

	"github.com/marco/popcorn/internal/watched"
)

// Movie is the exported form of a watched entry
type Movie struct {
	Title      string  `yaml:"title"`
	Slug       string  `yaml:"slug"`
	Year       string  `yaml:"year"`
	ImdbID     string  `yaml:"imdbId"`
	Poster     string  `yaml:"poster,omitempty"`
	ImdbRating float64 `yaml:"imdbRating"`
	UserRating float64 `yaml:"userRating"`
	Runtime    int     `yaml:"runtime,omitempty"`
}

// Summary is the exported form of the watched list statistics
type Summary struct {
	Count         int     `yaml:"count"`
	AvgImdbRating float64 `yaml:"avgImdbRating"`
	AvgUserRating float64 `yaml:"avgUserRating"`
	AvgRuntime    float64 `yaml:"avgRuntime"`
}

// Document is the top-level YAML export
type Document struct {
	ExportedAt time.Time `yaml:"exportedAt"`
	Summary    Summary   `yaml:"summary"`
	Movies     []Movie   `yaml:"movies"`
}

// NewMovie converts a watched entry
func NewMovie(e watched.Entry) Movie {
	m := Movie{
		Title:      e.Title,
		Slug:       GenerateSlug(e.Title, e.Year),
		Year:       e.Year,
		ImdbID:     e.ImdbID,
		Poster:     e.Poster,
		ImdbRating: e.ImdbRating,
		UserRating: e.UserRating,
	}
	if e.Runtime != nil {
		m.Runtime = *e.Runtime
	}
	return m
}

// NewDocument builds the export document for entries
func NewDocument(entries []watched.Entry, now time.Time) Document {
	s := watched.Summarize(entries)
	doc := Document{
		ExportedAt: now.UTC(),
		Summary: Summary{
			Count:         s.Count,
			AvgImdbRating: s.AvgImdbRating,
			AvgUserRating: s.AvgUserRating,
			AvgRuntime:    s.AvgRuntime,
		},
		Movies: make([]Movie, 0, len(entries)),
	}
	for _, e := range entries {
		doc.Movies = append(doc.Movies, NewMovie(e))
	}
	return doc
}
