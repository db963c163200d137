// Package watched manages the locally persisted list of rated movies.
package watched

import (
	"strconv"
	"strings"

	"github.com/marco/popcorn/internal/omdb"
)

// Entry is a user-rated movie record. The JSON shape is the persisted form.
type Entry struct {
	ImdbID     string  `json:"imdbID"`
	Title      string  `json:"Title"`
	Year       string  `json:"Year"`
	Poster     string  `json:"Poster"`
	ImdbRating float64 `json:"imdbRating"`
	// Runtime in minutes; nil when the source text was absent or unparsable.
	Runtime    *int    `json:"Runtime,omitempty"`
	UserRating float64 `json:"userRating"`
}

// NewEntry builds an Entry from a loaded detail and the user's rating.
func NewEntry(d omdb.MovieDetail, userRating float64) Entry {
	return Entry{
		ImdbID:     d.ImdbID,
		Title:      d.Title,
		Year:       d.Year,
		Poster:     d.Poster,
		ImdbRating: d.Rating(),
		Runtime:    ParseRuntime(d.Runtime),
		UserRating: userRating,
	}
}

// ParseRuntime reads the leading minute count of a duration such as "142 min".
// It returns nil for empty or unparsable text ("N/A").
func ParseRuntime(s string) *int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
