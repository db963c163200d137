package omdb

import (
	"strconv"
	"strings"
)

// responseStatus is embedded in every OMDb payload
type responseStatus struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (r responseStatus) ok() bool {
	return strings.EqualFold(r.Response, "True")
}

// SearchResponse represents the response from the search endpoint
type SearchResponse struct {
	responseStatus
	Search       []MovieSummary `json:"Search"`
	TotalResults string         `json:"totalResults"`
}

// MovieSummary represents one search result
type MovieSummary struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

// MovieDetail represents the full record for a single title.
// All fields are flattened at the top level of the response.
type MovieDetail struct {
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"`
	ImdbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	Actors     string `json:"Actors"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
}

type detailResponse struct {
	responseStatus
	MovieDetail
}

// Rating returns the external rating score, or 0 when the source has none ("N/A").
func (d MovieDetail) Rating() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(d.ImdbRating), 64)
	if err != nil {
		return 0
	}
	return f
}
