// Package state holds the application's state and data-flow model: the search
// query controller, the detail loader and its selection state machine, and the
// root App that composes them with the watched list.
//
// Nothing here performs I/O directly. Operations that need the network return
// a request value; the caller runs it (typically off the UI goroutine) and hands
// the result back through Resolve. Every request carries a generation number,
// and a result whose generation is not the latest for its role is discarded, so
// the last-issued request is always the one observed.
package state

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/marco/popcorn/internal/omdb"
)

// Fetcher is the remote movie database.
type Fetcher interface {
	Search(ctx context.Context, query string) ([]omdb.MovieSummary, error)
	Movie(ctx context.Context, id string) (*omdb.MovieDetail, error)
}

// SearchRequest is a lookup issued by SetQuery.
type SearchRequest struct {
	Gen   uint64
	Query string
	ctx   context.Context
}

// Run performs the lookup against f.
func (r SearchRequest) Run(f Fetcher) SearchResult {
	movies, err := f.Search(r.ctx, r.Query)
	return SearchResult{Gen: r.Gen, Movies: movies, Err: err}
}

// SearchResult is the outcome of a SearchRequest.
type SearchResult struct {
	Gen    uint64
	Movies []omdb.MovieSummary
	Err    error
}

// SearchController owns the query text and the current result set.
type SearchController struct {
	minLength int

	query   string
	movies  []omdb.MovieSummary
	loading bool
	err     error

	gen    uint64
	cancel context.CancelFunc
}

// QueryTooShort reports whether q, ignoring surrounding whitespace, has fewer
// than minLength characters.
func QueryTooShort(q string, minLength int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(q)) < minLength
}

// NewSearchController creates a controller that only searches once the trimmed
// query has at least minLength characters.
func NewSearchController(minLength int) *SearchController {
	return &SearchController{minLength: minLength}
}

func (s *SearchController) Query() string { return s.query }
func (s *SearchController) Movies() []omdb.MovieSummary { return s.movies }
func (s *SearchController) Loading() bool { return s.loading }
func (s *SearchController) Err() error { return s.err }

// ErrorMessage returns the user-visible error text, or "" when there is none.
func (s *SearchController) ErrorMessage() string {
	return omdb.Message(s.err)
}

// SetQuery records new query text. When the text changed and is long enough it
// returns a request to run; any request still in flight is canceled and its
// result will be ignored. Short queries clear the results and the error.
func (s *SearchController) SetQuery(q string) (SearchRequest, bool) {
	if q == s.query {
		return SearchRequest{}, false
	}
	s.query = q
	s.supersede()

	if QueryTooShort(q, s.minLength) {
		s.movies = nil
		s.err = nil
		s.loading = false
		return SearchRequest{}, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true
	s.err = nil

	slog.Debug("search issued", "gen", s.gen, "query", q)
	return SearchRequest{Gen: s.gen, Query: q, ctx: ctx}, true
}

// Resolve applies a finished lookup. It reports false when the result was
// stale and has been dropped.
func (s *SearchController) Resolve(r SearchResult) bool {
	if r.Gen != s.gen || !s.loading {
		slog.Debug("discarding stale search result", "gen", r.Gen, "current", s.gen)
		return false
	}
	s.release()
	s.loading = false

	if r.Err != nil {
		s.movies = nil
		s.err = r.Err
		slog.Info("search failed", "query", s.query, "error", r.Err)
		return true
	}

	s.movies = r.Movies
	s.err = nil
	return true
}

// Cancel aborts any in-flight lookup.
func (s *SearchController) Cancel() {
	s.supersede()
	s.loading = false
}

func (s *SearchController) supersede() {
	s.gen++
	s.release()
}

func (s *SearchController) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
