package state

import (
	"context"
	"log/slog"

	"github.com/marco/popcorn/internal/omdb"
)

// Phase is the selection state.
type Phase int

const (
	// Idle: nothing selected, the watched summary is visible.
	Idle Phase = iota
	// DetailLoading: a movie is selected and its detail fetch is in flight.
	DetailLoading
	// DetailReady: the selected movie's detail is loaded.
	DetailReady
	// DetailError: the detail fetch for the selected movie failed.
	DetailError
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case DetailLoading:
		return "detail-loading"
	case DetailReady:
		return "detail-ready"
	case DetailError:
		return "detail-error"
	default:
		return "unknown"
	}
}

// DetailRequest is a detail fetch issued by Select.
type DetailRequest struct {
	Gen uint64
	ID  string
	ctx context.Context
}

// Run performs the fetch against f.
func (r DetailRequest) Run(f Fetcher) DetailResult {
	detail, err := f.Movie(r.ctx, r.ID)
	return DetailResult{Gen: r.Gen, Detail: detail, Err: err}
}

// DetailResult is the outcome of a DetailRequest.
type DetailResult struct {
	Gen    uint64
	Detail *omdb.MovieDetail
	Err    error
}

// Selection is the detail loader together with the selection state machine.
type Selection struct {
	phase  Phase
	id     string
	detail *omdb.MovieDetail
	err    error

	gen    uint64
	cancel context.CancelFunc
}

func (s *Selection) Phase() Phase { return s.phase }
func (s *Selection) ID() string { return s.id }
func (s *Selection) Detail() *omdb.MovieDetail { return s.detail }
func (s *Selection) Err() error { return s.err }
func (s *Selection) Loading() bool { return s.phase == DetailLoading }

// ErrorMessage returns the user-visible text for a failed detail load.
func (s *Selection) ErrorMessage() string {
	return omdb.Message(s.err)
}

// Select picks a movie. Picking the currently selected identifier again closes
// the detail view instead. Picking a different one retargets directly,
// superseding any fetch in flight. The returned request must be run when ok.
func (s *Selection) Select(id string) (req DetailRequest, ok bool) {
	if id == "" {
		return DetailRequest{}, false
	}
	if s.phase != Idle && id == s.id {
		s.Close()
		return DetailRequest{}, false
	}

	s.supersede()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.phase = DetailLoading
	s.id = id
	s.detail = nil
	s.err = nil

	slog.Debug("detail fetch issued", "gen", s.gen, "id", id)
	return DetailRequest{Gen: s.gen, ID: id, ctx: ctx}, true
}

// Close returns to Idle and abandons any fetch in flight.
func (s *Selection) Close() {
	s.supersede()
	s.phase = Idle
	s.id = ""
	s.detail = nil
	s.err = nil
}

// Resolve applies a finished fetch, reporting false for stale results.
func (s *Selection) Resolve(r DetailResult) bool {
	if r.Gen != s.gen || s.phase != DetailLoading {
		slog.Debug("discarding stale detail result", "gen", r.Gen, "current", s.gen)
		return false
	}
	s.release()

	if r.Err != nil || r.Detail == nil {
		s.phase = DetailError
		s.err = r.Err
		if s.err == nil {
			s.err = omdb.ErrFetch
		}
		slog.Info("detail fetch failed", "id", s.id, "error", s.err)
		return true
	}

	s.phase = DetailReady
	s.detail = r.Detail
	return true
}

// Title returns the window title for the current state: "Movie | <title>"
// once a titled detail is loaded, otherwise base.
func (s *Selection) Title(base string) string {
	if s.phase == DetailReady && s.detail != nil && s.detail.Title != "" {
		return "Movie | " + s.detail.Title
	}
	return base
}

func (s *Selection) supersede() {
	s.gen++
	s.release()
}

func (s *Selection) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
