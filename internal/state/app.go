package state

import (
	"errors"
	"fmt"

	"github.com/marco/popcorn/internal/watched"
)

var (
	// ErrNoDetail is returned by AddWatched when no detail is loaded
	ErrNoDetail = errors.New("no movie detail loaded")
	// ErrInvalidRating is returned by AddWatched for ratings outside (0, max]
	ErrInvalidRating = errors.New("invalid rating")
)

// Panel is the content of the right-hand panel.
type Panel int

const (
	PanelWatched Panel = iota
	PanelDetail
)

// Options configures an App.
type Options struct {
	MinQueryLength int
	MaxRating      int
	BaseTitle      string
}

// App is the root application state.
type App struct {
	Search    *SearchController
	Selection *Selection
	Watched   *watched.List

	maxRating int
	baseTitle string
}

// NewApp composes the controllers around an opened watched list.
func NewApp(list *watched.List, opts Options) *App {
	if opts.MaxRating <= 0 {
		opts.MaxRating = 10
	}
	return &App{
		Search:    NewSearchController(opts.MinQueryLength),
		Selection: &Selection{},
		Watched:   list,
		maxRating: opts.MaxRating,
		baseTitle: opts.BaseTitle,
	}
}

// MaxRating is the top of the user rating scale.
func (a *App) MaxRating() int { return a.maxRating }

// Panel reports which right-hand panel is visible.
func (a *App) Panel() Panel {
	if a.Selection.Phase() == Idle {
		return PanelWatched
	}
	return PanelDetail
}

// Title returns the window title for the current state.
func (a *App) Title() string {
	return a.Selection.Title(a.baseTitle)
}

// SetQuery forwards to the search controller.
func (a *App) SetQuery(q string) (SearchRequest, bool) {
	return a.Search.SetQuery(q)
}

// Select forwards to the selection state machine.
func (a *App) Select(id string) (DetailRequest, bool) {
	return a.Selection.Select(id)
}

// SelectedWatched returns the watched entry for the open movie, if it was rated before.
func (a *App) SelectedWatched() (watched.Entry, bool) {
	if a.Selection.Phase() == Idle {
		return watched.Entry{}, false
	}
	return a.Watched.Find(a.Selection.ID())
}

// AddWatched rates the loaded movie, appends it to the watched list and closes
// the detail view. On any error, including a duplicate or a failed save, the
// view stays open.
func (a *App) AddWatched(rating float64) error {
	d := a.Selection.Detail()
	if a.Selection.Phase() != DetailReady || d == nil {
		return ErrNoDetail
	}
	if rating <= 0 || rating > float64(a.maxRating) {
		return fmt.Errorf("%w: %v not in 1..%d", ErrInvalidRating, rating, a.maxRating)
	}

	entry := watched.NewEntry(*d, rating)
	entry.ImdbID = a.Selection.ID()

	if err := a.Watched.Add(entry); err != nil {
		return err
	}
	a.Selection.Close()
	return nil
}

// RemoveWatched deletes an entry from the watched list.
func (a *App) RemoveWatched(id string) error {
	return a.Watched.Remove(id)
}

// Shutdown cancels every in-flight request.
func (a *App) Shutdown() {
	a.Search.Cancel()
	a.Selection.supersede()
}
