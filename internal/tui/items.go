package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/marco/popcorn/internal/omdb"
	"github.com/marco/popcorn/internal/watched"
)

type movieItem struct {
	movie omdb.MovieSummary
}

func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string { return "🗓 " + i.movie.Year }
func (i movieItem) FilterValue() string { return i.movie.Title }

type watchedItem struct {
	entry watched.Entry
}

func (i watchedItem) Title() string { return i.entry.Title }

func (i watchedItem) Description() string {
	return fmt.Sprintf("⭐️ %s  🌟 %s  ⏳ %s",
		formatRating(i.entry.ImdbRating),
		formatRating(i.entry.UserRating),
		formatRuntime(i.entry.Runtime))
}

func (i watchedItem) FilterValue() string { return i.entry.Title }

func movieItems(movies []omdb.MovieSummary) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}

func watchedItems(entries []watched.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = watchedItem{entry: e}
	}
	return items
}

func formatRating(r float64) string {
	if r == float64(int(r)) {
		return fmt.Sprintf("%d", int(r))
	}
	return fmt.Sprintf("%.1f", r)
}

func formatRuntime(runtime *int) string {
	if runtime == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d min", *runtime)
}

func newList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}
