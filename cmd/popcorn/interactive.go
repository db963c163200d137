package main

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marco/popcorn/internal/config"
	"github.com/marco/popcorn/internal/state"
	"github.com/marco/popcorn/internal/storage"
	"github.com/marco/popcorn/internal/tui"
	"github.com/marco/popcorn/internal/watched"
)

// runInteractive starts the terminal UI and blocks until it exits
func runInteractive(cfg *config.Config, f state.Fetcher, store *storage.SQLiteStore, list *watched.List) error {
	app := state.NewApp(list, state.Options{
		MinQueryLength: cfg.Search.MinQueryLength,
		MaxRating:      cfg.UI.MaxRating,
		BaseTitle:      cfg.UI.Title,
	})
	defer app.Shutdown()

	p := tea.NewProgram(tui.New(app, f), tea.WithAltScreen())

	if cfg.Storage.WatchEnabled() {
		w, err := storage.NewWatcher(store.Path(), cfg.Storage.WatchDebounce(), func() {
			p.Send(tui.StoreChangedMsg{})
		})
		if err != nil {
			slog.Warn("store watcher unavailable", "error", err)
		} else if err := w.Start(); err != nil {
			slog.Warn("store watcher unavailable", "error", err)
			w.Stop()
		} else {
			defer w.Stop()
		}
	}

	slog.Info("ui started", "watched", list.Len())
	_, err := p.Run()
	return err
}
