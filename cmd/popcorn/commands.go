package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/marco/popcorn/internal/export"
	"github.com/marco/popcorn/internal/state"
	"github.com/marco/popcorn/internal/watched"
)

var errQueryTooShort = errors.New("search query too short")

// runSearch performs a single lookup and prints the result set. Queries
// shorter than minLength are rejected without a request.
func runSearch(f state.Fetcher, query string, minLength int, w io.Writer) error {
	if state.QueryTooShort(query, minLength) {
		return fmt.Errorf("%w: need at least %d characters", errQueryTooShort, minLength)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	movies, err := f.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Found %d results\n\n", len(movies))
	for _, m := range movies {
		fmt.Fprintf(w, "  %-12s %s (%s)\n", m.ImdbID, m.Title, m.Year)
	}
	return nil
}

// printWatched prints the watched list followed by its summary
func printWatched(w io.Writer, entries []watched.Entry) {
	s := watched.Summarize(entries)

	fmt.Fprintln(w, "MOVIES YOU WATCHED")
	fmt.Fprintf(w, "  #️⃣ %d movies  ⭐️ %.2f  🌟 %.2f  ⏳ %.0f min\n\n",
		s.Count, s.AvgImdbRating, s.AvgUserRating, s.AvgRuntime)

	for _, e := range entries {
		runtime := "N/A"
		if e.Runtime != nil {
			runtime = fmt.Sprintf("%d min", *e.Runtime)
		}
		fmt.Fprintf(w, "  %-12s %s (%s)  ⭐️ %.1f  🌟 %.1f  ⏳ %s\n",
			e.ImdbID, e.Title, e.Year, e.ImdbRating, e.UserRating, runtime)
	}
}

// runExport writes the watched list in the requested format. Markdown ratings
// are rendered out of maxRating.
func runExport(entries []watched.Entry, path, format string, maxRating int, w io.Writer) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case export.FormatMarkdown:
		n, err := export.NewMarkdownWriter(path, maxRating).WriteAll(entries)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Exported %d movies to %s\n", n, path)
	default:
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer out.Close()

		if err := export.WriteYAML(out, entries, time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Exported %d movies to %s\n", len(entries), path)
	}
	return nil
}
