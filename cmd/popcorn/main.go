package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/marco/popcorn/internal/config"
	"github.com/marco/popcorn/internal/logger"
	"github.com/marco/popcorn/internal/omdb"
	"github.com/marco/popcorn/internal/storage"
	"github.com/marco/popcorn/internal/watched"
)

var (
	configPath   = flag.String("config", config.DefaultPath, "Path to configuration file")
	verbose      = flag.Bool("verbose", false, "Show detailed logging")
	searchQuery  = flag.String("search", "", "Search for movies, print the results and exit")
	listWatched  = flag.Bool("watched", false, "Print the watched list and its summary, then exit")
	exportPath   = flag.String("export", "", "Export the watched list to this file (yaml) or directory (markdown) and exit")
	exportFormat = flag.String("export-format", "yaml", "Export format: yaml or markdown")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if *verbose {
		level = "debug"
	}

	interactive := *searchQuery == "" && !*listWatched && *exportPath == ""
	var logOut io.Writer = os.Stderr
	if interactive {
		// The terminal belongs to the UI; logs go to a file.
		logPath, err := config.ExpandHome(cfg.Logging.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving log file: %v\n", err)
			os.Exit(1)
		}
		f, err := logger.OpenFile(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger.Init(logOut, level, cfg.Logging.Format)

	client := omdb.NewClient(omdb.ClientConfig{
		APIKey:  cfg.OMDB.APIKey,
		BaseURL: cfg.OMDB.BaseURL,
		Timeout: cfg.OMDB.Timeout(),
	})

	if *searchQuery != "" {
		if err := runSearch(client, *searchQuery, cfg.Search.MinQueryLength, os.Stdout); err != nil {
			msg := omdb.Message(err)
			if errors.Is(err, errQueryTooShort) {
				msg = err.Error()
			}
			fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
			os.Exit(1)
		}
		return
	}

	dbPath, err := config.ExpandHome(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving storage path: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	list := watched.Open(store, cfg.Storage.Key)
	slog.Debug("watched list loaded", "path", dbPath, "count", list.Len())

	switch {
	case *listWatched:
		printWatched(os.Stdout, list.Entries())
	case *exportPath != "":
		if err := runExport(list.Entries(), *exportPath, *exportFormat, cfg.UI.MaxRating, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting watched list: %v\n", err)
			os.Exit(1)
		}
	default:
		if err := runInteractive(cfg, client, store, list); err != nil {
			slog.Error("ui exited with error", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
