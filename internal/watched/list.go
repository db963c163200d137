package watched

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/marco/popcorn/internal/storage"
)

// ErrAlreadyWatched is returned by Add when the identifier is already in the list
var ErrAlreadyWatched = errors.New("movie already in watched list")

// List is the ordered watched sequence, persisted under a single store key
// after every mutation. It is not safe for concurrent use; the UI event loop
// owns it.
type List struct {
	store   storage.Store
	key     string
	entries []Entry
}

// Open loads the list stored under key, starting empty when nothing usable is stored.
func Open(store storage.Store, key string) *List {
	l := &List{store: store, key: key}
	l.entries = l.load()
	slog.Info("watched list loaded", "key", key, "count", len(l.entries))
	return l
}

func (l *List) load() []Entry {
	entries := storage.Load(l.store, l.key, []Entry{})
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Entries returns a copy of the list in insertion order.
func (l *List) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// Find returns the entry with the given identifier.
func (l *List) Find(id string) (Entry, bool) {
	for _, e := range l.entries {
		if e.ImdbID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether id is in the list.
func (l *List) Contains(id string) bool {
	_, ok := l.Find(id)
	return ok
}

// Add appends e and persists the list. Duplicate identifiers are rejected
// with ErrAlreadyWatched, and a failed store write is returned; both leave
// the list unchanged.
func (l *List) Add(e Entry) error {
	if l.Contains(e.ImdbID) {
		return fmt.Errorf("%w: %s", ErrAlreadyWatched, e.ImdbID)
	}

	next := append(slices.Clone(l.entries), e)
	if err := l.save(next); err != nil {
		return err
	}
	l.entries = next
	slog.Info("watched entry added", "id", e.ImdbID, "title", e.Title, "user_rating", e.UserRating)
	return nil
}

// Remove drops every entry with the given identifier and persists the list.
// Removing an absent identifier is a no-op apart from the re-save.
// The list is only changed once the store write succeeded.
func (l *List) Remove(id string) error {
	next := slices.DeleteFunc(slices.Clone(l.entries), func(e Entry) bool {
		return e.ImdbID == id
	})
	if err := l.save(next); err != nil {
		return err
	}
	removed := len(l.entries) - len(next)
	l.entries = next
	slog.Info("watched entry removed", "id", id, "removed", removed)
	return nil
}

// Reload re-reads the stored list and reports whether it differed from memory.
func (l *List) Reload() bool {
	entries := l.load()
	if reflect.DeepEqual(entries, l.entries) {
		return false
	}
	l.entries = entries
	slog.Info("watched list reloaded from store", "count", len(entries))
	return true
}

func (l *List) save(entries []Entry) error {
	if err := storage.Save(l.store, l.key, entries); err != nil {
		slog.Error("failed to persist watched list", "key", l.key, "error", err)
		return err
	}
	return nil
}
