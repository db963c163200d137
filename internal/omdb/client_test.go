package omdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Search(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "secret" {
			t.Errorf("expected apikey=secret, got %q", got)
		}
		if got := r.URL.Query().Get("s"); got != "interstellar" {
			t.Errorf("expected s=interstellar, got %q", got)
		}
		fmt.Fprint(w, `{"Search":[
			{"Title":"Interstellar","Year":"2014","imdbID":"tt0816692","Type":"movie","Poster":"https://img/1.jpg"},
			{"Title":"Interstellar Wars","Year":"2016","imdbID":"tt5083736","Type":"movie","Poster":"N/A"}
		],"totalResults":"2","Response":"True"}`)
	})

	c := NewClient(ClientConfig{APIKey: "secret", BaseURL: srv.URL})
	movies, err := c.Search(context.Background(), "interstellar")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	first := movies[0]
	if first.ImdbID != "tt0816692" || first.Title != "Interstellar" || first.Year != "2014" || first.Poster != "https://img/1.jpg" {
		t.Errorf("unexpected first result: %+v", first)
	}
}

func TestClient_SearchNotFound(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response":"False","Error":"Movie not found!"}`)
	})

	c := NewClient(ClientConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Search(context.Background(), "qwertyuiop")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := Message(err); got != "Movie not found" {
		t.Errorf("Message = %q, want %q", got, "Movie not found")
	}
}

func TestClient_FetchFailures(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"Response":"False","Error":"Invalid API key!"}`, http.StatusUnauthorized)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Search":[`)
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.handler)
			c := NewClient(ClientConfig{APIKey: "k", BaseURL: srv.URL})

			_, err := c.Search(context.Background(), "matrix")
			if !errors.Is(err, ErrFetch) {
				t.Fatalf("expected ErrFetch, got %v", err)
			}
			if got := Message(err); got != "Something went wrong with fetching movies" {
				t.Errorf("unexpected message %q", got)
			}
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(ClientConfig{APIKey: "k", BaseURL: url})
	_, err := c.Search(context.Background(), "matrix")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	c := NewClient(ClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Movie(context.Background(), "tt0816692")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if got := Message(err); got != "Request timed out" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestClient_CanceledByCaller(t *testing.T) {
	var hits int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(ClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 5 * time.Second})

	done := make(chan error, 1)
	go func() {
		_, err := c.Search(ctx, "matrix")
		done <- err
	}()

	// Give the request a moment to reach the server.
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&hits) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	err := <-done
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if Message(err) != "" {
		t.Errorf("canceled requests should have no user message, got %q", Message(err))
	}
}

func TestClient_Movie(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("i"); got != "tt0816692" {
			t.Errorf("expected i=tt0816692, got %q", got)
		}
		fmt.Fprint(w, `{"Title":"Interstellar","Year":"2014","Released":"07 Nov 2014",
			"Runtime":"169 min","Genre":"Adventure, Drama, Sci-Fi","Director":"Christopher Nolan",
			"Actors":"Matthew McConaughey, Anne Hathaway","Plot":"A team of explorers travel through a wormhole.",
			"Poster":"https://img/1.jpg","imdbRating":"8.7","imdbID":"tt0816692","Response":"True"}`)
	})

	c := NewClient(ClientConfig{APIKey: "k", BaseURL: srv.URL})
	d, err := c.Movie(context.Background(), "tt0816692")
	if err != nil {
		t.Fatalf("Movie failed: %v", err)
	}

	if d.Title != "Interstellar" || d.Runtime != "169 min" || d.Director != "Christopher Nolan" {
		t.Errorf("unexpected detail: %+v", d)
	}
	if d.Genre != "Adventure, Drama, Sci-Fi" || d.Released != "07 Nov 2014" {
		t.Errorf("unexpected detail: %+v", d)
	}
	if d.Rating() != 8.7 {
		t.Errorf("Rating() = %v, want 8.7", d.Rating())
	}
}

func TestClient_MovieNotFound(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response":"False","Error":"Incorrect IMDb ID."}`)
	})

	c := NewClient(ClientConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.Movie(context.Background(), "bogus"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMovieDetail_Rating(t *testing.T) {
	testCases := []struct {
		raw  string
		want float64
	}{
		{"8.7", 8.7},
		{" 6.0 ", 6},
		{"N/A", 0},
		{"", 0},
	}

	for _, tc := range testCases {
		d := MovieDetail{ImdbRating: tc.raw}
		if got := d.Rating(); got != tc.want {
			t.Errorf("Rating(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestMessage(t *testing.T) {
	if Message(nil) != "" {
		t.Error("expected empty message for nil error")
	}
	if Message(errors.New("other")) != "Something went wrong with fetching movies" {
		t.Error("expected generic message for unknown errors")
	}
}
