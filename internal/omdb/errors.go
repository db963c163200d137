package omdb

import (
	"context"
	"errors"
	"net"
	"net/url"
)

var (
	// ErrNotFound is returned when the database answers with a negative response
	ErrNotFound = errors.New("movie not found")
	// ErrFetch covers transport failures, unexpected status codes and undecodable bodies
	ErrFetch = errors.New("fetch failed")
	// ErrTimeout is returned when a request exceeds the client deadline
	ErrTimeout = errors.New("request timed out")
	// ErrCanceled is returned when the caller canceled the request, usually
	// because a newer request superseded it
	ErrCanceled = errors.New("request canceled")
)

// Message returns the user-visible text for an error returned by the client.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "Movie not found"
	case errors.Is(err, ErrTimeout):
		return "Request timed out"
	case errors.Is(err, ErrCanceled):
		return ""
	default:
		return "Something went wrong with fetching movies"
	}
}

// classify maps a transport error to one of the package error kinds.
// parent is the caller's context, reqCtx the deadline-bound child.
func classify(parent, reqCtx context.Context, err error) error {
	if parent.Err() != nil {
		return errors.Join(ErrCanceled, err)
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Join(ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.Join(ErrTimeout, err)
	}

	return errors.Join(ErrFetch, err)
}
