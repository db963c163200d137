// Package omdb is a client for the OMDb movie database API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.omdbapi.com/"

// Client represents an OMDb API client
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// ClientConfig holds configuration for the OMDb client
type ClientConfig struct {
	APIKey  string
	BaseURL string
	// Timeout bounds every request, including reading the body.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient creates a new OMDb API client
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
	}
}

// Search looks up movies whose title matches query
func (c *Client) Search(ctx context.Context, query string) ([]MovieSummary, error) {
	params := url.Values{}
	params.Set("s", query)

	var resp SearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}

	if !resp.ok() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, resp.Error)
	}

	slog.Debug("search completed", "query", query, "results", len(resp.Search))
	return resp.Search, nil
}

// Movie fetches the full record for one identifier
func (c *Client) Movie(ctx context.Context, id string) (*MovieDetail, error) {
	params := url.Values{}
	params.Set("i", id)

	var resp detailResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to get movie details: %w", err)
	}

	if !resp.ok() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, resp.Error)
	}

	slog.Debug("movie details fetched", "id", id, "title", resp.Title)
	return &resp.MovieDetail, nil
}

// get issues a GET request bounded by the client timeout and decodes the JSON body into v
func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params.Set("apikey", c.apiKey)
	requestURL := c.baseURL
	if strings.Contains(requestURL, "?") {
		requestURL += "&" + params.Encode()
	} else {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: creating request: %w", ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(ctx, reqCtx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: OMDb API error (status %d): %s", ErrFetch, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if ctx.Err() != nil || reqCtx.Err() != nil {
			return classify(ctx, reqCtx, err)
		}
		return errors.Join(ErrFetch, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}
