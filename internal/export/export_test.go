package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marco/popcorn/internal/watched"
)

func intPtr(n int) *int { return &n }

func sampleEntries() []watched.Entry {
	return []watched.Entry{
		{ImdbID: "tt0076759", Title: "Star Wars: Episode IV - A New Hope", Year: "1977", ImdbRating: 8.6, UserRating: 9, Runtime: intPtr(121)},
		{ImdbID: "tt0903747", Title: "Breaking Bad", Year: "2008–2013", ImdbRating: 9.5, UserRating: 10},
	}
}

func TestGenerateSlug(t *testing.T) {
	testCases := []struct {
		title string
		year  string
		want  string
	}{
		{"The Matrix", "1999", "the-matrix-1999"},
		{"Star Wars: Episode IV - A New Hope", "1977", "star-wars-episode-iv-a-new-hope-1977"},
		{"Breaking Bad", "2008–2013", "breaking-bad-2008"},
		{"Amélie", "2001", "amlie-2001"},
		{"Up", "", "up"},
		{"Up", "N/A", "up"},
		{"???", "2020", "2020"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := GenerateSlug(tc.title, tc.year); got != tc.want {
				t.Errorf("GenerateSlug(%q, %q) = %q, want %q", tc.title, tc.year, got, tc.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"csv", "", true},
	}

	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteYAML(&buf, sampleEntries(), now); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	if !strings.Contains(buf.String(), `title: "Star Wars: Episode IV - A New Hope"`) {
		t.Errorf("expected quoted title, got:\n%s", buf.String())
	}

	var doc Document
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}
	if !doc.ExportedAt.Equal(now) {
		t.Errorf("ExportedAt = %v, want %v", doc.ExportedAt, now)
	}
	if doc.Summary.Count != 2 || doc.Summary.AvgUserRating != 9.5 || doc.Summary.AvgRuntime != 121 {
		t.Errorf("unexpected summary %+v", doc.Summary)
	}
	if len(doc.Movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(doc.Movies))
	}
	if doc.Movies[0].Slug != "star-wars-episode-iv-a-new-hope-1977" || doc.Movies[0].Runtime != 121 {
		t.Errorf("unexpected first movie %+v", doc.Movies[0])
	}
	if doc.Movies[1].Runtime != 0 || doc.Movies[1].Year != "2008–2013" {
		t.Errorf("unexpected second movie %+v", doc.Movies[1])
	}
}

func TestWriteYAML_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, nil, time.Now()); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	var doc Document
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}
	if doc.Summary != (Summary{}) || len(doc.Movies) != 0 {
		t.Errorf("expected empty export, got %+v", doc)
	}
}

func TestGenerateMarkdown(t *testing.T) {
	content, err := GenerateMarkdown(NewMovie(sampleEntries()[0]), 10)
	if err != nil {
		t.Fatalf("GenerateMarkdown failed: %v", err)
	}

	if !strings.HasPrefix(content, "---\n") {
		t.Error("expected front matter")
	}
	parts := strings.SplitN(content, "---\n", 3)
	if len(parts) != 3 {
		t.Fatalf("expected front matter delimiters, got:\n%s", content)
	}

	var fm Movie
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		t.Fatalf("front matter does not parse: %v", err)
	}
	if fm.Title != "Star Wars: Episode IV - A New Hope" || fm.UserRating != 9 || fm.ImdbID != "tt0076759" {
		t.Errorf("unexpected front matter %+v", fm)
	}

	for _, s := range []string{
		"# Star Wars: Episode IV - A New Hope (1977)",
		"- **Rating**: 9/10",
		"- **IMDb**: 8.6",
		"- **Runtime**: 121 minutes",
		"https://www.imdb.com/title/tt0076759",
	} {
		if !strings.Contains(parts[2], s) {
			t.Errorf("body missing %q", s)
		}
	}
}

func TestMarkdownWriter_WriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "watched")
	w := NewMarkdownWriter(dir, 10)

	n, err := w.WriteAll(sampleEntries())
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if n != 2 {
		t.Errorf("wrote %d files, want 2", n)
	}

	for _, name := range []string{"star-wars-episode-iv-a-new-hope-1977.md", "breaking-bad-2008.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestMarkdownWriter_FallsBackToID(t *testing.T) {
	w := NewMarkdownWriter(t.TempDir(), 10)
	path, err := w.WriteFile(watched.Entry{ImdbID: "tt123", Title: "???"})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Base(path) != "tt123.md" {
		t.Errorf("path = %s, want tt123.md", path)
	}
}

func TestGenerateMarkdown_RatingScale(t *testing.T) {
	movie := NewMovie(watched.Entry{ImdbID: "tt0133093", Title: "The Matrix", Year: "1999", UserRating: 4})

	testCases := []struct {
		maxRating int
		want      string
	}{
		{5, "- **Rating**: 4/5\n"},
		{10, "- **Rating**: 4/10\n"},
		{0, "- **Rating**: 4\n"},
	}

	for _, tc := range testCases {
		content, err := GenerateMarkdown(movie, tc.maxRating)
		if err != nil {
			t.Fatalf("GenerateMarkdown failed: %v", err)
		}
		if !strings.Contains(content, tc.want) {
			t.Errorf("maxRating=%d: body missing %q:\n%s", tc.maxRating, tc.want, content)
		}
	}
}

func TestMarkdownWriter_SameTitleAndYear(t *testing.T) {
	dir := t.TempDir()
	w := NewMarkdownWriter(dir, 10)

	entries := []watched.Entry{
		{ImdbID: "tt0099726", Title: "Hamlet", Year: "1990", UserRating: 7},
		{ImdbID: "tt0171359", Title: "Hamlet", Year: "1990", UserRating: 5},
	}
	n, err := w.WriteAll(entries)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if n != 2 {
		t.Errorf("wrote %d files, want 2", n)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files on disk, got %d", len(files))
	}

	for name, id := range map[string]string{
		"hamlet-1990.md":           "tt0099726",
		"hamlet-1990-tt0171359.md": "tt0171359",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("expected %s: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), id) {
			t.Errorf("%s does not describe %s", name, id)
		}
	}

	// A second run starts fresh and reuses the same names.
	if _, err := w.WriteAll(entries[:1]); err != nil {
		t.Fatalf("second WriteAll failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "hamlet-1990.md")); err != nil {
		t.Errorf("expected hamlet-1990.md after rerun: %v", err)
	}
}
