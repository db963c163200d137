package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marco/popcorn/internal/watched"
)

// Format selects the export output
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// WriteYAML writes the whole list and its summary as one YAML document
func WriteYAML(w io.Writer, entries []watched.Entry, now time.Time) error {
	var docNode yaml.Node
	if err := docNode.Encode(NewDocument(entries, now)); err != nil {
		return fmt.Errorf("failed to marshal watched list to YAML: %w", err)
	}
	forceQuotedFields(&docNode, "title", "year")

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&docNode); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return enc.Close()
}

// MarkdownWriter writes one Markdown file per watched movie
type MarkdownWriter struct {
	dir       string
	maxRating int
	used      map[string]string // file name -> imdb id
}

// NewMarkdownWriter creates a writer targeting dir. Ratings are rendered
// out of maxRating; a non-positive scale omits the denominator.
func NewMarkdownWriter(dir string, maxRating int) *MarkdownWriter {
	return &MarkdownWriter{dir: dir, maxRating: maxRating, used: make(map[string]string)}
}

// WriteAll writes every entry and returns the number of files written
func (w *MarkdownWriter) WriteAll(entries []watched.Entry) (int, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}
	w.used = make(map[string]string, len(entries))

	written := 0
	for _, e := range entries {
		path, err := w.WriteFile(e)
		if err != nil {
			return written, err
		}
		slog.Debug("exported movie", "id", e.ImdbID, "path", path)
		written++
	}
	return written, nil
}

// WriteFile writes a single entry and returns its path. An entry whose slug
// was already written in this run by a different movie gets the IMDb id
// appended to its file name.
func (w *MarkdownWriter) WriteFile(e watched.Entry) (string, error) {
	movie := NewMovie(e)
	content, err := GenerateMarkdown(movie, w.maxRating)
	if err != nil {
		return "", fmt.Errorf("failed to generate markdown: %w", err)
	}

	name := w.fileName(movie)
	filePath := filepath.Join(w.dir, name+".md")
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}
	return filePath, nil
}

func (w *MarkdownWriter) fileName(movie Movie) string {
	if w.used == nil {
		w.used = make(map[string]string)
	}
	name := movie.Slug
	if name == "" {
		name = movie.ImdbID
	}
	if owner, ok := w.used[name]; ok && owner != movie.ImdbID {
		slog.Warn("duplicate export slug", "slug", name, "id", movie.ImdbID, "existing", owner)
		name = name + "-" + movie.ImdbID
	}
	w.used[name] = movie.ImdbID
	return name
}

// GenerateMarkdown creates Markdown content with YAML front matter. The user
// rating is shown out of maxRating when it is positive.
func GenerateMarkdown(movie Movie, maxRating int) (string, error) {
	var sb strings.Builder

	sb.WriteString("---\n")

	// Titles like "Star Wars: Episode IV" would otherwise be emitted bare and
	// parse back as a mapping.
	var docNode yaml.Node
	if err := docNode.Encode(movie); err != nil {
		return "", fmt.Errorf("failed to marshal movie to YAML: %w", err)
	}
	forceQuotedFields(&docNode, "title", "year")
	yamlData, err := yaml.Marshal(&docNode)
	if err != nil {
		return "", fmt.Errorf("failed to marshal movie to YAML: %w", err)
	}

	sb.Write(yamlData)
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# %s", movie.Title))
	if movie.Year != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", movie.Year))
	}
	sb.WriteString("\n\n")

	sb.WriteString("## My Rating\n\n")
	if maxRating > 0 {
		sb.WriteString(fmt.Sprintf("- **Rating**: %s/%d\n", formatScore(movie.UserRating), maxRating))
	} else {
		sb.WriteString(fmt.Sprintf("- **Rating**: %s\n", formatScore(movie.UserRating)))
	}
	sb.WriteString(fmt.Sprintf("- **IMDb**: %s\n", formatScore(movie.ImdbRating)))
	if movie.Runtime > 0 {
		sb.WriteString(fmt.Sprintf("- **Runtime**: %d minutes\n", movie.Runtime))
	}

	if movie.ImdbID != "" {
		sb.WriteString("\n## Links\n\n")
		sb.WriteString(fmt.Sprintf("- [View on IMDb](https://www.imdb.com/title/%s)\n", movie.ImdbID))
	}

	return sb.String(), nil
}

func formatScore(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// forceQuotedFields sets DoubleQuotedStyle on the named scalar fields of every
// mapping in the document.
func forceQuotedFields(node *yaml.Node, keys ...string) {
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}

	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		if n.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(n.Content); i += 2 {
				v := n.Content[i+1]
				if keySet[n.Content[i].Value] && v.Kind == yaml.ScalarNode {
					v.Style = yaml.DoubleQuotedStyle
				}
			}
		}
		for _, c := range n.Content {
			walk(c)
		}
	}
	walk(node)
}
