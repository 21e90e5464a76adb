package codec

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/plank/internal/board"
	"github.com/hpungsan/plank/internal/errors"
)

// Version is the board file format version written on every serialize.
const Version = 1

// delimiter is the frontmatter fence line.
const delimiter = "---"

// frontmatter is the canonical header shape written by Serialize. Parsing
// does not use it directly: hand-edited headers are decoded leniently into
// a generic mapping instead, so one bad field cannot fail the document.
type frontmatter struct {
	Kanban           bool                `yaml:"kanban"`
	KanbanVersion    int                 `yaml:"kanbanVersion"`
	BoardTitle       string              `yaml:"boardTitle"`
	BoardDescription string              `yaml:"boardDescription,omitempty"`
	Density          string              `yaml:"density"`
	Columns          []frontmatterColumn `yaml:"columns"`
}

type frontmatterColumn struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	WIPLimit *int   `yaml:"wipLimit"`
}

// headerInfo is the lenient parse result of a frontmatter block.
type headerInfo struct {
	title       string
	description string
	density     board.Density
	columns     []headerColumn
}

// headerColumn is a column declaration from the header, before merging with
// body sections.
type headerColumn struct {
	id    string
	title string
	wip   *int
}

// splitFrontmatter separates the leading frontmatter block from the body.
// The text must start with a delimiter line; the block runs to the next
// delimiter line (which may be the last line of the text).
func splitFrontmatter(text string) (header, body string, ok bool) {
	if !strings.HasPrefix(text, delimiter+"\n") {
		return "", "", false
	}
	rest := text[len(delimiter)+1:]
	if end := strings.Index(rest, "\n"+delimiter+"\n"); end >= 0 {
		return rest[:end+1], rest[end+len(delimiter)+2:], true
	}
	if trimmed, found := strings.CutSuffix(rest, "\n"+delimiter); found {
		return trimmed + "\n", "", true
	}
	return "", "", false
}

// decodeFrontmatter interprets a frontmatter block, distinguishing
// "not a board" from "malformed board" so callers can route the two cases
// differently. Field-level problems never error: a blank title gets the
// default placeholder, an unknown density is coerced, and malformed column
// entries are dropped.
func decodeFrontmatter(header string) (*headerInfo, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return nil, errors.NewMalformedFrontmatter(err)
	}
	marker, ok := raw["kanban"].(bool)
	if !ok || !marker {
		return nil, errors.NewNotBoard()
	}

	info := &headerInfo{
		title:       board.UntitledBoard,
		description: stringField(raw, "boardDescription"),
		density:     board.ParseDensity(stringField(raw, "density")),
	}
	if title := strings.TrimSpace(stringField(raw, "boardTitle")); title != "" {
		info.title = title
	}
	info.columns = decodeHeaderColumns(raw["columns"])
	return info, nil
}

// decodeHeaderColumns extracts the ordered column declarations. Entries
// without a non-empty id and title are dropped silently; a second entry
// reusing an id is also dropped, since column ids are unique per document.
func decodeHeaderColumns(v any) []headerColumn {
	entries, ok := v.([]any)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var cols []headerColumn
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := strings.TrimSpace(stringField(m, "id"))
		title := strings.TrimSpace(stringField(m, "title"))
		if id == "" || title == "" || seen[id] {
			continue
		}
		seen[id] = true
		cols = append(cols, headerColumn{
			id:    id,
			title: title,
			wip:   intField(m, "wipLimit"),
		})
	}
	return cols
}

// marshalFrontmatter renders the canonical header for doc. The column list
// is always present (empty boards get "columns: []") and wipLimit is always
// emitted, null when unset, so the header shape is stable across round
// trips.
func marshalFrontmatter(doc *board.Document) string {
	fm := frontmatter{
		Kanban:           true,
		KanbanVersion:    Version,
		BoardTitle:       doc.Title,
		BoardDescription: doc.Description,
		Density:          string(board.ParseDensity(string(doc.Density))),
		Columns:          make([]frontmatterColumn, len(doc.Columns)),
	}
	for i, col := range doc.Columns {
		fm.Columns[i] = frontmatterColumn{
			ID:       col.ID,
			Title:    col.Title,
			WIPLimit: col.WIPLimit,
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	// Encoding a flat struct of strings, ints, and bools cannot fail.
	_ = enc.Encode(fm)
	_ = enc.Close()
	return buf.String()
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// intField reads a non-negative integer field; any other value (missing,
// null, negative, wrong type) yields nil.
func intField(m map[string]any, key string) *int {
	n, ok := m[key].(int)
	if !ok || n < 0 {
		return nil
	}
	return &n
}
