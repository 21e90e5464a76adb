// Package board defines the normalized in-memory board document model:
// a titled, ordered set of columns holding cards, plus a flat archive of
// cards removed from active columns without deletion.
package board

import "sort"

// Untitled is substituted for column and card titles that are empty after
// trimming.
const Untitled = "Untitled"

// UntitledBoard is substituted for a blank board title.
const UntitledBoard = "Untitled Board"

// Density controls how the host renders the board. It is persisted but has
// no effect on any core operation.
type Density string

const (
	DensityNormal  Density = "normal"
	DensityCompact Density = "compact"
)

// ParseDensity coerces unknown values to DensityNormal.
func ParseDensity(s string) Density {
	if Density(s) == DensityCompact {
		return DensityCompact
	}
	return DensityNormal
}

// Card is a single task unit. Tags and SearchText are derived from the
// other fields and are recomputed by NormalizeCard, the only construction
// path for cards; they are never set independently.
type Card struct {
	ID          string
	Title       string
	Description string
	Checked     bool

	// DueDate is either empty or a YYYY-MM-DD string.
	DueDate string

	// Tags holds the lowercased #tags found in Title and Description,
	// deduplicated and sorted.
	Tags []string

	// SearchText is the lowercase join of title, description, tags, and
	// due date, used only for filtering.
	SearchText string
}

// Column is an ordered lane of cards. WIPLimit is advisory: exceeding it is
// flagged by lint, never blocked. A nil limit means unlimited.
type Column struct {
	ID       string
	Title    string
	WIPLimit *int
	Cards    []Card
}

// Document is the full in-memory representation of one board. The order of
// Columns is the board's lane order; Archive preserves the order in which
// cards were archived.
type Document struct {
	Title       string
	Description string
	Density     Density
	Columns     []Column
	Archive     []Card
}

// NewDocument returns an empty board with default metadata.
func NewDocument() *Document {
	return &Document{
		Title:   UntitledBoard,
		Density: DensityNormal,
	}
}

// Clone returns a structurally independent deep copy of the document.
// Everything handed across the store boundary goes through Clone so callers
// cannot corrupt the canonical document by mutating a returned value.
func (d *Document) Clone() *Document {
	out := &Document{
		Title:       d.Title,
		Description: d.Description,
		Density:     d.Density,
	}
	if d.Columns != nil {
		out.Columns = make([]Column, len(d.Columns))
		for i, col := range d.Columns {
			out.Columns[i] = col.Clone()
		}
	}
	out.Archive = CloneCards(d.Archive)
	return out
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	out := c
	if c.WIPLimit != nil {
		limit := *c.WIPLimit
		out.WIPLimit = &limit
	}
	out.Cards = CloneCards(c.Cards)
	return out
}

// Clone returns a deep copy of the card.
func (c Card) Clone() Card {
	out := c
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	return out
}

// CloneCards deep-copies a card slice. Returns nil for a nil input.
func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

// FindColumn returns the index of the column with the given id, or -1.
func (d *Document) FindColumn(id string) int {
	for i := range d.Columns {
		if d.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// AllTags returns the sorted distinct tag set across every active column's
// cards. Archived cards are not included.
func (d *Document) AllTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for i := range d.Columns {
		for _, card := range d.Columns[i].Cards {
			for _, tag := range card.Tags {
				if !seen[tag] {
					seen[tag] = true
					tags = append(tags, tag)
				}
			}
		}
	}
	sort.Strings(tags)
	return tags
}
