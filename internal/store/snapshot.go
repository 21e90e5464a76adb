package store

import (
	"strings"

	"github.com/hpungsan/plank/internal/board"
)

// Snapshot is the read-only view pushed to subscribers after every
// mutation. Board is a deep copy of the canonical document; VisibleColumns
// applies the active filter without ever touching the canonical data.
type Snapshot struct {
	Board          board.Document
	VisibleColumns []board.Column

	// Tags is the sorted distinct tag set across all active columns,
	// for filter suggestion.
	Tags []string

	Filter Filter
}

// Snapshot recomputes the derived view from the canonical document and the
// active filter. With an empty filter the visible columns are the full
// column list and no filtering work is performed.
func (s *Store) Snapshot() Snapshot {
	doc := s.doc.Clone()
	snap := Snapshot{
		Board:  *doc,
		Tags:   doc.AllTags(),
		Filter: s.filter,
	}
	if s.filter.isEmpty() {
		snap.VisibleColumns = doc.Columns
		return snap
	}

	query := strings.ToLower(strings.TrimSpace(s.filter.Query))
	cols := make([]board.Column, len(doc.Columns))
	for i, col := range doc.Columns {
		var kept []board.Card
		for _, card := range col.Cards {
			if matchesFilter(card, query, s.filter.Tag) {
				kept = append(kept, card)
			}
		}
		col.Cards = kept
		cols[i] = col
	}
	snap.VisibleColumns = cols
	return snap
}

// matchesFilter applies both filter terms; an empty term always matches.
func matchesFilter(card board.Card, query, tag string) bool {
	if query != "" && !strings.Contains(card.SearchText, query) {
		return false
	}
	if tag != "" && !hasTag(card.Tags, tag) {
		return false
	}
	return true
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
