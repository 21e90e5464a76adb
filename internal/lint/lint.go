// Package lint reports advisory problems in a board document. Nothing here
// blocks an operation: WIP limits in particular are flagged when exceeded,
// never enforced.
package lint

import (
	"sort"

	"github.com/hpungsan/plank/internal/board"
)

// WIPViolation records a column holding more cards than its advisory limit.
type WIPViolation struct {
	ColumnID    string `json:"column_id"`
	ColumnTitle string `json:"column_title"`
	Count       int    `json:"count"`
	Limit       int    `json:"limit"`
}

// Result contains the findings for one document.
type Result struct {
	Valid         bool           `json:"valid"`
	WIPViolations []WIPViolation `json:"wip_violations,omitempty"`

	// UntitledCards counts cards whose title is the placeholder,
	// usually left over from empty input. Informational only.
	UntitledCards int `json:"untitled_cards,omitempty"`

	// DuplicateIDs lists ids appearing more than once. The codec never
	// produces these; they can only come from documents assembled by
	// hand.
	DuplicateIDs []string `json:"duplicate_ids,omitempty"`
}

// Check lints doc. Valid is false when a WIP limit is exceeded or an id is
// duplicated; untitled cards are reported but do not invalidate.
func Check(doc *board.Document) *Result {
	result := &Result{Valid: true}

	seen := make(map[string]int)
	for i := range doc.Columns {
		col := &doc.Columns[i]
		seen[col.ID]++
		if col.WIPLimit != nil && len(col.Cards) > *col.WIPLimit {
			result.WIPViolations = append(result.WIPViolations, WIPViolation{
				ColumnID:    col.ID,
				ColumnTitle: col.Title,
				Count:       len(col.Cards),
				Limit:       *col.WIPLimit,
			})
		}
		for _, card := range col.Cards {
			seen[card.ID]++
			if card.Title == board.Untitled {
				result.UntitledCards++
			}
		}
	}
	for _, card := range doc.Archive {
		seen[card.ID]++
		if card.Title == board.Untitled {
			result.UntitledCards++
		}
	}

	for id, n := range seen {
		if n > 1 {
			result.DuplicateIDs = append(result.DuplicateIDs, id)
		}
	}
	sort.Strings(result.DuplicateIDs)

	result.Valid = len(result.WIPViolations) == 0 && len(result.DuplicateIDs) == 0
	return result
}
