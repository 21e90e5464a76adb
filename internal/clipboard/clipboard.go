// Package clipboard converts arbitrary pasted list-like text into draft
// card entries for bulk insertion. The grammar is deliberately narrow and
// separate from the board codec: it recognizes common list shapes and falls
// back to treating any other non-blank line as a plain title.
package clipboard

import (
	"regexp"
	"strings"

	"github.com/hpungsan/plank/internal/board"
)

// Entry is one draft card produced from a pasted line.
type Entry struct {
	Title   string
	Checked bool
}

var (
	taskItemPattern    = regexp.MustCompile(`^[-*+]\s+\[([ xX])\]\s*(.*)$`)
	bulletItemPattern  = regexp.MustCompile(`^[-*+]\s+(.*)$`)
	orderedItemPattern = regexp.MustCompile(`^\d+[.)]\s+(.*)$`)
)

// ParseList converts text into a sequence of draft entries, one per
// recognized line. Task items keep their checked state; bullets, ordered
// items, and plain lines become unchecked entries. Blank lines and items
// with no title are skipped. Total: unrecognizable input simply yields
// plain-title entries, never an error.
func ParseList(text string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(board.NormalizeNewlines(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		title := line
		checked := false
		if m := taskItemPattern.FindStringSubmatch(line); m != nil {
			checked = m[1] != " "
			title = m[2]
		} else if m := bulletItemPattern.FindStringSubmatch(line); m != nil {
			title = m[1]
		} else if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
			title = m[1]
		}

		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		entries = append(entries, Entry{Title: title, Checked: checked})
	}
	return entries
}
