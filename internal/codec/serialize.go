package codec

import (
	"fmt"
	"strings"

	"github.com/hpungsan/plank/internal/board"
)

// Serialize renders doc in canonical text form. It is total: documents are
// always already normalized, so there is nothing to reject. The layout is
// the frontmatter block, one section per column in lane order, and the
// archive block last (omitted when the archive is empty), with exactly one
// trailing newline.
func Serialize(doc *board.Document) string {
	parts := []string{delimiter + "\n" + marshalFrontmatter(doc) + delimiter}

	for i := range doc.Columns {
		parts = append(parts, serializeColumn(doc.Columns[i]))
	}

	if len(doc.Archive) > 0 {
		blocks := []string{archiveStart}
		for _, card := range doc.Archive {
			blocks = append(blocks, cardBlock(card))
		}
		blocks = append(blocks, archiveEnd)
		parts = append(parts, strings.Join(blocks, "\n\n"))
	}

	return strings.Join(parts, "\n\n") + "\n"
}

func serializeColumn(col board.Column) string {
	blocks := []string{fmt.Sprintf("## [%s] %s", col.ID, col.Title)}
	for _, card := range col.Cards {
		blocks = append(blocks, cardBlock(card))
	}
	return strings.Join(blocks, "\n\n")
}

// cardBlock renders one card without a trailing newline: the title line,
// the regenerated anchor, indented description lines (blank lines stay
// unindented), and the due-date line last.
func cardBlock(card board.Card) string {
	box := " "
	if card.Checked {
		box = "x"
	}
	lines := []string{
		fmt.Sprintf("- [%s] [%s] %s", box, card.ID, card.Title),
		fmt.Sprintf("  ^%s", card.ID),
	}
	if card.Description != "" {
		for _, line := range strings.Split(card.Description, "\n") {
			if line == "" {
				lines = append(lines, "")
			} else {
				lines = append(lines, "  "+line)
			}
		}
	}
	if card.DueDate != "" {
		lines = append(lines, "  due:: "+card.DueDate)
	}
	return strings.Join(lines, "\n")
}
