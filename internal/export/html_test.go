package export

import (
	"strings"
	"testing"

	"github.com/hpungsan/plank/internal/board"
)

func TestHTMLRendersBoard(t *testing.T) {
	limit := 2
	doc := &board.Document{
		Title:       "Sprint <12>",
		Description: "board for *week* twelve",
		Density:     board.DensityNormal,
		Columns: []board.Column{
			{
				ID:       "todo",
				Title:    "To do",
				WIPLimit: &limit,
				Cards: []board.Card{
					board.NormalizeCard("c1", "Fix crash #urgent", "see the *stack trace*", false, "2026-03-01"),
					board.NormalizeCard("c2", "Done thing", "", true, ""),
				},
			},
		},
		Archive: []board.Card{
			board.NormalizeCard("c3", "Old", "", true, ""),
		},
	}

	page, err := HTML(doc)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(page, "Sprint &lt;12&gt;") {
		t.Error("board title should be escaped")
	}
	if strings.Contains(page, "<12>") {
		t.Error("raw title leaked into the page")
	}
	if !strings.Contains(page, "<em>week</em>") {
		t.Error("board description markdown not rendered")
	}
	if !strings.Contains(page, "<em>stack trace</em>") {
		t.Error("card description markdown not rendered")
	}
	if !strings.Contains(page, "Fix crash #urgent") {
		t.Error("card title missing")
	}
	if !strings.Contains(page, "due 2026-03-01") {
		t.Error("due date missing")
	}
	if !strings.Contains(page, "2/2") {
		t.Error("wip display missing")
	}
	if !strings.Contains(page, "Archive") || !strings.Contains(page, "Old") {
		t.Error("archive section missing")
	}
}

func TestHTMLEmptyBoard(t *testing.T) {
	page, err := HTML(board.NewDocument())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(page, board.UntitledBoard) {
		t.Error("default title missing")
	}
	if strings.Contains(page, "Archive") {
		t.Error("empty archive should not render a section")
	}
}
