// Package codec converts between raw board text and the normalized board
// document. The two directions are inverse enough that one round trip
// reaches a fixed point: Serialize(Parse(x)) parses and re-serializes to
// the identical bytes for any x that parses at all.
package codec

import (
	"strings"

	"github.com/hpungsan/plank/internal/board"
	"github.com/hpungsan/plank/internal/errors"
)

const (
	archiveStart = "%% archive:start %%"
	archiveEnd   = "%% archive:end %%"
)

// Parse converts raw text into a board document. It fails only on
// structural problems with the frontmatter (missing block, undecodable
// mapping, missing board marker); everything in the body degrades to safe
// defaults instead of erroring, so a single bad line cannot fail the whole
// document. The returned document shares no state with the input or any
// prior parse.
func Parse(text string) (*board.Document, error) {
	text = board.NormalizeNewlines(text)
	header, body, ok := splitFrontmatter(text)
	if !ok {
		return nil, errors.NewMissingFrontmatter()
	}
	info, err := decodeFrontmatter(header)
	if err != nil {
		return nil, err
	}

	// Column ids and card ids are separate namespaces; each gets its own
	// uniqueness tracker. Section ids are not checked against the header
	// declarations because a matching id is exactly how a body section
	// attaches to its declared column.
	cardIDs := newIDDedup()
	sectionIDs := newIDDedup()
	archiveBody, body := extractArchive(body)
	archive := parseCardBlocks(archiveBody, cardIDs)
	sections := parseSections(body, sectionIDs, cardIDs)

	doc := &board.Document{
		Title:       info.title,
		Description: info.description,
		Density:     info.density,
		Columns:     mergeColumns(info.columns, sections),
		Archive:     archive,
	}
	return doc, nil
}

// section is a body column discovered under a ## heading.
type section struct {
	id    string
	title string
	cards []board.Card
}

// extractArchive removes the single optional archive block from the body
// and returns its contents. A start marker without an end marker runs to
// the end of the text; a lone end marker is ignored. One bad marker should
// not fail the document, matching the policy for malformed column entries.
func extractArchive(body string) (archive, remaining string) {
	lines := strings.Split(body, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == archiveStart {
			start = i
			break
		}
	}
	if start < 0 {
		return "", body
	}
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == archiveEnd {
			end = i
			break
		}
	}
	archive = strings.Join(lines[start+1:end], "\n")
	rest := append([]string(nil), lines[:start]...)
	if end < len(lines) {
		rest = append(rest, lines[end+1:]...)
	}
	return archive, strings.Join(rest, "\n")
}

// parseSections scans the body for column headings and assembles the card
// blocks under each. Lines before the first heading are ignored. A heading
// with no [id] token gets a fresh id; an empty title falls back to the
// placeholder.
func parseSections(body string, sectionIDs, cardIDs *idDedup) []section {
	var sections []section
	var current *section

	lines := strings.Split(body, "\n")
	for i := 0; i < len(lines); {
		sl := classifyLine(lines[i])
		switch sl.kind {
		case lineHeading:
			sections = append(sections, newSection(sl, sectionIDs))
			current = &sections[len(sections)-1]
			i++
		case lineCard:
			card, next := assembleCard(sl, lines, i+1, cardIDs)
			if current != nil {
				current.cards = append(current.cards, card)
			}
			i = next
		default:
			i++
		}
	}
	return sections
}

// parseCardBlocks assembles card blocks from text that has no headings,
// such as the archive block contents.
func parseCardBlocks(text string, dedup *idDedup) []board.Card {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var cards []board.Card
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); {
		sl := classifyLine(lines[i])
		if sl.kind != lineCard {
			i++
			continue
		}
		card, next := assembleCard(sl, lines, i+1, dedup)
		cards = append(cards, card)
		i = next
	}
	return cards
}

func newSection(sl scannedLine, dedup *idDedup) section {
	sec := section{
		id:    dedup.claim(sl.columnID),
		title: sl.columnTitle,
	}
	if sec.title == "" {
		sec.title = board.Untitled
	}
	return sec
}

// assembleCard consumes the continuation run following a card line and
// returns the normalized card plus the index of the first unconsumed line.
// Continuations are blank lines and lines indented by exactly one level;
// trailing blanks are trimmed, anchors discarded, and the first due:: line
// lifted out as the due date.
func assembleCard(sl scannedLine, lines []string, start int, dedup *idDedup) (board.Card, int) {
	var raw []string
	i := start
	for ; i < len(lines); i++ {
		cl := classifyLine(lines[i])
		if cl.kind == lineBlank {
			raw = append(raw, "")
			continue
		}
		if cl.kind == lineContinuation {
			raw = append(raw, cl.text)
			continue
		}
		break
	}

	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}

	dueDate := ""
	var desc []string
	for _, line := range raw {
		if isAnchorLine(line) {
			continue
		}
		if dueDate == "" {
			if due, ok := dueDateFrom(line); ok {
				dueDate = due
				continue
			}
		}
		desc = append(desc, line)
	}

	id := dedup.claim(sl.cardID)
	card := board.NormalizeCard(id, sl.cardTitle, strings.Join(desc, "\n"), sl.checked, dueDate)
	return card, i
}

// mergeColumns combines header-declared columns with body-discovered
// sections. Header order wins and comes first; each header column takes the
// cards of the matching body section if one exists. Sections whose id was
// never declared are appended afterward in body order with no WIP limit.
// Zero resulting columns is a valid empty board, not an error.
func mergeColumns(declared []headerColumn, sections []section) []board.Column {
	bodyCards := make(map[string][]board.Card, len(sections))
	for _, sec := range sections {
		if _, ok := bodyCards[sec.id]; !ok {
			bodyCards[sec.id] = sec.cards
		}
	}

	declaredIDs := make(map[string]bool, len(declared))
	var cols []board.Column
	for _, h := range declared {
		declaredIDs[h.id] = true
		cols = append(cols, board.Column{
			ID:       h.id,
			Title:    h.title,
			WIPLimit: board.NormalizeWIPLimit(h.wip),
			Cards:    bodyCards[h.id],
		})
	}
	appended := make(map[string]bool)
	for _, sec := range sections {
		if declaredIDs[sec.id] || appended[sec.id] {
			continue
		}
		appended[sec.id] = true
		cols = append(cols, board.Column{
			ID:    sec.id,
			Title: sec.title,
			Cards: sec.cards,
		})
	}
	return cols
}

// idDedup guarantees document-wide id uniqueness during a parse. An empty
// or already-claimed id (hand-copied blocks) is replaced with a fresh one;
// ids present in the text are otherwise kept, so re-parsing a file never
// silently renumbers entities.
type idDedup struct {
	seen map[string]bool
}

func newIDDedup() *idDedup {
	return &idDedup{seen: make(map[string]bool)}
}

func (d *idDedup) claim(id string) string {
	if id == "" || d.seen[id] {
		id = board.NewID()
	}
	d.seen[id] = true
	return id
}
