package codec

import (
	"regexp"
	"strings"
)

// The body grammar is line-oriented. Every line is classified into one of
// five kinds before any structural assembly, which keeps the merge and
// indent logic testable independently of the patterns:
//
//	heading       ## [<columnId>] <columnTitle>
//	card          - [ |x|X] [<cardId>] <title>
//	continuation  blank, or indented by one level (two spaces or one tab)
//	other         anything else
//
// Due-date and anchor lines are sub-kinds of continuation content and are
// recognized after the indent level has been stripped.
type lineKind int

const (
	lineOther lineKind = iota
	lineBlank
	lineHeading
	lineCard
	lineContinuation
)

type scannedLine struct {
	kind lineKind

	// heading fields; id is empty when the [id] prefix is absent or empty
	columnID    string
	columnTitle string

	// card fields
	checked   bool
	cardID    string
	cardTitle string

	// continuation text with one indent level removed
	text string
}

var (
	headingPattern = regexp.MustCompile(`^##\s+(.*)$`)
	cardPattern    = regexp.MustCompile(`^-\s+\[([ xX])\]\s*(.*)$`)

	// bracketIDPattern splits a leading [id] token off a heading or card
	// remainder.
	bracketIDPattern = regexp.MustCompile(`^\[([^\[\]]*)\]\s*(.*)$`)

	anchorPattern  = regexp.MustCompile(`^\^\S+$`)
	dueLinePattern = regexp.MustCompile(`^due::\s*(\d{4}-\d{2}-\d{2})\s*$`)
)

// classifyLine assigns one of the five line kinds. Continuation status is
// purely lexical here; whether a continuation actually belongs to a card is
// decided by the assembly pass (a continuation with no open card is
// ignored).
func classifyLine(line string) scannedLine {
	if strings.TrimSpace(line) == "" {
		return scannedLine{kind: lineBlank}
	}
	if m := cardPattern.FindStringSubmatch(line); m != nil {
		sl := scannedLine{kind: lineCard, checked: m[1] != " "}
		sl.cardID, sl.cardTitle = splitBracketID(m[2])
		return sl
	}
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		sl := scannedLine{kind: lineHeading}
		sl.columnID, sl.columnTitle = splitBracketID(m[1])
		return sl
	}
	if rest, ok := strings.CutPrefix(line, "  "); ok {
		return scannedLine{kind: lineContinuation, text: rest}
	}
	if rest, ok := strings.CutPrefix(line, "\t"); ok {
		return scannedLine{kind: lineContinuation, text: rest}
	}
	return scannedLine{kind: lineOther, text: line}
}

// splitBracketID splits a leading [id] token off rest, returning the id and
// the remaining title. Without a bracket token the whole input is the title
// and the id is left empty for the caller to generate.
func splitBracketID(rest string) (id, title string) {
	if m := bracketIDPattern.FindStringSubmatch(rest); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", strings.TrimSpace(rest)
}

// isAnchorLine reports whether a continuation line (indent already
// stripped) is a bare block anchor such as ^01H8XGJW. Anchor lines are
// regenerated on serialize and therefore discarded on parse.
func isAnchorLine(s string) bool {
	return anchorPattern.MatchString(strings.TrimSpace(s))
}

// dueDateFrom extracts the date from a due:: continuation line. Lines whose
// payload does not have the YYYY-MM-DD shape do not match and stay in the
// description verbatim.
func dueDateFrom(s string) (string, bool) {
	if m := dueLinePattern.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		return m[1], true
	}
	return "", false
}
