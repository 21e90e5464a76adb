package board

import (
	"regexp"
	"sort"
	"strings"
)

// dueDatePattern is the accepted due-date shape. The check is purely
// syntactic: 2026-02-30 passes even though no such day exists. Tightening
// it to calendar validation would silently change which hand-written lines
// count as due dates versus description text.
var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// tagPattern matches a hashtag token: # followed by letters, digits,
// slashes, underscores, or hyphens.
var tagPattern = regexp.MustCompile(`#([A-Za-z0-9/_-]+)`)

// newlinePattern matches CRLF and bare CR line endings.
var newlinePattern = regexp.MustCompile(`\r\n?`)

// tagBodyPattern matches a complete tag body (the part after #).
var tagBodyPattern = regexp.MustCompile(`^[a-z0-9/_-]+$`)

// NormalizeNewlines converts CRLF and bare CR line endings to LF.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return newlinePattern.ReplaceAllString(s, "\n")
}

// ValidDueDate reports whether s has the YYYY-MM-DD shape.
func ValidDueDate(s string) bool {
	return dueDatePattern.MatchString(s)
}

// ExtractTags returns the sorted, deduplicated, lowercased hashtag tokens
// found in text, leading # included.
func ExtractTags(text string) []string {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var tags []string
	for _, m := range matches {
		tag := "#" + strings.ToLower(m[1])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// NormalizeTag converts user input ("Urgent", "#URGENT") to the canonical
// #lowercase form used in Card.Tags. Returns "" when the input carries no
// usable tag characters.
func NormalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "#")
	if !tagBodyPattern.MatchString(s) {
		return ""
	}
	return "#" + s
}

// NormalizeWIPLimit drops invalid limits: a negative value becomes nil
// (unlimited) rather than an error. The returned pointer never aliases the
// input.
func NormalizeWIPLimit(limit *int) *int {
	if limit == nil || *limit < 0 {
		return nil
	}
	v := *limit
	return &v
}

// NormalizeCard is the single construction path for cards. It validates the
// due date, trims and defaults the title, normalizes the description, and
// rederives Tags and SearchText, so the derived fields can never go stale.
// An empty id is replaced with a fresh one.
func NormalizeCard(id, title, description string, checked bool, dueDate string) Card {
	if id == "" {
		id = NewID()
	}
	// Titles are single-line; embedded line breaks would corrupt the
	// serialized card line.
	title = strings.ReplaceAll(NormalizeNewlines(title), "\n", " ")
	title = strings.TrimSpace(title)
	if title == "" {
		title = Untitled
	}
	description = strings.TrimRight(NormalizeNewlines(description), " \t\n")
	if !ValidDueDate(dueDate) {
		dueDate = ""
	}

	card := Card{
		ID:          id,
		Title:       title,
		Description: description,
		Checked:     checked,
		DueDate:     dueDate,
		Tags:        ExtractTags(title + "\n" + description),
	}
	card.SearchText = buildSearchText(card)
	return card
}

// buildSearchText joins the card's searchable fields into one lowercase
// string for substring filtering.
func buildSearchText(c Card) string {
	parts := []string{c.Title, c.Description, strings.Join(c.Tags, " "), c.DueDate}
	return strings.ToLower(strings.Join(parts, "\n"))
}
