// Package store holds the canonical in-memory board document while a board
// is open, applies structural edits to it, and pushes derived snapshots to
// subscribers synchronously after every mutation.
//
// The core is single-threaded and cooperative: no operation blocks, and
// every mutation runs to completion and notifies all current subscribers
// before returning. Mutations referencing unknown ids are silent no-ops
// that report "nothing happened" through their return value rather than an
// error.
package store

import (
	"strings"

	"github.com/hpungsan/plank/internal/board"
	"github.com/hpungsan/plank/internal/clipboard"
)

// Filter narrows the cards visible in a snapshot. Query matches
// case-insensitively as a substring of card search text; Tag is a
// normalized #tag matched by exact membership. The filter is never
// persisted and is reset on every full reload.
type Filter struct {
	Query string
	Tag   string
}

func (f Filter) isEmpty() bool {
	return strings.TrimSpace(f.Query) == "" && f.Tag == ""
}

// InsertPos selects where a bulk paste lands in a column.
type InsertPos int

const (
	InsertBefore InsertPos = iota // head of the column
	InsertAfter                   // tail of the column
)

// UpdateCardInput carries the card fields to change; nil fields keep their
// current value. The card is re-normalized afterward, so derived tags and
// search text can never go stale and an invalid due date degrades to
// absent.
type UpdateCardInput struct {
	Title       *string
	Description *string
	Checked     *bool
	DueDate     *string
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store owns one board document and one active filter.
type Store struct {
	doc    *board.Document
	filter Filter
	subs   []subscriber
	nextID int
}

// New creates a store owning a deep copy of doc. A nil doc starts an empty
// default board.
func New(doc *board.Document) *Store {
	s := &Store{}
	if doc == nil {
		s.doc = board.NewDocument()
	} else {
		s.doc = doc.Clone()
	}
	return s
}

// Subscribe registers fn to receive a snapshot after every mutation, in
// subscription order, and returns an unsubscribe function.
//
// Fan-out is synchronous: a mutation triggered from inside a callback is
// legal and will itself recompute and re-notify before the outer mutation
// returns. Callbacks that mutate must account for that re-entrancy.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notify pushes a fresh snapshot to every subscriber registered at the time
// of the mutation. The slice is captured first because a callback may
// subscribe or unsubscribe while we iterate.
func (s *Store) notify() {
	if len(s.subs) == 0 {
		return
	}
	subs := s.subs
	snap := s.Snapshot()
	for _, sub := range subs {
		sub.fn(snap)
	}
}

// Board returns a deep copy of the canonical document. Mutating the copy
// has no effect on the store.
func (s *Store) Board() *board.Document {
	return s.doc.Clone()
}

// SetBoard replaces the whole document, dropping any in-memory state that
// referred to the previous one, including the active filter. Used on
// initial load and on external-file-change reload; a reload never merges,
// it overwrites.
func (s *Store) SetBoard(doc *board.Document) {
	if doc == nil {
		s.doc = board.NewDocument()
	} else {
		s.doc = doc.Clone()
	}
	s.filter = Filter{}
	s.notify()
}

// SetMetadata replaces the board title, description, and density.
func (s *Store) SetMetadata(title, description string, density board.Density) {
	title = collapseTitle(title)
	if title == "" {
		title = board.UntitledBoard
	}
	s.doc.Title = title
	s.doc.Description = strings.TrimRight(board.NormalizeNewlines(description), " \t\n")
	s.doc.Density = board.ParseDensity(string(density))
	s.notify()
}

// AddColumn appends a new empty column and returns its id.
func (s *Store) AddColumn(title string) string {
	col := board.Column{
		ID:    board.NewID(),
		Title: columnTitle(title),
	}
	s.doc.Columns = append(s.doc.Columns, col)
	s.notify()
	return col.ID
}

// RenameColumn sets a column's title. Unknown id is a no-op.
func (s *Store) RenameColumn(id, title string) bool {
	i := s.doc.FindColumn(id)
	if i < 0 {
		return false
	}
	s.doc.Columns[i].Title = columnTitle(title)
	s.notify()
	return true
}

// DeleteColumn removes a column and all its cards. Unknown id is a no-op.
func (s *Store) DeleteColumn(id string) bool {
	i := s.doc.FindColumn(id)
	if i < 0 {
		return false
	}
	s.doc.Columns = removeColumn(s.doc.Columns, i)
	s.notify()
	return true
}

// MoveColumn moves a column to targetIndex, clamped to the valid range
// after removal. Unknown id is a no-op.
func (s *Store) MoveColumn(id string, targetIndex int) bool {
	from := s.doc.FindColumn(id)
	if from < 0 {
		return false
	}
	cols := s.doc.Columns
	col := cols[from]
	cols = removeColumn(cols, from)
	targetIndex = clamp(targetIndex, len(cols))
	s.doc.Columns = insertColumn(cols, targetIndex, col)
	s.notify()
	return true
}

// SetWIPLimit sets or clears a column's advisory WIP limit. A negative
// limit normalizes to unlimited. Unknown id is a no-op.
func (s *Store) SetWIPLimit(id string, limit *int) bool {
	i := s.doc.FindColumn(id)
	if i < 0 {
		return false
	}
	s.doc.Columns[i].WIPLimit = board.NormalizeWIPLimit(limit)
	s.notify()
	return true
}

// AddCard appends a new card to a column and returns its id, or "" when the
// column is unknown.
func (s *Store) AddCard(columnID, title, description, dueDate string) string {
	i := s.doc.FindColumn(columnID)
	if i < 0 {
		return ""
	}
	card := board.NormalizeCard("", title, description, false, dueDate)
	col := &s.doc.Columns[i]
	col.Cards = append(col.Cards, card)
	s.notify()
	return card.ID
}

// UpdateCard applies the non-nil fields of in to a card anywhere in the
// document, archive included, and re-normalizes it. Unknown id is a no-op.
func (s *Store) UpdateCard(cardID string, in UpdateCardInput) bool {
	card := s.findCard(cardID)
	if card == nil {
		return false
	}

	title := card.Title
	description := card.Description
	checked := card.Checked
	dueDate := card.DueDate
	if in.Title != nil {
		title = *in.Title
	}
	if in.Description != nil {
		description = *in.Description
	}
	if in.Checked != nil {
		checked = *in.Checked
	}
	if in.DueDate != nil {
		dueDate = *in.DueDate
	}

	*card = board.NormalizeCard(card.ID, title, description, checked, dueDate)
	s.notify()
	return true
}

// ToggleCard flips a card's done state. Unknown id is a no-op.
func (s *Store) ToggleCard(cardID string) bool {
	card := s.findCard(cardID)
	if card == nil {
		return false
	}
	*card = board.NormalizeCard(card.ID, card.Title, card.Description, !card.Checked, card.DueDate)
	s.notify()
	return true
}

// DeleteCard removes a card from its column or from the archive. Unknown
// id is a no-op.
func (s *Store) DeleteCard(cardID string) bool {
	for i := range s.doc.Columns {
		col := &s.doc.Columns[i]
		if ci := findCardIndex(col.Cards, cardID); ci >= 0 {
			col.Cards = removeCard(col.Cards, ci)
			s.notify()
			return true
		}
	}
	if ci := findCardIndex(s.doc.Archive, cardID); ci >= 0 {
		s.doc.Archive = removeCard(s.doc.Archive, ci)
		s.notify()
		return true
	}
	return false
}

// MoveCard moves a card from its source column to targetIndex in the target
// column. The index is interpreted in pre-removal coordinates: after the
// card is removed, a same-column index past the removal point shifts down
// by one, then the result is clamped to the target column's length. Moving
// a card to the slot it already precedes is therefore a no-op, and a
// forward move followed by the inverse backward move restores the original
// order. Unknown ids are no-ops.
func (s *Store) MoveCard(sourceColumnID, cardID, targetColumnID string, targetIndex int) bool {
	si := s.doc.FindColumn(sourceColumnID)
	di := s.doc.FindColumn(targetColumnID)
	if si < 0 || di < 0 {
		return false
	}
	src := &s.doc.Columns[si]
	ci := findCardIndex(src.Cards, cardID)
	if ci < 0 {
		return false
	}

	card := src.Cards[ci]
	src.Cards = removeCard(src.Cards, ci)

	if si == di && ci < targetIndex {
		targetIndex--
	}
	dst := &s.doc.Columns[di]
	targetIndex = clamp(targetIndex, len(dst.Cards))
	dst.Cards = insertCards(dst.Cards, targetIndex, []board.Card{card})
	s.notify()
	return true
}

// ArchiveCard removes a card from its column and appends it to the archive,
// order-preserving. Unknown ids are no-ops.
func (s *Store) ArchiveCard(columnID, cardID string) bool {
	i := s.doc.FindColumn(columnID)
	if i < 0 {
		return false
	}
	col := &s.doc.Columns[i]
	ci := findCardIndex(col.Cards, cardID)
	if ci < 0 {
		return false
	}
	card := col.Cards[ci]
	col.Cards = removeCard(col.Cards, ci)
	s.doc.Archive = append(s.doc.Archive, card)
	s.notify()
	return true
}

// UnarchiveCard moves a card from the archive to the end of a column.
// Unknown ids are no-ops.
func (s *Store) UnarchiveCard(cardID, columnID string) bool {
	i := s.doc.FindColumn(columnID)
	if i < 0 {
		return false
	}
	ci := findCardIndex(s.doc.Archive, cardID)
	if ci < 0 {
		return false
	}
	card := s.doc.Archive[ci]
	s.doc.Archive = removeCard(s.doc.Archive, ci)
	col := &s.doc.Columns[i]
	col.Cards = append(col.Cards, card)
	s.notify()
	return true
}

// ClearColumn deletes all cards in a column and returns how many were
// removed; 0 signals nothing to persist.
func (s *Store) ClearColumn(columnID string) int {
	i := s.doc.FindColumn(columnID)
	if i < 0 {
		return 0
	}
	col := &s.doc.Columns[i]
	n := len(col.Cards)
	if n == 0 {
		return 0
	}
	col.Cards = nil
	s.notify()
	return n
}

// ArchiveColumnCards moves a column's entire card list, in order, to the
// end of the archive and returns the moved count; 0 signals nothing to
// persist.
func (s *Store) ArchiveColumnCards(columnID string) int {
	i := s.doc.FindColumn(columnID)
	if i < 0 {
		return 0
	}
	col := &s.doc.Columns[i]
	n := len(col.Cards)
	if n == 0 {
		return 0
	}
	s.doc.Archive = append(s.doc.Archive, col.Cards...)
	col.Cards = nil
	s.notify()
	return n
}

// InsertCardsAt inserts a batch of draft entries at index in a column,
// clamped, and returns the number inserted; 0 signals nothing to persist.
func (s *Store) InsertCardsAt(columnID string, index int, entries []clipboard.Entry) int {
	i := s.doc.FindColumn(columnID)
	if i < 0 || len(entries) == 0 {
		return 0
	}
	cards := make([]board.Card, len(entries))
	for j, e := range entries {
		cards[j] = board.NormalizeCard("", e.Title, "", e.Checked, "")
	}
	col := &s.doc.Columns[i]
	index = clamp(index, len(col.Cards))
	col.Cards = insertCards(col.Cards, index, cards)
	s.notify()
	return len(cards)
}

// InsertCardsFromText parses pasted list-like text and bulk-inserts the
// resulting drafts at the head (InsertBefore) or tail (InsertAfter) of a
// column, returning the number inserted.
func (s *Store) InsertCardsFromText(columnID, text string, pos InsertPos) int {
	entries := clipboard.ParseList(text)
	if len(entries) == 0 {
		return 0
	}
	index := 0
	if pos == InsertAfter {
		if i := s.doc.FindColumn(columnID); i >= 0 {
			index = len(s.doc.Columns[i].Cards)
		}
	}
	return s.InsertCardsAt(columnID, index, entries)
}

// SetFilter replaces the active filter. The tag is normalized to the
// canonical #lowercase form; unusable tag input clears the tag term.
func (s *Store) SetFilter(query, tag string) {
	s.filter = Filter{
		Query: query,
		Tag:   board.NormalizeTag(tag),
	}
	s.notify()
}

// ClearFilter removes both filter terms.
func (s *Store) ClearFilter() {
	s.filter = Filter{}
	s.notify()
}

// Filter returns the active filter.
func (s *Store) Filter() Filter {
	return s.filter
}

func (s *Store) findCard(cardID string) *board.Card {
	for i := range s.doc.Columns {
		cards := s.doc.Columns[i].Cards
		if ci := findCardIndex(cards, cardID); ci >= 0 {
			return &cards[ci]
		}
	}
	if ci := findCardIndex(s.doc.Archive, cardID); ci >= 0 {
		return &s.doc.Archive[ci]
	}
	return nil
}

func findCardIndex(cards []board.Card, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}

func removeCard(cards []board.Card, i int) []board.Card {
	out := make([]board.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

func insertCards(cards []board.Card, i int, batch []board.Card) []board.Card {
	out := make([]board.Card, 0, len(cards)+len(batch))
	out = append(out, cards[:i]...)
	out = append(out, batch...)
	return append(out, cards[i:]...)
}

func removeColumn(cols []board.Column, i int) []board.Column {
	out := make([]board.Column, 0, len(cols)-1)
	out = append(out, cols[:i]...)
	return append(out, cols[i+1:]...)
}

func insertColumn(cols []board.Column, i int, col board.Column) []board.Column {
	out := make([]board.Column, 0, len(cols)+1)
	out = append(out, cols[:i]...)
	out = append(out, col)
	return append(out, cols[i:]...)
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

// columnTitle trims and single-lines a column title, defaulting blanks to
// the placeholder.
func columnTitle(title string) string {
	title = collapseTitle(title)
	if title == "" {
		return board.Untitled
	}
	return title
}

func collapseTitle(title string) string {
	title = strings.ReplaceAll(board.NormalizeNewlines(title), "\n", " ")
	return strings.TrimSpace(title)
}
