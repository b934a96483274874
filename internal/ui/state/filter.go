package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/mapping-example/internal/menu"
)

// SetFilter replaces the query and places the caret at cursor. Typing into an
// empty filter remembers the selection; clearing the filter restores it.
func (l *Level) SetFilter(query string, cursor int) {
	wasActive := strings.TrimSpace(l.Filter) != ""
	trimmed := strings.TrimSpace(query)
	active := trimmed != ""

	switch {
	case active && !wasActive:
		l.LastCursor = l.Cursor
		l.Cursor = 0
	case active:
		l.Cursor = 0
	}

	l.Filter = query
	l.FilterCursor = clampCaret(cursor, len([]rune(query)))
	l.applyFilter()

	switch {
	case active:
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
	case wasActive:
		l.Cursor = 0
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), n-1)
	if l.ViewportOffset >= n {
		l.ViewportOffset = 0
	}
}

func clampCaret(pos, length int) int {
	return min(max(pos, 0), length)
}

// FilterCursorPos returns the caret as a rune offset within the filter.
func (l *Level) FilterCursorPos() int {
	return clampCaret(l.FilterCursor, len([]rune(l.Filter)))
}

// replaceFilterRange swaps runes [from,to) of the filter for insert and parks
// the caret after the inserted text.
func (l *Level) replaceFilterRange(from, to int, insert []rune) {
	runes := []rune(l.Filter)
	out := make([]rune, 0, len(runes)-(to-from)+len(insert))
	out = append(out, runes[:from]...)
	out = append(out, insert...)
	out = append(out, runes[to:]...)
	l.SetFilter(string(out), from+len(insert))
}

// InsertFilterText inserts text at the caret.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := l.FilterCursorPos()
	l.replaceFilterRange(pos, pos, insert)
	return true
}

// DeleteFilterRuneBackward removes the rune before the caret.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.replaceFilterRange(pos-1, pos, nil)
	return true
}

// DeleteFilterWordBackward removes the word before the caret, plus any
// spaces between it and the caret.
func (l *Level) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.replaceFilterRange(wordStart([]rune(l.Filter), pos), pos, nil)
	return true
}

func (l *Level) moveCaret(to int) bool {
	if to == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = to
	return true
}

func (l *Level) MoveFilterCursorStart() bool {
	return l.moveCaret(0)
}

func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveCaret(len([]rune(l.Filter)))
}

func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveCaret(wordStart([]rune(l.Filter), l.FilterCursorPos()))
}

func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveCaret(wordEnd([]rune(l.Filter), l.FilterCursorPos()))
}

func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveCaret(max(l.FilterCursorPos()-1, 0))
}

func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveCaret(min(l.FilterCursorPos()+1, len([]rune(l.Filter))))
}

// wordStart skips spaces then a word, walking left from pos.
func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// wordEnd skips a word then spaces, walking right from pos.
func wordEnd(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

func labelsOf(items []menu.Item) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

// FilterItems keeps the items whose label fuzzy-matches query, in their
// original order. When nothing fuzzy-matches, a plain substring match on
// label or ID is tried instead. The result never aliases items.
func FilterItems(items []menu.Item, query string) []menu.Item {
	q := strings.TrimSpace(query)
	if q == "" {
		return CloneItems(items)
	}
	hit := make([]bool, len(items))
	matched := false
	for _, rank := range fuzzy.RankFindNormalizedFold(q, labelsOf(items)) {
		hit[rank.OriginalIndex] = true
		matched = true
	}
	if !matched {
		lower := strings.ToLower(q)
		for i, item := range items {
			hit[i] = strings.Contains(strings.ToLower(item.Label), lower) ||
				strings.Contains(strings.ToLower(item.ID), lower)
		}
	}
	out := make([]menu.Item, 0, len(items))
	for i, item := range items {
		if hit[i] {
			out = append(out, item)
		}
	}
	return out
}

// match tiers, best first
const (
	tierExact = iota
	tierLabelPrefix
	tierIDPrefix
	tierIDContains
	tierLabelContains
	tierNone
)

func matchTier(item menu.Item, q, lower string) int {
	label, id := strings.ToLower(item.Label), strings.ToLower(item.ID)
	switch {
	case strings.EqualFold(item.Label, q) || strings.EqualFold(item.ID, q):
		return tierExact
	case strings.HasPrefix(label, lower):
		return tierLabelPrefix
	case strings.HasPrefix(id, lower):
		return tierIDPrefix
	case strings.Contains(id, lower):
		return tierIDContains
	case strings.Contains(label, lower):
		return tierLabelContains
	}
	return tierNone
}

// BestMatchIndex picks the item the cursor should land on for query: exact
// matches beat prefixes, prefixes beat substrings, and the closest fuzzy
// match is the last resort. Ties go to the earlier item. Returns -1 only for
// an empty slice.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return 0
	}
	lower := strings.ToLower(q)
	best, bestTier := 0, tierNone
	for i, item := range items {
		if tier := matchTier(item, q, lower); tier < bestTier {
			best, bestTier = i, tier
		}
	}
	if bestTier != tierNone {
		return best
	}
	bestDist := -1
	for _, rank := range fuzzy.RankFindNormalizedFold(q, labelsOf(items)) {
		if bestDist < 0 || rank.Distance < bestDist ||
			(rank.Distance == bestDist && rank.OriginalIndex < best) {
			best, bestDist = rank.OriginalIndex, rank.Distance
		}
	}
	return best
}
