package state

// MoveCursorUp steps to the previous item, wrapping from the first to the
// last. Reports whether the selection changed.
func (l *Level) MoveCursorUp() bool {
	return l.step(-1)
}

// MoveCursorDown steps to the next item, wrapping from the last to the first.
func (l *Level) MoveCursorDown() bool {
	return l.step(1)
}

func (l *Level) step(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return n > 1
}

func (l *Level) MoveCursorHome() bool {
	return l.jump(0)
}

func (l *Level) MoveCursorEnd() bool {
	return l.jump(len(l.Items) - 1)
}

// MoveCursorPageUp moves up by one page of maxVisible rows without wrapping.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.jump(max(l.Cursor, 0) - l.pageSize(maxVisible))
}

// MoveCursorPageDown moves down by one page of maxVisible rows without wrapping.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.jump(max(l.Cursor, 0) + l.pageSize(maxVisible))
}

// jump places the cursor at idx clamped to the item range.
func (l *Level) jump(idx int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = min(max(idx, 0), n-1)
	return l.Cursor != old
}

// pageSize is maxVisible bounded to [1, len(Items)]; a non-positive
// maxVisible means everything fits on one page.
func (l *Level) pageSize(maxVisible int) int {
	n := len(l.Items)
	if maxVisible <= 0 || maxVisible > n {
		return max(n, 1)
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport the minimum amount needed to keep
// the cursor within maxVisible rows.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), n-1)
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(n-maxVisible, 0)
	offset := min(max(l.ViewportOffset, 0), maxOffset)
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+maxVisible:
		offset = min(l.Cursor-maxVisible+1, maxOffset)
	}
	l.ViewportOffset = offset
}
