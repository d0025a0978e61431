package pane

import "sort"

// StatusList is the cursor and multi-select state of the status pane.
// It holds indices only; the file records live with the caller.
type StatusList struct {
	cursor int
	offset int

	multi  bool
	marked map[int]bool
}

// NewStatusList returns a list with the cursor on the first row.
func NewStatusList() *StatusList {
	return &StatusList{marked: make(map[int]bool)}
}

// Cursor is the highlighted row.
func (s *StatusList) Cursor() int { return s.cursor }

// Offset is the first visible row.
func (s *StatusList) Offset() int { return s.offset }

// MoveUp moves the cursor up, wrapping to the last row.
func (s *StatusList) MoveUp(n int) {
	if n == 0 {
		return
	}
	if s.cursor <= 0 {
		s.cursor = n - 1
	} else {
		s.cursor--
	}
}

// MoveDown moves the cursor down, wrapping to the first row.
func (s *StatusList) MoveDown(n int) {
	if n == 0 {
		return
	}
	if s.cursor >= n-1 {
		s.cursor = 0
	} else {
		s.cursor++
	}
}

// Select puts the cursor on row i.
func (s *StatusList) Select(i, n int) {
	if i < 0 || i >= n {
		return
	}
	s.cursor = i
}

// Clamp keeps the cursor and marks inside a list of n rows.
func (s *StatusList) Clamp(n int) {
	if s.cursor >= n {
		s.cursor = max(n-1, 0)
	}
	for i := range s.marked {
		if i >= n {
			delete(s.marked, i)
		}
	}
}

// EnsureVisible scrolls so the cursor fits in height rows.
func (s *StatusList) EnsureVisible(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+height {
		s.offset = s.cursor - height + 1
	}
}

// MultiSelect reports whether multi-select mode is on.
func (s *StatusList) MultiSelect() bool { return s.multi }

// ToggleMultiSelect flips multi-select mode. Turning it on marks the
// cursor row; turning it off clears all marks.
func (s *StatusList) ToggleMultiSelect() {
	s.multi = !s.multi
	if s.multi {
		s.marked[s.cursor] = true
	} else {
		clear(s.marked)
	}
}

// ToggleMark marks or unmarks the cursor row in multi-select mode.
func (s *StatusList) ToggleMark() {
	if !s.multi {
		return
	}
	if s.marked[s.cursor] {
		delete(s.marked, s.cursor)
	} else {
		s.marked[s.cursor] = true
	}
}

// Marked reports whether row i is marked.
func (s *StatusList) Marked(i int) bool { return s.marked[i] }

// Selected returns the marked rows in order, or the cursor row when
// nothing is marked. It is empty for an empty list.
func (s *StatusList) Selected(n int) []int {
	if n == 0 {
		return nil
	}
	if s.multi && len(s.marked) > 0 {
		rows := make([]int, 0, len(s.marked))
		for i := range s.marked {
			if i < n {
				rows = append(rows, i)
			}
		}
		sort.Ints(rows)
		return rows
	}
	if s.cursor < n {
		return []int{s.cursor}
	}
	return nil
}
