package pane

import (
	"fmt"

	"github.com/abdullathedruid/cdeck/internal/git"
)

// DiffView is the cursor, scroll and range-anchor state of the diff pane.
type DiffView struct {
	diff  *git.FileDiff
	lines []git.DiffLine
	path  string

	cursor  int
	scroll  int
	hScroll int

	anchor   int
	anchored bool
}

// NewDiffView returns an empty view.
func NewDiffView() *DiffView {
	return &DiffView{}
}

// SetDiff shows d. Position is kept when d is for the same path as before
// and reset otherwise. A nil d clears the view.
func (v *DiffView) SetDiff(d *git.FileDiff) {
	if d == nil {
		v.Clear()
		return
	}
	if d.Path != v.path {
		v.path = d.Path
		v.cursor, v.scroll, v.hScroll = 0, 0, 0
		v.anchored = false
	}
	v.diff = d
	v.lines = d.Lines()
	v.clamp()
}

// Clear drops the current diff.
func (v *DiffView) Clear() {
	*v = DiffView{}
}

// Diff returns the diff on display, or nil.
func (v *DiffView) Diff() *git.FileDiff { return v.diff }

// Visible reports whether there is something to show.
func (v *DiffView) Visible() bool { return !v.diff.Empty() }

// Path is the file the view shows.
func (v *DiffView) Path() string { return v.path }

// Lines returns the flattened diff lines.
func (v *DiffView) Lines() []git.DiffLine { return v.lines }

// Len is the number of lines.
func (v *DiffView) Len() int { return len(v.lines) }

func (v *DiffView) Cursor() int  { return v.cursor }
func (v *DiffView) Scroll() int  { return v.scroll }
func (v *DiffView) HScroll() int { return v.hScroll }

func (v *DiffView) clamp() {
	last := max(len(v.lines)-1, 0)
	v.cursor = min(v.cursor, last)
	v.scroll = min(v.scroll, last)
	if v.anchored && v.anchor > last {
		v.anchor = last
	}
}

// CursorUp moves the cursor up one line, scrolling to keep it in view.
func (v *DiffView) CursorUp() {
	if v.cursor > 0 {
		v.cursor--
	}
	if v.cursor < v.scroll {
		v.scroll = v.cursor
	}
}

// CursorDown moves the cursor down one line.
func (v *DiffView) CursorDown() {
	if v.cursor+1 < len(v.lines) {
		v.cursor++
	}
}

// EnsureVisible scrolls so the cursor fits in height rows.
func (v *DiffView) EnsureVisible(height int) {
	if height <= 0 {
		return
	}
	if v.cursor >= v.scroll+height {
		v.scroll = v.cursor + 1 - height
	}
	if v.cursor < v.scroll {
		v.scroll = v.cursor
	}
}

// ScrollUp scrolls the view up by n lines.
func (v *DiffView) ScrollUp(n int) {
	v.scroll = max(v.scroll-n, 0)
}

// ScrollDown scrolls the view down by n lines, stopping at the last line.
func (v *DiffView) ScrollDown(n int) {
	v.scroll = min(v.scroll+n, max(len(v.lines)-1, 0))
}

// ScrollLeft and ScrollRight move the horizontal offset.
func (v *DiffView) ScrollLeft(n int) {
	v.hScroll = max(v.hScroll-n, 0)
}

func (v *DiffView) ScrollRight(n int) {
	v.hScroll += n
}

// NextHunk moves cursor and view to the next hunk header.
func (v *DiffView) NextHunk() bool {
	for i := v.cursor + 1; i < len(v.lines); i++ {
		if v.lines[i].Kind == git.HunkHeader {
			v.cursor, v.scroll = i, i
			return true
		}
	}
	return false
}

// PrevHunk moves cursor and view to the previous hunk header.
func (v *DiffView) PrevHunk() bool {
	for i := v.cursor - 1; i >= 0; i-- {
		if v.lines[i].Kind == git.HunkHeader {
			v.cursor, v.scroll = i, i
			return true
		}
	}
	return false
}

// ToggleAnchor starts a line range at the cursor, or drops the range.
func (v *DiffView) ToggleAnchor() {
	if v.anchored {
		v.anchored = false
		return
	}
	v.anchor = v.cursor
	v.anchored = true
}

// Anchored reports whether a range is being selected.
func (v *DiffView) Anchored() bool { return v.anchored }

// SelectionRange returns the selected line indices, inclusive.
func (v *DiffView) SelectionRange() (start, end int, ok bool) {
	if !v.anchored {
		return 0, 0, false
	}
	return min(v.anchor, v.cursor), max(v.anchor, v.cursor), true
}

// InSelection reports whether line i is inside the selected range.
func (v *DiffView) InSelection(i int) bool {
	start, end, ok := v.SelectionRange()
	return ok && i >= start && i <= end
}

// Reference returns the "@path#L<a>-<b>" reference for the selected range,
// or for the cursor line when no range is anchored. New-side line numbers
// are used, old-side ones for deletions. Hunk headers carry no number.
func (v *DiffView) Reference() (string, bool) {
	if len(v.lines) == 0 {
		return "", false
	}
	start, end, ok := v.SelectionRange()
	if !ok {
		start, end = v.cursor, v.cursor
	}

	first, last := 0, 0
	for _, l := range v.lines[start : end+1] {
		n := l.NewLine
		if n == 0 {
			n = l.OldLine
		}
		if n == 0 {
			continue
		}
		if first == 0 || n < first {
			first = n
		}
		last = max(last, n)
	}
	if first == 0 {
		return "", false
	}
	if first == last {
		return fmt.Sprintf("@%s#L%d", v.path, first), true
	}
	return fmt.Sprintf("@%s#L%d-%d", v.path, first, last), true
}
