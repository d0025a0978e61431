// Package pane computes screen geometry and holds the cursor and scroll
// models of the list-style panes.
package pane

// TabBarHeight and CommandBarHeight are the rows reserved above and below
// the content area.
const (
	TabBarHeight     = 1
	CommandBarHeight = 1
)

// StatusShare is the percentage of the git column given to the status list.
const StatusShare = 40

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether x,y lies inside r.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Right is the first column past r.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past r.
func (r Rect) Bottom() int { return r.Y + r.H }

// Inner returns r without its one-cell border.
func (r Rect) Inner() Rect {
	if r.W < 2 || r.H < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

// Tab is a top-level screen.
type Tab int

const (
	ClaudeTab Tab = iota
	FilesTab
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{ClaudeTab, FilesTab}

func (t Tab) String() string {
	switch t {
	case ClaudeTab:
		return "Claude"
	case FilesTab:
		return "Files"
	}
	return "?"
}

// Frame is the geometry of one drawn frame. Rects belonging to the hidden
// tab are zero.
type Frame struct {
	Width, Height int

	TabBar     Rect
	Content    Rect
	CommandBar Rect

	// Pty is the terminal pane including its right-hand divider column;
	// PtyInner is the area the child's screen is drawn in.
	Pty      Rect
	PtyInner Rect
	Divider  Rect
	Status   Rect
	Diff     Rect

	BrowserLeft  Rect
	BrowserRight Rect

	Prompt Rect
}

// Compute lays out a w x h screen. splitPercent is the terminal pane's
// share of the content width on the Claude tab.
func Compute(w, h, splitPercent int, tab Tab, promptOpen bool) Frame {
	w, h = max(w, 0), max(h, 0)
	f := Frame{Width: w, Height: h}

	f.TabBar = Rect{X: 0, Y: 0, W: w, H: min(TabBarHeight, h)}
	contentH := max(h-TabBarHeight-CommandBarHeight, 0)
	f.Content = Rect{X: 0, Y: TabBarHeight, W: w, H: contentH}
	if h > TabBarHeight {
		f.CommandBar = Rect{X: 0, Y: h - CommandBarHeight, W: w, H: CommandBarHeight}
	}

	switch tab {
	case ClaudeTab:
		ptyW := w * splitPercent / 100
		if w > 0 {
			ptyW = min(max(ptyW, 3), w)
		}
		f.Pty = Rect{X: 0, Y: f.Content.Y, W: ptyW, H: contentH}
		f.PtyInner = Rect{X: 0, Y: f.Content.Y, W: max(ptyW-1, 0), H: contentH}
		if ptyW > 0 {
			f.Divider = Rect{X: ptyW - 1, Y: f.Content.Y, W: 1, H: contentH}
		}

		gitW := w - ptyW
		statusH := contentH * StatusShare / 100
		f.Status = Rect{X: ptyW, Y: f.Content.Y, W: gitW, H: statusH}
		f.Diff = Rect{X: ptyW, Y: f.Content.Y + statusH, W: gitW, H: contentH - statusH}
	case FilesTab:
		half := w / 2
		f.BrowserLeft = Rect{X: 0, Y: f.Content.Y, W: half, H: contentH}
		f.BrowserRight = Rect{X: half, Y: f.Content.Y, W: w - half, H: contentH}
	}

	if promptOpen {
		pw := min(max(w-4, 0), 72)
		ph := min(5, h)
		f.Prompt = Rect{X: (w - pw) / 2, Y: max((h-ph)/2, 0), W: pw, H: ph}
	}

	return f
}

// PtySize is the child's screen size for this frame.
func (f Frame) PtySize() (cols, rows int) {
	return f.PtyInner.W, f.PtyInner.H
}

// NextSplit steps the terminal pane share through 40, 60 and 80 percent.
func NextSplit(percent int) int {
	switch {
	case percent <= 45:
		return 60
	case percent <= 65:
		return 80
	default:
		return 40
	}
}
