// Package termstate feeds the child's output stream into a VT interpreter
// and exposes the resulting screen for rendering, selection and hit-tests.
//
// State is not safe for concurrent use; it is owned by the dispatcher.
package termstate

import (
	"io"
	"unicode/utf8"

	"github.com/hinshun/vt10x"
)

// Attr is a set of cell attribute flags.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrItalic
	AttrUnderline
	AttrInverse
)

// interpreter mode bits, in the order the interpreter declares them.
const (
	vtReverse   = 1 << 0
	vtUnderline = 1 << 1
	vtBold      = 1 << 2
	vtItalic    = 1 << 4
)

// Color is a cell color: a palette index below 256, an RGB triple packed
// as r<<16|g<<8|b, or DefaultColor.
type Color uint32

// DefaultColor means the host terminal's own foreground or background.
const DefaultColor Color = 1 << 24

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return c >= DefaultColor
}

// IsPalette reports whether c is an index into the 256-color palette.
func (c Color) IsPalette() bool {
	return c < 256
}

// RGB splits a true-color value into components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Cell is one screen position.
type Cell struct {
	Char rune
	FG   Color
	BG   Color
	Attr Attr
}

// Blank reports whether the cell holds no visible character.
func (c Cell) Blank() bool {
	return c.Char == 0 || c.Char == ' '
}

// Cursor is a zero-based screen position.
type Cursor struct {
	Col, Row int
}

// State is the emulated screen of the PTY pane.
type State struct {
	vt   vt10x.Terminal
	cols int
	rows int

	// pending holds the bytes of a UTF-8 sequence split across chunks.
	pending []byte

	history *Scrollback
}

// New returns a cols x rows screen with a history ring of scrollbackLines.
// Replies the interpreter generates (device status reports and the like)
// are written to respond, which may be nil.
func New(cols, rows, scrollbackLines int, respond io.Writer) *State {
	cols, rows = max(cols, 1), max(rows, 1)
	opts := []vt10x.TerminalOption{vt10x.WithSize(cols, rows)}
	if respond != nil {
		opts = append(opts, vt10x.WithWriter(respond))
	}
	return &State{
		vt:      vt10x.New(opts...),
		cols:    cols,
		rows:    rows,
		history: NewScrollback(scrollbackLines),
	}
}

// Feed interprets a chunk of output. Chunks must be fed in arrival order;
// the result does not depend on where the stream was split.
func (s *State) Feed(data []byte) {
	if len(data) == 0 {
		return
	}
	s.history.Append(data)

	if len(s.pending) > 0 {
		data = append(s.pending, data...)
		s.pending = nil
	}

	complete := len(data) - incompleteTail(data)
	if complete > 0 {
		n, _ := s.vt.Write(data[:complete])
		if n < complete {
			s.keep(data[n:complete])
		}
	}
	if complete < len(data) {
		s.keep(data[complete:])
	}
}

func (s *State) keep(b []byte) {
	s.pending = append(s.pending, b...)
	// Anything longer than one rune is not a split sequence.
	if len(s.pending) > utf8.UTFMax {
		s.pending = s.pending[len(s.pending)-1:]
	}
}

// incompleteTail returns how many trailing bytes form the start of a UTF-8
// sequence that is not yet complete.
func incompleteTail(b []byte) int {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(b); i++ {
		c := b[len(b)-i]
		if c&0xC0 == 0x80 {
			continue
		}
		if c >= 0xC0 && !utf8.FullRune(b[len(b)-i:]) {
			return i
		}
		return 0
	}
	return 0
}

// Resize changes the grid size and reports whether it actually changed.
func (s *State) Resize(cols, rows int) bool {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == s.cols && rows == s.rows {
		return false
	}
	s.vt.Resize(cols, rows)
	s.cols, s.rows = cols, rows
	return true
}

// Size returns the grid width and height.
func (s *State) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Width is the grid width.
func (s *State) Width() int { return s.cols }

// Height is the grid height.
func (s *State) Height() int { return s.rows }

// Cell returns the live cell at col,row. Out-of-range positions are blank.
func (s *State) Cell(col, row int) Cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return Cell{Char: ' ', FG: DefaultColor, BG: DefaultColor}
	}
	g := s.vt.Cell(col, row)
	return Cell{
		Char: g.Char,
		FG:   convertColor(g.FG),
		BG:   convertColor(g.BG),
		Attr: convertMode(g.Mode),
	}
}

func convertColor(c vt10x.Color) Color {
	if c >= vt10x.DefaultFG {
		return DefaultColor
	}
	return Color(c)
}

func convertMode(m int16) Attr {
	var a Attr
	if m&vtBold != 0 {
		a |= AttrBold
	}
	if m&vtItalic != 0 {
		a |= AttrItalic
	}
	if m&vtUnderline != 0 {
		a |= AttrUnderline
	}
	if m&vtReverse != 0 {
		a |= AttrInverse
	}
	return a
}

// Cursor returns the cursor position.
func (s *State) Cursor() Cursor {
	c := s.vt.Cursor()
	return Cursor{Col: c.X, Row: c.Y}
}

// CursorVisible reports whether the child has the cursor shown.
func (s *State) CursorVisible() bool {
	return s.vt.CursorVisible()
}

// Title is the window title last set by the child.
func (s *State) Title() string {
	return s.vt.Title()
}

// History exposes the scrollback ring and scroll position.
func (s *State) History() *Scrollback {
	return s.history
}

// Rune returns the character shown at col,row in the current view: the
// live grid, or the scrolled history when the view is scrolled up.
func (s *State) Rune(col, row int) rune {
	if s.history.IsScrolled() {
		return s.historyRune(col, row)
	}
	c := s.Cell(col, row)
	if c.Char == 0 {
		return ' '
	}
	return c.Char
}

func (s *State) historyRune(col, row int) rune {
	lines := s.history.Window(s.rows)
	// History is bottom-aligned when shorter than the screen.
	idx := row - (s.rows - len(lines))
	if idx < 0 || idx >= len(lines) || col < 0 {
		return ' '
	}
	runes := []rune(lines[idx])
	if col >= len(runes) {
		return ' '
	}
	return runes[col]
}

// ViewLines returns the scrolled history window, bottom-aligned to the
// grid height, or nil when showing live output.
func (s *State) ViewLines() []string {
	if !s.history.IsScrolled() {
		return nil
	}
	lines := s.history.Window(s.rows)
	if pad := s.rows - len(lines); pad > 0 {
		lines = append(make([]string, pad), lines...)
	}
	return lines
}

// ScrollUp moves the view back through history.
func (s *State) ScrollUp(n int) int { return s.history.ScrollUp(n) }

// ScrollDown moves the view towards live output.
func (s *State) ScrollDown(n int) int { return s.history.ScrollDown(n) }

// ResetScroll returns to the live view.
func (s *State) ResetScroll() { s.history.ScrollToBottom() }

// Scrolled reports whether history is being shown.
func (s *State) Scrolled() bool { return s.history.IsScrolled() }
