package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/pane"
	"github.com/abdullathedruid/cdeck/internal/selection"
	"github.com/abdullathedruid/cdeck/internal/termstate"
)

// TerminalView is what the terminal pane needs to paint.
type TerminalView struct {
	State     *termstate.State
	Selection selection.Span
	Focused   bool
	Exited    bool
}

// DrawTerminal paints the child's screen into the pane's inner area and
// its divider column. The cursor is shown only when the pane is focused.
func DrawTerminal(s tcell.Screen, f pane.Frame, v TerminalView, th Theme) {
	inner := f.PtyInner
	VLine(s, f.Divider, th.Border(v.Focused))

	st := v.State
	history := st.ViewLines()
	for row := 0; row < inner.H; row++ {
		if history != nil {
			line := ""
			if row < len(history) {
				line = history[row]
			}
			PutLine(s, inner.X, inner.Y+row, inner.W, line, th.Base)
		} else {
			for col := 0; col < inner.W; col++ {
				c := st.Cell(col, row)
				ch := c.Char
				if ch == 0 {
					ch = ' '
				}
				s.SetContent(inner.X+col, inner.Y+row, ch, nil, cellStyle(c))
			}
		}
		for col := 0; col < inner.W; col++ {
			if v.Selection.Contains(col, row) {
				mainc, combc, style, _ := s.GetContent(inner.X+col, inner.Y+row)
				s.SetContent(inner.X+col, inner.Y+row, mainc, combc, style.Background(th.SelectBg))
			}
		}
	}

	if history != nil {
		marker := fmt.Sprintf("[scroll %d]", st.History().ScrollPos())
		x := inner.Right() - len(marker)
		PutString(s, max(x, inner.X), inner.Y, inner.W, marker, th.Message)
	}
	if v.Exited {
		msg := "[process exited]"
		PutString(s, inner.X, inner.Bottom()-1, inner.W, msg, th.Message)
	}

	if v.Focused && history == nil && st.CursorVisible() && !v.Exited {
		c := st.Cursor()
		if c.Col < inner.W && c.Row < inner.H {
			s.ShowCursor(inner.X+c.Col, inner.Y+c.Row)
		}
	}
}

// cellStyle maps an emulated cell onto a tcell style.
func cellStyle(c termstate.Cell) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(termColor(c.FG)).
		Background(termColor(c.BG))
	if c.Attr&termstate.AttrBold != 0 {
		style = style.Bold(true)
	}
	if c.Attr&termstate.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if c.Attr&termstate.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if c.Attr&termstate.AttrInverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

func termColor(c termstate.Color) tcell.Color {
	switch {
	case c.IsDefault():
		return tcell.ColorDefault
	case c.IsPalette():
		return tcell.PaletteColor(int(c))
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
