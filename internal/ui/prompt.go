package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/cdeck/internal/input"
	"github.com/abdullathedruid/cdeck/internal/pane"
)

// DrawPrompt paints the modal prompt and places the terminal cursor in
// its input line.
func DrawPrompt(s tcell.Screen, r pane.Rect, p *input.Prompt, th Theme) {
	if r.Empty() || !p.IsOpen() {
		return
	}
	Fill(s, r, th.Base)
	Box(s, r, p.Mode().String(), th.BorderFocused)

	inner := r.Inner()
	if inner.Empty() {
		return
	}

	info := p.Subject()
	if refs := p.Refs(); len(refs) > 0 {
		info = strings.Join(refs, " ")
	}
	y := inner.Y
	if info != "" {
		for _, line := range WrapText(info, inner.W) {
			if y >= inner.Bottom()-1 {
				break
			}
			PutString(s, inner.X, y, inner.W, line, th.Dim)
			y++
		}
	}
	if p.Mode() == input.ModeConfirmDelete {
		return
	}

	// Keep the cursor in view by dropping leading runes.
	runes := []rune(p.Input())
	cursor := p.Cursor()
	start := 0
	for runewidth.StringWidth(string(runes[start:cursor])) >= inner.W && start < cursor {
		start++
	}
	text := string(runes[start:])
	PutLine(s, inner.X, y, inner.W, text, th.Selection)
	s.ShowCursor(inner.X+runewidth.StringWidth(string(runes[start:cursor])), y)
}
