package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/cdeck/internal/pane"
)

// PutString draws s at x,y clipped to maxW columns and returns the number
// of columns used.
func PutString(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxW {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
	return col
}

// PutLine draws text and pads the rest of the width with style.
func PutLine(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	n := PutString(s, x, y, w, text, style)
	for i := n; i < w; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}

// Fill paints r with spaces in style.
func Fill(s tcell.Screen, r pane.Rect, style tcell.Style) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// Box draws a single-line border around r with a title in the top edge.
func Box(s tcell.Screen, r pane.Rect, title string, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < x1; x++ {
		s.SetContent(x, r.Y, tcell.RuneHLine, nil, style)
		s.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := r.Y + 1; y < y1; y++ {
		s.SetContent(r.X, y, tcell.RuneVLine, nil, style)
		s.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	s.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, style)
	s.SetContent(x1, r.Y, tcell.RuneURCorner, nil, style)
	s.SetContent(r.X, y1, tcell.RuneLLCorner, nil, style)
	s.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)

	if title != "" && r.W > 4 {
		PutString(s, r.X+1, r.Y, r.W-2, Truncate(" "+title+" ", r.W-2), style)
	}
}

// VLine draws a vertical rule down column x of r.
func VLine(s tcell.Screen, r pane.Rect, style tcell.Style) {
	for y := r.Y; y < r.Bottom(); y++ {
		s.SetContent(r.X, y, tcell.RuneVLine, nil, style)
	}
}
