package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/filebrowser"
	"github.com/abdullathedruid/cdeck/internal/git"
	"github.com/abdullathedruid/cdeck/internal/pane"
)

// BrowserView is one file panel on the Files tab.
type BrowserView struct {
	Panel   *filebrowser.Panel
	Focused bool
}

// Column widths of the size and modified fields.
const (
	sizeColWidth     = 9
	modifiedColWidth = 16
)

// DrawBrowser paints a directory listing.
func DrawBrowser(s tcell.Screen, r pane.Rect, v BrowserView, th Theme) {
	Fill(s, r, th.Base)
	p := v.Panel
	title := git.ShortenPath(p.Dir())
	if p.ShowHidden() {
		title += " [hidden]"
	}
	Box(s, r, title, th.Border(v.Focused))

	inner := r.Inner()
	if inner.Empty() {
		return
	}
	if err := p.Err(); err != nil {
		PutString(s, inner.X, inner.Y, inner.W, Truncate(err.Error(), inner.W), th.Base.Foreground(tcell.ColorRed))
		return
	}
	entries := p.Entries()
	if len(entries) == 0 {
		PutString(s, inner.X, inner.Y, inner.W, "(empty)", th.Dim)
		return
	}

	p.EnsureVisible(inner.H)
	showMeta := inner.W >= sizeColWidth+modifiedColWidth+12
	for row := 0; row < inner.H; row++ {
		i := p.Offset() + row
		if i >= len(entries) {
			break
		}
		e := entries[i]
		y := inner.Y + row

		style := th.Base
		if e.IsDir {
			style = style.Foreground(hunkFg).Bold(true)
		}
		if i == p.Cursor() {
			if v.Focused {
				style = style.Background(th.SelectBg)
			} else {
				style = style.Background(th.CursorBg)
			}
		}

		if !showMeta {
			PutLine(s, inner.X, y, inner.W, Truncate(e.DisplayName(), inner.W), style)
			continue
		}
		nameW := inner.W - sizeColWidth - modifiedColWidth - 2
		line := PadRight(Truncate(e.DisplayName(), nameW), nameW) + " " +
			PadLeft(e.SizeString(), sizeColWidth) + " " +
			PadLeft(Truncate(e.ModifiedString(), modifiedColWidth), modifiedColWidth)
		PutLine(s, inner.X, y, inner.W, line, style)
	}
}
