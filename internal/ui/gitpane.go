package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/cdeck/internal/git"
	"github.com/abdullathedruid/cdeck/internal/pane"
)

// StatusView is what the status pane needs to paint.
type StatusView struct {
	Files   []git.FileStatus
	List    *pane.StatusList
	Branch  string
	Focused bool
	// Notice replaces the list, e.g. outside a repository.
	Notice string
}

// DrawStatus paints the changed-file list.
func DrawStatus(s tcell.Screen, r pane.Rect, v StatusView, th Theme) {
	Fill(s, r, th.Base)
	title := fmt.Sprintf("%s (%d)", v.Branch, len(v.Files))
	if v.Branch == "" {
		title = "Status"
	}
	if v.List != nil && v.List.MultiSelect() {
		title += " [multi]"
	}
	Box(s, r, title, th.Border(v.Focused))

	inner := r.Inner()
	if inner.Empty() {
		return
	}
	if v.Notice != "" {
		PutString(s, inner.X, inner.Y, inner.W, v.Notice, th.Dim)
		return
	}
	if len(v.Files) == 0 {
		PutString(s, inner.X, inner.Y, inner.W, "Working tree clean", th.Dim)
		return
	}

	v.List.EnsureVisible(inner.H)
	for row := 0; row < inner.H; row++ {
		i := v.List.Offset() + row
		if i >= len(v.Files) {
			break
		}
		f := v.Files[i]
		y := inner.Y + row

		bg := th.Base
		if i == v.List.Cursor() {
			if v.Focused {
				bg = th.Selection
			} else {
				bg = th.Base.Background(th.CursorBg)
			}
		}
		Fill(s, pane.Rect{X: inner.X, Y: y, W: inner.W, H: 1}, bg)

		_, bgColor, _ := bg.Decompose()
		x := inner.X
		marker := " "
		if v.List.Marked(i) {
			marker = "●"
		}
		x += PutString(s, x, y, inner.Right()-x, marker, bg)
		x += PutString(s, x, y, inner.Right()-x, f.Stage.Icon(), th.StageStyle(f.Stage).Background(bgColor))
		x += PutString(s, x, y, inner.Right()-x, f.DisplayKind().Letter(), th.KindStyle(f.DisplayKind()).Background(bgColor))
		x += PutString(s, x, y, inner.Right()-x, " ", bg)

		name := f.Path
		if f.OrigPath != "" {
			name = f.OrigPath + " → " + f.Path
		}
		PutString(s, x, y, inner.Right()-x, Truncate(name, inner.Right()-x), bg)
	}
}

// DiffView is what the diff pane needs to paint.
type DiffView struct {
	View        *pane.DiffView
	Highlighter *Highlighter
	Focused     bool
}

// gutterWidth holds two four-digit line numbers and a separator.
const gutterWidth = 10

// DrawDiff paints the structured diff with line numbers and highlighting.
func DrawDiff(s tcell.Screen, r pane.Rect, v DiffView, th Theme) {
	Fill(s, r, th.Base)
	dv := v.View
	title := "Diff"
	if dv.Path() != "" {
		title = dv.Path()
	}
	if dv.Anchored() {
		if start, end, ok := dv.SelectionRange(); ok {
			title += fmt.Sprintf(" [%d lines]", end-start+1)
		}
	}
	Box(s, r, title, th.Border(v.Focused))

	inner := r.Inner()
	if inner.Empty() {
		return
	}
	d := dv.Diff()
	switch {
	case d == nil:
		PutString(s, inner.X, inner.Y, inner.W, "Select a file to see its diff", th.Dim)
		return
	case d.Binary:
		PutString(s, inner.X, inner.Y, inner.W, "Binary file", th.Dim)
		return
	case d.Empty():
		PutString(s, inner.X, inner.Y, inner.W, "No changes", th.Dim)
		return
	}

	lines := dv.Lines()
	for row := 0; row < inner.H; row++ {
		i := dv.Scroll() + row
		if i >= len(lines) {
			break
		}
		drawDiffLine(s, inner, inner.Y+row, i, lines[i], v, th)
	}
}

func drawDiffLine(s tcell.Screen, inner pane.Rect, y, i int, line git.DiffLine, v DiffView, th Theme) {
	dv := v.View
	base := th.Base
	switch line.Kind {
	case git.Addition:
		base = th.Addition
	case git.Deletion:
		base = th.Deletion
	case git.HunkHeader:
		base = th.HunkHeader
	}
	switch {
	case dv.InSelection(i):
		base = base.Background(th.SelectBg)
	case v.Focused && i == dv.Cursor():
		base = base.Background(th.CursorBg)
	}
	_, bg, _ := base.Decompose()

	Fill(s, pane.Rect{X: inner.X, Y: y, W: inner.W, H: 1}, base)

	x := inner.X
	if line.Kind != git.HunkHeader {
		gutter := PadLeft(lineNo(line.OldLine), 4) + " " + PadLeft(lineNo(line.NewLine), 4) + " "
		x += PutString(s, x, y, min(gutterWidth, inner.W), gutter, th.LineNumber.Background(bg))
	}

	segs := []Segment{{Text: line.Content, Style: base}}
	if line.Kind != git.HunkHeader && v.Highlighter != nil {
		segs = v.Highlighter.Line(dv.Diff(), i, line)
	}

	skip := dv.HScroll()
	for _, seg := range segs {
		style := seg.Style.Background(bg)
		if seg.Style == tcell.StyleDefault || line.Kind == git.HunkHeader {
			style = base
		}
		for _, r := range ExpandTabs(seg.Text, 4) {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if skip > 0 {
				skip -= w
				continue
			}
			if x+w > inner.Right() {
				return
			}
			s.SetContent(x, y, r, nil, style)
			x += w
		}
	}
}

func lineNo(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
