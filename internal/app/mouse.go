package app

import (
	"bytes"

	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/event"
	"github.com/abdullathedruid/cdeck/internal/filebrowser"
	"github.com/abdullathedruid/cdeck/internal/focus"
	"github.com/abdullathedruid/cdeck/internal/input"
	"github.com/abdullathedruid/cdeck/internal/selection"
	"github.com/abdullathedruid/cdeck/internal/ui"
)

func (a *App) handleMouse(m event.Mouse) {
	// The prompt swallows the pointer.
	if a.focus.PromptOpen() {
		return
	}

	switch m.Action {
	case event.MousePress:
		a.press(m)
	case event.MouseDrag:
		if a.sel.State() != selection.Idle {
			a.sel.Drag(a.ptyPoint(m.X, m.Y))
		}
	case event.MouseRelease:
		if a.sel.State() == selection.Idle {
			return
		}
		text, ok := a.sel.Release(a.ptyPoint(m.X, m.Y), a.term)
		if ok && a.clip != nil {
			_ = a.clip.Copy(text)
		}
	case event.WheelUp:
		a.wheel(m, -1)
	case event.WheelDown:
		a.wheel(m, 1)
	}
}

func (a *App) press(m event.Mouse) {
	if a.frame.TabBar.Contains(m.X, m.Y) {
		if t, ok := ui.TabAt(m.X); ok {
			a.setTab(t)
		}
		return
	}

	target, ok := a.focus.HitTest(m.X, m.Y)
	if !ok {
		return
	}

	switch target {
	case focus.Pty:
		if a.frame.Divider.Contains(m.X, m.Y) {
			return
		}
		a.setFocus(focus.Pty)
		a.sel.Press(a.ptyPoint(m.X, m.Y))
	case focus.StatusPane:
		a.setFocus(focus.StatusPane)
		inner := a.frame.Status.Inner()
		if inner.Contains(m.X, m.Y) {
			row := a.status.Offset() + m.Y - inner.Y
			if row < len(a.files) {
				a.status.Select(row, len(a.files))
				a.loadDiff()
			}
		}
	case focus.DiffPane:
		a.setFocus(focus.DiffPane)
	case focus.BrowserLeft:
		a.browser.SetActive(filebrowser.Left)
		a.setFocus(focus.BrowserLeft)
	case focus.BrowserRight:
		a.browser.SetActive(filebrowser.Right)
		a.setFocus(focus.BrowserRight)
	}
}

// ptyPoint converts screen coordinates to a cell of the terminal pane,
// clamped to its inner area.
func (a *App) ptyPoint(x, y int) selection.Point {
	inner := a.frame.PtyInner
	return selection.Point{
		Col: min(max(x-inner.X, 0), max(inner.W-1, 0)),
		Row: min(max(y-inner.Y, 0), max(inner.H-1, 0)),
	}
}

// wheel scrolls whatever pane is under the pointer. dir is -1 for up.
func (a *App) wheel(m event.Mouse, dir int) {
	target, ok := a.focus.HitTest(m.X, m.Y)
	if !ok {
		return
	}

	switch target {
	case focus.Pty:
		if m.Mod&tcell.ModShift != 0 {
			if dir < 0 {
				a.term.ScrollUp(wheelLines)
			} else {
				a.term.ScrollDown(wheelLines)
			}
			a.sel.Clear()
			return
		}
		if !a.focus.Is(focus.Pty) {
			return
		}
		key := tcell.KeyDown
		if dir < 0 {
			key = tcell.KeyUp
		}
		a.writeChild(bytes.Repeat(input.Encode(key, 0, tcell.ModNone), wheelLines))
	case focus.StatusPane:
		for range wheelLines {
			if dir < 0 {
				a.status.MoveUp(len(a.files))
			} else {
				a.status.MoveDown(len(a.files))
			}
		}
		a.loadDiff()
	case focus.DiffPane:
		if dir < 0 {
			a.diff.ScrollUp(wheelLines)
		} else {
			a.diff.ScrollDown(wheelLines)
		}
	case focus.BrowserLeft, focus.BrowserRight:
		side := filebrowser.Left
		if target == focus.BrowserRight {
			side = filebrowser.Right
		}
		p := a.browser.Panel(side)
		if dir < 0 {
			p.PageUp(wheelLines)
		} else {
			p.PageDown(wheelLines)
		}
	}
}
