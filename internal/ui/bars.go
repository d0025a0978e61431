package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/cdeck/internal/focus"
	"github.com/abdullathedruid/cdeck/internal/pane"
)

// TabBarView describes the top row.
type TabBarView struct {
	Active pane.Tab
	// Pid and Command describe the hosted child; Pid 0 hides them.
	Pid     int
	Command string
	// Title is the window title the child last set.
	Title string
}

// DrawTabBar paints the tab labels, the child's title centered in the
// space left over and its pid and command line on the right.
func DrawTabBar(s tcell.Screen, r pane.Rect, v TabBarView, th Theme) {
	if r.Empty() {
		return
	}
	Fill(s, r, th.TabInactive)
	x := r.X
	for i, t := range pane.Tabs {
		style := th.TabInactive
		if t == v.Active {
			style = th.TabActive
		}
		label := tabLabel(i, t)
		x += PutString(s, x, r.Y, r.Right()-x, label, style)
	}

	right := r.Right()
	if v.Pid != 0 {
		info := fmt.Sprintf("%d %s ", v.Pid, v.Command)
		if room := right - x - 1; room >= 8 {
			info = Truncate(info, room)
			right -= runewidth.StringWidth(info)
			PutString(s, right, r.Y, room, info, th.TabInactive)
		}
	}

	if gap := right - x - 2; v.Title != "" && gap > 3 {
		PutString(s, x+1, r.Y, gap, Center(Truncate(v.Title, gap), gap), th.TabInactive)
	}
}

func tabLabel(i int, t pane.Tab) string {
	return fmt.Sprintf(" [F%d] %s ", i+1, t)
}

// TabAt returns the tab whose label covers column x of the tab bar.
func TabAt(x int) (pane.Tab, bool) {
	col := 0
	for i, t := range pane.Tabs {
		col += runewidth.StringWidth(tabLabel(i, t))
		if x < col {
			return t, x >= 0
		}
	}
	return 0, false
}

var paneHints = map[focus.Target]string{
	focus.Pty:          "Tab git  F3 cycle  Ctrl+\\ resize  Shift+PgUp scroll  Ctrl+Q quit",
	focus.StatusPane:   "space stage  a all  enter diff  s send  c commit  p push  P pull  b branches",
	focus.DiffPane:     "j/k move  J/K hunk  h/l scroll  V range  s send  esc back",
	focus.BrowserLeft:  "enter open  bksp up  F5 copy  F6 move  F7 mkdir  F8 delete  R rename  s send",
	focus.BrowserRight: "enter open  bksp up  F5 copy  F6 move  F7 mkdir  F8 delete  R rename  s send",
	focus.PromptDialog: "enter submit  esc cancel",
}

// Hints returns the command bar text for a focused pane.
func Hints(t focus.Target) string {
	return paneHints[t]
}

// DrawCommandBar paints key hints on the left and the status message on
// the right. The message wins when both do not fit.
func DrawCommandBar(s tcell.Screen, r pane.Rect, hints, message string, th Theme) {
	if r.Empty() {
		return
	}
	Fill(s, r, th.StatusBar)
	msgW := 0
	if message != "" {
		message = Truncate(" "+message+" ", r.W)
		msgW = runewidth.StringWidth(message)
		PutString(s, r.Right()-msgW, r.Y, msgW, message, th.Message)
	}
	if room := r.W - msgW - 1; room > 0 {
		PutString(s, r.X+1, r.Y, room-1, Truncate(hints, room-1), th.StatusBar)
	}
}
