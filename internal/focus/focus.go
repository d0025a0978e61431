// Package focus tracks which pane owns keyboard input and tells the hosted
// child when the terminal pane gains or loses focus.
package focus

import (
	"io"

	"github.com/abdullathedruid/cdeck/internal/pane"
)

// Target is a focusable region.
type Target int

const (
	Pty Target = iota
	StatusPane
	DiffPane
	PromptDialog
	BrowserLeft
	BrowserRight
)

func (t Target) String() string {
	switch t {
	case Pty:
		return "pty"
	case StatusPane:
		return "status"
	case DiffPane:
		return "diff"
	case PromptDialog:
		return "prompt"
	case BrowserLeft:
		return "browser-left"
	case BrowserRight:
		return "browser-right"
	}
	return "unknown"
}

// Focus reporting sequences sent to the child.
const (
	FocusIn  = "\x1b[I"
	FocusOut = "\x1b[O"
)

// cycleOrder is the Tab order among panes on the main tab.
var cycleOrder = []Target{Pty, StatusPane, DiffPane}

// Machine is the focus state. Exactly one target is current.
type Machine struct {
	current Target
	// returnTo is where ClosePrompt goes when given no explicit target.
	returnTo Target

	childReady bool
	out        io.Writer

	rects map[Target]pane.Rect

	// hostFocused mirrors the host terminal's own focus state.
	hostFocused bool
}

// New starts focused on the terminal pane. Focus sequences are written to
// out once MarkChildReady has been called.
func New(out io.Writer) *Machine {
	return &Machine{
		current:     Pty,
		out:         out,
		rects:       make(map[Target]pane.Rect),
		hostFocused: true,
	}
}

// Current returns the focused target.
func (m *Machine) Current() Target {
	return m.current
}

// Is reports whether t is focused.
func (m *Machine) Is(t Target) bool {
	return m.current == t
}

// PromptOpen reports whether the modal prompt owns input.
func (m *Machine) PromptOpen() bool {
	return m.current == PromptDialog
}

// MarkChildReady records that the child has produced output, which enables
// focus reporting.
func (m *Machine) MarkChildReady() {
	m.childReady = true
}

// ChildReady reports whether focus reporting is enabled.
func (m *Machine) ChildReady() bool {
	return m.childReady
}

// Set moves focus to t. It is ignored while the prompt is open and cannot
// open the prompt; use OpenPrompt for that. It reports whether focus moved.
func (m *Machine) Set(t Target) bool {
	if m.current == PromptDialog || t == PromptDialog || t == m.current {
		return false
	}
	m.transition(t)
	return true
}

// Cycle moves to the next pane in Tab order. Diff is skipped unless
// diffVisible. From a browser panel it returns to the terminal pane.
func (m *Machine) Cycle(diffVisible bool) bool {
	if m.current == PromptDialog {
		return false
	}
	idx := -1
	for i, t := range cycleOrder {
		if t == m.current {
			idx = i
			break
		}
	}
	for step := 1; step <= len(cycleOrder); step++ {
		next := cycleOrder[(idx+step+len(cycleOrder))%len(cycleOrder)]
		if next == DiffPane && !diffVisible {
			continue
		}
		return m.Set(next)
	}
	return false
}

// OpenPrompt makes the prompt modal, remembering the current pane.
func (m *Machine) OpenPrompt() bool {
	if m.current == PromptDialog {
		return false
	}
	m.returnTo = m.current
	m.transition(PromptDialog)
	return true
}

// ClosePrompt leaves the prompt for the pane it was opened from.
func (m *Machine) ClosePrompt() {
	m.ClosePromptTo(m.returnTo)
}

// ClosePromptTo leaves the prompt for t.
func (m *Machine) ClosePromptTo(t Target) {
	if m.current != PromptDialog || t == PromptDialog {
		return
	}
	m.transition(t)
}

// ReturnTarget is the pane the open prompt will return to.
func (m *Machine) ReturnTarget() Target {
	return m.returnTo
}

func (m *Machine) transition(to Target) {
	from := m.current
	m.current = to
	switch {
	case from != Pty && to == Pty:
		m.emit(FocusIn)
	case from == Pty && to != Pty:
		m.emit(FocusOut)
	}
}

func (m *Machine) emit(seq string) {
	if !m.childReady || m.out == nil || !m.hostFocused {
		return
	}
	_, _ = io.WriteString(m.out, seq)
}

// HostFocus records the host terminal gaining or losing focus. While the
// terminal pane is focused the change is forwarded to the child.
func (m *Machine) HostFocus(gained bool) {
	if gained == m.hostFocused {
		return
	}
	if m.current != Pty {
		m.hostFocused = gained
		return
	}
	if gained {
		m.hostFocused = true
		m.emit(FocusIn)
	} else {
		m.emit(FocusOut)
		m.hostFocused = false
	}
}

// SetRects records where each target was last drawn. Targets missing from
// rects are not hit-testable.
func (m *Machine) SetRects(rects map[Target]pane.Rect) {
	clear(m.rects)
	for t, r := range rects {
		m.rects[t] = r
	}
}

// Rect returns the last drawn rectangle of t.
func (m *Machine) Rect(t Target) (pane.Rect, bool) {
	r, ok := m.rects[t]
	return r, ok && !r.Empty()
}

// HitTest returns the pane drawn at x,y.
func (m *Machine) HitTest(x, y int) (Target, bool) {
	if m.current == PromptDialog {
		if r, ok := m.Rect(PromptDialog); ok && r.Contains(x, y) {
			return PromptDialog, true
		}
		return PromptDialog, false
	}
	for _, t := range []Target{Pty, StatusPane, DiffPane, BrowserLeft, BrowserRight} {
		if r, ok := m.Rect(t); ok && r.Contains(x, y) {
			return t, true
		}
	}
	return 0, false
}
