// Package event defines the application's event values and the single
// dispatch loop that applies them.
package event

import (
	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/git"
)

// Event is one input to the dispatcher. The set of variants is closed.
type Event interface {
	isEvent()
}

// Key is a keyboard event.
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// MouseAction is what happened to the pointer.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
	WheelUp
	WheelDown
)

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseDrag:
		return "drag"
	case MouseRelease:
		return "release"
	case WheelUp:
		return "wheel-up"
	case WheelDown:
		return "wheel-down"
	}
	return "unknown"
}

// Mouse is a pointer event in screen cells.
type Mouse struct {
	Action MouseAction
	X, Y   int
	Mod    tcell.ModMask
}

// Paste is text delivered by the host terminal's bracketed paste.
type Paste struct {
	Text string
}

// Resize reports a new host terminal size.
type Resize struct {
	Width, Height int
}

// PtyOutput is a chunk read from the child. Data is owned by the event.
type PtyOutput struct {
	Data []byte
}

// PtyExited reports that the child side reached EOF. Err is set when the
// read failed for another reason.
type PtyExited struct {
	Err error
}

// Tick fires at the configured interval.
type Tick struct{}

// GitRefreshRequested asks for a background status query.
type GitRefreshRequested struct{}

// GitStatusUpdate carries the result of a background status query.
// DiffFile is the entry whose diff was computed alongside it; Diff and
// DiffErr are unset when the tree is clean.
type GitStatusUpdate struct {
	Snapshot git.Snapshot
	Err      error

	DiffFile git.FileStatus
	Diff     *git.FileDiff
	DiffErr  error
}

// GitActionDone reports a finished background git command. Message is
// shown in the command bar; Err replaces it on failure.
type GitActionDone struct {
	Message string
	Err     error
}

// ChildProcess carries the command line currently running in the PTY.
type ChildProcess struct {
	Command string
}

// FocusGained and FocusLost mirror the host terminal's focus reports.
type FocusGained struct{}
type FocusLost struct{}

func (Key) isEvent()                 {}
func (Mouse) isEvent()               {}
func (Paste) isEvent()               {}
func (Resize) isEvent()              {}
func (PtyOutput) isEvent()           {}
func (PtyExited) isEvent()           {}
func (Tick) isEvent()                {}
func (GitRefreshRequested) isEvent() {}
func (GitStatusUpdate) isEvent()     {}
func (GitActionDone) isEvent()       {}
func (ChildProcess) isEvent()        {}
func (FocusGained) isEvent()         {}
func (FocusLost) isEvent()           {}
