package event

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

// ReadBufferSize is the PTY read chunk size.
const ReadBufferSize = 32 * 1024

// Translator turns tcell events into Events. tcell reports button state
// rather than transitions, so the translator remembers the last state to
// tell presses, drags and releases apart. Keys arriving between the start
// and end of a bracketed paste are collected into one Paste.
type Translator struct {
	buttons      tcell.ButtonMask
	lastX, lastY int

	pasting bool
	paste   strings.Builder
}

// Translate converts ev. It returns nil for events that produce nothing,
// such as keys inside a paste or pointer motion with no button held.
func (t *Translator) Translate(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if t.pasting {
			t.collect(e)
			return nil
		}
		return Key{Code: e.Key(), Rune: e.Rune(), Mod: e.Modifiers()}

	case *tcell.EventPaste:
		if e.Start() {
			t.pasting = true
			t.paste.Reset()
			return nil
		}
		t.pasting = false
		return Paste{Text: t.paste.String()}

	case *tcell.EventMouse:
		x, y := e.Position()
		return t.mouse(e.Buttons(), x, y, e.Modifiers())

	case *tcell.EventResize:
		w, h := e.Size()
		return Resize{Width: w, Height: h}

	case *tcell.EventFocus:
		if e.Focused {
			return FocusGained{}
		}
		return FocusLost{}
	}
	return nil
}

func (t *Translator) collect(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		t.paste.WriteRune(e.Rune())
	case tcell.KeyEnter:
		t.paste.WriteByte('\r')
	case tcell.KeyTab:
		t.paste.WriteByte('\t')
	case tcell.KeyCtrlJ:
		t.paste.WriteByte('\n')
	}
}

func (t *Translator) mouse(buttons tcell.ButtonMask, x, y int, mod tcell.ModMask) Event {
	switch {
	case buttons&tcell.WheelUp != 0:
		return Mouse{Action: WheelUp, X: x, Y: y, Mod: mod}
	case buttons&tcell.WheelDown != 0:
		return Mouse{Action: WheelDown, X: x, Y: y, Mod: mod}
	}

	held := buttons & tcell.Button1
	prev := t.buttons
	t.buttons = held
	moved := x != t.lastX || y != t.lastY
	t.lastX, t.lastY = x, y

	switch {
	case prev == 0 && held != 0:
		return Mouse{Action: MousePress, X: x, Y: y, Mod: mod}
	case prev != 0 && held != 0:
		if !moved {
			return nil
		}
		return Mouse{Action: MouseDrag, X: x, Y: y, Mod: mod}
	case prev != 0 && held == 0:
		return Mouse{Action: MouseRelease, X: x, Y: y, Mod: mod}
	}
	return nil
}

// PollScreen feeds host terminal events into q until the screen is
// finalized or the queue is closed.
func PollScreen(s tcell.Screen, q *Queue) {
	var t Translator
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		if out := t.Translate(ev); out != nil {
			if !q.Push(out) {
				return
			}
		}
	}
}

// PumpPty copies child output into q. It pushes exactly one PtyExited
// when the reader reports EOF or fails, then returns.
func PumpPty(r io.Reader, q *Queue) {
	buf := make([]byte, ReadBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			if !q.Push(PtyOutput{Data: data}) {
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			q.Push(PtyExited{Err: err})
			return
		}
	}
}

// Ticker pushes a Tick every interval until the queue is closed.
func Ticker(interval time.Duration, q *Queue) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !q.Push(Tick{}) {
				return
			}
		case <-q.Done():
			return
		}
	}
}
