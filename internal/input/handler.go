package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Result is the outcome of a key handled by the prompt.
type Result int

const (
	// Editing means the prompt stays open.
	Editing Result = iota
	// Submitted means Enter was pressed.
	Submitted
	// Cancelled means Esc was pressed.
	Cancelled
)

// Prompt is the prompt dialog's line editor. It is owned by the dispatcher
// and needs no locking.
type Prompt struct {
	open   bool
	mode   Mode
	buf    []rune
	cursor int

	// refs are the @-references attached in ModeSendToChild.
	refs []string
	// subject is the path a browser mode acts on.
	subject string
}

// NewPrompt returns a closed prompt.
func NewPrompt() *Prompt {
	return &Prompt{}
}

// Open starts editing in mode with initial text and the cursor at its end.
func (p *Prompt) Open(mode Mode, initial string) {
	p.open = true
	p.mode = mode
	p.buf = []rune(initial)
	p.cursor = len(p.buf)
	p.refs = nil
	p.subject = ""
}

// OpenSend starts a ModeSendToChild prompt carrying refs.
func (p *Prompt) OpenSend(refs []string) {
	p.Open(ModeSendToChild, "")
	p.refs = refs
}

// OpenFor starts a browser-mode prompt acting on subject.
func (p *Prompt) OpenFor(mode Mode, subject, initial string) {
	p.Open(mode, initial)
	p.subject = subject
}

// Close ends editing and clears the buffer.
func (p *Prompt) Close() {
	*p = Prompt{}
}

// IsOpen reports whether the prompt is shown.
func (p *Prompt) IsOpen() bool { return p.open }

// Mode returns the current mode.
func (p *Prompt) Mode() Mode { return p.mode }

// Input returns the text typed so far.
func (p *Prompt) Input() string { return string(p.buf) }

// Cursor returns the cursor position in runes.
func (p *Prompt) Cursor() int { return p.cursor }

// Refs returns the attached references.
func (p *Prompt) Refs() []string { return p.refs }

// Subject returns the path a browser mode acts on.
func (p *Prompt) Subject() string { return p.subject }

// Insert adds ch at the cursor.
func (p *Prompt) Insert(ch rune) {
	p.buf = append(p.buf, 0)
	copy(p.buf[p.cursor+1:], p.buf[p.cursor:])
	p.buf[p.cursor] = ch
	p.cursor++
}

// Backspace removes the rune before the cursor.
func (p *Prompt) Backspace() {
	if p.cursor == 0 {
		return
	}
	p.buf = append(p.buf[:p.cursor-1], p.buf[p.cursor:]...)
	p.cursor--
}

// Delete removes the rune under the cursor.
func (p *Prompt) Delete() {
	if p.cursor >= len(p.buf) {
		return
	}
	p.buf = append(p.buf[:p.cursor], p.buf[p.cursor+1:]...)
}

func (p *Prompt) Left() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Prompt) Right() {
	if p.cursor < len(p.buf) {
		p.cursor++
	}
}

func (p *Prompt) Home() { p.cursor = 0 }
func (p *Prompt) End()  { p.cursor = len(p.buf) }

// Clear empties the buffer.
func (p *Prompt) Clear() {
	p.buf = p.buf[:0]
	p.cursor = 0
}

// HandleKey applies one key event.
func (p *Prompt) HandleKey(code tcell.Key, ch rune, mod tcell.ModMask) Result {
	switch code {
	case tcell.KeyEscape:
		return Cancelled
	case tcell.KeyEnter:
		return Submitted
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.Backspace()
	case tcell.KeyDelete:
		p.Delete()
	case tcell.KeyLeft:
		p.Left()
	case tcell.KeyRight:
		p.Right()
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.Home()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.End()
	case tcell.KeyCtrlU:
		p.Clear()
	case tcell.KeyRune:
		if mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			p.Insert(ch)
		}
	}
	return Editing
}

// CanSubmitEmpty reports whether Enter with no text still acts. Only a
// send with attached references does.
func (p *Prompt) CanSubmitEmpty() bool {
	return p.mode == ModeSendToChild && len(p.refs) > 0
}

// SendText builds what ModeSendToChild writes to the child:
// "{input} {refs}\n", or "{refs}\n" when nothing was typed.
func (p *Prompt) SendText() string {
	return BuildSend(strings.TrimSpace(p.Input()), p.refs)
}

// BuildSend joins a message and references into one line for the child.
func BuildSend(message string, refs []string) string {
	joined := strings.Join(refs, " ")
	switch {
	case message == "":
		return joined + "\n"
	case joined == "":
		return message + "\n"
	}
	return message + " " + joined + "\n"
}

// FileRefs turns paths into @-references.
func FileRefs(paths []string) []string {
	refs := make([]string, len(paths))
	for i, p := range paths {
		refs[i] = "@" + p
	}
	return refs
}
