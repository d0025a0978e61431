package termstate

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// maxPartialLine caps how many raw bytes of an unterminated line are held.
const maxPartialLine = 64 * 1024

// Scrollback keeps a bounded history of plain-text output lines and the
// current scroll position over it.
type Scrollback struct {
	lines []string // ring buffer
	start int
	count int

	partial []byte

	scrollPos int // 0 = live view, >0 = lines scrolled up from bottom
}

// NewScrollback returns a history ring holding at most capacity lines.
func NewScrollback(capacity int) *Scrollback {
	return &Scrollback{lines: make([]string, max(capacity, 1))}
}

// Append records raw child output. Only completed lines enter the ring;
// escape sequences are stripped and a carriage return keeps only the text
// written after it.
func (s *Scrollback) Append(data []byte) {
	for len(data) > 0 {
		i := indexNewline(data)
		if i < 0 {
			s.partial = append(s.partial, data...)
			if len(s.partial) > maxPartialLine {
				s.flush()
			}
			return
		}
		s.partial = append(s.partial, data[:i]...)
		s.flush()
		data = data[i+1:]
	}
}

func indexNewline(b []byte) int {
	for i, c := range b {
		if c == '\n' {
			return i
		}
	}
	return -1
}

func (s *Scrollback) flush() {
	text := ansi.Strip(string(s.partial))
	s.partial = s.partial[:0]

	text = strings.TrimRight(text, "\r")
	if i := strings.LastIndexByte(text, '\r'); i >= 0 {
		text = text[i+1:]
	}
	s.push(text)
}

func (s *Scrollback) push(line string) {
	if s.count < len(s.lines) {
		s.lines[(s.start+s.count)%len(s.lines)] = line
		s.count++
		return
	}
	s.lines[s.start] = line
	s.start = (s.start + 1) % len(s.lines)
}

// Len returns the number of stored lines.
func (s *Scrollback) Len() int {
	return s.count
}

// Line returns the i-th oldest stored line.
func (s *Scrollback) Line(i int) string {
	if i < 0 || i >= s.count {
		return ""
	}
	return s.lines[(s.start+i)%len(s.lines)]
}

// Window returns up to height lines ending at the current scroll position.
func (s *Scrollback) Window(height int) []string {
	if s.scrollPos == 0 || height <= 0 {
		return nil
	}
	end := s.count - s.scrollPos + 1
	begin := max(end-height, 0)
	out := make([]string, 0, end-begin)
	for i := begin; i < end; i++ {
		out = append(out, s.Line(i))
	}
	return out
}

// ScrollPos returns the current scroll position (0 = live, >0 = scrolled up).
func (s *Scrollback) ScrollPos() int {
	return s.scrollPos
}

// IsScrolled returns true if the view is scrolled (not showing live output).
func (s *Scrollback) IsScrolled() bool {
	return s.scrollPos > 0
}

// ScrollUp moves the viewport up by the given number of lines and returns
// the new position. The position never passes the oldest stored line.
func (s *Scrollback) ScrollUp(lines int) int {
	s.scrollPos = min(s.scrollPos+lines, s.count)
	return s.scrollPos
}

// ScrollDown moves the viewport down by the given number of lines.
// Returns the new scroll position (minimum 0).
func (s *Scrollback) ScrollDown(lines int) int {
	s.scrollPos = max(s.scrollPos-lines, 0)
	return s.scrollPos
}

// ScrollToBottom resets scroll position to show live output.
func (s *Scrollback) ScrollToBottom() {
	s.scrollPos = 0
}
