package selection

// State is the gesture state.
type State int

const (
	Idle State = iota
	Armed
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Model tracks one pointer gesture plus the last finalized span, which
// stays visible until Clear.
type Model struct {
	state  State
	origin Point
	span   Span
}

// State returns the current gesture state.
func (m *Model) State() State {
	return m.state
}

// Span returns the span to render.
func (m *Model) Span() Span {
	return m.span
}

// Press arms a new gesture at p, dropping any previous selection.
func (m *Model) Press(p Point) {
	m.state = Armed
	m.origin = p
	m.span = Span{StartCol: p.Col, StartRow: p.Row, EndCol: p.Col, EndRow: p.Row}
}

// Drag extends the gesture to p. It does nothing unless a gesture is armed.
func (m *Model) Drag(p Point) {
	if m.state == Idle {
		return
	}
	m.state = Dragging
	m.span.EndCol, m.span.EndRow = p.Col, p.Row
	m.span.Dragging = true
	m.span.Active = true
}

// Release ends the gesture at p. When a non-empty span was dragged it
// returns the extracted text and true; the span stays active for display.
func (m *Model) Release(p Point, g Grid) (string, bool) {
	wasDragging := m.state == Dragging
	m.state = Idle

	if !wasDragging {
		m.span = Span{}
		return "", false
	}

	m.span.EndCol, m.span.EndRow = p.Col, p.Row
	m.span.Dragging = false
	if m.span.Empty() {
		m.span = Span{}
		return "", false
	}

	text := Extract(m.span, g)
	if text == "" {
		return "", false
	}
	return text, true
}

// Clear drops the gesture and the visible span.
func (m *Model) Clear() {
	m.state = Idle
	m.span = Span{}
}

// Active reports whether a span is visible.
func (m *Model) Active() bool {
	return m.span.Active
}
