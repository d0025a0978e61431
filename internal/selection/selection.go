// Package selection turns pointer gestures over the terminal pane into a
// text span and extracts its contents.
package selection

import "strings"

// Point is a cell in the terminal pane's inner area.
type Point struct {
	Col, Row int
}

// Before reports whether p comes before q in reading order.
func (p Point) Before(q Point) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

// Span is a selected range. Start and End are kept in the order the user
// dragged; use Normalize for reading order.
type Span struct {
	StartCol, StartRow int
	EndCol, EndRow     int
	Dragging           bool
	Active             bool
}

// Normalize returns the span's endpoints with start <= end in reading order.
func (s Span) Normalize() (start, end Point) {
	start = Point{s.StartCol, s.StartRow}
	end = Point{s.EndCol, s.EndRow}
	if end.Before(start) {
		start, end = end, start
	}
	return start, end
}

// Empty reports whether both endpoints are the same cell.
func (s Span) Empty() bool {
	return s.StartCol == s.EndCol && s.StartRow == s.EndRow
}

// Contains reports whether col,row is inside an active span.
func (s Span) Contains(col, row int) bool {
	if !s.Active {
		return false
	}
	start, end := s.Normalize()
	if row < start.Row || row > end.Row {
		return false
	}
	if row == start.Row && col < start.Col {
		return false
	}
	if row == end.Row && col > end.Col {
		return false
	}
	return true
}

// Grid is the read-only view extraction needs.
type Grid interface {
	Width() int
	// Rune returns the character shown at col,row; zero means blank.
	Rune(col, row int) rune
}

// Extract returns the text covered by the span. Each line has trailing
// whitespace removed and lines are joined with "\n".
func Extract(s Span, g Grid) string {
	start, end := s.Normalize()
	width := g.Width()

	lines := make([]string, 0, end.Row-start.Row+1)
	var b strings.Builder
	for row := start.Row; row <= end.Row; row++ {
		from, to := 0, width-1
		if row == start.Row {
			from = start.Col
		}
		if row == end.Row {
			to = min(end.Col, width-1)
		}

		b.Reset()
		for col := max(from, 0); col <= to; col++ {
			r := g.Rune(col, row)
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		lines = append(lines, strings.TrimRight(b.String(), " \t"))
	}
	return strings.Join(lines, "\n")
}
