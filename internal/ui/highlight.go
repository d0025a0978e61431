package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/git"
)

// Segment is a run of text with one foreground style.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Highlighter colors diff lines by the language of the file. Results are
// cached until a different diff is shown.
type Highlighter struct {
	style *chroma.Style

	diff  *git.FileDiff
	lexer chroma.Lexer
	cache map[int][]Segment
}

// NewHighlighter uses the named chroma style, falling back to chroma's
// default when the name is unknown.
func NewHighlighter(styleName string) *Highlighter {
	return &Highlighter{
		style: styles.Get(styleName),
		cache: make(map[int][]Segment),
	}
}

// Line returns the segments of line i of d. Hunk headers and files with
// no matching lexer come back as a single plain segment.
func (h *Highlighter) Line(d *git.FileDiff, i int, line git.DiffLine) []Segment {
	if d != h.diff {
		h.diff = d
		h.lexer = nil
		if d != nil {
			if l := lexers.Match(d.Path); l != nil {
				h.lexer = chroma.Coalesce(l)
			}
		}
		clear(h.cache)
	}

	if segs, ok := h.cache[i]; ok {
		return segs
	}
	segs := h.tokenise(line)
	h.cache[i] = segs
	return segs
}

func (h *Highlighter) tokenise(line git.DiffLine) []Segment {
	plain := []Segment{{Text: line.Content, Style: tcell.StyleDefault}}
	if h.lexer == nil || line.Kind == git.HunkHeader {
		return plain
	}

	it, err := h.lexer.Tokenise(nil, line.Content)
	if err != nil {
		return plain
	}

	var segs []Segment
	for tok := it(); tok != chroma.EOF; tok = it() {
		text := strings.TrimRight(tok.Value, "\n")
		if text == "" {
			continue
		}
		segs = append(segs, Segment{Text: text, Style: h.tokenStyle(tok.Type)})
	}
	return segs
}

func (h *Highlighter) tokenStyle(t chroma.TokenType) tcell.Style {
	entry := h.style.Get(t)
	style := tcell.StyleDefault
	if entry.Colour.IsSet() {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	return style
}
