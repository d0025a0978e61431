package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/config"
	"github.com/abdullathedruid/cdeck/internal/git"
)

// Fixed diff palette.
var (
	addBg    = tcell.NewRGBColor(22, 39, 28)
	addFg    = tcell.NewRGBColor(86, 209, 108)
	delBg    = tcell.NewRGBColor(50, 22, 22)
	delFg    = tcell.NewRGBColor(235, 100, 95)
	hunkBg   = tcell.NewRGBColor(30, 35, 50)
	hunkFg   = tcell.NewRGBColor(110, 150, 220)
	cursorBg = tcell.NewRGBColor(45, 50, 65)
	lineNoFg = tcell.NewRGBColor(90, 90, 100)
)

// Theme holds the styles used to paint a frame.
type Theme struct {
	Base            tcell.Style
	BorderFocused   tcell.Style
	BorderUnfocused tcell.Style
	Selection       tcell.Style
	StatusBar       tcell.Style
	TabActive       tcell.Style
	TabInactive     tcell.Style
	Message         tcell.Style
	Dim             tcell.Style

	Addition   tcell.Style
	Deletion   tcell.Style
	HunkHeader tcell.Style
	LineNumber tcell.Style
	CursorBg   tcell.Color
	SelectBg   tcell.Color
}

// NewTheme builds styles from configured colors.
func NewTheme(c config.ThemeColors) Theme {
	base := tcell.StyleDefault
	selectBg := parseColor(c.SelectionBg)
	statusBg := parseColor(c.StatusBarBg)
	focused := parseColor(c.BorderFocused)

	return Theme{
		Base:            base,
		BorderFocused:   base.Foreground(focused),
		BorderUnfocused: base.Foreground(parseColor(c.BorderUnfocused)),
		Selection:       base.Background(selectBg),
		StatusBar:       base.Background(statusBg).Foreground(parseColor(c.StatusBarFg)),
		TabActive:       base.Background(focused).Foreground(tcell.ColorBlack).Bold(true),
		TabInactive:     base.Background(statusBg).Foreground(parseColor(c.StatusBarFg)),
		Message:         base.Background(statusBg).Foreground(tcell.ColorYellow),
		Dim:             base.Foreground(tcell.ColorGray),

		Addition:   base.Background(addBg).Foreground(addFg),
		Deletion:   base.Background(delBg).Foreground(delFg),
		HunkHeader: base.Background(hunkBg).Foreground(hunkFg),
		LineNumber: base.Foreground(lineNoFg),
		CursorBg:   cursorBg,
		SelectBg:   selectBg,
	}
}

func parseColor(s string) tcell.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(s)
}

// Border returns the border style for a pane.
func (t Theme) Border(focused bool) tcell.Style {
	if focused {
		return t.BorderFocused
	}
	return t.BorderUnfocused
}

// KindStyle colors a status letter.
func (t Theme) KindStyle(k git.Kind) tcell.Style {
	switch k {
	case git.New:
		return t.Base.Foreground(addFg)
	case git.Modified, git.Typechange:
		return t.Base.Foreground(tcell.ColorYellow)
	case git.Deleted:
		return t.Base.Foreground(delFg)
	case git.Renamed:
		return t.Base.Foreground(hunkFg)
	case git.Conflicted:
		return t.Base.Foreground(tcell.ColorRed).Bold(true)
	case git.Untracked:
		return t.Base.Foreground(tcell.ColorGray)
	}
	return t.Base
}

// StageStyle colors a stage icon.
func (t Theme) StageStyle(s git.StageState) tcell.Style {
	switch s {
	case git.Staged:
		return t.Base.Foreground(addFg)
	case git.Partial:
		return t.Base.Foreground(tcell.ColorYellow)
	}
	return t.Base
}
