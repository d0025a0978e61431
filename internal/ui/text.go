// Package ui paints the frame onto a tcell screen.
package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens a string to fit in the given width.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads a string to the right.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// PadLeft pads a string to the left.
func PadLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return strings.Repeat(" ", width-sw) + s
}

// Center centers a string in the given width.
func Center(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	padding := (width - sw) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-sw-padding)
}

// ExpandTabs replaces tabs with spaces up to the next multiple of width.
func ExpandTabs(s string, width int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// HelpText returns the key reference printed by `cdeck keys`.
func HelpText() string {
	return `cdeck - Claude in a PTY with git and file panes

Global
  Ctrl+Q             Quit
  Tab                Toggle terminal / git pane (panels on the Files tab)
  F3                 Cycle terminal, status and diff panes
  Ctrl+\             Resize panes (40% / 60% / 80%)
  F1 / F2            Claude tab / Files tab
  Shift+PgUp/PgDn    Scroll terminal history

Status pane
  j/k or arrows      Move (wraps)
  Space              Stage / unstage
  a                  Stage all
  Enter              Show diff
  d                  Discard changes
  s / S              Send files to Claude (S asks for a prompt)
  v / x              Multi-select / mark row
  c / C              Commit / commit and push
  p / P              Push / pull
  b / B              List branches / new branch
  z / Z              Stash / stash pop
  r                  Refresh

Diff pane
  j/k                Move cursor
  J/K                Next / previous hunk
  h/l                Scroll left / right
  V                  Start or drop a line range
  s / S              Send lines to Claude (S asks for a prompt)
  Esc or q           Back to the status pane

Files tab
  j/k, PgUp/PgDn     Move
  Enter              Open directory
  Backspace or h     Parent directory
  F5 or c            Copy to other panel
  F6 or m            Move to other panel
  F7 or n            New directory
  F8 or D            Delete
  R                  Rename
  .                  Show hidden files
  s                  Send file to Claude`
}

// WrapText wraps text to fit within the given width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= width {
			lines = append(lines, line)
			continue
		}

		for runewidth.StringWidth(line) > width {
			breakIdx := 0
			currentWidth := 0
			lastSpace := -1
			for i, r := range line {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					break
				}
				currentWidth += rw
				breakIdx = i + len(string(r))
				if r == ' ' {
					lastSpace = breakIdx
				}
			}
			if lastSpace > 0 {
				breakIdx = lastSpace
			}
			lines = append(lines, line[:breakIdx])
			line = strings.TrimSpace(line[breakIdx:])
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
