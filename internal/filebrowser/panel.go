// Package filebrowser implements the two directory panels of the Files tab
// and the file operations run between them.
package filebrowser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-errors/errors"
)

// Entry is one directory entry.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Size     int64
	Modified time.Time
}

// Panel lists one directory.
type Panel struct {
	dir        string
	entries    []Entry
	cursor     int
	offset     int
	showHidden bool
	err        error
}

// NewPanel lists dir.
func NewPanel(dir string) *Panel {
	p := &Panel{dir: dir}
	p.Refresh()
	return p
}

// Dir is the listed directory.
func (p *Panel) Dir() string { return p.dir }

// Entries returns the listing.
func (p *Panel) Entries() []Entry { return p.entries }

// Cursor is the highlighted row.
func (p *Panel) Cursor() int { return p.cursor }

// Offset is the first visible row.
func (p *Panel) Offset() int { return p.offset }

// ShowHidden reports whether dot files are listed.
func (p *Panel) ShowHidden() bool { return p.showHidden }

// Err is the error from the last listing, if any.
func (p *Panel) Err() error { return p.err }

// Refresh re-reads the directory, keeping the cursor in range.
func (p *Panel) Refresh() {
	p.entries, p.err = readDir(p.dir, p.showHidden)
	if len(p.entries) == 0 {
		p.cursor = 0
	} else if p.cursor >= len(p.entries) {
		p.cursor = len(p.entries) - 1
	}
}

func readDir(dir string, showHidden bool) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapPrefix(err, "reading "+dir, 0)
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		e := Entry{Name: name, Path: filepath.Join(dir, name)}
		// Follow symlinks so links to directories can be entered.
		if info, err := os.Stat(e.Path); err == nil {
			e.IsDir = info.IsDir()
			e.Size = info.Size()
			e.Modified = info.ModTime()
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// Selected returns the entry under the cursor.
func (p *Panel) Selected() (Entry, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[p.cursor], true
}

func (p *Panel) Up() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Panel) Down() {
	if p.cursor < len(p.entries)-1 {
		p.cursor++
	}
}

// PageUp moves the cursor up by n rows.
func (p *Panel) PageUp(n int) {
	p.cursor = max(p.cursor-n, 0)
}

// PageDown moves the cursor down by n rows.
func (p *Panel) PageDown(n int) {
	if len(p.entries) == 0 {
		return
	}
	p.cursor = min(p.cursor+n, len(p.entries)-1)
}

// Enter descends into the selected directory. It reports whether the
// directory changed.
func (p *Panel) Enter() bool {
	e, ok := p.Selected()
	if !ok || !e.IsDir {
		return false
	}
	p.chdir(e.Path)
	return true
}

// Parent moves to the parent directory and puts the cursor on the
// directory it came from.
func (p *Panel) Parent() bool {
	parent := filepath.Dir(p.dir)
	if parent == p.dir {
		return false
	}
	from := filepath.Base(p.dir)
	p.chdir(parent)
	for i, e := range p.entries {
		if e.Name == from {
			p.cursor = i
			break
		}
	}
	return true
}

func (p *Panel) chdir(dir string) {
	p.dir = dir
	p.cursor = 0
	p.offset = 0
	p.Refresh()
}

// ToggleHidden flips dot-file visibility.
func (p *Panel) ToggleHidden() {
	p.showHidden = !p.showHidden
	p.Refresh()
}

// EnsureVisible scrolls so the cursor fits in height rows.
func (p *Panel) EnsureVisible(height int) {
	if height <= 0 {
		return
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	} else if p.cursor >= p.offset+height {
		p.offset = p.cursor - height + 1
	}
}
