package app

import (
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/event"
	"github.com/abdullathedruid/cdeck/internal/filebrowser"
	"github.com/abdullathedruid/cdeck/internal/input"
)

func (a *App) handleBrowserKey(k event.Key) {
	p := a.browser.ActivePanel()
	page := max(a.frame.BrowserLeft.Inner().H, 1)

	switch k.Code {
	case tcell.KeyUp:
		p.Up()
	case tcell.KeyDown:
		p.Down()
	case tcell.KeyPgUp:
		p.PageUp(page)
	case tcell.KeyPgDn:
		p.PageDown(page)
	case tcell.KeyEnter:
		p.Enter()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.Parent()
	case tcell.KeyF5:
		a.transfer(filebrowser.Copy, "Copied")
	case tcell.KeyF6:
		a.transfer(filebrowser.Move, "Moved")
	case tcell.KeyF7:
		a.openMkdir()
	case tcell.KeyF8:
		a.openDelete()
	case tcell.KeyRune:
		a.handleBrowserRune(k.Rune)
	}
}

func (a *App) handleBrowserRune(r rune) {
	p := a.browser.ActivePanel()
	switch r {
	case 'j':
		p.Down()
	case 'k':
		p.Up()
	case 'h':
		p.Parent()
	case 'l':
		p.Enter()
	case '.':
		p.ToggleHidden()
	case 'c':
		a.transfer(filebrowser.Copy, "Copied")
	case 'm':
		a.transfer(filebrowser.Move, "Moved")
	case 'n':
		a.openMkdir()
	case 'D':
		a.openDelete()
	case 'R':
		if e, ok := p.Selected(); ok {
			a.openPrompt(func() { a.prompt.OpenFor(input.ModeRename, e.Path, e.Name) })
		}
	case 's':
		if e, ok := p.Selected(); ok {
			a.sendToChild(input.BuildSend("", input.FileRefs([]string{a.relPath(e.Path)})))
		}
	}
}

// transfer copies or moves the selected entry into the other panel.
func (a *App) transfer(op func(src, destDir string) error, verb string) {
	e, ok := a.browser.ActivePanel().Selected()
	if !ok {
		return
	}
	err := op(e.Path, a.browser.OtherPanel().Dir())
	a.browserDone(verb+" "+e.Name, err)
}

func (a *App) openMkdir() {
	dir := a.browser.ActivePanel().Dir()
	a.openPrompt(func() { a.prompt.OpenFor(input.ModeMkdir, dir, "") })
}

func (a *App) openDelete() {
	if e, ok := a.browser.ActivePanel().Selected(); ok {
		a.openPrompt(func() { a.prompt.OpenFor(input.ModeConfirmDelete, e.Path, "") })
	}
}

// submitBrowserPrompt applies a confirmed file-browser prompt.
func (a *App) submitBrowserPrompt(mode input.Mode, text string) {
	subject := a.prompt.Subject()
	switch mode {
	case input.ModeRename:
		a.browserDone("Renamed to "+text, filebrowser.Rename(subject, text))
	case input.ModeMkdir:
		a.browserDone("Created "+text, filebrowser.Mkdir(subject, text))
	case input.ModeConfirmDelete:
		a.browserDone("Deleted "+filepath.Base(subject), filebrowser.Delete(subject))
	}
}

// browserDone reports a file operation and refreshes both panels.
func (a *App) browserDone(msg string, err error) {
	if err != nil {
		a.message = err.Error()
	} else {
		a.message = msg
	}
	a.browser.Refresh()
}

// relPath shortens paths under the working directory for @-references.
func (a *App) relPath(path string) string {
	rel, err := filepath.Rel(a.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
