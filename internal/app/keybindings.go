package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/event"
	"github.com/abdullathedruid/cdeck/internal/focus"
	"github.com/abdullathedruid/cdeck/internal/git"
	"github.com/abdullathedruid/cdeck/internal/input"
	"github.com/abdullathedruid/cdeck/internal/pane"
)

const (
	// wheelLines is how far one wheel notch scrolls.
	wheelLines = 3
	// hScrollStep is the diff pane's horizontal scroll step.
	hScrollStep = 4
)

func (a *App) handleKey(k event.Key) {
	// The prompt is modal: keys never reach the pane bindings.
	if a.focus.PromptOpen() {
		a.handlePromptKey(k)
		return
	}
	if a.handleGlobalKey(k) {
		return
	}

	switch a.focus.Current() {
	case focus.Pty:
		a.handlePtyKey(k)
	case focus.StatusPane:
		a.handleStatusKey(k)
	case focus.DiffPane:
		a.handleDiffKey(k)
	case focus.BrowserLeft, focus.BrowserRight:
		a.handleBrowserKey(k)
	}
}

func (a *App) handleGlobalKey(k event.Key) bool {
	km := a.keys
	switch {
	case km.quit.Matches(k.Code, k.Rune, k.Mod):
		a.log.Info("quit requested")
		a.running = false
	case km.toggle.Matches(k.Code, k.Rune, k.Mod):
		a.toggleFocus()
	case km.cycle.Matches(k.Code, k.Rune, k.Mod):
		if a.tab == pane.ClaudeTab {
			a.focus.Cycle(a.diff.Visible())
			a.focusChanged()
		}
	case km.resize.Matches(k.Code, k.Rune, k.Mod):
		a.split = pane.NextSplit(a.split)
	case km.claudeTab.Matches(k.Code, k.Rune, k.Mod):
		a.setTab(pane.ClaudeTab)
	case km.filesTab.Matches(k.Code, k.Rune, k.Mod):
		a.setTab(pane.FilesTab)
	default:
		return false
	}
	return true
}

// toggleFocus flips between the terminal and the git column, or between
// the two file panels on the Files tab.
func (a *App) toggleFocus() {
	if a.tab == pane.FilesTab {
		a.browser.Switch()
		a.setFocus(a.browser.Active().Target())
		return
	}
	if a.focus.Is(focus.Pty) {
		a.setFocus(focus.StatusPane)
	} else {
		a.setFocus(focus.Pty)
	}
}

func (a *App) handlePtyKey(k event.Key) {
	if k.Mod&tcell.ModShift != 0 {
		page := max(a.frame.PtyInner.H-1, 1)
		switch k.Code {
		case tcell.KeyPgUp:
			a.term.ScrollUp(page)
			a.sel.Clear()
			return
		case tcell.KeyPgDn:
			a.term.ScrollDown(page)
			a.sel.Clear()
			return
		}
	}
	a.writeChild(input.Encode(k.Code, k.Rune, k.Mod))
}

func (a *App) handlePaste(text string) {
	switch {
	case a.focus.PromptOpen():
		for _, r := range text {
			if r >= ' ' {
				a.prompt.Insert(r)
			}
		}
	case a.focus.Is(focus.Pty):
		a.writeChild(input.EncodePaste(text))
	}
}

func (a *App) handleStatusKey(k event.Key) {
	switch k.Code {
	case tcell.KeyUp:
		a.moveStatus(-1)
		return
	case tcell.KeyDown:
		a.moveStatus(1)
		return
	case tcell.KeyEnter:
		a.openDiff()
		return
	case tcell.KeyEscape:
		a.setFocus(focus.Pty)
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch k.Rune {
	case 'j':
		a.moveStatus(1)
	case 'k':
		a.moveStatus(-1)
	case ' ':
		files := a.selectedFiles()
		if len(files) == 0 {
			return
		}
		a.runGit(func(r Repo) (string, error) {
			for _, f := range files {
				if err := r.ToggleStage(f); err != nil {
					return "", err
				}
			}
			return "", nil
		})
	case 'a':
		a.runGit(func(r Repo) (string, error) {
			return "Staged all changes", r.StageAll()
		})
	case 'd':
		files := a.selectedFiles()
		if len(files) == 0 {
			return
		}
		a.runGit(func(r Repo) (string, error) {
			for _, f := range files {
				if err := r.Discard(f); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("Discarded: %s", strings.Join(paths(files), ", ")), nil
		})
	case 's':
		if refs := input.FileRefs(paths(a.selectedFiles())); len(refs) > 0 {
			a.sendToChild(input.BuildSend("", refs))
			a.clearMulti()
		}
	case 'S':
		if refs := input.FileRefs(paths(a.selectedFiles())); len(refs) > 0 {
			a.openPrompt(func() { a.prompt.OpenSend(refs) })
		}
	case 'c':
		a.openGitPrompt(input.ModeCommit)
	case 'C':
		a.openGitPrompt(input.ModeCommitAndPush)
	case 'B':
		a.openGitPrompt(input.ModeCreateBranch)
	case 'p':
		a.message = "Pushing..."
		a.runGit(func(r Repo) (string, error) {
			out, err := r.Push()
			return "Pushed: " + out, err
		})
	case 'P':
		a.message = "Pulling..."
		a.runGit(func(r Repo) (string, error) {
			out, err := r.Pull()
			return "Pulled: " + out, err
		})
	case 'b':
		a.runGit(func(r Repo) (string, error) {
			branches, err := r.Branches()
			return "Branches: " + strings.Join(branches, ", "), err
		})
	case 'z':
		a.runGit(func(r Repo) (string, error) {
			return "Stashed changes", r.Stash()
		})
	case 'Z':
		a.runGit(func(r Repo) (string, error) {
			return "Popped stash", r.StashPop()
		})
	case 'v':
		a.status.ToggleMultiSelect()
	case 'x':
		a.status.ToggleMark()
	case 'r':
		a.requestRefresh()
	}
}

func (a *App) handleDiffKey(k event.Key) {
	page := max(a.frame.Diff.Inner().H, 1)
	switch k.Code {
	case tcell.KeyUp:
		a.diff.CursorUp()
		a.diff.EnsureVisible(page)
		return
	case tcell.KeyDown:
		a.diff.CursorDown()
		a.diff.EnsureVisible(page)
		return
	case tcell.KeyLeft:
		a.diff.ScrollLeft(hScrollStep)
		return
	case tcell.KeyRight:
		a.diff.ScrollRight(hScrollStep)
		return
	case tcell.KeyPgUp:
		a.diff.ScrollUp(page)
		return
	case tcell.KeyPgDn:
		a.diff.ScrollDown(page)
		return
	case tcell.KeyEscape:
		a.setFocus(focus.StatusPane)
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch k.Rune {
	case 'j':
		a.diff.CursorDown()
		a.diff.EnsureVisible(page)
	case 'k':
		a.diff.CursorUp()
		a.diff.EnsureVisible(page)
	case 'J':
		a.diff.NextHunk()
		a.diff.EnsureVisible(page)
	case 'K':
		a.diff.PrevHunk()
		a.diff.EnsureVisible(page)
	case 'h':
		a.diff.ScrollLeft(hScrollStep)
	case 'l':
		a.diff.ScrollRight(hScrollStep)
	case 'V':
		a.diff.ToggleAnchor()
	case 's':
		if ref, ok := a.diff.Reference(); ok {
			a.sendToChild(ref + "\n")
		}
	case 'S':
		if ref, ok := a.diff.Reference(); ok {
			a.openPrompt(func() { a.prompt.OpenSend([]string{ref}) })
		}
	case 'q':
		a.setFocus(focus.StatusPane)
	}
}

func (a *App) handlePromptKey(k event.Key) {
	if a.prompt.Mode() == input.ModeConfirmDelete {
		confirmed := k.Code == tcell.KeyRune && (k.Rune == 'y' || k.Rune == 'Y')
		if confirmed {
			a.submitBrowserPrompt(input.ModeConfirmDelete, "y")
		}
		a.closePrompt()
		return
	}
	switch a.prompt.HandleKey(k.Code, k.Rune, k.Mod) {
	case input.Submitted:
		a.submitPrompt()
	case input.Cancelled:
		a.closePrompt()
	}
}

// openPrompt opens the dialog via open and makes it modal.
func (a *App) openPrompt(open func()) {
	open()
	a.focus.OpenPrompt()
	a.focusChanged()
}

func (a *App) openGitPrompt(mode input.Mode) {
	if a.repo == nil {
		a.message = errNoRepo
		return
	}
	a.openPrompt(func() { a.prompt.Open(mode, "") })
}

func (a *App) closePrompt() {
	a.prompt.Close()
	a.focus.ClosePrompt()
	a.focusChanged()
}

// submitPrompt acts on the confirmed text for the prompt's mode.
func (a *App) submitPrompt() {
	mode := a.prompt.Mode()
	text := strings.TrimSpace(a.prompt.Input())
	if text == "" && !a.prompt.CanSubmitEmpty() {
		return
	}

	if mode.IsBrowser() {
		a.submitBrowserPrompt(mode, text)
		a.closePrompt()
		return
	}

	switch mode {
	case input.ModeSendToChild:
		send := a.prompt.SendText()
		a.prompt.Close()
		a.focus.ClosePromptTo(focus.Pty)
		a.sendToChild(send)
		a.clearMulti()
		return
	case input.ModeCommit:
		a.runGit(func(r Repo) (string, error) {
			return "Committed: " + text, r.Commit(text)
		})
	case input.ModeCommitAndPush:
		a.runGit(func(r Repo) (string, error) {
			if err := r.Commit(text); err != nil {
				return "", err
			}
			out, err := r.Push()
			if err != nil {
				return "Committed but push failed: " + err.Error(), nil
			}
			return "Committed & pushed: " + out, nil
		})
	case input.ModeCreateBranch:
		a.runGit(func(r Repo) (string, error) {
			return fmt.Sprintf("Switched to new branch '%s'", text), r.CreateBranch(text)
		})
	}
	a.closePrompt()
}

func (a *App) clearMulti() {
	if a.status.MultiSelect() {
		a.status.ToggleMultiSelect()
	}
}

func paths(files []git.FileStatus) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
