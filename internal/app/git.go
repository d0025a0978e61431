package app

import (
	"go.uber.org/zap"

	"github.com/abdullathedruid/cdeck/internal/event"
	"github.com/abdullathedruid/cdeck/internal/focus"
	"github.com/abdullathedruid/cdeck/internal/git"
)

const errNoRepo = "not a git repository"

// requestRefresh starts a background status query unless one is already
// in flight. The worker also diffs the entry at the current cursor row and
// pushes exactly one GitStatusUpdate.
func (a *App) requestRefresh() {
	if a.repo == nil || a.refreshBusy {
		return
	}
	a.refreshBusy = true
	repo, q, cursor := a.repo, a.queue, a.status.Cursor()
	go func() {
		snap, err := repo.Status()
		u := event.GitStatusUpdate{Snapshot: snap, Err: err}
		if err == nil && len(snap.Files) > 0 {
			u.DiffFile = snap.Files[min(cursor, len(snap.Files)-1)]
			u.Diff, u.DiffErr = repo.Diff(u.DiffFile)
		}
		q.Push(u)
	}()
}

func (a *App) applyStatus(u event.GitStatusUpdate) {
	a.refreshBusy = false
	if u.Err != nil {
		a.message = u.Err.Error()
		a.log.Warn("git status failed", zap.Error(u.Err))
		return
	}
	a.files = u.Snapshot.Files
	a.branch = u.Snapshot.Branch
	a.status.Clamp(len(a.files))
	a.applyDiff(u)
}

// applyDiff installs the worker's diff when it is for the entry now under
// the cursor. Otherwise the cursor moved mid-query and the diff is reloaded.
func (a *App) applyDiff(u event.GitStatusUpdate) {
	if len(a.files) == 0 {
		a.diff.Clear()
		return
	}
	if a.files[a.status.Cursor()] != u.DiffFile {
		a.loadDiff()
		return
	}
	if u.DiffErr != nil {
		a.message = u.DiffErr.Error()
		a.diff.Clear()
		return
	}
	a.diff.SetDiff(u.Diff)
}

// runGit runs work off the dispatcher goroutine. Only one git command runs
// at a time; its outcome arrives as GitActionDone.
func (a *App) runGit(work func(Repo) (string, error)) {
	if a.repo == nil {
		a.message = errNoRepo
		return
	}
	if a.gitBusy {
		a.message = "git is busy"
		return
	}
	a.gitBusy = true
	repo, q := a.repo, a.queue
	go func() {
		msg, err := work(repo)
		q.Push(event.GitActionDone{Message: msg, Err: err})
	}()
}

// requestProcessInfo looks up what the child is running, at most one
// lookup at a time.
func (a *App) requestProcessInfo() {
	if a.procs == nil || a.pid == 0 || a.procBusy {
		return
	}
	a.procBusy = true
	lookup, pid, q := a.procs, a.pid, a.queue
	go func() {
		cmd, _ := lookup(pid)
		q.Push(event.ChildProcess{Command: cmd})
	}()
}

func (a *App) moveStatus(delta int) {
	n := len(a.files)
	if delta < 0 {
		a.status.MoveUp(n)
	} else {
		a.status.MoveDown(n)
	}
	a.loadDiff()
}

// loadDiff shows the diff of the file under the status cursor.
func (a *App) loadDiff() {
	if a.repo == nil || len(a.files) == 0 {
		a.diff.Clear()
		return
	}
	f := a.files[a.status.Cursor()]
	d, err := a.repo.Diff(f)
	if err != nil {
		a.message = err.Error()
		a.diff.Clear()
		return
	}
	a.diff.SetDiff(d)
}

func (a *App) openDiff() {
	a.loadDiff()
	if a.diff.Visible() {
		a.setFocus(focus.DiffPane)
	}
}

// selectedFiles returns the marked files, or the one under the cursor.
func (a *App) selectedFiles() []git.FileStatus {
	idx := a.status.Selected(len(a.files))
	out := make([]git.FileStatus, 0, len(idx))
	for _, i := range idx {
		if i < len(a.files) {
			out = append(out, a.files[i])
		}
	}
	return out
}
