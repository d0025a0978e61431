package git

import "strings"

// Stage adds path to the index.
func (r *Repo) Stage(path string) error {
	_, err := r.run("add", "--", path)
	return err
}

// Unstage removes path from the index. Before the first commit there is no
// HEAD to reset to, so the entry is dropped instead.
func (r *Repo) Unstage(path string) error {
	if _, err := r.run("reset", "HEAD", "--", path); err != nil {
		if _, rmErr := r.run("rm", "--cached", "--quiet", "--", path); rmErr != nil {
			return err
		}
	}
	return nil
}

// ToggleStage stages unstaged and partial files and unstages staged ones.
func (r *Repo) ToggleStage(f FileStatus) error {
	if f.Stage == Staged {
		return r.Unstage(f.Path)
	}
	return r.Stage(f.Path)
}

// StageAll stages every change, untracked files included.
func (r *Repo) StageAll() error {
	_, err := r.run("add", "-A")
	return err
}

// Discard throws away worktree changes to f. Untracked files are removed.
func (r *Repo) Discard(f FileStatus) error {
	if f.Worktree == Untracked {
		_, err := r.run("clean", "-f", "--", f.Path)
		return err
	}
	_, err := r.run("checkout", "--", f.Path)
	return err
}

// Commit records the index with message.
func (r *Repo) Commit(message string) error {
	_, err := r.run("commit", "-m", message)
	return err
}

// Push pushes the current branch and returns git's last line of output.
func (r *Repo) Push() (string, error) {
	out, err := r.runCombined("push")
	return lastLine(out), err
}

// Pull pulls into the current branch and returns git's last line of output.
func (r *Repo) Pull() (string, error) {
	out, err := r.runCombined("pull")
	return lastLine(out), err
}

// Stash stashes all changes.
func (r *Repo) Stash() error {
	_, err := r.run("stash")
	return err
}

// StashPop applies and drops the latest stash.
func (r *Repo) StashPop() error {
	_, err := r.run("stash", "pop")
	return err
}

// CreateBranch creates name from HEAD and checks it out.
func (r *Repo) CreateBranch(name string) error {
	_, err := r.run("checkout", "-b", name)
	return err
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
