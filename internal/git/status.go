package git

import "strings"

// Kind is the kind of change recorded for a path.
type Kind int

const (
	KindNone Kind = iota
	New
	Modified
	Deleted
	Renamed
	Typechange
	Conflicted
	Untracked
)

// Letter is the one-character code shown in the status list.
func (k Kind) Letter() string {
	switch k {
	case New:
		return "A"
	case Modified:
		return "M"
	case Deleted:
		return "D"
	case Renamed:
		return "R"
	case Typechange:
		return "T"
	case Conflicted:
		return "C"
	case Untracked:
		return "?"
	}
	return " "
}

// StageState says where a path's changes live.
type StageState int

const (
	Unstaged StageState = iota
	Staged
	Partial
)

// Icon is the stage marker shown in the status list.
func (s StageState) Icon() string {
	switch s {
	case Staged:
		return "✓"
	case Partial:
		return "±"
	}
	return " "
}

// FileStatus is one changed path.
type FileStatus struct {
	Path string
	// OrigPath is the source of a rename or copy.
	OrigPath string
	Kind     Kind
	Stage    StageState
	Index    Kind
	Worktree Kind
}

// DisplayKind is the worktree change if any, else the index change.
func (f FileStatus) DisplayKind() Kind {
	if f.Worktree != KindNone {
		return f.Worktree
	}
	if f.Index != KindNone {
		return f.Index
	}
	return f.Kind
}

// Snapshot is the result of one status query.
type Snapshot struct {
	Branch string
	Files  []FileStatus
}

// Status runs git status and parses the result.
func (r *Repo) Status() (Snapshot, error) {
	out, err := r.run("--no-optional-locks", "status", "--porcelain=v1", "-z", "--branch", "--untracked-files=all")
	if err != nil {
		return Snapshot{}, err
	}
	return parseStatus(out), nil
}

// parseStatus parses `git status --porcelain=v1 -z --branch` output.
func parseStatus(out string) Snapshot {
	var snap Snapshot
	fields := strings.Split(out, "\x00")
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if entry == "" {
			continue
		}
		if branch, ok := strings.CutPrefix(entry, "## "); ok {
			snap.Branch = parseBranchHeader(branch)
			continue
		}
		if len(entry) < 4 {
			continue
		}

		x, y := entry[0], entry[1]
		f := FileStatus{Path: entry[3:]}
		// Renames and copies carry the source path in the next field.
		if (x == 'R' || x == 'C') && i+1 < len(fields) {
			f.OrigPath = fields[i+1]
			i++
		}

		if isConflict(x, y) {
			f.Kind = Conflicted
			f.Worktree = Conflicted
			f.Stage = Unstaged
			snap.Files = append(snap.Files, f)
			continue
		}

		if x == '?' && y == '?' {
			f.Worktree = Untracked
		} else {
			f.Index = indexKind(x)
			f.Worktree = worktreeKind(y)
		}

		f.Kind = f.DisplayKind()
		if f.Kind == KindNone {
			f.Kind = Modified
		}
		switch {
		case f.Index != KindNone && f.Worktree != KindNone:
			f.Stage = Partial
		case f.Index != KindNone:
			f.Stage = Staged
		default:
			f.Stage = Unstaged
		}
		snap.Files = append(snap.Files, f)
	}
	return snap
}

func parseBranchHeader(h string) string {
	if name, ok := strings.CutPrefix(h, "No commits yet on "); ok {
		return name
	}
	if name, ok := strings.CutPrefix(h, "Initial commit on "); ok {
		return name
	}
	if strings.HasPrefix(h, "HEAD (no branch)") {
		return "HEAD"
	}
	if i := strings.Index(h, "..."); i >= 0 {
		h = h[:i]
	}
	if i := strings.IndexByte(h, ' '); i >= 0 {
		h = h[:i]
	}
	return h
}

func isConflict(x, y byte) bool {
	switch string([]byte{x, y}) {
	case "DD", "AU", "UD", "UA", "DU", "AA", "UU":
		return true
	}
	return false
}

func indexKind(c byte) Kind {
	switch c {
	case 'A', 'C':
		return New
	case 'M':
		return Modified
	case 'D':
		return Deleted
	case 'R':
		return Renamed
	case 'T':
		return Typechange
	}
	return KindNone
}

func worktreeKind(c byte) Kind {
	switch c {
	case 'M':
		return Modified
	case 'D':
		return Deleted
	case 'T':
		return Typechange
	case 'A':
		return New
	}
	return KindNone
}
