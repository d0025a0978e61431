package git

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// LineKind classifies a line of a structured diff.
type LineKind int

const (
	Context LineKind = iota
	Addition
	Deletion
	HunkHeader
)

// DiffLine is one rendered line. OldLine and NewLine are 1-based; zero
// means the line has no number on that side.
type DiffLine struct {
	Kind    LineKind
	Content string
	OldLine int
	NewLine int
}

// Hunk is a contiguous run of changes with its header.
type Hunk struct {
	Header string
	Lines  []DiffLine
}

// FileDiff is the structured diff of one path.
type FileDiff struct {
	Path   string
	Hunks  []Hunk
	Binary bool
}

// Lines flattens the hunks, header lines included, for display.
func (d *FileDiff) Lines() []DiffLine {
	if d == nil {
		return nil
	}
	var out []DiffLine
	for _, h := range d.Hunks {
		out = append(out, DiffLine{Kind: HunkHeader, Content: h.Header})
		out = append(out, h.Lines...)
	}
	return out
}

// Empty reports whether the diff has nothing to show.
func (d *FileDiff) Empty() bool {
	return d == nil || (len(d.Hunks) == 0 && !d.Binary)
}

// Diff returns the diff for f. Staged files compare HEAD with the index,
// untracked files compare nothing with the working tree and everything
// else compares the index with the working tree.
func (r *Repo) Diff(f FileStatus) (*FileDiff, error) {
	var before, after string
	var err error

	switch {
	case f.Worktree == Untracked:
		after, err = r.worktreeFile(f.Path)
	case f.Kind == Conflicted:
		before, _ = r.blob("HEAD", f.Path)
		after, err = r.worktreeFile(f.Path)
	case f.Stage == Staged:
		if f.Index != New {
			orig := f.Path
			if f.OrigPath != "" {
				orig = f.OrigPath
			}
			if before, err = r.blob("HEAD", orig); err != nil {
				return nil, err
			}
		}
		if f.Index != Deleted {
			after, err = r.blob("", f.Path)
		}
	default:
		if before, err = r.blob("", f.Path); err != nil {
			return nil, err
		}
		if f.Worktree != Deleted {
			after, err = r.worktreeFile(f.Path)
		}
	}
	if err != nil {
		return nil, err
	}

	return Compute(f.Path, before, after), nil
}

// blob reads path at rev. An empty rev reads the index.
func (r *Repo) blob(rev, path string) (string, error) {
	return r.run("show", rev+":"+path)
}

func (r *Repo) worktreeFile(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Root, path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Compute diffs two versions of path into hunks with line numbers.
func Compute(path, before, after string) *FileDiff {
	d := &FileDiff{Path: path}
	if strings.IndexByte(before, 0) >= 0 || strings.IndexByte(after, 0) >= 0 {
		d.Binary = true
		return d
	}

	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	unified := gotextdiff.ToUnified("a/"+path, "b/"+path, before, edits)

	for _, uh := range unified.Hunks {
		oldLine, newLine := uh.FromLine, uh.ToLine
		var oldCount, newCount int
		h := Hunk{}
		for _, l := range uh.Lines {
			text := strings.TrimSuffix(l.Content, "\n")
			switch l.Kind {
			case gotextdiff.Delete:
				h.Lines = append(h.Lines, DiffLine{Kind: Deletion, Content: text, OldLine: oldLine})
				oldLine++
				oldCount++
			case gotextdiff.Insert:
				h.Lines = append(h.Lines, DiffLine{Kind: Addition, Content: text, NewLine: newLine})
				newLine++
				newCount++
			default:
				h.Lines = append(h.Lines, DiffLine{Kind: Context, Content: text, OldLine: oldLine, NewLine: newLine})
				oldLine++
				newLine++
				oldCount++
				newCount++
			}
		}
		h.Header = hunkHeader(uh.FromLine, oldCount, uh.ToLine, newCount)
		d.Hunks = append(d.Hunks, h)
	}
	return d
}

func hunkHeader(oldStart, oldCount, newStart, newCount int) string {
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
}
