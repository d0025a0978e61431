// Package git provides repository status, diffs and the write operations
// offered from the status pane. Everything shells out to the git binary.
package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo is a working tree rooted at Root.
type Repo struct {
	Root string
}

// Open returns the repository containing dir.
func Open(dir string) (*Repo, error) {
	root, err := FindRepoRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Repo{Root: root}, nil
}

// FindRepoRoot returns the top level of the working tree containing path.
func FindRepoRoot(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}

	cmd := exec.Command("git", "-C", absPath, "rev-parse", "--show-toplevel")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("not a git repository: %s", absPath)
	}

	return filepath.Clean(strings.TrimSpace(stdout.String())), nil
}

// run executes git in the repository and returns stdout.
func (r *Repo) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// runCombined executes git and returns stdout and stderr together, for
// commands like push that report progress on stderr.
func (r *Repo) runCombined(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Root
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, text)
	}
	return text, nil
}

// Branches returns all local branches.
func (r *Repo) Branches() ([]string, error) {
	out, err := r.run("branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// ShortenPath shortens a path for display by replacing home dir with ~.
func ShortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == home || strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
