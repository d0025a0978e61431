// Package process inspects the hosted child's process tree so the tab bar
// can show what is running in the PTY.
package process

import (
	"bytes"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
)

// Info describes one process.
type Info struct {
	PID     int
	PPID    int
	Command string
}

// Table is a snapshot of the process list keyed by pid.
type Table map[int]Info

// Snapshot lists all processes using POSIX ps flags, which works on Linux
// and macOS.
func Snapshot() (Table, error) {
	out, err := ps("-eo", "pid=,ppid=,args=")
	if err != nil {
		return nil, err
	}
	return parseTable(out), nil
}

func ps(args ...string) (string, error) {
	cmd := exec.Command("ps", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Errorf("ps %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// parseTable reads "pid ppid args..." rows. Malformed rows are skipped.
func parseTable(out string) Table {
	t := make(Table)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		ppid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		t[pid] = Info{PID: pid, PPID: ppid, Command: strings.Join(fields[2:], " ")}
	}
	return t
}

// Children returns the direct children of pid ordered by pid.
func (t Table) Children(pid int) []Info {
	var out []Info
	for _, info := range t {
		if info.PPID == pid && info.PID != pid {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// Foreground follows the first child of pid down to a leaf, which is what
// a shell or agent is currently running. It returns pid's own entry when it
// has no children and false when pid is not in the table.
func (t Table) Foreground(pid int) (Info, bool) {
	cur, ok := t[pid]
	if !ok {
		return Info{}, false
	}
	seen := map[int]bool{pid: true}
	for {
		kids := t.Children(cur.PID)
		if len(kids) == 0 || seen[kids[0].PID] {
			return cur, true
		}
		cur = kids[0]
		seen[cur.PID] = true
	}
}
