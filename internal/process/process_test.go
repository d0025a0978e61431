package process

import (
	"os"
	"testing"
)

const psOutput = `    1     0 /sbin/init
  100     1 /bin/zsh -l
  200   100 /usr/bin/node /opt/claude/cli.js
  250   100 sleep 10
  300   200 git status --porcelain
garbage line
  abc   1 broken
`

func TestParseTable(t *testing.T) {
	table := parseTable(psOutput)
	if len(table) != 5 {
		t.Fatalf("parseTable() has %d entries, want 5", len(table))
	}
	info := table[200]
	if info.PPID != 100 || info.Command != "/usr/bin/node /opt/claude/cli.js" {
		t.Errorf("table[200] = %+v", info)
	}
}

func TestChildren(t *testing.T) {
	table := parseTable(psOutput)
	kids := table.Children(100)
	if len(kids) != 2 || kids[0].PID != 200 || kids[1].PID != 250 {
		t.Errorf("Children(100) = %+v, want pids 200 and 250", kids)
	}
	if got := table.Children(300); len(got) != 0 {
		t.Errorf("Children(300) = %+v, want none", got)
	}
}

func TestForeground(t *testing.T) {
	table := parseTable(psOutput)
	tests := []struct {
		pid    int
		want   int
		wantOK bool
	}{
		{100, 300, true},
		{250, 250, true},
		{999, 0, false},
	}

	for _, tt := range tests {
		got, ok := table.Foreground(tt.pid)
		if ok != tt.wantOK || got.PID != tt.want {
			t.Errorf("Foreground(%d) = %d, %v, want %d, %v", tt.pid, got.PID, ok, tt.want, tt.wantOK)
		}
	}
}

func TestForegroundCycle(t *testing.T) {
	table := Table{
		10: {PID: 10, PPID: 11, Command: "a"},
		11: {PID: 11, PPID: 10, Command: "b"},
	}
	if _, ok := table.Foreground(10); !ok {
		t.Error("Foreground() should terminate on a cycle")
	}
}

func TestSnapshotHasSelf(t *testing.T) {
	table, err := Snapshot()
	if err != nil {
		t.Skipf("ps unavailable: %v", err)
	}
	if _, ok := table[os.Getpid()]; !ok {
		t.Errorf("Snapshot() missing pid %d", os.Getpid())
	}
}
