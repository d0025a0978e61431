package filebrowser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// makeTree creates files and directories under a temp dir. Names ending in
// "/" are directories.
func makeTree(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		path := filepath.Join(root, name)
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func names(p *Panel) []string {
	var out []string
	for _, e := range p.Entries() {
		out = append(out, e.DisplayName())
	}
	return out
}

func TestPanelSorting(t *testing.T) {
	root := makeTree(t, "b.txt", "A.txt", "zdir/", "Adir/", ".hidden")
	p := NewPanel(root)

	got := strings.Join(names(p), " ")
	want := "Adir/ zdir/ A.txt b.txt"
	if got != want {
		t.Errorf("entries = %q, want %q", got, want)
	}

	p.ToggleHidden()
	if got := strings.Join(names(p), " "); got != "Adir/ zdir/ .hidden A.txt b.txt" {
		t.Errorf("entries with hidden = %q", got)
	}
}

func TestPanelNavigation(t *testing.T) {
	root := makeTree(t, "a/", "b/", "c/inner.txt", "d.txt")
	p := NewPanel(root)

	p.Up()
	if p.Cursor() != 0 {
		t.Errorf("Up at top = %d, want 0", p.Cursor())
	}
	p.PageDown(10)
	if p.Cursor() != 3 {
		t.Errorf("PageDown = %d, want 3", p.Cursor())
	}
	if p.Enter() {
		t.Error("Enter on a file should not change directory")
	}
	p.PageUp(1)
	if !p.Enter() || p.Dir() != filepath.Join(root, "c") {
		t.Fatalf("Enter = %q, want %q", p.Dir(), filepath.Join(root, "c"))
	}
	if got := names(p); len(got) != 1 || got[0] != "inner.txt" {
		t.Errorf("entries in c = %v", got)
	}

	if !p.Parent() || p.Dir() != root {
		t.Fatalf("Parent = %q, want %q", p.Dir(), root)
	}
	if e, _ := p.Selected(); e.Name != "c" {
		t.Errorf("cursor after Parent on %q, want c", e.Name)
	}
}

func TestPanelEnsureVisible(t *testing.T) {
	root := makeTree(t, "1", "2", "3", "4", "5", "6")
	p := NewPanel(root)
	p.PageDown(5)
	p.EnsureVisible(3)
	if p.Offset() != 3 {
		t.Errorf("Offset = %d, want 3", p.Offset())
	}
	p.PageUp(5)
	p.EnsureVisible(3)
	if p.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset())
	}
}

func TestPanelRefreshClampsCursor(t *testing.T) {
	root := makeTree(t, "a", "b")
	p := NewPanel(root)
	p.Down()
	if err := Delete(filepath.Join(root, "b")); err != nil {
		t.Fatal(err)
	}
	p.Refresh()
	if p.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", p.Cursor())
	}

	p = NewPanel(filepath.Join(root, "missing"))
	if p.Err() == nil || len(p.Entries()) != 0 {
		t.Error("listing a missing directory should record an error")
	}
}

func TestBrowserSides(t *testing.T) {
	b := New(t.TempDir())
	if b.Active() != Left || b.ActivePanel() != b.Panel(Left) || b.OtherPanel() != b.Panel(Right) {
		t.Error("browser should start on the left panel")
	}
	b.Switch()
	if b.Active() != Right || b.OtherPanel() != b.Panel(Left) {
		t.Error("Switch should activate the right panel")
	}
	if Right.Target().String() != "browser-right" || Left.Target().String() != "browser-left" {
		t.Error("sides map to the wrong focus targets")
	}
}

func TestCopyAndMove(t *testing.T) {
	root := makeTree(t, "src/dir/x.txt", "src/f.txt", "dst/")
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")

	if err := Copy(filepath.Join(src, "dir"), dst); err != nil {
		t.Fatalf("Copy(dir) error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "dir", "x.txt"))
	if err != nil || string(data) != "src/dir/x.txt" {
		t.Errorf("copied file = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(src, "dir", "x.txt")); err != nil {
		t.Error("Copy removed the source")
	}

	if err := Move(filepath.Join(src, "f.txt"), dst); err != nil {
		t.Fatalf("Move error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(src, "f.txt")); !os.IsNotExist(err) {
		t.Error("Move left the source behind")
	}

	if err := Copy(src, filepath.Join(src, "dir")); err == nil {
		t.Error("copying a directory into itself should fail")
	}
	if err := Move(filepath.Join(dst, "f.txt"), dst); err == nil {
		t.Error("moving into the same directory should fail")
	}
}

func TestRenameMkdirDelete(t *testing.T) {
	root := makeTree(t, "old.txt")

	if err := Rename(filepath.Join(root, "old.txt"), "new.txt"); err != nil {
		t.Fatalf("Rename error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "new.txt")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}

	if err := Mkdir(root, "sub"); err != nil {
		t.Fatalf("Mkdir error = %v", err)
	}
	if err := Delete(filepath.Join(root, "sub")); err != nil {
		t.Fatalf("Delete error = %v", err)
	}

	for _, bad := range []string{"", ".", "..", "a/b"} {
		if err := Mkdir(root, bad); err == nil {
			t.Errorf("Mkdir(%q) should fail", bad)
		}
	}
}

func TestEntryStrings(t *testing.T) {
	file := Entry{Name: "a.go", Size: 2048, Modified: time.Now().Add(-2 * time.Hour)}
	if file.DisplayName() != "a.go" || file.SizeString() != "2.0 kB" {
		t.Errorf("file strings = %q %q", file.DisplayName(), file.SizeString())
	}
	if file.ModifiedString() != "2 hours ago" {
		t.Errorf("ModifiedString() = %q, want %q", file.ModifiedString(), "2 hours ago")
	}

	dir := Entry{Name: "pkg", IsDir: true}
	if dir.DisplayName() != "pkg/" || dir.SizeString() != "" || dir.ModifiedString() != "" {
		t.Errorf("dir strings = %q %q %q", dir.DisplayName(), dir.SizeString(), dir.ModifiedString())
	}
}
