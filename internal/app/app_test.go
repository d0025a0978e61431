package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/abdullathedruid/cdeck/internal/config"
	"github.com/abdullathedruid/cdeck/internal/event"
	"github.com/abdullathedruid/cdeck/internal/focus"
	"github.com/abdullathedruid/cdeck/internal/git"
	"github.com/abdullathedruid/cdeck/internal/input"
	"github.com/abdullathedruid/cdeck/internal/pane"
)

type fakeDevice struct {
	mu      sync.Mutex
	written bytes.Buffer
	resizes [][2]int
	err     error
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return 0, d.err
	}
	return d.written.Write(p)
}

func (d *fakeDevice) Resize(cols, rows int) error {
	d.resizes = append(d.resizes, [2]int{cols, rows})
	return nil
}

func (d *fakeDevice) Close() error { return nil }

func (d *fakeDevice) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.written.String()
}

func (d *fakeDevice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.written.Reset()
}

// fakeRepo counts status queries. When gate is set, Status blocks until
// it is closed.
type fakeRepo struct {
	mu        sync.Mutex
	calls     int
	diffCalls int
	started   chan struct{}
	gate    chan struct{}

	snap    git.Snapshot
	commits []string
	pushErr error
}

func newFakeRepo(files ...git.FileStatus) *fakeRepo {
	return &fakeRepo{
		started: make(chan struct{}, 16),
		snap:    git.Snapshot{Branch: "main", Files: files},
	}
}

func (r *fakeRepo) Status() (git.Snapshot, error) {
	r.mu.Lock()
	r.calls++
	gate := r.gate
	r.mu.Unlock()
	r.started <- struct{}{}
	if gate != nil {
		<-gate
	}
	return r.snap, nil
}

func (r *fakeRepo) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *fakeRepo) Diff(f git.FileStatus) (*git.FileDiff, error) {
	r.mu.Lock()
	r.diffCalls++
	r.mu.Unlock()
	return git.Compute(f.Path, "one\ntwo\n", "one\nTWO\n"), nil
}

func (r *fakeRepo) DiffCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.diffCalls
}

func (r *fakeRepo) ToggleStage(git.FileStatus) error { return nil }
func (r *fakeRepo) StageAll() error                  { return nil }
func (r *fakeRepo) Discard(git.FileStatus) error     { return nil }

func (r *fakeRepo) Commit(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, message)
	return nil
}

func (r *fakeRepo) Push() (string, error)          { return "main -> main", r.pushErr }
func (r *fakeRepo) Pull() (string, error)          { return "Already up to date.", nil }
func (r *fakeRepo) Branches() ([]string, error)    { return []string{"dev", "main"}, nil }
func (r *fakeRepo) CreateBranch(name string) error { return nil }
func (r *fakeRepo) Stash() error                   { return nil }
func (r *fakeRepo) StashPop() error                { return nil }

type recordingClipboard struct {
	copied []string
}

func (c *recordingClipboard) Copy(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

type fixture struct {
	app    *App
	dev    *fakeDevice
	repo   *fakeRepo
	clip   *recordingClipboard
	queue  *event.Queue
	screen tcell.SimulationScreen
}

func newFixture(t *testing.T, repo *fakeRepo) *fixture {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s.SetSize(100, 30)
	t.Cleanup(s.Fini)

	f := &fixture{
		dev:    &fakeDevice{},
		repo:   repo,
		clip:   &recordingClipboard{},
		queue:  event.NewQueue(),
		screen: s,
	}
	t.Cleanup(f.queue.Close)

	opts := Options{
		Config:    config.Default(),
		Screen:    s,
		Device:    f.dev,
		Queue:     f.queue,
		Clipboard: f.clip,
		Dir:       t.TempDir(),
		Pid:       42,
		Command:   "claude",
		Cols:      10,
		Rows:      5,
	}
	if repo != nil {
		opts.Repo = repo
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a.layout(100, 30)
	f.app = a
	return f
}

func (f *fixture) key(code tcell.Key, r rune, mod tcell.ModMask) {
	f.app.Handle(event.Key{Code: code, Rune: r, Mod: mod})
}

func (f *fixture) runes(s string) {
	for _, r := range s {
		f.key(tcell.KeyRune, r, tcell.ModNone)
	}
}

// next waits for the event a background worker pushed.
func (f *fixture) next(t *testing.T) event.Event {
	t.Helper()
	got := make(chan event.Event, 1)
	go func() {
		ev, _ := f.queue.Next()
		got <- ev
	}()
	select {
	case ev := <-got:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a queued event")
		return nil
	}
}

// loadStatus applies a status snapshot the way a finished refresh does.
func (f *fixture) loadStatus() {
	f.app.Handle(event.GitStatusUpdate{Snapshot: f.repo.snap})
}

func waitStarted(t *testing.T, r *fakeRepo) {
	t.Helper()
	select {
	case <-r.started:
	case <-time.After(2 * time.Second):
		t.Fatal("status query never started")
	}
}

func TestRefreshIsSingleFlight(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	repo.gate = make(chan struct{})
	f := newFixture(t, repo)

	f.app.Handle(event.GitRefreshRequested{})
	waitStarted(t, repo)
	f.app.Handle(event.GitRefreshRequested{})
	f.app.Handle(event.Tick{})

	if got := repo.Calls(); got != 1 {
		t.Fatalf("Status() called %d times while busy, want 1", got)
	}

	close(repo.gate)
	ev := f.next(t)
	if _, ok := ev.(event.GitStatusUpdate); !ok {
		t.Fatalf("queued event = %T, want GitStatusUpdate", ev)
	}
	f.app.Handle(ev)
	if len(f.app.files) != 1 || f.app.branch != "main" {
		t.Errorf("after update files = %v, branch = %q", f.app.files, f.app.branch)
	}

	f.app.Handle(event.GitRefreshRequested{})
	waitStarted(t, repo)
	if got := repo.Calls(); got != 2 {
		t.Errorf("Status() called %d times after completion, want 2", got)
	}
}

func TestRefreshDiffsCursorFileInBackground(t *testing.T) {
	repo := newFakeRepo(
		git.FileStatus{Path: "a.go", Kind: git.Modified},
		git.FileStatus{Path: "b.go", Kind: git.Modified},
	)
	f := newFixture(t, repo)

	f.app.Handle(event.GitRefreshRequested{})
	waitStarted(t, repo)
	ev := f.next(t)
	u, ok := ev.(event.GitStatusUpdate)
	if !ok {
		t.Fatalf("queued event = %T, want GitStatusUpdate", ev)
	}
	if u.Diff == nil || u.Diff.Path != "a.go" {
		t.Fatalf("update diff = %+v, want diff of a.go", u.Diff)
	}

	before := repo.DiffCalls()
	f.app.Handle(u)
	if got := repo.DiffCalls(); got != before {
		t.Errorf("applying the update ran %d diffs on the dispatcher, want 0", got-before)
	}
	if got := f.app.diff.Path(); got != "a.go" {
		t.Errorf("diff.Path() = %q, want %q", got, "a.go")
	}
}

func TestStaleRefreshDiffIsReloaded(t *testing.T) {
	repo := newFakeRepo(
		git.FileStatus{Path: "a.go", Kind: git.Modified},
		git.FileStatus{Path: "b.go", Kind: git.Modified},
	)
	f := newFixture(t, repo)

	// The worker diffed b.go but the cursor sits on a.go.
	f.app.Handle(event.GitStatusUpdate{
		Snapshot: repo.snap,
		DiffFile: repo.snap.Files[1],
		Diff:     git.Compute("b.go", "x\n", "y\n"),
	})
	if got := f.app.diff.Path(); got != "a.go" {
		t.Errorf("diff.Path() = %q, want %q", got, "a.go")
	}
	if got := repo.DiffCalls(); got != 1 {
		t.Errorf("Diff() called %d times, want 1", got)
	}
}

func TestRefreshDiffErrorBecomesMessage(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	f := newFixture(t, repo)

	f.app.Handle(event.GitStatusUpdate{
		Snapshot: repo.snap,
		DiffFile: repo.snap.Files[0],
		DiffErr:  errors.New("diff failed"),
	})
	if f.app.message != "diff failed" {
		t.Errorf("message = %q, want %q", f.app.message, "diff failed")
	}
	if f.app.diff.Visible() {
		t.Error("diff should be cleared after a failed diff")
	}
}

func TestResizeOnlyWhenGeometryChanges(t *testing.T) {
	f := newFixture(t, nil)
	if len(f.dev.resizes) != 1 {
		t.Fatalf("resizes after first layout = %v, want one", f.dev.resizes)
	}

	f.app.layout(100, 30)
	f.app.Draw()
	if len(f.dev.resizes) != 1 {
		t.Errorf("identical geometry resized again: %v", f.dev.resizes)
	}

	f.app.Handle(event.Resize{Width: 120, Height: 40})
	if len(f.dev.resizes) != 2 {
		t.Fatalf("resizes after host resize = %v, want two", f.dev.resizes)
	}
	cols, rows := f.app.term.Size()
	if got := f.dev.resizes[1]; got != [2]int{cols, rows} {
		t.Errorf("pty size %v differs from terminal state %dx%d", got, cols, rows)
	}
}

func TestSplitCycleResizesPty(t *testing.T) {
	f := newFixture(t, nil)
	f.key(tcell.KeyCtrlBackslash, 0, tcell.ModNone)
	if f.app.split != 80 {
		t.Errorf("split = %d, want 80", f.app.split)
	}
	f.app.Draw()
	if len(f.dev.resizes) != 2 {
		t.Errorf("resizes = %v, want a second resize for the new split", f.dev.resizes)
	}
}

func TestPtyExitStopsBeforeLaterEvents(t *testing.T) {
	f := newFixture(t, nil)
	f.queue.Push(event.PtyExited{})
	f.queue.Push(event.Key{Code: tcell.KeyRune, Rune: 'x'})

	event.Run(f.queue, f.app, 0)

	if f.app.Running() {
		t.Error("app still running after PtyExited")
	}
	if got := f.dev.String(); got != "" {
		t.Errorf("events after exit were applied, child got %q", got)
	}
}

func TestFocusSequencesWaitForChildOutput(t *testing.T) {
	f := newFixture(t, nil)

	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	if got := f.dev.String(); got != "" {
		t.Fatalf("focus sequences before child output: %q", got)
	}

	f.app.Handle(event.PtyOutput{Data: []byte("ready")})
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	if got := f.dev.String(); got != focus.FocusOut {
		t.Errorf("leaving pty wrote %q, want %q", got, focus.FocusOut)
	}
	f.dev.Reset()
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	if got := f.dev.String(); got != focus.FocusIn {
		t.Errorf("entering pty wrote %q, want exactly one %q", got, focus.FocusIn)
	}
}

func TestKeysAreEncodedForChild(t *testing.T) {
	f := newFixture(t, nil)
	f.runes("hi")
	f.key(tcell.KeyEnter, 0, tcell.ModShift)
	f.key(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	if got, want := f.dev.String(), "hi\x1b\r\x03"; got != want {
		t.Errorf("child got %q, want %q", got, want)
	}
}

func TestPasteIsBracketed(t *testing.T) {
	f := newFixture(t, nil)
	f.app.Handle(event.Paste{Text: "a\nb"})
	if got, want := f.dev.String(), string(input.EncodePaste("a\nb")); got != want {
		t.Errorf("child got %q, want %q", got, want)
	}
}

func TestWriteErrorBecomesMessage(t *testing.T) {
	f := newFixture(t, nil)
	f.dev.err = errors.New("pty write: broken pipe")
	f.runes("x")
	if got := f.app.Message(); got != "pty write: broken pipe" {
		t.Errorf("Message() = %q", got)
	}
	if !f.app.Running() {
		t.Error("write error stopped the app")
	}
}

func TestSendFilesFromStatus(t *testing.T) {
	repo := newFakeRepo(
		git.FileStatus{Path: "a.go", Kind: git.Modified},
		git.FileStatus{Path: "b.go", Kind: git.Untracked},
	)
	f := newFixture(t, repo)
	f.loadStatus()
	f.key(tcell.KeyTab, 0, tcell.ModNone)

	f.runes("s")
	if got := f.dev.String(); got != "@a.go\n" {
		t.Errorf("single send = %q, want %q", got, "@a.go\n")
	}
	if !f.app.focus.Is(focus.Pty) {
		t.Errorf("focus after send = %v, want pty", f.app.focus.Current())
	}

	f.dev.Reset()
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.runes("vjxs")
	if got := f.dev.String(); got != "@a.go @b.go\n" {
		t.Errorf("multi send = %q, want %q", got, "@a.go @b.go\n")
	}
	if f.app.status.MultiSelect() {
		t.Error("multi-select should end after sending")
	}
}

func TestSendWithPrompt(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	f := newFixture(t, repo)
	f.loadStatus()
	f.key(tcell.KeyTab, 0, tcell.ModNone)

	f.runes("S")
	if !f.app.focus.PromptOpen() {
		t.Fatal("S should open the prompt")
	}
	f.runes("fix this")
	f.key(tcell.KeyEnter, 0, tcell.ModNone)

	if got := f.dev.String(); got != "fix this @a.go\n" {
		t.Errorf("child got %q", got)
	}
	if !f.app.focus.Is(focus.Pty) {
		t.Errorf("focus = %v, want pty", f.app.focus.Current())
	}
}

func TestSendDiffRange(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	f := newFixture(t, repo)
	f.loadStatus()
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.key(tcell.KeyEnter, 0, tcell.ModNone)
	if !f.app.focus.Is(focus.DiffPane) {
		t.Fatalf("Enter should focus the diff, focus = %v", f.app.focus.Current())
	}

	// Lines: header, " one", "-two", "+TWO".
	f.runes("jVjjs")
	if got := f.dev.String(); got != "@a.go#L1-2\n" {
		t.Errorf("child got %q, want %q", got, "@a.go#L1-2\n")
	}
}

func TestDiffWheelScrollSurvivesDraw(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	f := newFixture(t, repo)
	f.loadStatus()
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.key(tcell.KeyEnter, 0, tcell.ModNone)

	d := f.app.frame.Diff
	f.app.Handle(event.Mouse{Action: event.WheelDown, X: d.X + 2, Y: d.Y + 1})
	f.app.Draw()
	if got := f.app.diff.Scroll(); got != wheelLines {
		t.Fatalf("Scroll() after wheel and Draw = %d, want %d", got, wheelLines)
	}

	// Moving the cursor brings it back into view.
	f.runes("j")
	if got := f.app.diff.Cursor(); got != 1 {
		t.Errorf("Cursor() = %d, want 1", got)
	}
	if got := f.app.diff.Scroll(); got != 1 {
		t.Errorf("Scroll() after j = %d, want 1", got)
	}
}

func TestDiffEscapeReturnsToStatus(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	f := newFixture(t, repo)
	f.loadStatus()
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.key(tcell.KeyEnter, 0, tcell.ModNone)
	f.key(tcell.KeyEscape, 0, tcell.ModNone)
	if !f.app.focus.Is(focus.StatusPane) {
		t.Errorf("focus = %v, want status", f.app.focus.Current())
	}
}

func TestPromptIsModal(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	f := newFixture(t, repo)
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.runes("c")
	if !f.app.focus.PromptOpen() {
		t.Fatal("c should open the commit prompt")
	}

	f.key(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	if !f.app.Running() || !f.app.focus.PromptOpen() {
		t.Fatal("global keys acted while the prompt was open")
	}

	f.key(tcell.KeyEscape, 0, tcell.ModNone)
	if f.app.focus.PromptOpen() || !f.app.focus.Is(focus.StatusPane) {
		t.Errorf("after Esc focus = %v, want status", f.app.focus.Current())
	}
}

func TestCommitRunsInBackground(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	f := newFixture(t, repo)
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.runes("cfirst")
	f.key(tcell.KeyEnter, 0, tcell.ModNone)

	ev := f.next(t)
	f.app.Handle(ev)
	if got := f.app.Message(); got != "Committed: first" {
		t.Errorf("Message() = %q", got)
	}
	if len(repo.commits) != 1 || repo.commits[0] != "first" {
		t.Errorf("commits = %v", repo.commits)
	}
}

func TestCommitAndPushReportsPushFailure(t *testing.T) {
	repo := newFakeRepo(git.FileStatus{Path: "a.go", Kind: git.Modified})
	repo.pushErr = errors.New("rejected")
	f := newFixture(t, repo)
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.runes("Cwip")
	f.key(tcell.KeyEnter, 0, tcell.ModNone)

	f.app.Handle(f.next(t))
	if got := f.app.Message(); got != "Committed but push failed: rejected" {
		t.Errorf("Message() = %q", got)
	}
}

func TestBranchListMessage(t *testing.T) {
	repo := newFakeRepo()
	f := newFixture(t, repo)
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.runes("b")
	f.app.Handle(f.next(t))
	if got := f.app.Message(); got != "Branches: dev, main" {
		t.Errorf("Message() = %q", got)
	}
}

func TestGitActionsWithoutRepo(t *testing.T) {
	f := newFixture(t, nil)
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	f.runes("p")
	if got := f.app.Message(); got != errNoRepo {
		t.Errorf("Message() = %q, want %q", got, errNoRepo)
	}
	f.runes("c")
	if f.app.focus.PromptOpen() {
		t.Error("commit prompt opened without a repository")
	}
}

func TestMouseSelectionCopies(t *testing.T) {
	f := newFixture(t, nil)
	f.app.Handle(event.PtyOutput{Data: []byte("hello world")})
	inner := f.app.frame.PtyInner

	f.app.Handle(event.Mouse{Action: event.MousePress, X: inner.X, Y: inner.Y})
	f.app.Handle(event.Mouse{Action: event.MouseDrag, X: inner.X + 4, Y: inner.Y})
	f.app.Handle(event.Mouse{Action: event.MouseRelease, X: inner.X + 4, Y: inner.Y})

	if len(f.clip.copied) != 1 || f.clip.copied[0] != "hello" {
		t.Errorf("clipboard got %q, want [hello]", f.clip.copied)
	}
	if !f.app.sel.Span().Active {
		t.Error("selection should stay visible after release")
	}

	f.runes("x")
	if f.app.sel.Span().Active {
		t.Error("writing to the child should clear the selection")
	}
}

func TestSelectionClearedOnFocusChangeAndScroll(t *testing.T) {
	tests := []struct {
		name    string
		trigger func(f *fixture)
	}{
		{"tab to status", func(f *fixture) {
			f.key(tcell.KeyTab, 0, tcell.ModNone)
		}},
		{"click status pane", func(f *fixture) {
			s := f.app.frame.Status
			f.app.Handle(event.Mouse{Action: event.MousePress, X: s.X + 2, Y: s.Y + 1})
		}},
		{"shift page up", func(f *fixture) {
			f.key(tcell.KeyPgUp, 0, tcell.ModShift)
		}},
		{"shift page down", func(f *fixture) {
			f.key(tcell.KeyPgDn, 0, tcell.ModShift)
		}},
		{"shift wheel", func(f *fixture) {
			inner := f.app.frame.PtyInner
			f.app.Handle(event.Mouse{Action: event.WheelUp, X: inner.X + 1, Y: inner.Y + 1, Mod: tcell.ModShift})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, newFakeRepo())
			f.app.Handle(event.PtyOutput{Data: []byte("hello world")})
			inner := f.app.frame.PtyInner
			f.app.Handle(event.Mouse{Action: event.MousePress, X: inner.X, Y: inner.Y})
			f.app.Handle(event.Mouse{Action: event.MouseDrag, X: inner.X + 4, Y: inner.Y})
			f.app.Handle(event.Mouse{Action: event.MouseRelease, X: inner.X + 4, Y: inner.Y})
			if !f.app.sel.Span().Active {
				t.Fatal("selection not active before trigger")
			}

			tt.trigger(f)
			if f.app.sel.Span().Active {
				t.Errorf("%s left the selection active", tt.name)
			}
		})
	}
}

func TestMousePressOnDividerDoesNotSelect(t *testing.T) {
	f := newFixture(t, nil)
	d := f.app.frame.Divider
	f.app.Handle(event.Mouse{Action: event.MousePress, X: d.X, Y: d.Y + 1})
	f.app.Handle(event.Mouse{Action: event.MouseDrag, X: d.X - 3, Y: d.Y + 1})
	if f.app.sel.Span().Active {
		t.Error("press on the divider armed a selection")
	}
}

func TestMouseFocusesClickedPane(t *testing.T) {
	f := newFixture(t, nil)
	s := f.app.frame.Status
	f.app.Handle(event.Mouse{Action: event.MousePress, X: s.X + 2, Y: s.Y + 1})
	if !f.app.focus.Is(focus.StatusPane) {
		t.Errorf("focus = %v, want status", f.app.focus.Current())
	}
}

func TestMouseOnTabBarSwitchesTabs(t *testing.T) {
	f := newFixture(t, nil)
	f.app.Handle(event.Mouse{Action: event.MousePress, X: 15, Y: 0})
	if f.app.tab != pane.FilesTab {
		t.Errorf("tab = %v, want Files", f.app.tab)
	}
}

func TestWheelOverPty(t *testing.T) {
	f := newFixture(t, nil)
	inner := f.app.frame.PtyInner
	f.app.Handle(event.Mouse{Action: event.WheelUp, X: inner.X + 1, Y: inner.Y + 1})

	want := string(bytes.Repeat(input.Encode(tcell.KeyUp, 0, tcell.ModNone), wheelLines))
	if got := f.dev.String(); got != want {
		t.Errorf("child got %q, want %q", got, want)
	}
}

func TestScrollbackResetsOnWrite(t *testing.T) {
	f := newFixture(t, nil)
	f.app.Handle(event.PtyOutput{Data: []byte(strings.Repeat("line\r\n", 80))})

	f.key(tcell.KeyPgUp, 0, tcell.ModShift)
	if !f.app.term.Scrolled() {
		t.Fatal("Shift+PgUp should scroll into history")
	}
	if got := f.dev.String(); got != "" {
		t.Errorf("scrolling wrote %q to the child", got)
	}

	f.runes("a")
	if f.app.term.Scrolled() {
		t.Error("a write should return to the live screen")
	}
}

func TestTabSwitching(t *testing.T) {
	f := newFixture(t, nil)
	f.key(tcell.KeyF2, 0, tcell.ModNone)
	if f.app.tab != pane.FilesTab || !f.app.focus.Is(focus.BrowserLeft) {
		t.Fatalf("F2: tab = %v, focus = %v", f.app.tab, f.app.focus.Current())
	}
	f.key(tcell.KeyTab, 0, tcell.ModNone)
	if !f.app.focus.Is(focus.BrowserRight) {
		t.Errorf("Tab on Files: focus = %v, want browser-right", f.app.focus.Current())
	}
	f.key(tcell.KeyF1, 0, tcell.ModNone)
	if f.app.tab != pane.ClaudeTab || !f.app.focus.Is(focus.Pty) {
		t.Errorf("F1: tab = %v, focus = %v", f.app.tab, f.app.focus.Current())
	}
}

func TestBrowserMkdirAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	f.key(tcell.KeyF2, 0, tcell.ModNone)

	f.runes("nsub")
	f.key(tcell.KeyEnter, 0, tcell.ModNone)
	path := filepath.Join(f.app.dir, "sub")
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Fatalf("mkdir did not create %s: %v", path, err)
	}
	if got := f.app.Message(); got != "Created sub" {
		t.Errorf("Message() = %q", got)
	}
	if !f.app.focus.Is(focus.BrowserLeft) {
		t.Errorf("focus after prompt = %v, want browser-left", f.app.focus.Current())
	}

	f.runes("D")
	f.runes("n")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("answering n deleted the directory")
	}
	f.runes("Dy")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Dy did not delete %s", path)
	}
}

func TestBrowserCopyToOtherPanel(t *testing.T) {
	f := newFixture(t, nil)
	src := filepath.Join(f.app.dir, "file.txt")
	if err := os.WriteFile(src, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(f.app.dir, "dest")
	if err := os.Mkdir(dest, 0755); err != nil {
		t.Fatal(err)
	}

	f.key(tcell.KeyF2, 0, tcell.ModNone)
	right := f.app.browser.OtherPanel()
	right.Refresh()
	right.Enter() // "dest" sorts first

	left := f.app.browser.ActivePanel()
	left.Down() // file.txt
	f.key(tcell.KeyF5, 0, tcell.ModNone)

	if data, err := os.ReadFile(filepath.Join(dest, "file.txt")); err != nil || string(data) != "data" {
		t.Errorf("copy result = %q, %v", data, err)
	}
}

func TestBrowserSendSwitchesToClaude(t *testing.T) {
	f := newFixture(t, nil)
	if err := os.WriteFile(filepath.Join(f.app.dir, "notes.md"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	f.key(tcell.KeyF2, 0, tcell.ModNone)
	f.runes("s")

	if got := f.dev.String(); got != "@notes.md\n" {
		t.Errorf("child got %q, want %q", got, "@notes.md\n")
	}
	if f.app.tab != pane.ClaudeTab || !f.app.focus.Is(focus.Pty) {
		t.Errorf("tab = %v, focus = %v", f.app.tab, f.app.focus.Current())
	}
}

func TestDrawPaintsFrame(t *testing.T) {
	f := newFixture(t, nil)
	f.app.Handle(event.PtyOutput{Data: []byte("hello")})
	f.app.Draw()

	var b strings.Builder
	for x := 0; x < 30; x++ {
		r, _, _, _ := f.screen.GetContent(x, 0)
		b.WriteRune(r)
	}
	if !strings.Contains(b.String(), "[F1] Claude") {
		t.Errorf("tab bar = %q", b.String())
	}
	inner := f.app.frame.PtyInner
	if r, _, _, _ := f.screen.GetContent(inner.X, inner.Y); r != 'h' {
		t.Errorf("terminal cell = %q, want 'h'", r)
	}
}
