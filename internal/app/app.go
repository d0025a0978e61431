// Package app is the ownership root: it holds every subsystem, applies
// dispatched events to them and paints the frame.
package app

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/abdullathedruid/cdeck/internal/config"
	"github.com/abdullathedruid/cdeck/internal/event"
	"github.com/abdullathedruid/cdeck/internal/filebrowser"
	"github.com/abdullathedruid/cdeck/internal/focus"
	"github.com/abdullathedruid/cdeck/internal/git"
	"github.com/abdullathedruid/cdeck/internal/input"
	"github.com/abdullathedruid/cdeck/internal/logging"
	"github.com/abdullathedruid/cdeck/internal/pane"
	"github.com/abdullathedruid/cdeck/internal/ptydev"
	"github.com/abdullathedruid/cdeck/internal/selection"
	"github.com/abdullathedruid/cdeck/internal/termstate"
	"github.com/abdullathedruid/cdeck/internal/ui"
)

// Repo is the version-control collaborator. *git.Repo implements it.
type Repo interface {
	Status() (git.Snapshot, error)
	Diff(f git.FileStatus) (*git.FileDiff, error)
	ToggleStage(f git.FileStatus) error
	StageAll() error
	Discard(f git.FileStatus) error
	Commit(message string) error
	Push() (string, error)
	Pull() (string, error)
	Branches() ([]string, error)
	CreateBranch(name string) error
	Stash() error
	StashPop() error
}

// ProcessLookup returns the command line running in the child's process
// tree rooted at pid.
type ProcessLookup func(pid int) (string, error)

// Options are the collaborators New wires together. Repo may be nil when
// the working directory is not inside a repository.
type Options struct {
	Config    *config.Config
	Screen    tcell.Screen
	Device    ptydev.Device
	Queue     *event.Queue
	Repo      Repo
	Clipboard selection.Clipboard
	Logger    *logging.Logger
	Processes ProcessLookup

	// Dir is where both file panels start.
	Dir string
	// Pid and Command describe the child for the tab bar.
	Pid     int
	Command string
	// Cols and Rows are the size the PTY was allocated with.
	Cols, Rows int
}

// keymap holds the parsed global bindings.
type keymap struct {
	quit, toggle, cycle, resize, claudeTab, filesTab config.Key
}

// App owns all mutable state. Every method runs on the dispatcher
// goroutine; background work reports back only through the queue.
type App struct {
	cfg    *config.Config
	screen tcell.Screen
	dev    ptydev.Device
	queue  *event.Queue
	repo   Repo
	clip   selection.Clipboard
	log    *logging.Logger
	procs  ProcessLookup
	keys   keymap
	theme  ui.Theme

	term  *termstate.State
	sel   selection.Model
	focus *focus.Machine

	files  []git.FileStatus
	branch string
	status *pane.StatusList
	diff   *pane.DiffView
	hl     *ui.Highlighter

	browser *filebrowser.Browser
	prompt  *input.Prompt
	dir     string

	tab   pane.Tab
	split int
	frame pane.Frame
	// ptyCols and ptyRows are the size last applied to the PTY.
	ptyCols, ptyRows int

	pid     int
	command string

	running bool
	exited  bool
	message string

	refreshBusy bool
	gitBusy     bool
	procBusy    bool
}

// New builds the app. Global key strings must already be validated.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	keys, err := parseKeymap(&cfg.Keys)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	a := &App{
		cfg:     cfg,
		screen:  opts.Screen,
		dev:     opts.Device,
		queue:   opts.Queue,
		repo:    opts.Repo,
		clip:    opts.Clipboard,
		log:     log.Component("app"),
		procs:   opts.Processes,
		keys:    keys,
		theme:   ui.NewTheme(cfg.Theme.Colors),
		status:  pane.NewStatusList(),
		diff:    pane.NewDiffView(),
		hl:      ui.NewHighlighter(cfg.DiffStyle),
		browser: filebrowser.New(opts.Dir),
		prompt:  input.NewPrompt(),
		dir:     opts.Dir,
		tab:     pane.ClaudeTab,
		split:   cfg.SplitPercent,
		pid:     opts.Pid,
		command: opts.Command,
		ptyCols: opts.Cols,
		ptyRows: opts.Rows,
		running: true,
	}
	a.term = termstate.New(opts.Cols, opts.Rows, cfg.ScrollbackLines, opts.Device)
	a.focus = focus.New(opts.Device)
	return a, nil
}

func parseKeymap(kb *config.KeyBindings) (keymap, error) {
	var km keymap
	for _, b := range []struct {
		dst *config.Key
		src string
	}{
		{&km.quit, kb.Quit},
		{&km.toggle, kb.ToggleFocus},
		{&km.cycle, kb.CycleFocus},
		{&km.resize, kb.ResizePanes},
		{&km.claudeTab, kb.ClaudeTab},
		{&km.filesTab, kb.FilesTab},
	} {
		k, err := config.ParseKey(b.src)
		if err != nil {
			return keymap{}, err
		}
		*b.dst = k
	}
	return km, nil
}

// Running implements event.Handler.
func (a *App) Running() bool {
	return a.running
}

// Quit stops the loop after the current batch.
func (a *App) Quit() {
	a.running = false
}

// Message is the status message shown in the command bar.
func (a *App) Message() string {
	return a.message
}

// Handle implements event.Handler. It is the only place state changes.
func (a *App) Handle(ev event.Event) {
	switch e := ev.(type) {
	case event.Key:
		a.handleKey(e)
	case event.Mouse:
		a.handleMouse(e)
	case event.Paste:
		a.handlePaste(e.Text)
	case event.Resize:
		a.layout(e.Width, e.Height)
	case event.PtyOutput:
		a.focus.MarkChildReady()
		a.term.Feed(e.Data)
	case event.PtyExited:
		a.exited = true
		a.running = false
		if e.Err != nil {
			a.log.Info("child output closed", zap.Error(e.Err))
		} else {
			a.log.Info("child exited")
		}
	case event.Tick:
		a.requestRefresh()
		a.requestProcessInfo()
	case event.GitRefreshRequested:
		a.requestRefresh()
	case event.GitStatusUpdate:
		a.applyStatus(e)
	case event.GitActionDone:
		a.gitBusy = false
		if e.Err != nil {
			a.message = e.Err.Error()
			a.log.Warn("git command failed", zap.Error(e.Err))
		} else {
			a.message = e.Message
		}
		a.requestRefresh()
	case event.ChildProcess:
		a.procBusy = false
		if e.Command != "" {
			a.command = e.Command
		}
	case event.FocusGained:
		a.focus.HostFocus(true)
	case event.FocusLost:
		a.focus.HostFocus(false)
	}
}

// writeChild forwards input to the child. Any write returns the terminal
// pane to the live screen and drops the selection.
func (a *App) writeChild(b []byte) {
	if len(b) == 0 || a.exited {
		return
	}
	a.term.ResetScroll()
	a.sel.Clear()
	if _, err := a.dev.Write(b); err != nil {
		a.message = err.Error()
		a.log.Warn("pty write failed", zap.Error(err))
	}
}

// sendToChild writes text to the child and hands it the keyboard.
func (a *App) sendToChild(text string) {
	a.setTab(pane.ClaudeTab)
	a.writeChild([]byte(text))
	a.setFocus(focus.Pty)
}

func (a *App) setFocus(t focus.Target) {
	a.focus.Set(t)
	a.focusChanged()
}

// focusChanged drops the terminal selection once the pane loses focus.
func (a *App) focusChanged() {
	if !a.focus.Is(focus.Pty) {
		a.sel.Clear()
	}
}

func (a *App) setTab(t pane.Tab) {
	if a.tab == t {
		return
	}
	a.tab = t
	switch t {
	case pane.FilesTab:
		a.browser.Refresh()
		a.setFocus(a.browser.Active().Target())
	case pane.ClaudeTab:
		a.setFocus(focus.Pty)
	}
}

// layout recomputes the frame for a w x h screen, records the pane
// rectangles for hit-testing and resizes the PTY when its pane changed.
func (a *App) layout(w, h int) {
	a.frame = pane.Compute(w, h, a.split, a.tab, a.prompt.IsOpen())
	f := a.frame
	a.focus.SetRects(map[focus.Target]pane.Rect{
		focus.Pty:          f.Pty,
		focus.StatusPane:   f.Status,
		focus.DiffPane:     f.Diff,
		focus.BrowserLeft:  f.BrowserLeft,
		focus.BrowserRight: f.BrowserRight,
		focus.PromptDialog: f.Prompt,
	})

	if a.tab != pane.ClaudeTab {
		return
	}
	cols, rows := ptydev.Clamp(f.PtySize())
	a.resizePty(cols, rows)
}

// resizePty applies a new child size. Repeating the current size does
// nothing; a failed resize is logged and otherwise ignored.
func (a *App) resizePty(cols, rows int) {
	if cols == a.ptyCols && rows == a.ptyRows {
		return
	}
	a.ptyCols, a.ptyRows = cols, rows
	a.term.Resize(cols, rows)
	if err := a.dev.Resize(cols, rows); err != nil {
		a.log.Warn("pty resize failed", zap.Int("cols", cols), zap.Int("rows", rows), zap.Error(err))
		return
	}
	a.log.Debug("pty resized", zap.Int("cols", cols), zap.Int("rows", rows))
}

// Draw implements event.Handler: it paints one frame from current state.
func (a *App) Draw() {
	s := a.screen
	w, h := s.Size()
	a.layout(w, h)
	f := a.frame

	s.HideCursor()
	s.Clear()

	ui.DrawTabBar(s, f.TabBar, ui.TabBarView{
		Active:  a.tab,
		Pid:     a.pid,
		Command: a.command,
		Title:   a.term.Title(),
	}, a.theme)

	switch a.tab {
	case pane.ClaudeTab:
		ui.DrawTerminal(s, f, ui.TerminalView{
			State:     a.term,
			Selection: a.sel.Span(),
			Focused:   a.focus.Is(focus.Pty),
			Exited:    a.exited,
		}, a.theme)
		notice := ""
		if a.repo == nil {
			notice = "not a git repository"
		}
		ui.DrawStatus(s, f.Status, ui.StatusView{
			Files:   a.files,
			List:    a.status,
			Branch:  a.branch,
			Focused: a.focus.Is(focus.StatusPane),
			Notice:  notice,
		}, a.theme)
		ui.DrawDiff(s, f.Diff, ui.DiffView{
			View:        a.diff,
			Highlighter: a.hl,
			Focused:     a.focus.Is(focus.DiffPane),
		}, a.theme)
	case pane.FilesTab:
		ui.DrawBrowser(s, f.BrowserLeft, ui.BrowserView{
			Panel:   a.browser.Panel(filebrowser.Left),
			Focused: a.focus.Is(focus.BrowserLeft),
		}, a.theme)
		ui.DrawBrowser(s, f.BrowserRight, ui.BrowserView{
			Panel:   a.browser.Panel(filebrowser.Right),
			Focused: a.focus.Is(focus.BrowserRight),
		}, a.theme)
	}

	ui.DrawCommandBar(s, f.CommandBar, ui.Hints(a.focus.Current()), a.message, a.theme)
	if a.prompt.IsOpen() {
		ui.DrawPrompt(s, f.Prompt, a.prompt, a.theme)
	}

	s.Show()
}
