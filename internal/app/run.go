package app

import (
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-errors/errors"
	"go.uber.org/zap"

	"github.com/abdullathedruid/cdeck/internal/config"
	"github.com/abdullathedruid/cdeck/internal/event"
	"github.com/abdullathedruid/cdeck/internal/git"
	"github.com/abdullathedruid/cdeck/internal/logging"
	"github.com/abdullathedruid/cdeck/internal/pane"
	"github.com/abdullathedruid/cdeck/internal/process"
	"github.com/abdullathedruid/cdeck/internal/ptydev"
	"github.com/abdullathedruid/cdeck/internal/selection"
)

// childTerm is the TERM the child sees; it matches what the terminal
// state interpreter understands.
const childTerm = "xterm-256color"

// Run takes over the terminal, spawns the child and applies events until
// the child exits or the user quits. The terminal is restored on every
// exit path, including a panic.
func Run(cfg *config.Config, log *logging.Logger) error {
	dir, err := os.Getwd()
	if err != nil {
		return errors.WrapPrefix(err, "working directory", 0)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.WrapPrefix(err, "creating screen", 0)
	}
	if err := screen.Init(); err != nil {
		return errors.WrapPrefix(err, "initializing screen", 0)
	}
	restored := false
	restore := func() {
		if !restored {
			restored = true
			screen.Fini()
		}
	}
	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
		restore()
	}()

	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.EnablePaste()
	screen.EnableFocus()

	w, h := screen.Size()
	cols, rows := ptydev.Clamp(pane.Compute(w, h, cfg.SplitPercent, pane.ClaudeTab, false).PtySize())

	dev, err := ptydev.Allocate(cols, rows, cfg.ChildCommand, cfg.ChildArgs, childEnv(), dir)
	if err != nil {
		restore()
		log.Error("spawn failed", zap.Error(err))
		return err
	}
	defer dev.Close()
	log.Info("child spawned",
		zap.Int("pid", dev.Pid()),
		zap.String("command", cfg.ChildCommand),
		zap.Strings("args", cfg.ChildArgs),
		zap.Int("cols", cols),
		zap.Int("rows", rows))

	var repo Repo
	r, err := git.Open(dir)
	if err != nil {
		log.Info("git pane disabled", zap.Error(err))
	} else {
		repo = r
	}

	q := event.NewQueue()
	a, err := New(Options{
		Config:    cfg,
		Screen:    screen,
		Device:    dev,
		Queue:     q,
		Repo:      repo,
		Clipboard: selection.SystemClipboard{Terminal: os.Stdout},
		Logger:    log,
		Processes: foregroundCommand,
		Dir:       dir,
		Pid:       dev.Pid(),
		Command:   strings.Join(append([]string{cfg.ChildCommand}, cfg.ChildArgs...), " "),
		Cols:      cols,
		Rows:      rows,
	})
	if err != nil {
		return err
	}

	if repo != nil {
		watchLog := log.Component("watcher")
		watcher, err := git.NewWatcher(r,
			func() { q.Push(event.GitRefreshRequested{}) },
			func(err error) { watchLog.Warn("watch error", zap.Error(err)) })
		if err != nil {
			watchLog.Warn("watcher disabled", zap.Error(err))
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	go event.PumpPty(dev.Reader(), q)
	go event.PollScreen(screen, q)
	go event.Ticker(time.Duration(cfg.TickSeconds())*time.Second, q)

	q.Push(event.GitRefreshRequested{})
	a.Draw()
	event.Run(q, a, cfg.MaxDrain)

	if a.exited {
		log.Info("shutdown", zap.String("reason", "child exited"))
	} else {
		log.Info("shutdown", zap.String("reason", "quit"))
	}
	return nil
}

// childEnv is the parent's environment with TERM replaced.
func childEnv() []string {
	env := make([]string, 0, len(os.Environ())+1)
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "TERM=") {
			env = append(env, kv)
		}
	}
	return append(env, "TERM="+childTerm)
}

// foregroundCommand reports what the child's process tree is running.
func foregroundCommand(pid int) (string, error) {
	table, err := process.Snapshot()
	if err != nil {
		return "", err
	}
	info, ok := table.Foreground(pid)
	if !ok {
		return "", errors.Errorf("pid %d not found", pid)
	}
	return info.Command, nil
}
