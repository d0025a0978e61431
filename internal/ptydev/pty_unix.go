//go:build !windows

package ptydev

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// PTY owns the master descriptor pair and the child attached to the slave.
type PTY struct {
	command string

	// master is used only by the owner for writes and window-size changes.
	master *os.File
	// rd is a dup of master used only by the reader goroutine.
	rd *reader

	cmd *exec.Cmd

	closeOnce sync.Once
	closeErr  error
}

// Allocate opens a PTY sized cols x rows and starts name with args attached
// to it as the controlling terminal of a new session.
func Allocate(cols, rows int, name string, args []string, env []string, dir string) (*PTY, error) {
	cols, rows = Clamp(cols, rows)

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, &SpawnError{Command: name, Op: "lookup", Err: err}
	}

	master, tty, err := pty.Open()
	if err != nil {
		return nil, &SpawnError{Command: name, Op: "open pty", Err: err}
	}

	if err := pty.Setsize(master, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
		master.Close()
		tty.Close()
		return nil, &SpawnError{Command: name, Op: "set size", Err: err}
	}

	rd, err := dupNonblock(master)
	if err != nil {
		master.Close()
		tty.Close()
		return nil, &SpawnError{Command: name, Op: "dup master", Err: err}
	}

	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Dir = dir
	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	// Ctty is the child's fd number after the dup2 onto stdin.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}

	if err := cmd.Start(); err != nil {
		rd.f.Close()
		master.Close()
		tty.Close()
		return nil, &SpawnError{Command: name, Op: "start", Err: err}
	}

	// The child holds its own copy of the slave.
	tty.Close()

	return &PTY{
		command: name,
		master:  master,
		rd:      rd,
		cmd:     cmd,
	}, nil
}

// dupNonblock duplicates f's descriptor, puts the shared open file
// description into non-blocking mode and wraps the copy so reads park on
// the runtime poller instead of a thread.
func dupNonblock(f *os.File) (*reader, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return nil, err
	}

	var fd int
	var opErr error
	err = rc.Control(func(raw uintptr) {
		fd, opErr = unix.Dup(int(raw))
		if opErr != nil {
			return
		}
		opErr = unix.SetNonblock(fd, true)
	})
	if err == nil {
		err = opErr
	}
	if err != nil {
		if fd > 0 {
			unix.Close(fd)
		}
		return nil, err
	}

	return &reader{f: os.NewFile(uintptr(fd), f.Name()+"[r]")}, nil
}

// Reader returns the handle owned by the reader goroutine.
func (p *PTY) Reader() io.Reader {
	return p.rd
}

// Write sends p to the child, retrying short writes until all of p is
// accepted.
func (p *PTY) Write(b []byte) (int, error) {
	written := 0
	for written < len(b) {
		n, err := p.master.Write(b[written:])
		written += n
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return written, &IOError{Op: "write", Err: err}
		}
	}
	return written, nil
}

// Resize pushes a new window size to the child.
func (p *PTY) Resize(cols, rows int) error {
	cols, rows = Clamp(cols, rows)
	return pty.Setsize(p.master, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// Pid returns the child's process id.
func (p *PTY) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Command is the name the child was started with.
func (p *PTY) Command() string {
	return p.command
}

// Wait waits for the child to exit.
func (p *PTY) Wait() error {
	return p.cmd.Wait()
}

// Close closes both master handles. It is safe to call more than once.
func (p *PTY) Close() error {
	p.closeOnce.Do(func() {
		rerr := p.rd.f.Close()
		p.closeErr = p.master.Close()
		if p.closeErr == nil {
			p.closeErr = rerr
		}
	})
	return p.closeErr
}

// reader maps the master's end-of-session errors onto io.EOF.
type reader struct {
	f *os.File
}

func (r *reader) Read(b []byte) (int, error) {
	n, err := r.f.Read(b)
	if err == nil {
		return n, nil
	}
	// Linux reports a hung-up slave as EIO.
	if errors.Is(err, io.EOF) || errors.Is(err, unix.EIO) || errors.Is(err, fs.ErrClosed) {
		return n, io.EOF
	}
	return n, &IOError{Op: "read", Err: err}
}
