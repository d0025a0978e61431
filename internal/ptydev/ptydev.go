// Package ptydev allocates a pseudo-terminal, runs the hosted child on its
// slave side and exposes the master as two independent handles: one for the
// reader goroutine, one for the owner that writes and resizes.
package ptydev

import "fmt"

// MinSize is the smallest width or height a PTY is ever given.
const MinSize = 2

// Device is what the app needs from a running PTY. It is satisfied by *PTY
// and by fakes in tests.
type Device interface {
	// Write blocks until every byte is accepted by the kernel.
	Write(p []byte) (int, error)
	Resize(cols, rows int) error
	Close() error
}

// SpawnError reports a failure to allocate the PTY or start the child.
type SpawnError struct {
	Command string
	Op      string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %s: %v", e.Command, e.Op, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// IOError reports a failed read or write on the master side.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("pty %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Clamp returns cols and rows raised to MinSize.
func Clamp(cols, rows int) (int, int) {
	return max(cols, MinSize), max(rows, MinSize)
}
