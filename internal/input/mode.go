// Package input encodes keys for the hosted child and implements the
// single-line editor behind the prompt dialog.
package input

// Mode is what the prompt dialog will do with its text.
type Mode int

const (
	// ModeSendToChild sends the text plus file or line references to the child.
	ModeSendToChild Mode = iota
	// ModeCommit commits the index with the text as message.
	ModeCommit
	// ModeCommitAndPush commits and then pushes.
	ModeCommitAndPush
	// ModeCreateBranch creates and checks out a branch.
	ModeCreateBranch
	// ModeRename renames the selected browser entry.
	ModeRename
	// ModeMkdir creates a directory in the active browser panel.
	ModeMkdir
	// ModeConfirmDelete deletes the selected browser entry on "y".
	ModeConfirmDelete
)

// String returns the dialog title for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSendToChild:
		return "Send to Claude"
	case ModeCommit:
		return "Commit"
	case ModeCommitAndPush:
		return "Commit & Push"
	case ModeCreateBranch:
		return "New Branch"
	case ModeRename:
		return "Rename"
	case ModeMkdir:
		return "New Directory"
	case ModeConfirmDelete:
		return "Delete? (y/n)"
	default:
		return "UNKNOWN"
	}
}

// IsBrowser returns true for modes opened from the file browser.
func (m Mode) IsBrowser() bool {
	return m == ModeRename || m == ModeMkdir || m == ModeConfirmDelete
}
