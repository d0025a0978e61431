package filebrowser

import "github.com/abdullathedruid/cdeck/internal/focus"

// Side names a panel.
type Side int

const (
	Left Side = iota
	Right
)

// Target is the focus target of the panel on side s.
func (s Side) Target() focus.Target {
	if s == Right {
		return focus.BrowserRight
	}
	return focus.BrowserLeft
}

// Browser is the pair of panels on the Files tab.
type Browser struct {
	left   *Panel
	right  *Panel
	active Side
}

// New opens both panels on dir.
func New(dir string) *Browser {
	return &Browser{
		left:  NewPanel(dir),
		right: NewPanel(dir),
	}
}

// Panel returns the panel on side s.
func (b *Browser) Panel(s Side) *Panel {
	if s == Right {
		return b.right
	}
	return b.left
}

// Active returns the side with the cursor.
func (b *Browser) Active() Side { return b.active }

// SetActive selects a side.
func (b *Browser) SetActive(s Side) { b.active = s }

// ActivePanel is the panel with the cursor.
func (b *Browser) ActivePanel() *Panel { return b.Panel(b.active) }

// OtherPanel is the panel operations copy and move into.
func (b *Browser) OtherPanel() *Panel {
	if b.active == Right {
		return b.left
	}
	return b.right
}

// Switch moves the cursor to the other panel.
func (b *Browser) Switch() {
	if b.active == Left {
		b.active = Right
	} else {
		b.active = Left
	}
}

// Refresh re-reads both panels.
func (b *Browser) Refresh() {
	b.left.Refresh()
	b.right.Refresh()
}
