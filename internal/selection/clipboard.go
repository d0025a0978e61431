package selection

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard receives extracted text.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies through the OS clipboard tool and falls back to
// an OSC 52 sequence on the host terminal when none is available.
type SystemClipboard struct {
	// Terminal is where the OSC 52 fallback is written; nil disables it.
	Terminal io.Writer
}

// Copy implements Clipboard.
func (c SystemClipboard) Copy(text string) error {
	err := clipboard.WriteAll(text)
	if err == nil || c.Terminal == nil {
		return err
	}
	_, err = osc52.New(text).WriteTo(c.Terminal)
	return err
}
