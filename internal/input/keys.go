package input

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Sequences written to the child for bracketed paste.
const (
	PasteStart = "\x1b[200~"
	PasteEnd   = "\x1b[201~"
)

// keySequences are the fixed encodings of navigation and function keys.
var keySequences = map[tcell.Key]string{
	tcell.KeyUp:      "\x1b[A",
	tcell.KeyDown:    "\x1b[B",
	tcell.KeyRight:   "\x1b[C",
	tcell.KeyLeft:    "\x1b[D",
	tcell.KeyHome:    "\x1b[H",
	tcell.KeyEnd:     "\x1b[F",
	tcell.KeyPgUp:    "\x1b[5~",
	tcell.KeyPgDn:    "\x1b[6~",
	tcell.KeyDelete:  "\x1b[3~",
	tcell.KeyInsert:  "\x1b[2~",
	tcell.KeyBacktab: "\x1b[Z",
	tcell.KeyF1:      "\x1bOP",
	tcell.KeyF2:      "\x1bOQ",
	tcell.KeyF3:      "\x1bOR",
	tcell.KeyF4:      "\x1bOS",
	tcell.KeyF5:      "\x1b[15~",
	tcell.KeyF6:      "\x1b[17~",
	tcell.KeyF7:      "\x1b[18~",
	tcell.KeyF8:      "\x1b[19~",
	tcell.KeyF9:      "\x1b[20~",
	tcell.KeyF10:     "\x1b[21~",
	tcell.KeyF11:     "\x1b[23~",
	tcell.KeyF12:     "\x1b[24~",
}

// Encode returns the bytes the child expects for a key, or nil for keys
// that have no encoding.
func Encode(code tcell.Key, ch rune, mod tcell.ModMask) []byte {
	switch code {
	case tcell.KeyEnter:
		if mod&(tcell.ModShift|tcell.ModAlt) != 0 {
			return []byte("\x1b\r")
		}
		return []byte("\r")
	case tcell.KeyTab:
		return []byte("\t")
	case tcell.KeyEscape:
		return []byte("\x1b")
	case tcell.KeyBackspace2:
		return []byte{0x7f}
	case tcell.KeyRune:
		return encodeRune(ch, mod)
	}

	if seq, ok := keySequences[code]; ok {
		if mod&tcell.ModAlt != 0 {
			return []byte("\x1b" + seq)
		}
		return []byte(seq)
	}

	if code >= tcell.KeyCtrlSpace && code <= tcell.KeyCtrlUnderscore {
		b := []byte{byte(code)}
		if mod&tcell.ModAlt != 0 {
			return append([]byte{0x1b}, b...)
		}
		return b
	}
	return nil
}

func encodeRune(ch rune, mod tcell.ModMask) []byte {
	if mod&tcell.ModCtrl != 0 {
		switch {
		case ch >= 'a' && ch <= 'z':
			return []byte{byte(ch-'a') + 1}
		case ch >= 'A' && ch <= 'Z':
			return []byte{byte(ch-'A') + 1}
		case ch == ' ' || ch == '@':
			return []byte{0}
		}
	}

	buf := make([]byte, 0, utf8.UTFMax+1)
	if mod&tcell.ModAlt != 0 {
		buf = append(buf, 0x1b)
	}
	return utf8.AppendRune(buf, ch)
}

// EncodePaste wraps text in bracketed paste markers.
func EncodePaste(text string) []byte {
	return []byte(PasteStart + text + PasteEnd)
}
