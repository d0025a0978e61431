package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key represents a parsed key binding.
type Key struct {
	Code tcell.Key // tcell.KeyRune for printable characters
	Rune rune
	Mod  tcell.ModMask
}

// ParseKey parses a key string into a tcell key description.
// Supported formats:
//   - Single character: "q", "v", "?", "N" (case is kept, so "N" is shift+n)
//   - Special keys: "enter", "space", "esc", "tab", "backspace", "f1".."f12"
//   - Arrow keys: "up", "down", "left", "right"
//   - Ctrl combinations: "ctrl+c", "ctrl+\"
//   - Modifier prefixes on special keys: "shift+pgup", "alt+enter"
func ParseKey(s string) (Key, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Key{}, fmt.Errorf("empty key string")
	}

	var mod tcell.ModMask
	rest := trimmed
	for {
		lower := strings.ToLower(rest)
		switch {
		case strings.HasPrefix(lower, "ctrl+") && len(rest) > len("ctrl+"):
			mod |= tcell.ModCtrl
			rest = rest[len("ctrl+"):]
			continue
		case strings.HasPrefix(lower, "alt+") && len(rest) > len("alt+"):
			mod |= tcell.ModAlt
			rest = rest[len("alt+"):]
			continue
		case strings.HasPrefix(lower, "shift+") && len(rest) > len("shift+"):
			mod |= tcell.ModShift
			rest = rest[len("shift+"):]
			continue
		}
		break
	}

	lower := strings.ToLower(rest)

	if mod&tcell.ModCtrl != 0 {
		code, ok := ctrlKeyMap[lower]
		if !ok {
			return Key{}, fmt.Errorf("invalid ctrl combination: %s", s)
		}
		return Key{Code: code, Mod: mod &^ tcell.ModCtrl}, nil
	}

	if lower == "space" {
		return Key{Code: tcell.KeyRune, Rune: ' ', Mod: mod & tcell.ModAlt}, nil
	}

	if code, ok := specialKeyMap[lower]; ok {
		return Key{Code: code, Mod: mod}, nil
	}

	runes := []rune(rest)
	if len(runes) == 1 {
		r := runes[0]
		if mod&tcell.ModShift != 0 {
			r = unicode.ToUpper(r)
		}
		return Key{Code: tcell.KeyRune, Rune: r, Mod: mod & tcell.ModAlt}, nil
	}

	return Key{}, fmt.Errorf("unknown key: %s", s)
}

// IsRune returns true if the key is a printable character.
func (k Key) IsRune() bool {
	return k.Code == tcell.KeyRune
}

// Matches reports whether a key event with the given code, rune and
// modifiers triggers this binding. Ctrl combinations match both the
// control-code form and the rune-plus-ModCtrl form some terminals report.
func (k Key) Matches(code tcell.Key, r rune, mod tcell.ModMask) bool {
	if k.Code == tcell.KeyRune {
		return code == tcell.KeyRune && r == k.Rune && mod&tcell.ModAlt == k.Mod&tcell.ModAlt
	}
	if isControlCode(k.Code) && !isNamedControl(k.Code) {
		if code == k.Code {
			return mod&tcell.ModAlt == k.Mod&tcell.ModAlt
		}
		if code == tcell.KeyRune && mod&tcell.ModCtrl != 0 {
			c, ok := ctrlKeyMap[strings.ToLower(string(r))]
			return ok && c == k.Code
		}
		return false
	}
	const relevant = tcell.ModShift | tcell.ModAlt | tcell.ModCtrl
	return code == k.Code && mod&relevant == k.Mod&relevant
}

func isControlCode(code tcell.Key) bool {
	return code >= tcell.KeyCtrlSpace && code <= tcell.KeyCtrlUnderscore
}

// isNamedControl covers control codes that have their own key name and
// may carry a shift or alt modifier.
func isNamedControl(code tcell.Key) bool {
	return code == tcell.KeyTab || code == tcell.KeyEnter || code == tcell.KeyEscape
}

// specialKeyMap maps string names to tcell special keys.
var specialKeyMap = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// ctrlKeyMap maps the character after "ctrl+" to its control code.
var ctrlKeyMap = func() map[string]tcell.Key {
	m := map[string]tcell.Key{
		"space": tcell.KeyCtrlSpace,
		"@":     tcell.KeyCtrlSpace,
		"[":     tcell.KeyCtrlLeftSq,
		"\\":    tcell.KeyCtrlBackslash,
		"]":     tcell.KeyCtrlRightSq,
		"^":     tcell.KeyCtrlCarat,
		"_":     tcell.KeyCtrlUnderscore,
	}
	for c := 'a'; c <= 'z'; c++ {
		m[string(c)] = tcell.KeyCtrlA + tcell.Key(c-'a')
	}
	return m
}()

// KeyToString converts a Key back to its string representation.
func KeyToString(k Key) string {
	var prefix string
	if k.Mod&tcell.ModAlt != 0 {
		prefix += "alt+"
	}

	if k.IsRune() {
		if k.Rune == ' ' {
			return prefix + "space"
		}
		return prefix + string(k.Rune)
	}

	if k.Mod&tcell.ModShift != 0 {
		prefix += "shift+"
	}

	if isControlCode(k.Code) {
		switch k.Code {
		case tcell.KeyTab:
			return prefix + "tab"
		case tcell.KeyEnter:
			return prefix + "enter"
		case tcell.KeyEscape:
			return prefix + "esc"
		}
		for name, code := range ctrlKeyMap {
			if code == k.Code && name != "@" && name != "space" {
				return prefix + "ctrl+" + name
			}
		}
		if k.Code == tcell.KeyCtrlSpace {
			return prefix + "ctrl+space"
		}
	}

	if name, ok := specialKeyNames[k.Code]; ok {
		return prefix + name
	}

	return ""
}

// specialKeyNames is the canonical reverse of specialKeyMap.
var specialKeyNames = map[tcell.Key]string{
	tcell.KeyBacktab:    "backtab",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyF1:         "f1",
	tcell.KeyF2:         "f2",
	tcell.KeyF3:         "f3",
	tcell.KeyF4:         "f4",
	tcell.KeyF5:         "f5",
	tcell.KeyF6:         "f6",
	tcell.KeyF7:         "f7",
	tcell.KeyF8:         "f8",
	tcell.KeyF9:         "f9",
	tcell.KeyF10:        "f10",
	tcell.KeyF11:        "f11",
	tcell.KeyF12:        "f12",
}
