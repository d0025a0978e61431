package config

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseKey_SingleChar(t *testing.T) {
	tests := []struct {
		input    string
		wantRune rune
	}{
		{"q", 'q'},
		{"v", 'v'},
		{"?", '?'},
		{"/", '/'},
		{"N", 'N'},
		{"shift+n", 'N'},
		{"space", ' '},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.input)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", tt.input, err)
			continue
		}
		if !key.IsRune() {
			t.Errorf("ParseKey(%q) expected rune, got special key", tt.input)
			continue
		}
		if key.Rune != tt.wantRune {
			t.Errorf("ParseKey(%q) = %q, want %q", tt.input, key.Rune, tt.wantRune)
		}
	}
}

func TestParseKey_SpecialKeys(t *testing.T) {
	tests := []struct {
		input   string
		wantKey tcell.Key
		wantMod tcell.ModMask
	}{
		{"enter", tcell.KeyEnter, tcell.ModNone},
		{"esc", tcell.KeyEscape, tcell.ModNone},
		{"escape", tcell.KeyEscape, tcell.ModNone},
		{"tab", tcell.KeyTab, tcell.ModNone},
		{"backspace", tcell.KeyBackspace2, tcell.ModNone},
		{"up", tcell.KeyUp, tcell.ModNone},
		{"PgUp", tcell.KeyPgUp, tcell.ModNone},
		{"f3", tcell.KeyF3, tcell.ModNone},
		{"shift+pgup", tcell.KeyPgUp, tcell.ModShift},
		{"alt+enter", tcell.KeyEnter, tcell.ModAlt},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.input)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", tt.input, err)
			continue
		}
		if key.Code != tt.wantKey || key.Mod != tt.wantMod {
			t.Errorf("ParseKey(%q) = (%v, %v), want (%v, %v)", tt.input, key.Code, key.Mod, tt.wantKey, tt.wantMod)
		}
	}
}

func TestParseKey_CtrlKeys(t *testing.T) {
	tests := []struct {
		input   string
		wantKey tcell.Key
	}{
		{"ctrl+a", tcell.KeyCtrlA},
		{"ctrl+q", tcell.KeyCtrlQ},
		{"Ctrl+Z", tcell.KeyCtrlZ},
		{"ctrl+\\", tcell.KeyCtrlBackslash},
		{"ctrl+]", tcell.KeyCtrlRightSq},
		{"ctrl+space", tcell.KeyCtrlSpace},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.input)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", tt.input, err)
			continue
		}
		if key.Code != tt.wantKey {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.input, key.Code, tt.wantKey)
		}
	}
}

func TestParseKey_Errors(t *testing.T) {
	for _, input := range []string{"", "  ", "ctrl+", "ctrl+ab", "notakey", "ctrl+1"} {
		if _, err := ParseKey(input); err == nil {
			t.Errorf("ParseKey(%q) expected error", input)
		}
	}
}

func TestKey_Matches(t *testing.T) {
	tests := []struct {
		binding string
		code    tcell.Key
		r       rune
		mod     tcell.ModMask
		want    bool
	}{
		{"ctrl+q", tcell.KeyCtrlQ, 0, tcell.ModCtrl, true},
		{"ctrl+q", tcell.KeyRune, 'q', tcell.ModCtrl, true},
		{"ctrl+q", tcell.KeyRune, 'q', tcell.ModNone, false},
		{"q", tcell.KeyRune, 'q', tcell.ModNone, true},
		{"q", tcell.KeyRune, 'Q', tcell.ModShift, false},
		{"q", tcell.KeyRune, 'q', tcell.ModAlt, false},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, true},
		{"tab", tcell.KeyBacktab, 0, tcell.ModShift, false},
		{"enter", tcell.KeyEnter, 0, tcell.ModShift, false},
		{"shift+enter", tcell.KeyEnter, 0, tcell.ModShift, true},
		{"f3", tcell.KeyF3, 0, tcell.ModNone, true},
		{"shift+pgup", tcell.KeyPgUp, 0, tcell.ModShift, true},
		{"shift+pgup", tcell.KeyPgUp, 0, tcell.ModNone, false},
		{"ctrl+\\", tcell.KeyCtrlBackslash, 0, tcell.ModCtrl, true},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.binding)
		if err != nil {
			t.Fatalf("ParseKey(%q) error = %v", tt.binding, err)
		}
		if got := key.Matches(tt.code, tt.r, tt.mod); got != tt.want {
			t.Errorf("ParseKey(%q).Matches(%v, %q, %v) = %v, want %v", tt.binding, tt.code, tt.r, tt.mod, got, tt.want)
		}
	}
}

func TestKeyToString(t *testing.T) {
	tests := []string{"q", "N", "space", "enter", "tab", "esc", "f5", "pgup", "shift+pgup", "alt+x", "ctrl+q", "ctrl+\\"}

	for _, input := range tests {
		key, err := ParseKey(input)
		if err != nil {
			t.Fatalf("ParseKey(%q) error = %v", input, err)
		}
		if got := KeyToString(key); got != input {
			t.Errorf("KeyToString(ParseKey(%q)) = %q, want %q", input, got, input)
		}
	}
}
