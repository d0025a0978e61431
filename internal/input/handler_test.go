package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func typeString(p *Prompt, s string) {
	for _, r := range s {
		p.HandleKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestPrompt_Editing(t *testing.T) {
	p := NewPrompt()
	p.Open(ModeCommit, "")

	if !p.IsOpen() || p.Mode() != ModeCommit {
		t.Fatalf("Open: open=%v mode=%v", p.IsOpen(), p.Mode())
	}

	typeString(p, "héllo")
	if p.Input() != "héllo" || p.Cursor() != 5 {
		t.Errorf("Input = %q cursor %d, want %q cursor 5", p.Input(), p.Cursor(), "héllo")
	}

	p.HandleKey(tcell.KeyLeft, 0, tcell.ModNone)
	p.HandleKey(tcell.KeyLeft, 0, tcell.ModNone)
	p.HandleKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	if p.Input() != "hélo" {
		t.Errorf("Input after backspace = %q, want %q", p.Input(), "hélo")
	}

	p.HandleKey(tcell.KeyHome, 0, tcell.ModNone)
	typeString(p, ">")
	p.HandleKey(tcell.KeyEnd, 0, tcell.ModNone)
	typeString(p, "!")
	if p.Input() != ">hélo!" {
		t.Errorf("Input = %q, want %q", p.Input(), ">hélo!")
	}

	p.HandleKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if p.Input() != ">hélo!" {
		t.Errorf("ctrl+rune inserted text: %q", p.Input())
	}

	p.HandleKey(tcell.KeyCtrlU, 0, tcell.ModCtrl)
	if p.Input() != "" || p.Cursor() != 0 {
		t.Errorf("Ctrl+U left %q cursor %d", p.Input(), p.Cursor())
	}
}

func TestPrompt_Results(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		want Result
	}{
		{tcell.KeyEnter, Submitted},
		{tcell.KeyEscape, Cancelled},
		{tcell.KeyLeft, Editing},
		{tcell.KeyRune, Editing},
	}

	for _, tt := range tests {
		p := NewPrompt()
		p.Open(ModeCreateBranch, "x")
		if got := p.HandleKey(tt.key, 'a', tcell.ModNone); got != tt.want {
			t.Errorf("HandleKey(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestPrompt_OpenVariants(t *testing.T) {
	p := NewPrompt()
	p.OpenFor(ModeRename, "/tmp/a.txt", "a.txt")
	if p.Subject() != "/tmp/a.txt" || p.Input() != "a.txt" || p.Cursor() != 5 {
		t.Errorf("OpenFor: subject %q input %q cursor %d", p.Subject(), p.Input(), p.Cursor())
	}

	p.OpenSend([]string{"@a.go"})
	if p.Subject() != "" || len(p.Refs()) != 1 || !p.CanSubmitEmpty() {
		t.Errorf("OpenSend: subject %q refs %v", p.Subject(), p.Refs())
	}

	p.Close()
	if p.IsOpen() || p.Input() != "" || p.Refs() != nil {
		t.Error("Close should reset the prompt")
	}

	p.Open(ModeCommit, "")
	if p.CanSubmitEmpty() {
		t.Error("an empty commit message must not submit")
	}
}

func TestBuildSend(t *testing.T) {
	tests := []struct {
		message string
		refs    []string
		want    string
	}{
		{"", []string{"@a", "@b"}, "@a @b\n"},
		{"explain", []string{"@a"}, "explain @a\n"},
		{"review", []string{"@f.go#L3-9"}, "review @f.go#L3-9\n"},
		{"hi", nil, "hi\n"},
	}

	for _, tt := range tests {
		got := BuildSend(tt.message, tt.refs)
		if got != tt.want {
			t.Errorf("BuildSend(%q, %v) = %q, want %q", tt.message, tt.refs, got, tt.want)
		}
	}
}

func TestPrompt_SendText(t *testing.T) {
	p := NewPrompt()
	p.OpenSend(FileRefs([]string{"a.go", "b.go"}))
	if got := p.SendText(); got != "@a.go @b.go\n" {
		t.Errorf("SendText() = %q, want %q", got, "@a.go @b.go\n")
	}
	typeString(p, "  fix these ")
	if got := p.SendText(); got != "fix these @a.go @b.go\n" {
		t.Errorf("SendText() = %q, want %q", got, "fix these @a.go @b.go\n")
	}
}
