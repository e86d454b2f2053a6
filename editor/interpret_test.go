package editor

import (
	"testing"

	"github.com/iw2rmb/inputkit/buffer"
)

func TestInterpret_KeyChords(t *testing.T) {
	cfg := Config{Multiline: true}.normalized()
	cases := []struct {
		name string
		gs   GlobalInputState
		key  string
		want Action
	}{
		{"left", GlobalInputState{}, "left", Motion{Move: buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft}}},
		{"shift left", GlobalInputState{Shift: true}, "left", Motion{Move: buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft, Extend: true}}},
		{"ctrl shift right", GlobalInputState{Ctrl: true, Shift: true}, "Right", Motion{Move: buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight, Extend: true}}},
		{"alt left", GlobalInputState{Alt: true}, "left", Motion{Move: buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft}}},
		{"ctrl end", GlobalInputState{Ctrl: true}, "end", Motion{Move: buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd}}},
		{"page down alias", GlobalInputState{}, "pgdn", Motion{Move: buffer.Move{Unit: buffer.MovePage, Dir: buffer.DirDown}}},
		{"backspace", GlobalInputState{}, "backspace", Delete{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft}},
		{"ctrl delete", GlobalInputState{Ctrl: true}, "delete", Delete{Unit: buffer.MoveWord, Dir: buffer.DirRight}},
		{"shift delete", GlobalInputState{Shift: true}, "delete", Cut{}},
		{"shift insert", GlobalInputState{Shift: true}, "insert", Paste{FromClipboard: true}},
		{"insert", GlobalInputState{}, "insert", ToggleOverwrite{}},
		{"ctrl shift z", GlobalInputState{Ctrl: true, Shift: true}, "z", Redo{}},
		{"ctrl z caps", GlobalInputState{Ctrl: true, CapsLock: true}, "Z", Undo{}},
		{"enter", GlobalInputState{}, "return", Newline{}},
		{"shift enter", GlobalInputState{Shift: true}, "enter", Submit{}},
		{"tab", GlobalInputState{}, "tab", Indent{}},
		{"shift tab", GlobalInputState{Shift: true}, "tab", Unindent{}},
		{"esc", GlobalInputState{}, "esc", Escape{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Interpret(KeyEvent{Key: tc.key}, tc.gs, cfg, false)
			if !ok {
				t.Fatalf("no action, want %#v", tc.want)
			}
			if got != tc.want {
				t.Fatalf("action=%#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestInterpret_SingleLine(t *testing.T) {
	cfg := Config{}.normalized()

	if got, ok := Interpret(KeyEvent{Key: "enter"}, GlobalInputState{}, cfg, false); !ok || got != (Submit{}) {
		t.Fatalf("enter=%#v,%v, want Submit", got, ok)
	}
	if got, ok := Interpret(KeyEvent{Key: "tab"}, GlobalInputState{}, cfg, false); ok {
		t.Fatalf("tab=%#v, want nothing", got)
	}
	if got, ok := Interpret(TextEvent{Text: "a\nb"}, GlobalInputState{}, cfg, false); ok {
		t.Fatalf("text with newline=%#v, want nothing", got)
	}
}

func TestInterpret_Text(t *testing.T) {
	cfg := Config{}.normalized()

	got, ok := Interpret(KeyEvent{Key: "a", Text: "A"}, GlobalInputState{Shift: true}, cfg, false)
	if !ok || got != (Type{Text: "A"}) {
		t.Fatalf("shift a=%#v,%v, want Type{A}", got, ok)
	}
	if got, ok := Interpret(KeyEvent{Key: "q", Text: "q"}, GlobalInputState{Ctrl: true}, cfg, false); ok {
		t.Fatalf("ctrl q=%#v, want nothing", got)
	}
	if got, ok := Interpret(KeyEvent{Key: "a", Text: "a", Released: true}, GlobalInputState{}, cfg, false); ok {
		t.Fatalf("release=%#v, want nothing", got)
	}
	got, ok = Interpret(KeyEvent{Key: " ", Text: " "}, GlobalInputState{}, cfg, false)
	if !ok || got != (Type{Text: " "}) {
		t.Fatalf("space=%#v,%v, want Type{ }", got, ok)
	}
	got, ok = Interpret(TextEvent{Text: "x\x07y"}, GlobalInputState{}, cfg, false)
	if !ok || got != (Type{Text: "xy"}) {
		t.Fatalf("control chars=%#v,%v, want Type{xy}", got, ok)
	}
}

func TestInterpret_ModeFiltersTypedText(t *testing.T) {
	cfg := Config{Mode: ModeHex}.normalized()

	if got, ok := Interpret(TextEvent{Text: "fF0x"}, GlobalInputState{}, cfg, false); !ok || got != (Type{Text: "fF0x"}) {
		t.Fatalf("hex digits=%#v,%v, want Type", got, ok)
	}
	if got, ok := Interpret(TextEvent{Text: "g"}, GlobalInputState{}, cfg, false); ok {
		t.Fatalf("g=%#v, want nothing", got)
	}
	// Paste is sanitised when applied, not when collected.
	if got, ok := Interpret(PasteEvent{Text: "zz"}, GlobalInputState{}, cfg, false); !ok || got != (Paste{Text: "zz"}) {
		t.Fatalf("paste=%#v,%v, want Paste", got, ok)
	}
}

func TestInterpret_SuperAsCommand(t *testing.T) {
	cfg := Config{}.normalized()

	got, ok := Interpret(KeyEvent{Key: "c"}, GlobalInputState{Super: true}, cfg, true)
	if !ok || got != (Copy{}) {
		t.Fatalf("super c=%#v,%v, want Copy", got, ok)
	}
	if got, ok := Interpret(KeyEvent{Key: "c"}, GlobalInputState{Super: true}, cfg, false); ok {
		t.Fatalf("super c without command mapping=%#v, want nothing", got)
	}
	if got, ok := Interpret(TextEvent{Text: "c"}, GlobalInputState{Super: true}, cfg, true); ok {
		t.Fatalf("text while command held=%#v, want nothing", got)
	}
}

func TestInterpret_Mouse(t *testing.T) {
	cfg := Config{}.normalized()

	got, ok := Interpret(MouseEvent{Action: MousePress}, GlobalInputState{Shift: true}, cfg, false)
	if !ok || got != (Press{Clicks: 1, Extend: true}) {
		t.Fatalf("press=%#v,%v, want Press{Clicks:1 Extend:true}", got, ok)
	}
	if _, ok := Interpret(WheelEvent{}, GlobalInputState{}, cfg, false); ok {
		t.Fatalf("zero wheel produced an action")
	}
}

func TestGlobalInputState_Track(t *testing.T) {
	var gs GlobalInputState
	for _, k := range []string{"LeftShift", "ctrl", "Alt", "cmd"} {
		if !gs.track(KeyEvent{Key: k}) {
			t.Fatalf("%q not tracked as modifier", k)
		}
	}
	if !gs.Shift || !gs.Ctrl || !gs.Alt || !gs.Super {
		t.Fatalf("state=%+v, want all held", gs)
	}
	gs.track(KeyEvent{Key: "shift", Released: true})
	if gs.Shift {
		t.Fatalf("shift still held after release")
	}

	gs.track(KeyEvent{Key: "CapsLock"})
	gs.track(KeyEvent{Key: "CapsLock", Repeat: true})
	gs.track(KeyEvent{Key: "CapsLock", Released: true})
	if !gs.CapsLock {
		t.Fatalf("caps lock off, want on")
	}
	if gs.Shift {
		t.Fatalf("caps lock set shift")
	}
	if gs.track(KeyEvent{Key: "a"}) {
		t.Fatalf("letter tracked as modifier")
	}
}
