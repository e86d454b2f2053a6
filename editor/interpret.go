package editor

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/inputkit/buffer"
)

// keyChord is a key name plus the modifiers held when it was pressed. Its
// String form is what KeyMap bindings are matched against.
type keyChord struct {
	ctrl, alt, shift, super bool
	name                    string
}

func (c keyChord) String() string {
	var sb strings.Builder
	if c.ctrl {
		sb.WriteString("ctrl+")
	}
	if c.alt {
		sb.WriteString("alt+")
	}
	if c.shift {
		sb.WriteString("shift+")
	}
	if c.super {
		sb.WriteString("super+")
	}
	sb.WriteString(c.name)
	return sb.String()
}

var keyAliases = map[string]string{
	" ":         "space",
	"esc":       "escape",
	"return":    "enter",
	"del":       "delete",
	"ins":       "insert",
	"pgup":      "pageup",
	"pgdown":    "pagedown",
	"pgdn":      "pagedown",
	"page_up":   "pageup",
	"page_down": "pagedown",
	"bs":        "backspace",
}

func normalizeKeyName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" && name != "" {
		n = " "
	}
	if alias, ok := keyAliases[n]; ok {
		return alias
	}
	return n
}

func chordFor(ev KeyEvent, gs GlobalInputState, superAsCommand bool) keyChord {
	return keyChord{
		ctrl:  gs.Ctrl || (superAsCommand && gs.Super),
		alt:   gs.Alt,
		shift: gs.Shift,
		super: gs.Super && !superAsCommand,
		name:  normalizeKeyName(ev.Key),
	}
}

// Interpret resolves one event for an input into an action. It never touches
// the buffer: actions are resolved against content when they are applied.
// It reports false when the event means nothing for this input.
func Interpret(ev Event, gs GlobalInputState, cfg Config, superAsCommand bool) (Action, bool) {
	switch ev := ev.(type) {
	case KeyEvent:
		if ev.Released {
			return nil, false
		}
		return interpretKey(ev, gs, cfg, superAsCommand)
	case TextEvent:
		if gs.command(superAsCommand) {
			return nil, false
		}
		return typed(ev.Text, cfg)
	case PasteEvent:
		if ev.Text == "" {
			return nil, false
		}
		return Paste{Text: ev.Text}, true
	case MouseEvent:
		switch ev.Action {
		case MousePress:
			return Press{Point: ev.Point, Clicks: max(ev.Clicks, 1), Extend: gs.Shift}, true
		case MouseDrag:
			return Drag{Point: ev.Point}, true
		case MouseRelease:
			return Release{}, true
		}
	case WheelEvent:
		if ev.Delta.X == 0 && ev.Delta.Y == 0 {
			return nil, false
		}
		return Scroll{Delta: ev.Delta}, true
	}
	return nil, false
}

func interpretKey(ev KeyEvent, gs GlobalInputState, cfg Config, superAsCommand bool) (Action, bool) {
	c := chordFor(ev, gs, superAsCommand)
	km := cfg.KeyMap

	switch {
	case key.Matches(c, km.ToggleOverwrite):
		return ToggleOverwrite{}, true
	case key.Matches(c, km.SelectAll):
		return SelectAll{}, true
	case key.Matches(c, km.Undo):
		return Undo{}, true
	case key.Matches(c, km.Redo):
		return Redo{}, true
	case key.Matches(c, km.Copy):
		return Copy{}, true
	case key.Matches(c, km.Cut):
		return Cut{}, true
	case key.Matches(c, km.Paste):
		return Paste{FromClipboard: true}, true
	case key.Matches(c, km.Escape):
		return Escape{}, true
	case key.Matches(c, km.Submit):
		return Submit{}, true
	case key.Matches(c, km.Enter):
		if cfg.Multiline {
			return Newline{}, true
		}
		return Submit{}, true
	case key.Matches(c, km.Unindent):
		if cfg.Multiline {
			return Unindent{}, true
		}
		return nil, false
	case key.Matches(c, km.Indent):
		if cfg.Multiline {
			return Indent{}, true
		}
		return nil, false
	case key.Matches(c, km.WordBackspace):
		return Delete{Unit: buffer.MoveWord, Dir: buffer.DirLeft}, true
	case key.Matches(c, km.Backspace):
		return Delete{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft}, true
	case key.Matches(c, km.WordDelete):
		return Delete{Unit: buffer.MoveWord, Dir: buffer.DirRight}, true
	case key.Matches(c, km.Delete):
		return Delete{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight}, true
	}

	base := c
	base.shift = false
	if m, ok := motionFor(base, km); ok {
		m.Extend = c.shift
		return Motion{Move: m}, true
	}

	if ev.Text != "" && !c.ctrl && !c.super {
		return typed(ev.Text, cfg)
	}
	return nil, false
}

func motionFor(c keyChord, km KeyMap) (buffer.Move, bool) {
	switch {
	case key.Matches(c, km.WordLeft):
		return buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft}, true
	case key.Matches(c, km.WordRight):
		return buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight}, true
	case key.Matches(c, km.DocStart):
		return buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome}, true
	case key.Matches(c, km.DocEnd):
		return buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd}, true
	case key.Matches(c, km.Left):
		return buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft}, true
	case key.Matches(c, km.Right):
		return buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight}, true
	case key.Matches(c, km.Up):
		return buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp}, true
	case key.Matches(c, km.Down):
		return buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown}, true
	case key.Matches(c, km.LineStart):
		return buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome}, true
	case key.Matches(c, km.LineEnd):
		return buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd}, true
	case key.Matches(c, km.PageUp):
		return buffer.Move{Unit: buffer.MovePage, Dir: buffer.DirUp}, true
	case key.Matches(c, km.PageDown):
		return buffer.Move{Unit: buffer.MovePage, Dir: buffer.DirDown}, true
	}
	return buffer.Move{}, false
}

// typed filters typed text for the input. Characters the mode never allows
// reject the whole keystroke so that nothing is queued.
func typed(text string, cfg Config) (Action, bool) {
	text = normalizeNewlines(text)
	var sb strings.Builder
	for _, r := range text {
		if r == '\n' {
			if !cfg.Multiline || cfg.Mode.Numeric() {
				return nil, false
			}
			sb.WriteRune(r)
			continue
		}
		if unicode.IsControl(r) && r != '\t' {
			continue
		}
		if !cfg.Mode.Allows(r) {
			return nil, false
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return nil, false
	}
	return Type{Text: sb.String()}, true
}
