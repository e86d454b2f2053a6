package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
//
// Keys are written as chords: modifiers in the order ctrl, alt, shift, super
// followed by a lower-case key name, e.g. "ctrl+shift+z". Motion bindings are
// written without shift; holding shift turns them into selection extension.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	WordLeft, WordRight   key.Binding
	LineStart, LineEnd    key.Binding
	DocStart, DocEnd      key.Binding
	PageUp, PageDown      key.Binding

	Backspace, WordBackspace key.Binding
	Delete, WordDelete       key.Binding
	Enter                    key.Binding
	Submit                   key.Binding // multi-line submit; single-line inputs submit on Enter
	Indent, Unindent         key.Binding
	Escape                   key.Binding
	SelectAll                key.Binding

	Undo, Redo       key.Binding
	Copy, Cut, Paste key.Binding

	ToggleOverwrite key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		// Portable word movement: hosts vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("ctrl+left", "alt+left"), key.WithHelp("ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("ctrl+right", "alt+right"), key.WithHelp("ctrl+→", "word right")),

		LineStart: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		LineEnd:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "line end")),
		DocStart:  key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "start")),
		DocEnd:    key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "end")),
		PageUp:    key.NewBinding(key.WithKeys("pageup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pagedown"), key.WithHelp("pgdn", "page down")),

		Backspace:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete left")),
		WordBackspace: key.NewBinding(key.WithKeys("ctrl+backspace", "alt+backspace"), key.WithHelp("ctrl+backspace", "delete word left")),
		Delete:        key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		WordDelete:    key.NewBinding(key.WithKeys("ctrl+delete", "alt+delete"), key.WithHelp("ctrl+del", "delete word right")),
		Enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		Submit:        key.NewBinding(key.WithKeys("shift+enter"), key.WithHelp("shift+enter", "submit")),
		Indent:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		Unindent:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "unindent")),
		Escape:        key.NewBinding(key.WithKeys("escape"), key.WithHelp("esc", "clear selection")),
		SelectAll:     key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c", "ctrl+insert"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x", "shift+delete"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v", "shift+insert"), key.WithHelp("ctrl+v", "paste")),

		ToggleOverwrite: key.NewBinding(key.WithKeys("insert"), key.WithHelp("ins", "overwrite")),
	}
}

// ShortHelp returns the bindings worth showing in a one-line hint.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.SelectAll, km.Copy, km.Paste, km.Undo, km.Redo, km.ToggleOverwrite}
}

func (km KeyMap) empty() bool {
	for _, b := range []key.Binding{km.Left, km.Right, km.Enter, km.Backspace, km.Undo} {
		if len(b.Keys()) > 0 {
			return false
		}
	}
	return true
}
