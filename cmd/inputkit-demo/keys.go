package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inputkit/editor"
	"github.com/iw2rmb/inputkit/layout"
)

// keyEvents turns a terminal key message into the press and release
// sequence the editor expects. Terminals report modifiers only together with
// a key, so they are wrapped around it as separate key events.
func keyEvents(msg tea.KeyMsg) []editor.Event {
	if msg.Paste {
		return []editor.Event{editor.PasteEvent{Text: string(msg.Runes)}}
	}

	var (
		mods       []string
		name, text string
	)
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		name = string(msg.Runes)
		if msg.Type == tea.KeySpace {
			name = " "
		}
		if msg.Alt {
			mods = []string{"alt"}
		} else {
			text = name
		}
	default:
		parts := strings.Split(msg.String(), "+")
		name = parts[len(parts)-1]
		mods = parts[:len(parts)-1]
	}

	evs := make([]editor.Event, 0, 2*len(mods)+2)
	for _, mod := range mods {
		evs = append(evs, editor.KeyEvent{Key: mod})
	}
	evs = append(evs,
		editor.KeyEvent{Key: name, Text: text},
		editor.KeyEvent{Key: name, Released: true},
	)
	for i := len(mods) - 1; i >= 0; i-- {
		evs = append(evs, editor.KeyEvent{Key: mods[i], Released: true})
	}
	return evs
}

func (m *model) mouseEvents(msg tea.MouseMsg, now time.Time) []editor.Event {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		f, ok := m.frameAt(msg.X, msg.Y)
		if !ok {
			return nil
		}
		var d layout.Point
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			d.Y = -1
		case tea.MouseButtonWheelDown:
			d.Y = 1
		case tea.MouseButtonWheelLeft:
			d.X = -1
		default:
			d.X = 1
		}
		return []editor.Event{editor.WheelEvent{Entity: f.id, Delta: d}}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		f, ok := m.frameAt(msg.X, msg.Y)
		if !ok {
			m.clicks.Reset()
			return []editor.Event{editor.FocusEvent{Blur: true}}
		}
		p := f.point(msg.X, msg.Y)
		press := editor.MouseEvent{Entity: f.id, Action: editor.MousePress, Point: p, Clicks: m.clicks.Press(now, p)}
		evs := []editor.Event{editor.FocusEvent{Entity: f.id}}
		if msg.Shift {
			return append(evs, editor.KeyEvent{Key: "shift"}, press, editor.KeyEvent{Key: "shift", Released: true})
		}
		return append(evs, press)
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if f, ok := m.focusedFrame(); ok {
			return []editor.Event{editor.MouseEvent{Entity: f.id, Action: editor.MouseDrag, Point: f.point(msg.X, msg.Y)}}
		}
	case tea.MouseActionRelease:
		if f, ok := m.focusedFrame(); ok {
			return []editor.Event{editor.MouseEvent{Entity: f.id, Action: editor.MouseRelease, Point: f.point(msg.X, msg.Y)}}
		}
	}
	return nil
}
