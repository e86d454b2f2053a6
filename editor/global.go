package editor

import "strings"

// GlobalInputState is the modifier and overwrite state shared by all inputs
// of a Registry. It is written only during input collection.
type GlobalInputState struct {
	Shift    bool
	Ctrl     bool
	Alt      bool
	Super    bool
	CapsLock bool

	// Overwrite is the Insert-key toggle.
	Overwrite bool
}

type modifier int

const (
	modNone modifier = iota
	modShift
	modCtrl
	modAlt
	modSuper
	modCapsLock
)

func modifierFor(name string) modifier {
	switch n := strings.ToLower(name); {
	case strings.Contains(n, "caps"):
		return modCapsLock
	case strings.Contains(n, "shift"):
		return modShift
	case strings.Contains(n, "ctrl"), strings.Contains(n, "control"):
		return modCtrl
	case strings.Contains(n, "alt"), strings.Contains(n, "option"):
		return modAlt
	case strings.Contains(n, "super"), strings.Contains(n, "meta"), strings.Contains(n, "cmd"), strings.Contains(n, "command"):
		return modSuper
	default:
		return modNone
	}
}

// track updates modifier state from ev and reports whether ev was a modifier
// key. Caps lock toggles on press.
func (g *GlobalInputState) track(ev KeyEvent) bool {
	if strings.Contains(ev.Key, "+") {
		return false
	}
	m := modifierFor(ev.Key)
	down := !ev.Released
	switch m {
	case modShift:
		g.Shift = down
	case modCtrl:
		g.Ctrl = down
	case modAlt:
		g.Alt = down
	case modSuper:
		g.Super = down
	case modCapsLock:
		if down && !ev.Repeat {
			g.CapsLock = !g.CapsLock
		}
	default:
		return false
	}
	return true
}

// command reports whether the platform command modifier is held.
func (g GlobalInputState) command(superAsCommand bool) bool {
	if superAsCommand {
		return g.Super
	}
	return g.Ctrl
}
