package editor

// ScrollPolicy controls how viewport scrolling is allowed to move relative to
// the caret.
type ScrollPolicy int

const (
	// ScrollAllowManual allows manual viewport scrolling (mouse wheel) even
	// when the caret does not move.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly keeps viewport movement caret-driven. Wheel
	// scrolling is ignored.
	ScrollFollowCursorOnly
)

func (p ScrollPolicy) String() string {
	if p == ScrollFollowCursorOnly {
		return "follow-cursor"
	}
	return "manual"
}
