package editor

import (
	"github.com/iw2rmb/inputkit/buffer"
	"github.com/iw2rmb/inputkit/layout"
)

// EntityID identifies an input inside a Registry.
type EntityID uint64

// Event is a host input event fed to Registry.Update.
type Event interface {
	isEvent()
}

// KeyEvent is a physical key press or release.
//
// Key is the key name ("a", "left", "enter", "shift", ...). Case is ignored,
// so caps lock never changes which binding matches. Modifier keys are sent as
// their own events and tracked in GlobalInputState. Text is the character the
// key produced, if any.
type KeyEvent struct {
	Key      string
	Text     string
	Released bool
	Repeat   bool
}

// TextEvent carries committed text that did not come with a key event, such
// as a host character callback.
type TextEvent struct {
	Text string
}

// PasteEvent carries text pasted by the host (bracketed paste, drag and drop).
type PasteEvent struct {
	Text string
}

type MouseAction int

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
)

// MouseEvent targets one input. Point is relative to the input's viewport
// origin. Clicks is the click count of a press (1 single, 2 double, 3 triple),
// see ClickCounter.
type MouseEvent struct {
	Entity EntityID
	Action MouseAction
	Point  layout.Point
	Clicks int
}

// WheelEvent scrolls one input by Delta lines (Y) and characters (X).
type WheelEvent struct {
	Entity EntityID
	Delta  layout.Point
}

// FocusEvent moves keyboard focus. A zero Entity with Blur set clears focus.
type FocusEvent struct {
	Entity EntityID
	Blur   bool
}

func (KeyEvent) isEvent()   {}
func (TextEvent) isEvent()  {}
func (PasteEvent) isEvent() {}
func (MouseEvent) isEvent() {}
func (WheelEvent) isEvent() {}
func (FocusEvent) isEvent() {}

// ChangeEvent reports an input whose content or selection changed during a
// cycle.
type ChangeEvent struct {
	Entity     EntityID
	Generation uint64
	Selection  buffer.Selection
	Text       string

	// Ops are the buffer ops applied during the cycle, in order.
	Ops []buffer.Op
}

// SubmitEvent reports a submit action. Complete tells whether the text is a
// finished value for the input's Mode.
type SubmitEvent struct {
	Entity   EntityID
	Text     string
	Complete bool
}

// CycleResult collects what one Registry.Update produced.
type CycleResult struct {
	Changes []ChangeEvent
	Submits []SubmitEvent
}
