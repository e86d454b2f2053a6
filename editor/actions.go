package editor

import (
	"github.com/iw2rmb/inputkit/buffer"
	"github.com/iw2rmb/inputkit/layout"
)

// Action is a resolved editing command waiting in an input's queue. Actions
// carry intent, not offsets: each one is turned into at most one buffer op
// against the buffer state at the time it is applied.
type Action interface {
	isAction()
}

// Type inserts typed text at the caret, replacing the selection. In
// overwrite mode it replaces the clusters after the caret.
type Type struct{ Text string }

// Newline inserts a line break in multi-line inputs.
type Newline struct{}

// Delete removes the selection, or one unit in Dir from the caret.
type Delete struct {
	Unit buffer.MoveUnit // MoveGrapheme or MoveWord
	Dir  buffer.MoveDir  // DirLeft or DirRight
}

// Motion moves the caret.
type Motion struct{ Move buffer.Move }

type SelectAll struct{}

// Escape collapses the selection.
type Escape struct{}

type Copy struct{}

type Cut struct{}

// Paste inserts Text, or the clipboard content when FromClipboard is set.
type Paste struct {
	Text          string
	FromClipboard bool
}

type Undo struct{}

type Redo struct{}

// Press places the caret at Point. Clicks 2 selects a word and 3 a paragraph.
type Press struct {
	Point  layout.Point
	Clicks int
	Extend bool
}

// Drag extends the selection from the press anchor to Point.
type Drag struct{ Point layout.Point }

type Release struct{}

// Scroll moves the viewport by Delta lines (Y) and characters (X).
type Scroll struct{ Delta layout.Point }

type Indent struct{}

type Unindent struct{}

type Submit struct{}

// SetText replaces the whole content.
type SetText struct{ Text string }

// ApplyOp applies a raw buffer op. The selection is remapped through it.
type ApplyOp struct{ Op buffer.Op }

// SetMode switches between insert and overwrite.
type SetMode struct{ Mode buffer.EditMode }

// Blur is queued when the input loses focus.
type Blur struct{}

// ToggleOverwrite flips the global overwrite state. It is handled during
// input collection and never reaches a queue.
type ToggleOverwrite struct{}

func (Type) isAction()            {}
func (Newline) isAction()         {}
func (Delete) isAction()          {}
func (Motion) isAction()          {}
func (SelectAll) isAction()       {}
func (Escape) isAction()          {}
func (Copy) isAction()            {}
func (Cut) isAction()             {}
func (Paste) isAction()           {}
func (Undo) isAction()            {}
func (Redo) isAction()            {}
func (Press) isAction()           {}
func (Drag) isAction()            {}
func (Release) isAction()         {}
func (Scroll) isAction()          {}
func (Indent) isAction()          {}
func (Unindent) isAction()        {}
func (Submit) isAction()          {}
func (SetText) isAction()         {}
func (ApplyOp) isAction()         {}
func (SetMode) isAction()         {}
func (Blur) isAction()            {}
func (ToggleOverwrite) isAction() {}
