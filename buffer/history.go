package buffer

import (
	"time"

	"github.com/iw2rmb/inputkit/internal/grapheme"
)

// EditClass tells History which edits may merge into one undo step.
type EditClass int

const (
	EditOther EditClass = iota
	EditTyping
	EditOverwriting
)

type HistoryOptions struct {
	Limit int // default: 1000; negative disables history

	// CoalesceWindow bounds the pause between two merged keystrokes.
	// Default: 1s; negative disables the time check.
	CoalesceWindow time.Duration

	// Now is the clock used for coalescing. Default: time.Now.
	Now func() time.Time
}

type historyStep struct {
	ops    []Op
	before Selection
	after  Selection
	class  EditClass
	at     time.Time
	sealed bool
}

// History is a bounded undo/redo stack of applied ops.
type History struct {
	undo []historyStep
	redo []historyStep
	opt  HistoryOptions
}

func NewHistory(opt HistoryOptions) *History {
	if opt.Limit == 0 {
		opt.Limit = 1000
	}
	if opt.CoalesceWindow == 0 {
		opt.CoalesceWindow = time.Second
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &History{opt: opt}
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) UndoDepth() int { return len(h.undo) }

func (h *History) RedoDepth() int { return len(h.redo) }

// Record pushes an applied op. Single-cluster typing at the end of the
// previous typing step merges into it. Any record clears the redo stack.
func (h *History) Record(op Op, before, after Selection, class EditClass) {
	if op == nil || IsNoop(op) || h.opt.Limit < 0 {
		return
	}
	h.redo = nil

	now := h.opt.Now()
	if n := len(h.undo); n > 0 && h.canMerge(&h.undo[n-1], op, class, now) {
		top := &h.undo[n-1]
		top.ops = append(top.ops, op)
		top.after = after
		top.at = now
		return
	}
	h.push(historyStep{
		ops:    []Op{op},
		before: before,
		after:  after,
		class:  class,
		at:     now,
	})
}

// RecordGroup pushes several ops as one step that never merges.
func (h *History) RecordGroup(ops []Op, before, after Selection) {
	if len(ops) == 0 || h.opt.Limit < 0 {
		return
	}
	h.redo = nil
	h.push(historyStep{
		ops:    append([]Op(nil), ops...),
		before: before,
		after:  after,
		class:  EditOther,
		at:     h.opt.Now(),
		sealed: true,
	})
}

// Break stops the next record from merging into the current top step.
func (h *History) Break() {
	if n := len(h.undo); n > 0 {
		h.undo[n-1].sealed = true
	}
}

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// TopUndo returns the ops Undo would apply next.
func (h *History) TopUndo() ([]Op, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	return InvertAll(h.undo[len(h.undo)-1].ops), true
}

// Undo reverts the top step and restores the selection it started from.
func (h *History) Undo(b *Buffer, c *Cursor) bool {
	n := len(h.undo)
	if n == 0 {
		return false
	}
	st := h.undo[n-1]
	if _, err := b.ApplyGroup(InvertAll(st.ops)); err != nil {
		return false
	}
	h.undo = h.undo[:n-1]
	st.sealed = true
	h.redo = append(h.redo, st)

	c.Sel = st.before
	c.Clamp(b)
	c.hasGoal = false
	return true
}

// Redo reapplies the most recently undone step.
func (h *History) Redo(b *Buffer, c *Cursor) bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	st := h.redo[n-1]
	if _, err := b.ApplyGroup(st.ops); err != nil {
		return false
	}
	h.redo = h.redo[:n-1]
	h.push(st)

	c.Sel = st.after
	c.Clamp(b)
	c.hasGoal = false
	return true
}

func (h *History) push(st historyStep) {
	h.undo = append(h.undo, st)
	if len(h.undo) > h.opt.Limit {
		h.undo = h.undo[len(h.undo)-h.opt.Limit:]
	}
}

func (h *History) canMerge(top *historyStep, op Op, class EditClass, now time.Time) bool {
	if top.sealed || class == EditOther || top.class != class {
		return false
	}
	if h.opt.CoalesceWindow > 0 && now.Sub(top.at) > h.opt.CoalesceWindow {
		return false
	}
	if !singleCluster(op, class) {
		return false
	}
	last := top.ops[len(top.ops)-1]
	if !singleCluster(last, top.class) {
		return false
	}
	lastStart, _, lastIns := last.Span()
	start, _, _ := op.Span()
	return start == lastStart+len(lastIns)
}

func singleCluster(op Op, class EditClass) bool {
	switch o := op.(type) {
	case InsertText:
		return grapheme.Count(o.Text) == 1
	case ReplaceRange:
		return class == EditOverwriting && grapheme.Count(o.Inserted) == 1 && grapheme.Count(o.Removed) == 1
	}
	return false
}
