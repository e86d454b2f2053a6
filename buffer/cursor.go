package buffer

import "github.com/iw2rmb/inputkit/internal/grapheme"

// EditMode selects how typed text interacts with existing text.
type EditMode int

const (
	EditInsert EditMode = iota
	EditOverwrite
)

func (m EditMode) String() string {
	if m == EditOverwrite {
		return "overwrite"
	}
	return "insert"
}

// Cursor holds the selection, the edit mode, and the preferred x position
// kept across vertical motion.
type Cursor struct {
	Sel  Selection
	Mode EditMode

	goalX   float32
	hasGoal bool
}

// Caret returns the head offset.
func (c *Cursor) Caret() int { return c.Sel.Head }

// Collapse drops the selection, keeping the caret.
func (c *Cursor) Collapse() { c.Sel = c.Sel.Collapse() }

func (c *Cursor) SetMode(m EditMode) { c.Mode = m }

// MoveCaret places the caret at to. With extend the anchor stays put.
func (c *Cursor) MoveCaret(b *Buffer, to int, extend bool) error {
	if !b.IsBoundary(to) {
		return outOfRange("caret %d (len %d)", to, b.Len())
	}
	c.place(to, extend)
	c.hasGoal = false
	return nil
}

// Select sets an explicit anchor and head.
func (c *Cursor) Select(b *Buffer, anchor, head int) error {
	if !b.IsBoundary(anchor) {
		return outOfRange("anchor %d (len %d)", anchor, b.Len())
	}
	if !b.IsBoundary(head) {
		return outOfRange("head %d (len %d)", head, b.Len())
	}
	c.Sel = Selection{Anchor: anchor, Head: head}
	c.hasGoal = false
	return nil
}

func (c *Cursor) SelectAll(b *Buffer) {
	c.Sel = Selection{Anchor: 0, Head: b.Len()}
	c.hasGoal = false
}

// SelectWordAt selects the word segment under off.
func (c *Cursor) SelectWordAt(b *Buffer, off int) error {
	if !b.IsBoundary(off) {
		return outOfRange("offset %d (len %d)", off, b.Len())
	}
	w := grapheme.WordAt(b.Text(), off)
	c.Sel = Selection{Anchor: w.Start, Head: w.End}
	c.hasGoal = false
	return nil
}

// SelectParagraphAt selects the hard line under off, without its line break.
func (c *Cursor) SelectParagraphAt(b *Buffer, off int) error {
	if !b.IsBoundary(off) {
		return outOfRange("offset %d (len %d)", off, b.Len())
	}
	p := grapheme.ParagraphAt(b.Text(), off)
	c.Sel = Selection{Anchor: p.Start, Head: p.End}
	c.hasGoal = false
	return nil
}

// Remap moves the selection through an applied op and snaps both ends back
// onto boundaries.
func (c *Cursor) Remap(b *Buffer, op Op) {
	s := c.Sel.Remap(op)
	c.Sel = Selection{Anchor: b.Snap(s.Anchor), Head: b.Snap(s.Head)}
	c.hasGoal = false
}

// Clamp forces both ends onto boundaries of the current text.
func (c *Cursor) Clamp(b *Buffer) {
	c.Sel = Selection{Anchor: b.Snap(c.Sel.Anchor), Head: b.Snap(c.Sel.Head)}
}

func (c *Cursor) place(to int, extend bool) {
	if extend {
		c.Sel.Head = to
		return
	}
	c.Sel = Caret(to)
}
