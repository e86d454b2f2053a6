package buffer

import (
	"github.com/iw2rmb/inputkit/internal/grapheme"
	"github.com/iw2rmb/inputkit/layout"
)

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine // visual line: up/down and home/end
	MovePage
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, moves the head only; if false collapses the selection
}

// Move applies a caret motion. pageLines is the number of visual lines a page
// motion crosses. It reports whether the selection changed.
func (c *Cursor) Move(b *Buffer, m Move, pageLines int) bool {
	prev := c.Sel

	// Horizontal motion without extend collapses a selection onto its edge.
	if !m.Extend && !c.Sel.Empty() && m.Unit == MoveGrapheme {
		switch m.Dir {
		case DirLeft:
			c.Sel = Caret(c.Sel.Start())
			c.hasGoal = false
			return c.Sel != prev
		case DirRight:
			c.Sel = Caret(c.Sel.End())
			c.hasGoal = false
			return c.Sel != prev
		}
	}

	vertical := m.Unit != MoveDoc && m.Unit != MoveWord && (m.Dir == DirUp || m.Dir == DirDown)
	next := c.target(b, m, pageLines)
	c.place(next, m.Extend)
	if !vertical {
		c.hasGoal = false
	}
	return c.Sel != prev
}

func (c *Cursor) target(b *Buffer, m Move, pageLines int) int {
	text := b.Text()
	head := c.Sel.Head
	switch m.Unit {
	case MoveGrapheme:
		switch m.Dir {
		case DirLeft:
			return grapheme.Prev(text, head)
		case DirRight:
			return grapheme.Next(text, head)
		case DirUp, DirDown:
			return c.vertical(b, m.Dir, 1, false)
		case DirHome, DirEnd:
			return c.lineEdge(b, m.Dir)
		}
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			return grapheme.PrevWord(text, head)
		case DirRight:
			return grapheme.NextWord(text, head)
		case DirHome, DirEnd:
			return c.lineEdge(b, m.Dir)
		}
	case MoveLine:
		switch m.Dir {
		case DirUp, DirDown:
			return c.vertical(b, m.Dir, 1, false)
		case DirHome, DirEnd:
			return c.lineEdge(b, m.Dir)
		case DirLeft:
			return grapheme.Prev(text, head)
		case DirRight:
			return grapheme.Next(text, head)
		}
	case MovePage:
		switch m.Dir {
		case DirUp, DirHome, DirLeft:
			return c.vertical(b, DirUp, max(pageLines, 1), true)
		case DirDown, DirEnd, DirRight:
			return c.vertical(b, DirDown, max(pageLines, 1), true)
		}
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirUp, DirLeft:
			return 0
		case DirEnd, DirDown, DirRight:
			return b.Len()
		}
	}
	return head
}

func (c *Cursor) lineEdge(b *Buffer, dir MoveDir) int {
	l := b.Layout()
	if len(l.Lines) == 0 {
		return c.Sel.Head
	}
	ln := l.Lines[l.LineAt(c.Sel.Head)]
	if dir == DirHome {
		return ln.Start
	}
	return ln.End
}

// vertical moves n visual lines keeping the preferred x. When the caret
// cannot move because it is on the first or last line, page motion goes to
// the text edge and line motion stays put.
func (c *Cursor) vertical(b *Buffer, dir MoveDir, n int, toEdge bool) int {
	l := b.Layout()
	if len(l.Lines) == 0 {
		return c.Sel.Head
	}
	p := b.PointForOffset(c.Sel.Head)
	if !c.hasGoal {
		c.goalX = p.X
		c.hasGoal = true
	}

	cur := l.LineAt(c.Sel.Head)
	target := cur + n
	if dir == DirUp {
		target = cur - n
	}
	target = max(0, min(target, len(l.Lines)-1))
	if target == cur {
		if !toEdge {
			return c.Sel.Head
		}
		if dir == DirUp {
			return 0
		}
		return b.Len()
	}

	ln := l.Lines[target]
	return b.OffsetForPoint(layout.Point{X: c.goalX, Y: ln.Y + l.LineHeight/2})
}
