package editor

import (
	"github.com/iw2rmb/inputkit/layout"
)

// offsetAt maps a viewport point to a text offset.
func (in *Input) offsetAt(p layout.Point) int {
	return in.buf.OffsetForPoint(in.clampToView(p).Add(in.scroll))
}

// clampToView keeps drag points outside the viewport on its edge, so a drag
// past the edge selects up to the first or last visible position.
func (in *Input) clampToView(p layout.Point) layout.Point {
	v := in.Viewport()
	if v.Width > 0 {
		p.X = clampFloat(p.X, 0, v.Width)
	}
	if v.Height > 0 {
		p.Y = clampFloat(p.Y, 0, max(v.Height-in.cfg.LineHeight, 0))
	}
	return p
}

func (in *Input) press(a Press) {
	off := in.offsetAt(a.Point)
	switch {
	case a.Clicks >= 3:
		_ = in.cur.SelectParagraphAt(in.buf, off)
		in.dragging = false
	case a.Clicks == 2:
		_ = in.cur.SelectWordAt(in.buf, off)
		in.dragging = false
	default:
		_ = in.cur.MoveCaret(in.buf, off, a.Extend)
		in.dragAnchor = in.cur.Sel.Anchor
		in.dragging = true
	}
	in.selectionChanged()
}

func (in *Input) drag(a Drag) {
	if !in.dragging {
		return
	}
	off := in.offsetAt(a.Point)
	_ = in.cur.Select(in.buf, in.dragAnchor, off)
	in.selectionChanged()
}

// wheel scrolls by whole lines and characters. The caret stays where it is
// and scroll stops following it until it moves again.
func (in *Input) wheel(delta layout.Point) {
	if in.cfg.ScrollPolicy == ScrollFollowCursorOnly {
		return
	}
	l := in.buf.Layout()
	next := in.scroll.Add(layout.Point{X: delta.X * in.cfg.CharWidth, Y: delta.Y * l.LineHeight})
	in.scroll = clampScroll(next, l, in.Viewport(), in.cfg.CharWidth, in.horizontalScroll())
	in.follow = false
}
