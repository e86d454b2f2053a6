package editor

import (
	"math"

	"github.com/iw2rmb/inputkit/layout"
)

// Viewport is the visible size of an input in text units. A non-positive
// dimension is unbounded and never scrolls.
type Viewport struct {
	Width, Height float32
}

// PageLines returns how many whole lines fit in view. An unbounded viewport
// pages over the whole layout.
func PageLines(l layout.LineLayout, view Viewport) int {
	if view.Height <= 0 || l.LineHeight <= 0 {
		return max(len(l.Lines), 1)
	}
	return max(int(view.Height/l.LineHeight), 1)
}

// FollowCaret returns the scroll offset closest to scroll that shows the caret
// cluster at caret (a point in text space). Vertical scroll moves by whole
// lines; horizontal scroll moves in step increments and only when horizontal
// is set, so wrapped text never scrolls sideways.
func FollowCaret(scroll layout.Point, l layout.LineLayout, caret layout.Point, view Viewport, step float32, horizontal bool) layout.Point {
	out := layout.Point{}
	if view.Height > 0 && l.LineHeight > 0 {
		rows := PageLines(l, view)
		top := int(math.Round(float64(scroll.Y / l.LineHeight)))
		line := int(math.Round(float64(caret.Y / l.LineHeight)))
		if line < top {
			top = line
		}
		if line >= top+rows {
			top = line - rows + 1
		}
		top = clampInt(top, 0, max(len(l.Lines)-rows, 0))
		out.Y = float32(top) * l.LineHeight
	}
	if horizontal && view.Width > 0 {
		if step <= 0 {
			step = 1
		}
		x := scroll.X
		if caret.X < x {
			x = floorStep(caret.X, step)
		}
		if caret.X+step > x+view.Width {
			x = ceilStep(caret.X+step-view.Width, step)
		}
		out.X = clampFloat(x, 0, maxScrollX(l, view, step))
	}
	return out
}

// clampScroll keeps a manual scroll inside the content.
func clampScroll(scroll layout.Point, l layout.LineLayout, view Viewport, step float32, horizontal bool) layout.Point {
	out := layout.Point{}
	if view.Height > 0 && l.LineHeight > 0 {
		top := int(math.Round(float64(scroll.Y / l.LineHeight)))
		top = clampInt(top, 0, max(len(l.Lines)-PageLines(l, view), 0))
		out.Y = float32(top) * l.LineHeight
	}
	if horizontal && view.Width > 0 {
		if step <= 0 {
			step = 1
		}
		out.X = clampFloat(floorStep(scroll.X, step), 0, maxScrollX(l, view, step))
	}
	return out
}

// maxScrollX leaves room for the caret after the widest line.
func maxScrollX(l layout.LineLayout, view Viewport, step float32) float32 {
	return max(ceilStep(l.Width+step-view.Width, step), 0)
}

func floorStep(v, step float32) float32 {
	return float32(math.Floor(float64(v/step))) * step
}

func ceilStep(v, step float32) float32 {
	return float32(math.Ceil(float64(v/step))) * step
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
