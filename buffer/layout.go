package buffer

import "github.com/iw2rmb/inputkit/layout"

type layoutKey struct {
	generation uint64
	style      layout.Style
	maxWidth   float32
}

type layoutCache struct {
	valid  bool
	key    layoutKey
	layout layout.LineLayout
	builds uint64
}

func (b *Buffer) Style() layout.Style { return b.opt.Style }

func (b *Buffer) MaxWidth() float32 { return b.opt.MaxWidth }

// SetLayoutParams changes the layout inputs. The cache rebuilds on the next
// Layout call when they differ.
func (b *Buffer) SetLayoutParams(style layout.Style, maxWidth float32) {
	b.opt.Style = style
	b.opt.MaxWidth = maxWidth
}

func (b *Buffer) SetProvider(p layout.Provider) {
	if p == nil {
		p = layout.Cells{}
	}
	b.opt.Provider = p
	b.cache.valid = false
}

// Layout returns the layout for the current text, rebuilding it only when the
// generation, style, or max width changed since the last call.
func (b *Buffer) Layout() layout.LineLayout {
	key := layoutKey{generation: b.generation, style: b.opt.Style, maxWidth: b.opt.MaxWidth}
	if b.cache.valid && b.cache.key == key {
		return b.cache.layout
	}
	b.cache.layout = b.opt.Provider.Layout(b.text, b.opt.Style, b.opt.MaxWidth)
	b.cache.key = key
	b.cache.valid = true
	b.cache.builds++
	return b.cache.layout
}

// LayoutFresh reports whether the cached layout matches the current text.
func (b *Buffer) LayoutFresh() bool {
	return b.cache.valid && b.cache.key.generation == b.generation
}

// PointForOffset returns the caret position for off in text space.
func (b *Buffer) PointForOffset(off int) layout.Point {
	return b.opt.Provider.OffsetToPoint(b.Layout(), off)
}

// OffsetForPoint returns the boundary nearest to p in text space.
func (b *Buffer) OffsetForPoint(p layout.Point) int {
	off := b.opt.Provider.PointToOffset(b.Layout(), p)
	return b.Snap(max(0, min(off, len(b.text))))
}
