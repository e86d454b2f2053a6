// Package layout turns buffer text into visual lines and maps between byte
// offsets and points in the text's own coordinate space.
//
// Coordinates originate at the top-left of the first line. X grows to the
// right and Y grows downwards; one line occupies Style.LineHeight units.
package layout

import (
	"fmt"
	"math"
	"strings"
)

// WrapMode controls how paragraphs longer than the available width are split.
//
// WrapNone keeps one paragraph per visual line. WrapWord breaks at line-break
// opportunities and falls back to cluster breaks for overlong words.
// WrapGlyph breaks between any two clusters.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapGlyph
)

func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapWord:
		return "word"
	case WrapGlyph:
		return "glyph"
	default:
		return fmt.Sprintf("WrapMode(%d)", int(m))
	}
}

// ParseWrapMode accepts the names returned by WrapMode.String. "grapheme" is
// accepted as an alias for "glyph".
func ParseWrapMode(s string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return WrapNone, nil
	case "word":
		return WrapWord, nil
	case "glyph", "grapheme":
		return WrapGlyph, nil
	}
	return WrapNone, fmt.Errorf("layout: unknown wrap mode %q", s)
}

// Point is a position in text space.
type Point struct {
	X float32
	Y float32
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Style is the part of the presentation that affects layout.
type Style struct {
	LineHeight float32
	TabWidth   int
	Wrap       WrapMode
}

// Cluster is one laid out grapheme cluster.
type Cluster struct {
	Start   int
	End     int
	X       float32
	Advance float32
}

// Line is one visual line. [Start, End) is its content; Next is where the
// following line starts. Next > End after a hard break and Next == End after
// a soft wrap or at the end of the text. Wrapped is set only for soft wraps.
type Line struct {
	Start    int
	End      int
	Next     int
	Y        float32
	Width    float32
	Wrapped  bool
	Clusters []Cluster
}

// Soft reports whether the line ends in a soft wrap.
func (l Line) Soft() bool { return l.Wrapped }

// XForOffset returns the x position of the caret at off.
func (l Line) XForOffset(off int) float32 {
	for _, c := range l.Clusters {
		if off <= c.Start {
			return c.X
		}
	}
	return l.Width
}

// OffsetForX returns the boundary closest to x on this line.
func (l Line) OffsetForX(x float32) int {
	if x <= 0 || len(l.Clusters) == 0 {
		return l.Start
	}
	for _, c := range l.Clusters {
		if x < c.X+c.Advance/2 {
			return c.Start
		}
	}
	if l.Soft() {
		return l.Clusters[len(l.Clusters)-1].Start
	}
	return l.End
}

// LineLayout is the visual layout of a whole text.
type LineLayout struct {
	Lines      []Line
	LineHeight float32
	Width      float32
	Height     float32
}

// LineAt returns the index of the line holding the caret at off. An offset
// at a soft wrap belongs to the following line.
func (l LineLayout) LineAt(off int) int {
	idx := 0
	for i, ln := range l.Lines {
		if ln.Start > off {
			break
		}
		idx = i
	}
	return idx
}

// LineAtY returns the index of the line covering y, clamped to the layout.
func (l LineLayout) LineAtY(y float32) int {
	if len(l.Lines) == 0 || l.LineHeight <= 0 {
		return 0
	}
	idx := int(math.Floor(float64(y / l.LineHeight)))
	return max(0, min(idx, len(l.Lines)-1))
}

// PointForOffset returns the top-left corner of the caret at off.
func (l LineLayout) PointForOffset(off int) Point {
	if len(l.Lines) == 0 {
		return Point{}
	}
	ln := l.Lines[l.LineAt(off)]
	return Point{X: ln.XForOffset(off), Y: ln.Y}
}

// OffsetForPoint returns the boundary closest to p.
func (l LineLayout) OffsetForPoint(p Point) int {
	if len(l.Lines) == 0 {
		return 0
	}
	return l.Lines[l.LineAtY(p.Y)].OffsetForX(p.X)
}

// Provider lays out text. Implementations must be deterministic: equal
// inputs yield equal layouts.
type Provider interface {
	Layout(text string, style Style, maxWidth float32) LineLayout
	PointToOffset(l LineLayout, p Point) int
	OffsetToPoint(l LineLayout, off int) Point
}
