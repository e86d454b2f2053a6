package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/inputkit/internal/grapheme"
)

// Cells is a monospace provider. Every cluster advances by its terminal cell
// width times CellWidth; tabs advance to the next tab stop.
type Cells struct {
	CellWidth float32
}

var _ Provider = Cells{}

func (c Cells) cellWidth() float32 {
	if c.CellWidth <= 0 {
		return 1
	}
	return c.CellWidth
}

func (c Cells) Layout(text string, style Style, maxWidth float32) LineLayout {
	lh := style.LineHeight
	if lh <= 0 {
		lh = 1
	}
	cw := c.cellWidth()

	limit := 0
	if style.Wrap != WrapNone && maxWidth > 0 {
		limit = max(int(maxWidth/cw), 1)
	}

	out := LineLayout{LineHeight: lh}
	for _, p := range grapheme.Paragraphs(text) {
		units := paragraphUnits(text, p, style.TabWidth)
		ranges := wrapRanges(units, style.Wrap, limit)
		for i, r := range ranges {
			ln := Line{Y: float32(len(out.Lines)) * lh}
			if r.start == r.end {
				ln.Start, ln.End = p.Start, p.End
			} else {
				ln.Start = units[r.start].start
				ln.End = units[r.end-1].end
				base := units[r.start].cell
				ln.Clusters = make([]Cluster, 0, r.end-r.start)
				for _, u := range units[r.start:r.end] {
					ln.Clusters = append(ln.Clusters, Cluster{
						Start:   u.start,
						End:     u.end,
						X:       float32(u.cell-base) * cw,
						Advance: float32(u.width) * cw,
					})
				}
				last := units[r.end-1]
				ln.Width = float32(last.cell+last.width-base) * cw
			}
			if i == len(ranges)-1 {
				ln.End = p.End
				ln.Next = p.Next
			} else {
				ln.Next = ln.End
				ln.Wrapped = true
			}
			out.Lines = append(out.Lines, ln)
			out.Width = max(out.Width, ln.Width)
		}
	}
	out.Height = float32(len(out.Lines)) * lh
	return out
}

func (c Cells) PointToOffset(l LineLayout, p Point) int { return l.OffsetForPoint(p) }

func (c Cells) OffsetToPoint(l LineLayout, off int) Point { return l.PointForOffset(off) }

type unit struct {
	start int
	end   int
	cell  int
	width int

	space      bool
	breakAfter bool
}

func paragraphUnits(text string, p grapheme.Paragraph, tabWidth int) []unit {
	body := text[p.Start:p.End]
	if body == "" {
		return nil
	}

	opportunities := make(map[int]bool)
	for _, seg := range grapheme.LineSegments(body) {
		opportunities[p.Start+seg.End] = true
	}

	units := make([]unit, 0, len(body))
	col := 0
	off := p.Start
	state := -1
	rest := body
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := clusterWidth(cluster, col, tabWidth)
		units = append(units, unit{
			start:      off,
			end:        off + len(cluster),
			cell:       col,
			width:      w,
			space:      grapheme.IsSpace(cluster),
			breakAfter: opportunities[off+len(cluster)],
		})
		off += len(cluster)
		col += w
	}
	return units
}

func clusterWidth(cluster string, col, tabWidth int) int {
	if cluster == "\t" {
		return tabAdvance(col, tabWidth)
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = max(uniseg.StringWidth(cluster), 0)
	}
	return w
}

func tabAdvance(col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return max(tabWidth-col%tabWidth, 1)
}
