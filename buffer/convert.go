package buffer

import "github.com/iw2rmb/inputkit/internal/grapheme"

// Pos is a 0-based (row, grapheme column) position. Rows are separated by
// hard line breaks.
type Pos struct {
	Row         int
	GraphemeCol int
}

// PosForOffset converts a byte offset into a row and grapheme column.
func (b *Buffer) PosForOffset(off int) (Pos, bool) {
	if !b.IsBoundary(off) {
		return Pos{}, false
	}
	for row, p := range grapheme.Paragraphs(b.text) {
		if off < p.Start || off > p.End {
			if off < p.Next {
				// Inside a line break sequence.
				return Pos{}, false
			}
			continue
		}
		return Pos{Row: row, GraphemeCol: grapheme.Count(b.text[p.Start:off])}, true
	}
	return Pos{}, false
}

// OffsetForPos converts a row and grapheme column into a byte offset.
// Columns past the end of the row are rejected.
func (b *Buffer) OffsetForPos(pos Pos) (int, bool) {
	ps := grapheme.Paragraphs(b.text)
	if pos.Row < 0 || pos.Row >= len(ps) || pos.GraphemeCol < 0 {
		return 0, false
	}
	p := ps[pos.Row]
	off := p.Start
	for i := 0; i < pos.GraphemeCol; i++ {
		if off >= p.End {
			return 0, false
		}
		off = grapheme.Next(b.text, off)
	}
	return off, true
}

// RowCount returns the number of hard lines.
func (b *Buffer) RowCount() int { return len(grapheme.Paragraphs(b.text)) }
