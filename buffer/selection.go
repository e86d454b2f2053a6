package buffer

// Selection is an anchor/head pair of offsets. Head is the caret. The
// selection is empty when both are equal.
type Selection struct {
	Anchor int
	Head   int
}

// Caret returns an empty selection at off.
func Caret(off int) Selection { return Selection{Anchor: off, Head: off} }

func (s Selection) Empty() bool { return s.Anchor == s.Head }

// Start returns the lower offset.
func (s Selection) Start() int { return min(s.Anchor, s.Head) }

// End returns the higher offset.
func (s Selection) End() int { return max(s.Anchor, s.Head) }

// Collapse returns an empty selection at the head.
func (s Selection) Collapse() Selection { return Caret(s.Head) }

// Remap moves both ends through op, which has already been applied.
//
// Offsets before the edited range stay. Offsets at or after its end shift by
// the length delta, so a caret at an insertion point ends up after the
// inserted text. Offsets inside a replaced range move to its start.
func (s Selection) Remap(op Op) Selection {
	return Selection{Anchor: RemapOffset(s.Anchor, op), Head: RemapOffset(s.Head, op)}
}

// RemapOffset moves a single offset through op.
func RemapOffset(pos int, op Op) int {
	start, end, _ := op.Span()
	switch {
	case pos < start:
		return pos
	case pos >= end:
		return pos + Delta(op)
	default:
		return start
	}
}
