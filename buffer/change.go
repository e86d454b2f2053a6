package buffer

// Change describes the most recent effective mutation.
type Change struct {
	GenerationBefore uint64
	GenerationAfter  uint64
	Ops              []Op
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.Ops = append([]Op(nil), in.Ops...)
	return out
}

func (b *Buffer) recordChange(before uint64, ops []Op) {
	if b.generation == before {
		return
	}
	b.lastChange = Change{
		GenerationBefore: before,
		GenerationAfter:  b.generation,
		Ops:              append([]Op(nil), ops...),
	}
	b.hasLastChange = true
}
