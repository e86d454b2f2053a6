package buffer

import "fmt"

// Op is one atomic edit. Every Op is a replacement of [Start, End) with some
// text; InsertText and DeleteRange are the degenerate cases.
type Op interface {
	// Span reports the replaced range and the text put in its place.
	Span() (start, end int, inserted string)
	// Invert returns the op that undoes this one once it has been applied.
	Invert() Op
	String() string
}

// InsertText inserts Text at Offset.
type InsertText struct {
	Offset int
	Text   string
}

// DeleteRange removes [Start, End). Removed holds the deleted text; Apply
// fills it in when empty.
type DeleteRange struct {
	Start   int
	End     int
	Removed string
}

// ReplaceRange replaces [Start, End) with Inserted. Removed holds the old
// text; Apply fills it in when empty.
type ReplaceRange struct {
	Start    int
	End      int
	Removed  string
	Inserted string
}

func (o InsertText) Span() (int, int, string) { return o.Offset, o.Offset, o.Text }

func (o InsertText) Invert() Op {
	return DeleteRange{Start: o.Offset, End: o.Offset + len(o.Text), Removed: o.Text}
}

func (o InsertText) String() string { return fmt.Sprintf("InsertText{%d, %q}", o.Offset, o.Text) }

func (o DeleteRange) Span() (int, int, string) { return o.Start, o.End, "" }

func (o DeleteRange) Invert() Op { return InsertText{Offset: o.Start, Text: o.Removed} }

func (o DeleteRange) String() string {
	return fmt.Sprintf("DeleteRange{%d, %d, %q}", o.Start, o.End, o.Removed)
}

func (o ReplaceRange) Span() (int, int, string) { return o.Start, o.End, o.Inserted }

func (o ReplaceRange) Invert() Op {
	return ReplaceRange{
		Start:    o.Start,
		End:      o.Start + len(o.Inserted),
		Removed:  o.Inserted,
		Inserted: o.Removed,
	}
}

func (o ReplaceRange) String() string {
	return fmt.Sprintf("ReplaceRange{%d, %d, %q, %q}", o.Start, o.End, o.Removed, o.Inserted)
}

// Delta is the change in text length caused by op.
func Delta(op Op) int {
	start, end, ins := op.Span()
	return len(ins) - (end - start)
}

// IsNoop reports whether op leaves any text unchanged.
func IsNoop(op Op) bool {
	start, end, ins := op.Span()
	if start == end && ins == "" {
		return true
	}
	if r, ok := op.(ReplaceRange); ok && r.Removed != "" && r.Removed == r.Inserted {
		return true
	}
	return false
}

// InvertAll returns the ops that undo ops, in the order they must apply.
func InvertAll(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		out = append(out, ops[i].Invert())
	}
	return out
}
