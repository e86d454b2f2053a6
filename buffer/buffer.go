package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/inputkit/internal/grapheme"
	"github.com/iw2rmb/inputkit/layout"
)

type Options struct {
	// MaxChars caps the text length in Unicode scalar values. Zero or less
	// means unlimited.
	MaxChars int

	// Provider lays out text. Default: layout.Cells{}.
	Provider layout.Provider
	Style    layout.Style
	MaxWidth float32
}

// Buffer owns the text of one input.
type Buffer struct {
	text       string
	chars      int
	generation uint64

	opt   Options
	cache layoutCache

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.Provider == nil {
		opt.Provider = layout.Cells{}
	}
	text = strings.ToValidUTF8(text, "\uFFFD")
	return &Buffer{
		text:  text,
		chars: utf8.RuneCountInString(text),
		opt:   opt,
	}
}

func (b *Buffer) Text() string { return b.text }

// Len returns the text length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// CharCount returns the text length in Unicode scalar values.
func (b *Buffer) CharCount() int { return b.chars }

// Generation increases by one on every effective mutation.
func (b *Buffer) Generation() uint64 { return b.generation }

func (b *Buffer) MaxChars() int { return b.opt.MaxChars }

func (b *Buffer) SetMaxChars(n int) { b.opt.MaxChars = n }

// Slice returns text[start:end] after validating both offsets.
func (b *Buffer) Slice(start, end int) (string, error) {
	if err := b.checkRange(start, end); err != nil {
		return "", err
	}
	return b.text[start:end], nil
}

// IsBoundary reports whether off is a valid offset in the current text.
func (b *Buffer) IsBoundary(off int) bool { return grapheme.IsBoundary(b.text, off) }

// Snap returns the nearest boundary at or after off.
func (b *Buffer) Snap(off int) int { return grapheme.Snap(b.text, off) }

// GraphemeBoundaryBefore returns the cluster boundary before off. At 0 it
// returns 0.
func (b *Buffer) GraphemeBoundaryBefore(off int) (int, error) {
	if !b.IsBoundary(off) {
		return 0, outOfRange("offset %d (len %d)", off, len(b.text))
	}
	return grapheme.Prev(b.text, off), nil
}

// GraphemeBoundaryAfter returns the cluster boundary after off. At Len() it
// returns Len().
func (b *Buffer) GraphemeBoundaryAfter(off int) (int, error) {
	if !b.IsBoundary(off) {
		return 0, outOfRange("offset %d (len %d)", off, len(b.text))
	}
	return grapheme.Next(b.text, off), nil
}

func (b *Buffer) Insert(offset int, text string) (Op, error) {
	return b.Apply(InsertText{Offset: offset, Text: text})
}

func (b *Buffer) Delete(start, end int) (Op, error) {
	return b.Apply(DeleteRange{Start: start, End: end})
}

func (b *Buffer) Replace(start, end int, text string) (Op, error) {
	return b.Apply(ReplaceRange{Start: start, End: end, Inserted: text})
}

// Preview returns the text op would produce without applying it.
func (b *Buffer) Preview(op Op) (string, error) {
	_, next, err := b.prepare(b.text, b.chars, op)
	return next, err
}

// Apply validates and applies op. The returned op has Removed filled in and
// is suitable for history. A failed Apply leaves the buffer untouched.
func (b *Buffer) Apply(op Op) (Op, error) {
	applied, next, err := b.prepare(b.text, b.chars, op)
	if err != nil {
		return nil, err
	}
	if next == b.text {
		// Unchanged text keeps the generation so the layout cache stays valid.
		return applied, nil
	}
	before := b.generation
	b.set(next)
	b.recordChange(before, []Op{applied})
	return applied, nil
}

// ApplyGroup applies ops in order as one mutation. Each op is interpreted
// against the text left by the previous one. Either all ops apply or none.
func (b *Buffer) ApplyGroup(ops []Op) ([]Op, error) {
	text, chars := b.text, b.chars
	applied := make([]Op, 0, len(ops))
	for _, op := range ops {
		a, next, err := b.prepare(text, chars, op)
		if err != nil {
			return nil, err
		}
		applied = append(applied, a)
		text, chars = next, utf8.RuneCountInString(next)
	}
	if text == b.text {
		return applied, nil
	}
	before := b.generation
	b.set(text)
	b.recordChange(before, applied)
	return applied, nil
}

func (b *Buffer) set(text string) {
	b.text = text
	b.chars = utf8.RuneCountInString(text)
	b.generation++
}

func (b *Buffer) prepare(text string, chars int, op Op) (Op, string, error) {
	var (
		applied Op
		start   int
		end     int
		ins     string
	)
	switch o := op.(type) {
	case InsertText:
		start, end, ins = o.Offset, o.Offset, o.Text
		if err := checkRange(text, start, end); err != nil {
			return nil, "", err
		}
		applied = o
	case DeleteRange:
		start, end = o.Start, o.End
		if err := checkRange(text, start, end); err != nil {
			return nil, "", err
		}
		if o.Removed != "" && o.Removed != text[start:end] {
			return nil, "", outOfRange("stale delete %d..%d", start, end)
		}
		applied = DeleteRange{Start: start, End: end, Removed: text[start:end]}
	case ReplaceRange:
		start, end, ins = o.Start, o.End, o.Inserted
		if err := checkRange(text, start, end); err != nil {
			return nil, "", err
		}
		if o.Removed != "" && o.Removed != text[start:end] {
			return nil, "", outOfRange("stale replace %d..%d", start, end)
		}
		applied = ReplaceRange{Start: start, End: end, Removed: text[start:end], Inserted: ins}
	case nil:
		return nil, "", outOfRange("nil op")
	default:
		return nil, "", outOfRange("unsupported op %T", op)
	}
	if !utf8.ValidString(ins) {
		return nil, "", outOfRange("invalid UTF-8 in inserted text")
	}

	next := text[:start] + ins + text[end:]
	if b.opt.MaxChars > 0 {
		n := chars - utf8.RuneCountInString(text[start:end]) + utf8.RuneCountInString(ins)
		if n > b.opt.MaxChars && n > chars {
			return nil, "", ErrLimitExceeded
		}
	}
	return applied, next, nil
}

func (b *Buffer) checkRange(start, end int) error { return checkRange(b.text, start, end) }

func checkRange(text string, start, end int) error {
	if start > end {
		return outOfRange("range %d..%d is reversed", start, end)
	}
	if !grapheme.IsBoundary(text, start) {
		return outOfRange("offset %d (len %d)", start, len(text))
	}
	if end != start && !grapheme.IsBoundary(text, end) {
		return outOfRange("offset %d (len %d)", end, len(text))
	}
	return nil
}
