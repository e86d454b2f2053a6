package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/inputkit/buffer"
	"github.com/iw2rmb/inputkit/internal/grapheme"
)

type editFlags uint8

const (
	// editRemap moves the selection through the op instead of placing the
	// caret after the inserted text.
	editRemap editFlags = 1 << iota
	// editProgrammatic marks host edits, which ignore ReadOnly.
	editProgrammatic
)

// edit applies one op as a single step: grammar check, apply, caret
// placement and history. Nothing changes when it fails.
func (in *Input) edit(op buffer.Op, class buffer.EditClass, flags editFlags) error {
	if in.cfg.ReadOnly && flags&editProgrammatic == 0 {
		return ErrReadOnly
	}
	if in.cfg.Mode.Numeric() {
		next, err := in.buf.Preview(op)
		if err != nil {
			return err
		}
		if !in.cfg.Mode.Accepts(next) {
			return fmt.Errorf("%w: %s %q", ErrGrammarViolation, in.cfg.Mode, next)
		}
	}

	before := in.cur.Sel
	gen := in.buf.Generation()
	applied, err := in.buf.Apply(op)
	if err != nil {
		return err
	}
	if in.buf.Generation() == gen {
		return nil
	}

	if flags&editRemap != 0 {
		in.cur.Remap(in.buf, applied)
	} else {
		start, _, ins := applied.Span()
		_ = in.cur.MoveCaret(in.buf, in.buf.Snap(start+len(ins)), false)
	}
	in.dragAnchor = in.buf.Snap(buffer.RemapOffset(in.dragAnchor, applied))
	in.hist.Record(applied, before, in.cur.Sel, class)
	in.collect()
	in.follow = true
	return nil
}

// insert replaces the selection with text, or inserts it at the caret.
func (in *Input) insert(text string, class buffer.EditClass) error {
	sel := in.cur.Sel
	if sel.Empty() {
		return in.edit(buffer.InsertText{Offset: sel.Head, Text: text}, class, 0)
	}
	return in.edit(buffer.ReplaceRange{Start: sel.Start(), End: sel.End(), Inserted: text}, class, 0)
}

func (in *Input) typeText(text string) error {
	sel := in.cur.Sel
	if in.cur.Mode != buffer.EditOverwrite || !sel.Empty() {
		return in.insert(text, buffer.EditTyping)
	}
	caret := sel.Head
	end := in.overwriteEnd(caret, grapheme.Count(text))
	if end == caret {
		// Nothing left on the line to overwrite.
		return in.edit(buffer.InsertText{Offset: caret, Text: text}, buffer.EditOverwriting, 0)
	}
	return in.edit(buffer.ReplaceRange{Start: caret, End: end, Inserted: text}, buffer.EditOverwriting, 0)
}

// overwriteEnd returns the end of up to n clusters after off, stopping at a
// line break.
func (in *Input) overwriteEnd(off, n int) int {
	text := in.buf.Text()
	for i := 0; i < n; i++ {
		c := grapheme.ClusterAt(text, off)
		if c == "" || grapheme.IsLineBreak(c) {
			break
		}
		off += len(c)
	}
	return off
}

func (in *Input) deleteUnit(unit buffer.MoveUnit, dir buffer.MoveDir) error {
	sel := in.cur.Sel
	if !sel.Empty() {
		return in.edit(buffer.DeleteRange{Start: sel.Start(), End: sel.End()}, buffer.EditOther, 0)
	}
	text := in.buf.Text()
	start, end := sel.Head, sel.Head
	switch {
	case dir == buffer.DirLeft && unit == buffer.MoveWord:
		start = grapheme.PrevWord(text, start)
	case dir == buffer.DirLeft:
		start = grapheme.Prev(text, start)
	case unit == buffer.MoveWord:
		end = grapheme.NextWord(text, end)
	default:
		end = grapheme.Next(text, end)
	}
	if start == end {
		return nil
	}
	return in.edit(buffer.DeleteRange{Start: start, End: end}, buffer.EditOther, 0)
}

func (in *Input) copySelection(clip Clipboard) error {
	sel := in.cur.Sel
	if sel.Empty() {
		return nil
	}
	if clip == nil {
		return ErrClipboardUnavailable
	}
	text, err := in.buf.Slice(sel.Start(), sel.End())
	if err != nil {
		return err
	}
	if err := clip.WriteText(text); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	return nil
}

// cutSelection copies the selection and deletes it. A read-only input only
// copies; a failed clipboard write deletes nothing.
func (in *Input) cutSelection(clip Clipboard) error {
	if err := in.copySelection(clip); err != nil || in.cfg.ReadOnly {
		return err
	}
	sel := in.cur.Sel
	if sel.Empty() {
		return nil
	}
	return in.edit(buffer.DeleteRange{Start: sel.Start(), End: sel.End()}, buffer.EditOther, 0)
}

// paste inserts sanitised text as one step. Text that breaks MaxChars or the
// grammar is rejected as a whole.
func (in *Input) paste(text string) error {
	text = in.cfg.Mode.Sanitize(text, in.cfg.Multiline)
	if text == "" {
		return nil
	}
	return in.insert(text, buffer.EditOther)
}

func (in *Input) undo() {
	if in.cfg.ReadOnly {
		return
	}
	if in.hist.Undo(in.buf, &in.cur) {
		in.afterHistory()
	}
}

func (in *Input) redo() {
	if in.cfg.ReadOnly {
		return
	}
	if in.hist.Redo(in.buf, &in.cur) {
		in.afterHistory()
	}
}

func (in *Input) afterHistory() {
	in.dragging = false
	in.collect()
	in.follow = true
}

// blockParagraphs returns the paragraphs touched by the selection. A
// paragraph that starts exactly at the end of a selection is not touched.
func (in *Input) blockParagraphs() []grapheme.Paragraph {
	sel := in.cur.Sel
	start, end := sel.Start(), sel.End()
	var out []grapheme.Paragraph
	for _, p := range grapheme.Paragraphs(in.buf.Text()) {
		if p.End < start {
			continue
		}
		if p.Start > end || (p.Start == end && end > start && len(out) > 0) {
			break
		}
		out = append(out, p)
	}
	return out
}

// leadingSpaces counts the spaces at the start of p.
func leadingSpaces(text string, p grapheme.Paragraph) int {
	n := 0
	for p.Start+n < p.End && text[p.Start+n] == ' ' {
		n++
	}
	return n
}

// indent pads every touched paragraph to the next indent stop.
func (in *Input) indent() error {
	if !in.cfg.Multiline || in.cfg.Mode.Numeric() {
		return nil
	}
	if in.cfg.ReadOnly {
		return ErrReadOnly
	}
	text := in.buf.Text()
	w := in.cfg.IndentWidth
	ps := in.blockParagraphs()
	ops := make([]buffer.Op, 0, len(ps))
	for i := len(ps) - 1; i >= 0; i-- {
		n := w - leadingSpaces(text, ps[i])%w
		ops = append(ops, buffer.InsertText{Offset: ps[i].Start, Text: strings.Repeat(" ", n)})
	}
	return in.editBlock(ops)
}

// unindent removes leading whitespace of every touched paragraph back to the
// previous indent stop. A leading tab counts as one stop.
func (in *Input) unindent() error {
	if !in.cfg.Multiline || in.cfg.Mode.Numeric() {
		return nil
	}
	if in.cfg.ReadOnly {
		return ErrReadOnly
	}
	text := in.buf.Text()
	w := in.cfg.IndentWidth
	ps := in.blockParagraphs()
	ops := make([]buffer.Op, 0, len(ps))
	for i := len(ps) - 1; i >= 0; i-- {
		p := ps[i]
		n := leadingSpaces(text, p)
		switch {
		case n > 0:
			if r := n % w; r != 0 {
				n = r
			} else {
				n = w
			}
		case p.Start < p.End && text[p.Start] == '\t':
			n = 1
		default:
			continue
		}
		ops = append(ops, buffer.DeleteRange{Start: p.Start, End: p.Start + n})
	}
	return in.editBlock(ops)
}

// editBlock applies ops atomically as one undo step and remaps the selection
// through each of them.
func (in *Input) editBlock(ops []buffer.Op) error {
	if len(ops) == 0 {
		return nil
	}
	before := in.cur.Sel
	gen := in.buf.Generation()
	applied, err := in.buf.ApplyGroup(ops)
	if err != nil {
		return err
	}
	if in.buf.Generation() == gen {
		return nil
	}
	for _, op := range applied {
		in.cur.Remap(in.buf, op)
		in.dragAnchor = in.buf.Snap(buffer.RemapOffset(in.dragAnchor, op))
	}
	in.hist.RecordGroup(applied, before, in.cur.Sel)
	in.collect()
	in.follow = true
	return nil
}

// submit reports the content and, with ClearOnSubmit, empties the input.
func (in *Input) submit() error {
	text := in.buf.Text()
	in.submits = append(in.submits, SubmitEvent{
		Entity:   in.id,
		Text:     text,
		Complete: in.cfg.Mode.Complete(text),
	})
	in.hist.Break()
	if !in.cfg.ClearOnSubmit || text == "" || in.cfg.ReadOnly {
		return nil
	}
	err := in.edit(buffer.DeleteRange{Start: 0, End: len(text)}, buffer.EditOther, 0)
	in.hist.Break()
	return err
}

func (in *Input) motion(m buffer.Move) {
	if m.Unit == buffer.MovePage {
		l := in.buf.Layout()
		d := float32(in.pageLines()) * l.LineHeight
		if m.Dir == buffer.DirUp {
			d = -d
		}
		in.scroll.Y += d
	}
	in.cur.Move(in.buf, m, in.pageLines())
	in.selectionChanged()
}

// selectionChanged ends typing coalescing and brings the caret into view.
func (in *Input) selectionChanged() {
	in.hist.Break()
	in.follow = true
}

func (in *Input) setMode(m buffer.EditMode) {
	if m == buffer.EditOverwrite && !in.cfg.OverwriteEnabled {
		m = buffer.EditInsert
	}
	if m != in.cur.Mode {
		in.hist.Break()
	}
	in.cur.SetMode(m)
}

func (in *Input) blur() {
	in.cur.Collapse()
	in.dragging = false
	in.hist.Break()
}
