package editor

import (
	"github.com/iw2rmb/inputkit/buffer"
	"github.com/iw2rmb/inputkit/layout"
)

// Input is the state of one text input: its buffer, cursor, history and
// scroll offset. Inputs are created and owned by a Registry.
type Input struct {
	id   EntityID
	cfg  Config
	buf  *buffer.Buffer
	cur  buffer.Cursor
	hist *buffer.History

	scroll layout.Point
	follow bool // caret or content changed; re-follow at the scroll phase

	dragging   bool
	dragAnchor int

	// Reported state of the last ChangeEvent.
	reportedGen uint64
	reportedSel buffer.Selection

	// Per-cycle output.
	collectedGen uint64
	ops          []buffer.Op
	submits      []SubmitEvent
}

func newInput(id EntityID, cfg Config) *Input {
	cfg = cfg.normalized()
	buf := buffer.New(cfg.Text, buffer.Options{
		MaxChars: cfg.MaxChars,
		Provider: cfg.Provider,
		Style:    cfg.layoutStyle(),
		MaxWidth: cfg.wrapWidth(),
	})
	in := &Input{
		id:  id,
		cfg: cfg,
		buf: buf,
		hist: buffer.NewHistory(buffer.HistoryOptions{
			Limit:          cfg.HistoryLimit,
			CoalesceWindow: cfg.CoalesceWindow,
			Now:            cfg.Now,
		}),
		follow: true,
	}
	in.cur.Sel = buffer.Caret(buf.Len())
	in.reportedGen = buf.Generation()
	in.reportedSel = in.cur.Sel
	in.collectedGen = buf.Generation()
	return in
}

func (in *Input) ID() EntityID { return in.id }

// Config returns the normalised configuration.
func (in *Input) Config() Config { return in.cfg }

func (in *Input) Text() string { return in.buf.Text() }

func (in *Input) Selection() buffer.Selection { return in.cur.Sel }

func (in *Input) Caret() int { return in.cur.Caret() }

func (in *Input) Mode() buffer.EditMode { return in.cur.Mode }

// Buffer exposes the underlying buffer for reads. Mutate through the queue.
func (in *Input) Buffer() *buffer.Buffer { return in.buf }

func (in *Input) History() *buffer.History { return in.hist }

// Scroll returns the scroll offset in text space.
func (in *Input) Scroll() layout.Point { return in.scroll }

func (in *Input) Viewport() Viewport {
	return Viewport{Width: in.cfg.Width, Height: in.cfg.Height}
}

func (in *Input) Layout() layout.LineLayout { return in.buf.Layout() }

// CaretPoint returns the caret position relative to the viewport origin.
func (in *Input) CaretPoint() layout.Point {
	return in.buf.PointForOffset(in.cur.Caret()).Sub(in.scroll)
}

// ShowPrompt reports whether hosts should draw the prompt instead of text.
func (in *Input) ShowPrompt() bool {
	return in.cfg.Prompt != "" && in.buf.Len() == 0
}

// Dragging reports whether a mouse drag selection is in progress.
func (in *Input) Dragging() bool { return in.dragging }

func (in *Input) horizontalScroll() bool {
	return !in.cfg.Multiline || in.cfg.Wrap == layout.WrapNone
}

func (in *Input) pageLines() int {
	return PageLines(in.buf.Layout(), in.Viewport())
}

// resize changes the viewport. A wrapping input re-lays out at the new width.
func (in *Input) resize(width, height float32) {
	in.cfg.Width = width
	in.cfg.Height = height
	in.buf.SetLayoutParams(in.cfg.layoutStyle(), in.cfg.wrapWidth())
	in.follow = true
}

// relayout refreshes the layout cache when content or parameters changed.
func (in *Input) relayout() layout.LineLayout {
	in.buf.SetLayoutParams(in.cfg.layoutStyle(), in.cfg.wrapWidth())
	return in.buf.Layout()
}

// followScroll runs the scroll phase: scroll follows the caret only when the
// caret or content moved during the cycle.
func (in *Input) followScroll() {
	l := in.buf.Layout()
	if !in.follow {
		in.scroll = clampScroll(in.scroll, l, in.Viewport(), in.cfg.CharWidth, in.horizontalScroll())
		return
	}
	in.follow = false
	caret := in.buf.PointForOffset(in.cur.Caret())
	in.scroll = FollowCaret(in.scroll, l, caret, in.Viewport(), in.cfg.CharWidth, in.horizontalScroll())
}

// collect picks up the ops of the buffer's last change if it happened after
// the previous pick.
func (in *Input) collect() {
	ch, ok := in.buf.LastChange()
	if !ok || ch.GenerationAfter <= in.collectedGen {
		return
	}
	in.ops = append(in.ops, ch.Ops...)
	in.collectedGen = ch.GenerationAfter
}

// flush returns the change event of the cycle, if any, and resets the per
// cycle output.
func (in *Input) flush() (ChangeEvent, []SubmitEvent, bool) {
	submits := in.submits
	in.submits = nil

	gen := in.buf.Generation()
	if gen == in.reportedGen && in.cur.Sel == in.reportedSel {
		in.ops = nil
		return ChangeEvent{}, submits, false
	}
	ev := ChangeEvent{
		Entity:     in.id,
		Generation: gen,
		Selection:  in.cur.Sel,
		Text:       in.buf.Text(),
		Ops:        in.ops,
	}
	in.ops = nil
	in.reportedGen = gen
	in.reportedSel = in.cur.Sel
	return ev, submits, true
}
