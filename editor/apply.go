package editor

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/inputkit/buffer"
)

// applyEnv is what applying an entry may reach outside its input.
type applyEnv struct {
	clip Clipboard
}

// apply runs one queued entry. It returns false when the entry must stay
// queued, which only happens for a paste waiting on the clipboard.
func (in *Input) apply(e *Entry, env applyEnv) bool {
	if in.cfg.Inactive && isUserAction(e.Action) {
		return true
	}
	if p, ok := e.Action.(Paste); ok && p.FromClipboard {
		return in.applyClipboardPaste(e, env)
	}
	if err := in.do(e.Action, env); err != nil {
		in.reject(e.Action, err)
	}
	return true
}

func (in *Input) do(a Action, env applyEnv) error {
	switch a := a.(type) {
	case Type:
		return in.typeText(a.Text)
	case Newline:
		if !in.cfg.Multiline || in.cfg.Mode.Numeric() {
			return nil
		}
		return in.insert("\n", buffer.EditOther)
	case Delete:
		return in.deleteUnit(a.Unit, a.Dir)
	case Motion:
		in.motion(a.Move)
	case SelectAll:
		in.cur.SelectAll(in.buf)
		in.selectionChanged()
	case Escape:
		in.cur.Collapse()
		in.selectionChanged()
	case Copy:
		return in.copySelection(env.clip)
	case Cut:
		return in.cutSelection(env.clip)
	case Paste:
		return in.paste(a.Text)
	case Undo:
		in.undo()
	case Redo:
		in.redo()
	case Press:
		in.press(a)
	case Drag:
		in.drag(a)
	case Release:
		in.dragging = false
	case Scroll:
		in.wheel(a.Delta)
	case Indent:
		return in.indent()
	case Unindent:
		return in.unindent()
	case Submit:
		return in.submit()
	case SetText:
		return in.edit(buffer.ReplaceRange{Start: 0, End: in.buf.Len(), Inserted: a.Text}, buffer.EditOther, editProgrammatic)
	case ApplyOp:
		return in.edit(a.Op, buffer.EditOther, editProgrammatic|editRemap)
	case SetMode:
		in.setMode(a.Mode)
	case Blur:
		in.blur()
	case nil:
		return nil
	default:
		return fmt.Errorf("editor: unsupported action %T", a)
	}
	return nil
}

// isUserAction reports whether a comes from user input rather than the host.
func isUserAction(a Action) bool {
	switch a.(type) {
	case SetText, ApplyOp, SetMode, Blur:
		return false
	}
	return true
}

func (in *Input) reject(a Action, err error) {
	log.Debug().Uint64("entity", uint64(in.id)).Type("action", a).Err(err).Msg("action rejected")
}

func (in *Input) applyClipboardPaste(e *Entry, env applyEnv) bool {
	if in.cfg.ReadOnly {
		in.reject(e.Action, ErrReadOnly)
		return true
	}
	if e.read == nil {
		if env.clip == nil {
			in.reject(e.Action, ErrClipboardUnavailable)
			return true
		}
		ac, ok := env.clip.(AsyncClipboard)
		if !ok {
			text, err := env.clip.ReadText()
			if err != nil {
				log.Warn().Uint64("entity", uint64(in.id)).Err(err).Msg("clipboard read failed")
				return true
			}
			if err := in.paste(text); err != nil {
				in.reject(e.Action, err)
			}
			return true
		}
		if e.read = ac.RequestText(); e.read == nil {
			in.reject(e.Action, ErrClipboardUnavailable)
			return true
		}
	}

	text, done, err := e.read.Poll()
	if !done {
		e.waited++
		if e.waited > in.cfg.ClipboardTimeoutCycles {
			log.Warn().Uint64("entity", uint64(in.id)).Int("cycles", e.waited).Msg("clipboard read timed out, paste dropped")
			return true
		}
		log.Debug().Uint64("entity", uint64(in.id)).Int("cycles", e.waited).Msg("queue stalled on clipboard read")
		return false
	}
	if err != nil {
		log.Warn().Uint64("entity", uint64(in.id)).Err(err).Msg("clipboard read failed")
		return true
	}
	if err := in.paste(text); err != nil {
		in.reject(e.Action, err)
	}
	return true
}
