package editor

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/inputkit/buffer"
)

type Options struct {
	Clipboard Clipboard

	// SuperAsCommand treats super (cmd) as the command modifier, as macOS
	// hosts expect.
	SuperAsCommand bool
}

// Registry owns every input of a host, the shared modifier state, focus, and
// the edit queue. It is not safe for concurrent use: hosts call it from
// their frame loop.
type Registry struct {
	opt Options

	inputs map[EntityID]*Input
	order  []EntityID

	queue  Queue
	global GlobalInputState

	focus    EntityID
	hasFocus bool
}

func NewRegistry(opt Options) *Registry {
	return &Registry{
		opt:    opt,
		inputs: make(map[EntityID]*Input),
	}
}

// SetClipboard swaps the clipboard used by later cycles.
func (r *Registry) SetClipboard(c Clipboard) { r.opt.Clipboard = c }

// Spawn creates an input. Inputs are processed in spawn order.
func (r *Registry) Spawn(id EntityID, cfg Config) (*Input, error) {
	if _, ok := r.inputs[id]; ok {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateEntity, id)
	}
	in := newInput(id, cfg)
	r.inputs[id] = in
	r.order = append(r.order, id)
	log.Debug().Uint64("entity", uint64(id)).Str("mode", in.cfg.Mode.String()).Bool("multiline", in.cfg.Multiline).Msg("input spawned")
	return in, nil
}

// Despawn drops an input with its buffer, history, and queued entries.
func (r *Registry) Despawn(id EntityID) {
	if _, ok := r.inputs[id]; !ok {
		return
	}
	delete(r.inputs, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.queue.Clear(id)
	if r.hasFocus && r.focus == id {
		r.hasFocus = false
		r.focus = 0
	}
	log.Debug().Uint64("entity", uint64(id)).Msg("input despawned")
}

func (r *Registry) Input(id EntityID) (*Input, bool) {
	in, ok := r.inputs[id]
	return in, ok
}

// Inputs returns the inputs in spawn order.
func (r *Registry) Inputs() []*Input {
	out := make([]*Input, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.inputs[id])
	}
	return out
}

func (r *Registry) Global() GlobalInputState { return r.global }

func (r *Registry) Queue() *Queue { return &r.queue }

func (r *Registry) Focused() (EntityID, bool) { return r.focus, r.hasFocus }

// Focus gives id the keyboard. The previously focused input is blurred
// after its already queued entries.
func (r *Registry) Focus(id EntityID) error {
	if _, ok := r.inputs[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	if r.hasFocus && r.focus == id {
		return nil
	}
	r.Blur()
	r.focus = id
	r.hasFocus = true
	r.queue.Enqueue(id, SetMode{Mode: r.editMode()})
	return nil
}

// Blur clears focus. The blurred input loses its selection.
func (r *Registry) Blur() {
	if !r.hasFocus {
		return
	}
	r.queue.Enqueue(r.focus, Blur{})
	r.hasFocus = false
	r.focus = 0
}

// Enqueue queues an action for id without touching its buffer.
func (r *Registry) Enqueue(id EntityID, a Action) error {
	if _, ok := r.inputs[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	r.queue.Enqueue(id, a)
	return nil
}

// EnqueueOp queues a raw op for id.
func (r *Registry) EnqueueOp(id EntityID, op buffer.Op) error {
	return r.Enqueue(id, ApplyOp{Op: op})
}

// SetText queues a replacement of the whole content of id.
func (r *Registry) SetText(id EntityID, text string) error {
	return r.Enqueue(id, SetText{Text: text})
}

// Resize changes the viewport of id. Wrapping inputs re-lay out.
func (r *Registry) Resize(id EntityID, width, height float32) error {
	in, ok := r.inputs[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	in.resize(width, height)
	return nil
}

func (r *Registry) editMode() buffer.EditMode {
	if r.global.Overwrite {
		return buffer.EditOverwrite
	}
	return buffer.EditInsert
}

// Collect runs the input collection phase for one event: it updates the
// shared modifier state, interprets the event for its target input, and
// queues the resulting action.
func (r *Registry) Collect(ev Event) {
	var target EntityID
	switch e := ev.(type) {
	case FocusEvent:
		if e.Blur {
			r.Blur()
		} else if err := r.Focus(e.Entity); err != nil {
			log.Debug().Err(err).Msg("focus ignored")
		}
		return
	case KeyEvent:
		if r.global.track(e) {
			return
		}
		if !r.hasFocus {
			return
		}
		target = r.focus
	case TextEvent, PasteEvent:
		if !r.hasFocus {
			return
		}
		target = r.focus
	case MouseEvent:
		if !r.hasFocus || e.Entity != r.focus {
			return
		}
		target = e.Entity
	case WheelEvent:
		target = e.Entity
	default:
		return
	}

	in, ok := r.inputs[target]
	if !ok || in.cfg.Inactive {
		return
	}
	a, ok := Interpret(ev, r.global, in.cfg, r.opt.SuperAsCommand)
	if !ok {
		return
	}
	if _, ok := a.(ToggleOverwrite); ok {
		r.global.Overwrite = !r.global.Overwrite
		r.queue.Enqueue(target, SetMode{Mode: r.editMode()})
		return
	}
	r.queue.Enqueue(target, a)
}

// ProcessAll drains every input's queue in spawn order. Entries of one input
// never touch another input's buffer.
func (r *Registry) ProcessAll() {
	env := applyEnv{clip: r.opt.Clipboard}
	for _, id := range r.order {
		in := r.inputs[id]
		r.queue.Drain(id, func(e *Entry) bool {
			return in.apply(e, env)
		})
	}
	for _, id := range r.queue.entities() {
		if _, ok := r.inputs[id]; !ok {
			log.Debug().Uint64("entity", uint64(id)).Int("entries", r.queue.Len(id)).Msg("dropping entries of unknown entity")
			r.queue.Clear(id)
		}
	}
}

// Relayout runs the layout phase.
func (r *Registry) Relayout() {
	for _, id := range r.order {
		r.inputs[id].relayout()
	}
}

// FollowScroll runs the scroll phase.
func (r *Registry) FollowScroll() {
	for _, id := range r.order {
		r.inputs[id].followScroll()
	}
}

// Update runs one cycle: collection, queue processing, layout, and scroll.
func (r *Registry) Update(events ...Event) CycleResult {
	for _, ev := range events {
		r.Collect(ev)
	}
	r.ProcessAll()
	r.Relayout()
	r.FollowScroll()

	var res CycleResult
	for _, id := range r.order {
		ch, submits, changed := r.inputs[id].flush()
		if changed {
			res.Changes = append(res.Changes, ch)
		}
		res.Submits = append(res.Submits, submits...)
	}
	return res
}
