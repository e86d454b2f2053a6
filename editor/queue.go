package editor

import "github.com/iw2rmb/inputkit/buffer"

// Entry is one queued action for one input.
type Entry struct {
	Entity EntityID
	Action Action

	// Pending clipboard read of a paste and the cycles spent waiting on it.
	read   ClipboardRead
	waited int
}

// Queue holds a FIFO of actions per input. Enqueueing never touches a
// buffer; entries are applied by Registry.ProcessAll.
type Queue struct {
	pending map[EntityID][]Entry
}

func (q *Queue) Enqueue(id EntityID, a Action) {
	if a == nil {
		return
	}
	if q.pending == nil {
		q.pending = make(map[EntityID][]Entry)
	}
	q.pending[id] = append(q.pending[id], Entry{Entity: id, Action: a})
}

// EnqueueOp queues a raw buffer op.
func (q *Queue) EnqueueOp(id EntityID, op buffer.Op) {
	q.Enqueue(id, ApplyOp{Op: op})
}

// Len returns the number of entries waiting for id.
func (q *Queue) Len(id EntityID) int { return len(q.pending[id]) }

// Pending returns a copy of the entries waiting for id.
func (q *Queue) Pending(id EntityID) []Entry {
	return append([]Entry(nil), q.pending[id]...)
}

// Clear drops every entry queued for id.
func (q *Queue) Clear(id EntityID) { delete(q.pending, id) }

// Drain applies entries for id in FIFO order. When apply returns false the
// entry stays at the front together with everything behind it, and Drain
// reports the queue as stalled.
func (q *Queue) Drain(id EntityID, apply func(e *Entry) bool) (applied int, stalled bool) {
	entries := q.pending[id]
	for applied < len(entries) {
		if !apply(&entries[applied]) {
			stalled = true
			break
		}
		applied++
	}
	rest := entries[applied:]
	if len(rest) == 0 {
		delete(q.pending, id)
		return applied, stalled
	}
	q.pending[id] = rest
	return applied, stalled
}

func (q *Queue) entities() []EntityID {
	out := make([]EntityID, 0, len(q.pending))
	for id := range q.pending {
		out = append(out, id)
	}
	return out
}
