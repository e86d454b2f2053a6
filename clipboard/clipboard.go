// Package clipboard provides editor.Clipboard implementations: the system
// clipboard, an in-memory clipboard for tests and headless hosts, and an
// adapter that turns any blocking clipboard into an asynchronous one.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/iw2rmb/inputkit/editor"
)

var (
	_ editor.Clipboard      = System{}
	_ editor.Clipboard      = (*Memory)(nil)
	_ editor.AsyncClipboard = (*Deferred)(nil)
	_ editor.AsyncClipboard = (*Async)(nil)
)

// ErrUnsupported is returned when the platform has no clipboard tool.
var ErrUnsupported = errors.New("clipboard: unsupported on this platform")

// System is the OS clipboard (pbcopy, xclip, xsel, wl-clipboard or the
// Windows API, whichever the platform provides).
type System struct{}

func (System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	s, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard: read: %w", err)
	}
	return s, nil
}

func (System) WriteText(s string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("clipboard: write: %w", err)
	}
	return nil
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func NewMemory(text string) *Memory { return &Memory{text: text} }

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(s string) error {
	m.mu.Lock()
	m.text = s
	m.mu.Unlock()
	return nil
}

// Deferred is a Memory whose reads complete after Delay polls, like a
// browser or portal clipboard. A non-nil Err fails every read.
type Deferred struct {
	Memory
	Delay int
	Err   error
}

func (d *Deferred) RequestText() editor.ClipboardRead {
	text, _ := d.ReadText()
	return &deferredRead{text: text, left: d.Delay, err: d.Err}
}

type deferredRead struct {
	text string
	left int
	err  error
}

func (r *deferredRead) Poll() (string, bool, error) {
	if r.left > 0 {
		r.left--
		return "", false, nil
	}
	if r.err != nil {
		return "", true, r.err
	}
	return r.text, true, nil
}

// Async reads from a blocking clipboard on a goroutine so that a slow
// clipboard tool stalls only the pasting input, never the frame.
type Async struct {
	editor.Clipboard
}

func (a *Async) RequestText() editor.ClipboardRead {
	ch := make(chan asyncResult, 1)
	go func() {
		s, err := a.Clipboard.ReadText()
		ch <- asyncResult{text: s, err: err}
	}()
	return &asyncRead{ch: ch}
}

type asyncResult struct {
	text string
	err  error
}

type asyncRead struct {
	ch   chan asyncResult
	res  asyncResult
	done bool
}

func (r *asyncRead) Poll() (string, bool, error) {
	if !r.done {
		select {
		case r.res = <-r.ch:
			r.done = true
		default:
			return "", false, nil
		}
	}
	return r.res.text, true, r.res.err
}
