package editor

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI: failed reads and writes turn the paste, copy,
// or cut into a no-op reported as ErrClipboardUnavailable.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// AsyncClipboard is a clipboard whose reads complete on a later cycle, as with
// browser or portal clipboards. A paste stalls its input's queue until the
// read is done.
type AsyncClipboard interface {
	Clipboard
	RequestText() ClipboardRead
}

// ClipboardRead is a pending asynchronous read, polled once per cycle.
type ClipboardRead interface {
	Poll() (text string, done bool, err error)
}
