package editor

import "errors"

var (
	// ErrGrammarViolation reports an edit whose result does not match the
	// input's Mode.
	ErrGrammarViolation = errors.New("editor: content violates input mode")
	// ErrClipboardUnavailable reports a failed or timed out clipboard access.
	ErrClipboardUnavailable = errors.New("editor: clipboard unavailable")
	// ErrReadOnly reports an edit against a read-only input.
	ErrReadOnly = errors.New("editor: input is read-only")

	ErrDuplicateEntity = errors.New("editor: entity already spawned")
	ErrUnknownEntity   = errors.New("editor: unknown entity")
)
