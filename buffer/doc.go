// Package buffer implements the text model of a single input: UTF-8 text,
// a mutation generation counter, a lazily rebuilt layout cache, the cursor
// and selection, and edit history.
//
// Offsets are byte offsets into the text and must land on grapheme cluster
// boundaries. Ranges are half-open: [Start, End).
package buffer
