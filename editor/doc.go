// Package editor turns input events into buffer edits for a set of text
// inputs.
//
// A host owns one Registry. Every frame it passes the frame's events to
// Registry.Update, which runs the cycle phases in order: input collection
// (key map matching and action queueing), queue processing against each
// input's buffer, layout, and scroll follow. The host then renders from
// Input's read accessors.
package editor
