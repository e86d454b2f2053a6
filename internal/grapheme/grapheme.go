package grapheme

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Boundaries returns every cluster boundary of text as byte offsets,
// including 0 and len(text).
func Boundaries(text string) []int {
	out := []int{0}
	state := -1
	off := 0
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		off += len(cluster)
		out = append(out, off)
	}
	return out
}

// IsBoundary reports whether off is a cluster boundary of text.
func IsBoundary(text string, off int) bool {
	if off < 0 || off > len(text) {
		return false
	}
	if off == 0 || off == len(text) {
		return true
	}
	if !utf8.RuneStart(text[off]) {
		return false
	}
	for _, b := range Boundaries(text) {
		if b == off {
			return true
		}
		if b > off {
			return false
		}
	}
	return false
}

// Prev returns the boundary strictly before off, or 0.
func Prev(text string, off int) int {
	prev := 0
	for _, b := range Boundaries(text) {
		if b >= off {
			break
		}
		prev = b
	}
	return prev
}

// Next returns the boundary strictly after off, or len(text).
func Next(text string, off int) int {
	for _, b := range Boundaries(text) {
		if b > off {
			return b
		}
	}
	return len(text)
}

// Snap returns the smallest boundary >= off, clamped into text.
func Snap(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(text) {
		return len(text)
	}
	for _, b := range Boundaries(text) {
		if b >= off {
			return b
		}
	}
	return len(text)
}

// ClusterAt returns the cluster that starts at off, or "" at end of text.
// off must be a boundary.
func ClusterAt(text string, off int) string {
	if off < 0 || off >= len(text) {
		return ""
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[off:], -1)
	return cluster
}
