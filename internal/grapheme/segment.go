package grapheme

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Word is one UAX #29 word segment. IsWord is false for runs of whitespace
// and punctuation.
type Word struct {
	Span
	IsWord bool
}

// Words splits text into word-boundary segments.
func Words(text string) []Word {
	var out []Word
	state := -1
	off := 0
	rest := text
	for len(rest) > 0 {
		var w string
		w, rest, state = uniseg.FirstWordInString(rest, state)
		out = append(out, Word{
			Span:   Span{Start: off, End: off + len(w)},
			IsWord: isWordLike(w),
		})
		off += len(w)
	}
	return out
}

func isWordLike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			return true
		}
	}
	return false
}

// WordAt returns the word segment under off. When off sits right after a
// word (at the start of a gap or at end of text) that word wins.
func WordAt(text string, off int) Span {
	ws := Words(text)
	if len(ws) == 0 {
		return Span{Start: 0, End: 0}
	}
	for i, w := range ws {
		if off < w.Start || off >= w.End {
			continue
		}
		if !w.IsWord && off == w.Start && i > 0 && ws[i-1].IsWord {
			return ws[i-1].Span
		}
		return w.Span
	}
	return ws[len(ws)-1].Span
}

// PrevWord returns the start of the word before off.
func PrevWord(text string, off int) int {
	ws := Words(text)
	for i := len(ws) - 1; i >= 0; i-- {
		w := ws[i]
		if !w.IsWord || w.Start >= off {
			continue
		}
		return w.Start
	}
	return 0
}

// NextWord returns the end of the word after off.
func NextWord(text string, off int) int {
	for _, w := range Words(text) {
		if w.IsWord && w.End > off {
			return w.End
		}
	}
	return len(text)
}

// Paragraph is a run of text terminated by a mandatory line break.
// [Start, End) excludes the break; Next is the offset after the break.
type Paragraph struct {
	Start int
	End   int
	Next  int
}

// Paragraphs splits text on mandatory (UAX #14) line breaks. A text that
// ends with a break yields a trailing empty paragraph.
func Paragraphs(text string) []Paragraph {
	var out []Paragraph
	state := -1
	off := 0
	start := 0
	rest := text
	for len(rest) > 0 {
		var seg string
		var mustBreak bool
		seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)
		off += len(seg)
		if !mustBreak {
			continue
		}
		n := trailingBreakLen(seg)
		if n == 0 {
			continue
		}
		out = append(out, Paragraph{Start: start, End: off - n, Next: off})
		start = off
	}
	return append(out, Paragraph{Start: start, End: len(text), Next: len(text)})
}

// ParagraphAt returns the paragraph containing off.
func ParagraphAt(text string, off int) Paragraph {
	ps := Paragraphs(text)
	for _, p := range ps {
		if off >= p.Start && off < p.Next {
			return p
		}
		if off == p.End {
			return p
		}
	}
	return ps[len(ps)-1]
}

// IsLineBreak reports whether cluster is a hard line break.
func IsLineBreak(cluster string) bool {
	return cluster != "" && trailingBreakLen(cluster) == len(cluster)
}

func trailingBreakLen(seg string) int {
	if strings.HasSuffix(seg, "\r\n") {
		return 2
	}
	r, n := utf8.DecodeLastRuneInString(seg)
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return n
	}
	return 0
}

// LineSegments returns UAX #14 break opportunities of text as spans. Each
// span ends at a position where a soft wrap may happen.
func LineSegments(text string) []Span {
	var out []Span
	state := -1
	off := 0
	rest := text
	for len(rest) > 0 {
		var seg string
		seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		out = append(out, Span{Start: off, End: off + len(seg)})
		off += len(seg)
	}
	return out
}
