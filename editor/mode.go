package editor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Mode is the content grammar of an input.
type Mode int

const (
	ModePlainText Mode = iota
	ModeInteger
	ModeDecimal
	ModeHex
)

// Partial grammars accept every prefix of a valid value so that typing can
// start from an empty input. Complete grammars require at least one digit.
var (
	integerPartialRE  = regexp.MustCompile(`^[+-]?[0-9]*$`)
	decimalPartialRE  = regexp.MustCompile(`^[+-]?[0-9]*\.?[0-9]*$`)
	hexPartialRE      = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]*$`)
	integerCompleteRE = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalCompleteRE = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)$`)
	hexCompleteRE     = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]+$`)
)

func (m Mode) String() string {
	switch m {
	case ModePlainText:
		return "text"
	case ModeInteger:
		return "integer"
	case ModeDecimal:
		return "decimal"
	case ModeHex:
		return "hex"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "plain", "plaintext":
		return ModePlainText, nil
	case "integer", "int", "number":
		return ModeInteger, nil
	case "decimal", "float":
		return ModeDecimal, nil
	case "hex", "hexadecimal":
		return ModeHex, nil
	}
	return ModePlainText, fmt.Errorf("editor: unknown mode %q", s)
}

// Numeric reports whether m restricts content to a number grammar.
func (m Mode) Numeric() bool { return m != ModePlainText }

// Accepts reports whether content is a valid, possibly unfinished, value.
func (m Mode) Accepts(content string) bool {
	switch m {
	case ModeInteger:
		return integerPartialRE.MatchString(content)
	case ModeDecimal:
		return decimalPartialRE.MatchString(content)
	case ModeHex:
		return hexPartialRE.MatchString(content)
	default:
		return true
	}
}

// Complete reports whether content is a finished value. Plain text is always
// complete.
func (m Mode) Complete(content string) bool {
	switch m {
	case ModeInteger:
		return integerCompleteRE.MatchString(content)
	case ModeDecimal:
		return decimalCompleteRE.MatchString(content)
	case ModeHex:
		return hexCompleteRE.MatchString(content)
	default:
		return true
	}
}

// Allows reports whether r may appear anywhere in content of this mode.
func (m Mode) Allows(r rune) bool {
	switch m {
	case ModeInteger:
		return isDigit(r) || r == '+' || r == '-'
	case ModeDecimal:
		return isDigit(r) || r == '+' || r == '-' || r == '.'
	case ModeHex:
		return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') || r == 'x' || r == 'X'
	default:
		return r == '\n' || r == '\t' || !unicode.IsControl(r)
	}
}

// Sanitize prepares pasted text: line endings become LF, text is NFC
// normalised, single-line inputs drop line breaks, numeric modes fold
// fullwidth forms to ASCII, and characters the mode never allows are dropped.
func (m Mode) Sanitize(text string, multiline bool) string {
	text = normalizeNewlines(text)
	text = norm.NFC.String(text)
	if m.Numeric() {
		text = width.Narrow.String(text)
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r == '\n' && (!multiline || m.Numeric()) {
			continue
		}
		if !m.Allows(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
