package editor

import (
	"time"

	"github.com/iw2rmb/inputkit/layout"
)

// Config configures one Input.
type Config struct {
	// Initial text. It is not checked against Mode or MaxChars.
	Text string

	Mode      Mode
	Multiline bool

	// MaxChars caps the content in Unicode scalar values. Zero or less means
	// unlimited.
	MaxChars int

	// OverwriteEnabled lets the global Insert-key toggle switch this input
	// into overwrite mode.
	OverwriteEnabled bool

	ReadOnly      bool
	Inactive      bool // ignores every action
	ClearOnSubmit bool

	// Prompt is shown by hosts while the content is empty.
	Prompt string

	// Layout. Width and Height are the viewport size in text units.
	LineHeight float32 // default: 1
	CharWidth  float32 // default: 1; also the horizontal scroll step
	TabWidth   int     // default: 4
	Wrap       layout.WrapMode
	Width      float32
	Height     float32
	Provider   layout.Provider // default: layout.Cells{CellWidth: CharWidth}

	HistoryLimit   int           // default: 1000
	CoalesceWindow time.Duration // default: 1s
	IndentWidth    int           // default: 4

	ScrollPolicy ScrollPolicy

	// ClipboardTimeoutCycles bounds how many cycles a paste waits for an
	// asynchronous clipboard read. Default: 120.
	ClipboardTimeoutCycles int

	KeyMap KeyMap

	// Now is the clock used for undo coalescing. Default: time.Now.
	Now func() time.Time
}

func (c Config) normalized() Config {
	if c.LineHeight <= 0 {
		c.LineHeight = 1
	}
	if c.CharWidth <= 0 {
		c.CharWidth = 1
	}
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if c.IndentWidth <= 0 {
		c.IndentWidth = 4
	}
	if c.ClipboardTimeoutCycles <= 0 {
		c.ClipboardTimeoutCycles = 120
	}
	if c.Provider == nil {
		c.Provider = layout.Cells{CellWidth: c.CharWidth}
	}
	if !c.Multiline {
		c.Wrap = layout.WrapNone
	}
	if c.KeyMap.empty() {
		c.KeyMap = DefaultKeyMap()
	}
	return c
}

func (c Config) layoutStyle() layout.Style {
	return layout.Style{LineHeight: c.LineHeight, TabWidth: c.TabWidth, Wrap: c.Wrap}
}

// wrapWidth is the max width handed to the layout provider.
func (c Config) wrapWidth() float32 {
	if !c.Multiline || c.Wrap == layout.WrapNone {
		return 0
	}
	return c.Width
}
