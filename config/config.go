// Package config loads input definitions from TOML or YAML files and turns
// them into editor inputs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/key"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/inputkit/editor"
	"github.com/iw2rmb/inputkit/layout"
)

// EnvLogLevel overrides File.LogLevel.
const EnvLogLevel = "INPUTKIT_LOG_LEVEL"

// File is an input definition file.
type File struct {
	LogLevel       string        `toml:"log_level" yaml:"log_level"`
	SuperAsCommand bool          `toml:"super_as_command" yaml:"super_as_command"`
	Inputs         []InputConfig `toml:"inputs" yaml:"inputs"`
}

// InputConfig defines one input.
type InputConfig struct {
	ID     uint64 `toml:"id" yaml:"id"`
	Name   string `toml:"name" yaml:"name"`
	Text   string `toml:"text" yaml:"text"`
	Prompt string `toml:"prompt" yaml:"prompt"`

	Mode          string `toml:"mode" yaml:"mode"`
	Multiline     bool   `toml:"multiline" yaml:"multiline"`
	MaxChars      int    `toml:"max_chars" yaml:"max_chars"`
	Overwrite     bool   `toml:"overwrite" yaml:"overwrite"`
	ReadOnly      bool   `toml:"read_only" yaml:"read_only"`
	Inactive      bool   `toml:"inactive" yaml:"inactive"`
	ClearOnSubmit bool   `toml:"clear_on_submit" yaml:"clear_on_submit"`

	Wrap        string  `toml:"wrap" yaml:"wrap"`
	Width       float32 `toml:"width" yaml:"width"`
	Height      float32 `toml:"height" yaml:"height"`
	LineHeight  float32 `toml:"line_height" yaml:"line_height"`
	CharWidth   float32 `toml:"char_width" yaml:"char_width"`
	TabWidth    int     `toml:"tab_width" yaml:"tab_width"`
	IndentWidth int     `toml:"indent_width" yaml:"indent_width"`
	Scroll      string  `toml:"scroll" yaml:"scroll"`

	HistoryLimit           int      `toml:"history_limit" yaml:"history_limit"`
	CoalesceWindow         Duration `toml:"coalesce_window" yaml:"coalesce_window"`
	ClipboardTimeoutCycles int      `toml:"clipboard_timeout_cycles" yaml:"clipboard_timeout_cycles"`

	// Keys replaces the chords of named bindings, e.g. undo = ["ctrl+z"].
	Keys map[string][]string `toml:"keys" yaml:"keys"`
}

// Duration is a time.Duration written as a string like "750ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads a definition file, applies environment overrides, and
// validates it. The format follows the file extension.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("config: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	f.applyEnvOverrides()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the given format (".toml", ".yaml" or ".yml").
func Parse(data []byte, format string) (*File, error) {
	f := &File{}
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if _, err := toml.Decode(string(data), f); err != nil {
			return nil, fmt.Errorf("config: decode TOML: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("config: decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported format %q", format)
	}
	return f, nil
}

func (f *File) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		f.LogLevel = v
	}
}

// Level returns the configured log level. Empty means info.
func (f *File) Level() (zerolog.Level, error) {
	if f.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(f.LogLevel))
}

// Validate returns every problem of the file joined into one error.
func (f *File) Validate() error {
	var errs []error
	if _, err := f.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log_level=%q: %w", f.LogLevel, err))
	}
	seen := make(map[uint64]bool, len(f.Inputs))
	for i, in := range f.Inputs {
		if in.ID == 0 {
			errs = append(errs, fmt.Errorf("inputs[%d].id is required", i))
		} else if seen[in.ID] {
			errs = append(errs, fmt.Errorf("inputs[%d].id=%d is duplicated", i, in.ID))
		}
		seen[in.ID] = true
		errs = append(errs, in.validate(i)...)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (c InputConfig) validate(i int) []error {
	var errs []error
	if _, err := editor.ParseMode(c.Mode); err != nil {
		errs = append(errs, fmt.Errorf("inputs[%d].mode=%q is unknown", i, c.Mode))
	}
	if _, err := layout.ParseWrapMode(c.Wrap); err != nil {
		errs = append(errs, fmt.Errorf("inputs[%d].wrap=%q is unknown", i, c.Wrap))
	}
	if _, err := parseScrollPolicy(c.Scroll); err != nil {
		errs = append(errs, fmt.Errorf("inputs[%d].scroll=%q is unknown", i, c.Scroll))
	}
	if c.Width < 0 || c.Height < 0 || c.LineHeight < 0 || c.CharWidth < 0 {
		errs = append(errs, fmt.Errorf("inputs[%d]: sizes must not be negative", i))
	}
	if c.TabWidth < 0 || c.IndentWidth < 0 {
		errs = append(errs, fmt.Errorf("inputs[%d]: tab_width and indent_width must not be negative", i))
	}
	km := editor.DefaultKeyMap()
	for name, keys := range c.Keys {
		if bindingFor(&km, name) == nil {
			errs = append(errs, fmt.Errorf("inputs[%d].keys.%s is not a binding", i, name))
		} else if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("inputs[%d].keys.%s needs at least one chord", i, name))
		}
	}
	return errs
}

// Editor converts the definition into an editor.Config.
func (c InputConfig) Editor() (editor.Config, error) {
	mode, err := editor.ParseMode(c.Mode)
	if err != nil {
		return editor.Config{}, err
	}
	wrap, err := layout.ParseWrapMode(c.Wrap)
	if err != nil {
		return editor.Config{}, err
	}
	scroll, err := parseScrollPolicy(c.Scroll)
	if err != nil {
		return editor.Config{}, err
	}
	// Multi-line inputs wrap by word unless wrap is set.
	if c.Multiline && c.Wrap == "" {
		wrap = layout.WrapWord
	}

	km := editor.DefaultKeyMap()
	for name, keys := range c.Keys {
		b := bindingFor(&km, name)
		if b == nil {
			return editor.Config{}, fmt.Errorf("config: unknown binding %q", name)
		}
		b.SetKeys(keys...)
	}

	return editor.Config{
		Text:                   c.Text,
		Mode:                   mode,
		Multiline:              c.Multiline,
		MaxChars:               c.MaxChars,
		OverwriteEnabled:       c.Overwrite,
		ReadOnly:               c.ReadOnly,
		Inactive:               c.Inactive,
		ClearOnSubmit:          c.ClearOnSubmit,
		Prompt:                 c.Prompt,
		LineHeight:             c.LineHeight,
		CharWidth:              c.CharWidth,
		TabWidth:               c.TabWidth,
		Wrap:                   wrap,
		Width:                  c.Width,
		Height:                 c.Height,
		HistoryLimit:           c.HistoryLimit,
		CoalesceWindow:         c.CoalesceWindow.Duration,
		IndentWidth:            c.IndentWidth,
		ScrollPolicy:           scroll,
		ClipboardTimeoutCycles: c.ClipboardTimeoutCycles,
		KeyMap:                 km,
	}, nil
}

func parseScrollPolicy(s string) (editor.ScrollPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manual":
		return editor.ScrollAllowManual, nil
	case "follow-cursor", "follow_cursor", "follow":
		return editor.ScrollFollowCursorOnly, nil
	}
	return editor.ScrollAllowManual, fmt.Errorf("config: unknown scroll policy %q", s)
}

// bindingFor returns the binding named name in km, or nil.
func bindingFor(km *editor.KeyMap, name string) *key.Binding {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "_")) {
	case "left":
		return &km.Left
	case "right":
		return &km.Right
	case "up":
		return &km.Up
	case "down":
		return &km.Down
	case "word_left":
		return &km.WordLeft
	case "word_right":
		return &km.WordRight
	case "line_start":
		return &km.LineStart
	case "line_end":
		return &km.LineEnd
	case "doc_start":
		return &km.DocStart
	case "doc_end":
		return &km.DocEnd
	case "page_up":
		return &km.PageUp
	case "page_down":
		return &km.PageDown
	case "backspace":
		return &km.Backspace
	case "word_backspace":
		return &km.WordBackspace
	case "delete":
		return &km.Delete
	case "word_delete":
		return &km.WordDelete
	case "enter":
		return &km.Enter
	case "submit":
		return &km.Submit
	case "indent":
		return &km.Indent
	case "unindent":
		return &km.Unindent
	case "escape":
		return &km.Escape
	case "select_all":
		return &km.SelectAll
	case "undo":
		return &km.Undo
	case "redo":
		return &km.Redo
	case "copy":
		return &km.Copy
	case "cut":
		return &km.Cut
	case "paste":
		return &km.Paste
	case "toggle_overwrite", "overwrite":
		return &km.ToggleOverwrite
	}
	return nil
}
