package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/iw2rmb/inputkit"
	"github.com/iw2rmb/inputkit/clipboard"
	"github.com/iw2rmb/inputkit/config"
	"github.com/iw2rmb/inputkit/editor"
)

func main() {
	var (
		configPath = flag.String("config", "", "input definitions (.toml or .yaml), reloaded on change")
		logPath    = flag.String("log", "", "write logs to this file")
		plain      = flag.Bool("plain", false, "disable colors")
		memClip    = flag.Bool("memory-clipboard", false, "use an in-process clipboard")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println(inputkit.VersionTag())
		return
	}
	if err := run(*configPath, *logPath, *plain, *memClip); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(configPath, logPath string, plain, memClip bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("inputkit-demo needs a terminal")
	}
	if plain {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	def := defaultFile()
	if configPath != "" {
		f, err := config.Load(configPath)
		if err != nil {
			return err
		}
		def = f
	}

	closeLog, err := setupLogging(logPath, def)
	if err != nil {
		return err
	}
	defer closeLog()

	var clip editor.Clipboard = &clipboard.Async{Clipboard: clipboard.System{}}
	if memClip {
		clip = clipboard.NewMemory("")
	}
	r := editor.NewRegistry(editor.Options{Clipboard: clip, SuperAsCommand: def.SuperAsCommand})
	if err := config.Apply(r, nil, def); err != nil {
		return err
	}

	m := newModel(r, def)
	if configPath != "" {
		w, err := config.Watch(configPath, config.DefaultDebounce)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		m.watcher = w
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func setupLogging(path string, def *config.File) (func(), error) {
	level, err := def.Level()
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closeFn, nil
}

func defaultFile() *config.File {
	return &config.File{
		Inputs: []config.InputConfig{
			{ID: 1, Name: "name", Prompt: "your name", Width: 32, Height: 1, MaxChars: 40},
			{ID: 2, Name: "amount", Mode: "decimal", Prompt: "0.00", Width: 16, Height: 1},
			{ID: 3, Name: "color", Mode: "hex", Text: "0xff8800", Overwrite: true, Width: 16, Height: 1},
			{
				ID: 4, Name: "notes", Multiline: true, Wrap: "word", Width: 48, Height: 5,
				Text: "Multi-line input with word wrap.\n\nTab indents, shift+tab unindents,\nshift+enter submits and the wheel scrolls.",
			},
			{ID: 5, Name: "read-only", ReadOnly: true, Text: "select and copy me", Width: 32, Height: 1},
		},
	}
}
