package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inputkit/config"
	"github.com/iw2rmb/inputkit/editor"
)

// pollInterval drives cycles while an entity waits on the clipboard.
const pollInterval = 16 * time.Millisecond

type demoKeys struct {
	Quit, Next, Prev key.Binding
}

func defaultDemoKeys() demoKeys {
	return demoKeys{
		Quit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Next: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next")),
		Prev: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev")),
	}
}

func (k demoKeys) ShortHelp() []key.Binding { return []key.Binding{k.Quit, k.Next, k.Prev} }

type (
	pollMsg      struct{}
	configMsg    struct{ file *config.File }
	configErrMsg struct{ err error }
)

type model struct {
	r       *editor.Registry
	def     *config.File
	names   map[editor.EntityID]string
	watcher *config.Watcher

	keys    demoKeys
	help    help.Model
	clicks  editor.ClickCounter
	polling bool
	status  string
	width   int
	height  int
}

func newModel(r *editor.Registry, def *config.File) model {
	m := model{r: r, keys: defaultDemoKeys(), help: help.New()}
	m.setDefinitions(def)
	if ins := r.Inputs(); len(ins) > 0 {
		_ = r.Focus(ins[0].ID())
		r.Update()
	}
	return m
}

func (m *model) setDefinitions(def *config.File) {
	m.def = def
	m.names = make(map[editor.EntityID]string, len(def.Inputs))
	for _, in := range def.Inputs {
		m.names[editor.EntityID(in.ID)] = in.Name
	}
}

func (m model) Init() tea.Cmd { return m.waitForConfig() }

func (m model) waitForConfig() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		select {
		case f, ok := <-w.Updates():
			if !ok {
				return nil
			}
			return configMsg{file: f}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		events []editor.Event
		cmds   []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			events = append(events, m.cycleFocus(1)...)
		case key.Matches(msg, m.keys.Prev):
			events = append(events, m.cycleFocus(-1)...)
		default:
			events = keyEvents(msg)
		}
	case tea.MouseMsg:
		events = m.mouseEvents(msg, time.Now())
	case pollMsg:
		m.polling = false
	case configMsg:
		if err := config.Apply(m.r, m.def, msg.file); err != nil {
			m.status = err.Error()
		} else {
			m.status = "config reloaded"
		}
		m.setDefinitions(msg.file)
		cmds = append(cmds, m.waitForConfig())
	case configErrMsg:
		m.status = msg.err.Error()
		cmds = append(cmds, m.waitForConfig())
	}

	m.report(m.r.Update(events...))
	if !m.polling && m.waiting() {
		m.polling = true
		cmds = append(cmds, tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{} }))
	}
	return m, tea.Batch(cmds...)
}

func (m model) cycleFocus(step int) []editor.Event {
	ins := m.r.Inputs()
	if len(ins) == 0 {
		return nil
	}
	idx := -1
	if id, ok := m.r.Focused(); ok {
		for i, in := range ins {
			if in.ID() == id {
				idx = i
			}
		}
	}
	next := (idx + step + len(ins)) % len(ins)
	if idx < 0 && step < 0 {
		next = len(ins) - 1
	}
	return []editor.Event{editor.FocusEvent{Entity: ins[next].ID()}}
}

func (m model) waiting() bool {
	for _, in := range m.r.Inputs() {
		if m.r.Queue().Len(in.ID()) > 0 {
			return true
		}
	}
	return false
}

func (m *model) report(res editor.CycleResult) {
	for _, s := range res.Submits {
		state := "incomplete"
		if s.Complete {
			state = "complete"
		}
		m.status = fmt.Sprintf("%s submitted %q (%s)", m.name(s.Entity), s.Text, state)
	}
	if len(res.Submits) > 0 {
		return
	}
	for _, ch := range res.Changes {
		m.status = fmt.Sprintf("%s: generation %d, %d ops", m.name(ch.Entity), ch.Generation, len(ch.Ops))
	}
}

func (m model) name(id editor.EntityID) string {
	if n := m.names[id]; n != "" {
		return n
	}
	return fmt.Sprintf("input %d", id)
}
