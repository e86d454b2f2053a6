package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/inputkit"
	"github.com/iw2rmb/inputkit/buffer"
	"github.com/iw2rmb/inputkit/editor"
	"github.com/iw2rmb/inputkit/layout"
)

const (
	headerRows = 2
	// label, top border, bottom border and a blank line around each box.
	chromeRows     = 4
	defaultColumns = 40
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle     = lipgloss.NewStyle().Bold(true)
	tagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	focusBoxStyle  = boxStyle.BorderForeground(lipgloss.Color("39"))
	selStyle       = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	caretStyle     = lipgloss.NewStyle().Reverse(true)
	overwriteStyle = lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// frame is where an input's viewport sits on screen, in cells.
type frame struct {
	id   editor.EntityID
	in   *editor.Input
	x, y int
	w, h int
}

func (f frame) contains(x, y int) bool {
	return x >= f.x && x < f.x+f.w && y >= f.y && y < f.y+f.h
}

// point converts a screen cell to text units relative to the viewport.
func (f frame) point(x, y int) layout.Point {
	cfg := f.in.Config()
	return layout.Point{X: float32(x-f.x) * cfg.CharWidth, Y: float32(y-f.y) * cfg.LineHeight}
}

func frameSize(in *editor.Input) (w, h int) {
	cfg := in.Config()
	vp := in.Viewport()
	w, h = defaultColumns, 1
	if vp.Width > 0 {
		w = max(int(vp.Width/cfg.CharWidth), 1)
	}
	if vp.Height > 0 {
		h = max(int(vp.Height/cfg.LineHeight), 1)
	} else {
		h = max(len(in.Layout().Lines), 1)
	}
	return w, h
}

func (m model) frames() []frame {
	ins := m.r.Inputs()
	out := make([]frame, 0, len(ins))
	y := headerRows
	for _, in := range ins {
		w, h := frameSize(in)
		out = append(out, frame{id: in.ID(), in: in, x: 1, y: y + 2, w: w, h: h})
		y += h + chromeRows
	}
	return out
}

func (m model) frameAt(x, y int) (frame, bool) {
	for _, f := range m.frames() {
		if f.contains(x, y) {
			return f, true
		}
	}
	return frame{}, false
}

func (m model) focusedFrame() (frame, bool) {
	id, ok := m.r.Focused()
	if !ok {
		return frame{}, false
	}
	for _, f := range m.frames() {
		if f.id == id {
			return f, true
		}
	}
	return frame{}, false
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("inputkit demo " + inputkit.VersionTag()))
	sb.WriteString("\n\n")

	focused, hasFocus := m.r.Focused()
	for _, f := range m.frames() {
		isFocused := hasFocus && focused == f.id
		sb.WriteString(m.label(f.in))
		sb.WriteString("\n")
		box := boxStyle
		if isFocused {
			box = focusBoxStyle
		}
		sb.WriteString(box.Render(strings.Join(renderRows(f, isFocused), "\n")))
		sb.WriteString("\n\n")
	}

	sb.WriteString(statusStyle.Render(m.status))
	sb.WriteString("\n")
	bindings := append(m.keys.ShortHelp(), editor.DefaultKeyMap().ShortHelp()...)
	sb.WriteString(m.help.ShortHelpView(bindings))
	return sb.String()
}

func (m model) label(in *editor.Input) string {
	cfg := in.Config()
	tags := []string{cfg.Mode.String()}
	if in.Mode() == buffer.EditOverwrite {
		tags = append(tags, "ovr")
	}
	if cfg.ReadOnly {
		tags = append(tags, "read-only")
	}
	if cfg.MaxChars > 0 {
		tags = append(tags, "max "+strconv.Itoa(cfg.MaxChars))
	}
	return labelStyle.Render(m.name(in.ID())) + " " + tagStyle.Render("["+strings.Join(tags, ", ")+"]")
}

func renderRows(f frame, focused bool) []string {
	in := f.in
	cfg := in.Config()
	rows := make([]string, f.h)

	if in.ShowPrompt() {
		var sb strings.Builder
		col := 0
		if focused {
			sb.WriteString(caretStyle.Render(" "))
			col++
		}
		prompt := truncate(cfg.Prompt, f.w-col)
		sb.WriteString(promptStyle.Render(prompt))
		col += uniseg.StringWidth(prompt)
		sb.WriteString(strings.Repeat(" ", max(f.w-col, 0)))
		rows[0] = sb.String()
		for i := 1; i < f.h; i++ {
			rows[i] = strings.Repeat(" ", f.w)
		}
		return rows
	}

	l := in.Layout()
	text := in.Text()
	caret := in.Caret()
	caretLine := l.LineAt(caret)
	first := int(in.Scroll().Y / l.LineHeight)
	for i := range rows {
		idx := first + i
		if idx < 0 || idx >= len(l.Lines) {
			rows[i] = strings.Repeat(" ", f.w)
			continue
		}
		rows[i] = renderLine(text, l.Lines[idx], f, in, focused && idx == caretLine, caret)
	}
	return rows
}

func renderLine(text string, ln layout.Line, f frame, in *editor.Input, withCaret bool, caret int) string {
	cfg := f.in.Config()
	scrollX := in.Scroll().X
	sel := in.Selection()
	cs := caretStyle
	if in.Mode() == buffer.EditOverwrite {
		cs = overwriteStyle
	}

	var sb strings.Builder
	col := 0
	drawn := false
	for _, c := range ln.Clusters {
		start := int((c.X - scrollX) / cfg.CharWidth)
		width := int(c.Advance / cfg.CharWidth)
		if start < 0 {
			continue
		}
		if start+width > f.w {
			break
		}
		sb.WriteString(strings.Repeat(" ", max(start-col, 0)))
		s := text[c.Start:c.End]
		if s == "\t" {
			s = strings.Repeat(" ", width)
		}
		switch {
		case withCaret && c.Start == caret:
			sb.WriteString(cs.Render(s))
			drawn = true
		case !sel.Empty() && c.Start >= sel.Start() && c.End <= sel.End():
			sb.WriteString(selStyle.Render(s))
		default:
			sb.WriteString(s)
		}
		col = start + width
	}
	if withCaret && !drawn {
		if cx := int((ln.XForOffset(caret) - scrollX) / cfg.CharWidth); cx >= col && cx < f.w {
			sb.WriteString(strings.Repeat(" ", cx-col))
			sb.WriteString(cs.Render(" "))
			col = cx + 1
		}
	}
	sb.WriteString(strings.Repeat(" ", max(f.w-col, 0)))
	return sb.String()
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	var sb strings.Builder
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cw := g.Width()
		if col+cw > w {
			break
		}
		sb.WriteString(g.Str())
		col += cw
	}
	return sb.String()
}
