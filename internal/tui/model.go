// Package tui hosts autocomplete widgets in a bubbletea program: a text field
// per group with its dropdown rendered as a popup below it.
package tui

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordpick/pkg/completer"
	"github.com/bastiangx/wordpick/pkg/config"
	"github.com/bastiangx/wordpick/pkg/group"
	"github.com/bastiangx/wordpick/pkg/widget"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
)

// GroupsReloadedMsg carries groups reloaded from disk.
type GroupsReloadedMsg struct {
	Groups []*group.Group
}

// Model is the bubbletea model hosting one widget per group.
type Model struct {
	cfg     config.WidgetConfig
	widgets []*widget.Widget
	active  int
	input   textinput.Model
	styles  styles
	status  string

	// Committed holds the last selection per group key; nil after a clear.
	Committed map[string]*group.Item
}

// New creates the model. The first group's field starts focused.
func New(groups []*group.Group, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &Model{
		cfg:       cfg.Widget,
		input:     textinput.New(),
		styles:    defaultStyles(cfg.Widget.Width),
		Committed: make(map[string]*group.Item),
	}
	m.input.Prompt = "› "
	for _, g := range groups {
		m.widgets = append(m.widgets, widget.New(g, m.listener()))
	}
	m.focus(0)
	return m
}

func (m *Model) listener() completer.Listener {
	return completer.ListenerFuncs{
		OnSelected: func(sel group.Selection) {
			m.Committed[sel.Group.Key] = sel.Item
			if sel.Item == nil {
				m.status = fmt.Sprintf("%s: cleared", sel.Group.Key)
				return
			}
			m.status = fmt.Sprintf("%s: selected %q", sel.Group.Key, sel.Item.Title)
		},
		OnCleared: func(key string) {
			delete(m.Committed, key)
			m.status = fmt.Sprintf("%s: text cleared", key)
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Active returns the focused widget, or nil when there are no groups.
func (m *Model) Active() *widget.Widget {
	if m.active < 0 || m.active >= len(m.widgets) {
		return nil
	}
	return m.widgets[m.active]
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > m.cfg.Width {
			width = m.cfg.Width
		}
		if width > 10 {
			m.styles = defaultStyles(width)
		}
		return m, nil

	case GroupsReloadedMsg:
		m.reload(msg.Groups)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.Active()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}
	if w == nil {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = len(m.widgets) - 1
		}
		m.dispatch(completer.Event{Name: completer.EventBlur})
		m.focus((m.active + step) % len(m.widgets))
		return m, nil

	case "down":
		if !w.Dropdown.IsOpen() {
			m.dispatch(completer.Event{Name: completer.EventToggle})
			return m, nil
		}
		w.Dropdown.Next()
		return m, nil

	case "up":
		w.Dropdown.Prev()
		return m, nil

	case "enter":
		if w.Dropdown.IsOpen() && w.Dropdown.Hovered() != nil {
			w.Dropdown.PickHovered()
			m.sync()
			return m, nil
		}
		if w.Controller.Group().Completion {
			m.dispatch(completer.Event{Name: completer.EventIconClick})
		} else {
			m.dispatch(completer.Event{Name: completer.EventFieldClick})
		}
		return m, nil

	case "esc":
		if w.Dropdown.IsOpen() {
			w.Dropdown.Blur()
			m.sync()
			return m, nil
		}
		m.dispatch(completer.Event{Name: completer.EventBlur})
		return m, nil

	case "ctrl+l":
		m.dispatch(completer.Event{Name: completer.EventClear})
		return m, nil
	}

	if !w.Controller.Group().Completion {
		// picker mode has no text entry
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		if !w.Dropdown.IsOpen() {
			m.dispatch(completer.Event{Name: completer.EventFocus})
		}
		m.dispatch(completer.Event{Name: completer.EventInput, Text: after})
	}
	return m, cmd
}

func (m *Model) dispatch(ev completer.Event) {
	w := m.Active()
	if err := w.Dispatch(ev); err != nil {
		log.Errorf("Dispatch %s: %v", ev.Name, err)
	}
	m.sync()
}

// sync copies the controller's text into the text field after events that
// change it behind the field's back: selections, resets and blur recovery.
func (m *Model) sync() {
	w := m.Active()
	if w == nil {
		return
	}
	w.Outcomes.Drain()
	if text := w.Controller.Text(); m.input.Value() != text {
		m.input.SetValue(text)
		m.input.CursorEnd()
	}
}

func (m *Model) focus(i int) {
	if i < 0 || i >= len(m.widgets) {
		m.active = -1
		m.input.Blur()
		return
	}
	m.active = i
	w := m.widgets[i]
	m.input.Placeholder = w.Controller.Group().Placeholder
	m.input.SetValue(w.Controller.Text())
	m.input.CursorEnd()
	m.input.Focus()
	m.dispatch(completer.Event{Name: completer.EventFocus})
}

func (m *Model) reload(groups []*group.Group) {
	current := ""
	if w := m.Active(); w != nil {
		current = w.Key()
	}

	existing := make(map[string]*widget.Widget, len(m.widgets))
	for _, w := range m.widgets {
		existing[w.Key()] = w
	}

	m.widgets = m.widgets[:0]
	next := 0
	for i, g := range groups {
		w, ok := existing[g.Key]
		if ok {
			w.Replace(g)
		} else {
			w = widget.New(g, m.listener())
		}
		m.widgets = append(m.widgets, w)
		if g.Key == current {
			next = i
		}
	}
	m.status = fmt.Sprintf("reloaded %d groups", len(groups))
	m.focus(next)
}

func (m *Model) View() string {
	w := m.Active()
	if w == nil {
		return "no groups to complete from\n"
	}
	v := w.Controller.View()

	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	if v.Hover != "" {
		b.WriteString(m.input.Prompt + m.styles.hover.Render(v.Hover))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")

	if v.Open {
		b.WriteString(m.popup(v, w.Dropdown.Cursor()))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.styles.status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.help.Render("↑/↓ hover • enter pick/toggle • esc close • tab next field • ctrl+l clear • ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) tabs() string {
	tabs := make([]string, len(m.widgets))
	for i, w := range m.widgets {
		label := w.Key()
		if item := m.Committed[label]; item != nil {
			label += ": " + item.Title
		}
		if i == m.active {
			tabs[i] = m.styles.activeTab.Render(label)
		} else {
			tabs[i] = m.styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// popup renders the dropdown, scrolling so the cursor stays visible.
func (m *Model) popup(v completer.View, cursor int) string {
	if len(v.Items) == 0 {
		return m.styles.popup.Render(m.styles.help.Render("no matches"))
	}

	start, end := 0, len(v.Items)
	if limit := m.cfg.MaxVisible; end > limit {
		start = cursor - limit/2
		if start < 0 {
			start = 0
		}
		end = start + limit
		if end > len(v.Items) {
			end = len(v.Items)
			start = end - limit
		}
	}

	width := m.styles.popup.GetWidth() - 4
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := v.Items[i]
		title := runewidth.Truncate(item.Title, width, "…")
		row := m.highlighted(v, title)
		switch {
		case i == cursor:
			row = m.styles.cursor.Render(row)
		case v.Selected == item:
			row = m.styles.selected.Render(row)
		}
		rows = append(rows, row)
	}
	return m.styles.popup.Render(strings.Join(rows, "\n"))
}

func (m *Model) highlighted(v completer.View, title string) string {
	if !m.cfg.Highlight {
		return m.styles.item.Render(title)
	}
	var b strings.Builder
	for _, seg := range v.Segments(title) {
		if seg.Match {
			b.WriteString(m.styles.match.Render(seg.Text))
		} else {
			b.WriteString(m.styles.item.Render(seg.Text))
		}
	}
	return b.String()
}
