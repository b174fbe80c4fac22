package cli

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordpick/internal/utils"
	"github.com/bastiangx/wordpick/pkg/completer"
	"github.com/bastiangx/wordpick/pkg/config"
	"github.com/charmbracelet/lipgloss"
)

// Renderer formats a widget view as plain log lines.
type Renderer struct {
	cfg config.WidgetConfig

	field   lipgloss.Style
	hint    lipgloss.Style
	match   lipgloss.Style
	cursor  lipgloss.Style
	outcome lipgloss.Style
}

// NewRenderer creates a renderer with the widget options from config.
func NewRenderer(cfg config.WidgetConfig) *Renderer {
	return &Renderer{
		cfg:     cfg,
		field:   lipgloss.NewStyle().Bold(true),
		hint:    lipgloss.NewStyle().Faint(true),
		match:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Underline(true),
		cursor:  lipgloss.NewStyle().Reverse(true),
		outcome: lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	}
}

// Lines renders the field and, when open, the dropdown. cursor is the hovered index or -1.
func (r *Renderer) Lines(v completer.View, cursor int) []string {
	state := "closed"
	if v.Open {
		state = "open"
	}

	text := r.field.Render(v.Text)
	switch {
	case v.Hover != "":
		text = r.hint.Render(v.Hover)
	case v.Text == "":
		text = r.hint.Render(v.Placeholder)
	}

	lines := []string{fmt.Sprintf("[%s] %s  (%s, %d/%d)", v.GroupKey, text, state, len(v.Items), v.Total)}
	if !v.Open {
		return lines
	}

	limit := len(v.Items)
	if limit > r.cfg.MaxVisible {
		limit = r.cfg.MaxVisible
	}
	for i := 0; i < limit; i++ {
		item := v.Items[i]
		title := r.title(v, i)
		marker := "  "
		if v.Selected == item {
			marker = "✓ "
		}
		if i == cursor {
			title = r.cursor.Render(title)
		}
		lines = append(lines, fmt.Sprintf("%s%2d. %s", marker, i+1, title))
	}
	if rest := len(v.Items) - limit; rest > 0 {
		lines = append(lines, r.hint.Render(fmt.Sprintf("    … %d more", rest)))
	}
	return lines
}

// Outcome renders an emitted outcome.
func (r *Renderer) Outcome(o completer.Outcome) string {
	switch {
	case o.Kind == completer.KindCleared:
		return r.outcome.Render(fmt.Sprintf("<- cleared(%s)", o.GroupKey))
	case o.Item == nil:
		return r.outcome.Render(fmt.Sprintf("<- selected(%s, nil)", o.GroupKey))
	default:
		return r.outcome.Render(fmt.Sprintf("<- selected(%s, %q)", o.GroupKey, o.Item.Title))
	}
}

func (r *Renderer) title(v completer.View, i int) string {
	title := utils.Truncate(v.Items[i].Title, r.cfg.Width)
	if !r.cfg.Highlight || v.Highlight == "" {
		return title
	}
	var b strings.Builder
	for _, seg := range v.Segments(title) {
		if seg.Match {
			b.WriteString(r.match.Render(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
