// Package cli drives autocomplete widgets from stdin for debugging the completer in real-time
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/wordpick/internal/logger"
	"github.com/bastiangx/wordpick/pkg/completer"
	"github.com/bastiangx/wordpick/pkg/config"
	"github.com/bastiangx/wordpick/pkg/group"
	"github.com/bastiangx/wordpick/pkg/widget"
	"github.com/charmbracelet/log"
)

// InputHandler reads lines and turns them into widget events. Plain lines are
// typed into the field; lines starting with ':' are commands (see :help).
type InputHandler struct {
	groups  []*group.Group
	widgets map[string]*widget.Widget
	active  *widget.Widget
	render  *Renderer
	out     *log.Logger
}

// NewInputHandler creates a handler over groups writing to out.
// The first group, or cfg.CLI.DefaultGroup when present, starts active.
func NewInputHandler(groups []*group.Group, cfg *config.Config, out io.Writer) *InputHandler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := &InputHandler{
		groups:  groups,
		widgets: make(map[string]*widget.Widget, len(groups)),
		render:  NewRenderer(cfg.Widget),
		out:     logger.NewWithWriter(out, ""),
	}
	for _, g := range groups {
		h.widgets[g.Key] = widget.New(g, nil)
	}
	if w, ok := h.widgets[cfg.CLI.DefaultGroup]; ok {
		h.active = w
	} else if len(groups) > 0 {
		h.active = h.widgets[groups[0].Key]
	}
	return h
}

// Start begins the interface loop until in is exhausted.
func (h *InputHandler) Start(in io.Reader) error {
	h.out.Print("wordpick CLI [BETA]")
	if h.active == nil {
		return fmt.Errorf("no groups to complete from")
	}
	h.out.Print("type to filter, :help for commands (Ctrl+C to exit)")
	h.show()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := h.handleLine(line); err != nil {
			h.out.Errorf("%v", err)
			continue
		}
		h.show()
	}
	return scanner.Err()
}

func (h *InputHandler) handleLine(line string) error {
	if !strings.HasPrefix(line, ":") {
		return h.dispatch(completer.Event{Name: completer.EventInput, Text: line})
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "help":
		h.help()
	case "groups":
		for _, g := range h.groups {
			marker := " "
			if g.Key == h.active.Key() {
				marker = "*"
			}
			h.out.Printf("%s %-16s %3d items  completion=%t", marker, g.Key, len(g.Value), g.Completion)
		}
	case "group":
		w, ok := h.widgets[arg]
		if !ok {
			return fmt.Errorf("unknown group: %q", arg)
		}
		h.active = w
	case "titles":
		for _, title := range h.active.Controller.Group().Index().Prefixed(arg) {
			h.out.Print("  " + title)
		}
	case "input":
		return h.dispatch(completer.Event{Name: completer.EventInput, Text: arg})
	case "empty":
		return h.dispatch(completer.Event{Name: completer.EventInput})
	case "hover":
		if arg == "" {
			h.active.Dropdown.HoverNone()
			return nil
		}
		i, err := h.index(arg)
		if err != nil {
			return err
		}
		h.active.Dropdown.Hover(i)
	case "pick":
		return h.dispatchIndexed(completer.EventPick, arg)
	case "state":
	default:
		name := completer.EventName(cmd)
		switch cmd {
		case "icon":
			name = completer.EventIconClick
		case "field":
			name = completer.EventFieldClick
		}
		return h.dispatch(completer.Event{Name: name})
	}
	return nil
}

func (h *InputHandler) dispatchIndexed(name completer.EventName, arg string) error {
	i, err := h.index(arg)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return h.dispatch(completer.Event{Name: name, Item: h.active.Controller.Items()[i]})
}

// index converts a 1-based item number into an index into the listed items.
func (h *InputHandler) index(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("needs an item number: %w", err)
	}
	items := h.active.Controller.Items()
	if i < 1 || i > len(items) {
		return 0, fmt.Errorf("no item %d (%d listed)", i, len(items))
	}
	return i - 1, nil
}

func (h *InputHandler) dispatch(ev completer.Event) error {
	log.Debug("Dispatching", "group", h.active.Key(), "event", ev.Name)
	return h.active.Dispatch(ev)
}

func (h *InputHandler) show() {
	for _, line := range h.render.Lines(h.active.Controller.View(), h.active.Dropdown.Cursor()) {
		h.out.Print(line)
	}
	for _, o := range h.active.Outcomes.Drain() {
		h.out.Print(h.render.Outcome(o))
	}
}

func (h *InputHandler) help() {
	for _, line := range []string{
		"<text>          type text into the field",
		":input <text>   same, for text starting with ':'",
		":empty          clear the text by typing",
		":focus :click   focus or click the field",
		":field :icon    click the container or the dropdown icon",
		":toggle         open or close the dropdown",
		":hover [n]      hover item n, or nothing",
		":pick n         pick item n",
		":blur           leave the field",
		":outside        click outside the dropdown",
		":clear          reset the field programmatically",
		":titles [p]     list titles starting with p",
		":groups         list groups, :group <key> to switch",
		":state          show the field",
	} {
		h.out.Print("  " + line)
	}
	var names []string
	for _, name := range h.active.Dispatcher.Names() {
		names = append(names, string(name))
	}
	h.out.Print("  events: " + strings.Join(names, ", "))
}
