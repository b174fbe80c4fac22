// Package widget assembles a complete autocomplete field: a completer controller,
// its dropdown and the dispatch table, wired together the way every host needs them.
package widget

import (
	"github.com/bastiangx/wordpick/pkg/completer"
	"github.com/bastiangx/wordpick/pkg/dropdown"
	"github.com/bastiangx/wordpick/pkg/group"
)

// EventOutside is a click outside the dropdown: the panel closes itself and
// reports the close to the controller.
const EventOutside completer.EventName = "outside"

// Widget is one field bound 1:1 to a group.
type Widget struct {
	Controller *completer.Controller
	Dropdown   *dropdown.Dropdown
	Dispatcher *completer.Dispatcher
	Outcomes   *completer.Recorder
}

// New wires a widget for g. Outcomes are recorded and, when extra is not nil, forwarded to it.
func New(g *group.Group, extra completer.Listener) *Widget {
	w := &Widget{Outcomes: &completer.Recorder{}}

	var listener completer.Listener = w.Outcomes
	if extra != nil {
		listener = fanout{w.Outcomes, extra}
	}

	w.Controller = completer.New(g, listener)
	w.Dropdown = dropdown.New(w.Controller)
	w.Controller.Attach(w.Dropdown)
	w.Dispatcher = completer.NewDispatcher(w.Controller)
	w.Dispatcher.Register(EventOutside, func(completer.Event) { w.Dropdown.Blur() })
	return w
}

// Dispatch feeds a named event to the widget.
func (w *Widget) Dispatch(ev completer.Event) error {
	return w.Dispatcher.Dispatch(ev)
}

// Replace swaps the group and re-initializes the field. Pending outcomes are discarded.
func (w *Widget) Replace(g *group.Group) {
	w.Controller.Initialize(g)
	w.Outcomes.Drain()
}

// Key returns the group key.
func (w *Widget) Key() string {
	return w.Controller.Group().Key
}

type fanout []completer.Listener

func (f fanout) Selected(sel group.Selection) {
	for _, l := range f {
		l.Selected(sel)
	}
}

func (f fanout) Cleared(key string) {
	for _, l := range f {
		l.Cleared(key)
	}
}
