package completer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bastiangx/wordpick/pkg/group"
)

// EventName identifies a UI event a host can feed to a controller.
type EventName string

const (
	EventClick      EventName = "click"
	EventFocus      EventName = "focus"
	EventFieldClick EventName = "field_click"
	EventIconClick  EventName = "icon_click"
	EventToggle     EventName = "toggle"
	EventInput      EventName = "input"
	EventHover      EventName = "hover"
	EventPick       EventName = "pick"
	EventBlur       EventName = "blur"
	EventClear      EventName = "clear"
)

// ErrUnknownEvent is returned by Dispatch for names with no handler.
var ErrUnknownEvent = errors.New("unknown event")

// Event carries a named UI event and its arguments. Text is used by input,
// Item by hover and pick.
type Event struct {
	Name EventName
	Text string
	Item *group.Item
}

// HandlerFunc handles one named event.
type HandlerFunc func(ev Event)

// Dispatcher maps event names to controller operations so hosts can bind UI
// events without calling the controller directly.
type Dispatcher struct {
	handlers map[EventName]HandlerFunc
}

// NewDispatcher returns a dispatcher with the standard bindings for c.
func NewDispatcher(c *Controller) *Dispatcher {
	d := &Dispatcher{handlers: make(map[EventName]HandlerFunc)}
	d.Register(EventClick, func(Event) { c.RequestOpen(OriginClick) })
	d.Register(EventFocus, func(Event) { c.RequestOpen(OriginFocus) })
	d.Register(EventFieldClick, func(Event) { c.OnFieldClicked() })
	d.Register(EventIconClick, func(Event) { c.OnIconClicked() })
	d.Register(EventToggle, func(Event) { c.Toggle() })
	d.Register(EventInput, func(ev Event) { c.OnTextChanged(ev.Text) })
	d.Register(EventHover, func(ev Event) { c.OnHover(ev.Item) })
	d.Register(EventPick, func(ev Event) { c.SelectItem(ev.Item) })
	d.Register(EventBlur, func(Event) { c.Blur() })
	d.Register(EventClear, func(Event) { c.Clear() })
	return d
}

// Register binds fn to name, replacing any existing binding.
func (d *Dispatcher) Register(name EventName, fn HandlerFunc) {
	d.handlers[name] = fn
}

// Dispatch runs the handler bound to ev.Name.
func (d *Dispatcher) Dispatch(ev Event) error {
	fn, ok := d.handlers[ev.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Name)
	}
	fn(ev)
	return nil
}

// Names lists the bound event names, sorted.
func (d *Dispatcher) Names() []EventName {
	names := make([]EventName, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
