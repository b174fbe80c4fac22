// Package completer implements the state machine behind an autocomplete field:
// free-text filtering, dropdown visibility, hover tracking, selection commits
// and blur recovery.
//
// A Controller is driven synchronously by its host, one event at a time. It owns
// the field's view-state and talks to the dropdown panel through DropdownHandle;
// the panel reports back through the DropdownListener methods the Controller implements.
//
//	ctrl := completer.New(g, listener)
//	dd := dropdown.New(ctrl)
//	ctrl.Attach(dd)
//	ctrl.OnTextChanged("ap")
package completer

import (
	"github.com/bastiangx/wordpick/pkg/group"
	"github.com/charmbracelet/log"
)

// Origin tells RequestOpen what asked for the dropdown.
type Origin int

const (
	OriginFocus Origin = iota
	OriginClick
)

// Controller owns the view-state of one autocomplete field.
type Controller struct {
	group    *group.Group
	dropdown DropdownHandle
	listener Listener

	text      string
	items     []*group.Item
	highlight string
	selected  *group.Item
	hover     string

	// suppressClosed is raised while the controller closes the dropdown itself,
	// so the panel's own closed notification does not trigger blur recovery.
	suppressClosed bool
}

// New creates a controller for g with no dropdown attached. listener may be nil.
func New(g *group.Group, listener Listener) *Controller {
	if listener == nil {
		listener = ListenerFuncs{}
	}
	c := &Controller{
		dropdown: &detachedDropdown{},
		listener: listener,
	}
	c.Initialize(g)
	return c
}

// Attach wires the dropdown panel. A nil handle detaches it.
func (c *Controller) Attach(d DropdownHandle) {
	if d == nil {
		d = &detachedDropdown{}
	}
	c.dropdown = d
	c.render()
}

// Initialize resets the field to an unfiltered, closed widget over g.
// Hosts call it again whenever the group is replaced.
func (c *Controller) Initialize(g *group.Group) {
	if g == nil {
		g = &group.Group{}
	}
	c.group = g
	c.text = ""
	c.highlight = ""
	c.selected = nil
	c.hover = ""
	c.closeDropdown(true)
	c.refilter()
	log.Debug("Completer initialized", "group", g.Key, "items", len(g.Value))
}

// RequestOpen opens the dropdown on focus or click. With completion off only a click opens it.
func (c *Controller) RequestOpen(origin Origin) {
	if !c.group.Completion && origin != OriginClick {
		return
	}
	c.dropdown.Open()
	c.hover = ""
}

// Toggle closes an open dropdown and opens a closed one.
// Closing this way is a user gesture and never runs blur recovery.
func (c *Controller) Toggle() {
	if c.dropdown.IsOpen() {
		c.closeDropdown(true)
		c.hover = ""
		return
	}
	c.dropdown.Open()
	c.hover = ""
}

// OnFieldClicked handles a click on the field container. It only toggles when
// completion is off and the field acts as a picker.
func (c *Controller) OnFieldClicked() {
	if !c.group.Completion {
		c.Toggle()
	}
}

// OnIconClicked handles a click on the dropdown icon. It only toggles when completion is on.
func (c *Controller) OnIconClicked() {
	if c.group.Completion {
		c.Toggle()
	}
}

// OnTextChanged applies new input text. Empty text drops the selection and emits
// Cleared on every call; the host should treat repeats as idempotent.
func (c *Controller) OnTextChanged(text string) {
	c.text = text
	c.highlight = text

	cleared := false
	switch {
	case text == "":
		c.selected = nil
		cleared = true
	case c.selected != nil && c.selected.Title != text:
		c.selected = nil
	}

	c.refilter()
	log.Debug("Completer text changed", "group", c.group.Key, "text", text, "matches", len(c.items))

	if cleared {
		c.listener.Cleared(c.group.Key)
	}
}

// SelectItem commits item: the text becomes its title, the dropdown closes
// and Selected is emitted exactly once. A nil item is ignored.
func (c *Controller) SelectItem(item *group.Item) {
	if item == nil {
		return
	}

	c.text = item.Title
	c.highlight = ""
	c.hover = ""
	c.closeDropdown(true)
	c.selected = item
	c.refilter()

	log.Debug("Completer item selected", "group", c.group.Key, "title", item.Title)
	c.listener.Selected(group.Selection{Group: c.group, Item: item})
}

// OnDropdownClosedByBlur resets the field when its text matches no item title,
// so it never shows free text that is neither a selection nor empty.
func (c *Controller) OnDropdownClosedByBlur() {
	if c.group.HasTitle(c.text) {
		return
	}
	log.Debug("Completer blur recovery", "group", c.group.Key, "text", c.text)
	c.OnTextChanged("")
}

// OnItemHovered sets the hover placeholder to the item's title, or clears it for nil.
// Hovers that arrive while the panel is closed, or for items no longer listed,
// are stale and ignored.
func (c *Controller) OnItemHovered(item *group.Item) {
	if item == nil {
		c.hover = ""
		return
	}
	if !c.dropdown.IsOpen() {
		log.Debug("Ignoring hover on closed dropdown", "group", c.group.Key, "title", item.Title)
		return
	}
	listed := c.lookup(item)
	if listed == nil {
		return
	}
	c.hover = listed.Title
}

// Clear resets the text and selection programmatically and emits Selected with a nil item.
// Text-driven clearing goes through Cleared instead; hosts rely on telling them apart.
func (c *Controller) Clear() {
	c.text = ""
	c.highlight = ""
	c.selected = nil
	c.refilter()
	c.listener.Selected(group.Selection{Group: c.group, Item: nil})
}

// Blur handles the field losing focus: the dropdown closes and blur recovery runs once.
func (c *Controller) Blur() {
	c.hover = ""
	c.closeDropdown(false)
	c.OnDropdownClosedByBlur()
}

// OnHover relays a hover from the dropdown.
func (c *Controller) OnHover(item *group.Item) {
	c.OnItemHovered(item)
}

// OnSelect relays a pick gesture from the dropdown.
func (c *Controller) OnSelect(item *group.Item) {
	if item == nil || !c.dropdown.IsOpen() {
		return
	}
	if listed := c.lookup(item); listed != nil {
		c.SelectItem(listed)
	}
}

// OnClosed relays a close the dropdown initiated itself, such as an outside click.
func (c *Controller) OnClosed() {
	if c.suppressClosed {
		return
	}
	c.hover = ""
	c.OnDropdownClosedByBlur()
}

// Group returns the group the controller was initialized with.
func (c *Controller) Group() *group.Group {
	return c.group
}

func (c *Controller) Text() string {
	return c.text
}

// Items returns the filtered items in group order.
func (c *Controller) Items() []*group.Item {
	return c.items
}

func (c *Controller) Selected() *group.Item {
	return c.selected
}

func (c *Controller) Highlight() string {
	return c.highlight
}

func (c *Controller) HoverPlaceholder() string {
	return c.hover
}

func (c *Controller) IsOpen() bool {
	return c.dropdown.IsOpen()
}

func (c *Controller) closeDropdown(fromUserInteraction bool) {
	if !c.dropdown.IsOpen() {
		return
	}
	c.suppressClosed = true
	defer func() { c.suppressClosed = false }()
	c.dropdown.Close(fromUserInteraction)
}

func (c *Controller) refilter() {
	c.items = Filter(c.group.Value, c.text)
	if c.hover != "" && c.findTitle(c.hover) == nil {
		c.hover = ""
	}
	c.render()
}

func (c *Controller) render() {
	if r, ok := c.dropdown.(ItemRenderer); ok {
		r.SetItems(c.items)
	}
}

// lookup maps an item reported by the dropdown onto the filtered list,
// by identity first and by title for panels that hand back copies.
func (c *Controller) lookup(item *group.Item) *group.Item {
	for _, listed := range c.items {
		if listed == item {
			return listed
		}
	}
	return c.findTitle(item.Title)
}

func (c *Controller) findTitle(title string) *group.Item {
	for _, listed := range c.items {
		if listed.Title == title {
			return listed
		}
	}
	return nil
}
