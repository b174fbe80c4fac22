// Package dropdown is the reference panel a completer drives: it tracks visibility
// and the hover cursor over the filtered items, and reports hover, pick and close
// gestures back to its listener. It never changes the list or the field's text.
package dropdown

import (
	"github.com/bastiangx/wordpick/pkg/completer"
	"github.com/bastiangx/wordpick/pkg/group"
)

// Dropdown is a renderer-agnostic dropdown panel.
type Dropdown struct {
	listener completer.DropdownListener
	items    []*group.Item
	open     bool
	cursor   int
}

// New creates a closed dropdown reporting to listener.
func New(listener completer.DropdownListener) *Dropdown {
	return &Dropdown{
		listener: listener,
		cursor:   -1,
	}
}

// Open shows the panel. Opening an open panel does nothing.
func (d *Dropdown) Open() {
	if d.open {
		return
	}
	d.open = true
	d.cursor = -1
}

// Close hides the panel. Closes that are not part of a user gesture the
// listener already knows about are reported through OnClosed.
func (d *Dropdown) Close(fromUserInteraction bool) {
	if !d.open {
		return
	}
	d.open = false
	d.cursor = -1
	if !fromUserInteraction {
		d.listener.OnClosed()
	}
}

func (d *Dropdown) IsOpen() bool {
	return d.open
}

// Blur closes the panel because the field lost focus.
func (d *Dropdown) Blur() {
	d.Close(false)
}

// SetItems replaces the rendered list. The cursor is dropped when it falls off the end.
func (d *Dropdown) SetItems(items []*group.Item) {
	d.items = items
	if d.cursor >= len(items) {
		d.cursor = -1
	}
}

// Items returns the rendered list.
func (d *Dropdown) Items() []*group.Item {
	return d.items
}

// Cursor returns the hovered index, or -1.
func (d *Dropdown) Cursor() int {
	return d.cursor
}

// Hovered returns the item under the cursor, or nil.
func (d *Dropdown) Hovered() *group.Item {
	if d.cursor < 0 || d.cursor >= len(d.items) {
		return nil
	}
	return d.items[d.cursor]
}

// Hover moves the cursor to index and reports the item. Out-of-range indices
// and hovers on a closed panel are ignored.
func (d *Dropdown) Hover(index int) {
	if !d.open || index < 0 || index >= len(d.items) {
		return
	}
	d.cursor = index
	d.listener.OnHover(d.items[index])
}

// HoverNone clears the cursor, as when the pointer leaves the list.
func (d *Dropdown) HoverNone() {
	d.cursor = -1
	d.listener.OnHover(nil)
}

// Next hovers the following item, wrapping to the first.
func (d *Dropdown) Next() {
	if len(d.items) == 0 {
		return
	}
	d.Hover((d.cursor + 1) % len(d.items))
}

// Prev hovers the preceding item, wrapping to the last.
func (d *Dropdown) Prev() {
	if len(d.items) == 0 {
		return
	}
	i := d.cursor - 1
	if i < 0 {
		i = len(d.items) - 1
	}
	d.Hover(i)
}

// Pick reports a pick gesture on index.
func (d *Dropdown) Pick(index int) {
	if !d.open || index < 0 || index >= len(d.items) {
		return
	}
	d.listener.OnSelect(d.items[index])
}

// PickHovered picks the item under the cursor, if any.
func (d *Dropdown) PickHovered() {
	d.Pick(d.cursor)
}
