package completer

import "github.com/bastiangx/wordpick/pkg/group"

// DropdownHandle is what the controller needs from the dropdown panel.
type DropdownHandle interface {
	Open()
	// Close hides the panel. fromUserInteraction is true when the close is part of
	// a gesture the controller already handles (a pick or a toggle).
	Close(fromUserInteraction bool)
	IsOpen() bool
}

// DropdownListener is what the dropdown reports back. Controller implements it.
type DropdownListener interface {
	OnHover(item *group.Item)
	OnSelect(item *group.Item)
	OnClosed()
}

// ItemRenderer is implemented by dropdowns that display the filtered list.
// The controller pushes the list after every recompute.
type ItemRenderer interface {
	SetItems(items []*group.Item)
}

// detachedDropdown tracks visibility for a controller with no panel attached.
type detachedDropdown struct {
	open bool
}

func (d *detachedDropdown) Open() { d.open = true }

func (d *detachedDropdown) Close(bool) { d.open = false }

func (d *detachedDropdown) IsOpen() bool { return d.open }
