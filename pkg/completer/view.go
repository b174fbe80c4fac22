package completer

import "github.com/bastiangx/wordpick/pkg/group"

// View is a snapshot of everything the presentation layer renders.
type View struct {
	GroupKey    string
	Completion  bool
	Placeholder string // the group's hint text for an empty field
	Text        string
	Hover       string // title under the pointer, shown over the field
	Highlight   string
	Items       []*group.Item
	Total       int // size of the unfiltered group
	Selected    *group.Item
	Open        bool
}

// View snapshots the current state. Items is a copy of the filtered slice.
func (c *Controller) View() View {
	items := make([]*group.Item, len(c.items))
	copy(items, c.items)
	return View{
		GroupKey:    c.group.Key,
		Completion:  c.group.Completion,
		Placeholder: c.group.Placeholder,
		Text:        c.text,
		Hover:       c.hover,
		Highlight:   c.highlight,
		Items:       items,
		Total:       len(c.group.Value),
		Selected:    c.selected,
		Open:        c.dropdown.IsOpen(),
	}
}

// Segments splits title, usually a truncated item title, around the current query.
func (v View) Segments(title string) []Segment {
	return Highlight(title, v.Highlight)
}

// Titles returns the titles of the filtered items.
func (v View) Titles() []string {
	titles := make([]string, len(v.Items))
	for i, item := range v.Items {
		titles[i] = item.Title
	}
	return titles
}
