// Package group holds the candidate data a completer widget is built from:
// groups, their items, the selection outcome, and the loaders that read them from disk.
package group

// Item is a single candidate. Payload is host-defined and never interpreted by the completer.
type Item struct {
	Title   string         `toml:"title" msgpack:"title"`
	Payload map[string]any `toml:"payload,omitempty" msgpack:"payload,omitempty"`
}

// Group is a named configuration unit: a candidate list, placeholder text
// and whether free-text completion is enabled.
type Group struct {
	Key         string `toml:"key"`
	Placeholder string `toml:"placeholder"`
	Completion  bool   `toml:"completion"`
	Value       []Item `toml:"item"`

	index *Index
}

// Selection pairs the originating group with the chosen item.
// Item is nil when the selection was explicitly cleared.
type Selection struct {
	Group *Group
	Item  *Item
}

// Titles returns every item title in insertion order.
func (g *Group) Titles() []string {
	titles := make([]string, len(g.Value))
	for i, item := range g.Value {
		titles[i] = item.Title
	}
	return titles
}

// Index returns the title index for the group, building it on first use.
// The index reflects Value at build time; groups are read-only once handed to a widget.
func (g *Group) Index() *Index {
	if g.index == nil {
		g.index = NewIndex(g.Value)
	}
	return g.index
}

// HasTitle reports whether any item carries exactly this title.
func (g *Group) HasTitle(title string) bool {
	return g.Index().Has(title)
}
