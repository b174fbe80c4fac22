package dropdown

import (
	"testing"

	"github.com/bastiangx/wordpick/pkg/completer"
	"github.com/bastiangx/wordpick/pkg/group"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

type spy struct {
	hovers  []*group.Item
	selects []*group.Item
	closed  int
}

func (s *spy) OnHover(item *group.Item)  { s.hovers = append(s.hovers, item) }
func (s *spy) OnSelect(item *group.Item) { s.selects = append(s.selects, item) }
func (s *spy) OnClosed()                 { s.closed++ }

func items(titles ...string) []*group.Item {
	out := make([]*group.Item, len(titles))
	for i, title := range titles {
		out[i] = &group.Item{Title: title}
	}
	return out
}

func TestOpenClose(t *testing.T) {
	s := &spy{}
	d := New(s)
	assert.False(t, d.IsOpen())

	d.Open()
	d.Open()
	assert.True(t, d.IsOpen())

	d.Close(true)
	assert.False(t, d.IsOpen())
	assert.Zero(t, s.closed, "user closes are not echoed")

	d.Open()
	d.Close(false)
	assert.Equal(t, 1, s.closed)

	d.Close(false)
	assert.Equal(t, 1, s.closed, "closing a closed panel reports nothing")

	d.Open()
	d.Blur()
	assert.Equal(t, 2, s.closed)
}

func TestHoverNavigation(t *testing.T) {
	s := &spy{}
	d := New(s)
	list := items("a", "b", "c")
	d.SetItems(list)

	d.Next()
	assert.Empty(t, s.hovers, "closed panels do not hover")

	d.Open()
	assert.Equal(t, -1, d.Cursor())
	assert.Nil(t, d.Hovered())

	d.Next()
	d.Next()
	d.Next()
	d.Next()
	assert.Equal(t, 0, d.Cursor(), "wraps to the first item")
	d.Prev()
	assert.Equal(t, 2, d.Cursor(), "wraps to the last item")
	assert.Same(t, list[2], d.Hovered())
	assert.Equal(t, []*group.Item{list[0], list[1], list[2], list[0], list[2]}, s.hovers)

	d.Hover(7)
	assert.Equal(t, 2, d.Cursor())

	d.HoverNone()
	assert.Equal(t, -1, d.Cursor())
	assert.Nil(t, s.hovers[len(s.hovers)-1])
}

func TestPrevFromNothingHoversLast(t *testing.T) {
	d := New(&spy{})
	d.SetItems(items("a", "b"))
	d.Open()

	d.Prev()

	assert.Equal(t, 1, d.Cursor())
}

func TestEmptyListNavigation(t *testing.T) {
	s := &spy{}
	d := New(s)
	d.Open()

	d.Next()
	d.Prev()
	d.PickHovered()

	assert.Empty(t, s.hovers)
	assert.Empty(t, s.selects)
}

func TestSetItemsDropsStaleCursor(t *testing.T) {
	d := New(&spy{})
	d.SetItems(items("a", "b", "c"))
	d.Open()
	d.Hover(2)

	d.SetItems(items("a"))
	assert.Equal(t, -1, d.Cursor())

	d.SetItems(items("a", "b"))
	d.Hover(1)
	d.SetItems(items("x", "y", "z"))
	assert.Equal(t, 1, d.Cursor())
}

func TestOpenResetsCursor(t *testing.T) {
	d := New(&spy{})
	d.SetItems(items("a", "b"))
	d.Open()
	d.Hover(1)
	d.Close(true)

	assert.Equal(t, -1, d.Cursor())
	d.Open()
	assert.Nil(t, d.Hovered())
}

func TestPick(t *testing.T) {
	s := &spy{}
	d := New(s)
	list := items("a", "b")
	d.SetItems(list)

	d.Pick(0)
	assert.Empty(t, s.selects, "closed panels do not pick")

	d.Open()
	d.Pick(5)
	d.Pick(-1)
	assert.Empty(t, s.selects)

	d.Pick(1)
	d.Hover(0)
	d.PickHovered()
	assert.Equal(t, []*group.Item{list[1], list[0]}, s.selects)
	assert.True(t, d.IsOpen(), "picking alone does not close the panel")
}

// The dropdown never changes the list or the field's text on its own.
func TestDropdownDrivesController(t *testing.T) {
	g := &group.Group{
		Key:        "fruit",
		Completion: true,
		Value:      []group.Item{{Title: "Apple"}, {Title: "Apricot"}, {Title: "Banana"}},
	}
	rec := &completer.Recorder{}
	c := completer.New(g, rec)
	d := New(c)
	c.Attach(d)

	require.Len(t, d.Items(), 3)

	c.RequestOpen(completer.OriginFocus)
	c.OnTextChanged("ap")
	assert.Equal(t, c.Items(), d.Items())

	d.Next()
	d.Next()
	assert.Equal(t, "Apricot", c.HoverPlaceholder())
	assert.Equal(t, "ap", c.Text())

	d.PickHovered()
	assert.Equal(t, "Apricot", c.Text())
	assert.False(t, d.IsOpen())
	assert.Equal(t, 1, rec.Count(completer.KindSelected))
	assert.Equal(t, 0, rec.Count(completer.KindCleared))

	// outside click with free text resets the field
	c.RequestOpen(completer.OriginClick)
	c.OnTextChanged("zz")
	rec.Drain()
	d.Blur()
	assert.Empty(t, c.Text())
	assert.Len(t, d.Items(), 3)
	assert.Equal(t, []completer.Outcome{{Kind: completer.KindCleared, GroupKey: "fruit"}}, rec.Outcomes())
}
