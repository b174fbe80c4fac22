package completer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchStandardBindings(t *testing.T) {
	c, _, rec := newTestController(t, fruit())
	d := NewDispatcher(c)

	require.NoError(t, d.Dispatch(Event{Name: EventFocus}))
	assert.True(t, c.IsOpen())

	require.NoError(t, d.Dispatch(Event{Name: EventInput, Text: "ap"}))
	assert.Equal(t, []string{"Apple", "Apricot"}, titles(c.Items()))

	require.NoError(t, d.Dispatch(Event{Name: EventHover, Item: c.Items()[1]}))
	assert.Equal(t, "Apricot", c.HoverPlaceholder())

	require.NoError(t, d.Dispatch(Event{Name: EventPick, Item: c.Items()[0]}))
	assert.Equal(t, "Apple", c.Text())
	assert.False(t, c.IsOpen())

	require.NoError(t, d.Dispatch(Event{Name: EventBlur}))
	assert.Equal(t, "Apple", c.Text())

	require.NoError(t, d.Dispatch(Event{Name: EventClear}))
	assert.Empty(t, c.Text())

	assert.Equal(t, []Outcome{
		{Kind: KindSelected, GroupKey: "groupKey", Item: &c.Group().Value[0]},
		{Kind: KindSelected, GroupKey: "groupKey"},
	}, rec.Outcomes())
}

func TestDispatchVisibilityEvents(t *testing.T) {
	c, _, _ := newTestController(t, fruit())
	d := NewDispatcher(c)

	steps := []struct {
		name EventName
		open bool
	}{
		{EventToggle, true},
		{EventToggle, false},
		{EventIconClick, true},
		{EventFieldClick, true},
		{EventIconClick, false},
		{EventClick, true},
		{EventBlur, false},
	}
	for i, step := range steps {
		require.NoError(t, d.Dispatch(Event{Name: step.name}))
		assert.Equal(t, step.open, c.IsOpen(), "step %d: %s", i, step.name)
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	c, _, _ := newTestController(t, fruit())
	d := NewDispatcher(c)

	err := d.Dispatch(Event{Name: "scroll"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Contains(t, err.Error(), `"scroll"`)
}

func TestDispatchRegister(t *testing.T) {
	c, _, _ := newTestController(t, fruit())
	d := NewDispatcher(c)

	var got []string
	d.Register("custom", func(ev Event) { got = append(got, ev.Text) })
	d.Register(EventInput, func(ev Event) { got = append(got, "input:"+ev.Text) })

	require.NoError(t, d.Dispatch(Event{Name: "custom", Text: "a"}))
	require.NoError(t, d.Dispatch(Event{Name: EventInput, Text: "b"}))

	assert.Equal(t, []string{"a", "input:b"}, got)
	assert.Empty(t, c.Text(), "replaced binding no longer reaches the controller")
}

func TestDispatcherNames(t *testing.T) {
	c, _, _ := newTestController(t, fruit())
	d := NewDispatcher(c)

	assert.Equal(t, []EventName{
		EventBlur, EventClear, EventClick, EventFieldClick, EventFocus,
		EventHover, EventIconClick, EventInput, EventPick, EventToggle,
	}, d.Names())
}

func TestRecorderDrain(t *testing.T) {
	rec := &Recorder{}
	rec.Cleared("k")
	rec.Cleared("k")

	assert.Equal(t, 2, rec.Count(KindCleared))
	assert.Len(t, rec.Drain(), 2)
	assert.Empty(t, rec.Outcomes())
	assert.Equal(t, 0, rec.Count(KindCleared))
}

func TestListenerFuncs(t *testing.T) {
	var cleared []string
	l := ListenerFuncs{OnCleared: func(key string) { cleared = append(cleared, key) }}

	c := New(fruit(), l)
	assert.NotPanics(t, func() {
		c.OnTextChanged("")
		c.Clear()
	})
	assert.Equal(t, []string{"groupKey"}, cleared)
}
