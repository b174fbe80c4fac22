package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/wordpick/pkg/config"
	"github.com/bastiangx/wordpick/pkg/group"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func testGroups() []*group.Group {
	return []*group.Group{
		{
			Key:         "fruit",
			Placeholder: "Pick a fruit",
			Completion:  true,
			Value:       []group.Item{{Title: "Apple"}, {Title: "Apricot"}, {Title: "Banana"}},
		},
		{
			Key:   "size",
			Value: []group.Item{{Title: "Small"}, {Title: "Large"}},
		},
	}
}

func intPtr(i int) *int { return &i }

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	return NewServer(testGroups(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
}

func TestHandleSession(t *testing.T) {
	s := newTestServer(t, nil)

	resp, ok := s.Handle(Request{ID: "1", Group: "fruit", Event: "focus"}).(EventResponse)
	require.True(t, ok)
	assert.Equal(t, "1", resp.ID)
	assert.True(t, resp.View.Open)
	assert.Equal(t, "Pick a fruit", resp.View.Placeholder)
	assert.Equal(t, []string{"Apple", "Apricot", "Banana"}, resp.View.Items)

	resp = s.Handle(Request{ID: "2", Group: "fruit", Event: "input", Text: "ap"}).(EventResponse)
	assert.Equal(t, []string{"Apple", "Apricot"}, resp.View.Items)
	assert.Equal(t, 2, resp.View.Total)
	assert.Equal(t, "ap", resp.View.Highlight)
	assert.Empty(t, resp.Events)

	resp = s.Handle(Request{ID: "3", Group: "fruit", Event: "hover", Index: intPtr(1)}).(EventResponse)
	assert.Equal(t, "Apricot", resp.View.Hover)

	resp = s.Handle(Request{ID: "4", Group: "fruit", Event: "pick", Index: intPtr(1)}).(EventResponse)
	assert.Equal(t, "Apricot", resp.View.Text)
	assert.Equal(t, "Apricot", resp.View.Selected)
	assert.False(t, resp.View.Open)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "selected", resp.Events[0].Kind)
	assert.Equal(t, "fruit", resp.Events[0].Group)
	assert.Equal(t, "Apricot", resp.Events[0].Item.Title)

	resp = s.Handle(Request{ID: "5", Group: "fruit", Event: "input", Text: ""}).(EventResponse)
	assert.Equal(t, []EmittedEvent{{Kind: "cleared", Group: "fruit"}}, resp.Events)
	assert.Empty(t, resp.View.Selected)

	resp = s.Handle(Request{ID: "6", Group: "fruit", Event: "clear"}).(EventResponse)
	assert.Equal(t, []EmittedEvent{{Kind: "selected", Group: "fruit"}}, resp.Events)
}

func TestHandleState(t *testing.T) {
	s := newTestServer(t, nil)
	s.Handle(Request{Group: "size", Event: "input", Text: "l"})

	resp := s.Handle(Request{ID: "s", Group: "size", Event: "state"}).(EventResponse)

	assert.Equal(t, "l", resp.View.Text)
	assert.Equal(t, []string{"Small", "Large"}, resp.View.Items)
	assert.Empty(t, resp.Events)
}

func TestHandleWidgetsAreIndependent(t *testing.T) {
	s := newTestServer(t, nil)
	s.Handle(Request{Group: "fruit", Event: "input", Text: "ban"})

	resp := s.Handle(Request{Group: "size", Event: "state"}).(EventResponse)

	assert.Empty(t, resp.View.Text)
	assert.Len(t, resp.View.Items, 2)
}

func TestHandlePickerMode(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.Handle(Request{Group: "size", Event: "focus"}).(EventResponse)
	assert.False(t, resp.View.Open, "pickers only open on click")

	resp = s.Handle(Request{Group: "size", Event: "field_click"}).(EventResponse)
	assert.True(t, resp.View.Open)

	resp = s.Handle(Request{Group: "size", Event: "outside"}).(EventResponse)
	assert.False(t, resp.View.Open)
}

func TestHandleErrors(t *testing.T) {
	s := newTestServer(t, nil)

	testCases := []struct {
		name string
		req  Request
		msg  string
	}{
		{"unknown group", Request{ID: "a", Group: "nope", Event: "focus"}, "unknown group"},
		{"unknown event", Request{ID: "b", Group: "fruit", Event: "scroll"}, "unknown event"},
		{"pick without index", Request{ID: "c", Group: "fruit", Event: "pick"}, "pick needs an index"},
		{"index out of range", Request{ID: "d", Group: "fruit", Event: "hover", Index: intPtr(9)}, "out of range"},
		{"negative index", Request{ID: "e", Group: "fruit", Event: "pick", Index: intPtr(-1)}, "out of range"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, ok := s.Handle(tc.req).(ErrorResponse)
			require.True(t, ok)
			assert.Equal(t, tc.req.ID, resp.ID)
			assert.Equal(t, 400, resp.Code)
			assert.Contains(t, resp.Error, tc.msg)
		})
	}
}

func TestHandleGroups(t *testing.T) {
	s := newTestServer(t, nil)

	resp, ok := s.Handle(Request{ID: "g", Event: "groups"}).(GroupsResponse)
	require.True(t, ok)

	assert.Equal(t, "g", resp.ID)
	assert.Equal(t, []GroupInfo{
		{Key: "fruit", Placeholder: "Pick a fruit", Completion: true, Count: 3},
		{Key: "size", Count: 2},
	}, resp.Groups)
}

func TestMaxItemsTruncatesView(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxItems = 2
	s := newTestServer(t, cfg)

	resp := s.Handle(Request{Group: "fruit", Event: "state"}).(EventResponse)

	assert.Equal(t, []string{"Apple", "Apricot"}, resp.View.Items)
	assert.Equal(t, 3, resp.View.Total)

	// indices still address the full filtered list
	resp = s.Handle(Request{Group: "fruit", Event: "pick", Index: intPtr(2)}).(EventResponse)
	assert.Equal(t, "Banana", resp.View.Text)
}

func TestReplaceGroups(t *testing.T) {
	s := newTestServer(t, nil)
	s.Handle(Request{Group: "fruit", Event: "input", Text: "ap"})

	s.ReplaceGroups([]*group.Group{
		{Key: "fruit", Completion: true, Value: []group.Item{{Title: "Cherry"}}},
		{Key: "color", Value: []group.Item{{Title: "Red"}}},
	})

	resp := s.Handle(Request{Group: "fruit", Event: "state"}).(EventResponse)
	assert.Empty(t, resp.View.Text, "surviving widgets are re-initialized")
	assert.Equal(t, []string{"Cherry"}, resp.View.Items)
	assert.Empty(t, resp.Events)

	_, ok := s.Handle(Request{Group: "size", Event: "state"}).(ErrorResponse)
	assert.True(t, ok, "dropped groups are gone")

	groups := s.Handle(Request{Event: "groups"}).(GroupsResponse)
	require.Len(t, groups.Groups, 2)
	assert.Equal(t, "color", groups.Groups[1].Key)
}

func TestStartStream(t *testing.T) {
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	require.NoError(t, enc.Encode(Request{ID: "1", Group: "fruit", Event: "input", Text: "an"}))
	require.NoError(t, enc.Encode(Request{ID: "2", Group: "nope", Event: "state"}))
	require.NoError(t, enc.Encode(Request{ID: "3", Event: "groups"}))

	s := NewServer(testGroups(), nil, &in, &out)
	require.NoError(t, s.Start())

	dec := msgpack.NewDecoder(&out)

	var ready map[string]string
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready["status"])

	var first EventResponse
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, []string{"Banana"}, first.View.Items)

	var second ErrorResponse
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, 400, second.Code)

	var third GroupsResponse
	require.NoError(t, dec.Decode(&third))
	assert.Len(t, third.Groups, 2)
}

func TestStartMalformedInput(t *testing.T) {
	in := bytes.NewBuffer([]byte{0xc1})
	var out bytes.Buffer

	s := NewServer(testGroups(), nil, in, &out)
	err := s.Start()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode request")
}
