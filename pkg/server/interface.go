/*
Package server implements msgpack IPC for autocomplete widgets.

The server keeps one completer widget per group and drives it with named UI
events read from stdin. Every response carries the widget's view after the
event plus the outcomes it emitted, so a client can render the field and the
dropdown without holding any widget state itself.

# IPC

Messages are a stream of msgpack maps on stdin and stdout. On start the server writes:

	{"status": "ready"}

An event request names the group, the event and its argument:

	{"id": "r1", "g": "fruit", "e": "input", "t": "ap"}
	{"id": "r2", "g": "fruit", "e": "hover", "i": 1}
	{"id": "r3", "g": "fruit", "e": "pick", "i": 0}

"i" indexes the currently filtered items. Event names are those of the
completer dispatch table (click, focus, field_click, icon_click, toggle,
input, hover, pick, blur, clear) plus "outside" for a click outside the
dropdown and "state" to read the view without changing it.

The response holds the view and the emitted outcomes:

	{"id": "r3", "v": {"g": "fruit", "text": "Apple", "items": ["Apple"], "n": 1, "sel": "Apple", "open": false},
	 "ev": [{"k": "selected", "g": "fruit", "item": {"title": "Apple"}}], "t": 12}

Listing groups:

	{"id": "g1", "e": "groups"}

Failures are reported as {"id": ..., "e": "message", "c": 400} and never stop the server.
*/
package server

import "github.com/bastiangx/wordpick/pkg/group"

// Request is a single event for one widget.
type Request struct {
	ID    string `msgpack:"id"`
	Group string `msgpack:"g"`
	Event string `msgpack:"e"`
	Text  string `msgpack:"t,omitempty"`
	Index *int   `msgpack:"i,omitempty"`
}

// WidgetView is the rendering contract sent back after every event.
type WidgetView struct {
	Group       string   `msgpack:"g"`
	Completion  bool     `msgpack:"comp"`
	Text        string   `msgpack:"text"`
	Placeholder string   `msgpack:"ph"`
	Hover       string   `msgpack:"hover"`
	Highlight   string   `msgpack:"hl"`
	Items       []string `msgpack:"items"`
	Total       int      `msgpack:"n"`
	Selected    string   `msgpack:"sel,omitempty"`
	Open        bool     `msgpack:"open"`
}

// EmittedEvent is one selected or cleared outcome.
type EmittedEvent struct {
	Kind  string      `msgpack:"k"`
	Group string      `msgpack:"g"`
	Item  *group.Item `msgpack:"item,omitempty"`
}

// EventResponse answers an event request.
type EventResponse struct {
	ID        string         `msgpack:"id"`
	View      WidgetView     `msgpack:"v"`
	Events    []EmittedEvent `msgpack:"ev,omitempty"`
	TimeTaken int64          `msgpack:"t"`
}

// GroupInfo describes one served group.
type GroupInfo struct {
	Key         string `msgpack:"key"`
	Placeholder string `msgpack:"ph"`
	Completion  bool   `msgpack:"comp"`
	Count       int    `msgpack:"n"`
}

// GroupsResponse answers a groups request.
type GroupsResponse struct {
	ID     string      `msgpack:"id"`
	Groups []GroupInfo `msgpack:"groups"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
