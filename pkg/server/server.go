package server

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bastiangx/wordpick/pkg/completer"
	"github.com/bastiangx/wordpick/pkg/config"
	"github.com/bastiangx/wordpick/pkg/group"
	"github.com/bastiangx/wordpick/pkg/widget"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	eventGroups = "groups"
	eventState  = "state"
)

var (
	errUnknownGroup = errors.New("unknown group")
	errBadIndex     = errors.New("item index out of range")
)

// Server handles the IPC for autocomplete widgets
type Server struct {
	mu       sync.Mutex
	widgets  map[string]*widget.Widget
	order    []string
	maxItems int

	dec *msgpack.Decoder
	enc *msgpack.Encoder
}

// NewServer creates a server for groups that reads requests from r and writes responses to w.
func NewServer(groups []*group.Group, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		widgets:  make(map[string]*widget.Widget),
		maxItems: cfg.Server.MaxItems,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
	}
	s.ReplaceGroups(groups)
	return s
}

// Start writes the ready status and serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	if err := s.send(map[string]string{"status": "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// the stream cannot be resynchronised after a malformed value
			log.Errorf("Decoding request: %v", err)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		if err := s.send(s.Handle(req)); err != nil {
			return err
		}
	}
}

// ReplaceGroups swaps the served groups. Widgets whose key survives are
// re-initialized with the new group; the rest are created or dropped.
func (s *Server) ReplaceGroups(groups []*group.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]*widget.Widget, len(groups))
	order := make([]string, 0, len(groups))
	for _, g := range groups {
		if w, ok := s.widgets[g.Key]; ok {
			w.Replace(g)
			next[g.Key] = w
		} else {
			next[g.Key] = widget.New(g, nil)
		}
		order = append(order, g.Key)
	}
	s.widgets = next
	s.order = order
	log.Debugf("Serving %d groups", len(order))
}

// Handle processes one request and returns the response to send.
func (s *Server) Handle(req Request) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Event == eventGroups {
		return s.groups(req.ID)
	}

	w, ok := s.widgets[req.Group]
	if !ok {
		return s.errorf(req.ID, "%v: %q", errUnknownGroup, req.Group)
	}

	start := time.Now()
	if req.Event != eventState {
		ev, err := buildEvent(w, req)
		if err != nil {
			return s.errorf(req.ID, "%v", err)
		}
		if err := w.Dispatch(ev); err != nil {
			return s.errorf(req.ID, "%v", err)
		}
	}
	elapsed := time.Since(start)

	return EventResponse{
		ID:        req.ID,
		View:      s.view(w.Controller.View()),
		Events:    emitted(w.Outcomes.Drain()),
		TimeTaken: elapsed.Microseconds(),
	}
}

// buildEvent resolves the item index against the filtered list.
func buildEvent(w *widget.Widget, req Request) (completer.Event, error) {
	ev := completer.Event{Name: completer.EventName(req.Event), Text: req.Text}
	if req.Index == nil {
		if ev.Name == completer.EventPick {
			return ev, fmt.Errorf("%w: pick needs an index", errBadIndex)
		}
		return ev, nil
	}
	items := w.Controller.Items()
	i := *req.Index
	if i < 0 || i >= len(items) {
		return ev, fmt.Errorf("%w: %d of %d", errBadIndex, i, len(items))
	}
	ev.Item = items[i]
	return ev, nil
}

func (s *Server) view(v completer.View) WidgetView {
	titles := v.Titles()
	if s.maxItems > 0 && len(titles) > s.maxItems {
		titles = titles[:s.maxItems]
	}
	out := WidgetView{
		Group:       v.GroupKey,
		Completion:  v.Completion,
		Text:        v.Text,
		Placeholder: v.Placeholder,
		Hover:       v.Hover,
		Highlight:   v.Highlight,
		Items:       titles,
		Total:       len(v.Items),
		Open:        v.Open,
	}
	if v.Selected != nil {
		out.Selected = v.Selected.Title
	}
	return out
}

func emitted(outcomes []completer.Outcome) []EmittedEvent {
	if len(outcomes) == 0 {
		return nil
	}
	events := make([]EmittedEvent, len(outcomes))
	for i, o := range outcomes {
		events[i] = EmittedEvent{Kind: string(o.Kind), Group: o.GroupKey, Item: o.Item}
	}
	return events
}

func (s *Server) groups(id string) GroupsResponse {
	infos := make([]GroupInfo, 0, len(s.order))
	for _, key := range s.order {
		g := s.widgets[key].Controller.Group()
		infos = append(infos, GroupInfo{
			Key:         g.Key,
			Placeholder: g.Placeholder,
			Completion:  g.Completion,
			Count:       len(g.Value),
		})
	}
	return GroupsResponse{ID: id, Groups: infos}
}

func (s *Server) errorf(id, format string, args ...any) ErrorResponse {
	msg := fmt.Sprintf(format, args...)
	log.Debugf("Request %s failed: %s", id, msg)
	return ErrorResponse{ID: id, Error: msg, Code: 400}
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
