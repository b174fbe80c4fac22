package completer

import "github.com/bastiangx/wordpick/pkg/group"

// Listener receives the outcomes a widget reports to its host.
type Listener interface {
	// Selected fires when an item is committed, or with a nil Item after Clear.
	Selected(sel group.Selection)
	// Cleared fires when the text is driven to empty through input.
	Cleared(key string)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnSelected func(sel group.Selection)
	OnCleared  func(key string)
}

func (f ListenerFuncs) Selected(sel group.Selection) {
	if f.OnSelected != nil {
		f.OnSelected(sel)
	}
}

func (f ListenerFuncs) Cleared(key string) {
	if f.OnCleared != nil {
		f.OnCleared(key)
	}
}

// OutcomeKind names an emitted outcome.
type OutcomeKind string

const (
	KindSelected OutcomeKind = "selected"
	KindCleared  OutcomeKind = "cleared"
)

// Outcome is one recorded emission. Item is nil for cleared outcomes and for Clear.
type Outcome struct {
	Kind     OutcomeKind
	GroupKey string
	Item     *group.Item
}

// Recorder is a Listener that keeps every outcome in emission order.
type Recorder struct {
	outcomes []Outcome
}

func (r *Recorder) Selected(sel group.Selection) {
	key := ""
	if sel.Group != nil {
		key = sel.Group.Key
	}
	r.outcomes = append(r.outcomes, Outcome{Kind: KindSelected, GroupKey: key, Item: sel.Item})
}

func (r *Recorder) Cleared(key string) {
	r.outcomes = append(r.outcomes, Outcome{Kind: KindCleared, GroupKey: key})
}

// Outcomes returns the recorded outcomes without resetting them.
func (r *Recorder) Outcomes() []Outcome {
	return r.outcomes
}

// Drain returns the recorded outcomes and resets the recorder.
func (r *Recorder) Drain() []Outcome {
	out := r.outcomes
	r.outcomes = nil
	return out
}

// Count returns how many outcomes of kind were recorded.
func (r *Recorder) Count(kind OutcomeKind) int {
	n := 0
	for _, o := range r.outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}
