// Package events carries the application's custom notifications between the
// focus tracker, the quest ledger and the views.
package events

import "sync"

type Kind string

const (
	KindFocusDataChanged Kind = "focus-data-changed"
	KindSessionCompleted Kind = "session-completed"
	KindCountersChanged  Kind = "counters-changed"
)

type Event struct {
	Kind    Kind
	Minutes int
	Points  int
	Streak  int
}

func FocusDataChanged() Event { return Event{Kind: KindFocusDataChanged} }

func SessionCompleted(minutes int) Event {
	return Event{Kind: KindSessionCompleted, Minutes: minutes}
}

func CountersChanged(points, streak int) Event {
	return Event{Kind: KindCountersChanged, Points: points, Streak: streak}
}

type Handler func(Event)

type subscription struct {
	id   uint64
	kind Kind
	fn   Handler
}

// Dispatcher fans events out synchronously, in subscription order.
// A subscription with an empty kind receives every event.
type Dispatcher struct {
	mu     sync.Mutex
	subs   []subscription
	nextID uint64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Subscribe(kind Kind, fn Handler) func() {
	if d == nil || fn == nil {
		return func() {}
	}
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, kind: kind, fn: fn})
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	d.mu.Lock()
	targets := make([]Handler, 0, len(d.subs))
	for _, s := range d.subs {
		if s.kind == "" || s.kind == ev.Kind {
			targets = append(targets, s.fn)
		}
	}
	d.mu.Unlock()

	for _, fn := range targets {
		fn(ev)
	}
}
