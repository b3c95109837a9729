// Package progress provides a lightweight tracker that keeps aggregated
// request counters (open, approved, rejected, …) per request type.  The
// tracker is fed by the lifecycle event stream - subscribe its Apply method
// on a notification dispatcher - so dashboards can observe workload without
// querying storage.
package progress

import (
	"context"
	"sync"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/service/coordinator"
)

// Counts holds the aggregated request counters for one request type.  The
// fields are monotonic except Open, which moves down as requests reach a
// terminal stage or are deleted.
type Counts struct {
	Created  int
	Open     int
	Approved int
	Rejected int
	Deleted  int
}

// seenLimit bounds the redelivery dedupe window.
const seenLimit = 1024

// Tracker keeps per-type request counters.  It is safe for concurrent use.
type Tracker struct {
	mux       sync.Mutex
	byType    map[model.Type]Counts
	seen      map[string]bool
	seenOrder []string
	onChange  func(model.Type, Counts)
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{byType: make(map[model.Type]Counts), seen: make(map[string]bool)}
}

// Apply folds one lifecycle event into the counters.  Its signature matches
// the notification handler contract, so it can be subscribed directly:
//
//	dispatcher.Subscribe("", tracker.Apply)
//
// Queue delivery is at least once; Apply dedupes on the event ID so a
// redelivered event is counted exactly once (within a window of the last
// seenLimit events).
func (t *Tracker) Apply(_ context.Context, event *coordinator.Event) error {
	if event == nil || event.Request == nil {
		return nil
	}
	t.mux.Lock()
	if event.ID != "" {
		if t.seen[event.ID] {
			t.mux.Unlock()
			return nil
		}
		t.seen[event.ID] = true
		t.seenOrder = append(t.seenOrder, event.ID)
		if len(t.seenOrder) > seenLimit {
			delete(t.seen, t.seenOrder[0])
			t.seenOrder = t.seenOrder[1:]
		}
	}
	counts := t.byType[event.Request.Type]
	switch event.Topic {
	case coordinator.TopicRequestCreated:
		counts.Created++
		counts.Open++
	case coordinator.TopicRequestApproved:
		counts.Open--
		counts.Approved++
	case coordinator.TopicRequestRejected:
		counts.Open--
		counts.Rejected++
	case coordinator.TopicRequestDeleted:
		counts.Deleted++
		if !event.Request.Stage.IsTerminal() {
			counts.Open--
		}
	}
	t.byType[event.Request.Type] = counts

	// Copy while holding the lock, invoke outside it so a slow callback
	// (JSON encoding, I/O) never blocks the dispatcher.
	snapshot := counts
	cb := t.onChange
	t.mux.Unlock()

	if cb != nil {
		cb(event.Request.Type, snapshot)
	}
	return nil
}

// Snapshot returns a copy of the counters for one request type.
func (t *Tracker) Snapshot(requestType model.Type) Counts {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.byType[requestType]
}

// All returns a copy of every per-type counter set.
func (t *Tracker) All() map[model.Type]Counts {
	t.mux.Lock()
	defer t.mux.Unlock()
	ret := make(map[model.Type]Counts, len(t.byType))
	for requestType, counts := range t.byType {
		ret[requestType] = counts
	}
	return ret
}

// OnChange registers a callback invoked after every applied event with the
// affected type's updated counters.  Passing nil disables the callback.
// Only one callback can be active; subsequent calls overwrite the previous
// value.
func (t *Tracker) OnChange(cb func(model.Type, Counts)) {
	t.mux.Lock()
	t.onChange = cb
	t.mux.Unlock()
}
