// Package submissions tracks the review queue across poll cycles and reports
// what changed between snapshots.
package submissions

import (
	"sync"

	api "MoveDesk/internal/API"
)

// NotifyFunc receives the submission a change was detected on.
type NotifyFunc func(api.MoveSubmission)

// Watcher diffs successive submission-list snapshots and fires the injected
// callbacks. Callbacks run on the caller's goroutine; nil callbacks are skipped.
type Watcher struct {
	mu    sync.Mutex
	known []api.MoveSubmission

	OnNew          NotifyFunc
	OnStatusChange NotifyFunc
	OnResolved     NotifyFunc
}

// Snapshot returns the most recent set of tracked submissions.
func (w *Watcher) Snapshot() []api.MoveSubmission {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]api.MoveSubmission, len(w.known))
	copy(out, w.known)
	return out
}

// Populate seeds the watcher without firing callbacks. Used on the first poll
// so startup does not replay the entire existing queue as "new".
func (w *Watcher) Populate(initial []api.MoveSubmission) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.known = make([]api.MoveSubmission, len(initial))
	copy(w.known, initial)
}

// Process compares the latest snapshot against the tracked one. Submissions
// appearing for the first time fire OnNew, tracked ones whose status moved
// fire OnStatusChange, and tracked ones absent from the snapshot fire
// OnResolved (reviewed or withdrawn between polls).
func (w *Watcher) Process(latest []api.MoveSubmission) {
	w.mu.Lock()
	previous := w.known
	w.known = make([]api.MoveSubmission, len(latest))
	copy(w.known, latest)
	w.mu.Unlock()

	seen := make(map[int64]api.MoveSubmission, len(previous))
	for _, sub := range previous {
		seen[sub.ID] = sub
	}

	for _, sub := range latest {
		existing, ok := seen[sub.ID]
		if !ok {
			w.notify(w.OnNew, sub)
			continue
		}

		delete(seen, sub.ID)
		if existing.Status != sub.Status {
			w.notify(w.OnStatusChange, sub)
		}
	}

	for _, sub := range seen {
		w.notify(w.OnResolved, sub)
	}
}

func (w *Watcher) notify(fn NotifyFunc, sub api.MoveSubmission) {
	if fn != nil {
		fn(sub)
	}
}
