package submissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	api "MoveDesk/internal/API"
)

func sub(id int64, status string) api.MoveSubmission {
	return api.MoveSubmission{ID: id, MoveName: "move", Status: status}
}

func collect(events *[]int64) NotifyFunc {
	return func(s api.MoveSubmission) { *events = append(*events, s.ID) }
}

func TestPopulateDoesNotNotify(t *testing.T) {
	var created []int64
	watcher := &Watcher{OnNew: collect(&created)}

	watcher.Populate([]api.MoveSubmission{sub(1, api.SubmissionPending), sub(2, api.SubmissionPending)})

	assert.Empty(t, created)
	assert.Len(t, watcher.Snapshot(), 2)
}

func TestProcessDetectsNewSubmissions(t *testing.T) {
	var created []int64
	watcher := &Watcher{OnNew: collect(&created)}
	watcher.Populate([]api.MoveSubmission{sub(1, api.SubmissionPending)})

	watcher.Process([]api.MoveSubmission{sub(1, api.SubmissionPending), sub(2, api.SubmissionPending)})

	assert.Equal(t, []int64{2}, created)
}

func TestProcessDetectsStatusChanges(t *testing.T) {
	var changed []int64
	watcher := &Watcher{OnStatusChange: collect(&changed)}
	watcher.Populate([]api.MoveSubmission{sub(1, api.SubmissionPending), sub(2, api.SubmissionPending)})

	watcher.Process([]api.MoveSubmission{sub(1, api.SubmissionApproved), sub(2, api.SubmissionPending)})

	assert.Equal(t, []int64{1}, changed)
}

func TestProcessDetectsResolvedSubmissions(t *testing.T) {
	var resolved []int64
	watcher := &Watcher{OnResolved: collect(&resolved)}
	watcher.Populate([]api.MoveSubmission{sub(1, api.SubmissionPending), sub(2, api.SubmissionPending)})

	watcher.Process([]api.MoveSubmission{sub(2, api.SubmissionPending)})

	assert.Equal(t, []int64{1}, resolved)
	assert.Len(t, watcher.Snapshot(), 1)
}

func TestProcessWithNilCallbacks(t *testing.T) {
	watcher := &Watcher{}
	watcher.Populate([]api.MoveSubmission{sub(1, api.SubmissionPending)})

	assert.NotPanics(t, func() {
		watcher.Process([]api.MoveSubmission{sub(2, api.SubmissionPending)})
	})
}
