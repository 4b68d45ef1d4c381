package models

import "github.com/example/dayops/internal/core/stamp"

// Today item execution statuses.
const (
	TodayStatusNotStarted = "not started"
	TodayStatusInProgress = "in progress"
	TodayStatusWaiting    = "waiting"
	TodayStatusBlocked    = "blocked"
	TodayStatusComplete   = "complete"
	TodayStatusCancelled  = "cancelled"
	TodayStatusDeferred   = "deferred"
	TodayStatusArchived   = "archived"
)

// ExecutionNote is one immutable entry in a Today item's append-only
// update log.
type ExecutionNote struct {
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// Execution is the embedded execution state of a Today item. Notes is
// append-only; entries are never edited or removed.
type Execution struct {
	Status    string          `json:"status"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
	Notes     []ExecutionNote `json:"notes"`
}

// TodayItem is a member of the working plan. Status on the record
// mirrors Execution.Status for legacy readers; both are written
// atomically. Completion is defined solely by status == complete;
// every other status counts as incomplete for closure purposes.
type TodayItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type,omitempty"`
	Bucket    string    `json:"bucket,omitempty"`
	Meta      string    `json:"meta,omitempty"`
	SourceID  string    `json:"sourceId,omitempty"`
	Status    string    `json:"status"`
	Execution Execution `json:"execution"`
	CreatedAt string    `json:"createdAt,omitempty"`
	Lifecycle
	Stamps stamp.Map `json:"stamps,omitempty"`
}

// Complete reports whether the item counts as done for closure.
func (t *TodayItem) Complete() bool {
	return t.Execution.Status == TodayStatusComplete
}

// LastNote returns the trailing execution note, if any.
func (t *TodayItem) LastNote() (ExecutionNote, bool) {
	if len(t.Execution.Notes) == 0 {
		return ExecutionNote{}, false
	}
	return t.Execution.Notes[len(t.Execution.Notes)-1], true
}

// SplitByCompletion partitions a plan into completed and incomplete
// items, preserving order. Used by close-day and rollover snapshots.
func SplitByCompletion(items []*TodayItem) (completed, incomplete []*TodayItem) {
	completed = []*TodayItem{}
	incomplete = []*TodayItem{}
	for _, item := range items {
		if item.Complete() {
			completed = append(completed, item)
		} else {
			incomplete = append(incomplete, item)
		}
	}
	return completed, incomplete
}
