package primary

import "context"

// PlanService defines the primary port for the Today plan and the
// suggestion buckets that feed it.
type PlanService interface {
	// AddSuggestionToToday promotes a suggestion into the plan. Adding
	// the same source twice returns the existing item's id.
	AddSuggestionToToday(ctx context.Context, suggestionID string) (string, error)

	// AddCustomTodayItem appends a free-form item to the plan.
	AddCustomTodayItem(ctx context.Context, title string) (string, error)

	// ReorderToday moves a plan item to a new position.
	ReorderToday(ctx context.Context, id string, newIndex int) error

	// SetTodayStatus sets a plan item's execution status.
	SetTodayStatus(ctx context.Context, id, status string) error

	// DeferTodayItem marks a plan item as deferred.
	DeferTodayItem(ctx context.Context, id string) error

	// ArchiveTodayItem archives a plan item.
	ArchiveTodayItem(ctx context.Context, id string) error

	// AddTodayUpdateNote appends an entry to a plan item's update log.
	AddTodayUpdateNote(ctx context.Context, id, text string) error

	// SetSuggestionBucket moves a suggestion between buckets.
	SetSuggestionBucket(ctx context.Context, suggestionID, bucket string) error

	// RebuildSuggestions recomputes the suggestion set from live state.
	RebuildSuggestions(ctx context.Context) error
}
