package models

// Daily log kinds. Close-day produces "close" logs, startup rollover
// produces "rollover" logs, and the non-destructive snapshot action on
// the Close screen produces "manual" logs.
const (
	DailyLogKindClose    = "close"
	DailyLogKindRollover = "rollover"
	DailyLogKindManual   = "manual"
)

// DailyLog is an immutable snapshot of a day's plan split into
// planned/completed/incomplete. Logs are only ever created; they are
// never mutated afterwards.
type DailyLog struct {
	ID         string       `json:"id"`
	Date       string       `json:"date"`
	Kind       string       `json:"kind"`
	Note       string       `json:"note,omitempty"`
	Planned    []*TodayItem `json:"planned"`
	Completed  []*TodayItem `json:"completed"`
	Incomplete []*TodayItem `json:"incomplete"`
	CreatedAt  string       `json:"createdAt,omitempty"`
	Lifecycle
}
