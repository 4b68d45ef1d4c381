package primary

import (
	"context"

	"github.com/example/dayops/internal/core/closure"
	"github.com/example/dayops/internal/models"
)

// CloseService defines the primary port for the close-day ceremony and
// daily log snapshots.
type CloseService interface {
	// CheckCloseReadiness evaluates the close-day gate without mutating
	// anything.
	CheckCloseReadiness() closure.Readiness

	// CloseDay snapshots the plan into a daily log, wipes the plan, and
	// rebuilds suggestions. Blocked until the readiness gate passes.
	CloseDay(ctx context.Context) (*models.DailyLog, error)

	// GenerateDailyLogSnapshot records a manual daily log without
	// closing the day.
	GenerateDailyLogSnapshot(ctx context.Context, note string) (*models.DailyLog, error)
}
