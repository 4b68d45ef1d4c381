// Package rollover implements the startup day-boundary transition:
// when the local date has changed since the last run, yesterday's
// unfinished plan is snapshotted into a daily log and the working plan
// is cleared. Apply is a pure state transition over the document the
// caller passes in; the caller decides when to persist and when to
// dismiss the notice.
package rollover

import (
	"fmt"
	"time"

	"github.com/example/dayops/internal/models"
)

// Notice is the one-shot startup banner payload describing a rollover.
type Notice struct {
	PreviousDate       string `json:"previousDate"`
	CurrentDate        string `json:"currentDate"`
	RecoveredItemCount int    `json:"recoveredItemCount"`
}

// Apply runs the day-boundary check against doc. If the stored
// lastActiveDate matches localDate the stamp is simply refreshed and
// nil is returned. On a date change the current plan is deep-copied
// into a rollover daily log (only when non-empty), the plan is
// cleared, and the notice to display is returned.
func Apply(doc *models.Document, localDate string, now time.Time) *Notice {
	previous := doc.LastActiveDate
	if previous == localDate {
		return nil
	}

	doc.LastActiveDate = localDate
	if previous == "" {
		// First run on this device: nothing to archive.
		return nil
	}

	recovered := models.CloneToday(doc.Today)
	if len(recovered) > 0 {
		completed, incomplete := models.SplitByCompletion(recovered)
		log := &models.DailyLog{
			ID:         models.NewID(models.IDPrefix(models.CollectionDailyLogs), now),
			Date:       previous,
			Kind:       models.DailyLogKindRollover,
			Note:       fmt.Sprintf("Recovered %d Today item(s)", len(recovered)),
			Planned:    recovered,
			Completed:  completed,
			Incomplete: incomplete,
			CreatedAt:  now.UTC().Format(time.RFC3339),
		}
		doc.DailyLogs = append([]*models.DailyLog{log}, doc.DailyLogs...)
	}
	doc.Today = []*models.TodayItem{}

	return &Notice{
		PreviousDate:       previous,
		CurrentDate:        localDate,
		RecoveredItemCount: len(recovered),
	}
}
