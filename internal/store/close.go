package store

import (
	"context"
	"fmt"

	"github.com/example/dayops/internal/core/closure"
	"github.com/example/dayops/internal/core/suggest"
	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/models"
)

// CodeCloseBlocked is returned when the close-day readiness gate fails.
const CodeCloseBlocked = "CLOSE_BLOCKED"

// CheckCloseReadiness evaluates the close-day gate without mutating
// anything, so the UI can show blockers before the user commits.
func (s *Store) CheckCloseReadiness() closure.Readiness {
	s.mu.Lock()
	defer s.mu.Unlock()
	return closure.Evaluate(s.doc)
}

// CloseDay runs the 2-phase close: first the readiness gate (every
// incomplete plan item has a trailing note, no live inbox items), then
// the mutation that snapshots the plan into a daily log, wipes the
// plan, and rebuilds suggestions. Refused outright while storage is
// degraded, since the log must be durable.
func (s *Store) CloseDay(ctx context.Context) (*models.DailyLog, error) {
	var closed *models.DailyLog
	err := s.commit(ctx, func(doc *models.Document) error {
		if verr := requireReady(doc); verr != nil {
			return verr
		}

		readiness := closure.Evaluate(doc)
		if !readiness.Ready() {
			return validate.New(CodeCloseBlocked,
				"The day cannot be closed yet. Resolve the listed blockers first.",
				validate.Details{
					"blockers":          readiness.Blockers(),
					"missingTodayNotes": readiness.MissingTodayNotes,
					"unprocessedInbox":  readiness.UnprocessedInbox,
					"snoozedInbox":      readiness.SnoozedInbox,
				})
		}

		now := s.clock()
		localDate := s.localDate()
		plan := models.CloneToday(doc.Today)
		completed, incomplete := models.SplitByCompletion(plan)

		log := &models.DailyLog{
			ID:         models.NewID(models.IDPrefix(models.CollectionDailyLogs), now),
			Date:       localDate,
			Kind:       models.DailyLogKindClose,
			Note:       fmt.Sprintf("Closed with %d of %d item(s) complete", len(completed), len(plan)),
			Planned:    plan,
			Completed:  completed,
			Incomplete: incomplete,
			CreatedAt:  s.nowISO(),
		}
		doc.DailyLogs = append([]*models.DailyLog{log}, doc.DailyLogs...)
		doc.Today = []*models.TodayItem{}
		doc.Suggestions = suggest.Rebuild(doc, localDate, now)

		closed = log.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// GenerateDailyLogSnapshot records a manual daily log of the current
// plan without closing the day or touching the plan itself.
func (s *Store) GenerateDailyLogSnapshot(ctx context.Context, note string) (*models.DailyLog, error) {
	var created *models.DailyLog
	err := s.commit(ctx, func(doc *models.Document) error {
		now := s.clock()
		plan := models.CloneToday(doc.Today)
		completed, incomplete := models.SplitByCompletion(plan)

		if note == "" {
			note = fmt.Sprintf("Snapshot of %d item(s)", len(plan))
		}
		log := &models.DailyLog{
			ID:         models.NewID(models.IDPrefix(models.CollectionDailyLogs), now),
			Date:       s.localDate(),
			Kind:       models.DailyLogKindManual,
			Note:       note,
			Planned:    plan,
			Completed:  completed,
			Incomplete: incomplete,
			CreatedAt:  s.nowISO(),
		}
		doc.DailyLogs = append([]*models.DailyLog{log}, doc.DailyLogs...)
		created = log.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RebuildSuggestions recomputes the suggestion set from live state and
// persists the result.
func (s *Store) RebuildSuggestions(ctx context.Context) error {
	return s.commit(ctx, func(doc *models.Document) error {
		doc.Suggestions = suggest.Rebuild(doc, s.localDate(), s.clock())
		return nil
	})
}
