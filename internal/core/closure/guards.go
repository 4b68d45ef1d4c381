// Package closure contains the pure readiness rules for the close-day
// gate. Guards evaluate preconditions without side effects; the store
// façade owns the mutation that follows a ready verdict.
package closure

import (
	"strings"

	"github.com/example/dayops/internal/models"
)

// Blocker codes surfaced in close-day failures.
const (
	BlockerMissingTodayNotes = "missing_today_notes"
	BlockerUnprocessedInbox  = "unprocessed_inbox"
	BlockerSnoozedInbox      = "snoozed_inbox"
)

// Readiness enumerates everything still blocking the close-day gate.
// Each slice holds the offending record ids.
type Readiness struct {
	MissingTodayNotes []string `json:"missingTodayNotes"`
	UnprocessedInbox  []string `json:"unprocessedInbox"`
	SnoozedInbox      []string `json:"snoozedInbox"`
}

// Ready reports whether the day can be closed.
func (r Readiness) Ready() bool {
	return len(r.MissingTodayNotes) == 0 && len(r.UnprocessedInbox) == 0 && len(r.SnoozedInbox) == 0
}

// Blockers returns the active blocker codes in display priority order.
func (r Readiness) Blockers() []string {
	var blockers []string
	if len(r.MissingTodayNotes) > 0 {
		blockers = append(blockers, BlockerMissingTodayNotes)
	}
	if len(r.SnoozedInbox) > 0 {
		blockers = append(blockers, BlockerSnoozedInbox)
	}
	if len(r.UnprocessedInbox) > 0 {
		blockers = append(blockers, BlockerUnprocessedInbox)
	}
	return blockers
}

// Evaluate computes close-day readiness from the live document.
// Rules:
//   - Every incomplete Today item must end with a non-blank update
//     note. Completion is solely status == complete; every other
//     status counts as incomplete here.
//   - No active inbox item may remain unprocessed. Snoozed items are
//     reported separately from plainly unprocessed ones.
func Evaluate(doc *models.Document) Readiness {
	readiness := Readiness{
		MissingTodayNotes: []string{},
		UnprocessedInbox:  []string{},
		SnoozedInbox:      []string{},
	}

	for _, item := range doc.Today {
		if item.Deleted || item.Complete() {
			continue
		}
		if !hasTrailingNote(item) {
			readiness.MissingTodayNotes = append(readiness.MissingTodayNotes, item.ID)
		}
	}

	for _, item := range doc.Inbox {
		if item.Deleted || item.Archived || item.Processed {
			continue
		}
		if item.Snoozed {
			readiness.SnoozedInbox = append(readiness.SnoozedInbox, item.ID)
		} else {
			readiness.UnprocessedInbox = append(readiness.UnprocessedInbox, item.ID)
		}
	}

	return readiness
}

func hasTrailingNote(item *models.TodayItem) bool {
	note, ok := item.LastNote()
	if !ok {
		return false
	}
	return strings.TrimSpace(note.Text) != ""
}
