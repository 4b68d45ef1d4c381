// Package suggest derives the three-bucket recommendation set from
// live entity state. Rebuild is deterministic: identical input state
// yields identical bucket contents in identical order, so repeated
// rebuilds are byte-stable.
package suggest

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/dayops/internal/models"
)

// Sentinel used when ordering items that carry no due date: they sort
// after every real date.
const farFutureDate = "9999-12-31"

// Tasks without an explicit priority sort after !p1..!p5.
const unsetPriority = 99

// Rebuild recomputes {must, should, could} from scratch. Rules run in
// fixed precedence; the first rule to claim a composite id wins and
// later rules silently skip it. A suggestion that survived from the
// previous set keeps its original createdAt.
func Rebuild(doc *models.Document, localDate string, now time.Time) models.SuggestionSet {
	b := &builder{
		doc:       doc,
		localDate: localDate,
		createdAt: now.UTC().Format(time.RFC3339),
		claimed:   map[string]bool{},
		previous:  map[string]string{},
	}
	for _, sg := range doc.Suggestions.All() {
		b.previous[sg.ID] = sg.CreatedAt
	}

	set := models.SuggestionSet{
		Must:   b.buildMust(),
		Should: b.buildShould(),
		Could:  b.buildCould(),
	}
	return set
}

type builder struct {
	doc       *models.Document
	localDate string
	createdAt string
	claimed   map[string]bool
	previous  map[string]string
}

// add appends a suggestion to the bucket unless its id was already
// claimed by an earlier rule.
func (b *builder) add(bucket *[]*models.Suggestion, bucketKind, sourceKind, sourceID, title, meta string) {
	id := models.SuggestionID(bucketKind, sourceKind, sourceID)
	if b.claimed[id] {
		return
	}
	b.claimed[id] = true

	createdAt := b.createdAt
	if prior, ok := b.previous[id]; ok && prior != "" {
		createdAt = prior
	}
	*bucket = append(*bucket, &models.Suggestion{
		ID:        id,
		Title:     title,
		Type:      sourceKind,
		Meta:      meta,
		SourceID:  sourceID,
		CreatedAt: createdAt,
	})
}

func (b *builder) buildMust() []*models.Suggestion {
	must := []*models.Suggestion{}

	// Rule 1: meetings scheduled today.
	for _, m := range b.doc.Meetings {
		if m.Active() && m.ScheduleDate == b.localDate {
			meta := m.Time
			if meta == "" {
				meta = "scheduled today"
			}
			b.add(&must, models.BucketMust, "meeting", m.ID, m.Title, meta)
		}
	}

	// Rule 2: anything scheduled today.
	for _, t := range b.doc.Tasks {
		if t.Active() && t.Scheduled == b.localDate {
			b.add(&must, models.BucketMust, "task", t.ID, t.Title, "scheduled today")
		}
	}
	for _, r := range b.doc.Reminders {
		if r.Active() && r.Scheduled == b.localDate {
			b.add(&must, models.BucketMust, "reminder", r.ID, r.Title, "scheduled today")
		}
	}
	for _, m := range b.doc.Meetings {
		if m.Active() && m.ScheduleDate == b.localDate {
			b.add(&must, models.BucketMust, "meeting", m.ID, m.Title, "scheduled today")
		}
	}

	// Rule 3: anything due today.
	for _, t := range b.doc.Tasks {
		if t.Active() && t.Due == b.localDate {
			b.add(&must, models.BucketMust, "task", t.ID, t.Title, "due today")
		}
	}
	for _, r := range b.doc.Reminders {
		if r.Active() && r.Due == b.localDate {
			b.add(&must, models.BucketMust, "reminder", r.ID, r.Title, "due today")
		}
	}
	for _, m := range b.doc.Meetings {
		if m.Active() && m.Due == b.localDate {
			b.add(&must, models.BucketMust, "meeting", m.ID, m.Title, "due today")
		}
	}

	// Rule 4: follow-up groups with pending recipients.
	for _, f := range b.doc.FollowUps {
		if !f.Active() {
			continue
		}
		pending := f.PendingRecipients()
		if len(pending) == 0 {
			continue
		}
		b.add(&must, models.BucketMust, "followup", f.ID, f.Title, b.recipientPreview(pending))
	}

	return must
}

func (b *builder) buildShould() []*models.Suggestion {
	should := []*models.Suggestion{}

	// Rule 1: high-priority active tasks.
	for _, t := range b.doc.Tasks {
		if t.Active() && t.Priority >= 1 && t.Priority <= 2 && !taskClosed(t.Status) {
			b.add(&should, models.BucketShould, "task", t.ID, t.Title, fmt.Sprintf("priority %d", t.Priority))
		}
	}

	// Rule 2: due in the next 1-3 days.
	for _, t := range b.doc.Tasks {
		if t.Active() && dueSoon(b.localDate, t.Due) {
			b.add(&should, models.BucketShould, "task", t.ID, t.Title, dueMeta(b.localDate, t.Due))
		}
	}
	for _, r := range b.doc.Reminders {
		if r.Active() && dueSoon(b.localDate, r.Due) {
			b.add(&should, models.BucketShould, "reminder", r.ID, r.Title, dueMeta(b.localDate, r.Due))
		}
	}
	for _, m := range b.doc.Meetings {
		if m.Active() && dueSoon(b.localDate, m.Due) {
			b.add(&should, models.BucketShould, "meeting", m.ID, m.Title, dueMeta(b.localDate, m.Due))
		}
	}

	// Rule 3: stale projects.
	for _, p := range b.doc.Projects {
		if p.Active() && b.projectStale(p) {
			b.add(&should, models.BucketShould, "project", p.ID, p.Name, "no recent activity")
		}
	}

	return should
}

func (b *builder) buildCould() []*models.Suggestion {
	could := []*models.Suggestion{}

	var backlog []*models.Task
	for _, t := range b.doc.Tasks {
		if !t.Active() {
			continue
		}
		switch t.Status {
		case models.TaskStatusBacklog, models.TaskStatusWaiting, models.TaskStatusBlocked:
			backlog = append(backlog, t)
		}
	}

	// Ascending priority, then ascending due date, ties kept in
	// natural array order. Insertion sort keeps the tie-break stable.
	ordered := make([]*models.Task, 0, len(backlog))
	for _, t := range backlog {
		inserted := false
		for i, other := range ordered {
			if couldBefore(t, other) {
				ordered = append(ordered[:i], append([]*models.Task{t}, ordered[i:]...)...)
				inserted = true
				break
			}
		}
		if !inserted {
			ordered = append(ordered, t)
		}
	}

	for _, t := range ordered {
		if len(could) >= 8 {
			break
		}
		b.add(&could, models.BucketCould, "task", t.ID, t.Title, t.Status)
	}
	return could
}

// couldBefore reports strict ordering for the could bucket.
func couldBefore(a, b *models.Task) bool {
	ap, bp := a.Priority, b.Priority
	if ap == 0 {
		ap = unsetPriority
	}
	if bp == 0 {
		bp = unsetPriority
	}
	if ap != bp {
		return ap < bp
	}
	return couldDue(a) < couldDue(b)
}

func couldDue(t *models.Task) string {
	if t.Due == "" {
		return farFutureDate
	}
	return t.Due
}

// projectStale applies the staleness rule: seven or more days since
// the most recent update of the project or any of its linked active
// tasks, or no usable timestamp at all.
func (b *builder) projectStale(p *models.Project) bool {
	minDays := -1
	consider := func(timestamp string) {
		days, ok := daysSince(b.localDate, timestamp)
		if !ok {
			return
		}
		if minDays < 0 || days < minDays {
			minDays = days
		}
	}

	consider(p.UpdatedAt)
	for _, t := range b.doc.Tasks {
		if !t.Active() || taskClosed(t.Status) {
			continue
		}
		for _, linked := range t.LinkedProjects {
			if linked == p.ID {
				consider(t.UpdatedAt)
				break
			}
		}
	}

	if minDays < 0 {
		return true // nothing has a timestamp
	}
	return minDays >= 7
}

// recipientPreview formats up to two pending recipient names with a
// +N suffix beyond that.
func (b *builder) recipientPreview(pending []models.FollowUpRecipient) string {
	names := make([]string, 0, 2)
	for _, r := range pending {
		if len(names) == 2 {
			break
		}
		if person := b.doc.FindPerson(r.PersonID); person != nil && person.Name != "" {
			names = append(names, person.Name)
		} else {
			names = append(names, r.PersonID)
		}
	}

	preview := strings.Join(names, ", ")
	if extra := len(pending) - len(names); extra > 0 {
		preview = fmt.Sprintf("%s +%d", preview, extra)
	}
	return preview
}

func taskClosed(status string) bool {
	switch status {
	case models.TaskStatusDone, models.TaskStatusCancelled, models.TaskStatusArchived:
		return true
	}
	return false
}

// dueSoon reports whether due falls 1-3 days after localDate.
func dueSoon(localDate, due string) bool {
	days, ok := daysUntil(localDate, due)
	return ok && days >= 1 && days <= 3
}

func dueMeta(localDate, due string) string {
	days, _ := daysUntil(localDate, due)
	if days == 1 {
		return "due in 1 day"
	}
	return fmt.Sprintf("due in %d days", days)
}

func daysUntil(localDate, date string) (int, bool) {
	from, err := time.Parse("2006-01-02", localDate)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	return int(to.Sub(from).Hours() / 24), true
}

func daysSince(localDate, timestamp string) (int, bool) {
	if timestamp == "" {
		return 0, false
	}
	at, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		if d, derr := time.Parse("2006-01-02", timestamp); derr == nil {
			at = d
		} else {
			return 0, false
		}
	}
	local, err := time.Parse("2006-01-02", localDate)
	if err != nil {
		return 0, false
	}
	days := int(local.Sub(at.Truncate(24*time.Hour)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}
