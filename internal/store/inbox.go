package store

import (
	"context"
	"time"

	"github.com/example/dayops/internal/core/capture"
	"github.com/example/dayops/internal/core/stamp"
	"github.com/example/dayops/internal/core/suggest"
	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/models"
	"github.com/example/dayops/internal/ports/primary"
)

// AddInboxItem captures raw text as a new inbox item.
func (s *Store) AddInboxItem(ctx context.Context, raw string) (*models.InboxItem, error) {
	text, verr := validate.RequiredText(raw, "capture text", "")
	if verr != nil {
		return nil, verr
	}

	var created *models.InboxItem
	err := s.commit(ctx, func(doc *models.Document) error {
		now := s.clock()
		item := &models.InboxItem{
			ID:        models.NewID(models.IDPrefix(models.CollectionInbox), now),
			Raw:       text,
			CreatedAt: s.nowISO(),
			Stamps: stampFields(s.deviceID, now, map[string]any{
				"raw":       text,
				"snoozed":   false,
				"processed": false,
				"archived":  false,
			}),
		}
		doc.Inbox = append(doc.Inbox, item)
		created = item.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ToggleSnoozeInbox flips an inbox item's snoozed flag.
func (s *Store) ToggleSnoozeInbox(ctx context.Context, id string) error {
	id, verr := validate.ID(id, "inbox id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		item := doc.FindInbox(id)
		if item == nil || item.Deleted {
			return notFound("Inbox item", id)
		}
		item.Snoozed = !item.Snoozed
		s.writeStamp(&item.Stamps, "snoozed", item.Snoozed)
		return nil
	})
}

// ToggleArchiveInbox flips an inbox item's archived flag.
func (s *Store) ToggleArchiveInbox(ctx context.Context, id string) error {
	id, verr := validate.ID(id, "inbox id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		item := doc.FindInbox(id)
		if item == nil || item.Deleted {
			return notFound("Inbox item", id)
		}
		item.Archived = !item.Archived
		s.writeStamp(&item.Stamps, "archived", item.Archived)
		return nil
	})
}

// ProcessFields are the explicit form fields of inbox processing.
type ProcessFields = primary.ProcessFields

// ProcessInboxItem converts a capture into its target entity. The
// inbox item is marked processed, never deleted; people and projects
// referenced by @ and # tokens are created or reused by slugified
// name, and suggestions rebuild afterwards.
func (s *Store) ProcessInboxItem(ctx context.Context, inboxID, targetType string, fields ProcessFields) (string, error) {
	inboxID, verr := validate.ID(inboxID, "inbox id")
	if verr != nil {
		return "", verr
	}

	var createdID string
	err := s.commit(ctx, func(doc *models.Document) error {
		item := doc.FindInbox(inboxID)
		if item == nil || item.Deleted {
			return notFound("Inbox item", inboxID)
		}

		now := s.clock()
		localDate := s.localDate()
		parsed := capture.Parse(item.Raw, localDate)

		kind := firstNonEmpty(targetType, parsed.Tokens.Kind, parsed.Heuristics.Kind, "task")
		kind, verr := validate.StatusEnum(kind, capture.TargetKinds, "target type")
		if verr != nil {
			return verr
		}

		title, verr := validate.RequiredText(fields.Title, "title", parsed.Title)
		if verr != nil {
			return verr
		}
		due, verr := validate.ISODate(firstNonEmpty(fields.Due, parsed.Tokens.Due), "due")
		if verr != nil {
			return verr
		}
		scheduled, verr := validate.ISODate(
			firstNonEmpty(fields.Scheduled, parsed.Tokens.Scheduled, parsed.Heuristics.Scheduled), "scheduled")
		if verr != nil {
			return verr
		}
		priority := fields.Priority
		if priority == 0 {
			priority = parsed.Tokens.Priority
		}
		taskContext := firstNonEmpty(fields.Context, parsed.Tokens.Context)

		people := s.ensurePeople(doc, parsed.Tokens.People, now)
		projects := s.ensureProjects(doc, parsed.Tokens.Projects, now)

		id, err := s.createEntity(doc, kind, entitySpec{
			Title:     title,
			Due:       due,
			Scheduled: scheduled,
			Priority:  priority,
			Context:   taskContext,
			Time:      fields.Time,
			Agenda:    fields.Agenda,
			Content:   fields.Content,
			Email:     fields.Email,
			Phone:     fields.Phone,
			People:    people,
			Projects:  projects,
			Source:    item.ID,
		}, fields.Recipients, now)
		if err != nil {
			return err
		}
		createdID = id

		item.Processed = true
		item.ProcessedAt = s.nowISO()
		item.Type = kind
		s.writeStamp(&item.Stamps, "processed", true)
		s.writeStamp(&item.Stamps, "type", kind)

		doc.Suggestions = suggest.Rebuild(doc, localDate, now)
		return nil
	})
	if err != nil {
		return "", err
	}
	return createdID, nil
}

// entitySpec is the resolved field set a capture converts into.
type entitySpec struct {
	Title     string
	Due       string
	Scheduled string
	Priority  int
	Context   string
	Time      string
	Agenda    string
	Content   string
	Email     string
	Phone     string
	People    []string
	Projects  []string
	Source    string
}

func (s *Store) createEntity(doc *models.Document, kind string, spec entitySpec, recipients []validate.Recipient, now time.Time) (string, error) {
	nowISO := s.nowISO()
	switch kind {
	case "task":
		task := &models.Task{
			ID:             models.NewID(models.IDPrefix(models.CollectionTasks), now),
			Title:          spec.Title,
			Status:         models.TaskStatusBacklog,
			Priority:       spec.Priority,
			Due:            spec.Due,
			Scheduled:      spec.Scheduled,
			Context:        spec.Context,
			LinkedPeople:   spec.People,
			LinkedProjects: spec.Projects,
			CreatedAt:      nowISO,
			UpdatedAt:      nowISO,
			Stamps: stampFields(s.deviceID, now, map[string]any{
				"title": spec.Title, "status": models.TaskStatusBacklog,
				"due": spec.Due, "scheduled": spec.Scheduled,
				"priority": spec.Priority, "context": spec.Context,
			}),
		}
		doc.Tasks = append(doc.Tasks, task)
		return task.ID, nil

	case "meeting":
		meetingType := models.MeetingTypeGroup
		if len(spec.People) == 1 {
			meetingType = models.MeetingTypeOneToOne
		}
		meeting := &models.Meeting{
			ID:             models.NewID(models.IDPrefix(models.CollectionMeetings), now),
			Title:          spec.Title,
			ScheduleDate:   spec.Scheduled,
			Due:            spec.Due,
			Time:           spec.Time,
			MeetingType:    meetingType,
			Agenda:         spec.Agenda,
			LinkedPeople:   spec.People,
			LinkedProjects: spec.Projects,
			CreatedAt:      nowISO,
			UpdatedAt:      nowISO,
			Stamps: stampFields(s.deviceID, now, map[string]any{
				"title": spec.Title, "scheduleDate": spec.Scheduled,
				"time": spec.Time, "meetingType": meetingType,
				"agenda": spec.Agenda, "notes": "",
			}),
		}
		doc.Meetings = append(doc.Meetings, meeting)
		return meeting.ID, nil

	case "note":
		note := &models.Note{
			ID:        models.NewID(models.IDPrefix(models.CollectionNotes), now),
			Title:     spec.Title,
			Content:   spec.Content,
			CreatedAt: nowISO,
			UpdatedAt: nowISO,
			Stamps: stampFields(s.deviceID, now, map[string]any{
				"title": spec.Title, "content": spec.Content,
			}),
		}
		doc.Notes = append(doc.Notes, note)
		return note.ID, nil

	case "reminder":
		reminder := &models.Reminder{
			ID:        models.NewID(models.IDPrefix(models.CollectionReminders), now),
			Title:     spec.Title,
			Status:    "open",
			Due:       spec.Due,
			Scheduled: spec.Scheduled,
			CreatedAt: nowISO,
			UpdatedAt: nowISO,
			Stamps: stampFields(s.deviceID, now, map[string]any{
				"title": spec.Title, "due": spec.Due,
				"scheduled": spec.Scheduled, "status": "open",
			}),
		}
		doc.Reminders = append(doc.Reminders, reminder)
		return reminder.ID, nil

	case "followup":
		if recipients == nil {
			recipients = make([]validate.Recipient, 0, len(spec.People))
			for _, personID := range spec.People {
				recipients = append(recipients, validate.Recipient{PersonID: personID})
			}
		}
		normalized, verr := validate.FollowUpRecipients(recipients)
		if verr != nil {
			return "", verr
		}
		followUp := &models.FollowUp{
			ID:         models.NewID(models.IDPrefix(models.CollectionFollowUps), now),
			Title:      spec.Title,
			Source:     spec.Source,
			Recipients: recipientModels(normalized),
			CreatedAt:  nowISO,
			UpdatedAt:  nowISO,
			Stamps: stampFields(s.deviceID, now, map[string]any{
				"title": spec.Title,
			}),
		}
		doc.FollowUps = append(doc.FollowUps, followUp)
		return followUp.ID, nil

	case "project":
		if existing := doc.FindProjectBySlug(models.Slugify(spec.Title)); existing != nil {
			return existing.ID, nil
		}
		project := s.newProject(spec.Title, now)
		doc.Projects = append(doc.Projects, project)
		return project.ID, nil

	case "person":
		if existing := doc.FindPersonBySlug(models.Slugify(spec.Title)); existing != nil {
			return existing.ID, nil
		}
		person := s.newPerson(spec.Title, now)
		person.Email = spec.Email
		person.Phone = spec.Phone
		if spec.Email != "" {
			s.writeStamp(&person.Stamps, "email", spec.Email)
		}
		if spec.Phone != "" {
			s.writeStamp(&person.Stamps, "phone", spec.Phone)
		}
		doc.People = append(doc.People, person)
		return person.ID, nil
	}

	return "", validate.New("VALIDATION_STATUS_INVALID", "target type must be one of the allowed values.",
		validate.Details{"field": "target type", "value": kind, "allowed": capture.TargetKinds})
}

// ensurePeople resolves @name tokens to person ids, creating missing
// people. Matching is case-insensitive on the slugified name.
func (s *Store) ensurePeople(doc *models.Document, names []string, now time.Time) []string {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if existing := doc.FindPersonBySlug(models.Slugify(name)); existing != nil {
			ids = append(ids, existing.ID)
			continue
		}
		person := s.newPerson(name, now)
		doc.People = append(doc.People, person)
		ids = append(ids, person.ID)
	}
	return ids
}

// ensureProjects resolves #name tokens to project ids.
func (s *Store) ensureProjects(doc *models.Document, names []string, now time.Time) []string {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if existing := doc.FindProjectBySlug(models.Slugify(name)); existing != nil {
			ids = append(ids, existing.ID)
			continue
		}
		project := s.newProject(name, now)
		doc.Projects = append(doc.Projects, project)
		ids = append(ids, project.ID)
	}
	return ids
}

func (s *Store) newPerson(name string, now time.Time) *models.Person {
	return &models.Person{
		ID:        models.NewID(models.IDPrefix(models.CollectionPeople), now),
		Name:      name,
		CreatedAt: s.nowISO(),
		UpdatedAt: s.nowISO(),
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"name": name, "email": "", "phone": "",
		}),
	}
}

func (s *Store) newProject(name string, now time.Time) *models.Project {
	return &models.Project{
		ID:        models.NewID(models.IDPrefix(models.CollectionProjects), now),
		Name:      name,
		Status:    "active",
		CreatedAt: s.nowISO(),
		UpdatedAt: s.nowISO(),
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"name": name, "status": "active",
		}),
	}
}

func recipientModels(recipients []validate.Recipient) []models.FollowUpRecipient {
	out := make([]models.FollowUpRecipient, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, models.FollowUpRecipient{PersonID: r.PersonID, Status: r.Status})
	}
	return out
}

// writeStamp records a stamped field write at the current clock time,
// allocating the stamp map on first use for records that predate
// stamping.
func (s *Store) writeStamp(stamps *stamp.Map, field string, value any) {
	if *stamps == nil {
		*stamps = stamp.Map{}
	}
	stamp.Write(*stamps, field, value, s.deviceID, s.clock())
}

// stampFields builds the initial stamp map of a freshly created record.
func stampFields(deviceID string, at time.Time, values map[string]any) stamp.Map {
	stamps := make(stamp.Map, len(values))
	for field, value := range values {
		stamps[field] = stamp.New(value, deviceID, at)
	}
	return stamps
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
