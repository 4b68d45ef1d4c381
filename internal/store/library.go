package store

import (
	"context"
	"strings"

	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/models"
	"github.com/example/dayops/internal/ports/primary"
)

// HardDeletePhrase must be typed verbatim (ignoring case and
// surrounding whitespace) to confirm an irreversible delete.
const HardDeletePhrase = "DELETE"

// CodeDeletePhraseMismatch is returned when the hard-delete
// confirmation phrase does not match.
const CodeDeletePhraseMismatch = "DELETE_PHRASE_MISMATCH"

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate = primary.TaskUpdate

// UpdateTask applies a partial update to a task, stamping every field
// it touches.
func (s *Store) UpdateTask(ctx context.Context, id string, update TaskUpdate) error {
	id, verr := validate.ID(id, "task id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		task := doc.FindTask(id)
		if task == nil || task.Deleted {
			return notFound("Task", id)
		}

		if update.Title != nil {
			title, verr := validate.RequiredText(*update.Title, "title", "")
			if verr != nil {
				return verr
			}
			task.Title = title
			s.writeStamp(&task.Stamps, "title", title)
		}
		if update.Status != nil {
			status, verr := validate.StatusEnum(*update.Status, models.TaskStatuses, "status")
			if verr != nil {
				return verr
			}
			task.Status = status
			s.writeStamp(&task.Stamps, "status", status)
		}
		if update.Due != nil {
			due, verr := validate.ISODate(*update.Due, "due")
			if verr != nil {
				return verr
			}
			task.Due = due
			s.writeStamp(&task.Stamps, "due", due)
		}
		if update.Scheduled != nil {
			scheduled, verr := validate.ISODate(*update.Scheduled, "scheduled")
			if verr != nil {
				return verr
			}
			task.Scheduled = scheduled
			s.writeStamp(&task.Stamps, "scheduled", scheduled)
		}
		if update.Priority != nil {
			task.Priority = *update.Priority
			s.writeStamp(&task.Stamps, "priority", *update.Priority)
		}
		if update.Context != nil {
			task.Context = *update.Context
			s.writeStamp(&task.Stamps, "context", *update.Context)
		}

		task.UpdatedAt = s.nowISO()
		return nil
	})
}

// MeetingUpdate is a partial meeting update; nil fields are untouched.
type MeetingUpdate = primary.MeetingUpdate

// UpdateMeeting applies a partial update to a meeting.
func (s *Store) UpdateMeeting(ctx context.Context, id string, update MeetingUpdate) error {
	id, verr := validate.ID(id, "meeting id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		meeting := doc.FindMeeting(id)
		if meeting == nil || meeting.Deleted {
			return notFound("Meeting", id)
		}

		if update.Title != nil {
			title, verr := validate.RequiredText(*update.Title, "title", "")
			if verr != nil {
				return verr
			}
			meeting.Title = title
			s.writeStamp(&meeting.Stamps, "title", title)
		}
		if update.ScheduleDate != nil {
			date, verr := validate.ISODate(*update.ScheduleDate, "scheduleDate")
			if verr != nil {
				return verr
			}
			meeting.ScheduleDate = date
			s.writeStamp(&meeting.Stamps, "scheduleDate", date)
		}
		if update.Time != nil {
			meeting.Time = *update.Time
			s.writeStamp(&meeting.Stamps, "time", *update.Time)
		}
		if update.MeetingType != nil {
			meetingType, verr := validate.StatusEnum(*update.MeetingType,
				[]string{models.MeetingTypeGroup, models.MeetingTypeOneToOne}, "meetingType")
			if verr != nil {
				return verr
			}
			meeting.MeetingType = meetingType
			s.writeStamp(&meeting.Stamps, "meetingType", meetingType)
		}
		if update.Agenda != nil {
			meeting.Agenda = *update.Agenda
			s.writeStamp(&meeting.Stamps, "agenda", *update.Agenda)
		}
		if update.Notes != nil {
			meeting.Notes = *update.Notes
			s.writeStamp(&meeting.Stamps, "notes", *update.Notes)
		}

		meeting.UpdatedAt = s.nowISO()
		return nil
	})
}

// PersonUpdate is a partial person update; nil fields are untouched.
type PersonUpdate = primary.PersonUpdate

// UpdatePerson applies a partial update to a person.
func (s *Store) UpdatePerson(ctx context.Context, id string, update PersonUpdate) error {
	id, verr := validate.ID(id, "person id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		person := doc.FindPerson(id)
		if person == nil || person.Deleted {
			return notFound("Person", id)
		}

		if update.Name != nil {
			name, verr := validate.RequiredText(*update.Name, "name", "")
			if verr != nil {
				return verr
			}
			person.Name = name
			s.writeStamp(&person.Stamps, "name", name)
		}
		if update.Email != nil {
			person.Email = *update.Email
			s.writeStamp(&person.Stamps, "email", *update.Email)
		}
		if update.Phone != nil {
			person.Phone = *update.Phone
			s.writeStamp(&person.Stamps, "phone", *update.Phone)
		}

		person.UpdatedAt = s.nowISO()
		return nil
	})
}

// ProjectUpdate is a partial project update; nil fields are untouched.
type ProjectUpdate = primary.ProjectUpdate

// UpdateProject applies a partial update to a project.
func (s *Store) UpdateProject(ctx context.Context, id string, update ProjectUpdate) error {
	id, verr := validate.ID(id, "project id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		project := doc.FindProject(id)
		if project == nil || project.Deleted {
			return notFound("Project", id)
		}

		if update.Name != nil {
			name, verr := validate.RequiredText(*update.Name, "name", "")
			if verr != nil {
				return verr
			}
			project.Name = name
			s.writeStamp(&project.Stamps, "name", name)
		}
		if update.Status != nil {
			project.Status = *update.Status
			s.writeStamp(&project.Stamps, "status", *update.Status)
		}

		project.UpdatedAt = s.nowISO()
		return nil
	})
}

// ReminderUpdate is a partial reminder update; nil fields are untouched.
type ReminderUpdate = primary.ReminderUpdate

// UpdateReminder applies a partial update to a reminder.
func (s *Store) UpdateReminder(ctx context.Context, id string, update ReminderUpdate) error {
	id, verr := validate.ID(id, "reminder id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		reminder := doc.FindReminder(id)
		if reminder == nil || reminder.Deleted {
			return notFound("Reminder", id)
		}

		if update.Title != nil {
			title, verr := validate.RequiredText(*update.Title, "title", "")
			if verr != nil {
				return verr
			}
			reminder.Title = title
			s.writeStamp(&reminder.Stamps, "title", title)
		}
		if update.Status != nil {
			reminder.Status = *update.Status
			s.writeStamp(&reminder.Stamps, "status", *update.Status)
		}
		if update.Due != nil {
			due, verr := validate.ISODate(*update.Due, "due")
			if verr != nil {
				return verr
			}
			reminder.Due = due
			s.writeStamp(&reminder.Stamps, "due", due)
		}
		if update.Scheduled != nil {
			scheduled, verr := validate.ISODate(*update.Scheduled, "scheduled")
			if verr != nil {
				return verr
			}
			reminder.Scheduled = scheduled
			s.writeStamp(&reminder.Stamps, "scheduled", scheduled)
		}

		reminder.UpdatedAt = s.nowISO()
		return nil
	})
}

// NoteUpdate is a partial note update; nil fields are untouched.
type NoteUpdate = primary.NoteUpdate

// UpdateNote applies a partial update to a note.
func (s *Store) UpdateNote(ctx context.Context, id string, update NoteUpdate) error {
	id, verr := validate.ID(id, "note id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		note := doc.FindNote(id)
		if note == nil || note.Deleted {
			return notFound("Note", id)
		}

		if update.Title != nil {
			title, verr := validate.RequiredText(*update.Title, "title", "")
			if verr != nil {
				return verr
			}
			note.Title = title
			s.writeStamp(&note.Stamps, "title", title)
		}
		if update.Content != nil {
			note.Content = *update.Content
			s.writeStamp(&note.Stamps, "content", *update.Content)
		}

		note.UpdatedAt = s.nowISO()
		return nil
	})
}

// ToggleFollowUpRecipient flips one recipient between pending and
// complete inside a follow-up group.
func (s *Store) ToggleFollowUpRecipient(ctx context.Context, followUpID, personID string) error {
	followUpID, verr := validate.ID(followUpID, "follow-up id")
	if verr != nil {
		return verr
	}
	personID, verr = validate.ID(personID, "personId")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		followUp := doc.FindFollowUp(followUpID)
		if followUp == nil || followUp.Deleted {
			return notFound("Follow-up", followUpID)
		}

		for i, recipient := range followUp.Recipients {
			if recipient.PersonID != personID {
				continue
			}
			if recipient.Status == "complete" {
				followUp.Recipients[i].Status = "pending"
			} else {
				followUp.Recipients[i].Status = "complete"
			}
			followUp.UpdatedAt = s.nowISO()
			s.writeStamp(&followUp.Stamps, "recipients", recipientsRaw(followUp.Recipients))
			return nil
		}
		return notFound("Recipient", personID)
	})
}

// ToggleArchiveEntity flips a record's archived flag in any collection.
func (s *Store) ToggleArchiveEntity(ctx context.Context, collection, id string) error {
	id, verr := validate.ID(id, "record id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		meta := doc.FindRecordMeta(collection, id)
		if meta == nil || meta.Lifecycle.Deleted {
			return notFound("Record", id)
		}
		meta.Lifecycle.Archived = !meta.Lifecycle.Archived
		return nil
	})
}

// RestoreEntity clears a record's tombstone and archived flags.
func (s *Store) RestoreEntity(ctx context.Context, collection, id string) error {
	id, verr := validate.ID(id, "record id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		meta := doc.FindRecordMeta(collection, id)
		if meta == nil {
			return notFound("Record", id)
		}
		meta.Lifecycle.Deleted = false
		meta.Lifecycle.DeletedAt = ""
		meta.Lifecycle.Archived = false
		return nil
	})
}

// SoftDeleteEntity tombstones a record. The record stays recoverable
// via RestoreEntity until it is hard-deleted.
func (s *Store) SoftDeleteEntity(ctx context.Context, collection, id string) error {
	id, verr := validate.ID(id, "record id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		meta := doc.FindRecordMeta(collection, id)
		if meta == nil {
			return notFound("Record", id)
		}
		meta.Lifecycle.Deleted = true
		meta.Lifecycle.DeletedAt = s.nowISO()
		return nil
	})
}

// HardDeleteEntity irreversibly removes a record. The caller must have
// typed the confirmation phrase; anything else aborts before mutation.
func (s *Store) HardDeleteEntity(ctx context.Context, collection, id, typedPhrase string) error {
	id, verr := validate.ID(id, "record id")
	if verr != nil {
		return verr
	}
	if strings.ToUpper(strings.TrimSpace(typedPhrase)) != HardDeletePhrase {
		return validate.New(CodeDeletePhraseMismatch,
			"Type DELETE to confirm permanent deletion.",
			validate.Details{"id": id})
	}
	return s.commit(ctx, func(doc *models.Document) error {
		if !doc.RemoveRecord(collection, id) {
			return notFound("Record", id)
		}
		return nil
	})
}

// recipientsRaw renders a recipient list in its stamped wire shape so
// merges can compare recipient edits as one value.
func recipientsRaw(recipients []models.FollowUpRecipient) []any {
	out := make([]any, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, map[string]any{"personId": r.PersonID, "status": r.Status})
	}
	return out
}
