package primary

import "context"

// LibraryService defines the primary port for editing and lifecycle
// management of library entities.
type LibraryService interface {
	// UpdateTask applies a partial update to a task.
	UpdateTask(ctx context.Context, id string, update TaskUpdate) error

	// UpdateMeeting applies a partial update to a meeting.
	UpdateMeeting(ctx context.Context, id string, update MeetingUpdate) error

	// UpdatePerson applies a partial update to a person.
	UpdatePerson(ctx context.Context, id string, update PersonUpdate) error

	// UpdateProject applies a partial update to a project.
	UpdateProject(ctx context.Context, id string, update ProjectUpdate) error

	// UpdateReminder applies a partial update to a reminder.
	UpdateReminder(ctx context.Context, id string, update ReminderUpdate) error

	// UpdateNote applies a partial update to a note.
	UpdateNote(ctx context.Context, id string, update NoteUpdate) error

	// ToggleFollowUpRecipient flips one recipient between pending and
	// complete inside a follow-up group.
	ToggleFollowUpRecipient(ctx context.Context, followUpID, personID string) error

	// ToggleArchiveEntity flips a record's archived flag.
	ToggleArchiveEntity(ctx context.Context, collection, id string) error

	// RestoreEntity clears a record's tombstone and archived flags.
	RestoreEntity(ctx context.Context, collection, id string) error

	// SoftDeleteEntity tombstones a record.
	SoftDeleteEntity(ctx context.Context, collection, id string) error

	// HardDeleteEntity irreversibly removes a record after phrase
	// confirmation.
	HardDeleteEntity(ctx context.Context, collection, id, typedPhrase string) error
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title     *string
	Status    *string
	Due       *string
	Scheduled *string
	Priority  *int
	Context   *string
}

// MeetingUpdate is a partial meeting update; nil fields are untouched.
type MeetingUpdate struct {
	Title        *string
	ScheduleDate *string
	Time         *string
	MeetingType  *string
	Agenda       *string
	Notes        *string
}

// PersonUpdate is a partial person update; nil fields are untouched.
type PersonUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// ProjectUpdate is a partial project update; nil fields are untouched.
type ProjectUpdate struct {
	Name   *string
	Status *string
}

// ReminderUpdate is a partial reminder update; nil fields are untouched.
type ReminderUpdate struct {
	Title     *string
	Status    *string
	Due       *string
	Scheduled *string
}

// NoteUpdate is a partial note update; nil fields are untouched.
type NoteUpdate struct {
	Title   *string
	Content *string
}
