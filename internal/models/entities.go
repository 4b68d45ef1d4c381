package models

import "github.com/example/dayops/internal/core/stamp"

// Task status constants. Completion-like statuses (done, cancelled,
// archived) exclude a task from active suggestion rules.
const (
	TaskStatusBacklog    = "backlog"
	TaskStatusInProgress = "in progress"
	TaskStatusWaiting    = "waiting"
	TaskStatusBlocked    = "blocked"
	TaskStatusDone       = "done"
	TaskStatusCancelled  = "cancelled"
	TaskStatusArchived   = "archived"
)

// TaskStatuses is the allow-list for task status writes.
var TaskStatuses = []string{
	TaskStatusBacklog, TaskStatusInProgress, TaskStatusWaiting,
	TaskStatusBlocked, TaskStatusDone, TaskStatusCancelled, TaskStatusArchived,
}

// InboxItem is a raw capture. Processing never deletes it; it is
// marked processed and kept for audit.
type InboxItem struct {
	ID          string    `json:"id"`
	Raw         string    `json:"raw"`
	Type        string    `json:"type"`
	Snoozed     bool      `json:"snoozed"`
	Processed   bool      `json:"processed"`
	ProcessedAt string    `json:"processedAt,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	Lifecycle
	Stamps      stamp.Map `json:"stamps,omitempty"`
}

// Task is an actionable work item.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	Priority       int       `json:"priority,omitempty"`
	Due            string    `json:"due,omitempty"`
	Scheduled      string    `json:"scheduled,omitempty"`
	Context        string    `json:"context,omitempty"`
	LinkedPeople   []string  `json:"linkedPeople,omitempty"`
	LinkedProjects []string  `json:"linkedProjects,omitempty"`
	CreatedAt      string    `json:"createdAt,omitempty"`
	UpdatedAt      string    `json:"updatedAt,omitempty"`
	Lifecycle
	Stamps         stamp.Map `json:"stamps,omitempty"`
}

// Meeting types.
const (
	MeetingTypeGroup    = "group"
	MeetingTypeOneToOne = "one_to_one"
)

// Meeting is a scheduled conversation.
type Meeting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ScheduleDate   string    `json:"scheduleDate,omitempty"`
	Due            string    `json:"due,omitempty"`
	Time           string    `json:"time,omitempty"`
	MeetingType    string    `json:"meetingType,omitempty"`
	Agenda         string    `json:"agenda,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	LinkedPeople   []string  `json:"linkedPeople,omitempty"`
	LinkedProjects []string  `json:"linkedProjects,omitempty"`
	CreatedAt      string    `json:"createdAt,omitempty"`
	UpdatedAt      string    `json:"updatedAt,omitempty"`
	Lifecycle
	Stamps         stamp.Map `json:"stamps,omitempty"`
}

// Person is a contact referenced by @tokens and follow-ups.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
	Lifecycle
	Stamps    stamp.Map `json:"stamps,omitempty"`
}

// Project groups tasks referenced by #tokens.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status,omitempty"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
	Lifecycle
	Stamps    stamp.Map `json:"stamps,omitempty"`
}

// Reminder is a dated nudge without execution state.
type Reminder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status,omitempty"`
	Due       string    `json:"due,omitempty"`
	Scheduled string    `json:"scheduled,omitempty"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
	Lifecycle
	Stamps    stamp.Map `json:"stamps,omitempty"`
}

// Note is free-form reference text.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
	Lifecycle
	Stamps    stamp.Map `json:"stamps,omitempty"`
}

// FollowUpRecipient tracks one person's completion state inside a
// follow-up group.
type FollowUpRecipient struct {
	PersonID string `json:"personId"`
	Status   string `json:"status"`
}

// FollowUp is a group of recipients awaiting an update.
type FollowUp struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Source     string              `json:"source,omitempty"`
	MeetingID  string              `json:"meetingId,omitempty"`
	Recipients []FollowUpRecipient `json:"recipients"`
	CreatedAt  string              `json:"createdAt,omitempty"`
	UpdatedAt  string              `json:"updatedAt,omitempty"`
	Lifecycle
	Stamps     stamp.Map `json:"stamps,omitempty"`
}

// PendingRecipients returns the recipients still awaiting the update.
func (f *FollowUp) PendingRecipients() []FollowUpRecipient {
	var pending []FollowUpRecipient
	for _, r := range f.Recipients {
		if r.Status == "pending" {
			pending = append(pending, r)
		}
	}
	return pending
}
