// Package models contains the domain types for the dayops document
// store: the single in-memory Document, its collections, and the
// record types they hold. Persistence and merge logic live in
// internal/migrate and internal/snapshot.
package models

// CurrentSchemaVersion is the schema version this build reads and
// writes. Older persisted documents are migrated forward; newer ones
// are rejected in favor of a safe empty document.
const CurrentSchemaVersion = 3

// Storage status values for the persistence state machine.
const (
	StorageLoading  = "loading"
	StorageReady    = "ready"
	StorageDegraded = "degraded"
)

// Collection name constants. These are the JSON keys of the persisted
// document and the names used by generic library/lifecycle commands.
const (
	CollectionInbox       = "inbox"
	CollectionTasks       = "tasks"
	CollectionMeetings    = "meetings"
	CollectionPeople      = "people"
	CollectionProjects    = "projects"
	CollectionReminders   = "reminders"
	CollectionNotes       = "notes"
	CollectionFollowUps   = "followUps"
	CollectionToday       = "today"
	CollectionDailyLogs   = "dailyLogs"
	CollectionSuggestions = "suggestions"
)

// ArrayCollections lists every array-shaped collection in document
// order. The suggestions collection is object-shaped (three buckets)
// and is handled separately wherever this list is used.
var ArrayCollections = []string{
	CollectionInbox,
	CollectionTasks,
	CollectionMeetings,
	CollectionPeople,
	CollectionProjects,
	CollectionReminders,
	CollectionNotes,
	CollectionFollowUps,
	CollectionToday,
	CollectionDailyLogs,
}

// Document is the entire application state. Exactly one Document
// exists per running instance; it is exclusively owned by the store
// façade and handed out to subscribers only as deep copies.
type Document struct {
	SchemaVersion  int            `json:"schemaVersion"`
	Inbox          []*InboxItem   `json:"inbox"`
	Tasks          []*Task        `json:"tasks"`
	Meetings       []*Meeting     `json:"meetings"`
	People         []*Person      `json:"people"`
	Projects       []*Project     `json:"projects"`
	Reminders      []*Reminder    `json:"reminders"`
	Notes          []*Note        `json:"notes"`
	FollowUps      []*FollowUp    `json:"followUps"`
	Today          []*TodayItem   `json:"today"`
	DailyLogs      []*DailyLog    `json:"dailyLogs"`
	Suggestions    SuggestionSet  `json:"suggestions"`
	LastActiveDate string         `json:"lastActiveDate"`
	StorageStatus  string         `json:"storageStatus"`
	IsDemoMode     bool           `json:"isDemoMode"`
}

// NewDocument returns an empty document at the current schema version
// with every collection initialized to an empty array.
func NewDocument() *Document {
	return &Document{
		SchemaVersion: CurrentSchemaVersion,
		Inbox:         []*InboxItem{},
		Tasks:         []*Task{},
		Meetings:      []*Meeting{},
		People:        []*Person{},
		Projects:      []*Project{},
		Reminders:     []*Reminder{},
		Notes:         []*Note{},
		FollowUps:     []*FollowUp{},
		Today:         []*TodayItem{},
		DailyLogs:     []*DailyLog{},
		Suggestions: SuggestionSet{
			Must:   []*Suggestion{},
			Should: []*Suggestion{},
			Could:  []*Suggestion{},
		},
		StorageStatus: StorageLoading,
	}
}

// Lifecycle carries the flags every record uses for soft archive and
// soft delete. Deleted records are tombstones: hidden but recoverable
// until hard-deleted.
type Lifecycle struct {
	Archived  bool   `json:"archived"`
	Deleted   bool   `json:"deleted"`
	DeletedAt string `json:"deletedAt,omitempty"`
}

// Active reports whether the record is neither archived nor deleted.
func (l Lifecycle) Active() bool {
	return !l.Archived && !l.Deleted
}
