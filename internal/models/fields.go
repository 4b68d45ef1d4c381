package models

// MutableFields is the per-collection allow-list of stamped fields:
// the fields that carry {value, updatedAt, updatedByDeviceId} stamps
// and are merged field-by-field on snapshot import. Fields outside the
// list merge whole-record (import wins).
var MutableFields = map[string][]string{
	CollectionInbox:     {"raw", "type", "archived", "snoozed", "processed"},
	CollectionTasks:     {"title", "status", "due", "scheduled", "priority", "context"},
	CollectionMeetings:  {"title", "scheduleDate", "time", "meetingType", "agenda", "notes"},
	CollectionPeople:    {"name", "email", "phone"},
	CollectionProjects:  {"name", "status"},
	CollectionReminders: {"title", "due", "scheduled", "status"},
	CollectionNotes:     {"title", "content"},
	CollectionFollowUps: {"title", "recipients"},
	CollectionToday:     {"status", "bucket"},
	CollectionDailyLogs: {},
}

// ID prefixes per collection, used when creating records.
var idPrefixes = map[string]string{
	CollectionInbox:     "in",
	CollectionTasks:     "t",
	CollectionMeetings:  "m",
	CollectionPeople:    "p",
	CollectionProjects:  "pr",
	CollectionReminders: "r",
	CollectionNotes:     "n",
	CollectionFollowUps: "f",
	CollectionToday:     "td",
	CollectionDailyLogs: "log",
}

// IDPrefix returns the id prefix for a collection, defaulting to "rec".
func IDPrefix(collection string) string {
	if prefix, ok := idPrefixes[collection]; ok {
		return prefix
	}
	return "rec"
}
