package models

import "github.com/example/dayops/internal/core/stamp"

// Deep copies for the document and every record type. Stamp values are
// treated as immutable once written, so cloning copies the stamp map
// without descending into stored values.

func cloneStamps(in stamp.Map) stamp.Map {
	if in == nil {
		return nil
	}
	out := make(stamp.Map, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

// Clone returns a deep copy of the inbox item.
func (i *InboxItem) Clone() *InboxItem {
	out := *i
	out.Stamps = cloneStamps(i.Stamps)
	return &out
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	out := *t
	out.LinkedPeople = cloneStrings(t.LinkedPeople)
	out.LinkedProjects = cloneStrings(t.LinkedProjects)
	out.Stamps = cloneStamps(t.Stamps)
	return &out
}

// Clone returns a deep copy of the meeting.
func (m *Meeting) Clone() *Meeting {
	out := *m
	out.LinkedPeople = cloneStrings(m.LinkedPeople)
	out.LinkedProjects = cloneStrings(m.LinkedProjects)
	out.Stamps = cloneStamps(m.Stamps)
	return &out
}

// Clone returns a deep copy of the person.
func (p *Person) Clone() *Person {
	out := *p
	out.Stamps = cloneStamps(p.Stamps)
	return &out
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	out := *p
	out.Stamps = cloneStamps(p.Stamps)
	return &out
}

// Clone returns a deep copy of the reminder.
func (r *Reminder) Clone() *Reminder {
	out := *r
	out.Stamps = cloneStamps(r.Stamps)
	return &out
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	out := *n
	out.Stamps = cloneStamps(n.Stamps)
	return &out
}

// Clone returns a deep copy of the follow-up group.
func (f *FollowUp) Clone() *FollowUp {
	out := *f
	out.Recipients = append([]FollowUpRecipient{}, f.Recipients...)
	out.Stamps = cloneStamps(f.Stamps)
	return &out
}

// Clone returns a deep copy of the Today item, including its
// append-only note log.
func (t *TodayItem) Clone() *TodayItem {
	out := *t
	out.Execution.Notes = append([]ExecutionNote{}, t.Execution.Notes...)
	out.Stamps = cloneStamps(t.Stamps)
	return &out
}

// Clone returns a deep copy of the daily log.
func (d *DailyLog) Clone() *DailyLog {
	out := *d
	out.Planned = CloneToday(d.Planned)
	out.Completed = CloneToday(d.Completed)
	out.Incomplete = CloneToday(d.Incomplete)
	return &out
}

// Clone returns a deep copy of the suggestion.
func (s *Suggestion) Clone() *Suggestion {
	out := *s
	return &out
}

// Clone returns a deep copy of the suggestion set.
func (s SuggestionSet) Clone() SuggestionSet {
	return SuggestionSet{
		Must:   CloneSuggestions(s.Must),
		Should: CloneSuggestions(s.Should),
		Could:  CloneSuggestions(s.Could),
	}
}

// CloneInbox deep-copies an inbox collection.
func CloneInbox(in []*InboxItem) []*InboxItem {
	out := make([]*InboxItem, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneTasks deep-copies a task collection.
func CloneTasks(in []*Task) []*Task {
	out := make([]*Task, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneMeetings deep-copies a meeting collection.
func CloneMeetings(in []*Meeting) []*Meeting {
	out := make([]*Meeting, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// ClonePeople deep-copies a person collection.
func ClonePeople(in []*Person) []*Person {
	out := make([]*Person, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneProjects deep-copies a project collection.
func CloneProjects(in []*Project) []*Project {
	out := make([]*Project, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneReminders deep-copies a reminder collection.
func CloneReminders(in []*Reminder) []*Reminder {
	out := make([]*Reminder, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneNotes deep-copies a note collection.
func CloneNotes(in []*Note) []*Note {
	out := make([]*Note, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneFollowUps deep-copies a follow-up collection.
func CloneFollowUps(in []*FollowUp) []*FollowUp {
	out := make([]*FollowUp, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneToday deep-copies a Today plan.
func CloneToday(in []*TodayItem) []*TodayItem {
	out := make([]*TodayItem, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneDailyLogs deep-copies a daily log collection.
func CloneDailyLogs(in []*DailyLog) []*DailyLog {
	out := make([]*DailyLog, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// CloneSuggestions deep-copies a suggestion bucket.
func CloneSuggestions(in []*Suggestion) []*Suggestion {
	out := make([]*Suggestion, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

// Clone returns a deep copy of the whole document. Subscribers receive
// clones so external mutation can never corrupt the owned state.
func (d *Document) Clone() *Document {
	out := *d
	out.Inbox = CloneInbox(d.Inbox)
	out.Tasks = CloneTasks(d.Tasks)
	out.Meetings = CloneMeetings(d.Meetings)
	out.People = ClonePeople(d.People)
	out.Projects = CloneProjects(d.Projects)
	out.Reminders = CloneReminders(d.Reminders)
	out.Notes = CloneNotes(d.Notes)
	out.FollowUps = CloneFollowUps(d.FollowUps)
	out.Today = CloneToday(d.Today)
	out.DailyLogs = CloneDailyLogs(d.DailyLogs)
	out.Suggestions = d.Suggestions.Clone()
	return &out
}
