package models

// Generic by-id access used by the library lifecycle commands
// (archive/restore/delete work on any collection). Each accessor is an
// explicit switch per collection; collections stay strongly typed.

// FindInbox returns the inbox item with the given id.
func (d *Document) FindInbox(id string) *InboxItem {
	for _, item := range d.Inbox {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindTask returns the task with the given id.
func (d *Document) FindTask(id string) *Task {
	for _, item := range d.Tasks {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindMeeting returns the meeting with the given id.
func (d *Document) FindMeeting(id string) *Meeting {
	for _, item := range d.Meetings {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindPerson returns the person with the given id.
func (d *Document) FindPerson(id string) *Person {
	for _, item := range d.People {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindPersonBySlug returns the person whose slugified name matches.
func (d *Document) FindPersonBySlug(slug string) *Person {
	for _, item := range d.People {
		if !item.Deleted && Slugify(item.Name) == slug {
			return item
		}
	}
	return nil
}

// FindProject returns the project with the given id.
func (d *Document) FindProject(id string) *Project {
	for _, item := range d.Projects {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindProjectBySlug returns the project whose slugified name matches.
func (d *Document) FindProjectBySlug(slug string) *Project {
	for _, item := range d.Projects {
		if !item.Deleted && Slugify(item.Name) == slug {
			return item
		}
	}
	return nil
}

// FindReminder returns the reminder with the given id.
func (d *Document) FindReminder(id string) *Reminder {
	for _, item := range d.Reminders {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindNote returns the note with the given id.
func (d *Document) FindNote(id string) *Note {
	for _, item := range d.Notes {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindFollowUp returns the follow-up group with the given id.
func (d *Document) FindFollowUp(id string) *FollowUp {
	for _, item := range d.FollowUps {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindToday returns the Today item with the given id.
func (d *Document) FindToday(id string) *TodayItem {
	for _, item := range d.Today {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// RecordMeta is the collection-independent view of a record used by
// the generic lifecycle commands.
type RecordMeta struct {
	Label     string
	Lifecycle *Lifecycle
}

// FindRecordMeta resolves a record's label and lifecycle flags by
// collection and id. Returns nil when the record does not exist.
func (d *Document) FindRecordMeta(collection, id string) *RecordMeta {
	switch collection {
	case CollectionInbox:
		if r := d.FindInbox(id); r != nil {
			return &RecordMeta{Label: r.Raw, Lifecycle: &r.Lifecycle}
		}
	case CollectionTasks:
		if r := d.FindTask(id); r != nil {
			return &RecordMeta{Label: r.Title, Lifecycle: &r.Lifecycle}
		}
	case CollectionMeetings:
		if r := d.FindMeeting(id); r != nil {
			return &RecordMeta{Label: r.Title, Lifecycle: &r.Lifecycle}
		}
	case CollectionPeople:
		if r := d.FindPerson(id); r != nil {
			return &RecordMeta{Label: r.Name, Lifecycle: &r.Lifecycle}
		}
	case CollectionProjects:
		if r := d.FindProject(id); r != nil {
			return &RecordMeta{Label: r.Name, Lifecycle: &r.Lifecycle}
		}
	case CollectionReminders:
		if r := d.FindReminder(id); r != nil {
			return &RecordMeta{Label: r.Title, Lifecycle: &r.Lifecycle}
		}
	case CollectionNotes:
		if r := d.FindNote(id); r != nil {
			return &RecordMeta{Label: r.Title, Lifecycle: &r.Lifecycle}
		}
	case CollectionFollowUps:
		if r := d.FindFollowUp(id); r != nil {
			return &RecordMeta{Label: r.Title, Lifecycle: &r.Lifecycle}
		}
	case CollectionToday:
		if r := d.FindToday(id); r != nil {
			return &RecordMeta{Label: r.Title, Lifecycle: &r.Lifecycle}
		}
	case CollectionDailyLogs:
		for _, r := range d.DailyLogs {
			if r.ID == id {
				return &RecordMeta{Label: r.Date, Lifecycle: &r.Lifecycle}
			}
		}
	}
	return nil
}

// RemoveRecord physically removes a record from a collection. Only the
// hard-delete path calls this; everything else tombstones.
func (d *Document) RemoveRecord(collection, id string) bool {
	switch collection {
	case CollectionInbox:
		for i, r := range d.Inbox {
			if r.ID == id {
				d.Inbox = append(d.Inbox[:i], d.Inbox[i+1:]...)
				return true
			}
		}
	case CollectionTasks:
		for i, r := range d.Tasks {
			if r.ID == id {
				d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
				return true
			}
		}
	case CollectionMeetings:
		for i, r := range d.Meetings {
			if r.ID == id {
				d.Meetings = append(d.Meetings[:i], d.Meetings[i+1:]...)
				return true
			}
		}
	case CollectionPeople:
		for i, r := range d.People {
			if r.ID == id {
				d.People = append(d.People[:i], d.People[i+1:]...)
				return true
			}
		}
	case CollectionProjects:
		for i, r := range d.Projects {
			if r.ID == id {
				d.Projects = append(d.Projects[:i], d.Projects[i+1:]...)
				return true
			}
		}
	case CollectionReminders:
		for i, r := range d.Reminders {
			if r.ID == id {
				d.Reminders = append(d.Reminders[:i], d.Reminders[i+1:]...)
				return true
			}
		}
	case CollectionNotes:
		for i, r := range d.Notes {
			if r.ID == id {
				d.Notes = append(d.Notes[:i], d.Notes[i+1:]...)
				return true
			}
		}
	case CollectionFollowUps:
		for i, r := range d.FollowUps {
			if r.ID == id {
				d.FollowUps = append(d.FollowUps[:i], d.FollowUps[i+1:]...)
				return true
			}
		}
	case CollectionToday:
		for i, r := range d.Today {
			if r.ID == id {
				d.Today = append(d.Today[:i], d.Today[i+1:]...)
				return true
			}
		}
	case CollectionDailyLogs:
		for i, r := range d.DailyLogs {
			if r.ID == id {
				d.DailyLogs = append(d.DailyLogs[:i], d.DailyLogs[i+1:]...)
				return true
			}
		}
	}
	return false
}
