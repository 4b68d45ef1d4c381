package store

import (
	"context"
	"time"

	"github.com/example/dayops/internal/core/suggest"
	"github.com/example/dayops/internal/models"
)

// LoadSampleData replaces the document with a demo dataset and turns
// demo mode on. Useful for a first look at the tool without committing
// real data; ResetAllLocalData clears it again.
func (s *Store) LoadSampleData(ctx context.Context) error {
	s.mu.Lock()

	now := s.clock()
	localDate := s.localDate()
	doc := s.sampleDocument(now, localDate)
	doc.Suggestions = suggest.Rebuild(doc, localDate, now)

	if err := s.persist(ctx, doc); err != nil {
		s.doc.StorageStatus = models.StorageDegraded
		notify := s.notifyLocked()
		s.mu.Unlock()
		notify()
		return err
	}

	doc.StorageStatus = models.StorageReady
	s.doc = doc
	s.rolloverNotice = nil
	notify := s.notifyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

// ResetAllLocalData replaces the document with a fresh empty one.
func (s *Store) ResetAllLocalData(ctx context.Context) error {
	s.mu.Lock()

	doc := models.NewDocument()
	doc.LastActiveDate = s.localDate()

	if err := s.persist(ctx, doc); err != nil {
		s.doc.StorageStatus = models.StorageDegraded
		notify := s.notifyLocked()
		s.mu.Unlock()
		notify()
		return err
	}

	doc.StorageStatus = models.StorageReady
	s.doc = doc
	s.rolloverNotice = nil
	notify := s.notifyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

func (s *Store) sampleDocument(now time.Time, localDate string) *models.Document {
	doc := models.NewDocument()
	doc.IsDemoMode = true
	doc.LastActiveDate = localDate
	nowISO := s.nowISO()

	harper := s.newPerson("Harper", now)
	rowan := s.newPerson("Rowan", now)
	doc.People = append(doc.People, harper, rowan)

	roadmap := s.newProject("Roadmap", now)
	onboarding := s.newProject("Onboarding", now)
	// An old timestamp makes the staleness rule fire in the demo.
	onboarding.UpdatedAt = now.AddDate(0, 0, -10).UTC().Format(time.RFC3339)
	doc.Projects = append(doc.Projects, roadmap, onboarding)

	review := &models.Task{
		ID:             models.NewID(models.IDPrefix(models.CollectionTasks), now),
		Title:          "Review quarterly roadmap draft",
		Status:         models.TaskStatusInProgress,
		Priority:       1,
		Due:            localDate,
		LinkedProjects: []string{roadmap.ID},
		CreatedAt:      nowISO,
		UpdatedAt:      nowISO,
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"title": "Review quarterly roadmap draft", "status": models.TaskStatusInProgress,
			"due": localDate, "scheduled": "", "priority": 1, "context": "",
		}),
	}
	expenses := &models.Task{
		ID:        models.NewID(models.IDPrefix(models.CollectionTasks), now.Add(time.Millisecond)),
		Title:     "File expense report",
		Status:    models.TaskStatusBacklog,
		Priority:  3,
		Due:       shiftDate(localDate, 2),
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"title": "File expense report", "status": models.TaskStatusBacklog,
			"due": shiftDate(localDate, 2), "scheduled": "", "priority": 3, "context": "",
		}),
	}
	doc.Tasks = append(doc.Tasks, review, expenses)

	standup := &models.Meeting{
		ID:           models.NewID(models.IDPrefix(models.CollectionMeetings), now),
		Title:        "Team standup",
		ScheduleDate: localDate,
		Time:         "09:30",
		MeetingType:  models.MeetingTypeGroup,
		LinkedPeople: []string{harper.ID, rowan.ID},
		CreatedAt:    nowISO,
		UpdatedAt:    nowISO,
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"title": "Team standup", "scheduleDate": localDate,
			"time": "09:30", "meetingType": models.MeetingTypeGroup,
			"agenda": "", "notes": "",
		}),
	}
	doc.Meetings = append(doc.Meetings, standup)

	followUp := &models.FollowUp{
		ID:    models.NewID(models.IDPrefix(models.CollectionFollowUps), now),
		Title: "Share launch notes",
		Recipients: []models.FollowUpRecipient{
			{PersonID: harper.ID, Status: "pending"},
			{PersonID: rowan.ID, Status: "pending"},
		},
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"title": "Share launch notes",
		}),
	}
	doc.FollowUps = append(doc.FollowUps, followUp)

	reminder := &models.Reminder{
		ID:        models.NewID(models.IDPrefix(models.CollectionReminders), now),
		Title:     "Renew domain registration",
		Status:    "open",
		Due:       shiftDate(localDate, 3),
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"title": "Renew domain registration", "due": shiftDate(localDate, 3),
			"scheduled": "", "status": "open",
		}),
	}
	doc.Reminders = append(doc.Reminders, reminder)

	doc.Inbox = append(doc.Inbox, &models.InboxItem{
		ID:        models.NewID(models.IDPrefix(models.CollectionInbox), now),
		Raw:       "Book 1:1 with @Harper #Roadmap do:" + shiftDate(localDate, 1),
		CreatedAt: nowISO,
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"raw": "Book 1:1 with @Harper #Roadmap do:" + shiftDate(localDate, 1),
			"snoozed": false, "processed": false, "archived": false,
		}),
	})

	doc.Notes = append(doc.Notes, &models.Note{
		ID:        models.NewID(models.IDPrefix(models.CollectionNotes), now),
		Title:     "Welcome to the demo",
		Content:   "This dataset is synthetic. Reset it any time from the storage menu.",
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
		Stamps: stampFields(s.deviceID, now, map[string]any{
			"title": "Welcome to the demo", "content": "This dataset is synthetic. Reset it any time from the storage menu.",
		}),
	})

	return doc
}

// shiftDate moves a YYYY-MM-DD date by n days.
func shiftDate(date string, n int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format("2006-01-02")
}
