package migrate

import (
	"github.com/example/dayops/internal/core/stamp"
	"github.com/example/dayops/internal/models"
)

// DecodeDocument converts a guard-passed state map into the typed
// document. Decoding is total: unknown fields are ignored, malformed
// values degrade to zero values, and nothing panics. Run guardPass (or
// UpgradeState) first so collections are array-shaped.
func DecodeDocument(state map[string]any) *models.Document {
	doc := models.NewDocument()
	doc.LastActiveDate = asString(state["lastActiveDate"])
	doc.StorageStatus = asString(state["storageStatus"])
	if doc.StorageStatus == "" {
		doc.StorageStatus = models.StorageReady
	}
	doc.IsDemoMode, _ = state["isDemoMode"].(bool)

	for _, record := range rawRecords(state, models.CollectionInbox) {
		doc.Inbox = append(doc.Inbox, decodeInbox(record))
	}
	for _, record := range rawRecords(state, models.CollectionTasks) {
		doc.Tasks = append(doc.Tasks, decodeTask(record))
	}
	for _, record := range rawRecords(state, models.CollectionMeetings) {
		doc.Meetings = append(doc.Meetings, decodeMeeting(record))
	}
	for _, record := range rawRecords(state, models.CollectionPeople) {
		doc.People = append(doc.People, decodePerson(record))
	}
	for _, record := range rawRecords(state, models.CollectionProjects) {
		doc.Projects = append(doc.Projects, decodeProject(record))
	}
	for _, record := range rawRecords(state, models.CollectionReminders) {
		doc.Reminders = append(doc.Reminders, decodeReminder(record))
	}
	for _, record := range rawRecords(state, models.CollectionNotes) {
		doc.Notes = append(doc.Notes, decodeNote(record))
	}
	for _, record := range rawRecords(state, models.CollectionFollowUps) {
		doc.FollowUps = append(doc.FollowUps, decodeFollowUp(record))
	}
	for _, record := range rawRecords(state, models.CollectionToday) {
		doc.Today = append(doc.Today, decodeTodayItem(record))
	}
	for _, record := range rawRecords(state, models.CollectionDailyLogs) {
		doc.DailyLogs = append(doc.DailyLogs, decodeDailyLog(record))
	}

	if suggestions, ok := state[models.CollectionSuggestions].(map[string]any); ok {
		doc.Suggestions = models.SuggestionSet{
			Must:   decodeSuggestions(suggestions[models.BucketMust]),
			Should: decodeSuggestions(suggestions[models.BucketShould]),
			Could:  decodeSuggestions(suggestions[models.BucketCould]),
		}
	}

	return doc
}

func decodeInbox(record map[string]any) *models.InboxItem {
	return &models.InboxItem{
		ID:          asString(record["id"]),
		Raw:         asString(record["raw"]),
		Type:        asString(record["type"]),
		Snoozed:     asBool(record["snoozed"]),
		Processed:   asBool(record["processed"]),
		ProcessedAt: asString(record["processedAt"]),
		CreatedAt:   asString(record["createdAt"]),
		Lifecycle:   decodeLifecycle(record),
		Stamps:      decodeStamps(record),
	}
}

func decodeTask(record map[string]any) *models.Task {
	return &models.Task{
		ID:             asString(record["id"]),
		Title:          asString(record["title"]),
		Status:         asString(record["status"]),
		Priority:       asInt(record["priority"]),
		Due:            asString(record["due"]),
		Scheduled:      asString(record["scheduled"]),
		Context:        asString(record["context"]),
		LinkedPeople:   asStringSlice(record["linkedPeople"]),
		LinkedProjects: asStringSlice(record["linkedProjects"]),
		CreatedAt:      asString(record["createdAt"]),
		UpdatedAt:      asString(record["updatedAt"]),
		Lifecycle:      decodeLifecycle(record),
		Stamps:         decodeStamps(record),
	}
}

func decodeMeeting(record map[string]any) *models.Meeting {
	return &models.Meeting{
		ID:             asString(record["id"]),
		Title:          asString(record["title"]),
		ScheduleDate:   asString(record["scheduleDate"]),
		Due:            asString(record["due"]),
		Time:           asString(record["time"]),
		MeetingType:    asString(record["meetingType"]),
		Agenda:         asString(record["agenda"]),
		Notes:          asString(record["notes"]),
		LinkedPeople:   asStringSlice(record["linkedPeople"]),
		LinkedProjects: asStringSlice(record["linkedProjects"]),
		CreatedAt:      asString(record["createdAt"]),
		UpdatedAt:      asString(record["updatedAt"]),
		Lifecycle:      decodeLifecycle(record),
		Stamps:         decodeStamps(record),
	}
}

func decodePerson(record map[string]any) *models.Person {
	return &models.Person{
		ID:        asString(record["id"]),
		Name:      asString(record["name"]),
		Email:     asString(record["email"]),
		Phone:     asString(record["phone"]),
		CreatedAt: asString(record["createdAt"]),
		UpdatedAt: asString(record["updatedAt"]),
		Lifecycle: decodeLifecycle(record),
		Stamps:    decodeStamps(record),
	}
}

func decodeProject(record map[string]any) *models.Project {
	return &models.Project{
		ID:        asString(record["id"]),
		Name:      asString(record["name"]),
		Status:    asString(record["status"]),
		CreatedAt: asString(record["createdAt"]),
		UpdatedAt: asString(record["updatedAt"]),
		Lifecycle: decodeLifecycle(record),
		Stamps:    decodeStamps(record),
	}
}

func decodeReminder(record map[string]any) *models.Reminder {
	return &models.Reminder{
		ID:        asString(record["id"]),
		Title:     asString(record["title"]),
		Status:    asString(record["status"]),
		Due:       asString(record["due"]),
		Scheduled: asString(record["scheduled"]),
		CreatedAt: asString(record["createdAt"]),
		UpdatedAt: asString(record["updatedAt"]),
		Lifecycle: decodeLifecycle(record),
		Stamps:    decodeStamps(record),
	}
}

func decodeNote(record map[string]any) *models.Note {
	return &models.Note{
		ID:        asString(record["id"]),
		Title:     asString(record["title"]),
		Content:   asString(record["content"]),
		CreatedAt: asString(record["createdAt"]),
		UpdatedAt: asString(record["updatedAt"]),
		Lifecycle: decodeLifecycle(record),
		Stamps:    decodeStamps(record),
	}
}

func decodeFollowUp(record map[string]any) *models.FollowUp {
	followUp := &models.FollowUp{
		ID:         asString(record["id"]),
		Title:      asString(record["title"]),
		Source:     asString(record["source"]),
		MeetingID:  asString(record["meetingId"]),
		Recipients: []models.FollowUpRecipient{},
		CreatedAt:  asString(record["createdAt"]),
		UpdatedAt:  asString(record["updatedAt"]),
		Lifecycle:  decodeLifecycle(record),
		Stamps:     decodeStamps(record),
	}
	if list, ok := record["recipients"].([]any); ok {
		for _, entry := range list {
			if m, ok := entry.(map[string]any); ok {
				status := asString(m["status"])
				if status == "" {
					status = "pending"
				}
				followUp.Recipients = append(followUp.Recipients, models.FollowUpRecipient{
					PersonID: asString(m["personId"]),
					Status:   status,
				})
			}
		}
	}
	return followUp
}

func decodeTodayItem(record map[string]any) *models.TodayItem {
	item := &models.TodayItem{
		ID:        asString(record["id"]),
		Title:     asString(record["title"]),
		Type:      asString(record["type"]),
		Bucket:    asString(record["bucket"]),
		Meta:      asString(record["meta"]),
		SourceID:  asString(record["sourceId"]),
		Status:    asString(record["status"]),
		CreatedAt: asString(record["createdAt"]),
		Lifecycle: decodeLifecycle(record),
		Stamps:    decodeStamps(record),
	}
	item.Execution = models.Execution{Status: item.Status, Notes: []models.ExecutionNote{}}
	if execution, ok := record["execution"].(map[string]any); ok {
		if status := asString(execution["status"]); status != "" {
			item.Execution.Status = status
		}
		item.Execution.UpdatedAt = asString(execution["updatedAt"])
		if notes, ok := execution["notes"].([]any); ok {
			for _, entry := range notes {
				if m, ok := entry.(map[string]any); ok {
					item.Execution.Notes = append(item.Execution.Notes, models.ExecutionNote{
						Text:      asString(m["text"]),
						CreatedAt: asString(m["createdAt"]),
					})
				}
			}
		}
	}
	if item.Execution.Status == "" {
		item.Execution.Status = models.TodayStatusNotStarted
	}
	item.Status = item.Execution.Status
	return item
}

func decodeDailyLog(record map[string]any) *models.DailyLog {
	log := &models.DailyLog{
		ID:        asString(record["id"]),
		Date:      asString(record["date"]),
		Kind:      asString(record["kind"]),
		Note:      asString(record["note"]),
		CreatedAt: asString(record["createdAt"]),
		Lifecycle: decodeLifecycle(record),
	}
	log.Planned = decodeTodayList(record["planned"])
	log.Completed = decodeTodayList(record["completed"])
	log.Incomplete = decodeTodayList(record["incomplete"])
	return log
}

func decodeTodayList(raw any) []*models.TodayItem {
	items := []*models.TodayItem{}
	if list, ok := raw.([]any); ok {
		for _, entry := range list {
			if m, ok := entry.(map[string]any); ok {
				items = append(items, decodeTodayItem(m))
			}
		}
	}
	return items
}

func decodeSuggestions(raw any) []*models.Suggestion {
	suggestions := []*models.Suggestion{}
	if list, ok := raw.([]any); ok {
		for _, entry := range list {
			if m, ok := entry.(map[string]any); ok {
				suggestions = append(suggestions, &models.Suggestion{
					ID:        asString(m["id"]),
					Title:     asString(m["title"]),
					Type:      asString(m["type"]),
					Meta:      asString(m["meta"]),
					SourceID:  asString(m["sourceId"]),
					CreatedAt: asString(m["createdAt"]),
				})
			}
		}
	}
	return suggestions
}

func decodeLifecycle(record map[string]any) models.Lifecycle {
	return models.Lifecycle{
		Archived:  asBool(record["archived"]),
		Deleted:   asBool(record["deleted"]),
		DeletedAt: asString(record["deletedAt"]),
	}
}

func decodeStamps(record map[string]any) stamp.Map {
	raw, ok := record["stamps"].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	stamps := make(stamp.Map, len(raw))
	for field, value := range raw {
		if s, ok := stamp.FromRaw(value); ok {
			stamps[field] = s
		}
	}
	if len(stamps) == 0 {
		return nil
	}
	return stamps
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

func asStringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, entry := range list {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
