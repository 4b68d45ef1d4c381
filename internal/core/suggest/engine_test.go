package suggest

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/example/dayops/internal/models"
)

const localDate = "2026-02-17"

var now = time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)

func testDoc() *models.Document {
	return models.NewDocument()
}

func TestRebuildMustRules(t *testing.T) {
	doc := testDoc()
	doc.Meetings = append(doc.Meetings, &models.Meeting{
		ID: "m_1", Title: "Standup", ScheduleDate: localDate, Time: "09:30",
	})
	doc.Tasks = append(doc.Tasks, &models.Task{
		ID: "t_1", Title: "Prep demo", Status: models.TaskStatusInProgress, Scheduled: localDate,
	})
	doc.Reminders = append(doc.Reminders, &models.Reminder{
		ID: "r_1", Title: "Pay invoice", Due: localDate,
	})
	doc.People = append(doc.People, &models.Person{ID: "p_1", Name: "Harper"})
	doc.FollowUps = append(doc.FollowUps, &models.FollowUp{
		ID: "f_1", Title: "Launch notes",
		Recipients: []models.FollowUpRecipient{{PersonID: "p_1", Status: "pending"}},
	})

	set := Rebuild(doc, localDate, now)

	wantIDs := []string{
		"sg_must_meeting_m_1",
		"sg_must_task_t_1",
		"sg_must_reminder_r_1",
		"sg_must_followup_f_1",
	}
	gotIDs := make([]string, 0, len(set.Must))
	for _, sg := range set.Must {
		gotIDs = append(gotIDs, sg.ID)
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("must ids = %v, want %v", gotIDs, wantIDs)
	}

	// Meeting meta prefers the scheduled time.
	if set.Must[0].Meta != "09:30" {
		t.Errorf("meeting meta = %q", set.Must[0].Meta)
	}
	// Follow-up meta previews the pending recipient by name.
	if set.Must[3].Meta != "Harper" {
		t.Errorf("followup meta = %q", set.Must[3].Meta)
	}
}

func TestRecipientPreviewCapsAtTwoNames(t *testing.T) {
	doc := testDoc()
	for i := 1; i <= 4; i++ {
		doc.People = append(doc.People, &models.Person{
			ID: fmt.Sprintf("p_%d", i), Name: fmt.Sprintf("Person %d", i),
		})
	}
	recipients := make([]models.FollowUpRecipient, 0, 4)
	for i := 1; i <= 4; i++ {
		recipients = append(recipients, models.FollowUpRecipient{
			PersonID: fmt.Sprintf("p_%d", i), Status: "pending",
		})
	}
	doc.FollowUps = append(doc.FollowUps, &models.FollowUp{
		ID: "f_1", Title: "Big thread", Recipients: recipients,
	})

	set := Rebuild(doc, localDate, now)
	if len(set.Must) != 1 {
		t.Fatalf("must = %d", len(set.Must))
	}
	if set.Must[0].Meta != "Person 1, Person 2 +2" {
		t.Errorf("meta = %q", set.Must[0].Meta)
	}
}

func TestRebuildShouldRules(t *testing.T) {
	doc := testDoc()
	doc.Tasks = append(doc.Tasks,
		&models.Task{ID: "t_p1", Title: "Urgent", Status: models.TaskStatusBacklog, Priority: 1},
		&models.Task{ID: "t_p2", Title: "Important", Status: models.TaskStatusWaiting, Priority: 2},
		&models.Task{ID: "t_p3", Title: "Normal", Status: models.TaskStatusBacklog, Priority: 3},
		&models.Task{ID: "t_done", Title: "Finished", Status: models.TaskStatusDone, Priority: 1},
		&models.Task{ID: "t_soon", Title: "Due soon", Status: models.TaskStatusBacklog, Due: "2026-02-19"},
		&models.Task{ID: "t_far", Title: "Due later", Status: models.TaskStatusBacklog, Due: "2026-02-25"},
	)
	doc.Projects = append(doc.Projects,
		&models.Project{ID: "pr_stale", Name: "Dusty", UpdatedAt: "2026-02-01T00:00:00Z"},
		&models.Project{ID: "pr_fresh", Name: "Active", UpdatedAt: "2026-02-16T00:00:00Z"},
		&models.Project{ID: "pr_untracked", Name: "No timestamps"},
	)

	set := Rebuild(doc, localDate, now)
	got := map[string]string{}
	for _, sg := range set.Should {
		got[sg.ID] = sg.Meta
	}

	if _, ok := got["sg_should_task_t_p1"]; !ok {
		t.Error("missing priority-1 task")
	}
	if _, ok := got["sg_should_task_t_p2"]; !ok {
		t.Error("missing priority-2 task")
	}
	if _, ok := got["sg_should_task_t_p3"]; ok {
		t.Error("priority-3 task should not appear")
	}
	if _, ok := got["sg_should_task_t_done"]; ok {
		t.Error("done task should not appear")
	}
	if meta := got["sg_should_task_t_soon"]; meta != "due in 2 days" {
		t.Errorf("due-soon meta = %q", meta)
	}
	if _, ok := got["sg_should_task_t_far"]; ok {
		t.Error("task due beyond 3 days should not appear")
	}
	if _, ok := got["sg_should_project_pr_stale"]; !ok {
		t.Error("missing stale project")
	}
	if _, ok := got["sg_should_project_pr_fresh"]; ok {
		t.Error("fresh project should not appear")
	}
	if _, ok := got["sg_should_project_pr_untracked"]; !ok {
		t.Error("project with no timestamps counts as stale")
	}
}

func TestProjectStaleUsesMostRecentLinkedActivity(t *testing.T) {
	doc := testDoc()
	doc.Projects = append(doc.Projects, &models.Project{
		ID: "pr_1", Name: "Rescued", UpdatedAt: "2026-01-01T00:00:00Z",
	})
	// A recently touched linked task keeps the project fresh.
	doc.Tasks = append(doc.Tasks, &models.Task{
		ID: "t_1", Title: "Recent work", Status: models.TaskStatusInProgress,
		LinkedProjects: []string{"pr_1"}, UpdatedAt: "2026-02-16T00:00:00Z",
	})

	set := Rebuild(doc, localDate, now)
	for _, sg := range set.Should {
		if sg.SourceID == "pr_1" {
			t.Error("project with recent linked task must not be stale")
		}
	}
}

func TestRebuildCouldOrderingAndCap(t *testing.T) {
	doc := testDoc()
	for i := 0; i < 12; i++ {
		doc.Tasks = append(doc.Tasks, &models.Task{
			ID:     fmt.Sprintf("t_%02d", i),
			Title:  fmt.Sprintf("Task %02d", i),
			Status: models.TaskStatusBacklog,
		})
	}
	// One prioritized and one dated task must sort ahead of the rest.
	doc.Tasks[5].Priority = 4
	doc.Tasks[7].Due = "2026-03-01"

	set := Rebuild(doc, localDate, now)
	if len(set.Could) != 8 {
		t.Fatalf("could = %d, want 8", len(set.Could))
	}
	if set.Could[0].SourceID != "t_05" {
		t.Errorf("first = %s, want t_05 (lowest priority number)", set.Could[0].SourceID)
	}
	if set.Could[1].SourceID != "t_07" {
		t.Errorf("second = %s, want t_07 (has a due date)", set.Could[1].SourceID)
	}
	// Remaining ties keep natural array order.
	if set.Could[2].SourceID != "t_00" {
		t.Errorf("third = %s, want t_00", set.Could[2].SourceID)
	}
}

func TestFirstRuleClaimsID(t *testing.T) {
	doc := testDoc()
	// Due today and priority 1: must rule claims it, should rule skips.
	doc.Tasks = append(doc.Tasks, &models.Task{
		ID: "t_1", Title: "Hot", Status: models.TaskStatusBacklog, Priority: 1, Due: localDate,
	})

	set := Rebuild(doc, localDate, now)
	if len(set.Must) != 1 {
		t.Fatalf("must = %d", len(set.Must))
	}
	// The same source still appears in should under its own composite id.
	if len(set.Should) != 1 {
		t.Fatalf("should = %d", len(set.Should))
	}
	if set.Must[0].ID == set.Should[0].ID {
		t.Error("bucket ids must differ")
	}
}

func TestRebuildExcludesArchivedAndDeleted(t *testing.T) {
	doc := testDoc()
	archived := &models.Task{ID: "t_a", Title: "Archived", Status: models.TaskStatusBacklog, Priority: 1, Due: localDate}
	archived.Archived = true
	deleted := &models.Task{ID: "t_d", Title: "Deleted", Status: models.TaskStatusBacklog, Priority: 1, Due: localDate}
	deleted.Deleted = true
	doc.Tasks = append(doc.Tasks, archived, deleted)

	set := Rebuild(doc, localDate, now)
	if total := len(set.All()); total != 0 {
		t.Errorf("expected no suggestions, got %d", total)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	doc := testDoc()
	doc.Tasks = append(doc.Tasks,
		&models.Task{ID: "t_1", Title: "One", Status: models.TaskStatusBacklog, Priority: 1},
		&models.Task{ID: "t_2", Title: "Two", Status: models.TaskStatusBacklog, Due: "2026-02-18"},
	)

	first := Rebuild(doc, localDate, now)
	doc.Suggestions = first
	second := Rebuild(doc, localDate, now.Add(time.Hour))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("rebuild not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRebuildPreservesCreatedAt(t *testing.T) {
	doc := testDoc()
	doc.Tasks = append(doc.Tasks, &models.Task{
		ID: "t_1", Title: "Sticky", Status: models.TaskStatusBacklog, Priority: 1,
	})

	first := Rebuild(doc, localDate, now)
	doc.Suggestions = first

	later := now.Add(2 * time.Hour)
	second := Rebuild(doc, localDate, later)

	if second.Should[0].CreatedAt != first.Should[0].CreatedAt {
		t.Errorf("createdAt changed: %q → %q", first.Should[0].CreatedAt, second.Should[0].CreatedAt)
	}
}
