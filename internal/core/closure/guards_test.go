package closure

import (
	"reflect"
	"testing"

	"github.com/example/dayops/internal/models"
)

func todayItem(id, status string, notes ...string) *models.TodayItem {
	item := &models.TodayItem{ID: id, Title: id, Status: status}
	item.Execution.Status = status
	for _, text := range notes {
		item.Execution.Notes = append(item.Execution.Notes, models.ExecutionNote{Text: text})
	}
	return item
}

func TestEvaluateReady(t *testing.T) {
	doc := models.NewDocument()
	doc.Today = append(doc.Today,
		todayItem("td_done", models.TodayStatusComplete),
		todayItem("td_noted", models.TodayStatusInProgress, "waiting on review"),
	)
	processed := &models.InboxItem{ID: "in_1", Raw: "done", Processed: true}
	doc.Inbox = append(doc.Inbox, processed)

	readiness := Evaluate(doc)
	if !readiness.Ready() {
		t.Fatalf("expected ready, got %+v", readiness)
	}
	if len(readiness.Blockers()) != 0 {
		t.Errorf("blockers = %v", readiness.Blockers())
	}
}

func TestEvaluateBlockers(t *testing.T) {
	doc := models.NewDocument()
	doc.Today = append(doc.Today,
		todayItem("td_bare", models.TodayStatusInProgress),
		todayItem("td_blank", models.TodayStatusWaiting, "   "),
		todayItem("td_done", models.TodayStatusComplete),
	)
	doc.Inbox = append(doc.Inbox,
		&models.InboxItem{ID: "in_open", Raw: "call bank"},
		&models.InboxItem{ID: "in_snoozed", Raw: "later", Snoozed: true},
	)

	readiness := Evaluate(doc)
	if readiness.Ready() {
		t.Fatal("expected blocked")
	}

	if got, want := readiness.MissingTodayNotes, []string{"td_bare", "td_blank"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingTodayNotes = %v, want %v", got, want)
	}
	if got, want := readiness.UnprocessedInbox, []string{"in_open"}; !reflect.DeepEqual(got, want) {
		t.Errorf("UnprocessedInbox = %v, want %v", got, want)
	}
	if got, want := readiness.SnoozedInbox, []string{"in_snoozed"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SnoozedInbox = %v, want %v", got, want)
	}

	wantBlockers := []string{BlockerMissingTodayNotes, BlockerSnoozedInbox, BlockerUnprocessedInbox}
	if got := readiness.Blockers(); !reflect.DeepEqual(got, wantBlockers) {
		t.Errorf("Blockers = %v, want %v", got, wantBlockers)
	}
}

func TestEvaluateOnlyTrailingNoteCounts(t *testing.T) {
	doc := models.NewDocument()
	// An earlier real note does not satisfy the gate if the trailing
	// entry is blank.
	doc.Today = append(doc.Today, todayItem("td_1", models.TodayStatusInProgress, "real progress", " "))

	readiness := Evaluate(doc)
	if got, want := readiness.MissingTodayNotes, []string{"td_1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingTodayNotes = %v, want %v", got, want)
	}
}

func TestEvaluateIncompleteStatusesNeedNotes(t *testing.T) {
	statuses := []string{
		models.TodayStatusNotStarted,
		models.TodayStatusInProgress,
		models.TodayStatusWaiting,
		models.TodayStatusBlocked,
		models.TodayStatusCancelled,
		models.TodayStatusDeferred,
		models.TodayStatusArchived,
	}

	for _, status := range statuses {
		t.Run(status, func(t *testing.T) {
			doc := models.NewDocument()
			doc.Today = append(doc.Today, todayItem("td_1", status))
			if Evaluate(doc).Ready() {
				t.Errorf("status %q without a note must block closure", status)
			}
		})
	}
}

func TestEvaluateSkipsDeletedAndArchivedInbox(t *testing.T) {
	doc := models.NewDocument()
	deleted := todayItem("td_del", models.TodayStatusInProgress)
	deleted.Deleted = true
	doc.Today = append(doc.Today, deleted)

	archivedInbox := &models.InboxItem{ID: "in_arch", Raw: "skip"}
	archivedInbox.Archived = true
	deletedInbox := &models.InboxItem{ID: "in_del", Raw: "skip"}
	deletedInbox.Deleted = true
	doc.Inbox = append(doc.Inbox, archivedInbox, deletedInbox)

	if readiness := Evaluate(doc); !readiness.Ready() {
		t.Errorf("expected ready, got %+v", readiness)
	}
}
