package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/dayops/internal/models"
	"github.com/example/dayops/internal/ports/secondary"
)

var ctx = context.Background()

func TestInitEmptyBackend(t *testing.T) {
	s, gateway := newTestStore(t)

	if got := s.StorageStatus(); got != models.StorageReady {
		t.Errorf("status = %q", got)
	}
	if gateway.puts == 0 {
		t.Error("init must persist the fresh document")
	}
	if gateway.record.ID != secondary.StateRecordID {
		t.Errorf("record id = %q", gateway.record.ID)
	}

	doc := s.State()
	if len(doc.Inbox) != 0 || len(doc.Tasks) != 0 {
		t.Error("fresh document is not empty")
	}
	if doc.LastActiveDate != "2026-02-18" {
		t.Errorf("LastActiveDate = %q", doc.LastActiveDate)
	}
}

func TestInitUnreachableBackendDegrades(t *testing.T) {
	gateway := newMemoryGateway()
	gateway.initErr = errors.New("disk on fire")
	s := New(gateway, testDevice, WithClock(func() time.Time { return testClock }))

	if err := s.Init(ctx); err != nil {
		t.Fatalf("init must not propagate backend failures: %v", err)
	}
	if got := s.StorageStatus(); got != models.StorageDegraded {
		t.Errorf("status = %q", got)
	}
	if len(s.Warnings()) == 0 {
		t.Error("expected a warning")
	}
}

func TestCaptureAndProcessFlow(t *testing.T) {
	s, _ := newTestStore(t)

	item, err := s.AddInboxItem(ctx, "Book 1:1 with @Harper #Roadmap do:2026-02-19")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}

	// No explicit type: the "1:1" heuristic decides, the do: token
	// schedules it.
	createdID, err := s.ProcessInboxItem(ctx, item.ID, "", ProcessFields{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	doc := s.State()
	if len(doc.Meetings) != 1 {
		t.Fatalf("meetings = %d", len(doc.Meetings))
	}
	meeting := doc.Meetings[0]
	if meeting.ID != createdID {
		t.Errorf("created id = %q, meeting id = %q", createdID, meeting.ID)
	}
	if meeting.ScheduleDate != "2026-02-19" {
		t.Errorf("ScheduleDate = %q", meeting.ScheduleDate)
	}
	if meeting.MeetingType != models.MeetingTypeOneToOne {
		t.Errorf("MeetingType = %q", meeting.MeetingType)
	}

	if len(doc.People) != 1 || doc.People[0].Name != "Harper" {
		t.Fatalf("people = %+v", doc.People)
	}
	if len(doc.Projects) != 1 || doc.Projects[0].Name != "Roadmap" {
		t.Fatalf("projects = %+v", doc.Projects)
	}
	if meeting.LinkedPeople[0] != doc.People[0].ID {
		t.Error("meeting not linked to the captured person")
	}

	// The capture itself survives as a processed inbox item.
	processed := doc.FindInbox(item.ID)
	if processed == nil || !processed.Processed {
		t.Fatalf("inbox item = %+v", processed)
	}
	if processed.Type != "meeting" {
		t.Errorf("inbox type = %q", processed.Type)
	}
}

func TestProcessReusesPeopleCaseInsensitively(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.AddInboxItem(ctx, "Intro call with @Harper")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ProcessInboxItem(ctx, first.ID, "task", ProcessFields{}); err != nil {
		t.Fatal(err)
	}

	second, err := s.AddInboxItem(ctx, "Review doc with @harper")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ProcessInboxItem(ctx, second.ID, "task", ProcessFields{}); err != nil {
		t.Fatal(err)
	}

	if doc := s.State(); len(doc.People) != 1 {
		t.Errorf("people = %d, want 1 shared record", len(doc.People))
	}
}

func TestExplicitFieldsBeatTokens(t *testing.T) {
	s, _ := newTestStore(t)

	item, err := s.AddInboxItem(ctx, "Ship report due:2026-03-01 !p3")
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.ProcessInboxItem(ctx, item.ID, "task", ProcessFields{
		Title: "Ship the quarterly report",
		Due:   "2026-03-05",
	})
	if err != nil {
		t.Fatal(err)
	}

	task := s.State().Tasks[0]
	if task.Title != "Ship the quarterly report" {
		t.Errorf("Title = %q", task.Title)
	}
	if task.Due != "2026-03-05" {
		t.Errorf("Due = %q (explicit field must beat the token)", task.Due)
	}
	if task.Priority != 3 {
		t.Errorf("Priority = %d (token still applies when no field is set)", task.Priority)
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	s, gateway := newTestStore(t)
	gateway.putErr = secondary.Transient(errors.New("database is locked"))

	_, err := s.AddInboxItem(ctx, "doomed capture")
	verr := typed(t, err)
	if verr.Code != CodeStorageWriteFailed {
		t.Errorf("code = %q", verr.Code)
	}
	if verr.Details["transient"] != true {
		t.Errorf("transient detail = %v", verr.Details["transient"])
	}

	// The mutation never reached the live document.
	if doc := s.State(); len(doc.Inbox) != 0 {
		t.Errorf("inbox = %d, want rollback", len(doc.Inbox))
	}
	if got := s.StorageStatus(); got != models.StorageDegraded {
		t.Errorf("status = %q", got)
	}
}

func TestRetryStorageInitialization(t *testing.T) {
	gateway := newMemoryGateway()
	gateway.initOK = false
	s := New(gateway, testDevice, WithClock(func() time.Time { return testClock }))
	if err := s.Init(ctx); err != nil {
		t.Fatal(err)
	}
	if s.StorageStatus() != models.StorageDegraded {
		t.Fatal("precondition: store must start degraded")
	}

	// Backend comes back.
	gateway.initOK = true
	if err := s.RetryStorageInitialization(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := s.StorageStatus(); got != models.StorageReady {
		t.Errorf("status = %q", got)
	}
	if gateway.record == nil {
		t.Error("retry must flush the in-memory document")
	}

	// A second retry while ready is a no-op.
	puts := gateway.puts
	if err := s.RetryStorageInitialization(ctx); err != nil {
		t.Fatal(err)
	}
	if gateway.puts != puts {
		t.Error("retry while ready must not write")
	}
}

func TestSetTodayStatusMirrorsLegacyField(t *testing.T) {
	s, _ := newTestStore(t)

	id, err := s.AddCustomTodayItem(ctx, "Tidy desk")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetTodayStatus(ctx, id, models.TodayStatusArchived); err != nil {
		t.Fatal(err)
	}

	var item *models.TodayItem
	for _, candidate := range s.State().Today {
		if candidate.ID == id {
			item = candidate
		}
	}
	if item == nil {
		t.Fatal("item vanished")
	}
	if item.Execution.Status != models.TodayStatusArchived {
		t.Errorf("Execution.Status = %q", item.Execution.Status)
	}
	if item.Status != models.TodayStatusArchived {
		t.Errorf("legacy Status = %q (must mirror)", item.Status)
	}
	if !item.Archived {
		t.Error("archived status must set the archived flag")
	}

	if err := s.SetTodayStatus(ctx, id, "done-ish"); err == nil {
		t.Error("unknown status must be rejected")
	}
}

func TestCloseDayGate(t *testing.T) {
	s, _ := newTestStore(t)

	todayID, err := s.AddCustomTodayItem(ctx, "Write summary")
	if err != nil {
		t.Fatal(err)
	}
	inboxItem, err := s.AddInboxItem(ctx, "stray thought")
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.CloseDay(ctx)
	verr := typed(t, err)
	if verr.Code != CodeCloseBlocked {
		t.Fatalf("code = %q", verr.Code)
	}
	blockers, _ := verr.Details["blockers"].([]string)
	if len(blockers) != 2 {
		t.Errorf("blockers = %v", blockers)
	}

	// Resolve both blockers: note the plan item, archive the capture.
	if err := s.AddTodayUpdateNote(ctx, todayID, "drafted, finishing tomorrow"); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleArchiveInbox(ctx, inboxItem.ID); err != nil {
		t.Fatal(err)
	}

	log, err := s.CloseDay(ctx)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if log.Kind != models.DailyLogKindClose {
		t.Errorf("kind = %q", log.Kind)
	}
	if log.Note != "Closed with 0 of 1 item(s) complete" {
		t.Errorf("note = %q", log.Note)
	}
	if len(log.Incomplete) != 1 {
		t.Errorf("incomplete = %d", len(log.Incomplete))
	}

	doc := s.State()
	if len(doc.Today) != 0 {
		t.Errorf("plan not cleared: %d", len(doc.Today))
	}
	if len(doc.DailyLogs) != 1 {
		t.Errorf("logs = %d", len(doc.DailyLogs))
	}
}

func TestCloseDayRefusedWhileDegraded(t *testing.T) {
	gateway := newMemoryGateway()
	gateway.initOK = false
	s := New(gateway, testDevice, WithClock(func() time.Time { return testClock }))
	if err := s.Init(ctx); err != nil {
		t.Fatal(err)
	}

	_, err := s.CloseDay(ctx)
	if verr := typed(t, err); verr.Code != CodeStorageDegraded {
		t.Errorf("code = %q", verr.Code)
	}
}

func TestHardDeleteRequiresPhrase(t *testing.T) {
	s, _ := newTestStore(t)

	item, err := s.AddInboxItem(ctx, "Disposable task")
	if err != nil {
		t.Fatal(err)
	}
	taskID, err := s.ProcessInboxItem(ctx, item.ID, "task", ProcessFields{})
	if err != nil {
		t.Fatal(err)
	}

	err = s.HardDeleteEntity(ctx, models.CollectionTasks, taskID, "yes please")
	if verr := typed(t, err); verr.Code != CodeDeletePhraseMismatch {
		t.Errorf("code = %q", verr.Code)
	}
	if len(s.State().Tasks) != 1 {
		t.Fatal("task must survive a mismatched phrase")
	}

	// The phrase check is case-insensitive and trims whitespace.
	if err := s.HardDeleteEntity(ctx, models.CollectionTasks, taskID, " delete "); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
	if len(s.State().Tasks) != 0 {
		t.Error("task must be physically removed")
	}
}

func TestImportSnapshotIsAtomic(t *testing.T) {
	s, gateway := newTestStore(t)

	// Build a valid export from a second device.
	remote, _ := newTestStore(t)
	remoteItem, err := remote.AddInboxItem(ctx, "from the other laptop")
	if err != nil {
		t.Fatal(err)
	}
	snap, err := remote.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	raw, err := snap.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	// First attempt fails at the write: local state must not change.
	gateway.putErr = errors.New("no space left on device")
	if _, err := s.ImportSnapshot(ctx, raw); err == nil {
		t.Fatal("expected persist failure")
	}
	if len(s.State().Inbox) != 0 {
		t.Error("failed import must not leak records in")
	}

	gateway.putErr = nil
	result, err := s.ImportSnapshot(ctx, raw)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added == 0 {
		t.Errorf("added = %d", result.Added)
	}
	if s.State().FindInbox(remoteItem.ID) == nil {
		t.Error("imported record missing")
	}
	if got := s.StorageStatus(); got != models.StorageReady {
		t.Errorf("status = %q", got)
	}
}

func TestRolloverAcrossRestart(t *testing.T) {
	day1 := time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)

	gateway := newMemoryGateway()
	first := New(gateway, testDevice, WithClock(func() time.Time { return day1 }))
	if err := first.Init(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := first.AddCustomTodayItem(ctx, "Unfinished business"); err != nil {
		t.Fatal(err)
	}

	// Next morning, same database.
	second := New(gateway, testDevice, WithClock(func() time.Time { return day2 }))
	if err := second.Init(ctx); err != nil {
		t.Fatal(err)
	}

	notice := second.RolloverNotice()
	if notice == nil {
		t.Fatal("expected a rollover notice")
	}
	if notice.PreviousDate != "2026-02-17" || notice.CurrentDate != "2026-02-18" {
		t.Errorf("notice = %+v", notice)
	}
	if notice.RecoveredItemCount != 1 {
		t.Errorf("RecoveredItemCount = %d", notice.RecoveredItemCount)
	}

	doc := second.State()
	if len(doc.Today) != 0 {
		t.Errorf("plan must be cleared, got %d", len(doc.Today))
	}
	if len(doc.DailyLogs) != 1 || doc.DailyLogs[0].Kind != models.DailyLogKindRollover {
		t.Fatalf("logs = %+v", doc.DailyLogs)
	}

	second.DismissRolloverNotice()
	if second.RolloverNotice() != nil {
		t.Error("dismiss must clear the notice")
	}
}

func TestSubscribe(t *testing.T) {
	s, _ := newTestStore(t)

	var seen []int
	unsubscribe := s.Subscribe(func(doc *models.Document) {
		seen = append(seen, len(doc.Inbox))
	})
	if len(seen) != 1 {
		t.Fatalf("listener must fire immediately, got %d calls", len(seen))
	}

	if _, err := s.AddInboxItem(ctx, "notify me"); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[1] != 1 {
		t.Fatalf("seen = %v", seen)
	}

	unsubscribe()
	if _, err := s.AddInboxItem(ctx, "silent"); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 {
		t.Error("listener fired after unsubscribe")
	}
}

func TestSubscribeListenerMayCallBackIntoStore(t *testing.T) {
	s, _ := newTestStore(t)

	// Listeners read back through the public surface on every change;
	// notification must not hold the command mutex.
	var statuses []string
	unsubscribe := s.Subscribe(func(doc *models.Document) {
		statuses = append(statuses, s.StorageStatus())
	})
	defer unsubscribe()

	if _, err := s.AddInboxItem(ctx, "reentrant"); err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 2 {
		t.Fatalf("statuses = %v", statuses)
	}
	for _, status := range statuses {
		if status != models.StorageReady {
			t.Errorf("status = %q", status)
		}
	}
}

func TestAddSuggestionToTodayDedupes(t *testing.T) {
	s, _ := newTestStore(t)

	item, err := s.AddInboxItem(ctx, "Pay invoice due:2026-02-18")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ProcessInboxItem(ctx, item.ID, "task", ProcessFields{}); err != nil {
		t.Fatal(err)
	}

	doc := s.State()
	if len(doc.Suggestions.Must) == 0 {
		t.Fatal("expected a due-today suggestion")
	}
	suggestionID := doc.Suggestions.Must[0].ID

	firstID, err := s.AddSuggestionToToday(ctx, suggestionID)
	if err != nil {
		t.Fatal(err)
	}
	secondID, err := s.AddSuggestionToToday(ctx, suggestionID)
	if err != nil {
		t.Fatal(err)
	}
	if firstID != secondID {
		t.Errorf("duplicate add created a new item: %q vs %q", firstID, secondID)
	}
	if got := len(s.State().Today); got != 1 {
		t.Errorf("today = %d", got)
	}
}

func TestLoadSampleDataAndReset(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.LoadSampleData(ctx); err != nil {
		t.Fatal(err)
	}
	doc := s.State()
	if !doc.IsDemoMode {
		t.Error("sample data must flag demo mode")
	}
	if len(doc.Tasks) == 0 || len(doc.People) == 0 || len(doc.Projects) == 0 {
		t.Error("sample data looks empty")
	}

	if err := s.ResetAllLocalData(ctx); err != nil {
		t.Fatal(err)
	}
	doc = s.State()
	if doc.IsDemoMode {
		t.Error("reset must clear demo mode")
	}
	if len(doc.Tasks) != 0 || len(doc.Inbox) != 0 {
		t.Error("reset must wipe collections")
	}
	if doc.LastActiveDate != "2026-02-18" {
		t.Errorf("LastActiveDate = %q", doc.LastActiveDate)
	}
}
