package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/dayops/internal/ports/secondary"
)

func openTestRepo(t *testing.T) *StateRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "data", "state.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ok, err := repo.Init(context.Background())
	if err != nil || !ok {
		t.Fatalf("init: ok=%v err=%v", ok, err)
	}
	return repo
}

func TestGetMissingRecord(t *testing.T) {
	repo := openTestRepo(t)

	record, err := repo.Get(context.Background(), secondary.StateRecordID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record != nil {
		t.Errorf("record = %+v, want nil for an empty table", record)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	written := &secondary.StateRecord{
		ID:            secondary.StateRecordID,
		SchemaVersion: 3,
		DeviceID:      "dev_abc",
		Payload:       []byte(`{"schemaVersion":3,"collections":{"tasks":[]}}`),
		UpdatedAt:     1771400000000,
	}
	if err := repo.Put(ctx, written); err != nil {
		t.Fatalf("put: %v", err)
	}

	read, err := repo.Get(ctx, secondary.StateRecordID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if read == nil {
		t.Fatal("record missing after put")
	}
	if read.SchemaVersion != written.SchemaVersion || read.DeviceID != written.DeviceID {
		t.Errorf("read = %+v", read)
	}
	if string(read.Payload) != string(written.Payload) {
		t.Errorf("payload = %s", read.Payload)
	}
	if read.UpdatedAt != written.UpdatedAt {
		t.Errorf("updatedAt = %d", read.UpdatedAt)
	}
}

func TestPutUpserts(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	first := &secondary.StateRecord{
		ID: secondary.StateRecordID, SchemaVersion: 3, DeviceID: "dev_a",
		Payload: []byte(`{"v":1}`), UpdatedAt: 1,
	}
	second := &secondary.StateRecord{
		ID: secondary.StateRecordID, SchemaVersion: 3, DeviceID: "dev_b",
		Payload: []byte(`{"v":2}`), UpdatedAt: 2,
	}
	if err := repo.Put(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.Put(ctx, second); err != nil {
		t.Fatal(err)
	}

	read, err := repo.Get(ctx, secondary.StateRecordID)
	if err != nil {
		t.Fatal(err)
	}
	if read.DeviceID != "dev_b" || string(read.Payload) != `{"v":2}` {
		t.Errorf("read = %+v, want the second write", read)
	}

	var count int
	if err := repo.db.QueryRow("SELECT COUNT(*) FROM state").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want a single upserted row", count)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	repo := openTestRepo(t)

	// Init again on an existing schema must not fail.
	ok, err := repo.Init(context.Background())
	if err != nil || !ok {
		t.Fatalf("second init: ok=%v err=%v", ok, err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{name: "locked database", err: errors.New("database is locked"), transient: true},
		{name: "locked table", err: errors.New("database table is locked"), transient: true},
		{name: "busy connection", err: errors.New("connection busy with another request"), transient: true},
		{name: "corrupt file", err: errors.New("file is not a database"), transient: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if secondary.IsTransient(got) != tt.transient {
				t.Errorf("IsTransient = %v, want %v", secondary.IsTransient(got), tt.transient)
			}
		})
	}

	if classify(nil) != nil {
		t.Error("classify(nil) must be nil")
	}
}
