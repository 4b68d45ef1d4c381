package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/dayops/internal/core/stamp"
	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/models"
)

const (
	localDevice  = "dev_local"
	remoteDevice = "dev_remote"
)

var now = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

func stampAt(value any, device, at string) stamp.Stamp {
	return stamp.Stamp{Value: value, UpdatedAt: at, UpdatedBy: device}
}

func localDoc(tasks ...*models.Task) *models.Document {
	doc := models.NewDocument()
	doc.Tasks = append(doc.Tasks, tasks...)
	return doc
}

// remoteSnapshot packages a remote document as the bytes an exported
// backup file would contain.
func remoteSnapshot(t *testing.T, doc *models.Document) []byte {
	t.Helper()
	snap, err := Export(doc, remoteDevice, now)
	require.NoError(t, err)
	data, err := snap.Marshal()
	require.NoError(t, err)
	return data
}

func TestMergeLatestStampWinsPerField(t *testing.T) {
	local := localDoc(&models.Task{
		ID: "t_1", Title: "Old local title", Status: "backlog",
		Stamps: stamp.Map{
			"title":  stampAt("Old local title", localDevice, "2026-02-10T00:00:00Z"),
			"status": stampAt("backlog", localDevice, "2026-02-17T00:00:00Z"),
		},
	})
	remote := localDoc(&models.Task{
		ID: "t_1", Title: "Newer remote title", Status: "done",
		Stamps: stamp.Map{
			"title":  stampAt("Newer remote title", remoteDevice, "2026-02-15T00:00:00Z"),
			"status": stampAt("done", remoteDevice, "2026-02-12T00:00:00Z"),
		},
	})

	result, err := Merge(local, remoteSnapshot(t, remote), localDevice, now)
	require.NoError(t, err)
	require.Len(t, result.Doc.Tasks, 1)

	task := result.Doc.Tasks[0]
	// Remote wrote title later; local wrote status later. Each field
	// resolves independently.
	assert.Equal(t, "Newer remote title", task.Title)
	assert.Equal(t, "backlog", task.Status)
	assert.Equal(t, 1, result.Merged)
	assert.Equal(t, 0, result.Added)
}

func TestMergeTieFavorsImport(t *testing.T) {
	at := "2026-02-15T00:00:00Z"
	local := localDoc(&models.Task{
		ID: "t_1", Title: "Local", Status: "backlog",
		Stamps: stamp.Map{"title": stampAt("Local", localDevice, at)},
	})
	remote := localDoc(&models.Task{
		ID: "t_1", Title: "Import", Status: "backlog",
		Stamps: stamp.Map{"title": stampAt("Import", remoteDevice, at)},
	})

	result, err := Merge(local, remoteSnapshot(t, remote), localDevice, now)
	require.NoError(t, err)
	assert.Equal(t, "Import", result.Doc.Tasks[0].Title)
}

func TestMergeIsOrderInsensitiveForDisjointEdits(t *testing.T) {
	base := func() *models.Task {
		return &models.Task{
			ID: "t_1", Title: "Title", Status: "backlog",
			Stamps: stamp.Map{
				"title":  stampAt("Title", localDevice, "2026-02-01T00:00:00Z"),
				"status": stampAt("backlog", localDevice, "2026-02-01T00:00:00Z"),
			},
		}
	}

	// Device A edited the title, device B edited the status.
	a := base()
	a.Title = "Edited on A"
	a.Stamps["title"] = stampAt("Edited on A", "dev_a", "2026-02-10T00:00:00Z")
	b := base()
	b.Status = models.TaskStatusInProgress
	b.Stamps["status"] = stampAt(models.TaskStatusInProgress, "dev_b", "2026-02-11T00:00:00Z")

	aIntoB, err := Merge(localDoc(b), remoteSnapshot(t, localDoc(a)), localDevice, now)
	require.NoError(t, err)
	bIntoA, err := Merge(localDoc(a), remoteSnapshot(t, localDoc(b)), localDevice, now)
	require.NoError(t, err)

	for _, result := range []*MergeResult{aIntoB, bIntoA} {
		task := result.Doc.Tasks[0]
		assert.Equal(t, "Edited on A", task.Title)
		assert.Equal(t, models.TaskStatusInProgress, task.Status)
	}
}

func TestMergeKeepsLocalOnlyAndAppendsImportOnly(t *testing.T) {
	local := localDoc(
		&models.Task{ID: "t_local", Title: "Only here", Status: "backlog"},
	)
	remote := localDoc(
		&models.Task{ID: "t_remote_1", Title: "From import", Status: "backlog"},
		&models.Task{ID: "t_remote_2", Title: "Also from import", Status: "backlog"},
	)

	result, err := Merge(local, remoteSnapshot(t, remote), localDevice, now)
	require.NoError(t, err)
	require.Len(t, result.Doc.Tasks, 3)

	// Local records first, then import-only records in import order.
	assert.Equal(t, "t_local", result.Doc.Tasks[0].ID)
	assert.Equal(t, "t_remote_1", result.Doc.Tasks[1].ID)
	assert.Equal(t, "t_remote_2", result.Doc.Tasks[2].ID)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Merged)
}

func TestMergeSuggestionBuckets(t *testing.T) {
	local := models.NewDocument()
	local.Suggestions.Must = append(local.Suggestions.Must, &models.Suggestion{
		ID: "sg_must_task_t_1", Title: "Local must", Type: "task", SourceID: "t_1",
	})

	remote := models.NewDocument()
	remote.Suggestions.Must = append(remote.Suggestions.Must, &models.Suggestion{
		ID: "sg_must_task_t_2", Title: "Remote must", Type: "task", SourceID: "t_2",
	})
	remote.Suggestions.Could = append(remote.Suggestions.Could, &models.Suggestion{
		ID: "sg_could_task_t_3", Title: "Remote could", Type: "task", SourceID: "t_3",
	})

	result, err := Merge(local, remoteSnapshot(t, remote), localDevice, now)
	require.NoError(t, err)

	require.Len(t, result.Doc.Suggestions.Must, 2)
	assert.Equal(t, "sg_must_task_t_1", result.Doc.Suggestions.Must[0].ID)
	assert.Equal(t, "sg_must_task_t_2", result.Doc.Suggestions.Must[1].ID)
	require.Len(t, result.Doc.Suggestions.Could, 1)
	assert.Empty(t, result.Doc.Suggestions.Should)
}

func TestMergeDoesNotMutateLocal(t *testing.T) {
	local := localDoc(&models.Task{
		ID: "t_1", Title: "Untouched", Status: "backlog",
		Stamps: stamp.Map{"title": stampAt("Untouched", localDevice, "2026-02-01T00:00:00Z")},
	})
	remote := localDoc(&models.Task{
		ID: "t_1", Title: "Overwrites", Status: "backlog",
		Stamps: stamp.Map{"title": stampAt("Overwrites", remoteDevice, "2026-02-10T00:00:00Z")},
	})

	_, err := Merge(local, remoteSnapshot(t, remote), localDevice, now)
	require.NoError(t, err)
	assert.Equal(t, "Untouched", local.Tasks[0].Title)
}

func TestMergePreservesLocalStorageStatus(t *testing.T) {
	local := models.NewDocument()
	local.StorageStatus = models.StorageDegraded

	result, err := Merge(local, remoteSnapshot(t, models.NewDocument()), localDevice, now)
	require.NoError(t, err)
	assert.Equal(t, models.StorageDegraded, result.Doc.StorageStatus)
}

func TestMergeMigratesOlderSnapshots(t *testing.T) {
	// A v1-era export: bare document map, no stamps, no version.
	raw := []byte(`{"tasks": [{"id": "t_old", "title": "Legacy", "status": "backlog", "updatedAt": "2026-01-01T00:00:00Z"}]}`)

	result, err := Merge(models.NewDocument(), raw, localDevice, now)
	require.NoError(t, err)
	require.Len(t, result.Doc.Tasks, 1)
	assert.Equal(t, "Legacy", result.Doc.Tasks[0].Title)
	// The retrofit ran before merging.
	assert.Contains(t, result.Doc.Tasks[0].Stamps, "title")
}

func TestMergeRejectsUnsupportedVersion(t *testing.T) {
	raw := []byte(`{"schemaVersion": 4, "collections": {"tasks": []}}`)

	_, err := Merge(models.NewDocument(), raw, localDevice, now)
	require.Error(t, err)

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeUnsupportedVersion, verr.Code)
}

func TestMergeRejectsInvalidFile(t *testing.T) {
	for _, raw := range [][]byte{
		[]byte("definitely not json"),
		[]byte("null"),
		[]byte(`[1, 2, 3]`),
	} {
		_, err := Merge(models.NewDocument(), raw, localDevice, now)
		require.Error(t, err, "input %q", raw)

		var verr *validate.Error
		require.ErrorAs(t, err, &verr, "input %q", raw)
		assert.Equal(t, CodeInvalidFile, verr.Code, "input %q", raw)
	}
}

func TestMergeRejectsEnvelopeWithoutCollections(t *testing.T) {
	for name, raw := range map[string][]byte{
		"versioned envelope, no collections": []byte(`{"schemaVersion": 3, "exportedAt": "2026-02-18T10:00:00Z", "deviceId": "dev_x"}`),
		"collections not an object":          []byte(`{"schemaVersion": 3, "collections": []}`),
		"empty object":                       []byte(`{}`),
		"record wrapper, hollow payload":     []byte(`{"id": "wireframe-state", "payload": {"schemaVersion": 3}}`),
	} {
		t.Run(name, func(t *testing.T) {
			local := localDoc(&models.Task{ID: "t_keep", Title: "Keep", Status: "backlog"})

			_, err := Merge(local, raw, localDevice, now)
			require.Error(t, err)

			var verr *validate.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, CodeInvalidFile, verr.Code)
		})
	}
}

func TestExportEnvelope(t *testing.T) {
	doc := models.NewDocument()
	doc.StorageStatus = models.StorageReady
	doc.Notes = append(doc.Notes, &models.Note{ID: "n_1", Title: "Keep me"})

	snap, err := Export(doc, localDevice, now)
	require.NoError(t, err)
	assert.Equal(t, models.CurrentSchemaVersion, snap.SchemaVersion)
	assert.Equal(t, localDevice, snap.DeviceID)
	assert.Equal(t, "2026-02-18T12:00:00Z", snap.ExportedAt)

	// Runtime-only fields never leave the process.
	assert.NotContains(t, snap.Collections, "storageStatus")
	assert.NotContains(t, snap.Collections, "schemaVersion")

	data, err := snap.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, snap.SchemaVersion, parsed.SchemaVersion)
	assert.Equal(t, snap.DeviceID, parsed.DeviceID)
}
