package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/dayops/internal/core/stamp"
	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/migrate"
	"github.com/example/dayops/internal/models"
)

// Import failure codes.
const (
	CodeInvalidFile        = "IMPORT_INVALID_FILE"
	CodeUnsupportedVersion = "IMPORT_UNSUPPORTED_VERSION"
)

// MergeResult is the outcome of a successful import merge.
type MergeResult struct {
	Doc    *models.Document
	Added  int
	Merged int
}

// Merge reconciles an imported snapshot file against the local
// document and returns the merged document. The local document is
// never mutated; on any structural failure the typed error carries an
// import code and no merge output is produced.
//
// Array collections merge by id: records on both sides are
// field-merged, local-only records are kept, import-only records are
// appended in import order. Suggestion buckets merge independently
// with the same by-id logic.
func Merge(local *models.Document, raw []byte, deviceID string, now time.Time) (*MergeResult, error) {
	if verr := checkEnvelopeShape(raw); verr != nil {
		return nil, verr
	}
	importState, version, err := migrate.ParseEnvelope(raw)
	if err != nil {
		return nil, validate.New(CodeInvalidFile, "Import file is not a valid snapshot.", validate.Details{"cause": err.Error()})
	}
	if version > models.CurrentSchemaVersion {
		return nil, validate.New(CodeUnsupportedVersion,
			fmt.Sprintf("Snapshot schema version %d is newer than this build supports (%d).", version, models.CurrentSchemaVersion),
			validate.Details{"schemaVersion": version})
	}

	importState, _, err = migrate.UpgradeState(importState, version, deviceID, now)
	if err != nil {
		return nil, validate.New(CodeInvalidFile, "Import file could not be migrated to the current schema.", validate.Details{"cause": err.Error()})
	}

	localState, err := DocumentState(local)
	if err != nil {
		return nil, validate.New(CodeInvalidFile, "Local state could not be prepared for merging.", validate.Details{"cause": err.Error()})
	}

	result := &MergeResult{}
	for _, collection := range models.ArrayCollections {
		localList, _ := localState[collection].([]any)
		importList, _ := importState[collection].([]any)
		localState[collection] = mergeCollection(localList, importList, models.MutableFields[collection], result)
	}

	localSuggestions, _ := localState[models.CollectionSuggestions].(map[string]any)
	importSuggestions, _ := importState[models.CollectionSuggestions].(map[string]any)
	if localSuggestions == nil {
		localSuggestions = map[string]any{}
	}
	for _, bucket := range models.Buckets {
		localList, _ := localSuggestions[bucket].([]any)
		importList, _ := importSuggestions[bucket].([]any)
		localSuggestions[bucket] = mergeCollection(localList, importList, nil, result)
	}
	localState[models.CollectionSuggestions] = localSuggestions

	merged, _, err := migrate.UpgradeState(localState, models.CurrentSchemaVersion, deviceID, now)
	if err != nil {
		return nil, validate.New(CodeInvalidFile, "Merged state failed schema validation.", validate.Details{"cause": err.Error()})
	}

	doc := migrate.DecodeDocument(merged)
	doc.StorageStatus = local.StorageStatus
	result.Doc = doc
	return result, nil
}

// checkEnvelopeShape rejects files that cannot structurally be a
// snapshot before any repair runs. The migrator happily materializes
// empty collections for the persisted state it owns, but an import has
// to prove it actually carries data: a versioned envelope must hold a
// collections object, and a legacy bare document must contain at least
// one known collection. Unparseable input falls through so the parse
// error reports the cause.
func checkEnvelopeShape(raw []byte) *validate.Error {
	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope == nil {
		return nil
	}
	if payload, ok := envelope["payload"].(map[string]any); ok {
		envelope = payload
	}

	if collections, ok := envelope["collections"]; ok {
		if _, ok := collections.(map[string]any); !ok {
			return validate.New(CodeInvalidFile,
				"Import file is not a valid snapshot: collections is not an object.", nil)
		}
		return nil
	}

	for _, collection := range models.ArrayCollections {
		if _, ok := envelope[collection]; ok {
			return nil
		}
	}
	return validate.New(CodeInvalidFile,
		"Import file is not a valid snapshot: no collections found.", nil)
}

// mergeCollection merges one array collection by record id.
func mergeCollection(local, imported []any, mutableFields []string, result *MergeResult) []any {
	merged := make([]any, len(local))
	copy(merged, local)

	position := make(map[string]int, len(local))
	for i, entry := range local {
		if record, ok := entry.(map[string]any); ok {
			if id, ok := record["id"].(string); ok && id != "" {
				position[id] = i
			}
		}
	}

	for _, entry := range imported {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := record["id"].(string)
		if id == "" {
			continue
		}
		if i, exists := position[id]; exists {
			localRecord, _ := merged[i].(map[string]any)
			merged[i] = mergeRecord(localRecord, record, mutableFields)
			result.Merged++
			continue
		}
		merged = append(merged, record)
		position[id] = len(merged) - 1
		result.Added++
	}
	return merged
}

// mergeRecord field-merges two same-id records. The import side wins
// for every un-stamped field via shallow spread; stamped fields then
// adopt the latest stamp's value, ties going to the import side.
func mergeRecord(local, imported map[string]any, mutableFields []string) map[string]any {
	merged := make(map[string]any, len(local)+len(imported))
	for key, value := range local {
		merged[key] = value
	}
	for key, value := range imported {
		merged[key] = value
	}

	localStamps, _ := local["stamps"].(map[string]any)
	importStamps, _ := imported["stamps"].(map[string]any)
	if len(localStamps) == 0 && len(importStamps) == 0 {
		return merged
	}

	stamps := make(map[string]any, len(localStamps)+len(importStamps))
	for field, value := range localStamps {
		stamps[field] = value
	}
	for field, value := range importStamps {
		stamps[field] = value
	}

	for _, field := range mutableFields {
		localStamp, _ := stamp.FromRaw(localStamps[field])
		importStamp, _ := stamp.FromRaw(importStamps[field])
		winner, ok := stamp.Latest(localStamp, importStamp)
		if !ok {
			continue
		}
		stamps[field] = winner.Raw()
		merged[field] = winner.Value
	}

	merged["stamps"] = stamps
	return merged
}

// Parse decodes a snapshot file without merging it, for callers that
// want to inspect the envelope first.
func Parse(raw []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, validate.New(CodeInvalidFile, "Import file is not a valid snapshot.", validate.Details{"cause": err.Error()})
	}
	return &snapshot, nil
}
