// Package migrate brings persisted documents of any prior schema
// version up to the current one. The pipeline is: parse the raw
// envelope, walk the ordered migration chain, run the idempotent guard
// pass, and decode into the typed document. Every failure mode —
// unparseable input, unknown or future versions, panics inside a step
// — converges on a safe empty document plus a warning; migration never
// propagates errors to the caller.
package migrate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/dayops/internal/models"
)

// Result is the outcome of migrating a persisted snapshot.
type Result struct {
	Doc          *models.Document
	Warnings     []string
	UsedFallback bool
}

// Context passed to each migration step.
type Context struct {
	DeviceID string
	NowISO   string
}

// Run migrates raw persisted payload bytes to the current schema.
func Run(raw []byte, deviceID string, now time.Time) (result Result) {
	result.Doc = models.NewDocument()

	defer func() {
		if r := recover(); r != nil {
			result.Doc = models.NewDocument()
			result.Warnings = append(result.Warnings, fmt.Sprintf("migration panic recovered: %v", r))
			result.UsedFallback = true
		}
	}()

	state, version, err := ParseEnvelope(raw)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		result.UsedFallback = true
		return result
	}

	upgraded, warnings, err := UpgradeState(state, version, deviceID, now)
	result.Warnings = append(result.Warnings, warnings...)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		result.UsedFallback = true
		result.Doc = models.NewDocument()
		return result
	}

	result.Doc = DecodeDocument(upgraded)
	return result
}

// ParseEnvelope extracts the document-shaped state map and its schema
// version from raw payload bytes. Accepted shapes:
//   - {schemaVersion, collections: {...}}            (current payload)
//   - {schemaVersion, payload: {schemaVersion, collections}} (full record)
//   - bare document map with no version              (legacy, v1)
func ParseEnvelope(raw []byte) (map[string]any, int, error) {
	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, 0, fmt.Errorf("unparseable persisted state: %w", err)
	}
	if envelope == nil {
		return nil, 0, fmt.Errorf("persisted state is empty")
	}

	// Unwrap a full persisted record down to its payload.
	if payload, ok := envelope["payload"].(map[string]any); ok {
		envelope = payload
	}

	state := envelope
	if collections, ok := envelope["collections"].(map[string]any); ok {
		state = collections
	}

	version := versionOf(envelope)
	if version == 0 {
		version = versionOf(state)
	}
	if version == 0 {
		version = 1 // legacy unversioned snapshot
	}
	return state, version, nil
}

// UpgradeState walks the migration chain from the given version to the
// current one and applies the guard pass. It operates on the raw map
// representation so snapshots of unknown shape can be repaired before
// decoding. The input map is mutated.
func UpgradeState(state map[string]any, version int, deviceID string, now time.Time) (map[string]any, []string, error) {
	if state == nil {
		return nil, nil, fmt.Errorf("no state to migrate")
	}
	if version > models.CurrentSchemaVersion {
		return nil, nil, fmt.Errorf("schema version %d is newer than supported version %d", version, models.CurrentSchemaVersion)
	}

	ctx := Context{DeviceID: deviceID, NowISO: now.UTC().Format(time.RFC3339)}
	var warnings []string
	for version < models.CurrentSchemaVersion {
		step, ok := steps[version]
		if !ok {
			return nil, warnings, fmt.Errorf("no migration registered for schema version %d", version)
		}
		state = step(state, ctx)
		warnings = append(warnings, fmt.Sprintf("migrated schema v%d to v%d", version, version+1))
		version++
	}

	state = guardPass(state)
	state["schemaVersion"] = float64(models.CurrentSchemaVersion)
	return state, warnings, nil
}

func versionOf(m map[string]any) int {
	switch v := m["schemaVersion"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
