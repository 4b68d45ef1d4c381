// Package snapshot implements manual backup and restore: exporting the
// document as a portable JSON envelope and merging an imported envelope
// back in. Merging is field-stamp driven so two devices that diverged
// offline converge on the latest write per field instead of clobbering
// whole records.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/dayops/internal/models"
)

// Snapshot is the exported envelope format. Collections holds the
// document-shaped state map; runtime-only fields are stripped.
type Snapshot struct {
	SchemaVersion int            `json:"schemaVersion"`
	ExportedAt    string         `json:"exportedAt"`
	DeviceID      string         `json:"deviceId"`
	Collections   map[string]any `json:"collections"`
}

// Export packages the document into a snapshot envelope.
func Export(doc *models.Document, deviceID string, now time.Time) (*Snapshot, error) {
	state, err := DocumentState(doc)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		SchemaVersion: models.CurrentSchemaVersion,
		ExportedAt:    now.UTC().Format(time.RFC3339),
		DeviceID:      deviceID,
		Collections:   state,
	}, nil
}

// Marshal renders the snapshot as indented JSON for a backup file.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// DocumentState converts the typed document into its raw map shape so
// the map-level merge, export and persistence machinery can operate on
// it. Fields that only describe the running process are dropped.
func DocumentState(doc *models.Document) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	delete(state, "schemaVersion")
	delete(state, "storageStatus")
	return state, nil
}
