// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"encoding/json"
	"errors"
)

// StateRecordID is the fixed key the document is persisted under. The
// value predates this build and is kept so existing databases and
// exported backups keep loading.
const StateRecordID = "wireframe-state"

// StateRecord is the single persisted row of the key-value backend.
// Payload is the JSON document envelope {schemaVersion, collections}.
type StateRecord struct {
	ID            string
	SchemaVersion int
	DeviceID      string
	Payload       json.RawMessage
	UpdatedAt     int64 // epoch milliseconds
}

// StateGateway defines the secondary port for document persistence.
// The backend is an opaque, failure-prone key-value store; callers
// classify failures via IsTransient and decide whether to retry.
type StateGateway interface {
	// Init prepares the backend and reports whether it is reachable.
	Init(ctx context.Context) (bool, error)

	// Get retrieves a record by key. A missing record returns (nil, nil).
	Get(ctx context.Context, key string) (*StateRecord, error)

	// Put writes a record, replacing any existing row under its key.
	Put(ctx context.Context, record *StateRecord) error

	// Close releases the backend connection.
	Close() error
}

// TransientError marks a gateway failure worth retrying, such as a
// locked database file or a busy connection.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient storage failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err is a retryable gateway failure.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}
