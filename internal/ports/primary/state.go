package primary

import (
	"context"

	"github.com/example/dayops/internal/core/rollover"
	"github.com/example/dayops/internal/models"
)

// Listener receives a deep copy of the document after every committed
// change.
type Listener func(*models.Document)

// StateService defines the primary port for store lifecycle, storage
// health, and document access.
type StateService interface {
	// Init loads and migrates the persisted document. A failing backend
	// never aborts startup; the store comes up degraded.
	Init(ctx context.Context) error

	// RetryStorageInitialization re-probes the backend and flushes the
	// in-memory document on success.
	RetryStorageInitialization(ctx context.Context) error

	// State returns a deep copy of the current document.
	State() *models.Document

	// StorageStatus returns the current persistence state.
	StorageStatus() string

	// Warnings returns migration and persistence warnings accumulated
	// since startup.
	Warnings() []string

	// RolloverNotice returns the pending day-rollover banner, if any.
	RolloverNotice() *rollover.Notice

	// DismissRolloverNotice clears the one-shot rollover banner.
	DismissRolloverNotice()

	// Subscribe registers a listener and returns its unsubscribe func.
	Subscribe(listener Listener) func()

	// LoadSampleData replaces the document with the demo dataset.
	LoadSampleData(ctx context.Context) error

	// ResetAllLocalData replaces the document with a fresh empty one.
	ResetAllLocalData(ctx context.Context) error
}
