// Package store is the command façade over the in-memory document.
// Every mutating command follows the same shape: validate inputs,
// clone the document, apply the mutation to the clone, persist the
// clone, and only then swap it in. A failed persistence round-trip
// therefore rolls back for free and flips storage into the degraded
// state. Commands are serialized by a mutex, so no two commands ever
// race on the document; subscribers only ever see deep copies.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/example/dayops/internal/core/rollover"
	"github.com/example/dayops/internal/core/suggest"
	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/migrate"
	"github.com/example/dayops/internal/models"
	"github.com/example/dayops/internal/ports/primary"
	"github.com/example/dayops/internal/ports/secondary"
	"github.com/example/dayops/internal/snapshot"
)

// Storage failure codes surfaced by commands.
const (
	CodeStorageDegraded    = "STORAGE_DEGRADED"
	CodeStorageWriteFailed = "STORAGE_WRITE_FAILED"
)

// Listener receives a deep copy of the document after every committed
// change.
type Listener = primary.Listener

// Store owns the single in-memory document and the persistence
// round-trips that keep it durable.
type Store struct {
	mu       sync.Mutex
	gateway  secondary.StateGateway
	deviceID string
	clock    func() time.Time

	doc            *models.Document
	listeners      map[int]Listener
	nextListener   int
	rolloverNotice *rollover.Notice
	warnings       []string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// New creates a store bound to a persistence gateway and a device
// identity. Call Init before issuing commands.
func New(gateway secondary.StateGateway, deviceID string, opts ...Option) *Store {
	s := &Store{
		gateway:   gateway,
		deviceID:  deviceID,
		clock:     time.Now,
		doc:       models.NewDocument(),
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads and migrates the persisted document, runs the
// day-rollover check and the first suggestion rebuild, and persists
// the result. A failing backend never aborts startup: the store comes
// up degraded on an empty document and the caller may retry later.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()

	now := s.clock()
	doc := models.NewDocument()

	ok, err := s.gateway.Init(ctx)
	if err != nil || !ok {
		notify := s.degradeLocked(doc, err)
		s.mu.Unlock()
		notify()
		return nil
	}

	record, err := s.gateway.Get(ctx, secondary.StateRecordID)
	if err != nil {
		notify := s.degradeLocked(doc, err)
		s.mu.Unlock()
		notify()
		return nil
	}

	if record != nil {
		result := migrate.Run(record.Payload, s.deviceID, now)
		doc = result.Doc
		s.warnings = append(s.warnings, result.Warnings...)
	}

	doc.StorageStatus = models.StorageReady
	s.rolloverNotice = rollover.Apply(doc, s.localDate(), now)
	doc.Suggestions = suggest.Rebuild(doc, s.localDate(), now)

	if err := s.persist(ctx, doc); err != nil {
		// Keep the migrated document in memory; only the durability
		// guarantee is lost.
		doc.StorageStatus = models.StorageDegraded
		s.warnings = append(s.warnings, err.Error())
	}

	s.doc = doc
	notify := s.notifyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

// RetryStorageInitialization re-probes the backend and, on success,
// flushes the current in-memory document. In-memory data is never
// discarded by a retry.
func (s *Store) RetryStorageInitialization(ctx context.Context) error {
	s.mu.Lock()

	if s.doc.StorageStatus != models.StorageDegraded {
		s.mu.Unlock()
		return nil
	}

	if ok, err := s.gateway.Init(ctx); err != nil || !ok {
		s.mu.Unlock()
		return storageError(err)
	}
	if err := s.persist(ctx, s.doc); err != nil {
		s.mu.Unlock()
		return err
	}

	s.doc.StorageStatus = models.StorageReady
	notify := s.notifyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

// State returns a deep copy of the current document.
func (s *Store) State() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// StorageStatus returns the current persistence state.
func (s *Store) StorageStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.StorageStatus
}

// Warnings returns migration and persistence warnings accumulated
// since startup.
func (s *Store) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// RolloverNotice returns the pending day-rollover banner, if any.
func (s *Store) RolloverNotice() *rollover.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rolloverNotice
}

// DismissRolloverNotice clears the one-shot rollover banner.
func (s *Store) DismissRolloverNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolloverNotice = nil
}

// Subscribe registers a listener and returns its unsubscribe func.
// The listener immediately receives the current document.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener
	doc := s.doc.Clone()
	s.mu.Unlock()

	listener(doc)
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// commit runs a mutation against a clone of the document, persists the
// clone, and swaps it in only when the write round-trip succeeded.
// Validation failures inside mutate abort before any state changes;
// persistence failures roll back and degrade storage.
func (s *Store) commit(ctx context.Context, mutate func(doc *models.Document) error) error {
	s.mu.Lock()

	next := s.doc.Clone()
	if err := mutate(next); err != nil {
		s.mu.Unlock()
		return err
	}

	if err := s.persist(ctx, next); err != nil {
		s.doc.StorageStatus = models.StorageDegraded
		notify := s.notifyLocked()
		s.mu.Unlock()
		notify()
		return err
	}

	next.StorageStatus = models.StorageReady
	s.doc = next
	notify := s.notifyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

// persist writes doc to the gateway under the fixed state key.
func (s *Store) persist(ctx context.Context, doc *models.Document) error {
	state, err := snapshot.DocumentState(doc)
	if err != nil {
		return storageError(err)
	}
	payload, err := json.Marshal(map[string]any{
		"schemaVersion": models.CurrentSchemaVersion,
		"collections":   state,
	})
	if err != nil {
		return storageError(err)
	}

	record := &secondary.StateRecord{
		ID:            secondary.StateRecordID,
		SchemaVersion: models.CurrentSchemaVersion,
		DeviceID:      s.deviceID,
		Payload:       payload,
		UpdatedAt:     s.clock().UnixMilli(),
	}
	if err := s.gateway.Put(ctx, record); err != nil {
		return storageError(err)
	}
	return nil
}

// degradeLocked installs doc in the degraded state and returns the
// pending listener delivery for the caller to run after unlocking.
func (s *Store) degradeLocked(doc *models.Document, err error) func() {
	doc.StorageStatus = models.StorageDegraded
	if err != nil {
		s.warnings = append(s.warnings, err.Error())
	}
	s.doc = doc
	return s.notifyLocked()
}

// notifyLocked snapshots the listener set and the document under the
// lock and returns the delivery func. Callers invoke it after
// unlocking, so a listener may call back into the store without
// deadlocking on the command mutex.
func (s *Store) notifyLocked() func() {
	if len(s.listeners) == 0 {
		return func() {}
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	// Detach from s.doc under the lock; status flips mutate it in place.
	doc := s.doc.Clone()
	return func() {
		for _, listener := range listeners {
			listener(doc.Clone())
		}
	}
}

// localDate returns the wall-clock date in the local timezone, the
// anchor for scheduling, suggestions and rollover.
func (s *Store) localDate() string {
	return s.clock().Format("2006-01-02")
}

func (s *Store) nowISO() string {
	return s.clock().UTC().Format(time.RFC3339)
}

// requireReady rejects a command outright while storage is degraded.
func requireReady(doc *models.Document) *validate.Error {
	if doc.StorageStatus == models.StorageDegraded {
		return validate.New(CodeStorageDegraded,
			"Storage is unavailable. Retry storage initialization before closing out.",
			validate.Details{"storageStatus": doc.StorageStatus})
	}
	return nil
}

// storageError converts a gateway failure into the typed persistence
// error commands return.
func storageError(err error) *validate.Error {
	message := "The change could not be saved and was rolled back."
	details := validate.Details{"transient": false}
	if err != nil {
		details["cause"] = err.Error()
		if secondary.IsTransient(err) {
			details["transient"] = true
			message = "Storage is busy. The change was rolled back; try again."
		}
	}
	return validate.New(CodeStorageWriteFailed, message, details)
}

// notFound is the shared lookup failure for command targets.
func notFound(label, id string) *validate.Error {
	return validate.New("VALIDATION_NOT_FOUND",
		fmt.Sprintf("%s %q was not found.", label, id),
		validate.Details{"id": id})
}
