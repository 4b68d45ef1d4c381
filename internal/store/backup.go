package store

import (
	"context"

	"github.com/example/dayops/internal/core/suggest"
	"github.com/example/dayops/internal/models"
	"github.com/example/dayops/internal/snapshot"
)

// ExportSnapshot packages the current document as a portable backup
// envelope. Export is read-only.
func (s *Store) ExportSnapshot() (*snapshot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot.Export(s.doc, s.deviceID, s.clock())
}

// ImportSnapshot merges an exported snapshot file into the local
// document. The merge is atomic: the in-memory document only changes
// after the merged result both validated and persisted; any failure
// leaves local state untouched.
func (s *Store) ImportSnapshot(ctx context.Context, raw []byte) (*snapshot.MergeResult, error) {
	s.mu.Lock()

	now := s.clock()
	result, err := snapshot.Merge(s.doc, raw, s.deviceID, now)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	merged := result.Doc
	merged.Suggestions = suggest.Rebuild(merged, s.localDate(), now)
	merged.LastActiveDate = s.doc.LastActiveDate

	if err := s.persist(ctx, merged); err != nil {
		s.doc.StorageStatus = models.StorageDegraded
		notify := s.notifyLocked()
		s.mu.Unlock()
		notify()
		return nil, err
	}

	merged.StorageStatus = models.StorageReady
	s.doc = merged
	notify := s.notifyLocked()
	s.mu.Unlock()
	notify()
	return result, nil
}
