package primary

import (
	"context"

	"github.com/example/dayops/internal/snapshot"
)

// BackupService defines the primary port for manual backup and restore.
type BackupService interface {
	// ExportSnapshot packages the current document as a portable backup
	// envelope. Export is read-only.
	ExportSnapshot() (*snapshot.Snapshot, error)

	// ImportSnapshot merges an exported snapshot file into the local
	// document. The merge is atomic.
	ImportSnapshot(ctx context.Context, raw []byte) (*snapshot.MergeResult, error)
}
