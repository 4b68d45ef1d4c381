package store

import "github.com/example/dayops/internal/ports/primary"

// The store façade implements every primary port.
var (
	_ primary.StateService   = (*Store)(nil)
	_ primary.CaptureService = (*Store)(nil)
	_ primary.PlanService    = (*Store)(nil)
	_ primary.CloseService   = (*Store)(nil)
	_ primary.LibraryService = (*Store)(nil)
	_ primary.BackupService  = (*Store)(nil)
)
