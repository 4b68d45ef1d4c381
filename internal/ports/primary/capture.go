// Package primary defines the primary ports (driving interfaces) of
// the document store. The store façade implements all of them; drivers
// that want to depend on a narrow surface can take one of these
// instead of the concrete store.
package primary

import (
	"context"

	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/models"
)

// CaptureService defines the primary port for inbox capture and
// processing.
type CaptureService interface {
	// AddInboxItem captures raw text as a new inbox item.
	AddInboxItem(ctx context.Context, raw string) (*models.InboxItem, error)

	// ToggleSnoozeInbox flips an inbox item's snoozed flag.
	ToggleSnoozeInbox(ctx context.Context, id string) error

	// ToggleArchiveInbox flips an inbox item's archived flag.
	ToggleArchiveInbox(ctx context.Context, id string) error

	// ProcessInboxItem converts a capture into its target entity and
	// returns the created entity's id.
	ProcessInboxItem(ctx context.Context, inboxID, targetType string, fields ProcessFields) (string, error)
}

// ProcessFields are the explicit form fields of inbox processing. They
// take precedence over parsed tokens, which take precedence over
// heuristics, which take precedence over defaults.
type ProcessFields struct {
	Title      string
	Due        string
	Scheduled  string
	Priority   int
	Context    string
	Time       string
	Agenda     string
	Content    string
	Email      string
	Phone      string
	Recipients []validate.Recipient
}
