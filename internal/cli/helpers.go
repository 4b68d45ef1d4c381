// Package cli contains the cobra commands of the dayops CLI. Commands
// are thin adapters: they parse flags, call the store façade through
// wire, and render results; every business rule lives below.
package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/models"
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

// renderError converts a command failure into readable output. Typed
// errors carry a stable code and sometimes blocker details; everything
// else passes through.
func renderError(err error) error {
	typed, ok := validate.AsError(err)
	if !ok {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", failMark("✗"), typed.Message)
	if blockers, ok := typed.Details["blockers"].([]string); ok && len(blockers) > 0 {
		fmt.Fprintf(&b, "\n  blockers: %s", strings.Join(blockers, ", "))
	}
	fmt.Fprintf(&b, "\n  %s", dimText("code: "+typed.Code))
	return fmt.Errorf("%s", b.String())
}

// lifecycleLabel renders the archived/deleted flags for list output.
func lifecycleLabel(l models.Lifecycle) string {
	switch {
	case l.Deleted:
		return dimText("[deleted]")
	case l.Archived:
		return dimText("[archived]")
	}
	return ""
}

// statusIcon maps a Today execution status to a list marker.
func statusIcon(status string) string {
	switch status {
	case models.TodayStatusComplete:
		return okMark("✓")
	case models.TodayStatusInProgress:
		return warnMark("▶")
	case models.TodayStatusBlocked, models.TodayStatusWaiting:
		return warnMark("■")
	case models.TodayStatusCancelled, models.TodayStatusArchived, models.TodayStatusDeferred:
		return dimText("-")
	}
	return "·"
}

// truncate shortens s for one-line list output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
