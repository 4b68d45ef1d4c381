package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates a collection-scoped record id. Ids are stable
// strings, generated once at creation and never reused; the random
// suffix keeps same-millisecond creations distinct.
func NewID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return fmt.Sprintf("%s_%s_%s", prefix, strconv.FormatInt(now.UnixMilli(), 36), suffix)
}

// SuggestionID builds the deterministic composite id for a suggestion.
func SuggestionID(bucket, sourceKind, sourceID string) string {
	return fmt.Sprintf("sg_%s_%s_%s", bucket, sourceKind, sourceID)
}

// Slugify lowercases a name and collapses non-alphanumerics to single
// dashes, for case-insensitive person/project reuse during capture
// processing.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
