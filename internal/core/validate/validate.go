// Package validate contains the pure input validation rules for the
// dayops command surface. Every function returns a normalized value or
// a typed *Error carrying a stable machine-readable code; nothing here
// has side effects and nothing panics.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	idPattern      = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// TodayStatuses is the fixed execution-state enum for Today items.
var TodayStatuses = []string{
	"not started", "in progress", "waiting", "blocked",
	"complete", "cancelled", "deferred", "archived",
}

// FollowUpRecipientStatuses is the enum for follow-up recipients.
var FollowUpRecipientStatuses = []string{"pending", "complete"}

// Recipient is the normalized follow-up recipient shape.
type Recipient struct {
	PersonID string `json:"personId"`
	Status   string `json:"status"`
}

// ID validates and trims an identifier.
func ID(id, fieldName string) (string, *Error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", New("VALIDATION_ID_REQUIRED", fmt.Sprintf("%s is required.", fieldName), Details{"field": fieldName})
	}
	if !idPattern.MatchString(trimmed) {
		return "", New("VALIDATION_ID_INVALID",
			fmt.Sprintf("%s must contain only letters, numbers, underscores, or dashes.", fieldName),
			Details{"field": fieldName, "value": id})
	}
	return trimmed, nil
}

// StatusEnum validates a status against an allow-list.
func StatusEnum(status string, allowed []string, fieldName string) (string, *Error) {
	normalized := strings.TrimSpace(status)
	if normalized == "" {
		return "", New("VALIDATION_STATUS_REQUIRED", fmt.Sprintf("%s is required.", fieldName),
			Details{"field": fieldName, "allowed": allowed})
	}
	for _, candidate := range allowed {
		if candidate == normalized {
			return normalized, nil
		}
	}
	return "", New("VALIDATION_STATUS_INVALID", fmt.Sprintf("%s must be one of the allowed values.", fieldName),
		Details{"field": fieldName, "value": status, "allowed": allowed})
}

// ISODate normalizes an optional date-only field. Empty input is valid
// and normalizes to "". Date-only fields stay YYYY-MM-DD to keep
// sort/filter behavior deterministic.
func ISODate(value, fieldName string) (string, *Error) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return "", nil
	}
	if !isoDatePattern.MatchString(normalized) {
		return "", New("VALIDATION_DATE_INVALID",
			fmt.Sprintf("%s must be in ISO date format YYYY-MM-DD.", fieldName),
			Details{"field": fieldName, "value": value})
	}
	return normalized, nil
}

// ISODateTime validates a required ISO datetime string.
func ISODateTime(value, fieldName string) (string, *Error) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return "", New("VALIDATION_DATETIME_REQUIRED", fmt.Sprintf("%s is required.", fieldName),
			Details{"field": fieldName})
	}
	if _, err := time.Parse(time.RFC3339, normalized); err != nil {
		if _, err := time.Parse("2006-01-02T15:04:05.000Z0700", normalized); err != nil {
			return "", New("VALIDATION_DATETIME_INVALID",
				fmt.Sprintf("%s must be a valid ISO datetime string.", fieldName),
				Details{"field": fieldName, "value": value})
		}
	}
	return normalized, nil
}

// RequiredText normalizes required free text, falling back to the given
// fallback when the explicit value is blank. A safe fallback allows
// writes to continue when source text is present but an explicit
// title/name is missing.
func RequiredText(value, fieldName, fallback string) (string, *Error) {
	normalized := strings.TrimSpace(value)
	if normalized != "" {
		return normalized, nil
	}
	if fb := strings.TrimSpace(fallback); fb != "" {
		return fb, nil
	}
	return "", New("VALIDATION_REQUIRED_TEXT_MISSING", fmt.Sprintf("%s is required.", fieldName),
		Details{"field": fieldName})
}

// FollowUpRecipients validates and normalizes a follow-up recipient
// list. Recipient status defaults to "pending" when blank.
func FollowUpRecipients(recipients []Recipient) ([]Recipient, *Error) {
	if recipients == nil {
		return nil, New("VALIDATION_RECIPIENTS_REQUIRED", "follow-up recipients must be an array.",
			Details{"field": "recipients"})
	}

	normalized := make([]Recipient, 0, len(recipients))
	for _, recipient := range recipients {
		personID, err := ID(recipient.PersonID, "personId")
		if err != nil {
			return nil, err
		}

		status := recipient.Status
		if strings.TrimSpace(status) == "" {
			status = "pending"
		}
		status, err = StatusEnum(status, FollowUpRecipientStatuses, "recipient.status")
		if err != nil {
			return nil, err
		}

		normalized = append(normalized, Recipient{PersonID: personID, Status: status})
	}
	return normalized, nil
}
