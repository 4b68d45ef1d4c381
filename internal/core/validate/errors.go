package validate

import "fmt"

// Details carries structured context for a typed error.
type Details map[string]any

// Error is the tagged failure returned by every command that can fail
// for a business reason. The UI layer renders Code/Message; Details is
// machine-readable context (blocker lists, offending fields).
type Error struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details Details `json:"details,omitempty"`
}

// New creates a typed error.
func New(code, message string, details Details) *Error {
	if details == nil {
		details = Details{}
	}
	return &Error{Code: code, Message: message, Details: details}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsError reports whether err is a typed *Error and returns it.
func AsError(err error) (*Error, bool) {
	typed, ok := err.(*Error)
	return typed, ok
}
