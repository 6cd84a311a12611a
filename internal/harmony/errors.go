package harmony

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownEncoding = errors.New("unknown harmony encoding")
	ErrInvalidRole     = errors.New("invalid role")
	ErrEmptyContent    = errors.New("message has no content")
	ErrMissingToolName = errors.New("tool message requires an author name")
)

// RenderError reports which message of a conversation could not be rendered.
type RenderError struct {
	Index int  // Position of the message in the conversation, -1 for the completion header
	Role  Role // Role of the offending message
	Err   error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("render completion header for role %q: %v", e.Role, e.Err)
	}
	return fmt.Sprintf("render message %d (role %q): %v", e.Index, e.Role, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error {
	return e.Err
}
