package ffi

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNullPointer         = errors.New("required pointer is null")
	ErrMissingUserParts    = errors.New("user parts array is null but count is non-zero")
	ErrInvalidUTF8         = errors.New("string is not valid UTF-8")
	ErrEncodingUnavailable = errors.New("harmony encoding unavailable")
	ErrRenderFailed        = errors.New("render failed")
	ErrOutOfMemory         = errors.New("token buffer allocation failed")
)

// Field names the string argument a TextError refers to.
type Field string

// Known string arguments.
const (
	FieldInstructions       Field = "instructions"
	FieldSystemInstructions Field = "system_instructions"
	FieldUserPart           Field = "user_parts"
)

// TextError reports a string argument that could not be adapted.
type TextError struct {
	Field Field
	Index int // Index into user_parts, -1 for scalar arguments
	Err   error
}

// Error implements the error interface.
func (e *TextError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d]: %v", e.Field, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TextError) Unwrap() error {
	return e.Err
}
