package ffi

import "errors"

// Status is the integer result code returned across the C boundary.
//
// Zero is success. Negative values identify the failure; their meaning depends
// on the entry point and is stable across releases.
type Status int32

// StatusOK is returned when the output parameters are valid and must be
// released with Free.
const StatusOK Status = 0

// Codes of harmony_render_system_tokens.
const (
	SystemNullPointer         Status = -1
	SystemInvalidInstructions Status = -2
	SystemEncodingUnavailable Status = -3
	SystemRenderFailed        Status = -4
	SystemOutOfMemory         Status = -7
)

// Codes of harmony_render_system_user_tokens.
const (
	SystemUserNullPointer         Status = -1
	SystemUserInvalidSystem       Status = -2
	SystemUserMissingUserParts    Status = -3
	SystemUserInvalidUserPart     Status = -4
	SystemUserEncodingUnavailable Status = -5
	SystemUserRenderFailed        Status = -6
	SystemUserOutOfMemory         Status = -7
)

// Codes of harmony_stop_tokens.
const (
	StopNullPointer         Status = -1
	StopEncodingUnavailable Status = -3
	StopOutOfMemory         Status = -7
)

// codeTable maps error classes to the codes of one entry point.
type codeTable struct {
	nullPointer   Status
	invalidSystem Status
	missingParts  Status
	invalidUser   Status
	unavailable   Status
	renderFailed  Status
	outOfMemory   Status
}

var (
	systemCodes = codeTable{
		nullPointer:   SystemNullPointer,
		invalidSystem: SystemInvalidInstructions,
		unavailable:   SystemEncodingUnavailable,
		renderFailed:  SystemRenderFailed,
		outOfMemory:   SystemOutOfMemory,
	}

	systemUserCodes = codeTable{
		nullPointer:   SystemUserNullPointer,
		invalidSystem: SystemUserInvalidSystem,
		missingParts:  SystemUserMissingUserParts,
		invalidUser:   SystemUserInvalidUserPart,
		unavailable:   SystemUserEncodingUnavailable,
		renderFailed:  SystemUserRenderFailed,
		outOfMemory:   SystemUserOutOfMemory,
	}

	stopCodes = codeTable{
		nullPointer: StopNullPointer,
		unavailable: StopEncodingUnavailable,
		outOfMemory: StopOutOfMemory,
	}
)

// status classifies err for the entry point described by t.
//
// An error the table has no code for is a programming error; it is reported as
// a render failure so that no failure is ever mistaken for success.
func (t codeTable) status(err error) Status {
	var textErr *TextError

	var code Status
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNullPointer):
		code = t.nullPointer
	case errors.Is(err, ErrMissingUserParts):
		code = t.missingParts
	case errors.As(err, &textErr):
		if textErr.Field == FieldUserPart {
			code = t.invalidUser
		} else {
			code = t.invalidSystem
		}
	case errors.Is(err, ErrEncodingUnavailable):
		code = t.unavailable
	case errors.Is(err, ErrOutOfMemory):
		code = t.outOfMemory
	case errors.Is(err, ErrRenderFailed):
		code = t.renderFailed
	}

	if code == StatusOK {
		code = t.renderFailed
	}
	if code == StatusOK {
		code = t.unavailable
	}
	return code
}
