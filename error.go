package schemamark

import (
	"errors"
	"fmt"
)

// Application error codes. These are mapped to user-facing failure kinds at
// the pipeline boundary and to record diagnostics in storage.
const (
	ECONFLICT    = "conflict"    // action cannot be performed in current state
	EINTERNAL    = "internal"    // internal error (persistence, provider bugs)
	EINVALID     = "invalid"     // validation failed
	ENOTFOUND    = "not_found"   // entity does not exist
	EUNAVAILABLE = "unavailable" // external resource failed (scrape, timeout)
	EUNREACHABLE = "unreachable" // URL failed the pre-flight reachability probe
	ENOCREDITS   = "no_credits"  // insufficient or unobtainable credits
	ENOSCHEMAS   = "no_schemas"  // AI model produced no usable schemas
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("schemamark error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with a code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
