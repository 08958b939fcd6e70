package recommendation

import (
	"errors"
	"fmt"
)

// ErrMalformedRequest is matched by every MalformedRequestError.
var ErrMalformedRequest = errors.New("malformed request")

// MalformedRequestError reports the first invalid field of a request.
type MalformedRequestError struct {
	Field   string
	Message string
}

func (e *MalformedRequestError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrMalformedRequest) work.
func (e *MalformedRequestError) Is(target error) bool {
	return target == ErrMalformedRequest
}

// IsMalformedRequest checks if an error is a MalformedRequestError
func IsMalformedRequest(err error) bool {
	return errors.Is(err, ErrMalformedRequest)
}

func malformed(field, format string, args ...any) error {
	return &MalformedRequestError{
		Field:   field,
		Message: field + " " + fmt.Sprintf(format, args...),
	}
}

func errRequired(field string) error   { return malformed(field, "is required") }
func errNotObject(field string) error  { return malformed(field, "must be an object") }
func errNotString(field string) error  { return malformed(field, "must be a string") }
func errNotBoolean(field string) error { return malformed(field, "must be a boolean") }
func errInvalidURL(field string) error { return malformed(field, "must be a valid URL") }
