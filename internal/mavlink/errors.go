package mavlink

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownType          = errors.New("unknown type")
	ErrMalformedArraySyntax = errors.New("malformed array syntax")
	ErrMissingDescription   = errors.New("missing description")
	ErrInvalidMessageID     = errors.New("invalid message id")
	ErrMissingName          = errors.New("missing name")
)

// MessageError scopes a construction failure to a single message.
type MessageError struct {
	ID   string // raw id attribute, may be empty or malformed
	Name string
	Err  error
}

// Error implements the error interface.
func (e *MessageError) Error() string {
	return fmt.Sprintf("message %s (id=%s): %v", e.Name, e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *MessageError) Unwrap() error {
	return e.Err
}

// wrapWithField prefixes err with the offending field name.
func wrapWithField(err error, fieldName string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("field %s: %w", fieldName, err)
}
