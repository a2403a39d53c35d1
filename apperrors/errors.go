package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Services wrap these with entity context via the
// constructors below; handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrAlreadyExists    = errors.New("already exists")
	ErrPersistence      = errors.New("persistence failure")
)

// Error carries enough context (entity kind, id, operation) to render a
// user-facing message without re-querying anything.
type Error struct {
	Kind   error
	Entity string
	ID     string
	Op     string
	Msg    string
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s [%s]: %s", e.Op, e.Entity, e.ID, e.Msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Entity, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func Validation(op, entity, msg string) error {
	return &Error{Kind: ErrValidation, Entity: entity, Op: op, Msg: msg}
}

func NotFound(op, entity, id string) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id, Op: op, Msg: entity + " does not exist"}
}

func Capacity(op, entity, id, msg string) error {
	return &Error{Kind: ErrCapacityExceeded, Entity: entity, ID: id, Op: op, Msg: msg}
}

func AlreadyExists(op, entity, id string) error {
	return &Error{Kind: ErrAlreadyExists, Entity: entity, ID: id, Op: op, Msg: entity + " already exists"}
}

// Persistence wraps a failed commit. The in-memory mutation is not rolled
// back by the caller; it must retry the commit or discard the session.
func Persistence(op, entity string, err error) error {
	return &Error{Kind: ErrPersistence, Entity: entity, Op: op, Msg: err.Error()}
}

func IsValidation(err error) bool       { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsCapacityExceeded(err error) bool { return errors.Is(err, ErrCapacityExceeded) }
func IsAlreadyExists(err error) bool    { return errors.Is(err, ErrAlreadyExists) }
