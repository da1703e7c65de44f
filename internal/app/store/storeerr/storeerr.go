// Package storeerr defines the error kinds returned by the entity stores,
// the resolver and the query engine.
//
// Every kind is a struct carrying the entity type, identity and operation so
// callers can build their own messages. Each kind also matches a sentinel via
// errors.Is, e.g.:
//
//	if errors.Is(err, storeerr.ErrNotFound) { ... }
package storeerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrDanglingReference = errors.New("dangling reference")
)

// FieldError names a single offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed or missing caller input.
type ValidationError struct {
	Entity string
	Op     string
	Fields []FieldError
	Msg    string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: validation failed", e.Entity, e.Op)
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "; %s: %s", f.Field, f.Message)
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an identity that does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
	Op     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %s not found", e.Entity, e.Op, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IllegalTransitionError reports a status change with no legal edge.
type IllegalTransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s %s: cannot transition from %s to %s", e.Entity, e.ID, e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool { return target == ErrIllegalTransition }

// CapacityExceededError reports a membership change that would break the
// capacity invariant.
type CapacityExceededError struct {
	Entity   string
	ID       string
	Capacity int
	Count    int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s %s: capacity exceeded (%d/%d)", e.Entity, e.ID, e.Count, e.Capacity)
}

func (e *CapacityExceededError) Is(target error) bool { return target == ErrCapacityExceeded }

// DanglingReferenceError reports a stored foreign identity that no longer
// resolves. It indicates store inconsistency, not bad input.
type DanglingReferenceError struct {
	Entity    string
	ID        string
	Field     string
	RefEntity string
	RefID     string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s %s: %s references missing %s %s", e.Entity, e.ID, e.Field, e.RefEntity, e.RefID)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrDanglingReference }

// Invalid builds a ValidationError from field errors.
func Invalid(entity, op string, fields ...FieldError) error {
	return &ValidationError{Entity: entity, Op: op, Fields: fields}
}

// Invalidf builds a ValidationError with a message and no field detail.
func Invalidf(entity, op, format string, args ...any) error {
	return &ValidationError{Entity: entity, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(entity, id, op string) error {
	return &NotFoundError{Entity: entity, ID: id, Op: op}
}

// Kind returns a short, stable label for err, used for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrDanglingReference):
		return "dangling_reference"
	default:
		return "internal"
	}
}
