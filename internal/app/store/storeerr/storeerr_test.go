package storeerr_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
)

func TestKinds_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     string
	}{
		{"validation", storeerr.Invalid("demo", "create", storeerr.FieldError{Field: "student_name", Message: "required"}), storeerr.ErrValidation, "validation"},
		{"not found", storeerr.NotFound("batch", "abc", "get"), storeerr.ErrNotFound, "not_found"},
		{"transition", &storeerr.IllegalTransitionError{Entity: "demo", ID: "x", From: "CONVERTED", To: "BOOKED"}, storeerr.ErrIllegalTransition, "illegal_transition"},
		{"capacity", &storeerr.CapacityExceededError{Entity: "batch", ID: "x", Capacity: 2, Count: 2}, storeerr.ErrCapacityExceeded, "capacity_exceeded"},
		{"dangling", &storeerr.DanglingReferenceError{Entity: "batch", ID: "x", Field: "student_ids", RefEntity: "student", RefID: "y"}, storeerr.ErrDanglingReference, "dangling_reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, tt.sentinel)
			}
			if got := storeerr.Kind(wrapped); got != tt.kind {
				t.Errorf("Kind: got %q, want %q", got, tt.kind)
			}
		})
	}
}

func TestKind_NilAndUnknown(t *testing.T) {
	if got := storeerr.Kind(nil); got != "ok" {
		t.Errorf("Kind(nil): got %q, want %q", got, "ok")
	}
	if got := storeerr.Kind(errors.New("boom")); got != "internal" {
		t.Errorf("Kind(other): got %q, want %q", got, "internal")
	}
}

func TestValidationError_MessageIncludesFields(t *testing.T) {
	err := storeerr.Invalid("demo", "create",
		storeerr.FieldError{Field: "parent_email", Message: "must be a valid email"},
	)
	msg := err.Error()
	if !strings.Contains(msg, "parent_email") {
		t.Errorf("expected field name in %q", msg)
	}

	var ve *storeerr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected *ValidationError")
	}
	if len(ve.Fields) != 1 || ve.Entity != "demo" || ve.Op != "create" {
		t.Errorf("unexpected detail: %+v", ve)
	}
}

func TestIllegalTransitionError_NamesSourceAndTarget(t *testing.T) {
	err := &storeerr.IllegalTransitionError{Entity: "demo", ID: "d1", From: "BOOKED", To: "CONVERTED"}
	msg := err.Error()
	if !strings.Contains(msg, "BOOKED") || !strings.Contains(msg, "CONVERTED") {
		t.Errorf("expected source and target in %q", msg)
	}
}
