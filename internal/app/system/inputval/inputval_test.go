package inputval

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"parent@example.com", true},
		{"  parent@example.com  ", true},
		{"first.last+tag@school.co.uk", true},

		{"", false},
		{"   ", false},
		{"parent", false},
		{"parent@", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestStruct_Valid(t *testing.T) {
	in := models.NewDemo{
		StudentName:    "Aarav",
		ParentName:     "Meera",
		ParentEmail:    "meera@example.com",
		ScheduledStart: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := Struct("demo", "create", in); err != nil {
		t.Fatalf("Struct() error = %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	in := models.NewDemo{
		StudentName: "   ",
		ParentName:  "Meera",
		ParentEmail: "not-an-email",
	}
	err := Struct("demo", "create", in)
	if !errors.Is(err, storeerr.ErrValidation) {
		t.Fatalf("Struct() error = %v, want validation error", err)
	}

	var verr *storeerr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *storeerr.ValidationError", err)
	}
	got := map[string]string{}
	for _, f := range verr.Fields {
		got[f.Field] = f.Message
	}
	for _, want := range []string{"student_name", "parent_email", "scheduled_start"} {
		if _, ok := got[want]; !ok {
			t.Errorf("missing field error for %q; got %v", want, got)
		}
	}
	if _, ok := got["parent_name"]; ok {
		t.Errorf("unexpected field error for parent_name")
	}
	if got["student_name"] != "student_name cannot be blank" {
		t.Errorf("student_name message = %q", got["student_name"])
	}
}

func TestStruct_OptionalEmail(t *testing.T) {
	if err := Struct("coach", "create", models.NewCoach{Name: "Kabir"}); err != nil {
		t.Errorf("empty optional email: got %v, want nil", err)
	}
	if err := Struct("coach", "create", models.NewCoach{Name: "Kabir", Email: "bad"}); err == nil {
		t.Error("malformed optional email: got nil, want error")
	}
}

func TestField(t *testing.T) {
	err := Field("batch", "create", "timezone", "unknown timezone")
	var verr *storeerr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Field() type = %T", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "timezone" {
		t.Errorf("Field() fields = %+v", verr.Fields)
	}
}
