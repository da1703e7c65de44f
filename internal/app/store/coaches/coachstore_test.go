package coachstore_test

import (
	"context"
	"errors"
	"testing"

	coachstore "github.com/dalemusser/academyhub/internal/app/store/coaches"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
)

func TestStore_Create(t *testing.T) {
	s := coachstore.New(nil)
	c, err := s.Create(context.Background(), models.NewCoach{Name: "Kabir Rao", Email: " Kabir@Academy.App "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Status != models.CoachActive {
		t.Errorf("Status: got %q, want ACTIVE", c.Status)
	}
	if c.Email != "kabir@academy.app" {
		t.Errorf("Email: got %q", c.Email)
	}
}

func TestStore_CreateRejects(t *testing.T) {
	tests := []struct {
		name string
		in   models.NewCoach
	}{
		{"blank name", models.NewCoach{Name: " "}},
		{"bad email", models.NewCoach{Name: "K", Email: "kabir"}},
		{"bad status", models.NewCoach{Name: "K", Status: "ON_LEAVE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := coachstore.New(nil).Create(context.Background(), tt.in); !errors.Is(err, storeerr.ErrValidation) {
				t.Errorf("err: got %v, want validation", err)
			}
		})
	}
}

func TestStore_FirstActive(t *testing.T) {
	s := coachstore.New(nil)
	ctx := context.Background()
	if _, ok := s.FirstActive(); ok {
		t.Error("empty store should have no active coach")
	}

	_, _ = s.Create(ctx, models.NewCoach{Name: "Away", Status: models.CoachInactive})
	first, _ := s.Create(ctx, models.NewCoach{Name: "First"})
	_, _ = s.Create(ctx, models.NewCoach{Name: "Second"})

	got, ok := s.FirstActive()
	if !ok || got.ID != first.ID {
		t.Errorf("FirstActive: got %v (%v), want %s", got.Name, ok, first.Name)
	}

	if _, err := s.SetStatus(ctx, first.ID, models.CoachInactive); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	got, _ = s.FirstActive()
	if got.Name != "Second" {
		t.Errorf("FirstActive after deactivation: got %q, want Second", got.Name)
	}
}

func TestStore_UpdateClearsEmail(t *testing.T) {
	s := coachstore.New(nil)
	ctx := context.Background()
	c, _ := s.Create(ctx, models.NewCoach{Name: "K", Email: "k@academy.app"})

	empty := ""
	got, err := s.Update(ctx, c.ID, models.CoachPatch{Email: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Email != "" || got.Name != "K" {
		t.Errorf("Update: got %+v", got)
	}
}
