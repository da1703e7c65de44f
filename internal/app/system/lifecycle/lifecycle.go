// Package lifecycle holds the status rules for stateful entities.
//
// Demos follow an explicit transition table. Batch status is never set
// directly; it is derived from membership and the administrative override.
// Stores call into this package instead of re-implementing the rules.
package lifecycle

import (
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
)

type machine[S ~string] struct {
	label    string
	terminal map[S]struct{}
	edges    map[S][]S
	// sink is reachable from every non-terminal state.
	sink S
}

func (m machine[S]) isTerminal(s S) bool {
	_, ok := m.terminal[s]
	return ok
}

func (m machine[S]) allows(from, to S) bool {
	if m.isTerminal(from) {
		return false
	}
	if to == m.sink {
		return true
	}
	for _, next := range m.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (m machine[S]) next(from S) []S {
	if m.isTerminal(from) {
		return nil
	}
	out := append([]S(nil), m.edges[from]...)
	return append(out, m.sink)
}

var demoMachine = machine[models.DemoStatus]{
	label: "demo",
	terminal: map[models.DemoStatus]struct{}{
		models.DemoConverted: {},
		models.DemoCancelled: {},
	},
	edges: map[models.DemoStatus][]models.DemoStatus{
		models.DemoBooked:         {models.DemoAttended},
		models.DemoAttended:       {models.DemoPaymentPending},
		models.DemoPaymentPending: {models.DemoConverted},
	},
	sink: models.DemoCancelled,
}

// InitialDemoStatus is the status every new demo starts in.
const InitialDemoStatus = models.DemoBooked

// CanTransitionDemo reports whether from -> to is a legal edge.
func CanTransitionDemo(from, to models.DemoStatus) bool {
	return demoMachine.allows(from, to)
}

// IsTerminalDemo reports whether no further transitions are possible.
func IsTerminalDemo(s models.DemoStatus) bool {
	return demoMachine.isTerminal(s)
}

// NextDemoStatuses lists the legal targets from s, forward edge first.
func NextDemoStatuses(s models.DemoStatus) []models.DemoStatus {
	return demoMachine.next(s)
}

// CheckDemoTransition validates a requested transition for demo id.
// Unknown target statuses are a ValidationError; known but disallowed
// pairs are an IllegalTransitionError.
func CheckDemoTransition(id string, from, to models.DemoStatus) error {
	if !to.Valid() {
		return storeerr.Invalid(demoMachine.label, "transition", storeerr.FieldError{
			Field:   "status",
			Message: "unknown status " + string(to),
		})
	}
	if !demoMachine.allows(from, to) {
		return &storeerr.IllegalTransitionError{
			Entity: demoMachine.label,
			ID:     id,
			From:   string(from),
			To:     string(to),
		}
	}
	return nil
}

// DeriveBatchStatus computes a batch's status. The administrative override
// wins; otherwise a batch at capacity is FULL and anything below it is
// ACTIVE (an empty batch is active until deactivated).
func DeriveBatchStatus(count, max int, inactive bool) models.BatchStatus {
	switch {
	case inactive:
		return models.BatchInactive
	case max > 0 && count >= max:
		return models.BatchFull
	default:
		return models.BatchActive
	}
}

// Recompute returns b with its status re-derived.
func Recompute(b models.Batch) models.Batch {
	b.Status = DeriveBatchStatus(len(b.StudentIDs), b.MaxStudents, b.Inactive)
	return b
}

// CheckAdmission validates adding studentID to b.
func CheckAdmission(b models.Batch, studentID string, alreadyMember bool) error {
	if alreadyMember {
		return storeerr.Invalid("batch", "add_student", storeerr.FieldError{
			Field:   "student_id",
			Message: "student " + studentID + " is already in this batch",
		})
	}
	if len(b.StudentIDs) >= b.MaxStudents {
		return &storeerr.CapacityExceededError{
			Entity:   "batch",
			ID:       b.ID.Hex(),
			Capacity: b.MaxStudents,
			Count:    len(b.StudentIDs),
		}
	}
	return nil
}

// CheckBatchTarget validates an administrative status request. Only ACTIVE
// and INACTIVE can be requested; FULL is derived.
func CheckBatchTarget(id string, from, to models.BatchStatus) error {
	if !to.Valid() {
		return storeerr.Invalid("batch", "transition", storeerr.FieldError{
			Field:   "status",
			Message: "unknown status " + string(to),
		})
	}
	if to == models.BatchFull {
		return &storeerr.IllegalTransitionError{Entity: "batch", ID: id, From: string(from), To: string(to)}
	}
	return nil
}
