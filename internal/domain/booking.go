package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a booking request rejected before any upstream call
// was made.
var ErrInvalidInput = errors.New("invalid input")

// Phase is one of the five ordered steps of the booking sequence.
type Phase string

const (
	PhaseReserveProduct Phase = "reserve_product"
	PhaseReservePartner Phase = "reserve_partner"
	PhaseBookProduct    Phase = "book_product"
	PhaseBookPartner    Phase = "book_partner"
	PhasePersist        Phase = "persist"
)

var phaseMessages = map[Phase]string{
	PhaseReserveProduct: "couldn't reserve product",
	PhaseReservePartner: "couldn't reserve partner",
	PhaseBookProduct:    "couldn't book product",
	PhaseBookPartner:    "couldn't book partner",
	PhasePersist:        "database error",
}

// PhaseError reports which phase of the sequence failed. Phases completed
// before the failure are left standing; nothing is compensated.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", phaseMessages[e.Phase], e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// Booking is the durable record written after both external services have
// confirmed the allocation. Inserted exactly once, never updated.
type Booking struct {
	UserID    int64
	ProductID int64
	PartnerID int64
}
