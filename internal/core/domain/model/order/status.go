package order

import (
	"fmt"

	"restoonline/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine whose transitions mirror the fulfillment workflow:
//
//	pending ──> accepted ──> preparing ──> ready ──> assigned ──> in_delivery ──> delivered
//	   │                                     ^           │
//	   └──> refused                          └───────────┘ (assignment refused)
//
//	every non-terminal state ──> cancelled
//
// Delivered, cancelled and refused are terminal. Each transition method
// returns the target status or an InvalidTransitionError; the receiver is
// never modified.
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a newly created order.
	Pending

	// Accepted means a manager (or a completed payment) accepted the order.
	Accepted

	// Preparing means the kitchen started working on the order.
	Preparing

	// Ready means the order awaits a delivery assignment.
	Ready

	// Assigned means an active delivery assignment exists for the order.
	Assigned

	// InDelivery means the delivery person picked the order up.
	InDelivery

	// Delivered is the successful terminal status.
	Delivered

	// Cancelled is the terminal status of an order cancelled by a manager.
	Cancelled

	// Refused is the terminal status of an order refused before acceptance.
	Refused
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Accepted:   "accepted",
		Preparing:  "preparing",
		Ready:      "ready",
		Assigned:   "assigned",
		InDelivery: "in_delivery",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
		Refused:    "refused",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Accepted:   "accepted",
		Preparing:  "preparing",
		Ready:      "ready",
		Assigned:   "assigned",
		InDelivery: "in_delivery",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
		Refused:    "refused",
	}
}

// StatusFromString parses the stored string form of a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status",
		fmt.Errorf("%q is not a known order status", s))
}

// Validate checks that the Status is one of the defined order statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("order status")
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refused
}

func (s Status) transition(from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), to.String())
	}
	return to, nil
}

// Accept transitions pending -> accepted. Triggered by a manager or by the
// first completed payment callback.
func (s Status) Accept() (Status, error) {
	return s.transition(Pending, Accepted)
}

// Refuse transitions pending -> refused.
func (s Status) Refuse() (Status, error) {
	return s.transition(Pending, Refused)
}

// StartPreparing transitions accepted -> preparing.
func (s Status) StartPreparing() (Status, error) {
	return s.transition(Accepted, Preparing)
}

// MarkReady transitions preparing -> ready.
func (s Status) MarkReady() (Status, error) {
	return s.transition(Preparing, Ready)
}

// Assign transitions ready -> assigned. Only the assignment state machine
// triggers this, when a delivery assignment is created.
func (s Status) Assign() (Status, error) {
	return s.transition(Ready, Assigned)
}

// Release transitions assigned -> ready. Triggered when the delivery person
// refuses the assignment.
func (s Status) Release() (Status, error) {
	return s.transition(Assigned, Ready)
}

// StartDelivery transitions assigned -> in_delivery. Triggered by the
// assignment pickup.
func (s Status) StartDelivery() (Status, error) {
	return s.transition(Assigned, InDelivery)
}

// Deliver transitions in_delivery -> delivered. Triggered by the assignment
// completion.
func (s Status) Deliver() (Status, error) {
	return s.transition(InDelivery, Delivered)
}

// Cancel transitions any non-terminal status -> cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s.Validate() != nil {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
