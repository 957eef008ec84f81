package assignment

import (
	"fmt"

	"restoonline/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery assignment:
//
//	assigned ──> accepted ──> picked_up ──> delivered
//	    │
//	    └──> refused
//
// Refused and delivered are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned is the initial status, awaiting the delivery person's decision.
	Assigned

	// Accepted means the delivery person committed to the delivery.
	Accepted

	// Refused is the terminal status of a declined assignment.
	Refused

	// PickedUp means the delivery person collected the order.
	PickedUp

	// Delivered is the successful terminal status.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Assigned:  "assigned",
		Accepted:  "accepted",
		Refused:   "refused",
		PickedUp:  "picked_up",
		Delivered: "delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned:  "assigned",
		Accepted:  "accepted",
		Refused:   "refused",
		PickedUp:  "picked_up",
		Delivered: "delivered",
	}
}

// StatusFromString parses the stored string form of a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("assignment status",
		fmt.Errorf("%q is not a known assignment status", s))
}

// Validate checks that the Status is one of the defined assignment statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("assignment status")
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
	return s == Refused || s == Delivered
}

func (s Status) transition(from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidTransitionError("assignment", s.String(), to.String())
	}
	return to, nil
}

// Accept transitions assigned -> accepted.
func (s Status) Accept() (Status, error) {
	return s.transition(Assigned, Accepted)
}

// Refuse transitions assigned -> refused.
func (s Status) Refuse() (Status, error) {
	return s.transition(Assigned, Refused)
}

// Pickup transitions accepted -> picked_up.
func (s Status) Pickup() (Status, error) {
	return s.transition(Accepted, PickedUp)
}

// Complete transitions picked_up -> delivered.
func (s Status) Complete() (Status, error) {
	return s.transition(PickedUp, Delivered)
}
