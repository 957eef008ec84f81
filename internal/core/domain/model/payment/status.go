package payment

import (
	"fmt"

	"restoonline/internal/pkg/errs"
)

// Status represents the lifecycle state of a payment:
//
//	pending ──> processing ──> completed ──> refunded
//	   │            │──> failed
//	   │            └──> cancelled
//	   └──> failed (invoice creation failed)
//
// Completed may still move to refunded; failed, cancelled and refunded are
// final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status before the provider invoice exists.
	Pending

	// Processing means the provider invoice was created and awaits payment.
	Processing

	// Completed means the provider confirmed the payment.
	Completed

	// Failed means invoice creation or the payment itself failed.
	Failed

	// Cancelled means the customer abandoned the provider checkout.
	Cancelled

	// Refunded means a completed payment was paid back.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Failed:     "failed",
		Cancelled:  "cancelled",
		Refunded:   "refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Failed:     "failed",
		Cancelled:  "cancelled",
		Refunded:   "refunded",
	}
}

// StatusFromString parses the stored string form of a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a known payment status", s))
}

// StatusFromProviderString maps a provider callback status to a Status.
// Only statuses the provider may report are accepted.
func StatusFromProviderString(s string) (Status, error) {
	switch s {
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	case "cancelled":
		return Cancelled, nil
	case "refunded":
		return Refunded, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("provider status",
			fmt.Errorf("%q is not a known provider status", s))
	}
}

// Validate checks that the Status is one of the defined payment statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("payment status")
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
// Completed is not terminal because a refund may still arrive.
func (s Status) IsTerminal() bool {
	return s == Failed || s == Cancelled || s == Refunded
}
