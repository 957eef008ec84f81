// Package payment contains the Payment aggregate, its status state machine
// and the immutable webhook record.
//
// A payment is created exactly once per order with amount equal to the
// order total. After creation it only changes through provider status
// ingestion (webhook or polling), which is idempotent: re-applying a
// terminal status the payment already holds is a no-op that leaves the
// completion timestamp and transaction id untouched.
package payment
