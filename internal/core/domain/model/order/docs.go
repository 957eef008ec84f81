// Package order contains the Order aggregate and its status state machine.
//
// The Order is the central entity of the fulfillment workflow. Its status
// moves only through guarded transitions; illegal (from, to) pairs fail with
// an InvalidTransitionError and leave the aggregate untouched. Cascades from
// the assignment and payment state machines reuse the same transition
// methods, so concurrent manual and automatic triggers race on a single
// compare-and-set primitive at the persistence layer.
package order
