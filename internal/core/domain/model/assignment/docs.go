// Package assignment contains the DeliveryAssignment aggregate: the binding
// of an order to a delivery person for a single delivery attempt.
//
// An assignment is created only against a ready order and at most one
// non-refused assignment may exist per order at any time (enforced by
// storage). Refusal is terminal for the assignment instance; a fresh
// assignment may later be created for the same order.
//
// Location updates form an independent append-only stream tied to an
// assignment. They carry no transition semantics and never contend with
// status transitions.
package assignment
