// Package kernel provides the core domain primitives shared by every
// aggregate in the fulfillment model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - OrderNumber: the customer-facing order reference with its generation rules
//   - ConstructorGuard: a pattern that ensures objects are built via their constructors
//
// All primitives are immutable and safe for concurrent use.
package kernel
