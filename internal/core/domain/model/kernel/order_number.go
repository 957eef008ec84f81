package kernel

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"restoonline/internal/pkg/errs"
)

// OrderNumberPrefix is the fixed prefix of every customer-facing order
// reference.
const OrderNumberPrefix = "ORD-"

// orderNumberSuffixLen is the number of uppercase hexadecimal characters
// following the prefix.
const orderNumberSuffixLen = 8

var orderNumberPattern = regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

// ErrOrderNumberIsNotConstructed indicates a zero-value OrderNumber.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via NewOrderNumber or OrderNumberFromString")

// OrderNumber is the globally unique, human-readable order reference:
// the fixed "ORD-" prefix followed by eight uppercase hexadecimal
// characters. Uniqueness is enforced by storage; on collision the caller
// generates a fresh number and retries.
type OrderNumber struct {
	value string
}

// NewOrderNumber generates a random order number.
func NewOrderNumber() OrderNumber {
	buf := make([]byte, orderNumberSuffixLen/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("order number generation: %v", err))
	}
	return OrderNumber{
		value: OrderNumberPrefix + strings.ToUpper(hex.EncodeToString(buf)),
	}
}

// OrderNumberFromString parses and validates an order number, typically when
// reconstructing an order from persistence or resolving an API path param.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if !orderNumberPattern.MatchString(s) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"order number", fmt.Errorf("%q does not match ORD- followed by 8 uppercase hex characters", s))
	}
	return OrderNumber{value: s}, nil
}

// String returns the full order number including the prefix.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers by value.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate returns ErrOrderNumberIsNotConstructed for the zero value.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
