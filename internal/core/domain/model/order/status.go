package order

import (
	"fmt"

	"localshop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct multi-party workflow.
//
// State transitions:
//
//	Pending ──> Accepted ──> OutForDelivery ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Cancellation is only reachable
// while the order is still Pending or Accepted.
//
// Status is a value object that validates state transitions and provides
// the exact wire strings used by the remote store.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is placed at checkout.
	// Pending orders are waiting for a delivery agent to accept them.
	Pending

	// Accepted indicates a delivery agent has taken the order.
	Accepted

	// OutForDelivery indicates the agent is en route to the customer.
	OutForDelivery

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was withdrawn before delivery started.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire
// representations. The strings are part of the remote API contract and must
// match it exactly.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:        "pending",
		Accepted:       "accepted",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getLegalTransitions returns the complete set of legal status transitions.
// Every (current, next) pair not present here is illegal.
func getLegalTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Accepted, Cancelled},
		Accepted:       {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered},
	}
}

// ParseStatus converts a wire string into a Status.
// Returns an error for any string that is not a known status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: pending, accepted, out_for_delivery, delivered,
// cancelled. Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid
// values. This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo checks whether moving from the current status to next is a
// legal lifecycle step, without performing the transition.
//
// Returns:
//   - nil if the transition is legal
//   - InvalidTransitionError for every other (current, next) pair
func (s Status) CanTransitionTo(next Status) error {
	for _, legal := range getLegalTransitions()[s] {
		if next == legal {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(s.String(), next.String())
}

// TransitionTo performs a legal transition and returns the new status.
//
// Returns:
//   - (next, nil) when the transition is legal
//   - (Unknown, InvalidTransitionError) otherwise; the receiver is unchanged
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.CanTransitionTo(next); err != nil {
		return Unknown, err
	}
	return next, nil
}
