package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Lending errors
	ErrItemAlreadyBorrowed  = fmt.Errorf("item already borrowed")
	ErrItemNotFound         = fmt.Errorf("item not found")
	ErrItemNotHeldByMember  = fmt.Errorf("item not held by member")
	ErrNoItemsHeld          = fmt.Errorf("member holds no items")
	ErrMemberNotFound       = fmt.Errorf("member not found")
	ErrDuplicateIdentifier  = fmt.Errorf("identifier already in use")
	ErrDuplicateMember      = fmt.Errorf("member already registered")
	ErrReturnPolicyMismatch = fmt.Errorf("operation not allowed by return policy")

	// Storage errors
	ErrStoreFailed = fmt.Errorf("catalog store failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

var lendingErrors = []error{
	ErrItemAlreadyBorrowed,
	ErrItemNotFound,
	ErrItemNotHeldByMember,
	ErrNoItemsHeld,
	ErrMemberNotFound,
	ErrDuplicateIdentifier,
	ErrDuplicateMember,
	ErrReturnPolicyMismatch,
}

// IsLendingError reports whether err is an expected catalog or lending outcome
// (unavailable item, unknown member, ...) rather than an infrastructure failure.
func IsLendingError(err error) bool {
	for _, target := range lendingErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
