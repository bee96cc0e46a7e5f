package ledger

import "errors"

var (
	// ErrInvalidAmount is returned when a movement amount is not positive.
	ErrInvalidAmount = errors.New("movement amount must be positive")

	// ErrMissingRequiredField is returned when customer, type or currency is absent.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidCommission is returned when a commission amount is negative.
	ErrInvalidCommission = errors.New("commission must not be negative")

	// ErrCommissionExceedsAmount is returned when netting a same-currency
	// commission would drive the movement amount to zero or below. The
	// request is rejected, never clamped.
	ErrCommissionExceedsAmount = errors.New("commission exceeds movement amount")

	// ErrMovementNotFound is returned when a referenced movement does not exist.
	ErrMovementNotFound = errors.New("movement not found")

	// ErrCustomerNotFound is returned when a referenced customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrSameCustomerTransfer is returned when both sides of a transfer are the same customer.
	ErrSameCustomerTransfer = errors.New("cannot transfer to the same customer")

	// ErrShopToShopTransfer is returned when neither side of a transfer is a customer.
	ErrShopToShopTransfer = errors.New("transfer must involve at least one customer")

	// ErrMissingTransferParty is returned when a transfer side that must be a
	// customer is not specified.
	ErrMissingTransferParty = errors.New("transfer party not specified")

	// ErrDuplicateRequest is returned when an idempotency key was already
	// used within the dedup window.
	ErrDuplicateRequest = errors.New("duplicate request")
)
