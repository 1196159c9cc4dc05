package service

import "errors"

var (
	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidOrderID is returned when an order ID is empty.
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrInvalidUserName is returned when a user name is empty.
	ErrInvalidUserName = errors.New("invalid user name")

	// ErrInvalidPhone is returned when a phone number is empty.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidRole is returned when a role is not one of the known roles.
	ErrInvalidRole = errors.New("invalid role")

	// ErrPhoneAlreadyRegistered is returned when a phone number is taken.
	ErrPhoneAlreadyRegistered = errors.New("phone number already registered")

	// ErrNotADriver is returned when a presence change targets a user
	// who is not a driver.
	ErrNotADriver = errors.New("user is not a driver")

	// ErrInvalidPickupLocation is returned when pickup coordinates are
	// out of range.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidDestinationLocation is returned when destination
	// coordinates are out of range.
	ErrInvalidDestinationLocation = errors.New("invalid destination location")

	// ErrInvalidFareConfig is returned when a category carries a
	// negative base fare, per-km price or minimum fare.
	ErrInvalidFareConfig = errors.New("invalid fare configuration")

	// ErrInvalidAddress is returned when a pickup or destination
	// address is empty or too long.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNotesTooLong is returned when order notes exceed 500 characters.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrIllegalTransition is returned when an attempted status change
	// violates the order state machine.
	ErrIllegalTransition = errors.New("illegal order status transition")

	// ErrCancellationReasonRequired is returned when cancelling without
	// a reason.
	ErrCancellationReasonRequired = errors.New("cancellation reason required")

	// ErrCancellationReasonTooLong is returned when the cancellation
	// reason exceeds 255 characters.
	ErrCancellationReasonTooLong = errors.New("cancellation reason too long")

	// ErrInvalidAmount is returned when a ledger amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidTransactionType is returned when a ledger direction is
	// neither credit nor debit.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionCategory is returned when a ledger category
	// is unknown.
	ErrInvalidTransactionCategory = errors.New("invalid transaction category")

	// ErrInsufficientFunds is returned when a debit would drive the
	// wallet balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrWalletInactive is returned when recording against a
	// deactivated wallet.
	ErrWalletInactive = errors.New("wallet is not active")

	// ErrWalletBusy is returned when the cross-process wallet lock is
	// held by another request.
	ErrWalletBusy = errors.New("wallet is busy, try again")
)
