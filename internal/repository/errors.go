package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStaleStatus is returned when a conditional status write matched
	// no row because the order moved on since it was read.
	ErrStaleStatus = errors.New("order status changed concurrently")

	// ErrVersionConflict is returned when an optimistic balance write
	// lost the race against another append on the same wallet.
	ErrVersionConflict = errors.New("wallet version conflict")

	// ErrDuplicate is returned when a unique constraint would be
	// violated (order number, transaction id, phone).
	ErrDuplicate = errors.New("entity already exists")
)
