package menu

import "errors"

var (
	// ErrInvalidBusinessID means the save request carried no usable business identifier
	ErrInvalidBusinessID = errors.New("businessId is required")

	// ErrNotFound means no menu record exists for the given id
	ErrNotFound = errors.New("menu not found")

	// ErrNotOwner means the record exists but belongs to a different user
	ErrNotOwner = errors.New("menu does not belong to the caller")

	// ErrConstraint is the store's report of a violated uniqueness
	// constraint (duplicate slug or duplicate (user, business) pair)
	ErrConstraint = errors.New("store constraint violated")
)
