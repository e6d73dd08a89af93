package model

import "errors"

// Sentinel errors shared across the storage layer and the API.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("model: not found")

	// ErrDuplicate indicates a uniqueness constraint would be violated
	// (existing email/username, repeated favorite, repeated subscription).
	ErrDuplicate = errors.New("model: already exists")

	// ErrNotRelated indicates an attempt to remove a relation that is not
	// present (favorite, cart entry, subscription).
	ErrNotRelated = errors.New("model: relation does not exist")

	// ErrSelfSubscribe indicates a user tried to subscribe to themselves.
	ErrSelfSubscribe = errors.New("model: self subscription")
)
