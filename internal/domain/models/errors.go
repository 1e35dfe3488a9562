package models

import "errors"

// ErrNotFound is returned by repositories when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a uniqueness constraint (slug, SKU) would be violated.
var ErrConflict = errors.New("record conflicts with an existing one")

// ErrValidation wraps input that fails domain rules.
var ErrValidation = errors.New("validation failed")
