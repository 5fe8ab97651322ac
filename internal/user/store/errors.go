package store

import dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"

var (
	// ErrNotFound keeps store-level 404s consistent across implementations.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "user not found")
	// ErrEmailTaken reports a unique-email violation.
	ErrEmailTaken = dErrors.New(dErrors.CodeConflict, "email already in use")
)
