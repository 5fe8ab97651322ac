package store

import dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"

var (
	// ErrNotFound keeps store-level 404s consistent across implementations.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "reservation not found")
	// ErrOverlap is returned when a create loses the race against a
	// conflicting reservation admitted after the eligibility check.
	ErrOverlap = dErrors.New(dErrors.CodeConflict, "space already reserved for that window")
)
