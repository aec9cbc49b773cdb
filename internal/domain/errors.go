package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Ledger errors
	ErrNonPositivePoints = errors.New("point amount must be positive")
	ErrBadgeIDRequired   = errors.New("badge id is required")
	ErrTitleRequired     = errors.New("achievement title is required")

	// Event errors
	ErrEventNotFound = errors.New("event not found")
)
