package internaltypes

import "errors"

var (
	// ErrNotConfigured is returned by a notifier whose required settings are missing.
	ErrNotConfigured = errors.New("not configured")
	// ErrLocationMismatch is logged when the booking API answers for a different location.
	ErrLocationMismatch = errors.New("location mismatch")
)
