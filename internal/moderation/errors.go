package moderation

import "errors"

var (
	// ErrInvalidType indicates the submission type is outside the allowed set.
	ErrInvalidType = errors.New("invalid submission type")
	// ErrInvalidContent indicates the submission text is empty after trimming
	// or exceeds the maximum length.
	ErrInvalidContent = errors.New("invalid submission content")
	// ErrInvalidFilter indicates a listing filter names an unknown status or
	// type. Unrecognized filters are rejected, never silently ignored.
	ErrInvalidFilter = errors.New("invalid filter value")
)
