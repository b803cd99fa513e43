package model

import "errors"

var (
	// ErrNotFound is returned when a (kind, id) pair does not resolve to a
	// submission row.
	ErrNotFound = errors.New("submission not found")

	// ErrDuplicateDecision is returned when a moderator has already recorded
	// the same action for a submission. Enforced by a uniqueness constraint
	// on the approvals table, so the guarantee holds under concurrent calls.
	ErrDuplicateDecision = errors.New("duplicate moderation decision")
)
