package model

// User represents a contributor's lifetime submission stats.
type User struct {
	UserID        string
	ApprovedCount int
	RejectedCount int
}
