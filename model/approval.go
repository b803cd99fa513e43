package model

// Action is the decision recorded by a moderator.
type Action string

const (
	ActionApproved Action = "approved"
	ActionRejected Action = "rejected"
)

// Source records which surface a moderator acted from. Provenance only, it
// has no behavioral effect.
type Source string

const (
	SourceAdminUI Source = "admin_ui"
	SourceDiscord Source = "discord"
)

// ApprovalRecord is one row of the append-only decision log. Rows are created
// once per decision and never updated or deleted.
type ApprovalRecord struct {
	ID                string `json:"id"`
	SubmissionType    Kind   `json:"submission_type"`
	SubmissionID      string `json:"submission_id"`
	ModeratorID       string `json:"moderator_id"`
	Source            Source `json:"source"`
	Action            Action `json:"action"`
	RejectionCategory string `json:"rejection_category,omitempty"`
	RejectionReason   string `json:"rejection_reason,omitempty"`
	Notes             string `json:"notes,omitempty"`
	CreatedAt         int64  `json:"created_at"`
}

// Rejection carries the mandatory annotation for a rejection decision.
type Rejection struct {
	Category string
	Reason   string
}
