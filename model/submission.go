package model

import "fmt"

// Kind identifies the type of a submission and selects its backing table.
type Kind string

const (
	KindEquipment       Kind = "equipment"
	KindPlayer          Kind = "player"
	KindPlayerEdit      Kind = "player_edit"
	KindEquipmentReview Kind = "equipment_review"
	KindVideo           Kind = "video"
	KindPlayerSetup     Kind = "player_equipment_setup"
)

// AllKinds lists every submission kind handled by the moderation workflow.
var AllKinds = []Kind{
	KindEquipment,
	KindPlayer,
	KindPlayerEdit,
	KindEquipmentReview,
	KindVideo,
	KindPlayerSetup,
}

// ParseKind validates a kind string coming from an interaction custom ID or
// an API path segment.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown submission kind %q", s)
}

// Status is the review state of a submission.
type Status string

const (
	StatusPending        Status = "pending"
	StatusAwaitingSecond Status = "awaiting_second_approval"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
)

// Terminal reports whether no further status transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Submission represents a user-proposed record awaiting review. The domain
// payload columns (Name, Summary, Details) are carried through the workflow
// unchanged; only Status and the rejection annotations are mutated after
// creation.
type Submission struct {
	ID                string `json:"id"`
	Kind              Kind   `json:"kind"`
	AuthorID          string `json:"author_id"`
	AuthorNickname    string `json:"author_nickname,omitempty"`
	Name              string `json:"name"`
	Summary           string `json:"summary,omitempty"`
	Details           string `json:"details,omitempty"`
	TargetID          string `json:"target_id,omitempty"` // published player ID, set on player_edit submissions
	ImageKey          string `json:"image_key,omitempty"`  // object storage key, empty if no image was uploaded
	CreatedAt         int64  `json:"created_at"`
	Status            Status `json:"status"`
	RejectionCategory string `json:"rejection_category,omitempty"`
	RejectionReason   string `json:"rejection_reason,omitempty"`
}
