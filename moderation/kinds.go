package moderation

import "ttreviews/model"

// requiredApprovals is the quorum: distinct moderators needed before a
// submission is published.
const requiredApprovals = 2

// KindPolicy captures the per-kind side effects of a moderation decision.
type KindPolicy struct {
	// HasImage marks kinds whose submissions may carry an uploaded image,
	// deleted best-effort on rejection.
	HasImage bool
	// DeleteOnReject marks kinds whose submission row is removed outright on
	// rejection instead of being annotated.
	DeleteOnReject bool
}

var kindPolicies = map[model.Kind]KindPolicy{
	model.KindEquipment:       {HasImage: true},
	model.KindPlayer:          {HasImage: true},
	model.KindPlayerEdit:      {},
	model.KindEquipmentReview: {},
	model.KindVideo:           {},
	model.KindPlayerSetup:     {DeleteOnReject: true},
}

func policyFor(kind model.Kind) KindPolicy {
	return kindPolicies[kind]
}
