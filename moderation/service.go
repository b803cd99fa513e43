// Package moderation implements the dual-moderator approval workflow.
//
// Submissions move through a small status lifecycle: pending ->
// awaiting_second_approval -> approved, with any single rejection from a
// non-terminal state moving straight to rejected. Two distinct moderators
// must approve before a submission is published; terminal states are
// permanent. The workflow keeps no in-memory state: every decision is
// recomputed from the durable approval log, so multiple processes can run
// against the same database.
package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"ttreviews/model"
)

// Store is the persistence collaborator for submissions and the decision log.
type Store interface {
	Submission(ctx context.Context, kind model.Kind, id string) (*model.Submission, error)
	SetStatus(ctx context.Context, kind model.Kind, id string, status model.Status) error
	SetRejected(ctx context.Context, kind model.Kind, id, category, reason string) error
	Delete(ctx context.Context, kind model.Kind, id string) error
	AppendDecision(ctx context.Context, rec *model.ApprovalRecord) error
	CountApprovers(ctx context.Context, kind model.Kind, id string) (int, error)
	Decisions(ctx context.Context, kind model.Kind, id string) ([]model.ApprovalRecord, error)
}

// AssetStore removes uploaded objects. Cleanup is best-effort: failures are
// logged and never block a moderation action.
type AssetStore interface {
	Remove(ctx context.Context, key string) error
}

// Notifier announces status changes. Calls are fire-and-forget; the workflow
// does not depend on them for correctness.
type Notifier interface {
	StatusChanged(sub *model.Submission, rec *model.ApprovalRecord)
}

// PublishFunc materializes a canonical record when a submission of its kind
// reaches full approval.
type PublishFunc func(ctx context.Context, sub *model.Submission) error

// Caller-facing failure messages. Business failures are returned as values,
// never panics, so the UI and the bot can branch uniformly on Success.
const (
	msgNotFound         = "submission not found"
	msgAlreadyApproved  = "You have already approved this submission"
	msgAlreadyFinalized = "this submission has already been finalized"
	msgMissingRejection = "a rejection category and reason are required"
	msgInternal         = "something went wrong, please try again"
)

// Result is the uniform outcome of a moderation operation.
type Result struct {
	Success   bool         `json:"success"`
	NewStatus model.Status `json:"newStatus,omitempty"`
	Error     string       `json:"error,omitempty"`
}

func fail(msg string) Result {
	return Result{Error: msg}
}

// Service coordinates the approval workflow against its collaborators.
type Service struct {
	store      Store
	assets     AssetStore
	notifiers  []Notifier
	publishers map[model.Kind]PublishFunc
}

// New creates a workflow service. assets may be nil when no object storage
// is configured.
func New(store Store, assets AssetStore) *Service {
	return &Service{
		store:      store,
		assets:     assets,
		publishers: make(map[model.Kind]PublishFunc),
	}
}

// OnApproved registers the materialization hook for a kind. Kinds without a
// hook simply flip to approved.
func (s *Service) OnApproved(kind model.Kind, fn PublishFunc) {
	s.publishers[kind] = fn
}

// AddNotifier registers a status-change listener.
func (s *Service) AddNotifier(n Notifier) {
	s.notifiers = append(s.notifiers, n)
}

// RecordApproval records one moderator's approval and recomputes the
// submission status from the decision log. The same moderator approving
// twice is a business failure; the underlying log's uniqueness constraint
// makes that check strict even under concurrent calls.
func (s *Service) RecordApproval(ctx context.Context, kind model.Kind, id, moderatorID string, source model.Source, notes string) Result {
	sub, err := s.store.Submission(ctx, kind, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fail(msgNotFound)
		}
		log.Errorf("Failed to load %s submission %s: %v", kind, id, err)
		return fail(msgInternal)
	}

	if sub.Status.Terminal() {
		return Result{NewStatus: sub.Status, Error: msgAlreadyFinalized}
	}

	rec := &model.ApprovalRecord{
		ID:             uuid.New().String(),
		SubmissionType: kind,
		SubmissionID:   id,
		ModeratorID:    moderatorID,
		Source:         source,
		Action:         model.ActionApproved,
		Notes:          notes,
		CreatedAt:      time.Now().Unix(),
	}
	if err := s.store.AppendDecision(ctx, rec); err != nil {
		if errors.Is(err, model.ErrDuplicateDecision) {
			return fail(msgAlreadyApproved)
		}
		log.Errorf("Failed to record approval for %s submission %s: %v", kind, id, err)
		return fail(msgInternal)
	}

	approvers, err := s.store.CountApprovers(ctx, kind, id)
	if err != nil {
		log.Errorf("Failed to count approvers for %s submission %s: %v", kind, id, err)
		return fail(msgInternal)
	}

	newStatus := model.StatusAwaitingSecond
	if approvers >= requiredApprovals {
		newStatus = model.StatusApproved
	}

	if err := s.store.SetStatus(ctx, kind, id, newStatus); err != nil {
		log.Errorf("Failed to update status for %s submission %s: %v", kind, id, err)
		return fail(msgInternal)
	}
	sub.Status = newStatus

	if newStatus == model.StatusApproved {
		if publish := s.publishers[kind]; publish != nil {
			// The approval itself is already durable; a failed
			// materialization is logged for manual replay.
			if err := publish(ctx, sub); err != nil {
				log.Errorf("Failed to publish %s submission %s: %v", kind, id, err)
			}
		}
	}

	s.announce(sub, rec)
	return Result{Success: true, NewStatus: newStatus}
}

// RecordRejection records a terminal rejection. A single rejection wins over
// any accumulated approvals. Category and reason are mandatory; nothing is
// written without them.
func (s *Service) RecordRejection(ctx context.Context, kind model.Kind, id, moderatorID string, source model.Source, rejection model.Rejection) Result {
	if rejection.Category == "" || rejection.Reason == "" {
		return fail(msgMissingRejection)
	}

	sub, err := s.store.Submission(ctx, kind, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fail(msgNotFound)
		}
		log.Errorf("Failed to load %s submission %s: %v", kind, id, err)
		return fail(msgInternal)
	}

	if sub.Status.Terminal() {
		return Result{NewStatus: sub.Status, Error: msgAlreadyFinalized}
	}

	rec := &model.ApprovalRecord{
		ID:                uuid.New().String(),
		SubmissionType:    kind,
		SubmissionID:      id,
		ModeratorID:       moderatorID,
		Source:            source,
		Action:            model.ActionRejected,
		RejectionCategory: rejection.Category,
		RejectionReason:   rejection.Reason,
		CreatedAt:         time.Now().Unix(),
	}
	if err := s.store.AppendDecision(ctx, rec); err != nil {
		if errors.Is(err, model.ErrDuplicateDecision) {
			return fail(msgAlreadyFinalized)
		}
		log.Errorf("Failed to record rejection for %s submission %s: %v", kind, id, err)
		return fail(msgInternal)
	}

	policy := policyFor(kind)
	if policy.DeleteOnReject {
		err = s.store.Delete(ctx, kind, id)
	} else {
		err = s.store.SetRejected(ctx, kind, id, rejection.Category, rejection.Reason)
	}
	if err != nil {
		log.Errorf("Failed to apply rejection to %s submission %s: %v", kind, id, err)
		return fail(msgInternal)
	}
	sub.Status = model.StatusRejected
	sub.RejectionCategory = rejection.Category
	sub.RejectionReason = rejection.Reason

	if policy.HasImage && sub.ImageKey != "" && s.assets != nil {
		if err := s.assets.Remove(ctx, sub.ImageKey); err != nil {
			log.Warnf("Failed to remove asset %s for rejected %s submission %s: %v", sub.ImageKey, kind, id, err)
		}
	}

	s.announce(sub, rec)
	return Result{Success: true, NewStatus: model.StatusRejected}
}

// SubmissionApprovals returns the audit trail for a submission in creation
// order. Read failures degrade to an empty list.
func (s *Service) SubmissionApprovals(ctx context.Context, kind model.Kind, id string) []model.ApprovalRecord {
	records, err := s.store.Decisions(ctx, kind, id)
	if err != nil {
		log.Errorf("Failed to load decisions for %s submission %s: %v", kind, id, err)
		return []model.ApprovalRecord{}
	}
	if records == nil {
		records = []model.ApprovalRecord{}
	}
	return records
}

func (s *Service) announce(sub *model.Submission, rec *model.ApprovalRecord) {
	for _, n := range s.notifiers {
		n.StatusChanged(sub, rec)
	}
}
