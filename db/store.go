package db

import (
	"context"

	log "github.com/sirupsen/logrus"

	"ttreviews/model"
)

// Store adapts the package-level query functions to the moderation
// workflow's persistence interface.
type Store struct{}

// NewStore returns a Store backed by the global connection pool.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Submission(ctx context.Context, kind model.Kind, id string) (*model.Submission, error) {
	return GetSubmission(ctx, kind, id)
}

func (s *Store) SetStatus(ctx context.Context, kind model.Kind, id string, status model.Status) error {
	return UpdateSubmissionStatus(ctx, kind, id, status)
}

func (s *Store) SetRejected(ctx context.Context, kind model.Kind, id, category, reason string) error {
	return RejectSubmission(ctx, kind, id, category, reason)
}

func (s *Store) Delete(ctx context.Context, kind model.Kind, id string) error {
	return DeleteSubmission(ctx, kind, id)
}

func (s *Store) AppendDecision(ctx context.Context, rec *model.ApprovalRecord) error {
	return AppendDecision(ctx, rec)
}

func (s *Store) CountApprovers(ctx context.Context, kind model.Kind, id string) (int, error) {
	return CountApprovers(ctx, kind, id)
}

func (s *Store) Decisions(ctx context.Context, kind model.Kind, id string) ([]model.ApprovalRecord, error) {
	return Decisions(ctx, kind, id)
}

func (s *Store) Create(ctx context.Context, kind model.Kind, in NewSubmission) (*model.Submission, error) {
	return CreateSubmission(ctx, kind, in)
}

func (s *Store) Pending(ctx context.Context, kind model.Kind, limit int) ([]*model.Submission, error) {
	return PendingSubmissions(ctx, kind, limit)
}

// StatsRecorder keeps contributor stats in step with moderation outcomes. It
// plugs into the workflow as a notifier so the counters move exactly when a
// submission finalizes, regardless of which surface the decision came from.
type StatsRecorder struct{}

func NewStatsRecorder() *StatsRecorder {
	return &StatsRecorder{}
}

func (r *StatsRecorder) StatusChanged(sub *model.Submission, rec *model.ApprovalRecord) {
	ctx := context.Background()
	var err error
	switch sub.Status {
	case model.StatusApproved:
		err = IncrementApprovedCount(ctx, sub.AuthorID)
	case model.StatusRejected:
		err = IncrementRejectedCount(ctx, sub.AuthorID)
	default:
		return
	}
	if err != nil {
		log.Errorf("Failed to update stats for user %s: %v", sub.AuthorID, err)
	}
}
