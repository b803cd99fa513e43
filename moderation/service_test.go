package moderation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttreviews/model"
)

// fakeStore is an in-memory Store that mirrors the real table's uniqueness
// constraint on (type, id, moderator, action).
type fakeStore struct {
	subs      map[string]*model.Submission
	decisions []model.ApprovalRecord
	failWith  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{subs: make(map[string]*model.Submission)}
}

func subKey(kind model.Kind, id string) string {
	return fmt.Sprintf("%s/%s", kind, id)
}

func (f *fakeStore) add(sub *model.Submission) {
	f.subs[subKey(sub.Kind, sub.ID)] = sub
}

func (f *fakeStore) Submission(ctx context.Context, kind model.Kind, id string) (*model.Submission, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	sub, ok := f.subs[subKey(kind, id)]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeStore) SetStatus(ctx context.Context, kind model.Kind, id string, status model.Status) error {
	sub, ok := f.subs[subKey(kind, id)]
	if !ok {
		return model.ErrNotFound
	}
	sub.Status = status
	return nil
}

func (f *fakeStore) SetRejected(ctx context.Context, kind model.Kind, id, category, reason string) error {
	sub, ok := f.subs[subKey(kind, id)]
	if !ok {
		return model.ErrNotFound
	}
	sub.Status = model.StatusRejected
	sub.RejectionCategory = category
	sub.RejectionReason = reason
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, kind model.Kind, id string) error {
	delete(f.subs, subKey(kind, id))
	return nil
}

func (f *fakeStore) AppendDecision(ctx context.Context, rec *model.ApprovalRecord) error {
	for _, existing := range f.decisions {
		if existing.SubmissionType == rec.SubmissionType &&
			existing.SubmissionID == rec.SubmissionID &&
			existing.ModeratorID == rec.ModeratorID &&
			existing.Action == rec.Action {
			return model.ErrDuplicateDecision
		}
	}
	f.decisions = append(f.decisions, *rec)
	return nil
}

func (f *fakeStore) CountApprovers(ctx context.Context, kind model.Kind, id string) (int, error) {
	seen := make(map[string]bool)
	for _, rec := range f.decisions {
		if rec.SubmissionType == kind && rec.SubmissionID == id && rec.Action == model.ActionApproved {
			seen[rec.ModeratorID] = true
		}
	}
	return len(seen), nil
}

func (f *fakeStore) Decisions(ctx context.Context, kind model.Kind, id string) ([]model.ApprovalRecord, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var records []model.ApprovalRecord
	for _, rec := range f.decisions {
		if rec.SubmissionType == kind && rec.SubmissionID == id {
			records = append(records, rec)
		}
	}
	return records, nil
}

type fakeAssets struct {
	removed []string
	err     error
}

func (f *fakeAssets) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return f.err
}

type fakeNotifier struct {
	statuses []model.Status
}

func (f *fakeNotifier) StatusChanged(sub *model.Submission, rec *model.ApprovalRecord) {
	f.statuses = append(f.statuses, sub.Status)
}

func pendingSubmission(kind model.Kind, id string) *model.Submission {
	return &model.Submission{
		ID:       id,
		Kind:     kind,
		AuthorID: "author-1",
		Name:     "Butterfly Tenergy 05",
		Status:   model.StatusPending,
	}
}

func TestRecordApproval_QuorumTransition(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindEquipment, "eq-1"))
	svc := New(store, nil)

	var published []*model.Submission
	svc.OnApproved(model.KindEquipment, func(ctx context.Context, sub *model.Submission) error {
		published = append(published, sub)
		return nil
	})

	ctx := context.Background()

	res := svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m1", model.SourceAdminUI, "")
	require.True(t, res.Success)
	assert.Equal(t, model.StatusAwaitingSecond, res.NewStatus)
	assert.Empty(t, published, "one approval must not publish")

	res = svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m2", model.SourceDiscord, "looks good")
	require.True(t, res.Success)
	assert.Equal(t, model.StatusApproved, res.NewStatus)

	require.Len(t, published, 1)
	assert.Equal(t, "eq-1", published[0].ID)
	assert.Equal(t, model.StatusApproved, store.subs[subKey(model.KindEquipment, "eq-1")].Status)
}

func TestRecordApproval_DuplicateModerator(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindEquipment, "eq-1"))
	svc := New(store, nil)
	ctx := context.Background()

	res := svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m1", model.SourceAdminUI, "")
	require.True(t, res.Success)

	res = svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m1", model.SourceAdminUI, "")
	assert.False(t, res.Success)
	assert.Equal(t, "You have already approved this submission", res.Error)

	assert.Len(t, store.decisions, 1, "duplicate approval must not append to the log")
	assert.Equal(t, model.StatusAwaitingSecond, store.subs[subKey(model.KindEquipment, "eq-1")].Status)
}

func TestRecordApproval_NotFound(t *testing.T) {
	svc := New(newFakeStore(), nil)

	res := svc.RecordApproval(context.Background(), model.KindPlayer, "missing", "m1", model.SourceAdminUI, "")
	assert.False(t, res.Success)
	assert.Equal(t, "submission not found", res.Error)
}

func TestRecordApproval_StorageError(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New("connection reset")
	svc := New(store, nil)

	res := svc.RecordApproval(context.Background(), model.KindPlayer, "pl-1", "m1", model.SourceAdminUI, "")
	assert.False(t, res.Success)
	assert.NotContains(t, res.Error, "connection reset", "raw storage errors must not leak to callers")
}

func TestRecordRejection_SingleRejectionIsTerminal(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindPlayerEdit, "pl-2"))
	svc := New(store, nil)
	ctx := context.Background()

	// One prior approval does not protect a submission from rejection.
	res := svc.RecordApproval(ctx, model.KindPlayerEdit, "pl-2", "m1", model.SourceAdminUI, "")
	require.True(t, res.Success)

	res = svc.RecordRejection(ctx, model.KindPlayerEdit, "pl-2", "m3", model.SourceAdminUI,
		model.Rejection{Category: "spam", Reason: "duplicate entry"})
	require.True(t, res.Success)
	assert.Equal(t, model.StatusRejected, res.NewStatus)

	sub := store.subs[subKey(model.KindPlayerEdit, "pl-2")]
	assert.Equal(t, model.StatusRejected, sub.Status)
	assert.Equal(t, "spam", sub.RejectionCategory)
	assert.Equal(t, "duplicate entry", sub.RejectionReason)
}

func TestRecordRejection_RequiresCategoryAndReason(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindEquipmentReview, "rv-1"))
	svc := New(store, nil)
	ctx := context.Background()

	for _, rejection := range []model.Rejection{
		{Category: "", Reason: "bad"},
		{Category: "spam", Reason: ""},
		{},
	} {
		res := svc.RecordRejection(ctx, model.KindEquipmentReview, "rv-1", "m1", model.SourceAdminUI, rejection)
		assert.False(t, res.Success)
	}

	assert.Empty(t, store.decisions, "invalid rejections must not reach the log")
	assert.Equal(t, model.StatusPending, store.subs[subKey(model.KindEquipmentReview, "rv-1")].Status)
}

func TestTerminalStatesAreImmutable(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindEquipment, "eq-1"))
	svc := New(store, nil)
	ctx := context.Background()

	svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m1", model.SourceAdminUI, "")
	svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m2", model.SourceAdminUI, "")
	require.Equal(t, model.StatusApproved, store.subs[subKey(model.KindEquipment, "eq-1")].Status)
	logged := len(store.decisions)

	// A third moderator approving an already published submission is refused.
	res := svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m3", model.SourceDiscord, "")
	assert.False(t, res.Success)
	assert.Equal(t, model.StatusApproved, res.NewStatus)

	res = svc.RecordRejection(ctx, model.KindEquipment, "eq-1", "m3", model.SourceDiscord,
		model.Rejection{Category: "spam", Reason: "late objection"})
	assert.False(t, res.Success)

	assert.Equal(t, model.StatusApproved, store.subs[subKey(model.KindEquipment, "eq-1")].Status)
	assert.Len(t, store.decisions, logged, "decisions against terminal submissions must not be logged")
}

func TestRecordRejection_DeletesPlayerSetupRow(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindPlayerSetup, "st-1"))
	svc := New(store, nil)

	res := svc.RecordRejection(context.Background(), model.KindPlayerSetup, "st-1", "m1", model.SourceDiscord,
		model.Rejection{Category: "spam", Reason: "made up setup"})
	require.True(t, res.Success)

	_, ok := store.subs[subKey(model.KindPlayerSetup, "st-1")]
	assert.False(t, ok, "rejected player setup rows are removed")
}

func TestRecordRejection_AssetCleanupIsBestEffort(t *testing.T) {
	store := newFakeStore()
	sub := pendingSubmission(model.KindEquipment, "eq-1")
	sub.ImageKey = "equipment/eq-1.jpg"
	store.add(sub)

	assets := &fakeAssets{err: errors.New("bucket unreachable")}
	svc := New(store, assets)

	res := svc.RecordRejection(context.Background(), model.KindEquipment, "eq-1", "m1", model.SourceAdminUI,
		model.Rejection{Category: "image", Reason: "stolen photo"})
	require.True(t, res.Success, "asset cleanup failure must not block the rejection")
	assert.Equal(t, []string{"equipment/eq-1.jpg"}, assets.removed)
}

func TestRecordRejection_NoAssetCleanupWithoutImage(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindVideo, "vid-1"))
	assets := &fakeAssets{}
	svc := New(store, assets)

	res := svc.RecordRejection(context.Background(), model.KindVideo, "vid-1", "m1", model.SourceDiscord,
		model.Rejection{Category: "offtopic", Reason: "not table tennis"})
	require.True(t, res.Success)
	assert.Empty(t, assets.removed)
}

func TestSubmissionApprovals_AuditOrder(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindPlayer, "pl-1"))
	svc := New(store, nil)
	ctx := context.Background()

	svc.RecordApproval(ctx, model.KindPlayer, "pl-1", "m1", model.SourceAdminUI, "")
	svc.RecordApproval(ctx, model.KindPlayer, "pl-1", "m1", model.SourceAdminUI, "") // duplicate, not logged
	svc.RecordRejection(ctx, model.KindPlayer, "pl-1", "m2", model.SourceDiscord,
		model.Rejection{Category: "spam", Reason: "fabricated player"})

	records := svc.SubmissionApprovals(ctx, model.KindPlayer, "pl-1")
	require.Len(t, records, 2)
	assert.Equal(t, "m1", records[0].ModeratorID)
	assert.Equal(t, model.ActionApproved, records[0].Action)
	assert.Equal(t, "m2", records[1].ModeratorID)
	assert.Equal(t, model.ActionRejected, records[1].Action)
	assert.Equal(t, "spam", records[1].RejectionCategory)
}

func TestSubmissionApprovals_EmptyOnStorageFailure(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New("disk error")
	svc := New(store, nil)

	records := svc.SubmissionApprovals(context.Background(), model.KindPlayer, "pl-1")
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestNotifiersFireOnEveryTransition(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindEquipment, "eq-1"))
	svc := New(store, nil)
	notifier := &fakeNotifier{}
	svc.AddNotifier(notifier)
	ctx := context.Background()

	svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m1", model.SourceAdminUI, "")
	svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m2", model.SourceDiscord, "")

	assert.Equal(t, []model.Status{model.StatusAwaitingSecond, model.StatusApproved}, notifier.statuses)
}

func TestPublishHookFailureDoesNotFailApproval(t *testing.T) {
	store := newFakeStore()
	store.add(pendingSubmission(model.KindEquipment, "eq-1"))
	svc := New(store, nil)
	svc.OnApproved(model.KindEquipment, func(ctx context.Context, sub *model.Submission) error {
		return errors.New("slug collision")
	})
	ctx := context.Background()

	svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m1", model.SourceAdminUI, "")
	res := svc.RecordApproval(ctx, model.KindEquipment, "eq-1", "m2", model.SourceAdminUI, "")

	require.True(t, res.Success, "the approval is durable before materialization runs")
	assert.Equal(t, model.StatusApproved, res.NewStatus)
}
