package db

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttreviews/model"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	DB = mockDB
	t.Cleanup(func() { mockDB.Close() })
	return mock
}

func TestAppendDecision(t *testing.T) {
	mock := setupMockDB(t)

	rec := &model.ApprovalRecord{
		ID:             "rec-1",
		SubmissionType: model.KindEquipment,
		SubmissionID:   "eq-1",
		ModeratorID:    "m1",
		Source:         model.SourceAdminUI,
		Action:         model.ActionApproved,
		CreatedAt:      1700000000,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO approvals(")).
		WithArgs(rec.ID, rec.SubmissionType, rec.SubmissionID, rec.ModeratorID, rec.Source, rec.Action,
			"", "", "", rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := AppendDecision(context.Background(), rec)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendDecision_UniqueViolation(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO approvals(")).
		WillReturnError(sqlite3.Error{
			Code:         sqlite3.ErrConstraint,
			ExtendedCode: sqlite3.ErrConstraintUnique,
		})

	err := AppendDecision(context.Background(), &model.ApprovalRecord{
		ID:             "rec-2",
		SubmissionType: model.KindEquipment,
		SubmissionID:   "eq-1",
		ModeratorID:    "m1",
		Source:         model.SourceDiscord,
		Action:         model.ActionApproved,
	})
	assert.ErrorIs(t, err, model.ErrDuplicateDecision)
}

func TestCountApprovers(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT moderator_id) FROM approvals")).
		WithArgs(model.KindPlayer, "pl-1", model.ActionApproved).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := CountApprovers(context.Background(), model.KindPlayer, "pl-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDecisions(t *testing.T) {
	mock := setupMockDB(t)

	columns := []string{
		"id", "submission_type", "submission_id", "moderator_id", "source", "action",
		"rejection_category", "rejection_reason", "notes", "created_at",
	}
	mock.ExpectQuery("SELECT .+ FROM approvals WHERE submission_type = .+ ORDER BY created_at ASC").
		WithArgs(model.KindEquipment, "eq-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("rec-1", "equipment", "eq-1", "m1", "admin_ui", "approved", "", "", "", 1700000000).
			AddRow("rec-2", "equipment", "eq-1", "m2", "discord", "rejected", "spam", "duplicate entry", "", 1700000100))

	records, err := Decisions(context.Background(), model.KindEquipment, "eq-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.ActionApproved, records[0].Action)
	assert.Equal(t, model.ActionRejected, records[1].Action)
	assert.Equal(t, "spam", records[1].RejectionCategory)
}
