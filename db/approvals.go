package db

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"

	"ttreviews/model"
)

// AppendDecision inserts one row into the append-only decision log. A second
// identical (submission_type, submission_id, moderator_id, action) tuple hits
// the table's uniqueness constraint and is reported as
// model.ErrDuplicateDecision, so the duplicate-approval check is a single
// insert-or-fail rather than a racy read-then-write.
func AppendDecision(ctx context.Context, rec *model.ApprovalRecord) error {
	_, err := DB.ExecContext(ctx, `INSERT INTO approvals(
		id, submission_type, submission_id, moderator_id, source, action,
		rejection_category, rejection_reason, notes, created_at
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SubmissionType, rec.SubmissionID, rec.ModeratorID, rec.Source, rec.Action,
		rec.RejectionCategory, rec.RejectionReason, rec.Notes, rec.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
			return model.ErrDuplicateDecision
		}
		return err
	}
	return nil
}

// CountApprovers returns the number of distinct moderators with an approved
// decision for a submission.
func CountApprovers(ctx context.Context, kind model.Kind, id string) (int, error) {
	var count int
	err := DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT moderator_id) FROM approvals
		WHERE submission_type = ? AND submission_id = ? AND action = ?`,
		kind, id, model.ActionApproved,
	).Scan(&count)
	return count, err
}

// Decisions returns every decision recorded for a submission in creation
// order.
func Decisions(ctx context.Context, kind model.Kind, id string) ([]model.ApprovalRecord, error) {
	rows, err := DB.QueryContext(ctx, `SELECT
		id, submission_type, submission_id, moderator_id, source, action,
		COALESCE(rejection_category, '') as rejection_category,
		COALESCE(rejection_reason, '') as rejection_reason,
		COALESCE(notes, '') as notes, created_at
	FROM approvals WHERE submission_type = ? AND submission_id = ? ORDER BY created_at ASC`,
		kind, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ApprovalRecord
	for rows.Next() {
		var rec model.ApprovalRecord
		err := rows.Scan(
			&rec.ID, &rec.SubmissionType, &rec.SubmissionID, &rec.ModeratorID, &rec.Source, &rec.Action,
			&rec.RejectionCategory, &rec.RejectionReason, &rec.Notes, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
