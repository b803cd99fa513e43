package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ttreviews/model"
)

// submissionTables maps a submission kind to its backing table. Lookups also
// double as a whitelist, so a kind string can never reach the SQL text
// unchecked.
var submissionTables = map[model.Kind]string{
	model.KindEquipment:       "equipment_submissions",
	model.KindPlayer:          "player_submissions",
	model.KindPlayerEdit:      "player_edit_submissions",
	model.KindEquipmentReview: "equipment_review_submissions",
	model.KindVideo:           "video_submissions",
	model.KindPlayerSetup:     "player_setup_submissions",
}

func submissionTable(kind model.Kind) (string, error) {
	table, ok := submissionTables[kind]
	if !ok {
		return "", fmt.Errorf("no table for submission kind %q", kind)
	}
	return table, nil
}

const submissionColumns = `id, author_id, COALESCE(author_nickname, '') as author_nickname,
		name, COALESCE(summary, '') as summary, COALESCE(details, '') as details,
		COALESCE(target_id, '') as target_id, COALESCE(image_key, '') as image_key,
		created_at, status,
		COALESCE(rejection_category, '') as rejection_category,
		COALESCE(rejection_reason, '') as rejection_reason`

// rowScanner is an interface that can be satisfied by *sql.Row or *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSubmission scans a row into a Submission struct.
func scanSubmission(scanner rowScanner, kind model.Kind) (*model.Submission, error) {
	var sub model.Submission
	err := scanner.Scan(
		&sub.ID, &sub.AuthorID, &sub.AuthorNickname,
		&sub.Name, &sub.Summary, &sub.Details,
		&sub.TargetID, &sub.ImageKey,
		&sub.CreatedAt, &sub.Status,
		&sub.RejectionCategory, &sub.RejectionReason,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	sub.Kind = kind
	return &sub, nil
}

// NewSubmission holds the caller-supplied fields for submission intake.
type NewSubmission struct {
	AuthorID       string
	AuthorNickname string
	Name           string
	Summary        string
	Details        string
	TargetID       string
	ImageKey       string
}

// CreateSubmission inserts a new submission with a sequential ID and status
// 'pending'.
func CreateSubmission(ctx context.Context, kind model.Kind, in NewSubmission) (*model.Submission, error) {
	table, err := submissionTable(kind)
	if err != nil {
		return nil, err
	}

	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() // Rollback on error

	newID, err := getNextSubmissionID(tx)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		ID:             fmt.Sprintf("%d", newID),
		Kind:           kind,
		AuthorID:       in.AuthorID,
		AuthorNickname: in.AuthorNickname,
		Name:           in.Name,
		Summary:        in.Summary,
		Details:        in.Details,
		TargetID:       in.TargetID,
		ImageKey:       in.ImageKey,
		CreatedAt:      time.Now().Unix(),
		Status:         model.StatusPending,
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+`(
		id, author_id, author_nickname, name, summary, details, target_id, image_key, created_at, status
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		sub.ID, sub.AuthorID, sub.AuthorNickname, sub.Name, sub.Summary, sub.Details,
		sub.TargetID, sub.ImageKey, sub.CreatedAt, sub.Status,
	)
	if err != nil {
		return nil, err
	}

	return sub, tx.Commit()
}

// GetSubmission retrieves a submission by its kind and ID.
func GetSubmission(ctx context.Context, kind model.Kind, id string) (*model.Submission, error) {
	table, err := submissionTable(kind)
	if err != nil {
		return nil, err
	}

	row := DB.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM `+table+` WHERE id = ?`, id)
	return scanSubmission(row, kind)
}

// UpdateSubmissionStatus updates the status of a submission.
func UpdateSubmissionStatus(ctx context.Context, kind model.Kind, id string, status model.Status) error {
	table, err := submissionTable(kind)
	if err != nil {
		return err
	}

	_, err = DB.ExecContext(ctx, `UPDATE `+table+` SET status = ? WHERE id = ?`, status, id)
	return err
}

// RejectSubmission sets the status to 'rejected' and persists the rejection
// annotations on the submission row.
func RejectSubmission(ctx context.Context, kind model.Kind, id, category, reason string) error {
	table, err := submissionTable(kind)
	if err != nil {
		return err
	}

	_, err = DB.ExecContext(ctx,
		`UPDATE `+table+` SET status = ?, rejection_category = ?, rejection_reason = ? WHERE id = ?`,
		model.StatusRejected, category, reason, id)
	return err
}

// DeleteSubmission removes a submission row. Only player_equipment_setup
// rejections use this; other kinds keep their row.
func DeleteSubmission(ctx context.Context, kind model.Kind, id string) error {
	table, err := submissionTable(kind)
	if err != nil {
		return err
	}

	_, err = DB.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	return err
}

// PendingSubmissions retrieves submissions of a kind still awaiting a
// moderation decision, oldest first.
func PendingSubmissions(ctx context.Context, kind model.Kind, limit int) ([]*model.Submission, error) {
	table, err := submissionTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := DB.QueryContext(ctx,
		`SELECT `+submissionColumns+` FROM `+table+` WHERE status IN (?, ?) ORDER BY created_at ASC LIMIT ?`,
		model.StatusPending, model.StatusAwaitingSecond, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*model.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows, kind)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}

// SubmissionsByAuthor retrieves all submissions by an author across every
// kind, newest first within each kind.
func SubmissionsByAuthor(ctx context.Context, authorID string) ([]*model.Submission, error) {
	var submissions []*model.Submission
	for _, kind := range model.AllKinds {
		table, err := submissionTable(kind)
		if err != nil {
			return nil, err
		}

		rows, err := DB.QueryContext(ctx,
			`SELECT `+submissionColumns+` FROM `+table+` WHERE author_id = ? ORDER BY created_at DESC`,
			authorID)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			submission, err := scanSubmission(rows, kind)
			if err != nil {
				rows.Close()
				return nil, err
			}
			submissions = append(submissions, submission)
		}
		if err = rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return submissions, nil
}
