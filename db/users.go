package db

import (
	"context"
	"database/sql"

	"ttreviews/model"
)

// GetUserStats retrieves a user's stats from the users table.
func GetUserStats(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := DB.QueryRowContext(ctx,
		"SELECT user_id, approved_count, rejected_count FROM users WHERE user_id = ?",
		userID).Scan(&user.UserID, &user.ApprovedCount, &user.RejectedCount)
	if err != nil {
		if err == sql.ErrNoRows {
			// If the user is not in the table, create a new record
			_, err = DB.ExecContext(ctx, "INSERT INTO users(user_id) VALUES(?)", userID)
			if err != nil {
				return nil, err
			}
			return &model.User{UserID: userID}, nil
		}
		return nil, err
	}
	return &user, nil
}

// IncrementApprovedCount increments the approved_count for a user.
func IncrementApprovedCount(ctx context.Context, userID string) error {
	_, err := DB.ExecContext(ctx,
		"INSERT INTO users (user_id, approved_count) VALUES (?, 1) ON CONFLICT(user_id) DO UPDATE SET approved_count = approved_count + 1",
		userID)
	return err
}

// IncrementRejectedCount increments the rejected_count for a user.
func IncrementRejectedCount(ctx context.Context, userID string) error {
	_, err := DB.ExecContext(ctx,
		"INSERT INTO users (user_id, rejected_count) VALUES (?, 1) ON CONFLICT(user_id) DO UPDATE SET rejected_count = rejected_count + 1",
		userID)
	return err
}
