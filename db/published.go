package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ttreviews/model"
	"ttreviews/utils"
)

// PublishEquipment copies a fully approved equipment submission into the
// canonical equipment table, generating the public slug from its name.
func PublishEquipment(ctx context.Context, sub *model.Submission) error {
	return publishCanonical(ctx, "equipment", sub)
}

// PublishPlayer copies a fully approved player submission into the canonical
// players table.
func PublishPlayer(ctx context.Context, sub *model.Submission) error {
	return publishCanonical(ctx, "players", sub)
}

func publishCanonical(ctx context.Context, table string, sub *model.Submission) error {
	_, err := DB.ExecContext(ctx, `INSERT INTO `+table+`(
		id, slug, name, summary, details, image_key, submission_id, published_at
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), utils.Slugify(sub.Name), sub.Name, sub.Summary, sub.Details,
		sub.ImageKey, sub.ID, time.Now().Unix(),
	)
	return err
}

// ApplyPlayerEdit applies a fully approved player edit onto the published
// player row it targets.
func ApplyPlayerEdit(ctx context.Context, sub *model.Submission) error {
	if sub.TargetID == "" {
		return fmt.Errorf("player edit submission %s has no target player", sub.ID)
	}

	res, err := DB.ExecContext(ctx,
		`UPDATE players SET name = ?, slug = ?, summary = ?, details = ? WHERE id = ?`,
		sub.Name, utils.Slugify(sub.Name), sub.Summary, sub.Details, sub.TargetID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("player %s not found for edit %s", sub.TargetID, sub.ID)
	}
	return nil
}
