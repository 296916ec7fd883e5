package datastore

import (
	"context"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableInteractive(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Interactive)(nil)).IfNotExists().Exec(ctx)
	return err
}

func CreateTableInteractiveCompletion(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.InteractiveCompletion)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.InteractiveCompletion)(nil)).
		Index("index_interactive_completion_user").
		IfNotExists().
		Unique().
		Column("user_id", "interactive_id").
		Exec(ctx)
	return err
}

func GetActiveInteractives(ctx context.Context, db *bun.DB) ([]*models.Interactive, error) {
	interactives := []*models.Interactive{}
	err := db.NewSelect().Model(&interactives).Where("active").Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return interactives, nil
}

func FindInteractiveByID(ctx context.Context, db *bun.DB, interactiveID int64) (*models.Interactive, error) {
	var interactive models.Interactive
	err := db.NewSelect().Model(&interactive).Where("id = ?", interactiveID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &interactive, nil
}

func CreateInteractive(ctx context.Context, db *bun.DB, interactive *models.Interactive) (*models.Interactive, error) {
	_, err := db.NewInsert().Model(interactive).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return interactive, nil
}

func EditInteractive(ctx context.Context, db *bun.DB, interactive *models.Interactive) (*models.Interactive, error) {
	_, err := db.NewUpdate().Model(interactive).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return interactive, nil
}

func DeleteInteractive(ctx context.Context, db *bun.DB, interactiveID int64) error {
	_, err := db.NewDelete().Model((*models.Interactive)(nil)).Where("id = ?", interactiveID).Exec(ctx)
	return err
}

func FindInteractiveCompletion(ctx context.Context, db *bun.DB, userID, interactiveID int64) (*models.InteractiveCompletion, error) {
	var completion models.InteractiveCompletion
	err := db.NewSelect().Model(&completion).
		Where("user_id = ?", userID).
		Where("interactive_id = ?", interactiveID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &completion, nil
}

func GetInteractiveCompletionsByUser(ctx context.Context, db *bun.DB, userID int64) ([]*models.InteractiveCompletion, error) {
	completions := []*models.InteractiveCompletion{}
	err := db.NewSelect().Model(&completions).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return completions, nil
}

// ApplyInteractiveResult records the single-shot completion with its reward.
// The unique (user_id, interactive_id) index turns a concurrent double submit
// into a conflict no-op. A wrong answer still consumes the attempt: it carries
// no reward and no activity row, only the completion itself.
func ApplyInteractiveResult(ctx context.Context, db *bun.DB, completion *models.InteractiveCompletion, activity *models.Activity) (bool, error) {
	applied := false
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewInsert().Model(completion).
			On("CONFLICT (user_id, interactive_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return nil
		}
		applied = true

		if completion.SparksEarned > 0 {
			if _, err := tx.NewUpdate().
				Model((*models.User)(nil)).
				Set("sparks = sparks + ?", completion.SparksEarned).
				Set("updated_at = current_timestamp").
				Where("id = ?", completion.UserID).
				Exec(ctx); err != nil {
				return err
			}
		}

		if activity != nil {
			if _, err := tx.NewInsert().Model(activity).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return applied, err
}
