package datastore

import (
	"context"
	"time"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableMarathon(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Marathon)(nil)).IfNotExists().Exec(ctx)
	return err
}

func CreateTableMarathonProgress(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.MarathonProgress)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.MarathonProgress)(nil)).
		Index("index_marathon_progress_user_marathon").
		IfNotExists().
		Unique().
		Column("user_id", "marathon_id").
		Exec(ctx)
	return err
}

func GetActiveMarathons(ctx context.Context, db *bun.DB) ([]*models.Marathon, error) {
	marathons := []*models.Marathon{}
	err := db.NewSelect().Model(&marathons).Where("active").Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return marathons, nil
}

func GetAllMarathons(ctx context.Context, db *bun.DB) ([]*models.Marathon, error) {
	marathons := []*models.Marathon{}
	err := db.NewSelect().Model(&marathons).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return marathons, nil
}

func FindMarathonByID(ctx context.Context, db *bun.DB, marathonID int64) (*models.Marathon, error) {
	var marathon models.Marathon
	err := db.NewSelect().Model(&marathon).Where("id = ?", marathonID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &marathon, nil
}

func CreateMarathon(ctx context.Context, db *bun.DB, marathon *models.Marathon) (*models.Marathon, error) {
	_, err := db.NewInsert().Model(marathon).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return marathon, nil
}

func EditMarathon(ctx context.Context, db *bun.DB, marathon *models.Marathon) (*models.Marathon, error) {
	_, err := db.NewUpdate().Model(marathon).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return marathon, nil
}

func DeleteMarathon(ctx context.Context, db *bun.DB, marathonID int64) error {
	_, err := db.NewDelete().Model((*models.Marathon)(nil)).Where("id = ?", marathonID).Exec(ctx)
	return err
}

func FindMarathonProgress(ctx context.Context, db *bun.DB, userID, marathonID int64) (*models.MarathonProgress, error) {
	var progress models.MarathonProgress
	err := db.NewSelect().Model(&progress).
		Where("user_id = ?", userID).
		Where("marathon_id = ?", marathonID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &progress, nil
}

func GetMarathonProgressByUser(ctx context.Context, db *bun.DB, userID int64) ([]*models.MarathonProgress, error) {
	progresses := []*models.MarathonProgress{}
	err := db.NewSelect().Model(&progresses).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return progresses, nil
}

func CreateMarathonProgress(ctx context.Context, db *bun.DB, progress *models.MarathonProgress) (*models.MarathonProgress, error) {
	_, err := db.NewInsert().Model(progress).
		On("CONFLICT (user_id, marathon_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return progress, nil
}

func CountFinishedMarathons(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.MarathonProgress)(nil)).Where("completed").Count(ctx)
}

// GetStaleMarathonProgress lists unfinished runs untouched since the cutoff,
// for reminder sweeps.
func GetStaleMarathonProgress(ctx context.Context, db *bun.DB, before time.Time) ([]*models.MarathonProgress, error) {
	progresses := []*models.MarathonProgress{}
	err := db.NewSelect().Model(&progresses).
		Where("completed = FALSE").
		Where("updated_at < ?", before).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return progresses, nil
}

// ApplyDaySubmission advances the day pointer and pays the day (and, on the
// final day, the completion bonus) in a single transaction. The guard on
// current_day makes a concurrent double submit a no-op.
func ApplyDaySubmission(ctx context.Context, db *bun.DB, progress *models.MarathonProgress, day int, reward float64, activities []*models.Activity) (bool, error) {
	applied := false
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model(progress).
			Set("current_day = ?", progress.CurrentDay).
			Set("submissions = ?", progress.Submissions).
			Set("completed = ?", progress.Completed).
			Set("updated_at = ?", progress.UpdatedAt).
			Where("id = ?", progress.ID).
			Where("current_day = ?", day).
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

		if reward > 0 {
			if _, err := tx.NewUpdate().
				Model((*models.User)(nil)).
				Set("sparks = sparks + ?", reward).
				Set("updated_at = current_timestamp").
				Where("id = ?", progress.UserID).
				Exec(ctx); err != nil {
				return err
			}
		}

		for _, activity := range activities {
			if _, err := tx.NewInsert().Model(activity).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return applied, err
}
