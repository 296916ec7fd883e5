package datastore

import (
	"context"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableActivity(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Activity)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Activity)(nil)).Index("index_activity_user_id").IfNotExists().Column("user_id").Exec(ctx)
	return err
}

func InsertActivity(ctx context.Context, db *bun.DB, activity *models.Activity) error {
	_, err := db.NewInsert().Model(activity).Exec(ctx)
	return err
}

func GetActivitiesByUser(ctx context.Context, db *bun.DB, userID int64, limit int) ([]*models.Activity, error) {
	activities := []*models.Activity{}
	err := db.NewSelect().Model(&activities).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

// SumLifetimeEarnings counts positive deltas only; levels never drop after a
// purchase.
func SumLifetimeEarnings(ctx context.Context, db *bun.DB, userID int64) (float64, error) {
	var total float64
	err := db.NewSelect().
		ColumnExpr("coalesce(sum(sparks_delta), 0)").
		Model((*models.Activity)(nil)).
		Where("user_id = ?", userID).
		Where("sparks_delta > 0").
		Scan(ctx, &total)
	return total, err
}
