package datastore

import (
	"context"
	"time"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableWork(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Work)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Work)(nil)).Index("index_user_work_status").IfNotExists().Column("status").Exec(ctx)
	return err
}

func CreateTablePostReview(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PostReview)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PostReview)(nil)).
		Index("index_post_review_user_post").
		IfNotExists().
		Unique().
		Column("user_id", "post_id").
		Exec(ctx)
	return err
}

func CreateWork(ctx context.Context, db *bun.DB, work *models.Work) (*models.Work, error) {
	_, err := db.NewInsert().Model(work).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return work, nil
}

func FindWorkByID(ctx context.Context, db *bun.DB, workID int64) (*models.Work, error) {
	var work models.Work
	err := db.NewSelect().Model(&work).Where("id = ?", workID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &work, nil
}

func GetWorksByUser(ctx context.Context, db *bun.DB, userID int64) ([]*models.Work, error) {
	works := []*models.Work{}
	err := db.NewSelect().Model(&works).Where("user_id = ?", userID).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return works, nil
}

// Pending queues are FIFO: oldest submission first.
func GetPendingWorks(ctx context.Context, db *bun.DB) ([]*models.Work, error) {
	works := []*models.Work{}
	err := db.NewSelect().Model(&works).
		Where("status = ?", models.ModerationPending).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return works, nil
}

func CountPendingWorks(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.Work)(nil)).Where("status = ?", models.ModerationPending).Count(ctx)
}

func CreatePostReview(ctx context.Context, db *bun.DB, review *models.PostReview) (*models.PostReview, error) {
	_, err := db.NewInsert().Model(review).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return review, nil
}

func FindPostReviewByID(ctx context.Context, db *bun.DB, reviewID int64) (*models.PostReview, error) {
	var review models.PostReview
	err := db.NewSelect().Model(&review).Where("id = ?", reviewID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func FindPostReviewByUserAndPost(ctx context.Context, db *bun.DB, userID, postID int64) (*models.PostReview, error) {
	var review models.PostReview
	err := db.NewSelect().Model(&review).
		Where("user_id = ?", userID).
		Where("post_id = ?", postID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func GetPendingPostReviews(ctx context.Context, db *bun.DB) ([]*models.PostReview, error) {
	reviews := []*models.PostReview{}
	err := db.NewSelect().Model(&reviews).
		Where("status = ?", models.ModerationPending).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func CountPendingPostReviews(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.PostReview)(nil)).Where("status = ?", models.ModerationPending).Count(ctx)
}

// ApplyWorkDecision transitions a pending work to a terminal status, pays the
// approval reward and logs the activity as one unit. The status guard keeps a
// second decision from ever landing: rows affected 0 means the work was no
// longer pending.
func ApplyWorkDecision(ctx context.Context, db *bun.DB, workID int64, decision models.ModerationStatus, adminID int64, comment string, now time.Time, reward float64, activity *models.Activity) (bool, error) {
	applied := false
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Work)(nil)).
			Set("status = ?", decision).
			Set("moderator_id = ?", adminID).
			Set("moderator_comment = ?", comment).
			Set("moderated_at = ?", now).
			Where("id = ?", workID).
			Where("status = ?", models.ModerationPending).
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

		if activity != nil && reward > 0 {
			if _, err := tx.NewUpdate().
				Model((*models.User)(nil)).
				Set("sparks = sparks + ?", reward).
				Set("updated_at = current_timestamp").
				Where("id = ?", activity.UserID).
				Exec(ctx); err != nil {
				return err
			}

			if _, err := tx.NewInsert().Model(activity).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return applied, err
}

func ApplyPostReviewDecision(ctx context.Context, db *bun.DB, reviewID int64, decision models.ModerationStatus, adminID int64, comment string, now time.Time, reward float64, activity *models.Activity) (bool, error) {
	applied := false
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.PostReview)(nil)).
			Set("status = ?", decision).
			Set("moderator_id = ?", adminID).
			Set("moderator_comment = ?", comment).
			Set("moderated_at = ?", now).
			Where("id = ?", reviewID).
			Where("status = ?", models.ModerationPending).
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

		if activity != nil && reward > 0 {
			if _, err := tx.NewUpdate().
				Model((*models.User)(nil)).
				Set("sparks = sparks + ?", reward).
				Set("updated_at = current_timestamp").
				Where("id = ?", activity.UserID).
				Exec(ctx); err != nil {
				return err
			}

			if _, err := tx.NewInsert().Model(activity).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return applied, err
}
