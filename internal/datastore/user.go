package datastore

import (
	"context"
	"strings"
	"time"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_app_user_role_id").IfNotExists().Column("role_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_app_user_character_id").IfNotExists().Column("character_id").Exec(ctx)
	return err
}

func FindUserByID(ctx context.Context, db *bun.DB, userID int64) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db *bun.DB, user *models.User) (*models.User, error) {
	_, err := db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func EditUser(ctx context.Context, db *bun.DB, user *models.User) (*models.User, error) {
	_, err := db.NewUpdate().Model(user).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func TouchLastActive(ctx context.Context, db *bun.DB, userID int64, now time.Time) error {
	_, err := db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_active_at = ?", now).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

func UpdateUserProfile(ctx context.Context, db *bun.DB, user *models.User) (*models.User, error) {
	_, err := db.NewUpdate().Model(user).
		Set("username = ?", strings.ToLower(user.Username)).
		Set("first_name = ?", user.FirstName).
		WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func RegisterUser(ctx context.Context, db *bun.DB, userID int64, roleID, characterID int64, displayName string, now time.Time) error {
	_, err := db.NewUpdate().
		Model((*models.User)(nil)).
		Set("role_id = ?", roleID).
		Set("character_id = ?", characterID).
		Set("first_name = ?", displayName).
		Set("is_registered = true").
		Set("registered_at = coalesce(registered_at, ?)", now).
		Set("updated_at = ?", now).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

func ChangeUserRole(ctx context.Context, db *bun.DB, userID int64, roleID, characterID int64, now time.Time) error {
	_, err := db.NewUpdate().
		Model((*models.User)(nil)).
		Set("role_id = ?", roleID).
		Set("character_id = ?", characterID).
		Set("updated_at = ?", now).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

// AdjustSparksWithActivity is the single funnel for balance changes: the
// conditional update and the audit row commit together. Returns false when the
// debit would push the balance below zero.
func AdjustSparksWithActivity(ctx context.Context, db *bun.DB, userID int64, delta float64, activity *models.Activity) (bool, error) {
	applied := false
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("sparks = sparks + ?", delta).
			Set("updated_at = current_timestamp").
			Where("id = ?", userID).
			Where("sparks + ? >= 0", delta).
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

		_, err = tx.NewInsert().Model(activity).Exec(ctx)
		return err
	})
	return applied, err
}

func CountUsers(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.User)(nil)).Count(ctx)
}

func CountRegisteredUsers(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.User)(nil)).Where("is_registered").Count(ctx)
}

func CountActiveUsersSince(ctx context.Context, db *bun.DB, since time.Time) (int, error) {
	return db.NewSelect().Model((*models.User)(nil)).Where("last_active_at >= ?", since).Count(ctx)
}

func SumUserSparks(ctx context.Context, db *bun.DB) (float64, error) {
	var total float64
	err := db.NewSelect().
		ColumnExpr("coalesce(sum(sparks), 0)").
		Model((*models.User)(nil)).
		Scan(ctx, &total)
	return total, err
}

func CountUsersByCharacter(ctx context.Context, db *bun.DB, characterID int64) (int, error) {
	return db.NewSelect().
		Model((*models.User)(nil)).
		Where("character_id = ?", characterID).
		Where("is_registered").
		Count(ctx)
}

func GetUsersReport(ctx context.Context, db *bun.DB, limit, offset int) ([]*models.UserReportRow, error) {
	rows := []*models.UserReportRow{}
	err := db.NewSelect().
		ColumnExpr("u.id, u.first_name, u.username, coalesce(r.name, '') as role_name, u.sparks, u.is_registered, u.last_active_at").
		TableExpr("app_user u").
		Join("LEFT JOIN role r ON r.id = u.role_id").
		Order("u.sparks DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
