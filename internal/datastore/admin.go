package datastore

import (
	"context"
	"time"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableAdmin(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Admin)(nil)).IfNotExists().Exec(ctx)
	return err
}

func FindAdminByID(ctx context.Context, db *bun.DB, adminID int64) (*models.Admin, error) {
	var admin models.Admin
	err := db.NewSelect().Model(&admin).Where("id = ?", adminID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func TouchAdminLogin(ctx context.Context, db *bun.DB, adminID int64, now time.Time) error {
	_, err := db.NewUpdate().
		Model((*models.Admin)(nil)).
		Set("last_login_at = ?", now).
		Where("id = ?", adminID).
		Exec(ctx)
	return err
}

func CreateAdmin(ctx context.Context, db *bun.DB, admin *models.Admin) (*models.Admin, error) {
	_, err := db.NewInsert().Model(admin).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return admin, nil
}
