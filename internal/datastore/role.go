package datastore

import (
	"context"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableRole(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Role)(nil)).IfNotExists().Exec(ctx)
	return err
}

func GetActiveRoles(ctx context.Context, db *bun.DB) ([]*models.Role, error) {
	roles := []*models.Role{}
	err := db.NewSelect().Model(&roles).Where("active").Order("display_rank ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return roles, nil
}

func GetAllRoles(ctx context.Context, db *bun.DB) ([]*models.Role, error) {
	roles := []*models.Role{}
	err := db.NewSelect().Model(&roles).Order("display_rank ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return roles, nil
}

func FindRoleByID(ctx context.Context, db *bun.DB, roleID int64) (*models.Role, error) {
	var role models.Role
	err := db.NewSelect().Model(&role).Where("id = ?", roleID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &role, nil
}

func CreateRole(ctx context.Context, db *bun.DB, role *models.Role) (*models.Role, error) {
	_, err := db.NewInsert().Model(role).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return role, nil
}

func EditRole(ctx context.Context, db *bun.DB, role *models.Role) (*models.Role, error) {
	_, err := db.NewUpdate().Model(role).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return role, nil
}

func DeleteRole(ctx context.Context, db *bun.DB, roleID int64) error {
	_, err := db.NewDelete().Model((*models.Role)(nil)).Where("id = ?", roleID).Exec(ctx)
	return err
}
