package datastore

import (
	"context"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableConfig(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.AppConfig)(nil)).IfNotExists().Exec(ctx)
	return err
}

func GetConfigByKey(ctx context.Context, db *bun.DB, key string) (*models.AppConfig, error) {
	var config models.AppConfig
	err := db.NewSelect().Model(&config).Where("key = ?", key).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func GetAllConfigs(ctx context.Context, db *bun.DB) ([]*models.AppConfig, error) {
	configs := []*models.AppConfig{}
	err := db.NewSelect().Model(&configs).Order("key ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return configs, nil
}

func UpsertConfig(ctx context.Context, db *bun.DB, config *models.AppConfig) error {
	_, err := db.NewInsert().Model(config).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}
