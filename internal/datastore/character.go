package datastore

import (
	"context"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableCharacter(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Character)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Character)(nil)).Index("index_character_role_id").IfNotExists().Column("role_id").Exec(ctx)
	return err
}

func GetActiveCharactersByRole(ctx context.Context, db *bun.DB, roleID int64) ([]*models.Character, error) {
	characters := []*models.Character{}
	err := db.NewSelect().Model(&characters).Where("role_id = ?", roleID).Where("active").Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return characters, nil
}

func GetAllCharacters(ctx context.Context, db *bun.DB) ([]*models.Character, error) {
	characters := []*models.Character{}
	err := db.NewSelect().Model(&characters).Order("role_id ASC").Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return characters, nil
}

func FindCharacterByID(ctx context.Context, db *bun.DB, characterID int64) (*models.Character, error) {
	var character models.Character
	err := db.NewSelect().Model(&character).Where("id = ?", characterID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &character, nil
}

func CreateCharacter(ctx context.Context, db *bun.DB, character *models.Character) (*models.Character, error) {
	_, err := db.NewInsert().Model(character).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return character, nil
}

func EditCharacter(ctx context.Context, db *bun.DB, character *models.Character) (*models.Character, error) {
	_, err := db.NewUpdate().Model(character).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return character, nil
}

func DeleteCharacter(ctx context.Context, db *bun.DB, characterID int64) error {
	_, err := db.NewDelete().Model((*models.Character)(nil)).Where("id = ?", characterID).Exec(ctx)
	return err
}

func CountCharactersByRole(ctx context.Context, db *bun.DB, roleID int64) (int, error) {
	return db.NewSelect().Model((*models.Character)(nil)).Where("role_id = ?", roleID).Count(ctx)
}
