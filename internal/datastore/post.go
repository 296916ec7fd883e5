package datastore

import (
	"context"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableChannelPost(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ChannelPost)(nil)).IfNotExists().Exec(ctx)
	return err
}

func GetActiveChannelPosts(ctx context.Context, db *bun.DB) ([]*models.ChannelPost, error) {
	posts := []*models.ChannelPost{}
	err := db.NewSelect().Model(&posts).Where("active").Order("published_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func GetAllChannelPosts(ctx context.Context, db *bun.DB) ([]*models.ChannelPost, error) {
	posts := []*models.ChannelPost{}
	err := db.NewSelect().Model(&posts).Order("published_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func FindChannelPostByID(ctx context.Context, db *bun.DB, postID int64) (*models.ChannelPost, error) {
	var post models.ChannelPost
	err := db.NewSelect().Model(&post).Where("id = ?", postID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func CreateChannelPost(ctx context.Context, db *bun.DB, post *models.ChannelPost) (*models.ChannelPost, error) {
	_, err := db.NewInsert().Model(post).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func EditChannelPost(ctx context.Context, db *bun.DB, post *models.ChannelPost) (*models.ChannelPost, error) {
	_, err := db.NewUpdate().Model(post).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func DeleteChannelPost(ctx context.Context, db *bun.DB, postID int64) error {
	_, err := db.NewDelete().Model((*models.ChannelPost)(nil)).Where("id = ?", postID).Exec(ctx)
	return err
}
