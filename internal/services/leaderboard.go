package services

import (
	"context"

	"workshop/internal/datastore"
	"workshop/internal/datastore/redis_store"
	"workshop/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceLeaderboard struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB

	serviceConfig *ServiceConfig
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLeaderboard{container, redisDB, postgresDB, serviceConfig}, nil
}

// GetLeaderboard reads the top N from the sorted set and decorates each entry
// with the user's display name from Postgres.
func (service *ServiceLeaderboard) GetLeaderboard(ctx context.Context) ([]*models.LeaderboardItem, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_LIMIT, LEADERBOARD_DEFAULT_LIMIT)

	items, err := redis_store.GetLeaderboard(ctx, service.redisDB, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	for _, item := range items {
		user, err := datastore.FindUserByID(ctx, service.postgresDB, item.UserId)
		if err != nil {
			continue
		}
		item.Username = user.Username
		item.FirstName = user.FirstName
	}
	return items, nil
}

func (service *ServiceLeaderboard) GetRank(ctx context.Context, userID int64) (int64, error) {
	rank, err := redis_store.GetRank(ctx, service.redisDB, userID)
	if err != nil {
		return -1, nil
	}
	return rank + 1, nil
}

// Rebuild repopulates the sorted set from Postgres. The cron runs this so a
// flushed Redis converges back to the stored balances.
func (service *ServiceLeaderboard) Rebuild(ctx context.Context) error {
	rows, err := datastore.GetUsersReport(ctx, service.postgresDB, 10000, 0)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	if err := redis_store.ClearLeaderboard(ctx, service.redisDB); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	for _, row := range rows {
		if !row.IsRegistered {
			continue
		}
		if _, err := redis_store.SetLeaderboardScore(ctx, service.redisDB, &models.LeaderboardItem{
			UserId: row.ID,
			Score:  row.Sparks,
		}); err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
	}
	return nil
}
