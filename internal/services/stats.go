package services

import (
	"context"
	"time"

	"workshop/internal/datastore"
	"workshop/internal/datastore/redis_store"
	"workshop/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceStats struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB

	serviceLeaderboard *ServiceLeaderboard
}

func NewServiceStats(container *do.Injector) (*ServiceStats, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceLeaderboard, err := do.Invoke[*ServiceLeaderboard](container)
	if err != nil {
		return nil, err
	}

	return &ServiceStats{container, redisDB, postgresDB, serviceLeaderboard}, nil
}

// GetStats serves the cached snapshot when fresh enough and recomputes
// otherwise. The admin dashboard polls this, so the heavy counts must not hit
// Postgres on every request.
func (service *ServiceStats) GetStats(ctx context.Context) (*models.FullStats, error) {
	if snapshot, err := redis_store.GetStatsSnapshot(ctx, service.redisDB); err == nil {
		return snapshot, nil
	}

	return service.Refresh(ctx)
}

// Refresh recomputes the snapshot from Postgres and stores it in Redis.
func (service *ServiceStats) Refresh(ctx context.Context) (*models.FullStats, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &models.FullStats{}
	stats.GeneratedAt = now

	var err error
	if stats.TotalUsers, err = datastore.CountUsers(ctx, service.postgresDB); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stats.RegisteredUsers, err = datastore.CountRegisteredUsers(ctx, service.postgresDB); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stats.ActiveToday, err = datastore.CountActiveUsersSince(ctx, service.postgresDB, midnight); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stats.PendingWorks, err = datastore.CountPendingWorks(ctx, service.postgresDB); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stats.PendingReviews, err = datastore.CountPendingPostReviews(ctx, service.postgresDB); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stats.TotalSparks, err = datastore.SumUserSparks(ctx, service.postgresDB); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stats.QuizCompletions, err = datastore.CountQuizCompletions(ctx, service.postgresDB); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stats.MarathonsFinished, err = datastore.CountFinishedMarathons(ctx, service.postgresDB); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stats.Purchases, err = datastore.CountPurchases(ctx, service.postgresDB); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	top, err := service.serviceLeaderboard.GetLeaderboard(ctx)
	if err == nil {
		stats.TopUsers = make([]models.LeaderboardItem, 0, len(top))
		for _, item := range top {
			stats.TopUsers = append(stats.TopUsers, *item)
		}
	}

	if err := redis_store.SetStatsSnapshot(ctx, service.redisDB, stats, CACHE_TTL_5_MINS); err != nil {
		return stats, nil
	}
	return stats, nil
}

func (service *ServiceStats) GetUsersReport(ctx context.Context, limit, offset int) ([]*models.UserReportRow, error) {
	rows, err := datastore.GetUsersReport(ctx, service.postgresDB, limit, offset)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return rows, nil
}
