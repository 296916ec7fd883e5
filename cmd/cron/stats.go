package main

import (
	"context"
	"log"
	"time"

	"workshop/internal/datastore"
	"workshop/internal/datastore/redis_store"
	"workshop/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

type StatsJob struct {
	Redis redis.UniversalClient
	Db    *bun.DB
}

func NewStatsJob(redis redis.UniversalClient, db *bun.DB) *StatsJob {
	return &StatsJob{
		Redis: redis,
		Db:    db,
	}
}

func (j *StatsJob) Start(cronRunner *cron.Cron) {
	schedule := "*/5 * * * *"
	if timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, "CRONJOB_TIME_STATS"); err == nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err := cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Stats cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
}

// runScheduledTask precomputes the dashboard snapshot so admin requests never
// pay for the aggregate queries.
func (j *StatsJob) runScheduledTask() {
	ctx := context.Background()
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &models.FullStats{}
	stats.GeneratedAt = now

	var err error
	if stats.TotalUsers, err = datastore.CountUsers(ctx, j.Db); err != nil {
		log.Println(err)
		return
	}
	if stats.RegisteredUsers, err = datastore.CountRegisteredUsers(ctx, j.Db); err != nil {
		log.Println(err)
		return
	}
	if stats.ActiveToday, err = datastore.CountActiveUsersSince(ctx, j.Db, midnight); err != nil {
		log.Println(err)
		return
	}
	if stats.PendingWorks, err = datastore.CountPendingWorks(ctx, j.Db); err != nil {
		log.Println(err)
		return
	}
	if stats.PendingReviews, err = datastore.CountPendingPostReviews(ctx, j.Db); err != nil {
		log.Println(err)
		return
	}
	if stats.TotalSparks, err = datastore.SumUserSparks(ctx, j.Db); err != nil {
		log.Println(err)
		return
	}
	if stats.QuizCompletions, err = datastore.CountQuizCompletions(ctx, j.Db); err != nil {
		log.Println(err)
		return
	}
	if stats.MarathonsFinished, err = datastore.CountFinishedMarathons(ctx, j.Db); err != nil {
		log.Println(err)
		return
	}
	if stats.Purchases, err = datastore.CountPurchases(ctx, j.Db); err != nil {
		log.Println(err)
		return
	}

	if top, err := redis_store.GetLeaderboard(ctx, j.Redis, 10); err == nil {
		stats.TopUsers = make([]models.LeaderboardItem, 0, len(top))
		for _, item := range top {
			stats.TopUsers = append(stats.TopUsers, *item)
		}
	}

	if err := redis_store.SetStatsSnapshot(ctx, j.Redis, stats, 10*time.Minute); err != nil {
		log.Println(err)
		return
	}

	log.Println("Stats snapshot refreshed")
}
