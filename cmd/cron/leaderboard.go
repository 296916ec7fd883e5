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

type LeaderboardJob struct {
	Redis redis.UniversalClient
	Db    *bun.DB
}

func NewLeaderboardJob(redis redis.UniversalClient, db *bun.DB) *LeaderboardJob {
	return &LeaderboardJob{
		Redis: redis,
		Db:    db,
	}
}

func (j *LeaderboardJob) Start(cronRunner *cron.Cron) {
	schedule := "0 * * * *"
	if timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, "CRONJOB_TIME_LEADERBOARD"); err == nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err := cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Leaderboard cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
	j.runScheduledTask()
}

// runScheduledTask rebuilds the sparks sorted set from Postgres so Redis
// converges back after a flush or missed update.
func (j *LeaderboardJob) runScheduledTask() {
	ctx := context.Background()
	limit := 100
	offset := 0

	log.Println("Start rebuilding sparks leaderboard ...")
	if err := redis_store.ClearLeaderboard(ctx, j.Redis); err != nil {
		log.Println(err)
		return
	}

	for {
		rows, err := datastore.GetUsersReport(ctx, j.Db, limit, offset)
		offset += limit
		if err != nil {
			log.Println(err)
			return
		}

		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			if !row.IsRegistered {
				continue
			}
			_, err := redis_store.SetLeaderboardScore(ctx, j.Redis, &models.LeaderboardItem{
				UserId: row.ID,
				Score:  row.Sparks,
			})
			if err != nil {
				log.Println(err)
			}
		}
	}

	log.Println("Sparks leaderboard rebuilt")
}
