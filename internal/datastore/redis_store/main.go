package redis_store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"workshop/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

func dbKeyLeaderboard() string {
	return "leaderboard:sparks"
}

func dbKeyStatsSnapshot() string {
	return "stats:snapshot"
}

func SetLeaderboardScore(ctx context.Context, cmd redis.Cmdable, v *models.LeaderboardItem) (*models.LeaderboardItem, error) {
	err := cmd.ZAdd(ctx, dbKeyLeaderboard(), redis.Z{
		Score:  v.Score,
		Member: strconv.FormatInt(v.UserId, 10),
	}).Err()
	if err != nil {
		return nil, err
	}

	return v, nil
}

func ClearLeaderboard(ctx context.Context, cmd redis.Cmdable) error {
	return cmd.Del(ctx, dbKeyLeaderboard()).Err()
}

func GetLeaderboard(ctx context.Context, cmd redis.Cmdable, num int) ([]*models.LeaderboardItem, error) {
	items, err := cmd.ZRevRangeWithScores(ctx, dbKeyLeaderboard(), 0, int64(num-1)).Result()
	if err != nil {
		return nil, err
	}

	results := []*models.LeaderboardItem{}
	for i, item := range items {
		id, _ := strconv.ParseInt(fmt.Sprint(item.Member), 10, 64)
		results = append(results, &models.LeaderboardItem{
			UserId: id,
			Score:  item.Score,
			Rank:   i + 1,
		})
	}

	return results, nil
}

func GetRank(ctx context.Context, cmd redis.Cmdable, userID int64) (int64, error) {
	rank, err := cmd.ZRevRank(ctx, dbKeyLeaderboard(), strconv.FormatInt(userID, 10)).Result()
	if err != nil {
		return -1, err
	}

	return rank, nil
}

func SetStatsSnapshot(ctx context.Context, cmd redis.Cmdable, stats *models.FullStats, ttl time.Duration) error {
	b, err := msgpack.Marshal(stats)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeyStatsSnapshot(), b, ttl).Err()
}

func GetStatsSnapshot(ctx context.Context, cmd redis.Cmdable) (*models.FullStats, error) {
	b, err := cmd.Get(ctx, dbKeyStatsSnapshot()).Bytes()
	if err != nil {
		return nil, err
	}

	var v models.FullStats
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return nil, err
	}

	return &v, nil
}
